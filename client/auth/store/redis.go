package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/oauth2"
)

// DefaultRedisPrefix namespaces credential keys.
const DefaultRedisPrefix = "portal:"

// RedisStore shares one credential pair between processes. The pair is written
// and removed in a single MULTI/EXEC and read with one MGET.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore creates a store on top of an existing client.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (r *RedisStore) accessKey() string  { return r.prefix + AccessTokenKey }
func (r *RedisStore) refreshKey() string { return r.prefix + RefreshTokenKey }
func (r *RedisStore) expiryKey() string  { return r.prefix + AccessTokenKey + ":expiry" }

func (r *RedisStore) LookupToken(ctx context.Context) (*oauth2.Token, error) {
	values, err := r.client.MGet(ctx, r.accessKey(), r.refreshKey(), r.expiryKey()).Result()
	if err != nil {
		return nil, &StorageError{Op: "read", Err: err}
	}
	access, _ := values[0].(string)
	refresh, _ := values[1].(string)
	if access == "" || refresh == "" {
		return nil, nil
	}
	token := &oauth2.Token{TokenType: "Bearer", AccessToken: access, RefreshToken: refresh}
	if raw, ok := values[2].(string); ok && raw != "" {
		token.Expiry, _ = time.Parse(time.RFC3339Nano, raw)
	}
	return token, nil
}

func (r *RedisStore) AddToken(ctx context.Context, token *oauth2.Token) error {
	if err := validate(token); err != nil {
		return err
	}
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.accessKey(), token.AccessToken, 0)
		pipe.Set(ctx, r.refreshKey(), token.RefreshToken, 0)
		if token.Expiry.IsZero() {
			pipe.Del(ctx, r.expiryKey())
		} else {
			pipe.Set(ctx, r.expiryKey(), token.Expiry.Format(time.RFC3339Nano), 0)
		}
		return nil
	})
	if err != nil {
		return &StorageError{Op: "write", Err: err}
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.accessKey(), r.refreshKey(), r.expiryKey()).Err(); err != nil {
		return &StorageError{Op: "clear", Err: err}
	}
	return nil
}
