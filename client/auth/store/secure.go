package store

import (
	"context"
	"sync"
	"time"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"github.com/viant/scy"
	_ "github.com/viant/scy/kms/blowfish"
	"golang.org/x/oauth2"
)

// DefaultEncryptionKey selects the scy blowfish KMS with its built-in key.
const DefaultEncryptionKey = "blowfish://default"

type secret struct {
	Value  string    `json:"value"`
	Expiry time.Time `json:"expiry"`
}

// SecureStore keeps each token as a separately encrypted secret under baseURL.
// Any viant/afs scheme works (file://, mem://, s3://, gs://).
type SecureStore struct {
	mu      sync.RWMutex
	baseURL string
	key     string
	fs      afs.Service
	secrets *scy.Service
}

// NewSecureStore creates an encrypted store rooted at baseURL. An empty key
// falls back to DefaultEncryptionKey.
func NewSecureStore(baseURL, key string) *SecureStore {
	if key == "" {
		key = DefaultEncryptionKey
	}
	return &SecureStore{
		baseURL: baseURL,
		key:     key,
		fs:      afs.New(),
		secrets: scy.New(),
	}
}

func (s *SecureStore) location(name string) string {
	return url.Join(s.baseURL, name+".json")
}

func (s *SecureStore) LookupToken(ctx context.Context) (*oauth2.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	access, err := s.load(ctx, AccessTokenKey)
	if err != nil || access == nil {
		return nil, err
	}
	refresh, err := s.load(ctx, RefreshTokenKey)
	if err != nil || refresh == nil {
		return nil, err
	}
	return &oauth2.Token{
		TokenType:    "Bearer",
		AccessToken:  access.Value,
		RefreshToken: refresh.Value,
		Expiry:       access.Expiry,
	}, nil
}

func (s *SecureStore) AddToken(ctx context.Context, token *oauth2.Token) error {
	if err := validate(token); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.save(ctx, AccessTokenKey, &secret{Value: token.AccessToken, Expiry: token.Expiry}); err != nil {
		return err
	}
	return s.save(ctx, RefreshTokenKey, &secret{Value: token.RefreshToken})
}

func (s *SecureStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range []string{AccessTokenKey, RefreshTokenKey} {
		location := s.location(name)
		ok, err := s.fs.Exists(ctx, location)
		if err != nil {
			return &StorageError{Op: "clear", Key: name, Err: err}
		}
		if !ok {
			continue
		}
		if err = s.fs.Delete(ctx, location); err != nil {
			return &StorageError{Op: "clear", Key: name, Err: err}
		}
	}
	return nil
}

func (s *SecureStore) load(ctx context.Context, name string) (*secret, error) {
	location := s.location(name)
	ok, err := s.fs.Exists(ctx, location)
	if err != nil {
		return nil, &StorageError{Op: "read", Key: name, Err: err}
	}
	if !ok {
		return nil, nil
	}
	loaded, err := s.secrets.Load(ctx, scy.NewResource(&secret{}, location, s.key))
	if err != nil {
		return nil, &StorageError{Op: "read", Key: name, Err: err}
	}
	ret, _ := loaded.Target.(*secret)
	if ret == nil || ret.Value == "" {
		return nil, nil
	}
	return ret, nil
}

func (s *SecureStore) save(ctx context.Context, name string, value *secret) error {
	resource := scy.NewResource(&secret{}, s.location(name), s.key)
	if err := s.secrets.Store(ctx, scy.NewSecret(value, resource)); err != nil {
		return &StorageError{Op: "write", Key: name, Err: err}
	}
	return nil
}
