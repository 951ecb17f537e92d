package portal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/viant/portal/client"
	"github.com/viant/portal/client/auth/store"
	authtransport "github.com/viant/portal/client/auth/transport"
	"github.com/viant/portal/session"
)

// Portal is an assembled portal client.
type Portal struct {
	Client    *client.Client
	Session   *session.Session
	Store     store.Store
	Transport *authtransport.RoundTripper

	redis redis.UniversalClient
}

// Option customises NewClient.
type Option func(*assembly)

type assembly struct {
	logger    zerolog.Logger
	store     store.Store
	transport http.RoundTripper
}

// WithLogger sets the logger shared by every component.
func WithLogger(logger zerolog.Logger) Option {
	return func(a *assembly) {
		a.logger = logger
	}
}

// WithStore injects a credential store, overriding options.Auth.Store.
func WithStore(s store.Store) Option {
	return func(a *assembly) {
		a.store = s
	}
}

// WithTransport sets the network transport underneath the auth RoundTripper.
func WithTransport(transport http.RoundTripper) Option {
	return func(a *assembly) {
		a.transport = transport
	}
}

// NewClient creates a portal client configured via ClientOptions.
func NewClient(options *ClientOptions, opts ...Option) (*Portal, error) {
	if options == nil {
		options = &ClientOptions{}
	}
	options.Init()
	if err := options.Validate(); err != nil {
		return nil, err
	}
	a := &assembly{logger: log.Logger}
	for _, opt := range opts {
		opt(a)
	}
	if a.transport == nil {
		a.transport = options.newTransport()
	}
	ret := &Portal{Store: a.store}
	if ret.Store == nil {
		var err error
		if ret.Store, ret.redis, err = options.newStore(); err != nil {
			return nil, err
		}
	}
	rt, err := authtransport.New(
		authtransport.WithStore(ret.Store),
		authtransport.WithTransport(a.transport),
		authtransport.WithRefreshURL(authtransport.RefreshURL(options.BaseURL)),
		authtransport.WithRefreshTimeout(options.Auth.RefreshTimeout),
		authtransport.WithRetainOnNetworkError(options.Auth.RetainOnNetworkError),
		authtransport.WithLogger(a.logger.With().Str("component", "auth-transport").Logger()),
		authtransport.WithInvalidationHandler(ret.invalidate),
	)
	if err != nil {
		ret.closeRedis()
		return nil, fmt.Errorf("failed to create auth transport: %w", err)
	}
	ret.Transport = rt
	ret.Client = client.New(options.BaseURL,
		client.WithHTTPClient(&http.Client{Transport: rt}),
		client.WithLogger(a.logger.With().Str("component", "client").Logger()))
	ret.Session = session.New(ret.Client, ret.Store,
		session.WithLogger(a.logger.With().Str("component", "session").Logger()))
	return ret, nil
}

func (p *Portal) invalidate(ctx context.Context, cause error) {
	if p.Session != nil {
		p.Session.Invalidate(ctx, cause)
	}
}

// Close releases the session pub/sub and the Redis connection.
func (p *Portal) Close() error {
	var errs []error
	if p.Session != nil {
		errs = append(errs, p.Session.Close())
	}
	errs = append(errs, p.closeRedis())
	return errors.Join(errs...)
}

func (p *Portal) closeRedis() error {
	if p.redis == nil {
		return nil
	}
	return p.redis.Close()
}

func (c *ClientOptions) newTransport() http.RoundTripper {
	ret := http.DefaultTransport.(*http.Transport).Clone()
	ret.ResponseHeaderTimeout = c.Timeout
	return ret
}

func (c *ClientOptions) newStore() (store.Store, redis.UniversalClient, error) {
	switch c.Auth.Store {
	case StoreSecure:
		return store.NewSecureStore(c.Auth.StoreURL, c.Auth.EncryptionKey), nil, nil
	case StoreRedis:
		redisOptions := &redis.UniversalOptions{Addrs: []string{c.Auth.RedisAddr}}
		if strings.Contains(c.Auth.RedisAddr, "://") {
			parsed, err := redis.ParseURL(c.Auth.RedisAddr)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid redis address: %w", err)
			}
			redisOptions = &redis.UniversalOptions{Addrs: []string{parsed.Addr}, Username: parsed.Username, Password: parsed.Password, DB: parsed.DB}
		}
		rdb := redis.NewUniversalClient(redisOptions)
		return store.NewRedisStore(rdb, c.Auth.RedisPrefix), rdb, nil
	default:
		return store.NewMemoryStore(), nil, nil
	}
}
