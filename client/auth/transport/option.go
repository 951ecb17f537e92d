package transport

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/viant/portal/client/auth/store"
)

// InvalidationHandler is notified after a failed refresh purged the credentials.
type InvalidationHandler func(ctx context.Context, cause error)

type Option func(*RoundTripper)

// WithStore sets the credential store
func WithStore(store store.Store) Option {
	return func(t *RoundTripper) {
		t.store = store
	}
}

// WithTransport sets the underlying transport used for requests and the refresh call
func WithTransport(transport http.RoundTripper) Option {
	return func(t *RoundTripper) {
		t.transport = transport
	}
}

// WithRefresher replaces the refresh endpoint client
func WithRefresher(refresher Refresher) Option {
	return func(t *RoundTripper) {
		t.refresher = refresher
	}
}

// WithRefreshURL sets the refresh endpoint URL
func WithRefreshURL(URL string) Option {
	return func(t *RoundTripper) {
		t.refreshURL = URL
	}
}

// WithAuthRoute sets the path fragment marking authentication routes
func WithAuthRoute(fragment string) Option {
	return func(t *RoundTripper) {
		t.authRoute = fragment
	}
}

// WithCoordinator shares a coordinator
func WithCoordinator(coordinator *Coordinator) Option {
	return func(t *RoundTripper) {
		t.coordinator = coordinator
	}
}

// WithLogger sets logger
func WithLogger(logger zerolog.Logger) Option {
	return func(t *RoundTripper) {
		t.logger = logger
	}
}

// WithRefreshTimeout bounds a single refresh call
func WithRefreshTimeout(timeout time.Duration) Option {
	return func(t *RoundTripper) {
		if timeout > 0 {
			t.refreshTimeout = timeout
		}
	}
}

// WithRetainOnNetworkError keeps credentials when the refresh call fails at the
// network level (connection error, timeout) instead of purging them.
func WithRetainOnNetworkError(retain bool) Option {
	return func(t *RoundTripper) {
		t.retainOnNetworkError = retain
	}
}

// WithInvalidationHandler sets the handler called after credentials were purged
func WithInvalidationHandler(handler InvalidationHandler) Option {
	return func(t *RoundTripper) {
		t.onInvalidated = handler
	}
}
