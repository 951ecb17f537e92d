package transport

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/viant/portal/client/auth/store"
)

const (
	// DefaultAuthRoute marks portal authentication endpoints; a 401 there is final.
	DefaultAuthRoute = "/auth/mobile/"
	// DefaultRefreshTimeout bounds one refresh call.
	DefaultRefreshTimeout = 30 * time.Second
)

type RoundTripper struct {
	store                store.Store
	transport            http.RoundTripper
	refresher            Refresher
	refreshURL           string
	coordinator          *Coordinator
	authRoute            string
	refreshTimeout       time.Duration
	retainOnNetworkError bool
	onInvalidated        InvalidationHandler
	logger               zerolog.Logger
}

func New(options ...Option) (*RoundTripper, error) {
	ret := &RoundTripper{
		transport:      http.DefaultTransport,
		store:          store.NewMemoryStore(),
		coordinator:    NewCoordinator(),
		authRoute:      DefaultAuthRoute,
		refreshTimeout: DefaultRefreshTimeout,
		logger:         log.With().Str("component", "auth-transport").Logger(),
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.refresher == nil {
		if ret.refreshURL == "" {
			return nil, errors.New("refresh endpoint URL was empty")
		}
		ret.refresher = NewEndpointRefresher(ret.refreshURL, &http.Client{Transport: ret.transport})
	}
	return ret, nil
}

func (r *RoundTripper) Store() store.Store {
	return r.store
}

func (r *RoundTripper) Coordinator() *Coordinator {
	return r.coordinator
}

func (r *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	outbound, err := clone(req)
	if err != nil {
		return nil, err
	}
	resp, err := r.transport.RoundTrip(DecorateRequest(req.Context(), outbound, r.store, r.logger))
	if err != nil {
		return nil, err
	}
	return r.HandleResponse(req, resp)
}

// DecorateRequest sets `Authorization: Bearer <access token>` on req when a
// token is stored. A storage failure only means the request goes out without
// a token. req is modified in place and returned.
func DecorateRequest(ctx context.Context, req *http.Request, s store.Store, logger zerolog.Logger) *http.Request {
	token, ok, err := store.AccessToken(ctx, s)
	if err != nil {
		logger.Warn().Err(err).Str("path", req.URL.Path).Msg("access token unavailable, sending unauthenticated")
		return req
	}
	if ok {
		setBearer(req, token)
	}
	return req
}

// HandleResponse inspects the response to req. Anything but a 401 is returned
// untouched, as is a 401 from an authentication route or from a replay.
// Otherwise the credentials are refreshed (or an in-flight refresh is awaited)
// and req is replayed once with the new access token. When the refresh fails
// the original 401 response is returned; storage failures are returned as errors.
func (r *RoundTripper) HandleResponse(req *http.Request, resp *http.Response) (*http.Response, error) {
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	if r.IsAuthRoute(req) || IsRetried(req) {
		return resp, nil
	}
	token, leader, err := r.coordinator.Refresh(req.Context(), r.refresh)
	if err != nil {
		r.logger.Debug().Err(err).Bool("leader", leader).Str("path", req.URL.Path).Msg("refresh failed, surfacing 401")
		if errors.Is(err, store.ErrStorage) {
			discard(resp)
			return nil, err
		}
		return resp, nil
	}
	discard(resp)

	replay, err := clone(req)
	if err != nil {
		return nil, err
	}
	replay = markRetried(replay)
	setBearer(replay, token)
	r.logger.Debug().Str("method", replay.Method).Str("path", replay.URL.Path).Bool("leader", leader).Msg("replaying request")
	resp, err = r.transport.RoundTrip(replay)
	if err != nil {
		return nil, err
	}
	return r.HandleResponse(replay, resp)
}

// IsAuthRoute reports whether req targets an authentication endpoint.
func (r *RoundTripper) IsAuthRoute(req *http.Request) bool {
	return r.authRoute != "" && strings.Contains(req.URL.Path, r.authRoute)
}

// refresh runs once per contention window. It is detached from the caller's
// cancellation and bounded by refreshTimeout.
func (r *RoundTripper) refresh(ctx context.Context) (string, error) {
	base := context.WithoutCancel(ctx)
	callCtx, cancel := context.WithTimeout(base, r.refreshTimeout)
	defer cancel()

	stored, err := r.store.LookupToken(callCtx)
	if err != nil {
		return "", r.fail(base, err)
	}
	if stored == nil {
		// signed out: nothing to purge, no session to invalidate
		return "", ErrNoRefreshToken
	}
	if stored.RefreshToken == "" {
		return "", r.fail(base, ErrNoRefreshToken)
	}
	token, err := r.refresher.Refresh(callCtx, stored.RefreshToken)
	if err != nil {
		return "", r.fail(base, err)
	}
	if err = r.store.AddToken(base, token); err != nil {
		return "", r.fail(base, err)
	}
	r.logger.Info().Time("expiry", token.Expiry).Int("waiters", r.coordinator.Pending()).Msg("access token refreshed")
	return token.AccessToken, nil
}

func (r *RoundTripper) fail(ctx context.Context, cause error) error {
	if r.retainOnNetworkError && isNetworkError(cause) {
		r.logger.Warn().Err(cause).Msg("refresh failed on network, credentials retained")
		return cause
	}
	if err := r.store.Clear(ctx); err != nil {
		r.logger.Error().Err(err).Msg("failed to purge credentials")
	}
	r.logger.Warn().Err(cause).Int("waiters", r.coordinator.Pending()).Msg("refresh failed, credentials purged")
	if r.onInvalidated != nil {
		r.onInvalidated(ctx, cause)
	}
	return cause
}

func isNetworkError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
