package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/portal/client/auth/store"
	"golang.org/x/oauth2"
)

// portalStub accepts exactly one access token and issues newAccess/newRefresh
// on refresh.
type portalStub struct {
	mux          sync.Mutex
	validAccess  string
	newAccess    string
	newRefresh   string
	rejectStatus int
	alwaysReject bool
	gate         chan struct{}
	refreshCalls int32
	dataCalls    int32
	seen         []string
	refreshSeen  []string
}

func (p *portalStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/auth/mobile/refresh":
		atomic.AddInt32(&p.refreshCalls, 1)
		var body refreshRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		if p.gate != nil {
			<-p.gate
		}
		p.mux.Lock()
		defer p.mux.Unlock()
		p.refreshSeen = append(p.refreshSeen, body.RefreshToken)
		if p.rejectStatus != 0 {
			w.WriteHeader(p.rejectStatus)
			_, _ = w.Write([]byte(`{"error":"refresh token expired"}`))
			return
		}
		p.validAccess = p.newAccess
		_ = json.NewEncoder(w).Encode(refreshResponse{Token: p.newAccess, RefreshToken: p.newRefresh})
	case r.URL.Path == "/api/auth/mobile/login":
		w.WriteHeader(http.StatusUnauthorized)
	default:
		atomic.AddInt32(&p.dataCalls, 1)
		bearer := BearerToken(r.Header)
		payload, _ := io.ReadAll(r.Body)
		p.mux.Lock()
		p.seen = append(p.seen, bearer)
		valid := !p.alwaysReject && bearer != "" && bearer == p.validAccess
		p.mux.Unlock()
		if !valid {
			http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"echo":"` + string(payload) + `"}`))
	}
}

func (p *portalStub) bearers() []string {
	p.mux.Lock()
	defer p.mux.Unlock()
	return append([]string(nil), p.seen...)
}

func newTestClient(t *testing.T, stub *portalStub, credentials store.Store, options ...Option) (*http.Client, *RoundTripper, string) {
	server := httptest.NewServer(stub)
	t.Cleanup(server.Close)
	baseURL := server.URL + "/api"
	options = append([]Option{
		WithStore(credentials),
		WithRefreshURL(RefreshURL(baseURL)),
		WithLogger(zerolog.Nop()),
	}, options...)
	rt, err := New(options...)
	require.NoError(t, err)
	return &http.Client{Transport: rt}, rt, baseURL
}

func seeded(t *testing.T, access, refresh string) store.Store {
	s := store.NewMemoryStore()
	require.NoError(t, s.AddToken(context.Background(), store.NewToken(access, refresh)))
	return s
}

func TestRoundTripper_AttachesStoredToken(t *testing.T) {
	stub := &portalStub{validAccess: "A1"}
	client, _, baseURL := newTestClient(t, stub, seeded(t, "A1", "R1"))

	resp, err := client.Get(baseURL + "/user/profile")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"A1"}, stub.bearers())
	assert.EqualValues(t, 0, atomic.LoadInt32(&stub.refreshCalls))
}

func TestRoundTripper_NoTokenSendsUnauthenticated(t *testing.T) {
	stub := &portalStub{validAccess: "A1"}
	invalidations := 0
	client, _, baseURL := newTestClient(t, stub, store.NewMemoryStore(), WithInvalidationHandler(func(ctx context.Context, cause error) {
		invalidations++
	}))

	resp, err := client.Get(baseURL + "/blog")
	require.NoError(t, err)
	defer resp.Body.Close()
	// no refresh token either: refresh fails and the original 401 surfaces
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, []string{""}, stub.bearers())
	assert.EqualValues(t, 0, atomic.LoadInt32(&stub.refreshCalls))
	assert.Zero(t, invalidations, "a signed-out client has no session to invalidate")
}

func TestRoundTripper_RefreshAndReplay(t *testing.T) {
	stub := &portalStub{validAccess: "A-other", newAccess: "A2", newRefresh: "R2"}
	credentials := seeded(t, "A1", "R1")
	client, _, baseURL := newTestClient(t, stub, credentials)

	resp, err := client.Post(baseURL+"/user/appointments", "application/json", strings.NewReader("slot"))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"echo":"slot"}`, string(body), "body is replayed")
	assert.Equal(t, []string{"A1", "A2"}, stub.bearers())
	assert.Equal(t, []string{"R1"}, stub.refreshSeen)

	token, err := credentials.LookupToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "A2", token.AccessToken)
	assert.Equal(t, "R2", token.RefreshToken)
}

func TestRoundTripper_AuthRouteNeverRefreshes(t *testing.T) {
	stub := &portalStub{newAccess: "A2", newRefresh: "R2"}
	credentials := seeded(t, "A1", "R1")
	client, _, baseURL := newTestClient(t, stub, credentials)

	resp, err := client.Post(baseURL+"/auth/mobile/login", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.EqualValues(t, 0, atomic.LoadInt32(&stub.refreshCalls))
	token, _ := credentials.LookupToken(context.Background())
	assert.Equal(t, "A1", token.AccessToken)
}

func TestRoundTripper_ReplayIsBoundedToOnce(t *testing.T) {
	// refresh succeeds but the server keeps rejecting the new token
	stub := &portalStub{newAccess: "A2", newRefresh: "R2", alwaysReject: true}
	client, _, baseURL := newTestClient(t, stub, seeded(t, "A1", "R1"))

	resp, err := client.Get(baseURL + "/documents")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.EqualValues(t, 2, atomic.LoadInt32(&stub.dataCalls))
	assert.EqualValues(t, 1, atomic.LoadInt32(&stub.refreshCalls))
}

func TestRoundTripper_RefreshFailurePurgesCredentials(t *testing.T) {
	stub := &portalStub{validAccess: "A-other", rejectStatus: http.StatusUnauthorized}
	credentials := seeded(t, "A1", "R1")
	var causes []error
	client, _, baseURL := newTestClient(t, stub, credentials, WithInvalidationHandler(func(ctx context.Context, cause error) {
		causes = append(causes, cause)
	}))

	resp, err := client.Get(baseURL + "/user/profile")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), "unauthorized", "caller observes the original response")
	token, err := credentials.LookupToken(context.Background())
	require.NoError(t, err)
	assert.Nil(t, token)
	require.Len(t, causes, 1)
	assert.ErrorIs(t, causes[0], ErrRefreshRejected)
}

func TestRoundTripper_ConcurrentRequestsShareOneRefresh(t *testing.T) {
	const requests = 8
	stub := &portalStub{validAccess: "A-other", newAccess: "A2", newRefresh: "R2", gate: make(chan struct{})}
	credentials := seeded(t, "A1", "R1")
	client, rt, baseURL := newTestClient(t, stub, credentials)

	statuses := make(chan int, requests)
	var wg sync.WaitGroup
	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := client.Get(baseURL + "/folders")
			if !assert.NoError(t, err) {
				return
			}
			statuses <- resp.StatusCode
			resp.Body.Close()
		}()
	}
	assert.Eventually(t, func() bool { return rt.Coordinator().Pending() == requests-1 }, 5*time.Second, 5*time.Millisecond)
	close(stub.gate)
	wg.Wait()
	close(statuses)

	for status := range statuses {
		assert.Equal(t, http.StatusOK, status)
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&stub.refreshCalls))
	replays := 0
	for _, bearer := range stub.bearers() {
		if bearer == "A2" {
			replays++
		} else {
			assert.Equal(t, "A1", bearer)
		}
	}
	assert.Equal(t, requests, replays)
	assert.False(t, rt.Coordinator().Refreshing())
}

func TestRoundTripper_ConcurrentRequestsFailTogether(t *testing.T) {
	const requests = 5
	stub := &portalStub{validAccess: "A-other", rejectStatus: http.StatusForbidden, gate: make(chan struct{})}
	credentials := seeded(t, "A1", "R1")
	client, rt, baseURL := newTestClient(t, stub, credentials)

	statuses := make(chan int, requests)
	var wg sync.WaitGroup
	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := client.Get(baseURL + "/user/appointments")
			if !assert.NoError(t, err) {
				return
			}
			statuses <- resp.StatusCode
			resp.Body.Close()
		}()
	}
	assert.Eventually(t, func() bool { return rt.Coordinator().Pending() == requests-1 }, 5*time.Second, 5*time.Millisecond)
	close(stub.gate)
	wg.Wait()
	close(statuses)

	for status := range statuses {
		assert.Equal(t, http.StatusUnauthorized, status)
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&stub.refreshCalls))
	assert.EqualValues(t, requests, atomic.LoadInt32(&stub.dataCalls), "no request was replayed")
	token, _ := credentials.LookupToken(context.Background())
	assert.Nil(t, token)
}

type failingStore struct {
	store.Store
	failWrite bool
	failRead  bool
}

func (f *failingStore) LookupToken(ctx context.Context) (*oauth2.Token, error) {
	if f.failRead {
		return nil, &store.StorageError{Op: "read", Err: errors.New("keychain locked")}
	}
	return f.Store.LookupToken(ctx)
}

func (f *failingStore) AddToken(ctx context.Context, token *oauth2.Token) error {
	if f.failWrite {
		return &store.StorageError{Op: "write", Err: errors.New("keychain locked")}
	}
	return f.Store.AddToken(ctx, token)
}

func TestRoundTripper_StorageFailureOnRefreshIsPropagated(t *testing.T) {
	stub := &portalStub{validAccess: "A-other", newAccess: "A2", newRefresh: "R2"}
	credentials := &failingStore{Store: seeded(t, "A1", "R1"), failWrite: true}
	client, _, baseURL := newTestClient(t, stub, credentials)

	_, err := client.Get(baseURL + "/user/profile")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrStorage)
}

func TestDecorateRequest_ReadFailureDegrades(t *testing.T) {
	credentials := &failingStore{Store: store.NewMemoryStore(), failRead: true}
	req := httptest.NewRequest(http.MethodGet, "http://portal/api/documents", nil)
	out := DecorateRequest(context.Background(), req, credentials, zerolog.Nop())
	assert.Empty(t, out.Header.Get("Authorization"))

	req = httptest.NewRequest(http.MethodGet, "http://portal/api/documents", nil)
	out = DecorateRequest(context.Background(), req, seeded(t, "A9", "R9"), zerolog.Nop())
	assert.Equal(t, "Bearer A9", out.Header.Get("Authorization"))
}

type networkFailure struct{}

func (networkFailure) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	return nil, &timeoutError{}
}

type timeoutError struct{}

func (*timeoutError) Error() string   { return "i/o timeout" }
func (*timeoutError) Timeout() bool   { return true }
func (*timeoutError) Temporary() bool { return true }

func TestRoundTripper_NetworkFailure(t *testing.T) {
	t.Run("purges by default", func(t *testing.T) {
		stub := &portalStub{validAccess: "A-other"}
		credentials := seeded(t, "A1", "R1")
		client, _, baseURL := newTestClient(t, stub, credentials, WithRefresher(networkFailure{}))
		resp, err := client.Get(baseURL + "/folders")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		token, _ := credentials.LookupToken(context.Background())
		assert.Nil(t, token)
	})
	t.Run("retains when configured", func(t *testing.T) {
		stub := &portalStub{validAccess: "A-other"}
		credentials := seeded(t, "A1", "R1")
		client, _, baseURL := newTestClient(t, stub, credentials, WithRefresher(networkFailure{}), WithRetainOnNetworkError(true))
		resp, err := client.Get(baseURL + "/folders")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		token, _ := credentials.LookupToken(context.Background())
		require.NotNil(t, token)
		assert.Equal(t, "R1", token.RefreshToken)
	})
}

// brokenBody yields data and then fails.
type brokenBody struct {
	data []byte
	err  error
}

func (b *brokenBody) Read(p []byte) (int, error) {
	if len(b.data) == 0 {
		return 0, b.err
	}
	n := copy(p, b.data)
	b.data = b.data[n:]
	return n, nil
}

func TestRoundTripper_BodyReadFailure(t *testing.T) {
	stub := &portalStub{validAccess: "A1"}
	client, _, baseURL := newTestClient(t, stub, seeded(t, "A1", "R1"))
	diskErr := errors.New("disk read failed")

	req, err := http.NewRequest(http.MethodPost, baseURL+"/user/appointments", &brokenBody{data: []byte("partial"), err: diskErr})
	require.NoError(t, err)
	resp, err := client.Do(req)
	if resp != nil {
		resp.Body.Close()
	}
	require.Error(t, err)
	assert.ErrorIs(t, err, diskErr)
	assert.EqualValues(t, 0, atomic.LoadInt32(&stub.dataCalls), "a truncated body is never sent")
}

func TestRoundTripper_StoredAccessWithoutRefreshInvalidates(t *testing.T) {
	stub := &portalStub{validAccess: "A-other"}
	var causes []error
	client, _, baseURL := newTestClient(t, stub, &accessOnlyStore{Store: store.NewMemoryStore()}, WithInvalidationHandler(func(ctx context.Context, cause error) {
		causes = append(causes, cause)
	}))

	resp, err := client.Get(baseURL + "/user/profile")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Len(t, causes, 1)
	assert.ErrorIs(t, causes[0], ErrNoRefreshToken)
}

// accessOnlyStore holds an access token without its refresh token until cleared.
type accessOnlyStore struct {
	store.Store
	cleared bool
}

func (a *accessOnlyStore) LookupToken(ctx context.Context) (*oauth2.Token, error) {
	if a.cleared {
		return nil, nil
	}
	return &oauth2.Token{AccessToken: "A1"}, nil
}

func (a *accessOnlyStore) Clear(ctx context.Context) error {
	a.cleared = true
	return nil
}

func TestNew_RequiresRefreshEndpoint(t *testing.T) {
	_, err := New()
	assert.Error(t, err)
}
