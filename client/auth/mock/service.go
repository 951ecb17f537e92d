package mock

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"time"

	"github.com/viant/portal/internal/collection"
	"github.com/viant/portal/schema"
)

// PortalService is the mock portal backend.
type PortalService struct {
	PrivateKey *rsa.PrivateKey
	Issuer     string
	AccessTTL  time.Duration
	// Credentials maps identifier -> password.
	Credentials map[string]string
	// Accounts maps identifier -> accounts; more than one triggers the multi-account answer.
	Accounts map[string][]schema.User

	// RefreshGate, when set, holds every refresh call until it is closed.
	RefreshGate chan struct{}

	mux           sync.Mutex
	rejectRefresh bool
	accessTokens  *collection.SyncMap[string, string] // access token -> user id
	refreshTokens *collection.SyncMap[string, string] // refresh token -> user id
	users         map[string]schema.User
	appointments  []schema.Appointment
	tools         map[string]schema.Tool
	documents     map[string]*storedDocument
	folders       []*schema.DocumentFolder

	refreshCalls  int32
	logoutCalls   int32
	resourceCalls int32
}

// New creates a service with one client account (identifier "client", password "secret")
// and one admin account (identifier "admin", password "secret").
func New() (*PortalService, error) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, err
	}
	ret := &PortalService{
		PrivateKey:    key,
		Issuer:        "portal-mock",
		AccessTTL:     15 * time.Minute,
		Credentials:   map[string]string{},
		Accounts:      map[string][]schema.User{},
		accessTokens:  collection.NewSyncMap[string, string](),
		refreshTokens: collection.NewSyncMap[string, string](),
		users:         map[string]schema.User{},
		tools:         map[string]schema.Tool{},
		documents:     map[string]*storedDocument{},
	}
	ret.AddUser("client", "secret", newUser("u-client", "Client One", schema.RoleClient))
	ret.AddUser("admin", "secret", newUser("u-admin", "Admin", schema.RoleAdmin))
	return ret, nil
}

// NewHTTPTestServer starts the service on a local listener; the API root is URL + "/api".
func NewHTTPTestServer() (*PortalService, *httptest.Server, error) {
	service, err := New()
	if err != nil {
		return nil, nil, err
	}
	server := httptest.NewServer(service.Router())
	return service, server, nil
}

func newUser(id, name string, role schema.Role) schema.User {
	email := id + "@example.com"
	return schema.User{ID: id, Name: &name, Email: &email, Role: role, IsActive: true, CreatedAt: time.Now().UTC()}
}

// AddUser registers an account under identifier.
func (p *PortalService) AddUser(identifier, password string, user schema.User) {
	p.mux.Lock()
	defer p.mux.Unlock()
	p.Credentials[identifier] = password
	p.Accounts[identifier] = append(p.Accounts[identifier], user)
	p.users[user.ID] = user
}

// AddTool registers a tool served by the admin tool endpoints.
func (p *PortalService) AddTool(tool schema.Tool) {
	p.mux.Lock()
	defer p.mux.Unlock()
	p.tools[tool.ID] = tool
}

// ExpireAccessTokens invalidates every issued access token; refresh tokens stay valid.
func (p *PortalService) ExpireAccessTokens() {
	p.accessTokens.Reset()
}

// RevokeRefreshTokens invalidates every issued refresh token.
func (p *PortalService) RevokeRefreshTokens() {
	p.refreshTokens.Reset()
}

// RejectRefresh makes the refresh endpoint answer 401.
func (p *PortalService) RejectRefresh(reject bool) {
	p.mux.Lock()
	defer p.mux.Unlock()
	p.rejectRefresh = reject
}

func (p *PortalService) RefreshCalls() int  { return int(atomic.LoadInt32(&p.refreshCalls)) }
func (p *PortalService) LogoutCalls() int   { return int(atomic.LoadInt32(&p.logoutCalls)) }
func (p *PortalService) ResourceCalls() int { return int(atomic.LoadInt32(&p.resourceCalls)) }
