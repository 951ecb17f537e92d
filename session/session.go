package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/viant/portal/client"
	"github.com/viant/portal/client/auth/store"
	"github.com/viant/portal/schema"
)

// Session holds the signed-in user.
type Session struct {
	client     *client.Client
	store      store.Store
	publisher  message.Publisher
	subscriber message.Subscriber
	closer     func() error
	logger     zerolog.Logger

	mux  sync.RWMutex
	user *schema.AuthUser
}

// New creates a signed-out session; events go to an in-process gochannel pub/sub
// unless WithPubSub is given.
func New(cli *client.Client, credentials store.Store, options ...Option) *Session {
	ret := &Session{
		client: cli,
		store:  credentials,
		logger: log.With().Str("component", "session").Logger(),
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.publisher == nil && ret.subscriber == nil {
		pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 16}, newWatermillLogger(ret.logger))
		ret.publisher, ret.subscriber, ret.closer = pubSub, pubSub, pubSub.Close
	}
	return ret
}

// User returns the signed-in user or nil.
func (s *Session) User() *schema.AuthUser {
	s.mux.RLock()
	defer s.mux.RUnlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// Authenticated reports whether a user is signed in.
func (s *Session) Authenticated() bool {
	return s.User() != nil
}

func (s *Session) setUser(user *schema.AuthUser) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.user = user
}

// Login signs in. For a multi-account identifier the response lists the accounts
// and nothing is stored; call Login again with the chosen selectedUserID.
func (s *Session) Login(ctx context.Context, identifier, password, selectedUserID string) (*schema.LoginResponse, error) {
	response, err := s.client.Login(ctx, identifier, password, selectedUserID)
	if err != nil {
		return nil, err
	}
	if response.IsMultiAccount() || response.Auth == nil {
		return response, nil
	}
	auth := response.Auth
	if err = s.store.AddToken(ctx, store.NewToken(auth.Token, auth.RefreshToken)); err != nil {
		return nil, fmt.Errorf("failed to persist credentials: %w", err)
	}
	s.setUser(&auth.User)
	s.logger.Info().Str("user_id", auth.User.ID).Str("role", string(auth.User.Role)).Msg("signed in")
	s.publish(Event{Type: SignedIn, UserID: auth.User.ID})
	return response, nil
}

// Logout notifies the portal (errors are ignored) and always clears local state.
func (s *Session) Logout(ctx context.Context, pushToken string) error {
	if err := s.client.Logout(ctx, pushToken); err != nil {
		s.logger.Debug().Err(err).Msg("remote logout failed")
	}
	userID := s.userID()
	s.setUser(nil)
	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	s.publish(Event{Type: SignedOut, UserID: userID})
	return nil
}

// Restore rebuilds the session from stored credentials by loading the profile.
// Without stored tokens it returns without a network call. A failed profile
// load clears the credentials and leaves the session signed out; only storage
// failures are returned.
func (s *Session) Restore(ctx context.Context) error {
	token, err := s.store.LookupToken(ctx)
	if err != nil {
		return err
	}
	if token == nil {
		s.setUser(nil)
		return nil
	}
	profile, err := s.client.Profile(ctx)
	if err != nil {
		if errors.Is(err, store.ErrStorage) {
			return err
		}
		s.logger.Info().Err(err).Msg("stored session is no longer valid")
		s.setUser(nil)
		return s.store.Clear(ctx)
	}
	user := &schema.AuthUser{ID: profile.ID, Email: profile.Email, Name: profile.Name, Role: profile.Role}
	s.setUser(user)
	s.publish(Event{Type: SignedIn, UserID: user.ID})
	return nil
}

// Invalidate drops the signed-in user after the transport purged credentials.
// It matches transport.InvalidationHandler.
func (s *Session) Invalidate(_ context.Context, cause error) {
	userID := s.userID()
	s.setUser(nil)
	reason := ""
	if cause != nil {
		reason = cause.Error()
	}
	s.logger.Warn().Str("user_id", userID).Str("reason", reason).Msg("session invalidated")
	s.publish(Event{Type: Invalidated, UserID: userID, Reason: reason})
}

// Close releases the default pub/sub.
func (s *Session) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

func (s *Session) userID() string {
	if user := s.User(); user != nil {
		return user.ID
	}
	return ""
}

// Client returns the portal client the session signs in with.
func (s *Session) Client() *client.Client {
	return s.client
}
