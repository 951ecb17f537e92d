package store

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

const (
	// AccessTokenKey names the persisted access token.
	AccessTokenKey = "hmc_access_token"
	// RefreshTokenKey names the persisted refresh token.
	RefreshTokenKey = "hmc_refresh_token"
)

// Store is a pluggable persistence layer for the credential pair.
// Implementations must be safe for concurrent use and must never expose a
// half-written pair to readers in the same process.
type Store interface {
	// LookupToken returns the stored pair or nil when no credentials are stored.
	LookupToken(ctx context.Context) (*oauth2.Token, error)
	// AddToken persists access and refresh token together.
	AddToken(ctx context.Context, token *oauth2.Token) error
	// Clear removes both tokens; clearing an empty store succeeds.
	Clear(ctx context.Context) error
}

// AccessToken returns the stored access token; absent is not an error.
func AccessToken(ctx context.Context, s Store) (string, bool, error) {
	token, err := s.LookupToken(ctx)
	if err != nil || token == nil || token.AccessToken == "" {
		return "", false, err
	}
	return token.AccessToken, true, nil
}

// RefreshToken returns the stored refresh token; absent is not an error.
func RefreshToken(ctx context.Context, s Store) (string, bool, error) {
	token, err := s.LookupToken(ctx)
	if err != nil || token == nil || token.RefreshToken == "" {
		return "", false, err
	}
	return token.RefreshToken, true, nil
}

// NewToken builds a credential pair; the expiry is taken from the access token
// "exp" claim when the access token is a JWT.
func NewToken(accessToken, refreshToken string) *oauth2.Token {
	return &oauth2.Token{
		TokenType:    "Bearer",
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Expiry:       Expiry(accessToken),
	}
}

// Expiry decodes the "exp" claim without verifying the signature; the server
// stays the authority on validity. Opaque tokens yield a zero time.
func Expiry(accessToken string) time.Time {
	if strings.Count(accessToken, ".") != 2 {
		return time.Time{}
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

func validate(token *oauth2.Token) error {
	if token == nil || token.AccessToken == "" || token.RefreshToken == "" {
		return ErrIncompleteToken
	}
	return nil
}

func copyToken(token *oauth2.Token) *oauth2.Token {
	if token == nil {
		return nil
	}
	ret := *token
	return &ret
}
