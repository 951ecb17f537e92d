package mock

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// createJWT creates a signed JWT for userID with the given type and expiry
func (p *PortalService) createJWT(userID, tokenType string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": p.Issuer,
		"sub": userID,
		"jti": uuid.NewString(),
		"exp": now.Add(expiry).Unix(),
		"iat": now.Unix(),
		"typ": tokenType,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(p.PrivateKey)
}

// issue mints and records a new pair for userID.
func (p *PortalService) issue(userID string) (string, string, error) {
	access, err := p.createJWT(userID, "access_token", p.AccessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err := p.createJWT(userID, "refresh_token", 30*24*time.Hour)
	if err != nil {
		return "", "", err
	}
	p.accessTokens.Put(access, userID)
	p.refreshTokens.Put(refresh, userID)
	return access, refresh, nil
}

// verify checks the signature and expiry of an access token and that it is still live.
func (p *PortalService) verify(access string) (string, error) {
	parsed, err := jwt.Parse(access, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return &p.PrivateKey.PublicKey, nil
	})
	if err != nil || !parsed.Valid {
		return "", errors.New("invalid token")
	}
	userID, ok := p.accessTokens.Get(access)
	if !ok {
		return "", errors.New("token expired")
	}
	return userID, nil
}
