package client

import (
	"context"
	"net/http"

	"github.com/viant/portal/schema"
)

// Login authenticates with a login id, email or phone. The response is either
// a direct AuthResponse or a MultiAccountResponse requiring selectedUserID.
// Tokens are not persisted here; see the session package.
func (c *Client) Login(ctx context.Context, identifier, password, selectedUserID string) (*schema.LoginResponse, error) {
	return send[schema.LoginResponse](ctx, c, http.MethodPost, "/auth/mobile/login", &schema.LoginRequest{
		Identifier:     identifier,
		Password:       password,
		SelectedUserID: selectedUserID,
	})
}

// Logout revokes the session server side and unregisters pushToken if given.
func (c *Client) Logout(ctx context.Context, pushToken string) error {
	return c.Do(ctx, http.MethodPost, "/auth/mobile/logout", &schema.LogoutRequest{PushToken: pushToken}, nil)
}

func (c *Client) ForgotPassword(ctx context.Context, email string) (*schema.Message, error) {
	return send[schema.Message](ctx, c, http.MethodPost, "/auth/forgot-password", &schema.ForgotPasswordRequest{Email: email})
}
