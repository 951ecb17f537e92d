package schema

import "encoding/json"

// Role is a portal account role.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleClient Role = "CLIENT"
)

// LoginRequest is posted to /auth/mobile/login. SelectedUserID picks one
// account when an identifier maps to several.
type LoginRequest struct {
	Identifier     string `json:"identifier"`
	Password       string `json:"password"`
	SelectedUserID string `json:"selectedUserId,omitempty"`
}

// AuthUser is the account returned on a successful login.
type AuthUser struct {
	ID    string  `json:"id"`
	Email *string `json:"email"`
	Name  *string `json:"name"`
	Role  Role    `json:"role"`
}

// AuthResponse is a direct login success.
type AuthResponse struct {
	Token        string   `json:"token"`
	RefreshToken string   `json:"refreshToken"`
	User         AuthUser `json:"user"`
}

// Account is one selectable account of a multi-account login.
type Account struct {
	ID      string  `json:"id"`
	Name    *string `json:"name"`
	LoginID *string `json:"loginId"`
	Role    Role    `json:"role"`
}

// MultiAccountResponse asks the caller to repeat the login with SelectedUserID.
type MultiAccountResponse struct {
	MultiAccount bool      `json:"multiAccount"`
	Accounts     []Account `json:"accounts"`
}

// LoginResponse holds exactly one of Auth or MultiAccount.
type LoginResponse struct {
	Auth         *AuthResponse
	MultiAccount *MultiAccountResponse
}

// IsMultiAccount reports whether an account must be selected first.
func (r *LoginResponse) IsMultiAccount() bool {
	return r.MultiAccount != nil && r.MultiAccount.MultiAccount
}

func (r *LoginResponse) UnmarshalJSON(data []byte) error {
	var probe struct {
		MultiAccount bool   `json:"multiAccount"`
		Token        string `json:"token"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if probe.MultiAccount {
		r.MultiAccount = &MultiAccountResponse{}
		return json.Unmarshal(data, r.MultiAccount)
	}
	r.Auth = &AuthResponse{}
	return json.Unmarshal(data, r.Auth)
}

func (r LoginResponse) MarshalJSON() ([]byte, error) {
	if r.MultiAccount != nil {
		return json.Marshal(r.MultiAccount)
	}
	return json.Marshal(r.Auth)
}

// LogoutRequest unregisters the device push token on logout.
type LogoutRequest struct {
	PushToken string `json:"pushToken,omitempty"`
}

// ForgotPasswordRequest starts a password reset.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ChangePasswordRequest changes the signed-in user's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// PushTokenRequest registers a device push token.
type PushTokenRequest struct {
	Token    string `json:"token"`
	Platform string `json:"platform,omitempty"`
}

// Message is the generic acknowledgement body.
type Message struct {
	Message string `json:"message,omitempty"`
	Success bool   `json:"success,omitempty"`
}
