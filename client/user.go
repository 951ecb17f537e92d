package client

import (
	"context"
	"net/http"

	"github.com/viant/portal/schema"
)

func (c *Client) Profile(ctx context.Context) (*schema.UserProfile, error) {
	return get[schema.UserProfile](ctx, c, "/user/profile")
}

func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	return c.Do(ctx, http.MethodPost, "/user/change-password", &schema.ChangePasswordRequest{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
	}, nil)
}

func (c *Client) RegisterPushToken(ctx context.Context, token, platform string) error {
	return c.Do(ctx, http.MethodPost, "/user/push-token", &schema.PushTokenRequest{Token: token, Platform: platform}, nil)
}

func (c *Client) Appointments(ctx context.Context) ([]schema.Appointment, error) {
	return list[schema.Appointment](ctx, c, "/user/appointments")
}

func (c *Client) BookAppointment(ctx context.Context, request *schema.BookAppointmentRequest) (*schema.Appointment, error) {
	return send[schema.Appointment](ctx, c, http.MethodPost, "/user/appointments", request)
}
