package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/viant/portal/schema"
)

func adminPath(resource, id string) string {
	return "/admin/" + resource + "/" + url.PathEscape(id)
}

func (c *Client) Stats(ctx context.Context) (*schema.DashboardStats, error) {
	return get[schema.DashboardStats](ctx, c, "/admin/stats")
}

func (c *Client) Users(ctx context.Context) ([]schema.User, error) {
	return list[schema.User](ctx, c, "/admin/users")
}

func (c *Client) User(ctx context.Context, id string) (*schema.User, error) {
	return get[schema.User](ctx, c, adminPath("users", id))
}

func (c *Client) CreateUser(ctx context.Context, input *schema.UserInput) (*schema.User, error) {
	return send[schema.User](ctx, c, http.MethodPost, "/admin/users", input)
}

func (c *Client) UpdateUser(ctx context.Context, id string, input *schema.UserInput) (*schema.User, error) {
	return send[schema.User](ctx, c, http.MethodPatch, adminPath("users", id), input)
}

func (c *Client) AdminAppointments(ctx context.Context) ([]schema.Appointment, error) {
	return list[schema.Appointment](ctx, c, "/admin/appointments")
}

func (c *Client) AdminAppointment(ctx context.Context, id string) (*schema.Appointment, error) {
	return get[schema.Appointment](ctx, c, adminPath("appointments", id))
}

func (c *Client) UpdateAppointment(ctx context.Context, id string, update *schema.AppointmentUpdate) (*schema.Appointment, error) {
	return send[schema.Appointment](ctx, c, http.MethodPatch, adminPath("appointments", id), update)
}

func (c *Client) Contacts(ctx context.Context) ([]schema.ContactSubmission, error) {
	return list[schema.ContactSubmission](ctx, c, "/admin/contacts")
}

func (c *Client) Contact(ctx context.Context, id string) (*schema.ContactSubmission, error) {
	return get[schema.ContactSubmission](ctx, c, adminPath("contacts", id))
}

func (c *Client) UpdateContact(ctx context.Context, id string, update *schema.ContactUpdate) (*schema.ContactSubmission, error) {
	return send[schema.ContactSubmission](ctx, c, http.MethodPatch, adminPath("contacts", id), update)
}

func (c *Client) Leads(ctx context.Context) ([]schema.DownloadLead, error) {
	return list[schema.DownloadLead](ctx, c, "/admin/leads")
}

func (c *Client) BlogPosts(ctx context.Context) ([]schema.BlogPost, error) {
	return list[schema.BlogPost](ctx, c, "/admin/blog")
}

func (c *Client) BlogPost(ctx context.Context, id string) (*schema.BlogPost, error) {
	return get[schema.BlogPost](ctx, c, adminPath("blog", id))
}

func (c *Client) CreateBlogPost(ctx context.Context, post *schema.BlogPost) (*schema.BlogPost, error) {
	return send[schema.BlogPost](ctx, c, http.MethodPost, "/admin/blog", post)
}

func (c *Client) UpdateBlogPost(ctx context.Context, id string, post *schema.BlogPost) (*schema.BlogPost, error) {
	return send[schema.BlogPost](ctx, c, http.MethodPut, adminPath("blog", id), post)
}

func (c *Client) Tools(ctx context.Context) ([]schema.Tool, error) {
	return list[schema.Tool](ctx, c, "/admin/tools")
}

func (c *Client) Tool(ctx context.Context, id string) (*schema.Tool, error) {
	return get[schema.Tool](ctx, c, adminPath("tools", id))
}

func (c *Client) CreateTool(ctx context.Context, tool *schema.Tool) (*schema.Tool, error) {
	return send[schema.Tool](ctx, c, http.MethodPost, "/admin/tools", tool)
}

func (c *Client) UpdateTool(ctx context.Context, id string, tool *schema.Tool) (*schema.Tool, error) {
	return send[schema.Tool](ctx, c, http.MethodPut, adminPath("tools", id), tool)
}

func (c *Client) Downloads(ctx context.Context) ([]schema.Download, error) {
	return list[schema.Download](ctx, c, "/admin/downloads")
}

func (c *Client) Download(ctx context.Context, id string) (*schema.Download, error) {
	return get[schema.Download](ctx, c, adminPath("downloads", id))
}

func (c *Client) CreateDownload(ctx context.Context, download *schema.Download) (*schema.Download, error) {
	return send[schema.Download](ctx, c, http.MethodPost, "/admin/downloads", download)
}

func (c *Client) UpdateDownload(ctx context.Context, id string, download *schema.Download) (*schema.Download, error) {
	return send[schema.Download](ctx, c, http.MethodPatch, adminPath("downloads", id), download)
}

func (c *Client) SMTPSettings(ctx context.Context) (*schema.SMTPSettings, error) {
	return get[schema.SMTPSettings](ctx, c, "/admin/settings/smtp")
}

func (c *Client) SaveSMTPSettings(ctx context.Context, settings *schema.SMTPSettings) error {
	return c.Do(ctx, http.MethodPost, "/admin/settings/smtp", settings, nil)
}

func (c *Client) SocialSettings(ctx context.Context) (*schema.SocialSettings, error) {
	return get[schema.SocialSettings](ctx, c, "/admin/settings/social")
}

func (c *Client) SaveSocialSettings(ctx context.Context, settings *schema.SocialSettings) error {
	return c.Do(ctx, http.MethodPost, "/admin/settings/social", settings, nil)
}
