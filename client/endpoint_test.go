package client_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/portal/client"
	"github.com/viant/portal/schema"
)

func TestClient_EndpointMapping(t *testing.T) {
	var method, target, contentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, target, contentType = r.Method, r.RequestURI, r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()
	cli := client.New(server.URL+"/api", client.WithLogger(zerolog.Nop()))

	var testCases = []struct {
		description string
		call        func(ctx context.Context) error
		method      string
		target      string
	}{
		{description: "login", method: http.MethodPost, target: "/api/auth/mobile/login", call: func(ctx context.Context) error {
			_, err := cli.Login(ctx, "client", "secret", "")
			return err
		}},
		{description: "logout", method: http.MethodPost, target: "/api/auth/mobile/logout", call: func(ctx context.Context) error {
			return cli.Logout(ctx, "push")
		}},
		{description: "forgot password", method: http.MethodPost, target: "/api/auth/forgot-password", call: func(ctx context.Context) error {
			_, err := cli.ForgotPassword(ctx, "a@example.com")
			return err
		}},
		{description: "profile", method: http.MethodGet, target: "/api/user/profile", call: func(ctx context.Context) error {
			_, err := cli.Profile(ctx)
			return err
		}},
		{description: "change password", method: http.MethodPost, target: "/api/user/change-password", call: func(ctx context.Context) error {
			return cli.ChangePassword(ctx, "old", "new")
		}},
		{description: "push token", method: http.MethodPost, target: "/api/user/push-token", call: func(ctx context.Context) error {
			return cli.RegisterPushToken(ctx, "token", "ios")
		}},
		{description: "appointments", method: http.MethodGet, target: "/api/user/appointments", call: func(ctx context.Context) error {
			_, err := cli.Appointments(ctx)
			return err
		}},
		{description: "book appointment", method: http.MethodPost, target: "/api/user/appointments", call: func(ctx context.Context) error {
			_, err := cli.BookAppointment(ctx, &schema.BookAppointmentRequest{Service: "Audit", Date: "2026-11-02"})
			return err
		}},
		{description: "documents", method: http.MethodGet, target: "/api/documents", call: func(ctx context.Context) error {
			_, err := cli.Documents(ctx, nil)
			return err
		}},
		{description: "documents in folder", method: http.MethodGet, target: "/api/documents?folderId=f-1&userId=u-7", call: func(ctx context.Context) error {
			_, err := cli.Documents(ctx, &client.DocumentQuery{UserID: "u-7", FolderID: "f-1"})
			return err
		}},
		{description: "folders", method: http.MethodGet, target: "/api/folders", call: func(ctx context.Context) error {
			_, err := cli.Folders(ctx, nil)
			return err
		}},
		{description: "subfolders", method: http.MethodGet, target: "/api/folders?parentId=f-1&userId=u-7", call: func(ctx context.Context) error {
			_, err := cli.Folders(ctx, &client.FolderQuery{ParentID: "f-1", UserID: "u-7"})
			return err
		}},
		{description: "download", method: http.MethodGet, target: "/api/documents/d%2F1/download", call: func(ctx context.Context) error {
			body, err := cli.DownloadDocument(ctx, "d/1")
			if err == nil {
				body.Close()
			}
			return err
		}},
		{description: "stats", method: http.MethodGet, target: "/api/admin/stats", call: func(ctx context.Context) error {
			_, err := cli.Stats(ctx)
			return err
		}},
		{description: "users", method: http.MethodGet, target: "/api/admin/users", call: func(ctx context.Context) error {
			_, err := cli.Users(ctx)
			return err
		}},
		{description: "user escaped", method: http.MethodGet, target: "/api/admin/users/a%2Fb%20c", call: func(ctx context.Context) error {
			_, err := cli.User(ctx, "a/b c")
			return err
		}},
		{description: "create user", method: http.MethodPost, target: "/api/admin/users", call: func(ctx context.Context) error {
			_, err := cli.CreateUser(ctx, &schema.UserInput{})
			return err
		}},
		{description: "update user", method: http.MethodPatch, target: "/api/admin/users/u-1", call: func(ctx context.Context) error {
			_, err := cli.UpdateUser(ctx, "u-1", &schema.UserInput{})
			return err
		}},
		{description: "admin appointments", method: http.MethodGet, target: "/api/admin/appointments", call: func(ctx context.Context) error {
			_, err := cli.AdminAppointments(ctx)
			return err
		}},
		{description: "admin appointment", method: http.MethodGet, target: "/api/admin/appointments/a-1", call: func(ctx context.Context) error {
			_, err := cli.AdminAppointment(ctx, "a-1")
			return err
		}},
		{description: "update appointment", method: http.MethodPatch, target: "/api/admin/appointments/a-1", call: func(ctx context.Context) error {
			_, err := cli.UpdateAppointment(ctx, "a-1", &schema.AppointmentUpdate{})
			return err
		}},
		{description: "contacts", method: http.MethodGet, target: "/api/admin/contacts", call: func(ctx context.Context) error {
			_, err := cli.Contacts(ctx)
			return err
		}},
		{description: "contact", method: http.MethodGet, target: "/api/admin/contacts/c-1", call: func(ctx context.Context) error {
			_, err := cli.Contact(ctx, "c-1")
			return err
		}},
		{description: "update contact", method: http.MethodPatch, target: "/api/admin/contacts/c-1", call: func(ctx context.Context) error {
			_, err := cli.UpdateContact(ctx, "c-1", &schema.ContactUpdate{})
			return err
		}},
		{description: "leads", method: http.MethodGet, target: "/api/admin/leads", call: func(ctx context.Context) error {
			_, err := cli.Leads(ctx)
			return err
		}},
		{description: "blog posts", method: http.MethodGet, target: "/api/admin/blog", call: func(ctx context.Context) error {
			_, err := cli.BlogPosts(ctx)
			return err
		}},
		{description: "blog post", method: http.MethodGet, target: "/api/admin/blog/b-1", call: func(ctx context.Context) error {
			_, err := cli.BlogPost(ctx, "b-1")
			return err
		}},
		{description: "create blog post", method: http.MethodPost, target: "/api/admin/blog", call: func(ctx context.Context) error {
			_, err := cli.CreateBlogPost(ctx, &schema.BlogPost{})
			return err
		}},
		{description: "update blog post", method: http.MethodPut, target: "/api/admin/blog/b-1", call: func(ctx context.Context) error {
			_, err := cli.UpdateBlogPost(ctx, "b-1", &schema.BlogPost{})
			return err
		}},
		{description: "tools", method: http.MethodGet, target: "/api/admin/tools", call: func(ctx context.Context) error {
			_, err := cli.Tools(ctx)
			return err
		}},
		{description: "tool", method: http.MethodGet, target: "/api/admin/tools/t-1", call: func(ctx context.Context) error {
			_, err := cli.Tool(ctx, "t-1")
			return err
		}},
		{description: "create tool", method: http.MethodPost, target: "/api/admin/tools", call: func(ctx context.Context) error {
			_, err := cli.CreateTool(ctx, &schema.Tool{})
			return err
		}},
		{description: "update tool", method: http.MethodPut, target: "/api/admin/tools/t-1", call: func(ctx context.Context) error {
			_, err := cli.UpdateTool(ctx, "t-1", &schema.Tool{})
			return err
		}},
		{description: "downloads", method: http.MethodGet, target: "/api/admin/downloads", call: func(ctx context.Context) error {
			_, err := cli.Downloads(ctx)
			return err
		}},
		{description: "download record", method: http.MethodGet, target: "/api/admin/downloads/w-1", call: func(ctx context.Context) error {
			_, err := cli.Download(ctx, "w-1")
			return err
		}},
		{description: "create download", method: http.MethodPost, target: "/api/admin/downloads", call: func(ctx context.Context) error {
			_, err := cli.CreateDownload(ctx, &schema.Download{})
			return err
		}},
		{description: "update download", method: http.MethodPatch, target: "/api/admin/downloads/w-1", call: func(ctx context.Context) error {
			_, err := cli.UpdateDownload(ctx, "w-1", &schema.Download{})
			return err
		}},
		{description: "smtp settings", method: http.MethodGet, target: "/api/admin/settings/smtp", call: func(ctx context.Context) error {
			_, err := cli.SMTPSettings(ctx)
			return err
		}},
		{description: "save smtp settings", method: http.MethodPost, target: "/api/admin/settings/smtp", call: func(ctx context.Context) error {
			return cli.SaveSMTPSettings(ctx, &schema.SMTPSettings{})
		}},
		{description: "social settings", method: http.MethodGet, target: "/api/admin/settings/social", call: func(ctx context.Context) error {
			_, err := cli.SocialSettings(ctx)
			return err
		}},
		{description: "save social settings", method: http.MethodPost, target: "/api/admin/settings/social", call: func(ctx context.Context) error {
			return cli.SaveSocialSettings(ctx, &schema.SocialSettings{})
		}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			method, target = "", ""
			require.NoError(t, testCase.call(context.Background()))
			assert.Equal(t, testCase.method, method)
			assert.Equal(t, testCase.target, target)
		})
	}

	t.Run("upload is multipart", func(t *testing.T) {
		_, err := cli.UploadDocument(context.Background(), &client.DocumentUpload{UserID: "u-7", FileName: "a.pdf", Content: strings.NewReader("pdf")})
		require.NoError(t, err)
		assert.Equal(t, http.MethodPost, method)
		assert.Equal(t, "/api/documents", target)
		assert.True(t, strings.HasPrefix(contentType, "multipart/form-data; boundary="), contentType)
	})
}

func TestClient_DocumentUploadSurvivesRefresh(t *testing.T) {
	service, cli, credentials := newPortal(t)
	ctx := context.Background()
	signIn(t, cli, credentials)
	content := bytes.Repeat([]byte("GSTR-3B return line\n"), 4096)

	service.ExpireAccessTokens()
	document, err := cli.UploadDocument(ctx, &client.DocumentUpload{
		UserID:   "u-client",
		Title:    "GST return",
		Folder:   "FY 2025-26",
		FileName: "gstr3b.txt",
		Content:  bytes.NewReader(content),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, service.RefreshCalls(), "the multipart body is replayed after the refresh")
	assert.Equal(t, "GST return", document.Title)
	assert.EqualValues(t, len(content), document.FileSize)
	require.NotNil(t, document.FolderID)

	folders, err := cli.Folders(ctx, nil)
	require.NoError(t, err)
	require.Len(t, folders, 1)
	assert.Equal(t, "FY 2025-26", folders[0].Name)
	children, err := cli.Folders(ctx, &client.FolderQuery{ParentID: folders[0].ID})
	require.NoError(t, err)
	assert.Empty(t, children)

	documents, err := cli.Documents(ctx, &client.DocumentQuery{FolderID: *document.FolderID})
	require.NoError(t, err)
	require.Len(t, documents, 1)
	assert.Equal(t, document.ID, documents[0].ID)
	documents, err = cli.Documents(ctx, &client.DocumentQuery{FolderID: "elsewhere"})
	require.NoError(t, err)
	assert.Empty(t, documents)

	service.ExpireAccessTokens()
	body, err := cli.DownloadDocument(ctx, document.ID)
	require.NoError(t, err)
	downloaded, err := io.ReadAll(body)
	require.NoError(t, body.Close())
	require.NoError(t, err)
	assert.Equal(t, content, downloaded)
	assert.Equal(t, 2, service.RefreshCalls())

	_, err = cli.DownloadDocument(ctx, "missing")
	assert.Equal(t, http.StatusNotFound, client.StatusCode(err))
}

func TestClient_UploadRequiresContent(t *testing.T) {
	cli := client.New("http://127.0.0.1:1/api", client.WithLogger(zerolog.Nop()))
	_, err := cli.UploadDocument(context.Background(), &client.DocumentUpload{FileName: "a.pdf"})
	assert.Error(t, err)
}
