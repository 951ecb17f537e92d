package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/viant/portal/schema"
)

// DocumentQuery filters Documents; empty fields are not sent.
type DocumentQuery struct {
	// UserID lists another user's documents (admin only).
	UserID   string
	FolderID string
}

// FolderQuery filters Folders; empty fields are not sent.
type FolderQuery struct {
	UserID   string
	ParentID string
}

// DocumentUpload is a file posted to /documents on behalf of UserID.
type DocumentUpload struct {
	UserID   string
	Title    string
	Folder   string
	FileName string
	Content  io.Reader
}

func withQuery(path string, values url.Values) string {
	if encoded := values.Encode(); encoded != "" {
		return path + "?" + encoded
	}
	return path
}

func setIf(values url.Values, key, value string) {
	if value != "" {
		values.Set(key, value)
	}
}

// Documents lists the caller's documents, optionally narrowed by query.
func (c *Client) Documents(ctx context.Context, query *DocumentQuery) ([]schema.Document, error) {
	values := url.Values{}
	if query != nil {
		setIf(values, "userId", query.UserID)
		setIf(values, "folderId", query.FolderID)
	}
	return list[schema.Document](ctx, c, withQuery("/documents", values))
}

// Folders lists folders, optionally the children of query.ParentID.
func (c *Client) Folders(ctx context.Context, query *FolderQuery) ([]schema.DocumentFolder, error) {
	values := url.Values{}
	if query != nil {
		setIf(values, "parentId", query.ParentID)
		setIf(values, "userId", query.UserID)
	}
	return list[schema.DocumentFolder](ctx, c, withQuery("/folders", values))
}

// UploadDocument posts upload as multipart/form-data. The form is buffered so
// the call can be replayed after a token refresh.
func (c *Client) UploadDocument(ctx context.Context, upload *DocumentUpload) (*schema.Document, error) {
	if upload == nil || upload.Content == nil {
		return nil, fmt.Errorf("upload content was empty")
	}
	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	fields := [][2]string{{"userId", upload.UserID}, {"title", upload.Title}, {"folder", upload.Folder}}
	for _, field := range fields {
		if field[1] == "" {
			continue
		}
		if err := form.WriteField(field[0], field[1]); err != nil {
			return nil, err
		}
	}
	part, err := form.CreateFormFile("file", upload.FileName)
	if err != nil {
		return nil, err
	}
	if _, err = io.Copy(part, upload.Content); err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", upload.FileName, err)
	}
	if err = form.Close(); err != nil {
		return nil, err
	}
	resp, err := c.send(ctx, http.MethodPost, "/documents", body, form.FormDataContentType())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	ret := &schema.Document{}
	if err = decode(resp, http.MethodPost, "/documents", ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// DownloadDocument streams the document content; the caller closes it.
func (c *Client) DownloadDocument(ctx context.Context, id string) (io.ReadCloser, error) {
	resp, err := c.send(ctx, http.MethodGet, "/documents/"+url.PathEscape(id)+"/download", nil, "")
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}
