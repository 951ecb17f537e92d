package transport

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	authorizationHeader = "Authorization"
	bearerPrefix        = "Bearer "
)

// clone copies r and buffers its body so both can be sent. A body read
// failure is returned and r must not be sent.
func clone(r *http.Request) (*http.Request, error) {
	cloned := r.Clone(r.Context())
	// deep-copy body for replay
	if r.Body != nil && r.Body != http.NoBody {
		buf, err := io.ReadAll(r.Body)
		_ = r.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read request body: %w", err)
		}
		r.Body = io.NopCloser(bytes.NewReader(buf))
		cloned.Body = io.NopCloser(bytes.NewReader(buf))
	}
	return cloned, nil
}

func setBearer(req *http.Request, token string) {
	req.Header.Set(authorizationHeader, bearerPrefix+token)
}

// BearerToken extracts the token of an `Authorization: Bearer` header.
func BearerToken(header http.Header) string {
	value := header.Get(authorizationHeader)
	if !strings.HasPrefix(value, bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(value, bearerPrefix))
}

// discard drains and closes a response body so the connection can be reused.
func discard(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}
