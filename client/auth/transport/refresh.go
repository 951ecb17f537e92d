package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/viant/afs/url"
	"github.com/viant/portal/client/auth/store"
	"golang.org/x/oauth2"
)

// RefreshPath is the portal endpoint exchanging a refresh token for a new pair.
const RefreshPath = "/auth/mobile/refresh"

// Refresher exchanges a refresh token for a new credential pair.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error)
}

// EndpointRefresher calls the portal refresh endpoint.
type EndpointRefresher struct {
	URL    string
	Client *http.Client
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// NewEndpointRefresher creates a refresher posting to URL. The client must not
// route through the authenticating RoundTripper.
func NewEndpointRefresher(URL string, client *http.Client) *EndpointRefresher {
	if client == nil {
		client = &http.Client{}
	}
	return &EndpointRefresher{URL: URL, Client: client}
}

// RefreshURL returns the refresh endpoint for an API base URL.
func RefreshURL(baseURL string) string {
	return url.Join(strings.TrimRight(baseURL, "/"), strings.TrimLeft(RefreshPath, "/"))
}

func (e *EndpointRefresher) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	payload, err := json.Marshal(&refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	resp, err := e.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("refresh call failed: %w", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read refresh response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RefreshError{StatusCode: resp.StatusCode, Message: errorMessage(data)}
	}
	var pair refreshResponse
	if err = json.Unmarshal(data, &pair); err != nil {
		return nil, &RefreshError{StatusCode: resp.StatusCode, Message: "malformed refresh response"}
	}
	if pair.Token == "" || pair.RefreshToken == "" {
		return nil, &RefreshError{StatusCode: resp.StatusCode, Message: "incomplete token pair"}
	}
	return store.NewToken(pair.Token, pair.RefreshToken), nil
}

func errorMessage(data []byte) string {
	var body errorResponse
	if json.Unmarshal(data, &body) == nil {
		if body.Error != "" {
			return body.Error
		}
		return body.Message
	}
	return ""
}
