package transport

import (
	"context"
	"net/http"
)

type contextKey string

const retriedKey contextKey = "authRetried"

// markRetried returns req bound to a context flagging it as a replay.
func markRetried(req *http.Request) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), retriedKey, true))
}

// IsRetried reports whether req already went through a token refresh.
func IsRetried(req *http.Request) bool {
	retried, _ := req.Context().Value(retriedKey).(bool)
	return retried
}
