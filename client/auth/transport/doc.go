// Package transport implements an http.RoundTripper that attaches the stored
// access token to every request and, when the portal answers
// `401 Unauthorized`, exchanges the refresh token for a new pair and replays
// the request once.
//
// Concurrent requests failing during the same refresh wait on a shared
// Coordinator, so one refresh call serves all of them and they all observe the
// same outcome.
package transport
