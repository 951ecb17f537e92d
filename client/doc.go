// Package client implements a typed Go client for the portal REST API.
//
// Requests are JSON encoded, tagged with an X-Request-ID and sent through the
// configured http.Client. Authentication is the job of that client's transport
// (see client/auth/transport); this package only maps endpoints to methods and
// non-2xx answers to *APIError.
//
// Example:
//
//	rt, _ := transport.New(transport.WithStore(credentials), transport.WithRefreshURL(transport.RefreshURL(baseURL)))
//	cli := client.New(baseURL, client.WithHTTPClient(&http.Client{Transport: rt}))
//	profile, err := cli.Profile(ctx)
package client
