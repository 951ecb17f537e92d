// Package store defines the credential store used by the authenticated portal
// transport: a pair of access and refresh tokens written and cleared together.
//
// It ships with an in-memory implementation for tests and short-lived CLI
// sessions, an encrypted implementation persisted through viant/afs and a Redis
// implementation for hosts sharing one session.
package store
