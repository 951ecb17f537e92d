// Package session tracks the signed-in portal user on top of the credential
// store: login (including multi-account selection), logout, restoring a
// session at start-up and reacting to a refresh failure that purged the
// credentials. Transitions are published as Events on a watermill topic.
package session
