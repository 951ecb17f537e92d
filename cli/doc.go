// Package cli implements the portal command line: sign in, sign out, inspect
// the stored session and issue authenticated GET calls against the API.
package cli
