// Package mock provides an in-process portal API for tests: mobile login,
// refresh and logout endpoints issuing RS256 JWTs, plus a few protected
// resources. Tests can expire access tokens, reject refreshes or hold refresh
// calls open to build contention.
package mock
