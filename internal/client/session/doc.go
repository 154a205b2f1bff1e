// Package session keeps track of who is logged in.
//
// Store is the single writer of the bearer token: it holds the in-memory
// session, pushes the token into the credential cell read by the API
// gateway, and mirrors both into the local key-value store so that a
// restarted client can pick the session up again.
//
// Restore never fails. Missing or malformed persisted data, or a token that
// has already expired, leave the store logged out.
package session
