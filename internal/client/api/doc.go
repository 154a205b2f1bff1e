// Package api is the single HTTP entry point of the TaskDesk client.
//
// # Overview
//
// Gateway issues GET and POST requests against the configured backend base
// URL. Every request carries JSON content headers, a fresh X-Request-Id and,
// when the TokenSource currently holds one, an "Authorization: Bearer" header.
// A 2xx response body is decoded into the caller's value.
//
// # Error Handling
//
// Any non-2xx response becomes an *Error whose Message is taken from the
// JSON "message" or "error" field of the body, or "API error" when the body
// carries neither. Transport failures surface as *Error as well, with
// StatusCode 0, wrapping the cause. 401 and 403 responses match
// common.ErrUnauthorized with errors.Is.
//
// # Concurrency
//
// A Gateway is safe for concurrent use. The token is read per request, so a
// cleared credential is never sent after the clear returns.
package api
