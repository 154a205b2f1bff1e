// Package services contains typed clients for the TaskDesk backend, one per
// role, built on top of the API gateway.
package services

import "context"

// Transport issues JSON requests against the backend. *api.Gateway
// implements it.
type Transport interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
}
