package services

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/dmitrijs2005/taskdesk/internal/client/api"
	"github.com/dmitrijs2005/taskdesk/internal/client/credential"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

// backend is a scripted fake of the TaskDesk API. Each route answers with
// a canned status and body and records the last request body it saw.
type backend struct {
	t      *testing.T
	router *mux.Router

	mu     sync.Mutex
	bodies map[string][]byte
	auth   map[string]string
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	return &backend{t: t, router: mux.NewRouter(), bodies: map[string][]byte{}, auth: map[string]string{}}
}

func (b *backend) on(method, path string, status int, body string) {
	b.router.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.bodies[path] = raw
		b.auth[path] = r.Header.Get("Authorization")
		b.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}).Methods(method)
}

func (b *backend) body(path string, v any) {
	b.t.Helper()
	b.mu.Lock()
	raw := b.bodies[path]
	b.mu.Unlock()
	require.NotNil(b.t, raw, "no request to %s", path)
	require.NoError(b.t, json.Unmarshal(raw, v))
}

func (b *backend) rawBody(path string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.bodies[path])
}

func (b *backend) authHeader(path string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.auth[path]
}

// start serves the router and returns a gateway authenticated with token.
func (b *backend) start(token string) *api.Gateway {
	b.t.Helper()
	srv := httptest.NewServer(b.router)
	b.t.Cleanup(srv.Close)

	src, w := credential.New()
	if token != "" {
		w.Set(token)
	}
	return api.New(srv.URL, src)
}
