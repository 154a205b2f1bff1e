package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskdesk/internal/client/config"
	"github.com/dmitrijs2005/taskdesk/internal/client/inactivity"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for the watcher and REPL goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type fakeTimer struct {
	c       *fakeClock
	at      time.Time
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	was := !t.stopped
	t.stopped = true
	return was
}

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) inactivity.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{c: c, at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	end := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		sort.SliceStable(c.timers, func(i, j int) bool { return c.timers[i].at.Before(c.timers[j].at) })
		var due *fakeTimer
		for _, t := range c.timers {
			if !t.stopped && !t.at.After(end) {
				due = t
				break
			}
		}
		if due == nil {
			c.now = end
			c.mu.Unlock()
			return
		}
		due.stopped = true
		c.now = due.at
		c.mu.Unlock()
		due.f()
	}
}

// backend is a scripted TaskDesk API recording request bodies by path.
type backend struct {
	router *mux.Router
	srv    *httptest.Server

	mu     sync.Mutex
	bodies map[string][]string
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{router: mux.NewRouter(), bodies: map[string][]string{}}
	b.on(http.MethodGet, "/health", http.StatusOK, `{"status":"ok"}`)
	b.srv = httptest.NewServer(b.router)
	t.Cleanup(b.srv.Close)
	return b
}

// on registers a route. Each path is registered once per test.
func (b *backend) on(method, path string, status int, body string) {
	b.onSeq(method, path, status, body)
}

// onSeq answers with each body in turn and repeats the last one.
func (b *backend) onSeq(method, path string, status int, bodies ...string) {
	var (
		mu sync.Mutex
		n  int
	)
	b.router.NewRoute().Path(path).Methods(method).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.bodies[path] = append(b.bodies[path], string(raw))
		b.mu.Unlock()

		mu.Lock()
		body := bodies[min(n, len(bodies)-1)]
		n++
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}

func (b *backend) requests(path string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.bodies[path]...)
}

func testConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.BaseURL = baseURL
	c.OnlineCheckInterval = time.Hour
	c.RequestTimeout = 5 * time.Second
	c.StoragePath = filepath.Join(t.TempDir(), "taskdesk.db")
	return c
}

type harness struct {
	t     *testing.T
	app   *App
	out   *syncBuffer
	clock *fakeClock
	cfg   *config.Config
}

// newHarness builds an App against b whose stdin yields input.
func newHarness(t *testing.T, b *backend, input string) *harness {
	t.Helper()
	cfg := testConfig(t, b.srv.URL)
	return newHarnessWith(t, cfg, &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}, input)
}

func newHarnessWith(t *testing.T, cfg *config.Config, clock *fakeClock, input string) *harness {
	t.Helper()
	out := &syncBuffer{}
	app, err := NewApp(context.Background(), cfg, WithIO(strings.NewReader(input), out), WithClock(clock))
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return &harness{t: t, app: app, out: out, clock: clock, cfg: cfg}
}

func (h *harness) run(cmd string, args ...string) {
	h.t.Helper()
	h.app.Dispatch(context.Background(), cmd, args)
}

const (
	adminLogin   = `{"token":"tok-admin","user":{"id":1,"name":"Ada","email":"ada@x.io","roles":["admin"]}}`
	managerLogin = `{"token":"tok-mgr","user":{"id":2,"name":"Mo","email":"mo@x.io","roles":["Manager"]}}`
	userLogin    = `{"token":"tok-user","user":{"id":4,"name":"Cy","email":"cy@x.io","roles":["user"]}}`
)
