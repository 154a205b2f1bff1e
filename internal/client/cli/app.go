package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/taskdesk/internal/client/api"
	"github.com/dmitrijs2005/taskdesk/internal/client/config"
	"github.com/dmitrijs2005/taskdesk/internal/client/credential"
	"github.com/dmitrijs2005/taskdesk/internal/client/inactivity"
	"github.com/dmitrijs2005/taskdesk/internal/client/kv"
	"github.com/dmitrijs2005/taskdesk/internal/client/navigation"
	"github.com/dmitrijs2005/taskdesk/internal/client/services"
	"github.com/dmitrijs2005/taskdesk/internal/client/session"
	"github.com/dmitrijs2005/taskdesk/internal/logging"
	"golang.org/x/sync/errgroup"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config *config.Config
	logger logging.Logger

	in       *bufio.Reader
	out      io.Writer
	outMu    sync.Mutex
	password func() (string, error)

	store    kv.Store
	gateway  *api.Gateway
	sessions *session.Store
	monitor  *inactivity.Monitor
	clock    inactivity.Clock

	auth    services.AuthService
	admin   services.AdminService
	manager services.ManagerService
	user    services.UserService

	mu    sync.Mutex
	route navigation.Route
	table table
	mode  Mode
}

type Option func(*App)

// WithIO replaces stdin and stdout. Passwords are then read as plain lines
// from in.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(a *App) {
		a.in = bufio.NewReader(in)
		a.out = out
		a.password = func() (string, error) { return GetSimpleText(a.in, "Enter password", a.out) }
	}
}

func WithLogger(l logging.Logger) Option {
	return func(a *App) { a.logger = l }
}

// WithClock sets the clock driving the inactivity monitor.
func WithClock(c inactivity.Clock) Option {
	return func(a *App) { a.clock = c }
}

// WithStore uses an already opened key-value store instead of opening one
// from the configuration. The App still closes it.
func WithStore(s kv.Store) Option {
	return func(a *App) { a.store = s }
}

// NewApp wires the client together. Close must be called to release the
// local store.
func NewApp(ctx context.Context, c *config.Config, opts ...Option) (*App, error) {
	a := &App{
		config: c,
		logger: logging.Discard(),
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		clock:  inactivity.RealClock(),
		route:  navigation.LoginScreen(false),
	}
	a.password = func() (string, error) { return GetPassword(a.in, a.out) }
	for _, opt := range opts {
		opt(a)
	}

	if a.store == nil {
		store, err := kv.Open(ctx, c.StorageDriver, c.StoragePath)
		if err != nil {
			return nil, fmt.Errorf("open local storage: %w", err)
		}
		a.store = store
	}

	tokens, writer := credential.New()
	a.gateway = api.New(c.BaseURL, tokens,
		api.WithTimeout(c.RequestTimeout),
		api.WithLogger(a.logger.With("component", "api")),
	)

	keys := session.Keys{Token: c.TokenKey, User: c.UserKey, Activity: c.ActivityKey}
	a.sessions = session.NewStore(a.store, writer, keys,
		session.WithLogger(a.logger.With("component", "session")),
		session.WithClock(a.clock.Now),
	)
	a.monitor = inactivity.NewMonitor(c.InactivityTimeout,
		inactivity.NewKVActivityStore(a.store, c.ActivityKey),
		a.sessions,
		inactivity.WithClock(a.clock),
		inactivity.WithLogger(a.logger.With("component", "inactivity")),
		inactivity.OnExpire(func() { a.Navigate(navigation.LoginScreen(true)) }),
	)

	a.auth = services.NewAuthService(a.gateway)
	a.admin = services.NewAdminService(a.gateway)
	a.manager = services.NewManagerService(a.gateway)
	a.user = services.NewUserService(a.gateway)

	return a, nil
}

// Close stops the inactivity timer and closes the local store.
func (a *App) Close() error {
	a.monitor.Stop()
	return a.store.Close()
}

// Run restores the previous session and serves the REPL until the user
// exits, input ends or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.println("TaskDesk CLI (type 'help' for commands)")
	a.restore(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.StartOnlineStatusWatcher(gctx, a.config.OnlineCheckInterval)
		return nil
	})
	g.Go(func() error {
		watchLifecycle(gctx, a.logger, a.background, a.foreground)
		return nil
	})
	g.Go(func() error {
		defer cancel()
		runREPL(gctx, a, a.prompt, func(s string) { a.printf("%s", s) }, a.in)
		return nil
	})
	return g.Wait()
}

func (a *App) restore(ctx context.Context) {
	a.println("Loading session...")
	sess, ok := a.sessions.Restore(ctx)
	if !ok {
		a.Navigate(navigation.LoginScreen(false))
		return
	}

	a.monitor.SessionRestored(ctx)
	if a.monitor.State() == inactivity.Armed {
		a.Navigate(navigation.Home(sess.User))
	}
}

// Navigate implements navigation.Navigator.
func (a *App) Navigate(r navigation.Route) {
	a.mu.Lock()
	a.route = r
	a.table = nil
	a.mu.Unlock()

	if msg := r.Message(); msg != "" {
		a.println(msg)
	}
	switch r.To {
	case navigation.Login:
		a.println("Please login (type 'login').")
	case navigation.RoleError:
		a.println("Your account has no recognized role. Contact an administrator or type 'logout'.")
	default:
		if sess, ok := a.sessions.Current(); ok {
			a.printf("Welcome, %s (%s).\n", sess.User.Name, r.To)
		}
	}
}

func (a *App) currentRoute() navigation.Route {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.route
}

func (a *App) isLoggedIn() bool {
	_, ok := a.sessions.Current()
	return ok
}

func (a *App) currentTable() table {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.table
}

func (a *App) openTable(t table) {
	a.mu.Lock()
	a.table = t
	a.mu.Unlock()
	a.render(t)
}

func (a *App) render(t table) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	t.Render(a.out)
}

func (a *App) prompt() string {
	if a.sessions.Loading() {
		return "taskdesk (loading)> "
	}

	a.mu.Lock()
	mode := a.mode
	var title string
	if a.table != nil {
		title = a.table.Title()
	}
	a.mu.Unlock()

	s := ""
	if sess, ok := a.sessions.Current(); ok {
		s = sess.User.Email + " "
	}
	if mode != "" {
		s += string(mode)
	}
	if title != "" {
		s += " " + title
	}
	if s != "" {
		s = fmt.Sprintf(" (%s)", s)
	}
	return "taskdesk" + s + "> "
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(context.Background(), "connectivity changed", "mode", mode)
	}
}

func (a *App) background(ctx context.Context) {
	a.monitor.Background(ctx)
}

func (a *App) foreground(ctx context.Context) {
	a.monitor.Foreground(ctx)
}

func (a *App) println(args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintf(a.out, format, args...)
}
