package inactivity

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/taskdesk/internal/logging"
)

// Logouter ends the current session.
type Logouter interface {
	Logout(ctx context.Context)
}

// Monitor runs the inactivity Machine against a clock. All methods are
// safe for concurrent use; events are applied one at a time.
type Monitor struct {
	clock    Clock
	store    ActivityStore
	session  Logouter
	onExpire func()
	logger   logging.Logger

	mu      sync.Mutex
	m       Machine
	timer   Timer
	gen     uint64
	stopped bool
}

type Option func(*Monitor)

func WithClock(c Clock) Option {
	return func(m *Monitor) { m.clock = c }
}

func WithLogger(l logging.Logger) Option {
	return func(m *Monitor) { m.logger = l }
}

// OnExpire registers f to run after an expiry logout.
func OnExpire(f func()) Option {
	return func(m *Monitor) { m.onExpire = f }
}

func NewMonitor(timeout time.Duration, store ActivityStore, session Logouter, opts ...Option) *Monitor {
	m := &Monitor{
		clock:    RealClock(),
		store:    store,
		session:  session,
		onExpire: func() {},
		logger:   logging.Discard(),
		m:        NewMachine(timeout),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.m.State
}

func (m *Monitor) SessionStarted(ctx context.Context) {
	m.handle(ctx, Event{Kind: SessionStarted}, nil)
}

// SessionRestored arms the monitor for a session found at startup, or
// expires it at once if its last activity is missing or too old.
func (m *Monitor) SessionRestored(ctx context.Context) {
	m.handle(ctx, Event{Kind: SessionRestored, LastActivity: m.lastActivity(ctx)}, nil)
}

func (m *Monitor) Activity(ctx context.Context) {
	m.handle(ctx, Event{Kind: Activity}, nil)
}

func (m *Monitor) Background(ctx context.Context) {
	m.handle(ctx, Event{Kind: Background}, nil)
}

func (m *Monitor) Foreground(ctx context.Context) {
	m.handle(ctx, Event{Kind: Foreground, LastActivity: m.lastActivity(ctx)}, nil)
}

// SessionEnded disarms the monitor after an explicit logout.
func (m *Monitor) SessionEnded(ctx context.Context) {
	m.handle(ctx, Event{Kind: SessionEnded}, nil)
}

// Stop cancels any pending timer. No event is applied afterwards.
func (m *Monitor) Stop() {
	m.handle(context.Background(), Event{Kind: Teardown}, nil)
	m.mu.Lock()
	m.stopped = true
	m.mu.Unlock()
}

func (m *Monitor) lastActivity(ctx context.Context) time.Time {
	t, err := m.store.LastActivity(ctx)
	if err != nil {
		m.logger.Warn(ctx, "last activity not read", logging.KeyError, err)
		return time.Time{}
	}
	return t
}

// handle applies ev. If guard is set it runs under the lock and the event
// is dropped when it returns false.
func (m *Monitor) handle(ctx context.Context, ev Event, guard func() bool) {
	m.mu.Lock()
	if m.stopped || (guard != nil && !guard()) {
		m.mu.Unlock()
		return
	}

	prev := m.m.State
	next, effects := Transition(m.m, ev, m.clock.Now())
	m.m = next

	var after []EffectKind
	for _, e := range effects {
		switch e.Kind {
		case CancelTimer:
			m.cancel()
		case PersistActivity:
			if err := m.store.SetLastActivity(ctx, e.At); err != nil {
				m.logger.Warn(ctx, "activity timestamp not persisted", logging.KeyError, err)
			}
		case ArmTimer:
			m.arm(e.Delay)
		case Logout, NotifyExpired:
			after = append(after, e.Kind)
		}
	}
	m.mu.Unlock()

	if prev != next.State {
		m.logger.Debug(ctx, "inactivity state changed", "from", prev, "to", next.State)
	}

	for _, k := range after {
		switch k {
		case Logout:
			m.logger.Info(ctx, "session expired after inactivity")
			m.session.Logout(ctx)
			m.handle(ctx, Event{Kind: LoggedOut}, nil)
		case NotifyExpired:
			m.onExpire()
		}
	}
}

// cancel must be called with mu held.
func (m *Monitor) cancel() {
	m.gen++
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

// arm must be called with mu held.
func (m *Monitor) arm(d time.Duration) {
	m.gen++
	gen := m.gen
	m.timer = m.clock.AfterFunc(d, func() {
		m.handle(context.Background(), Event{Kind: TimerFired}, func() bool {
			return m.gen == gen
		})
	})
}
