package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/taskdesk/internal/client/credential"
	"github.com/dmitrijs2005/taskdesk/internal/client/kv"
	"github.com/dmitrijs2005/taskdesk/internal/client/models"
	"github.com/dmitrijs2005/taskdesk/internal/common"
	"github.com/dmitrijs2005/taskdesk/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// Keys names the persisted entries owned by the store.
type Keys struct {
	Token    string
	User     string
	Activity string
}

func DefaultKeys() Keys {
	return Keys{
		Token:    "@auth_token",
		User:     "@user_data",
		Activity: "@last_activity_time",
	}
}

func (k Keys) all() []string {
	return []string{k.Token, k.User, k.Activity}
}

type Store struct {
	kv     kv.Store
	writer *credential.Writer
	keys   Keys
	logger logging.Logger
	now    func() time.Time

	mu      sync.RWMutex
	current models.Session
	active  bool
	// epoch changes on every Login and Logout. Restore installs what it
	// read only if no such call happened meanwhile.
	epoch uint64

	loading   atomic.Bool
	ready     chan struct{}
	readyOnce sync.Once
}

type Option func(*Store)

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithClock overrides the time source used for the login activity stamp
// and the token expiry check.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a logged-out store. It reports Loading until the first
// Restore completes.
func NewStore(store kv.Store, writer *credential.Writer, keys Keys, opts ...Option) *Store {
	s := &Store{
		kv:     store,
		writer: writer,
		keys:   keys,
		logger: logging.Discard(),
		now:    time.Now,
		ready:  make(chan struct{}),
	}
	s.loading.Store(true)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Loading reports whether the persisted session is still being read.
func (s *Store) Loading() bool {
	return s.loading.Load()
}

// Ready is closed once the first Restore has finished.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// Restore loads the persisted session, if any, and reports whether one
// was found.
func (s *Store) Restore(ctx context.Context) (models.Session, bool) {
	s.loading.Store(true)
	defer func() {
		s.loading.Store(false)
		s.readyOnce.Do(func() { close(s.ready) })
	}()

	s.mu.RLock()
	epoch := s.epoch
	s.mu.RUnlock()

	sess, err := s.load(ctx)
	if err != nil {
		s.logger.Info(ctx, "no session restored", logging.KeyError, err)
		if errors.Is(err, errStale) && s.epochIs(epoch) {
			s.purge(ctx)
		}
		return models.Session{}, false
	}

	s.mu.Lock()
	if s.epoch != epoch {
		s.mu.Unlock()
		s.logger.Debug(ctx, "restored session superseded")
		return models.Session{}, false
	}
	s.current = sess
	s.active = true
	s.writer.Set(sess.Token)
	s.mu.Unlock()

	s.logger.Debug(ctx, "session restored", "user_id", sess.User.ID)
	return sess, true
}

var (
	errAbsent = errors.New("no persisted session")
	errStale  = errors.New("persisted session is unusable")
)

func (s *Store) load(ctx context.Context) (models.Session, error) {
	token, err := s.kv.Get(ctx, s.keys.Token)
	if err != nil {
		return models.Session{}, fmt.Errorf("read token: %w", err)
	}
	raw, err := s.kv.Get(ctx, s.keys.User)
	if err != nil {
		return models.Session{}, fmt.Errorf("read user: %w", err)
	}
	if len(token) == 0 || len(raw) == 0 {
		return models.Session{}, errAbsent
	}

	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return models.Session{}, fmt.Errorf("%w: decode user: %v", errStale, err)
	}
	if err := user.Validate(); err != nil {
		return models.Session{}, fmt.Errorf("%w: %v", errStale, err)
	}
	if s.expired(string(token)) {
		return models.Session{}, fmt.Errorf("%w: token expired", errStale)
	}

	return models.Session{Token: string(token), User: user}, nil
}

// expired reports whether token is a JWT whose exp claim has passed.
// Opaque tokens never expire locally.
func (s *Store) expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !s.now().Before(exp.Time)
}

// Login installs a new session and persists it together with a fresh
// activity timestamp. A persistence failure is logged and the session
// stays usable for this process.
func (s *Store) Login(ctx context.Context, token string, user models.User) error {
	if token == "" {
		return fmt.Errorf("%w: empty token", common.ErrInvalidSession)
	}
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidSession, err)
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidSession, err)
	}

	s.mu.Lock()
	s.epoch++
	s.current = models.Session{Token: token, User: user}
	s.active = true
	s.writer.Set(token)
	s.mu.Unlock()

	pairs := []kv.Pair{
		{Key: s.keys.Token, Value: []byte(token)},
		{Key: s.keys.User, Value: raw},
		{Key: s.keys.Activity, Value: []byte(strconv.FormatInt(s.now().UnixMilli(), 10))},
	}
	if err := s.kv.SetMany(ctx, pairs); err != nil {
		s.logger.Warn(ctx, "session not persisted", logging.KeyError, err)
	}

	s.logger.Info(ctx, "logged in", "user_id", user.ID, "role", user.PrimaryRole())
	return nil
}

// Logout ends the session. The token is cleared before Logout touches the
// disk, so no request issued after it returns carries the old token. It is
// safe to call repeatedly and concurrently.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.epoch++
	was := s.active
	s.current = models.Session{}
	s.active = false
	s.writer.Clear()
	s.mu.Unlock()

	s.purge(ctx)

	if was {
		s.logger.Info(ctx, "logged out")
	}
}

func (s *Store) epochIs(epoch uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch == epoch
}

func (s *Store) purge(ctx context.Context) {
	if err := s.kv.Delete(ctx, s.keys.all()...); err != nil {
		s.logger.Warn(ctx, "persisted session not removed", logging.KeyError, err)
	}
}

// Current returns the in-memory session.
func (s *Store) Current() (models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.active
}
