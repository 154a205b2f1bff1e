package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/taskdesk/internal/logging"
)

var (
	ErrUnknownRow    = errors.New("unknown row")
	ErrUnknownAction = errors.New("unknown action")
	// ErrReload is wrapped when a save succeeded but the rows could not be
	// brought up to date afterwards.
	ErrReload = errors.New("reload after save failed")
)

// Keyed is a row with a stable identifier.
type Keyed interface {
	RowID() int64
}

// Action is one of the choices offered for every row.
type Action struct {
	Label string
	Value string
}

// Update is a staged action sent on commit.
type Update struct {
	RowID  int64
	Action Action
}

// CommitFunc sends a batch of updates to the server.
type CommitFunc func(ctx context.Context, updates []Update) error

// RenderKey is everything that affects how a row is drawn. A row only
// needs redrawing when its key changes.
type RenderKey struct {
	RowID   int64
	Pending string
	Open    bool
}

// RowView is a row together with its editing state.
type RowView[R Keyed] struct {
	Row      R
	Selected Action
	Open     bool
}

func (v RowView[R]) HasSelection() bool { return v.Selected.Value != "" }

func (v RowView[R]) Key() RenderKey {
	return RenderKey{RowID: v.Row.RowID(), Pending: v.Selected.Value, Open: v.Open}
}

type Editor[R Keyed] struct {
	actions     []Action
	commit      CommitFunc
	policy      Policy[R]
	onRowChange func(RenderKey)
	logger      logging.Logger

	mu       sync.Mutex
	rows     []R
	pending  map[int64]Action
	open     int64
	hasOpen  bool
	inFlight bool
}

type Option[R Keyed] func(*Editor[R])

// WithPolicy sets what happens to the rows after a successful commit.
// The default drops every committed row.
func WithPolicy[R Keyed](p Policy[R]) Option[R] {
	return func(e *Editor[R]) { e.policy = p }
}

// WithOnRowChange registers f to be called with the new key of every row
// whose render key changed. It is called without the editor lock held.
func WithOnRowChange[R Keyed](f func(RenderKey)) Option[R] {
	return func(e *Editor[R]) { e.onRowChange = f }
}

func WithLogger[R Keyed](l logging.Logger) Option[R] {
	return func(e *Editor[R]) { e.logger = l }
}

func New[R Keyed](rows []R, actions []Action, commit CommitFunc, opts ...Option[R]) *Editor[R] {
	e := &Editor[R]{
		actions:     actions,
		commit:      commit,
		policy:      RemoveCommitted[R](),
		onRowChange: func(RenderKey) {},
		logger:      logging.Discard(),
		rows:        append([]R(nil), rows...),
		pending:     map[int64]Action{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Editor[R]) Actions() []Action {
	return append([]Action(nil), e.actions...)
}

// SelectAction stages value for rowID, replacing any earlier choice, and
// closes the open menu.
func (e *Editor[R]) SelectAction(rowID int64, value string) error {
	action, ok := e.action(value)
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownAction, value)
	}

	e.mu.Lock()
	if e.find(rowID) < 0 {
		e.mu.Unlock()
		return fmt.Errorf("%w %d", ErrUnknownRow, rowID)
	}
	before := e.keys()
	e.pending[rowID] = action
	e.hasOpen = false
	changed := e.changed(before)
	e.mu.Unlock()

	e.notify(changed)
	return nil
}

// ToggleMenu opens the menu of rowID, or closes it if it is already open.
// Opening one menu closes any other.
func (e *Editor[R]) ToggleMenu(rowID int64) error {
	e.mu.Lock()
	if e.find(rowID) < 0 {
		e.mu.Unlock()
		return fmt.Errorf("%w %d", ErrUnknownRow, rowID)
	}
	before := e.keys()
	if e.hasOpen && e.open == rowID {
		e.hasOpen = false
	} else {
		e.open, e.hasOpen = rowID, true
	}
	changed := e.changed(before)
	e.mu.Unlock()

	e.notify(changed)
	return nil
}

func (e *Editor[R]) CloseMenu() {
	e.mu.Lock()
	before := e.keys()
	e.hasOpen = false
	changed := e.changed(before)
	e.mu.Unlock()

	e.notify(changed)
}

// OpenRow returns the row whose menu is open.
func (e *Editor[R]) OpenRow() (int64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.open, e.hasOpen
}

// Discard drops every staged action.
func (e *Editor[R]) Discard() {
	e.mu.Lock()
	before := e.keys()
	clear(e.pending)
	e.hasOpen = false
	changed := e.changed(before)
	e.mu.Unlock()

	e.notify(changed)
}

// Reset replaces the rows. Staged actions for rows that are gone are
// dropped.
func (e *Editor[R]) Reset(rows []R) {
	e.mu.Lock()
	before := e.keys()
	e.replace(rows)
	changed := e.changed(before)
	e.mu.Unlock()

	e.notify(changed)
}

// Commit sends the staged actions as one batch in row order and reports
// how many were sent. It does nothing if nothing is staged or another
// commit is still running.
//
// On failure the staged actions are kept for a retry. On success they are
// cleared, except for rows re-staged with a different action while the
// request was running, and the policy is applied to the rows.
func (e *Editor[R]) Commit(ctx context.Context) (int, error) {
	e.mu.Lock()
	if e.inFlight || len(e.pending) == 0 {
		e.mu.Unlock()
		return 0, nil
	}
	e.inFlight = true
	updates := e.ordered()
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.inFlight = false
		e.mu.Unlock()
	}()

	e.logger.Debug(ctx, "committing batch", "updates", len(updates))
	if err := e.commit(ctx, updates); err != nil {
		e.logger.Debug(ctx, "batch rejected", logging.KeyError, err)
		return 0, err
	}

	e.mu.Lock()
	before := e.keys()
	for _, u := range updates {
		if cur, ok := e.pending[u.RowID]; ok && cur == u.Action {
			delete(e.pending, u.RowID)
		}
	}
	changed := e.changed(before)
	rows := append([]R(nil), e.rows...)
	e.mu.Unlock()
	e.notify(changed)

	next, err := e.policy(ctx, rows, updates)
	if err != nil {
		return len(updates), fmt.Errorf("%w: %w", ErrReload, err)
	}
	e.Reset(next)
	return len(updates), nil
}

// InFlight reports whether a commit is running.
func (e *Editor[R]) InFlight() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.inFlight
}

// Pending returns the staged actions in row order.
func (e *Editor[R]) Pending() []Update {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ordered()
}

func (e *Editor[R]) Rows() []R {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]R(nil), e.rows...)
}

func (e *Editor[R]) Views() []RowView[R] {
	e.mu.Lock()
	defer e.mu.Unlock()
	views := make([]RowView[R], len(e.rows))
	for i, r := range e.rows {
		views[i] = e.view(r)
	}
	return views
}

func (e *Editor[R]) action(value string) (Action, bool) {
	for _, a := range e.actions {
		if a.Value == value {
			return a, true
		}
	}
	return Action{}, false
}

func (e *Editor[R]) find(rowID int64) int {
	for i, r := range e.rows {
		if r.RowID() == rowID {
			return i
		}
	}
	return -1
}

func (e *Editor[R]) replace(rows []R) {
	e.rows = append([]R(nil), rows...)
	present := make(map[int64]struct{}, len(rows))
	for _, r := range rows {
		present[r.RowID()] = struct{}{}
	}
	for id := range e.pending {
		if _, ok := present[id]; !ok {
			delete(e.pending, id)
		}
	}
	if _, ok := present[e.open]; e.hasOpen && !ok {
		e.hasOpen = false
	}
}

func (e *Editor[R]) ordered() []Update {
	updates := make([]Update, 0, len(e.pending))
	for _, r := range e.rows {
		if a, ok := e.pending[r.RowID()]; ok {
			updates = append(updates, Update{RowID: r.RowID(), Action: a})
		}
	}
	return updates
}

func (e *Editor[R]) view(r R) RowView[R] {
	id := r.RowID()
	return RowView[R]{Row: r, Selected: e.pending[id], Open: e.hasOpen && e.open == id}
}

func (e *Editor[R]) keys() map[int64]RenderKey {
	keys := make(map[int64]RenderKey, len(e.rows))
	for _, r := range e.rows {
		keys[r.RowID()] = e.view(r).Key()
	}
	return keys
}

// changed lists the rows now visible whose key differs from before.
func (e *Editor[R]) changed(before map[int64]RenderKey) []RenderKey {
	var out []RenderKey
	for _, r := range e.rows {
		k := e.view(r).Key()
		if prev, ok := before[k.RowID]; !ok || prev != k {
			out = append(out, k)
		}
	}
	return out
}

func (e *Editor[R]) notify(keys []RenderKey) {
	for _, k := range keys {
		e.onRowChange(k)
	}
}
