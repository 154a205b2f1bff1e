package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync/atomic"
	"text/tabwriter"

	"github.com/dmitrijs2005/taskdesk/internal/client/batch"
)

// table is an open list screen with staged row actions.
type table interface {
	Title() string
	Render(w io.Writer)
	ToggleMenu(id int64) error
	CloseMenu()
	Select(id int64, value string) error
	Save(ctx context.Context) (int, error)
	Undo()
	Dirty() bool
}

type column[R batch.Keyed] struct {
	header string
	value  func(R) string
}

type editorTable[R batch.Keyed] struct {
	title   string
	empty   string
	columns []column[R]
	editor  *batch.Editor[R]

	// muted suppresses per-row redraws while the whole table is redrawn.
	muted atomic.Bool
}

// newEditorTable builds a table whose rows redraw one at a time through
// app as their staged action or menu state changes.
func newEditorTable[R batch.Keyed](app *App, title, empty string, columns []column[R], rows []R,
	actions []batch.Action, commit batch.CommitFunc, policy batch.Policy[R]) *editorTable[R] {
	t := &editorTable[R]{title: title, empty: empty, columns: columns}
	t.editor = batch.New(rows, actions, commit,
		batch.WithPolicy(policy),
		batch.WithOnRowChange[R](func(k batch.RenderKey) {
			if !t.muted.Load() {
				app.renderRow(t, k)
			}
		}),
		batch.WithLogger[R](app.logger.With("table", title)),
	)
	return t
}

func (t *editorTable[R]) Title() string { return t.title }

func (t *editorTable[R]) Render(w io.Writer) {
	views := t.editor.Views()
	if len(views) == 0 {
		fmt.Fprintln(w, t.empty)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	header := []string{"ID"}
	for _, c := range t.columns {
		header = append(header, c.header)
	}
	header = append(header, "ACTION")
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, v := range views {
		fmt.Fprintln(tw, strings.Join(t.cells(v), "\t"))
	}
	_ = tw.Flush()

	if id, open := t.editor.OpenRow(); open {
		t.renderMenu(w, id)
	}
	if n := len(t.editor.Pending()); n > 0 {
		fmt.Fprintf(w, "%d unsaved change(s). Type 'save' to submit or 'undo' to discard.\n", n)
	}
}

func (t *editorTable[R]) cells(v batch.RowView[R]) []string {
	cells := []string{strconv.FormatInt(v.Row.RowID(), 10)}
	for _, c := range t.columns {
		cells = append(cells, c.value(v.Row))
	}
	action := "-"
	if v.HasSelection() {
		action = v.Selected.Label
	}
	if v.Open {
		action += " [menu]"
	}
	return append(cells, action)
}

// renderRow draws a single row after its render key changed.
func (t *editorTable[R]) renderRow(w io.Writer, k batch.RenderKey) {
	for _, v := range t.editor.Views() {
		if v.Row.RowID() != k.RowID {
			continue
		}
		fmt.Fprintf(w, "  %s\n", strings.Join(t.cells(v), " | "))
		if v.Open {
			t.renderMenu(w, k.RowID)
		}
		return
	}
}

func (t *editorTable[R]) renderMenu(w io.Writer, id int64) {
	fmt.Fprintf(w, "  Actions for %d (select %d <action>):\n", id, id)
	for _, a := range t.editor.Actions() {
		fmt.Fprintf(w, "    %-10s %s\n", a.Value, a.Label)
	}
}

func (t *editorTable[R]) ToggleMenu(id int64) error { return t.editor.ToggleMenu(id) }

func (t *editorTable[R]) CloseMenu() { t.editor.CloseMenu() }

func (t *editorTable[R]) Select(id int64, value string) error {
	return t.editor.SelectAction(id, value)
}

func (t *editorTable[R]) Save(ctx context.Context) (int, error) {
	t.muted.Store(true)
	defer t.muted.Store(false)
	return t.editor.Commit(ctx)
}

func (t *editorTable[R]) Undo() {
	t.muted.Store(true)
	defer t.muted.Store(false)
	t.editor.Discard()
}

func (t *editorTable[R]) Dirty() bool { return len(t.editor.Pending()) > 0 }

func (a *App) renderRow(t interface {
	renderRow(io.Writer, batch.RenderKey)
}, k batch.RenderKey) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	t.renderRow(a.out, k)
}
