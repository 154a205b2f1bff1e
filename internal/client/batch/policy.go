package batch

import "context"

// Policy computes the rows to show after updates were committed.
type Policy[R Keyed] func(ctx context.Context, rows []R, updates []Update) ([]R, error)

// RemoveCommitted drops rows whose committed action is terminal. With no
// values given every action is terminal.
func RemoveCommitted[R Keyed](terminal ...string) Policy[R] {
	return func(_ context.Context, rows []R, updates []Update) ([]R, error) {
		drop := map[int64]bool{}
		for _, u := range updates {
			if isTerminal(u.Action.Value, terminal) {
				drop[u.RowID] = true
			}
		}
		out := make([]R, 0, len(rows))
		for _, r := range rows {
			if !drop[r.RowID()] {
				out = append(out, r)
			}
		}
		return out, nil
	}
}

func isTerminal(value string, terminal []string) bool {
	if len(terminal) == 0 {
		return true
	}
	for _, t := range terminal {
		if t == value {
			return true
		}
	}
	return false
}

// ApplyInPlace passes each committed row and its action to fn, which
// returns the updated row and whether to keep it.
func ApplyInPlace[R Keyed](fn func(row R, a Action) (R, bool)) Policy[R] {
	return func(_ context.Context, rows []R, updates []Update) ([]R, error) {
		byID := make(map[int64]Action, len(updates))
		for _, u := range updates {
			byID[u.RowID] = u.Action
		}
		out := make([]R, 0, len(rows))
		for _, r := range rows {
			a, ok := byID[r.RowID()]
			if !ok {
				out = append(out, r)
				continue
			}
			if next, keep := fn(r, a); keep {
				out = append(out, next)
			}
		}
		return out, nil
	}
}

// Refetch replaces the rows with a fresh list from the server.
func Refetch[R Keyed](fetch func(ctx context.Context) ([]R, error)) Policy[R] {
	return func(ctx context.Context, _ []R, _ []Update) ([]R, error) {
		return fetch(ctx)
	}
}
