package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/taskdesk/internal/client/batch"
	"github.com/dmitrijs2005/taskdesk/internal/client/models"
	"golang.org/x/sync/errgroup"
)

var submitActions = []batch.Action{{Label: "Submit", Value: "submit"}}

func (a *App) userCommand(ctx context.Context, cmd string, _ []string) bool {
	switch cmd {
	case "dashboard":
		a.userDashboard(ctx)
	case "tasks":
		a.userTasks(ctx)
	default:
		return false
	}
	return true
}

func (a *App) userDashboard(ctx context.Context) {
	var (
		stats   models.UserStats
		manager string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats, err = a.user.Dashboard(gctx)
		return err
	})
	g.Go(func() (err error) {
		manager, err = a.user.SidebarManager(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		a.fail(ctx, err)
		return
	}

	if manager != "" {
		a.printf("Manager: %s\n", manager)
	}
	a.printf("High priority: %d\nAssigned: %d\nCompleted: %d\nRejected: %d\n",
		stats.High, stats.Assigned, stats.Completed, stats.Rejected)
}

// userTasks lets the user submit assigned tasks. The list is fetched again
// after a save.
func (a *App) userTasks(ctx context.Context) {
	tasks, err := a.user.AssignedTasks(ctx)
	if err != nil {
		a.fail(ctx, err)
		return
	}

	// The backend takes one task per request.
	commit := func(ctx context.Context, updates []batch.Update) error {
		for _, u := range updates {
			if err := a.user.SubmitTask(ctx, u.RowID); err != nil {
				return fmt.Errorf("submit task %d: %w", u.RowID, err)
			}
		}
		return nil
	}

	a.replaceTable(newEditorTable(a, "tasks", "Wohoo! No tasks assigned today.", taskColumns,
		tasks, submitActions, commit, batch.Refetch(a.user.AssignedTasks)))
}
