package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/taskdesk/internal/client/batch"
	"github.com/dmitrijs2005/taskdesk/internal/client/models"
	"golang.org/x/sync/errgroup"
)

var approveActions = []batch.Action{
	{Label: "Approve as Manager", Value: string(models.StatusManager)},
	{Label: "Approve as User", Value: string(models.StatusUser)},
	{Label: "Reject", Value: string(models.StatusReject)},
}

const (
	actionAssign   = "assign"
	actionUnassign = "unassign"
)

var errUnknownManager = errors.New("no such manager")

func (a *App) adminCommand(ctx context.Context, cmd string, args []string) bool {
	switch cmd {
	case "dashboard":
		a.adminDashboard(ctx)
	case "approve":
		a.adminApprove(ctx)
	case "managers":
		a.adminManagers(ctx)
	case "resources":
		if len(args) == 0 {
			a.println("Usage: resources <managerID> [assign|unassign]")
			return true
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			a.println("Manager id must be a number:", args[0])
			return true
		}
		mode := actionAssign
		if len(args) > 1 {
			mode = args[1]
		}
		if mode != actionAssign && mode != actionUnassign {
			a.println("Mode must be assign or unassign")
			return true
		}
		a.adminResources(ctx, id, mode)
	default:
		return false
	}
	return true
}

func (a *App) adminDashboard(ctx context.Context) {
	stats, err := a.admin.DashboardStats(ctx)
	if err != nil {
		a.fail(ctx, err)
		return
	}
	a.printf("Users: %d\nManagers: %d\nUsers with role user: %d\n",
		stats.TotalUsers, stats.TotalManagers, stats.TotalUsersRoleUser)
}

func (a *App) adminApprove(ctx context.Context) {
	a.println("Loading resources...")
	pending, err := a.admin.PendingResources(ctx)
	if err != nil {
		a.fail(ctx, err)
		return
	}

	commit := func(ctx context.Context, updates []batch.Update) error {
		payload := make([]models.ResourceStatusUpdate, len(updates))
		for i, u := range updates {
			payload[i] = models.ResourceStatusUpdate{ID: u.RowID, Status: models.ResourceStatus(u.Action.Value)}
		}
		return a.admin.UpdateResourceStatus(ctx, payload)
	}

	a.replaceTable(newEditorTable(a, "approve", "No pending resources to approve",
		[]column[models.PendingResource]{
			{header: "NAME", value: func(r models.PendingResource) string { return r.Name }},
			{header: "EMAIL", value: func(r models.PendingResource) string { return r.Email }},
		},
		pending, approveActions, commit, batch.RemoveCommitted[models.PendingResource]()))
}

func (a *App) adminManagers(ctx context.Context) {
	managers, err := a.admin.Managers(ctx)
	if err != nil {
		a.fail(ctx, err)
		return
	}
	if len(managers) == 0 {
		a.println("No managers yet.")
		return
	}

	a.outMu.Lock()
	defer a.outMu.Unlock()
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL")
	for _, m := range managers {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", m.ID, m.Name, m.Email)
	}
	_ = tw.Flush()
}

// adminResources lists the users that can be assigned to (or removed from)
// the given manager.
func (a *App) adminResources(ctx context.Context, managerID int64, mode string) {
	var (
		users    []models.Resource
		managers []models.Manager
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = a.admin.Users(gctx)
		return err
	})
	g.Go(func() (err error) {
		managers, err = a.admin.Managers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		a.fail(ctx, err)
		return
	}

	names := make(map[int64]string, len(managers))
	for _, m := range managers {
		names[m.ID] = m.Name
	}
	if _, ok := names[managerID]; !ok {
		a.println("Error:", fmt.Errorf("%w: %d", errUnknownManager, managerID))
		return
	}

	rows := make([]models.Resource, 0, len(users))
	for _, u := range users {
		assigned := u.AssignedTo(managerID)
		if u.ID == managerID || assigned != (mode == actionUnassign) {
			continue
		}
		rows = append(rows, u)
	}

	actions := []batch.Action{{Label: "Assign to " + names[managerID], Value: actionAssign}}
	if mode == actionUnassign {
		actions = []batch.Action{{Label: "Remove from " + names[managerID], Value: actionUnassign}}
	}

	commit := func(ctx context.Context, updates []batch.Update) error {
		var assign, unassign []int64
		for _, u := range updates {
			if u.Action.Value == actionAssign {
				assign = append(assign, u.RowID)
			} else {
				unassign = append(unassign, u.RowID)
			}
		}
		if len(assign) > 0 {
			if err := a.admin.BulkAssignUsers(ctx, assign, &managerID); err != nil {
				return err
			}
		}
		if len(unassign) > 0 {
			return a.admin.BulkAssignUsers(ctx, unassign, nil)
		}
		return nil
	}

	// Rows stay visible with their new manager until the screen is reloaded.
	policy := batch.ApplyInPlace(func(r models.Resource, act batch.Action) (models.Resource, bool) {
		if act.Value == actionAssign {
			id := managerID
			r.ManagerID = &id
		} else {
			r.ManagerID = nil
		}
		return r, true
	})

	a.replaceTable(newEditorTable(a, "resources", "No resources matching your criteria",
		[]column[models.Resource]{
			{header: "NAME", value: func(r models.Resource) string { return r.Name }},
			{header: "EMAIL", value: func(r models.Resource) string { return r.Email }},
			{header: "MANAGER", value: func(r models.Resource) string {
				if r.ManagerID == nil {
					return "-"
				}
				if name, ok := names[*r.ManagerID]; ok {
					return name
				}
				return strconv.FormatInt(*r.ManagerID, 10)
			}},
		},
		rows, actions, commit, policy))
}
