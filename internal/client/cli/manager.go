package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/taskdesk/internal/client/batch"
	"github.com/dmitrijs2005/taskdesk/internal/client/models"
)

const actionDelete = "delete"

var taskActions = append([]batch.Action{
	{Label: "Delete", Value: actionDelete},
	{Label: "Set priority high", Value: string(models.PriorityHigh)},
	{Label: "Set priority medium", Value: string(models.PriorityMedium)},
	{Label: "Set priority low", Value: string(models.PriorityLow)},
}, pointActions()...)

// Point values offered on the tasks screen, as "points-<n>" actions.
var taskPoints = []int{1, 2, 3, 5, 8, 13}

const pointsPrefix = "points-"

func pointActions() []batch.Action {
	actions := make([]batch.Action, len(taskPoints))
	for i, p := range taskPoints {
		n := strconv.Itoa(p)
		actions[i] = batch.Action{Label: "Set points " + n, Value: pointsPrefix + n}
	}
	return actions
}

// applyTaskAction returns task with a priority or points action applied.
func applyTaskAction(task models.Task, value string) models.Task {
	if n, ok := strings.CutPrefix(value, pointsPrefix); ok {
		if p, err := strconv.Atoi(n); err == nil {
			task.Points = p
		}
		return task
	}
	task.Priority = models.Priority(value)
	return task
}

var taskColumns = []column[models.Task]{
	{header: "TITLE", value: func(t models.Task) string { return t.Title }},
	{header: "PRIORITY", value: func(t models.Task) string { return string(t.Priority) }},
	{header: "POINTS", value: func(t models.Task) string { return strconv.Itoa(t.Points) }},
}

func (a *App) managerCommand(ctx context.Context, cmd string, _ []string) bool {
	switch cmd {
	case "dashboard":
		a.managerDashboard(ctx)
	case "tasks":
		a.managerTasks(ctx)
	case "assign":
		a.managerAssign(ctx)
	case "create":
		a.managerCreate(ctx)
	default:
		return false
	}
	return true
}

func (a *App) managerDashboard(ctx context.Context) {
	stats, err := a.manager.DashboardStats(ctx)
	if err != nil {
		a.fail(ctx, err)
		return
	}
	a.printf("My resources: %d\n", stats.MyResources)
}

// managerTasks edits the manager's tasks: deleted rows disappear, priority
// and points changes are applied in place.
func (a *App) managerTasks(ctx context.Context) {
	tasks, err := a.manager.ViewTasks(ctx)
	if err != nil {
		a.fail(ctx, err)
		return
	}

	var t *editorTable[models.Task]
	commit := func(ctx context.Context, updates []batch.Update) error {
		byID := make(map[int64]models.Task)
		for _, row := range t.editor.Rows() {
			byID[row.ID] = row
		}

		var payload models.ViewTasksUpdate
		for _, u := range updates {
			if u.Action.Value == actionDelete {
				payload.DeletedTasksIDs = append(payload.DeletedTasksIDs, u.RowID)
				continue
			}
			payload.Tasks = append(payload.Tasks, applyTaskAction(byID[u.RowID], u.Action.Value))
		}
		return a.manager.UpdateViewTasks(ctx, payload)
	}
	policy := batch.ApplyInPlace(func(task models.Task, act batch.Action) (models.Task, bool) {
		if act.Value == actionDelete {
			return task, false
		}
		return applyTaskAction(task, act.Value), true
	})

	t = newEditorTable(a, "tasks", "No tasks yet. Type 'create' to add some.", taskColumns, tasks, taskActions, commit, policy)
	a.replaceTable(t)
}

// managerAssign hands unassigned tasks to the manager's resources. After a
// save the list is fetched again since assigned tasks leave it.
func (a *App) managerAssign(ctx context.Context) {
	board, err := a.manager.AssignBoard(ctx)
	if err != nil {
		a.fail(ctx, err)
		return
	}

	switch {
	case len(board.Tasks) == 0 && len(board.Resources) == 0:
		a.println("There are no tasks and resources to get assigned.")
		return
	case len(board.Tasks) == 0:
		a.println("There are no tasks to be assigned to the resources.")
		return
	case len(board.Resources) == 0:
		a.println("There are no resources to get assigned.")
		return
	}

	actions := make([]batch.Action, len(board.Resources))
	for i, r := range board.Resources {
		actions[i] = batch.Action{Label: r.Name, Value: strconv.FormatInt(r.ID, 10)}
	}

	commit := func(ctx context.Context, updates []batch.Update) error {
		payload := make([]models.TaskAssignment, 0, len(updates))
		for _, u := range updates {
			resourceID, err := strconv.ParseInt(u.Action.Value, 10, 64)
			if err != nil {
				return err
			}
			payload = append(payload, models.TaskAssignment{TaskID: u.RowID, ResourceID: resourceID})
		}
		return a.manager.UpdateAssignTasks(ctx, payload)
	}
	refetch := func(ctx context.Context) ([]models.Task, error) {
		board, err := a.manager.AssignBoard(ctx)
		if err != nil {
			return nil, err
		}
		return board.Tasks, nil
	}

	a.replaceTable(newEditorTable(a, "assign", "All tasks are assigned.", taskColumns,
		board.Tasks, actions, commit, batch.Refetch(refetch)))
}

// managerCreate prompts for tasks until an empty title and creates them in
// one request.
func (a *App) managerCreate(ctx context.Context) {
	var tasks []models.NewTask
	for {
		title, err := GetSimpleText(a.in, "Task title (empty to finish)", a.out)
		if err != nil || title == "" {
			break
		}
		description, err := GetSimpleText(a.in, "Description", a.out)
		if err != nil {
			break
		}

		var priority models.Priority
		for {
			raw, err := GetSimpleText(a.in, "Priority (low, medium, high)", a.out)
			if err != nil {
				return
			}
			if priority, err = models.ParsePriority(strings.ToLower(raw)); err == nil {
				break
			}
			a.println("Error:", err)
		}

		var points int
		for {
			raw, err := GetSimpleText(a.in, "Points", a.out)
			if err != nil {
				return
			}
			if points, err = strconv.Atoi(raw); err == nil && points >= 0 {
				break
			}
			a.println("Points must be a non-negative number.")
		}

		tasks = append(tasks, models.NewTask{Title: title, Description: description, Priority: priority, Points: points})
	}

	if len(tasks) == 0 {
		a.println("No tasks created.")
		return
	}
	if err := a.manager.CreateTasks(ctx, tasks); err != nil {
		a.fail(ctx, err)
		return
	}
	a.printf("Created %d task(s).\n", len(tasks))
}
