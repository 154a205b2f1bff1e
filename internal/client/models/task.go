package models

import "fmt"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority accepts low, medium or high.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(s); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	}
	return "", fmt.Errorf("unknown priority %q", s)
}

// Task is a unit of work created by a manager.
type Task struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Points      int      `json:"points"`
}

func (t Task) RowID() int64 { return t.ID }

// NewTask is one element of POST /manager/create-tasks.
type NewTask struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Points      int      `json:"points"`
}

type CreateTasksRequest struct {
	Tasks []NewTask `json:"tasks"`
}

// ViewTasksUpdate is the body of POST /manager/update-view-tasks.
type ViewTasksUpdate struct {
	Tasks           []Task  `json:"tasks"`
	DeletedTasksIDs []int64 `json:"deletedTasksIds"`
}

// TaskAssignment assigns one task to one resource.
type TaskAssignment struct {
	TaskID     int64 `json:"taskId"`
	ResourceID int64 `json:"resourceId"`
}

// AssignBoard is the body returned by GET /manager/get-assign-tasks.
type AssignBoard struct {
	Tasks     []Task     `json:"Tasks"`
	Resources []Resource `json:"myResources"`
}

type SubmitTaskRequest struct {
	ID int64 `json:"id"`
}
