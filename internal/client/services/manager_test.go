package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/taskdesk/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerService(t *testing.T) {
	ctx := context.Background()
	b := newBackend(t)
	b.on(http.MethodGet, "/manager/dashboard-stats", http.StatusOK, `{"myResources":4}`)
	b.on(http.MethodPost, "/manager/create-tasks", http.StatusCreated, `{"created":2}`)
	b.on(http.MethodGet, "/manager/get-view-tasks", http.StatusOK,
		`[{"id":1,"title":"Fix login","description":"d","priority":"high","points":5}]`)
	b.on(http.MethodPost, "/manager/update-view-tasks", http.StatusOK, `{}`)
	b.on(http.MethodGet, "/manager/get-assign-tasks", http.StatusOK,
		`{"Tasks":[{"id":3,"title":"Docs","priority":"low","points":1}],"myResources":[{"id":9,"name":"Eve"}]}`)
	b.on(http.MethodPost, "/manager/update-assign-tasks", http.StatusOK, `{}`)
	svc := NewManagerService(b.start("m"))

	stats, err := svc.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.MyResources)

	require.NoError(t, svc.CreateTasks(ctx, []models.NewTask{
		{Title: "A", Description: "a", Priority: models.PriorityLow, Points: 1},
		{Title: "B", Description: "b", Priority: models.PriorityHigh, Points: 8},
	}))
	var created models.CreateTasksRequest
	b.body("/manager/create-tasks", &created)
	assert.Len(t, created.Tasks, 2)
	assert.Equal(t, models.PriorityHigh, created.Tasks[1].Priority)

	tasks, err := svc.ViewTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Task{{ID: 1, Title: "Fix login", Description: "d", Priority: models.PriorityHigh, Points: 5}}, tasks)

	require.NoError(t, svc.UpdateViewTasks(ctx, models.ViewTasksUpdate{DeletedTasksIDs: []int64{1}}))
	assert.JSONEq(t, `{"tasks":[],"deletedTasksIds":[1]}`, b.rawBody("/manager/update-view-tasks"))

	board, err := svc.AssignBoard(ctx)
	require.NoError(t, err)
	require.Len(t, board.Tasks, 1)
	assert.Equal(t, []models.Resource{{ID: 9, Name: "Eve"}}, board.Resources)

	require.NoError(t, svc.UpdateAssignTasks(ctx, []models.TaskAssignment{{TaskID: 3, ResourceID: 9}}))
	assert.JSONEq(t, `[{"taskId":3,"resourceId":9}]`, b.rawBody("/manager/update-assign-tasks"))
}
