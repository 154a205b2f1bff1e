package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/taskdesk/internal/client/models"
	"github.com/dmitrijs2005/taskdesk/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService(t *testing.T) {
	ctx := context.Background()
	b := newBackend(t)
	b.on(http.MethodGet, "/user/get-dashboard", http.StatusOK, `{"high":1,"assigned":4,"completed":2,"rejected":0}`)
	b.on(http.MethodGet, "/user/get-sidebar-manager", http.StatusOK, `{"managerName":"Mo"}`)
	b.on(http.MethodGet, "/user/get-assigned-tasks", http.StatusOK, `[{"id":11,"title":"Ship","priority":"medium","points":3}]`)
	b.on(http.MethodPost, "/user/submit-assigned-task", http.StatusOK, ``)
	svc := NewUserService(b.start("u"))

	stats, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.UserStats{High: 1, Assigned: 4, Completed: 2}, stats)

	name, err := svc.SidebarManager(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Mo", name)

	tasks, err := svc.AssignedTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(11), tasks[0].ID)

	require.NoError(t, svc.SubmitTask(ctx, 11))
	assert.JSONEq(t, `{"id":11}`, b.rawBody("/user/submit-assigned-task"))
}

func TestUserService_ExpiredTokenIsUnauthorized(t *testing.T) {
	b := newBackend(t)
	b.on(http.MethodGet, "/user/get-dashboard", http.StatusUnauthorized, `{"message":"jwt expired"}`)
	svc := NewUserService(b.start("stale"))

	_, err := svc.Dashboard(context.Background())
	assert.True(t, errors.Is(err, common.ErrUnauthorized))
	assert.EqualError(t, err, "jwt expired")
}
