package services

import (
	"context"

	"github.com/dmitrijs2005/taskdesk/internal/client/models"
)

type ManagerService interface {
	DashboardStats(ctx context.Context) (models.ManagerStats, error)
	CreateTasks(ctx context.Context, tasks []models.NewTask) error
	ViewTasks(ctx context.Context) ([]models.Task, error)
	UpdateViewTasks(ctx context.Context, update models.ViewTasksUpdate) error
	AssignBoard(ctx context.Context) (models.AssignBoard, error)
	UpdateAssignTasks(ctx context.Context, assignments []models.TaskAssignment) error
}

type managerService struct {
	api Transport
}

func NewManagerService(api Transport) ManagerService {
	return &managerService{api: api}
}

func (s *managerService) DashboardStats(ctx context.Context) (models.ManagerStats, error) {
	var out models.ManagerStats
	err := s.api.Get(ctx, "/manager/dashboard-stats", &out)
	return out, err
}

func (s *managerService) CreateTasks(ctx context.Context, tasks []models.NewTask) error {
	return s.api.Post(ctx, "/manager/create-tasks", models.CreateTasksRequest{Tasks: tasks}, nil)
}

func (s *managerService) ViewTasks(ctx context.Context) ([]models.Task, error) {
	var out []models.Task
	if err := s.api.Get(ctx, "/manager/get-view-tasks", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *managerService) UpdateViewTasks(ctx context.Context, update models.ViewTasksUpdate) error {
	if update.Tasks == nil {
		update.Tasks = []models.Task{}
	}
	if update.DeletedTasksIDs == nil {
		update.DeletedTasksIDs = []int64{}
	}
	return s.api.Post(ctx, "/manager/update-view-tasks", update, nil)
}

func (s *managerService) AssignBoard(ctx context.Context) (models.AssignBoard, error) {
	var out models.AssignBoard
	err := s.api.Get(ctx, "/manager/get-assign-tasks", &out)
	return out, err
}

func (s *managerService) UpdateAssignTasks(ctx context.Context, assignments []models.TaskAssignment) error {
	return s.api.Post(ctx, "/manager/update-assign-tasks", assignments, nil)
}
