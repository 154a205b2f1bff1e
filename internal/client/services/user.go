package services

import (
	"context"

	"github.com/dmitrijs2005/taskdesk/internal/client/models"
)

type UserService interface {
	Dashboard(ctx context.Context) (models.UserStats, error)
	SidebarManager(ctx context.Context) (string, error)
	AssignedTasks(ctx context.Context) ([]models.Task, error)
	SubmitTask(ctx context.Context, id int64) error
}

type userService struct {
	api Transport
}

func NewUserService(api Transport) UserService {
	return &userService{api: api}
}

func (s *userService) Dashboard(ctx context.Context) (models.UserStats, error) {
	var out models.UserStats
	err := s.api.Get(ctx, "/user/get-dashboard", &out)
	return out, err
}

func (s *userService) SidebarManager(ctx context.Context) (string, error) {
	var out models.SidebarManager
	if err := s.api.Get(ctx, "/user/get-sidebar-manager", &out); err != nil {
		return "", err
	}
	return out.ManagerName, nil
}

func (s *userService) AssignedTasks(ctx context.Context) ([]models.Task, error) {
	var out []models.Task
	if err := s.api.Get(ctx, "/user/get-assigned-tasks", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *userService) SubmitTask(ctx context.Context, id int64) error {
	return s.api.Post(ctx, "/user/submit-assigned-task", models.SubmitTaskRequest{ID: id}, nil)
}
