package services

import (
	"context"

	"github.com/dmitrijs2005/taskdesk/internal/client/models"
)

type AdminService interface {
	DashboardStats(ctx context.Context) (models.AdminStats, error)
	PendingResources(ctx context.Context) ([]models.PendingResource, error)
	UpdateResourceStatus(ctx context.Context, updates []models.ResourceStatusUpdate) error
	Users(ctx context.Context) ([]models.Resource, error)
	Managers(ctx context.Context) ([]models.Manager, error)
	// BulkAssignUsers assigns users to managerID, or unassigns them when
	// managerID is nil.
	BulkAssignUsers(ctx context.Context, userIDs []int64, managerID *int64) error
}

type adminService struct {
	api Transport
}

func NewAdminService(api Transport) AdminService {
	return &adminService{api: api}
}

func (s *adminService) DashboardStats(ctx context.Context) (models.AdminStats, error) {
	var out models.AdminStats
	err := s.api.Get(ctx, "/admin/dashboard-stats", &out)
	return out, err
}

func (s *adminService) PendingResources(ctx context.Context) ([]models.PendingResource, error) {
	var out []models.PendingResource
	if err := s.api.Get(ctx, "/admin/pending-resources", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *adminService) UpdateResourceStatus(ctx context.Context, updates []models.ResourceStatusUpdate) error {
	return s.api.Post(ctx, "/admin/update-resource-status", updates, nil)
}

func (s *adminService) Users(ctx context.Context) ([]models.Resource, error) {
	var out []models.Resource
	if err := s.api.Get(ctx, "/admin/users", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *adminService) Managers(ctx context.Context) ([]models.Manager, error) {
	var out []models.Manager
	if err := s.api.Get(ctx, "/admin/managers", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *adminService) BulkAssignUsers(ctx context.Context, userIDs []int64, managerID *int64) error {
	return s.api.Post(ctx, "/admin/bulk-assign-users", models.BulkAssignUsers{UserIDs: userIDs, ManagerID: managerID}, nil)
}
