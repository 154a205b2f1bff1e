package models

// ResourceStatus is the admin decision on a pending registration.
type ResourceStatus string

const (
	StatusManager ResourceStatus = "manager"
	StatusUser    ResourceStatus = "user"
	StatusReject  ResourceStatus = "reject"
)

// PendingResource is a registration waiting for admin approval.
type PendingResource struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (r PendingResource) RowID() int64 { return r.ID }

type ResourceStatusUpdate struct {
	ID     int64          `json:"id"`
	Status ResourceStatus `json:"status"`
}

// Resource is a user that can be given tasks. ManagerID is nil when unassigned.
type Resource struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	ManagerID *int64 `json:"manager_id,omitempty"`
}

func (r Resource) RowID() int64 { return r.ID }

// AssignedTo reports whether r reports to the manager with the given id.
func (r Resource) AssignedTo(managerID int64) bool {
	return r.ManagerID != nil && *r.ManagerID == managerID
}

type Manager struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// BulkAssignUsers is the body of POST /admin/bulk-assign-users.
// A nil ManagerID unassigns the users.
type BulkAssignUsers struct {
	UserIDs   []int64 `json:"userIds"`
	ManagerID *int64  `json:"managerId"`
}
