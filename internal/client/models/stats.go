package models

type AdminStats struct {
	TotalUsers         int `json:"totalUsers"`
	TotalManagers      int `json:"totalManagers"`
	TotalUsersRoleUser int `json:"totalUsersRoleUser"`
}

type ManagerStats struct {
	MyResources int `json:"myResources"`
}

type UserStats struct {
	High      int `json:"high"`
	Assigned  int `json:"assigned"`
	Completed int `json:"completed"`
	Rejected  int `json:"rejected"`
}

type SidebarManager struct {
	ManagerName string `json:"managerName"`
}
