package orgstructure

import "go-orgkit/internal/user"

type CreateDepartmentRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	ParentID string `json:"parent_id" binding:"omitempty,uuid"`
}

type UpdateDepartmentRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=255"`
	ParentID *string `json:"parent_id" binding:"omitempty,uuid"`
}

// ReassignUserRequest memindahkan user antar departemen dan/atau mengganti
// atasannya. Field nil berarti tidak diubah; string kosong berarti dilepas.
type ReassignUserRequest struct {
	DepartmentID *string `json:"department_id" binding:"omitempty"`
	SuperiorID   *string `json:"superior_id" binding:"omitempty"`
}

type DepartmentResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parent_id,omitempty"`
}

type DepartmentNode struct {
	ID       string              `json:"id"`
	Name     string              `json:"name"`
	ParentID string              `json:"parent_id,omitempty"`
	Users    []user.UserResponse `json:"users"`
	Children []DepartmentNode    `json:"children"`
}

// FlatDepartment adalah satu baris hasil flatten pre-order; Name sudah
// membawa prefix indentasi sesuai kedalamannya.
type FlatDepartment struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Level    int    `json:"level"`
	ParentID string `json:"parent_id,omitempty"`
}

type OrgTreeResponse struct {
	Tree            []DepartmentNode    `json:"tree"`
	FlatList        []FlatDepartment    `json:"flat_list"`
	UnassignedUsers []user.UserResponse `json:"unassigned_users"`
	AllUsers        []user.UserResponse `json:"all_users"`
}
