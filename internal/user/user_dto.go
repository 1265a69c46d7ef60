package user

type CreateMemberRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required"`
}

type UserResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	CeoID        string `json:"ceo_id"`
	DepartmentID string `json:"department_id,omitempty"`
	SuperiorID   string `json:"superior_id,omitempty"`
	SuperiorName string `json:"superior_name,omitempty"`
}

// UserOptionResponse adalah proyeksi ringan untuk pemilihan member project
// dan dropdown atasan.
type UserOptionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}
