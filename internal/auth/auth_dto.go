package auth

type RegisterRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	CompanyName string `json:"company_name" binding:"required,max=255"`
	PhoneNumber string `json:"phone_number" binding:"required,max=20"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	CeoID       string `json:"ceo_id"`
	CompanyName string `json:"company_name,omitempty"`
}
