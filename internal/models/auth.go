package models

// Roles carried in session tokens
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// LoginRequest defines the structure for login requests
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest defines the structure for registration requests
type RegisterRequest struct {
	FullName   string `json:"fullName" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Contact    string `json:"contact" binding:"required"`
	District   string `json:"district" binding:"required"`
	Password   string `json:"password" binding:"required,min=6"`
	ReferredBy string `json:"referredBy"`
}

// AuthResponse is returned after a successful register or login
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Profile is the "Me" view of the signed-in user
type Profile struct {
	User        *User  `json:"user"`
	DisplayName string `json:"displayName"`
	ShortID     string `json:"shortId"`
}
