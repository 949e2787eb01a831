package models

// User is the cached profile of the logged-in account
type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at,omitempty"`
}

// LoginRequest is the body of POST /api/login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,sf_password"`
}

// RegisterRequest is the body of POST /api/register
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,sf_email"`
	Password string `json:"password" validate:"required,sf_password"`
}

// AuthResponse is returned by both login and register
type AuthResponse struct {
	Message     string `json:"message,omitempty"`
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}
