package dto

// RegisterRequest defines the data needed for self-registration.
type RegisterRequest struct {
	Name                string `json:"name" binding:"required"`
	Email               string `json:"email" binding:"required,email"`
	Password            string `json:"password" binding:"required,min=8"`
	ConfirmPassword     string `json:"confirmPassword" binding:"required,eqfield=Password"`
	DefaultCurrencyCode string `json:"currency" binding:"required,currencycode"`
}

// LoginRequest defines the credentials for a login attempt.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token string `json:"token"`
}
