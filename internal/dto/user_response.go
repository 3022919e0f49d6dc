package dto

import (
	"github.com/expenseflow/expense_approval_app/internal/core/domain"
)

// UserResponse defines the user data returned to clients. The password hash
// never leaves the service layer.
type UserResponse struct {
	UserID              string            `json:"userID"`
	Name                string            `json:"name"`
	Email               string            `json:"email"`
	Role                domain.UserRole   `json:"role"`
	Status              domain.UserStatus `json:"status"`
	DefaultCurrencyCode string            `json:"defaultCurrencyCode"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:              user.UserID,
		Name:                user.Name,
		Email:               user.Email,
		Role:                user.Role,
		Status:              user.Status,
		DefaultCurrencyCode: user.DefaultCurrencyCode,
	}
}
