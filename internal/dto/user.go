package dto

import (
	"github.com/expenseflow/expense_approval_app/internal/core/domain"
)

// CreateManagedUserRequest defines the data an admin supplies to create an
// account directly. ADMIN is deliberately not an accepted role here.
type CreateManagedUserRequest struct {
	Name                string          `json:"name" binding:"required"`
	Email               string          `json:"email" binding:"required,email"`
	Password            string          `json:"password" binding:"required,min=8"`
	Role                domain.UserRole `json:"role" binding:"required,oneof=EMPLOYEE MANAGER"`
	DefaultCurrencyCode string          `json:"defaultCurrencyCode" binding:"required,currencycode"`
}

// UpdateUserRoleRequest defines the data for changing a user's role.
// Promotion to ADMIN is rejected at the service layer as well.
type UpdateUserRoleRequest struct {
	Role domain.UserRole `json:"role" binding:"required,oneof=EMPLOYEE MANAGER"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUsersResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUsersResponse(users []domain.User) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{
		Users: userResponses,
	}
}
