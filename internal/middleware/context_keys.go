package middleware

import (
	"context"

	"github.com/expenseflow/expense_approval_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

const principalCtxKey = contextKey("principal")

// Principal is the authenticated actor making a request, as carried by the
// access token. It is placed into the request context by AuthMiddleware.
type Principal struct {
	UserID string
	Role   domain.UserRole
	Status domain.UserStatus
}

// WithPrincipal returns a context carrying the given principal.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey, p)
}

// GetPrincipalFromCtx retrieves the authenticated principal from a standard
// context. The boolean is false when no principal is present.
func GetPrincipalFromCtx(ctx context.Context) (Principal, bool) {
	if ctx == nil {
		return Principal{}, false
	}
	p, ok := ctx.Value(principalCtxKey).(Principal)
	return p, ok
}

// GetPrincipalFromContext retrieves the principal from a Gin context.
func GetPrincipalFromContext(c *gin.Context) (Principal, bool) {
	return GetPrincipalFromCtx(c.Request.Context())
}

// GetUserIDFromContext retrieves the authenticated user ID from a Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	p, ok := GetPrincipalFromContext(c)
	if !ok {
		return "", false
	}
	return p.UserID, true
}
