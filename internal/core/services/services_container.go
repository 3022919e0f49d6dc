package services

import (
	portsrepo "github.com/expenseflow/expense_approval_app/internal/core/ports/repositories"
	portssvc "github.com/expenseflow/expense_approval_app/internal/core/ports/services"
	"github.com/expenseflow/expense_approval_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.User = NewUserService(repos.UserRepo)
	container.Expense = NewExpenseService(repos.ExpenseRepo, repos.ApprovalRepo, container.Currency, container.User)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)

	return container
}
