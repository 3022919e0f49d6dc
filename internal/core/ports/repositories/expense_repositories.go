package repositories

import (
	"context"

	"github.com/expenseflow/expense_approval_app/internal/core/domain"
)

// ExpenseReader defines read operations for expense data
type ExpenseReader interface {
	// FindExpenseByID retrieves a specific expense by its ID.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// FindExpensesByUserID retrieves a paginated list of a user's expenses.
	FindExpensesByUserID(ctx context.Context, userID string, limit int, offset int) ([]domain.Expense, error)

	// FindExpenses retrieves a paginated list of all expenses, optionally
	// filtered by status.
	FindExpenses(ctx context.Context, status *domain.ExpenseStatus, limit int, offset int) ([]domain.Expense, error)
}

// ExpenseWriter defines write operations for expense data
type ExpenseWriter interface {
	// SaveExpense persists a new expense.
	SaveExpense(ctx context.Context, expense domain.Expense) error
}

// ExpenseDecider applies an approval decision to an expense.
type ExpenseDecider interface {
	// ApplyDecision upserts the approval row for (approval.ApproverID,
	// approval.ExpenseID) and sets the expense status to newStatus. Both
	// writes commit in a single transaction.
	ApplyDecision(ctx context.Context, approval domain.Approval, newStatus domain.ExpenseStatus) error
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
	ExpenseDecider
}
