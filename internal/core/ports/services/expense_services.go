package services

import (
	"context"

	"github.com/expenseflow/expense_approval_app/internal/core/domain"
	"github.com/expenseflow/expense_approval_app/internal/dto"
)

// ExpenseSubmitterSvc defines operations for creating expenses.
type ExpenseSubmitterSvc interface {
	// SubmitExpense records a new expense owned by the actor, in PENDING
	// status. Only employees may submit.
	SubmitExpense(ctx context.Context, actor Actor, req dto.CreateExpenseRequest) (*domain.Expense, error)
}

// ExpenseReaderSvc defines read operations for expenses.
type ExpenseReaderSvc interface {
	// GetExpenseByID retrieves one expense. Owners see their own; managers
	// and admins see any.
	GetExpenseByID(ctx context.Context, actor Actor, expenseID string) (*domain.Expense, error)

	// ListExpenses returns the expenses visible to the actor: their own for
	// employees, all for managers and admins.
	ListExpenses(ctx context.Context, actor Actor, params dto.ListExpensesParams) ([]domain.Expense, error)

	// ListApprovalsForExpense returns the decisions recorded for an expense,
	// visible under the same rules as the expense itself.
	ListApprovalsForExpense(ctx context.Context, actor Actor, expenseID string) ([]domain.Approval, error)

	// ListMyDecisions returns the decisions the actor has recorded, newest
	// first. Only managers and admins hold decisions to list.
	ListMyDecisions(ctx context.Context, actor Actor, limit, offset int) ([]domain.Approval, error)
}

// ExpenseDeciderSvc is the lifecycle engine: it maps approval decisions onto
// expense status.
type ExpenseDeciderSvc interface {
	// DecideExpense records the actor's decision for a pending expense and
	// moves it to the matching terminal status. Deciding a non-PENDING
	// expense fails with apperrors.ErrStateConflict.
	DecideExpense(ctx context.Context, actor Actor, expenseID string, decision domain.ApprovalDecision) (*domain.Expense, *domain.Approval, error)
}

// ExpenseSvcFacade combines all expense-related service interfaces
type ExpenseSvcFacade interface {
	ExpenseSubmitterSvc
	ExpenseReaderSvc
	ExpenseDeciderSvc
}
