package repositories

import (
	"context"

	"github.com/expenseflow/expense_approval_app/internal/core/domain"
)

// ApprovalReader defines read operations for approval decision records
type ApprovalReader interface {
	// FindApprovalsByExpenseID retrieves all decisions recorded for an expense.
	FindApprovalsByExpenseID(ctx context.Context, expenseID string) ([]domain.Approval, error)

	// FindApprovalsByApproverID retrieves all decisions made by one approver.
	FindApprovalsByApproverID(ctx context.Context, approverID string, limit int, offset int) ([]domain.Approval, error)
}

// ApprovalRepositoryFacade combines all approval-related repository interfaces.
// Approval writes happen only through ExpenseDecider.ApplyDecision so the
// decision row and the expense status can never diverge.
type ApprovalRepositoryFacade interface {
	ApprovalReader
}
