package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expenseflow/expense_approval_app/internal/apperrors"
	"github.com/expenseflow/expense_approval_app/internal/core/domain"
	"github.com/expenseflow/expense_approval_app/internal/core/policy"
	portsrepo "github.com/expenseflow/expense_approval_app/internal/core/ports/repositories"
	portssvc "github.com/expenseflow/expense_approval_app/internal/core/ports/services"
	"github.com/expenseflow/expense_approval_app/internal/dto"
)

var (
	ErrAmountNotPositive = errors.New("expense amount must be positive")
	ErrBadExpenseDate    = errors.New("expense date must be YYYY-MM-DD or RFC 3339")
)

// expenseService implements expense submission, queries and the approval
// lifecycle.
type expenseService struct {
	BaseService
	expenseRepo  portsrepo.ExpenseRepositoryFacade
	approvalRepo portsrepo.ApprovalRepositoryFacade
	currencySvc  portssvc.CurrencyReaderSvc
	userSvc      portssvc.UserReaderSvc
}

// NewExpenseService creates a new expense service.
func NewExpenseService(
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	approvalRepo portsrepo.ApprovalRepositoryFacade,
	currencySvc portssvc.CurrencyReaderSvc,
	userSvc portssvc.UserReaderSvc,
) portssvc.ExpenseSvcFacade {
	return &expenseService{
		expenseRepo:  expenseRepo,
		approvalRepo: approvalRepo,
		currencySvc:  currencySvc,
		userSvc:      userSvc,
	}
}

// Ensure expenseService implements the portssvc.ExpenseSvcFacade interface
var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

func parseExpenseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadExpenseDate, raw)
}

// SubmitExpense records a new expense in PENDING status.
func (s *expenseService) SubmitExpense(ctx context.Context, actor portssvc.Actor, req dto.CreateExpenseRequest) (*domain.Expense, error) {
	if !policy.Allow(actor.Role, policy.ActionCreateExpense) {
		return nil, apperrors.ErrForbidden
	}
	if !req.Amount.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrAmountNotPositive)
	}

	expenseDate, err := parseExpenseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	currencyCode := req.CurrencyCode
	if currencyCode == "" {
		owner, err := s.userSvc.GetUserByID(ctx, actor.UserID)
		if err != nil {
			s.LogError(ctx, err, "failed to load owner for currency default", slog.String("user_id", actor.UserID))
			return nil, fmt.Errorf("failed to resolve default currency: %w", err)
		}
		currencyCode = owner.DefaultCurrencyCode
	}
	if _, err := s.currencySvc.GetCurrencyByCode(ctx, currencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown currency %s", currencyCode))
		}
		return nil, fmt.Errorf("failed to validate currency %s: %w", currencyCode, err)
	}

	now := time.Now()
	expense := domain.Expense{
		ExpenseID:    uuid.NewString(),
		UserID:       actor.UserID,
		Amount:       req.Amount,
		CurrencyCode: currencyCode,
		Description:  req.Description,
		ExpenseDate:  expenseDate,
		Status:       domain.ExpensePending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "failed to save expense", slog.String("expense_id", expense.ExpenseID))
		return nil, fmt.Errorf("failed to submit expense: %w", err)
	}

	s.LogInfo(ctx, "expense submitted",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("user_id", actor.UserID),
		slog.String("amount", expense.Amount.String()),
		slog.String("currency", expense.CurrencyCode))
	return &expense, nil
}

// GetExpenseByID returns one expense. Owners see their own; anyone allowed
// to list all expenses sees any. Everyone else gets NotFound so existence
// is not leaked.
func (s *expenseService) GetExpenseByID(ctx context.Context, actor portssvc.Actor, expenseID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "failed to get expense", slog.String("expense_id", expenseID))
		return nil, fmt.Errorf("failed to get expense %s: %w", expenseID, err)
	}
	if expense.UserID != actor.UserID && !policy.Allow(actor.Role, policy.ActionListAllExpenses) {
		return nil, apperrors.ErrNotFound
	}
	return expense, nil
}

// ListExpenses returns the expenses visible to the actor.
func (s *expenseService) ListExpenses(ctx context.Context, actor portssvc.Actor, params dto.ListExpensesParams) ([]domain.Expense, error) {
	var expenses []domain.Expense
	var err error
	if policy.Allow(actor.Role, policy.ActionListAllExpenses) {
		expenses, err = s.expenseRepo.FindExpenses(ctx, params.Status, params.Limit, params.Offset)
	} else if policy.Allow(actor.Role, policy.ActionListOwnExpenses) {
		expenses, err = s.expenseRepo.FindExpensesByUserID(ctx, actor.UserID, params.Limit, params.Offset)
		if err == nil && params.Status != nil {
			filtered := expenses[:0]
			for _, e := range expenses {
				if e.Status == *params.Status {
					filtered = append(filtered, e)
				}
			}
			expenses = filtered
		}
	} else {
		return nil, apperrors.ErrForbidden
	}
	if err != nil {
		s.LogError(ctx, err, "failed to list expenses", slog.String("user_id", actor.UserID))
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	if expenses == nil {
		return []domain.Expense{}, nil
	}
	return expenses, nil
}

// ListApprovalsForExpense returns the decisions recorded for an expense the
// actor may see.
func (s *expenseService) ListApprovalsForExpense(ctx context.Context, actor portssvc.Actor, expenseID string) ([]domain.Approval, error) {
	if _, err := s.GetExpenseByID(ctx, actor, expenseID); err != nil {
		return nil, err
	}
	approvals, err := s.approvalRepo.FindApprovalsByExpenseID(ctx, expenseID)
	if err != nil {
		s.LogError(ctx, err, "failed to list approvals", slog.String("expense_id", expenseID))
		return nil, fmt.Errorf("failed to list approvals for expense %s: %w", expenseID, err)
	}
	if approvals == nil {
		return []domain.Approval{}, nil
	}
	return approvals, nil
}

// ListMyDecisions returns the decisions the actor has recorded, newest first.
func (s *expenseService) ListMyDecisions(ctx context.Context, actor portssvc.Actor, limit, offset int) ([]domain.Approval, error) {
	if !policy.Allow(actor.Role, policy.ActionDecideApproval) {
		return nil, apperrors.ErrForbidden
	}
	approvals, err := s.approvalRepo.FindApprovalsByApproverID(ctx, actor.UserID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "failed to list decisions", slog.String("approver_id", actor.UserID))
		return nil, fmt.Errorf("failed to list decisions for approver %s: %w", actor.UserID, err)
	}
	if approvals == nil {
		return []domain.Approval{}, nil
	}
	return approvals, nil
}

// DecideExpense records the actor's decision on a pending expense and moves
// it to the matching terminal status. The first decision wins; anything
// after that fails with ErrStateConflict.
func (s *expenseService) DecideExpense(ctx context.Context, actor portssvc.Actor, expenseID string, decision domain.ApprovalDecision) (*domain.Expense, *domain.Approval, error) {
	if !policy.Allow(actor.Role, policy.ActionDecideApproval) {
		return nil, nil, apperrors.ErrForbidden
	}
	if decision != domain.DecisionApproved && decision != domain.DecisionRejected {
		return nil, nil, apperrors.NewValidationError(fmt.Sprintf("unknown decision %q", decision))
	}

	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "failed to load expense for decision", slog.String("expense_id", expenseID))
		return nil, nil, fmt.Errorf("failed to load expense %s: %w", expenseID, err)
	}
	if expense.Status.IsTerminal() {
		return nil, nil, fmt.Errorf("%w: expense is already %s", apperrors.ErrStateConflict, expense.Status)
	}

	now := time.Now()
	approval := domain.Approval{
		ApprovalID: uuid.NewString(),
		ApproverID: actor.UserID,
		ExpenseID:  expenseID,
		Decision:   decision,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}
	newStatus := decision.ExpenseStatus()

	if err := s.expenseRepo.ApplyDecision(ctx, approval, newStatus); err != nil {
		if errors.Is(err, apperrors.ErrStateConflict) {
			return nil, nil, fmt.Errorf("%w: expense was decided concurrently", apperrors.ErrStateConflict)
		}
		s.LogError(ctx, err, "failed to apply decision",
			slog.String("expense_id", expenseID),
			slog.String("decision", string(decision)))
		return nil, nil, fmt.Errorf("failed to apply decision to expense %s: %w", expenseID, err)
	}

	expense.Status = newStatus
	expense.LastUpdatedAt = now
	expense.LastUpdatedBy = actor.UserID

	s.LogInfo(ctx, "expense decided",
		slog.String("expense_id", expenseID),
		slog.String("approver_id", actor.UserID),
		slog.String("status", string(newStatus)))
	return expense, &approval, nil
}
