package dto

import (
	"time"

	"github.com/expenseflow/expense_approval_app/internal/core/domain"
)

// DecideApprovalRequest defines the data for an approval decision.
type DecideApprovalRequest struct {
	ExpenseID string `json:"expenseID" binding:"required"`
	Action    string `json:"action" binding:"required,oneof=approve reject"`
}

// Decision maps the request action onto the domain decision.
func (r DecideApprovalRequest) Decision() domain.ApprovalDecision {
	if r.Action == "reject" {
		return domain.DecisionRejected
	}
	return domain.DecisionApproved
}

// ListApprovalsParams defines query parameters for listing decisions.
type ListApprovalsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ApprovalResponse defines the approval data returned to clients.
type ApprovalResponse struct {
	ApprovalID string                  `json:"approvalID"`
	ApproverID string                  `json:"approverID"`
	ExpenseID  string                  `json:"expenseID"`
	Decision   domain.ApprovalDecision `json:"decision"`
	DecidedAt  time.Time               `json:"decidedAt"`
}

// ToApprovalResponse converts a domain.Approval to ApprovalResponse DTO
func ToApprovalResponse(a *domain.Approval) ApprovalResponse {
	return ApprovalResponse{
		ApprovalID: a.ApprovalID,
		ApproverID: a.ApproverID,
		ExpenseID:  a.ExpenseID,
		Decision:   a.Decision,
		DecidedAt:  a.LastUpdatedAt,
	}
}

// DecisionResponse is returned from the decide endpoint: the recorded
// approval plus the expense it moved.
type DecisionResponse struct {
	Approval ApprovalResponse `json:"approval"`
	Expense  ExpenseResponse  `json:"expense"`
}
