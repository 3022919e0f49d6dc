package domain

// ApprovalDecision is an approver's verdict on an expense.
type ApprovalDecision string

const (
	DecisionApproved ApprovalDecision = "APPROVED"
	DecisionRejected ApprovalDecision = "REJECTED"
)

// ExpenseStatus returns the expense status implied by the decision.
func (d ApprovalDecision) ExpenseStatus() ExpenseStatus {
	if d == DecisionRejected {
		return ExpenseRejected
	}
	return ExpenseApproved
}

// Approval records one approver's decision for one expense.
// There is at most one row per (approver, expense) pair; a later decision
// by the same approver replaces the earlier one.
type Approval struct {
	ApprovalID string           `json:"approvalID"` // Primary Key (UUID)
	ApproverID string           `json:"approverID"` // FK -> users.user_id
	ExpenseID  string           `json:"expenseID"`  // FK -> expenses.expense_id
	Decision   ApprovalDecision `json:"decision"`
	AuditFields
}
