package mapping

import (
	"github.com/expenseflow/expense_approval_app/internal/core/domain"
	"github.com/expenseflow/expense_approval_app/internal/models"
)

// ToModelApproval converts a domain Approval to a model Approval
func ToModelApproval(d domain.Approval) models.Approval {
	return models.Approval{
		ApprovalID:  d.ApprovalID,
		ApproverID:  d.ApproverID,
		ExpenseID:   d.ExpenseID,
		Decision:    string(d.Decision),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainApproval converts a model Approval to a domain Approval
func ToDomainApproval(m models.Approval) domain.Approval {
	return domain.Approval{
		ApprovalID:  m.ApprovalID,
		ApproverID:  m.ApproverID,
		ExpenseID:   m.ExpenseID,
		Decision:    domain.ApprovalDecision(m.Decision),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainApprovalSlice converts a slice of model Approvals to a slice of domain Approvals
func ToDomainApprovalSlice(ms []models.Approval) []domain.Approval {
	ds := make([]domain.Approval, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainApproval(m)
	}
	return ds
}
