package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/expenseflow/expense_approval_app/internal/apperrors"
	"github.com/expenseflow/expense_approval_app/internal/core/policy"
	portssvc "github.com/expenseflow/expense_approval_app/internal/core/ports/services"
	"github.com/expenseflow/expense_approval_app/internal/dto"
	"github.com/expenseflow/expense_approval_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// approvalHandler handles HTTP requests for approval decisions.
type approvalHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

// newApprovalHandler creates a new approvalHandler.
func newApprovalHandler(es portssvc.ExpenseSvcFacade) *approvalHandler {
	return &approvalHandler{
		expenseService: es,
	}
}

// registerApprovalRoutes registers all approval-related routes.
func registerApprovalRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := newApprovalHandler(expenseService)

	approvals := rg.Group("/approvals", middleware.RequireAction(policy.ActionDecideApproval))
	{
		approvals.POST("", h.decideExpense)
		approvals.GET("", h.listMyDecisions)
	}
}

// listMyDecisions godoc
// @Summary List the caller's decisions
// @Description Retrieves the approve and reject decisions the authenticated approver has recorded, newest first.
// @Tags approvals
// @Produce json
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.ApprovalResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /approvals [get]
func (h *approvalHandler) listMyDecisions(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListApprovalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	approvals, err := h.expenseService.ListMyDecisions(c.Request.Context(), actor, params.Limit, params.Offset)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to list decisions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list decisions"})
		return
	}

	responses := make([]dto.ApprovalResponse, len(approvals))
	for i := range approvals {
		responses[i] = dto.ToApprovalResponse(&approvals[i])
	}
	c.JSON(http.StatusOK, responses)
}

// decideExpense godoc
// @Summary Decide a pending expense
// @Description Records an approve or reject decision and moves the expense to its terminal status. Only PENDING expenses can be decided.
// @Tags approvals
// @Accept json
// @Produce json
// @Param decision body dto.DecideApprovalRequest true "Decision"
// @Success 200 {object} dto.DecisionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Expense already decided"
// @Security BearerAuth
// @Router /approvals [post]
func (h *approvalHandler) decideExpense(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.DecideApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	expense, approval, err := h.expenseService.DecideExpense(c.Request.Context(), actor, req.ExpenseID, req.Decision())
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Expense not found"})
		case errors.Is(err, apperrors.ErrStateConflict):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger := middleware.GetLoggerFromCtx(c.Request.Context())
			logger.Error("Failed to decide expense", slog.String("error", err.Error()), slog.String("expense_id", req.ExpenseID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to record decision"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.DecisionResponse{
		Approval: dto.ToApprovalResponse(approval),
		Expense:  dto.ToExpenseResponse(expense),
	})
}
