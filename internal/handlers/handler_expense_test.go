package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/expenseflow/expense_approval_app/internal/apperrors"
	"github.com/expenseflow/expense_approval_app/internal/core/domain"
	portssvc "github.com/expenseflow/expense_approval_app/internal/core/ports/services"
	"github.com/expenseflow/expense_approval_app/internal/dto"
	"github.com/expenseflow/expense_approval_app/internal/handlers"
	"github.com/expenseflow/expense_approval_app/internal/platform/config"
	"github.com/expenseflow/expense_approval_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ExpenseService ---
type MockExpenseService struct {
	mock.Mock
}

func (m *MockExpenseService) SubmitExpense(ctx context.Context, actor portssvc.Actor, req dto.CreateExpenseRequest) (*domain.Expense, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseService) GetExpenseByID(ctx context.Context, actor portssvc.Actor, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, actor, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseService) ListExpenses(ctx context.Context, actor portssvc.Actor, params dto.ListExpensesParams) ([]domain.Expense, error) {
	args := m.Called(ctx, actor, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseService) ListApprovalsForExpense(ctx context.Context, actor portssvc.Actor, expenseID string) ([]domain.Approval, error) {
	args := m.Called(ctx, actor, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Approval), args.Error(1)
}

func (m *MockExpenseService) ListMyDecisions(ctx context.Context, actor portssvc.Actor, limit, offset int) ([]domain.Approval, error) {
	args := m.Called(ctx, actor, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Approval), args.Error(1)
}

func (m *MockExpenseService) DecideExpense(ctx context.Context, actor portssvc.Actor, expenseID string, decision domain.ApprovalDecision) (*domain.Expense, *domain.Approval, error) {
	args := m.Called(ctx, actor, expenseID, decision)
	var expense *domain.Expense
	var approval *domain.Approval
	if args.Get(0) != nil {
		expense = args.Get(0).(*domain.Expense)
	}
	if args.Get(1) != nil {
		approval = args.Get(1).(*domain.Approval)
	}
	return expense, approval, args.Error(2)
}

var _ portssvc.ExpenseSvcFacade = (*MockExpenseService)(nil)

// --- Test Suite ---
type ExpenseHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockExpenseService *MockExpenseService
	jwtSecret          string
	cfg                *config.Config
}

func (suite *ExpenseHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(dto.RegisterCustomValidations())
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.cfg = &config.Config{
		JWTSecret:         suite.jwtSecret,
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "eaa-test",
		IsProduction:      true, // skip swagger routes in tests
	}

	suite.mockExpenseService = new(MockExpenseService)
	services := &portssvc.ServiceContainer{
		Expense: suite.mockExpenseService,
	}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, suite.cfg, services)
}

// generateTestToken creates a signed JWT for the given role.
func (suite *ExpenseHandlerTestSuite) generateTestToken(userID string, role domain.UserRole) string {
	user := &domain.User{UserID: userID, Role: role, Status: domain.StatusActive}
	token, err := utils.GenerateJWT(user, suite.jwtSecret, time.Hour, "eaa-test")
	suite.Require().NoError(err)
	return token
}

func (suite *ExpenseHandlerTestSuite) doRequest(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Create Expense Tests ---

func (suite *ExpenseHandlerTestSuite) TestCreateExpense_EmployeeSuccess() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID, domain.RoleEmployee)
	body := gin.H{"amount": "42.50", "currency": "USD", "description": "Taxi from the airport", "date": "2025-06-01"}

	created := &domain.Expense{
		ExpenseID:    uuid.NewString(),
		UserID:       userID,
		Amount:       decimal.NewFromFloat(42.50),
		CurrencyCode: "USD",
		Description:  "Taxi from the airport",
		Status:       domain.ExpensePending,
	}
	suite.mockExpenseService.On("SubmitExpense", mock.Anything, portssvc.Actor{UserID: userID, Role: domain.RoleEmployee}, mock.AnythingOfType("dto.CreateExpenseRequest")).Return(created, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/expenses", token, body)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ExpenseResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.ExpenseID, resp.ExpenseID)
	suite.Equal(domain.ExpensePending, resp.Status)
	suite.mockExpenseService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestCreateExpense_ManagerForbidden() {
	token := suite.generateTestToken(uuid.NewString(), domain.RoleManager)
	body := gin.H{"amount": "10", "description": "Lunch", "date": "2025-06-01"}

	w := suite.doRequest(http.MethodPost, "/api/v1/expenses", token, body)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockExpenseService.AssertNotCalled(suite.T(), "SubmitExpense", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExpenseHandlerTestSuite) TestCreateExpense_NoToken() {
	w := suite.doRequest(http.MethodPost, "/api/v1/expenses", "", gin.H{"amount": "10"})

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *ExpenseHandlerTestSuite) TestCreateExpense_ValidationError() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID, domain.RoleEmployee)
	body := gin.H{"amount": "0", "currency": "USD", "description": "Nothing", "date": "2025-06-01"}

	suite.mockExpenseService.On("SubmitExpense", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/expenses", token, body)

	suite.Equal(http.StatusBadRequest, w.Code)
}

// --- List Expenses Tests ---

func (suite *ExpenseHandlerTestSuite) TestListExpenses_Success() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID, domain.RoleEmployee)
	expenses := []domain.Expense{{ExpenseID: uuid.NewString(), UserID: userID, Status: domain.ExpensePending}}

	suite.mockExpenseService.On("ListExpenses", mock.Anything, portssvc.Actor{UserID: userID, Role: domain.RoleEmployee}, mock.AnythingOfType("dto.ListExpensesParams")).Return(expenses, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/expenses", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListExpensesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Expenses, 1)
}

func (suite *ExpenseHandlerTestSuite) TestGetExpense_NotFound() {
	token := suite.generateTestToken(uuid.NewString(), domain.RoleEmployee)
	expenseID := uuid.NewString()

	suite.mockExpenseService.On("GetExpenseByID", mock.Anything, mock.Anything, expenseID).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/expenses/"+expenseID, token, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

// --- Decide Approval Tests ---

func (suite *ExpenseHandlerTestSuite) TestDecideApproval_ManagerApproves() {
	managerID := uuid.NewString()
	token := suite.generateTestToken(managerID, domain.RoleManager)
	expenseID := uuid.NewString()
	body := gin.H{"expenseID": expenseID, "action": "approve"}

	expense := &domain.Expense{ExpenseID: expenseID, Status: domain.ExpenseApproved}
	approval := &domain.Approval{
		ApprovalID: uuid.NewString(),
		ApproverID: managerID,
		ExpenseID:  expenseID,
		Decision:   domain.DecisionApproved,
	}
	suite.mockExpenseService.On("DecideExpense", mock.Anything, portssvc.Actor{UserID: managerID, Role: domain.RoleManager}, expenseID, domain.DecisionApproved).Return(expense, approval, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/approvals", token, body)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.DecisionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.ExpenseApproved, resp.Expense.Status)
	suite.Equal(domain.DecisionApproved, resp.Approval.Decision)
	suite.mockExpenseService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestDecideApproval_EmployeeForbidden() {
	token := suite.generateTestToken(uuid.NewString(), domain.RoleEmployee)
	body := gin.H{"expenseID": uuid.NewString(), "action": "approve"}

	w := suite.doRequest(http.MethodPost, "/api/v1/approvals", token, body)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockExpenseService.AssertNotCalled(suite.T(), "DecideExpense", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExpenseHandlerTestSuite) TestDecideApproval_AlreadyDecidedConflict() {
	token := suite.generateTestToken(uuid.NewString(), domain.RoleManager)
	expenseID := uuid.NewString()
	body := gin.H{"expenseID": expenseID, "action": "reject"}

	suite.mockExpenseService.On("DecideExpense", mock.Anything, mock.Anything, expenseID, domain.DecisionRejected).
		Return(nil, nil, fmt.Errorf("%w: expense is already APPROVED", apperrors.ErrStateConflict)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/approvals", token, body)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *ExpenseHandlerTestSuite) TestDecideApproval_InvalidAction() {
	token := suite.generateTestToken(uuid.NewString(), domain.RoleManager)
	body := gin.H{"expenseID": uuid.NewString(), "action": "escalate"}

	w := suite.doRequest(http.MethodPost, "/api/v1/approvals", token, body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockExpenseService.AssertNotCalled(suite.T(), "DecideExpense", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExpenseHandlerTestSuite) TestListMyDecisions_ManagerSuccess() {
	managerID := uuid.NewString()
	token := suite.generateTestToken(managerID, domain.RoleManager)
	approvals := []domain.Approval{
		{ApprovalID: uuid.NewString(), ApproverID: managerID, Decision: domain.DecisionApproved},
	}

	suite.mockExpenseService.On("ListMyDecisions", mock.Anything, portssvc.Actor{UserID: managerID, Role: domain.RoleManager}, 20, 0).
		Return(approvals, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/approvals", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.ApprovalResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal(managerID, resp[0].ApproverID)
	suite.mockExpenseService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestListMyDecisions_EmployeeForbidden() {
	token := suite.generateTestToken(uuid.NewString(), domain.RoleEmployee)

	w := suite.doRequest(http.MethodGet, "/api/v1/approvals", token, nil)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockExpenseService.AssertNotCalled(suite.T(), "ListMyDecisions", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExpenseHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseHandlerTestSuite))
}
