package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finsight/internal/dto"
	"finsight/internal/models"
	"finsight/internal/repositories"
	"finsight/internal/repositories/repository_mocks"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// BudgetHandlerSuite defines the test suite for BudgetHandler
type BudgetHandlerSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	mockRepo   *repository_mocks.MockBudgetRepositoryInterface
	handler    *BudgetHandler
	echo       *echo.Echo
	testUserID uuid.UUID
}

// SetupTest runs before each test in the suite
func (s *BudgetHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = repository_mocks.NewMockBudgetRepositoryInterface(s.ctrl)
	s.handler = NewBudgetHandler(s.mockRepo)

	s.echo = echo.New()
	s.echo.Validator = &CustomValidator{validator: validator.New()}

	s.testUserID = uuid.New()
}

// TearDownTest runs after each test in the suite
func (s *BudgetHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

// TestBudgetHandlerSuite runs the test suite
func TestBudgetHandlerSuite(t *testing.T) {
	suite.Run(t, new(BudgetHandlerSuite))
}

func (s *BudgetHandlerSuite) createContext(method, path string, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set("user_id", s.testUserID)

	return c, rec
}

func (s *BudgetHandlerSuite) ownedBudget(name string, limit float64) *models.Budget {
	return &models.Budget{
		ID:          uuid.New(),
		UserID:      s.testUserID,
		Name:        name,
		LimitAmount: decimal.NewFromFloat(limit),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

func (s *BudgetHandlerSuite) TestCreateBudget_Success() {
	req := dto.CreateBudgetRequest{
		Name:        gofakeit.ProductCategory(),
		LimitAmount: "500.00",
	}

	s.mockRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(budget *models.Budget) error {
		s.Equal(s.testUserID, budget.UserID)
		s.Equal(req.Name, budget.Name)
		s.True(budget.LimitAmount.Equal(decimal.NewFromInt(500)))
		budget.ID = uuid.New()
		return nil
	})

	c, rec := s.createContext(http.MethodPost, "/api/v1/budgets", req)
	s.NoError(s.handler.CreateBudget(c))

	s.Equal(http.StatusCreated, rec.Code)

	var response dto.BudgetResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(req.Name, response.Name)
	s.Equal("500.00", response.LimitAmount)
}

func (s *BudgetHandlerSuite) TestCreateBudget_InvalidLimit() {
	req := dto.CreateBudgetRequest{
		Name:        "Groceries",
		LimitAmount: "five hundred",
	}

	c, rec := s.createContext(http.MethodPost, "/api/v1/budgets", req)
	s.NoError(s.handler.CreateBudget(c))

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "BUDGET_002")
}

func (s *BudgetHandlerSuite) TestCreateBudget_MissingName() {
	req := dto.CreateBudgetRequest{
		LimitAmount: "500.00",
	}

	c, rec := s.createContext(http.MethodPost, "/api/v1/budgets", req)
	s.NoError(s.handler.CreateBudget(c))

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "VALIDATION_001")
}

func (s *BudgetHandlerSuite) TestCreateBudget_Unauthenticated() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/budgets", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.NoError(s.handler.CreateBudget(c))

	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *BudgetHandlerSuite) TestListBudgets_Success() {
	budgets := []models.Budget{
		*s.ownedBudget("Groceries", 500),
		*s.ownedBudget("Dining", 200),
	}
	s.mockRepo.EXPECT().GetByUserID(s.testUserID).Return(budgets, nil)

	c, rec := s.createContext(http.MethodGet, "/api/v1/budgets", nil)
	s.NoError(s.handler.ListBudgets(c))

	s.Equal(http.StatusOK, rec.Code)

	var response dto.ListBudgetsResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(2, response.Total)
	s.Equal("Groceries", response.Budgets[0].Name)
}

func (s *BudgetHandlerSuite) TestGetBudget_Success() {
	budget := s.ownedBudget("Groceries", 500)
	s.mockRepo.EXPECT().GetByID(budget.ID).Return(budget, nil)

	c, rec := s.createContext(http.MethodGet, "/api/v1/budgets/"+budget.ID.String(), nil)
	c.SetParamNames("id")
	c.SetParamValues(budget.ID.String())

	s.NoError(s.handler.GetBudget(c))

	s.Equal(http.StatusOK, rec.Code)
}

func (s *BudgetHandlerSuite) TestGetBudget_NotFound() {
	budgetID := uuid.New()
	s.mockRepo.EXPECT().GetByID(budgetID).Return(nil, repositories.ErrBudgetNotFound)

	c, rec := s.createContext(http.MethodGet, "/api/v1/budgets/"+budgetID.String(), nil)
	c.SetParamNames("id")
	c.SetParamValues(budgetID.String())

	s.NoError(s.handler.GetBudget(c))

	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "BUDGET_001")
}

func (s *BudgetHandlerSuite) TestGetBudget_OwnedByAnotherUser() {
	budget := s.ownedBudget("Groceries", 500)
	budget.UserID = uuid.New()
	s.mockRepo.EXPECT().GetByID(budget.ID).Return(budget, nil)

	c, rec := s.createContext(http.MethodGet, "/api/v1/budgets/"+budget.ID.String(), nil)
	c.SetParamNames("id")
	c.SetParamValues(budget.ID.String())

	s.NoError(s.handler.GetBudget(c))

	s.Equal(http.StatusForbidden, rec.Code)
	s.Contains(rec.Body.String(), "BUDGET_003")
}

func (s *BudgetHandlerSuite) TestUpdateBudget_Success() {
	budget := s.ownedBudget("Groceries", 500)
	s.mockRepo.EXPECT().GetByID(budget.ID).Return(budget, nil)
	s.mockRepo.EXPECT().Update(gomock.Any()).DoAndReturn(func(updated *models.Budget) error {
		s.True(updated.LimitAmount.Equal(decimal.NewFromInt(750)))
		return nil
	})

	req := dto.UpdateBudgetRequest{LimitAmount: "750"}
	c, rec := s.createContext(http.MethodPut, "/api/v1/budgets/"+budget.ID.String(), req)
	c.SetParamNames("id")
	c.SetParamValues(budget.ID.String())

	s.NoError(s.handler.UpdateBudget(c))

	s.Equal(http.StatusOK, rec.Code)
}

func (s *BudgetHandlerSuite) TestDeleteBudget_Success() {
	budget := s.ownedBudget("Groceries", 500)
	s.mockRepo.EXPECT().GetByID(budget.ID).Return(budget, nil)
	s.mockRepo.EXPECT().Delete(budget.ID).Return(nil)

	c, rec := s.createContext(http.MethodDelete, "/api/v1/budgets/"+budget.ID.String(), nil)
	c.SetParamNames("id")
	c.SetParamValues(budget.ID.String())

	s.NoError(s.handler.DeleteBudget(c))

	s.Equal(http.StatusNoContent, rec.Code)
}
