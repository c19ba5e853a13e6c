package handlers

import (
	"net/http"

	"finsight/internal/dto"
	"finsight/internal/errors"
	"finsight/internal/models"
	"finsight/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// BudgetHandler handles budget-related HTTP requests
type BudgetHandler struct {
	budgetRepo repositories.BudgetRepositoryInterface
}

// NewBudgetHandler creates a new budget handler
func NewBudgetHandler(budgetRepo repositories.BudgetRepositoryInterface) *BudgetHandler {
	return &BudgetHandler{
		budgetRepo: budgetRepo,
	}
}

// CreateBudget creates a new monthly budget for the authenticated user
// @Summary Create a budget
// @Description Create a monthly spending budget for a category
// @Tags Budgets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateBudgetRequest true "Budget details"
// @Success 201 {object} dto.BudgetResponse "Budget created"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /budgets [post]
func (h *BudgetHandler) CreateBudget(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	limit, err := decimal.NewFromString(req.LimitAmount)
	if err != nil {
		return SendError(c, errors.BudgetInvalidLimit, errors.WithDetails("Limit amount must be a decimal number"))
	}

	budget := &models.Budget{
		UserID:      userID,
		Name:        req.Name,
		LimitAmount: limit,
	}

	if err := h.budgetRepo.Create(budget); err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, toBudgetResponse(budget))
}

// ListBudgets returns all budgets belonging to the authenticated user
// @Summary List budgets
// @Tags Budgets
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.ListBudgetsResponse "User budgets"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /budgets [get]
func (h *BudgetHandler) ListBudgets(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	budgets, err := h.budgetRepo.GetByUserID(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	responses := make([]dto.BudgetResponse, 0, len(budgets))
	for i := range budgets {
		responses = append(responses, toBudgetResponse(&budgets[i]))
	}

	return c.JSON(http.StatusOK, dto.ListBudgetsResponse{
		Budgets: responses,
		Total:   len(responses),
	})
}

// GetBudget returns a single budget by ID
// @Summary Get budget by ID
// @Tags Budgets
// @Security BearerAuth
// @Produce json
// @Param id path string true "Budget ID"
// @Success 200 {object} dto.BudgetResponse "Budget"
// @Failure 403 {object} errors.ErrorResponse "BUDGET_003 - Budget belongs to another user"
// @Failure 404 {object} errors.ErrorResponse "BUDGET_001 - Budget not found"
// @Router /budgets/{id} [get]
func (h *BudgetHandler) GetBudget(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	budget, err := h.loadOwnedBudget(c, userID)
	if err != nil {
		return err
	}
	if budget == nil {
		return nil // error response already sent
	}

	return c.JSON(http.StatusOK, toBudgetResponse(budget))
}

// UpdateBudget updates a budget's name or limit
// @Summary Update budget
// @Tags Budgets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Budget ID"
// @Param request body dto.UpdateBudgetRequest true "Fields to update"
// @Success 200 {object} dto.BudgetResponse "Updated budget"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body"
// @Failure 404 {object} errors.ErrorResponse "BUDGET_001 - Budget not found"
// @Router /budgets/{id} [put]
func (h *BudgetHandler) UpdateBudget(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	budget, err := h.loadOwnedBudget(c, userID)
	if err != nil {
		return err
	}
	if budget == nil {
		return nil
	}

	var req dto.UpdateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	if req.Name != "" {
		budget.Name = req.Name
	}

	if req.LimitAmount != "" {
		limit, err := decimal.NewFromString(req.LimitAmount)
		if err != nil {
			return SendError(c, errors.BudgetInvalidLimit, errors.WithDetails("Limit amount must be a decimal number"))
		}
		budget.LimitAmount = limit
	}

	if err := h.budgetRepo.Update(budget); err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, toBudgetResponse(budget))
}

// DeleteBudget removes a budget
// @Summary Delete budget
// @Tags Budgets
// @Security BearerAuth
// @Param id path string true "Budget ID"
// @Success 204 "Budget deleted"
// @Failure 404 {object} errors.ErrorResponse "BUDGET_001 - Budget not found"
// @Router /budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	budget, err := h.loadOwnedBudget(c, userID)
	if err != nil {
		return err
	}
	if budget == nil {
		return nil
	}

	if err := h.budgetRepo.Delete(budget.ID); err != nil {
		return SendSystemError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// loadOwnedBudget resolves the :id path param to a budget owned by userID.
// On failure it writes the error response and returns a nil budget.
func (h *BudgetHandler) loadOwnedBudget(c echo.Context, userID uuid.UUID) (*models.Budget, error) {
	budgetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid budget ID"))
	}

	budget, err := h.budgetRepo.GetByID(budgetID)
	if err != nil {
		if err == repositories.ErrBudgetNotFound {
			return nil, SendError(c, errors.BudgetNotFound)
		}
		return nil, SendSystemError(c, err)
	}

	if budget.UserID != userID {
		return nil, SendError(c, errors.BudgetAccessDenied)
	}

	return budget, nil
}

func toBudgetResponse(budget *models.Budget) dto.BudgetResponse {
	return dto.BudgetResponse{
		ID:          budget.ID,
		Name:        budget.Name,
		LimitAmount: budget.LimitAmount.StringFixed(2),
		CreatedAt:   budget.CreatedAt,
		UpdatedAt:   budget.UpdatedAt,
	}
}
