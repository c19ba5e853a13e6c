package handlers

import (
	"net/http"

	"finsight/internal/dto"
	"finsight/internal/errors"
	"finsight/internal/models"
	"finsight/internal/repositories"
	"finsight/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// GoalHandler handles savings goal HTTP requests
type GoalHandler struct {
	goalRepo          repositories.GoalRepositoryInterface
	predictionService services.GoalPredictionServiceInterface
}

// NewGoalHandler creates a new goal handler
func NewGoalHandler(goalRepo repositories.GoalRepositoryInterface, predictionService services.GoalPredictionServiceInterface) *GoalHandler {
	return &GoalHandler{
		goalRepo:          goalRepo,
		predictionService: predictionService,
	}
}

// CreateGoal creates a new savings goal for the authenticated user
// @Summary Create a goal
// @Tags Goals
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateGoalRequest true "Goal details"
// @Success 201 {object} dto.GoalResponse "Goal created"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /goals [post]
func (h *GoalHandler) CreateGoal(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateGoalRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	target, err := decimal.NewFromString(req.TargetAmount)
	if err != nil || target.LessThanOrEqual(decimal.Zero) {
		return SendError(c, errors.GoalInvalidTarget)
	}

	current := decimal.Zero
	if req.CurrentAmount != "" {
		current, err = decimal.NewFromString(req.CurrentAmount)
		if err != nil || current.IsNegative() {
			return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid current amount"))
		}
	}

	goal := &models.Goal{
		UserID:        userID,
		Name:          req.Name,
		TargetAmount:  target,
		CurrentAmount: current,
		Deadline:      req.Deadline,
	}

	if err := h.goalRepo.Create(goal); err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, toGoalResponse(goal))
}

// ListGoals returns all goals belonging to the authenticated user
// @Summary List goals
// @Tags Goals
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.ListGoalsResponse "User goals"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /goals [get]
func (h *GoalHandler) ListGoals(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	goals, err := h.goalRepo.GetByUserID(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	responses := make([]dto.GoalResponse, 0, len(goals))
	for i := range goals {
		responses = append(responses, toGoalResponse(&goals[i]))
	}

	return c.JSON(http.StatusOK, dto.ListGoalsResponse{
		Goals: responses,
		Total: len(responses),
	})
}

// UpdateGoal updates a goal's fields
// @Summary Update goal
// @Tags Goals
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Goal ID"
// @Param request body dto.UpdateGoalRequest true "Fields to update"
// @Success 200 {object} dto.GoalResponse "Updated goal"
// @Failure 403 {object} errors.ErrorResponse "GOAL_002 - Goal belongs to another user"
// @Failure 404 {object} errors.ErrorResponse "GOAL_001 - Goal not found"
// @Router /goals/{id} [put]
func (h *GoalHandler) UpdateGoal(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	goal, err := h.loadOwnedGoal(c, userID)
	if err != nil || goal == nil {
		return err
	}

	var req dto.UpdateGoalRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	if req.Name != "" {
		goal.Name = req.Name
	}

	if req.TargetAmount != "" {
		target, err := decimal.NewFromString(req.TargetAmount)
		if err != nil || target.LessThanOrEqual(decimal.Zero) {
			return SendError(c, errors.GoalInvalidTarget)
		}
		goal.TargetAmount = target
	}

	if req.CurrentAmount != "" {
		current, err := decimal.NewFromString(req.CurrentAmount)
		if err != nil || current.IsNegative() {
			return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid current amount"))
		}
		goal.CurrentAmount = current
	}

	if req.Deadline != nil {
		goal.Deadline = req.Deadline
	}

	if err := h.goalRepo.Update(goal); err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, toGoalResponse(goal))
}

// DeleteGoal removes a goal
// @Summary Delete goal
// @Tags Goals
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Success 204 "Goal deleted"
// @Failure 404 {object} errors.ErrorResponse "GOAL_001 - Goal not found"
// @Router /goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	goal, err := h.loadOwnedGoal(c, userID)
	if err != nil || goal == nil {
		return err
	}

	if err := h.goalRepo.Delete(goal.ID); err != nil {
		return SendSystemError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// PredictGoalCompletion forecasts when the goal will be reached
// @Summary Predict goal completion
// @Description Forward the goal and the user's transaction history to the model service for a completion forecast
// @Tags Goals
// @Security BearerAuth
// @Produce json
// @Param id path string true "Goal ID"
// @Success 200 {object} dto.GoalPredictionResponse "Completion forecast"
// @Failure 403 {object} errors.ErrorResponse "GOAL_002 - Goal belongs to another user"
// @Failure 404 {object} errors.ErrorResponse "GOAL_001 - Goal not found"
// @Failure 503 {object} errors.ErrorResponse "SYSTEM_003 - Model service unavailable"
// @Router /goals/{id}/predict [get]
func (h *GoalHandler) PredictGoalCompletion(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid goal ID"))
	}

	prediction, err := h.predictionService.PredictGoalCompletion(c.Request().Context(), goalID, userID)
	if err != nil {
		switch err {
		case repositories.ErrGoalNotFound:
			return SendError(c, errors.GoalNotFound)
		case services.ErrGoalAccessDenied:
			return SendError(c, errors.GoalAccessDenied)
		}
		if isModelServiceError(err) {
			return SendError(c, errors.SystemServiceUnavailable)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, prediction)
}

func (h *GoalHandler) loadOwnedGoal(c echo.Context, userID uuid.UUID) (*models.Goal, error) {
	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid goal ID"))
	}

	goal, err := h.goalRepo.GetByID(goalID)
	if err != nil {
		if err == repositories.ErrGoalNotFound {
			return nil, SendError(c, errors.GoalNotFound)
		}
		return nil, SendSystemError(c, err)
	}

	if goal.UserID != userID {
		return nil, SendError(c, errors.GoalAccessDenied)
	}

	return goal, nil
}

func toGoalResponse(goal *models.Goal) dto.GoalResponse {
	return dto.GoalResponse{
		ID:            goal.ID,
		Name:          goal.Name,
		TargetAmount:  goal.TargetAmount.StringFixed(2),
		CurrentAmount: goal.CurrentAmount.StringFixed(2),
		Deadline:      goal.Deadline,
		CreatedAt:     goal.CreatedAt,
		UpdatedAt:     goal.UpdatedAt,
	}
}
