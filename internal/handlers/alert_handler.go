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
)

// AlertHandler exposes the alerts produced by the risk analyzer
type AlertHandler struct {
	alertService services.AlertServiceInterface
}

// NewAlertHandler creates a new alert handler
func NewAlertHandler(alertService services.AlertServiceInterface) *AlertHandler {
	return &AlertHandler{
		alertService: alertService,
	}
}

// ListActiveAlerts returns all alerts still in active status
// @Summary List active alerts
// @Tags Alerts
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.ListAlertsResponse "Active alerts"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /alerts/active [get]
func (h *AlertHandler) ListActiveAlerts(c echo.Context) error {
	alerts, err := h.alertService.GetActiveAlerts()
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, toAlertListResponse(alerts))
}

// ListRecentAlerts returns the most recently created alerts
// @Summary List recent alerts
// @Tags Alerts
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.ListAlertsResponse "Recent alerts"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /alerts/recent [get]
func (h *AlertHandler) ListRecentAlerts(c echo.Context) error {
	alerts, err := h.alertService.GetRecentAlerts()
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, toAlertListResponse(alerts))
}

// ResolveAlert marks an alert as resolved
// @Summary Resolve alert
// @Tags Alerts
// @Security BearerAuth
// @Param id path string true "Alert ID"
// @Success 200 {object} SuccessResponse "Alert resolved"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_003 - Invalid alert ID"
// @Failure 404 {object} errors.ErrorResponse "ALERT_001 - Alert not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /alerts/{id}/resolve [patch]
func (h *AlertHandler) ResolveAlert(c echo.Context) error {
	alertID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid alert ID"))
	}

	if err := h.alertService.ResolveAlert(alertID); err != nil {
		if err == repositories.ErrAlertNotFound {
			return SendError(c, errors.AlertNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Alert resolved",
	})
}

func toAlertListResponse(alerts []models.Alert) dto.ListAlertsResponse {
	responses := make([]dto.AlertResponse, 0, len(alerts))
	for i := range alerts {
		alert := &alerts[i]
		responses = append(responses, dto.AlertResponse{
			ID:          alert.ID,
			Type:        alert.Type,
			Severity:    alert.Severity,
			Status:      alert.Status,
			Message:     alert.Message,
			Explanation: alert.Explanation,
			Confidence:  alert.Confidence,
			CreatedAt:   alert.CreatedAt,
		})
	}

	return dto.ListAlertsResponse{
		Alerts: responses,
		Total:  len(responses),
	}
}
