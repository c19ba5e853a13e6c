package handlers

import (
	"net/http"
	"time"

	"finsight/internal/errors"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// HealthCheckHandler handles the health check endpoint
type HealthCheckHandler struct {
	db *gorm.DB
}

// NewHealthCheckHandler creates a new health check handler
func NewHealthCheckHandler(db *gorm.DB) *HealthCheckHandler {
	return &HealthCheckHandler{db: db}
}

// HealthCheck adds the health check endpoint
// @Summary Health check
// @Description Check API and database connectivity status
// @Tags Health
// @Produce json
// @Success 200 {object} object{status=string,time=string} "Service is healthy"
// @Failure 503 {object} errors.ErrorResponse "SYSTEM_003 - Service unavailable (database connection failed)"
// @Router /health [get]
func (h *HealthCheckHandler) HealthCheck(c echo.Context) error {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}

	if err != nil {
		errorResponse := errors.NewErrorResponse(
			errors.SystemServiceUnavailable,
			getTraceID(c),
			errors.WithDetails("Database connection failed"),
		)
		return c.JSON(http.StatusServiceUnavailable, errorResponse)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
