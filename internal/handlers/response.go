package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dairyworks/farm_ledger/internal/apperrors"
	"github.com/dairyworks/farm_ledger/internal/core/domain"
	"github.com/dairyworks/farm_ledger/internal/dto"
	"github.com/dairyworks/farm_ledger/internal/middleware"
	"github.com/dairyworks/farm_ledger/internal/utils/daterange"
	"github.com/gin-gonic/gin"
)

// respondOK writes the success envelope.
func respondOK(c *gin.Context, status int, data any) {
	c.JSON(status, dto.OK(data))
}

// respondError maps err to a status and writes the failure envelope. Server
// errors keep their detail out of the response body.
func respondError(c *gin.Context, err error, message string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error(message, slog.String("error", err.Error()))
		c.JSON(status, dto.Fail(message, ""))
		return
	}
	logger.Warn(message, slog.String("error", err.Error()), slog.Int("status", status))
	c.JSON(status, dto.Fail(message, err.Error()))
}

// bindJSON decodes and validates the body, writing a 400 on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind JSON", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid request format", err.Error()))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, params any) bool {
	if err := c.ShouldBindQuery(params); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid query parameters", err.Error()))
		return false
	}
	return true
}

// currentUser returns the authenticated user id or writes a 401.
func currentUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok || userID == "" {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized", ""))
		return "", false
	}
	return userID, true
}

// dateRange resolves the dateRange / startDate / endDate query parameters; presets are
// relative to now.
func dateRange(c *gin.Context, params dto.DateRangeParams, now time.Time) (domain.DateRange, bool) {
	r, err := daterange.Resolve(params.DateRange, params.StartDate, params.EndDate, now)
	if err != nil {
		respondError(c, err, "Invalid date range")
		return domain.DateRange{}, false
	}
	return r, true
}
