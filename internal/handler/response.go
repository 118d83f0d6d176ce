package handler

import (
	"errors"
	"net/http"

	"weekly-review/internal/service"
	"weekly-review/internal/week"

	"github.com/gin-gonic/gin"
)

// All endpoints answer {success, ...} envelopes; component errors are
// mapped to status codes here so handlers stay thin.

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func fail(c *gin.Context, err error) {
	c.JSON(statusOf(err), gin.H{"success": false, "error": err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, week.ErrInvalidDate),
		errors.Is(err, week.ErrInvalidWeek):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrReportLocked),
		errors.Is(err, service.ErrUserExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrLLMRequest):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
