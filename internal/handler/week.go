package handler

import (
	"net/http"
	"strconv"

	"weekly-review/internal/service"

	"github.com/gin-gonic/gin"
)

type WeekHandler struct {
	reports *service.ReportService
}

func NewWeekHandler(reports *service.ReportService) *WeekHandler {
	return &WeekHandler{reports: reports}
}

// GET /api/weeks
func (h *WeekHandler) List(c *gin.Context) {
	weeks, err := h.reports.ListWeeks(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(weeks), "data": weeks})
}

// GET /api/weeks/:weekId
func (h *WeekHandler) Get(c *gin.Context) {
	weekID, err := strconv.Atoi(c.Param("weekId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid week id"})
		return
	}
	wk, err := h.reports.GetWeek(c.Request.Context(), weekID)
	if err != nil {
		fail(c, err)
		return
	}
	reports, err := h.reports.ListReportsByWeek(c.Request.Context(), weekID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"week": wk, "reports": reports})
}
