package handler

import (
	"net/http"
	"strconv"

	"weekly-review/internal/service"

	"github.com/gin-gonic/gin"
)

type IntegrationHandler struct {
	integration *service.IntegrationService
}

func NewIntegrationHandler(integration *service.IntegrationService) *IntegrationHandler {
	return &IntegrationHandler{integration: integration}
}

// POST /api/weeks/:weekId/integration  body: {"reportIds":[...]} (optional)
func (h *IntegrationHandler) Generate(c *gin.Context) {
	weekID, err := strconv.Atoi(c.Param("weekId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid week id"})
		return
	}
	var req struct {
		ReportIDs []int `json:"reportIds"`
	}
	// Body is optional: no body means merge the whole week.
	c.ShouldBindJSON(&req)

	r, err := h.integration.Generate(c.Request.Context(), weekID, req.ReportIDs)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, r)
}

// GET /api/weeks/:weekId/integration
func (h *IntegrationHandler) ListByWeek(c *gin.Context) {
	weekID, err := strconv.Atoi(c.Param("weekId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid week id"})
		return
	}
	reports, err := h.integration.ListByWeek(c.Request.Context(), weekID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(reports), "data": reports})
}

// DELETE /api/integration/:id
func (h *IntegrationHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid id"})
		return
	}
	if err := h.integration.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"id": id})
}
