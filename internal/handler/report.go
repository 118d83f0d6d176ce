package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"weekly-review/internal/logger"
	"weekly-review/internal/model"
	"weekly-review/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reports *service.ReportService
	llm     *service.LLMClient
}

func NewReportHandler(reports *service.ReportService, llm *service.LLMClient) *ReportHandler {
	return &ReportHandler{reports: reports, llm: llm}
}

// POST /api/reports/save
func (h *ReportHandler) Save(c *gin.Context) {
	var req model.SaveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}

	r, err := h.reports.SaveReport(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	wk, err := h.reports.GetWeek(c.Request.Context(), r.WeekID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{
		"id":         r.ID,
		"weekId":     r.WeekID,
		"weekNumber": r.WeekNumber,
		"year":       wk.Year,
		"userName":   r.UserName,
		"isLocked":   r.IsLocked,
	})
}

// GET /api/reports/detail/:id
func (h *ReportHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid id"})
		return
	}
	r, err := h.reports.GetReport(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, r)
}

// DELETE /api/reports/delete/:id
func (h *ReportHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid id"})
		return
	}
	if err := h.reports.DeleteReport(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"id": id})
}

// PUT /api/reports/lock/:id and /api/reports/unlock/:id
func (h *ReportHandler) Lock(c *gin.Context)   { h.setLock(c, true) }
func (h *ReportHandler) Unlock(c *gin.Context) { h.setLock(c, false) }

func (h *ReportHandler) setLock(c *gin.Context, locked bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid id"})
		return
	}
	if locked {
		err = h.reports.LockReport(c.Request.Context(), id)
	} else {
		err = h.reports.UnlockReport(c.Request.Context(), id)
	}
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"id": id, "isLocked": locked})
}

// PUT /api/reports/ai-report/:id  body: {"content":"..."}
func (h *ReportHandler) UpdateAIReport(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid id"})
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}
	if err := h.reports.UpdateAIReport(c.Request.Context(), id, req.Content); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"id": id})
}

// sseWriter emits {type: status|content|complete|error} frames on an
// open event stream.
type sseWriter struct {
	w gin.ResponseWriter
}

func (s *sseWriter) frame(payload interface{}) {
	data, _ := json.Marshal(payload)
	fmt.Fprintf(s.w, "data: %s\n\n", data)
	s.w.Flush()
}

func (s *sseWriter) status(msg string) {
	s.frame(gin.H{"type": "status", "message": msg})
}

func (s *sseWriter) content(token string) {
	s.frame(gin.H{"type": "content", "content": token})
}

func (s *sseWriter) complete(full string) {
	s.frame(gin.H{"type": "complete", "content": full})
}

func (s *sseWriter) error(msg string) {
	s.frame(gin.H{"type": "error", "error": msg})
}

// POST /api/reports/generate-stream
//
// Streams the drafted report over SSE. Once headers are committed a
// failure is reported as an error frame, not an HTTP status. The request
// context is handed to the LLM client, so a dropped client aborts the
// upstream call.
func (h *ReportHandler) GenerateStream(c *gin.Context) {
	var req model.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	sse := &sseWriter{w: c.Writer}
	sse.status("正在生成复盘报告...")

	prompt := service.GeneratePrompt(req)
	logger.Info("report.generate", "user", req.UserName, "prompt_len", len(prompt))

	full, err := h.llm.Stream(c.Request.Context(), service.GenerateSystemPrompt, prompt, sse.content)
	if err != nil {
		logger.Error("report.generate failed", "user", req.UserName, "err", err)
		sse.error("报告生成失败，请稍后重试。")
		return
	}
	sse.complete(full)
}
