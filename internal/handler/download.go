package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"weekly-review/internal/export"
	"weekly-review/internal/model"
	"weekly-review/internal/service"

	"github.com/gin-gonic/gin"
)

type DownloadHandler struct {
	reports *service.ReportService
}

func NewDownloadHandler(reports *service.ReportService) *DownloadHandler {
	return &DownloadHandler{reports: reports}
}

type renderedDoc struct {
	data        []byte
	contentType string
	ext         string
}

func renderDocument(ctx context.Context, format, title, markdown string) (*renderedDoc, error) {
	switch format {
	case "word":
		data, err := export.Word(ctx, title, markdown)
		if err != nil {
			return nil, err
		}
		return &renderedDoc{
			data:        data,
			contentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			ext:         "docx",
		}, nil
	case "pdf":
		data, err := export.PDF(ctx, title, markdown)
		if err != nil {
			return nil, err
		}
		return &renderedDoc{data: data, contentType: "application/pdf", ext: "pdf"}, nil
	case "html":
		page, err := export.HTML(title, markdown)
		if err != nil {
			return nil, err
		}
		return &renderedDoc{data: []byte(page), contentType: "text/html; charset=utf-8", ext: "html"}, nil
	default:
		return nil, fmt.Errorf("%w: format %q", service.ErrValidation, format)
	}
}

func attachment(c *gin.Context, name, contentType string, data []byte) {
	c.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.PathEscape(name)))
	c.Data(http.StatusOK, contentType, data)
}

func reportTitle(r *model.ReviewReport) string {
	return fmt.Sprintf("周复盘报告_%s_第%d周", r.UserName, r.WeekNumber)
}

// GET /api/reports/download/:format/:id — format is word, pdf or html.
func (h *DownloadHandler) Report(c *gin.Context) {
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

	title := reportTitle(r)
	doc, err := renderDocument(c.Request.Context(), c.Param("format"), title, h.reports.ExportMarkdown(r))
	if err != nil {
		fail(c, err)
		return
	}
	attachment(c, title+"."+doc.ext, doc.contentType, doc.data)
}

// GET /api/weeks/:weekId/download/:format?reportIds=1,2
//
// One selected report downloads as a single file; several are bundled
// into a zip. No selection means the whole week.
func (h *DownloadHandler) Week(c *gin.Context) {
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

	if ids := parseIDs(c.Query("reportIds")); len(ids) > 0 {
		reports = filterByID(reports, ids)
	}
	if len(reports) == 0 {
		fail(c, fmt.Errorf("%w: no reports selected", service.ErrNotFound))
		return
	}

	format := c.Param("format")
	if len(reports) == 1 {
		r := &reports[0]
		title := reportTitle(r)
		doc, err := renderDocument(c.Request.Context(), format, title, h.reports.ExportMarkdown(r))
		if err != nil {
			fail(c, err)
			return
		}
		attachment(c, title+"."+doc.ext, doc.contentType, doc.data)
		return
	}

	var entries []export.ZipEntry
	for i := range reports {
		r := &reports[i]
		title := reportTitle(r)
		doc, err := renderDocument(c.Request.Context(), format, title, h.reports.ExportMarkdown(r))
		if err != nil {
			fail(c, err)
			return
		}
		entries = append(entries, export.ZipEntry{Name: title + "." + doc.ext, Data: doc.data})
	}
	data, err := export.Zip(entries)
	if err != nil {
		fail(c, err)
		return
	}
	name := fmt.Sprintf("第%d周复盘报告_%s.zip", wk.WeekNumber, format)
	attachment(c, name, "application/zip", data)
}

// GET /api/weeks/:weekId/summary.xlsx
func (h *DownloadHandler) WeekSummaryXLSX(c *gin.Context) {
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
	data, err := export.WeekSummaryXLSX(wk, reports)
	if err != nil {
		fail(c, err)
		return
	}
	name := fmt.Sprintf("第%d周汇总.xlsx", wk.WeekNumber)
	attachment(c, name, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func parseIDs(s string) []int {
	var ids []int
	for _, part := range strings.Split(s, ",") {
		if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			ids = append(ids, n)
		}
	}
	return ids
}

func filterByID(reports []model.ReviewReport, ids []int) []model.ReviewReport {
	want := make(map[int]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []model.ReviewReport
	for _, r := range reports {
		if want[r.ID] {
			out = append(out, r)
		}
	}
	return out
}
