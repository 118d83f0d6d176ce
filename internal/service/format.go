package service

import (
	"fmt"
	"strings"

	"weekly-review/internal/model"
)

// Report content formatter: turns structured form fields into the
// Markdown blocks used both as LLM prompt context and as export
// sections. Pure string building, no I/O.

const emptyPlaceholder = "无"

func textOr(s string) string {
	if strings.TrimSpace(s) == "" {
		return emptyPlaceholder
	}
	return strings.TrimSpace(s)
}

func cell(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	// Pipes would break the table row.
	return strings.ReplaceAll(strings.TrimSpace(s), "|", "/")
}

// PlanTable renders plan rows as a Markdown table. withCompletion adds
// the 完成情况 column used for last-week plans.
func PlanTable(items []model.PlanItem, withCompletion bool) string {
	if len(items) == 0 {
		return emptyPlaceholder
	}
	var sb strings.Builder
	if withCompletion {
		sb.WriteString("| 任务 | 预期结果 | 完成情况 |\n|---|---|---|\n")
		for _, it := range items {
			fmt.Fprintf(&sb, "| %s | %s | %s |\n", cell(it.Task), cell(it.ExpectedResult), cell(it.Completion))
		}
	} else {
		sb.WriteString("| 任务 | 预期结果 |\n|---|---|\n")
		for _, it := range items {
			fmt.Fprintf(&sb, "| %s | %s |\n", cell(it.Task), cell(it.ExpectedResult))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// ActionsTable renders the seven-day morning/evening action grid.
func ActionsTable(actions []model.DayAction) string {
	if len(actions) == 0 {
		return emptyPlaceholder
	}
	var sb strings.Builder
	sb.WriteString("| 日期 | 上午行动 | 上午结果 | 下午行动 | 下午结果 |\n|---|---|---|---|---|\n")
	for _, a := range actions {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n",
			cell(a.Day), cell(a.MorningAction), cell(a.MorningResult),
			cell(a.EveningAction), cell(a.EveningResult))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// formSections renders the shared body used by both the generate prompt
// and the export document.
func formSections(lastWeekPlan []model.PlanItem, actions []model.DayAction,
	weekPlan []model.PlanItem, coordination, other string) string {
	var sb strings.Builder
	sb.WriteString("## 上周计划\n\n" + PlanTable(lastWeekPlan, true) + "\n\n")
	sb.WriteString("## 每日行动\n\n" + ActionsTable(actions) + "\n\n")
	sb.WriteString("## 本周计划\n\n" + PlanTable(weekPlan, false) + "\n\n")
	sb.WriteString("## 需协调事项\n\n" + textOr(coordination) + "\n\n")
	sb.WriteString("## 其他事项\n\n" + textOr(other) + "\n")
	return sb.String()
}

// GeneratePrompt builds the user prompt for drafting one review report.
func GeneratePrompt(req model.GenerateRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "姓名：%s\n", textOr(req.UserName))
	if len(req.DateRange) == 2 {
		fmt.Fprintf(&sb, "周期：%s 至 %s\n", req.DateRange[0], req.DateRange[1])
	}
	fmt.Fprintf(&sb, "复盘方式：%s\n\n", textOr(req.ReviewMethod))
	sb.WriteString(formSections(req.LastWeekPlan, req.LastWeekActions, req.WeekPlan,
		req.CoordinationItems, req.OtherItems))
	return sb.String()
}

// ReportMarkdown renders a stored report as a full Markdown document,
// the source for Word/PDF/HTML export.
func ReportMarkdown(r *model.ReviewReport) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# 周复盘报告 - %s\n\n", textOr(r.UserName))
	fmt.Fprintf(&sb, "**周期**：%s 至 %s（第 %d 周）\n\n", r.DateRangeStart, r.DateRangeEnd, r.WeekNumber)
	fmt.Fprintf(&sb, "**复盘方式**：%s\n\n", textOr(r.ReviewMethod))
	sb.WriteString(formSections(r.LastWeekPlan, r.LastWeekActions, r.WeekPlan,
		r.CoordinationItems, r.OtherItems))
	sb.WriteString("\n## AI 复盘报告\n\n" + textOr(r.AIReport) + "\n")
	return sb.String()
}

// IntegrationPrompt concatenates a week's reports into the merge prompt
// for the integration summary.
func IntegrationPrompt(wk WeekInfo, reports []model.ReviewReport) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "周期：%s 至 %s（第 %d 周），共 %d 份报告。\n\n",
		wk.Start, wk.End, wk.Number, len(reports))
	for i, r := range reports {
		fmt.Fprintf(&sb, "### 报告 %d：%s\n\n", i+1, textOr(r.UserName))
		sb.WriteString(textOr(r.AIReport))
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// WeekInfo is the slice of week fields the formatter needs.
type WeekInfo struct {
	Number int
	Start  string
	End    string
}

// System prompts for the two LLM calls.
const (
	GenerateSystemPrompt = `你是销售团队的周复盘报告助手。根据提供的计划、每日行动和协调事项，` +
		`生成一份结构化的 Markdown 周复盘报告，包含：本周亮点、计划完成分析、问题与改进、下周重点。` +
		`直接输出报告正文。`
	IntegrationSystemPrompt = `你是销售团队的周报汇总助手。将多份个人周复盘报告合并为一份团队整合报告，` +
		`包含：团队整体进展、各成员要点、共性问题、需管理层协调事项。直接输出 Markdown 正文。`
)
