package service

import (
	"strings"
	"testing"

	"weekly-review/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestPlanTableEmpty(t *testing.T) {
	assert.Equal(t, "无", PlanTable(nil, true))
	assert.Equal(t, "无", PlanTable([]model.PlanItem{}, false))
}

func TestPlanTableRows(t *testing.T) {
	got := PlanTable([]model.PlanItem{
		{Task: "拜访客户A", ExpectedResult: "签约", Completion: "已完成"},
		{Task: "整理报价", ExpectedResult: "发出"},
	}, true)

	assert.Contains(t, got, "| 任务 | 预期结果 | 完成情况 |")
	assert.Contains(t, got, "| 拜访客户A | 签约 | 已完成 |")
	assert.Contains(t, got, "| 整理报价 | 发出 | - |")
}

func TestPlanTableWithoutCompletionColumn(t *testing.T) {
	got := PlanTable([]model.PlanItem{{Task: "a", ExpectedResult: "b"}}, false)
	assert.NotContains(t, got, "完成情况")
	assert.Contains(t, got, "| a | b |")
}

func TestCellEscapesPipes(t *testing.T) {
	got := PlanTable([]model.PlanItem{{Task: "a|b", ExpectedResult: "c"}}, false)
	assert.Contains(t, got, "| a/b | c |")
}

func TestActionsTableEmpty(t *testing.T) {
	assert.Equal(t, "无", ActionsTable(nil))
}

func TestActionsTableRows(t *testing.T) {
	got := ActionsTable([]model.DayAction{
		{Day: "周一", MorningAction: "例会", MorningResult: "确定目标", EveningAction: "回访", EveningResult: "两家意向"},
	})
	assert.Contains(t, got, "| 周一 | 例会 | 确定目标 | 回访 | 两家意向 |")
}

func TestGeneratePromptIncludesAllSections(t *testing.T) {
	got := GeneratePrompt(model.GenerateRequest{
		UserName:          "张三",
		DateRange:         []string{"2025-01-06", "2025-01-12"},
		ReviewMethod:      "offline",
		CoordinationItems: "需要市场部支持",
	})

	assert.Contains(t, got, "姓名：张三")
	assert.Contains(t, got, "2025-01-06 至 2025-01-12")
	assert.Contains(t, got, "## 上周计划")
	assert.Contains(t, got, "## 每日行动")
	assert.Contains(t, got, "## 本周计划")
	assert.Contains(t, got, "需要市场部支持")
	// Empty arrays degrade to the placeholder, not an empty table.
	assert.Contains(t, got, "## 上周计划\n\n无")
}

func TestReportMarkdown(t *testing.T) {
	md := ReportMarkdown(&model.ReviewReport{
		UserName:       "李四",
		DateRangeStart: "2025-01-06",
		DateRangeEnd:   "2025-01-12",
		WeekNumber:     1,
		ReviewMethod:   "online",
		AIReport:       "本周完成签约两单。",
	})

	assert.True(t, strings.HasPrefix(md, "# 周复盘报告 - 李四"))
	assert.Contains(t, md, "第 1 周")
	assert.Contains(t, md, "## AI 复盘报告")
	assert.Contains(t, md, "本周完成签约两单。")
}

func TestIntegrationPrompt(t *testing.T) {
	got := IntegrationPrompt(WeekInfo{Number: 3, Start: "2025-01-20", End: "2025-01-26"},
		[]model.ReviewReport{
			{UserName: "张三", AIReport: "A 报告"},
			{UserName: "李四", AIReport: "B 报告"},
		})

	assert.Contains(t, got, "第 3 周")
	assert.Contains(t, got, "共 2 份报告")
	assert.Contains(t, got, "### 报告 1：张三")
	assert.Contains(t, got, "### 报告 2：李四")
	assert.Contains(t, got, "B 报告")
}
