package export

import (
	"fmt"

	"weekly-review/internal/model"

	"github.com/xuri/excelize/v2"
)

// WeekSummaryXLSX builds a one-sheet workbook listing a week's reports
// and its counters, for offline review outside the app.
func WeekSummaryXLSX(wk *model.Week, reports []model.ReviewReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	f.SetCellValue(sheet, "A1", fmt.Sprintf("第 %d 周（%s ~ %s）", wk.WeekNumber, wk.DateRangeStart, wk.DateRangeEnd))
	f.SetCellValue(sheet, "A2", fmt.Sprintf("报告 %d 份，已锁定 %d，未锁定 %d", wk.ReportCount, wk.LockedCount, wk.UnlockedCount))

	headers := []string{"ID", "姓名", "复盘方式", "开始", "结束", "已锁定", "提交时间"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 4)
		f.SetCellValue(sheet, cell, h)
	}
	for row, r := range reports {
		locked := "否"
		if r.IsLocked {
			locked = "是"
		}
		values := []interface{}{
			r.ID, r.UserName, r.ReviewMethod, r.DateRangeStart, r.DateRangeEnd,
			locked, r.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+5)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
