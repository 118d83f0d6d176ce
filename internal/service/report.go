package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"weekly-review/internal/logger"
	"weekly-review/internal/model"
	"weekly-review/internal/week"

	"gorm.io/gorm"
)

var ErrStorage = errors.New("storage operation failed")

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

// ReportService owns review report CRUD and the denormalized week
// counters. Every write that can change a week's counts runs the
// recompute inside the same transaction, and the recompute is the only
// code path that writes report_count/locked_count/unlocked_count.
type ReportService struct {
	db    *gorm.DB
	files *FileStore
}

func NewReportService(db *gorm.DB, files *FileStore) *ReportService {
	return &ReportService{db: db, files: files}
}

func (s *ReportService) SaveReport(ctx context.Context, req model.SaveReportRequest) (*model.ReviewReport, error) {
	if len(req.DateRange) != 2 || strings.TrimSpace(req.DateRange[1]) == "" {
		return nil, fmt.Errorf("%w: dateRange", ErrValidation)
	}
	if req.SelectedUser <= 0 && strings.TrimSpace(req.SelectedUserName) == "" {
		return nil, fmt.Errorf("%w: selectedUser", ErrValidation)
	}

	endDate, err := week.ParseDate(req.DateRange[1])
	if err != nil {
		return nil, fmt.Errorf("%w: dateRange[1] %v", ErrValidation, err)
	}
	weekNumber, err := week.NumberOf(endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	// The form may omit the start date; fall back to the bucket's Monday
	// so the date column never receives an empty string.
	startStr := strings.TrimSpace(req.DateRange[0])
	if startStr == "" {
		start, _, _ := week.RangeOf(weekNumber)
		startStr = start.Format(week.DateLayout)
	}

	userName := strings.TrimSpace(req.SelectedUserName)
	if userName == "" {
		var u model.User
		if err := s.db.WithContext(ctx).First(&u, req.SelectedUser).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: user %d", ErrNotFound, req.SelectedUser)
			}
			return nil, storageErr("query user", err)
		}
		userName = u.Name
	}

	method := req.ReviewMethod
	if method != "online" {
		method = "offline"
	}

	report := &model.ReviewReport{
		UserID:            req.SelectedUser,
		UserName:          userName,
		DateRangeStart:    startStr,
		DateRangeEnd:      req.DateRange[1],
		ReviewMethod:      method,
		LastWeekPlan:      req.LastWeekPlan,
		LastWeekActions:   req.LastWeekActions,
		WeekPlan:          req.WeekPlan,
		CoordinationItems: req.CoordinationItems,
		OtherItems:        req.OtherItems,
		AIReport:          req.AIReport,
		WeekNumber:        weekNumber,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wk, err := upsertWeek(tx, weekNumber)
		if err != nil {
			return err
		}
		report.WeekID = wk.ID
		if err := tx.Create(report).Error; err != nil {
			return storageErr("insert report", err)
		}
		return recomputeWeekStatistics(tx, wk.ID)
	})
	if err != nil {
		return nil, err
	}

	if report.AIReport != "" {
		s.files.WriteReport(report.ID, report.AIReport)
	}
	logger.Info("report saved", "id", report.ID, "week", weekNumber, "user", userName)
	return report, nil
}

// upsertWeek finds or creates the week row keyed (week_number, year).
// The date range is always derived from the week number, never taken
// from caller input.
func upsertWeek(tx *gorm.DB, weekNumber int) (*model.Week, error) {
	start, end, err := week.RangeOf(weekNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	year := start.Year()

	var wk model.Week
	err = tx.Where("week_number = ? AND year = ?", weekNumber, year).First(&wk).Error
	if err == nil {
		return &wk, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storageErr("query week", err)
	}

	wk = model.Week{
		WeekNumber:     weekNumber,
		Year:           year,
		DateRangeStart: start.Format(week.DateLayout),
		DateRangeEnd:   end.Format(week.DateLayout),
	}
	if err := tx.Create(&wk).Error; err != nil {
		// Lost the race against a concurrent saver; their row wins.
		if ferr := tx.Where("week_number = ? AND year = ?", weekNumber, year).First(&wk).Error; ferr == nil {
			return &wk, nil
		}
		return nil, storageErr("insert week", err)
	}
	return &wk, nil
}

// recomputeWeekStatistics re-derives the three counters from the report
// rows. Counting then writing keeps the operation idempotent; nothing
// else may touch these columns.
func recomputeWeekStatistics(tx *gorm.DB, weekID int) error {
	var total, locked int64
	if err := tx.Model(&model.ReviewReport{}).Where("week_id = ?", weekID).Count(&total).Error; err != nil {
		return storageErr("count reports", err)
	}
	if err := tx.Model(&model.ReviewReport{}).Where("week_id = ? AND is_locked = ?", weekID, true).Count(&locked).Error; err != nil {
		return storageErr("count locked reports", err)
	}
	err := tx.Model(&model.Week{}).Where("id = ?", weekID).Updates(map[string]interface{}{
		"report_count":   total,
		"locked_count":   locked,
		"unlocked_count": total - locked,
	}).Error
	if err != nil {
		return storageErr("update week statistics", err)
	}
	return nil
}

// RecomputeWeekStatistics is the repair entrypoint for a single week.
func (s *ReportService) RecomputeWeekStatistics(ctx context.Context, weekID int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return recomputeWeekStatistics(tx, weekID)
	})
}

func (s *ReportService) GetReport(ctx context.Context, id int) (*model.ReviewReport, error) {
	var r model.ReviewReport
	if err := s.db.WithContext(ctx).First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: report %d", ErrNotFound, id)
		}
		return nil, storageErr("query report", err)
	}
	return &r, nil
}

func (s *ReportService) DeleteReport(ctx context.Context, id int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The owning week must be captured before the row disappears.
		var r model.ReviewReport
		if err := tx.First(&r, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: report %d", ErrNotFound, id)
			}
			return storageErr("query report", err)
		}
		if err := tx.Delete(&model.ReviewReport{}, id).Error; err != nil {
			return storageErr("delete report", err)
		}
		if err := recomputeWeekStatistics(tx, r.WeekID); err != nil {
			return err
		}
		s.files.RemoveReport(id)
		return nil
	})
}

// UpdateAIReport replaces generated text on an unlocked report. Locked
// rows are rejected at this boundary rather than trusting callers.
func (s *ReportService) UpdateAIReport(ctx context.Context, id int, content string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var r model.ReviewReport
		if err := tx.First(&r, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: report %d", ErrNotFound, id)
			}
			return storageErr("query report", err)
		}
		if r.IsLocked {
			return fmt.Errorf("%w: report %d", ErrReportLocked, id)
		}
		if err := tx.Model(&r).Update("ai_report", content).Error; err != nil {
			return storageErr("update ai_report", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.files.WriteReport(id, content)
	return nil
}

func (s *ReportService) LockReport(ctx context.Context, id int) error {
	return s.setLocked(ctx, id, true)
}

func (s *ReportService) UnlockReport(ctx context.Context, id int) error {
	return s.setLocked(ctx, id, false)
}

func (s *ReportService) setLocked(ctx context.Context, id int, locked bool) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var r model.ReviewReport
		if err := tx.First(&r, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: report %d", ErrNotFound, id)
			}
			return storageErr("query report", err)
		}
		if err := tx.Model(&r).Update("is_locked", locked).Error; err != nil {
			return storageErr("update lock flag", err)
		}
		return recomputeWeekStatistics(tx, r.WeekID)
	})
}

func (s *ReportService) ListWeeks(ctx context.Context) ([]model.Week, error) {
	var weeks []model.Week
	err := s.db.WithContext(ctx).
		Order("year DESC, week_number DESC").
		Find(&weeks).Error
	if err != nil {
		return nil, storageErr("list weeks", err)
	}
	return weeks, nil
}

func (s *ReportService) GetWeek(ctx context.Context, weekID int) (*model.Week, error) {
	var wk model.Week
	if err := s.db.WithContext(ctx).First(&wk, weekID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: week %d", ErrNotFound, weekID)
		}
		return nil, storageErr("query week", err)
	}
	return &wk, nil
}

func (s *ReportService) ListReportsByWeek(ctx context.Context, weekID int) ([]model.ReviewReport, error) {
	var reports []model.ReviewReport
	err := s.db.WithContext(ctx).
		Where("week_id = ?", weekID).
		Order("created_at DESC, id DESC").
		Find(&reports).Error
	if err != nil {
		return nil, storageErr("list reports", err)
	}
	return reports, nil
}

// ExportMarkdown renders a report for document export, preferring the
// flat-file mirror of the generated text when one exists.
func (s *ReportService) ExportMarkdown(r *model.ReviewReport) string {
	if mirrored := s.files.ReadReport(r.ID); mirrored != "" {
		clone := *r
		clone.AIReport = mirrored
		return ReportMarkdown(&clone)
	}
	return ReportMarkdown(r)
}
