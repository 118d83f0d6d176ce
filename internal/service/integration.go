package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"weekly-review/internal/logger"
	"weekly-review/internal/model"

	"gorm.io/gorm"
)

// IntegrationService merges a week's individual reports into one team
// summary via a second LLM call. The UI regenerates rather than keeping
// history, so generation replaces any previous integration report for
// the week.
type IntegrationService struct {
	db    *gorm.DB
	llm   *LLMClient
	files *FileStore
}

func NewIntegrationService(db *gorm.DB, llm *LLMClient, files *FileStore) *IntegrationService {
	return &IntegrationService{db: db, llm: llm, files: files}
}

// Generate builds the merged report for a week. reportIDs narrows the
// input set; empty means every report in the week.
func (s *IntegrationService) Generate(ctx context.Context, weekID int, reportIDs []int) (*model.IntegrationReport, error) {
	var wk model.Week
	if err := s.db.WithContext(ctx).First(&wk, weekID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: week %d", ErrNotFound, weekID)
		}
		return nil, storageErr("query week", err)
	}

	q := s.db.WithContext(ctx).Where("week_id = ?", weekID)
	if len(reportIDs) > 0 {
		q = q.Where("id IN ?", reportIDs)
	}
	var reports []model.ReviewReport
	if err := q.Order("created_at, id").Find(&reports).Error; err != nil {
		return nil, storageErr("list reports", err)
	}
	if len(reports) == 0 {
		return nil, fmt.Errorf("%w: week %d has no reports to merge", ErrValidation, weekID)
	}

	prompt := IntegrationPrompt(WeekInfo{
		Number: wk.WeekNumber,
		Start:  wk.DateRangeStart,
		End:    wk.DateRangeEnd,
	}, reports)
	content, err := s.llm.Chat(ctx, IntegrationSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	path, err := s.files.WriteIntegration(weekID, content)
	if err != nil {
		logger.Warn("integration file write failed", "week_id", weekID, "err", err)
	}

	report := &model.IntegrationReport{
		WeekID:        weekID,
		WeekNumber:    wk.WeekNumber,
		DateRange:     wk.DateRangeStart + "~" + wk.DateRangeEnd,
		UserNames:     joinNames(reports),
		ReportContent: content,
		FilePath:      path,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("week_id = ?", weekID).Delete(&model.IntegrationReport{}).Error; err != nil {
			return storageErr("delete old integration reports", err)
		}
		if err := tx.Create(report).Error; err != nil {
			return storageErr("insert integration report", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("integration report generated", "week_id", weekID, "reports", len(reports))
	return report, nil
}

func (s *IntegrationService) ListByWeek(ctx context.Context, weekID int) ([]model.IntegrationReport, error) {
	var out []model.IntegrationReport
	err := s.db.WithContext(ctx).
		Where("week_id = ?", weekID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, storageErr("list integration reports", err)
	}
	return out, nil
}

func (s *IntegrationService) Get(ctx context.Context, id int) (*model.IntegrationReport, error) {
	var r model.IntegrationReport
	if err := s.db.WithContext(ctx).First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: integration report %d", ErrNotFound, id)
		}
		return nil, storageErr("query integration report", err)
	}
	return &r, nil
}

func (s *IntegrationService) Delete(ctx context.Context, id int) error {
	r, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&model.IntegrationReport{}, id).Error; err != nil {
		return storageErr("delete integration report", err)
	}
	s.files.Remove(r.FilePath)
	return nil
}

func joinNames(reports []model.ReviewReport) string {
	seen := make(map[string]bool, len(reports))
	var names []string
	for _, r := range reports {
		if r.UserName != "" && !seen[r.UserName] {
			seen[r.UserName] = true
			names = append(names, r.UserName)
		}
	}
	return strings.Join(names, "、")
}
