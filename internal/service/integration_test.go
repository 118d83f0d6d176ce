package service

import (
	"context"
	"testing"

	"weekly-review/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateIntegrationReport(t *testing.T) {
	srv := completionServer(t, "团队整合报告正文")
	defer srv.Close()

	db := newTestDB(t)
	files := NewFileStore(t.TempDir())
	reports := NewReportService(db, files)
	integ := NewIntegrationService(db, NewLLMClient(config.LLMConfig{BaseURL: srv.URL}), files)
	ctx := context.Background()

	r1, err := reports.SaveReport(ctx, saveRequest("张三", "2025-01-08"))
	require.NoError(t, err)
	_, err = reports.SaveReport(ctx, saveRequest("李四", "2025-01-09"))
	require.NoError(t, err)

	got, err := integ.Generate(ctx, r1.WeekID, nil)
	require.NoError(t, err)
	assert.Equal(t, "团队整合报告正文", got.ReportContent)
	assert.Equal(t, 1, got.WeekNumber)
	assert.Equal(t, "张三、李四", got.UserNames)
	assert.Equal(t, "2025-01-06~2025-01-12", got.DateRange)
	assert.NotEmpty(t, got.FilePath)
}

func TestGenerateReplacesPreviousIntegrationReport(t *testing.T) {
	srv := completionServer(t, "v2")
	defer srv.Close()

	db := newTestDB(t)
	files := NewFileStore(t.TempDir())
	reports := NewReportService(db, files)
	integ := NewIntegrationService(db, NewLLMClient(config.LLMConfig{BaseURL: srv.URL}), files)
	ctx := context.Background()

	r, err := reports.SaveReport(ctx, saveRequest("张三", "2025-01-08"))
	require.NoError(t, err)

	_, err = integ.Generate(ctx, r.WeekID, nil)
	require.NoError(t, err)
	_, err = integ.Generate(ctx, r.WeekID, nil)
	require.NoError(t, err)

	list, err := integ.ListByWeek(ctx, r.WeekID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestGenerateIntegrationValidation(t *testing.T) {
	srv := completionServer(t, "x")
	defer srv.Close()

	db := newTestDB(t)
	files := NewFileStore(t.TempDir())
	reports := NewReportService(db, files)
	integ := NewIntegrationService(db, NewLLMClient(config.LLMConfig{BaseURL: srv.URL}), files)
	ctx := context.Background()

	_, err := integ.Generate(ctx, 404, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	// Week exists but the id filter matches nothing.
	r, err := reports.SaveReport(ctx, saveRequest("张三", "2025-01-08"))
	require.NoError(t, err)
	_, err = integ.Generate(ctx, r.WeekID, []int{987654})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteIntegrationReport(t *testing.T) {
	srv := completionServer(t, "x")
	defer srv.Close()

	db := newTestDB(t)
	files := NewFileStore(t.TempDir())
	reports := NewReportService(db, files)
	integ := NewIntegrationService(db, NewLLMClient(config.LLMConfig{BaseURL: srv.URL}), files)
	ctx := context.Background()

	r, err := reports.SaveReport(ctx, saveRequest("张三", "2025-01-08"))
	require.NoError(t, err)
	gen, err := integ.Generate(ctx, r.WeekID, nil)
	require.NoError(t, err)

	require.NoError(t, integ.Delete(ctx, gen.ID))
	_, err = integ.Get(ctx, gen.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, integ.Delete(ctx, gen.ID), ErrNotFound)
}
