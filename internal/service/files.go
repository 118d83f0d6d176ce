package service

import (
	"fmt"
	"os"
	"path/filepath"

	"weekly-review/internal/logger"
)

// FileStore mirrors generated report text to flat files on disk. The
// mirror is the read source for on-demand document export and is treated
// as best effort: a failed write is logged, never fatal.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) reportPath(id int) string {
	return filepath.Join(s.dir, "reports", fmt.Sprintf("report_%d.md", id))
}

func (s *FileStore) WriteReport(id int, content string) {
	path := s.reportPath(id)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		logger.Warn("report mirror mkdir failed", "path", path, "err", err)
		return
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		logger.Warn("report mirror write failed", "path", path, "err", err)
	}
}

// ReadReport returns the mirrored text, or "" when no mirror exists.
func (s *FileStore) ReadReport(id int) string {
	data, err := os.ReadFile(s.reportPath(id))
	if err != nil {
		return ""
	}
	return string(data)
}

func (s *FileStore) RemoveReport(id int) {
	os.Remove(s.reportPath(id))
}

// WriteIntegration stores a week's integration report and returns the
// file path recorded on the row.
func (s *FileStore) WriteIntegration(weekID int, content string) (string, error) {
	path := filepath.Join(s.dir, "integration", fmt.Sprintf("week_%d.md", weekID))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("write integration file: %w", err)
	}
	return path, nil
}

func (s *FileStore) Remove(path string) {
	if path != "" {
		os.Remove(path)
	}
}
