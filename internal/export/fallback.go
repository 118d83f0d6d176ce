// Package export converts report Markdown into downloadable documents.
// Each target format is produced by an ordered chain of independent
// strategies; the first one that succeeds wins.
package export

import (
	"context"
	"errors"
	"fmt"

	"weekly-review/internal/logger"
)

var ErrAllStrategiesFailed = errors.New("all export strategies failed")

// Strategy is one way of producing the target document.
type Strategy struct {
	Name string
	Run  func(ctx context.Context) ([]byte, error)
}

// RunWithFallbacks tries each strategy in order and returns the first
// successful output. Individual failures are logged and collected; only
// exhaustion of the whole chain is an error.
func RunWithFallbacks(ctx context.Context, target string, strategies []Strategy) ([]byte, error) {
	var errs []error
	for _, s := range strategies {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		out, err := s.Run(ctx)
		if err == nil {
			return out, nil
		}
		logger.Warn("export strategy failed", "target", target, "strategy", s.Name, "err", err)
		errs = append(errs, fmt.Errorf("%s: %w", s.Name, err))
	}
	return nil, fmt.Errorf("%w: %s: %w", ErrAllStrategiesFailed, target, errors.Join(errs...))
}
