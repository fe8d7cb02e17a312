// Package logging builds the zap logger. The terminal UI owns stdout, so
// logs go to a file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tatianab/silk-route/internal/config"
	"go.uber.org/zap"
)

// New returns a JSON logger writing to cfg.LogFile at cfg.LogLevel.
func New(cfg *config.Config) (*zap.Logger, error) {
	lvl, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	if dir := filepath.Dir(cfg.LogFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.OutputPaths = []string{cfg.LogFile}
	zc.ErrorOutputPaths = []string{cfg.LogFile}
	zc.Sampling = nil

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.Named("silkroute"), nil
}
