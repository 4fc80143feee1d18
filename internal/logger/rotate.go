package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// openRotatingFile returns the log file writer. Backups are timestamped
// copies next to the file, pruned by count and age.
func openRotatingFile(config Config) (*lumberjack.Logger, error) {
	logDir := filepath.Dir(config.FilePath)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	size := config.MaxSize
	if size < 1 {
		size = 1
	}
	return &lumberjack.Logger{
		Filename:   config.FilePath,
		MaxSize:    size,
		MaxAge:     config.MaxAge,
		MaxBackups: config.MaxBackups,
		LocalTime:  true,
	}, nil
}
