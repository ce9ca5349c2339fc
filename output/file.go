package output

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kndndrj/sparqlbench/core"
)

// File writes a formatted table to a path, creating parent directories.
type File struct {
	path      string
	formatter core.Formatter
	log       *slog.Logger
}

func NewFile(path string, formatter core.Formatter, logger *slog.Logger) *File {
	return &File{
		path:      path,
		formatter: formatter,
		log:       logger,
	}
}

func (f *File) Write(header core.Header, rows []core.Row) error {
	data, err := f.formatter.Format(header, rows)
	if err != nil {
		return fmt.Errorf("formatter.Format: %w", err)
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("os.MkdirAll: %w", err)
		}
	}

	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("os.WriteFile: %w", err)
	}

	f.log.Info("saved output", slog.String("path", f.path), slog.Int("rows", len(rows)))
	return nil
}
