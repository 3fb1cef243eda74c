package export

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/joshsymonds/eyemap/pkg/logger"
	"github.com/joshsymonds/eyemap/pkg/pathutil"
)

// LocalExporter copies reports into a directory.
type LocalExporter struct {
	logger logger.Logger
	dir    string
}

// NewLocalExporter creates an exporter writing beneath dir.
func NewLocalExporter(dir string, log logger.Logger) *LocalExporter {
	return &LocalExporter{dir: dir, logger: log}
}

// Location returns the target directory.
func (e *LocalExporter) Location() string { return e.dir }

// Export writes body to dir/name.
func (e *LocalExporter) Export(ctx context.Context, name string, body io.Reader) (_ string, err error) {
	if err = ctx.Err(); err != nil {
		return "", err
	}

	target, err := pathutil.JoinAndValidate(e.dir, name)
	if err != nil {
		return "", fmt.Errorf("invalid export path: %w", err)
	}
	if target, err = pathutil.PrepareOutputPath(target); err != nil {
		return "", fmt.Errorf("invalid export path: %w", err)
	}

	file, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing export file: %w", cerr)
		}
	}()

	n, err := io.Copy(file, body)
	if err != nil {
		return "", fmt.Errorf("writing export file: %w", err)
	}

	e.logger.Debug("Exported report", "path", target, "bytes", n)
	return target, nil
}
