// Package export delivers rendered reports to their destination: a local directory or an
// S3 bucket prefix.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/joshsymonds/eyemap/pkg/logger"
)

// ErrInvalidDestination is returned when an export destination cannot be parsed.
var ErrInvalidDestination = errors.New("invalid export destination")

// Exporter writes a named report somewhere and returns its final location.
type Exporter interface {
	Export(ctx context.Context, name string, body io.Reader) (string, error)
	// Location describes the destination for logs and CLI output.
	Location() string
}

// Destination is a parsed export target.
type Destination struct {
	Bucket string
	Prefix string
	Dir    string
}

// IsS3 reports whether the destination is an S3 location.
func (d Destination) IsS3() bool {
	return d.Bucket != ""
}

// ParseDestination parses "s3://bucket/prefix" or a local directory path.
func ParseDestination(dest string) (Destination, error) {
	dest = strings.TrimSpace(dest)
	if dest == "" {
		return Destination{}, fmt.Errorf("%w: empty destination", ErrInvalidDestination)
	}

	rest, ok := strings.CutPrefix(dest, "s3://")
	if !ok {
		if strings.Contains(dest, "://") {
			return Destination{}, fmt.Errorf("%w: unsupported scheme in %q", ErrInvalidDestination, dest)
		}
		return Destination{Dir: dest}, nil
	}

	bucket, prefix, _ := strings.Cut(rest, "/")
	if bucket == "" {
		return Destination{}, fmt.Errorf("%w: missing bucket in %q", ErrInvalidDestination, dest)
	}

	return Destination{Bucket: bucket, Prefix: strings.Trim(prefix, "/")}, nil
}

// New creates the exporter for dest.
func New(ctx context.Context, dest string, log logger.Logger, opts ...S3Option) (Exporter, error) {
	d, err := ParseDestination(dest)
	if err != nil {
		return nil, err
	}

	if d.IsS3() {
		return NewS3Exporter(ctx, d.Bucket, d.Prefix, log, opts...)
	}
	return NewLocalExporter(d.Dir, log), nil
}

// ExportFiles exports each file under its base name and returns the resulting locations.
func ExportFiles(ctx context.Context, exp Exporter, paths []string) ([]string, error) {
	locations := make([]string, 0, len(paths))
	for _, p := range paths {
		loc, err := exportFile(ctx, exp, p)
		if err != nil {
			return locations, err
		}
		locations = append(locations, loc)
	}
	return locations, nil
}

func exportFile(ctx context.Context, exp Exporter, path string) (string, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("opening report: %w", err)
	}
	defer func() { _ = file.Close() }()

	loc, err := exp.Export(ctx, filepath.Base(path), file)
	if err != nil {
		return "", fmt.Errorf("exporting %s: %w", filepath.Base(path), err)
	}
	return loc, nil
}

// contentType guesses the MIME type of a report from its file name.
func contentType(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	if strings.EqualFold(filepath.Ext(name), ".yaml") || strings.EqualFold(filepath.Ext(name), ".yml") {
		return "application/yaml"
	}
	return "application/octet-stream"
}
