package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/haideralmesaody/asrspulse/internal/dataprocessing"
	"github.com/haideralmesaody/asrspulse/pkg/contracts/domain"
)

// Text columns an uploaded dataset must carry at least one of.
var expectedTextColumns = []string{
	"narrative", "synopsis", "problem_description", "text", "description",
}

var allowedExtensions = map[string]bool{
	".csv":  true,
	".txt":  true,
	".xlsx": true,
}

const uploadSampleRows = 3

// UploadService stores uploaded report files and validates their structure.
type UploadService struct {
	logger     *slog.Logger
	uploadsDir string
	maxBytes   int64
}

// NewUploadService creates an upload service rooted at uploadsDir.
func NewUploadService(logger *slog.Logger, uploadsDir string, maxBytes int64) *UploadService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UploadService{
		logger:     logger.With(slog.String("service", "upload")),
		uploadsDir: uploadsDir,
		maxBytes:   maxBytes,
	}
}

// MaxBytes returns the upload size limit.
func (s *UploadService) MaxBytes() int64 {
	return s.maxBytes
}

// UploadResult describes a stored and validated upload.
type UploadResult struct {
	FilePath   string          `json:"filepath"`
	Filename   string          `json:"filename"`
	Rows       int             `json:"rows"`
	Columns    []string        `json:"columns"`
	SampleData []domain.Record `json:"sample_data"`
}

// Save persists the uploaded content under a unique name and validates that
// it parses into a non-empty table with at least one recognized text column.
func (s *UploadService) Save(ctx context.Context, filename string, content io.Reader) (*UploadResult, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return nil, fmt.Errorf("%w: %s (allowed: .csv, .txt, .xlsx)", ErrInvalidFileType, ext)
	}

	if err := os.MkdirAll(s.uploadsDir, 0755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}

	stored := uuid.NewString() + "_" + sanitizeFilename(filename)
	destPath := filepath.Join(s.uploadsDir, stored)

	dest, err := os.Create(destPath)
	if err != nil {
		return nil, fmt.Errorf("create upload file: %w", err)
	}

	written, err := io.Copy(dest, io.LimitReader(content, s.maxBytes+1))
	closeErr := dest.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(destPath)
		return nil, fmt.Errorf("write upload file: %w", err)
	}
	if written > s.maxBytes {
		os.Remove(destPath)
		return nil, fmt.Errorf("upload exceeds %d bytes", s.maxBytes)
	}

	table, err := dataprocessing.LoadTable(destPath)
	if err != nil {
		os.Remove(destPath)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if table.Len() == 0 {
		os.Remove(destPath)
		return nil, ErrEmptyTable
	}
	if !hasTextColumn(table) {
		os.Remove(destPath)
		return nil, fmt.Errorf("%w (expected one of: %s)",
			ErrNoTextColumns, strings.Join(expectedTextColumns, ", "))
	}

	s.logger.InfoContext(ctx, "upload stored",
		slog.String("filename", filename),
		slog.String("path", destPath),
		slog.Int("rows", table.Len()),
		slog.Int64("bytes", written))

	return &UploadResult{
		FilePath:   destPath,
		Filename:   filename,
		Rows:       table.Len(),
		Columns:    append([]string(nil), table.Columns...),
		SampleData: table.Head(uploadSampleRows),
	}, nil
}

// hasTextColumn reports whether the table carries at least one expected text column.
func hasTextColumn(table *domain.Table) bool {
	for _, col := range table.Columns {
		lower := strings.ToLower(col)
		for _, want := range expectedTextColumns {
			if lower == want || strings.Contains(lower, want) {
				return true
			}
		}
	}
	return false
}

// sanitizeFilename strips path separators and traversal sequences.
func sanitizeFilename(filename string) string {
	base := filepath.Base(filename)
	base = strings.ReplaceAll(base, "..", "")
	base = strings.ReplaceAll(base, string(os.PathSeparator), "")
	if base == "" || base == "." {
		base = "upload"
	}
	return base
}
