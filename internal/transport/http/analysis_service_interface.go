package http

import (
	"context"
	"io"

	"github.com/haideralmesaody/asrspulse/internal/analysis"
	"github.com/haideralmesaody/asrspulse/internal/services"
)

// AnalysisServiceInterface defines the analysis workflow operations the
// handler depends on. Implemented by services.ASRSService.
type AnalysisServiceInterface interface {
	AvailableTechniques() []string
	Preprocess(ctx context.Context, filePath string, textColumns []string) (*services.PreprocessResult, error)
	Analyze(ctx context.Context, sessionID, textColumn, targetColumn string, models []string) (*analysis.Comparison, error)
	Compare(ctx context.Context, sessionID string) (*services.ComparisonView, error)
	GenerateReport(ctx context.Context, sessionID string) (*services.Report, error)
	Sessions(ctx context.Context) []services.SessionInfo
}

// UploadServiceInterface defines upload storage operations the handler
// depends on. Implemented by services.UploadService.
type UploadServiceInterface interface {
	Save(ctx context.Context, filename string, content io.Reader) (*services.UploadResult, error)
	MaxBytes() int64
}
