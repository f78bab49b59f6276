package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/asmdup/domain"
)

// DupUseCase orchestrates duplicate detection: it runs the service and
// routes the response through the report writer and formatter.
type DupUseCase struct {
	service   domain.DupService
	formatter domain.DupOutputFormatter
	writer    domain.ReportWriter
}

// NewDupUseCase creates a new duplicate-detection use case with the given
// dependencies.
func NewDupUseCase(
	service domain.DupService,
	formatter domain.DupOutputFormatter,
	writer domain.ReportWriter,
) *DupUseCase {
	return &DupUseCase{
		service:   service,
		formatter: formatter,
		writer:    writer,
	}
}

// ExecuteScan runs cluster mode and writes the ranked report.
func (uc *DupUseCase) ExecuteScan(ctx context.Context, req *domain.ScanRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	resp, err := uc.service.Scan(ctx, req)
	if err != nil {
		return fmt.Errorf("duplicate scan failed: %w", err)
	}

	return uc.writer.Write(req.OutputWriter, req.OutputPath, req.OutputFormat, func(w io.Writer) error {
		return uc.formatter.FormatScanResponse(resp, req.OutputFormat, w)
	})
}

// ExecuteCompare runs pair mode between two directories and writes the
// match and file-order report.
func (uc *DupUseCase) ExecuteCompare(ctx context.Context, req *domain.CompareRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	resp, err := uc.service.Compare(ctx, req)
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	return uc.writer.Write(req.OutputWriter, req.OutputPath, req.OutputFormat, func(w io.Writer) error {
		return uc.formatter.FormatCompareResponse(resp, req.OutputFormat, w)
	})
}

// DupUseCaseBuilder helps build DupUseCase with dependencies.
type DupUseCaseBuilder struct {
	service   domain.DupService
	formatter domain.DupOutputFormatter
	writer    domain.ReportWriter
}

// NewDupUseCaseBuilder creates a new builder for DupUseCase.
func NewDupUseCaseBuilder() *DupUseCaseBuilder {
	return &DupUseCaseBuilder{}
}

// WithService sets the duplicate-detection service.
func (b *DupUseCaseBuilder) WithService(service domain.DupService) *DupUseCaseBuilder {
	b.service = service
	return b
}

// WithFormatter sets the output formatter.
func (b *DupUseCaseBuilder) WithFormatter(formatter domain.DupOutputFormatter) *DupUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithWriter sets the report writer.
func (b *DupUseCaseBuilder) WithWriter(writer domain.ReportWriter) *DupUseCaseBuilder {
	b.writer = writer
	return b
}

// Build creates the DupUseCase with the configured dependencies.
func (b *DupUseCaseBuilder) Build() (*DupUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("duplicate-detection service is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}
	if b.writer == nil {
		return nil, fmt.Errorf("report writer is required")
	}

	return NewDupUseCase(b.service, b.formatter, b.writer), nil
}
