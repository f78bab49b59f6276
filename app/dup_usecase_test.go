package app

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/asmdup/domain"
)

type stubService struct {
	scanResp    *domain.ScanResponse
	compareResp *domain.CompareResponse
	err         error
}

func (s *stubService) Scan(ctx context.Context, req *domain.ScanRequest) (*domain.ScanResponse, error) {
	return s.scanResp, s.err
}

func (s *stubService) Compare(ctx context.Context, req *domain.CompareRequest) (*domain.CompareResponse, error) {
	return s.compareResp, s.err
}

type stubFormatter struct{}

func (stubFormatter) FormatScanResponse(resp *domain.ScanResponse, format domain.OutputFormat, w io.Writer) error {
	_, err := w.Write([]byte("scan report"))
	return err
}

func (stubFormatter) FormatCompareResponse(resp *domain.CompareResponse, format domain.OutputFormat, w io.Writer) error {
	_, err := w.Write([]byte("compare report"))
	return err
}

type passthroughWriter struct{}

func (passthroughWriter) Write(writer io.Writer, outputPath string, format domain.OutputFormat, writeFunc func(io.Writer) error) error {
	return writeFunc(writer)
}

func validScanRequest(w io.Writer) *domain.ScanRequest {
	return &domain.ScanRequest{
		Paths:        []string{"asm/us"},
		Threshold:    0.94,
		WindowStride: 4,
		WindowSize:   32,
		Extensions:   []string{".s"},
		OutputFormat: domain.OutputFormatText,
		OutputWriter: w,
	}
}

func TestDupUseCaseExecuteScan(t *testing.T) {
	var out bytes.Buffer
	uc := NewDupUseCase(
		&stubService{scanResp: &domain.ScanResponse{Statistics: &domain.Statistics{}}},
		stubFormatter{},
		passthroughWriter{},
	)

	require.NoError(t, uc.ExecuteScan(context.Background(), validScanRequest(&out)))
	assert.Equal(t, "scan report", out.String())
}

func TestDupUseCaseExecuteScanValidates(t *testing.T) {
	uc := NewDupUseCase(&stubService{}, stubFormatter{}, passthroughWriter{})

	req := validScanRequest(io.Discard)
	req.Threshold = 2.0
	assert.Error(t, uc.ExecuteScan(context.Background(), req))
}

func TestDupUseCaseExecuteScanPropagatesServiceError(t *testing.T) {
	uc := NewDupUseCase(
		&stubService{err: domain.NewAnalysisError("boom", nil)},
		stubFormatter{},
		passthroughWriter{},
	)

	err := uc.ExecuteScan(context.Background(), validScanRequest(io.Discard))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestDupUseCaseExecuteCompare(t *testing.T) {
	var out bytes.Buffer
	uc := NewDupUseCase(
		&stubService{compareResp: &domain.CompareResponse{Statistics: &domain.Statistics{}}},
		stubFormatter{},
		passthroughWriter{},
	)

	req := &domain.CompareRequest{
		DirA:         "asm/us",
		DirB:         "asm/jp",
		Threshold:    0.94,
		Extensions:   []string{".s"},
		OutputFormat: domain.OutputFormatText,
		OutputWriter: &out,
	}
	require.NoError(t, uc.ExecuteCompare(context.Background(), req))
	assert.Equal(t, "compare report", out.String())
}

func TestDupUseCaseBuilder(t *testing.T) {
	t.Run("AllDependenciesRequired", func(t *testing.T) {
		_, err := NewDupUseCaseBuilder().Build()
		assert.Error(t, err)

		_, err = NewDupUseCaseBuilder().WithService(&stubService{}).Build()
		assert.Error(t, err)

		_, err = NewDupUseCaseBuilder().
			WithService(&stubService{}).
			WithFormatter(stubFormatter{}).
			Build()
		assert.Error(t, err)
	})

	t.Run("BuildsWithAllDependencies", func(t *testing.T) {
		uc, err := NewDupUseCaseBuilder().
			WithService(&stubService{}).
			WithFormatter(stubFormatter{}).
			WithWriter(passthroughWriter{}).
			Build()
		require.NoError(t, err)
		assert.NotNil(t, uc)
	})
}
