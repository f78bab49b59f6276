package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/asmdup/domain"
)

func sampleScanResponse() *domain.ScanResponse {
	return &domain.ScanResponse{
		Clusters: []*domain.Cluster{
			{
				ID:   1,
				Size: 2,
				Functions: []*domain.FunctionReport{
					{Name: "func_801B1234", File: "asm/us/func_801B1234.s", Ops: 42, Similarity: 0.0, Decompiled: false},
					{Name: "func_801C5678", File: "asm/us/func_801C5678.s", Ops: 40, Similarity: 0.96, Decompiled: true},
				},
			},
		},
		Statistics: &domain.Statistics{
			FilesScanned:      2,
			FunctionsParsed:   2,
			Clusters:          1,
			DuplicateClusters: 1,
		},
		Duration: 12,
	}
}

func sampleCompareResponse() *domain.CompareResponse {
	return &domain.CompareResponse{
		DirA: "asm/us",
		DirB: "asm/jp",
		Matches: []*domain.PairMatch{
			{Left: "func_us", Right: "func_jp", Similarity: 1.0},
		},
		FileOrder: []*domain.FileOrderRow{
			{Name: "func_us", Duplicate: "func_jp"},
			{Name: "func_us_only", Duplicate: ""},
		},
		Statistics: &domain.Statistics{FilesScanned: 2, FunctionsParsed: 2, Matches: 1},
		Duration:   3,
	}
}

func TestFormatScanResponse(t *testing.T) {
	formatter := NewDupOutputFormatter()

	t.Run("Text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, formatter.FormatScanResponse(sampleScanResponse(), domain.OutputFormatText, &buf))

		out := buf.String()
		assert.Contains(t, out, "Duplicate Clusters")
		assert.Contains(t, out, "func_801B1234")
		assert.Contains(t, out, "func_801C5678")
		assert.Contains(t, out, "0.96")
		assert.Contains(t, out, "Duplicate clusters: 1")
	})

	t.Run("TextEmpty", func(t *testing.T) {
		var buf bytes.Buffer
		resp := &domain.ScanResponse{Statistics: &domain.Statistics{}}
		require.NoError(t, formatter.FormatScanResponse(resp, domain.OutputFormatText, &buf))
		assert.Contains(t, buf.String(), "No duplicates detected.")
	})

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, formatter.FormatScanResponse(sampleScanResponse(), domain.OutputFormatJSON, &buf))

		var decoded domain.ScanResponse
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		require.Len(t, decoded.Clusters, 1)
		assert.Equal(t, "func_801B1234", decoded.Clusters[0].Functions[0].Name)
		assert.Equal(t, int64(12), decoded.Duration)
	})

	t.Run("YAML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, formatter.FormatScanResponse(sampleScanResponse(), domain.OutputFormatYAML, &buf))

		var decoded domain.ScanResponse
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		require.Len(t, decoded.Clusters, 1)
		assert.Equal(t, 2, decoded.Clusters[0].Size)
	})

	t.Run("CSV", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, formatter.FormatScanResponse(sampleScanResponse(), domain.OutputFormatCSV, &buf))

		records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, []string{"cluster", "similarity", "decompiled", "name", "instructions", "file"}, records[0])
		assert.Equal(t, []string{"1", "0.9600", "true", "func_801C5678", "40", "asm/us/func_801C5678.s"}, records[2])
	})

	t.Run("UnsupportedFormat", func(t *testing.T) {
		var buf bytes.Buffer
		err := formatter.FormatScanResponse(sampleScanResponse(), domain.OutputFormat("html"), &buf)
		assert.Error(t, err)
	})
}

func TestFormatCompareResponse(t *testing.T) {
	formatter := NewDupOutputFormatter()

	t.Run("Text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, formatter.FormatCompareResponse(sampleCompareResponse(), domain.OutputFormatText, &buf))

		out := buf.String()
		assert.Contains(t, out, "Duplicates and similarity")
		assert.Contains(t, out, "Functions in file order")
		assert.Contains(t, out, "func_us")
		assert.Contains(t, out, "func_jp")
		assert.Contains(t, out, "1 matches from 2 functions")
	})

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, formatter.FormatCompareResponse(sampleCompareResponse(), domain.OutputFormatJSON, &buf))

		var decoded domain.CompareResponse
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "asm/us", decoded.DirA)
		require.Len(t, decoded.Matches, 1)
		assert.Equal(t, 1.0, decoded.Matches[0].Similarity)
	})

	t.Run("CSV", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, formatter.FormatCompareResponse(sampleCompareResponse(), domain.OutputFormatCSV, &buf))

		records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, []string{"left", "right", "similarity"}, records[0])
		assert.Equal(t, []string{"func_us", "func_jp", "1.0000"}, records[1])
	})
}
