package output_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kndndrj/sparqlbench/core"
	"github.com/kndndrj/sparqlbench/core/mock"
	"github.com/kndndrj/sparqlbench/output"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testReport() *core.Report {
	samples := mock.NewSamples("nethttp", "ask", 2, 3, 1500*time.Microsecond, func(run, it int) bool {
		return run == 1 && it == 2
	})
	samples = append(samples, mock.NewSamples("fasthttp", "ask", 2, 3, 750*time.Microsecond, nil)...)

	return &core.Report{
		ID:        "0b6a7c2e-9a55-4d8e-8f0e-1d6f3c5a2b10",
		Libraries: []string{"nethttp", "fasthttp"},
		Samples:   samples,
	}
}

func TestWrite(t *testing.T) {
	r := require.New(t)

	dir := t.TempDir()
	paths := output.Paths{
		Samples:     filepath.Join(dir, "nested", "samples.csv"),
		Summary:     filepath.Join(dir, "summary.csv"),
		SummaryJSON: filepath.Join(dir, "summary.json"),
	}

	report := testReport()
	summary := core.Aggregate(report.Samples)
	r.NoError(output.Write(context.Background(), paths, report, summary, discardLogger()))

	samples, err := os.ReadFile(paths.Samples)
	r.NoError(err)
	lines := strings.Split(strings.TrimSpace(string(samples)), "\n")
	r.Len(lines, 13)
	r.Equal(strings.Join(output.SampleHeader, ","), lines[0])
	r.True(strings.HasPrefix(lines[1], report.ID+",nethttp,ask,"))

	summaryCSV, err := os.ReadFile(paths.Summary)
	r.NoError(err)
	r.Len(strings.Split(strings.TrimSpace(string(summaryCSV)), "\n"), 3)

	summaryJSON, err := os.ReadFile(paths.SummaryJSON)
	r.NoError(err)
	var rows []map[string]any
	r.NoError(json.Unmarshal(summaryJSON, &rows))
	r.Len(rows, 2)
	r.Equal("fasthttp", rows[0]["library"])
	r.InDelta(0.75, rows[0]["mean_ms"], 1e-9)
}

func TestWrite_SkipsEmptyPaths(t *testing.T) {
	dir := t.TempDir()

	err := output.Write(context.Background(), output.Paths{Summary: filepath.Join(dir, "summary.csv")}, testReport(), nil, discardLogger())
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWrite_Error(t *testing.T) {
	dir := t.TempDir()
	// a file where a directory is expected
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	err := output.Write(context.Background(), output.Paths{Samples: filepath.Join(blocker, "samples.csv")}, testReport(), nil, discardLogger())
	assert.Error(t, err)
}

func TestReadSamples_RoundTrip(t *testing.T) {
	r := require.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "samples.csv")

	report := testReport()
	r.NoError(output.Write(context.Background(), output.Paths{Samples: path}, report, nil, discardLogger()))

	f, err := os.Open(path)
	r.NoError(err)
	defer f.Close()

	runID, samples, err := output.ReadSamples(f)
	r.NoError(err)
	r.Equal(report.ID, runID)
	r.Equal(report.Samples, samples)

	// re-aggregating persisted samples gives the original summary
	r.Equal(core.Aggregate(report.Samples), core.Aggregate(samples))
}

func TestReadSamples_WithoutRunID(t *testing.T) {
	in := "library,operation,category,run,iteration,elapsed_ms,success,status,size_bytes,error\n" +
		"resty,select_simple,SELECT,0,0,2.5,true,200,120,\n"

	runID, samples, err := output.ReadSamples(strings.NewReader(in))
	require.NoError(t, err)
	assert.Empty(t, runID)
	require.Len(t, samples, 1)
	assert.Equal(t, 2500*time.Microsecond, samples[0].Elapsed)
	assert.Equal(t, core.CategorySelect, samples[0].Category)
}

func TestReadSamples_Errors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{
			name:  "empty",
			input: "",
		},
		{
			name:  "missing column",
			input: "library,operation\nresty,ask\n",
		},
		{
			name: "bad number",
			input: "library,operation,category,run,iteration,elapsed_ms,success,status,size_bytes,error\n" +
				"resty,ask,ASK,zero,0,2.5,true,200,120,\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := output.ReadSamples(bytes.NewBufferString(tc.input))
			assert.Error(t, err)
		})
	}

	_, _, err := output.ReadSamples(strings.NewReader("library,operation\n"))
	assert.ErrorIs(t, err, output.ErrMissingColumn)
}
