package output

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/kndndrj/sparqlbench/core"
)

var ErrMissingColumn = errors.New("missing column")

// ReadSamples parses a sample table written by Write. The run_id column is
// optional; columns are matched by name.
func ReadSamples(r io.Reader) (runID string, samples []core.Sample, err error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return "", nil, fmt.Errorf("cr.Read: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[h] = i
	}
	for _, h := range core.SampleHeader {
		if _, ok := index[h]; !ok {
			return "", nil, fmt.Errorf("%w: %q", ErrMissingColumn, h)
		}
	}

	line := 1
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return "", nil, fmt.Errorf("cr.Read: %w", err)
		}

		s, err := parseSample(index, record)
		if err != nil {
			return "", nil, fmt.Errorf("line %d: %w", line, err)
		}
		samples = append(samples, s)

		if i, ok := index["run_id"]; ok && runID == "" {
			runID = record[i]
		}
	}

	return runID, samples, nil
}

func parseSample(index map[string]int, record []string) (core.Sample, error) {
	get := func(name string) string {
		return record[index[name]]
	}

	run, err := strconv.Atoi(get("run"))
	if err != nil {
		return core.Sample{}, fmt.Errorf("run: %w", err)
	}
	iteration, err := strconv.Atoi(get("iteration"))
	if err != nil {
		return core.Sample{}, fmt.Errorf("iteration: %w", err)
	}
	ms, err := strconv.ParseFloat(get("elapsed_ms"), 64)
	if err != nil {
		return core.Sample{}, fmt.Errorf("elapsed_ms: %w", err)
	}
	success, err := strconv.ParseBool(get("success"))
	if err != nil {
		return core.Sample{}, fmt.Errorf("success: %w", err)
	}
	status, err := strconv.Atoi(get("status"))
	if err != nil {
		return core.Sample{}, fmt.Errorf("status: %w", err)
	}
	size, err := strconv.Atoi(get("size_bytes"))
	if err != nil {
		return core.Sample{}, fmt.Errorf("size_bytes: %w", err)
	}

	return core.Sample{
		Library:   get("library"),
		Operation: get("operation"),
		Category:  core.Category(get("category")),
		Run:       run,
		Iteration: iteration,
		Elapsed:   time.Duration(math.Round(ms * float64(time.Millisecond))),
		Success:   success,
		Status:    status,
		Size:      size,
		Err:       get("error"),
	}, nil
}
