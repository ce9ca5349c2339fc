package core

import (
	"math"
	"sort"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

const (
	// histogram bounds in microseconds
	histogramMin     = 1
	histogramMax     = int64(time.Hour / time.Microsecond)
	histogramSigFigs = 3
)

// SummaryRow holds the statistics of one (library, operation) cell.
// Latency figures are in milliseconds and are NaN when the cell has no
// successful sample.
type SummaryRow struct {
	Library   string
	Operation string
	Category  Category

	Samples   int
	Successes int
	Failures  int
	// SuccessRate is Successes / Samples
	SuccessRate float64
	// TotalMs is the time spent in all calls, failed ones included
	TotalMs float64

	MeanMs float64
	MinMs  float64
	MaxMs  float64
	P50Ms  float64
	P95Ms  float64
	P99Ms  float64

	// RequestsPerSecond is 1 / mean latency, NaN when the mean latency is
	// zero
	RequestsPerSecond float64
	// ResponseSize is the body size of the first successful call
	ResponseSize int
}

// Defined reports whether the row has latency figures.
func (r SummaryRow) Defined() bool {
	return r.Successes > 0
}

// SummaryHeader is the column layout of the persisted summary table.
var SummaryHeader = Header{
	"library", "operation", "category",
	"samples", "successes", "failures", "success_rate", "total_ms",
	"mean_ms", "min_ms", "max_ms", "p50_ms", "p95_ms", "p99_ms",
	"requests_per_sec", "response_size_bytes",
}

// Row returns the summary in SummaryHeader layout.
func (r SummaryRow) Row() Row {
	return Row{
		r.Library, r.Operation, string(r.Category),
		r.Samples, r.Successes, r.Failures, r.SuccessRate, r.TotalMs,
		r.MeanMs, r.MinMs, r.MaxMs, r.P50Ms, r.P95Ms, r.P99Ms,
		r.RequestsPerSecond, r.ResponseSize,
	}
}

type cellKey struct {
	library   string
	operation string
}

// Aggregate reduces samples into one row per (library, operation), sorted by
// library and operation. It does not modify its input and returns the same
// rows for the same samples.
func Aggregate(samples []Sample) []SummaryRow {
	cells := make(map[cellKey][]Sample)
	for _, s := range samples {
		k := cellKey{library: s.Library, operation: s.Operation}
		cells[k] = append(cells[k], s)
	}

	keys := make([]cellKey, 0, len(cells))
	for k := range cells {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].library != keys[j].library {
			return keys[i].library < keys[j].library
		}
		return keys[i].operation < keys[j].operation
	})

	rows := make([]SummaryRow, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, summarize(k, cells[k]))
	}

	return rows
}

func summarize(k cellKey, samples []Sample) SummaryRow {
	row := SummaryRow{
		Library:   k.library,
		Operation: k.operation,
		Category:  samples[0].Category,
		Samples:   len(samples),
	}

	hist := hdrhistogram.New(histogramMin, histogramMax, histogramSigFigs)

	var (
		total, sum time.Duration
		minD, maxD time.Duration
		sizeSet    bool
	)
	for _, s := range samples {
		total += s.Elapsed
		if !s.Success {
			row.Failures++
			continue
		}

		if row.Successes == 0 || s.Elapsed < minD {
			minD = s.Elapsed
		}
		if row.Successes == 0 || s.Elapsed > maxD {
			maxD = s.Elapsed
		}
		row.Successes++
		sum += s.Elapsed

		if !sizeSet {
			row.ResponseSize = s.Size
			sizeSet = true
		}

		us := s.Elapsed.Microseconds()
		if us > histogramMax {
			us = histogramMax
		}
		_ = hist.RecordValue(us)
	}

	row.SuccessRate = float64(row.Successes) / float64(row.Samples)
	row.TotalMs = durationMs(total)

	if row.Successes == 0 {
		nan := math.NaN()
		row.MeanMs, row.MinMs, row.MaxMs = nan, nan, nan
		row.P50Ms, row.P95Ms, row.P99Ms = nan, nan, nan
		row.RequestsPerSecond = nan
		return row
	}

	meanSeconds := sum.Seconds() / float64(row.Successes)
	row.MeanMs = meanSeconds * 1000
	row.RequestsPerSecond = math.NaN()
	if sum > 0 {
		row.RequestsPerSecond = 1 / meanSeconds
	}
	row.MinMs = durationMs(minD)
	row.MaxMs = durationMs(maxD)
	row.P50Ms = usToMs(hist.ValueAtQuantile(50))
	row.P95Ms = usToMs(hist.ValueAtQuantile(95))
	row.P99Ms = usToMs(hist.ValueAtQuantile(99))

	return row
}

func usToMs(us int64) float64 {
	return float64(us) / 1000
}

// FailureCount returns the number of failed samples per library.
func FailureCount(samples []Sample) map[string]int {
	out := make(map[string]int)
	for _, s := range samples {
		if _, ok := out[s.Library]; !ok {
			out[s.Library] = 0
		}
		if !s.Success {
			out[s.Library]++
		}
	}
	return out
}
