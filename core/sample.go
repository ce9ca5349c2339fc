package core

import (
	"time"
)

// Sample is one measured iteration. Samples are only appended, never
// modified.
type Sample struct {
	Library   string
	Operation string
	Category  Category
	Run       int
	Iteration int
	Elapsed   time.Duration
	Success   bool
	Status    int
	Size      int
	Err       string
}

func newSample(library string, op *Operation, run, iteration int, res Result) Sample {
	s := Sample{
		Library:   library,
		Operation: op.Name,
		Category:  op.Category,
		Run:       run,
		Iteration: iteration,
		Elapsed:   res.Elapsed,
		Success:   res.Success,
		Status:    res.Status,
		Size:      res.Size,
	}
	if res.Err != nil {
		s.Err = res.Err.Error()
	}

	return s
}

// SampleHeader is the column layout of the persisted sample table.
var SampleHeader = Header{
	"library", "operation", "category", "run", "iteration",
	"elapsed_ms", "success", "status", "size_bytes", "error",
}

// Row returns the sample in SampleHeader layout.
func (s Sample) Row() Row {
	return Row{
		s.Library,
		s.Operation,
		string(s.Category),
		s.Run,
		s.Iteration,
		durationMs(s.Elapsed),
		s.Success,
		s.Status,
		s.Size,
		s.Err,
	}
}

func durationMs(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
