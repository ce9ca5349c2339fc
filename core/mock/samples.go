package mock

import (
	"time"

	"github.com/kndndrj/sparqlbench/core"
)

// NewSamples returns runs*iterations samples of one cell. fail decides which
// samples are failures.
func NewSamples(library, operation string, runs, iterations int, elapsed time.Duration, fail func(run, iteration int) bool) []core.Sample {
	samples := make([]core.Sample, 0, runs*iterations)
	for run := 0; run < runs; run++ {
		for it := 0; it < iterations; it++ {
			ok := fail == nil || !fail(run, it)
			s := core.Sample{
				Library:   library,
				Operation: operation,
				Category:  core.CategorySelect,
				Run:       run,
				Iteration: it,
				Elapsed:   elapsed,
				Success:   ok,
				Status:    200,
			}
			if !ok {
				s.Status = 500
				s.Err = ErrInjected.Error()
			}
			samples = append(samples, s)
		}
	}
	return samples
}
