package report

import (
	"math"
	"sort"

	"github.com/kndndrj/sparqlbench/core"
)

// LibraryTotal averages the defined summary rows of one library.
type LibraryTotal struct {
	Library string
	// Operations is the number of operations with at least one success
	Operations int
	Failures   int

	MeanMs            float64
	RequestsPerSecond float64
}

// Leader is the library with the highest throughput for an operation.
type Leader struct {
	Operation         string
	Library           string
	RequestsPerSecond float64
	// Speedup is the leader's throughput relative to the slowest library
	Speedup float64
}

// Split compares read and write latency of one library.
type Split struct {
	Library     string
	ReadMeanMs  float64
	WriteMeanMs float64
}

// LibraryTotals returns one total per library, fastest mean first. Libraries
// without any successful sample sort last with NaN figures.
func LibraryTotals(summary []core.SummaryRow) []LibraryTotal {
	index := make(map[string]int)
	var totals []LibraryTotal
	sums := make(map[string][2]float64)
	// rows with an undefined throughput only count towards the mean
	rated := make(map[string]int)

	for _, row := range summary {
		i, ok := index[row.Library]
		if !ok {
			i = len(totals)
			index[row.Library] = i
			totals = append(totals, LibraryTotal{Library: row.Library})
		}
		totals[i].Failures += row.Failures

		if !row.Defined() {
			continue
		}
		totals[i].Operations++
		s := sums[row.Library]
		s[0] += row.MeanMs
		if !math.IsNaN(row.RequestsPerSecond) {
			s[1] += row.RequestsPerSecond
			rated[row.Library]++
		}
		sums[row.Library] = s
	}

	for i := range totals {
		t := &totals[i]
		if t.Operations == 0 {
			t.MeanMs = math.NaN()
			t.RequestsPerSecond = math.NaN()
			continue
		}
		s := sums[t.Library]
		t.MeanMs = s[0] / float64(t.Operations)
		t.RequestsPerSecond = mean(s[1], rated[t.Library])
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return lessNaNLast(totals[i].MeanMs, totals[j].MeanMs)
	})

	return totals
}

// Leaders returns the best library per operation in operation order. Ties go
// to the library that sorts first. Operations without any success are
// omitted, as are rows without a throughput.
func Leaders(summary []core.SummaryRow) []Leader {
	type cell struct {
		best, worst core.SummaryRow
	}
	cells := make(map[string]*cell)
	var ops []string

	for _, row := range summary {
		if !row.Defined() || math.IsNaN(row.RequestsPerSecond) {
			continue
		}
		c, ok := cells[row.Operation]
		if !ok {
			cells[row.Operation] = &cell{best: row, worst: row}
			ops = append(ops, row.Operation)
			continue
		}
		if row.RequestsPerSecond > c.best.RequestsPerSecond ||
			(row.RequestsPerSecond == c.best.RequestsPerSecond && row.Library < c.best.Library) {
			c.best = row
		}
		if row.RequestsPerSecond < c.worst.RequestsPerSecond {
			c.worst = row
		}
	}
	sort.Strings(ops)

	leaders := make([]Leader, 0, len(ops))
	for _, op := range ops {
		c := cells[op]
		leaders = append(leaders, Leader{
			Operation:         op,
			Library:           c.best.Library,
			RequestsPerSecond: c.best.RequestsPerSecond,
			Speedup:           c.best.RequestsPerSecond / c.worst.RequestsPerSecond,
		})
	}

	return leaders
}

// ReadWriteSplit returns the mean latency of read and write operations per
// library, in library order. A side without successes is NaN.
func ReadWriteSplit(summary []core.SummaryRow) []Split {
	type acc struct {
		read, write   float64
		nRead, nWrite int
	}
	accs := make(map[string]*acc)
	var libraries []string

	for _, row := range summary {
		a, ok := accs[row.Library]
		if !ok {
			a = &acc{}
			accs[row.Library] = a
			libraries = append(libraries, row.Library)
		}
		if !row.Defined() {
			continue
		}
		if row.Category.IsWrite() {
			a.write += row.MeanMs
			a.nWrite++
		} else {
			a.read += row.MeanMs
			a.nRead++
		}
	}
	sort.Strings(libraries)

	splits := make([]Split, 0, len(libraries))
	for _, lib := range libraries {
		a := accs[lib]
		splits = append(splits, Split{
			Library:     lib,
			ReadMeanMs:  mean(a.read, a.nRead),
			WriteMeanMs: mean(a.write, a.nWrite),
		})
	}

	return splits
}

func mean(sum float64, n int) float64 {
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

func lessNaNLast(a, b float64) bool {
	switch {
	case math.IsNaN(a):
		return false
	case math.IsNaN(b):
		return true
	default:
		return a < b
	}
}
