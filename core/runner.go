package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoLibraries  = errors.New("no libraries to benchmark")
	ErrNoOperations = errors.New("no operations to benchmark")
)

// Config holds the parameters of a benchmark invocation.
type Config struct {
	// Runs is the number of measured repetitions per (library, operation)
	Runs int
	// Iterations is the number of sequential calls in one run
	Iterations int
	// Warmup is the number of discarded calls before the first run
	Warmup int

	// Shuffle randomizes the library order using Seed
	Shuffle bool
	Seed    int64
}

func DefaultConfig() Config {
	return Config{
		Runs:       10,
		Iterations: 50,
		Warmup:     1,
	}
}

func (c Config) Validate() error {
	if c.Runs < 1 {
		return fmt.Errorf("runs must be at least 1, got %d", c.Runs)
	}
	if c.Iterations < 1 {
		return fmt.Errorf("iterations must be at least 1, got %d", c.Iterations)
	}
	if c.Warmup < 0 {
		return fmt.Errorf("warmup must not be negative, got %d", c.Warmup)
	}
	return nil
}

// Library pairs an adapter with the parameters its driver is built from.
type Library struct {
	Params  *ClientParams
	Adapter Adapter
}

func (l Library) Name() string {
	return l.Params.Library
}

// Observer receives every measured sample as it is produced.
type Observer interface {
	Observe(Sample)
}

// Report is the raw outcome of a benchmark invocation.
type Report struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time

	// Libraries lists the libraries that were measured, in run order
	Libraries []string
	// Skipped holds libraries whose driver could not be built
	Skipped map[string]error
	Samples []Sample
}

// Runner is the run controller. It executes every operation against every
// library strictly sequentially: one call is finished before the next is
// issued, including for drivers whose library is asynchronous. The benchmark
// measures per-call cost, not concurrent throughput.
type Runner struct {
	cfg       Config
	log       *slog.Logger
	observers []Observer
}

func NewRunner(cfg Config, logger *slog.Logger, observers ...Observer) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("cfg.Validate: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		cfg:       cfg,
		log:       logger,
		observers: observers,
	}, nil
}

// Run benchmarks the operations against the libraries. A library whose
// driver can not be built is skipped. Failed calls are recorded as samples.
// Only a cancelled context ends the run early, in which case the partial
// report is returned together with the context error.
func (r *Runner) Run(ctx context.Context, libraries []Library, ops []*Operation) (*Report, error) {
	if len(libraries) == 0 {
		return nil, ErrNoLibraries
	}
	if len(ops) == 0 {
		return nil, ErrNoOperations
	}

	report := &Report{
		ID:        uuid.New().String(),
		StartedAt: time.Now(),
		Skipped:   make(map[string]error),
		Samples:   make([]Sample, 0, len(libraries)*len(ops)*r.cfg.Runs*r.cfg.Iterations),
	}
	defer func() { report.FinishedAt = time.Now() }()

	order := make([]Library, len(libraries))
	copy(order, libraries)
	if r.cfg.Shuffle {
		rnd := rand.New(rand.NewSource(r.cfg.Seed))
		rnd.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	}

	var drivers []Driver
	defer func() {
		for _, d := range drivers {
			d.Close()
		}
	}()

	for _, lib := range order {
		log := r.log.With(slog.String("library", lib.Name()))

		driver, err := lib.Adapter.Connect(lib.Params)
		if err != nil {
			log.ErrorContext(ctx, "skipping library", slog.String("error", err.Error()))
			report.Skipped[lib.Name()] = err
			continue
		}
		drivers = append(drivers, driver)
		report.Libraries = append(report.Libraries, lib.Name())

		for _, op := range ops {
			samples, err := r.runOperation(ctx, log, lib.Name(), driver, op)
			report.Samples = append(report.Samples, samples...)
			if err != nil {
				return report, err
			}
		}
	}

	return report, nil
}

func (r *Runner) runOperation(ctx context.Context, log *slog.Logger, library string, driver Driver, op *Operation) ([]Sample, error) {
	log = log.With(slog.String("operation", op.Name))

	if op.Prepare != "" {
		r.maintain(ctx, log, driver, UpdateOperation(op.Name+"/prepare", op.Prepare))
	}
	if op.Reset != "" {
		defer r.maintain(context.WithoutCancel(ctx), log, driver, UpdateOperation(op.Name+"/reset", op.Reset))
	}

	for i := 0; i < r.cfg.Warmup; i++ {
		res := driver.Execute(ctx, op)
		if !res.Success {
			log.DebugContext(ctx, "warmup call failed", slog.Any("error", res.Err))
		}
	}

	samples := make([]Sample, 0, r.cfg.Runs*r.cfg.Iterations)
	failures := 0
	for run := 0; run < r.cfg.Runs; run++ {
		for it := 0; it < r.cfg.Iterations; it++ {
			if err := ctx.Err(); err != nil {
				return samples, err
			}

			s := newSample(library, op, run, it, driver.Execute(ctx, op))
			if !s.Success {
				failures++
				log.DebugContext(ctx, "call failed",
					slog.Int("run", run),
					slog.Int("iteration", it),
					slog.String("error", s.Err),
				)
			}

			samples = append(samples, s)
			for _, o := range r.observers {
				o.Observe(s)
			}
		}
	}

	log.InfoContext(ctx, "operation measured",
		slog.Int("samples", len(samples)),
		slog.Int("failures", failures),
	)

	return samples, nil
}

// maintain runs a prepare or reset update. Its failure only leaves the
// database off its baseline, so it is logged and the run goes on.
func (r *Runner) maintain(ctx context.Context, log *slog.Logger, driver Driver, op *Operation) {
	res := driver.Execute(ctx, op)
	if !res.Success {
		log.WarnContext(ctx, "maintenance update failed",
			slog.String("update", op.Name),
			slog.Any("error", res.Err),
		)
	}
}
