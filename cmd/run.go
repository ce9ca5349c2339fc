package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/kndndrj/sparqlbench/adapters"
	"github.com/kndndrj/sparqlbench/catalog"
	"github.com/kndndrj/sparqlbench/core"
	"github.com/kndndrj/sparqlbench/metrics"
	"github.com/kndndrj/sparqlbench/output"
	"github.com/kndndrj/sparqlbench/report"
)

const seedTimeout = 60 * time.Second

type runOptions struct {
	endpoint   string
	libraries  []string
	operations []string
	poolSize   int

	runs        int
	iterations  int
	warmup      int
	shuffle     bool
	shuffleSeed int64

	seedEntities int

	paths       output.Paths
	metricsAddr string
}

func newRunCommand(g *globals, stdout io.Writer) *cobra.Command {
	opts := &runOptions{}
	defaults := core.DefaultConfig()

	ccmd := &cobra.Command{
		Use:   "run",
		Short: "Run the benchmark",
		Long: `Seeds the endpoint, then measures every catalog operation with every
selected library: one discarded warmup call, then runs of sequential
iterations. Samples and summaries are written to files and a summary is
printed.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt)
			defer stop()
			return runBenchmark(ctx, g, opts, stdout)
		},
	}

	flags := ccmd.Flags()
	flags.StringVarP(&opts.endpoint, "endpoint", "e", adapters.DefaultEndpoint, "SPARQL endpoint URL, may use {{ env \"NAME\" }}.")
	flags.StringSliceVarP(&opts.libraries, "libraries", "l", adapters.Libraries(), "Libraries to benchmark.")
	flags.StringSliceVarP(&opts.operations, "operations", "o", nil, "Catalog operations to run, all if empty.")
	flags.IntVar(&opts.poolSize, "pool-size", adapters.DefaultPoolSize, "Connection pool size of every library.")
	flags.IntVar(&opts.runs, "runs", defaults.Runs, "Measured runs per library and operation.")
	flags.IntVar(&opts.iterations, "iterations", defaults.Iterations, "Sequential calls per run.")
	flags.IntVar(&opts.warmup, "warmup", defaults.Warmup, "Discarded calls before the first run.")
	flags.BoolVar(&opts.shuffle, "shuffle", false, "Randomize the library order.")
	flags.Int64Var(&opts.shuffleSeed, "shuffle-seed", 0, "Seed of the library order, current time if 0.")
	flags.IntVar(&opts.seedEntities, "seed-entities", 1000, "Entities loaded before benchmarking, 0 to skip.")
	flags.StringVar(&opts.paths.Samples, "samples-out", "samples.csv", "Sample table file, empty to skip.")
	flags.StringVar(&opts.paths.Summary, "summary-out", "summary.csv", "Summary table file, empty to skip.")
	flags.StringVar(&opts.paths.SummaryJSON, "summary-json", "", "Summary JSON file, empty to skip.")
	flags.StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address during the run.")

	return ccmd
}

func runBenchmark(ctx context.Context, g *globals, opts *runOptions, stdout io.Writer) error {
	log := g.logger

	params, err := libraryParams(g.v, opts.libraries, opts.endpoint, opts.poolSize)
	if err != nil {
		return err
	}
	libraries := make([]core.Library, 0, len(params))
	for _, p := range params {
		lib, err := adapters.NewLibrary(p)
		if err != nil {
			return fmt.Errorf("adapters.NewLibrary: %w", err)
		}
		libraries = append(libraries, lib)
	}

	ops, err := catalog.Select(catalog.Default(), opts.operations)
	if err != nil {
		return fmt.Errorf("catalog.Select: %w", err)
	}

	cfg := core.Config{
		Runs:       opts.runs,
		Iterations: opts.iterations,
		Warmup:     opts.warmup,
		Shuffle:    opts.shuffle,
		Seed:       opts.shuffleSeed,
	}
	if cfg.Shuffle && cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	var observers []core.Observer
	if opts.metricsAddr != "" {
		collector := metrics.NewCollector()
		observers = append(observers, collector)

		metricsCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			if err := collector.Serve(metricsCtx, opts.metricsAddr, log); err != nil {
				log.Error("metrics server failed", slog.String("error", err.Error()))
			}
		}()
	}

	runner, err := core.NewRunner(cfg, log, observers...)
	if err != nil {
		return fmt.Errorf("core.NewRunner: %w", err)
	}

	if opts.seedEntities > 0 {
		if err := seed(ctx, opts.endpoint, opts.seedEntities, log); err != nil {
			return err
		}
	}

	log.Info("starting benchmark",
		slog.Int("libraries", len(libraries)),
		slog.Int("operations", len(ops)),
		slog.Int("runs", cfg.Runs),
		slog.Int("iterations", cfg.Iterations),
		slog.Int64("shuffle_seed", cfg.Seed),
	)

	rep, runErr := runner.Run(ctx, libraries, ops)
	if rep == nil {
		return fmt.Errorf("runner.Run: %w", runErr)
	}
	if runErr != nil {
		log.Warn("benchmark interrupted, keeping partial results", slog.String("error", runErr.Error()))
	}

	summary := core.Aggregate(rep.Samples)

	// a cancelled run context must not stop the results from being saved
	if err := output.Write(context.WithoutCancel(ctx), opts.paths, rep, summary, log); err != nil {
		return fmt.Errorf("output.Write: %w", err)
	}
	if err := report.Render(stdout, rep, summary); err != nil {
		return fmt.Errorf("report.Render: %w", err)
	}

	if runErr != nil {
		return fmt.Errorf("runner.Run: %w", runErr)
	}
	if len(rep.Libraries) == 0 {
		return errors.New("no library could connect to the endpoint")
	}

	return nil
}

// seed loads the benchmark data set with a plain net/http client.
func seed(ctx context.Context, endpoint string, entities int, log *slog.Logger) error {
	p := adapters.DefaultParams("nethttp")
	p.Endpoint = endpoint
	p.TotalTimeout = seedTimeout

	lib, err := adapters.NewLibrary(p)
	if err != nil {
		return fmt.Errorf("adapters.NewLibrary: %w", err)
	}
	driver, err := lib.Adapter.Connect(lib.Params)
	if err != nil {
		return fmt.Errorf("adapter.Connect: %w", err)
	}
	defer driver.Close()

	// leftovers of an interrupted run would skew the counts
	res := driver.Execute(ctx, core.UpdateOperation("clear", catalog.ClearUpdate()))
	if !res.Success {
		return fmt.Errorf("clearing the benchmark graph: %w", res.Err)
	}

	res = driver.Execute(ctx, core.UpdateOperation("seed", catalog.SeedUpdate(entities, 0)))
	if !res.Success {
		return fmt.Errorf("loading %d seed entities: %w", entities, res.Err)
	}

	log.Info("seed data loaded", slog.Int("entities", entities), slog.Duration("elapsed", res.Elapsed))
	return nil
}
