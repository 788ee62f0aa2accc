// Package main is the entry point for the five-qubit code sweep driver: a
// thin consumer of the simulation engine that parses run parameters, executes
// the Monte Carlo sweep, and renders or serializes the resulting report.
package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/urfave/cli/v2"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/aristath/fivequbit/internal/config"
	"github.com/aristath/fivequbit/internal/domain"
	"github.com/aristath/fivequbit/internal/sweep"
	"github.com/aristath/fivequbit/internal/trial"
	"github.com/aristath/fivequbit/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	app := &cli.App{
		Name:  "sweep",
		Usage: "Monte Carlo sweep of the five-qubit error correcting code",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "rates", Usage: "comma-separated error rates", Value: ratesToString(cfg.Rates)},
			&cli.IntFlag{Name: "trials", Usage: "trials per error rate", Value: cfg.Trials},
			&cli.Uint64Flag{Name: "seed", Usage: "base random seed (0 = from clock)", Value: cfg.Seed},
			&cli.IntFlag{Name: "workers", Usage: "worker goroutines (0 = CPU count)", Value: cfg.Workers},
			&cli.StringFlag{Name: "state", Usage: "logical input: plus, zero, one or random", Value: "plus"},
			&cli.Float64Flag{Name: "confidence", Usage: "confidence level for binomial intervals", Value: cfg.Confidence},
			&cli.StringFlag{Name: "format", Usage: "output format: table, json or msgpack", Value: "table"},
			&cli.StringFlag{Name: "out", Usage: "output file (default stdout)"},
			&cli.StringFlag{Name: "log-level", Value: cfg.LogLevel},
			&cli.BoolFlag{Name: "pretty", Usage: "human-readable log output", Value: cfg.Pretty},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	log := logger.New(logger.Config{
		Level:  c.String("log-level"),
		Pretty: c.Bool("pretty"),
	})

	rates, err := config.ParseRates(c.String("rates"))
	if err != nil {
		return err
	}

	input, err := logicalInput(c.String("state"))
	if err != nil {
		return err
	}

	seed := c.Uint64("seed")
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	workers := c.Int("workers")
	if workers <= 0 {
		workers = detectWorkers(log)
	}

	engine := sweep.NewEngine(trial.NewRunner(log), workers, log)
	report, err := engine.Run(sweep.Request{
		Rates:      rates,
		Trials:     c.Int("trials"),
		Seed:       seed,
		Workers:    workers,
		Confidence: c.Float64("confidence"),
		Input:      input,
	})
	if err != nil {
		return err
	}

	log.Info().Str("run_id", report.RunID.String()).Msg("Sweep finished")
	return writeReport(report, c.String("format"), c.String("out"))
}

// detectWorkers sizes the pool from the machine's logical CPU count and logs
// what it found.
func detectWorkers(log zerolog.Logger) int {
	count, err := cpu.Counts(true)
	if err != nil || count < 1 {
		log.Warn().Err(err).Msg("Could not detect CPU count, using one worker")
		return 1
	}
	log.Info().Int("logical_cpus", count).Msg("Sized worker pool from hardware")
	return count
}

// logicalInput maps the --state flag to an encoder input.
func logicalInput(name string) (sweep.LogicalInput, error) {
	switch name {
	case "plus", "":
		return sweep.PlusState(), nil
	case "zero":
		return sweep.LogicalInput{Alpha: 1, Beta: 0}, nil
	case "one":
		return sweep.LogicalInput{Alpha: 0, Beta: 1}, nil
	case "random":
		return sweep.LogicalInput{Random: true}, nil
	default:
		return sweep.LogicalInput{}, fmt.Errorf("unknown logical state %q (want plus, zero, one or random)", name)
	}
}

func writeReport(report domain.SweepReport, format, outPath string) error {
	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch format {
	case "table", "":
		renderTable(report, out)
		return nil
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "msgpack":
		raw, err := msgpack.Marshal(report)
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		_, err = out.Write(raw)
		return err
	default:
		return fmt.Errorf("unknown output format %q (want table, json or msgpack)", format)
	}
}

func renderTable(report domain.SweepReport, out *os.File) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Error Rate", "Trials", "Successes", "Success Prob", "CI Low", "CI High"})
	for _, r := range report.Results {
		table.Append([]string{
			strconv.FormatFloat(r.Rate, 'g', -1, 64),
			strconv.Itoa(r.Trials),
			strconv.Itoa(r.Successes),
			formatProb(r.SuccessProbability),
			formatProb(r.ConfidenceLow),
			formatProb(r.ConfidenceHigh),
		})
	}
	table.SetCaption(true, fmt.Sprintf("run %s, seed %d, %.0f%% confidence",
		report.RunID, report.Seed, report.ConfidenceLevel*100))
	table.Render()
}

func ratesToString(rates []float64) string {
	parts := make([]string, len(rates))
	for i, r := range rates {
		parts[i] = strconv.FormatFloat(r, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func formatProb(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}
