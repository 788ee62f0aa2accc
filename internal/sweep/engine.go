// Package sweep runs statistically significant batches of error-correction
// trials across a sequence of error rates and aggregates the results.
package sweep

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/aristath/fivequbit/internal/domain"
	"github.com/aristath/fivequbit/internal/trial"
	"github.com/aristath/fivequbit/pkg/formulas"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultConfidence is the confidence level used when a request leaves it
// unset.
const DefaultConfidence = 0.95

// LogicalInput selects the encoder input used for each trial.
type LogicalInput struct {
	// Random samples a fresh Haar-uniform state per trial when true;
	// otherwise the fixed pair below is reused for every trial.
	Random bool
	Alpha  complex128
	Beta   complex128
}

// PlusState is the default logical input: the equal superposition.
func PlusState() LogicalInput {
	s := complex(1/math.Sqrt2, 0)
	return LogicalInput{Alpha: s, Beta: s}
}

// Request describes one sweep: the ordered error rates, the trial count per
// rate, and the reproducibility seed. Workers defaults to the engine's
// configured parallelism when zero.
type Request struct {
	Rates      []float64
	Trials     int
	Seed       uint64
	Workers    int
	Confidence float64
	Input      LogicalInput
}

// Engine fans independent trials out over a fixed worker pool. Trials share
// nothing mutable: each gets its own state vector and its own seeded
// generator, so completion order never affects the aggregate counts.
type Engine struct {
	runner  *trial.Runner
	workers int
	log     zerolog.Logger
}

// NewEngine creates a sweep engine with the given default worker count.
func NewEngine(runner *trial.Runner, workers int, log zerolog.Logger) *Engine {
	if workers <= 0 {
		workers = 4
	}
	return &Engine{
		runner:  runner,
		workers: workers,
		log:     log.With().Str("component", "sweep").Logger(),
	}
}

// job identifies one trial within the sweep.
type job struct {
	rateIdx  int
	trialIdx int
	rate     float64
}

// outcome is a worker's report for one trial. Failures of the trial
// machinery itself (not logical errors) travel back through err.
type outcome struct {
	rateIdx int
	success bool
	err     error
}

// Run executes the sweep and returns one result row per requested rate, in
// request order. Zero trials is legal and yields NaN probabilities; invalid
// rates or a negative trial count are rejected up front.
func (e *Engine) Run(req Request) (domain.SweepReport, error) {
	report := domain.SweepReport{
		RunID:       uuid.New(),
		GeneratedAt: time.Now().UTC(),
		Seed:        req.Seed,
	}

	if req.Trials < 0 {
		return report, fmt.Errorf("trial count %d must be non-negative: %w", req.Trials, domain.ErrInvalidParameter)
	}
	for _, rate := range req.Rates {
		if rate < 0 || rate > 1 {
			return report, fmt.Errorf("error rate %v outside [0,1]: %w", rate, domain.ErrInvalidParameter)
		}
	}

	confidence := req.Confidence
	if confidence <= 0 || confidence >= 1 {
		confidence = DefaultConfidence
	}
	report.ConfidenceLevel = confidence

	workers := req.Workers
	if workers <= 0 {
		workers = e.workers
	}

	totalJobs := len(req.Rates) * req.Trials
	e.log.Info().
		Int("rates", len(req.Rates)).
		Int("trials_per_rate", req.Trials).
		Int("workers", workers).
		Uint64("seed", req.Seed).
		Msg("Starting sweep")

	successes := make([]int, len(req.Rates))
	if totalJobs > 0 {
		if workers > totalJobs {
			workers = totalJobs
		}

		jobs := make(chan job, totalJobs)
		results := make(chan outcome, totalJobs)

		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				e.worker(req, jobs, results)
			}()
		}

		for ri, rate := range req.Rates {
			for ti := 0; ti < req.Trials; ti++ {
				jobs <- job{rateIdx: ri, trialIdx: ti, rate: rate}
			}
		}
		close(jobs)

		wg.Wait()
		close(results)

		// Success counting is a commutative sum, so the collection order
		// imposed by the channel does not matter.
		for res := range results {
			if res.err != nil {
				return report, fmt.Errorf("trial at rate %v: %w", req.Rates[res.rateIdx], res.err)
			}
			if res.success {
				successes[res.rateIdx]++
			}
		}
	}

	report.Results = make([]domain.SweepResult, len(req.Rates))
	for ri, rate := range req.Rates {
		low, high := formulas.WilsonInterval(successes[ri], req.Trials, confidence)
		report.Results[ri] = domain.SweepResult{
			Rate:               rate,
			Trials:             req.Trials,
			Successes:          successes[ri],
			SuccessProbability: formulas.Proportion(successes[ri], req.Trials),
			ConfidenceLow:      low,
			ConfidenceHigh:     high,
		}
		e.log.Info().
			Float64("rate", rate).
			Int("successes", successes[ri]).
			Int("trials", req.Trials).
			Msg("Rate complete")
	}
	return report, nil
}

func (e *Engine) worker(req Request, jobs <-chan job, results chan<- outcome) {
	for j := range jobs {
		rng := rand.New(rand.NewSource(int64(trialSeed(req.Seed, j.rateIdx*req.Trials+j.trialIdx))))

		alpha, beta := req.Input.Alpha, req.Input.Beta
		if req.Input.Random {
			alpha, beta = trial.RandomLogicalPair(rng)
		}

		res, err := e.runner.Run(trial.Params{
			Alpha:     alpha,
			Beta:      beta,
			ErrorRate: j.rate,
			Rng:       rng,
		})
		results <- outcome{rateIdx: j.rateIdx, success: res.Success, err: err}
	}
}

// trialSeed derives an independent per-trial seed from the base seed and the
// global trial index. The splitmix64 finalizer decorrelates neighboring
// indices so parallel trials never share a stream.
func trialSeed(base uint64, index int) uint64 {
	z := base + uint64(index+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
