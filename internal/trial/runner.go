// Package trial orchestrates a single error-correction cycle:
// prepare, encode, inject error, measure syndrome, decode, correct, verify.
package trial

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"

	"github.com/aristath/fivequbit/internal/channel"
	"github.com/aristath/fivequbit/internal/code"
	"github.com/aristath/fivequbit/internal/domain"
	"github.com/aristath/fivequbit/internal/quantum"
	"github.com/rs/zerolog"
)

// verifyTolerance bounds how far the recovered logical state may sit from
// the original before the trial counts as a failure. Loose enough for
// floating-point accumulation over the full circuit, far tighter than any
// genuine logical error.
const verifyTolerance = 1e-6

// Params describes one trial. Alpha and Beta are the logical input pair,
// Rng drives error sampling and measurement, and ForcedError, when non-nil,
// bypasses the channel and injects an exact pattern (used to exercise each
// correctable error deterministically).
type Params struct {
	Alpha       complex128
	Beta        complex128
	ErrorRate   float64
	Rng         *rand.Rand
	ForcedError *domain.ErrorPattern
}

// Runner owns the per-trial state machine. The code components it composes
// are stateless, so one Runner is safe to share across worker goroutines as
// long as each call gets its own Params.Rng.
type Runner struct {
	encoder  *code.Encoder
	measurer *code.Measurer
	decoder  *code.Decoder
	log      zerolog.Logger
}

// NewRunner wires the code components behind one trial runner.
func NewRunner(log zerolog.Logger) *Runner {
	return &Runner{
		encoder:  code.NewEncoder(),
		measurer: code.NewMeasurer(),
		decoder:  code.NewDecoder(),
		log:      log.With().Str("component", "trial").Logger(),
	}
}

// Run executes one full cycle and reports whether the original logical pair
// survived. Stage failures abort the trial and are returned, never absorbed.
func (r *Runner) Run(p Params) (domain.TrialResult, error) {
	var result domain.TrialResult

	if p.Rng == nil {
		return result, fmt.Errorf("trial needs a random source: %w", domain.ErrInvalidParameter)
	}

	// Prepare + Encode.
	st, err := quantum.New(domain.DataQubits, p.Rng)
	if err != nil {
		return result, err
	}
	if err := r.encoder.Encode(st, p.Alpha, p.Beta); err != nil {
		return result, fmt.Errorf("encode: %w", err)
	}

	// InjectError.
	if p.ForcedError != nil {
		result.Injected = *p.ForcedError
	} else {
		ch, err := channel.New(p.ErrorRate)
		if err != nil {
			return result, err
		}
		result.Injected = ch.Sample(p.Rng)
	}
	if err := channel.Apply(st, result.Injected); err != nil {
		return result, fmt.Errorf("inject error: %w", err)
	}

	// MeasureSyndrome + Decode.
	result.Syndrome, err = r.measurer.MeasureSyndrome(st)
	if err != nil {
		return result, fmt.Errorf("measure syndrome: %w", err)
	}
	result.Recovery = r.decoder.Decode(result.Syndrome)

	// Correct.
	if !result.Recovery.IsIdentity() {
		gate, _ := quantum.PauliGate(result.Recovery.Pauli)
		if err := st.Apply(gate, result.Recovery.Qubit); err != nil {
			return result, fmt.Errorf("apply recovery %s: %w", result.Recovery, err)
		}
	}

	// Verify.
	if err := r.encoder.InverseEncode(st); err != nil {
		return result, fmt.Errorf("verify: %w", err)
	}
	alpha, beta, leakage := r.encoder.LogicalPair(st)
	fidelity := cmplx.Abs(cmplx.Conj(p.Alpha)*alpha + cmplx.Conj(p.Beta)*beta)
	result.Success = leakage <= verifyTolerance && math.Abs(fidelity-1) <= verifyTolerance

	r.log.Debug().
		Stringer("injected", result.Injected).
		Stringer("syndrome", result.Syndrome).
		Stringer("recovery", result.Recovery).
		Float64("fidelity", fidelity).
		Bool("success", result.Success).
		Msg("Trial complete")

	return result, nil
}

// RandomLogicalPair samples a Haar-uniform single-qubit state, used when a
// sweep asks for independently sampled encoder inputs.
func RandomLogicalPair(rng *rand.Rand) (alpha, beta complex128) {
	theta := math.Acos(1 - 2*rng.Float64())
	phi := 2 * math.Pi * rng.Float64()
	alpha = complex(math.Cos(theta/2), 0)
	beta = cmplx.Exp(complex(0, phi)) * complex(math.Sin(theta/2), 0)
	return alpha, beta
}
