// Package quantum implements the state-vector simulator underneath the
// five-qubit code: a complex amplitude vector over n qubits, unitary gate
// application, and projective single-qubit measurement.
//
// Qubit order is little-endian: qubit i corresponds to bit 1<<i of the basis
// index. The representation and the bit-twiddling gate application follow
// the usual dense state-vector scheme; vectors stay small here (at most
// 2^6 amplitudes: five data qubits plus one transient ancilla).
package quantum

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"

	"github.com/aristath/fivequbit/internal/domain"
)

const (
	// Epsilon is the numerical tolerance for amplitude comparisons and
	// normalization checks throughout the simulator.
	Epsilon = 1e-9

	// driftTolerance is the norm deviation beyond which a gate application
	// is treated as a fatal internal-consistency fault. Looser than Epsilon
	// so that honest floating-point accumulation over a long circuit does
	// not trip it.
	driftTolerance = 1e-6
)

// State is the amplitude vector of an n-qubit register. It is exclusively
// owned by one trial at a time; nothing here is safe for concurrent use.
type State struct {
	amps []complex128
	n    int
	rng  *rand.Rand
}

// New returns the n-qubit register initialized to |0...0>. The generator
// drives measurement outcomes and is injected so trials stay reproducible
// under parallel execution.
func New(n int, rng *rand.Rand) (*State, error) {
	if n < 1 {
		return nil, fmt.Errorf("qubit count %d must be positive: %w", n, domain.ErrInvalidParameter)
	}
	if rng == nil {
		return nil, fmt.Errorf("nil random source: %w", domain.ErrInvalidParameter)
	}
	amps := make([]complex128, 1<<uint(n))
	amps[0] = 1
	return &State{amps: amps, n: n, rng: rng}, nil
}

// NumQubits returns the current register size, including any live ancilla.
func (s *State) NumQubits() int {
	return s.n
}

// Amplitude returns the amplitude of basis state i.
func (s *State) Amplitude(i int) complex128 {
	return s.amps[i]
}

// Norm returns the L2 norm of the amplitude vector. It is 1 within Epsilon
// for any healthy state.
func (s *State) Norm() float64 {
	sum := 0.0
	for _, a := range s.amps {
		sum += real(a)*real(a) + imag(a)*imag(a)
	}
	return math.Sqrt(sum)
}

// Apply applies a gate to the given qubits via tensor extension over the
// full register. Qubit arguments map to the gate matrix little-endian: the
// first argument is the low bit of the matrix index.
//
// Returns an InvalidOperation error for out-of-range or duplicated qubits
// and a NumericalDrift error if the resulting norm deviates from 1 beyond
// tolerance.
func (s *State) Apply(g Gate, qubits ...int) error {
	k := g.Arity()
	if len(qubits) != k {
		return fmt.Errorf("gate %s expects %d qubits, got %d: %w", g.Name, k, len(qubits), domain.ErrInvalidOperation)
	}
	mask := 0
	for _, q := range qubits {
		if q < 0 || q >= s.n {
			return fmt.Errorf("gate %s on qubit %d outside register of %d: %w", g.Name, q, s.n, domain.ErrInvalidOperation)
		}
		bit := 1 << uint(q)
		if mask&bit != 0 {
			return fmt.Errorf("gate %s targets qubit %d twice: %w", g.Name, q, domain.ErrInvalidOperation)
		}
		mask |= bit
	}

	// Offset of each matrix sub-index within the full register.
	dim := 1 << uint(k)
	offsets := make([]int, dim)
	for t := 1; t < dim; t++ {
		off := 0
		for j := 0; j < k; j++ {
			if t>>uint(j)&1 == 1 {
				off |= 1 << uint(qubits[j])
			}
		}
		offsets[t] = off
	}

	scratch := make([]complex128, dim)
	for base := range s.amps {
		if base&mask != 0 {
			continue
		}
		for t := 0; t < dim; t++ {
			scratch[t] = s.amps[base|offsets[t]]
		}
		for r := 0; r < dim; r++ {
			var acc complex128
			for t := 0; t < dim; t++ {
				acc += g.Matrix[r][t] * scratch[t]
			}
			s.amps[base|offsets[r]] = acc
		}
	}

	if norm := s.Norm(); math.Abs(norm-1) > driftTolerance {
		return fmt.Errorf("state norm %.12f after gate %s: %w", norm, g.Name, domain.ErrNumericalDrift)
	}
	return nil
}

// Measure performs a projective measurement of one qubit in the
// computational basis. The outcome is sampled per the Born rule, the state
// collapses to the consistent subspace, and the norm is restored.
func (s *State) Measure(q int) (int, error) {
	if q < 0 || q >= s.n {
		return 0, fmt.Errorf("measure qubit %d outside register of %d: %w", q, s.n, domain.ErrInvalidOperation)
	}
	bit := 1 << uint(q)

	prob0 := 0.0
	for i, a := range s.amps {
		if i&bit == 0 {
			prob0 += real(a)*real(a) + imag(a)*imag(a)
		}
	}

	outcome := 1
	if s.rng.Float64() < prob0 {
		outcome = 0
	}

	// Project onto the observed subspace and renormalize.
	kept := 0.0
	for i, a := range s.amps {
		got := 0
		if i&bit != 0 {
			got = 1
		}
		if got != outcome {
			s.amps[i] = 0
		} else {
			kept += real(a)*real(a) + imag(a)*imag(a)
		}
	}
	if kept < Epsilon {
		return 0, fmt.Errorf("measurement of qubit %d kept norm %.3e: %w", q, kept, domain.ErrNumericalDrift)
	}
	scale := complex(1/math.Sqrt(kept), 0)
	for i := range s.amps {
		s.amps[i] *= scale
	}
	return outcome, nil
}

// AddQubit appends a fresh qubit in |0> as the new highest index and
// returns that index. Used to acquire a transient ancilla for one syndrome
// measurement.
func (s *State) AddQubit() int {
	grown := make([]complex128, len(s.amps)*2)
	copy(grown, s.amps)
	s.amps = grown
	s.n++
	return s.n - 1
}

// DropLast discards the highest-index qubit. The qubit must be in a definite
// basis state, i.e. already measured; discarding an entangled qubit would
// silently decohere the register, so it is rejected as an InvalidOperation.
func (s *State) DropLast() error {
	if s.n < 2 {
		return fmt.Errorf("cannot drop last qubit of a %d-qubit register: %w", s.n, domain.ErrInvalidOperation)
	}
	half := len(s.amps) / 2

	low, high := 0.0, 0.0
	for i, a := range s.amps {
		p := real(a)*real(a) + imag(a)*imag(a)
		if i < half {
			low += p
		} else {
			high += p
		}
	}
	if low > Epsilon && high > Epsilon {
		return fmt.Errorf("qubit %d still in superposition (p0=%.3e p1=%.3e): %w", s.n-1, low, high, domain.ErrInvalidOperation)
	}

	shrunk := make([]complex128, half)
	if high > low {
		copy(shrunk, s.amps[half:])
	} else {
		copy(shrunk, s.amps[:half])
	}
	s.amps = shrunk
	s.n--
	return nil
}

// Overlap returns |<other|s>| for two states of equal size. Comparing the
// modulus makes the result insensitive to global phase.
func (s *State) Overlap(other *State) (float64, error) {
	if len(s.amps) != len(other.amps) {
		return 0, fmt.Errorf("overlap of %d- and %d-qubit states: %w", s.n, other.n, domain.ErrInvalidOperation)
	}
	var inner complex128
	for i, a := range s.amps {
		inner += cmplx.Conj(other.amps[i]) * a
	}
	return cmplx.Abs(inner), nil
}
