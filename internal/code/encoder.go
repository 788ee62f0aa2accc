package code

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/aristath/fivequbit/internal/domain"
	"github.com/aristath/fivequbit/internal/quantum"
)

// LogicalQubit is the data qubit that carries the bare logical amplitudes
// before encoding and after the inverse transform.
const LogicalQubit = 4

// circuitStep is one gate application in the fixed encoding topology.
type circuitStep struct {
	gate   quantum.Gate
	qubits []int
}

// encodingCircuit maps alpha|00000> + beta|q4=1> to the codeword
// alpha|0_L> + beta|1_L>. The topology is fixed; only the prepared input
// state varies.
var encodingCircuit = []circuitStep{
	{quantum.H, []int{0}},
	{quantum.S, []int{0}},
	{quantum.CZ, []int{0, 1}},
	{quantum.CZ, []int{0, 3}},
	{quantum.CY, []int{0, 4}},
	{quantum.H, []int{1}},
	{quantum.CZ, []int{1, 2}},
	{quantum.CZ, []int{1, 3}},
	{quantum.CX, []int{1, 4}},
	{quantum.H, []int{2}},
	{quantum.CZ, []int{2, 0}},
	{quantum.CZ, []int{2, 1}},
	{quantum.CX, []int{2, 4}},
	{quantum.H, []int{3}},
	{quantum.S, []int{3}},
	{quantum.CZ, []int{3, 0}},
	{quantum.CZ, []int{3, 2}},
	{quantum.CY, []int{3, 4}},
}

// Encoder builds and inverts the codeword circuit. It is stateless and safe
// to share across trials.
type Encoder struct{}

// NewEncoder returns the encoder for the five-qubit code.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Encode prepares the logical pair (alpha, beta) on the bare logical qubit
// of a fresh |00000> register and runs the encoding circuit. The pair must
// be normalized within tolerance.
func (e *Encoder) Encode(st *quantum.State, alpha, beta complex128) error {
	if st.NumQubits() != domain.DataQubits {
		return fmt.Errorf("encode needs a %d-qubit register, got %d: %w", domain.DataQubits, st.NumQubits(), domain.ErrInvalidOperation)
	}
	prep, err := preparationGate(alpha, beta)
	if err != nil {
		return err
	}
	if err := st.Apply(prep, LogicalQubit); err != nil {
		return fmt.Errorf("logical state preparation: %w", err)
	}
	for _, step := range encodingCircuit {
		if err := st.Apply(step.gate, step.qubits...); err != nil {
			return fmt.Errorf("encoding circuit: %w", err)
		}
	}
	return nil
}

// InverseEncode runs the encoding circuit backwards, mapping an intact
// codeword back to alpha|00000> + beta|q4=1> so the logical pair can be read
// off the amplitude vector.
func (e *Encoder) InverseEncode(st *quantum.State) error {
	for i := len(encodingCircuit) - 1; i >= 0; i-- {
		step := encodingCircuit[i]
		if err := st.Apply(dagger(step.gate), step.qubits...); err != nil {
			return fmt.Errorf("inverse encoding circuit: %w", err)
		}
	}
	return nil
}

// LogicalPair reads the bare logical amplitudes after InverseEncode. Any
// weight outside the two logical basis states is reported so callers can
// detect imperfect decoding.
func (e *Encoder) LogicalPair(st *quantum.State) (alpha, beta complex128, leakage float64) {
	oneIdx := 1 << uint(LogicalQubit)
	alpha = st.Amplitude(0)
	beta = st.Amplitude(oneIdx)
	total := 0.0
	for i := 0; i < 1<<uint(st.NumQubits()); i++ {
		if i == 0 || i == oneIdx {
			continue
		}
		a := st.Amplitude(i)
		total += real(a)*real(a) + imag(a)*imag(a)
	}
	return alpha, beta, total
}

// preparationGate is the single-qubit unitary taking |0> to
// alpha|0> + beta|1>.
func preparationGate(alpha, beta complex128) (quantum.Gate, error) {
	norm := real(alpha)*real(alpha) + imag(alpha)*imag(alpha) +
		real(beta)*real(beta) + imag(beta)*imag(beta)
	if math.Abs(norm-1) > quantum.Epsilon {
		return quantum.Gate{}, fmt.Errorf("logical pair (|a|^2+|b|^2=%.9f) is not normalized: %w", norm, domain.ErrInvalidParameter)
	}
	return quantum.Gate{
		Name: "Prep",
		Matrix: [][]complex128{
			{alpha, -cmplx.Conj(beta)},
			{beta, cmplx.Conj(alpha)},
		},
	}, nil
}

// dagger returns the inverse of a circuit gate. Everything in the encoding
// topology is self-inverse except the phase gates.
func dagger(g quantum.Gate) quantum.Gate {
	switch g.Name {
	case "S":
		return quantum.Sdg
	case "Sdg":
		return quantum.S
	default:
		return g
	}
}
