package code

import (
	"fmt"

	"github.com/aristath/fivequbit/internal/domain"
	"github.com/aristath/fivequbit/internal/quantum"
)

// Measurer extracts the four-bit stabilizer syndrome from an encoded
// register without collapsing the logical subspace. Stateless; ancillas are
// acquired and discarded inside each call, never held across measurements.
type Measurer struct{}

// NewMeasurer returns the syndrome measurer for the five-qubit code.
func NewMeasurer() *Measurer {
	return &Measurer{}
}

// MeasureSyndrome measures each stabilizer generator in order through a
// fresh ancilla: Hadamard on the ancilla, the generator's Paulis on the data
// qubits controlled by the ancilla, a second Hadamard, then a projective
// measurement of the ancilla. A corrupted codeword is an eigenstate of every
// generator, so the data register is left undisturbed.
func (m *Measurer) MeasureSyndrome(st *quantum.State) (domain.Syndrome, error) {
	if st.NumQubits() != domain.DataQubits {
		return 0, fmt.Errorf("syndrome measurement needs a %d-qubit register, got %d: %w", domain.DataQubits, st.NumQubits(), domain.ErrInvalidOperation)
	}

	var syndrome domain.Syndrome
	for i, gen := range Generators {
		bit, err := m.measureGenerator(st, gen)
		if err != nil {
			return 0, fmt.Errorf("generator %s: %w", gen.Name, err)
		}
		if bit == 1 {
			syndrome |= 1 << uint(i)
		}
	}
	return syndrome, nil
}

func (m *Measurer) measureGenerator(st *quantum.State, gen Generator) (int, error) {
	ancilla := st.AddQubit()

	if err := st.Apply(quantum.H, ancilla); err != nil {
		return 0, err
	}
	for q, p := range gen.Paulis {
		gate, ok := quantum.ControlledPauliGate(p)
		if !ok {
			continue
		}
		if err := st.Apply(gate, ancilla, q); err != nil {
			return 0, err
		}
	}
	if err := st.Apply(quantum.H, ancilla); err != nil {
		return 0, err
	}

	bit, err := st.Measure(ancilla)
	if err != nil {
		return 0, err
	}
	if err := st.DropLast(); err != nil {
		return 0, err
	}
	return bit, nil
}
