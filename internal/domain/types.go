// Package domain holds the shared value types of the five-qubit code
// simulator. Types here are pure data: no infrastructure dependencies, no
// behavior beyond construction and formatting.
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DataQubits is the number of physical qubits carrying the logical state.
const DataQubits = 5

// Pauli labels a single-qubit Pauli operator (or the identity).
type Pauli uint8

const (
	PauliI Pauli = iota
	PauliX
	PauliY
	PauliZ
)

// String returns the conventional one-letter name.
func (p Pauli) String() string {
	switch p {
	case PauliI:
		return "I"
	case PauliX:
		return "X"
	case PauliY:
		return "Y"
	case PauliZ:
		return "Z"
	default:
		return fmt.Sprintf("Pauli(%d)", uint8(p))
	}
}

// ErrorPattern maps each data qubit to the Pauli error it received.
// Identity entries mean the qubit was left untouched.
type ErrorPattern [DataQubits]Pauli

// Weight counts the qubits with a non-identity error.
func (e ErrorPattern) Weight() int {
	w := 0
	for _, p := range e {
		if p != PauliI {
			w++
		}
	}
	return w
}

// String renders the pattern as a five-letter word, qubit 0 first.
func (e ErrorPattern) String() string {
	buf := make([]byte, 0, DataQubits)
	for _, p := range e {
		buf = append(buf, p.String()[0])
	}
	return string(buf)
}

// Syndrome is the ordered outcome of measuring the four stabilizer
// generators. Bit i is generator i's result: 0 for eigenvalue +1,
// 1 for eigenvalue -1.
type Syndrome uint8

// Bit returns syndrome bit i.
func (s Syndrome) Bit(i int) int {
	return int(s>>uint(i)) & 1
}

// String renders the four bits in generator order.
func (s Syndrome) String() string {
	return fmt.Sprintf("%d%d%d%d", s.Bit(0), s.Bit(1), s.Bit(2), s.Bit(3))
}

// RecoveryOperation is the correction indicated by a syndrome: a Pauli and
// the data qubit it targets. The identity Pauli means no correction is
// needed, in which case Qubit is -1.
type RecoveryOperation struct {
	Pauli Pauli
	Qubit int
}

// NoRecovery is the operation assigned to the all-zero syndrome.
var NoRecovery = RecoveryOperation{Pauli: PauliI, Qubit: -1}

// IsIdentity reports whether the operation applies no gate.
func (r RecoveryOperation) IsIdentity() bool {
	return r.Pauli == PauliI
}

// String renders e.g. "X2" or "-" for the identity.
func (r RecoveryOperation) String() string {
	if r.IsIdentity() {
		return "-"
	}
	return fmt.Sprintf("%s%d", r.Pauli, r.Qubit)
}

// TrialResult records the outcome of one encode/error/correct/verify cycle.
// Syndrome and Injected are kept for auditability.
type TrialResult struct {
	Success  bool
	Syndrome Syndrome
	Injected ErrorPattern
	Recovery RecoveryOperation
}

// SweepResult aggregates all trials run at a single error rate. When Trials
// is zero SuccessProbability and the confidence bounds are NaN.
type SweepResult struct {
	Rate               float64 `json:"rate" msgpack:"rate"`
	Trials             int     `json:"trials" msgpack:"trials"`
	Successes          int     `json:"successes" msgpack:"successes"`
	SuccessProbability float64 `json:"success_probability" msgpack:"success_probability"`
	ConfidenceLow      float64 `json:"confidence_low" msgpack:"confidence_low"`
	ConfidenceHigh     float64 `json:"confidence_high" msgpack:"confidence_high"`
}

// SweepReport is the full output of one sweep run, ordered to match the
// requested rate sequence.
type SweepReport struct {
	RunID           uuid.UUID     `json:"run_id" msgpack:"run_id"`
	GeneratedAt     time.Time     `json:"generated_at" msgpack:"generated_at"`
	Seed            uint64        `json:"seed" msgpack:"seed"`
	ConfidenceLevel float64       `json:"confidence_level" msgpack:"confidence_level"`
	Results         []SweepResult `json:"results" msgpack:"results"`
}
