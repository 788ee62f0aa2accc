package quantum

import (
	"math"

	"github.com/aristath/fivequbit/internal/domain"
)

// Gate is a fixed unitary operator over one or two qubits. The matrix is
// indexed little-endian over the qubit arguments of Apply: the first qubit
// passed to Apply is the low bit of the row/column index. All gates here are
// immutable package-level values and must never be mutated.
type Gate struct {
	Name   string
	Matrix [][]complex128
}

// Arity returns the number of qubits the gate acts on.
func (g Gate) Arity() int {
	dim := len(g.Matrix)
	arity := 0
	for dim > 1 {
		dim >>= 1
		arity++
	}
	return arity
}

var invSqrt2 = complex(1/math.Sqrt2, 0)

// Single-qubit gates.
var (
	H = Gate{Name: "H", Matrix: [][]complex128{
		{invSqrt2, invSqrt2},
		{invSqrt2, -invSqrt2},
	}}
	X = Gate{Name: "X", Matrix: [][]complex128{
		{0, 1},
		{1, 0},
	}}
	Y = Gate{Name: "Y", Matrix: [][]complex128{
		{0, -1i},
		{1i, 0},
	}}
	Z = Gate{Name: "Z", Matrix: [][]complex128{
		{1, 0},
		{0, -1},
	}}
	S = Gate{Name: "S", Matrix: [][]complex128{
		{1, 0},
		{0, 1i},
	}}
	Sdg = Gate{Name: "Sdg", Matrix: [][]complex128{
		{1, 0},
		{0, -1i},
	}}
)

// Controlled Paulis. The control is the first qubit passed to Apply, the
// target the second.
var (
	CX = Gate{Name: "CX", Matrix: [][]complex128{
		{1, 0, 0, 0},
		{0, 0, 0, 1},
		{0, 0, 1, 0},
		{0, 1, 0, 0},
	}}
	CY = Gate{Name: "CY", Matrix: [][]complex128{
		{1, 0, 0, 0},
		{0, 0, 0, -1i},
		{0, 0, 1, 0},
		{0, 1i, 0, 0},
	}}
	CZ = Gate{Name: "CZ", Matrix: [][]complex128{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, -1},
	}}
)

// PauliGate maps a Pauli label to its gate. The identity has no gate; the
// second return value is false in that case.
func PauliGate(p domain.Pauli) (Gate, bool) {
	switch p {
	case domain.PauliX:
		return X, true
	case domain.PauliY:
		return Y, true
	case domain.PauliZ:
		return Z, true
	default:
		return Gate{}, false
	}
}

// ControlledPauliGate maps a Pauli label to its controlled variant, used by
// the ancilla-based syndrome measurement.
func ControlledPauliGate(p domain.Pauli) (Gate, bool) {
	switch p {
	case domain.PauliX:
		return CX, true
	case domain.PauliY:
		return CY, true
	case domain.PauliZ:
		return CZ, true
	default:
		return Gate{}, false
	}
}
