package code

import (
	"fmt"

	"github.com/aristath/fivequbit/internal/domain"
)

// recoveryTable maps all 16 syndromes to recovery operations. Built once at
// init from the generator definitions and never mutated, so it is safe as
// shared read-only state.
var recoveryTable = mustBuildRecoveryTable()

// Decoder turns a measured syndrome into the recovery operation that cancels
// the indicated single-qubit error. The lookup is total: every 4-bit pattern
// has exactly one entry.
type Decoder struct{}

// NewDecoder returns the syndrome decoder for the five-qubit code.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode is a pure table lookup. The all-zero syndrome maps to no recovery;
// the other 15 patterns map bijectively to the 15 single-qubit Paulis.
func (d *Decoder) Decode(s domain.Syndrome) domain.RecoveryOperation {
	return recoveryTable[s&0x0F]
}

// buildRecoveryTable derives the table analytically: each single-qubit Pauli
// error is assigned the syndrome of the generators it anticommutes with. The
// code guarantees this assignment is a bijection over the 16 patterns;
// anything else means the generator definitions are wrong.
func buildRecoveryTable() ([16]domain.RecoveryOperation, error) {
	var table [16]domain.RecoveryOperation
	var seen [16]bool

	table[0] = domain.NoRecovery
	seen[0] = true

	for q := 0; q < domain.DataQubits; q++ {
		for _, p := range []domain.Pauli{domain.PauliX, domain.PauliY, domain.PauliZ} {
			s := SyndromeOf(p, q)
			if s == 0 {
				return table, fmt.Errorf("error %s%d commutes with every generator", p, q)
			}
			if seen[s] {
				return table, fmt.Errorf("syndrome %s assigned to both %s and %s%d", s, table[s], p, q)
			}
			table[s] = domain.RecoveryOperation{Pauli: p, Qubit: q}
			seen[s] = true
		}
	}
	for s, ok := range seen {
		if !ok {
			return table, fmt.Errorf("syndrome %04b has no assigned error", s)
		}
	}
	return table, nil
}

func mustBuildRecoveryTable() [16]domain.RecoveryOperation {
	table, err := buildRecoveryTable()
	if err != nil {
		panic(fmt.Sprintf("five-qubit code recovery table: %v", err))
	}
	return table
}
