// Package code implements the five-qubit error correcting code: the fixed
// encoding circuit, the four stabilizer generators, ancilla-based syndrome
// extraction, and the syndrome-to-recovery decoder.
//
// The code is the [[5,1,3]] "perfect" code with stabilizer generators
// XZZXI, IXZZX, XIXZZ, ZXIXZ (Nielsen & Chuang, figure 10.13). It corrects
// any single-qubit Pauli error.
package code

import (
	"fmt"

	"github.com/aristath/fivequbit/internal/domain"
)

// Generator is one stabilizer generator: a tensor product of Paulis over the
// five data qubits, written qubit 0 first.
type Generator struct {
	Name   string
	Paulis [domain.DataQubits]domain.Pauli
}

// Generators are the four stabilizer generators of the code, in the fixed
// order that defines syndrome bit positions. Immutable after init.
var Generators = [4]Generator{
	mustParseGenerator("XZZXI"),
	mustParseGenerator("IXZZX"),
	mustParseGenerator("XIXZZ"),
	mustParseGenerator("ZXIXZ"),
}

// ParseGenerator reads a five-letter Pauli word, qubit 0 leftmost.
func ParseGenerator(word string) (Generator, error) {
	if len(word) != domain.DataQubits {
		return Generator{}, fmt.Errorf("generator %q must have %d letters: %w", word, domain.DataQubits, domain.ErrInvalidParameter)
	}
	g := Generator{Name: word}
	for i := 0; i < len(word); i++ {
		switch word[i] {
		case 'I':
			g.Paulis[i] = domain.PauliI
		case 'X':
			g.Paulis[i] = domain.PauliX
		case 'Y':
			g.Paulis[i] = domain.PauliY
		case 'Z':
			g.Paulis[i] = domain.PauliZ
		default:
			return Generator{}, fmt.Errorf("generator %q has unknown Pauli %q: %w", word, word[i], domain.ErrInvalidParameter)
		}
	}
	return g, nil
}

func mustParseGenerator(word string) Generator {
	g, err := ParseGenerator(word)
	if err != nil {
		panic(err)
	}
	return g
}

// Anticommutes reports whether a single-qubit Pauli error on qubit q
// anticommutes with the generator. Two distinct non-identity Paulis on the
// same qubit anticommute; everything else commutes.
func (g Generator) Anticommutes(p domain.Pauli, q int) bool {
	gq := g.Paulis[q]
	return gq != domain.PauliI && p != domain.PauliI && gq != p
}

// SyndromeOf returns the syndrome a single-qubit Pauli error produces,
// derived analytically from the anticommutation relations. Bit i is set when
// the error anticommutes with generator i.
func SyndromeOf(p domain.Pauli, q int) domain.Syndrome {
	var s domain.Syndrome
	for i, g := range Generators {
		if g.Anticommutes(p, q) {
			s |= 1 << uint(i)
		}
	}
	return s
}
