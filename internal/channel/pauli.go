// Package channel models the depolarizing noise applied between encoding
// and syndrome measurement: each physical qubit independently receives a
// uniformly chosen Pauli error with probability p, identity otherwise.
package channel

import (
	"fmt"
	"math/rand"

	"github.com/aristath/fivequbit/internal/domain"
	"github.com/aristath/fivequbit/internal/quantum"
)

// Channel is a per-qubit depolarizing channel with a fixed error rate.
// Each qubit gets X, Y or Z with probability p/3 each and identity with
// probability 1-p.
type Channel struct {
	rate float64
}

// New validates the rate and returns the channel.
func New(rate float64) (*Channel, error) {
	if rate < 0 || rate > 1 {
		return nil, fmt.Errorf("error rate %v outside [0,1]: %w", rate, domain.ErrInvalidParameter)
	}
	return &Channel{rate: rate}, nil
}

// Rate returns the per-qubit error probability.
func (c *Channel) Rate() float64 {
	return c.rate
}

// Sample draws an independent error for each data qubit from the injected
// generator. Drawing and applying are separate so trials can record the
// pattern before it touches the state.
func (c *Channel) Sample(rng *rand.Rand) domain.ErrorPattern {
	var pattern domain.ErrorPattern
	for q := range pattern {
		if rng.Float64() >= c.rate {
			continue
		}
		switch rng.Intn(3) {
		case 0:
			pattern[q] = domain.PauliX
		case 1:
			pattern[q] = domain.PauliY
		default:
			pattern[q] = domain.PauliZ
		}
	}
	return pattern
}

// Apply injects a sampled pattern into the register, qubit by qubit.
func Apply(st *quantum.State, pattern domain.ErrorPattern) error {
	for q, p := range pattern {
		gate, ok := quantum.PauliGate(p)
		if !ok {
			continue
		}
		if err := st.Apply(gate, q); err != nil {
			return fmt.Errorf("injecting %s on qubit %d: %w", p, q, err)
		}
	}
	return nil
}
