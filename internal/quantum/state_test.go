package quantum

import (
	"math"
	"math/rand"
	"testing"

	"github.com/aristath/fivequbit/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState(t *testing.T, n int) *State {
	t.Helper()
	st, err := New(n, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	return st
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New(0, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)

	_, err = New(3, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestNewStartsInGroundState(t *testing.T) {
	st := newTestState(t, 3)

	assert.Equal(t, 3, st.NumQubits())
	assert.Equal(t, complex128(1), st.Amplitude(0))
	for i := 1; i < 8; i++ {
		assert.Equal(t, complex128(0), st.Amplitude(i))
	}
	assert.InDelta(t, 1.0, st.Norm(), Epsilon)
}

func TestHadamardCreatesSuperposition(t *testing.T) {
	st := newTestState(t, 1)

	require.NoError(t, st.Apply(H, 0))
	inv := 1 / math.Sqrt2
	assert.InDelta(t, inv, real(st.Amplitude(0)), Epsilon)
	assert.InDelta(t, inv, real(st.Amplitude(1)), Epsilon)

	// H is self-inverse.
	require.NoError(t, st.Apply(H, 0))
	assert.InDelta(t, 1.0, real(st.Amplitude(0)), Epsilon)
	assert.InDelta(t, 0.0, real(st.Amplitude(1)), Epsilon)
}

func TestPauliXFlipsQubit(t *testing.T) {
	st := newTestState(t, 2)

	require.NoError(t, st.Apply(X, 1))
	assert.InDelta(t, 1.0, real(st.Amplitude(2)), Epsilon)
	assert.InDelta(t, 0.0, real(st.Amplitude(0)), Epsilon)
}

func TestCNOTEntangles(t *testing.T) {
	st := newTestState(t, 2)

	require.NoError(t, st.Apply(H, 0))
	require.NoError(t, st.Apply(CX, 0, 1))

	// Bell state: equal weight on |00> and |11>.
	inv := 1 / math.Sqrt2
	assert.InDelta(t, inv, real(st.Amplitude(0)), Epsilon)
	assert.InDelta(t, 0.0, real(st.Amplitude(1)), Epsilon)
	assert.InDelta(t, 0.0, real(st.Amplitude(2)), Epsilon)
	assert.InDelta(t, inv, real(st.Amplitude(3)), Epsilon)
}

func TestApplyValidatesQubits(t *testing.T) {
	st := newTestState(t, 2)

	assert.ErrorIs(t, st.Apply(H, 5), domain.ErrInvalidOperation)
	assert.ErrorIs(t, st.Apply(H, -1), domain.ErrInvalidOperation)
	assert.ErrorIs(t, st.Apply(CX, 1, 1), domain.ErrInvalidOperation)
	assert.ErrorIs(t, st.Apply(CX, 0), domain.ErrInvalidOperation)
}

func TestMeasureDeterministicOutcome(t *testing.T) {
	st := newTestState(t, 2)
	require.NoError(t, st.Apply(X, 0))

	bit, err := st.Measure(0)
	require.NoError(t, err)
	assert.Equal(t, 1, bit)
	assert.InDelta(t, 1.0, st.Norm(), Epsilon)

	bit, err = st.Measure(1)
	require.NoError(t, err)
	assert.Equal(t, 0, bit)
}

func TestMeasureCollapsesSuperposition(t *testing.T) {
	st := newTestState(t, 1)
	require.NoError(t, st.Apply(H, 0))

	bit, err := st.Measure(0)
	require.NoError(t, err)
	require.Contains(t, []int{0, 1}, bit)

	// Post-measurement state must be the observed basis state, renormalized.
	assert.InDelta(t, 1.0, real(st.Amplitude(bit)), Epsilon)
	assert.InDelta(t, 0.0, real(st.Amplitude(1-bit)), Epsilon)
	assert.InDelta(t, 1.0, st.Norm(), Epsilon)
}

func TestMeasureValidatesIndex(t *testing.T) {
	st := newTestState(t, 1)
	_, err := st.Measure(3)
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
}

func TestAddAndDropAncilla(t *testing.T) {
	st := newTestState(t, 2)
	require.NoError(t, st.Apply(H, 0))

	anc := st.AddQubit()
	assert.Equal(t, 2, anc)
	assert.Equal(t, 3, st.NumQubits())
	assert.InDelta(t, 1.0, st.Norm(), Epsilon)

	// Fresh ancilla is |0>, so it can be dropped immediately.
	require.NoError(t, st.DropLast())
	assert.Equal(t, 2, st.NumQubits())
	inv := 1 / math.Sqrt2
	assert.InDelta(t, inv, real(st.Amplitude(0)), Epsilon)
	assert.InDelta(t, inv, real(st.Amplitude(1)), Epsilon)
}

func TestDropLastRejectsEntangledQubit(t *testing.T) {
	st := newTestState(t, 1)

	anc := st.AddQubit()
	require.NoError(t, st.Apply(H, anc))

	assert.ErrorIs(t, st.DropLast(), domain.ErrInvalidOperation)
}

func TestDropLastAfterMeasurement(t *testing.T) {
	st := newTestState(t, 1)
	anc := st.AddQubit()
	require.NoError(t, st.Apply(H, anc))

	_, err := st.Measure(anc)
	require.NoError(t, err)
	require.NoError(t, st.DropLast())

	assert.Equal(t, 1, st.NumQubits())
	assert.InDelta(t, 1.0, st.Norm(), Epsilon)
}

func TestOverlapIgnoresGlobalPhase(t *testing.T) {
	a := newTestState(t, 1)
	b := newTestState(t, 1)
	require.NoError(t, a.Apply(H, 0))
	require.NoError(t, b.Apply(H, 0))

	// Z then X then Z then X restores H|0> up to a global -1.
	require.NoError(t, b.Apply(Z, 0))
	require.NoError(t, b.Apply(X, 0))
	require.NoError(t, b.Apply(Z, 0))
	require.NoError(t, b.Apply(X, 0))

	ov, err := a.Overlap(b)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, ov, Epsilon)
}
