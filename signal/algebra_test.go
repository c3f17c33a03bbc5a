package signal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"argus/internal/testutil"
	"argus/signal"
)

func TestLattice_MinMaxAreCommutative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		interp := testutil.DrawInterpolation(t)
		xs := testutil.DrawFloatSamples(t, 1, 8)
		ys := testutil.DrawFloatSamples(t, 1, 8)
		x, err := signal.FromSamples(interp, xs)
		if err != nil {
			t.Fatalf("FromSamples(x): %v", err)
		}
		y, err := signal.FromSamples(interp, ys)
		if err != nil {
			t.Fatalf("FromSamples(y): %v", err)
		}

		ab, errA := signal.Lattice(x, y, signal.Min[float64])
		ba, errB := signal.Lattice(y, x, signal.Min[float64])
		if errA != nil || errB != nil {
			t.Fatalf("Lattice: %v / %v", errA, errB)
		}

		if ab.IsEmpty() || ba.IsEmpty() {
			return
		}
		for _, tm := range ab.SampleTimes() {
			va, ok1 := ab.At(tm)
			vb, ok2 := ba.At(tm)
			if ok1 && ok2 && va != vb {
				t.Fatalf("Min(x,y) != Min(y,x) at t=%v: %v != %v", tm, va, vb)
			}
		}
	})
}

func TestCast_RoundTripsIntThroughFloat(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		samples := testutil.DrawIntSamples(t, 1, 8)
		// Keep values in a range float64 represents exactly, so the round
		// trip through Cast[int64,float64] then Cast[float64,int64] is exact.
		for i := range samples {
			samples[i].Value = samples[i].Value % (1 << 40)
		}
		s, err := signal.FromSamples(signal.Constant, samples)
		if err != nil {
			t.Fatalf("FromSamples: %v", err)
		}

		asFloat, err := signal.Cast[int64, float64](s)
		if err != nil {
			t.Fatalf("Cast to float: %v", err)
		}
		back, err := signal.Cast[float64, int64](asFloat)
		if err != nil {
			t.Fatalf("Cast back to int: %v", err)
		}

		for _, tm := range s.SampleTimes() {
			orig, _ := s.At(tm)
			got, _ := back.At(tm)
			if orig != got {
				t.Fatalf("round trip mismatch at t=%v: %v != %v", tm, orig, got)
			}
		}
	})
}

func TestCheckedAdd_OverflowDetected(t *testing.T) {
	_, err := signal.CheckedAdd[int64](1<<62, 1<<62)
	require.Error(t, err)
}

func TestCheckedDiv_DivisionByZero(t *testing.T) {
	_, err := signal.CheckedDiv[int64](1, 0)
	require.Error(t, err)
}

func TestNeg_MinInt64Overflows(t *testing.T) {
	var minInt64 int64 = -1 << 63
	_, err := signal.Neg(minInt64)
	require.Error(t, err)
}

func TestShiftNext_DropsFinalSample(t *testing.T) {
	s, err := signal.FromSamples(signal.Constant, []signal.Sample[int64]{
		{Time: 0, Value: 1},
		{Time: 1, Value: 2},
		{Time: 2, Value: 3},
	})
	require.NoError(t, err)
	shifted, err := signal.ShiftNext(s)
	require.NoError(t, err)
	assert.Equal(t, 2, shifted.NumSamples())
	v, _ := shifted.At(0)
	assert.Equal(t, int64(2), v)
	v, _ = shifted.At(1)
	assert.Equal(t, int64(3), v)
}

func TestArithmeticWithCrossings_InsertsExactZeroCrossing(t *testing.T) {
	x, err := signal.FromSamples(signal.Linear, []signal.Sample[float64]{
		{Time: 0, Value: -1.0},
		{Time: 2, Value: 1.0},
	})
	require.NoError(t, err)
	zero, err := signal.FromSamples(signal.Linear, []signal.Sample[float64]{
		{Time: 0, Value: 0},
		{Time: 2, Value: 0},
	})
	require.NoError(t, err)

	diff, err := signal.ArithmeticWithCrossings(x, zero, signal.CheckedSub[float64])
	require.NoError(t, err)
	require.Equal(t, 3, diff.NumSamples())
	v, ok := diff.At(1)
	require.True(t, ok)
	assert.InDelta(t, 0.0, v, 1e-9)

	// Plain Arithmetic has no crossing insertion and keeps only the two
	// original grid points.
	plain, err := signal.Arithmetic(x, zero, signal.CheckedSub[float64])
	require.NoError(t, err)
	assert.Equal(t, 2, plain.NumSamples())
}

func TestIterPairs_SynchronizesAndInsertsCrossings(t *testing.T) {
	x, err := signal.FromSamples(signal.Linear, []signal.Sample[float64]{
		{Time: 0, Value: -1.0},
		{Time: 2, Value: 1.0},
	})
	require.NoError(t, err)
	y, err := signal.FromSamples(signal.Linear, []signal.Sample[float64]{
		{Time: 0, Value: 0},
		{Time: 2, Value: 0},
	})
	require.NoError(t, err)

	pairs := signal.IterPairs(x, y)
	require.Len(t, pairs, 3)
	assert.InDelta(t, 1.0, pairs[1].Time, 1e-9)
	assert.InDelta(t, 0.0, pairs[1].Left, 1e-9)
	assert.InDelta(t, 0.0, pairs[1].Right, 1e-9)
}

func TestCombineBool_SynchronizesDomains(t *testing.T) {
	x, err := signal.FromSamples(signal.Constant, []signal.Sample[bool]{
		{Time: 0, Value: true},
		{Time: 2, Value: false},
	})
	require.NoError(t, err)
	y, err := signal.FromSamples(signal.Constant, []signal.Sample[bool]{
		{Time: 1, Value: true},
		{Time: 3, Value: true},
	})
	require.NoError(t, err)
	combined, err := signal.CombineBool(x, y, func(a, b bool) bool { return a && b })
	require.NoError(t, err)
	// Overlap domain is [1,2].
	v, ok := combined.At(1)
	require.True(t, ok)
	assert.True(t, v)
}
