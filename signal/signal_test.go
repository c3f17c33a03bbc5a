package signal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"argus/argerrors"
	"argus/signal"
)

func TestFromSamples_RejectsNonMonotone(t *testing.T) {
	_, err := signal.FromSamples(signal.Constant, []signal.Sample[int64]{
		{Time: 1, Value: 1},
		{Time: 1, Value: 2},
	})
	require.Error(t, err)
	ae, ok := err.(*argerrors.ArgusError)
	require.True(t, ok)
	assert.Equal(t, argerrors.MonotonicityError, ae.Type)
}

func TestFromSamples_EmptySliceIsEmptySignal(t *testing.T) {
	s, err := signal.FromSamples[float64](signal.Linear, nil)
	require.NoError(t, err)
	assert.True(t, s.IsEmpty())
}

func TestEmpty_RejectsLinearBool(t *testing.T) {
	_, err := signal.Empty[bool](signal.Linear)
	require.Error(t, err)
}

func TestPush_FailsOnEmptyAndConstant(t *testing.T) {
	e, err := signal.Empty[int64](signal.Constant)
	require.NoError(t, err)
	err = e.Push(1, 5)
	require.Error(t, err)
	ae := err.(*argerrors.ArgusError)
	assert.Equal(t, argerrors.NonSampledPushError, ae.Type)

	c := signal.NewConstant[int64](3)
	err = c.Push(1, 5)
	require.Error(t, err)
}

func TestPush_RejectsNonIncreasingTime(t *testing.T) {
	s, err := signal.FromSamples(signal.Constant, []signal.Sample[int64]{{Time: 0, Value: 1}})
	require.NoError(t, err)
	require.NoError(t, s.Push(1, 2))
	err = s.Push(1, 3)
	require.Error(t, err)
	err = s.Push(0.5, 3)
	require.Error(t, err)
}

func TestAt_ConstantSignalIsDefinedEverywhere(t *testing.T) {
	c := signal.NewConstant(true)
	v, ok := c.At(-1000)
	require.True(t, ok)
	assert.True(t, v)
}

func TestAt_OutsideDomainIsUndefined(t *testing.T) {
	s, err := signal.FromSamples(signal.Constant, []signal.Sample[int64]{
		{Time: 1, Value: 10},
		{Time: 2, Value: 20},
	})
	require.NoError(t, err)
	_, ok := s.At(0.5)
	assert.False(t, ok)
	_, ok = s.At(2.5)
	assert.False(t, ok)
}

func TestAt_ConstantInterpolationHoldsLastValue(t *testing.T) {
	s, err := signal.FromSamples(signal.Constant, []signal.Sample[int64]{
		{Time: 0, Value: 10},
		{Time: 2, Value: 20},
	})
	require.NoError(t, err)
	v, ok := s.At(1)
	require.True(t, ok)
	assert.Equal(t, int64(10), v)
}

func TestAt_LinearInterpolationInterpolates(t *testing.T) {
	s, err := signal.FromSamples(signal.Linear, []signal.Sample[float64]{
		{Time: 0, Value: 0},
		{Time: 2, Value: 10},
	})
	require.NoError(t, err)
	v, ok := s.At(1)
	require.True(t, ok)
	assert.InDelta(t, 5.0, v, 1e-9)
}

func TestAt_ExactSampleHit(t *testing.T) {
	s, err := signal.FromSamples(signal.Linear, []signal.Sample[float64]{
		{Time: 0, Value: 0},
		{Time: 2, Value: 10},
	})
	require.NoError(t, err)
	v, ok := s.At(2)
	require.True(t, ok)
	assert.Equal(t, 10.0, v)
}
