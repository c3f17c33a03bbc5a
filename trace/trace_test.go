package trace_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"argus/argerrors"
	"argus/signal"
	"argus/trace"
)

func TestTrace_ResolveBool(t *testing.T) {
	s := signal.NewConstant(true)
	tr := trace.New().WithBool("flag", s)
	got, err := tr.ResolveBool("flag")
	require.NoError(t, err)
	assert.Same(t, s, got)
}

func TestTrace_UnknownVariable(t *testing.T) {
	tr := trace.New()
	_, err := tr.ResolveFloat("missing")
	require.Error(t, err)
	ae := err.(*argerrors.ArgusError)
	assert.Equal(t, argerrors.UnknownVariable, ae.Type)
}

func TestTrace_TypeMismatch(t *testing.T) {
	tr := trace.New().WithBool("flag", signal.NewConstant(true))
	_, err := tr.ResolveFloat("flag")
	require.Error(t, err)
	ae := err.(*argerrors.ArgusError)
	assert.Equal(t, argerrors.TypeMismatch, ae.Type)
}

func TestTrace_ResolveNumericAsFloatCastsIntAndUInt(t *testing.T) {
	tr := trace.New().
		WithInt("i", signal.NewConstant[int64](3)).
		WithUInt("u", signal.NewConstant[uint64](4)).
		WithFloat("f", signal.NewConstant(5.5))

	for _, name := range []string{"i", "u", "f"} {
		s, err := tr.ResolveNumericAsFloat(name)
		require.NoError(t, err)
		v, ok := s.At(0)
		require.True(t, ok)
		assert.Greater(t, v, 0.0)
	}
}

func TestTrace_Names(t *testing.T) {
	tr := trace.New().WithBool("a", signal.NewConstant(true)).WithFloat("b", signal.NewConstant(1.0))
	names := tr.Names()
	assert.ElementsMatch(t, []string{"a", "b"}, names)
}
