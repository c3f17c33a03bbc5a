package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"argus/argerrors"
	"argus/expr"
	"argus/parser"
)

func TestParse_SimpleComparison(t *testing.T) {
	node, err := parser.Parse("x < 3")
	require.NoError(t, err)
	cmp, ok := node.(*expr.Cmp)
	require.True(t, ok)
	assert.Equal(t, expr.OpLt, cmp.Op)
}

func TestParse_BooleanIdentifier(t *testing.T) {
	node, err := parser.Parse("flag")
	require.NoError(t, err)
	_, ok := node.(*expr.VarBool)
	require.True(t, ok)
}

func TestParse_ParenthesizedBooleanIdentifier(t *testing.T) {
	node, err := parser.Parse("(flag)")
	require.NoError(t, err)
	_, ok := node.(*expr.VarBool)
	require.True(t, ok)
}

func TestParse_AndOrPrecedence(t *testing.T) {
	node, err := parser.Parse("a && b || c")
	require.NoError(t, err)
	or, ok := node.(*expr.Or)
	require.True(t, ok)
	_, ok = or.Operands[0].(*expr.And)
	assert.True(t, ok)
}

func TestParse_ImpliesIsRightAssociative(t *testing.T) {
	node, err := parser.Parse("a -> b -> c")
	require.NoError(t, err)
	top, ok := node.(*expr.Implies)
	require.True(t, ok)
	_, ok = top.Right.(*expr.Implies)
	assert.True(t, ok, "-> should be right-associative")
}

func TestParse_AlwaysWithInterval(t *testing.T) {
	node, err := parser.Parse("G[0,5000] x < 3")
	require.NoError(t, err)
	always, ok := node.(*expr.Always)
	require.True(t, ok)
	assert.Equal(t, 0.0, always.Interval.A)
	assert.Equal(t, 5.0, always.Interval.B)
}

func TestParse_EventuallyUnbounded(t *testing.T) {
	node, err := parser.Parse("F x < 3")
	require.NoError(t, err)
	ev, ok := node.(*expr.Eventually)
	require.True(t, ok)
	assert.True(t, ev.Interval.Unbounded())
}

func TestParse_UntilWithInterval(t *testing.T) {
	node, err := parser.Parse("a U[0,2000] b")
	require.NoError(t, err)
	until, ok := node.(*expr.Until)
	require.True(t, ok)
	assert.Equal(t, 2.0, until.Interval.B)
}

func TestParse_NextOperator(t *testing.T) {
	node, err := parser.Parse("X a")
	require.NoError(t, err)
	_, ok := node.(*expr.Next)
	require.True(t, ok)
}

func TestParse_ArithmeticExpression(t *testing.T) {
	node, err := parser.Parse("x + 1 * 2 < y")
	require.NoError(t, err)
	cmp, ok := node.(*expr.Cmp)
	require.True(t, ok)
	arith, ok := cmp.Left.(*expr.Arith)
	require.True(t, ok)
	assert.Equal(t, expr.OpAdd, arith.Op)
	mul, ok := arith.Right.(*expr.Arith)
	require.True(t, ok)
	assert.Equal(t, expr.OpMul, mul.Op)
}

func TestParse_UnaryMinus(t *testing.T) {
	node, err := parser.Parse("-x < 0")
	require.NoError(t, err)
	cmp, ok := node.(*expr.Cmp)
	require.True(t, ok)
	_, ok = cmp.Left.(*expr.Neg)
	assert.True(t, ok)
}

func TestParse_IntOverflowRaisesStructuredError(t *testing.T) {
	_, err := parser.Parse("x < 99999999999999999999999")
	require.Error(t, err)
	ae, ok := err.(*argerrors.ArgusError)
	require.True(t, ok)
	assert.Equal(t, argerrors.ParseIntOverflow, ae.SubKind)
}

func TestParse_UnexpectedCharacterRaisesSyntaxError(t *testing.T) {
	_, err := parser.Parse("x < @ 3")
	require.Error(t, err)
	ae, ok := err.(*argerrors.ArgusError)
	require.True(t, ok)
	assert.Equal(t, argerrors.Syntax, ae.SubKind)
}

func TestParse_TrailingTokenIsRejected(t *testing.T) {
	_, err := parser.Parse("x < 3 y")
	require.Error(t, err)
}

func TestParse_FmtRoundTrip(t *testing.T) {
	node, err := parser.Parse("G[0,1000] (x < 3 && y > 2)")
	require.NoError(t, err)
	printed := expr.Sprint(node)
	reparsed, err := parser.Parse(printed)
	require.NoError(t, err)
	assert.Equal(t, expr.Sprint(node), expr.Sprint(reparsed))
}
