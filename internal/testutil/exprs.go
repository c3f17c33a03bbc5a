package testutil

import (
	"pgregory.net/rapid"

	"argus/expr"
	"argus/signal"
)

// DrawNumExpr draws a small, well-typed Numeric expression over the
// variables "num_x", "num_y", "num_z" (all Float), bounded to maxDepth
// levels of arithmetic nesting.
func DrawNumExpr(t *rapid.T, maxDepth int) expr.Numeric {
	if maxDepth <= 0 || rapid.IntRange(0, 3).Draw(t, "numLeafBias") == 0 {
		return numLeaf(t)
	}
	op := expr.ArithOp(rapid.IntRange(0, 3).Draw(t, "arithOp"))
	left := DrawNumExpr(t, maxDepth-1)
	right := DrawNumExpr(t, maxDepth-1)
	node, err := expr.NewArith(op, left, right)
	if err != nil {
		return left
	}
	return node
}

func numLeaf(t *rapid.T) expr.Numeric {
	switch rapid.IntRange(0, 3).Draw(t, "numLeafKind") {
	case 0:
		return &expr.ConstFloat{Value: rapid.Float64Range(-100, 100).Draw(t, "constFloat")}
	case 1:
		names := []string{"num_x", "num_y", "num_z"}
		name := names[rapid.IntRange(0, len(names)-1).Draw(t, "numVarIdx")]
		n, _ := expr.NewVarNum(name, signal.KindFloat)
		return n
	default:
		return expr.NewNeg(numLeaf(t))
	}
}

// DrawBoolExpr draws a small, well-typed Boolean/STL expression over
// "bool_p", "bool_q" and comparisons against the numeric variable pool,
// bounded to maxDepth levels of connective/temporal nesting.
func DrawBoolExpr(t *rapid.T, maxDepth int) expr.Boolean {
	if maxDepth <= 0 || rapid.IntRange(0, 4).Draw(t, "boolLeafBias") == 0 {
		return boolLeaf(t)
	}
	switch rapid.IntRange(0, 8).Draw(t, "boolNodeKind") {
	case 0:
		return expr.NewNot(DrawBoolExpr(t, maxDepth-1))
	case 1:
		n, err := expr.NewAnd(DrawBoolExpr(t, maxDepth-1), DrawBoolExpr(t, maxDepth-1))
		if err != nil {
			return boolLeaf(t)
		}
		return n
	case 2:
		n, err := expr.NewOr(DrawBoolExpr(t, maxDepth-1), DrawBoolExpr(t, maxDepth-1))
		if err != nil {
			return boolLeaf(t)
		}
		return n
	case 3:
		return expr.NewImplies(DrawBoolExpr(t, maxDepth-1), DrawBoolExpr(t, maxDepth-1))
	case 4:
		return expr.NewNext(DrawBoolExpr(t, maxDepth-1))
	case 5:
		return expr.NewAlways(drawInterval(t), DrawBoolExpr(t, maxDepth-1))
	case 6:
		return expr.NewEventually(drawInterval(t), DrawBoolExpr(t, maxDepth-1))
	default:
		return expr.NewUntil(drawInterval(t), DrawBoolExpr(t, maxDepth-1), DrawBoolExpr(t, maxDepth-1))
	}
}

func boolLeaf(t *rapid.T) expr.Boolean {
	switch rapid.IntRange(0, 2).Draw(t, "boolLeafKind") {
	case 0:
		return &expr.ConstBool{Value: rapid.Bool().Draw(t, "constBool")}
	case 1:
		names := []string{"bool_p", "bool_q"}
		name := names[rapid.IntRange(0, len(names)-1).Draw(t, "boolVarIdx")]
		return &expr.VarBool{Name: name}
	default:
		op := expr.CmpOp(rapid.IntRange(0, 5).Draw(t, "cmpOp"))
		node, err := expr.NewCmp(op, numLeaf(t), numLeaf(t))
		if err != nil {
			return &expr.ConstBool{Value: true}
		}
		return node
	}
}

func drawInterval(t *rapid.T) expr.Interval {
	a := rapid.Float64Range(0, 5).Draw(t, "intervalA")
	b := a + rapid.Float64Range(0, 10).Draw(t, "intervalWidth")
	iv, err := expr.NewInterval(a, b)
	if err != nil {
		return expr.Unbounded
	}
	return iv
}
