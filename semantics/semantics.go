// Package semantics implements STL's two evaluation modes over a typed
// AST and a Trace: EvalBool produces the classical Boolean satisfaction
// signal, EvalRobust produces the quantitative robustness degree. Both walk
// the expr tree with a plain type switch rather than the Visitor interface
// in package expr — each is a single pass, so the extra indirection buys
// nothing a reviewer couldn't get from the switch itself.
//
// Independent operands of n-ary And/Or are evaluated concurrently with
// golang.org/x/sync/errgroup.
package semantics

import (
	"math"

	"golang.org/x/sync/errgroup"

	"argus/argerrors"
	"argus/expr"
	"argus/signal"
	"argus/trace"
)

// ---- numeric evaluation, shared by both modes ----

func evalNumeric(node expr.Numeric, tr *trace.Trace) (any, error) {
	switch n := node.(type) {
	case *expr.ConstInt:
		return signal.NewConstant(n.Value), nil
	case *expr.ConstUInt:
		return signal.NewConstant(n.Value), nil
	case *expr.ConstFloat:
		return signal.NewConstant(n.Value), nil
	case *expr.VarNum:
		return evalVarNum(n, tr)
	case *expr.Neg:
		operand, err := evalNumeric(n.Operand, tr)
		if err != nil {
			return nil, err
		}
		return applyNeg(n.Elem, operand)
	case *expr.Arith:
		left, err := evalNumeric(n.Left, tr)
		if err != nil {
			return nil, err
		}
		right, err := evalNumeric(n.Right, tr)
		if err != nil {
			return nil, err
		}
		leftC, err := castTo(left, n.Left.ElemType(), n.Elem)
		if err != nil {
			return nil, err
		}
		rightC, err := castTo(right, n.Right.ElemType(), n.Elem)
		if err != nil {
			return nil, err
		}
		return applyArith(n.Op, n.Elem, leftC, rightC)
	default:
		return nil, argerrors.New(argerrors.TypeMismatch, "unsupported numeric node %T", node)
	}
}

// evalVarNum resolves a numeric variable against the trace's actual bound
// kind rather than the AST's declared Elem: the parser has no trace to
// consult when it builds a VarNum, so it always declares Elem as Float
// (see parser.parseNumPrimary); the real kind only becomes known here.
// The common case (n.Elem == Float, the only kind the parser ever
// produces) goes through Trace.ResolveNumericAsFloat, which already
// widens a bound Int/UInt signal to Float; a VarNum built with a
// non-Float Elem (possible via the programmatic expr API) instead
// resolves by the trace's real kind and casts to n.Elem.
func evalVarNum(n *expr.VarNum, tr *trace.Trace) (any, error) {
	if n.Elem == signal.KindFloat {
		return tr.ResolveNumericAsFloat(n.Name)
	}
	actual, err := tr.KindOf(n.Name)
	if err != nil {
		return nil, err
	}
	var v any
	switch actual {
	case signal.KindInt:
		v, err = tr.ResolveInt(n.Name)
	case signal.KindUInt:
		v, err = tr.ResolveUInt(n.Name)
	default:
		v, err = tr.ResolveFloat(n.Name)
	}
	if err != nil {
		return nil, err
	}
	return castTo(v, actual, n.Elem)
}

func castTo(v any, from, to signal.Kind) (any, error) {
	if from == to {
		return v, nil
	}
	switch x := v.(type) {
	case *signal.Signal[int64]:
		if to == signal.KindUInt {
			return signal.Cast[int64, uint64](x)
		}
		return signal.Cast[int64, float64](x)
	case *signal.Signal[uint64]:
		if to == signal.KindInt {
			return signal.Cast[uint64, int64](x)
		}
		return signal.Cast[uint64, float64](x)
	case *signal.Signal[float64]:
		if to == signal.KindInt {
			return signal.Cast[float64, int64](x)
		}
		return signal.Cast[float64, uint64](x)
	default:
		return nil, argerrors.New(argerrors.TypeMismatch, "cannot cast numeric signal of kind %s to %s", from, to)
	}
}

func applyNeg(kind signal.Kind, v any) (any, error) {
	switch kind {
	case signal.KindInt:
		return signal.Unary(v.(*signal.Signal[int64]), signal.Neg[int64])
	case signal.KindUInt:
		return signal.Unary(v.(*signal.Signal[uint64]), signal.Neg[uint64])
	default:
		return signal.Unary(v.(*signal.Signal[float64]), signal.Neg[float64])
	}
}

func applyArith(op expr.ArithOp, kind signal.Kind, left, right any) (any, error) {
	switch kind {
	case signal.KindInt:
		return signal.Arithmetic(left.(*signal.Signal[int64]), right.(*signal.Signal[int64]), arithFunc[int64](op))
	case signal.KindUInt:
		return signal.Arithmetic(left.(*signal.Signal[uint64]), right.(*signal.Signal[uint64]), arithFunc[uint64](op))
	default:
		return signal.Arithmetic(left.(*signal.Signal[float64]), right.(*signal.Signal[float64]), arithFunc[float64](op))
	}
}

func arithFunc[T signal.Numeric](op expr.ArithOp) func(a, b T) (T, error) {
	switch op {
	case expr.OpAdd:
		return signal.CheckedAdd[T]
	case expr.OpSub:
		return signal.CheckedSub[T]
	case expr.OpMul:
		return signal.CheckedMul[T]
	default:
		return signal.CheckedDiv[T]
	}
}

func commonKind(a, b signal.Kind) signal.Kind {
	if a == signal.KindFloat || b == signal.KindFloat {
		return signal.KindFloat
	}
	if a != b {
		return signal.KindInt
	}
	return a
}

func cmpFunc[T signal.Numeric](op expr.CmpOp) func(a, b T) bool {
	switch op {
	case expr.OpLt:
		return func(a, b T) bool { return a < b }
	case expr.OpLe:
		return func(a, b T) bool { return a <= b }
	case expr.OpGt:
		return func(a, b T) bool { return a > b }
	case expr.OpGe:
		return func(a, b T) bool { return a >= b }
	case expr.OpEq:
		return func(a, b T) bool { return a == b }
	default:
		return func(a, b T) bool { return a != b }
	}
}

func evalCmpBool(n *expr.Cmp, tr *trace.Trace) (*signal.Signal[bool], error) {
	left, err := evalNumeric(n.Left, tr)
	if err != nil {
		return nil, err
	}
	right, err := evalNumeric(n.Right, tr)
	if err != nil {
		return nil, err
	}
	kind := commonKind(n.Left.ElemType(), n.Right.ElemType())
	leftC, err := castTo(left, n.Left.ElemType(), kind)
	if err != nil {
		return nil, err
	}
	rightC, err := castTo(right, n.Right.ElemType(), kind)
	if err != nil {
		return nil, err
	}
	switch kind {
	case signal.KindInt:
		return signal.Comparison(leftC.(*signal.Signal[int64]), rightC.(*signal.Signal[int64]), cmpFunc[int64](n.Op))
	case signal.KindUInt:
		return signal.Comparison(leftC.(*signal.Signal[uint64]), rightC.(*signal.Signal[uint64]), cmpFunc[uint64](n.Op))
	default:
		return signal.Comparison(leftC.(*signal.Signal[float64]), rightC.(*signal.Signal[float64]), cmpFunc[float64](n.Op))
	}
}

// evalCmpRobust follows the usual STL robustness convention: a<b yields
// b-a, a>b yields a-b, equality/inequality yield -|a-b| / |a-b|, so the
// sign of the result always agrees with the Boolean truth value.
func evalCmpRobust(n *expr.Cmp, tr *trace.Trace) (*signal.Signal[float64], error) {
	left, err := evalNumeric(n.Left, tr)
	if err != nil {
		return nil, err
	}
	right, err := evalNumeric(n.Right, tr)
	if err != nil {
		return nil, err
	}
	leftF, err := castTo(left, n.Left.ElemType(), signal.KindFloat)
	if err != nil {
		return nil, err
	}
	rightF, err := castTo(right, n.Right.ElemType(), signal.KindFloat)
	if err != nil {
		return nil, err
	}
	lf := leftF.(*signal.Signal[float64])
	rf := rightF.(*signal.Signal[float64])
	switch n.Op {
	case expr.OpLt, expr.OpLe:
		return signal.ArithmeticWithCrossings(rf, lf, signal.CheckedSub[float64])
	case expr.OpGt, expr.OpGe:
		return signal.ArithmeticWithCrossings(lf, rf, signal.CheckedSub[float64])
	case expr.OpEq:
		diff, err := signal.ArithmeticWithCrossings(lf, rf, signal.CheckedSub[float64])
		if err != nil {
			return nil, err
		}
		return signal.Unary(diff, func(v float64) (float64, error) { return -math.Abs(v), nil })
	default:
		diff, err := signal.ArithmeticWithCrossings(lf, rf, signal.CheckedSub[float64])
		if err != nil {
			return nil, err
		}
		return signal.Unary(diff, func(v float64) (float64, error) { return math.Abs(v), nil })
	}
}

// ---- Boolean mode ----

// EvalBool evaluates phi against tr under the classical Boolean semantics.
func EvalBool(node expr.Boolean, tr *trace.Trace) (*signal.Signal[bool], error) {
	switch n := node.(type) {
	case *expr.ConstBool:
		return signal.NewConstant(n.Value), nil
	case *expr.VarBool:
		return tr.ResolveBool(n.Name)
	case *expr.Cmp:
		return evalCmpBool(n, tr)
	case *expr.Not:
		operand, err := EvalBool(n.Operand, tr)
		if err != nil {
			return nil, err
		}
		return signal.MapSignal(operand, func(b bool) bool { return !b })
	case *expr.And:
		return evalNAryBool(n.Operands, tr, func(a, b bool) bool { return a && b })
	case *expr.Or:
		return evalNAryBool(n.Operands, tr, func(a, b bool) bool { return a || b })
	case *expr.Implies:
		left, right, err := evalBoolPair(n.Left, n.Right, tr)
		if err != nil {
			return nil, err
		}
		return signal.CombineBool(left, right, func(a, b bool) bool { return !a || b })
	case *expr.Iff:
		left, right, err := evalBoolPair(n.Left, n.Right, tr)
		if err != nil {
			return nil, err
		}
		return signal.CombineBool(left, right, func(a, b bool) bool { return a == b })
	case *expr.Xor:
		left, right, err := evalBoolPair(n.Left, n.Right, tr)
		if err != nil {
			return nil, err
		}
		return signal.CombineBool(left, right, func(a, b bool) bool { return a != b })
	case *expr.Next:
		operand, err := EvalBool(n.Operand, tr)
		if err != nil {
			return nil, err
		}
		return signal.ShiftNext(operand)
	case *expr.Always:
		operand, err := EvalBool(n.Operand, tr)
		if err != nil {
			return nil, err
		}
		return slidingWindow(operand, n.Interval.A, n.Interval.B, func(a, b bool) bool { return a && b })
	case *expr.Eventually:
		operand, err := EvalBool(n.Operand, tr)
		if err != nil {
			return nil, err
		}
		return slidingWindow(operand, n.Interval.A, n.Interval.B, func(a, b bool) bool { return a || b })
	case *expr.Until:
		left, right, err := evalBoolPair(n.Left, n.Right, tr)
		if err != nil {
			return nil, err
		}
		return untilBool(left, right, n.Interval)
	default:
		return nil, argerrors.New(argerrors.TypeMismatch, "unsupported boolean node %T", node)
	}
}

func evalBoolPair(a, b expr.Boolean, tr *trace.Trace) (*signal.Signal[bool], *signal.Signal[bool], error) {
	left, err := EvalBool(a, tr)
	if err != nil {
		return nil, nil, err
	}
	right, err := EvalBool(b, tr)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

// evalNAryBool evaluates And/Or's operands concurrently (they share no
// mutable state — each reads the same Trace) and folds the results
// pairwise through the synchronized Bool combiner.
func evalNAryBool(operands []expr.Boolean, tr *trace.Trace, op func(a, b bool) bool) (*signal.Signal[bool], error) {
	results := make([]*signal.Signal[bool], len(operands))
	g := new(errgroup.Group)
	for i, operand := range operands {
		g.Go(func() error {
			r, err := EvalBool(operand, tr)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	acc := results[0]
	for _, r := range results[1:] {
		var err error
		acc, err = signal.CombineBool(acc, r, op)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// untilBool implements the bounded Until table directly: a candidate
// witness time t2 in [t+a,t+b] satisfies Until at t if right holds at t2
// and left holds continuously on [t, t2). This is a direct window scan
// rather than the monotone right-to-left sweep — simpler to read, same
// result, just not linear in the number of samples.
func untilBool(left, right *signal.Signal[bool], iv expr.Interval) (*signal.Signal[bool], error) {
	if left.IsEmpty() || right.IsEmpty() {
		return signal.Empty[bool](signal.Constant)
	}
	if left.IsConstant() && right.IsConstant() {
		rv, _ := right.At(0)
		lv, _ := left.At(0)
		return signal.NewConstant(rv && (lv || iv.A == 0)), nil
	}
	merged, err := signal.CombineBool(left, right, func(a, b bool) bool { return a || b })
	if err != nil {
		return nil, err
	}
	if merged.IsEmpty() {
		return signal.Empty[bool](signal.Constant)
	}
	times := merged.SampleTimes()
	start, end := times[0], times[len(times)-1]

	var outSamples []signal.Sample[bool]
	for _, t := range times {
		lo, hi := t+iv.A, t+iv.B
		if math.IsInf(hi, 1) {
			hi = end
		}
		if lo < start || hi > end || lo > hi {
			continue
		}
		sat := false
		for _, t2 := range times {
			if t2 < lo || t2 > hi {
				continue
			}
			rv, _ := right.At(t2)
			if !rv {
				continue
			}
			holds := true
			for _, t3 := range times {
				if t3 < t || t3 >= t2 {
					continue
				}
				lv, _ := left.At(t3)
				if !lv {
					holds = false
					break
				}
			}
			if holds {
				sat = true
				break
			}
		}
		outSamples = append(outSamples, signal.Sample[bool]{Time: t, Value: sat})
	}
	if len(outSamples) == 0 {
		return signal.Empty[bool](signal.Constant)
	}
	return signal.FromSamples(signal.Constant, outSamples)
}

// slidingWindow reduces `inner` over [t+a, min(t+b, domainEnd)] for every
// sample time t of inner, emitting a sample only where the full window is
// observable within inner's domain (matching Always/Eventually's
// undefined-past-the-horizon edge case). combine is the window's reduction
// (AND/OR for Boolean, Min/Max for robustness); works for both because
// both bool and float64 satisfy signal.Element.
func slidingWindow[T signal.Element](inner *signal.Signal[T], a, b float64, combine func(acc, v T) T) (*signal.Signal[T], error) {
	if inner.IsEmpty() {
		return signal.Empty[T](inner.Interpolation())
	}
	if inner.IsConstant() {
		return inner, nil
	}
	start, _ := inner.StartTime()
	end, _ := inner.EndTime()
	times := inner.SampleTimes()

	var outSamples []signal.Sample[T]
	for _, t := range times {
		lo, hi := t+a, t+b
		if math.IsInf(hi, 1) {
			hi = end
		}
		if lo < start || hi > end || lo > hi {
			continue
		}
		var acc T
		have := false
		visit := func(v T) {
			if !have {
				acc, have = v, true
				return
			}
			acc = combine(acc, v)
		}
		for _, t2 := range times {
			if t2 < lo || t2 > hi {
				continue
			}
			v, _ := inner.At(t2)
			visit(v)
		}
		if loV, ok := inner.At(lo); ok {
			visit(loV)
		}
		if hiV, ok := inner.At(hi); ok {
			visit(hiV)
		}
		if !have {
			continue
		}
		outSamples = append(outSamples, signal.Sample[T]{Time: t, Value: acc})
	}
	if len(outSamples) == 0 {
		return signal.Empty[T](inner.Interpolation())
	}
	return signal.FromSamples(inner.Interpolation(), outSamples)
}

// ---- robustness (quantitative) mode ----

// EvalRobust evaluates phi against tr under the quantitative robustness
// semantics: the result's sign at every instant agrees with EvalBool's
// truth value there, and its magnitude is the margin to the nearest
// satisfaction boundary.
func EvalRobust(node expr.Boolean, tr *trace.Trace) (*signal.Signal[float64], error) {
	switch n := node.(type) {
	case *expr.ConstBool:
		if n.Value {
			return signal.NewConstant(math.Inf(1)), nil
		}
		return signal.NewConstant(math.Inf(-1)), nil
	case *expr.VarBool:
		b, err := tr.ResolveBool(n.Name)
		if err != nil {
			return nil, err
		}
		return signal.MapSignal(b, func(v bool) float64 {
			if v {
				return math.Inf(1)
			}
			return math.Inf(-1)
		})
	case *expr.Cmp:
		return evalCmpRobust(n, tr)
	case *expr.Not:
		operand, err := EvalRobust(n.Operand, tr)
		if err != nil {
			return nil, err
		}
		return signal.Unary(operand, func(v float64) (float64, error) { return -v, nil })
	case *expr.And:
		return evalNAryRobust(n.Operands, tr, signal.Min[float64])
	case *expr.Or:
		return evalNAryRobust(n.Operands, tr, signal.Max[float64])
	case *expr.Implies:
		left, right, err := evalRobustPair(n.Left, n.Right, tr)
		if err != nil {
			return nil, err
		}
		negLeft, err := signal.Unary(left, func(v float64) (float64, error) { return -v, nil })
		if err != nil {
			return nil, err
		}
		return signal.Lattice(negLeft, right, signal.Max[float64])
	case *expr.Iff:
		return evalIffRobust(n.Left, n.Right, tr)
	case *expr.Xor:
		iff, err := evalIffRobust(n.Left, n.Right, tr)
		if err != nil {
			return nil, err
		}
		return signal.Unary(iff, func(v float64) (float64, error) { return -v, nil })
	case *expr.Next:
		operand, err := EvalRobust(n.Operand, tr)
		if err != nil {
			return nil, err
		}
		return signal.ShiftNext(operand)
	case *expr.Always:
		operand, err := EvalRobust(n.Operand, tr)
		if err != nil {
			return nil, err
		}
		return slidingWindow(operand, n.Interval.A, n.Interval.B, signal.Min[float64])
	case *expr.Eventually:
		operand, err := EvalRobust(n.Operand, tr)
		if err != nil {
			return nil, err
		}
		return slidingWindow(operand, n.Interval.A, n.Interval.B, signal.Max[float64])
	case *expr.Until:
		left, right, err := evalRobustPair(n.Left, n.Right, tr)
		if err != nil {
			return nil, err
		}
		return untilRobust(left, right, n.Interval)
	default:
		return nil, argerrors.New(argerrors.TypeMismatch, "unsupported boolean node %T", node)
	}
}

func evalRobustPair(a, b expr.Boolean, tr *trace.Trace) (*signal.Signal[float64], *signal.Signal[float64], error) {
	left, err := EvalRobust(a, tr)
	if err != nil {
		return nil, nil, err
	}
	right, err := EvalRobust(b, tr)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

func evalIffRobust(l, r expr.Boolean, tr *trace.Trace) (*signal.Signal[float64], error) {
	left, right, err := evalRobustPair(l, r, tr)
	if err != nil {
		return nil, err
	}
	ab, err := signal.Lattice(left, right, signal.Min[float64])
	if err != nil {
		return nil, err
	}
	na, err := signal.Unary(left, func(v float64) (float64, error) { return -v, nil })
	if err != nil {
		return nil, err
	}
	nb, err := signal.Unary(right, func(v float64) (float64, error) { return -v, nil })
	if err != nil {
		return nil, err
	}
	nn, err := signal.Lattice(na, nb, signal.Min[float64])
	if err != nil {
		return nil, err
	}
	return signal.Lattice(ab, nn, signal.Max[float64])
}

func evalNAryRobust(operands []expr.Boolean, tr *trace.Trace, pick func(a, b float64) float64) (*signal.Signal[float64], error) {
	results := make([]*signal.Signal[float64], len(operands))
	g := new(errgroup.Group)
	for i, operand := range operands {
		g.Go(func() error {
			r, err := EvalRobust(operand, tr)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	acc := results[0]
	for _, r := range results[1:] {
		var err error
		acc, err = signal.Lattice(acc, r, pick)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func untilRobust(left, right *signal.Signal[float64], iv expr.Interval) (*signal.Signal[float64], error) {
	if left.IsEmpty() || right.IsEmpty() {
		return signal.Empty[float64](signal.Constant)
	}
	if left.IsConstant() && right.IsConstant() {
		rv, _ := right.At(0)
		lv, _ := left.At(0)
		if iv.A == 0 {
			return signal.NewConstant(rv), nil
		}
		return signal.NewConstant(math.Min(lv, rv)), nil
	}
	merged, err := signal.Lattice(left, right, signal.Max[float64])
	if err != nil {
		return nil, err
	}
	if merged.IsEmpty() {
		return signal.Empty[float64](signal.Constant)
	}
	times := merged.SampleTimes()
	start, end := times[0], times[len(times)-1]

	var outSamples []signal.Sample[float64]
	for _, t := range times {
		lo, hi := t+iv.A, t+iv.B
		if math.IsInf(hi, 1) {
			hi = end
		}
		if lo < start || hi > end || lo > hi {
			continue
		}
		best := math.Inf(-1)
		for _, t2 := range times {
			if t2 < lo || t2 > hi {
				continue
			}
			rv, _ := right.At(t2)
			prefix := math.Inf(1)
			if t2 > t {
				for _, t3 := range times {
					if t3 < t || t3 >= t2 {
						continue
					}
					lv, _ := left.At(t3)
					if lv < prefix {
						prefix = lv
					}
				}
			}
			if cand := math.Min(rv, prefix); cand > best {
				best = cand
			}
		}
		outSamples = append(outSamples, signal.Sample[float64]{Time: t, Value: best})
	}
	if len(outSamples) == 0 {
		return signal.Empty[float64](signal.Constant)
	}
	return signal.FromSamples(signal.Constant, outSamples)
}
