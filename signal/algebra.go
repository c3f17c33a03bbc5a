package signal

import (
	"math"

	"argus/argerrors"
)

// Numeric is the subset of Element that supports arithmetic and ordering
// directly via Go's built-in operators (bool is excluded; the AST's
// type-checker never routes a bool operand into these functions).
type Numeric interface {
	int64 | uint64 | float64
}

// domainer is implemented by every *Signal[T] regardless of T, since none of
// its methods mention the type parameter. It lets the synchronization logic
// below operate without itself being generic over two possibly different
// element types.
type domainer interface {
	IsEmpty() bool
	IsConstant() bool
	StartTime() (float64, bool)
	EndTime() (float64, bool)
	SampleTimes() []float64
	Interpolation() Interpolation
}

// mergeTimes computes the synchronized-union sample times of x and y: the
// union of their sample times intersected with the overlap of their
// domains. ok is false when the domains are disjoint (or either operand is
// Empty), in which case the result signal must be Empty.
func mergeTimes(x, y domainer) (times []float64, bothConstant bool, ok bool) {
	if x.IsEmpty() || y.IsEmpty() {
		return nil, false, false
	}
	if x.IsConstant() && y.IsConstant() {
		return nil, true, true
	}
	if x.IsConstant() {
		return y.SampleTimes(), false, true
	}
	if y.IsConstant() {
		return x.SampleTimes(), false, true
	}

	xs, _ := x.StartTime()
	xe, _ := x.EndTime()
	ys, _ := y.StartTime()
	ye, _ := y.EndTime()
	lo := math.Max(xs, ys)
	hi := math.Min(xe, ye)
	if lo > hi {
		return nil, false, false
	}

	merged := unionSorted(x.SampleTimes(), y.SampleTimes())
	out := merged[:0:0]
	for _, t := range merged {
		if t >= lo && t <= hi {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil, false, false
	}
	return out, false, true
}

func unionSorted(a, b []float64) []float64 {
	out := make([]float64, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

// resultInterpolation inherits Linear if both inputs are Linear, else
// Constant. A Constant-variant operand never forces the Constant
// interpolation mode since it is flat everywhere and composes with
// either mode.
func resultInterpolation(x, y domainer) Interpolation {
	if effectiveLinear(x) && effectiveLinear(y) {
		return Linear
	}
	return Constant
}

func effectiveLinear(d domainer) bool {
	if d.IsConstant() || d.IsEmpty() {
		return true
	}
	return d.Interpolation() == Linear
}

// insertCrossings augments a synchronized time union with the exact
// sign-change crossing times of x-y under linear interpolation, so a
// min/max or comparison over two Linear signals is exact at the crossing
// instant rather than only at the merged sample grid.
func insertCrossings[X, Y Numeric](times []float64, x *Signal[X], y *Signal[Y]) []float64 {
	if len(times) < 2 {
		return times
	}
	out := make([]float64, 0, len(times)*2)
	out = append(out, times[0])
	for i := 0; i+1 < len(times); i++ {
		t0, t1 := times[i], times[i+1]
		xv0, _ := x.At(t0)
		yv0, _ := y.At(t0)
		xv1, _ := x.At(t1)
		yv1, _ := y.At(t1)
		d0 := toFloat64(xv0) - toFloat64(yv0)
		d1 := toFloat64(xv1) - toFloat64(yv1)
		if d0 != 0 && d1 != 0 && sign(d0) != sign(d1) {
			frac := math.Abs(d0) / (math.Abs(d0) + math.Abs(d1))
			out = append(out, t0+(t1-t0)*frac)
		}
		out = append(out, t1)
	}
	return out
}

func sign(f float64) int {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	default:
		return 0
	}
}

// Arithmetic evaluates a binary numeric operator (Add/Sub/Mul/Div) over two
// already type-promoted signals of the same element type R. The AST's
// type-checker computes the promoted result type once at construction;
// callers cast each operand to R before invoking this (see Cast).
func Arithmetic[R Numeric](x, y *Signal[R], op func(a, b R) (R, error)) (*Signal[R], error) {
	times, bothConst, ok := mergeTimes(x, y)
	if !ok {
		return Empty[R](resultInterpolation(x, y))
	}
	if bothConst {
		v, err := op(x.constVal, y.constVal)
		if err != nil {
			return nil, err
		}
		return NewConstant(v), nil
	}
	samples := make([]Sample[R], 0, len(times))
	for _, t := range times {
		xv, _ := x.At(t)
		yv, _ := y.At(t)
		v, err := op(xv, yv)
		if err != nil {
			return nil, err
		}
		samples = append(samples, Sample[R]{Time: t, Value: v})
	}
	return FromSamples(resultInterpolation(x, y), samples)
}

// ArithmeticWithCrossings behaves like Arithmetic, but first augments the
// merged time grid with the exact linear zero-crossing times of x-y, the
// same way Lattice and Comparison do. Plain Arithmetic only ever samples op
// at the merged sample grid, so a subtraction whose sign flips strictly
// between two grid points (the case that matters for robustness, where the
// result crossing zero is the satisfaction boundary) would silently miss
// that crossing sample; callers needing an exact zero-crossing, such as
// robustness's a-b, should use this instead.
func ArithmeticWithCrossings[R Numeric](x, y *Signal[R], op func(a, b R) (R, error)) (*Signal[R], error) {
	times, bothConst, ok := mergeTimes(x, y)
	if !ok {
		return Empty[R](resultInterpolation(x, y))
	}
	if bothConst {
		v, err := op(x.constVal, y.constVal)
		if err != nil {
			return nil, err
		}
		return NewConstant(v), nil
	}
	interp := resultInterpolation(x, y)
	if interp == Linear {
		times = insertCrossings(times, x, y)
	}
	samples := make([]Sample[R], 0, len(times))
	for _, t := range times {
		xv, _ := x.At(t)
		yv, _ := y.At(t)
		v, err := op(xv, yv)
		if err != nil {
			return nil, err
		}
		samples = append(samples, Sample[R]{Time: t, Value: v})
	}
	return FromSamples(interp, samples)
}

// Pair is one element of the synchronized-union iteration over two Numeric
// signals produced by IterPairs.
type Pair[T Numeric] struct {
	Time        float64
	Left, Right T
}

// IterPairs returns the synchronized-union sample sequence of x and y: the
// union of their sample times restricted to the overlap of their domains,
// augmented (when the result would be Linear) with the exact crossing times
// where their interpolated curves meet. This is the same synchronized grid
// Arithmetic, Lattice, and Comparison build internally, exposed directly for
// callers that want to fold over the pairing themselves.
func IterPairs[T Numeric](x, y *Signal[T]) []Pair[T] {
	times, bothConst, ok := mergeTimes(x, y)
	if !ok {
		return nil
	}
	if bothConst {
		xv, _ := x.At(0)
		yv, _ := y.At(0)
		return []Pair[T]{{Time: 0, Left: xv, Right: yv}}
	}
	if resultInterpolation(x, y) == Linear {
		times = insertCrossings(times, x, y)
	}
	out := make([]Pair[T], 0, len(times))
	for _, t := range times {
		xv, _ := x.At(t)
		yv, _ := y.At(t)
		out = append(out, Pair[T]{Time: t, Left: xv, Right: yv})
	}
	return out
}

// Unary evaluates a unary numeric operator (Neg) pointwise.
func Unary[T Numeric](x *Signal[T], op func(T) (T, error)) (*Signal[T], error) {
	if x.IsConstant() {
		v, err := op(x.constVal)
		if err != nil {
			return nil, err
		}
		return NewConstant(v), nil
	}
	if x.IsEmpty() {
		return Empty[T](x.Interpolation())
	}
	samples := make([]Sample[T], 0, len(x.samples))
	for _, s := range x.samples {
		v, err := op(s.Value)
		if err != nil {
			return nil, err
		}
		samples = append(samples, Sample[T]{Time: s.Time, Value: v})
	}
	return FromSamples(x.Interpolation(), samples)
}

// Lattice evaluates a binary min/max-style operator, inserting linear
// crossing points so the piecewise-linear result is exact.
func Lattice[T Numeric](x, y *Signal[T], pick func(a, b T) T) (*Signal[T], error) {
	times, bothConst, ok := mergeTimes(x, y)
	if !ok {
		return Empty[T](resultInterpolation(x, y))
	}
	if bothConst {
		return NewConstant(pick(x.constVal, y.constVal)), nil
	}
	interp := resultInterpolation(x, y)
	if interp == Linear {
		times = insertCrossings(times, x, y)
	}
	samples := make([]Sample[T], 0, len(times))
	for _, t := range times {
		xv, _ := x.At(t)
		yv, _ := y.At(t)
		samples = append(samples, Sample[T]{Time: t, Value: pick(xv, yv)})
	}
	return FromSamples(interp, samples)
}

// Comparison evaluates a binary comparison producing a Bool signal,
// inserting linear crossing points exactly like Lattice.
func Comparison[T Numeric](x, y *Signal[T], cmp func(a, b T) bool) (*Signal[bool], error) {
	times, bothConst, ok := mergeTimes(x, y)
	if !ok {
		return Empty[bool](Constant)
	}
	if bothConst {
		return NewConstant(cmp(x.constVal, y.constVal)), nil
	}
	interp := resultInterpolation(x, y)
	if interp == Linear {
		times = insertCrossings(times, x, y)
	}
	samples := make([]Sample[bool], 0, len(times))
	for _, t := range times {
		xv, _ := x.At(t)
		yv, _ := y.At(t)
		samples = append(samples, Sample[bool]{Time: t, Value: cmp(xv, yv)})
	}
	// Comparison results are always Constant-mode: a Bool signal only ever
	// permits Constant interpolation.
	return FromSamples(Constant, samples)
}

// Cast converts a signal's element type, used to bring operands to a
// common promoted type before calling Arithmetic/Lattice/Comparison.
func Cast[T, R Element](x *Signal[T]) (*Signal[R], error) {
	switch x.variant {
	case variantEmpty:
		return Empty[R](x.interp)
	case variantConstant:
		return NewConstant(convertValue[T, R](x.constVal)), nil
	default:
		samples := make([]Sample[R], len(x.samples))
		for i, s := range x.samples {
			samples[i] = Sample[R]{Time: s.Time, Value: convertValue[T, R](s.Value)}
		}
		return FromSamples[R](x.interp, samples)
	}
}

func convertValue[T, R Element](v T) R {
	var rZero R
	switch any(rZero).(type) {
	case float64:
		return any(toFloat64(v)).(R)
	case int64:
		switch x := any(v).(type) {
		case int64:
			return any(x).(R)
		case uint64:
			return any(int64(x)).(R)
		case float64:
			return any(int64(x)).(R)
		case bool:
			if x {
				return any(int64(1)).(R)
			}
			return any(int64(0)).(R)
		}
	case uint64:
		switch x := any(v).(type) {
		case uint64:
			return any(x).(R)
		case int64:
			if x < 0 {
				x = 0
			}
			return any(uint64(x)).(R)
		case float64:
			if x < 0 {
				x = 0
			}
			return any(uint64(x)).(R)
		case bool:
			if x {
				return any(uint64(1)).(R)
			}
			return any(uint64(0)).(R)
		}
	case bool:
		switch x := any(v).(type) {
		case bool:
			return any(x).(R)
		default:
			return any(toFloat64(v) != 0).(R)
		}
	}
	return rZero
}

// MapSignal applies f pointwise to a signal, preserving its domain and
// interpolation mode. Used by the Boolean connectives (Not) and to map a
// Bool signal to robustness values.
func MapSignal[T, R Element](x *Signal[T], f func(T) R) (*Signal[R], error) {
	switch x.variant {
	case variantEmpty:
		return Empty[R](x.interp)
	case variantConstant:
		return NewConstant(f(x.constVal)), nil
	default:
		samples := make([]Sample[R], len(x.samples))
		for i, s := range x.samples {
			samples[i] = Sample[R]{Time: s.Time, Value: f(s.Value)}
		}
		return FromSamples(x.interp, samples)
	}
}

// CombineBool pointwise-combines two Bool signals over their synchronized
// domain. Bool signals only ever carry Constant interpolation, so no
// crossing insertion applies here the way it does for Lattice/Comparison.
func CombineBool(x, y *Signal[bool], op func(a, b bool) bool) (*Signal[bool], error) {
	times, bothConst, ok := mergeTimes(x, y)
	if !ok {
		return Empty[bool](Constant)
	}
	if bothConst {
		return NewConstant(op(x.constVal, y.constVal)), nil
	}
	samples := make([]Sample[bool], 0, len(times))
	for _, t := range times {
		xv, _ := x.At(t)
		yv, _ := y.At(t)
		samples = append(samples, Sample[bool]{Time: t, Value: op(xv, yv)})
	}
	return FromSamples(Constant, samples)
}

// ShiftNext builds the "next sample" signal: the sample at index i takes
// index i+1's value at index i's own time, and the final sample (which has
// no successor) is dropped. Constant and Empty signals have no temporal
// structure to shift and are returned unchanged.
func ShiftNext[T Element](x *Signal[T]) (*Signal[T], error) {
	switch x.variant {
	case variantEmpty, variantConstant:
		return x, nil
	default:
		n := len(x.samples)
		if n < 2 {
			return Empty[T](x.interp)
		}
		samples := make([]Sample[T], n-1)
		for i := 0; i < n-1; i++ {
			samples[i] = Sample[T]{Time: x.samples[i].Time, Value: x.samples[i+1].Value}
		}
		return FromSamples(x.interp, samples)
	}
}

// Checked arithmetic helpers, shared by expr/semantics for Int/UInt/Float.

func CheckedAdd[T Numeric](a, b T) (T, error) {
	switch x := any(a).(type) {
	case int64:
		y := any(b).(int64)
		sum := x + y
		if (y > 0 && sum < x) || (y < 0 && sum > x) {
			return a, argerrors.New(argerrors.ArithmeticError, "integer overflow in %d + %d", x, y)
		}
		return any(sum).(T), nil
	case uint64:
		y := any(b).(uint64)
		sum := x + y
		if sum < x {
			return a, argerrors.New(argerrors.ArithmeticError, "integer overflow in %d + %d", x, y)
		}
		return any(sum).(T), nil
	default:
		xf := any(a).(float64)
		yf := any(b).(float64)
		return any(xf + yf).(T), nil
	}
}

func CheckedSub[T Numeric](a, b T) (T, error) {
	switch x := any(a).(type) {
	case int64:
		y := any(b).(int64)
		diff := x - y
		if (y < 0 && diff < x) || (y > 0 && diff > x) {
			return a, argerrors.New(argerrors.ArithmeticError, "integer overflow in %d - %d", x, y)
		}
		return any(diff).(T), nil
	case uint64:
		y := any(b).(uint64)
		if y > x {
			return a, argerrors.New(argerrors.ArithmeticError, "unsigned underflow in %d - %d", x, y)
		}
		return any(x - y).(T), nil
	default:
		xf := any(a).(float64)
		yf := any(b).(float64)
		return any(xf - yf).(T), nil
	}
}

func CheckedMul[T Numeric](a, b T) (T, error) {
	switch x := any(a).(type) {
	case int64:
		y := any(b).(int64)
		prod := x * y
		if (x != 0 && prod/x != y) || (x == -1 && y == math.MinInt64) {
			return a, argerrors.New(argerrors.ArithmeticError, "integer overflow in %d * %d", x, y)
		}
		return any(prod).(T), nil
	case uint64:
		y := any(b).(uint64)
		prod := x * y
		if x != 0 && prod/x != y {
			return a, argerrors.New(argerrors.ArithmeticError, "integer overflow in %d * %d", x, y)
		}
		return any(prod).(T), nil
	default:
		xf := any(a).(float64)
		yf := any(b).(float64)
		return any(xf * yf).(T), nil
	}
}

func CheckedDiv[T Numeric](a, b T) (T, error) {
	switch x := any(a).(type) {
	case int64:
		y := any(b).(int64)
		if y == 0 {
			return a, argerrors.New(argerrors.ArithmeticError, "integer division by zero: %d / 0", x)
		}
		if x == math.MinInt64 && y == -1 {
			return a, argerrors.New(argerrors.ArithmeticError, "integer overflow in %d / %d", x, y)
		}
		return any(x / y).(T), nil
	case uint64:
		y := any(b).(uint64)
		if y == 0 {
			return a, argerrors.New(argerrors.ArithmeticError, "integer division by zero: %d / 0", x)
		}
		return any(x / y).(T), nil
	default:
		xf := any(a).(float64)
		yf := any(b).(float64)
		return any(xf / yf).(T), nil // IEEE: may yield +Inf/-Inf/NaN
	}
}

func Neg[T Numeric](a T) (T, error) {
	switch x := any(a).(type) {
	case int64:
		if x == math.MinInt64 {
			return a, argerrors.New(argerrors.ArithmeticError, "integer overflow negating %d", x)
		}
		return any(-x).(T), nil
	case uint64:
		if x != 0 {
			return a, argerrors.New(argerrors.ArithmeticError, "cannot negate non-zero unsigned value %d", x)
		}
		return a, nil
	default:
		return any(-any(a).(float64)).(T), nil
	}
}

func Min[T Numeric](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func Max[T Numeric](a, b T) T {
	if a > b {
		return a
	}
	return b
}
