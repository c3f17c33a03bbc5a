package signal

import (
	"sort"

	"argus/argerrors"
)

// Sample is a single (time, value) point of a Sampled signal. Times are
// strictly increasing across a signal's samples; FromSamples and Push
// enforce that ordering but do not reject negative times.
type Sample[T Element] struct {
	Time  float64
	Value T
}

type variant int

const (
	variantEmpty variant = iota
	variantConstant
	variantSampled
)

// Signal is a typed piecewise function of time: Empty (no samples), Constant
// (one value at every time, domain unbounded), or Sampled (a strictly
// time-monotonic sequence of samples with a fixed interpolation mode).
// Signals are immutable after construction except for Push on a Sampled
// signal.
type Signal[T Element] struct {
	variant  variant
	interp   Interpolation
	constVal T
	samples  []Sample[T]
}

// Empty builds a Signal with no samples. interp fixes the interpolation mode
// that future Push'd samples (impossible — push fails on Empty) would have
// used; it is kept so Empty signals round-trip through the
// algebra's interpolation-inheritance rule without special-casing.
func Empty[T Element](interp Interpolation) (*Signal[T], error) {
	if err := checkInterp[T](interp); err != nil {
		return nil, err
	}
	return &Signal[T]{variant: variantEmpty, interp: interp}, nil
}

// NewConstant builds a Signal with the given value at every time. Its
// start/end time are undefined and it can never be pushed to.
func NewConstant[T Element](value T) *Signal[T] {
	return &Signal[T]{variant: variantConstant, interp: Constant, constVal: value}
}

// FromSamples builds a Sampled signal from an explicit, strictly
// time-monotonic sequence of samples. An empty slice produces an Empty
// signal, rather than raising.
func FromSamples[T Element](interp Interpolation, samples []Sample[T]) (*Signal[T], error) {
	if err := checkInterp[T](interp); err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return &Signal[T]{variant: variantEmpty, interp: interp}, nil
	}
	for i := 1; i < len(samples); i++ {
		if samples[i].Time <= samples[i-1].Time {
			return nil, argerrors.New(argerrors.MonotonicityError,
				"samples must be strictly increasing in time: sample %d has time %v <= previous time %v",
				i, samples[i].Time, samples[i-1].Time)
		}
	}
	cp := make([]Sample[T], len(samples))
	copy(cp, samples)
	return &Signal[T]{variant: variantSampled, interp: interp, samples: cp}, nil
}

func checkInterp[T Element](interp Interpolation) error {
	if interp == Linear && KindOf[T]() == KindBool {
		return argerrors.New(argerrors.TypeMismatch, "linear interpolation requires a numeric element kind, got bool")
	}
	return nil
}

// Kind reports the element kind this signal carries.
func (s *Signal[T]) Kind() Kind { return KindOf[T]() }

// Interpolation reports the fixed interpolation mode.
func (s *Signal[T]) Interpolation() Interpolation { return s.interp }

// IsEmpty reports whether the signal has no defined domain at all.
func (s *Signal[T]) IsEmpty() bool { return s.variant == variantEmpty }

// IsConstant reports whether the signal is the Constant variant.
func (s *Signal[T]) IsConstant() bool { return s.variant == variantConstant }

// StartTime returns the time of the first sample, or false for Empty/Constant.
func (s *Signal[T]) StartTime() (float64, bool) {
	if s.variant != variantSampled {
		return 0, false
	}
	return s.samples[0].Time, true
}

// EndTime returns the time of the last sample, or false for Empty/Constant.
func (s *Signal[T]) EndTime() (float64, bool) {
	if s.variant != variantSampled {
		return 0, false
	}
	return s.samples[len(s.samples)-1].Time, true
}

// SampleTimes returns the strictly increasing sequence of sample times, or
// nil for Empty/Constant.
func (s *Signal[T]) SampleTimes() []float64 {
	if s.variant != variantSampled {
		return nil
	}
	out := make([]float64, len(s.samples))
	for i, smp := range s.samples {
		out[i] = smp.Time
	}
	return out
}

// NumSamples reports len(samples) for a Sampled signal, 0 otherwise.
func (s *Signal[T]) NumSamples() int {
	if s.variant != variantSampled {
		return 0
	}
	return len(s.samples)
}

// SampleAt returns the i'th raw (time, value) sample of a Sampled signal.
func (s *Signal[T]) SampleAt(i int) Sample[T] { return s.samples[i] }

// Push appends a new sample. It fails on Empty/Constant signals, and on a
// Sampled signal whose new time does not strictly exceed the current end
// time.
func (s *Signal[T]) Push(t float64, v T) error {
	switch s.variant {
	case variantEmpty:
		return argerrors.New(argerrors.NonSampledPushError, "cannot push to an empty signal")
	case variantConstant:
		return argerrors.New(argerrors.NonSampledPushError, "cannot push to a constant signal")
	default:
		last := s.samples[len(s.samples)-1]
		if t <= last.Time {
			return argerrors.New(argerrors.MonotonicityError,
				"push time %v must be strictly greater than current end time %v", t, last.Time)
		}
		s.samples = append(s.samples, Sample[T]{Time: t, Value: v})
		return nil
	}
}

// At evaluates the signal at time t, applying the signal's fixed
// interpolation mode between samples.
// The second return value is false where the signal is undefined at t.
func (s *Signal[T]) At(t float64) (T, bool) {
	var zero T
	switch s.variant {
	case variantEmpty:
		return zero, false
	case variantConstant:
		return s.constVal, true
	}

	n := len(s.samples)
	if t < s.samples[0].Time || t > s.samples[n-1].Time {
		return zero, false
	}

	// Binary search for the first sample with Time >= t.
	idx := sort.Search(n, func(i int) bool { return s.samples[i].Time >= t })
	if idx < n && s.samples[idx].Time == t {
		return s.samples[idx].Value, true
	}
	// idx now indexes the first sample strictly after t; t lies in
	// (samples[idx-1], samples[idx]).
	lo, hi := s.samples[idx-1], s.samples[idx]
	if s.interp == Constant {
		return lo.Value, true
	}
	frac := (t - lo.Time) / (hi.Time - lo.Time)
	return lerp(lo.Value, hi.Value, frac), true
}

func lerp[T Element](a, b T, frac float64) T {
	af, bf := toFloat64(a), toFloat64(b)
	return fromFloat64[T](af + (bf-af)*frac)
}

func toFloat64[T Element](v T) float64 {
	switch x := any(v).(type) {
	case bool:
		if x {
			return 1
		}
		return 0
	case int64:
		return float64(x)
	case uint64:
		return float64(x)
	case float64:
		return x
	default:
		return 0
	}
}

func fromFloat64[T Element](f float64) T {
	var zero T
	switch any(zero).(type) {
	case bool:
		return any(f != 0).(T)
	case int64:
		return any(int64(f)).(T)
	case uint64:
		if f < 0 {
			f = 0
		}
		return any(uint64(f)).(T)
	case float64:
		return any(f).(T)
	default:
		return zero
	}
}
