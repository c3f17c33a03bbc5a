// Package testutil provides pgregory.net/rapid generators for strictly
// monotone signal sample sequences and small STL expressions, for use in
// property-based tests across the signal, expr, parser, and semantics
// packages.
package testutil

import (
	"sort"

	"pgregory.net/rapid"

	"argus/signal"
)

// DrawTimestamps draws a strictly increasing slice of millisecond-aligned
// timestamps, between minSize and maxSize samples long.
func DrawTimestamps(t *rapid.T, minSize, maxSize int) []float64 {
	n := rapid.IntRange(minSize, maxSize).Draw(t, "numSamples")
	seen := make(map[int64]bool, n)
	raw := make([]int64, 0, n)
	for len(raw) < n {
		v := rapid.Int64Range(0, (1<<32)-1).Draw(t, "timestampMillis")
		if seen[v] {
			continue
		}
		seen[v] = true
		raw = append(raw, v)
	}
	out := make([]float64, len(raw))
	for i, v := range raw {
		out[i] = float64(v) / 1000.0
	}
	sort.Float64s(out)
	return out
}

// DrawBoolSamples draws a strictly monotone []signal.Sample[bool].
func DrawBoolSamples(t *rapid.T, minSize, maxSize int) []signal.Sample[bool] {
	times := DrawTimestamps(t, minSize, maxSize)
	out := make([]signal.Sample[bool], len(times))
	for i, tm := range times {
		out[i] = signal.Sample[bool]{Time: tm, Value: rapid.Bool().Draw(t, "value")}
	}
	return out
}

// DrawIntSamples draws a strictly monotone []signal.Sample[int64].
func DrawIntSamples(t *rapid.T, minSize, maxSize int) []signal.Sample[int64] {
	times := DrawTimestamps(t, minSize, maxSize)
	out := make([]signal.Sample[int64], len(times))
	for i, tm := range times {
		out[i] = signal.Sample[int64]{Time: tm, Value: rapid.Int64().Draw(t, "value")}
	}
	return out
}

// DrawUIntSamples draws a strictly monotone []signal.Sample[uint64].
func DrawUIntSamples(t *rapid.T, minSize, maxSize int) []signal.Sample[uint64] {
	times := DrawTimestamps(t, minSize, maxSize)
	out := make([]signal.Sample[uint64], len(times))
	for i, tm := range times {
		out[i] = signal.Sample[uint64]{Time: tm, Value: rapid.Uint64().Draw(t, "value")}
	}
	return out
}

// DrawFloatSamples draws a strictly monotone []signal.Sample[float64],
// bounded away from NaN/Inf so equality and arithmetic stay well-defined.
func DrawFloatSamples(t *rapid.T, minSize, maxSize int) []signal.Sample[float64] {
	times := DrawTimestamps(t, minSize, maxSize)
	out := make([]signal.Sample[float64], len(times))
	gen := rapid.Float64Range(-1e12, 1e12)
	for i, tm := range times {
		out[i] = signal.Sample[float64]{Time: tm, Value: gen.Draw(t, "value")}
	}
	return out
}

// DrawInterpolation picks Constant or Linear uniformly.
func DrawInterpolation(t *rapid.T) signal.Interpolation {
	if rapid.Bool().Draw(t, "linear") {
		return signal.Linear
	}
	return signal.Constant
}
