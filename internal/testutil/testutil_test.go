package testutil_test

import (
	"testing"

	"pgregory.net/rapid"

	"argus/internal/testutil"
)

func TestDrawTimestamps_StrictlyIncreasing(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		times := testutil.DrawTimestamps(t, 2, 10)
		for i := 1; i < len(times); i++ {
			if times[i] <= times[i-1] {
				t.Fatalf("timestamps not strictly increasing at %d: %v <= %v", i, times[i], times[i-1])
			}
		}
	})
}

func TestDrawBoolExpr_NeverPanics(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		_ = testutil.DrawBoolExpr(t, 3)
	})
}

func TestDrawNumExpr_NeverPanics(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		_ = testutil.DrawNumExpr(t, 3)
	})
}
