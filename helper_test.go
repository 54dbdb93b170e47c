package gravnav

import (
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

const angleε = 1e-10

// assertPanic checks that the given function panics.
func assertPanic(t *testing.T, f func()) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("code did not panic")
		}
	}()
	f()
}

func vectorsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := len(a) - 1; i >= 0; i-- {
		if !scalar.EqualWithinAbs(a[i], b[i], 1e-12) {
			return false
		}
	}
	return true
}

// anglesEqual returns whether two angles in radians are equal modulo a full turn.
func anglesEqual(a, b float64) (bool, error) {
	diff := math.Mod(math.Abs(a-b), 2*math.Pi)
	if diff < angleε || math.Abs(diff-2*math.Pi) < angleε {
		return true, nil
	}
	return false, fmt.Errorf("difference of %3.10f radians", diff)
}
