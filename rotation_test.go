package gravnav

import (
	"math"
	"testing"
)

func TestRadialFrame(t *testing.T) {
	// A tangential unit command at (1,0) points along +y for a counter-clockwise
	// orbit.
	if !vectorsEqual(MxV2(RadialFrame(1, 0), []float64{0, 1}), []float64{0, 1}) {
		t.Fatal("tangential at (1,0) != +y")
	}
	if !vectorsEqual(MxV2(RadialFrame(0, 1), []float64{0, 1}), []float64{-1, 0}) {
		t.Fatal("tangential at (0,1) != -x")
	}
	// The radial component maps onto the position unit vector itself.
	if !vectorsEqual(MxV2(RadialFrame(0, 1), []float64{1, 0}), []float64{0, 1}) {
		t.Fatal("radial at (0,1) != +y")
	}
	if !vectorsEqual(MxV2(RadialFrame(1, 0), []float64{0.3, -0.7}), []float64{0.3, -0.7}) {
		t.Fatal("mixed command at (1,0) fail")
	}
}

func TestHeadingFrame(t *testing.T) {
	if !vectorsEqual(MxV2(HeadingFrame(0), []float64{1, 0}), []float64{1, 0}) {
		t.Fatal("heading 0 rotated x")
	}
	if !vectorsEqual(MxV2(HeadingFrame(math.Pi/2), []float64{1, 0}), []float64{0, 1}) {
		t.Fatal("heading π/2 != +y")
	}
	if !vectorsEqual(MxV2(HeadingFrame(math.Pi), []float64{2, 0}), []float64{-2, 0}) {
		t.Fatal("heading π != -2x")
	}
	if !vectorsEqual(MxV2(HeadingFrame(-math.Pi/2), []float64{3, 0}), []float64{0, -3}) {
		t.Fatal("heading -π/2 != -3y")
	}
}
