package gravnav

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestObserveOnTarget(t *testing.T) {
	obs := Observe(State{X: 1, VY: 1}, 1, 1)
	if len(obs) != 7 {
		t.Fatalf("observation length %d", len(obs))
	}
	want := []float64{0, 0, 1, 0, 1, -0.5, 1}
	for i := range want {
		if !scalar.EqualWithinAbs(obs[i], want[i], 1e-12) {
			t.Fatalf("obs[%d] = %f, want %f", i, obs[i], want[i])
		}
	}
}

func TestObserveClipsScaledError(t *testing.T) {
	obs := Observe(State{X: 4, VY: 0.5}, 2, 1)
	if obs[0] != 2 {
		t.Fatalf("scaled error %f not clipped high", obs[0])
	}
	obs = Observe(State{X: 0.05}, 1.5, 1)
	if obs[0] != -2 {
		t.Fatalf("scaled error %f not clipped low", obs[0])
	}
	if obs[4] != 0 {
		t.Fatal("on-target flag must be zero off target")
	}
}

func TestObserveVelocityDecomposition(t *testing.T) {
	// At (0, 2) the radial direction is +y, the tangential direction is -x.
	obs := Observe(State{Y: 2, VX: -0.3, VY: 0.1}, 2, 1)
	if !scalar.EqualWithinAbs(obs[1], 0.1, 1e-12) {
		t.Fatalf("v_r = %f", obs[1])
	}
	if !scalar.EqualWithinAbs(obs[2], 0.3, 1e-12) {
		t.Fatalf("v_t = %f", obs[2])
	}
	if !scalar.EqualWithinAbs(obs[6], 0.6, 1e-12) {
		t.Fatalf("h = %f", obs[6])
	}
}

func TestShapedRewardTracksReference(t *testing.T) {
	s := NewShapedReward(1, 0.01, 2, 1000)
	// Sitting on the reference start point scores near the maximum.
	if first := s.Score(State{X: 2, VY: math.Sqrt(0.5)}, 1); first < 0.9 {
		t.Fatalf("on-reference score %f", first)
	}
	// Outside the corridor the score pins exactly to the floor.
	s.Reset()
	if got := s.Score(State{X: 4.5}, 1); got != 0.01 {
		t.Fatalf("outside corridor score %f", got)
	}
	if got := s.Score(State{X: 0.4}, 2); got != 0.01 {
		t.Fatalf("inside corridor floor %f", got)
	}
}

func TestShapedReferenceSettlesOnTarget(t *testing.T) {
	s := NewShapedReward(1, 0.01, 2, 5000)
	tof := math.Pi * math.Sqrt(1.5*1.5*1.5)
	if r := s.expectedRadius(tof+1, tof); r != 1 {
		t.Fatalf("post-transfer reference %f", r)
	}
	if r := s.expectedRadius(0, tof); !scalar.EqualWithinAbs(r, 2, 1e-9) {
		t.Fatalf("reference start %f", r)
	}
	// The reference shrinks monotonically on an inward transfer.
	prev := math.Inf(1)
	for τ := 0.0; τ < tof; τ += tof / 16 {
		r := s.expectedRadius(τ, tof)
		if r > prev+1e-9 {
			t.Fatalf("reference grew to %f at t=%f", r, τ)
		}
		prev = r
	}
}
