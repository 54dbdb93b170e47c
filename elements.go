package gravnav

import (
	"fmt"
	"math"
)

const (
	// radiusε floors any radius used as a divisor near the central mass.
	radiusε = 1e-5
	// energyε is the specific-energy band around zero treated as parabolic.
	energyε = 1e-6
)

// State holds the planar position and velocity of one vehicle.
type State struct {
	X, Y, VX, VY float64
}

// RNorm returns the distance from the central mass.
func (s State) RNorm() float64 {
	return norm2(s.X, s.Y)
}

// VNorm returns the speed.
func (s State) VNorm() float64 {
	return norm2(s.VX, s.VY)
}

// H returns the z component of the specific angular momentum.
func (s State) H() float64 {
	return cross2(s.X, s.Y, s.VX, s.VY)
}

// Energyξ returns the specific mechanical energy ξ for the given gravitational
// parameter.
func (s State) Energyξ(μ float64) float64 {
	r := math.Max(s.RNorm(), radiusε)
	return (s.VX*s.VX+s.VY*s.VY)/2 - μ/r
}

// SMA returns the semi-major axis. Orbits within the parabolic energy band have no
// finite semi-major axis and return +Inf.
func (s State) SMA(μ float64) float64 {
	ξ := s.Energyξ(μ)
	if math.Abs(ξ) < energyε {
		return math.Inf(1)
	}
	return -μ / (2 * ξ)
}

// Eccentricity returns the orbit eccentricity, clipping the argument of the square
// root into its domain rather than erroring on round-off excess.
func (s State) Eccentricity(μ float64) float64 {
	h := s.H()
	term := h * h / (μ * s.SMA(μ))
	if term > 1 {
		return 0
	}
	return math.Sqrt(1 - term)
}

// VRadial returns the velocity component along the position vector, zero when the
// vehicle sits on the central mass.
func (s State) VRadial() float64 {
	r := s.RNorm()
	if r > radiusε {
		return dot2(s.X, s.Y, s.VX, s.VY) / r
	}
	return 0
}

// VTangential returns the velocity component perpendicular to the position vector.
func (s State) VTangential() float64 {
	return s.H() / math.Max(s.RNorm(), radiusε)
}

// Elements returns the specific energy, semi-major axis and eccentricity in one call.
func (s State) Elements(μ float64) (ξ, a, e float64) {
	return s.Energyξ(μ), s.SMA(μ), s.Eccentricity(μ)
}

func (s State) String() string {
	return fmt.Sprintf("r=%.6f p=(%.6f, %.6f) v=(%.6f, %.6f)", s.RNorm(), s.X, s.Y, s.VX, s.VY)
}
