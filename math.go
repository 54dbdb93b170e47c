package gravnav

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// norm2 returns the norm of a planar vector.
func norm2(x, y float64) float64 {
	return math.Sqrt(x*x + y*y)
}

// unit2 returns the unit vector of a planar vector.
func unit2(x, y float64) (ux, uy float64) {
	n := norm2(x, y)
	if scalar.EqualWithinAbs(n, 0, 1e-12) {
		return 0, 0
	}
	return x / n, y / n
}

// dot2 performs the planar inner product.
func dot2(ax, ay, bx, by float64) float64 {
	return ax*bx + ay*by
}

// cross2 returns the z component of the planar cross product.
func cross2(ax, ay, bx, by float64) float64 {
	return ax*by - ay*bx
}

// orbitDirection returns +1 for a counter-clockwise orbit and -1 for clockwise,
// from the sign of the angular momentum. Zero momentum counts as counter-clockwise.
func orbitDirection(h float64) float64 {
	if h >= 0 {
		return 1
	}
	return -1
}

// wrapAngle wraps an angle into (-π, π].
func wrapAngle(θ float64) float64 {
	w := math.Mod(θ, 2*math.Pi)
	if w > math.Pi {
		w -= 2 * math.Pi
	} else if w <= -math.Pi {
		w += 2 * math.Pi
	}
	return w
}
