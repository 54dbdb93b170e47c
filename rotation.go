package gravnav

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// RadialFrame builds the rotation from the local radial frame to the inertial frame
// at the position whose unit radial vector is (nx, ny). The first column is the
// radial direction, the second the counter-clockwise tangential direction.
func RadialFrame(nx, ny float64) *mat.Dense {
	return mat.NewDense(2, 2, []float64{nx, -ny, ny, nx})
}

// HeadingFrame builds the rotation of the body frame for a vehicle pointing at the
// given heading angle.
func HeadingFrame(heading float64) *mat.Dense {
	s, c := math.Sincos(heading)
	return mat.NewDense(2, 2, []float64{c, -s, s, c})
}

// MxV2 multiplies a matrix with a planar vector. Note that there is no dimension check!
func MxV2(m *mat.Dense, v []float64) []float64 {
	vVec := mat.NewVecDense(len(v), v)
	var rVec mat.VecDense
	rVec.MulVec(m, vVec)
	return []float64{rVec.At(0, 0), rVec.At(1, 0)}
}
