package gravnav

import (
	"math"
)

// Observe flattens a state into the seven-feature observation vector policies
// train on: scaled radius error, radial and tangential velocity, distance of the
// initial orbit from the unit target, an on-target flag, specific energy and
// angular momentum.
func Observe(st State, initR, μ float64) []float64 {
	r := math.Max(st.RNorm(), radiusε)
	vRadial := (st.X*st.VX + st.Y*st.VY) / r
	vTangential := (st.X*st.VY - st.Y*st.VX) / r
	flag := 0.0
	if math.Abs(r-1.0) < 0.01 {
		flag = 1.0
	}
	ξ := 0.5*(st.VX*st.VX+st.VY*st.VY) - μ/r

	rErr := r - 1.0
	rMaxErr := math.Max(math.Abs(initR-1), 1e-2)
	scaled := rErr / rMaxErr * 2
	if scaled > 2 {
		scaled = 2
	} else if scaled < -2 {
		scaled = -2
	}

	return []float64{scaled, vRadial, vTangential, 1 - initR, flag, ξ, r * vTangential}
}

// ShapedReward scores a trajectory against the radius profile of a reference
// two-burn transfer from the initial orbit to the unit circular orbit. Errors
// accumulate across steps, so one instance serves one episode between Resets.
type ShapedReward struct {
	GM       float64
	Dt       float64
	InitR    float64
	MaxSteps int

	prevRErr     float64
	havePrev     bool
	integralRErr float64
}

// NewShapedReward returns a tracker for an episode starting on the circular orbit
// of radius initR.
func NewShapedReward(μ, dt, initR float64, maxSteps int) *ShapedReward {
	return &ShapedReward{GM: μ, Dt: dt, InitR: initR, MaxSteps: maxSteps}
}

// Reset clears the accumulated error terms for a new episode.
func (s *ShapedReward) Reset() {
	s.prevRErr = 0
	s.havePrev = false
	s.integralRErr = 0
}

// expectedRadius returns the radius of the reference transfer at time t. The
// eccentric anomaly is approximated by the mean anomaly, which holds up for the
// low eccentricities these transfers fly.
func (s *ShapedReward) expectedRadius(t, transferTime float64) float64 {
	rFinal := 1.0
	if t >= transferTime {
		return rFinal
	}
	aTransfer := 0.5 * (s.InitR + rFinal)
	eTransfer := (rFinal - s.InitR) / (rFinal + s.InitR)
	n := math.Sqrt(s.GM / (aTransfer * aTransfer * aTransfer))
	E := n * t
	sinE2, cosE2 := math.Sincos(E / 2)
	θ := 2 * math.Atan2(math.Sqrt(1+eTransfer)*sinE2, math.Sqrt(1-eTransfer)*cosE2)
	return aTransfer * (1 - eTransfer*eTransfer) / (1 + eTransfer*math.Cos(θ))
}

// Score returns the shaped reward for the state reached after step steps.
func (s *ShapedReward) Score(st State, step int) float64 {
	r := st.RNorm()
	t := float64(step) * s.Dt
	rFinal := 1.0
	transferTime := math.Pi * math.Sqrt(math.Pow(0.5*(s.InitR+rFinal), 3)/s.GM)
	rExpected := s.expectedRadius(t, transferTime)

	rErr := r - rExpected
	dRErr := 0.0
	if s.havePrev {
		dRErr = (rErr - s.prevRErr) / s.Dt
	}
	s.prevRErr = rErr
	s.havePrev = true
	s.integralRErr += rErr * s.Dt
	maxTime := float64(s.MaxSteps) * s.Dt

	rErrNorm := rErr / rExpected
	dRErrNorm := dRErr / (rExpected / transferTime)
	intRErrNorm := s.integralRErr / (rExpected * maxTime)

	timeFactor := t / maxTime
	reward := math.Exp(-math.Abs(rErrNorm)*(1+timeFactor)) *
		math.Exp(-math.Abs(dRErrNorm)*(1+timeFactor)) *
		math.Exp(-math.Abs(intRErrNorm)*(1+timeFactor))

	const minReward = 0.01
	if reward < minReward {
		reward = minReward
	}
	if r > 2*rFinal || r < s.InitR/2 {
		reward = minReward
	}
	return reward
}
