package gravnav

import "math"

// CircularVelocity returns the speed of a circular orbit of radius r about a body of
// gravitational parameter μ.
func CircularVelocity(r, μ float64) float64 {
	return math.Sqrt(μ / r)
}

// VisViva returns the speed at radius r on an orbit of semi-major axis a.
func VisViva(r, a, μ float64) float64 {
	return math.Sqrt(μ * (2/r - 1/a))
}

// Hohmann computes the two-burn transfer between the circular orbits of radii rI and
// rF. It returns the transfer-ellipse speeds at departure and arrival, and the time
// of flight of the half ellipse.
func Hohmann(rI, rF, μ float64) (vDeparture, vArrival, tof float64) {
	aTransfer := 0.5 * (rI + rF)
	vDeparture = math.Sqrt((2 * μ / rI) - (μ / aTransfer))
	vArrival = math.Sqrt((2 * μ / rF) - (μ / aTransfer))
	tof = math.Pi * math.Sqrt(math.Pow(aTransfer, 3)/μ)
	return
}

// Maneuver is a single impulsive burn expressed both as a velocity change and as the
// thrust/heading pair which produces that change over one control tick.
type Maneuver struct {
	ΔVx, ΔVy float64
	ΔV       float64 // magnitude of the velocity change
	Thrust   float64 // acceleration applied during one tick of length dt
	Heading  float64
}

// TangentialBurn computes the burn which brings the vehicle to the purely tangential
// speed s, killing any radial velocity. The tangential direction follows the current
// orbit direction.
func TangentialBurn(st State, s, dt float64) Maneuver {
	r := st.RNorm()
	d := orbitDirection(st.H())
	nx, ny := st.X/r, st.Y/r
	tx, ty := -ny, nx
	if d < 0 {
		tx, ty = ny, -nx
	}
	ΔVx := tx*s - st.VX
	ΔVy := ty*s - st.VY
	ΔV := norm2(ΔVx, ΔVy)
	return Maneuver{ΔVx: ΔVx, ΔVy: ΔVy, ΔV: ΔV, Thrust: ΔV / dt, Heading: math.Atan2(ΔVy, ΔVx)}
}

// TangentialBurnScalar is the heading-free variant of TangentialBurn: it returns the
// tangential acceleration over one tick which brings the tangential velocity
// component to s, assuming the thrust axis is maintained tangential externally.
func TangentialBurnScalar(st State, s, dt float64) float64 {
	return (s - st.VTangential()) / dt
}

// TurnRate projects a desired heading onto the actuator turn command which snaps to
// it within one tick, taking the shortest signed path.
func TurnRate(current, target, dt float64) float64 {
	return wrapAngle(target-current) / dt
}
