package gravnav

import (
	"math"
	"os"

	"github.com/ChristopherRabotin/ode"
	kitlog "github.com/go-kit/kit/log"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// pairSkipε is the inter-vehicle distance under which a pair exerts no mutual
	// pull at all. Avoids the overlap singularity without collision response.
	pairSkipε = 1e-3
	// mutualMassRatio expresses a vehicle's mass as a fraction of the central mass.
	mutualMassRatio = 0.1
)

// ControlMode tags the control variant a vehicle follows.
type ControlMode uint8

const (
	// ControlAI vehicles take a scalar tangential thrust each tick.
	ControlAI ControlMode = iota + 1
	// ControlManual vehicles steer by heading and forward thrust.
	ControlManual
)

func (m ControlMode) String() string {
	switch m {
	case ControlAI:
		return "ai"
	case ControlManual:
		return "manual"
	}
	panic("cannot stringify unknown control mode")
}

// Command is one tick of control input for one vehicle.
type Command interface {
	isCommand()
}

// Tangential is the command variant for ControlAI vehicles.
type Tangential struct {
	Thrust float64
}

// Helm is the command variant for ControlManual vehicles: a turn rate applied over
// this tick and a forward thrust along the resulting heading.
type Helm struct {
	Turn, Thrust float64
}

func (Tangential) isCommand() {}
func (Helm) isCommand()       {}

// Vehicle is one craft registered with a Fleet.
type Vehicle struct {
	ID         string
	Mode       ControlMode
	InitRadius float64
	Heading    float64
	Done       bool
	Steps      int

	st         State
	tangential float64 // last ControlAI command
	thrust     float64 // last ControlManual thrust
	turnRate   float64 // last ControlManual turn rate

	// Per-step integration context. The snapshot is shared by all vehicles of the
	// step; the thrust vector is fixed before integrating and added at every stage.
	μ                  float64
	snapshot           map[string][2]float64
	thrustAX, thrustAY float64
	remaining          int
}

func (v *Vehicle) applyCommand(cmd Command, dt float64) {
	switch v.Mode {
	case ControlAI:
		var thrust float64
		if c, ok := cmd.(Tangential); ok {
			thrust = c.Thrust
		}
		v.tangential = thrust
	case ControlManual:
		var turn, thrust float64
		if c, ok := cmd.(Helm); ok {
			turn, thrust = c.Turn, c.Thrust
		}
		v.turnRate = turn
		v.Heading += v.turnRate * dt
		v.thrust = thrust
	}
}

// prepare fixes the step context: the frozen snapshot and the constant thrust
// acceleration for all four integration stages.
func (v *Vehicle) prepare(snapshot map[string][2]float64) {
	v.snapshot = snapshot
	v.thrustAX, v.thrustAY = 0, 0
	switch v.Mode {
	case ControlAI:
		r := v.st.RNorm()
		if r > radiusε {
			t := MxV2(RadialFrame(v.st.X/r, v.st.Y/r), []float64{0, v.tangential})
			v.thrustAX, v.thrustAY = t[0], t[1]
		}
	case ControlManual:
		if v.thrust > 0 {
			t := MxV2(HeadingFrame(v.Heading), []float64{v.thrust, 0})
			v.thrustAX, v.thrustAY = t[0], t[1]
		}
	}
	v.remaining = 1
}

// GetState implements ode.Integrable.
func (v *Vehicle) GetState() []float64 {
	return []float64{v.st.X, v.st.Y, v.st.VX, v.st.VY}
}

// SetState implements ode.Integrable.
func (v *Vehicle) SetState(t float64, s []float64) {
	v.st = State{X: s[0], Y: s[1], VX: s[2], VY: s[3]}
}

// Stop implements ode.Integrable.
func (v *Vehicle) Stop(t float64) bool {
	if v.remaining == 0 {
		return true
	}
	v.remaining--
	return false
}

// Func implements ode.Integrable. Stage accelerations combine the central pull at
// the stage position, the attraction toward every other vehicle's frozen
// start-of-step position, and the constant thrust vector. The snapshot stays frozen
// across stages; this quasi-simultaneous scheme is the defined dynamics, not an
// approximation to be replaced by a coupled solver.
func (v *Vehicle) Func(t float64, f []float64) []float64 {
	r := math.Max(norm2(f[0], f[1]), radiusε)
	mag := -v.μ / (r * r)
	ax, ay := mag*f[0]/r, mag*f[1]/r
	for id, p := range v.snapshot {
		if id == v.ID {
			continue
		}
		dx, dy := p[0]-f[0], p[1]-f[1]
		d := norm2(dx, dy)
		if d < pairSkipε {
			continue
		}
		pull := v.μ * mutualMassRatio / (d * d)
		ax += pull * dx / d
		ay += pull * dy / d
	}
	return []float64{f[2], f[3], ax + v.thrustAX, ay + v.thrustAY}
}

// VehicleStatus is a read-only snapshot of one vehicle.
type VehicleStatus struct {
	State      State
	Heading    float64
	Mode       ControlMode
	InitRadius float64
	Done       bool
	Steps      int
}

// Fleet manages vehicles orbiting a shared central mass and attracting each other.
type Fleet struct {
	GM float64

	dt     float64
	tick   int
	ships  map[string]*Vehicle
	radius distuv.Uniform
	logger kitlog.Logger
}

// NewFleet returns an empty fleet. The source seeds random vehicle placement; nil
// falls back to the global source.
func NewFleet(μ, dt float64, src rand.Source) *Fleet {
	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	return &Fleet{
		GM:     μ,
		dt:     dt,
		ships:  make(map[string]*Vehicle),
		radius: distuv.Uniform{Min: randRadiusMin, Max: randRadiusMax, Src: src},
		logger: kitlog.With(klog, "subsys", "fleet"),
	}
}

// SetLogger replaces the fleet logger.
func (f *Fleet) SetLogger(l kitlog.Logger) {
	f.logger = l
}

// AddVehicle registers a vehicle on a random circular orbit. An existing vehicle
// with the same id is replaced.
func (f *Fleet) AddVehicle(id string, mode ControlMode) {
	f.AddVehicleAt(id, f.radius.Rand(), mode)
}

// AddVehicleAt registers a vehicle on the circular orbit of radius r0.
func (f *Fleet) AddVehicleAt(id string, r0 float64, mode ControlMode) {
	f.ships[id] = &Vehicle{
		ID:         id,
		Mode:       mode,
		InitRadius: r0,
		μ:          f.GM,
		st:         State{X: r0, VY: math.Sqrt(f.GM / r0)},
	}
	f.logger.Log("level", "info", "vehicle", id, "status", "added", "mode", mode, "r0", r0)
}

// RemoveVehicle drops a vehicle from the registry. Unknown ids are a no-op.
func (f *Fleet) RemoveVehicle(id string) {
	delete(f.ships, id)
}

// Reset empties the registry and rewinds the tick counter.
func (f *Fleet) Reset() {
	f.ships = make(map[string]*Vehicle)
	f.tick = 0
}

// Tick returns the number of steps taken since the last Reset.
func (f *Fleet) Tick() int { return f.tick }

// Len returns the number of registered vehicles, done ones included.
func (f *Fleet) Len() int { return len(f.ships) }

// Step advances every live vehicle by one dt. Commands are keyed by vehicle id; a
// missing entry, or a command of the wrong variant for the vehicle's mode, counts as
// the zero command. Ids with no registered vehicle are ignored. Positions of all
// live vehicles are frozen once before any vehicle integrates, so the result does
// not depend on registry iteration order.
func (f *Fleet) Step(cmds map[string]Command) {
	snapshot := make(map[string][2]float64, len(f.ships))
	for id, v := range f.ships {
		if v.Done {
			continue
		}
		snapshot[id] = [2]float64{v.st.X, v.st.Y}
	}

	for id, v := range f.ships {
		if v.Done {
			continue
		}
		v.Steps++
		v.applyCommand(cmds[id], f.dt)
		v.prepare(snapshot)
		ode.NewRK4(0, f.dt, v).Solve()

		if r := v.st.RNorm(); terminalRadius(r) {
			v.Done = true
			f.logger.Log("level", "info", "vehicle", id, "status", "done", "r", r, "steps", v.Steps)
		}
	}
	f.tick++
}

// States returns a snapshot of every vehicle, done ones included.
func (f *Fleet) States() map[string]VehicleStatus {
	out := make(map[string]VehicleStatus, len(f.ships))
	for id, v := range f.ships {
		out[id] = VehicleStatus{
			State:      v.st,
			Heading:    v.Heading,
			Mode:       v.Mode,
			InitRadius: v.InitRadius,
			Done:       v.Done,
			Steps:      v.Steps,
		}
	}
	return out
}
