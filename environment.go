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
	// EscapeRadius is the outer edge of the playable band. Crossing it ends a vehicle.
	EscapeRadius = 5.0
	// CollisionRadius is the inner edge of the playable band around the central mass.
	CollisionRadius = 0.1

	randRadiusMin = 0.2
	randRadiusMax = 4.0
)

// terminalRadius reports whether r left the playable annulus. Both bounds are
// strict: a vehicle sitting exactly on either boundary keeps flying.
func terminalRadius(r float64) bool {
	return r > EscapeRadius || r < CollisionRadius
}

// RewardFunc scores one control step from the post-step state, the initial orbit
// radius of the episode and the commanded tangential thrust.
type RewardFunc func(st State, initR, action float64) float64

// DefaultReward is a Gaussian radius-tracking score toward r=1 times an
// action-magnitude penalty. The radius error is normalized by the initial offset so
// that episodes starting far out are not punished for the distance still to cover.
func DefaultReward(st State, initR, action float64) float64 {
	rErr := st.RNorm() - 1.0
	rMaxErr := math.Max(math.Abs(initR-1), 1e-2)
	scaled := rErr / rMaxErr * 2
	if scaled > 2 {
		scaled = 2
	} else if scaled < -2 {
		scaled = -2
	}
	return math.Exp(-scaled*scaled) * math.Exp(-action*action)
}

// Environment advances a single vehicle under central gravity plus a scalar
// tangential thrust control. It implements ode.Integrable for the gravity-only part
// of the step; the control is applied as a velocity impulse after integration.
type Environment struct {
	GM float64

	st        State
	dt        float64
	maxSteps  int
	initR     float64
	enforceR  bool
	stepCount int
	remaining int // one-step latch for the integrator

	// Reward may be swapped for a custom scoring function. Nil uses DefaultReward.
	Reward RewardFunc

	radius distuv.Uniform
	logger kitlog.Logger
}

// NewEnvironment returns an environment whose vehicle is placed on a circular orbit
// of radius r0 on every Reset.
func NewEnvironment(μ, r0, dt float64, maxSteps int) *Environment {
	e := &Environment{GM: μ, dt: dt, maxSteps: maxSteps, initR: r0, enforceR: true}
	e.logger = envLogger()
	e.Reset()
	return e
}

// NewRandomEnvironment returns an environment whose vehicle is placed on a circular
// orbit of a radius drawn from Uniform[0.2, 4.0) on every Reset. A nil source falls
// back to the global one; tests inject a seeded source for reproducibility.
func NewRandomEnvironment(μ, dt float64, maxSteps int, src rand.Source) *Environment {
	e := &Environment{GM: μ, dt: dt, maxSteps: maxSteps}
	e.radius = distuv.Uniform{Min: randRadiusMin, Max: randRadiusMax, Src: src}
	e.logger = envLogger()
	e.Reset()
	return e
}

func envLogger() kitlog.Logger {
	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	return kitlog.With(klog, "subsys", "env")
}

// SetLogger replaces the environment logger.
func (e *Environment) SetLogger(l kitlog.Logger) {
	e.logger = l
}

// Reset places the vehicle back on its initial circular orbit and returns the fresh
// state. Random environments draw a new radius; the circular speed always matches
// the radius the vehicle is placed at.
func (e *Environment) Reset() State {
	if !e.enforceR {
		e.initR = e.radius.Rand()
	}
	e.st = State{X: e.initR, Y: 0, VX: 0, VY: math.Sqrt(e.GM / e.initR)}
	e.stepCount = 0
	e.logger.Log("level", "debug", "r0", e.initR, "v0", e.st.VY)
	return e.st
}

// Current returns the state as of the last step.
func (e *Environment) Current() State { return e.st }

// Dt returns the fixed integration step.
func (e *Environment) Dt() float64 { return e.dt }

// MaxSteps returns the episode step limit.
func (e *Environment) MaxSteps() int { return e.maxSteps }

// InitRadius returns the radius the vehicle was placed at on the last Reset.
func (e *Environment) InitRadius() float64 { return e.initR }

// StepCount returns the number of steps taken since the last Reset.
func (e *Environment) StepCount() int { return e.stepCount }

// Step advances the state by one dt under gravity alone, then applies the scalar
// control as a tangential velocity impulse in the end-of-step radial frame. The
// control never enters the integration stages; trained policies depend on this
// exact ordering.
func (e *Environment) Step(action float64) (State, float64, bool) {
	e.remaining = 1
	ode.NewRK4(0, e.dt, e).Solve()

	r := math.Max(e.st.RNorm(), radiusε)
	thrust := MxV2(RadialFrame(e.st.X/r, e.st.Y/r), []float64{0, action})
	e.st.VX += thrust[0] * e.dt
	e.st.VY += thrust[1] * e.dt

	reward := e.Reward
	if reward == nil {
		reward = DefaultReward
	}
	score := reward(e.st, e.initR, action)

	done := terminalRadius(r) || e.stepCount >= e.maxSteps
	if done && e.stepCount < e.maxSteps {
		e.logger.Log("level", "info", "status", "terminal", "r", r, "steps", e.stepCount)
	}
	e.stepCount++
	return e.st, score, done
}

// GetState implements ode.Integrable.
func (e *Environment) GetState() []float64 {
	return []float64{e.st.X, e.st.Y, e.st.VX, e.st.VY}
}

// SetState implements ode.Integrable.
func (e *Environment) SetState(t float64, s []float64) {
	e.st = State{X: s[0], Y: s[1], VX: s[2], VY: s[3]}
}

// Stop implements ode.Integrable. The latch set by Step lets the solver run exactly
// one iteration per call.
func (e *Environment) Stop(t float64) bool {
	if e.remaining == 0 {
		return true
	}
	e.remaining--
	return false
}

// Func implements ode.Integrable with the gravity-only derivatives. The radius used
// in the pull is clamped into [1e-5, 5] so that stages falling into the singularity
// or flung past the escape edge still produce finite accelerations.
func (e *Environment) Func(t float64, f []float64) []float64 {
	r := norm2(f[0], f[1])
	if r < radiusε {
		r = radiusε
	} else if r > EscapeRadius {
		r = EscapeRadius
	}
	mag := -e.GM / (r * r)
	return []float64{f[2], f[3], mag * f[0] / r, mag * f[1] / r}
}
