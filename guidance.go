package gravnav

import (
	"math"
	"os"

	kitlog "github.com/go-kit/kit/log"
)

// defaultApsisWindow is the half-width of the radius band around the target in
// which an apsis crossing triggers the circularization burn.
const defaultApsisWindow = 0.1

// GuidancePhase qualifies the progress of a transfer.
type GuidancePhase uint8

const (
	// AwaitingTelemetry indicates no state sample has been processed yet.
	AwaitingTelemetry GuidancePhase = iota + 1
	// Burn1Injection indicates the injection burn onto the transfer ellipse.
	Burn1Injection
	// CoastTransfer indicates the coast along the transfer ellipse.
	CoastTransfer
	// Burn2Circularize indicates the circularization burn at the target radius.
	Burn2Circularize
	// CoastFinal indicates the transfer is complete.
	CoastFinal
)

func (p GuidancePhase) String() string {
	switch p {
	case AwaitingTelemetry:
		return "awaiting telemetry"
	case Burn1Injection:
		return "burn 1 (injection)"
	case CoastTransfer:
		return "coasting on transfer ellipse"
	case Burn2Circularize:
		return "burn 2 (circularization)"
	case CoastFinal:
		return "transfer complete"
	}
	panic("cannot stringify unknown guidance phase")
}

// Autopilot flies a two-burn transfer from the current orbit to the circular
// orbit of radius Target. Feed it one state sample per tick through exactly one
// of the frontends; mixing frontends on a single instance is not supported.
type Autopilot struct {
	GM     float64
	Target float64
	Dt     float64
	// ApsisWindow gates the circularization burn to apsis crossings within
	// this distance of the target radius. Zero accepts any apsis crossing.
	ApsisWindow float64

	phase       GuidancePhase
	transferSMA float64
	prevVR      float64
	havePrev    bool
	burn1Done   bool
	burn2Done   bool
	logger      kitlog.Logger
}

// NewAutopilot returns an autopilot targeting the circular orbit of radius target.
func NewAutopilot(μ, target, dt float64) *Autopilot {
	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	return &Autopilot{
		GM:          μ,
		Target:      target,
		Dt:          dt,
		ApsisWindow: defaultApsisWindow,
		phase:       AwaitingTelemetry,
		logger:      kitlog.With(klog, "subsys", "guidance"),
	}
}

// SetLogger replaces the autopilot logger.
func (a *Autopilot) SetLogger(l kitlog.Logger) {
	a.logger = l
}

// Phase returns the current guidance phase.
func (a *Autopilot) Phase() GuidancePhase { return a.phase }

// TransferSMA returns the semi-major axis of the transfer ellipse, or zero before
// the injection burn fixes it.
func (a *Autopilot) TransferSMA() float64 { return a.transferSMA }

// Burn1Done reports whether the injection burn was issued.
func (a *Autopilot) Burn1Done() bool { return a.burn1Done }

// Burn2Done reports whether the circularization burn was issued.
func (a *Autopilot) Burn2Done() bool { return a.burn2Done }

// advance runs the phase machine over one state sample. It returns the tangential
// speed to burn to when this tick is a burn tick. Burn phases are pass-through:
// the burn is issued on the very tick its phase is entered, so samples only ever
// rest in the awaiting and coasting phases.
func (a *Autopilot) advance(st State) (target float64, burn bool) {
	switch a.phase {
	case AwaitingTelemetry:
		r := st.RNorm()
		a.phase = Burn1Injection
		a.transferSMA = 0.5 * (r + a.Target)
		target = VisViva(r, a.transferSMA, a.GM)
		a.burn1Done = true
		a.logger.Log("level", "info", "phase", a.phase, "r", r, "aTransfer", a.transferSMA, "vTarget", target)
		a.phase = CoastTransfer
		return target, true

	case CoastTransfer:
		vr := st.VRadial()
		apsis := a.havePrev && a.prevVR*vr < 0
		a.prevVR = vr
		a.havePrev = true
		if !apsis {
			return 0, false
		}
		r := st.RNorm()
		if a.ApsisWindow > 0 && math.Abs(r-a.Target) >= a.ApsisWindow {
			return 0, false
		}
		a.phase = Burn2Circularize
		target = CircularVelocity(r, a.GM)
		a.burn2Done = true
		a.logger.Log("level", "info", "phase", a.phase, "r", r, "vTarget", target)
		a.phase = CoastFinal
		return target, true

	case CoastFinal:
		a.prevVR = st.VRadial()
		return 0, false
	}
	panic("cannot advance unknown guidance phase")
}

// ThrustDirection returns the thrust magnitude and absolute heading for this tick.
// Coast ticks point prograde with zero thrust.
func (a *Autopilot) ThrustDirection(st State) (thrust, heading float64) {
	if target, burn := a.advance(st); burn {
		man := TangentialBurn(st, target, a.Dt)
		return man.Thrust, man.Heading
	}
	return 0, math.Atan2(st.VY, st.VX)
}

// Steer returns the turn rate and thrust for this tick given the vehicle's current
// heading. This is the actuator shape of ThrustDirection.
func (a *Autopilot) Steer(st State, heading float64) (turn, thrust float64) {
	thrust, want := a.ThrustDirection(st)
	return TurnRate(heading, want, a.Dt), thrust
}

// ThrustScalar returns the signed tangential thrust for this tick. This frontend
// drives craft whose only actuator is thrust along the local tangential axis.
func (a *Autopilot) ThrustScalar(st State) float64 {
	if target, burn := a.advance(st); burn {
		return TangentialBurnScalar(st, target, a.Dt)
	}
	return 0
}
