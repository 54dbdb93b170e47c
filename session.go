package gravnav

import (
	"context"
	"fmt"
	"os"

	kitlog "github.com/go-kit/kit/log"
)

// Conn is the transport a session speaks over. Implementations must be safe for
// one concurrent reader and one concurrent writer.
type Conn interface {
	ReadEnvelope() (Envelope, error)
	WriteEnvelope(Envelope) error
	Close() error
}

// CommandForm selects the manual_action shape a session emits. A session picks one
// form at construction and never mixes them.
type CommandForm uint8

const (
	// FormActuator emits a turn rate and a thrust.
	FormActuator CommandForm = iota + 1
	// FormVector emits a thrust and an absolute heading.
	FormVector
)

func (f CommandForm) String() string {
	switch f {
	case FormActuator:
		return "actuator"
	case FormVector:
		return "vector"
	}
	panic("cannot stringify unknown command form")
}

// Session drives one ship over a server connection: it joins, caches the latest
// telemetry for its ship, and answers every action request with exactly one
// command.
type Session struct {
	conn Conn
	auto *Autopilot
	form CommandForm
	mode string
	name string

	shipID    string
	telemetry State
	heading   float64
	haveState bool
	logger    kitlog.Logger
}

// NewSession wires an autopilot to a connection. A zero form defaults to
// FormActuator and an empty mode to ModeManual.
func NewSession(conn Conn, auto *Autopilot, form CommandForm, mode, name string) *Session {
	if form == 0 {
		form = FormActuator
	}
	if mode == "" {
		mode = ModeManual
	}
	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	return &Session{
		conn:   conn,
		auto:   auto,
		form:   form,
		mode:   mode,
		name:   name,
		logger: kitlog.With(klog, "subsys", "session"),
	}
}

// SetLogger replaces the session logger.
func (s *Session) SetLogger(l kitlog.Logger) {
	s.logger = l
}

// ShipID returns the id assigned at join time.
func (s *Session) ShipID() string { return s.shipID }

// Telemetry returns the last cached state for this ship and whether one arrived yet.
func (s *Session) Telemetry() (State, bool) { return s.telemetry, s.haveState }

// Join announces the control mode and blocks until the server confirms a ship id.
func (s *Session) Join() error {
	env, err := NewEnvelope(MsgJoinMode, 0, JoinPayload{Mode: s.mode, Name: s.name})
	if err != nil {
		return err
	}
	if err = s.conn.WriteEnvelope(env); err != nil {
		return fmt.Errorf("join: %w", err)
	}
	for {
		in, err := s.conn.ReadEnvelope()
		if err != nil {
			return fmt.Errorf("join: %w", err)
		}
		if in.Header.Type != MsgModeConfirmed {
			continue
		}
		var conf ConfirmPayload
		if err = in.DecodePayload(&conf); err != nil {
			return fmt.Errorf("join: %w", err)
		}
		s.shipID = conf.ShipID
		s.logger.Log("level", "info", "status", "joined", "ship", s.shipID, "mode", s.mode, "form", s.form)
		return nil
	}
}

// inbound carries one parsed envelope or the read fault that ended the stream.
type inbound struct {
	env Envelope
	err error
}

// Run services the session until the context ends or the transport fails. Any
// transport or decode fault is fatal; there is no reconnection and no read
// timeout. Envelopes already parsed before a fault are still handled, in order.
func (s *Session) Run(ctx context.Context) error {
	msgs := make(chan inbound, 10)
	go func() {
		for {
			env, err := s.conn.ReadEnvelope()
			select {
			case msgs <- inbound{env: env, err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			s.conn.Close()
			return ctx.Err()
		case in := <-msgs:
			if in.err != nil {
				return in.err
			}
			if err := s.handle(in.env); err != nil {
				return err
			}
		}
	}
}

func (s *Session) handle(env Envelope) error {
	switch env.Header.Type {
	case MsgStateUpdate:
		var state StatePayload
		if err := env.DecodePayload(&state); err != nil {
			return fmt.Errorf("state update: %w", err)
		}
		ship, ok := state.Ships[s.shipID]
		if !ok {
			return nil
		}
		s.telemetry = State{X: ship.X, Y: ship.Y, VX: ship.VX, VY: ship.VY}
		s.heading = ship.Heading
		s.haveState = true
	case MsgActionRequest:
		return s.respond(env.Header.Tick)
	default:
		return fmt.Errorf("unexpected %s envelope", env.Header.Type)
	}
	return nil
}

// respond answers one action request, echoing its tick. Exactly one command goes
// out per request; before any telemetry arrives that command is all zeroes.
func (s *Session) respond(tick int) error {
	var action ActionPayload
	switch {
	case !s.haveState:
		if s.form == FormActuator {
			action.Turn = f64ptr(0)
		} else {
			action.Heading = f64ptr(0)
		}
	case s.form == FormActuator:
		turn, thrust := s.auto.Steer(s.telemetry, s.heading)
		action.Turn = f64ptr(turn)
		action.Thrust = thrust
	default:
		thrust, heading := s.auto.ThrustDirection(s.telemetry)
		action.Thrust = thrust
		action.Heading = f64ptr(heading)
	}
	env, err := NewEnvelope(MsgManualAction, tick, action)
	if err != nil {
		return err
	}
	if err = s.conn.WriteEnvelope(env); err != nil {
		return fmt.Errorf("manual action: %w", err)
	}
	return nil
}

func f64ptr(v float64) *float64 { return &v }
