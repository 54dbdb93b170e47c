package gravnav

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ProtocolVersion is stamped on every outbound envelope header.
const ProtocolVersion = "1.0"

// MessageType discriminates envelopes on the wire.
type MessageType string

const (
	// MsgJoinMode requests a ship under the given control mode.
	MsgJoinMode MessageType = "join_mode"
	// MsgModeConfirmed acknowledges a join and carries the assigned ship id.
	MsgModeConfirmed MessageType = "mode_confirmed"
	// MsgStateUpdate broadcasts the positions and velocities of all ships.
	MsgStateUpdate MessageType = "state_update"
	// MsgActionRequest asks the client for its control input for this tick.
	MsgActionRequest MessageType = "action_request"
	// MsgManualAction carries one tick of control input.
	MsgManualAction MessageType = "manual_action"
)

// Join modes understood by the server.
const (
	ModeManual = "manual"
	ModeModel  = "model"
)

// Header precedes every payload.
type Header struct {
	Version   string      `json:"version"`
	Type      MessageType `json:"type"`
	Tick      int         `json:"tick"`
	Timestamp float64     `json:"timestamp"`
	ClientID  string      `json:"client_id"`
}

// Envelope is the unit of exchange: a header and an opaque payload decoded once
// the type is known.
type Envelope struct {
	Header  Header          `json:"header"`
	Payload json.RawMessage `json:"payload"`
}

// NewEnvelope wraps a payload for sending. Every envelope carries a fresh client
// id and the wall clock in seconds.
func NewEnvelope(t MessageType, tick int, payload interface{}) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		Header: Header{
			Version:   ProtocolVersion,
			Type:      t,
			Tick:      tick,
			Timestamp: float64(time.Now().UnixNano()) / 1e9,
			ClientID:  uuid.NewString(),
		},
		Payload: raw,
	}, nil
}

// DecodePayload unmarshals the payload into dst.
func (e Envelope) DecodePayload(dst interface{}) error {
	return json.Unmarshal(e.Payload, dst)
}

// JoinPayload rides a join_mode envelope.
type JoinPayload struct {
	Mode string `json:"mode"`
	Name string `json:"name"`
}

// ConfirmPayload rides a mode_confirmed envelope.
type ConfirmPayload struct {
	ShipID string `json:"ship_id"`
}

// ShipState is one ship inside a state_update. Servers that do not track heading
// omit it and the zero value stands in.
type ShipState struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	VX      float64 `json:"vx"`
	VY      float64 `json:"vy"`
	Heading float64 `json:"heading"`
}

// StatePayload rides a state_update envelope.
type StatePayload struct {
	Ships map[string]ShipState `json:"ships"`
}

// ActionPayload rides a manual_action envelope. A controller emits one of two
// shapes and sticks with it: turn plus thrust, or thrust plus heading.
type ActionPayload struct {
	Turn    *float64 `json:"turn,omitempty"`
	Thrust  float64  `json:"thrust"`
	Heading *float64 `json:"heading,omitempty"`
}
