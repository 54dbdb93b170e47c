package gravnav

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	turn := 0.25
	env, err := NewEnvelope(MsgManualAction, 7, ActionPayload{Turn: &turn, Thrust: 1.5})
	require.NoError(t, err)
	assert.Equal(t, ProtocolVersion, env.Header.Version)
	assert.Equal(t, MsgManualAction, env.Header.Type)
	assert.Equal(t, 7, env.Header.Tick)
	assert.Greater(t, env.Header.Timestamp, 0.0)
	_, err = uuid.Parse(env.Header.ClientID)
	assert.NoError(t, err, "client id must be a UUID")

	raw, err := json.Marshal(env)
	require.NoError(t, err)
	var back Envelope
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, env.Header, back.Header)

	var action ActionPayload
	require.NoError(t, back.DecodePayload(&action))
	require.NotNil(t, action.Turn)
	assert.Equal(t, 0.25, *action.Turn)
	assert.Equal(t, 1.5, action.Thrust)
	assert.Nil(t, action.Heading)
}

func TestFreshClientIDPerEnvelope(t *testing.T) {
	a, err := NewEnvelope(MsgActionRequest, 0, struct{}{})
	require.NoError(t, err)
	b, err := NewEnvelope(MsgActionRequest, 0, struct{}{})
	require.NoError(t, err)
	assert.NotEqual(t, a.Header.ClientID, b.Header.ClientID)
}

func TestActionPayloadShapes(t *testing.T) {
	// Actuator form: turn plus thrust, even when the turn is zero.
	turn := 0.0
	raw, err := json.Marshal(ActionPayload{Turn: &turn, Thrust: 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"turn":0,"thrust":2}`, string(raw))

	// Vector form: thrust plus heading, no turn key.
	heading := -1.2
	raw, err = json.Marshal(ActionPayload{Thrust: 2, Heading: &heading})
	require.NoError(t, err)
	assert.JSONEq(t, `{"thrust":2,"heading":-1.2}`, string(raw))
}

func TestStateUpdateDecode(t *testing.T) {
	// Heading is optional in inbound states; servers that do not track it omit it.
	raw := []byte(`{
		"header": {"version": "1.0", "type": "state_update", "tick": 3,
			"timestamp": 1700000000.25, "client_id": "8b171f57-155f-4ba2-a578-29e390f3c8ba"},
		"payload": {"ships": {
			"s1": {"x": 1, "y": 2, "vx": 0.5, "vy": -0.5},
			"s2": {"x": -1, "y": 0, "vx": 0, "vy": 1, "heading": 0.75}
		}}
	}`)
	var env Envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.Equal(t, MsgStateUpdate, env.Header.Type)
	assert.Equal(t, 3, env.Header.Tick)
	assert.Equal(t, 1700000000.25, env.Header.Timestamp)

	var state StatePayload
	require.NoError(t, env.DecodePayload(&state))
	require.Len(t, state.Ships, 2)
	assert.Equal(t, ShipState{X: 1, Y: 2, VX: 0.5, VY: -0.5}, state.Ships["s1"])
	assert.Equal(t, 0.75, state.Ships["s2"].Heading)
}

func TestJoinAndConfirmPayloads(t *testing.T) {
	env, err := NewEnvelope(MsgJoinMode, 0, JoinPayload{Mode: ModeModel, Name: "probe"})
	require.NoError(t, err)
	var join JoinPayload
	require.NoError(t, env.DecodePayload(&join))
	assert.Equal(t, JoinPayload{Mode: ModeModel, Name: "probe"}, join)

	env, err = NewEnvelope(MsgModeConfirmed, 1, ConfirmPayload{ShipID: "ship-9"})
	require.NoError(t, err)
	var confirm ConfirmPayload
	require.NoError(t, env.DecodePayload(&confirm))
	assert.Equal(t, "ship-9", confirm.ShipID)
}

func TestCommandFormString(t *testing.T) {
	assert.Equal(t, "actuator", FormActuator.String())
	assert.Equal(t, "vector", FormVector.String())
	assertPanic(t, func() { _ = CommandForm(9).String() })
}
