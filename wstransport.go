package gravnav

import (
	"github.com/gorilla/websocket"
)

// WSConn carries envelopes over a websocket. It implements the Conn interface.
type WSConn struct {
	ws *websocket.Conn
}

// DialWS connects to the server at url (ws:// or wss://).
func DialWS(url string) (*WSConn, error) {
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	return &WSConn{ws: ws}, nil
}

// ReadEnvelope implements the Conn interface.
func (c *WSConn) ReadEnvelope() (Envelope, error) {
	var env Envelope
	err := c.ws.ReadJSON(&env)
	return env, err
}

// WriteEnvelope implements the Conn interface.
func (c *WSConn) WriteEnvelope(env Envelope) error {
	return c.ws.WriteJSON(env)
}

// Close implements the Conn interface.
func (c *WSConn) Close() error {
	return c.ws.Close()
}
