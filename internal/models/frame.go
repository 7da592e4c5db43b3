package models

import "encoding/json"

// FrameKind identifies one of the inbound command frame types. The set
// is closed: the hub dispatches on it with an explicit switch.
type FrameKind string

const (
	FrameChat       FrameKind = "chat"
	FrameTyping     FrameKind = "typing"
	FrameStatus     FrameKind = "status"
	FrameJoin       FrameKind = "join"
	FrameConnect    FrameKind = "connect"
	FrameDisconnect FrameKind = "disconnect"
	FrameSubscribe  FrameKind = "subscribe"
	FrameTest       FrameKind = "test"
)

// Frame is one inbound command from a client connection: a kind plus a
// flat mapping of named string fields. Absent fields read as "".
type Frame struct {
	Kind FrameKind         `json:"kind"`
	Data map[string]string `json:"data"`
}

// Get returns the named field or "" when absent.
func (f Frame) Get(key string) string {
	if f.Data == nil {
		return ""
	}
	return f.Data[key]
}

// Envelope is one outbound delivery: the destination it was addressed
// to plus the JSON-encoded body. It is both the wire format towards
// websocket clients and the payload published on the broker channel
// named by Dest.
type Envelope struct {
	Dest string          `json:"dest"`
	Body json.RawMessage `json:"body"`
}

// NewEnvelope marshals v into an Envelope for dest. Marshal failures
// are returned to the caller; every payload type we publish is
// marshalable, so in practice this only fails on programming errors.
func NewEnvelope(dest string, v interface{}) (Envelope, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Dest: dest, Body: body}, nil
}
