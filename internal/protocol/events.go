// Package protocol defines the JSON wire surface shared with the web
// client: an event envelope plus the event names both sides dispatch on.
package protocol

import (
	"encoding/json"

	"github.com/animolab/animolab/internal/core"
)

const (
	// server -> client
	EventReserveUpdate = "reserveUpdate"
	// EventReceiveMessage keeps the historical misspelling: deployed
	// clients listen for this exact name.
	EventReceiveMessage = "recieve-message"
	EventError          = "error"

	// client -> server
	EventReserved    = "reserved"
	EventJoinRoom    = "join-room"
	EventLeaveRoom   = "leave-room"
	EventSendMessage = "send-message"
)

// Envelope wraps every frame in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// MessagePayload is the routable part of a send-message frame. The rest
// of the payload (sender, body, timestamp, whatever the client adds) is
// relayed verbatim and never inspected by the server.
type MessagePayload struct {
	RoomID string `json:"roomID" validate:"required"`
}

// Encode marshals v and wraps it in an envelope for the given event.
func Encode(event string, v any) (core.Frame, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	frame, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		return nil, err
	}
	return core.Frame(frame), nil
}

// Decode parses an inbound frame into its envelope.
func Decode(frame []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return Envelope{}, err
	}
	return env, nil
}
