package app

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/animolab/animolab/internal/core"
	"github.com/animolab/animolab/internal/domain"
	"github.com/animolab/animolab/internal/protocol"
)

// Orchestrator drives the per-connection lifecycle: register and push
// the initial snapshot on connect, dispatch room/chat/reservation events
// while connected, cascade cleanup on disconnect. After OnDisconnect a
// connection id is terminal; late events for it are dropped because the
// registry no longer knows it.
type Orchestrator struct {
	Registry *Registry
	Rooms    *Rooms
	Presence *Broadcaster
	Relay    *Relay
}

func (o *Orchestrator) OnConnect(id core.ConnID, conn core.ClientConn) {
	o.Registry.Register(id, conn)
	o.Presence.PushTo(id)
}

// OnDisconnect is idempotent; transports double-fire close events.
func (o *Orchestrator) OnDisconnect(id core.ConnID) {
	o.Registry.Deregister(id)
}

func (o *Orchestrator) OnJoinRoom(id core.ConnID, room domain.RoomID) {
	if !o.connected(id) {
		return
	}
	o.Rooms.Join(id, room)
}

func (o *Orchestrator) OnLeaveRoom(id core.ConnID, room domain.RoomID) {
	if !o.connected(id) {
		return
	}
	o.Rooms.Leave(id, room)
}

// OnMessage wraps the sender's payload in a recieve-message frame and
// relays it to the rest of the room. The payload goes out verbatim.
func (o *Orchestrator) OnMessage(id core.ConnID, room domain.RoomID, payload json.RawMessage) {
	if !o.connected(id) {
		return
	}
	frame, err := protocol.Encode(protocol.EventReceiveMessage, payload)
	if err != nil {
		log.Error().Err(err).Str("module", "app.orchestrator").Msg("encode message frame")
		return
	}
	o.Relay.Relay(id, room, frame)
}

// OnReserved recomputes the reservation snapshot for the triggering user
// and pushes it to everyone, the triggering connection included.
func (o *Orchestrator) OnReserved(ctx context.Context, id core.ConnID, userID domain.UserID) {
	if !o.connected(id) {
		return
	}
	o.Presence.Refresh(ctx, userID)
	o.Presence.PushToAll()
}

func (o *Orchestrator) connected(id core.ConnID) bool {
	_, ok := o.Registry.Get(id)
	if !ok {
		log.Debug().Str("module", "app.orchestrator").Str("conn", string(id)).Msg("event for unknown connection dropped")
	}
	return ok
}
