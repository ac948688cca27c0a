package ws

import (
	"context"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/animolab/animolab/internal/core"
	"github.com/animolab/animolab/internal/domain"
	"github.com/animolab/animolab/internal/protocol"
)

var validate = validator.New()

// dispatch routes one inbound frame. Malformed frames are answered with
// an error event and mutate nothing; a misbehaving connection never
// takes down the event stream for others.
func (ctl *Controller) dispatch(ctx context.Context, id core.ConnID, c *wsConn, data []byte) {
	env, err := protocol.Decode(data)
	if err != nil {
		log.Warn().Err(err).Str("module", "adapters.ws").Str("conn", string(id)).Msg("bad json")
		ctl.sendError(c, "bad_payload")
		return
	}

	switch env.Event {
	case protocol.EventReserved:
		ctl.handleReserved(ctx, id, c, env.Data)
	case protocol.EventJoinRoom:
		ctl.handleJoinRoom(id, c, env.Data)
	case protocol.EventLeaveRoom:
		ctl.handleLeaveRoom(id, c, env.Data)
	case protocol.EventSendMessage:
		ctl.handleSendMessage(id, c, env.Data)
	default:
		log.Warn().Str("module", "adapters.ws").Str("event", env.Event).Msg("unknown event")
	}
}

func (ctl *Controller) handleReserved(ctx context.Context, id core.ConnID, c *wsConn, data json.RawMessage) {
	var userID string
	if err := json.Unmarshal(data, &userID); err != nil {
		ctl.sendError(c, "bad_payload")
		return
	}
	if err := validate.Var(userID, "required"); err != nil {
		ctl.sendError(c, "missing userID")
		return
	}
	if !ctl.refreshes.Allow(domain.UserID(userID)) {
		// Throttled: answer with the current snapshot instead of
		// hammering the store.
		log.Warn().Str("module", "adapters.ws").Str("user", userID).Msg("refresh throttled")
		ctl.orch.Presence.PushTo(id)
		return
	}
	ctl.orch.OnReserved(ctx, id, domain.UserID(userID))
}

func (ctl *Controller) handleJoinRoom(id core.ConnID, c *wsConn, data json.RawMessage) {
	roomID, ok := ctl.roomID(c, data)
	if !ok {
		return
	}
	log.Info().Str("module", "adapters.ws").Str("conn", string(id)).Str("room", roomID).Msg("user joined room")
	ctl.orch.OnJoinRoom(id, domain.RoomID(roomID))
}

func (ctl *Controller) handleLeaveRoom(id core.ConnID, c *wsConn, data json.RawMessage) {
	roomID, ok := ctl.roomID(c, data)
	if !ok {
		return
	}
	log.Info().Str("module", "adapters.ws").Str("conn", string(id)).Str("room", roomID).Msg("user left room")
	ctl.orch.OnLeaveRoom(id, domain.RoomID(roomID))
}

func (ctl *Controller) handleSendMessage(id core.ConnID, c *wsConn, data json.RawMessage) {
	var p protocol.MessagePayload
	if err := json.Unmarshal(data, &p); err != nil {
		ctl.sendError(c, "bad_payload")
		return
	}
	if err := validate.Struct(p); err != nil {
		ctl.sendError(c, "missing roomID")
		return
	}
	ctl.orch.OnMessage(id, domain.RoomID(p.RoomID), data)
}

// roomID decodes the bare-string payload of join-room / leave-room.
func (ctl *Controller) roomID(c *wsConn, data json.RawMessage) (string, bool) {
	var roomID string
	if err := json.Unmarshal(data, &roomID); err != nil {
		ctl.sendError(c, "bad_payload")
		return "", false
	}
	if err := validate.Var(roomID, "required"); err != nil {
		ctl.sendError(c, "missing roomID")
		return "", false
	}
	return roomID, true
}

func (ctl *Controller) sendError(c *wsConn, msg string) {
	frame, err := protocol.Encode(protocol.EventError, map[string]string{"error": msg})
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.ws").Msg("encode error event")
		return
	}
	_ = c.TrySend(frame)
}
