package app

import (
	"github.com/rs/zerolog/log"

	"github.com/animolab/animolab/internal/core"
	"github.com/animolab/animolab/internal/domain"
	"github.com/animolab/animolab/pkg/metrics"
)

// Relay forwards a chat frame to every member of a room except the
// sender. Delivery is best effort: a member that disconnected between
// the member lookup and delivery is treated as already-left, and a slow
// consumer's dropped frame is logged, not surfaced.
type Relay struct {
	rooms    *Rooms
	registry *Registry
}

func NewRelay(rooms *Rooms, registry *Registry) *Relay {
	return &Relay{rooms: rooms, registry: registry}
}

// Relay delivers frame to the room's members minus sender and reports
// how many deliveries were attempted. An empty room is a silent no-op.
func (r *Relay) Relay(sender core.ConnID, room domain.RoomID, frame core.Frame) int {
	delivered := 0
	for _, id := range r.rooms.MembersExcept(room, sender) {
		// Registry is the delivery-time authority: a member list entry
		// whose connection has since deregistered is skipped.
		conn, ok := r.registry.Get(id)
		if !ok {
			continue
		}
		if err := conn.TrySend(frame); err != nil {
			log.Debug().Err(err).Str("module", "app.relay").Str("conn", string(id)).Str("room", string(room)).Msg("relay dropped frame")
			continue
		}
		delivered++
	}
	metrics.MessagesRelayed.Add(float64(delivered))
	log.Debug().Str("module", "app.relay").Str("from", string(sender)).Str("room", string(room)).Int("delivered", delivered).Msg("relayed message")
	return delivered
}
