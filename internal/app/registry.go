package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/animolab/animolab/internal/core"
)

// Registry tracks every live connection. It is the final authority on
// whether a connection may still be delivered to: senders look a target
// up here at delivery time, never from a cached member list.
type Registry struct {
	mu    sync.RWMutex
	conns map[core.ConnID]core.ClientConn

	rooms *Rooms
}

func NewRegistry(rooms *Rooms) *Registry {
	return &Registry{
		conns: make(map[core.ConnID]core.ClientConn),
		rooms: rooms,
	}
}

func (r *Registry) Register(id core.ConnID, conn core.ClientConn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[id] = conn
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("registered connection")
}

func (r *Registry) Get(id core.ConnID) (core.ClientConn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conn, ok := r.conns[id]
	return conn, ok
}

// Deregister removes the connection and cascades into the room router.
// Deregistering an unknown id is a no-op: transports double-fire close
// events. The conn entry goes first, so a relay that already collected
// this id from a member list fails its delivery-time lookup.
func (r *Registry) Deregister(id core.ConnID) {
	r.mu.Lock()
	_, known := r.conns[id]
	delete(r.conns, id)
	r.mu.Unlock()
	if !known {
		return
	}
	r.rooms.LeaveAll(id)
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("deregistered connection")
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

type ConnSnap struct {
	ID   core.ConnID
	Conn core.ClientConn
}

// All returns a point-in-time copy of every registered connection.
func (r *Registry) All() []ConnSnap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ConnSnap, 0, len(r.conns))
	for id, conn := range r.conns {
		out = append(out, ConnSnap{ID: id, Conn: conn})
	}
	return out
}
