package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/animolab/animolab/internal/core"
	"github.com/animolab/animolab/internal/domain"
)

// Rooms maps room ids to their member connections. It owns the
// membership sets; everything else goes through Join/Leave/MembersExcept.
type Rooms struct {
	mu      sync.RWMutex
	members map[domain.RoomID]map[core.ConnID]struct{}
	joined  map[core.ConnID]map[domain.RoomID]struct{}
}

func NewRooms() *Rooms {
	return &Rooms{
		members: make(map[domain.RoomID]map[core.ConnID]struct{}),
		joined:  make(map[core.ConnID]map[domain.RoomID]struct{}),
	}
}

// Join adds the connection to the room, creating the room on first join.
// Joining a room twice is a no-op.
func (r *Rooms) Join(id core.ConnID, room domain.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.members[room]
	if !ok {
		set = make(map[core.ConnID]struct{})
		r.members[room] = set
	}
	if _, ok := set[id]; ok {
		return
	}
	set[id] = struct{}{}
	rooms, ok := r.joined[id]
	if !ok {
		rooms = make(map[domain.RoomID]struct{})
		r.joined[id] = rooms
	}
	rooms[room] = struct{}{}
	log.Info().Str("module", "app.rooms").Str("conn", string(id)).Str("room", string(room)).Msg("joined room")
}

// Leave removes the connection from the room. Leaving a room the
// connection is not in is a no-op. The last leave drops the room.
func (r *Rooms) Leave(id core.ConnID, room domain.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaveLocked(id, room)
	log.Info().Str("module", "app.rooms").Str("conn", string(id)).Str("room", string(room)).Msg("left room")
}

// LeaveAll removes the connection from every room it belongs to.
// Called on disconnect; all memberships go in one critical section so a
// concurrent MembersExcept never observes a half-removed connection.
func (r *Rooms) LeaveAll(id core.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for room := range r.joined[id] {
		r.leaveLocked(id, room)
	}
}

func (r *Rooms) leaveLocked(id core.ConnID, room domain.RoomID) {
	set, ok := r.members[room]
	if !ok {
		return
	}
	delete(set, id)
	if len(set) == 0 {
		delete(r.members, room)
	}
	if rooms, ok := r.joined[id]; ok {
		delete(rooms, room)
		if len(rooms) == 0 {
			delete(r.joined, id)
		}
	}
}

// MembersExcept returns the room's members minus the excluded
// connection, reflecting membership at call time.
func (r *Rooms) MembersExcept(room domain.RoomID, except core.ConnID) []core.ConnID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set := r.members[room]
	out := make([]core.ConnID, 0, len(set))
	for id := range set {
		if id == except {
			continue
		}
		out = append(out, id)
	}
	return out
}

// RoomsOf returns the rooms the connection currently belongs to.
func (r *Rooms) RoomsOf(id core.ConnID) []domain.RoomID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.RoomID, 0, len(r.joined[id]))
	for room := range r.joined[id] {
		out = append(out, room)
	}
	return out
}

type RoomInfo struct {
	ID          domain.RoomID `json:"id"`
	MemberCount int           `json:"client_count"`
}

func (r *Rooms) List() []RoomInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]RoomInfo, 0, len(r.members))
	for room, set := range r.members {
		out = append(out, RoomInfo{ID: room, MemberCount: len(set)})
	}
	return out
}
