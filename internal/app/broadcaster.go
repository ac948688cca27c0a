package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/animolab/animolab/internal/core"
	"github.com/animolab/animolab/internal/domain"
	"github.com/animolab/animolab/internal/protocol"
	"github.com/animolab/animolab/pkg/metrics"
)

//go:generate mockgen -source=broadcaster.go -destination=mocks/store_mock.go -package=mocks

// ReservationStore is the persistence boundary the broadcaster reads.
type ReservationStore interface {
	FindByUser(ctx context.Context, userID domain.UserID) ([]domain.Reservation, error)
}

// Broadcaster owns the process-wide reservation snapshot and fans it out
// to connected clients. The snapshot is a read-mostly cache of store
// state: it is replaced wholesale on each refresh, never patched, and
// concurrent refreshes resolve last-write-wins.
type Broadcaster struct {
	store    ReservationStore
	registry *Registry

	mu       sync.RWMutex
	snapshot []domain.Reservation
}

func NewBroadcaster(store ReservationStore, registry *Registry) *Broadcaster {
	return &Broadcaster{store: store, registry: registry}
}

// Refresh recomputes the snapshot from the store. On store failure the
// previous snapshot is kept: stale-but-available beats an empty error
// payload on every client. The lock is never held across the store call,
// so joins, leaves and relays proceed while a lookup is pending.
func (b *Broadcaster) Refresh(ctx context.Context, userID domain.UserID) []domain.Reservation {
	records, err := b.store.FindByUser(ctx, userID)
	if err != nil {
		metrics.SnapshotRefreshFailures.Inc()
		log.Warn().Err(err).Str("module", "app.broadcaster").Str("user", string(userID)).Msg("reservation lookup failed, keeping previous snapshot")
		return b.Snapshot()
	}
	b.mu.Lock()
	b.snapshot = records
	b.mu.Unlock()
	log.Info().Str("module", "app.broadcaster").Str("user", string(userID)).Int("records", len(records)).Msg("snapshot refreshed")
	return records
}

// Snapshot returns a copy of the current reservation snapshot.
// Never nil: a fresh process reports an empty list, not null.
func (b *Broadcaster) Snapshot() []domain.Reservation {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]domain.Reservation, len(b.snapshot))
	copy(out, b.snapshot)
	return out
}

// PushTo sends the current snapshot to a single connection. Used right
// after connect so a new client is not left without state.
func (b *Broadcaster) PushTo(id core.ConnID) {
	frame, err := protocol.Encode(protocol.EventReserveUpdate, b.Snapshot())
	if err != nil {
		log.Error().Err(err).Str("module", "app.broadcaster").Msg("encode snapshot")
		return
	}
	conn, ok := b.registry.Get(id)
	if !ok {
		return
	}
	if err := conn.TrySend(frame); err != nil {
		log.Debug().Err(err).Str("module", "app.broadcaster").Str("conn", string(id)).Msg("snapshot push dropped")
	}
}

// PushToAll sends the current snapshot to every registered connection.
func (b *Broadcaster) PushToAll() {
	frame, err := protocol.Encode(protocol.EventReserveUpdate, b.Snapshot())
	if err != nil {
		log.Error().Err(err).Str("module", "app.broadcaster").Msg("encode snapshot")
		return
	}
	metrics.SnapshotBroadcasts.Inc()
	for _, snap := range b.registry.All() {
		if err := snap.Conn.TrySend(frame); err != nil {
			log.Debug().Err(err).Str("module", "app.broadcaster").Str("conn", string(snap.ID)).Msg("snapshot push dropped")
		}
	}
}
