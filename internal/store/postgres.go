// Package store is the PostgreSQL persistence layer. The realtime core
// only consumes the reservation lookup; the profile operations back the
// HTTP CRUD surface.
package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/animolab/animolab/internal/domain"
)

type Postgres struct {
	pool *pgxpool.Pool
}

// New opens a connection pool against the configured database URL.
func New(ctx context.Context, url string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, err
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Close() { p.pool.Close() }

// FindByUser returns the user's reservations ordered by slot start.
func (p *Postgres) FindByUser(ctx context.Context, userID domain.UserID) ([]domain.Reservation, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, user_id, lab, seat, slot_start, slot_end, created_at
		FROM reservations
		WHERE user_id = $1
		ORDER BY slot_start
	`, string(userID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Reservation
	for rows.Next() {
		var r domain.Reservation
		if err := rows.Scan(&r.ID, &r.UserID, &r.Lab, &r.Seat, &r.SlotStart, &r.SlotEnd, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	log.Debug().Str("module", "store").Str("user", string(userID)).Int("records", len(out)).Msg("reservations loaded")
	return out, nil
}
