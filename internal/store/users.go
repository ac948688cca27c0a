package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrUnknownField = errors.New("unknown profile field")
)

// profileColumns is the closed set of profile fields a client may
// update, mapped to their columns. Anything outside this map is
// rejected before a query is built.
var profileColumns = map[string]string{
	"username":      "username",
	"firstName":     "first_name",
	"middleInitial": "middle_initial",
	"lastName":      "last_name",
	"name":          "name",
	"course":        "course",
	"about":         "about",
	"email":         "email",
	"imageSource":   "image_source",
	"contact":       "contact",
}

// normEmail trims and lowercases an email-shaped key.
func normEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// UpdateProfileField sets one whitelisted field of the user addressed
// by key. The key is tried as a campus id first, then as an email,
// mirroring how clients identify themselves on the profile page.
func (p *Postgres) UpdateProfileField(ctx context.Context, key, field, value string) error {
	col, ok := profileColumns[field]
	if !ok {
		return ErrUnknownField
	}

	// col comes from the closed map above, never from the request.
	if id, err := strconv.ParseInt(key, 10, 64); err == nil {
		q := fmt.Sprintf(`UPDATE users SET %s = $1 WHERE dlsu_id = $2`, col)
		ct, err := p.pool.Exec(ctx, q, value, id)
		if err != nil {
			return err
		}
		if ct.RowsAffected() > 0 {
			return nil
		}
	}

	q := fmt.Sprintf(`UPDATE users SET %s = $1 WHERE email = $2`, col)
	ct, err := p.pool.Exec(ctx, q, value, normEmail(key))
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProfile removes the user addressed by campus id or email.
func (p *Postgres) DeleteProfile(ctx context.Context, key string) error {
	if id, err := strconv.ParseInt(key, 10, 64); err == nil {
		ct, err := p.pool.Exec(ctx, `DELETE FROM users WHERE dlsu_id = $1`, id)
		if err != nil {
			return err
		}
		if ct.RowsAffected() > 0 {
			return nil
		}
	}

	ct, err := p.pool.Exec(ctx, `DELETE FROM users WHERE email = $1`, normEmail(key))
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
