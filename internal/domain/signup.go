package domain

import (
	"context"
	"time"
)

// Signup is a single entry on the waiting list. There is at most one
// entry per email address; repeat signups overwrite the name.
type Signup struct {
	ID        int64
	Name      string
	Email     string
	CreatedAt time.Time
}

// SignupRepository defines persistence operations for waitlist signups.
type SignupRepository interface {
	// Upsert inserts a signup for a new email or overwrites the name of
	// an existing one. It reports whether a new row was created and
	// populates ID and CreatedAt on the record either way.
	Upsert(ctx context.Context, signup *Signup) (created bool, err error)
	GetByEmail(ctx context.Context, email string) (*Signup, error)
	Count(ctx context.Context) (int64, error)
}
