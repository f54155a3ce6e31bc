package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/msomdec/waitlist-backend/internal/domain"
)

// SignupRepository implements domain.SignupRepository using PostgreSQL.
type SignupRepository struct {
	db *sql.DB
}

// NewSignupRepository creates a new PostgreSQL-backed SignupRepository.
func NewSignupRepository(db *DB) *SignupRepository {
	return &SignupRepository{db: db.SqlDB}
}

// Upsert runs a single insert-on-conflict-update statement against the
// unique email index, so two concurrent signups for one address never
// produce two rows, across any number of service instances. xmax = 0
// holds only for a freshly inserted row version, which is how the
// statement reports create vs overwrite.
func (r *SignupRepository) Upsert(ctx context.Context, signup *domain.Signup) (bool, error) {
	var created bool
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO waiting_list (name, email)
		 VALUES ($1, $2)
		 ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id, created_at, (xmax = 0)`,
		signup.Name, signup.Email,
	).Scan(&signup.ID, &signup.CreatedAt, &created)
	if err != nil {
		return false, fmt.Errorf("upsert signup: %w", mapError(err))
	}
	return created, nil
}

func (r *SignupRepository) GetByEmail(ctx context.Context, email string) (*domain.Signup, error) {
	signup := &domain.Signup{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, email, created_at FROM waiting_list WHERE email = $1", email,
	).Scan(&signup.ID, &signup.Name, &signup.Email, &signup.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query signup by email: %w", mapError(err))
	}
	return signup, nil
}

func (r *SignupRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM waiting_list").Scan(&count); err != nil {
		return 0, fmt.Errorf("count signups: %w", mapError(err))
	}
	return count, nil
}

// mapError translates driver errors into domain sentinels where a
// SQLSTATE code identifies them. Unique violation is 23505.
func mapError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return domain.ErrDuplicateEmail
	}
	return err
}
