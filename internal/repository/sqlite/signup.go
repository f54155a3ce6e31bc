package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/waitlist-backend/internal/domain"
)

// SignupRepository implements domain.SignupRepository using SQLite.
type SignupRepository struct {
	db *sql.DB
}

// NewSignupRepository creates a new SQLite-backed SignupRepository.
func NewSignupRepository(db *DB) *SignupRepository {
	return &SignupRepository{db: db.SqlDB}
}

// Upsert inserts a new signup or overwrites the name of the row already
// holding this email. The check and write run in one transaction on the
// store's single write connection, and the unique index on email backs
// the insert, so two concurrent signups for one address cannot both
// create a row.
func (r *SignupRepository) Upsert(ctx context.Context, signup *domain.Signup) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var (
		id        int64
		createdAt time.Time
	)
	err = tx.QueryRowContext(ctx,
		"SELECT id, created_at FROM waiting_list WHERE email = ?", signup.Email,
	).Scan(&id, &createdAt)

	switch {
	case err == nil:
		if _, err := tx.ExecContext(ctx,
			"UPDATE waiting_list SET name = ? WHERE id = ?", signup.Name, id,
		); err != nil {
			return false, fmt.Errorf("update signup name: %w", err)
		}
		signup.ID = id
		signup.CreatedAt = createdAt
		if err := tx.Commit(); err != nil {
			return false, fmt.Errorf("commit upsert: %w", err)
		}
		return false, nil

	case errors.Is(err, sql.ErrNoRows):
		now := time.Now().UTC()
		result, err := tx.ExecContext(ctx,
			"INSERT INTO waiting_list (name, email, created_at) VALUES (?, ?, ?)",
			signup.Name, signup.Email, now,
		)
		if err != nil {
			return false, fmt.Errorf("insert signup: %w", err)
		}
		newID, err := result.LastInsertId()
		if err != nil {
			return false, fmt.Errorf("get last insert id: %w", err)
		}
		signup.ID = newID
		signup.CreatedAt = now
		if err := tx.Commit(); err != nil {
			return false, fmt.Errorf("commit upsert: %w", err)
		}
		return true, nil

	default:
		return false, fmt.Errorf("query signup by email: %w", err)
	}
}

func (r *SignupRepository) GetByEmail(ctx context.Context, email string) (*domain.Signup, error) {
	signup := &domain.Signup{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, email, created_at FROM waiting_list WHERE email = ?", email,
	).Scan(&signup.ID, &signup.Name, &signup.Email, &signup.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query signup by email: %w", err)
	}
	return signup, nil
}

func (r *SignupRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM waiting_list").Scan(&count); err != nil {
		return 0, fmt.Errorf("count signups: %w", err)
	}
	return count, nil
}
