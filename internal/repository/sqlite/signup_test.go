package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/msomdec/waitlist-backend/internal/domain"
	"github.com/msomdec/waitlist-backend/internal/repository/sqlite"
)

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSignupRepository_Upsert_Create(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewSignupRepository(db)
	ctx := context.Background()

	signup := &domain.Signup{Name: "Ana", Email: "ana@example.com"}
	created, err := repo.Upsert(ctx, signup)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if !created {
		t.Fatal("expected first upsert to report created")
	}
	if signup.ID == 0 {
		t.Fatal("expected signup ID to be set after create")
	}
	if signup.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}
}

func TestSignupRepository_Upsert_OverwritesName(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewSignupRepository(db)
	ctx := context.Background()

	first := &domain.Signup{Name: "Ana", Email: "ana@example.com"}
	if _, err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("Upsert first: %v", err)
	}

	second := &domain.Signup{Name: "Ana B.", Email: "ana@example.com"}
	created, err := repo.Upsert(ctx, second)
	if err != nil {
		t.Fatalf("Upsert second: %v", err)
	}

	if created {
		t.Fatal("expected second upsert to report an existing row")
	}
	if second.ID != first.ID {
		t.Fatalf("expected existing row id %d, got %d", first.ID, second.ID)
	}

	found, err := repo.GetByEmail(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if found.Name != "Ana B." {
		t.Fatalf("expected overwritten name %q, got %q", "Ana B.", found.Name)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one row after repeat signup, got %d", count)
	}
}

func TestSignupRepository_GetByEmail_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewSignupRepository(db)

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSignupRepository_Upsert_ConcurrentSameEmail(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewSignupRepository(db)
	ctx := context.Background()

	done := make(chan error, 2)
	for i := 0; i < 2; i++ {
		name := "Racer"
		go func() {
			_, err := repo.Upsert(ctx, &domain.Signup{Name: name, Email: "race@example.com"})
			done <- err
		}()
	}
	for i := 0; i < 2; i++ {
		if err := <-done; err != nil {
			t.Fatalf("concurrent Upsert: %v", err)
		}
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one row after concurrent signups for one email, got %d", count)
	}
}

func TestSignupRepository_Count_Empty(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewSignupRepository(db)

	count, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty table, got %d rows", count)
	}
}
