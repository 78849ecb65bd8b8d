package mysql

import (
	"testing"
	"time"

	"quote-workflow/internal/domain/quote"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB creates an in-memory sqlite DB with every table this service touches.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// each :memory: connection is its own database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func strp(s string) *string { return &s }

func seedQuote(t *testing.T, db *gorm.DB, id string, state quote.State, owner *string) *quote.Quote {
	t.Helper()
	q := &quote.Quote{
		ID:           id,
		CustomerName: "Acme Industrial",
		OwnerID:      owner,
		UpdatedAt:    time.Now().UTC(),
	}
	q.SetState(state)
	if err := db.Create(q).Error; err != nil {
		t.Fatalf("seed quote: %v", err)
	}
	return q
}
