package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/kosthub/kosthub/internal/adapter/sqlite"
	"github.com/kosthub/kosthub/internal/domain"
)

// newTestDB opens a migrated throwaway database backed by a temp file.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := sqlite.Migrate(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return db
}

// seedCatalog inserts the tenant, owner, property and room every relational
// fixture hangs off.
func seedCatalog(t *testing.T, db *sql.DB) {
	t.Helper()
	ctx := context.Background()

	profiles := sqlite.NewProfileRepository(db)
	if err := profiles.Create(ctx, domain.NewProfile("tenant-1", domain.RoleTenant, "Budi Santoso", "+62812")); err != nil {
		t.Fatalf("seeding tenant: %v", err)
	}
	if err := profiles.Create(ctx, domain.NewProfile("owner-1", domain.RoleOwner, "Ibu Sari", "")); err != nil {
		t.Fatalf("seeding owner: %v", err)
	}

	properties := sqlite.NewPropertyRepository(db)
	if err := properties.Create(ctx, domain.NewProperty("prop-1", "owner-1", "Kost Melati", "Jl. Melati 5", "near campus", -6.2, 106.8)); err != nil {
		t.Fatalf("seeding property: %v", err)
	}

	rooms := sqlite.NewRoomRepository(db)
	if err := rooms.Create(ctx, domain.NewRoom("room-1", "prop-1", "Kamar A1", 1_500_000, []string{"AC"})); err != nil {
		t.Fatalf("seeding room: %v", err)
	}
}

// seedBooking inserts a pending booking for room-1 held by tenant-1.
func seedBooking(t *testing.T, db *sql.DB, id string) domain.Booking {
	t.Helper()

	b := domain.NewBooking(id, "room-1", "tenant-1",
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
		1_500_000)
	if err := sqlite.NewBookingRepository(db).Create(context.Background(), b); err != nil {
		t.Fatalf("seeding booking: %v", err)
	}
	return b
}
