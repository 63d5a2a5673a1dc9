package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kosthub/kosthub/internal/domain"
)

// RoomRepository implements domain.RoomRepository using SQLite.
type RoomRepository struct {
	db *sql.DB
}

// Compile-time check: RoomRepository implements domain.RoomRepository.
var _ domain.RoomRepository = (*RoomRepository)(nil)

// NewRoomRepository wraps an open database connection.
func NewRoomRepository(db *sql.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

const roomColumns = `id, property_id, name, price_monthly, facilities, images,
	is_occupied, created_at, updated_at`

func (r *RoomRepository) Create(ctx context.Context, rm domain.Room) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO rooms (`+roomColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rm.ID, rm.PropertyID, rm.Name, rm.PriceMonthly,
		encodeList(rm.Facilities), encodeList(rm.Images),
		boolToInt(rm.IsOccupied),
		rm.CreatedAt.Format(timeFormat),
		rm.UpdatedAt.Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("inserting room: %w", err)
	}
	return nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id string) (domain.Room, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE id = ?`, id)

	rm, err := scanRoom(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Room{}, domain.ErrRoomNotFound
	}
	if err != nil {
		return domain.Room{}, fmt.Errorf("scanning room: %w", err)
	}
	return rm, nil
}

func (r *RoomRepository) ListByProperty(ctx context.Context, propertyID string) ([]domain.Room, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+roomColumns+` FROM rooms
		 WHERE property_id = ? ORDER BY created_at`, propertyID)
	if err != nil {
		return nil, fmt.Errorf("listing rooms: %w", err)
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		rm, err := scanRoom(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning room row: %w", err)
		}
		rooms = append(rooms, rm)
	}
	return rooms, rows.Err()
}

// Update rewrites the room's descriptive fields. Occupancy is not touched
// here; it only flips inside booking transitions.
func (r *RoomRepository) Update(ctx context.Context, rm domain.Room) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE rooms SET name = ?, price_monthly = ?, facilities = ?, images = ?,
		 updated_at = ? WHERE id = ?`,
		rm.Name, rm.PriceMonthly, encodeList(rm.Facilities), encodeList(rm.Images),
		time.Now().UTC().Format(timeFormat), rm.ID,
	)
	if err != nil {
		return fmt.Errorf("updating room: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrRoomNotFound
	}
	return nil
}

func scanRoom(scan func(...any) error) (domain.Room, error) {
	var rm domain.Room
	var facilities, images string
	var occupied int
	var createdAt, updatedAt string

	err := scan(&rm.ID, &rm.PropertyID, &rm.Name, &rm.PriceMonthly,
		&facilities, &images, &occupied, &createdAt, &updatedAt)
	if err != nil {
		return domain.Room{}, err
	}

	rm.Facilities = decodeList(facilities)
	rm.Images = decodeList(images)
	rm.IsOccupied = occupied != 0
	rm.CreatedAt, _ = time.Parse(timeFormat, createdAt)
	rm.UpdatedAt, _ = time.Parse(timeFormat, updatedAt)
	return rm, nil
}
