package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tachbel/hostel-management/internal/model"
)

// ErrRoomNotFound is returned when a room lookup fails.
var ErrRoomNotFound = errors.New("room not found")

// RoomRepo provides CRUD operations for rooms plus the occupancy mutations
// triggered by booking creation and cancellation.  The occupancy mutations
// run inside the caller's transaction so a booking write and its occupancy
// change commit or fail together.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the given DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// DB exposes the underlying handle for transaction management by handlers.
func (r *RoomRepo) DB() *sql.DB { return r.db }

// Create inserts a new room with zero occupancy and availability derived
// from capacity.  Room numbers are unique; ErrDuplicateRoomNumber is
// returned without inserting when the number is taken.
func (r *RoomRepo) Create(ctx context.Context, room *model.Room) error {
	taken, err := r.NumberExists(ctx, room.RoomNumber, 0)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateRoomNumber
	}
	const q = `INSERT INTO rooms (room_number, capacity, price) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, room.RoomNumber, room.Capacity, room.Price)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	room.ID = uint64(id)
	room.CurrentOccupancy = 0
	room.IsAvailable = true
	return nil
}

// NumberExists reports whether another room already uses the given number.
func (r *RoomRepo) NumberExists(ctx context.Context, number string, excludeID uint64) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM rooms WHERE room_number = ? AND id <> ?)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, number, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// GetByID retrieves a room by ID, returning ErrRoomNotFound when no row
// matches.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	const q = `SELECT id, room_number, capacity, current_occupancy, price, is_available FROM rooms WHERE id = ?`
	var room model.Room
	err := r.db.QueryRowContext(ctx, q, id).Scan(&room.ID, &room.RoomNumber, &room.Capacity, &room.CurrentOccupancy, &room.Price, &room.IsAvailable)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

// List returns rooms ordered by ID.  When availableOnly is true only rooms
// with a free bed are returned, matching the booking flow which offers the
// operator available rooms.
func (r *RoomRepo) List(ctx context.Context, availableOnly bool) ([]*model.Room, error) {
	q := `SELECT id, room_number, capacity, current_occupancy, price, is_available FROM rooms ORDER BY id`
	if availableOnly {
		q = `SELECT id, room_number, capacity, current_occupancy, price, is_available FROM rooms WHERE is_available = 1 ORDER BY id`
	}
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Room, 0)
	for rows.Next() {
		room := new(model.Room)
		if err := rows.Scan(&room.ID, &room.RoomNumber, &room.Capacity, &room.CurrentOccupancy, &room.Price, &room.IsAvailable); err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	return out, rows.Err()
}

// Update writes the room's operator-mutable fields (number, capacity,
// price).  Occupancy and availability are excluded: they change only via
// the Tx occupancy mutations below.  Room number uniqueness is re-checked.
func (r *RoomRepo) Update(ctx context.Context, room *model.Room) error {
	taken, err := r.NumberExists(ctx, room.RoomNumber, room.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateRoomNumber
	}
	// Capacity changes may strand occupancy above the new capacity, so
	// availability is re-derived in the same statement.
	const q = `UPDATE rooms SET room_number = ?, capacity = ?, price = ?, is_available = (current_occupancy < ?) WHERE id = ?`
	_, err = r.db.ExecContext(ctx, q, room.RoomNumber, room.Capacity, room.Price, room.Capacity, room.ID)
	return err
}

// Delete removes a room and, through the cascade, its bookings.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM rooms WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// IncrementOccupancyTx adds one occupant to a room within the caller's
// transaction.  The WHERE clause refuses the write when the room is already
// full, so the occupancy invariant cannot be violated under any caller.
// MySQL evaluates SET assignments left to right, so the availability
// expression sees the incremented occupancy.
func (r *RoomRepo) IncrementOccupancyTx(ctx context.Context, tx *sql.Tx, roomID uint64) error {
	const q = `UPDATE rooms SET current_occupancy = current_occupancy + 1, is_available = (current_occupancy < capacity) WHERE id = ? AND current_occupancy < capacity`
	res, err := tx.ExecContext(ctx, q, roomID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish a missing room from a full one.
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM rooms WHERE id = ?)`, roomID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrRoomNotFound
		}
		return ErrRoomFull
	}
	return nil
}

// DecrementOccupancyTx removes one occupant within the caller's
// transaction.  The decrement saturates at zero: a would-be negative count
// is reported as ErrOccupancyUnderflow and nothing is written.
// Availability is re-derived from the decremented occupancy rather than
// set to true, which keeps the invariant when a capacity shrink left the
// room overfull.
func (r *RoomRepo) DecrementOccupancyTx(ctx context.Context, tx *sql.Tx, roomID uint64) error {
	const q = `UPDATE rooms SET current_occupancy = current_occupancy - 1, is_available = (current_occupancy < capacity) WHERE id = ? AND current_occupancy > 0`
	res, err := tx.ExecContext(ctx, q, roomID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM rooms WHERE id = ?)`, roomID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrRoomNotFound
		}
		return ErrOccupancyUnderflow
	}
	return nil
}
