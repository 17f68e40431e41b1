package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tachbel/hostel-management/internal/model"
)

// ErrBookingNotFound is returned when a booking lookup fails.
var ErrBookingNotFound = errors.New("booking not found")

// BookingRepo provides operations for bookings.  Creation and status
// changes are exposed as ...Tx variants because they always pair with an
// occupancy mutation on the room; the handler owns the transaction and
// must commit or roll back both writes as one unit.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo constructs a BookingRepo with the given DB handle.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle for transaction management by handlers.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// CreateTx inserts a new booking within the scope of an existing
// transaction and populates the generated ID on the provided record.  The
// caller must commit or roll back the transaction.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings (student_id, room_id, booking_date, check_in_date, check_out_date, status) VALUES (?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		b.StudentID, b.RoomID,
		b.BookingDate.Format("2006-01-02"),
		b.CheckInDate.Format("2006-01-02"),
		b.CheckOutDate.Format("2006-01-02"),
		b.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// GetForUpdateTx loads a booking with a row lock inside the caller's
// transaction so the status check and the subsequent writes see a
// consistent row.  Returns ErrBookingNotFound when no row matches.
func (r *BookingRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Booking, error) {
	const q = `SELECT id, student_id, room_id, booking_date, check_in_date, check_out_date, status FROM bookings WHERE id = ? FOR UPDATE`
	var b model.Booking
	err := tx.QueryRowContext(ctx, q, id).Scan(&b.ID, &b.StudentID, &b.RoomID, &b.BookingDate, &b.CheckInDate, &b.CheckOutDate, &b.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

// UpdateStatusTx writes a booking's status within the caller's transaction.
func (r *BookingRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error {
	const q = `UPDATE bookings SET status = ? WHERE id = ?`
	_, err := tx.ExecContext(ctx, q, status, id)
	return err
}

// Detail is a booking joined with its student and room for display.
// Dangling references render as "N/A" rather than failing: the join is a
// LEFT JOIN and missing names are coalesced.
type Detail struct {
	ID           uint64 `json:"id"`
	StudentName  string `json:"student_name"`
	RoomNumber   string `json:"room_number"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	Status       string `json:"status"`
}

// List returns all bookings joined with student and room names, ordered by
// booking ID.
func (r *BookingRepo) List(ctx context.Context) ([]Detail, error) {
	const q = `SELECT b.id, COALESCE(s.name, 'N/A'), COALESCE(rm.room_number, 'N/A'), b.check_in_date, b.check_out_date, b.status FROM bookings b LEFT JOIN students s ON s.id = b.student_id LEFT JOIN rooms rm ON rm.id = b.room_id ORDER BY b.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Detail, 0)
	for rows.Next() {
		var d Detail
		var checkIn, checkOut sql.NullTime
		if err := rows.Scan(&d.ID, &d.StudentName, &d.RoomNumber, &checkIn, &checkOut, &d.Status); err != nil {
			return nil, err
		}
		if checkIn.Valid {
			d.CheckInDate = checkIn.Time.Format("2006-01-02")
		}
		if checkOut.Valid {
			d.CheckOutDate = checkOut.Time.Format("2006-01-02")
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// StudentBooking is the compact view of a booking shown on a student's
// detail page.
type StudentBooking struct {
	ID         uint64 `json:"id"`
	RoomNumber string `json:"room_number"`
	Status     string `json:"status"`
}

// ListByStudent returns the bookings belonging to one student with the
// room number resolved ("N/A" when the room was deleted).
func (r *BookingRepo) ListByStudent(ctx context.Context, studentID uint64) ([]StudentBooking, error) {
	const q = `SELECT b.id, COALESCE(rm.room_number, 'N/A'), b.status FROM bookings b LEFT JOIN rooms rm ON rm.id = b.room_id WHERE b.student_id = ? ORDER BY b.id`
	rows, err := r.db.QueryContext(ctx, q, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]StudentBooking, 0)
	for rows.Next() {
		var sb StudentBooking
		if err := rows.Scan(&sb.ID, &sb.RoomNumber, &sb.Status); err != nil {
			return nil, err
		}
		out = append(out, sb)
	}
	return out, rows.Err()
}

// RoomBooking is the compact view of a booking shown on a room's detail
// page.
type RoomBooking struct {
	ID          uint64 `json:"id"`
	StudentName string `json:"student_name"`
	Status      string `json:"status"`
}

// ListByRoom returns the bookings for one room with the student name
// resolved ("N/A" when the student was deleted).
func (r *BookingRepo) ListByRoom(ctx context.Context, roomID uint64) ([]RoomBooking, error) {
	const q = `SELECT b.id, COALESCE(s.name, 'N/A'), b.status FROM bookings b LEFT JOIN students s ON s.id = b.student_id WHERE b.room_id = ? ORDER BY b.id`
	rows, err := r.db.QueryContext(ctx, q, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]RoomBooking, 0)
	for rows.Next() {
		var rb RoomBooking
		if err := rows.Scan(&rb.ID, &rb.StudentName, &rb.Status); err != nil {
			return nil, err
		}
		out = append(out, rb)
	}
	return out, rows.Err()
}
