package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tachbel/hostel-management/internal/model"
)

func newBookingMock(t *testing.T) (sqlmock.Sqlmock, *BookingRepo, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	return mock, NewBookingRepo(db), func() { _ = db.Close() }
}

func TestBookingCreateTx(t *testing.T) {
	mock, repo, done := newBookingMock(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO bookings (student_id, room_id, booking_date, check_in_date, check_out_date, status) VALUES (?, ?, ?, ?, ?, ?)`).
		WithArgs(int64(1), int64(2), "2026-08-28", "2026-09-01", "2026-12-15", model.BookingConfirmed).
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectCommit()

	tx, err := repo.DB().BeginTx(context.Background(), nil)
	require.NoError(t, err)

	b := &model.Booking{
		StudentID:    1,
		RoomID:       2,
		BookingDate:  time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
		CheckInDate:  time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2026, 12, 15, 0, 0, 0, 0, time.UTC),
		Status:       model.BookingConfirmed,
	}
	require.NoError(t, repo.CreateTx(context.Background(), tx, b))
	require.NoError(t, tx.Commit())

	assert.Equal(t, uint64(5), b.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingGetForUpdateMissing(t *testing.T) {
	mock, repo, done := newBookingMock(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, student_id, room_id, booking_date, check_in_date, check_out_date, status FROM bookings WHERE id = ? FOR UPDATE`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "room_id", "booking_date", "check_in_date", "check_out_date", "status"}))
	mock.ExpectRollback()

	tx, err := repo.DB().BeginTx(context.Background(), nil)
	require.NoError(t, err)
	_, err = repo.GetForUpdateTx(context.Background(), tx, 42)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A booking whose student or room was deleted still lists, with the
// missing name rendered as N/A.
func TestBookingListDanglingReferences(t *testing.T) {
	mock, repo, done := newBookingMock(t)
	defer done()

	checkIn := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 12, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT b.id, COALESCE(s.name, 'N/A'), COALESCE(rm.room_number, 'N/A'), b.check_in_date, b.check_out_date, b.status FROM bookings b LEFT JOIN students s ON s.id = b.student_id LEFT JOIN rooms rm ON rm.id = b.room_id ORDER BY b.id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_name", "room_number", "check_in_date", "check_out_date", "status"}).
			AddRow(1, "Wanjiku Mwangi", "G12", checkIn, checkOut, model.BookingConfirmed).
			AddRow(2, "N/A", "T7", checkIn, checkOut, model.BookingCancelled))

	out, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Wanjiku Mwangi", out[0].StudentName)
	assert.Equal(t, "2026-09-01", out[0].CheckInDate)
	assert.Equal(t, "N/A", out[1].StudentName)
	assert.Equal(t, model.BookingCancelled, out[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingListByStudentEmpty(t *testing.T) {
	mock, repo, done := newBookingMock(t)
	defer done()

	mock.ExpectQuery(`SELECT b.id, COALESCE(rm.room_number, 'N/A'), b.status FROM bookings b LEFT JOIN rooms rm ON rm.id = b.room_id WHERE b.student_id = ? ORDER BY b.id`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_number", "status"}))

	out, err := repo.ListByStudent(context.Background(), 3)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}
