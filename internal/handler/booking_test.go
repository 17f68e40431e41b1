package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tachbel/hostel-management/internal/model"
	"github.com/tachbel/hostel-management/internal/repository"
)

func newBookingHandler(t *testing.T) (sqlmock.Sqlmock, *BookingHandler, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	h := NewBookingHandler(
		repository.NewBookingRepo(db),
		repository.NewStudentRepo(db),
		repository.NewRoomRepo(db),
		nil,
	)
	return mock, h, func() { _ = db.Close() }
}

func postJSON(target, body string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req, httptest.NewRecorder()
}

func expectStudentRow(mock sqlmock.Sqlmock, id int64, name string) {
	mock.ExpectQuery(`SELECT id, name, email, phone, registration_date FROM students WHERE id = ?`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "registration_date"}).
			AddRow(id, name, "wanjiku@uni.ac.ke", "0712345678", time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)))
}

func expectRoomRow(mock sqlmock.Sqlmock, id int64, number string, capacity, occupied int) {
	mock.ExpectQuery(`SELECT id, room_number, capacity, current_occupancy, price, is_available FROM rooms WHERE id = ?`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_number", "capacity", "current_occupancy", "price", "is_available"}).
			AddRow(id, number, capacity, occupied, 15000, occupied < capacity))
}

func TestBookingCreate(t *testing.T) {
	mock, h, done := newBookingHandler(t)
	defer done()

	expectStudentRow(mock, 1, "Wanjiku Mwangi")
	expectRoomRow(mock, 2, "G12", 4, 1)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE rooms SET current_occupancy = current_occupancy + 1, is_available = (current_occupancy < capacity) WHERE id = ? AND current_occupancy < capacity`).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO bookings (student_id, room_id, booking_date, check_in_date, check_out_date, status) VALUES (?, ?, ?, ?, ?, ?)`).
		WithArgs(int64(1), int64(2), sqlmock.AnyArg(), "2026-09-01", "2026-12-15", model.BookingConfirmed).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	e := echo.New()
	req, rec := postJSON("/v1/bookings", `{"student_id":1,"room_id":2,"check_in_date":"2026-09-01","check_out_date":"2026-12-15"}`)
	require.NoError(t, h.Create(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":7`)
	assert.Contains(t, rec.Body.String(), `"status":"confirmed"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Booking a full room must refuse with 409 and leave nothing committed.
func TestBookingCreateRoomFull(t *testing.T) {
	mock, h, done := newBookingHandler(t)
	defer done()

	expectStudentRow(mock, 1, "Wanjiku Mwangi")
	expectRoomRow(mock, 2, "T7", 2, 2)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE rooms SET current_occupancy = current_occupancy + 1, is_available = (current_occupancy < capacity) WHERE id = ? AND current_occupancy < capacity`).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT EXISTS(SELECT 1 FROM rooms WHERE id = ?)`).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	e := echo.New()
	req, rec := postJSON("/v1/bookings", `{"student_id":1,"room_id":2,"check_in_date":"2026-09-01","check_out_date":"2026-12-15"}`)
	require.NoError(t, h.Create(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "full capacity")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingCreateBadDate(t *testing.T) {
	_, h, done := newBookingHandler(t)
	defer done()

	e := echo.New()
	req, rec := postJSON("/v1/bookings", `{"student_id":1,"room_id":2,"check_in_date":"01/09/2026","check_out_date":"2026-12-15"}`)
	require.NoError(t, h.Create(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookingCancel(t *testing.T) {
	mock, h, done := newBookingHandler(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, student_id, room_id, booking_date, check_in_date, check_out_date, status FROM bookings WHERE id = ? FOR UPDATE`).
		WithArgs(int64(7)).
		WillReturnRows(bookingRow(7, 1, 2, model.BookingConfirmed))
	mock.ExpectExec(`UPDATE bookings SET status = ? WHERE id = ?`).
		WithArgs(model.BookingCancelled, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE rooms SET current_occupancy = current_occupancy - 1, is_available = (current_occupancy < capacity) WHERE id = ? AND current_occupancy > 0`).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	e := echo.New()
	req, rec := postJSON("/v1/bookings/7/cancel", "")
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")
	require.NoError(t, h.Cancel(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"cancelled"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A second cancel finds the booking already cancelled and must not touch
// the room's occupancy.
func TestBookingCancelTwice(t *testing.T) {
	mock, h, done := newBookingHandler(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, student_id, room_id, booking_date, check_in_date, check_out_date, status FROM bookings WHERE id = ? FOR UPDATE`).
		WithArgs(int64(7)).
		WillReturnRows(bookingRow(7, 1, 2, model.BookingCancelled))
	mock.ExpectRollback()

	e := echo.New()
	req, rec := postJSON("/v1/bookings/7/cancel", "")
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")
	require.NoError(t, h.Cancel(c))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already cancelled")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func bookingRow(id, studentID, roomID int64, status string) *sqlmock.Rows {
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{"id", "student_id", "room_id", "booking_date", "check_in_date", "check_out_date", "status"}).
		AddRow(id, studentID, roomID, day, day, day.AddDate(0, 3, 0), status)
}
