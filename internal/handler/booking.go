package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tachbel/hostel-management/internal/model"
	"github.com/tachbel/hostel-management/internal/queue"
	"github.com/tachbel/hostel-management/internal/repository"
	"github.com/tachbel/hostel-management/internal/validate"
)

// EventPublisher sends booking lifecycle events to the message broker.
// Publishing is fire-and-forget: a failure is logged by the publisher and
// never affects the request outcome.  A nil publisher disables events.
type EventPublisher interface {
	PublishBookingConfirmed(ctx context.Context, event queue.BookingConfirmedEvent) error
	PublishBookingCancelled(ctx context.Context, event queue.BookingCancelledEvent) error
}

// BookingHandler serves booking creation, listing and cancellation.  The
// create and cancel paths each pair a booking write with a room occupancy
// mutation inside one transaction, so the occupancy counter and the
// booking status can never drift apart.
type BookingHandler struct {
	BookingRepo *repository.BookingRepo
	StudentRepo *repository.StudentRepo
	RoomRepo    *repository.RoomRepo
	Publisher   EventPublisher
}

// NewBookingHandler constructs a BookingHandler.  The publisher may be nil
// when no broker is configured.
func NewBookingHandler(bookingRepo *repository.BookingRepo, studentRepo *repository.StudentRepo, roomRepo *repository.RoomRepo, publisher EventPublisher) *BookingHandler {
	if bookingRepo == nil || studentRepo == nil || roomRepo == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	return &BookingHandler{
		BookingRepo: bookingRepo,
		StudentRepo: studentRepo,
		RoomRepo:    roomRepo,
		Publisher:   publisher,
	}
}

// Create handles POST /v1/bookings.  The student and room must exist and
// the check-in/check-out dates must be ISO YYYY-MM-DD.  Inserting the
// booking and incrementing the room's occupancy happen in one transaction;
// a full room aborts with 409 and nothing is committed.  Availability is
// offered to callers through GET /v1/rooms?available=true, but the room is
// re-checked here regardless of what the caller saw.
func (h *BookingHandler) Create(c echo.Context) error {
	var body struct {
		StudentID    uint64 `json:"student_id"`
		RoomID       uint64 `json:"room_id"`
		CheckInDate  string `json:"check_in_date"`
		CheckOutDate string `json:"check_out_date"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.StudentID == 0 || body.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "student_id and room_id are required"})
	}
	checkIn, ok := validate.Date(body.CheckInDate)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in_date must be YYYY-MM-DD"})
	}
	checkOut, ok := validate.Date(body.CheckOutDate)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out_date must be YYYY-MM-DD"})
	}

	ctx := c.Request().Context()
	student, err := h.StudentRepo.GetByID(ctx, body.StudentID)
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "student not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	room, err := h.RoomRepo.GetByID(ctx, body.RoomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	booking := &model.Booking{
		StudentID:    student.ID,
		RoomID:       room.ID,
		BookingDate:  time.Now().UTC(),
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Status:       model.BookingConfirmed,
	}

	tx, err := h.BookingRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	// The conditional increment is the capacity gate: it fails without
	// writing when the room is full, and the rollback discards the booking.
	if err := h.RoomRepo.IncrementOccupancyTx(ctx, tx, room.ID); err != nil {
		switch {
		case errors.Is(err, repository.ErrRoomFull):
			return c.JSON(http.StatusConflict, echo.Map{"error": "room is at full capacity"})
		case errors.Is(err, repository.ErrRoomNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "transaction failed"})
		}
	}
	if err := h.BookingRepo.CreateTx(ctx, tx, booking); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "transaction failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "transaction failed"})
	}
	committed = true

	if h.Publisher != nil {
		_ = h.Publisher.PublishBookingConfirmed(ctx, queue.BookingConfirmedEvent{
			BookingID:    booking.ID,
			StudentID:    student.ID,
			StudentName:  student.Name,
			RoomID:       room.ID,
			RoomNumber:   room.RoomNumber,
			CheckInDate:  checkIn.Format("2006-01-02"),
			CheckOutDate: checkOut.Format("2006-01-02"),
			BookedAt:     booking.BookingDate.Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"id":             booking.ID,
		"student_id":     booking.StudentID,
		"room_id":        booking.RoomID,
		"booking_date":   booking.BookingDate.Format("2006-01-02"),
		"check_in_date":  checkIn.Format("2006-01-02"),
		"check_out_date": checkOut.Format("2006-01-02"),
		"status":         booking.Status,
	})
}

// List handles GET /v1/bookings.  Bookings are joined with student and
// room for display; deleted references render as "N/A".
func (h *BookingHandler) List(c echo.Context) error {
	bookings, err := h.BookingRepo.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, bookings)
}

// Cancel handles POST /v1/bookings/:id/cancel.  The status change and the
// occupancy decrement commit together.  Cancelling an already-cancelled
// booking is reported as 409 and leaves the store untouched, as does a
// decrement that would drive the occupancy counter negative.
func (h *BookingHandler) Cancel(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()

	tx, err := h.BookingRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	booking, err := h.BookingRepo.GetForUpdateTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if booking.Status == model.BookingCancelled {
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking already cancelled"})
	}
	if err := h.BookingRepo.UpdateStatusTx(ctx, tx, id, model.BookingCancelled); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "transaction failed"})
	}
	if err := h.RoomRepo.DecrementOccupancyTx(ctx, tx, booking.RoomID); err != nil {
		switch {
		case errors.Is(err, repository.ErrOccupancyUnderflow):
			return c.JSON(http.StatusConflict, echo.Map{"error": "room occupancy is already zero"})
		case errors.Is(err, repository.ErrRoomNotFound):
			// The room was deleted out from under the booking; the status
			// change alone is still a consistent outcome.
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "transaction failed"})
		}
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "transaction failed"})
	}
	committed = true

	if h.Publisher != nil {
		roomNumber := "N/A"
		if room, err := h.RoomRepo.GetByID(ctx, booking.RoomID); err == nil {
			roomNumber = room.RoomNumber
		}
		_ = h.Publisher.PublishBookingCancelled(ctx, queue.BookingCancelledEvent{
			BookingID:   booking.ID,
			StudentID:   booking.StudentID,
			RoomID:      booking.RoomID,
			RoomNumber:  roomNumber,
			CancelledAt: time.Now().UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"id": booking.ID, "status": model.BookingCancelled})
}
