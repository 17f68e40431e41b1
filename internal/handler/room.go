package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tachbel/hostel-management/internal/model"
	"github.com/tachbel/hostel-management/internal/repository"
)

// RoomHandler serves the room CRUD surface.  Occupancy and availability
// never appear in request bodies; they only change through bookings.
type RoomHandler struct {
	RoomRepo    *repository.RoomRepo
	BookingRepo *repository.BookingRepo
}

// NewRoomHandler constructs a RoomHandler with the provided repositories.
func NewRoomHandler(roomRepo *repository.RoomRepo, bookingRepo *repository.BookingRepo) *RoomHandler {
	if roomRepo == nil || bookingRepo == nil {
		panic("nil repository passed to NewRoomHandler")
	}
	return &RoomHandler{RoomRepo: roomRepo, BookingRepo: bookingRepo}
}

// roomResponse is the wire shape of a room.
type roomResponse struct {
	ID               uint64 `json:"id"`
	RoomNumber       string `json:"room_number"`
	Capacity         uint32 `json:"capacity"`
	CurrentOccupancy uint32 `json:"current_occupancy"`
	Price            uint32 `json:"price"`
	IsAvailable      bool   `json:"is_available"`
}

func toRoomResponse(r *model.Room) roomResponse {
	return roomResponse{
		ID:               r.ID,
		RoomNumber:       r.RoomNumber,
		Capacity:         r.Capacity,
		CurrentOccupancy: r.CurrentOccupancy,
		Price:            r.Price,
		IsAvailable:      r.IsAvailable,
	}
}

// Create handles POST /v1/rooms.  Capacity must be positive and the room
// number unique; occupancy starts at zero with the room available.
func (h *RoomHandler) Create(c echo.Context) error {
	var body struct {
		RoomNumber string  `json:"room_number"`
		Capacity   *uint32 `json:"capacity"`
		Price      *uint32 `json:"price"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.RoomNumber = strings.TrimSpace(body.RoomNumber)
	if body.RoomNumber == "" || body.Capacity == nil || *body.Capacity == 0 || body.Price == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_number, a positive capacity and price are required"})
	}
	room := &model.Room{
		RoomNumber: body.RoomNumber,
		Capacity:   *body.Capacity,
		Price:      *body.Price,
	}
	if err := h.RoomRepo.Create(c.Request().Context(), room); err != nil {
		if errors.Is(err, repository.ErrDuplicateRoomNumber) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "a room with this number already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create room"})
	}
	return c.JSON(http.StatusCreated, toRoomResponse(room))
}

// List handles GET /v1/rooms.  The optional query parameter
// ?available=true narrows the list to rooms with a free bed, which the
// booking flow uses to offer candidate rooms.
func (h *RoomHandler) List(c echo.Context) error {
	availableOnly := strings.EqualFold(c.QueryParam("available"), "true")
	rooms, err := h.RoomRepo.List(c.Request().Context(), availableOnly)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]roomResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, toRoomResponse(r))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /v1/rooms/:id.  The detail view includes the room's
// bookings with student names resolved.
func (h *RoomHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	room, err := h.RoomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	bookings, err := h.BookingRepo.ListByRoom(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"room":     toRoomResponse(room),
		"bookings": bookings,
	})
}

// Update handles PATCH /v1/rooms/:id.  Number, capacity and price are the
// only mutable fields; a renumber re-checks uniqueness.
func (h *RoomHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	cur, err := h.RoomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	var body struct {
		RoomNumber *string `json:"room_number"`
		Capacity   *uint32 `json:"capacity"`
		Price      *uint32 `json:"price"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.RoomNumber != nil && strings.TrimSpace(*body.RoomNumber) != "" {
		cur.RoomNumber = strings.TrimSpace(*body.RoomNumber)
	}
	if body.Capacity != nil {
		if *body.Capacity == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "capacity must be greater than zero"})
		}
		cur.Capacity = *body.Capacity
	}
	if body.Price != nil {
		cur.Price = *body.Price
	}
	if err := h.RoomRepo.Update(ctx, cur); err != nil {
		if errors.Is(err, repository.ErrDuplicateRoomNumber) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "a room with this number already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update room"})
	}
	// Re-read so the response reflects the re-derived availability.
	updated, err := h.RoomRepo.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toRoomResponse(updated))
}

// Delete handles DELETE /v1/rooms/:id.  Dependent bookings are
// cascade-deleted by the store.
func (h *RoomHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.RoomRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
