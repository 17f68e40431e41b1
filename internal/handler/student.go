package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tachbel/hostel-management/internal/model"
	"github.com/tachbel/hostel-management/internal/repository"
	"github.com/tachbel/hostel-management/internal/validate"
)

// StudentHandler serves the student CRUD surface.  The booking repository
// is needed for the detail view, which lists a student's bookings.
type StudentHandler struct {
	StudentRepo *repository.StudentRepo
	BookingRepo *repository.BookingRepo
}

// NewStudentHandler constructs a StudentHandler with the provided
// repositories.  All dependencies must be non-nil.
func NewStudentHandler(studentRepo *repository.StudentRepo, bookingRepo *repository.BookingRepo) *StudentHandler {
	if studentRepo == nil || bookingRepo == nil {
		panic("nil repository passed to NewStudentHandler")
	}
	return &StudentHandler{StudentRepo: studentRepo, BookingRepo: bookingRepo}
}

// studentResponse is the wire shape of a student.
type studentResponse struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	RegistrationDate string `json:"registration_date"`
}

func toStudentResponse(s *model.Student) studentResponse {
	return studentResponse{
		ID:               s.ID,
		Name:             s.Name,
		Email:            s.Email,
		Phone:            s.Phone,
		RegistrationDate: s.RegistrationDate.Format("2006-01-02"),
	}
}

// Create handles POST /v1/students.  Name, email and phone are required;
// email and phone must pass format validation and the email must be free.
func (h *StudentHandler) Create(c echo.Context) error {
	var body struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if !validate.Email(body.Email) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email format"})
	}
	if !validate.Phone(body.Phone) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid phone number, must be 07XXXXXXXX"})
	}
	s := &model.Student{
		Name:             body.Name,
		Email:            body.Email,
		Phone:            body.Phone,
		RegistrationDate: time.Now().UTC(),
	}
	if err := h.StudentRepo.Create(c.Request().Context(), s); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "a student with this email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create student"})
	}
	return c.JSON(http.StatusCreated, toStudentResponse(s))
}

// List handles GET /v1/students and returns all students in insertion
// order.
func (h *StudentHandler) List(c echo.Context) error {
	students, err := h.StudentRepo.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]studentResponse, 0, len(students))
	for _, s := range students {
		out = append(out, toStudentResponse(s))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /v1/students/:id.  The detail view includes the
// student's bookings with room numbers resolved.
func (h *StudentHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	s, err := h.StudentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "student not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	bookings, err := h.BookingRepo.ListByStudent(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"student":  toStudentResponse(s),
		"bookings": bookings,
	})
}

// Update handles PATCH /v1/students/:id.  Only provided fields change;
// email and phone are re-validated and the email must remain unique.
func (h *StudentHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	cur, err := h.StudentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "student not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	var body struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
		Phone *string `json:"phone"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Name != nil && strings.TrimSpace(*body.Name) != "" {
		cur.Name = strings.TrimSpace(*body.Name)
	}
	if body.Email != nil {
		if !validate.Email(*body.Email) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email format"})
		}
		cur.Email = *body.Email
	}
	if body.Phone != nil {
		if !validate.Phone(*body.Phone) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid phone number, must be 07XXXXXXXX"})
		}
		cur.Phone = *body.Phone
	}
	if err := h.StudentRepo.Update(ctx, cur); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "a student with this email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update student"})
	}
	return c.JSON(http.StatusOK, toStudentResponse(cur))
}

// Delete handles DELETE /v1/students/:id.  Dependent bookings and
// complaints are cascade-deleted by the store.
func (h *StudentHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.StudentRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "student not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
