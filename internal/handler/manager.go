package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tachbel/hostel-management/internal/model"
	"github.com/tachbel/hostel-management/internal/repository"
	"github.com/tachbel/hostel-management/internal/validate"
)

// ManagerHandler serves the manager CRUD surface.  It mirrors the student
// handler; a manager's dependents are complaints rather than bookings.
type ManagerHandler struct {
	ManagerRepo *repository.ManagerRepo
}

// NewManagerHandler constructs a ManagerHandler.
func NewManagerHandler(managerRepo *repository.ManagerRepo) *ManagerHandler {
	if managerRepo == nil {
		panic("nil repository passed to NewManagerHandler")
	}
	return &ManagerHandler{ManagerRepo: managerRepo}
}

// Create handles POST /v1/managers.
func (h *ManagerHandler) Create(c echo.Context) error {
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
	m := &model.Manager{Name: body.Name, Email: body.Email, Phone: body.Phone}
	if err := h.ManagerRepo.Create(c.Request().Context(), m); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "a manager with this email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create manager"})
	}
	return c.JSON(http.StatusCreated, m)
}

// List handles GET /v1/managers.
func (h *ManagerHandler) List(c echo.Context) error {
	managers, err := h.ManagerRepo.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, managers)
}

// Get handles GET /v1/managers/:id.
func (h *ManagerHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	m, err := h.ManagerRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrManagerNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "manager not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, m)
}

// Update handles PATCH /v1/managers/:id with the same per-field semantics
// as the student update.
func (h *ManagerHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	cur, err := h.ManagerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrManagerNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "manager not found"})
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
	if err := h.ManagerRepo.Update(ctx, cur); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "a manager with this email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update manager"})
	}
	return c.JSON(http.StatusOK, cur)
}

// Delete handles DELETE /v1/managers/:id.  Dependent complaints are
// cascade-deleted by the store.
func (h *ManagerHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.ManagerRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrManagerNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "manager not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
