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

// ComplaintHandler serves complaint filing, listing and status updates.
type ComplaintHandler struct {
	ComplaintRepo *repository.ComplaintRepo
	StudentRepo   *repository.StudentRepo
	ManagerRepo   *repository.ManagerRepo
}

// NewComplaintHandler constructs a ComplaintHandler with the provided
// repositories.  All dependencies must be non-nil.
func NewComplaintHandler(complaintRepo *repository.ComplaintRepo, studentRepo *repository.StudentRepo, managerRepo *repository.ManagerRepo) *ComplaintHandler {
	if complaintRepo == nil || studentRepo == nil || managerRepo == nil {
		panic("nil repository passed to NewComplaintHandler")
	}
	return &ComplaintHandler{ComplaintRepo: complaintRepo, StudentRepo: studentRepo, ManagerRepo: managerRepo}
}

// Create handles POST /v1/complaints.  The student and manager must exist;
// the complaint starts open, dated today.
func (h *ComplaintHandler) Create(c echo.Context) error {
	var body struct {
		StudentID   uint64 `json:"student_id"`
		ManagerID   uint64 `json:"manager_id"`
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.Title = strings.TrimSpace(body.Title)
	body.Description = strings.TrimSpace(body.Description)
	if body.StudentID == 0 || body.ManagerID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "student_id and manager_id are required"})
	}
	if body.Title == "" || body.Description == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and description are required"})
	}

	ctx := c.Request().Context()
	if _, err := h.StudentRepo.GetByID(ctx, body.StudentID); err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "student not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if _, err := h.ManagerRepo.GetByID(ctx, body.ManagerID); err != nil {
		if errors.Is(err, repository.ErrManagerNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "manager not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	complaint := &model.Complaint{
		StudentID:   body.StudentID,
		ManagerID:   body.ManagerID,
		Title:       body.Title,
		Description: body.Description,
		Date:        time.Now().UTC(),
		Status:      model.ComplaintOpen,
	}
	if err := h.ComplaintRepo.Create(ctx, complaint); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not file complaint"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":          complaint.ID,
		"student_id":  complaint.StudentID,
		"manager_id":  complaint.ManagerID,
		"title":       complaint.Title,
		"description": complaint.Description,
		"date":        complaint.Date.Format("2006-01-02"),
		"status":      complaint.Status,
	})
}

// List handles GET /v1/complaints.  Complaints are joined with student and
// manager names; deleted references render as "N/A".
func (h *ComplaintHandler) List(c echo.Context) error {
	complaints, err := h.ComplaintRepo.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, complaints)
}

// UpdateStatus handles PATCH /v1/complaints/:id/status.  The new status
// must be one of open, in-progress or resolved; any of the three may
// replace any other.
func (h *ComplaintHandler) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if !validate.ComplaintStatus(body.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be one of open, in-progress, resolved"})
	}
	if err := h.ComplaintRepo.UpdateStatus(c.Request().Context(), id, body.Status); err != nil {
		if errors.Is(err, repository.ErrComplaintNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "complaint not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update complaint"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": body.Status})
}
