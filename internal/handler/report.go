package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tachbel/hostel-management/internal/repository"
)

// ReportHandler serves the derived report views.  Reports carry no state;
// every request recomputes from the store.
type ReportHandler struct {
	ReportRepo    *repository.ReportRepo
	ComplaintRepo *repository.ComplaintRepo
}

// NewReportHandler constructs a ReportHandler.
func NewReportHandler(reportRepo *repository.ReportRepo, complaintRepo *repository.ComplaintRepo) *ReportHandler {
	if reportRepo == nil || complaintRepo == nil {
		panic("nil repository passed to NewReportHandler")
	}
	return &ReportHandler{ReportRepo: reportRepo, ComplaintRepo: complaintRepo}
}

// Occupancy handles GET /v1/reports/occupancy: per-room occupancy with the
// percentage formatted to one decimal place.
func (h *ReportHandler) Occupancy(c echo.Context) error {
	rows, err := h.ReportRepo.Occupancy(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": rows})
}

// Complaints handles GET /v1/reports/complaints: counts per status with
// missing buckets defaulting to zero, plus the detailed rows.
func (h *ReportHandler) Complaints(c echo.Context) error {
	ctx := c.Request().Context()
	counts, err := h.ComplaintRepo.CountByStatus(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	total := 0
	for _, n := range counts {
		total += n
	}
	details, err := h.ComplaintRepo.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"counts":     counts,
		"total":      total,
		"complaints": details,
	})
}

// Financial handles GET /v1/reports/financial: total revenue and overall
// occupancy rate with per-room revenue lines.  An empty store yields
// defined zeros.
func (h *ReportHandler) Financial(c echo.Context) error {
	summary, err := h.ReportRepo.Financial(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, summary)
}
