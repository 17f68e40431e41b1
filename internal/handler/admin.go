package handler

import (
	"database/sql"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tachbel/hostel-management/internal/database"
)

// AdminHandler exposes store initialization.  The same routine runs at
// startup; the endpoint exists so an operator can re-run it after wiping
// the database.  Both steps are idempotent: tables are created only when
// absent and sample data is seeded only into an empty store.
type AdminHandler struct {
	DB *sql.DB
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(db *sql.DB) *AdminHandler {
	if db == nil {
		panic("nil db passed to NewAdminHandler")
	}
	return &AdminHandler{DB: db}
}

// InitDB handles POST /v1/admin/initdb.
func (h *AdminHandler) InitDB(c echo.Context) error {
	ctx := c.Request().Context()
	if err := database.InitSchema(ctx, h.DB); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create tables"})
	}
	seeded, err := database.Seed(ctx, h.DB)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to seed sample data"})
	}
	return c.JSON(http.StatusOK, echo.Map{"initialized": true, "seeded": seeded})
}
