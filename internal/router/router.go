package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/tachbel/hostel-management/internal/handler" // import the handlers that implement the operations layer
)

// Handlers bundles every handler the router needs.  main constructs the
// handlers with their repositories and passes them in.
type Handlers struct {
	Student   *handler.StudentHandler
	Room      *handler.RoomHandler
	Manager   *handler.ManagerHandler
	Booking   *handler.BookingHandler
	Complaint *handler.ComplaintHandler
	Report    *handler.ReportHandler
	Admin     *handler.AdminHandler
}

// RegisterRoutes registers the health check and the full /v1 command
// surface on the provided Echo instance.
func RegisterRoutes(e *echo.Echo, h Handlers) {
	// The health endpoint can be used by load balancers or monitoring
	// systems to verify that the service is up and running.
	e.GET("/healthz", handler.Health)

	v1 := e.Group("/v1")

	students := v1.Group("/students")
	students.POST("", h.Student.Create)
	students.GET("", h.Student.List)
	students.GET("/:id", h.Student.Get)
	students.PATCH("/:id", h.Student.Update)
	students.DELETE("/:id", h.Student.Delete)

	rooms := v1.Group("/rooms")
	rooms.POST("", h.Room.Create)
	rooms.GET("", h.Room.List)
	rooms.GET("/:id", h.Room.Get)
	rooms.PATCH("/:id", h.Room.Update)
	rooms.DELETE("/:id", h.Room.Delete)

	managers := v1.Group("/managers")
	managers.POST("", h.Manager.Create)
	managers.GET("", h.Manager.List)
	managers.GET("/:id", h.Manager.Get)
	managers.PATCH("/:id", h.Manager.Update)
	managers.DELETE("/:id", h.Manager.Delete)

	bookings := v1.Group("/bookings")
	bookings.POST("", h.Booking.Create)
	bookings.GET("", h.Booking.List)
	// Cancellation is a state transition rather than a delete: the booking
	// row survives with status=cancelled.
	bookings.POST("/:id/cancel", h.Booking.Cancel)

	complaints := v1.Group("/complaints")
	complaints.POST("", h.Complaint.Create)
	complaints.GET("", h.Complaint.List)
	complaints.PATCH("/:id/status", h.Complaint.UpdateStatus)

	reports := v1.Group("/reports")
	reports.GET("/occupancy", h.Report.Occupancy)
	reports.GET("/complaints", h.Report.Complaints)
	reports.GET("/financial", h.Report.Financial)

	v1.POST("/admin/initdb", h.Admin.InitDB)
}
