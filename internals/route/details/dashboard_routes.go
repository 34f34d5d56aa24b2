// file: internals/route/details/dashboard_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dashboardController "nitihub_backend/internals/features/dashboard/controller"
)

func DashboardRoutes(r fiber.Router, db *gorm.DB) {
	h := dashboardController.NewDashboardHandler(db)
	r.Get("/dashboard/summary", h.Summary)
	r.Get("/dashboard/revenue", h.Revenue)
	r.Get("/dashboard/bill-status", h.BillStatus)
	r.Get("/dashboard/upcoming", h.Upcoming)
	r.Get("/dashboard/efficiency", h.Efficiency)
	r.Get("/dashboard/action-items", h.ActionItems)
}
