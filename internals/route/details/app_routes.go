// file: internals/route/details/app_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	roomController "nitihub_backend/internals/features/billing/billrooms/controller"
)

// AppRoutes mounts the resident-facing views.
func AppRoutes(r fiber.Router, db *gorm.DB) {
	h := roomController.NewAppBillRoomHandler(db)
	r.Get("/app/bill-rooms/current", h.Current)
	r.Get("/app/bill-rooms/history", h.History)
	r.Get("/app/bill-rooms/arrears", h.Arrears)
}
