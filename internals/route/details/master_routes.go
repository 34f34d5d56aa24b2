// file: internals/route/details/master_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	masterController "nitihub_backend/internals/features/masters/controller"
)

func MasterRoutes(r fiber.Router, _ *gorm.DB) {
	h := masterController.NewMasterHandler()
	r.Get("/masters/banks", h.Banks)
	r.Get("/masters/customers", h.Customers)
}
