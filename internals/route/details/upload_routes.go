// file: internals/route/details/upload_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	uploadController "nitihub_backend/internals/features/uploads/controller"
	uploadSvc "nitihub_backend/internals/features/uploads/service"
)

func UploadRoutes(r fiber.Router, db *gorm.DB, storage uploadSvc.Storage) {
	h := uploadController.NewUploadHandler(db, storage)
	r.Post("/uploads", h.Upload)
	r.Get("/uploads/:key", h.ListByKey)
	r.Delete("/uploads/:key/:id", h.Delete)
}
