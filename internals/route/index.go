// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	uploadSvc "nitihub_backend/internals/features/uploads/service"
	authMiddleware "nitihub_backend/internals/middlewares/auth"
	routeDetails "nitihub_backend/internals/route/details"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	storage, err := uploadSvc.NewStorageFromEnv()
	if err != nil {
		log.Fatalf("storage init: %v", err)
	}

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api")
	routeDetails.AuthPublicRoutes(public, db)

	// ===================== PROTECTED (bearer token) =====================
	log.Println("[INFO] Setting up PROTECTED group...")
	protected := app.Group("/api", authMiddleware.AuthMiddleware())

	log.Println("[INFO] Mounting Auth routes...")
	routeDetails.AuthProtectedRoutes(protected, db)

	log.Println("[INFO] Mounting Master routes...")
	routeDetails.MasterRoutes(protected, db)

	log.Println("[INFO] Mounting Upload routes...")
	routeDetails.UploadRoutes(protected, db, storage)

	log.Println("[INFO] Mounting Billing routes...")
	routeDetails.BillingRoutes(protected, db, storage)

	log.Println("[INFO] Mounting App routes...")
	routeDetails.AppRoutes(protected, db)

	log.Println("[INFO] Mounting Dashboard routes...")
	routeDetails.DashboardRoutes(protected, db)
}
