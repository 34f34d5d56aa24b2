// file: internals/route/details/billing_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	roomController "nitihub_backend/internals/features/billing/billrooms/controller"
	billController "nitihub_backend/internals/features/billing/bills/controller"
	paymentController "nitihub_backend/internals/features/billing/payments/controller"
	txController "nitihub_backend/internals/features/billing/transactions/controller"
	uploadSvc "nitihub_backend/internals/features/uploads/service"
)

// BillingRoutes mounts the back-office billing surface.
func BillingRoutes(r fiber.Router, db *gorm.DB, storage uploadSvc.Storage) {
	bills := billController.NewBillHandler(db)
	r.Get("/bills", bills.List)
	r.Post("/bills", bills.Create)
	r.Get("/bills/:id", bills.Detail)
	r.Patch("/bills/:id", bills.Update)
	r.Delete("/bills/:id", bills.Delete)
	r.Post("/bills/:id/send", bills.Send)
	r.Post("/bills/:id/cancel-send", bills.CancelSend)
	r.Get("/bills/:id/rooms", bills.Rooms)

	imports := billController.NewBillImportHandler(db, storage)
	r.Post("/bills/import/preview", imports.Preview)
	r.Post("/bills/import/commit", imports.Commit)

	billTypes := billController.NewBillTypeHandler(db)
	r.Get("/bill-types", billTypes.List)
	r.Post("/bill-types", billTypes.Create)
	r.Patch("/bill-types/:id", billTypes.Update)
	r.Delete("/bill-types/:id", billTypes.Delete)

	rooms := roomController.NewAdminBillRoomHandler(db)
	r.Get("/bill-rooms", rooms.List)
	r.Get("/bill-rooms/:id", rooms.Detail)

	pdf := roomController.NewBillRoomPDFHandler(db)
	r.Get("/bill-rooms/:id/pdf", pdf.Render)

	transactions := txController.NewBillTransactionHandler(db)
	r.Post("/bill-transactions", transactions.Create)
	r.Get("/bill-rooms/:id/transactions", transactions.ListByRoom)
	r.Get("/bill-transaction-types", transactions.Types)
	r.Post("/bill-transaction-types", transactions.TypeCreate)
	r.Patch("/bill-transaction-types/:id", transactions.TypeUpdate)
	r.Delete("/bill-transaction-types/:id", transactions.TypeDelete)

	payments := paymentController.NewPaymentHandler(db)
	r.Post("/payments", payments.Create)
	r.Get("/payments", payments.List)
	r.Get("/payments/summary", payments.Summary)
	r.Get("/payments/:id", payments.Detail)

	review := paymentController.NewPaymentReviewHandler(db)
	r.Post("/payments/review", review.Review)

	paymentTypes := paymentController.NewPaymentTypeHandler(db)
	r.Get("/payment-types", paymentTypes.List)
	r.Post("/payment-types", paymentTypes.Create)
	r.Patch("/payment-types/:id", paymentTypes.Update)
	r.Delete("/payment-types/:id", paymentTypes.Delete)
}
