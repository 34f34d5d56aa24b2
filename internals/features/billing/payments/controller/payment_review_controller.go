// file: internals/features/billing/payments/controller/payment_review_controller.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"nitihub_backend/internals/constants"
	"nitihub_backend/internals/features/billing/payments/dto"
	"nitihub_backend/internals/features/billing/payments/service"
	helper "nitihub_backend/internals/helpers"
	authz "nitihub_backend/internals/middlewares/auth"
)

type PaymentReviewHandler struct {
	DB *gorm.DB
}

func NewPaymentReviewHandler(db *gorm.DB) *PaymentReviewHandler {
	return &PaymentReviewHandler{DB: db}
}

// Review (POST /payments/review)
// Bulk approve/reject. Partial success: per-id outcomes are reported, one
// bad id never aborts the batch.
func (h *PaymentReviewHandler) Review(c *fiber.Ctx) error {
	customerID, err := authz.GetCustomerID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "ไม่พบรหัสนิติบุคคล")
	}
	uid, err := authz.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, constants.ErrCodeUnauthorized, "กรุณาเข้าสู่ระบบ")
	}

	var in dto.PaymentReviewRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "รูปแบบข้อมูลไม่ถูกต้อง")
	}
	if err := helper.Validate().Struct(&in); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}

	ids := make([]uuid.UUID, 0, len(in.IDs))
	for _, s := range in.IDs {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonValidationError(c, map[string]string{"ids": "uuid"})
		}
		ids = append(ids, id)
	}

	result, err := service.BulkReview(h.DB, service.ReviewInput{
		IDs:        ids,
		Status:     in.Status,
		Remark:     in.Remark,
		CustomerID: customerID,
		By:         uid,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyBatch):
			return helper.JsonValidationError(c, map[string]string{"ids": "required"})
		case errors.Is(err, service.ErrBadStatus):
			return helper.JsonValidationError(c, map[string]string{"status": "oneof=1 3"})
		case errors.Is(err, service.ErrRemarkOnReject):
			return helper.JsonValidationError(c, map[string]string{"remark": "required_on_reject"})
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
		}
	}

	return helper.JsonOK(c, "ตรวจสอบรายการแจ้งชำระแล้ว", result)
}
