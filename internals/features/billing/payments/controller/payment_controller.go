// file: internals/features/billing/payments/controller/payment_controller.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"nitihub_backend/internals/constants"
	roomModel "nitihub_backend/internals/features/billing/billrooms/model"
	"nitihub_backend/internals/features/billing/payments/dto"
	"nitihub_backend/internals/features/billing/payments/model"
	"nitihub_backend/internals/features/billing/payments/service"
	masters "nitihub_backend/internals/features/masters/service"
	uploadModel "nitihub_backend/internals/features/uploads/model"
	helper "nitihub_backend/internals/helpers"
	authz "nitihub_backend/internals/middlewares/auth"
)

type PaymentHandler struct {
	DB *gorm.DB
}

func NewPaymentHandler(db *gorm.DB) *PaymentHandler {
	return &PaymentHandler{DB: db}
}

// -----------------------------------------
// Create (POST /payments)
// Slip-gated: at least one validated attachment must exist under the
// submitted upload key before the claim is accepted.
// -----------------------------------------
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	customerID, err := authz.GetCustomerID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "ไม่พบรหัสนิติบุคคล")
	}
	uid, err := authz.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, constants.ErrCodeUnauthorized, "กรุณาเข้าสู่ระบบ")
	}

	var in dto.PaymentCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "รูปแบบข้อมูลไม่ถูกต้อง")
	}
	if err := helper.Validate().Struct(&in); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}

	amount, err := decimal.NewFromString(in.PaymentAmount)
	if err != nil || !amount.IsPositive() {
		return helper.JsonValidationError(c, map[string]string{"payment_amount": "positive_decimal"})
	}
	payableID, err := uuid.Parse(in.PayableID)
	if err != nil {
		return helper.JsonValidationError(c, map[string]string{"payable_id": "uuid"})
	}

	// the payable must be a live line of this customer
	var room roomModel.BillRoomModel
	if err := h.DB.
		Where("id = ? AND customer_id = ? AND status <> ?", payableID, customerID, constants.StatusDeleted).
		First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, constants.ErrCodeNotFound, "ไม่พบใบแจ้งหนี้")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}

	ok, err := service.HasValidSlip(h.DB, in.UploadKey)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeSlipRequired,
			"กรุณาแนบสลิปการโอนเงินก่อนแจ้งชำระ")
	}

	payment := in.ToPaymentModel(payableID, amount, uid, customerID)
	if err := h.DB.Create(&payment).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}

	return helper.JsonCreated(c, "แจ้งชำระเงินสำเร็จ รอการตรวจสอบ", dto.ToPaymentResponse(&payment))
}

// -----------------------------------------
// List (GET /payments)
// Filters: status, payable_id, member_id
// -----------------------------------------
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	customerID, err := authz.GetCustomerID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "ไม่พบรหัสนิติบุคคล")
	}
	paging := helper.ResolvePaging(c, 20, 200)

	q := h.DB.Model(&model.PaymentModel{}).
		Where("customer_id = ? AND status <> ?", customerID, constants.StatusDeleted)

	if v := c.Query("status"); v != "" {
		q = q.Where("status = ?", c.QueryInt("status"))
	}
	if v := c.Query("payable_id"); v != "" {
		pid, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "รหัสใบแจ้งหนี้ไม่ถูกต้อง")
		}
		q = q.Where("payable_id = ?", pid)
	}
	if v := c.Query("member_id"); v != "" {
		q = q.Where("member_id = ?", v)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}

	var list []model.PaymentModel
	if err := q.
		Order("create_date DESC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}

	out := dto.ToPaymentResponses(list)
	h.fillBankTitles(c, out)
	return helper.JsonList(c, "", out, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

// -----------------------------------------
// Detail (GET /payments/:id): with slip attachments
// -----------------------------------------
func (h *PaymentHandler) Detail(c *fiber.Ctx) error {
	customerID, err := authz.GetCustomerID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "ไม่พบรหัสนิติบุคคล")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "รหัสรายการไม่ถูกต้อง")
	}

	var payment model.PaymentModel
	if err := h.DB.
		Where("id = ? AND customer_id = ? AND status <> ?", id, customerID, constants.StatusDeleted).
		First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, constants.ErrCodeNotFound, "ไม่พบรายการแจ้งชำระ")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}

	var attachments []uploadModel.AttachmentModel
	if err := h.DB.
		Where("upload_key = ? AND status = ?", payment.UploadKey, uploadModel.AttachmentStatusValid).
		Order("create_date ASC").
		Find(&attachments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}

	out := []dto.PaymentResponse{*dto.ToPaymentResponse(&payment)}
	h.fillBankTitles(c, out)
	return helper.JsonOK(c, "", fiber.Map{
		"payment":     out[0],
		"attachments": attachments,
	})
}

// -----------------------------------------
// Summary (GET /payments/summary): review queue rollup
// -----------------------------------------
func (h *PaymentHandler) Summary(c *fiber.Ctx) error {
	customerID, err := authz.GetCustomerID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "ไม่พบรหัสนิติบุคคล")
	}

	type bucket struct {
		Status int             `gorm:"column:status"`
		Count  int64           `gorm:"column:cnt"`
		Amount decimal.Decimal `gorm:"column:amount"`
	}
	var buckets []bucket
	if err := h.DB.Model(&model.PaymentModel{}).
		Select("status, COUNT(*) AS cnt, COALESCE(SUM(payment_amount), 0) AS amount").
		Where("customer_id = ? AND status <> ?", customerID, constants.StatusDeleted).
		Group("status").
		Scan(&buckets).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}

	summary := fiber.Map{
		"awaiting_review": fiber.Map{"count": 0, "amount": "0.00"},
		"approved":        fiber.Map{"count": 0, "amount": "0.00"},
		"rejected":        fiber.Map{"count": 0, "amount": "0.00"},
	}
	for _, b := range buckets {
		entry := fiber.Map{"count": b.Count, "amount": b.Amount.StringFixed(2)}
		switch b.Status {
		case constants.PaymentStatusAwaitingReview:
			summary["awaiting_review"] = entry
		case constants.PaymentStatusApproved:
			summary["approved"] = entry
		case constants.PaymentStatusRejected:
			summary["rejected"] = entry
		}
	}
	return helper.JsonOK(c, "", summary)
}

// fillBankTitles decorates responses with master bank names; a doc-store
// outage only degrades the display.
func (h *PaymentHandler) fillBankTitles(c *fiber.Ctx, out []dto.PaymentResponse) {
	need := false
	for i := range out {
		if out[i].BankID != nil {
			need = true
			break
		}
	}
	if !need {
		return
	}
	banks, err := masters.Banks(c.UserContext())
	if err != nil {
		return
	}
	byID := make(map[string]string, len(banks))
	for _, b := range banks {
		byID[b.ID] = b.Title
	}
	for i := range out {
		if out[i].BankID != nil {
			out[i].BankTitle = byID[*out[i].BankID]
		}
	}
}
