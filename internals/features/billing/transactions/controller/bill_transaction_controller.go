// file: internals/features/billing/transactions/controller/bill_transaction_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"nitihub_backend/internals/constants"
	"nitihub_backend/internals/features/billing/transactions/dto"
	"nitihub_backend/internals/features/billing/transactions/model"
	"nitihub_backend/internals/features/billing/transactions/service"
	helper "nitihub_backend/internals/helpers"
	authz "nitihub_backend/internals/middlewares/auth"
)

type BillTransactionHandler struct {
	DB *gorm.DB
}

func NewBillTransactionHandler(db *gorm.DB) *BillTransactionHandler {
	return &BillTransactionHandler{DB: db}
}

// -----------------------------------------
// Create (POST /bill-transactions): manual settlement entry
// -----------------------------------------
func (h *BillTransactionHandler) Create(c *fiber.Ctx) error {
	customerID, err := authz.GetCustomerID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "ไม่พบรหัสนิติบุคคล")
	}
	uid, err := authz.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, constants.ErrCodeUnauthorized, "กรุณาเข้าสู่ระบบ")
	}

	var in dto.ManualTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "รูปแบบข้อมูลไม่ถูกต้อง")
	}
	if err := helper.Validate().Struct(&in); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}

	roomID, err := uuid.Parse(in.BillRoomID)
	if err != nil {
		return helper.JsonValidationError(c, map[string]string{"bill_room_id": "uuid"})
	}
	amount, err := decimal.NewFromString(in.TransactionAmount)
	if err != nil {
		return helper.JsonValidationError(c, map[string]string{"transaction_amount": "decimal"})
	}

	var payDate *time.Time
	if in.PayDate != nil && *in.PayDate != "" {
		t, err := time.ParseInLocation("2006-01-02", *in.PayDate, helper.Location())
		if err != nil {
			return helper.JsonValidationError(c, map[string]string{"pay_date": "date"})
		}
		payDate = &t
	}

	typeID := in.BillTransactionTypeID
	result, err := service.Settle(h.DB, service.SettleInput{
		BillRoomID:            roomID,
		BillTransactionTypeID: &typeID,
		Amount:                amount,
		PayDate:               payDate,
		TransactionJSON:       datatypes.JSON(in.TransactionJSON),
		Remark:                in.Remark,
		CustomerID:            customerID,
		By:                    uid,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBillRoomNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, constants.ErrCodeNotFound, "ไม่พบใบแจ้งหนี้")
		case errors.Is(err, service.ErrAmountNotPositive):
			return helper.JsonValidationError(c, map[string]string{"transaction_amount": "positive"})
		case errors.Is(err, service.ErrSourceXOR):
			return helper.JsonValidationError(c, map[string]string{"bill_transaction_type_id": "required"})
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
		}
	}

	return helper.JsonCreated(c, "บันทึกรายการชำระสำเร็จ", fiber.Map{
		"transaction":      dto.ToBillTransactionResponse(result.Transaction),
		"paid_to_date":     result.PaidToDate.StringFixed(2),
		"bill_room_status": result.NewRoomStatus,
	})
}

// -----------------------------------------
// ListByRoom (GET /bill-rooms/:id/transactions)
// -----------------------------------------
func (h *BillTransactionHandler) ListByRoom(c *fiber.Ctx) error {
	customerID, err := authz.GetCustomerID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "ไม่พบรหัสนิติบุคคล")
	}
	roomID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "รหัสใบแจ้งหนี้ไม่ถูกต้อง")
	}

	var list []model.BillTransactionModel
	if err := h.DB.
		Where("bill_room_id = ? AND customer_id = ? AND status <> ?", roomID, customerID, constants.StatusDeleted).
		Order("transaction_date ASC").
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}
	return helper.JsonOK(c, "", dto.ToBillTransactionResponses(list))
}

// -----------------------------------------
// Types (GET /bill-transaction-types)
// -----------------------------------------
func (h *BillTransactionHandler) Types(c *fiber.Ctx) error {
	var list []model.BillTransactionTypeModel
	if err := h.DB.
		Where("status <> ?", constants.StatusDeleted).
		Order("id ASC").
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}
	return helper.JsonOK(c, "", list)
}

type transactionTypeRequest struct {
	Title string `json:"title" validate:"required,max=100"`
}

// TypeCreate (POST /bill-transaction-types)
func (h *BillTransactionHandler) TypeCreate(c *fiber.Ctx) error {
	uid, err := authz.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, constants.ErrCodeUnauthorized, "กรุณาเข้าสู่ระบบ")
	}
	var in transactionTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "รูปแบบข้อมูลไม่ถูกต้อง")
	}
	if err := helper.Validate().Struct(&in); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}

	row := model.BillTransactionTypeModel{
		Title:      in.Title,
		CreateDate: time.Now().UTC(),
		CreateBy:   uid,
	}
	if err := h.DB.Create(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}
	return helper.JsonCreated(c, "", row)
}

// TypeUpdate (PATCH /bill-transaction-types/:id)
func (h *BillTransactionHandler) TypeUpdate(c *fiber.Ctx) error {
	uid, err := authz.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, constants.ErrCodeUnauthorized, "กรุณาเข้าสู่ระบบ")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "รหัสประเภทรายการไม่ถูกต้อง")
	}
	var in transactionTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "รูปแบบข้อมูลไม่ถูกต้อง")
	}
	if err := helper.Validate().Struct(&in); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}

	var row model.BillTransactionTypeModel
	if err := h.DB.Where("id = ? AND status <> ?", id, constants.StatusDeleted).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, constants.ErrCodeNotFound, "ไม่พบประเภทรายการ")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}
	if err := h.DB.Model(&row).Updates(map[string]interface{}{
		"title":       in.Title,
		"update_date": time.Now().UTC(),
		"update_by":   uid,
	}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}
	return helper.JsonUpdated(c, "", row)
}

// TypeDelete (DELETE /bill-transaction-types/:id) marks the row deleted.
func (h *BillTransactionHandler) TypeDelete(c *fiber.Ctx) error {
	uid, err := authz.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, constants.ErrCodeUnauthorized, "กรุณาเข้าสู่ระบบ")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "รหัสประเภทรายการไม่ถูกต้อง")
	}

	res := h.DB.Model(&model.BillTransactionTypeModel{}).
		Where("id = ? AND status <> ?", id, constants.StatusDeleted).
		Updates(map[string]interface{}{
			"status":      constants.StatusDeleted,
			"delete_date": time.Now().UTC(),
			"delete_by":   uid,
		})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, constants.ErrCodeNotFound, "ไม่พบประเภทรายการ")
	}
	return helper.JsonDeleted(c, "", fiber.Map{"id": id})
}
