// file: internals/features/billing/payments/controller/payment_type_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"nitihub_backend/internals/constants"
	"nitihub_backend/internals/features/billing/payments/model"
	helper "nitihub_backend/internals/helpers"
	authz "nitihub_backend/internals/middlewares/auth"
)

type PaymentTypeHandler struct {
	DB *gorm.DB
}

func NewPaymentTypeHandler(db *gorm.DB) *PaymentTypeHandler {
	return &PaymentTypeHandler{DB: db}
}

type paymentTypeRequest struct {
	Title string `json:"title" validate:"required,max=100"`
}

// List (GET /payment-types)
func (h *PaymentTypeHandler) List(c *fiber.Ctx) error {
	var list []model.PaymentTypeModel
	if err := h.DB.
		Where("status <> ?", constants.StatusDeleted).
		Order("id ASC").
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}
	return helper.JsonOK(c, "", list)
}

// Create (POST /payment-types)
func (h *PaymentTypeHandler) Create(c *fiber.Ctx) error {
	uid, err := authz.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, constants.ErrCodeUnauthorized, "กรุณาเข้าสู่ระบบ")
	}
	var in paymentTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "รูปแบบข้อมูลไม่ถูกต้อง")
	}
	if err := helper.Validate().Struct(&in); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}

	row := model.PaymentTypeModel{
		Title:      in.Title,
		CreateDate: time.Now().UTC(),
		CreateBy:   uid,
	}
	if err := h.DB.Create(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}
	return helper.JsonCreated(c, "", row)
}

// Update (PATCH /payment-types/:id)
func (h *PaymentTypeHandler) Update(c *fiber.Ctx) error {
	uid, err := authz.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, constants.ErrCodeUnauthorized, "กรุณาเข้าสู่ระบบ")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "รหัสช่องทางชำระไม่ถูกต้อง")
	}
	var in paymentTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "รูปแบบข้อมูลไม่ถูกต้อง")
	}
	if err := helper.Validate().Struct(&in); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}

	var row model.PaymentTypeModel
	if err := h.DB.Where("id = ? AND status <> ?", id, constants.StatusDeleted).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, constants.ErrCodeNotFound, "ไม่พบช่องทางชำระ")
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

// Delete (DELETE /payment-types/:id) marks the row deleted.
func (h *PaymentTypeHandler) Delete(c *fiber.Ctx) error {
	uid, err := authz.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, constants.ErrCodeUnauthorized, "กรุณาเข้าสู่ระบบ")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "รหัสช่องทางชำระไม่ถูกต้อง")
	}

	res := h.DB.Model(&model.PaymentTypeModel{}).
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
		return helper.JsonError(c, fiber.StatusNotFound, constants.ErrCodeNotFound, "ไม่พบช่องทางชำระ")
	}
	return helper.JsonDeleted(c, "", fiber.Map{"id": id})
}
