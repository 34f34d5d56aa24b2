// file: internals/features/billing/bills/controller/bill_type_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"nitihub_backend/internals/constants"
	"nitihub_backend/internals/features/billing/bills/model"
	helper "nitihub_backend/internals/helpers"
	authz "nitihub_backend/internals/middlewares/auth"
)

type BillTypeHandler struct {
	DB *gorm.DB
}

func NewBillTypeHandler(db *gorm.DB) *BillTypeHandler {
	return &BillTypeHandler{DB: db}
}

type billTypeRequest struct {
	Title string `json:"title" validate:"required,max=100"`
}

func (h *BillTypeHandler) List(c *fiber.Ctx) error {
	var list []model.BillTypeModel
	if err := h.DB.
		Where("status <> ?", constants.StatusDeleted).
		Order("id ASC").
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}
	return helper.JsonOK(c, "", list)
}

func (h *BillTypeHandler) Create(c *fiber.Ctx) error {
	uid, err := authz.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, constants.ErrCodeUnauthorized, "กรุณาเข้าสู่ระบบ")
	}
	var in billTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "รูปแบบข้อมูลไม่ถูกต้อง")
	}
	if err := helper.Validate().Struct(&in); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}

	row := model.BillTypeModel{
		Title:      in.Title,
		CreateDate: time.Now().UTC(),
		CreateBy:   uid,
	}
	if err := h.DB.Create(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}
	return helper.JsonCreated(c, "", row)
}

func (h *BillTypeHandler) Update(c *fiber.Ctx) error {
	uid, err := authz.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, constants.ErrCodeUnauthorized, "กรุณาเข้าสู่ระบบ")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "รหัสประเภทบิลไม่ถูกต้อง")
	}
	var in billTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "รูปแบบข้อมูลไม่ถูกต้อง")
	}
	if err := helper.Validate().Struct(&in); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}

	var row model.BillTypeModel
	if err := h.DB.Where("id = ? AND status <> ?", id, constants.StatusDeleted).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, constants.ErrCodeNotFound, "ไม่พบประเภทบิล")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}

	now := time.Now().UTC()
	if err := h.DB.Model(&row).Updates(map[string]interface{}{
		"title":       in.Title,
		"update_date": now,
		"update_by":   uid,
	}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}
	return helper.JsonUpdated(c, "", row)
}

func (h *BillTypeHandler) Delete(c *fiber.Ctx) error {
	uid, err := authz.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, constants.ErrCodeUnauthorized, "กรุณาเข้าสู่ระบบ")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "รหัสประเภทบิลไม่ถูกต้อง")
	}

	res := h.DB.Model(&model.BillTypeModel{}).
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
		return helper.JsonError(c, fiber.StatusNotFound, constants.ErrCodeNotFound, "ไม่พบประเภทบิล")
	}
	return helper.JsonDeleted(c, "", fiber.Map{"id": id})
}
