// file: internals/features/masters/controller/master_controller.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"nitihub_backend/internals/constants"
	"nitihub_backend/internals/features/masters/service"
	helper "nitihub_backend/internals/helpers"
)

// MasterHandler serves read-only reference data off the external doc store.
type MasterHandler struct{}

func NewMasterHandler() *MasterHandler {
	return &MasterHandler{}
}

// Banks (GET /masters/banks)
func (h *MasterHandler) Banks(c *fiber.Ctx) error {
	banks, err := service.Banks(c.UserContext())
	if err != nil {
		return h.renderDocStoreError(c, err)
	}
	return helper.JsonOK(c, "", banks)
}

// Customers (GET /masters/customers): the communities this token can manage.
func (h *MasterHandler) Customers(c *fiber.Ctx) error {
	ids, _ := c.Locals("customer_ids").([]string)
	customers, err := service.CustomersByIDs(c.UserContext(), ids)
	if err != nil {
		return h.renderDocStoreError(c, err)
	}
	return helper.JsonOK(c, "", customers)
}

func (h *MasterHandler) renderDocStoreError(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrDocStoreUnavailable) {
		return helper.JsonError(c, fiber.StatusBadGateway, constants.ErrCodeExternal,
			"ไม่สามารถเชื่อมต่อฐานข้อมูลอ้างอิงได้")
	}
	return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
}
