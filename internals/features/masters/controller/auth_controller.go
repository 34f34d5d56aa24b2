// file: internals/features/masters/controller/auth_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"nitihub_backend/internals/constants"
	"nitihub_backend/internals/features/masters/service"
	helper "nitihub_backend/internals/helpers"
)

const tokenTTL = 24 * time.Hour

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login (POST /auth/login): credential check is proxied to the portal, the
// returned bearer token is ours.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in loginRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "รูปแบบข้อมูลไม่ถูกต้อง")
	}
	if err := helper.Validate().Struct(&in); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}

	user, err := service.PortalLogin(c.UserContext(), in.Username, in.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return helper.JsonError(c, fiber.StatusUnauthorized, constants.ErrCodeUnauthorized,
				"ชื่อผู้ใช้หรือรหัสผ่านไม่ถูกต้อง")
		default:
			return helper.JsonError(c, fiber.StatusBadGateway, constants.ErrCodeExternal,
				"ไม่สามารถเชื่อมต่อระบบยืนยันตัวตนได้")
		}
	}

	token, err := service.IssueToken(user, tokenTTL)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}

	return helper.JsonOK(c, "เข้าสู่ระบบสำเร็จ", fiber.Map{
		"token":        token,
		"expires_in":   int(tokenTTL.Seconds()),
		"uid":          user.UID,
		"name":         user.Name,
		"role":         user.Role,
		"customer_ids": user.CustomerIDs,
	})
}

// Verify (GET /auth/verify): echoes the identity behind the bearer token.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	if uid == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, constants.ErrCodeUnauthorized, "กรุณาเข้าสู่ระบบ")
	}
	name, _ := c.Locals("user_name").(string)
	role, _ := c.Locals("role").(string)
	customerIDs, _ := c.Locals("customer_ids").([]string)

	return helper.JsonOK(c, "", fiber.Map{
		"uid":          uid,
		"name":         name,
		"role":         role,
		"customer_ids": customerIDs,
	})
}
