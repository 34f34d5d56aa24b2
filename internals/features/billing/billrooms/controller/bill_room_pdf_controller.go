// file: internals/features/billing/billrooms/controller/bill_room_pdf_controller.go
package controller

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"nitihub_backend/internals/configs"
	"nitihub_backend/internals/constants"
	billModel "nitihub_backend/internals/features/billing/bills/model"
	"nitihub_backend/internals/features/billing/billrooms/model"
	masters "nitihub_backend/internals/features/masters/service"
	helper "nitihub_backend/internals/helpers"
	authz "nitihub_backend/internals/middlewares/auth"
)

// BillRoomPDFHandler proxies invoice rendering to the external PDF service.
type BillRoomPDFHandler struct {
	DB     *gorm.DB
	Client *http.Client
}

func NewBillRoomPDFHandler(db *gorm.DB) *BillRoomPDFHandler {
	return &BillRoomPDFHandler{
		DB:     db,
		Client: &http.Client{Timeout: 20 * time.Second},
	}
}

// Render (GET /bill-rooms/:id/pdf)
func (h *BillRoomPDFHandler) Render(c *fiber.Ctx) error {
	customerID, err := authz.GetCustomerID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "ไม่พบรหัสนิติบุคคล")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "รหัสใบแจ้งหนี้ไม่ถูกต้อง")
	}
	if configs.PDFRenderURL == "" {
		return helper.JsonError(c, fiber.StatusBadGateway, constants.ErrCodeExternal, "บริการออกเอกสารยังไม่พร้อมใช้งาน")
	}

	var room model.BillRoomModel
	if err := h.DB.
		Where("id = ? AND customer_id = ? AND status <> ?", id, customerID, constants.StatusDeleted).
		First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, constants.ErrCodeNotFound, "ไม่พบใบแจ้งหนี้")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}

	var bill billModel.BillModel
	if err := h.DB.Where("id = ?", room.BillID).First(&bill).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}

	payload := fiber.Map{
		"invoice_no":  room.BillNo,
		"bill_no":     bill.BillNo,
		"title":       bill.Title,
		"detail":      bill.Detail,
		"house_no":    room.HouseNo,
		"member_name": room.MemberName,
		"amount":      room.TotalPrice.StringFixed(2),
		"expire_date": bill.ExpireDate.Format("2006-01-02"),
		"issued_date": room.CreateDate.In(helper.Location()).Format("2006-01-02"),
	}
	if customer, err := masters.CustomerByID(c.UserContext(), customerID); err == nil && customer != nil {
		payload["customer_name"] = customer.Name
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}

	req, err := http.NewRequestWithContext(c.UserContext(), http.MethodPost, configs.PDFRenderURL, bytes.NewReader(body))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.Client.Do(req)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadGateway, constants.ErrCodeExternal, "ไม่สามารถเชื่อมต่อบริการออกเอกสารได้")
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return helper.JsonError(c, fiber.StatusBadGateway, constants.ErrCodeExternal, "บริการออกเอกสารตอบกลับผิดพลาด")
	}

	pdf, err := io.ReadAll(io.LimitReader(resp.Body, 20<<20))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadGateway, constants.ErrCodeExternal, "อ่านเอกสารจากบริการภายนอกไม่สำเร็จ")
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+room.BillNo+`.pdf"`)
	return c.Send(pdf)
}
