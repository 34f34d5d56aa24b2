// file: internals/features/billing/billrooms/controller/admin_bill_room_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"nitihub_backend/internals/constants"
	billModel "nitihub_backend/internals/features/billing/bills/model"
	"nitihub_backend/internals/features/billing/billrooms/dto"
	"nitihub_backend/internals/features/billing/billrooms/model"
	payModel "nitihub_backend/internals/features/billing/payments/model"
	txModel "nitihub_backend/internals/features/billing/transactions/model"
	helper "nitihub_backend/internals/helpers"
	authz "nitihub_backend/internals/middlewares/auth"
)

type AdminBillRoomHandler struct {
	DB *gorm.DB
}

func NewAdminBillRoomHandler(db *gorm.DB) *AdminBillRoomHandler {
	return &AdminBillRoomHandler{DB: db}
}

// roomWithDeadline carries the parent bill's deadline next to the line so the
// presented (overdue-aware) status can be derived per row.
type roomWithDeadline struct {
	model.BillRoomModel
	ExpireDate string `gorm:"column:bill_expire_date" json:"-"`
}

// -----------------------------------------
// List (GET /bill-rooms)
// Filters: bill_id, house_no, status (3 selects derived-overdue lines)
// -----------------------------------------
func (h *AdminBillRoomHandler) List(c *fiber.Ctx) error {
	customerID, err := authz.GetCustomerID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "ไม่พบรหัสนิติบุคคล")
	}
	paging := helper.ResolvePaging(c, 50, 500)
	today := helper.Today()

	q := h.DB.Model(&model.BillRoomModel{}).
		Joins("JOIN bills b ON b.id = bill_room_informations.bill_id").
		Where("bill_room_informations.customer_id = ? AND bill_room_informations.status <> ?",
			customerID, constants.StatusDeleted)

	if v := c.Query("bill_id"); v != "" {
		billID, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "รหัสบิลไม่ถูกต้อง")
		}
		q = q.Where("bill_room_informations.bill_id = ?", billID)
	}
	if v := strings.TrimSpace(c.Query("house_no")); v != "" {
		q = q.Where("bill_room_informations.house_no = ?", v)
	}
	if v := c.Query("status"); v != "" {
		switch c.QueryInt("status") {
		case constants.BillRoomStatusOverdue:
			// overdue is never stored: unpaid or awaiting-review past deadline
			q = q.Where("bill_room_informations.status IN ? AND b.expire_date < ?",
				[]int{constants.BillRoomStatusUnpaid, constants.BillRoomStatusAwaitingReview}, today)
		default:
			q = q.Where("bill_room_informations.status = ?", c.QueryInt("status"))
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}

	var rows []roomWithDeadline
	if err := q.
		Select("bill_room_informations.*, to_char(b.expire_date, 'YYYY-MM-DD') AS bill_expire_date").
		Order("bill_room_informations.create_date DESC, bill_room_informations.bill_no DESC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}

	out := make([]dto.BillRoomResponse, 0, len(rows))
	for i := range rows {
		expire, _ := dto.ParseDeadline(rows[i].ExpireDate)
		out = append(out, *dto.ToBillRoomResponse(&rows[i].BillRoomModel, expire, today))
	}
	return helper.JsonList(c, "", out, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

// -----------------------------------------
// Detail (GET /bill-rooms/:id)
// The full settlement picture of one line: bill header, ledger entries,
// payment claims, and the paid/balance summary.
// -----------------------------------------
func (h *AdminBillRoomHandler) Detail(c *fiber.Ctx) error {
	customerID, err := authz.GetCustomerID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "ไม่พบรหัสนิติบุคคล")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "รหัสใบแจ้งหนี้ไม่ถูกต้อง")
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

	var transactions []txModel.BillTransactionModel
	if err := h.DB.
		Where("bill_room_id = ? AND status <> ?", room.ID, constants.StatusDeleted).
		Order("transaction_date ASC").
		Find(&transactions).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}

	var payments []payModel.PaymentModel
	if err := h.DB.
		Where("payable_type = ? AND payable_id = ? AND status <> ?",
			constants.PayableTypeBillRoom, room.ID, constants.StatusDeleted).
		Order("create_date DESC").
		Find(&payments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}

	paid := decimal.Zero
	for _, t := range transactions {
		paid = paid.Add(t.TransactionAmount)
	}
	balance := room.TotalPrice.Sub(paid)
	if balance.IsNegative() {
		balance = decimal.Zero
	}

	today := helper.Today()
	return helper.JsonOK(c, "", fiber.Map{
		"bill_room":    dto.ToBillRoomResponse(&room, bill.ExpireDate, today),
		"bill": fiber.Map{
			"id":          bill.ID,
			"bill_no":     bill.BillNo,
			"title":       bill.Title,
			"expire_date": bill.ExpireDate.Format("2006-01-02"),
			"status":      bill.Status,
		},
		"transactions": transactions,
		"payments":     payments,
		"summary": fiber.Map{
			"total_price":  room.TotalPrice.StringFixed(2),
			"paid_to_date": paid.StringFixed(2),
			"balance":      balance.StringFixed(2),
		},
	})
}
