// file: internals/features/billing/billrooms/controller/app_bill_room_controller.go
//
// Resident-facing views. Only lines of sent bills are visible here; drafts
// and canceled bills never reach the unit.
package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"nitihub_backend/internals/constants"
	"nitihub_backend/internals/features/billing/billrooms/dto"
	"nitihub_backend/internals/features/billing/billrooms/model"
	payModel "nitihub_backend/internals/features/billing/payments/model"
	helper "nitihub_backend/internals/helpers"
	authz "nitihub_backend/internals/middlewares/auth"
)

type AppBillRoomHandler struct {
	DB *gorm.DB
}

func NewAppBillRoomHandler(db *gorm.DB) *AppBillRoomHandler {
	return &AppBillRoomHandler{DB: db}
}

type appBillRoomItem struct {
	dto.BillRoomResponse
	BillTitle  string `json:"bill_title"`
	BillDetail string `json:"bill_detail,omitempty"`
	DueDate    string `json:"due_date"`
	Overdue    bool   `json:"overdue"`

	// set when the latest payment claim on this line was rejected, so the
	// resident sees the reviewer's reason and can resubmit
	LastPaymentStatus *int       `json:"last_payment_status,omitempty"`
	RejectRemark      *string    `json:"reject_remark,omitempty"`
	RejectDate        *time.Time `json:"reject_date,omitempty"`
}

type appRoomRow struct {
	model.BillRoomModel
	BillTitle      string `gorm:"column:bill_title"`
	BillDetail     string `gorm:"column:bill_detail"`
	BillExpireDate string `gorm:"column:bill_expire_date"`
}

func (h *AppBillRoomHandler) houseNo(c *fiber.Ctx) (string, error) {
	v := strings.TrimSpace(c.Query("house_no"))
	if v == "" {
		return "", fiber.ErrBadRequest
	}
	return v, nil
}

// -----------------------------------------
// Current (GET /app/bill-rooms/current)
// The single unpaid line of a sent bill, closest deadline first; data is
// null when the unit owes nothing.
// -----------------------------------------
func (h *AppBillRoomHandler) Current(c *fiber.Ctx) error {
	customerID, err := authz.GetCustomerID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "ไม่พบรหัสนิติบุคคล")
	}
	houseNo, err := h.houseNo(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "กรุณาระบุบ้านเลขที่")
	}

	rows, err := h.unitRows(customerID, houseNo, []int{constants.BillRoomStatusUnpaid},
		"b.expire_date ASC, bill_room_informations.bill_no ASC", 1, 0)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}
	if len(rows) == 0 {
		return helper.JsonOK(c, "", nil)
	}

	items := h.toItems(rows)
	if err := h.attachLatestPayments(items); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}
	return helper.JsonOK(c, "", items[0])
}

// -----------------------------------------
// History (GET /app/bill-rooms/history)
// Settled lines newest first, plus the unit's live-line count and the price
// of the most recently paid line.
// -----------------------------------------
func (h *AppBillRoomHandler) History(c *fiber.Ctx) error {
	customerID, err := authz.GetCustomerID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "ไม่พบรหัสนิติบุคคล")
	}
	houseNo, err := h.houseNo(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "กรุณาระบุบ้านเลขที่")
	}
	paging := helper.ResolvePaging(c, 20, 100)

	var liveCount int64
	if err := h.DB.Model(&model.BillRoomModel{}).
		Where("customer_id = ? AND house_no = ? AND status <> ?", customerID, houseNo, constants.StatusDeleted).
		Count(&liveCount).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}

	var lastPaidPrice *string
	var lastPaid []model.BillRoomModel
	if err := h.unitQuery(customerID, houseNo, []int{constants.BillRoomStatusPaid}).
		Order("bill_room_informations.update_date DESC NULLS LAST").
		Limit(1).
		Find(&lastPaid).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}
	if len(lastPaid) > 0 {
		price := lastPaid[0].TotalPrice.StringFixed(2)
		lastPaidPrice = &price
	}

	var total int64
	if err := h.unitQuery(customerID, houseNo, []int{constants.BillRoomStatusPaid}).
		Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}
	rows, err := h.unitRows(customerID, houseNo, []int{constants.BillRoomStatusPaid},
		"b.expire_date DESC, bill_room_informations.bill_no DESC", paging.Limit, paging.Offset)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}

	data := fiber.Map{
		"items":           h.toItems(rows),
		"live_count":      liveCount,
		"last_paid_price": lastPaidPrice,
	}
	return helper.JsonList(c, "", data, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

// -----------------------------------------
// Arrears (GET /app/bill-rooms/arrears)
// Unpaid sum and count for the unit, the paid-or-awaiting sum, and the
// overdue slice of the unpaid lines.
// -----------------------------------------
func (h *AppBillRoomHandler) Arrears(c *fiber.Ctx) error {
	customerID, err := authz.GetCustomerID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "ไม่พบรหัสนิติบุคคล")
	}
	houseNo, err := h.houseNo(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "กรุณาระบุบ้านเลขที่")
	}

	rows, err := h.unitRows(customerID, houseNo, []int{constants.BillRoomStatusUnpaid},
		"b.expire_date DESC, bill_room_informations.bill_no DESC", 0, 0)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}
	unpaid := arrearsRollup(rows, helper.Today())

	var paidAwaitingTotal decimal.Decimal
	if err := h.unitQuery(customerID, houseNo, []int{
		constants.BillRoomStatusPaid,
		constants.BillRoomStatusAwaitingReview,
	}).
		Select("COALESCE(SUM(bill_room_informations.total_price), 0)").
		Scan(&paidAwaitingTotal).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}

	return helper.JsonOK(c, "", fiber.Map{
		"house_no":            houseNo,
		"unpaid_count":        unpaid.Count,
		"unpaid_total":        unpaid.Total.StringFixed(2),
		"paid_awaiting_total": paidAwaitingTotal.StringFixed(2),
		"overdue_count":       unpaid.OverdueCount,
		"overdue_total":       unpaid.OverdueTotal.StringFixed(2),
	})
}

/* ---------- shared bits ---------- */

type arrearsTotals struct {
	Count        int
	Total        decimal.Decimal
	OverdueCount int
	OverdueTotal decimal.Decimal
}

// arrearsRollup folds unpaid rows into sums; the overdue slice is derived
// from each row's bill deadline against the civil day.
func arrearsRollup(rows []appRoomRow, today time.Time) arrearsTotals {
	out := arrearsTotals{Total: decimal.Zero, OverdueTotal: decimal.Zero}
	for _, r := range rows {
		out.Total = out.Total.Add(r.TotalPrice)
		out.Count++
		expire, err := dto.ParseDeadline(r.BillExpireDate)
		if err == nil && helper.IsOverdue(expire, today) {
			out.OverdueTotal = out.OverdueTotal.Add(r.TotalPrice)
			out.OverdueCount++
		}
	}
	return out
}

func (h *AppBillRoomHandler) unitQuery(customerID, houseNo string, statuses []int) *gorm.DB {
	return h.DB.Model(&model.BillRoomModel{}).
		Joins("JOIN bills b ON b.id = bill_room_informations.bill_id").
		Where("bill_room_informations.customer_id = ? AND bill_room_informations.house_no = ?", customerID, houseNo).
		Where("bill_room_informations.status IN ?", statuses).
		Where("b.status = ?", constants.BillStatusSent)
}

func (h *AppBillRoomHandler) unitRows(customerID, houseNo string, statuses []int, order string, limit, offset int) ([]appRoomRow, error) {
	q := h.unitQuery(customerID, houseNo, statuses).
		Select("bill_room_informations.*, b.title AS bill_title, b.detail AS bill_detail, to_char(b.expire_date, 'YYYY-MM-DD') AS bill_expire_date").
		Order(order)
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	var rows []appRoomRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (h *AppBillRoomHandler) toItems(rows []appRoomRow) []appBillRoomItem {
	today := helper.Today()
	out := make([]appBillRoomItem, 0, len(rows))
	for i := range rows {
		expire, perr := dto.ParseDeadline(rows[i].BillExpireDate)
		if perr != nil {
			expire = time.Time{}
		}
		item := appBillRoomItem{
			BillRoomResponse: *dto.ToBillRoomResponse(&rows[i].BillRoomModel, expire, today),
			BillTitle:        rows[i].BillTitle,
			BillDetail:       rows[i].BillDetail,
			DueDate:          rows[i].BillExpireDate,
		}
		item.Overdue = item.DisplayStatus == constants.BillRoomStatusOverdue
		out = append(out, item)
	}
	return out
}

// attachLatestPayments fetches the live payments of the listed lines and
// folds the newest one per line into the view.
func (h *AppBillRoomHandler) attachLatestPayments(items []appBillRoomItem) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}

	var payments []payModel.PaymentModel
	if err := h.DB.
		Where("payable_type = ? AND payable_id IN ? AND status <> ?",
			constants.PayableTypeBillRoom, ids, constants.StatusDeleted).
		Order("create_date DESC").
		Find(&payments).Error; err != nil {
		return err
	}

	applyLatestPayments(items, payments)
	return nil
}

// applyLatestPayments takes payments ordered newest first and decorates each
// line with its latest claim; a rejected claim also exposes the reviewer's
// remark and decision date.
func applyLatestPayments(items []appBillRoomItem, payments []payModel.PaymentModel) {
	latest := make(map[uuid.UUID]*payModel.PaymentModel, len(items))
	for i := range payments {
		p := &payments[i]
		if _, seen := latest[p.PayableID]; !seen {
			latest[p.PayableID] = p // rows come newest first
		}
	}

	for i := range items {
		p, ok := latest[items[i].ID]
		if !ok {
			continue
		}
		status := p.Status
		items[i].LastPaymentStatus = &status
		if p.Status == constants.PaymentStatusRejected {
			items[i].RejectRemark = p.Remark
			items[i].RejectDate = p.UpdateDate
		}
	}
}
