// file: internals/features/dashboard/controller/dashboard_controller.go
//
// Back-office dashboard rollups. Everything here is read-only aggregation;
// month and day boundaries are civil (+07:00), amounts come back as fixed
// two-decimal strings.
package controller

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"nitihub_backend/internals/constants"
	billModel "nitihub_backend/internals/features/billing/bills/model"
	roomModel "nitihub_backend/internals/features/billing/billrooms/model"
	payModel "nitihub_backend/internals/features/billing/payments/model"
	txModel "nitihub_backend/internals/features/billing/transactions/model"
	masters "nitihub_backend/internals/features/masters/service"
	helper "nitihub_backend/internals/helpers"
	authz "nitihub_backend/internals/middlewares/auth"
)

// paymentEfficiencyTarget: share of sent lines expected to settle (percent).
const paymentEfficiencyTarget = 90.0

type DashboardHandler struct {
	DB *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{DB: db}
}

// -----------------------------------------
// Summary (GET /dashboard/summary)
// -----------------------------------------
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	customerID, err := authz.GetCustomerID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "ไม่พบรหัสนิติบุคคล")
	}
	today := helper.Today()
	monthStart := helper.StartOfMonth(today)
	nextMonth := helper.StartOfNextMonth(today)

	openQ := func() *gorm.DB {
		return h.DB.Model(&roomModel.BillRoomModel{}).
			Joins("JOIN bills b ON b.id = bill_room_informations.bill_id").
			Where("bill_room_informations.customer_id = ? AND b.status = ?", customerID, constants.BillStatusSent).
			Where("bill_room_informations.status IN ?", []int{
				constants.BillRoomStatusUnpaid,
				constants.BillRoomStatusPartiallyPaid,
				constants.BillRoomStatusAwaitingReview,
			})
	}
	var openCount int64
	var openTotal decimal.Decimal
	if err := openQ().Count(&openCount).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}
	if err := openQ().Select("COALESCE(SUM(bill_room_informations.total_price), 0)").Scan(&openTotal).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}

	overdueQ := func() *gorm.DB {
		return h.DB.Model(&roomModel.BillRoomModel{}).
			Joins("JOIN bills b ON b.id = bill_room_informations.bill_id").
			Where("bill_room_informations.customer_id = ? AND b.status = ?", customerID, constants.BillStatusSent).
			Where("bill_room_informations.status IN ? AND b.expire_date < ?", []int{
				constants.BillRoomStatusUnpaid,
				constants.BillRoomStatusAwaitingReview,
			}, today)
	}
	var overdueCount int64
	var overdueTotal decimal.Decimal
	if err := overdueQ().Count(&overdueCount).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}
	if err := overdueQ().Select("COALESCE(SUM(bill_room_informations.total_price), 0)").Scan(&overdueTotal).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}

	prevMonthStart := helper.StartOfPrevMonth(today)
	revenueThis, err := h.collectedBetween(customerID, monthStart, nextMonth)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}
	revenueLast, err := h.collectedBetween(customerID, prevMonthStart, monthStart)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}
	deltaAbs, deltaPct := revenueDelta(revenueThis, revenueLast)

	var monthPaidCount int64
	if err := h.DB.Model(&txModel.BillTransactionModel{}).
		Where("customer_id = ? AND status <> ?", customerID, constants.StatusDeleted).
		Where("transaction_date >= ? AND transaction_date < ?", monthStart.UTC(), nextMonth.UTC()).
		Count(&monthPaidCount).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}

	var billsCreated int64
	if err := h.DB.Model(&billModel.BillModel{}).
		Where("customer_id = ? AND status <> ?", customerID, constants.StatusDeleted).
		Where("create_date >= ? AND create_date < ?", monthStart.UTC(), nextMonth.UTC()).
		Count(&billsCreated).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}

	var awaitingReview int64
	if err := h.DB.Model(&payModel.PaymentModel{}).
		Where("customer_id = ? AND status = ?", customerID, constants.PaymentStatusAwaitingReview).
		Count(&awaitingReview).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}

	// membership footprint lives in the document store; an outage only blanks
	// the counters
	community := &masters.CommunityStats{}
	if stats, err := masters.CommunityCounts(c.UserContext(), customerID); err == nil {
		community = stats
	}

	revenue := fiber.Map{
		"this_month":    revenueThis.StringFixed(2),
		"last_month":    revenueLast.StringFixed(2),
		"delta_amount":  deltaAbs.StringFixed(2),
		"delta_percent": deltaPct,
	}
	return helper.JsonOK(c, "", fiber.Map{
		"total_units":              community.TotalUnits,
		"active_residents":         community.ActiveResidents,
		"pending_approvals":        community.PendingApprovals,
		"open_invoices":            fiber.Map{"count": openCount, "amount": openTotal.StringFixed(2)},
		"overdue_invoices":         fiber.Map{"count": overdueCount, "amount": overdueTotal.StringFixed(2)},
		"month_paid_count":         monthPaidCount,
		"revenue":                  revenue,
		"bills_created_this_month": billsCreated,
		"awaiting_review":          awaitingReview,
	})
}

// collectedBetween sums settled amounts in a UTC-converted civil window.
func (h *DashboardHandler) collectedBetween(customerID string, from, to time.Time) (decimal.Decimal, error) {
	var amount decimal.Decimal
	err := h.DB.Model(&txModel.BillTransactionModel{}).
		Where("customer_id = ? AND status <> ?", customerID, constants.StatusDeleted).
		Where("transaction_date >= ? AND transaction_date < ?", from.UTC(), to.UTC()).
		Select("COALESCE(SUM(transaction_amount), 0)").
		Scan(&amount).Error
	return amount, err
}

// -----------------------------------------
// Revenue (GET /dashboard/revenue?months=3|6|12)
// Collected amounts per civil month, oldest first.
// -----------------------------------------
func (h *DashboardHandler) Revenue(c *fiber.Ctx) error {
	customerID, err := authz.GetCustomerID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "ไม่พบรหัสนิติบุคคล")
	}
	months := c.QueryInt("months", 6)
	switch months {
	case 3, 6, 12:
	default:
		months = 6
	}

	type monthPoint struct {
		Month  string `json:"month"` // YYYY-MM
		Amount string `json:"amount"`
	}

	today := helper.Today()
	points := make([]monthPoint, 0, months)
	for i := months - 1; i >= 0; i-- {
		start := helper.StartOfMonth(today).AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0)

		amount, err := h.collectedBetween(customerID, start, end)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
		}
		points = append(points, monthPoint{
			Month:  start.Format("2006-01"),
			Amount: amount.StringFixed(2),
		})
	}

	return helper.JsonOK(c, "", fiber.Map{"months": months, "points": points})
}

// -----------------------------------------
// BillStatus (GET /dashboard/bill-status): line status distribution
// -----------------------------------------
func (h *DashboardHandler) BillStatus(c *fiber.Ctx) error {
	customerID, err := authz.GetCustomerID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "ไม่พบรหัสนิติบุคคล")
	}
	today := helper.Today()

	type statusRow struct {
		Status  int   `gorm:"column:status"`
		Overdue bool  `gorm:"column:overdue"`
		Count   int64 `gorm:"column:cnt"`
	}
	var rows []statusRow
	if err := h.DB.Model(&roomModel.BillRoomModel{}).
		Joins("JOIN bills b ON b.id = bill_room_informations.bill_id").
		Where("bill_room_informations.customer_id = ? AND bill_room_informations.status <> ?",
			customerID, constants.StatusDeleted).
		Where("b.status = ?", constants.BillStatusSent).
		Select("bill_room_informations.status, b.expire_date < ? AS overdue, COUNT(*) AS cnt", today).
		Group("bill_room_informations.status, overdue").
		Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}

	dist := map[string]int64{
		"unpaid":          0,
		"partially_paid":  0,
		"paid":            0,
		"awaiting_review": 0,
		"overdue":         0,
	}
	for _, r := range rows {
		switch r.Status {
		case constants.BillRoomStatusUnpaid:
			if r.Overdue {
				dist["overdue"] += r.Count
			} else {
				dist["unpaid"] += r.Count
			}
		case constants.BillRoomStatusAwaitingReview:
			if r.Overdue {
				dist["overdue"] += r.Count
			} else {
				dist["awaiting_review"] += r.Count
			}
		case constants.BillRoomStatusPartiallyPaid:
			dist["partially_paid"] += r.Count
		case constants.BillRoomStatusPaid:
			dist["paid"] += r.Count
		}
	}
	return helper.JsonOK(c, "", dist)
}

// -----------------------------------------
// Upcoming (GET /dashboard/upcoming)
// Lines falling due in the next week: D+1..D+3 individually, then D+4..D+7
// as one bucket.
// -----------------------------------------
func (h *DashboardHandler) Upcoming(c *fiber.Ctx) error {
	customerID, err := authz.GetCustomerID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "ไม่พบรหัสนิติบุคคล")
	}
	today := helper.Today()

	type bucket struct {
		Label  string `json:"label"`
		Date   string `json:"date,omitempty"`
		Count  int64  `json:"count"`
		Amount string `json:"amount"`
	}

	dueQ := func(from, to time.Time) *gorm.DB {
		return h.DB.Model(&roomModel.BillRoomModel{}).
			Joins("JOIN bills b ON b.id = bill_room_informations.bill_id").
			Where("bill_room_informations.customer_id = ? AND b.status = ?", customerID, constants.BillStatusSent).
			Where("bill_room_informations.status IN ?", []int{
				constants.BillRoomStatusUnpaid,
				constants.BillRoomStatusPartiallyPaid,
				constants.BillRoomStatusAwaitingReview,
			}).
			Where("b.expire_date >= ? AND b.expire_date < ?", from, to)
	}
	dueBetween := func(from, to time.Time) (int64, decimal.Decimal, error) {
		var n int64
		if err := dueQ(from, to).Count(&n).Error; err != nil {
			return 0, decimal.Zero, err
		}
		var amount decimal.Decimal
		if err := dueQ(from, to).Select("COALESCE(SUM(bill_room_informations.total_price), 0)").Scan(&amount).Error; err != nil {
			return 0, decimal.Zero, err
		}
		return n, amount, nil
	}

	buckets := make([]bucket, 0, 4)
	for d := 1; d <= 3; d++ {
		day := today.AddDate(0, 0, d)
		n, amount, err := dueBetween(day, day.AddDate(0, 0, 1))
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
		}
		buckets = append(buckets, bucket{
			Label:  fmt.Sprintf("D+%d", d),
			Date:   day.Format("2006-01-02"),
			Count:  n,
			Amount: amount.StringFixed(2),
		})
	}
	n, amount, err := dueBetween(today.AddDate(0, 0, 4), today.AddDate(0, 0, 8))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}
	buckets = append(buckets, bucket{Label: "D+4..D+7", Count: n, Amount: amount.StringFixed(2)})

	return helper.JsonOK(c, "", fiber.Map{"buckets": buckets})
}

// -----------------------------------------
// Efficiency (GET /dashboard/efficiency)
// Share of this month's sent lines fully settled, compared against last
// month and the 90% target.
// -----------------------------------------
func (h *DashboardHandler) Efficiency(c *fiber.Ctx) error {
	customerID, err := authz.GetCustomerID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "ไม่พบรหัสนิติบุคคล")
	}
	today := helper.Today()
	monthStart := helper.StartOfMonth(today)
	nextMonth := helper.StartOfNextMonth(today)
	prevMonthStart := helper.StartOfPrevMonth(today)

	window := func(from, to time.Time) *gorm.DB {
		return h.DB.Model(&roomModel.BillRoomModel{}).
			Joins("JOIN bills b ON b.id = bill_room_informations.bill_id").
			Where("bill_room_informations.customer_id = ? AND bill_room_informations.status <> ?",
				customerID, constants.StatusDeleted).
			Where("b.status = ?", constants.BillStatusSent).
			Where("b.send_date >= ? AND b.send_date < ?", from.UTC(), to.UTC())
	}
	lineStats := func(from, to time.Time) (total, paid int64, err error) {
		if err = window(from, to).Count(&total).Error; err != nil {
			return
		}
		err = window(from, to).
			Where("bill_room_informations.status = ?", constants.BillRoomStatusPaid).
			Count(&paid).Error
		return
	}

	totalThis, paidThis, err := lineStats(monthStart, nextMonth)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}
	totalLast, paidLast, err := lineStats(prevMonthStart, monthStart)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}

	rateThis := efficiencyRate(paidThis, totalThis)
	rateLast := efficiencyRate(paidLast, totalLast)
	thisMonth := fiber.Map{"paid_lines": paidThis, "total_lines": totalThis, "rate": rateThis}
	lastMonth := fiber.Map{"paid_lines": paidLast, "total_lines": totalLast, "rate": rateLast}
	return helper.JsonOK(c, "", fiber.Map{
		"this_month":        thisMonth,
		"last_month":        lastMonth,
		"delta":             rateThis - rateLast,
		"target":            paymentEfficiencyTarget,
		"needed_for_target": countToTarget(paidThis, totalThis, paymentEfficiencyTarget),
	})
}

// -----------------------------------------
// ActionItems (GET /dashboard/action-items)
// What needs attention right now: drafts never sent, review backlog, oldest
// overdue lines.
// -----------------------------------------
func (h *DashboardHandler) ActionItems(c *fiber.Ctx) error {
	customerID, err := authz.GetCustomerID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "ไม่พบรหัสนิติบุคคล")
	}
	today := helper.Today()

	var draftBills int64
	if err := h.DB.Model(&billModel.BillModel{}).
		Where("customer_id = ? AND status = ?", customerID, constants.BillStatusDraft).
		Count(&draftBills).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}

	var reviewBacklog int64
	if err := h.DB.Model(&payModel.PaymentModel{}).
		Where("customer_id = ? AND status = ?", customerID, constants.PaymentStatusAwaitingReview).
		Count(&reviewBacklog).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}

	type overdueLine struct {
		ID         string `gorm:"column:id" json:"id"`
		BillNo     string `gorm:"column:bill_no" json:"bill_no"`
		HouseNo    string `gorm:"column:house_no" json:"house_no"`
		MemberName string `gorm:"column:member_name" json:"member_name"`
		TotalPrice string `gorm:"column:total_price" json:"total_price"`
		DueDate    string `gorm:"column:due_date" json:"due_date"`
	}
	var oldest []overdueLine
	if err := h.DB.Model(&roomModel.BillRoomModel{}).
		Joins("JOIN bills b ON b.id = bill_room_informations.bill_id").
		Where("bill_room_informations.customer_id = ? AND b.status = ?", customerID, constants.BillStatusSent).
		Where("bill_room_informations.status IN ? AND b.expire_date < ?", []int{
			constants.BillRoomStatusUnpaid,
			constants.BillRoomStatusAwaitingReview,
		}, today).
		Select(`bill_room_informations.id, bill_room_informations.bill_no,
			bill_room_informations.house_no, bill_room_informations.member_name,
			to_char(bill_room_informations.total_price, 'FM999999990.00') AS total_price,
			to_char(b.expire_date, 'YYYY-MM-DD') AS due_date`).
		Order("b.expire_date ASC").
		Limit(10).
		Scan(&oldest).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}

	return helper.JsonOK(c, "", fiber.Map{
		"draft_bills":    draftBills,
		"review_backlog": reviewBacklog,
		"oldest_overdue": oldest,
	})
}
