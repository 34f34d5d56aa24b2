package controller

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"nitihub_backend/internals/constants"
	"nitihub_backend/internals/features/billing/billrooms/dto"
	"nitihub_backend/internals/features/billing/billrooms/model"
	payModel "nitihub_backend/internals/features/billing/payments/model"
)

func unpaidRow(price, deadline string) appRoomRow {
	return appRoomRow{
		BillRoomModel: model.BillRoomModel{
			ID:         uuid.New(),
			TotalPrice: decimal.RequireFromString(price),
			Status:     constants.BillRoomStatusUnpaid,
		},
		BillExpireDate: deadline,
	}
}

func TestArrearsRollup(t *testing.T) {
	today := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)

	rows := []appRoomRow{
		unpaidRow("1200.00", "2026-05-01"), // past deadline
		unpaidRow("800.50", "2026-05-20"),  // still due
		unpaidRow("99.50", "2026-05-09"),   // past deadline
	}
	got := arrearsRollup(rows, today)

	if got.Count != 3 {
		t.Errorf("unpaid count = %d, want 3", got.Count)
	}
	if got.Total.StringFixed(2) != "2100.00" {
		t.Errorf("unpaid total = %s, want 2100.00", got.Total.StringFixed(2))
	}
	if got.OverdueCount != 2 {
		t.Errorf("overdue count = %d, want 2", got.OverdueCount)
	}
	if got.OverdueTotal.StringFixed(2) != "1299.50" {
		t.Errorf("overdue total = %s, want 1299.50", got.OverdueTotal.StringFixed(2))
	}
}

func TestArrearsRollupEmpty(t *testing.T) {
	got := arrearsRollup(nil, time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC))
	if got.Count != 0 || got.OverdueCount != 0 {
		t.Errorf("empty rollup counts = %d/%d, want 0/0", got.Count, got.OverdueCount)
	}
	if got.Total.StringFixed(2) != "0.00" || got.OverdueTotal.StringFixed(2) != "0.00" {
		t.Errorf("empty rollup totals = %s/%s, want 0.00/0.00",
			got.Total.StringFixed(2), got.OverdueTotal.StringFixed(2))
	}
}

func TestApplyLatestPayments(t *testing.T) {
	lineA := uuid.New()
	lineB := uuid.New()
	lineC := uuid.New()

	items := []appBillRoomItem{
		{BillRoomResponse: dto.BillRoomResponse{ID: lineA}},
		{BillRoomResponse: dto.BillRoomResponse{ID: lineB}},
		{BillRoomResponse: dto.BillRoomResponse{ID: lineC}},
	}

	remark := "สลิปไม่ชัดเจน"
	decided := time.Date(2026, 5, 8, 9, 30, 0, 0, time.UTC)
	// ordered newest first, as the query returns them
	payments := []payModel.PaymentModel{
		{ID: uuid.New(), PayableID: lineA, Status: constants.PaymentStatusRejected, Remark: &remark, UpdateDate: &decided},
		{ID: uuid.New(), PayableID: lineA, Status: constants.PaymentStatusApproved},
		{ID: uuid.New(), PayableID: lineB, Status: constants.PaymentStatusAwaitingReview},
	}

	applyLatestPayments(items, payments)

	// rejected latest claim exposes remark and decision date
	if items[0].LastPaymentStatus == nil || *items[0].LastPaymentStatus != constants.PaymentStatusRejected {
		t.Errorf("line A last payment status = %v, want rejected", items[0].LastPaymentStatus)
	}
	if items[0].RejectRemark == nil || *items[0].RejectRemark != remark {
		t.Errorf("line A reject remark = %v, want %q", items[0].RejectRemark, remark)
	}
	if items[0].RejectDate == nil || !items[0].RejectDate.Equal(decided) {
		t.Errorf("line A reject date = %v, want %v", items[0].RejectDate, decided)
	}

	// non-rejected latest claim carries only the status
	if items[1].LastPaymentStatus == nil || *items[1].LastPaymentStatus != constants.PaymentStatusAwaitingReview {
		t.Errorf("line B last payment status = %v, want awaiting review", items[1].LastPaymentStatus)
	}
	if items[1].RejectRemark != nil || items[1].RejectDate != nil {
		t.Errorf("line B should have no rejection fields")
	}

	// no claim at all
	if items[2].LastPaymentStatus != nil {
		t.Errorf("line C should have no payment status")
	}
}
