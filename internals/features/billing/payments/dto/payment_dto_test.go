package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"nitihub_backend/internals/constants"
)

func strPtr(s string) *string { return &s }

func TestToPaymentModelCarriesBothRemarks(t *testing.T) {
	payableID := uuid.New()
	amount := decimal.RequireFromString("1500.50")
	req := PaymentCreateRequest{
		PayableType:   "bill_room_information",
		PayableID:     payableID.String(),
		PaymentAmount: "1500.50",
		PaymentTypeID: 2,
		BankID:        strPtr("kbank"),
		Remark:        strPtr("รับชำระที่เคาน์เตอร์"),
		MemberRemark:  strPtr("โอนแล้วครับ"),
		UploadKey:     "0123456789abcdef0123456789abcdef",
	}

	m := req.ToPaymentModel(payableID, amount, "admin-1", "cust-1")

	if m.Status != constants.PaymentStatusAwaitingReview {
		t.Errorf("status = %d, want awaiting review (%d)", m.Status, constants.PaymentStatusAwaitingReview)
	}
	if m.Remark == nil || *m.Remark != "รับชำระที่เคาน์เตอร์" {
		t.Errorf("remark not carried: %v", m.Remark)
	}
	if m.MemberRemark == nil || *m.MemberRemark != "โอนแล้วครับ" {
		t.Errorf("member_remark not carried: %v", m.MemberRemark)
	}
	if m.MemberID != "admin-1" || m.CreateBy != "admin-1" {
		t.Errorf("member_id/create_by = %q/%q, want admin-1", m.MemberID, m.CreateBy)
	}
	if m.PayableID != payableID || m.CustomerID != "cust-1" {
		t.Errorf("payable_id/customer_id mismatch")
	}
	if !m.PaymentAmount.Equal(amount) {
		t.Errorf("amount = %s, want %s", m.PaymentAmount, amount)
	}
}

func TestToPaymentModelOptionalFieldsStayNil(t *testing.T) {
	payableID := uuid.New()
	req := PaymentCreateRequest{
		PayableType:   "bill_room_information",
		PaymentAmount: "100.00",
		PaymentTypeID: 1,
		UploadKey:     "0123456789abcdef0123456789abcdef",
	}
	m := req.ToPaymentModel(payableID, decimal.RequireFromString("100.00"), "uid", "cust")
	if m.BankID != nil || m.Remark != nil || m.MemberRemark != nil {
		t.Errorf("optional fields should stay nil: bank=%v remark=%v member_remark=%v",
			m.BankID, m.Remark, m.MemberRemark)
	}
}
