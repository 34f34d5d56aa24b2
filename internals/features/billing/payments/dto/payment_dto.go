// file: internals/features/billing/payments/dto/payment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"nitihub_backend/internals/constants"
	"nitihub_backend/internals/features/billing/payments/model"
)

// ================== REQUEST ==================

type PaymentCreateRequest struct {
	PayableType   string  `json:"payable_type" validate:"required,oneof=bill_room_information"`
	PayableID     string  `json:"payable_id" validate:"required,uuid4"`
	PaymentAmount string  `json:"payment_amount" validate:"required"`
	PaymentTypeID int     `json:"payment_type_id" validate:"required,min=1"`
	BankID        *string `json:"bank_id"`
	Remark        *string `json:"remark"`
	MemberRemark  *string `json:"member_remark"`
	UploadKey     string  `json:"upload_key" validate:"required,len=32"`
}

// ToPaymentModel builds the awaiting-review row from a validated request.
func (r *PaymentCreateRequest) ToPaymentModel(payableID uuid.UUID, amount decimal.Decimal, memberID, customerID string) model.PaymentModel {
	return model.PaymentModel{
		PayableType:   r.PayableType,
		PayableID:     payableID,
		PaymentAmount: amount,
		PaymentTypeID: r.PaymentTypeID,
		BankID:        r.BankID,
		MemberID:      memberID,
		Remark:        r.Remark,
		MemberRemark:  r.MemberRemark,
		UploadKey:     r.UploadKey,
		CustomerID:    customerID,
		Status:        constants.PaymentStatusAwaitingReview,
		CreateBy:      memberID,
	}
}

type PaymentReviewRequest struct {
	IDs    []string `json:"ids" validate:"required,min=1,dive,uuid4"`
	Status int      `json:"status" validate:"oneof=1 3"`
	Remark string   `json:"remark"`
}

// ================== RESPONSE ==================

type PaymentResponse struct {
	ID            uuid.UUID  `json:"id"`
	PayableType   string     `json:"payable_type"`
	PayableID     uuid.UUID  `json:"payable_id"`
	PaymentAmount string     `json:"payment_amount"`
	PaymentTypeID int        `json:"payment_type_id"`
	BankID        *string    `json:"bank_id,omitempty"`
	BankTitle     string     `json:"bank_title,omitempty"`
	MemberID      string     `json:"member_id"`
	Remark        *string    `json:"remark,omitempty"`
	MemberRemark  *string    `json:"member_remark,omitempty"`
	UploadKey     string     `json:"upload_key"`
	CustomerID    string     `json:"customer_id"`
	Status        int        `json:"status"`
	CreateDate    time.Time  `json:"create_date"`
	UpdateDate    *time.Time `json:"update_date,omitempty"`
}

func ToPaymentResponse(m *model.PaymentModel) *PaymentResponse {
	return &PaymentResponse{
		ID:            m.ID,
		PayableType:   m.PayableType,
		PayableID:     m.PayableID,
		PaymentAmount: m.PaymentAmount.StringFixed(2),
		PaymentTypeID: m.PaymentTypeID,
		BankID:        m.BankID,
		MemberID:      m.MemberID,
		Remark:        m.Remark,
		MemberRemark:  m.MemberRemark,
		UploadKey:     m.UploadKey,
		CustomerID:    m.CustomerID,
		Status:        m.Status,
		CreateDate:    m.CreateDate,
		UpdateDate:    m.UpdateDate,
	}
}

func ToPaymentResponses(models []model.PaymentModel) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(models))
	for i := range models {
		out = append(out, *ToPaymentResponse(&models[i]))
	}
	return out
}
