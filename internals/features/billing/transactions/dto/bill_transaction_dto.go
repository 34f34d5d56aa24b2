// file: internals/features/billing/transactions/dto/bill_transaction_dto.go
package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"nitihub_backend/internals/features/billing/transactions/model"
)

// ManualTransactionRequest records an off-app settlement (cash at the office,
// direct transfer) against one bill room.
type ManualTransactionRequest struct {
	BillRoomID            string          `json:"bill_room_id" validate:"required,uuid4"`
	BillTransactionTypeID int             `json:"bill_transaction_type_id" validate:"required,min=1"`
	TransactionAmount     string          `json:"transaction_amount" validate:"required"`
	PayDate               *string         `json:"pay_date"` // YYYY-MM-DD, defaults to today
	Remark                *string         `json:"remark"`
	TransactionJSON       json.RawMessage `json:"transaction_type_json"`
}

type BillTransactionResponse struct {
	ID                    uuid.UUID  `json:"id"`
	BillRoomID            uuid.UUID  `json:"bill_room_id"`
	PaymentID             *uuid.UUID `json:"payment_id,omitempty"`
	BillTransactionTypeID *int       `json:"bill_transaction_type_id,omitempty"`
	TransactionAmount     string     `json:"transaction_amount"`
	PayDate               time.Time  `json:"pay_date"`
	TransactionDate       time.Time  `json:"transaction_date"`
	TransactionType       string     `json:"transaction_type"`
	Remark                *string    `json:"remark,omitempty"`
	CreateBy              string     `json:"create_by"`
}

func ToBillTransactionResponse(m *model.BillTransactionModel) *BillTransactionResponse {
	return &BillTransactionResponse{
		ID:                    m.ID,
		BillRoomID:            m.BillRoomID,
		PaymentID:             m.PaymentID,
		BillTransactionTypeID: m.BillTransactionTypeID,
		TransactionAmount:     m.TransactionAmount.StringFixed(2),
		PayDate:               m.PayDate,
		TransactionDate:       m.TransactionDate,
		TransactionType:       m.TransactionType,
		Remark:                m.Remark,
		CreateBy:              m.CreateBy,
	}
}

func ToBillTransactionResponses(models []model.BillTransactionModel) []BillTransactionResponse {
	out := make([]BillTransactionResponse, 0, len(models))
	for i := range models {
		out = append(out, *ToBillTransactionResponse(&models[i]))
	}
	return out
}
