// file: internals/features/billing/bills/dto/bill_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"nitihub_backend/internals/features/billing/bills/model"
)

// ================== REQUEST ==================

type BillCreateRequest struct {
	Title      string  `json:"title" validate:"required,max=255"`
	Detail     string  `json:"detail"`
	BillTypeID *int    `json:"bill_type_id"`
	ExpireDate string  `json:"expire_date" validate:"required"` // YYYY-MM-DD
	Status     int     `json:"status" validate:"oneof=0 1"`     // draft | sent
	Remark     *string `json:"remark"`
}

type BillUpdateRequest struct {
	Title      *string `json:"title" validate:"omitempty,max=255"`
	Detail     *string `json:"detail"`
	BillTypeID *int    `json:"bill_type_id"`
	ExpireDate *string `json:"expire_date"` // YYYY-MM-DD
	Status     *int    `json:"status" validate:"omitempty,oneof=0 1 3"`
	Remark     *string `json:"remark"`
}

// ================== RESPONSE ==================

type BillResponse struct {
	ID         uuid.UUID  `json:"id"`
	BillNo     string     `json:"bill_no"`
	Title      string     `json:"title"`
	Detail     string     `json:"detail"`
	BillTypeID *int       `json:"bill_type_id"`
	ExpireDate string     `json:"expire_date"`
	SendDate   *time.Time `json:"send_date"`
	CustomerID string     `json:"customer_id"`
	Remark     *string    `json:"remark,omitempty"`
	Status     int        `json:"status"`
	CreateDate time.Time  `json:"create_date"`
	CreateBy   string     `json:"create_by"`
	UpdateDate *time.Time `json:"update_date,omitempty"`
}

type BillAuditResponse struct {
	ID         uuid.UUID `json:"id"`
	Status     int       `json:"status"`
	CreateDate time.Time `json:"create_date"`
	CreateBy   string    `json:"create_by"`
}

// ================ CONVERSION =================

func ToBillResponse(m *model.BillModel) *BillResponse {
	return &BillResponse{
		ID:         m.ID,
		BillNo:     m.BillNo,
		Title:      m.Title,
		Detail:     m.Detail,
		BillTypeID: m.BillTypeID,
		ExpireDate: m.ExpireDate.Format("2006-01-02"),
		SendDate:   m.SendDate,
		CustomerID: m.CustomerID,
		Remark:     m.Remark,
		Status:     m.Status,
		CreateDate: m.CreateDate,
		CreateBy:   m.CreateBy,
		UpdateDate: m.UpdateDate,
	}
}

func ToBillResponses(models []model.BillModel) []BillResponse {
	out := make([]BillResponse, 0, len(models))
	for i := range models {
		out = append(out, *ToBillResponse(&models[i]))
	}
	return out
}

func ToBillAuditResponses(models []model.BillAuditModel) []BillAuditResponse {
	out := make([]BillAuditResponse, 0, len(models))
	for _, m := range models {
		out = append(out, BillAuditResponse{
			ID:         m.ID,
			Status:     m.Status,
			CreateDate: m.CreateDate,
			CreateBy:   m.CreateBy,
		})
	}
	return out
}

// ParseExpireDate reads the civil-day deadline (date only).
func ParseExpireDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
