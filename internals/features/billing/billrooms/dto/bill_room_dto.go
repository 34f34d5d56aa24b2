// file: internals/features/billing/billrooms/dto/bill_room_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"nitihub_backend/internals/features/billing/billrooms/model"
)

// BillRoomResponse carries both the persisted status and the presented one
// (overdue is derived from the bill deadline, never stored).
type BillRoomResponse struct {
	ID            uuid.UUID  `json:"id"`
	BillID        uuid.UUID  `json:"bill_id"`
	BillNo        string     `json:"bill_no"`
	HouseNo       string     `json:"house_no"`
	MemberName    string     `json:"member_name"`
	TotalPrice    string     `json:"total_price"`
	Remark        *string    `json:"remark,omitempty"`
	CustomerID    string     `json:"customer_id"`
	Status        int        `json:"status"`
	DisplayStatus int        `json:"display_status"`
	CreateDate    time.Time  `json:"create_date"`
	UpdateDate    *time.Time `json:"update_date,omitempty"`
}

func ToBillRoomResponse(m *model.BillRoomModel, expireDate, today time.Time) *BillRoomResponse {
	return &BillRoomResponse{
		ID:            m.ID,
		BillID:        m.BillID,
		BillNo:        m.BillNo,
		HouseNo:       m.HouseNo,
		MemberName:    m.MemberName,
		TotalPrice:    m.TotalPrice.StringFixed(2),
		Remark:        m.Remark,
		CustomerID:    m.CustomerID,
		Status:        m.Status,
		DisplayStatus: model.DisplayStatus(m.Status, expireDate, today),
		CreateDate:    m.CreateDate,
		UpdateDate:    m.UpdateDate,
	}
}

// ParseDeadline reads a YYYY-MM-DD deadline scanned off a join column.
func ParseDeadline(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func ToBillRoomResponses(models []model.BillRoomModel, expireDate, today time.Time) []BillRoomResponse {
	out := make([]BillRoomResponse, 0, len(models))
	for i := range models {
		out = append(out, *ToBillRoomResponse(&models[i], expireDate, today))
	}
	return out
}
