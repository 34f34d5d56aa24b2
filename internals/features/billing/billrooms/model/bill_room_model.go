// file: internals/features/billing/billrooms/model/bill_room_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"nitihub_backend/internals/constants"
	helper "nitihub_backend/internals/helpers"
)

// BillRoomModel is the per-unit invoice (one row of a bill, addressed to a
// housing unit). It is the settlement target.
// status: 0 unpaid, 4 partially paid, 1 paid, 5 awaiting review, 2 deleted.
// Overdue (3) is derived at read time and never persisted.
type BillRoomModel struct {
	ID uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	BillID uuid.UUID `gorm:"column:bill_id;type:uuid;not null;index" json:"bill_id"`

	// human id INV-YYYY-MMDD-NNN, unique within (customer, day)
	BillNo string `gorm:"column:bill_no;type:varchar(20);not null;uniqueIndex:uniq_bill_rooms_customer_no,priority:2" json:"bill_no"`

	HouseNo    string          `gorm:"column:house_no;type:varchar(50);not null;index" json:"house_no"`
	MemberName string          `gorm:"column:member_name;type:varchar(255);not null" json:"member_name"`
	TotalPrice decimal.Decimal `gorm:"column:total_price;type:numeric(14,2);not null" json:"total_price"`
	Remark     *string         `gorm:"column:remark;type:text" json:"remark,omitempty"`
	CustomerID string          `gorm:"column:customer_id;type:varchar(64);not null;index;uniqueIndex:uniq_bill_rooms_customer_no,priority:1" json:"customer_id"`

	Status int `gorm:"column:status;not null;default:0;index" json:"status"`

	CreateDate time.Time  `gorm:"column:create_date;not null;autoCreateTime" json:"create_date"`
	CreateBy   string     `gorm:"column:create_by;type:varchar(64)" json:"create_by"`
	UpdateDate *time.Time `gorm:"column:update_date" json:"update_date,omitempty"`
	UpdateBy   *string    `gorm:"column:update_by;type:varchar(64)" json:"update_by,omitempty"`
	DeleteDate *time.Time `gorm:"column:delete_date" json:"-"`
	DeleteBy   *string    `gorm:"column:delete_by;type:varchar(64)" json:"-"`
}

func (BillRoomModel) TableName() string {
	return "bill_room_informations"
}

// DisplayStatus maps the persisted status to the presented one: unpaid or
// awaiting-review lines past the bill deadline show as overdue.
func DisplayStatus(persisted int, expireDate time.Time, today time.Time) int {
	if persisted != constants.BillRoomStatusUnpaid && persisted != constants.BillRoomStatusAwaitingReview {
		return persisted
	}
	if helper.IsOverdue(expireDate, today) {
		return constants.BillRoomStatusOverdue
	}
	return persisted
}
