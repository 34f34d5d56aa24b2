// file: internals/features/billing/bills/model/bill_type_model.go
package model

import "time"

// BillTypeModel: bill category reference (common fee, water, electricity, parking).
type BillTypeModel struct {
	ID         int        `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title      string     `gorm:"column:title;type:varchar(100);not null" json:"title"`
	Status     int        `gorm:"column:status;not null;default:0" json:"status"`
	CreateDate time.Time  `gorm:"column:create_date;not null;autoCreateTime" json:"create_date"`
	CreateBy   string     `gorm:"column:create_by;type:varchar(64)" json:"create_by"`
	UpdateDate *time.Time `gorm:"column:update_date" json:"update_date,omitempty"`
	UpdateBy   *string    `gorm:"column:update_by;type:varchar(64)" json:"update_by,omitempty"`
	DeleteDate *time.Time `gorm:"column:delete_date" json:"-"`
	DeleteBy   *string    `gorm:"column:delete_by;type:varchar(64)" json:"-"`
}

func (BillTypeModel) TableName() string {
	return "bill_types"
}
