// file: internals/features/billing/transactions/model/bill_transaction_type_model.go
package model

import "time"

// BillTransactionTypeModel: manual-entry channel reference (cash at counter,
// bank transfer, cheque, ...). Only manual transactions carry this id.
type BillTransactionTypeModel struct {
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

func (BillTransactionTypeModel) TableName() string {
	return "bill_transaction_types"
}
