// file: internals/features/billing/payments/service/intake.go
package service

import (
	"errors"

	"gorm.io/gorm"

	"nitihub_backend/internals/features/uploads/model"
)

// ErrSlipRequired: payment create without a validated attachment under the
// same upload key.
var ErrSlipRequired = errors.New("a validated slip attachment is required")

// HasValidSlip checks the slip gate: at least one attachment row with the
// given upload_key and status=1.
func HasValidSlip(db *gorm.DB, uploadKey string) (bool, error) {
	var n int64
	err := db.Model(&model.AttachmentModel{}).
		Where("upload_key = ? AND status = ?", uploadKey, model.AttachmentStatusValid).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
