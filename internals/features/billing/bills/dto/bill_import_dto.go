// file: internals/features/billing/bills/dto/bill_import_dto.go
package dto

import (
	"encoding/json"

	"github.com/google/uuid"

	"nitihub_backend/internals/features/billing/bills/service"
)

type SheetPreviewRequest struct {
	UploadKey string `json:"upload_key" validate:"required,len=32"`
}

type SheetPreviewResponse struct {
	Rows    []service.RowResult  `json:"rows"`
	Summary service.SheetSummary `json:"summary"`
}

type SheetCommitRequest struct {
	UploadKey  string  `json:"upload_key" validate:"required,len=32"`
	Title      string  `json:"title" validate:"required,max=255"`
	Detail     string  `json:"detail"`
	BillTypeID *int    `json:"bill_type_id"`
	ExpireDate string  `json:"expire_date" validate:"required"`
	Status     int     `json:"status" validate:"oneof=0 1"`
	Remark     *string `json:"remark"`

	// array of ints, "2,3", or "[2,3]"
	ExcludedRows json.RawMessage `json:"excluded_rows"`
}

type SheetCommitResponse struct {
	BillID         uuid.UUID `json:"bill_id"`
	BillNo         string    `json:"bill_no"`
	Inserted       int       `json:"inserted"`
	Excluded       int       `json:"excluded"`
	SkippedInvalid int       `json:"skipped_invalid"`
}
