// file: internals/features/billing/bills/controller/bill_import_controller.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"nitihub_backend/internals/constants"
	"nitihub_backend/internals/features/billing/bills/dto"
	"nitihub_backend/internals/features/billing/bills/service"
	masters "nitihub_backend/internals/features/masters/service"
	uploadSvc "nitihub_backend/internals/features/uploads/service"
	helper "nitihub_backend/internals/helpers"
	authz "nitihub_backend/internals/middlewares/auth"
)

type BillImportHandler struct {
	DB      *gorm.DB
	Storage uploadSvc.Storage
}

func NewBillImportHandler(db *gorm.DB, storage uploadSvc.Storage) *BillImportHandler {
	return &BillImportHandler{DB: db, Storage: storage}
}

// Preview (POST /bills/import/preview): parse + validate, no state change.
func (h *BillImportHandler) Preview(c *fiber.Ctx) error {
	if _, err := authz.GetCustomerID(c); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "ไม่พบรหัสนิติบุคคล")
	}

	var in dto.SheetPreviewRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "รูปแบบข้อมูลไม่ถูกต้อง")
	}
	if err := helper.Validate().Struct(&in); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}

	rows, err := service.LoadSheetRows(c.UserContext(), h.DB, h.Storage, in.UploadKey)
	if err != nil {
		return h.renderSheetError(c, err)
	}

	return helper.JsonOK(c, "", dto.SheetPreviewResponse{
		Rows:    rows,
		Summary: service.Summarize(rows),
	})
}

// Commit (POST /bills/import/commit): re-parse and create atomically.
func (h *BillImportHandler) Commit(c *fiber.Ctx) error {
	customerID, err := authz.GetCustomerID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "ไม่พบรหัสนิติบุคคล")
	}
	uid, err := authz.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, constants.ErrCodeUnauthorized, "กรุณาเข้าสู่ระบบ")
	}

	var in dto.SheetCommitRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "รูปแบบข้อมูลไม่ถูกต้อง")
	}
	if err := helper.Validate().Struct(&in); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}
	expire, err := dto.ParseExpireDate(in.ExpireDate)
	if err != nil {
		return helper.JsonValidationError(c, map[string]string{"expire_date": "date"})
	}
	excluded, err := service.ParseExcludedRows(in.ExcludedRows)
	if err != nil {
		return helper.JsonValidationError(c, map[string]string{"excluded_rows": err.Error()})
	}

	rows, err := service.LoadSheetRows(c.UserContext(), h.DB, h.Storage, in.UploadKey)
	if err != nil {
		return h.renderSheetError(c, err)
	}

	// members are resolved before the transaction opens; a doc-store outage
	// must not block the import
	var members []masters.Member
	if in.Status == constants.BillStatusSent {
		houses := includedHouses(rows, excluded)
		if m, err := masters.MembersByHouses(c.UserContext(), customerID, houses); err == nil {
			members = m
		}
	}

	var out *service.CommitOutcome
	err = withDocNoRetry(func() error {
		var err error
		out, err = service.CommitSheet(h.DB, helper.NowLocal(), service.CommitInput{
			CustomerID: customerID,
			UserID:     uid,
			Title:      in.Title,
			Detail:     in.Detail,
			BillTypeID: in.BillTypeID,
			ExpireDate: expire,
			Status:     in.Status,
			Remark:     in.Remark,
			Excluded:   excluded,
			Rows:       rows,
			Members:    members,
		})
		return err
	})
	if err != nil {
		if service.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeConflictRetryable,
				"มีการออกเลขที่เอกสารพร้อมกัน กรุณาลองใหม่อีกครั้ง")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}

	return helper.JsonCreated(c, "นำเข้าบิลสำเร็จ", dto.SheetCommitResponse{
		BillID:         out.Bill.ID,
		BillNo:         out.Bill.BillNo,
		Inserted:       out.Inserted,
		Excluded:       out.Excluded,
		SkippedInvalid: out.SkippedInvalid,
	})
}

func (h *BillImportHandler) renderSheetError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrSheetNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, constants.ErrCodeNotFound, "ไม่พบไฟล์ที่อัปโหลด")
	case errors.Is(err, service.ErrMissingHeader):
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation,
			"ไม่พบหัวตารางที่จำเป็น (บ้านเลขที่ / ชื่อสมาชิก / จำนวนเงิน)")
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}
}

func includedHouses(rows []service.RowResult, excluded map[int]struct{}) []string {
	houses := make([]string, 0, len(rows))
	seen := map[string]struct{}{}
	for _, r := range rows {
		if r.Status != service.RowStatusValid {
			continue
		}
		if _, skip := excluded[r.RowNumber]; skip {
			continue
		}
		if _, ok := seen[r.HouseNo]; !ok {
			seen[r.HouseNo] = struct{}{}
			houses = append(houses, r.HouseNo)
		}
	}
	return houses
}

func withDocNoRetry(fn func() error) error {
	var err error
	for attempt := 0; attempt < service.DocNoMaxRetries; attempt++ {
		err = fn()
		if err == nil || !service.IsUniqueViolation(err) {
			return err
		}
	}
	return err
}
