// file: internals/features/billing/bills/service/sheet_commit.go
package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	"gorm.io/gorm"

	"nitihub_backend/internals/constants"
	"nitihub_backend/internals/features/billing/bills/model"
	roomModel "nitihub_backend/internals/features/billing/billrooms/model"
	masters "nitihub_backend/internals/features/masters/service"
	notif "nitihub_backend/internals/features/notifications/service"
	uploadModel "nitihub_backend/internals/features/uploads/model"
	uploadSvc "nitihub_backend/internals/features/uploads/service"
)

var ErrSheetNotFound = errors.New("no validated sheet under this upload key")

// LoadSheetRows resolves the uploaded sheet behind an upload key, parses it
// and validates every row. Shared by preview and commit so both phases see
// the same rows.
func LoadSheetRows(ctx context.Context, db *gorm.DB, storage uploadSvc.Storage, uploadKey string) ([]RowResult, error) {
	var att uploadModel.AttachmentModel
	err := db.
		Where("upload_key = ? AND status = ?", uploadKey, uploadModel.AttachmentStatusValid).
		Order("create_date DESC").
		First(&att).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSheetNotFound
	}
	if err != nil {
		return nil, err
	}

	rc, err := storage.Open(ctx, att.FilePath)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, 20<<20))
	if err != nil {
		return nil, err
	}
	raw, err := ParseSheet(att.FileName, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return ValidateRows(raw), nil
}

type CommitInput struct {
	CustomerID string
	UserID     string
	Title      string
	Detail     string
	BillTypeID *int
	ExpireDate time.Time
	Status     int // 0 draft, 1 sent
	Remark     *string
	Excluded   map[int]struct{}
	Rows       []RowResult
	Members    []masters.Member // resolved before commit; used only when sent
}

type CommitOutcome struct {
	Bill           *model.BillModel
	Rooms          []roomModel.BillRoomModel
	Inserted       int
	Excluded       int
	SkippedInvalid int
}

// CommitSheet creates the bill and one bill room per included valid row in a
// single transaction. Document-number races surface as unique violations; the
// caller retries via IsUniqueViolation, re-running the whole transaction.
func CommitSheet(db *gorm.DB, now time.Time, in CommitInput) (*CommitOutcome, error) {
	out := &CommitOutcome{}

	included := make([]RowResult, 0, len(in.Rows))
	for _, r := range in.Rows {
		if r.Status != RowStatusValid {
			out.SkippedInvalid++
			continue
		}
		if _, skip := in.Excluded[r.RowNumber]; skip {
			out.Excluded++
			continue
		}
		included = append(included, r)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		utc := time.Now().UTC()

		billNo, err := NextBillNo(tx, in.CustomerID, now)
		if err != nil {
			return err
		}
		bill := model.BillModel{
			BillNo:     billNo,
			Title:      in.Title,
			Detail:     in.Detail,
			BillTypeID: in.BillTypeID,
			ExpireDate: in.ExpireDate,
			CustomerID: in.CustomerID,
			Remark:     in.Remark,
			Status:     in.Status,
			CreateDate: utc,
			CreateBy:   in.UserID,
		}
		if in.Status == constants.BillStatusSent {
			bill.SendDate = &utc
		}
		if err := tx.Create(&bill).Error; err != nil {
			return err
		}

		rooms := make([]roomModel.BillRoomModel, 0, len(included))
		for _, r := range included {
			invNo, err := NextInvoiceNo(tx, in.CustomerID, now)
			if err != nil {
				return err
			}
			room := roomModel.BillRoomModel{
				BillID:     bill.ID,
				BillNo:     invNo,
				HouseNo:    r.HouseNo,
				MemberName: r.MemberName,
				TotalPrice: r.Amount,
				CustomerID: in.CustomerID,
				Status:     constants.BillRoomStatusUnpaid,
				CreateDate: utc,
				CreateBy:   in.UserID,
			}
			if r.Remark != "" {
				remark := r.Remark
				room.Remark = &remark
			}
			// rooms are created one by one: each insert must land before the
			// next allocator call reads the latest number
			if err := tx.Create(&room).Error; err != nil {
				return err
			}
			rooms = append(rooms, room)
		}

		if err := AppendAudit(tx, bill.ID, bill.Status, in.UserID); err != nil {
			return err
		}
		if in.Status == constants.BillStatusSent {
			if err := notif.EmitBillSent(tx, &bill, rooms, in.Members, in.UserID); err != nil {
				return err
			}
		}

		out.Bill = &bill
		out.Rooms = rooms
		out.Inserted = len(rooms)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
