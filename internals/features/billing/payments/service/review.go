// file: internals/features/billing/payments/service/review.go
//
// Admin bulk approval/rejection of payment notifications. The batch is
// partial-success: per-id failures are accumulated, never abort the batch.
// Approving a bill-room payable synthesizes a settlement transaction in a
// separate transaction; a settlement failure is reported but does not revert
// the approval (best-effort settlement on approve).
package service

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nitihub_backend/internals/constants"
	"nitihub_backend/internals/features/billing/payments/model"
	settlement "nitihub_backend/internals/features/billing/transactions/service"
)

const (
	ReasonNotFound         = "NotFound"
	ReasonAlreadyProcessed = "AlreadyProcessed"
	ReasonSettlementFailed = "SettlementFailed"
)

var (
	ErrEmptyBatch     = errors.New("payment id list is empty")
	ErrBadStatus      = errors.New("review status must be approved (1) or rejected (3)")
	ErrRemarkOnReject = errors.New("rejection requires a remark")
)

type ReviewInput struct {
	IDs        []uuid.UUID
	Status     int // 1 approved | 3 rejected
	Remark     string
	CustomerID string
	By         string
}

type ReviewSuccess struct {
	ID         uuid.UUID `json:"id"`
	Status     int       `json:"status"`
	Settled    bool      `json:"settled"`
	SettleNote string    `json:"settle_note,omitempty"`
}

type ReviewFailure struct {
	ID     uuid.UUID `json:"id"`
	Reason string    `json:"reason"`
}

type ReviewResult struct {
	Total        int             `json:"total"`
	SuccessCount int             `json:"success_count"`
	FailedCount  int             `json:"failed_count"`
	Success      []ReviewSuccess `json:"success"`
	Failed       []ReviewFailure `json:"failed"`
}

// ValidateReviewInput checks the batch envelope; failures here abort the
// whole batch before any mutation.
func ValidateReviewInput(in ReviewInput) error {
	if len(in.IDs) == 0 {
		return ErrEmptyBatch
	}
	if in.Status != constants.PaymentStatusApproved && in.Status != constants.PaymentStatusRejected {
		return ErrBadStatus
	}
	if in.Status == constants.PaymentStatusRejected && in.Remark == "" {
		return ErrRemarkOnReject
	}
	return nil
}

// DecideReview is the per-id state check: only payments awaiting review may
// be processed.
func DecideReview(found bool, currentStatus int) (ok bool, reason string) {
	if !found {
		return false, ReasonNotFound
	}
	if currentStatus != constants.PaymentStatusAwaitingReview {
		return false, ReasonAlreadyProcessed
	}
	return true, ""
}

// BulkReview processes each id in its own transaction under a row lock.
func BulkReview(db *gorm.DB, in ReviewInput) (*ReviewResult, error) {
	if err := ValidateReviewInput(in); err != nil {
		return nil, err
	}

	result := &ReviewResult{
		Total:   len(in.IDs),
		Success: []ReviewSuccess{},
		Failed:  []ReviewFailure{},
	}

	for _, id := range in.IDs {
		var reviewed *model.PaymentModel
		var failReason string

		err := db.Transaction(func(tx *gorm.DB) error {
			var p model.PaymentModel
			err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ? AND customer_id = ? AND status <> ?", id, in.CustomerID, constants.StatusDeleted).
				First(&p).Error
			found := err == nil
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			ok, reason := DecideReview(found, p.Status)
			if !ok {
				failReason = reason
				return nil
			}

			now := time.Now().UTC()
			updates := map[string]interface{}{
				"status":      in.Status,
				"update_date": now,
				"update_by":   in.By,
			}
			if in.Remark != "" {
				updates["remark"] = in.Remark
			}
			if err := tx.Model(&p).Updates(updates).Error; err != nil {
				return err
			}
			p.Status = in.Status
			reviewed = &p
			return nil
		})
		if err != nil {
			log.Printf("[ERROR] review payment %s: %v", id, err)
			result.Failed = append(result.Failed, ReviewFailure{ID: id, Reason: constants.ErrCodeInternal})
			continue
		}
		if reviewed == nil {
			result.Failed = append(result.Failed, ReviewFailure{ID: id, Reason: failReason})
			continue
		}

		entry := ReviewSuccess{ID: id, Status: in.Status}

		// settlement runs after the approval commit, on purpose: an
		// external/transient settlement failure must not undo the review
		if in.Status == constants.PaymentStatusApproved && reviewed.PayableType == constants.PayableTypeBillRoom {
			pid := reviewed.ID
			_, serr := settlement.Settle(db, settlement.SettleInput{
				BillRoomID: reviewed.PayableID,
				PaymentID:  &pid,
				Amount:     reviewed.PaymentAmount,
				CustomerID: in.CustomerID,
				By:         in.By,
			})
			if serr != nil {
				log.Printf("[ERROR] settle payment %s: %v", id, serr)
				entry.Settled = false
				entry.SettleNote = ReasonSettlementFailed
			} else {
				entry.Settled = true
			}
		}

		result.Success = append(result.Success, entry)
	}

	result.SuccessCount = len(result.Success)
	result.FailedCount = len(result.Failed)
	return result, nil
}
