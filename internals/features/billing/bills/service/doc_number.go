// file: internals/features/billing/bills/service/doc_number.go
//
// Per-customer, per-day monotonic document numbers:
// BILL-YYYY-MMDD-NNN for bills, INV-YYYY-MMDD-NNN for bill rooms.
// The counter resets every civil day and wraps at 1000.
package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nitihub_backend/internals/constants"
)

const DocNoMaxRetries = 3

// DocNoDatePart renders the YYYY-MMDD segment in the civil zone.
func DocNoDatePart(t time.Time) string {
	return fmt.Sprintf("%04d-%02d%02d", t.Year(), int(t.Month()), t.Day())
}

// FormatDocNo builds PREFIX-YYYY-MMDD-NNN.
func FormatDocNo(prefix string, t time.Time, seq int) string {
	return fmt.Sprintf("%s-%s-%03d", prefix, DocNoDatePart(t), seq%1000)
}

// ParseDocSeq extracts the numeric suffix of a document number.
func ParseDocSeq(docNo string) (int, bool) {
	i := strings.LastIndex(docNo, "-")
	if i < 0 || i == len(docNo)-1 {
		return 0, false
	}
	n, err := strconv.Atoi(docNo[i+1:])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// NextSeq is the successor in the 000..999 cycle.
func NextSeq(prev int) int {
	return (prev + 1) % 1000
}

// NextBillNo allocates the next BILL number inside the ambient transaction.
// The row lock on the most-recent matching bill serializes concurrent
// importers for the same (customer, day).
func NextBillNo(tx *gorm.DB, customerID string, now time.Time) (string, error) {
	return nextDocNo(tx, "bills", constants.DocPrefixBill, customerID, now)
}

// NextInvoiceNo allocates the next INV number for a bill room.
func NextInvoiceNo(tx *gorm.DB, customerID string, now time.Time) (string, error) {
	return nextDocNo(tx, "bill_room_informations", constants.DocPrefixInvoice, customerID, now)
}

func nextDocNo(tx *gorm.DB, table, prefix, customerID string, now time.Time) (string, error) {
	pattern := prefix + "-" + DocNoDatePart(now) + "-%"

	var last []string
	err := tx.Table(table).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("customer_id = ? AND bill_no LIKE ?", customerID, pattern).
		Order("bill_no DESC").
		Limit(1).
		Pluck("bill_no", &last).Error
	if err != nil {
		return "", err
	}

	if len(last) == 0 || last[0] == "" {
		return FormatDocNo(prefix, now, 0), nil
	}
	seq, ok := ParseDocSeq(last[0])
	if !ok {
		return "", fmt.Errorf("malformed document number %q in %s", last, table)
	}
	return FormatDocNo(prefix, now, NextSeq(seq)), nil
}

// IsUniqueViolation reports a duplicate-key insert (retry signal for the
// allocator's caller).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return err != nil && strings.Contains(err.Error(), "duplicate key")
}
