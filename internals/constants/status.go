package constants

// Shared status encoding: lifecycle and tombstone share one integer column.
// 2 means deleted in every table and is excluded from every read path.
const (
	StatusDeleted = 2
)

// Bill lifecycle
const (
	BillStatusDraft    = 0
	BillStatusSent     = 1
	BillStatusCanceled = 3 // was sent, retracted
)

// BillRoom (per-unit invoice) lifecycle.
// Overdue (3) is derived at read time and never persisted.
const (
	BillRoomStatusUnpaid         = 0
	BillRoomStatusPaid           = 1
	BillRoomStatusOverdue        = 3
	BillRoomStatusPartiallyPaid  = 4
	BillRoomStatusAwaitingReview = 5
)

// Payment lifecycle
const (
	PaymentStatusAwaitingReview = 0
	PaymentStatusApproved       = 1
	PaymentStatusRejected       = 3
)

// Transaction type (derived from paid-to-date vs total_price)
const (
	TransactionTypeFull    = "full"
	TransactionTypePartial = "partial"
)

// Polymorphic payable tags
const (
	PayableTypeBillRoom = "bill_room_information"
)

// Document number prefixes
const (
	DocPrefixBill    = "BILL"
	DocPrefixInvoice = "INV"
)
