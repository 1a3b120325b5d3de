package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Invoice prefixes. The full key is PREFIX.DDMMYYYY.<userID>.<7-digit seq>,
// with the sequence scoped per user per calendar day (and per contact for
// payables/receivables).
const (
	InvoicePrefixJournal    = "JR.BK"
	InvoicePrefixSales      = "SO.BK"
	InvoicePrefixPurchase   = "PO.BK"
	InvoicePrefixAdjustment = "SA.BK"
	InvoicePrefixPayable    = "PY.BK"
	InvoicePrefixReceivable = "RC.BK"
)

// InvoiceSpec describes how to mint the grouping key for a posting event.
// Sequence assignment happens inside the event's transaction under a locking
// read, so concurrent postings by the same user on the same day cannot
// collide.
type InvoiceSpec struct {
	Prefix string
	UserID string
	Date   time.Time
	// ContactID scopes payable/receivable sequences per contact.
	ContactID *int64
}

// Scope returns the sequence scope the key is numbered within: prefix,
// contact where set, calendar day and user. Keys under distinct scopes never
// contend for a sequence number.
func (s InvoiceSpec) Scope() string {
	base := s.Prefix
	if s.ContactID != nil {
		base = fmt.Sprintf("%s.%d", s.Prefix, *s.ContactID)
	}
	return fmt.Sprintf("%s.%s.%s", base, s.Date.UTC().Format("02012006"), s.UserID)
}

// Key formats the full invoice key for one sequence number within the scope.
func (s InvoiceSpec) Key(seq int) string {
	return fmt.Sprintf("%s.%07d", s.Scope(), seq)
}

// PostingEvent stages every write of one business event. The repository
// commits all of it in a single transaction or none of it; readers never
// observe a partially posted event.
type PostingEvent struct {
	// InvoiceSpec, when set, mints a fresh grouping key inside the
	// transaction and stamps it onto every staged record. Otherwise
	// Invoice carries the pre-existing key (e.g. payments against an
	// earlier invoice).
	InvoiceSpec *InvoiceSpec
	Invoice     string

	Lines         []JournalLine
	Finances      []Finance
	InventoryTxns []InventoryTransaction

	// ProductSoldBumps increments the sold counter per product.
	ProductSoldBumps map[int64]decimal.Decimal
}

// TouchedProducts returns the distinct (product, warehouse) pairs whose cost
// and stock figures must be recomputed inside the event's transaction.
func (e PostingEvent) TouchedProducts() []ProductWarehouseRef {
	seen := make(map[ProductWarehouseRef]struct{})
	refs := make([]ProductWarehouseRef, 0, len(e.InventoryTxns))
	for _, txn := range e.InventoryTxns {
		ref := ProductWarehouseRef{ProductID: txn.ProductID, WarehouseID: txn.WarehouseID}
		if _, ok := seen[ref]; !ok {
			seen[ref] = struct{}{}
			refs = append(refs, ref)
		}
	}
	return refs
}

// ProductWarehouseRef identifies one product in one warehouse.
type ProductWarehouseRef struct {
	ProductID   int64
	WarehouseID int64
}

// EarliestIssueDate returns the earliest issue date across the staged journal
// lines; the recalculation trigger runs from that date.
func (e PostingEvent) EarliestIssueDate() (time.Time, bool) {
	var earliest time.Time
	found := false
	for _, line := range e.Lines {
		if !found || line.DateIssued.Before(earliest) {
			earliest = line.DateIssued
			found = true
		}
	}
	return earliest, found
}
