package models

import "github.com/shopspring/decimal"

// Category discriminates the two kinds of ledger entries. A settlement
// is just an expense with a single full-amount split, so the balance
// aggregation treats both kinds uniformly.
type Category string

const (
	// CategoryExpense is an ordinary shared expense.
	CategoryExpense Category = "EXPENSE"

	// CategorySettlement is a direct payment between two users.
	CategorySettlement Category = "SETTLEMENT"
)

// SettlementDescription is the fixed description for settlement entries.
const SettlementDescription = "Settlement Payment"

// Entry is one recorded financial event in a group. Entries are
// immutable once created.
type Entry struct {
	// ID is the unique identifier for the entry (UUID format).
	ID string

	// GroupID is the group this entry belongs to.
	GroupID string

	// PaidBy is the user ID of the payer.
	PaidBy string

	// Description is the human-readable description of the entry.
	Description string

	// Amount is the total amount of the entry, two fraction digits.
	Amount decimal.Decimal

	// Category tags the entry as an expense or a settlement.
	Category Category

	// RelatedEntryID optionally references a prior entry in the same
	// group that this entry settles. Empty when not set.
	RelatedEntryID string

	// CreatedAt is the Unix timestamp when the entry was recorded.
	CreatedAt int64

	// Splits are the per-user shares of Amount. Their sum always equals
	// Amount exactly; this is enforced before the entry is committed.
	Splits []Split
}

// Split is one user's share of an entry's amount.
type Split struct {
	// UserID references the user who owes this share.
	UserID string

	// Amount is this user's share, two fraction digits.
	Amount decimal.Decimal
}
