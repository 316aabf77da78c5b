// Package ledger implements the balance and settlement core: split
// validation and the aggregation that turns raw splits into net
// pairwise and global balances.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/tallyhq/tally/internal/models"
)

// ValidateAmount rejects amounts that are not strictly positive or that
// carry more than two fraction digits. Currency values are fixed-point
// decimals; anything finer than a cent indicates a client bug.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return Validationf("amount must be positive, got %s", amount)
	}
	if amount.Exponent() < -2 {
		return Validationf("amount %s has more than 2 decimal places", amount)
	}
	return nil
}

// ValidateSplits accepts a total and its splits if and only if the
// split list is non-empty, every split amount is a valid currency
// value, and the decimal sum of splits equals the total exactly. No
// epsilon tolerance: a discrepancy is a client-side computation bug
// that must surface immediately rather than silently drift the ledger.
func ValidateSplits(total decimal.Decimal, splits []models.Split) error {
	if err := ValidateAmount(total); err != nil {
		return err
	}
	if len(splits) == 0 {
		return Validationf("at least one split is required")
	}

	sum := decimal.Zero
	for _, split := range splits {
		if split.UserID == "" {
			return Validationf("split is missing a user")
		}
		if split.Amount.Exponent() < -2 {
			return Validationf("split amount %s has more than 2 decimal places", split.Amount)
		}
		if split.Amount.IsNegative() {
			return Validationf("split amount must not be negative, got %s", split.Amount)
		}
		sum = sum.Add(split.Amount)
	}

	if !sum.Equal(total) {
		return Validationf("total amount (%s) does not match sum of splits (%s)",
			total.StringFixed(2), sum.StringFixed(2))
	}
	return nil
}
