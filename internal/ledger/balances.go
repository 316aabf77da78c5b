package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Net is the signed balance against one counterparty. Positive means
// the counterparty owes you; negative means you owe them.
type Net struct {
	UserID string
	Amount decimal.Decimal
}

// GlobalBalance is a user's position across all of their groups.
// Self-splits (the payer's own share of an entry) are excluded from
// both sums, so TotalBalance is always OwedToYou - YouOwe.
type GlobalBalance struct {
	YouOwe       decimal.Decimal
	OwedToYou    decimal.Decimal
	TotalBalance decimal.Decimal
}

// MergeNets computes net pairwise balances from two grouped aggregates:
// paid[m] is the sum of splits where the user paid and m owes a share,
// owed[m] is the sum of splits where m paid and the user owes a share.
// The maps come from one aggregate query per direction, so the cost is
// two round trips regardless of member count.
//
// Counterparties whose net is exactly zero are dropped, not reported
// with a zero amount. Results are sorted by user ID so repeated calls
// over the same data return the same order.
func MergeNets(paid, owed map[string]decimal.Decimal) []Net {
	merged := make(map[string]decimal.Decimal, len(paid)+len(owed))
	for userID, amount := range paid {
		merged[userID] = amount
	}
	for userID, amount := range owed {
		merged[userID] = getOrZero(merged, userID).Sub(amount)
	}

	nets := make([]Net, 0, len(merged))
	for userID, amount := range merged {
		if amount.IsZero() {
			continue
		}
		nets = append(nets, Net{UserID: userID, Amount: amount})
	}
	sort.Slice(nets, func(i, j int) bool { return nets[i].UserID < nets[j].UserID })
	return nets
}

// Global derives a GlobalBalance from the two directional sums.
func Global(owedToYou, youOwe decimal.Decimal) GlobalBalance {
	return GlobalBalance{
		YouOwe:       youOwe,
		OwedToYou:    owedToYou,
		TotalBalance: owedToYou.Sub(youOwe),
	}
}

func getOrZero(m map[string]decimal.Decimal, key string) decimal.Decimal {
	if v, ok := m[key]; ok {
		return v
	}
	return decimal.Zero
}
