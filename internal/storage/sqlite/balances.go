package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
)

// SumsPaidBy returns, per counterparty, the sum of split amounts on
// entries the user paid for within the group. The user's own splits
// are excluded. One aggregate query regardless of member count.
func (s *SQLiteStore) SumsPaidBy(ctx context.Context, groupID, userID string) (map[string]decimal.Decimal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT sp.user_id, SUM(sp.amount_cents)
		 FROM splits sp
		 JOIN entries e ON e.id = sp.entry_id
		 WHERE e.group_id = ? AND e.paid_by = ? AND sp.user_id != ?
		 GROUP BY sp.user_id`,
		groupID, userID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to sum paid splits: %w", err)
	}
	return collectSums(rows)
}

// SumsOwedBy returns, per payer, the sum of the user's split amounts on
// entries within the group that someone else paid for.
func (s *SQLiteStore) SumsOwedBy(ctx context.Context, groupID, userID string) (map[string]decimal.Decimal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT e.paid_by, SUM(sp.amount_cents)
		 FROM splits sp
		 JOIN entries e ON e.id = sp.entry_id
		 WHERE e.group_id = ? AND sp.user_id = ? AND e.paid_by != ?
		 GROUP BY e.paid_by`,
		groupID, userID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to sum owed splits: %w", err)
	}
	return collectSums(rows)
}

// GlobalSums returns the user's position across all groups: the total
// others owe them and the total they owe others. Self-splits are
// excluded from both sums by construction.
func (s *SQLiteStore) GlobalSums(ctx context.Context, userID string) (owedToYou, youOwe decimal.Decimal, err error) {
	var owedCents, oweCents int64

	err = s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(sp.amount_cents), 0)
		 FROM splits sp
		 JOIN entries e ON e.id = sp.entry_id
		 WHERE e.paid_by = ? AND sp.user_id != ?`,
		userID, userID,
	).Scan(&owedCents)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum owed to user: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(sp.amount_cents), 0)
		 FROM splits sp
		 JOIN entries e ON e.id = sp.entry_id
		 WHERE sp.user_id = ? AND e.paid_by != ?`,
		userID, userID,
	).Scan(&oweCents)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum owed by user: %w", err)
	}

	return fromCents(owedCents), fromCents(oweCents), nil
}

// collectSums scans (user_id, cents) rows into a decimal map.
func collectSums(rows *sql.Rows) (map[string]decimal.Decimal, error) {
	defer rows.Close()

	sums := make(map[string]decimal.Decimal)
	for rows.Next() {
		var userID string
		var cents int64
		if err := rows.Scan(&userID, &cents); err != nil {
			return nil, fmt.Errorf("failed to scan sum: %w", err)
		}
		sums[userID] = fromCents(cents)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sums: %w", err)
	}

	return sums, nil
}
