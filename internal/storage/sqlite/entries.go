package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tallyhq/tally/internal/ledger"
	"github.com/tallyhq/tally/internal/models"
)

// CreateEntry persists an entry and all of its splits in a single
// transaction. Either everything commits or nothing does, so a
// concurrent balance read never observes an entry with a partial split
// set. The split sum is validated by the caller before this point; the
// store enforces referential integrity (foreign keys plus the
// same-group rule for related entries).
func (s *SQLiteStore) CreateEntry(ctx context.Context, entry *models.Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt == 0 {
		entry.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &ledger.IntegrityError{Op: "begin entry transaction", Err: err}
	}
	defer tx.Rollback()

	// A related entry must exist and belong to the same group.
	relatedID := sql.NullString{}
	if entry.RelatedEntryID != "" {
		var relatedGroup string
		err := tx.QueryRowContext(ctx,
			"SELECT group_id FROM entries WHERE id = ?", entry.RelatedEntryID,
		).Scan(&relatedGroup)
		if err == sql.ErrNoRows {
			return ledger.NotFound("related entry", entry.RelatedEntryID)
		}
		if err != nil {
			return &ledger.IntegrityError{Op: "check related entry", Err: err}
		}
		if relatedGroup != entry.GroupID {
			return ledger.Validationf("related entry %s belongs to a different group", entry.RelatedEntryID)
		}
		relatedID = sql.NullString{String: entry.RelatedEntryID, Valid: true}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO entries (id, group_id, paid_by, description, amount_cents, category, related_entry_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.GroupID, entry.PaidBy, entry.Description,
		toCents(entry.Amount), string(entry.Category), relatedID, entry.CreatedAt,
	)
	if err != nil {
		return &ledger.IntegrityError{Op: "insert entry", Err: err}
	}

	for _, split := range entry.Splits {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO splits (id, entry_id, user_id, amount_cents) VALUES (?, ?, ?, ?)",
			uuid.New().String(), entry.ID, split.UserID, toCents(split.Amount),
		)
		if err != nil {
			return &ledger.IntegrityError{Op: "insert split", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &ledger.IntegrityError{Op: "commit entry", Err: err}
	}

	return nil
}

// GetEntry retrieves an entry with its splits.
func (s *SQLiteStore) GetEntry(ctx context.Context, id string) (*models.Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, group_id, paid_by, description, amount_cents, category, related_entry_id, created_at
		 FROM entries WHERE id = ?`,
		id,
	)

	entry, err := scanEntry(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil // Entry not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}

	if err := s.attachSplits(ctx, []*models.Entry{entry}); err != nil {
		return nil, err
	}
	return entry, nil
}

// ListEntriesByGroup returns the group's entries, newest first. The
// rowid tiebreak keeps the order stable when timestamps collide.
func (s *SQLiteStore) ListEntriesByGroup(ctx context.Context, groupID string) ([]*models.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, paid_by, description, amount_cents, category, related_entry_id, created_at
		 FROM entries
		 WHERE group_id = ?
		 ORDER BY created_at DESC, rowid DESC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries by group: %w", err)
	}
	return s.collectEntries(ctx, rows)
}

// ListEntriesForUser returns entries from all groups the user belongs
// to, newest first.
func (s *SQLiteStore) ListEntriesForUser(ctx context.Context, userID string) ([]*models.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT e.id, e.group_id, e.paid_by, e.description, e.amount_cents, e.category, e.related_entry_id, e.created_at
		 FROM entries e
		 JOIN group_members gm ON gm.group_id = e.group_id
		 WHERE gm.user_id = ?
		 ORDER BY e.created_at DESC, e.rowid DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries for user: %w", err)
	}
	return s.collectEntries(ctx, rows)
}

// collectEntries scans entry rows and attaches their splits.
func (s *SQLiteStore) collectEntries(ctx context.Context, rows *sql.Rows) ([]*models.Entry, error) {
	defer rows.Close()

	var entries []*models.Entry
	for rows.Next() {
		entry, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}

	if err := s.attachSplits(ctx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// scanEntry reads one entry row via the given scan function.
func scanEntry(scan func(dest ...any) error) (*models.Entry, error) {
	entry := &models.Entry{}
	var cents int64
	var category string
	var related sql.NullString

	err := scan(&entry.ID, &entry.GroupID, &entry.PaidBy, &entry.Description,
		&cents, &category, &related, &entry.CreatedAt)
	if err != nil {
		return nil, err
	}

	entry.Amount = fromCents(cents)
	entry.Category = models.Category(category)
	if related.Valid {
		entry.RelatedEntryID = related.String
	}
	return entry, nil
}

// attachSplits loads the splits for the given entries in one query.
func (s *SQLiteStore) attachSplits(ctx context.Context, entries []*models.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	byID := make(map[string]*models.Entry, len(entries))
	args := make([]interface{}, len(entries))
	for i, entry := range entries {
		byID[entry.ID] = entry
		args[i] = entry.ID
	}

	query := `SELECT entry_id, user_id, amount_cents FROM splits
		WHERE entry_id IN (?` + repeatPlaceholder(len(entries)-1) + `)
		ORDER BY rowid`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entryID, userID string
		var cents int64
		if err := rows.Scan(&entryID, &userID, &cents); err != nil {
			return fmt.Errorf("failed to scan split: %w", err)
		}
		entry := byID[entryID]
		entry.Splits = append(entry.Splits, models.Split{UserID: userID, Amount: fromCents(cents)})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate splits: %w", err)
	}

	return nil
}
