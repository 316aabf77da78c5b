package service

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/tallyhq/tally/internal/ledger"
	"github.com/tallyhq/tally/internal/models"
	"github.com/tallyhq/tally/internal/storage"
)

// ExpenseService records expenses and settlements and serves entry
// listings. All writes go through the split validator first and reach
// storage as one atomic entry-plus-splits unit.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// CreateExpense records a shared expense paid by payerID and split
// among the given users. The splits must sum to amount exactly; a
// mismatch fails validation before anything is written. relatedEntryID
// may be empty.
func (s *ExpenseService) CreateExpense(ctx context.Context, groupID, payerID, description string, amount decimal.Decimal, splits []models.Split, relatedEntryID string) (*models.Entry, error) {
	if err := ledger.ValidateSplits(amount, splits); err != nil {
		slog.Warn("CreateExpense validation failed", "group_id", groupID, "error", err)
		return nil, err
	}

	if err := s.requireMember(ctx, groupID, payerID); err != nil {
		return nil, err
	}
	if err := s.requireUsersExist(ctx, splits); err != nil {
		return nil, err
	}

	entry := &models.Entry{
		GroupID:        groupID,
		PaidBy:         payerID,
		Description:    description,
		Amount:         amount,
		Category:       models.CategoryExpense,
		RelatedEntryID: relatedEntryID,
		Splits:         splits,
	}
	if err := s.store.CreateEntry(ctx, entry); err != nil {
		slog.Error("CreateExpense failed", "group_id", groupID, "error", err)
		return nil, err
	}

	slog.Info("Expense recorded",
		"entry_id", entry.ID,
		"group_id", groupID,
		"paid_by", payerID,
		"amount", amount.StringFixed(2),
		"splits", len(splits),
	)
	return entry, nil
}

// RecordSettlement records a direct payment from payerID to
// recipientID. A settlement is an entry with a single split: the
// recipient owes the full amount, which cancels debt in the opposite
// direction during aggregation. It is never split further.
func (s *ExpenseService) RecordSettlement(ctx context.Context, groupID, payerID, recipientID string, amount decimal.Decimal) (*models.Entry, error) {
	if err := ledger.ValidateAmount(amount); err != nil {
		return nil, err
	}

	// Membership is a ledger-integrity rule: a settlement from a
	// non-member would corrupt balance semantics.
	if err := s.requireMember(ctx, groupID, payerID); err != nil {
		return nil, err
	}

	recipient, err := s.store.GetUserByID(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	if recipient == nil {
		return nil, ledger.NotFound("user", recipientID)
	}

	entry := &models.Entry{
		GroupID:     groupID,
		PaidBy:      payerID,
		Description: models.SettlementDescription,
		Amount:      amount,
		Category:    models.CategorySettlement,
		Splits: []models.Split{
			{UserID: recipientID, Amount: amount},
		},
	}
	if err := s.store.CreateEntry(ctx, entry); err != nil {
		slog.Error("RecordSettlement failed", "group_id", groupID, "error", err)
		return nil, err
	}

	slog.Info("Settlement recorded",
		"entry_id", entry.ID,
		"group_id", groupID,
		"paid_by", payerID,
		"to", recipientID,
		"amount", amount.StringFixed(2),
	)
	return entry, nil
}

// ListGroupEntries returns the group's entries, newest first. Only
// current members may read a group's ledger.
func (s *ExpenseService) ListGroupEntries(ctx context.Context, groupID, userID string) ([]*models.Entry, error) {
	if err := s.requireMember(ctx, groupID, userID); err != nil {
		return nil, err
	}
	return s.store.ListEntriesByGroup(ctx, groupID)
}

// ListActivity returns entries across all groups the user belongs to,
// newest first.
func (s *ExpenseService) ListActivity(ctx context.Context, userID string) ([]*models.Entry, error) {
	return s.store.ListEntriesForUser(ctx, userID)
}

// requireMember verifies the group exists and the user belongs to it.
func (s *ExpenseService) requireMember(ctx context.Context, groupID, userID string) error {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if group == nil {
		return ledger.NotFound("group", groupID)
	}

	member, err := s.store.IsMember(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if !member {
		return ledger.Authorizationf("you are not a member of this group")
	}
	return nil
}

// requireUsersExist checks every split user before the write so a
// missing user surfaces as a NotFoundError rather than a foreign key
// failure inside the transaction.
func (s *ExpenseService) requireUsersExist(ctx context.Context, splits []models.Split) error {
	ids := make([]string, 0, len(splits))
	for _, split := range splits {
		ids = append(ids, split.UserID)
	}

	users, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, ok := users[id]; !ok {
			return ledger.NotFound("user", id)
		}
	}
	return nil
}
