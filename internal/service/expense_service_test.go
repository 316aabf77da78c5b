package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyhq/tally/internal/ledger"
	"github.com/tallyhq/tally/internal/models"
)

func TestCreateExpense(t *testing.T) {
	ctx := context.Background()

	t.Run("persists entry with splits summing to amount", func(t *testing.T) {
		store := newTestStore(t)
		seedUser(t, store, "alice", "")
		seedUser(t, store, "bob", "")
		group := seedGroup(t, store, "Roommates", "alice", "bob")
		svc := NewExpenseService(store)

		entry, err := svc.CreateExpense(ctx, group.ID, "alice", "Groceries",
			dec(t, "50.00"), equalSplit(t, []string{"alice", "bob"}, "25.00"), "")
		require.NoError(t, err)
		assert.NotEmpty(t, entry.ID)
		assert.Equal(t, models.CategoryExpense, entry.Category)

		got, err := store.GetEntry(ctx, entry.ID)
		require.NoError(t, err)
		require.NotNil(t, got)

		sum := decimal.Zero
		for _, split := range got.Splits {
			sum = sum.Add(split.Amount)
		}
		assert.True(t, sum.Equal(got.Amount))
	})

	t.Run("split sum mismatch persists nothing", func(t *testing.T) {
		store := newTestStore(t)
		seedUser(t, store, "alice", "")
		seedUser(t, store, "bob", "")
		group := seedGroup(t, store, "Roommates", "alice", "bob")
		svc := NewExpenseService(store)

		_, err := svc.CreateExpense(ctx, group.ID, "alice", "Groceries",
			dec(t, "150.00"), equalSplit(t, []string{"alice", "bob"}, "70.00"), "")

		var validationErr *ledger.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, err.Error(), "150.00")
		assert.Contains(t, err.Error(), "140.00")

		entries, err := store.ListEntriesByGroup(ctx, group.ID)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("empty split list is rejected", func(t *testing.T) {
		store := newTestStore(t)
		seedUser(t, store, "alice", "")
		group := seedGroup(t, store, "Solo", "alice")
		svc := NewExpenseService(store)

		_, err := svc.CreateExpense(ctx, group.ID, "alice", "Nothing",
			dec(t, "10.00"), nil, "")

		var validationErr *ledger.ValidationError
		require.ErrorAs(t, err, &validationErr)
	})

	t.Run("non-member payer is rejected", func(t *testing.T) {
		store := newTestStore(t)
		seedUser(t, store, "alice", "")
		seedUser(t, store, "mallory", "")
		group := seedGroup(t, store, "Private", "alice")
		svc := NewExpenseService(store)

		_, err := svc.CreateExpense(ctx, group.ID, "mallory", "Sneaky",
			dec(t, "10.00"), equalSplit(t, []string{"alice"}, "10.00"), "")

		var authorizationErr *ledger.AuthorizationError
		require.ErrorAs(t, err, &authorizationErr)
	})

	t.Run("unknown split user is rejected before the write", func(t *testing.T) {
		store := newTestStore(t)
		seedUser(t, store, "alice", "")
		group := seedGroup(t, store, "Solo", "alice")
		svc := NewExpenseService(store)

		_, err := svc.CreateExpense(ctx, group.ID, "alice", "Ghost",
			dec(t, "10.00"), equalSplit(t, []string{"ghost"}, "10.00"), "")

		var notFoundErr *ledger.NotFoundError
		require.ErrorAs(t, err, &notFoundErr)

		entries, err := store.ListEntriesByGroup(ctx, group.ID)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("unknown group is rejected", func(t *testing.T) {
		store := newTestStore(t)
		seedUser(t, store, "alice", "")
		svc := NewExpenseService(store)

		_, err := svc.CreateExpense(ctx, "no-such-group", "alice", "Lost",
			dec(t, "10.00"), equalSplit(t, []string{"alice"}, "10.00"), "")

		var notFoundErr *ledger.NotFoundError
		require.ErrorAs(t, err, &notFoundErr)
	})
}

func TestRecordSettlement(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a single full-amount split", func(t *testing.T) {
		store := newTestStore(t)
		seedUser(t, store, "alice", "")
		seedUser(t, store, "bob", "")
		group := seedGroup(t, store, "Roommates", "alice", "bob")
		svc := NewExpenseService(store)

		entry, err := svc.RecordSettlement(ctx, group.ID, "bob", "alice", dec(t, "30.00"))
		require.NoError(t, err)

		assert.Equal(t, models.CategorySettlement, entry.Category)
		assert.Equal(t, models.SettlementDescription, entry.Description)
		require.Len(t, entry.Splits, 1)
		assert.Equal(t, "alice", entry.Splits[0].UserID)
		assert.True(t, entry.Splits[0].Amount.Equal(dec(t, "30.00")))

		got, err := store.GetEntry(ctx, entry.ID)
		require.NoError(t, err)
		require.Len(t, got.Splits, 1)
		assert.True(t, got.Amount.Equal(got.Splits[0].Amount))
	})

	t.Run("non-member payer persists nothing", func(t *testing.T) {
		store := newTestStore(t)
		seedUser(t, store, "alice", "")
		seedUser(t, store, "mallory", "")
		group := seedGroup(t, store, "Private", "alice")
		svc := NewExpenseService(store)

		_, err := svc.RecordSettlement(ctx, group.ID, "mallory", "alice", dec(t, "30.00"))

		var authorizationErr *ledger.AuthorizationError
		require.ErrorAs(t, err, &authorizationErr)

		entries, err := store.ListEntriesByGroup(ctx, group.ID)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("unknown recipient is rejected", func(t *testing.T) {
		store := newTestStore(t)
		seedUser(t, store, "alice", "")
		group := seedGroup(t, store, "Solo", "alice")
		svc := NewExpenseService(store)

		_, err := svc.RecordSettlement(ctx, group.ID, "alice", "ghost", dec(t, "30.00"))

		var notFoundErr *ledger.NotFoundError
		require.ErrorAs(t, err, &notFoundErr)
	})

	t.Run("zero or negative amount is rejected", func(t *testing.T) {
		store := newTestStore(t)
		seedUser(t, store, "alice", "")
		seedUser(t, store, "bob", "")
		group := seedGroup(t, store, "Roommates", "alice", "bob")
		svc := NewExpenseService(store)

		for _, amount := range []string{"0", "-5.00"} {
			_, err := svc.RecordSettlement(ctx, group.ID, "bob", "alice", dec(t, amount))
			var validationErr *ledger.ValidationError
			require.ErrorAs(t, err, &validationErr, "amount %s", amount)
		}
	})
}

func TestListActivity(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedUser(t, store, "alice", "")
	seedUser(t, store, "bob", "")
	groupA := seedGroup(t, store, "A", "alice", "bob")
	groupB := seedGroup(t, store, "B", "alice")
	svc := NewExpenseService(store)

	first, err := svc.CreateExpense(ctx, groupA.ID, "alice", "Dinner",
		dec(t, "40.00"), equalSplit(t, []string{"alice", "bob"}, "20.00"), "")
	require.NoError(t, err)
	second, err := svc.CreateExpense(ctx, groupB.ID, "alice", "Taxi",
		dec(t, "15.50"), equalSplit(t, []string{"alice"}, "15.50"), "")
	require.NoError(t, err)

	t.Run("spans all groups newest first", func(t *testing.T) {
		activity, err := svc.ListActivity(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, activity, 2)
		assert.Equal(t, second.ID, activity[0].ID)
		assert.Equal(t, first.ID, activity[1].ID)
	})

	t.Run("round-trips entry fields exactly", func(t *testing.T) {
		activity, err := svc.ListActivity(ctx, "bob")
		require.NoError(t, err)
		require.Len(t, activity, 1)

		got := activity[0]
		assert.Equal(t, "Dinner", got.Description)
		assert.Equal(t, models.CategoryExpense, got.Category)
		assert.True(t, got.Amount.Equal(dec(t, "40.00")))
		require.Len(t, got.Splits, 2)
	})

	t.Run("membership is required for group listings", func(t *testing.T) {
		_, err := svc.ListGroupEntries(ctx, groupB.ID, "bob")
		var authorizationErr *ledger.AuthorizationError
		require.ErrorAs(t, err, &authorizationErr)
	})
}
