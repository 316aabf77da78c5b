package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tallyhq/tally/internal/models"
	"github.com/tallyhq/tally/internal/storage"
	"github.com/tallyhq/tally/internal/storage/sqlite"
)

// newTestStore creates a throwaway SQLite store backed by a temp file.
func newTestStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func seedUser(t *testing.T, store storage.Store, id, displayName string) {
	t.Helper()
	err := store.UpsertUser(context.Background(), &models.User{
		ID:          id,
		Username:    id,
		Email:       id + "@example.com",
		DisplayName: displayName,
	})
	require.NoError(t, err)
}

func seedGroup(t *testing.T, store storage.Store, name, creator string, members ...string) *models.Group {
	t.Helper()
	ctx := context.Background()
	group := &models.Group{Name: name, CreatedBy: creator}
	require.NoError(t, store.CreateGroup(ctx, group))
	for _, member := range members {
		_, err := store.AddMember(ctx, group.ID, member)
		require.NoError(t, err)
	}
	return group
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func equalSplit(t *testing.T, users []string, each string) []models.Split {
	t.Helper()
	splits := make([]models.Split, len(users))
	for i, user := range users {
		splits[i] = models.Split{UserID: user, Amount: dec(t, each)}
	}
	return splits
}
