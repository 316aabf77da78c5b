// Package service implements the application operations exposed to the
// transport layer: recording expenses and settlements, computing
// balances, and managing groups and membership.
package service

import (
	"context"
	"fmt"

	"github.com/tallyhq/tally/internal/storage"
)

// Directory resolves user IDs to presentable names, preferring the
// display name and falling back to the login handle. IDs with no user
// row resolve to the ID itself so callers never render an empty name.
type Directory struct {
	store storage.Store
}

// NewDirectory creates a Directory over the given storage backend.
func NewDirectory(store storage.Store) *Directory {
	return &Directory{store: store}
}

// Names resolves the given user IDs in one lookup.
func (d *Directory) Names(ctx context.Context, ids []string) (map[string]string, error) {
	users, err := d.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve names: %w", err)
	}

	names := make(map[string]string, len(ids))
	for _, id := range ids {
		if user, ok := users[id]; ok {
			names[id] = user.Name()
		} else {
			names[id] = id
		}
	}
	return names, nil
}
