// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tallyhq/tally/internal/models"
)

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (SQLite,
// PostgreSQL, etc.) without changing the service layer.
//
// Entries and splits are append-only: there is no update or delete.
type Store interface {
	// UpsertUser inserts a user or refreshes its mutable fields
	// (email, display name). Identity is owned by the external
	// provider; this just mirrors it for referential integrity.
	UpsertUser(ctx context.Context, user *models.User) error

	// GetUserByID retrieves a user by ID. Returns nil, nil when the
	// user does not exist.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUsersByIDs retrieves multiple users keyed by ID. Users that
	// don't exist are omitted from the result.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)

	// CreateGroup persists a new group and adds the creator as a
	// member in the same transaction. Generates ID and CreatedAt.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID. Returns nil, nil when the
	// group does not exist.
	GetGroup(ctx context.Context, id string) (*models.Group, error)

	// ListGroupsForUser returns the groups the user belongs to,
	// newest first.
	ListGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error)

	// AddMember adds the user to the group. Returns false when the
	// user was already a member (the call is idempotent).
	AddMember(ctx context.Context, groupID, userID string) (bool, error)

	// RemoveMember removes the user from the group. Returns false
	// when the user was not a member.
	RemoveMember(ctx context.Context, groupID, userID string) (bool, error)

	// IsMember reports whether the user is currently a member.
	IsMember(ctx context.Context, groupID, userID string) (bool, error)

	// ListMembers returns the group's current members.
	ListMembers(ctx context.Context, groupID string) ([]*models.User, error)

	// CreateEntry persists an entry and all of its splits atomically:
	// either everything commits or nothing does. Generates ID and
	// CreatedAt. The caller validates the split sum first; the store
	// enforces referential integrity.
	CreateEntry(ctx context.Context, entry *models.Entry) error

	// GetEntry retrieves an entry with its splits. Returns nil, nil
	// when the entry does not exist.
	GetEntry(ctx context.Context, id string) (*models.Entry, error)

	// ListEntriesByGroup returns the group's entries with splits,
	// newest first, stable across calls for the same data.
	ListEntriesByGroup(ctx context.Context, groupID string) ([]*models.Entry, error)

	// ListEntriesForUser returns entries from all groups the user
	// belongs to, newest first.
	ListEntriesForUser(ctx context.Context, userID string) ([]*models.Entry, error)

	// SumsPaidBy returns, per counterparty, the sum of split amounts
	// on entries the user paid for, excluding the user's own splits.
	SumsPaidBy(ctx context.Context, groupID, userID string) (map[string]decimal.Decimal, error)

	// SumsOwedBy returns, per payer, the sum of the user's split
	// amounts on entries paid by someone else.
	SumsOwedBy(ctx context.Context, groupID, userID string) (map[string]decimal.Decimal, error)

	// GlobalSums returns the user's cross-group totals: what others
	// owe them and what they owe others. Self-splits are excluded
	// from both.
	GlobalSums(ctx context.Context, userID string) (owedToYou, youOwe decimal.Decimal, err error)

	// Close releases any resources held by the store.
	Close() error
}
