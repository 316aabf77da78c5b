package models

// Group represents a set of users who share expenses.
// Membership lives in its own table; the creator is always added as a
// member in the same transaction that creates the group.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates").
	Name string

	// CreatedBy is the user ID of the group creator.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}
