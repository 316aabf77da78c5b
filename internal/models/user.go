package models

// User mirrors an identity issued by the external identity provider.
// Tally does not manage credentials; user rows exist so that entries
// and splits have referential integrity and display names.
type User struct {
	// ID is the opaque identifier assigned by the identity provider.
	ID string

	// Username is the unique login handle.
	Username string

	// Email is the user's email address (unique).
	Email string

	// DisplayName is the optional human-readable name.
	DisplayName string

	// CreatedAt is the Unix timestamp when the user was first seen.
	CreatedAt int64
}

// Name returns the display name, falling back to the username when no
// display name is set.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}
