// Package models defines the core domain models for Tally.
//
// The data model is append-only: an Entry and its Splits are created
// atomically as one unit and never mutated afterwards. Corrections are
// made by recording new entries, never by editing old ones. Balances
// are always derived from the entries, so there is no stored balance
// to drift out of sync.
//
// All currency amounts are decimal.Decimal values with two fraction
// digits. Binary floating point is never used for money.
package models
