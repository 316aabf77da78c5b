package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyhq/tally/internal/models"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestValidateSplits(t *testing.T) {
	tests := []struct {
		name    string
		total   string
		splits  []models.Split
		wantErr string
	}{
		{
			name:  "exact sum accepted",
			total: "90.00",
			splits: []models.Split{
				{UserID: "alice", Amount: decimal.RequireFromString("30.00")},
				{UserID: "bob", Amount: decimal.RequireFromString("30.00")},
				{UserID: "carol", Amount: decimal.RequireFromString("30.00")},
			},
		},
		{
			name:  "single split equals total",
			total: "42.50",
			splits: []models.Split{
				{UserID: "alice", Amount: decimal.RequireFromString("42.50")},
			},
		},
		{
			name:  "zero-amount split allowed when sum matches",
			total: "10.00",
			splits: []models.Split{
				{UserID: "alice", Amount: decimal.RequireFromString("10.00")},
				{UserID: "bob", Amount: decimal.Zero},
			},
		},
		{
			name:    "empty split list rejected",
			total:   "10.00",
			splits:  nil,
			wantErr: "at least one split",
		},
		{
			name:  "sum mismatch names expected and actual",
			total: "150.00",
			splits: []models.Split{
				{UserID: "alice", Amount: decimal.RequireFromString("70.00")},
				{UserID: "bob", Amount: decimal.RequireFromString("70.00")},
			},
			wantErr: "total amount (150.00) does not match sum of splits (140.00)",
		},
		{
			name:  "one cent off is still a mismatch",
			total: "100.00",
			splits: []models.Split{
				{UserID: "alice", Amount: decimal.RequireFromString("33.33")},
				{UserID: "bob", Amount: decimal.RequireFromString("33.33")},
				{UserID: "carol", Amount: decimal.RequireFromString("33.33")},
			},
			wantErr: "does not match sum of splits",
		},
		{
			name:    "non-positive total rejected",
			total:   "0.00",
			splits:  []models.Split{{UserID: "alice", Amount: decimal.Zero}},
			wantErr: "must be positive",
		},
		{
			name:  "negative split rejected",
			total: "10.00",
			splits: []models.Split{
				{UserID: "alice", Amount: decimal.RequireFromString("20.00")},
				{UserID: "bob", Amount: decimal.RequireFromString("-10.00")},
			},
			wantErr: "must not be negative",
		},
		{
			name:  "sub-cent split rejected",
			total: "10.00",
			splits: []models.Split{
				{UserID: "alice", Amount: decimal.RequireFromString("9.999")},
				{UserID: "bob", Amount: decimal.RequireFromString("0.001")},
			},
			wantErr: "more than 2 decimal places",
		},
		{
			name:  "split without user rejected",
			total: "10.00",
			splits: []models.Split{
				{UserID: "", Amount: decimal.RequireFromString("10.00")},
			},
			wantErr: "missing a user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSplits(dec(t, tt.total), tt.splits)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount(dec(t, "0.01")))
	assert.NoError(t, ValidateAmount(dec(t, "100")))

	var validationErr *ValidationError
	require.ErrorAs(t, ValidateAmount(dec(t, "0")), &validationErr)
	require.ErrorAs(t, ValidateAmount(dec(t, "-5.00")), &validationErr)
	require.ErrorAs(t, ValidateAmount(dec(t, "1.005")), &validationErr)
}
