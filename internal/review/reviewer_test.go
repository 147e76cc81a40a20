package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steinunnb/vendorwatch/internal/model"
)

func TestReviewVendor_EndToEnd(t *testing.T) {
	lines := []model.StatementLine{
		{"date": "2025-01-01", "balance": 1000.0},
		{"date": "2025-01-03", "balance": -1000.0},
		{"date": "2025-06-01", "balance": 500.0},
	}

	result, err := ReviewVendor(lines, "2025-07-01")
	require.NoError(t, err)

	assert.InDelta(t, 500.0, result.Balance, 1e-9)
	require.Len(t, result.Timeline, 3)

	// The January invoice is settled by the matching payment, and the June
	// invoice is only 30 days old on the report date, so the aging rule stays
	// quiet. The positive balance trips the debit rule and nothing else.
	assert.Equal(t, []string{"Vendor shows debit balance"}, result.Red)
	assert.Empty(t, result.Orange)
}

func TestReviewVendor_InvalidReportDate(t *testing.T) {
	_, err := ReviewVendor(nil, "01.07.2025")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid report date")
}

func TestReviewVendor_EmptyStatement(t *testing.T) {
	result, err := ReviewVendor(nil, "2025-07-01")
	require.NoError(t, err)
	assert.Zero(t, result.Balance)
	assert.Empty(t, result.Red)
	assert.Empty(t, result.Orange)
	assert.Empty(t, result.Timeline)
}

func TestReviewVendor_Idempotent(t *testing.T) {
	lines := []model.StatementLine{
		{"date": "2025-01-01", "balance": "1.234,56"},
		{"date": "2025-01-02", "balance": -1234.0},
		{"date": "2025-03-15", "text": " Giro ", "balance": -18004.0},
		{"date": "2025-03-17", "balance": -18004.0},
	}

	first, err := ReviewVendor(lines, "2025-07-01")
	require.NoError(t, err)
	second, err := ReviewVendor(lines, "2025-07-01")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestReviewVendor_FlagOrdering(t *testing.T) {
	// A statement that trips aging, debit and duplicate rules at once: flags
	// must come out in rule order.
	lines := []model.StatementLine{
		{"date": "2025-01-01", "balance": 40000.0},
		{"date": "2025-03-15", "balance": -18004.0},
		{"date": "2025-03-17", "balance": -18004.0},
	}

	result, err := ReviewVendor(lines, "2025-07-01")
	require.NoError(t, err)

	require.Len(t, result.Red, 3)
	assert.Equal(t, "Unpaid invoice >50d (2025-01-01)", result.Red[0])
	assert.Equal(t, "Vendor shows debit balance", result.Red[1])
	assert.Contains(t, result.Red[2], "Duplicate payment 18,004 within 2 days")
}
