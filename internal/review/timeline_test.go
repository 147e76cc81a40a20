package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steinunnb/vendorwatch/internal/model"
)

func TestBuildTimeline_SortsAscending(t *testing.T) {
	lines := []model.StatementLine{
		{"date": "2025-06-01", "balance": 500.0},
		{"date": "2025-01-01", "balance": 1000.0},
		{"date": "2025-01-03", "balance": -1000.0},
	}

	tl := BuildTimeline(lines)
	require.Len(t, tl, 3)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), tl[0].Date)
	assert.Equal(t, time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), tl[1].Date)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), tl[2].Date)
}

func TestBuildTimeline_StableOnEqualDates(t *testing.T) {
	lines := []model.StatementLine{
		{"date": "2025-03-01", "description": "first", "balance": 1.0},
		{"date": "2025-02-01", "description": "earlier", "balance": 2.0},
		{"date": "2025-03-01", "description": "second", "balance": 3.0},
		{"date": "2025-03-01", "description": "third", "balance": 4.0},
	}

	tl := BuildTimeline(lines)
	require.Len(t, tl, 4)
	assert.Equal(t, "earlier", tl[0].Description)
	assert.Equal(t, "first", tl[1].Description)
	assert.Equal(t, "second", tl[2].Description)
	assert.Equal(t, "third", tl[3].Description)
}

func TestBuildTimeline_DropsUnparseableDates(t *testing.T) {
	lines := []model.StatementLine{
		{"date": "2025-01-01", "balance": 100.0},
		{"date": "not-a-date", "balance": 200.0},
		{"description": "no date at all", "balance": 300.0},
		{"voucherDate": "2025-01-02", "balance": 400.0},
	}

	tl := BuildTimeline(lines)
	require.Len(t, tl, 2)
	assert.InDelta(t, 100.0, tl[0].Amount, 1e-9)
	assert.InDelta(t, 400.0, tl[1].Amount, 1e-9)
}

func TestBuildTimeline_FieldResolution(t *testing.T) {
	tests := []struct {
		name     string
		line     model.StatementLine
		wantAmt  float64
		wantDesc string
	}{
		{
			name:    "balance wins over amount",
			line:    model.StatementLine{"date": "2025-01-01", "balance": 10.0, "amount": 99.0},
			wantAmt: 10.0,
		},
		{
			name:    "zero balance still wins",
			line:    model.StatementLine{"date": "2025-01-01", "balance": 0.0, "amount": 99.0},
			wantAmt: 0.0,
		},
		{
			name:    "null balance falls back to amount",
			line:    model.StatementLine{"date": "2025-01-01", "balance": nil, "amount": 99.0},
			wantAmt: 99.0,
		},
		{
			name:    "neither field yields zero",
			line:    model.StatementLine{"date": "2025-01-01"},
			wantAmt: 0.0,
		},
		{
			name:    "localized string amount",
			line:    model.StatementLine{"date": "2025-01-01", "balance": "1.234,56"},
			wantAmt: 1234.56,
		},
		{
			name:     "description wins over text",
			line:     model.StatementLine{"date": "2025-01-01", "description": " Invoice 17 ", "text": "fallback"},
			wantDesc: "Invoice 17",
		},
		{
			name:     "text fallback trimmed",
			line:     model.StatementLine{"date": "2025-01-01", "text": " Giro payment "},
			wantDesc: "Giro payment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := BuildTimeline([]model.StatementLine{tt.line})
			require.Len(t, tl, 1)
			assert.InDelta(t, tt.wantAmt, tl[0].Amount, 1e-9)
			if tt.wantDesc != "" {
				assert.Equal(t, tt.wantDesc, tl[0].Description)
			}
		})
	}
}

func TestEndingBalance(t *testing.T) {
	tl := model.Timeline{
		{Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Amount: 1000},
		{Date: time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), Amount: -1000},
		{Date: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), Amount: 500},
	}

	assert.InDelta(t, 500.0, EndingBalance(tl, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)), 1e-9)
	assert.InDelta(t, 0.0, EndingBalance(tl, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)), 1e-9)
	assert.InDelta(t, 1000.0, EndingBalance(tl, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)), 1e-9)
}
