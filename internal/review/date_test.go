package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name   string
		raw    any
		want   time.Time
		wantOK bool
	}{
		{
			name:   "plain date",
			raw:    "2025-07-28",
			want:   time.Date(2025, 7, 28, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "datetime with utc marker",
			raw:    "2025-07-28T00:00:00Z",
			want:   time.Date(2025, 7, 28, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "datetime with offset keeps wall-clock date",
			raw:    "2025-07-28T13:45:00+02:00",
			want:   time.Date(2025, 7, 28, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "datetime without zone drops time of day",
			raw:    "2025-07-28T09:30:00",
			want:   time.Date(2025, 7, 28, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{name: "empty string", raw: "", wantOK: false},
		{name: "nil", raw: nil, wantOK: false},
		{name: "garbage", raw: "not-a-date", wantOK: false},
		{name: "non-string", raw: 20250728, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseDate_PlainAndZonedAgree(t *testing.T) {
	plain, ok := ParseDate("2025-07-28")
	require.True(t, ok)
	zoned, ok := ParseDate("2025-07-28T00:00:00Z")
	require.True(t, ok)
	assert.True(t, plain.Equal(zoned))
}

func TestParseReportDate(t *testing.T) {
	got, err := ParseReportDate("2025-07-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseReportDate("01.07.2025")
	assert.Error(t, err)

	_, err = ParseReportDate("")
	assert.Error(t, err)
}
