package batch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steinunnb/vendorwatch/internal/model"
	"github.com/steinunnb/vendorwatch/internal/payday"
)

func threeVendors(_ context.Context) ([]model.Vendor, error) {
	return []model.Vendor{
		{ID: "v2", Name: "Zeta ehf."},
		{ID: "v1", Name: "Alpha ehf."},
		{ID: "v3", Name: "Midgard slhf."},
	}, nil
}

func TestRunner_Run(t *testing.T) {
	client := payday.NewMockClient()
	client.ListVendorsFn = threeVendors
	client.FetchStatementFn = func(_ context.Context, vendorID, dateFrom, dateTo string) ([]model.StatementLine, error) {
		assert.Equal(t, "2020-01-01", dateFrom)
		assert.Equal(t, "2025-07-01", dateTo)
		switch vendorID {
		case "v1":
			// Old unmatched invoice: aging and debit flags.
			return []model.StatementLine{{"date": "2025-01-01", "balance": 1000.0}}, nil
		case "v2":
			// Settled: clean.
			return []model.StatementLine{
				{"date": "2025-06-01", "balance": 500.0},
				{"date": "2025-06-05", "balance": -500.0},
			}, nil
		default:
			return nil, nil
		}
	}

	result, err := NewRunner(client).Run(context.Background(), "2025-07-01")
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, "2025-07-01", result.ReportDate)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Rows, 3)

	// Rows come back sorted by vendor name.
	assert.Equal(t, "Alpha ehf.", result.Rows[0].Name)
	assert.Equal(t, "Midgard slhf.", result.Rows[1].Name)
	assert.Equal(t, "Zeta ehf.", result.Rows[2].Name)

	assert.NotEmpty(t, result.Rows[0].Red)
	assert.Empty(t, result.Rows[2].Red)
	assert.Contains(t, result.Details, "v1")
}

func TestRunner_IsolatesVendorFailures(t *testing.T) {
	client := payday.NewMockClient()
	client.ListVendorsFn = threeVendors
	client.FetchStatementFn = func(_ context.Context, vendorID, _, _ string) ([]model.StatementLine, error) {
		if vendorID == "v2" {
			return nil, errors.New("boom")
		}
		return []model.StatementLine{{"date": "2025-01-01", "balance": 100.0}}, nil
	}

	result, err := NewRunner(client).Run(context.Background(), "2025-07-01")
	require.NoError(t, err)

	assert.Len(t, result.Rows, 2)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "v2", result.Errors[0].VendorID)
	assert.Equal(t, "Zeta ehf.", result.Errors[0].Name)
	assert.Contains(t, result.Errors[0].Err, "boom")
}

func TestRunner_RetriesFetchOnce(t *testing.T) {
	attempts := 0
	client := payday.NewMockClient()
	client.ListVendorsFn = func(_ context.Context) ([]model.Vendor, error) {
		return []model.Vendor{{ID: "v1", Name: "Alpha ehf."}}, nil
	}
	client.FetchStatementFn = func(_ context.Context, _, _, _ string) ([]model.StatementLine, error) {
		attempts++
		if attempts == 1 {
			return nil, errors.New("transient")
		}
		return []model.StatementLine{{"date": "2025-01-01", "balance": 100.0}}, nil
	}

	result, err := NewRunner(client).Run(context.Background(), "2025-07-01")
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Len(t, result.Rows, 1)
	assert.Empty(t, result.Errors)
}

func TestRunner_InvalidReportDate(t *testing.T) {
	_, err := NewRunner(payday.NewMockClient()).Run(context.Background(), "July 2025")
	assert.Error(t, err)
}

func TestRunner_ListVendorsFailure(t *testing.T) {
	client := payday.NewMockClient()
	client.ListVendorsFn = func(_ context.Context) ([]model.Vendor, error) {
		return nil, errors.New("api down")
	}

	_, err := NewRunner(client).Run(context.Background(), "2025-07-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not list vendors")
}

type fakeCache struct {
	stored map[string][]model.StatementLine
	loads  int
	saves  int
}

func (f *fakeCache) LoadStatement(_ context.Context, vendorID, _, _ string) ([]model.StatementLine, error) {
	f.loads++
	if lines, ok := f.stored[vendorID]; ok {
		return lines, nil
	}
	return nil, errors.New("miss")
}

func (f *fakeCache) SaveStatement(_ context.Context, vendorID, _, _ string, lines []model.StatementLine) error {
	f.saves++
	if f.stored == nil {
		f.stored = map[string][]model.StatementLine{}
	}
	f.stored[vendorID] = lines
	return nil
}

func TestRunner_UsesCache(t *testing.T) {
	cache := &fakeCache{stored: map[string][]model.StatementLine{
		"v1": {{"date": "2025-01-01", "balance": 1000.0}},
	}}
	client := payday.NewMockClient()
	client.ListVendorsFn = func(_ context.Context) ([]model.Vendor, error) {
		return []model.Vendor{{ID: "v1", Name: "Alpha ehf."}, {ID: "v2", Name: "Zeta ehf."}}, nil
	}
	client.FetchStatementFn = func(_ context.Context, _, _, _ string) ([]model.StatementLine, error) {
		return []model.StatementLine{{"date": "2025-06-01", "balance": 200.0}}, nil
	}

	result, err := NewRunner(client, WithCache(cache)).Run(context.Background(), "2025-07-01")
	require.NoError(t, err)
	assert.Len(t, result.Rows, 2)

	// v1 came from the cache, only v2 hit the API and was cached afterwards.
	require.Len(t, client.FetchStatementCalls, 1)
	assert.Equal(t, "v2", client.FetchStatementCalls[0].VendorID)
	assert.Equal(t, 1, cache.saves)
}
