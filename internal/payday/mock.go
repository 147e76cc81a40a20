package payday

import (
	"context"

	"github.com/steinunnb/vendorwatch/internal/model"
)

// MockClient is a mock implementation of StatementFetcher for testing.
type MockClient struct {
	// Functions that can be set by tests to control behavior
	ListVendorsFn    func(ctx context.Context) ([]model.Vendor, error)
	FindVendorsFn    func(ctx context.Context, query string) ([]model.Vendor, error)
	FetchStatementFn func(ctx context.Context, vendorID, dateFrom, dateTo string) ([]model.StatementLine, error)

	// Call tracking
	ListVendorsCalls    int
	FindVendorsCalls    int
	FetchStatementCalls []FetchStatementCall
}

// FetchStatementCall records the parameters of a FetchStatement call.
type FetchStatementCall struct {
	VendorID string
	DateFrom string
	DateTo   string
}

// NewMockClient creates a new mock Payday client.
func NewMockClient() *MockClient {
	return &MockClient{
		FetchStatementCalls: []FetchStatementCall{},
	}
}

// ListVendors implements StatementFetcher.ListVendors.
func (m *MockClient) ListVendors(ctx context.Context) ([]model.Vendor, error) {
	m.ListVendorsCalls++

	if m.ListVendorsFn != nil {
		return m.ListVendorsFn(ctx)
	}

	return []model.Vendor{}, nil
}

// FindVendors mirrors Client.FindVendors: the vendor list filtered by name.
func (m *MockClient) FindVendors(ctx context.Context, query string) ([]model.Vendor, error) {
	m.FindVendorsCalls++

	if m.FindVendorsFn != nil {
		return m.FindVendorsFn(ctx, query)
	}

	vendors, err := m.ListVendors(ctx)
	if err != nil {
		return nil, err
	}
	return FilterVendors(vendors, query), nil
}

// FetchStatement implements StatementFetcher.FetchStatement.
func (m *MockClient) FetchStatement(ctx context.Context, vendorID, dateFrom, dateTo string) ([]model.StatementLine, error) {
	m.FetchStatementCalls = append(m.FetchStatementCalls, FetchStatementCall{
		VendorID: vendorID,
		DateFrom: dateFrom,
		DateTo:   dateTo,
	})

	if m.FetchStatementFn != nil {
		return m.FetchStatementFn(ctx, vendorID, dateFrom, dateTo)
	}

	return []model.StatementLine{}, nil
}
