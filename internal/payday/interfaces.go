package payday

import (
	"context"

	"github.com/steinunnb/vendorwatch/internal/model"
)

// StatementFetcher defines the contract the review pipeline needs from the
// accounting API. This interface allows for easy mocking in tests and for the
// statement cache to stand in as a data source.
type StatementFetcher interface {
	ListVendors(ctx context.Context) ([]model.Vendor, error)
	FetchStatement(ctx context.Context, vendorID, dateFrom, dateTo string) ([]model.StatementLine, error)
}
