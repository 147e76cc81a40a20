package review

import (
	"time"

	"github.com/steinunnb/vendorwatch/internal/model"
)

// settledTolerance is the amount within which an invoice counts as fully
// settled, absorbing rounding differences and small bank fees.
const settledTolerance = 1.0

// OpenInvoice is an invoice-like amount not yet fully offset by later
// payments.
type OpenInvoice struct {
	Date      time.Time
	Remaining float64
}

// OpenInvoices runs a FIFO matching pass over the timeline up to the report
// date. Positive amounts open a ledger entry; each negative amount is consumed
// against open entries oldest-first until the payment is exhausted. Entries
// whose remaining amount falls to the settled tolerance or below are removed.
// Payments only ever match invoices that precede them in the scan.
func OpenInvoices(tl model.Timeline, reportDate time.Time) []OpenInvoice {
	var open []OpenInvoice
	for _, tx := range tl {
		if tx.Date.After(reportDate) {
			continue
		}
		switch {
		case tx.Amount > 0:
			open = append(open, OpenInvoice{Date: tx.Date, Remaining: tx.Amount})
		case tx.Amount < 0:
			pay := -tx.Amount
			i := 0
			for pay > 0 && i < len(open) {
				take := min(pay, open[i].Remaining)
				open[i].Remaining -= take
				pay -= take
				if open[i].Remaining <= settledTolerance {
					open = append(open[:i], open[i+1:]...)
				} else {
					i++
				}
			}
		}
	}
	return open
}
