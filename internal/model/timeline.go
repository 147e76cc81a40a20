package model

import "time"

// TimelineEntry is one normalized statement line. Dates are naive (zone
// stripped), and the amount carries the payable sign convention: positive
// amounts are invoice-like charges that increase the vendor's debt, negative
// amounts are payments that reduce it.
type TimelineEntry struct {
	Date        time.Time
	Description string
	Amount      float64
}

// Timeline is a vendor's normalized transaction history, sorted ascending by
// date. It is built once per review and never mutated afterwards.
type Timeline []TimelineEntry
