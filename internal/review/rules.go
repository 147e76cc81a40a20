package review

import (
	"fmt"
	"sort"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/steinunnb/vendorwatch/internal/model"
)

// agingCutoffDays is how old an open invoice must be before it is flagged.
const agingCutoffDays = 50

// inactivityDays is how long a vendor must be quiet before the inactivity
// rule applies.
const inactivityDays = 50

var flagPrinter = message.NewPrinter(language.English)

// UnpaidInvoiceFlags returns one red flag per open invoice dated 50 or more
// days before the report date whose remaining amount exceeds the settled
// tolerance.
func UnpaidInvoiceFlags(tl model.Timeline, reportDate time.Time) []string {
	cutoff := reportDate.AddDate(0, 0, -agingCutoffDays)
	var flags []string
	for _, inv := range OpenInvoices(tl, reportDate) {
		if !inv.Date.After(cutoff) && inv.Remaining > settledTolerance {
			flags = append(flags, fmt.Sprintf("Unpaid invoice >50d (%s)", inv.Date.Format(ReportDateFormat)))
		}
	}
	return flags
}

// DebitBalance reports whether the vendor shows a debit balance. Under the
// payable sign convention a positive balance means the vendor owes us, which
// is anomalous for a creditor account.
func DebitBalance(tl model.Timeline, reportDate time.Time) bool {
	return EndingBalance(tl, reportDate) > settledTolerance
}

// CreditBalanceMismatch checks a credit (negative) ending balance against the
// open invoices. A credit that equals a single open invoice within the settled
// tolerance is considered explained; anything else is a mismatch. Balances
// that are not credits never flag.
func CreditBalanceMismatch(tl model.Timeline, reportDate time.Time) bool {
	bal := EndingBalance(tl, reportDate)
	if bal >= -settledTolerance {
		return false
	}
	credit := -bal
	for _, inv := range OpenInvoices(tl, reportDate) {
		if abs(inv.Remaining-credit) <= settledTolerance {
			return false
		}
	}
	return true
}

// DuplicatePaymentFlags flags pairs of payments whose magnitudes differ by at
// most the settled tolerance and which fall within 1-2 calendar days of each
// other. Identical flag texts are deduplicated, first occurrence wins. The
// pairwise scan is O(n^2) over payments, which is fine at the few hundred
// lines a vendor statement carries.
func DuplicatePaymentFlags(tl model.Timeline, reportDate time.Time) []string {
	var pays []model.TimelineEntry
	for _, e := range tl {
		if !e.Date.After(reportDate) && e.Amount < 0 {
			pays = append(pays, e)
		}
	}

	var flags []string
	seen := make(map[string]struct{})
	for i := 0; i < len(pays); i++ {
		for j := i + 1; j < len(pays); j++ {
			if abs(pays[i].Amount-pays[j].Amount) > settledTolerance {
				continue
			}
			days := daysBetween(pays[i].Date, pays[j].Date)
			if days < 1 || days > 2 {
				continue
			}
			flag := flagPrinter.Sprintf("Duplicate payment %.0f within %d days (%s & %s)",
				-pays[i].Amount, days,
				pays[i].Date.Format(ReportDateFormat),
				pays[j].Date.Format(ReportDateFormat))
			if _, dup := seen[flag]; !dup {
				seen[flag] = struct{}{}
				flags = append(flags, flag)
			}
		}
	}
	return flags
}

// MonthlyPatternBreak reports whether a vendor with an established monthly
// cadence went quiet. It needs at least 4 distinct active months; a run of 3
// or more consecutive months that ends at least one full month before the
// report month counts as a break. The first qualifying run in scan order
// decides; only a boolean is reported.
func MonthlyPatternBreak(tl model.Timeline, reportDate time.Time) bool {
	months := activeMonths(tl, reportDate)
	if len(months) < 4 {
		return false
	}

	repIdx := reportDate.Year()*12 + int(reportDate.Month())
	runStart := 0
	for i := 1; i < len(months); i++ {
		if months[i]-months[i-1] == 1 {
			continue
		}
		if i-runStart >= 3 && repIdx-months[i-1] >= 1 {
			return true
		}
		runStart = i
	}
	// Tail run, ending at the last observed month.
	if len(months)-runStart >= 3 && repIdx-months[len(months)-1] >= 1 {
		return true
	}
	return false
}

// activeMonths returns the distinct months with activity up to the report
// date, as sorted year*12+month indices.
func activeMonths(tl model.Timeline, reportDate time.Time) []int {
	set := make(map[int]struct{})
	for _, e := range tl {
		if !e.Date.After(reportDate) {
			set[e.Date.Year()*12+int(e.Date.Month())] = struct{}{}
		}
	}
	months := make([]int, 0, len(set))
	for m := range set {
		months = append(months, m)
	}
	sort.Ints(months)
	return months
}

// InactiveWithBalance flags vendors with at most 2 transactions whose latest
// activity is at least 50 days old while the ending balance is materially
// non-zero.
func InactiveWithBalance(tl model.Timeline, reportDate time.Time) bool {
	var count int
	var last time.Time
	for _, e := range tl {
		if e.Date.After(reportDate) {
			continue
		}
		count++
		if e.Date.After(last) {
			last = e.Date
		}
	}
	if count == 0 || count > 2 {
		return false
	}
	age := int(reportDate.Sub(last).Hours() / 24)
	return age >= inactivityDays && abs(EndingBalance(tl, reportDate)) > settledTolerance
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
