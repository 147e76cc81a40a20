package review

import (
	"fmt"

	"github.com/steinunnb/vendorwatch/internal/model"
)

// ReviewVendor runs the full rule battery over one vendor's raw statement
// lines as of the given report date. The rules run in a fixed order so flag
// ordering is deterministic: aging, debit balance, credit mismatch and
// duplicate payments produce red flags; pattern break and inactivity produce
// orange flags. An invalid report date is the only error; malformed statement
// fields are absorbed during normalization.
func ReviewVendor(lines []model.StatementLine, reportDate string) (*model.ReviewResult, error) {
	reportDt, err := ParseReportDate(reportDate)
	if err != nil {
		return nil, fmt.Errorf("invalid report date %q (want YYYY-MM-DD): %w", reportDate, err)
	}

	tl := BuildTimeline(lines)

	red := []string{}
	orange := []string{}

	red = append(red, UnpaidInvoiceFlags(tl, reportDt)...)
	if DebitBalance(tl, reportDt) {
		red = append(red, "Vendor shows debit balance")
	}
	if CreditBalanceMismatch(tl, reportDt) {
		red = append(red, "Credit balance does not match any open invoice")
	}
	red = append(red, DuplicatePaymentFlags(tl, reportDt)...)

	if MonthlyPatternBreak(tl, reportDt) {
		orange = append(orange, "Break in monthly pattern")
	}
	if InactiveWithBalance(tl, reportDt) {
		orange = append(orange, "Inactive vendor with non-zero balance")
	}

	return &model.ReviewResult{
		Balance:  EndingBalance(tl, reportDt),
		Red:      red,
		Orange:   orange,
		Timeline: tl,
	}, nil
}
