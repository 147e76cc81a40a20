package review

import (
	"sort"
	"strings"
	"time"

	"github.com/steinunnb/vendorwatch/internal/model"
)

// BuildTimeline normalizes raw statement lines into a date-sorted timeline.
// Field resolution is first-present wins: the date comes from "date" then
// "voucherDate", the description from "description" then "text", and the
// amount from "balance" then "amount". The API names the per-line transaction
// amount "balance", so a present-but-zero "balance" still wins over "amount".
// Lines whose date cannot be parsed are dropped. The sort is stable: lines on
// the same date keep their original relative order.
func BuildTimeline(lines []model.StatementLine) model.Timeline {
	out := make(model.Timeline, 0, len(lines))
	for _, ln := range lines {
		date, ok := resolveDate(ln)
		if !ok {
			continue
		}
		out = append(out, model.TimelineEntry{
			Date:        date,
			Description: resolveDescription(ln),
			Amount:      ParseAmount(resolveAmount(ln)),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

func resolveDate(ln model.StatementLine) (time.Time, bool) {
	raw := ln.Get("date")
	if s, _ := raw.(string); s == "" {
		raw = ln.Get("voucherDate")
	}
	return ParseDate(raw)
}

func resolveDescription(ln model.StatementLine) string {
	if s, _ := ln.Get("description").(string); s != "" {
		return strings.TrimSpace(s)
	}
	s, _ := ln.Get("text").(string)
	return strings.TrimSpace(s)
}

func resolveAmount(ln model.StatementLine) any {
	if ln.Has("balance") {
		return ln.Get("balance")
	}
	return ln.Get("amount")
}

// EndingBalance sums the signed amounts of all entries dated at or before the
// report date.
func EndingBalance(tl model.Timeline, reportDate time.Time) float64 {
	var sum float64
	for _, e := range tl {
		if !e.Date.After(reportDate) {
			sum += e.Amount
		}
	}
	return sum
}
