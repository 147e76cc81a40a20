package model

// ReviewResult is the outcome of reviewing one vendor as of a report date.
type ReviewResult struct {
	Balance  float64  `json:"balance"`
	Red      []string `json:"red"`
	Orange   []string `json:"orange"`
	Timeline Timeline `json:"timeline"`
}

// Flagged reports whether the review raised any flag at all.
func (r *ReviewResult) Flagged() bool {
	return len(r.Red) > 0 || len(r.Orange) > 0
}
