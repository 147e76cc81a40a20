package model

// Vendor is an accounts-payable counterparty as listed by the accounting API.
type Vendor struct {
	ID      string  `json:"id"`
	SSN     string  `json:"ssn"`
	Name    string  `json:"name"`
	Balance float64 `json:"balance,omitempty"`
}
