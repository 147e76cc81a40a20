// Package model defines the domain types shared across the application.
package model

// StatementLine is a single raw line of a vendor account statement as returned
// by the accounting API. The API is loose about field names and value types, so
// lines are kept as untyped key-value records until the review engine
// normalizes them.
type StatementLine map[string]any

// Get returns the value for key, or nil when the key is absent.
func (l StatementLine) Get(key string) any {
	if l == nil {
		return nil
	}
	return l[key]
}

// Has reports whether the key is present with a non-null value.
func (l StatementLine) Has(key string) bool {
	v, ok := l[key]
	return ok && v != nil
}
