package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want float64
	}{
		{name: "native float", raw: 42.0, want: 42.0},
		{name: "native int", raw: 42, want: 42.0},
		{name: "negative float", raw: -63014.0, want: -63014.0},
		{name: "nil", raw: nil, want: 0.0},
		{name: "plain string", raw: "63014", want: 63014.0},
		{name: "plain decimal string", raw: "63.014", want: 63.014},
		{name: "negative string", raw: "-18004", want: -18004.0},
		{name: "european decimal comma", raw: "1.234,56", want: 1234.56},
		{name: "decimal comma only", raw: "63,014", want: 63.014},
		{name: "nbsp thousands", raw: "1 234,5", want: 1234.5},
		{name: "space thousands", raw: "1 234.5", want: 1234.5},
		{name: "leading whitespace", raw: "  500 ", want: 500.0},
		{name: "garbage", raw: "garbage", want: 0.0},
		{name: "empty string", raw: "", want: 0.0},
		{name: "unsupported type", raw: []string{"500"}, want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseAmount(tt.raw), 1e-9)
		})
	}
}
