package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToNumber(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  float64
		valid bool
	}{
		{name: "integer", in: "100", want: 100, valid: true},
		{name: "decimal", in: "12.5", want: 12.5, valid: true},
		{name: "negative", in: "-3", want: -3, valid: true},
		{name: "zero", in: "0", want: 0, valid: true},
		{name: "surrounding spaces", in: "  42 ", want: 42, valid: true},
		{name: "empty", in: ""},
		{name: "blank", in: "   "},
		{name: "letters", in: "abc"},
		{name: "trailing garbage", in: "10abc"},
		{name: "nan", in: "NaN"},
		{name: "infinity", in: "Inf"},
		{name: "overflow", in: "1e400"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToNumber(tt.in)
			assert.Equal(t, tt.valid, ok)
			if tt.valid {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestToPositiveInt(t *testing.T) {
	tests := []struct {
		in    string
		want  int
		valid bool
	}{
		{in: "1", want: 1, valid: true},
		{in: "7", want: 7, valid: true},
		{in: "3.0", want: 3, valid: true},
		{in: "3.5"},
		{in: "0"},
		{in: "-2"},
		{in: "abc"},
		{in: ""},
		{in: "3000000000", want: 3000000000, valid: true},
		{in: "99999999999", want: 99999999999, valid: true},
		{in: "1e19"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ToPositiveInt(tt.in)
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
