package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"123", 123},
		{"123.45", 123.45},
		{"-100", -100},
		{" 42 ", 42},
		{"1.5E+6", 1500000},
		{"2.5e-1", 0.25},
		{"", 0},
		{"None", 0},
	}

	for _, tt := range tests {
		got, err := ParseAmount(tt.input)
		require.NoError(t, err, tt.input)
		assert.InDelta(t, tt.expected, got, 1e-9, "ParseAmount(%q)", tt.input)
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	for _, in := range []string{"abc", "12,5", "1.2.3"} {
		_, err := ParseAmount(in)
		assert.Error(t, err, in)
	}
}
