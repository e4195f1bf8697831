package rede

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"10.50", 1050, false},
		{"0", 0, false},
		{"20.99", 2099, false},
		{"1000", 100000, false},
		{"1.5", 150, false},
		{"1.234", 0, true},
		{"-1.00", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCentsToDecimal(t *testing.T) {
	assert.True(t, decimal.RequireFromString("20.99").Equal(CentsToDecimal(2099)))
	assert.Equal(t, "0.05", CentsToDecimal(5).StringFixed(2))

	tx := NewTransaction(1050, "r")
	assert.Equal(t, "10.50", tx.AmountDecimal().StringFixed(2))
}
