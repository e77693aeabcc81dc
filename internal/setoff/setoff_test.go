package setoff

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestVerify(t *testing.T) {
	loss := decimal.NewFromInt(50000)

	tests := []struct {
		name     string
		lossHead string
		offset   string
		verified bool
	}{
		{"intraday loss against F&O profit", "Intraday", "F&O", false},
		{"intraday loss against delivery gains", "intraday_equity", "Delivery", false},
		{"intraday loss against intraday profit", "INTRADAY", "intraday", true},
		{"F&O loss against intraday profit", "F&O", "Intraday", true},
		{"F&O loss against delivery", "F&O", "Delivery", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Verify(tt.lossHead, loss, tt.offset)
			assert.Equal(t, tt.verified, result.Verified)
			if tt.verified {
				assert.Empty(t, result.Message)
			} else {
				assert.NotEmpty(t, result.Message)
			}
		})
	}
}

func TestVerify_Message(t *testing.T) {
	result := Verify("Intraday", decimal.RequireFromString("12500.50"), "F&O")
	assert.Equal(t,
		"Illegal Set-Off: Intraday (Speculative) loss of 12500.5 cannot reduce f&o. "+
			"Loss of 12500.5 must be CARRIED FORWARD (4 years). It cannot be consumed now.",
		result.Message)
}

func TestIsSpeculative(t *testing.T) {
	assert.True(t, IsSpeculative("Equity Intraday"))
	assert.False(t, IsSpeculative("F&O"))
	assert.False(t, IsSpeculative(""))
}
