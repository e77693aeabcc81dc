package remittance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func usd(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestVerifyLRS(t *testing.T) {
	tests := []struct {
		name     string
		amount   decimal.Decimal
		purpose  string
		usage    decimal.Decimal
		verified bool
		message  string
	}{
		{
			name:     "within limit",
			amount:   usd(50000),
			purpose:  "education",
			usage:    usd(100000),
			verified: true,
		},
		{
			name:     "exactly at limit",
			amount:   usd(150000),
			purpose:  "investment",
			usage:    usd(100000),
			verified: true,
		},
		{
			name:     "over limit reports remaining headroom",
			amount:   usd(200000),
			purpose:  "investment",
			usage:    usd(100000),
			verified: false,
			message:  "BLOCKED: Transaction exceeds LRS limit ($250,000). Remaining: $150000",
		},
		{
			name:     "prohibited purpose regardless of amount",
			amount:   usd(10),
			purpose:  "online lottery tickets",
			usage:    decimal.Zero,
			verified: false,
			message:  "BLOCKED: Remittance for 'online lottery tickets' is strictly prohibited under FEMA Schedule I.",
		},
		{
			name:     "prohibited purpose wins over limit",
			amount:   usd(300000),
			purpose:  "Margin_Trading",
			usage:    decimal.Zero,
			verified: false,
			message:  "BLOCKED: Remittance for 'Margin_Trading' is strictly prohibited under FEMA Schedule I.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := VerifyLRS(tt.amount, tt.purpose, tt.usage)
			assert.Equal(t, tt.verified, result.Verified)
			assert.Equal(t, tt.message, result.Message)
		})
	}
}

func TestProhibited(t *testing.T) {
	assert.True(t, Prohibited("horse racing"))
	assert.True(t, Prohibited("SWEEPSTAKES"))
	assert.False(t, Prohibited("medical treatment"))
}
