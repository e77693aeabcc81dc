package nexus

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "taxguard/pkg/domain-errors"
)

func TestCheck(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		name         string
		jurisdiction string
		sales        float64
		transactions int64
		wantVerified bool
	}{
		{
			name:         "unknown jurisdiction always passes",
			jurisdiction: "ZZ",
			sales:        1_000_000,
			transactions: 500,
			wantVerified: true,
		},
		{
			name:         "FL amount threshold met exactly",
			jurisdiction: "FL",
			sales:        100000,
			transactions: 0,
			wantVerified: false,
		},
		{
			// Zero transaction threshold: 0 >= 0 trips the rule below the amount.
			name:         "FL below amount still trips zero transaction threshold",
			jurisdiction: "FL",
			sales:        99999,
			transactions: 0,
			wantVerified: false,
		},
		{
			name:         "NY transaction threshold exceeded below amount",
			jurisdiction: "NY",
			sales:        400000,
			transactions: 150,
			wantVerified: false,
		},
		{
			name:         "NY transaction threshold met exactly",
			jurisdiction: "NY",
			sales:        0,
			transactions: 100,
			wantVerified: false,
		},
		{
			name:         "NY below both thresholds",
			jurisdiction: "NY",
			sales:        499999.99,
			transactions: 99,
			wantVerified: true,
		},
		{
			name:         "lookup is case-insensitive",
			jurisdiction: "ny",
			sales:        500000,
			transactions: 0,
			wantVerified: false,
		},
		{
			name:         "surrounding whitespace is ignored",
			jurisdiction: " ca ",
			sales:        600000,
			transactions: 10,
			wantVerified: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.Check(tt.jurisdiction, tt.sales, tt.transactions)
			assert.Equal(t, tt.wantVerified, got.Verified)
			if tt.wantVerified {
				assert.Empty(t, got.Message, "passing checks carry no message")
			} else {
				assert.Contains(t, got.Message, Normalize(tt.jurisdiction))
				assert.Contains(t, got.Message, "Registration required")
			}
		})
	}
}

func TestCheck_MessageFormat(t *testing.T) {
	got := DefaultTable().Check("fl", 100000, 0)
	assert.Equal(t, "Nexus threshold exceeded in FL. Registration required.", got.Message)
}

func TestNewTable(t *testing.T) {
	t.Run("normalizes codes", func(t *testing.T) {
		table, err := NewTable(map[string]Threshold{
			" wa ": {Amount: 100000, Transactions: 200},
		})
		require.NoError(t, err)

		th, ok := table.Lookup("WA")
		require.True(t, ok)
		assert.Equal(t, Threshold{Amount: 100000, Transactions: 200}, th)
		assert.Equal(t, []string{"WA"}, table.Jurisdictions())
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := NewTable(map[string]Threshold{"NY": {Amount: -1, Transactions: 100}})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects non-finite amount", func(t *testing.T) {
		_, err := NewTable(map[string]Threshold{"NY": {Amount: math.Inf(1)}})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects negative transaction threshold", func(t *testing.T) {
		_, err := NewTable(map[string]Threshold{"NY": {Amount: 1, Transactions: -5}})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects codes that collide after normalization", func(t *testing.T) {
		_, err := NewTable(map[string]Threshold{
			"ny": {Amount: 1, Transactions: 1},
			"NY": {Amount: 2, Transactions: 2},
		})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects blank code", func(t *testing.T) {
		_, err := NewTable(map[string]Threshold{"  ": {Amount: 1}})
		require.Error(t, err)
	})

	t.Run("empty table passes everything", func(t *testing.T) {
		table, err := NewTable(nil)
		require.NoError(t, err)
		assert.Equal(t, 0, table.Len())
		assert.True(t, table.Check("NY", 1e9, 1e6).Verified)
	})
}

func TestDefaultTable(t *testing.T) {
	table := DefaultTable()
	assert.Equal(t, []string{"CA", "FL", "NY", "TX"}, table.Jurisdictions())

	ny, ok := table.Lookup("NY")
	require.True(t, ok)
	assert.Equal(t, Threshold{Amount: 500000, Transactions: 100}, ny)

	_, ok = table.Lookup("ZZ")
	assert.False(t, ok)
}
