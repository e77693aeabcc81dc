package nexus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "taxguard/pkg/domain-errors"
	"taxguard/pkg/platform/sentinel"
)

func TestLoadTable_EmptyPathUsesDefault(t *testing.T) {
	table, err := LoadTable("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTable().Jurisdictions(), table.Jurisdictions())
}

func TestLoadTable_MissingFile(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestLoadTable_ValidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nexus.yaml")
	content := []byte(`
jurisdictions:
  - code: ny
    amount: 500000
    transactions: 100
  - code: WA
    amount: 100000
    transactions: 0
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	table, err := LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"NY", "WA"}, table.Jurisdictions())

	assert.False(t, table.Check("wa", 100000, 0).Verified)
	assert.True(t, table.Check("FL", 1e9, 1e6).Verified, "FL is not in this table")
}

func TestParseTable_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "malformed yaml",
			content: "jurisdictions: [",
		},
		{
			name: "negative amount",
			content: `
jurisdictions:
  - code: NY
    amount: -1
    transactions: 100
`,
		},
		{
			name: "duplicate after normalization",
			content: `
jurisdictions:
  - code: ny
    amount: 1
    transactions: 1
  - code: NY
    amount: 2
    transactions: 2
`,
		},
		{
			name: "missing code",
			content: `
jurisdictions:
  - amount: 1
    transactions: 1
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTable([]byte(tt.content))
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput), "got %v", err)
		})
	}
}

func TestLoadTable_ShippedConfigMatchesDefault(t *testing.T) {
	table, err := LoadTable(filepath.Join("..", "..", "configs", "nexus.yaml"))
	require.NoError(t, err)

	def := DefaultTable()
	require.Equal(t, def.Jurisdictions(), table.Jurisdictions())
	for _, code := range def.Jurisdictions() {
		want, _ := def.Lookup(code)
		got, _ := table.Lookup(code)
		assert.Equal(t, want, got, code)
	}
}
