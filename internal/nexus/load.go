package nexus

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	dErrors "taxguard/pkg/domain-errors"
	"taxguard/pkg/platform/sentinel"
)

// thresholdFile is the on-disk layout of a threshold table:
//
//	jurisdictions:
//	  - code: NY
//	    amount: 500000
//	    transactions: 100
type thresholdFile struct {
	Jurisdictions []thresholdEntry `yaml:"jurisdictions"`
}

type thresholdEntry struct {
	Code         string  `yaml:"code"`
	Amount       float64 `yaml:"amount"`
	Transactions int64   `yaml:"transactions"`
}

// LoadTable reads a YAML threshold table from path. An empty path yields
// DefaultTable.
func LoadTable(path string) (*Table, error) {
	if path == "" {
		return DefaultTable(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("nexus table %s: %w", path, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("nexus table read: %w", err)
	}
	return ParseTable(data)
}

// ParseTable decodes a YAML threshold table.
func ParseTable(data []byte) (*Table, error) {
	var f thresholdFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "nexus table is not valid YAML")
	}

	thresholds := make(map[string]Threshold, len(f.Jurisdictions))
	for _, e := range f.Jurisdictions {
		// Pre-check raw codes so "ny" and "NY" in one file surface as a duplicate.
		code := Normalize(e.Code)
		if _, dup := thresholds[code]; dup && code != "" {
			return nil, dErrors.New(dErrors.CodeInvalidInput,
				fmt.Sprintf("jurisdiction %s is configured more than once", code))
		}
		thresholds[code] = Threshold{Amount: e.Amount, Transactions: e.Transactions}
	}
	return NewTable(thresholds)
}
