package shelf

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadTable reads a shelf range table from a YAML file. The matcher, not
// the loader's caller, is allowed to be forgiving: all configuration
// validation happens here so Match can stay error-free.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read range table: %w", err)
	}

	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse range table %s: %w", path, err)
	}

	if table.Policy == "" {
		table.Policy = MatchContains
	}
	if table.Policy != MatchContains && table.Policy != MatchExact {
		return nil, fmt.Errorf("range table %s: unknown match policy %q", path, table.Policy)
	}

	for i, r := range table.Ranges {
		if r.CallNumberLow == "" || r.CallNumberHigh == "" {
			return nil, fmt.Errorf("range table %s: range %d is missing low/high bounds", path, i)
		}
		if r.SVGCode == "" {
			return nil, fmt.Errorf("range table %s: range %d is missing an svg code", path, i)
		}
	}

	slog.Debug("Loaded shelf range table", "path", path, "ranges", len(table.Ranges), "policy", table.Policy)

	return &table, nil
}

// SaveTable writes the table back to a YAML file. Used by the translate
// command after filling in localized descriptions.
func SaveTable(path string, table *Table) error {
	data, err := yaml.Marshal(table)
	if err != nil {
		return fmt.Errorf("failed to marshal range table: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write range table %s: %w", path, err)
	}

	return nil
}
