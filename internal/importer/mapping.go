// Package importer converts external spreadsheets (CSV, XLSX) into sessions,
// driven by a declarative mapping table from source column label to
// destination field key. Unmapped columns are kept as custom fields so no
// user data is silently discarded.
package importer

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedDestination reports a mapping table entry the importer
// cannot route. It is raised when the table is validated, before any row is
// processed; a bad table fails the whole import run.
var ErrUnsupportedDestination = errors.New("unsupported mapping destination")

// Second segments accepted under the "contribution." prefix.
var contributionParts = map[string]bool{
	"name":     true,
	"role":     true,
	"date":     true,
	"comments": true,
}

//go:embed lingmetax_session_map.json
var lingMetaXSessionMap []byte

// MappingTable maps a lowercased source column label to a destination path:
// "" (drop the column), a field key ("title"), or "contribution.<part>".
type MappingTable map[string]string

// ParseMapping reads a JSON mapping table and validates every destination.
// Labels are matched case-insensitively against spreadsheet headers.
func ParseMapping(data []byte) (MappingTable, error) {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing mapping table: %w", err)
	}
	table := make(MappingTable, len(raw))
	for label, dest := range raw {
		table[strings.ToLower(strings.TrimSpace(label))] = strings.TrimSpace(dest)
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// DefaultSessionMapping returns the built-in LingMetaX session mapping.
func DefaultSessionMapping() MappingTable {
	table, err := ParseMapping(lingMetaXSessionMap)
	if err != nil {
		// the embedded table is part of the build; a parse failure here is a
		// packaging bug, not a runtime condition
		panic(err)
	}
	return table
}

// Validate checks every destination path. Unlike row-level problems, which
// are warnings, an unroutable destination is a configuration error and is
// fatal for the run.
func (t MappingTable) Validate() error {
	for label, dest := range t {
		if dest == "" {
			continue // explicit opt-out
		}
		segments := strings.Split(dest, ".")
		switch {
		case len(segments) == 1:
			// plain field key
		case len(segments) == 2 && segments[0] == "contribution" && contributionParts[segments[1]]:
			// contribution fan-out
		default:
			return fmt.Errorf("%w: %q (column %q)", ErrUnsupportedDestination, dest, label)
		}
	}
	return nil
}

// destination resolves a spreadsheet header to its destination path.
func (t MappingTable) destination(label string) (string, bool) {
	dest, ok := t[strings.ToLower(strings.TrimSpace(label))]
	return dest, ok
}
