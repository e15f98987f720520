package importer

import (
	"fmt"
	"strings"

	"github.com/SayMoreX/digame/internal/field"
	"github.com/SayMoreX/digame/internal/folder"
)

// Cell is one (header, value) pair from a spreadsheet row. Cells arrive in
// spreadsheet column order; the contribution fan-out depends on that order.
type Cell struct {
	Label string
	Value string
}

// Row is one spreadsheet row paired with its headers.
type Row []Cell

// Entry is one mapped (key, value) pair, in source column order.
type Entry struct {
	Key   string
	Value string
}

// MappedRecord is the intermediate shape between a spreadsheet row and a
// session: direct field assignments, the custom bucket for unmapped columns,
// contribution tuples, and any row-scoped warnings produced along the way.
type MappedRecord struct {
	Fields        []Entry
	Custom        []Entry
	Contributions []field.Contribution
	Warnings      []string
}

// IsEmpty reports whether the row carried no usable data at all.
func (r *MappedRecord) IsEmpty() bool {
	return len(r.Fields) == 0 && len(r.Custom) == 0 && len(r.Contributions) == 0
}

// MapRecord routes one row through the mapping table. The table must already
// be validated; MapRecord itself never fails, it only accumulates warnings.
//
// Blank cells are skipped before any routing, so a column mapped to nothing
// only draws its dropped-value warning on rows where the cell actually holds
// data.
//
// "contribution.name" appends a new contribution; the other contribution
// parts mutate the most recently appended one. That couples correctness to
// column order: a role column must come after its name column, and a
// contribution part with no preceding name in the same row is discarded with
// a warning.
func MapRecord(row Row, table MappingTable) MappedRecord {
	var rec MappedRecord

	for _, cell := range row {
		value := strings.TrimSpace(cell.Value)
		if value == "" {
			continue
		}

		dest, mapped := table.destination(cell.Label)
		if !mapped {
			// lossless fallback: never throw away data the table doesn't know
			rec.Custom = append(rec.Custom, Entry{Key: cell.Label, Value: value})
			continue
		}
		if dest == "" {
			rec.Warnings = append(rec.Warnings,
				fmt.Sprintf("column %q is mapped to nothing; value %q dropped", cell.Label, value))
			continue
		}

		part, isContribution := strings.CutPrefix(dest, "contribution.")
		if !isContribution {
			rec.Fields = append(rec.Fields, Entry{Key: dest, Value: value})
			continue
		}

		if part == "name" {
			rec.Contributions = append(rec.Contributions, field.Contribution{PersonReference: value})
			continue
		}
		if len(rec.Contributions) == 0 {
			rec.Warnings = append(rec.Warnings,
				fmt.Sprintf("column %q: contribution %s %q has no preceding contributor name; dropped", cell.Label, part, value))
			continue
		}
		last := &rec.Contributions[len(rec.Contributions)-1]
		switch part {
		case "role":
			last.Role = value
		case "date":
			last.Date = value
		case "comments":
			last.Comments = value
		}
	}
	return rec
}

// ApplySessionRecord materializes a mapped record into a session and returns
// any further row-scoped warnings. Date-like keys are normalized to
// YYYY-MM-DD; a value that won't parse is reported and the field left unset
// rather than assigned a string the emitters would misrepresent as a date.
func ApplySessionRecord(rec MappedRecord, s *folder.Session) []string {
	var warnings []string

	for _, e := range rec.Fields {
		value := e.Value
		if isDateKey(e.Key) {
			normalized, err := NormalizeDate(value)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("field %q: %v", e.Key, err))
				continue
			}
			value = normalized
		}
		s.Properties.SetText(e.Key, value)
	}

	for _, e := range rec.Custom {
		s.Properties.AddCustomProperty(field.NewCustomField(e.Key, e.Value))
	}

	for _, c := range rec.Contributions {
		c.Role = c.RoleOrDefault()
		if c.Date != "" {
			normalized, err := NormalizeDate(c.Date)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("contributor %q: %v", c.PersonReference, err))
				c.Date = ""
			} else {
				c.Date = normalized
			}
		}
		s.Contributions = append(s.Contributions, c)
	}
	return warnings
}
