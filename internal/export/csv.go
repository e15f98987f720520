// Package export renders entity sets into flat tabular form and packages the
// result for the archive sink. The column ordering and the quoting rule are
// compatibility surfaces: downstream consumers parse this exact shape, so
// both must stay byte-stable for unchanged data.
package export

import (
	"sort"
	"strings"

	"github.com/SayMoreX/digame/internal/field"
	"github.com/SayMoreX/digame/internal/folder"
)

const eol = "\n"

// columnBlacklist lists derived/meta keys that never appear in exports.
var columnBlacklist = map[string]bool{
	"modifiedDate": true,
	"size":         true,
	"type":         true,
	"hasConsent":   true,
	"displayName":  true,
	"filename":     true,
}

// Record is one row-to-be: the entity's fields plus the session/person
// extras that are not expressed as ordinary fields.
type Record struct {
	Properties    *field.FieldSet
	Contributions []field.Contribution
	Languages     []field.PersonLanguage
}

// CsvEncode escapes one cell value. A value is quoted when it contains a
// comma, a carriage return, or a double quote; internal quotes are doubled.
// Line-feed-only content is deliberately not quoted. This narrows strict CSV
// quoting and must be preserved exactly for downstream compatibility.
func CsvEncode(value string) string {
	needsQuotes := strings.Contains(value, ",") ||
		strings.Contains(value, "\r") ||
		strings.Contains(value, `"`)

	value = strings.ReplaceAll(value, `"`, `""`)

	if needsQuotes {
		return `"` + value + `"`
	}
	return value
}

// GenericCsv renders a homogeneous record set into one CSV document.
//
// The column set is the union of field keys across all records, minus the
// blacklist and any key whose definition is export-omitted. Known fields
// sort in declaration order; unlisted fields sort after all known fields,
// lexicographic by key. Session sets get a synthetic trailing contributions
// column. An empty record set yields an empty document, not a header-only
// one; callers must check before treating the result as tabular data.
//
// knownFields is passed explicitly: the sort must not depend on any shared
// schema snapshot.
func GenericCsv(records []Record, knownFields []*field.FieldDefinition, isSessionSet bool) string {
	if len(records) == 0 {
		return ""
	}

	keys := collectKeys(records, knownFields)

	header := strings.Join(keys, ",")
	if isSessionSet {
		header += ",contributions"
	}

	lines := make([]string, 0, len(records))
	for _, rec := range records {
		cells := make([]string, 0, len(keys)+1)
		for _, key := range keys {
			cells = append(cells, CsvEncode(cellValue(rec, key)))
		}
		if isSessionSet {
			cells = append(cells, CsvEncode(contributionsCell(rec.Contributions)))
		}
		lines = append(lines, strings.Join(cells, ","))
	}

	return header + eol + strings.Join(lines, eol)
}

// collectKeys returns the export column keys in their final order.
func collectKeys(records []Record, knownFields []*field.FieldDefinition) []string {
	var keys []string
	seen := make(map[string]bool)
	for _, rec := range records {
		for _, key := range rec.Properties.Keys() {
			if seen[key] {
				continue
			}
			seen[key] = true
			if columnBlacklist[key] {
				continue
			}
			if f, ok := rec.Properties.GetValue(key); ok &&
				f.Definition != nil && f.Definition.OmitExport {
				continue
			}
			keys = append(keys, key)
		}
	}

	knownIndex := make(map[string]int, len(knownFields))
	for i, def := range knownFields {
		knownIndex[def.Key] = i
	}
	const unlisted = 1 << 20
	rank := func(key string) int {
		if i, ok := knownIndex[key]; ok {
			return i
		}
		return unlisted
	}
	sort.SliceStable(keys, func(i, j int) bool {
		ri, rj := rank(keys[i]), rank(keys[j])
		if ri != rj {
			return ri < rj
		}
		return keys[i] < keys[j]
	})
	return keys
}

// cellValue renders one field as its plain (pre-escaping) cell text.
func cellValue(rec Record, key string) string {
	f, ok := rec.Properties.GetValue(key)
	if !ok {
		return ""
	}
	if f.Type == field.TypePersonLanguageList {
		return languagesCell(rec.Languages)
	}
	return f.Text()
}

// languagesCell renders a person's languages as pipe-joined codes with the
// primary marker and parent annotations.
func languagesCell(languages []field.PersonLanguage) string {
	parts := make([]string, 0, len(languages))
	for _, l := range languages {
		code := l.Code
		if l.Primary {
			code = "*" + code
		}
		if l.Mother {
			code += " (also mother)"
		}
		if l.Father {
			code += " (also father)"
		}
		parts = append(parts, code)
	}
	return strings.Join(parts, "|")
}

// contributionsCell renders role:personReference pairs joined by pipes.
func contributionsCell(contributions []field.Contribution) string {
	parts := make([]string, 0, len(contributions))
	for _, c := range contributions {
		parts = append(parts, c.Role+":"+c.PersonReference)
	}
	return strings.Join(parts, "|")
}

// MakeProjectCsv renders the single project entity.
func MakeProjectCsv(p *folder.Project) string {
	rec := Record{Properties: p.Properties, Contributions: p.Contributions}
	return GenericCsv([]Record{rec}, p.KnownFields(), false)
}

// MakeSessionsCsv renders every session accepted by filter. A nil filter
// accepts all sessions.
func MakeSessionsCsv(p *folder.Project, filter func(*folder.Session) bool) string {
	sessions := p.Sessions()
	records := make([]Record, 0, len(sessions))
	var known []*field.FieldDefinition
	for _, s := range sessions {
		if filter != nil && !filter(s) {
			continue
		}
		if known == nil {
			known = s.KnownFields()
		}
		records = append(records, Record{
			Properties:    s.Properties,
			Contributions: s.Contributions,
		})
	}
	return GenericCsv(records, known, true)
}

// MakePeopleCsv renders every person in the project.
func MakePeopleCsv(p *folder.Project) string {
	people := p.People()
	records := make([]Record, 0, len(people))
	var known []*field.FieldDefinition
	for _, person := range people {
		if known == nil {
			known = person.KnownFields()
		}
		records = append(records, Record{
			Properties: person.Properties,
			Languages:  person.Languages,
		})
	}
	return GenericCsv(records, known, false)
}
