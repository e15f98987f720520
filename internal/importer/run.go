package importer

import (
	"github.com/google/uuid"

	"github.com/SayMoreX/digame/internal/folder"
)

// RowWarning is one row-scoped problem from an import run. Row numbers are
// 1-based spreadsheet rows, so the first data row is row 2.
type RowWarning struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// Report summarizes one import run. Warnings never abort the run; only a
// structural problem (bad mapping table, unreadable source) does.
type Report struct {
	RunID    string       `json:"runId"`
	Imported int          `json:"imported"`
	Skipped  int          `json:"skipped"`
	Warnings []RowWarning `json:"warnings,omitempty"`
}

// ImportSessions maps every data row of the grid into a session and
// finalizes each one against the project, retiring colliding sessions to
// the holding area. Import is best-effort per row: a row with problems
// still produces its partial session, with the problems reported.
func ImportSessions(p *folder.Project, grid *Grid, table MappingTable) (*Report, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}

	report := &Report{RunID: uuid.NewString()}
	for i := range grid.Rows {
		rowNumber := i + 2

		rec := MapRecord(grid.Row(i), table)
		if rec.IsEmpty() {
			report.Skipped++
			report.addWarnings(rowNumber, rec.Warnings)
			continue
		}

		s := folder.NewSession()
		applyWarnings := ApplySessionRecord(rec, s)
		report.addWarnings(rowNumber, rec.Warnings)
		report.addWarnings(rowNumber, applyWarnings)

		p.FinishSessionImport(s)
		report.Imported++
	}
	return report, nil
}

func (r *Report) addWarnings(row int, messages []string) {
	for _, m := range messages {
		r.Warnings = append(r.Warnings, RowWarning{Row: row, Message: m})
	}
}
