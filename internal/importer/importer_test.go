package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SayMoreX/digame/internal/field"
	"github.com/SayMoreX/digame/internal/folder"
)

func TestParseMappingRejectsUnroutableDestinations(t *testing.T) {
	tests := []struct {
		name string
		json string
		ok   bool
	}{
		{"plain key", `{"Title": "title"}`, true},
		{"explicit drop", `{"Filename": ""}`, true},
		{"contribution name", `{"Speaker": "contribution.name"}`, true},
		{"contribution role", `{"Speaker Role": "contribution.role"}`, true},
		{"unknown prefix", `{"Name": "person.name"}`, false},
		{"unknown contribution part", `{"X": "contribution.age"}`, false},
		{"too many segments", `{"X": "session.custom.x"}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMapping([]byte(tt.json))
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrUnsupportedDestination)
			}
		})
	}
}

func TestDefaultSessionMapping(t *testing.T) {
	table := DefaultSessionMapping()
	require.NoError(t, table.Validate())

	// headers are matched case-insensitively
	dest, ok := table.destination("Title")
	require.True(t, ok)
	assert.Equal(t, "title", dest)

	dest, ok = table.destination("participant_1_full_name")
	require.True(t, ok)
	assert.Equal(t, "contribution.name", dest)
}

func TestMapRecordContributionFanOut(t *testing.T) {
	table, err := ParseMapping([]byte(`{"name": "contribution.name", "role": "contribution.role"}`))
	require.NoError(t, err)

	rec := MapRecord(Row{
		{Label: "name", Value: "Amos"},
		{Label: "role", Value: "Transcriber"},
	}, table)

	require.Len(t, rec.Contributions, 1)
	assert.Equal(t, "Amos", rec.Contributions[0].PersonReference)
	assert.Equal(t, "Transcriber", rec.Contributions[0].Role)
	assert.Empty(t, rec.Warnings)
}

func TestMapRecordOrphanRoleIsDropped(t *testing.T) {
	table, err := ParseMapping([]byte(`{"role": "contribution.role"}`))
	require.NoError(t, err)

	rec := MapRecord(Row{{Label: "role", Value: "Transcriber"}}, table)
	assert.Empty(t, rec.Contributions)
	require.Len(t, rec.Warnings, 1)
	assert.Contains(t, rec.Warnings[0], "no preceding contributor name")
}

func TestMapRecordBuckets(t *testing.T) {
	table, err := ParseMapping([]byte(`{"title": "title", "video": ""}`))
	require.NoError(t, err)

	rec := MapRecord(Row{
		{Label: "title", Value: "The Story"},
		{Label: "video", Value: "cam2.mp4"},       // explicit opt-out
		{Label: "Weather", Value: "heavy rain"},   // unmapped: kept as custom
		{Label: "title2", Value: "   "},           // blank cells are ignored
	}, table)

	assert.Equal(t, []Entry{{Key: "title", Value: "The Story"}}, rec.Fields)
	assert.Equal(t, []Entry{{Key: "Weather", Value: "heavy rain"}}, rec.Custom)
	require.Len(t, rec.Warnings, 1)
	assert.Contains(t, rec.Warnings[0], `"video"`)
}

func TestMapRecordBlankCellInDroppedColumnStaysQuiet(t *testing.T) {
	table, err := ParseMapping([]byte(`{"title": "title", "video": ""}`))
	require.NoError(t, err)

	// a blank cell never reaches the mapped-to-nothing warning
	rec := MapRecord(Row{
		{Label: "title", Value: "The Story"},
		{Label: "video", Value: "   "},
	}, table)
	assert.Empty(t, rec.Warnings)
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2011-10-13", "2011-10-13"},
		{"10/13/2011", "2011-10-13"},
		{"2011/10/13", "2011-10-13"},
		{"Oct 13, 2011", "2011-10-13"},
		{"13 Oct 2011", "2011-10-13"},
		{"20111013", "2011-10-13"},
		{"10/13/11", "2011-10-13"},
		{"", ""},
	}
	for _, tt := range tests {
		got, err := NormalizeDate(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := NormalizeDate("the day after the feast")
	assert.ErrorIs(t, err, ErrDateParse)
}

func TestApplySessionRecord(t *testing.T) {
	rec := MappedRecord{
		Fields: []Entry{
			{Key: "id", Value: "ETR009"},
			{Key: "date", Value: "10/13/2011"},
		},
		Custom:        []Entry{{Key: "Weather", Value: "heavy rain"}},
		Contributions: []field.Contribution{{PersonReference: "Amos"}},
	}

	s := folder.NewSession()
	warnings := ApplySessionRecord(rec, s)
	assert.Empty(t, warnings)

	assert.Equal(t, "ETR009", s.ID())
	f, ok := s.Properties.GetValue("date")
	require.True(t, ok)
	assert.Equal(t, "2011-10-13", f.Text())

	f, ok = s.Properties.GetValue("Weather")
	require.True(t, ok)
	assert.True(t, f.IsCustom())
	assert.Equal(t, "heavy rain", f.Text())

	require.Len(t, s.Contributions, 1)
	assert.Equal(t, "participant", s.Contributions[0].Role)
}

func TestApplySessionRecordBadDateLeavesFieldUnset(t *testing.T) {
	rec := MappedRecord{Fields: []Entry{
		{Key: "id", Value: "ETR009"},
		{Key: "date", Value: "the day after the feast"},
	}}

	s := folder.NewSession()
	warnings := ApplySessionRecord(rec, s)

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "unparseable date")
	_, ok := s.Properties.GetValue("date")
	assert.False(t, ok)
	// the rest of the row still lands
	assert.Equal(t, "ETR009", s.ID())
}

func TestReadCSVGrid(t *testing.T) {
	grid, err := ReadCSVGrid(strings.NewReader("code,title\nETR009,The Story\nETR010\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"code", "title"}, grid.Headers)
	require.Len(t, grid.Rows, 2)

	// ragged rows are padded when paired with headers
	row := grid.Row(1)
	assert.Equal(t, Row{{Label: "code", Value: "ETR010"}, {Label: "title", Value: ""}}, row)
}

func TestReadCSVGridEmpty(t *testing.T) {
	_, err := ReadCSVGrid(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoHeaderRow)
}

func TestImportSessions(t *testing.T) {
	table := DefaultSessionMapping()
	p := folder.NewProject()

	grid, err := ReadCSVGrid(strings.NewReader(
		"code,title,date,participant_1_full_name,participant_1_role\n" +
			"ETR009,The Story,10/13/2011,Awi Heole,Speaker\n" +
			",,,,\n" + // blank row: skipped, not imported
			"ETR010,Fishing,bad date,,\n"))
	require.NoError(t, err)

	report, err := ImportSessions(p, grid, table)
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 2, report.Imported)
	assert.Equal(t, 1, report.Skipped)
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, 4, report.Warnings[0].Row)

	require.Len(t, p.Sessions(), 2)
	s := p.FindSession("ETR009")
	require.NotNil(t, s)
	require.Len(t, s.Contributions, 1)
	assert.Equal(t, "Speaker", s.Contributions[0].Role)
}

func TestImportSessionsCollisionRetiresPrior(t *testing.T) {
	table := DefaultSessionMapping()
	p := folder.NewProject()

	first, err := ReadCSVGrid(strings.NewReader("code,title\nETR009,Old Title\n"))
	require.NoError(t, err)
	_, err = ImportSessions(p, first, table)
	require.NoError(t, err)

	second, err := ReadCSVGrid(strings.NewReader("code,title\nETR009,New Title\n"))
	require.NoError(t, err)
	_, err = ImportSessions(p, second, table)
	require.NoError(t, err)

	// last write wins at the identifier level; never a merge
	sessions := p.Sessions()
	require.Len(t, sessions, 1)
	f, ok := sessions[0].Properties.GetValue("title")
	require.True(t, ok)
	assert.Equal(t, "New Title", f.Text())

	retired := p.RetiredSessions()
	require.Len(t, retired, 1)
	assert.Equal(t, "ETR009", retired[0].Session.ID())
	assert.NotEmpty(t, retired[0].ID)
}
