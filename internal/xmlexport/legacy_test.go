package xmlexport

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SayMoreX/digame/internal/field"
	"github.com/SayMoreX/digame/internal/folder"
)

func TestDocumentRendering(t *testing.T) {
	root := NewElement("Foo")
	root.ChildWithText("bar", "a < b & c")
	root.Child("empty")
	root.Comment("a note")
	el := root.ChildWithText("attrs", "v")
	el.Attr("x", `say "hi"`)

	got := Document(root)

	assert.True(t, strings.HasPrefix(got, "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n"))
	assert.Contains(t, got, "<bar>a &lt; b &amp; c</bar>")
	// the legacy reader chokes on self-closing tags
	assert.Contains(t, got, "<empty></empty>")
	assert.NotContains(t, got, "<empty/>")
	assert.Contains(t, got, "<!-- a note -->")
	assert.Contains(t, got, `<attrs x="say &quot;hi&quot;">v</attrs>`)
}

func TestLegacyXmlSessionDocument(t *testing.T) {
	s := folder.NewSession()
	s.Properties.SetText("id", "ETR009")
	s.Properties.SetText("title", "The Story")
	s.Properties.SetText("date", "2011-10-13")
	s.Properties.SetText("genre", "narrative")
	s.Properties.SetText("setting", "village")
	s.Properties.AddCustomProperty(field.NewCustomField("favoriteColor", "green"))
	s.Contributions = []field.Contribution{
		{PersonReference: "Awi Heole", Role: "speaker", Date: "2011-10-13"},
	}

	got, err := LegacyXml("Session", &s.Folder, LegacyOptions{OutputTypeInTags: true})
	require.NoError(t, err)

	want := `<?xml version="1.0" encoding="utf-8"?>
<Session minimum_digame_version_to_read="0.0.0">
  <id type="string">ETR009</id>
  <title type="string">The Story</title>
  <date>2011-10-13</date>
  <genre type="string">narrative</genre>
  <contributions type="xml">
    <contributor>
      <name>Awi Heole</name>
      <role>speaker</role>
      <date>2011-10-13</date>
    </contributor>
  </contributions>
  <AdditionalFields type="xml">
    <setting type="string">village</setting>
  </AdditionalFields>
  <CustomFields type="xml">
    <favoriteColor type="string">green</favoriteColor>
  </CustomFields>
</Session>
`
	assert.Equal(t, want, got)
}

func TestLegacyXmlStableAcrossRuns(t *testing.T) {
	s := folder.NewSession()
	s.Properties.SetText("id", "ETR009")
	s.Properties.SetText("title", "The Story")

	first, err := LegacyXml("Session", &s.Folder, LegacyOptions{OutputTypeInTags: true})
	require.NoError(t, err)
	second, err := LegacyXml("Session", &s.Folder, LegacyOptions{OutputTypeInTags: true})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLegacyXmlDualEmission(t *testing.T) {
	p := folder.NewProject()
	p.Properties.SetText("archiveConfigurationName", "ELAR")
	p.Properties.SetText("collectionSubjectLanguages", "etr: Edolo;tpi: Tok Pisin")

	got, err := LegacyXml("Project", &p.Folder, LegacyOptions{})
	require.NoError(t, err)

	// one canonical value, emitted twice: never deduplicate this
	assert.Contains(t, got, "<ArchiveConfigurationName>ELAR</ArchiveConfigurationName>")
	assert.Contains(t, got, "<AccessProtocol>ELAR</AccessProtocol>")
	assert.Contains(t, got, "We still emit <AccessProtocol> for compatibility")

	assert.Contains(t, got, "<CollectionSubjectLanguages>etr: Edolo;tpi: Tok Pisin</CollectionSubjectLanguages>")
	// only the first language survives under the old single-language tag
	assert.Contains(t, got, "<VernacularISO3CodeAndName>etr: Edolo</VernacularISO3CodeAndName>")
}

func TestLegacyXmlProjectHasNoTypeAttributes(t *testing.T) {
	p := folder.NewProject()
	p.Properties.SetText("title", "Edolo Documentation")

	got, err := LegacyXml("Project", &p.Folder, LegacyOptions{})
	require.NoError(t, err)
	assert.Contains(t, got, "<Title>Edolo Documentation</Title>")
	assert.NotContains(t, got, `type="string"`)
}

func TestLegacyXmlParticipantsCompatList(t *testing.T) {
	s := folder.NewSession()
	s.Properties.SetText("id", "ETR009")
	s.Properties.SetText("participants", "ignored for emission")
	s.Contributions = []field.Contribution{
		{PersonReference: "Awi Heole", Role: "speaker"},
		{PersonReference: "Ilawi Amosa", Role: "translator"},
	}

	got, err := LegacyXml("Session", &s.Folder, LegacyOptions{OutputTypeInTags: true})
	require.NoError(t, err)
	assert.Contains(t, got, "<participants>Awi Heole;Ilawi Amosa</participants>")
}

func TestLegacyXmlContributorDefaults(t *testing.T) {
	s := folder.NewSession()
	s.Properties.SetText("id", "ETR009")
	s.Contributions = []field.Contribution{
		{PersonReference: "Awi Heole"}, // no role, no date
		{PersonReference: "   "},       // blank: skipped entirely
	}

	got, err := LegacyXml("Session", &s.Folder, LegacyOptions{OutputTypeInTags: true})
	require.NoError(t, err)

	assert.Contains(t, got, "<role>participant</role>")
	assert.Contains(t, got, "<smxrole>unspecified</smxrole>")
	assert.Contains(t, got, "<date>0001-01-01</date>")
	assert.Equal(t, 1, strings.Count(got, "<contributor>"))
}

func TestLegacyXmlEmptyGroupsOmitted(t *testing.T) {
	s := folder.NewSession()
	s.Properties.SetText("id", "ETR009")
	s.Properties.SetText("setting", "unspecified") // below the write threshold

	got, err := LegacyXml("Session", &s.Folder, LegacyOptions{OutputTypeInTags: true})
	require.NoError(t, err)
	assert.NotContains(t, got, "<AdditionalFields")
	assert.NotContains(t, got, "<CustomFields")
}

func TestLegacyXmlEmptyCustomFieldsWhenWatching(t *testing.T) {
	s := folder.NewSession()
	s.Properties.SetText("id", "ETR009")
	s.Properties.AddCustomProperty(field.NewCustomField("favoriteColor", ""))

	got, err := LegacyXml("Session", &s.Folder,
		LegacyOptions{OutputTypeInTags: true, OutputEmptyCustomFields: true})
	require.NoError(t, err)
	assert.Contains(t, got, "<favoriteColor type=\"string\"></favoriteColor>")
}

func TestLegacyXmlOmitSaveIsInvisible(t *testing.T) {
	s := folder.NewSession()
	s.Properties.SetText("id", "ETR009")
	s.Properties.SetText("status", "in progress") // omitExport, but saved
	hidden := field.FromDefinition(&field.FieldDefinition{
		Key: "scratch", Persist: true, OmitSave: true,
	})
	hidden.SetText("do not save me")
	s.Properties.AddCustomProperty(hidden)

	got, err := LegacyXml("Session", &s.Folder, LegacyOptions{OutputTypeInTags: true})
	require.NoError(t, err)
	assert.NotContains(t, got, "scratch")
	assert.Contains(t, got, "in progress")
}

func TestLegacyXmlDeprecatedAttribute(t *testing.T) {
	s := folder.NewSession()
	s.Properties.SetText("situation", "old style value")

	got, err := LegacyXml("Session", &s.Folder, LegacyOptions{OutputTypeInTags: true})
	require.NoError(t, err)
	assert.Contains(t, got, `<situation type="string" deprecated="true">old style value</situation>`)
}

func TestLegacyXmlEmissionErrorCarriesPath(t *testing.T) {
	s := folder.NewSession()
	s.MetadataPath = "/project/sessions/ETR009/ETR009.session"
	bad := field.NewField("birthdate", field.TypeText, "not a date type")
	s.Properties.AddCustomProperty(bad)

	_, err := LegacyXml("Session", &s.Folder, LegacyOptions{OutputTypeInTags: true})
	require.Error(t, err)
	var emissionErr *XmlEmissionError
	require.ErrorAs(t, err, &emissionErr)
	assert.Equal(t, "/project/sessions/ETR009/ETR009.session", emissionErr.Path)
}

// Unmapped spreadsheet columns become custom fields keyed by the raw column
// label, so keys with spaces reach the emitter routinely. They must fail
// loudly, never produce a malformed document.
func TestLegacyXmlRejectsIllegalCustomFieldKeys(t *testing.T) {
	s := folder.NewSession()
	s.MetadataPath = "/project/sessions/ETR009/ETR009.session"
	s.Properties.SetText("id", "ETR009")
	s.Properties.AddCustomProperty(field.NewCustomField("favorite color", "green"))

	got, err := LegacyXml("Session", &s.Folder, LegacyOptions{OutputTypeInTags: true})
	require.Error(t, err)
	assert.Empty(t, got)

	var emissionErr *XmlEmissionError
	require.ErrorAs(t, err, &emissionErr)
	assert.Equal(t, "/project/sessions/ETR009/ETR009.session", emissionErr.Path)
	assert.Contains(t, err.Error(), "favorite color")
}

func TestLegacyXmlDateLookingCustomFieldIsAnError(t *testing.T) {
	s := folder.NewSession()
	s.Properties.SetText("id", "ETR009")
	s.Properties.AddCustomProperty(field.NewCustomField("OriginalDate", "long ago"))

	got, err := LegacyXml("Session", &s.Folder, LegacyOptions{OutputTypeInTags: true})
	require.Error(t, err)
	assert.Empty(t, got)

	var emissionErr *XmlEmissionError
	require.ErrorAs(t, err, &emissionErr)
	assert.Contains(t, err.Error(), "OriginalDate")
}

func TestIsValidName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"favoriteColor", true},
		{"_internal", true},
		{"with-dash.and.dot2", true},
		{"", false},
		{"favorite color", false},
		{"2starts-with-digit", false},
		{"angle<bracket", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.valid, isValidName(tt.name), tt.name)
	}
}
