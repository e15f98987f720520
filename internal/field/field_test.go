package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeAndValueForXml(t *testing.T) {
	tests := []struct {
		name     string
		field    *Field
		wantType string
		wantVal  string
	}{
		{
			name:     "text field",
			field:    NewField("title", TypeText, "  The Story of a House  "),
			wantType: "string",
			wantVal:  "The Story of a House",
		},
		{
			name:     "date field",
			field:    NewField("date", TypeDate, "2011-10-13"),
			wantType: "date",
			wantVal:  "2011-10-13",
		},
		{
			name:     "custom field uses same closed type set",
			field:    NewCustomField("favoriteColor", "green"),
			wantType: "string",
			wantVal:  "green",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typeTag, value := tt.field.TypeAndValueForXml()
			assert.Equal(t, tt.wantType, typeTag)
			assert.Equal(t, tt.wantVal, value)
		})
	}
}

func TestFieldClassification(t *testing.T) {
	core := FromDefinition(&FieldDefinition{Key: "title", Persist: true})
	additional := FromDefinition(&FieldDefinition{Key: "planning", Persist: true, IsAdditional: true})
	custom := NewCustomField("extra", "x")
	adHoc := NewField("loose", TypeText, "y")

	assert.True(t, core.IsCore())
	assert.False(t, core.IsAdditional())
	assert.False(t, core.IsCustom())

	assert.True(t, additional.IsAdditional())
	assert.False(t, additional.IsCore())

	assert.True(t, custom.IsCustom())
	assert.False(t, custom.IsCore())

	// a field with no definition at all counts as core
	assert.True(t, adHoc.IsCore())
}

func TestXmlTagOverride(t *testing.T) {
	f := FromDefinition(&FieldDefinition{Key: "id", XmlTag: "Id", Persist: true})
	assert.Equal(t, "Id", f.XmlTag())

	g := FromDefinition(&FieldDefinition{Key: "title", Persist: true})
	assert.Equal(t, "title", g.XmlTag())
}

func TestFieldSetLookupAndOrder(t *testing.T) {
	s := NewFieldSet(nil)
	s.SetText("title", "a")
	s.SetText("genre", "b")
	s.SetText("title", "c") // update must not move the key

	assert.Equal(t, []string{"title", "genre"}, s.Keys())

	f, ok := s.GetValue("title")
	require.True(t, ok)
	assert.Equal(t, "c", f.Text())

	_, ok = s.GetValue("nope")
	assert.False(t, ok)

	_, err := s.GetValueOrThrow("nope")
	assert.ErrorIs(t, err, ErrRequiredFieldMissing)
}

func TestFieldSetUsesDefinitions(t *testing.T) {
	defs := map[string]*FieldDefinition{
		"date": {Key: "date", Type: TypeDate, Persist: true},
	}
	s := NewFieldSet(func(key string) (*FieldDefinition, bool) {
		d, ok := defs[key]
		return d, ok
	})
	s.SetText("date", "2011-10-13")
	s.SetText("unknown", "x")

	f, _ := s.GetValue("date")
	assert.Equal(t, TypeDate, f.Type)
	assert.NotNil(t, f.Definition)

	g, _ := s.GetValue("unknown")
	assert.Equal(t, TypeText, g.Type)
	assert.Nil(t, g.Definition)
}

func TestPersistedFields(t *testing.T) {
	s := NewFieldSet(nil)
	s.AddCustomProperty(FromDefinition(&FieldDefinition{Key: "keep", Persist: true}))
	s.AddCustomProperty(FromDefinition(&FieldDefinition{Key: "transient", Persist: false}))
	s.AddCustomProperty(FromDefinition(&FieldDefinition{Key: "hidden", Persist: true, OmitSave: true}))

	var keys []string
	for _, f := range s.PersistedFields() {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []string{"keep"}, keys)
}

func TestContribution(t *testing.T) {
	assert.True(t, Contribution{PersonReference: "  "}.IsBlank())
	assert.False(t, Contribution{PersonReference: "Amos"}.IsBlank())
	assert.Equal(t, "participant", Contribution{PersonReference: "Amos"}.RoleOrDefault())
	assert.Equal(t, "Transcriber", Contribution{PersonReference: "Amos", Role: "Transcriber"}.RoleOrDefault())
}
