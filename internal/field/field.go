package field

import (
	"strings"

	"github.com/SayMoreX/digame/internal/lingtext"
)

// Field is one live, named, typed value. Text-typed fields hold their value
// through a lingtext.TextHolder so a single field can carry several language
// axes; dates hold an ISO YYYY-MM-DD string.
type Field struct {
	Key        string
	Type       Type
	Definition *FieldDefinition // nil for values with no static schema
	holder     *lingtext.TextHolder
}

// NewField creates a field with no definition.
func NewField(key string, typ Type, value string) *Field {
	return &Field{Key: key, Type: typ, holder: lingtext.NewTextHolder(value)}
}

// FromDefinition creates an empty field bound to a definition.
func FromDefinition(def *FieldDefinition) *Field {
	return &Field{
		Key:        def.Key,
		Type:       def.Type,
		Definition: def,
		holder:     lingtext.NewTextHolder(""),
	}
}

// NewCustomField creates an ad-hoc text field for a key that has no entry in
// the static schema, e.g. an unmapped spreadsheet column. The synthesized
// definition keeps the custom flag so serialization groups it correctly.
func NewCustomField(key, value string) *Field {
	def := &FieldDefinition{
		Key:          key,
		EnglishLabel: key,
		Type:         TypeText,
		Persist:      true,
		IsCustom:     true,
	}
	f := FromDefinition(def)
	f.holder.SetSerialized(value)
	return f
}

// Text returns the serialized value, multilingual markers included.
func (f *Field) Text() string { return f.holder.Serialized() }

// SetText replaces the serialized value.
func (f *Field) SetText(value string) { f.holder.SetSerialized(value) }

// TextHolder exposes the underlying holder for axis-level access.
func (f *Field) TextHolder() *lingtext.TextHolder { return f.holder }

// Persist reports whether the field should be written by the XML emitter.
// Fields with no definition are persisted; that is what makes ad-hoc values
// survive a save/load cycle.
func (f *Field) Persist() bool {
	return f.Definition == nil || f.Definition.Persist
}

// IsCore, IsAdditional and IsCustom classify the field into the three
// disjoint serialization groups.
func (f *Field) IsCore() bool {
	return f.Definition.IsCore()
}

func (f *Field) IsAdditional() bool {
	return f.Definition != nil && f.Definition.IsAdditional
}

func (f *Field) IsCustom() bool {
	return f.Definition != nil && f.Definition.IsCustom
}

// XmlTag returns the element tag for the legacy dialect.
func (f *Field) XmlTag() string {
	if tag := f.Definition.PersistedXmlTag(); tag != "" {
		return tag
	}
	return f.Key
}

// TypeAndValueForXml returns the closed type token and the trimmed value as
// written to XML. The type token is independent of whether the field is
// reserved or ad hoc. Escaping is applied exactly once, by the document
// builder, so the value returned here is unescaped.
func (f *Field) TypeAndValueForXml() (typeTag, value string) {
	return f.Type.XmlTypeTag(), strings.TrimSpace(f.holder.Serialized())
}
