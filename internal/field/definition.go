// Package field provides the typed field model that backs project, session,
// and person metadata. A Field is a live value bound to a FieldDefinition
// (or to none, for ad-hoc custom fields); a FieldSet is the insertion-ordered
// collection of fields owned by one entity.
package field

// Type is the value kind of a field. The set is closed; the XML emitters and
// the CSV exporter switch on it.
type Type int

const (
	TypeText Type = iota
	TypeDate
	TypePersonLanguageList
)

// XmlTypeTag returns the type token written to the legacy XML dialect.
// Dates are deliberately reported as "date" here but always *emitted* as
// plain string elements; the legacy reader cannot parse a typed date element.
func (t Type) XmlTypeTag() string {
	switch t {
	case TypeDate:
		return "date"
	case TypePersonLanguageList:
		return "personLanguageList"
	default:
		return "string"
	}
}

// FieldDefinition is the static schema for one field. Definitions are loaded
// once from the schema tables and are immutable afterwards; they are
// identified and looked up by Key.
type FieldDefinition struct {
	// Key is unique within an entity's schema ("title", "genre", ...).
	Key string

	// EnglishLabel is the display label. Not used by the transformation
	// engine itself, but carried so exports and UIs agree on naming.
	EnglishLabel string

	Type Type

	// Persist marks the field for serialization to the metadata file.
	Persist bool

	// IsAdditional and IsCustom classify the field into the serialization
	// group it is written to. A field with neither flag is a core field.
	IsAdditional bool
	IsCustom     bool

	// ImdiRange is the archival vocabulary URL, if the field is bound to a
	// controlled vocabulary. ImdiIsClosedVocabulary and ImdiIsOpenList
	// select the Type attribute emitted alongside the Link.
	ImdiRange              string
	ImdiIsClosedVocabulary bool
	ImdiIsOpenList         bool

	Deprecated bool

	// OmitExport hides the field from the tabular exporter; OmitSave hides
	// it from the XML emitter. The flags are independent.
	OmitExport bool
	OmitSave   bool

	// XmlTag overrides the element tag written to the legacy dialect. The
	// legacy reader has inconsistent capitalization, so several fields
	// cannot simply use their key.
	XmlTag string

	// TabIndex is the declaration order used for export column sorting.
	TabIndex int
}

// IsCore reports whether the definition belongs to the core serialization
// group (neither additional nor custom).
func (d *FieldDefinition) IsCore() bool {
	return d == nil || (!d.IsAdditional && !d.IsCustom)
}

// PersistedXmlTag returns the element tag for the legacy dialect: the
// override when present, else the key.
func (d *FieldDefinition) PersistedXmlTag() string {
	if d != nil && d.XmlTag != "" {
		return d.XmlTag
	}
	if d != nil {
		return d.Key
	}
	return ""
}
