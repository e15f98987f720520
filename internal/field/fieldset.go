package field

import "fmt"

// ErrRequiredFieldMissing reports a lookup of an unknown key through a
// required accessor. Lookups through GetValue return an explicit absent
// marker instead.
var ErrRequiredFieldMissing = fmt.Errorf("required field is missing")

// DefinitionLookup resolves a key to its static definition, if any. The
// schema tables provide one per entity kind.
type DefinitionLookup func(key string) (*FieldDefinition, bool)

// FieldSet is the insertion-ordered mapping from key to Field owned by one
// entity. Enumeration order is the order keys were first added, which is what
// keeps repeated serializations byte-identical.
type FieldSet struct {
	order  []string
	byKey  map[string]*Field
	lookup DefinitionLookup
}

// NewFieldSet creates an empty set. lookup may be nil, in which case fields
// created through SetText carry no definition.
func NewFieldSet(lookup DefinitionLookup) *FieldSet {
	return &FieldSet{byKey: make(map[string]*Field), lookup: lookup}
}

// GetValue returns the field for key, or false if absent.
func (s *FieldSet) GetValue(key string) (*Field, bool) {
	f, ok := s.byKey[key]
	return f, ok
}

// GetValueOrThrow returns the field for key or fails with
// ErrRequiredFieldMissing.
func (s *FieldSet) GetValueOrThrow(key string) (*Field, error) {
	f, ok := s.byKey[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRequiredFieldMissing, key)
	}
	return f, nil
}

// SetText sets the serialized text value for key, creating the field if it
// does not exist yet. A new field takes its type and flags from the static
// definition when the schema knows the key.
func (s *FieldSet) SetText(key, value string) {
	if f, ok := s.byKey[key]; ok {
		f.SetText(value)
		return
	}
	var f *Field
	if s.lookup != nil {
		if def, ok := s.lookup(key); ok {
			f = FromDefinition(def)
			f.SetText(value)
		}
	}
	if f == nil {
		f = NewField(key, TypeText, value)
	}
	s.add(f)
}

// AddCustomProperty inserts an ad-hoc field created at runtime. An existing
// field with the same key is replaced in place.
func (s *FieldSet) AddCustomProperty(f *Field) {
	if _, ok := s.byKey[f.Key]; ok {
		s.byKey[f.Key] = f
		return
	}
	s.add(f)
}

func (s *FieldSet) add(f *Field) {
	s.order = append(s.order, f.Key)
	s.byKey[f.Key] = f
}

// Keys returns the keys in insertion order.
func (s *FieldSet) Keys() []string {
	keys := make([]string, len(s.order))
	copy(keys, s.order)
	return keys
}

// Values returns the fields in insertion order.
func (s *FieldSet) Values() []*Field {
	fields := make([]*Field, 0, len(s.order))
	for _, key := range s.order {
		fields = append(fields, s.byKey[key])
	}
	return fields
}

// PersistedFields returns, in insertion order, the fields the XML emitter is
// allowed to see: persisted and not flagged omit-from-save.
func (s *FieldSet) PersistedFields() []*Field {
	fields := make([]*Field, 0, len(s.order))
	for _, key := range s.order {
		f := s.byKey[key]
		if !f.Persist() {
			continue
		}
		if f.Definition != nil && f.Definition.OmitSave {
			continue
		}
		fields = append(fields, f)
	}
	return fields
}

// Len returns the number of fields in the set.
func (s *FieldSet) Len() int { return len(s.order) }
