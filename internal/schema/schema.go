// Package schema declares the static field definitions for the three entity
// kinds. The tables are the external "field definition source": loaded once
// at package init, immutable afterwards, and looked up by key.
//
// XmlTag overrides reproduce the inconsistent capitalization the legacy
// desktop reader expects; do not normalize them.
package schema

import "github.com/SayMoreX/digame/internal/field"

// EntityKind selects which definition table applies.
type EntityKind string

const (
	KindProject EntityKind = "project"
	KindSession EntityKind = "session"
	KindPerson  EntityKind = "person"
)

var (
	projectByKey map[string]*field.FieldDefinition
	sessionByKey map[string]*field.FieldDefinition
	personByKey  map[string]*field.FieldDefinition
)

func init() {
	projectByKey = index(projectFields)
	sessionByKey = index(sessionFields)
	personByKey = index(personFields)
}

// index builds the key map and stamps each definition with its declaration
// order, which the exporter uses as the primary sort key.
func index(defs []*field.FieldDefinition) map[string]*field.FieldDefinition {
	byKey := make(map[string]*field.FieldDefinition, len(defs))
	for i, def := range defs {
		def.TabIndex = i
		byKey[def.Key] = def
	}
	return byKey
}

// KnownFields returns the declaration-ordered definition list for kind.
// Callers must treat the result as read-only.
func KnownFields(kind EntityKind) []*field.FieldDefinition {
	switch kind {
	case KindProject:
		return projectFields
	case KindSession:
		return sessionFields
	case KindPerson:
		return personFields
	default:
		return nil
	}
}

// Lookup returns a field.DefinitionLookup over the table for kind.
func Lookup(kind EntityKind) field.DefinitionLookup {
	var byKey map[string]*field.FieldDefinition
	switch kind {
	case KindProject:
		byKey = projectByKey
	case KindSession:
		byKey = sessionByKey
	case KindPerson:
		byKey = personByKey
	}
	return func(key string) (*field.FieldDefinition, bool) {
		def, ok := byKey[key]
		return def, ok
	}
}

// GetDefinition looks up a single definition by kind and key.
func GetDefinition(kind EntityKind, key string) (*field.FieldDefinition, bool) {
	def, ok := Lookup(kind)(key)
	return def, ok
}
