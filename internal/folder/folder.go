// Package folder models the three entity kinds that own metadata: the
// project, its sessions, and its people. Each entity owns one FieldSet plus
// (for session-like entities) a list of contributions. Lifecycle and disk
// persistence live outside this package; the types here are the in-memory
// shape the transformation engine operates on.
package folder

import (
	"github.com/SayMoreX/digame/internal/field"
	"github.com/SayMoreX/digame/internal/schema"
)

// Folder is the shared shape of project, session, and person entities.
type Folder struct {
	Kind       schema.EntityKind
	Properties *field.FieldSet

	// Contributions are the (person, role, date, comment) records attached
	// to the entity. Only sessions carry them in practice.
	Contributions []field.Contribution

	// MetadataPath is the backing file path, carried for error context only;
	// this package never touches the file system.
	MetadataPath string
}

func newFolder(kind schema.EntityKind) Folder {
	return Folder{
		Kind:       kind,
		Properties: field.NewFieldSet(schema.Lookup(kind)),
	}
}

// KnownFields returns the declaration-ordered definitions for this entity.
func (f *Folder) KnownFields() []*field.FieldDefinition {
	return schema.KnownFields(f.Kind)
}

// Session is one documentation event.
type Session struct {
	Folder
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{Folder: newFolder(schema.KindSession)}
}

// ID returns the session identifier field, or "" when unset.
func (s *Session) ID() string {
	if f, ok := s.Properties.GetValue("id"); ok {
		return f.Text()
	}
	return ""
}

// Person is one documented speaker or contributor.
type Person struct {
	Folder

	// Languages is the person's language list. It backs the
	// PersonLanguageList-typed "languages" field.
	Languages []field.PersonLanguage
}

// NewPerson creates an empty person.
func NewPerson() *Person {
	return &Person{Folder: newFolder(schema.KindPerson)}
}
