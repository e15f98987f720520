package xmlexport

import (
	"strings"
	"time"

	"github.com/SayMoreX/digame/internal/field"
	"github.com/SayMoreX/digame/internal/folder"
	"github.com/SayMoreX/digame/internal/lingtext"
)

// Vocabulary Type attribute values recognized by IMDI.
const (
	OpenVocabulary     = "OpenVocabulary"
	ClosedVocabulary   = "ClosedVocabulary"
	OpenVocabularyList = "OpenVocabularyList"
)

const imdiActorRoleVocabulary = "http://www.mpi.nl/IMDI/Schema/Actor-Role.xml"

// FieldElement appends the IMDI representation of one field value to parent.
//
// A multilingual value fans out into one sibling element per language axis,
// each carrying a LanguageId attribute (ISO639-1 prefix for 2-letter tags,
// ISO639-3 for all others). When only one axis is present the attribute is
// omitted entirely; the UI is trusted to keep monolingual fields
// monolingual. A field bound to an archival vocabulary gets Link and Type
// attributes.
//
// When the value is empty: a required element is still emitted, holding
// defaultValue; a non-required element is omitted, default or not.
func FieldElement(parent *Element, name string, f *field.Field, required bool, defaultValue string) error {
	if f == nil {
		emitIfWanted(parent, name, "", nil, required, defaultValue)
		return nil
	}

	axes, err := f.TextHolder().Axes()
	if err != nil {
		return err
	}
	var nonEmpty []lingtext.Axis
	for _, a := range axes {
		if strings.TrimSpace(a.Text) != "" {
			nonEmpty = append(nonEmpty, a)
		}
	}

	if len(nonEmpty) > 1 {
		for _, a := range nonEmpty {
			el := parent.ChildWithText(name, strings.TrimSpace(a.Text))
			el.Attr("LanguageId", languageID(a.Tag))
			addVocabularyAttrs(el, f.Definition)
		}
		return nil
	}

	value := ""
	if len(nonEmpty) == 1 {
		value = strings.TrimSpace(nonEmpty[0].Text)
	}
	emitIfWanted(parent, name, value, f.Definition, required, defaultValue)
	return nil
}

func emitIfWanted(parent *Element, name, value string, def *field.FieldDefinition, required bool, defaultValue string) {
	if value == "" {
		if !required {
			return
		}
		value = defaultValue
	}
	el := parent.ChildWithText(name, value)
	addVocabularyAttrs(el, def)
}

// languageID formats a language tag for the LanguageId attribute. Two-letter
// tags use the ISO639-1 prefix, everything else ISO639-3.
func languageID(tag string) string {
	if len(tag) == 2 {
		return "ISO639-1:" + tag
	}
	return "ISO639-3:" + tag
}

func addVocabularyAttrs(el *Element, def *field.FieldDefinition) {
	if def == nil || def.ImdiRange == "" {
		return
	}
	el.Attr("Link", def.ImdiRange)
	el.Attr("Type", vocabularyType(def))
}

func vocabularyType(def *field.FieldDefinition) string {
	switch {
	case def.ImdiIsClosedVocabulary:
		return ClosedVocabulary
	case def.ImdiIsOpenList:
		return OpenVocabularyList
	default:
		return OpenVocabulary
	}
}

// ImdiSession generates the IMDI document for one session. Field values come
// from the session; location defaults fall back to the project.
func ImdiSession(p *folder.Project, s *folder.Session) (string, error) {
	doc, err := imdiSessionElement(p, s)
	if err != nil {
		return "", &XmlEmissionError{Path: s.MetadataPath, Err: err}
	}
	return Document(doc), nil
}

func imdiSessionElement(p *folder.Project, s *folder.Session) (*Element, error) {
	root := NewElement("METATRANSCRIPT").
		Attr("xmlns", "http://www.mpi.nl/IMDI/Schema/IMDI").
		Attr("Date", time.Now().Format("2006-01-02")).
		Attr("Originator", "digame").
		Attr("Type", "SESSION").
		Attr("Version", "0")

	session := root.Child("Session")
	if err := FieldElement(session, "Name", fieldOrNil(s, "id"), true, ""); err != nil {
		return nil, err
	}
	if err := FieldElement(session, "Title", fieldOrNil(s, "title"), true, ""); err != nil {
		return nil, err
	}
	if err := FieldElement(session, "Date", fieldOrNil(s, "date"), true, "Unspecified"); err != nil {
		return nil, err
	}
	if err := FieldElement(session, "Description", fieldOrNil(s, "description"), false, ""); err != nil {
		return nil, err
	}

	mdGroup := session.Child("MDGroup")
	location := mdGroup.Child("Location")
	for _, loc := range []struct{ imdiName, key, fallbackKey string }{
		{"Continent", "locationContinent", "continent"},
		{"Country", "locationCountry", "country"},
		{"Region", "locationRegion", "region"},
		{"Address", "location", "location"},
	} {
		f := fieldOrNil(s, loc.key)
		if f == nil {
			f = fieldOrNilFromProject(p, loc.fallbackKey)
		}
		if err := FieldElement(location, loc.imdiName, f, true, "Unspecified"); err != nil {
			return nil, err
		}
	}

	content := mdGroup.Child("Content")
	if err := FieldElement(content, "Genre", fieldOrNil(s, "genre"), true, "Unspecified"); err != nil {
		return nil, err
	}
	if err := FieldElement(content, "SubGenre", fieldOrNil(s, "subgenre"), false, ""); err != nil {
		return nil, err
	}

	actors := mdGroup.Child("Actors")
	for _, c := range s.Contributions {
		if c.IsBlank() {
			continue
		}
		actor := actors.Child("Actor")
		actor.ChildWithText("Role", c.RoleOrDefault()).
			Attr("Link", imdiActorRoleVocabulary).
			Attr("Type", OpenVocabulary)
		actor.ChildWithText("FullName", c.PersonReference)
	}

	return root, nil
}

func fieldOrNil(s *folder.Session, key string) *field.Field {
	if f, ok := s.Properties.GetValue(key); ok {
		return f
	}
	return nil
}

func fieldOrNilFromProject(p *folder.Project, key string) *field.Field {
	if f, ok := p.Properties.GetValue(key); ok {
		return f
	}
	return nil
}
