package xmlexport

import (
	"fmt"
	"strings"

	"github.com/SayMoreX/digame/internal/field"
	"github.com/SayMoreX/digame/internal/folder"
)

// MinimumReaderVersion is written on every document root. It stays "0.0.0"
// until the day we emit something old versions must refuse to open; at that
// point it is bumped by hand, never mechanically set to the current release.
// The token only ever moves forward.
const MinimumReaderVersion = "0.0.0"

// sentinelContributorDate is written when a contribution has no date. The
// legacy reader crashes on a missing contributor date and itself uses this
// value for the same situation.
const sentinelContributorDate = "0001-01-01"

// XmlEmissionError reports a failure while building a document, with enough
// context to identify the entity's backing file. The entity itself is left
// unmodified; nothing is written before the whole document exists in memory.
type XmlEmissionError struct {
	Path string
	Err  error
}

func (e *XmlEmissionError) Error() string {
	return fmt.Sprintf("while serializing %q: %v", e.Path, e.Err)
}

func (e *XmlEmissionError) Unwrap() error { return e.Err }

// LegacyOptions control legacy-document emission.
type LegacyOptions struct {
	// OutputTypeInTags adds a type attribute to field elements. The legacy
	// reader expects it on session and person documents but not on the
	// project document.
	OutputTypeInTags bool

	// OutputEmptyCustomFields writes custom fields even when empty. Used by
	// live-preview/diff scenarios that watch fields appear.
	OutputEmptyCustomFields bool
}

// LegacyXml serializes one entity's persisted fields into the legacy dialect.
func LegacyXml(rootName string, f *folder.Folder, opts LegacyOptions) (string, error) {
	root := NewElement(rootName).Attr("minimum_digame_version_to_read", MinimumReaderVersion)

	persisted := f.Properties.PersistedFields()

	if err := writeSimplePropertyElements(root, persisted, opts.OutputTypeInTags); err != nil {
		return "", &XmlEmissionError{Path: f.MetadataPath, Err: err}
	}

	// Older readers had "participants": people without roles. Contributions
	// replaced them, but the flat list is still written so those readers can
	// open the file.
	if _, ok := f.Properties.GetValue("participants"); ok {
		names := make([]string, 0, len(f.Contributions))
		for _, c := range f.Contributions {
			names = append(names, c.PersonReference)
		}
		root.ChildWithText("participants", strings.Join(names, ";"))
	}

	writeContributions(root, f.Contributions)

	if err := writeElementGroup(root, filterFields(persisted, (*field.Field).IsAdditional),
		"AdditionalFields", false); err != nil {
		return "", &XmlEmissionError{Path: f.MetadataPath, Err: err}
	}
	if err := writeElementGroup(root, filterFields(persisted, (*field.Field).IsCustom),
		"CustomFields", opts.OutputEmptyCustomFields); err != nil {
		return "", &XmlEmissionError{Path: f.MetadataPath, Err: err}
	}

	return Document(root), nil
}

func filterFields(fields []*field.Field, keep func(*field.Field) bool) []*field.Field {
	var out []*field.Field
	for _, f := range fields {
		if keep(f) {
			out = append(out, f)
		}
	}
	return out
}

func writeSimplePropertyElements(root *Element, fields []*field.Field, typeInTags bool) error {
	for _, f := range fields {
		if !f.IsCore() {
			continue
		}
		if err := writeField(root, f, typeInTags, false, "", ""); err != nil {
			return err
		}

		// Compatibility fan-out: one canonical value, emitted a second time
		// under the tag an older reader knows. Intentional duplication;
		// never deduplicate it.
		switch f.Key {
		case "archiveConfigurationName":
			if err := writeField(root, f, typeInTags, false, "AccessProtocol",
				"digame 3 and following use <ArchiveConfigurationName> as that matches what we're actually doing with it now. We still emit <AccessProtocol> for compatibility with older versions",
			); err != nil {
				return err
			}
		case "collectionSubjectLanguages":
			writeLanguageFieldForBackwardsCompat(root, f, "VernacularISO3CodeAndName",
				"digame 3 and following use <CollectionSubjectLanguages> to store multiple languages. We still emit the first language as <VernacularISO3CodeAndName> for compatibility with older versions")
		case "collectionWorkingLanguages":
			writeLanguageFieldForBackwardsCompat(root, f, "AnalysisISO3CodeAndName",
				"digame 3 and following use <CollectionWorkingLanguages> to store multiple languages. We still emit the first language as <AnalysisISO3CodeAndName> for compatibility with older versions")
		}
	}
	return nil
}

// writeField emits one field element. overrideTag and comment support the
// compatibility fan-out above.
func writeField(parent *Element, f *field.Field, typeInTags, outputEmpty bool, overrideTag, comment string) error {
	if f.Definition != nil && f.Definition.OmitSave {
		return nil
	}
	typeTag, value := f.TypeAndValueForXml()

	tag := overrideTag
	if tag == "" {
		tag = f.XmlTag()
	}
	if !isValidName(tag) {
		return fmt.Errorf("field key %q is not a legal XML element name", tag)
	}

	if typeTag == "date" {
		// Always a plain string element. The legacy reader cannot parse a
		// typed date element.
		if value != "" {
			parent.ChildWithText(tag, value)
		}
		return nil
	}

	if strings.Contains(strings.ToLower(f.Key), "date") {
		return fmt.Errorf("field %q looks like a date but has type %q", f.Key, typeTag)
	}

	if comment != "" {
		parent.Comment(comment)
	}

	if outputEmpty || strings.TrimSpace(value) != "" {
		el := parent.ChildWithText(tag, strings.TrimSpace(value))
		if typeInTags {
			el.Attr("type", typeTag)
		}
		if f.Definition != nil && f.Definition.Deprecated {
			el.Attr("deprecated", "true")
		}
	}
	return nil
}

// writeLanguageFieldForBackwardsCompat emits the first language of a
// semicolon-separated language field under an older single-language tag.
func writeLanguageFieldForBackwardsCompat(parent *Element, f *field.Field, overrideTag, comment string) {
	_, value := f.TypeAndValueForXml()
	if comment != "" {
		parent.Comment(comment)
	}
	first := strings.Split(value, ";")[0]
	parent.ChildWithText(overrideTag, first)
}

func writeContributions(root *Element, contributions []field.Contribution) {
	container := root.Child("contributions").Attr("type", "xml")
	for _, c := range contributions {
		if c.IsBlank() {
			continue
		}
		contributor := container.Child("contributor")
		contributor.ChildWithText("name", c.PersonReference)

		// The legacy reader crashes without a role and only accepts roles
		// from its own vocabulary, so an unspecified role is written as
		// "participant"; smxrole preserves the real state for readers that
		// understand it.
		contributor.ChildWithText("role", c.RoleOrDefault())
		if c.Role == "" {
			contributor.ChildWithText("smxrole", "unspecified")
		}

		date := c.Date
		if date == "" {
			date = sentinelContributorDate
		}
		contributor.ChildWithText("date", date)

		if strings.TrimSpace(c.Comments) != "" {
			contributor.ChildWithText("comments", c.Comments)
		}
	}
}

// writeElementGroup wraps a field group in its named container. The
// container is dropped from the document when no field meets the write
// threshold, so the legacy reader never sees an empty group tag.
func writeElementGroup(root *Element, fields []*field.Field, groupTag string, outputEmpty bool) error {
	group := NewElement(groupTag).Attr("type", "xml")

	wroteAtLeastOne := false
	for _, f := range fields {
		_, value := f.TypeAndValueForXml()
		if outputEmpty || (value != "" && value != "unspecified") {
			// these groups only exist on sessions and people, which carry
			// type attributes
			if err := writeField(group, f, true, outputEmpty, "", ""); err != nil {
				return err
			}
			wroteAtLeastOne = true
		}
	}
	if wroteAtLeastOne {
		root.Append(group)
	}
	return nil
}
