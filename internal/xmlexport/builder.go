// Package xmlexport serializes entities into the legacy metadata XML dialect
// and into IMDI-flavored XML for archival deposit.
//
// The legacy dialect is read by a frozen desktop tool that cannot be
// updated, so several emission rules exist purely for its benefit: no
// self-closing tags, duplicate elements under older tag names, plain string
// dates, and a sentinel contributor date. None of that may be "cleaned up".
package xmlexport

import (
	"strings"
	"unicode"
)

// Node is one renderable piece of a document: an Element or a Comment.
type Node interface {
	render(b *strings.Builder, depth int)
}

// Attr is one attribute; order of addition is preserved on output.
type Attr struct {
	Name  string
	Value string
}

// Element is a mutable XML element. Text and Children are mutually
// exclusive in practice; when both are set, Text wins.
type Element struct {
	Tag      string
	Attrs    []Attr
	Text     string
	Children []Node
}

// NewElement creates an element with the given tag.
func NewElement(tag string) *Element { return &Element{Tag: tag} }

// Attr appends an attribute and returns the element for chaining.
func (e *Element) Attr(name, value string) *Element {
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
	return e
}

// Child appends a child element and returns the child.
func (e *Element) Child(tag string) *Element {
	child := NewElement(tag)
	e.Children = append(e.Children, child)
	return child
}

// ChildWithText appends a child holding only text.
func (e *Element) ChildWithText(tag, text string) *Element {
	child := e.Child(tag)
	child.Text = text
	return child
}

// Append attaches an already-built node.
func (e *Element) Append(n Node) { e.Children = append(e.Children, n) }

// Comment appends an XML comment before the next child.
func (e *Element) Comment(text string) {
	e.Children = append(e.Children, Comment(text))
}

// Comment is a rendered <!-- --> node.
type Comment string

func (c Comment) render(b *strings.Builder, depth int) {
	writeIndent(b, depth)
	b.WriteString("<!-- ")
	b.WriteString(string(c))
	b.WriteString(" -->\n")
}

func (e *Element) render(b *strings.Builder, depth int) {
	writeIndent(b, depth)
	b.WriteByte('<')
	b.WriteString(e.Tag)
	for _, a := range e.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteString(`="`)
		b.WriteString(escapeAttr(a.Value))
		b.WriteByte('"')
	}
	b.WriteByte('>')

	switch {
	case e.Text != "":
		b.WriteString(escapeText(e.Text))
	case len(e.Children) > 0:
		b.WriteByte('\n')
		for _, child := range e.Children {
			child.render(b, depth+1)
		}
		writeIndent(b, depth)
	}
	// an empty element still gets an explicit close tag: the legacy reader
	// chokes on self-closing tags
	b.WriteString("</")
	b.WriteString(e.Tag)
	b.WriteString(">\n")
}

// Document renders the element tree as a complete XML document.
func Document(root *Element) string {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n")
	root.render(&b, 0)
	return b.String()
}

// isValidName reports whether s is a legal XML 1.0 element name. Custom
// field keys come straight from spreadsheet column labels, so the emitter
// has to check before writing a tag.
func isValidName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !isNameStartRune(r) {
				return false
			}
			continue
		}
		if !isNameRune(r) {
			return false
		}
	}
	return true
}

func isNameStartRune(r rune) bool {
	return r == '_' || r == ':' || unicode.IsLetter(r)
}

func isNameRune(r rune) bool {
	return isNameStartRune(r) || r == '-' || r == '.' || unicode.IsDigit(r)
}

func writeIndent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"\n", "&#xA;",
	"\t", "&#x9;",
)

func escapeText(s string) string { return textEscaper.Replace(s) }

func escapeAttr(s string) string { return attrEscaper.Replace(s) }
