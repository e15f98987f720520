package lingtext

import (
	"fmt"
	"strings"
)

// TextHolder owns one serialized text value that may be monolingual (plain
// English text) or multilingual (the inline [[tag]]text format). The stored
// representation is always re-derivable from the serialized form, so a holder
// can be persisted and reloaded losslessly.
type TextHolder struct {
	raw string
}

// NewTextHolder returns a holder over an already-serialized value.
func NewTextHolder(serialized string) *TextHolder {
	return &TextHolder{raw: serialized}
}

// Serialized returns the stored value exactly as it will be persisted.
func (h *TextHolder) Serialized() string { return h.raw }

// SetSerialized replaces the stored value with an already-serialized string.
func (h *TextHolder) SetSerialized(s string) { h.raw = s }

// IsMultilingual reports whether the stored value carries language markers.
func (h *TextHolder) IsMultilingual() bool { return strings.Contains(h.raw, openMarker) }

// MonoLingualText returns the value as plain scalar text. It fails with
// ErrUnexpectedMultilingualContent if the value holds language markers;
// callers must use the axis accessors in that case.
func (h *TextHolder) MonoLingualText() (string, error) {
	if h.IsMultilingual() {
		return "", fmt.Errorf("%w: %q", ErrUnexpectedMultilingualContent, h.raw)
	}
	return h.raw, nil
}

// SetMonoLingualText replaces the value with plain scalar text. It refuses to
// overwrite a value that is already multilingual.
func (h *TextHolder) SetMonoLingualText(value string) error {
	if h.IsMultilingual() {
		return fmt.Errorf("%w: %q", ErrUnexpectedMultilingualContent, h.raw)
	}
	h.raw = value
	return nil
}

// GetTextAxis returns the text stored under tag, or "" if the tag is absent.
func (h *TextHolder) GetTextAxis(tag string) (string, error) {
	axes, err := Decode(h.raw)
	if err != nil {
		return "", err
	}
	for _, a := range axes {
		if a.Tag == tag {
			return a.Text, nil
		}
	}
	return "", nil
}

// SetTextAxis sets the text for one language tag, preserving the order of
// first assignment for the other axes.
func (h *TextHolder) SetTextAxis(tag, text string) error {
	if tag == "" {
		return ErrEmptyLanguageTag
	}
	if strings.Contains(tag, openMarker) || strings.Contains(tag, closeMarker) {
		return fmt.Errorf("%w: %q", ErrInvalidLanguageTag, tag)
	}
	axes, err := Decode(h.raw)
	if err != nil {
		return err
	}
	found := false
	for i := range axes {
		if axes[i].Tag == tag {
			axes[i].Text = text
			found = true
			break
		}
	}
	if !found {
		axes = append(axes, Axis{Tag: tag, Text: text})
	}
	h.raw = Encode(axes)
	return nil
}

// GetFirstNonEmptyText returns the text of the first tag, in the caller's
// priority order, that has non-empty text. Used for language-priority
// fallbacks, e.g. prefer the documentation language and fall back to English.
func (h *TextHolder) GetFirstNonEmptyText(tags ...string) (string, error) {
	axes, err := Decode(h.raw)
	if err != nil {
		return "", err
	}
	byTag := make(map[string]string, len(axes))
	for _, a := range axes {
		if _, ok := byTag[a.Tag]; !ok {
			byTag[a.Tag] = a.Text
		}
	}
	for _, tag := range tags {
		if text, ok := byTag[tag]; ok && strings.TrimSpace(text) != "" {
			return text, nil
		}
	}
	return "", nil
}

// Axes returns the decoded language axes in stored order.
func (h *TextHolder) Axes() ([]Axis, error) {
	return Decode(h.raw)
}
