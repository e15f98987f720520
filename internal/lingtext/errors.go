package lingtext

import "errors"

var (
	// ErrMalformedText reports a serialized string that cannot be decomposed
	// into language axes. This is a programmer-contract violation, not user
	// input to retry; the offending raw string is included in the wrap.
	ErrMalformedText = errors.New("malformed multilingual text")

	// ErrUnexpectedMultilingualContent reports a scalar-text access on a
	// value that holds more than one language axis. Callers hitting this must
	// switch to the axis accessors.
	ErrUnexpectedMultilingualContent = errors.New("text should not be multilingual")

	// ErrEmptyLanguageTag reports an attempt to set text under an empty tag.
	ErrEmptyLanguageTag = errors.New("cannot set text for empty language tag")

	// ErrInvalidLanguageTag reports a tag containing a marker substring.
	ErrInvalidLanguageTag = errors.New("language tag contains a reserved marker")
)
