package field

import "strings"

// DefaultContributorRole is substituted when a contribution has no role. The
// legacy desktop reader only accepts roles from its vocabulary, so an
// unspecified role cannot be written as-is; the emitter records the real
// state in a side channel instead.
const DefaultContributorRole = "participant"

// Contribution is a (person, role, date, comments) record attached to a
// session-like entity. It is modeled outside the generic Field system and
// has its own emission rules.
type Contribution struct {
	PersonReference string
	Role            string
	Date            string // ISO YYYY-MM-DD, may be empty
	Comments        string
}

// IsBlank reports whether the contribution names nobody and should be
// skipped entirely on emission.
func (c Contribution) IsBlank() bool {
	return strings.TrimSpace(c.PersonReference) == ""
}

// RoleOrDefault returns the role, substituting DefaultContributorRole when
// the role is unset.
func (c Contribution) RoleOrDefault() string {
	if c.Role == "" {
		return DefaultContributorRole
	}
	return c.Role
}

// PersonLanguage is one language a person speaks, with the flags the person
// metadata records about it.
type PersonLanguage struct {
	Code    string
	Primary bool
	Mother  bool
	Father  bool
}
