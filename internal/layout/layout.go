// Package layout holds the formatting parameter tables consulted by the
// emission engine. A Policy is a pure lookup: it decides separators and
// spacing, never import resolution or escaping.
package layout

import "fmt"

// Style selects one of the two recognized output layouts.
type Style uint8

const (
	// StyleCompact keeps composite values on one line: members are
	// separated by ", " and annotation values hug their parentheses.
	StyleCompact Style = iota

	// StyleExpanded puts one member per line, pads a lone annotation
	// value after its opening parenthesis, and terminates the file with
	// an end-of-file marker comment.
	StyleExpanded
)

func (s Style) String() string {
	switch s {
	case StyleCompact:
		return "compact"
	case StyleExpanded:
		return "expanded"
	default:
		return fmt.Sprintf("style(%d)", uint8(s))
	}
}

// ParseStyle maps a user-facing style name to a Style.
func ParseStyle(name string) (Style, error) {
	switch name {
	case "", "compact":
		return StyleCompact, nil
	case "expanded":
		return StyleExpanded, nil
	default:
		return StyleCompact, fmt.Errorf("layout: unknown style %q", name)
	}
}

// Policy bundles the formatting parameters for one style.
type Policy struct {
	// MemberSeparator goes between annotation members and other
	// comma-delimited value lists.
	MemberSeparator string

	// SingleValueGap is emitted after the opening parenthesis and before
	// the closing one when an annotation carries exactly one value.
	SingleValueGap string

	// BlockOpen opens a multi-line body; the closing brace is emitted at
	// the current indent by the writer.
	BlockOpen string

	// EOFMarker, when non-empty, is appended after the last line of an
	// emitted file.
	EOFMarker string
}

var policies = [...]Policy{
	StyleCompact: {
		MemberSeparator:  ", ",
		SingleValueGap:   "",
		BlockOpen:        " {\n",
		EOFMarker:        "",
	},
	StyleExpanded: {
		MemberSeparator:  ",\n",
		SingleValueGap:   " ",
		BlockOpen:        " {\n",
		EOFMarker:        "// EOF\n",
	},
}

// For returns the parameter table for the given style. Unknown styles fall
// back to StyleCompact.
func For(s Style) Policy {
	if int(s) >= len(policies) {
		return policies[StyleCompact]
	}
	return policies[s]
}
