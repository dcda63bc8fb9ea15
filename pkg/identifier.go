package versionbump

import (
	"fmt"
	"strconv"
	"strings"
)

// Identifier is a single dot-separated segment of a pre-release or build
// label. It is either numeric or alphanumeric.
type Identifier struct {
	numeric bool
	num     uint64
	str     string
}

// NumericIdentifier returns a numeric identifier.
func NumericIdentifier(n uint64) Identifier {
	return Identifier{numeric: true, num: n}
}

// IsNumeric reports whether the identifier is numeric.
func (id Identifier) IsNumeric() bool {
	return id.numeric
}

// String returns the identifier as it appears in a label.
func (id Identifier) String() string {
	if id.numeric {
		return strconv.FormatUint(id.num, 10)
	}
	return id.str
}

// ParseIdentifier parses a single label segment.
func ParseIdentifier(s string) (Identifier, error) {
	if s == "" {
		return Identifier{}, fmt.Errorf("empty identifier")
	}
	digits := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '-':
			digits = false
		default:
			return Identifier{}, fmt.Errorf("identifier %q contains invalid character %q", s, c)
		}
	}
	if !digits {
		return Identifier{str: s}, nil
	}
	if len(s) > 1 && s[0] == '0' {
		return Identifier{}, fmt.Errorf("numeric identifier %q has a leading zero", s)
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return Identifier{}, fmt.Errorf("numeric identifier %q is out of range", s)
	}
	return NumericIdentifier(n), nil
}

// Label is the ordered identifier sequence of a pre-release or build
// component. A nil or empty Label means the component is absent.
type Label []Identifier

// ParseLabel decodes a dot-separated label. The empty string decodes to an
// empty Label. Any malformed segment yields an INVALID_LABEL error.
func ParseLabel(s string) (Label, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ".")
	label := make(Label, 0, len(parts))
	for _, part := range parts {
		id, err := ParseIdentifier(part)
		if err != nil {
			return nil, wrapErrorWithContext(ErrCodeInvalidLabel,
				fmt.Sprintf("invalid label %q", s), err, map[string]any{"label": s})
		}
		label = append(label, id)
	}
	return label, nil
}

// parseBuildMetadata decodes the build metadata of an already valid
// version. Digit-only segments are kept verbatim, so "001" survives; numeric
// rules only apply to labels given through ParseLabel.
func parseBuildMetadata(s string) (Label, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ".")
	label := make(Label, 0, len(parts))
	for _, part := range parts {
		id, err := ParseIdentifier(part)
		if err != nil {
			if !isDigits(part) {
				return nil, wrapErrorWithContext(ErrCodeInvalidLabel,
					fmt.Sprintf("invalid build metadata %q", s), err, map[string]any{"label": s})
			}
			id = Identifier{str: part}
		}
		label = append(label, id)
	}
	return label, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// MustParseLabel is like ParseLabel but panics on error. Only use it with
// hardcoded labels.
func MustParseLabel(s string) Label {
	l, err := ParseLabel(s)
	if err != nil {
		panic(fmt.Sprintf("MustParseLabel: %v", err))
	}
	return l
}

// String joins the identifiers with ".".
func (l Label) String() string {
	parts := make([]string, len(l))
	for i, id := range l {
		parts[i] = id.String()
	}
	return strings.Join(parts, ".")
}

// Equal reports whether both labels render the same identifiers.
func (l Label) Equal(other Label) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if l[i].String() != other[i].String() {
			return false
		}
	}
	return true
}
