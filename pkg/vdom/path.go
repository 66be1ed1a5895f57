package vdom

import (
	"strconv"
	"strings"

	"github.com/vango-dev/vdiff/internal/errors"
)

// Reserved path separators.
const (
	SegmentSeparator = '/' // Between tree levels
	ChildIndexMarker = '#' // Introduces a numeric child position
	AttributeMarker  = '.' // Introduces an attribute name

	childrenSegment = "children"
)

// StepKind is the kind of a path step.
type StepKind uint8

const (
	StepChildren  StepKind = iota + 1 // The child list of the current node
	StepChild                         // One child of the current node
	StepAttribute                     // One attribute of the current node
)

// String returns the string representation of the StepKind.
func (k StepKind) String() string {
	switch k {
	case StepChildren:
		return "Children"
	case StepChild:
		return "Child"
	case StepAttribute:
		return "Attribute"
	default:
		return "Unknown"
	}
}

// Step is one level of a Path.
type Step struct {
	Kind  StepKind
	Index int    // For StepChild
	Name  string // For StepAttribute
}

// Path addresses a node, a child list or an attribute relative to the
// render root. The empty Path is the root itself.
//
// Paths are values: the builder methods never modify the receiver.
type Path []Step

// Children returns p extended into the child list.
func (p Path) Children() Path {
	return p.with(Step{Kind: StepChildren})
}

// Child returns p extended into child i.
func (p Path) Child(i int) Path {
	return p.with(Step{Kind: StepChild, Index: i})
}

// Attribute returns p extended into the named attribute.
func (p Path) Attribute(name string) Path {
	return p.with(Step{Kind: StepAttribute, Name: name})
}

func (p Path) with(s Step) Path {
	q := make(Path, len(p), len(p)+1)
	copy(q, p)
	return append(q, s)
}

// IsRoot reports whether p addresses the render root.
func (p Path) IsRoot() bool {
	return len(p) == 0
}

// Last returns the final step of p.
func (p Path) Last() (Step, bool) {
	if len(p) == 0 {
		return Step{}, false
	}
	return p[len(p)-1], true
}

// Parent returns p without its final step.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1:len(p)-1]
}

// Equal reports whether p and q address the same location.
func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// String encodes p with the reserved separators, e.g. "/children#0.height".
func (p Path) String() string {
	var b strings.Builder
	for _, s := range p {
		switch s.Kind {
		case StepChildren:
			b.WriteByte(SegmentSeparator)
			b.WriteString(childrenSegment)
		case StepChild:
			b.WriteByte(SegmentSeparator)
			b.WriteString(childrenSegment)
			b.WriteByte(ChildIndexMarker)
			b.WriteString(strconv.Itoa(s.Index))
		case StepAttribute:
			b.WriteByte(AttributeMarker)
			b.WriteString(escapeName(s.Name))
		}
	}
	return b.String()
}

// MarshalText implements encoding.TextMarshaler.
func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Path) UnmarshalText(text []byte) error {
	parsed, err := ParsePath(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePath decodes the string form produced by Path.String.
// An attribute step must be the last step.
func ParsePath(s string) (Path, error) {
	var p Path
	rest := s
	for rest != "" {
		if len(p) > 0 && p[len(p)-1].Kind == StepAttribute {
			return nil, pathError(s, "attribute step must be last")
		}

		switch rest[0] {
		case SegmentSeparator:
			rest = rest[1:]
			if !strings.HasPrefix(rest, childrenSegment) {
				return nil, pathError(s, "unknown segment")
			}
			rest = rest[len(childrenSegment):]
			if rest == "" || rest[0] != ChildIndexMarker {
				p = append(p, Step{Kind: StepChildren})
				continue
			}
			rest = rest[1:]
			end := 0
			for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
				end++
			}
			if end == 0 {
				return nil, pathError(s, "missing child index")
			}
			idx, err := strconv.Atoi(rest[:end])
			if err != nil {
				return nil, pathError(s, "child index out of range")
			}
			p = append(p, Step{Kind: StepChild, Index: idx})
			rest = rest[end:]

		case AttributeMarker:
			rest = rest[1:]
			end := strings.IndexAny(rest, "/.#")
			if end < 0 {
				end = len(rest)
			}
			name, err := unescapeName(rest[:end])
			if err != nil || name == "" {
				return nil, pathError(s, "invalid attribute name")
			}
			p = append(p, Step{Kind: StepAttribute, Name: name})
			rest = rest[end:]

		default:
			return nil, pathError(s, "unexpected character "+strconv.QuoteRune(rune(rest[0])))
		}
	}
	return p, nil
}

// MustParsePath is like ParsePath but panics on malformed input.
// It is intended for tests and literals.
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

func pathError(path, detail string) error {
	return errors.New("E004").WithDetailf("%q: %s", path, detail)
}

// escapeName percent-escapes the separators and the escape character itself.
func escapeName(name string) string {
	if !strings.ContainsAny(name, "/.#%") {
		return name
	}
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		switch c := name[i]; c {
		case '/', '.', '#', '%':
			b.WriteByte('%')
			b.WriteString(strings.ToUpper(strconv.FormatUint(uint64(c), 16)))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func unescapeName(s string) (string, error) {
	if !strings.Contains(s, "%") {
		return s, nil
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			b.WriteByte(s[i])
			continue
		}
		if i+2 >= len(s) {
			return "", errors.New("E004").WithDetail("truncated escape")
		}
		v, err := strconv.ParseUint(s[i+1:i+3], 16, 8)
		if err != nil {
			return "", errors.New("E004").WithDetail("bad escape").Wrap(err)
		}
		b.WriteByte(byte(v))
		i += 2
	}
	return b.String(), nil
}
