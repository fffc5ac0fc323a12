package mockroute

import (
	"fmt"
	"net/url"
	"strings"
)

// segmentKind orders segments by specificity: lower is more specific.
type segmentKind int

const (
	segmentLiteral segmentKind = iota
	segmentWildcard
	segmentGlob
)

type segment struct {
	kind  segmentKind
	value string // literal text, or parameter name for a named wildcard
}

// Pattern is a parsed route pattern.
type Pattern struct {
	raw      string
	segments []segment
}

// ParsePattern parses a route pattern. See the package documentation for the
// accepted syntax.
func ParsePattern(raw string) (Pattern, error) {
	p := strings.TrimSpace(raw)
	if p == "" {
		return Pattern{}, fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
	}

	if strings.Contains(p, "://") {
		u, err := url.Parse(p)
		if err != nil {
			return Pattern{}, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, raw, err)
		}
		p = u.Path
	}
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}

	parts := splitPath(p)

	// "*/**/api/auth": the leading "*" is the scheme in playwright globs.
	if len(parts) >= 2 && parts[0] == "*" && parts[1] == "**" {
		parts = parts[1:]
	}

	segs := make([]segment, 0, len(parts))
	for _, part := range parts {
		var s segment
		switch {
		case part == "**":
			if n := len(segs); n > 0 && segs[n-1].kind == segmentGlob {
				continue
			}
			s = segment{kind: segmentGlob}
		case part == "*":
			s = segment{kind: segmentWildcard}
		case strings.HasPrefix(part, ":"):
			if len(part) == 1 {
				return Pattern{}, fmt.Errorf("%w: %q: unnamed parameter", ErrInvalidPattern, raw)
			}
			s = segment{kind: segmentWildcard, value: part[1:]}
		case strings.Contains(part, "*"):
			return Pattern{}, fmt.Errorf("%w: %q: partial glob in segment %q", ErrInvalidPattern, raw, part)
		default:
			s = segment{kind: segmentLiteral, value: part}
		}
		segs = append(segs, s)
	}

	return Pattern{raw: raw, segments: segs}, nil
}

// MustParsePattern is like ParsePattern but panics on error.
func MustParsePattern(raw string) Pattern {
	p, err := ParsePattern(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// Raw returns the pattern as it was written.
func (p Pattern) Raw() string { return p.raw }

// String returns the canonical form. Named parameters print as "*".
func (p Pattern) String() string {
	if len(p.segments) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, s := range p.segments {
		b.WriteByte('/')
		switch s.kind {
		case segmentLiteral:
			b.WriteString(s.value)
		case segmentWildcard:
			b.WriteByte('*')
		case segmentGlob:
			b.WriteString("**")
		}
	}
	return b.String()
}

// paramNames returns the names of the single-segment wildcards in order.
// Unnamed wildcards yield "".
func (p Pattern) paramNames() []string {
	var names []string
	for _, s := range p.segments {
		if s.kind == segmentWildcard {
			names = append(names, s.value)
		}
	}
	return names
}

// Match reports whether the pattern alone matches path.
func (p Pattern) Match(path string) bool {
	return matchSegments(p.segments, splitPath(path))
}

func matchSegments(segs []segment, parts []string) bool {
	if len(segs) == 0 {
		return len(parts) == 0
	}
	switch s := segs[0]; s.kind {
	case segmentGlob:
		for i := 0; i <= len(parts); i++ {
			if matchSegments(segs[1:], parts[i:]) {
				return true
			}
		}
		return false
	case segmentWildcard:
		return len(parts) > 0 && matchSegments(segs[1:], parts[1:])
	default:
		return len(parts) > 0 && parts[0] == s.value && matchSegments(segs[1:], parts[1:])
	}
}

// compareSpecificity returns a negative number when a is more specific than b.
func compareSpecificity(a, b Pattern) int {
	for i := 0; i < len(a.segments) && i < len(b.segments); i++ {
		if d := int(a.segments[i].kind) - int(b.segments[i].kind); d != 0 {
			return d
		}
	}
	// Longer patterns pin down more of the path.
	return len(b.segments) - len(a.segments)
}

func splitPath(p string) []string {
	raw := strings.Split(p, "/")
	parts := raw[:0]
	for _, s := range raw {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return parts
}
