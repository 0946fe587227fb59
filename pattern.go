package filegate

import (
	"fmt"
	"regexp"
	"strings"
)

// RegexPrefix marks a pattern string as a regular expression in ParsePattern.
const RegexPrefix = "re:"

// Pattern matches resolved file paths for allow and deny lists.
type Pattern interface {
	Match(path string) bool
	String() string
}

// Substring matches any path containing the string.
type Substring string

func (s Substring) Match(path string) bool {
	return strings.Contains(path, string(s))
}

func (s Substring) String() string {
	return string(s)
}

// Regex matches paths against a compiled regular expression.
type Regex struct {
	re *regexp.Regexp
}

// NewRegex compiles expr into a Regex pattern.
func NewRegex(expr string) (Regex, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Regex{}, fmt.Errorf("compile pattern %q: %w", expr, err)
	}
	return Regex{re: re}, nil
}

// MustRegex is like NewRegex but panics if expr does not compile.
func MustRegex(expr string) Regex {
	r, err := NewRegex(expr)
	if err != nil {
		panic(err)
	}
	return r
}

func (r Regex) Match(path string) bool {
	return r.re != nil && r.re.MatchString(path)
}

func (r Regex) String() string {
	if r.re == nil {
		return RegexPrefix
	}
	return RegexPrefix + r.re.String()
}

// ParsePattern turns a configuration string into a Pattern. Strings starting
// with "re:" are compiled as regular expressions, anything else is a
// substring pattern.
func ParsePattern(s string) (Pattern, error) {
	if expr, ok := strings.CutPrefix(s, RegexPrefix); ok {
		return NewRegex(expr)
	}

	if s == "" {
		return nil, fmt.Errorf("parse pattern: empty substring pattern")
	}
	return Substring(s), nil
}

// ParsePatterns parses every entry with ParsePattern.
func ParsePatterns(list []string) ([]Pattern, error) {
	patterns := make([]Pattern, 0, len(list))
	for _, s := range list {
		p, err := ParsePattern(s)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

func matchAny(patterns []Pattern, path string) bool {
	for _, p := range patterns {
		if p.Match(path) {
			return true
		}
	}
	return false
}
