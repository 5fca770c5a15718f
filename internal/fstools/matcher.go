package fstools

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/text/unicode/norm"
)

// Matcher decides whether a non-directory entry is handed to a visitor.
// Matching is evaluated against the full path, not just the base name.
type Matcher interface {
	Match(path string) bool
}

// MatchFunc adapts an ordinary predicate to a Matcher.
type MatchFunc func(path string) bool

func (f MatchFunc) Match(path string) bool { return f(path) }

type matchAll struct{}

func (matchAll) Match(string) bool { return true }

// MatchAll returns a Matcher that accepts every path.
func MatchAll() Matcher { return matchAll{} }

// resolveMatcher turns a nil Matcher into MatchAll.
func resolveMatcher(m Matcher) Matcher {
	if m == nil {
		return matchAll{}
	}
	if f, ok := m.(MatchFunc); ok && f == nil {
		return matchAll{}
	}
	return m
}

// regexpMatcher matches NFC-normalized paths against a compiled expression.
type regexpMatcher struct {
	re *regexp.Regexp
}

func (m regexpMatcher) Match(path string) bool {
	return m.re.MatchString(norm.NFC.String(path))
}

func (m regexpMatcher) String() string { return m.re.String() }

// Regexp compiles a regular expression into a Matcher. Both the pattern and the
// matched paths are normalized to NFC so composed and decomposed names agree.
func Regexp(pattern string) (Matcher, error) {
	re, err := regexp.Compile(norm.NFC.String(pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid regex %q: %w", pattern, err)
	}
	return regexpMatcher{re: re}, nil
}

// MustRegexp is like Regexp but panics if the pattern does not compile.
func MustRegexp(pattern string) Matcher {
	m, err := Regexp(pattern)
	if err != nil {
		panic(err)
	}
	return m
}

// globMatcher matches slash-separated paths with doublestar semantics.
type globMatcher struct {
	pattern string
}

func (m globMatcher) Match(path string) bool {
	matched, err := doublestar.Match(m.pattern, filepath.ToSlash(path))
	return err == nil && matched
}

func (m globMatcher) String() string { return m.pattern }

// Glob compiles a glob pattern into a Matcher. "**" matches any number of path
// elements, so "**/*.go" selects Go files at any depth.
func Glob(pattern string) (Matcher, error) {
	pattern = filepath.ToSlash(pattern)
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob %q: %w", pattern, doublestar.ErrBadPattern)
	}
	return globMatcher{pattern: pattern}, nil
}

// Suffix returns a Matcher accepting paths that end with suffix.
func Suffix(suffix string) Matcher {
	return MatchFunc(func(path string) bool {
		return strings.HasSuffix(path, suffix)
	})
}
