package dom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// ErrInvalidSelector is returned by Compile for input that is not a valid CSS
// selector group.
var ErrInvalidSelector = errors.New("invalid selector")

// Selector is a compiled CSS selector group, evaluated like
// querySelectorAll: matches are descendants of the query root, in document
// order.
type Selector struct {
	raw   string
	group cascadia.SelectorGroup
}

// Compile parses sel into a Selector.
func Compile(sel string) (*Selector, error) {
	raw := strings.TrimSpace(sel)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty selector", ErrInvalidSelector)
	}
	group, err := cascadia.ParseGroup(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSelector, sel, err)
	}
	return &Selector{raw: raw, group: group}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(sel string) *Selector {
	s, err := Compile(sel)
	if err != nil {
		panic(err)
	}
	return s
}

// String returns the selector source.
func (s *Selector) String() string { return s.raw }

// MatchAll returns every descendant of root matching the selector, in
// document order. Root itself is never included.
func (s *Selector) MatchAll(root *html.Node) []*html.Node {
	return cascadia.QueryAll(root, s.group)
}

// MatchFirst returns the first descendant of root matching the selector, or nil.
func (s *Selector) MatchFirst(root *html.Node) *html.Node {
	return cascadia.Query(root, s.group)
}
