// Package search evaluates a term plus options against a document tree
// and reports matching node paths and the ancestor set to auto-expand.
package search

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/blevesearch/segment"
	"github.com/dgallion1/xmlview/internal/xmltree"
)

// Scope selects which parts of a node are tested against the term.
type Scope string

const (
	ScopeAll        Scope = "all"
	ScopeElements   Scope = "elements"
	ScopeAttributes Scope = "attributes"
	ScopeValues     Scope = "values"
)

// Options configures a search.
type Options struct {
	CaseSensitive bool  `json:"case_sensitive"`
	WholeWord     bool  `json:"whole_word"`
	SearchIn      Scope `json:"search_in"`
	UseRegex      bool  `json:"use_regex"`
}

// Result holds matched node paths and the strictly-shorter path prefixes
// of every match, so a caller can reveal the containing hierarchy down to
// (but not including) each matched node. Both slices are deduplicated and
// in first-match order.
type Result struct {
	MatchedPaths   []string `json:"matched_paths"`
	ExpansionPaths []string `json:"expansion_paths"`
}

// ErrMissingInput is returned for an empty term or absent document.
var ErrMissingInput = errors.New("search: missing term or document")

// InvalidPatternError reports a malformed regular expression term.
type InvalidPatternError struct {
	Pattern string
	Err     error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid search pattern %q: %v", e.Pattern, e.Err)
}

func (e *InvalidPatternError) Unwrap() error { return e.Err }

// InvalidScopeError reports an unrecognized SearchIn value.
type InvalidScopeError struct {
	Scope Scope
}

func (e *InvalidScopeError) Error() string {
	return fmt.Sprintf("invalid search scope %q: must be all, elements, attributes or values", string(e.Scope))
}

// Search walks the whole tree in pre-order and tests every node
// independently. It never mutates the document; concurrent searches over
// the same tree do not interfere.
func Search(doc *xmltree.Document, term string, opts Options) (*Result, error) {
	if doc == nil || doc.Root == nil || strings.TrimSpace(term) == "" {
		return nil, ErrMissingInput
	}
	switch opts.SearchIn {
	case "":
		opts.SearchIn = ScopeAll
	case ScopeAll, ScopeElements, ScopeAttributes, ScopeValues:
	default:
		return nil, &InvalidScopeError{Scope: opts.SearchIn}
	}

	match, err := newMatcher(term, opts)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	matchedSeen := make(map[string]bool)
	expandSeen := make(map[string]bool)

	doc.Root.Walk(func(n *xmltree.Node, _ int) {
		if !nodeMatches(n, opts.SearchIn, match) {
			return
		}
		if !matchedSeen[n.Path] {
			matchedSeen[n.Path] = true
			res.MatchedPaths = append(res.MatchedPaths, n.Path)
		}
		for _, prefix := range pathPrefixes(n.Path) {
			if !expandSeen[prefix] {
				expandSeen[prefix] = true
				res.ExpansionPaths = append(res.ExpansionPaths, prefix)
			}
		}
	})

	return res, nil
}

func nodeMatches(n *xmltree.Node, scope Scope, match func(string) bool) bool {
	switch n.Kind {
	case xmltree.KindElement:
		if (scope == ScopeAll || scope == ScopeElements) && match(n.Name) {
			return true
		}
		if scope == ScopeAll || scope == ScopeAttributes {
			for _, a := range n.Attrs {
				if match(a.Name) || match(a.Value) {
					return true
				}
			}
		}
		return false
	default:
		return (scope == ScopeAll || scope == ScopeValues) && match(n.Value)
	}
}

// pathPrefixes returns every strictly-shorter prefix of a path, outermost
// first: "a/b/c" yields "a", "a/b".
func pathPrefixes(path string) []string {
	segs := strings.Split(path, "/")
	prefixes := make([]string, 0, len(segs)-1)
	for i := 1; i < len(segs); i++ {
		prefixes = append(prefixes, strings.Join(segs[:i], "/"))
	}
	return prefixes
}

// newMatcher compiles the term and options into a predicate over node
// strings.
func newMatcher(term string, opts Options) (func(string) bool, error) {
	if opts.UseRegex {
		pattern := term
		if !opts.CaseSensitive {
			pattern = "(?i)" + pattern
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, &InvalidPatternError{Pattern: term, Err: err}
		}
		if opts.WholeWord {
			return func(s string) bool { return anyWord(s, func(w string) bool { return matchesWholeToken(re, w) }) }, nil
		}
		return re.MatchString, nil
	}

	if opts.WholeWord {
		if opts.CaseSensitive {
			return func(s string) bool { return anyWord(s, func(w string) bool { return w == term }) }, nil
		}
		return func(s string) bool { return anyWord(s, func(w string) bool { return strings.EqualFold(w, term) }) }, nil
	}

	if opts.CaseSensitive {
		return func(s string) bool { return strings.Contains(s, term) }, nil
	}
	folded := strings.ToLower(term)
	return func(s string) bool { return strings.Contains(strings.ToLower(s), folded) }, nil
}

func matchesWholeToken(re *regexp.Regexp, token string) bool {
	loc := re.FindStringIndex(token)
	return loc != nil && loc[0] == 0 && loc[1] == len(token)
}

// anyWord segments s into word tokens and reports whether any token
// satisfies the predicate, so "cat" never matches inside "category".
func anyWord(s string, pred func(string) bool) bool {
	seg := segment.NewWordSegmenter(strings.NewReader(s))
	for seg.Segment() {
		if seg.Type() == segment.None {
			continue // separators and punctuation
		}
		if pred(seg.Text()) {
			return true
		}
	}
	return false
}
