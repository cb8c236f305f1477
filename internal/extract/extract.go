// Package extract selects elements matching a criteria query and
// assembles a fresh result document, optionally rebuilding ancestor
// context around each match.
package extract

import (
	"errors"
	"strings"
	"time"

	"github.com/dgallion1/xmlview/internal/xmltree"
)

// Basis is the dimension a query matches against.
type Basis string

const (
	BasisElementName Basis = "elementName"
	BasisAttribute   Basis = "attribute"
	BasisContent     Basis = "content"
)

// Query describes one extraction. All containment checks are plain
// case-sensitive substring tests; this is deliberately simpler than the
// search engine's matching.
type Query struct {
	Term              string `json:"term"`
	Basis             Basis  `json:"basis"`
	SpecificElement   string `json:"specific_element,omitempty"`
	SpecificAttribute string `json:"specific_attribute,omitempty"`
	IncludeAncestors  bool   `json:"include_ancestors"`
	PreserveStructure bool   `json:"preserve_structure"`
}

// ErrMissingInput is returned for an empty term or absent document.
var ErrMissingInput = errors.New("extract: missing term or document")

// DefaultSourceName is used when the original filename is unknown.
const DefaultSourceName = "data.xml"

// match is one selected element together with its ancestor chain
// (root-to-parent) and its name-chain path.
type match struct {
	node      *xmltree.Node
	ancestors []*xmltree.Node
	namePath  string
}

// Extract evaluates the query and returns the root of a fresh
// "extraction-results" document carrying source, extracted (RFC 3339
// UTC) and search-term attributes. The result shares no mutable state
// with the source tree.
func Extract(doc *xmltree.Document, q Query, sourceFilename string) (*xmltree.Node, error) {
	matches, err := selectMatches(doc, q)
	if err != nil {
		return nil, err
	}
	if sourceFilename == "" {
		sourceFilename = DefaultSourceName
	}

	root := &xmltree.Node{
		Kind: xmltree.KindElement,
		Name: "extraction-results",
		Attrs: []xmltree.Attr{
			{Name: "source", Value: sourceFilename},
			{Name: "extracted", Value: time.Now().UTC().Format(time.RFC3339)},
			{Name: "search-term", Value: q.Term},
		},
	}

	if q.IncludeAncestors && q.PreserveStructure {
		for _, m := range dedupeByPath(matches) {
			root.Children = append(root.Children, wrapInAncestors(m))
		}
		return root, nil
	}

	for _, m := range matches {
		root.Children = append(root.Children, m.node.Clone())
	}
	return root, nil
}

// Preview is a non-materializing dry run of the selection phase.
type Preview struct {
	MatchCount      int             `json:"match_count"`
	Samples         []*xmltree.Node `json:"samples"`
	ElementCounts   map[string]int  `json:"element_counts"`
	AttributeCounts map[string]int  `json:"attribute_counts"`
}

// PreviewQuery runs the identical selection logic as Extract without
// assembling a result document. Samples holds the first 5 matches.
func PreviewQuery(doc *xmltree.Document, q Query) (*Preview, error) {
	matches, err := selectMatches(doc, q)
	if err != nil {
		return nil, err
	}

	p := &Preview{
		MatchCount:      len(matches),
		ElementCounts:   make(map[string]int),
		AttributeCounts: make(map[string]int),
	}
	for i, m := range matches {
		if i < 5 {
			p.Samples = append(p.Samples, m.node.Clone())
		}
		p.ElementCounts[m.node.Name]++
		for _, a := range m.node.Attrs {
			p.AttributeCounts[a.Name]++
		}
	}
	return p, nil
}

// selectMatches walks the tree collecting matching elements. Non-element
// nodes are never matched directly.
func selectMatches(doc *xmltree.Document, q Query) ([]match, error) {
	if doc == nil || doc.Root == nil || q.Term == "" {
		return nil, ErrMissingInput
	}

	var matches []match
	var walk func(n *xmltree.Node, ancestors []*xmltree.Node, namePath string)
	walk = func(n *xmltree.Node, ancestors []*xmltree.Node, namePath string) {
		if n.Kind != xmltree.KindElement {
			return
		}
		if namePath == "" {
			namePath = n.Name
		} else {
			namePath = namePath + "/" + n.Name
		}
		if elementMatches(n, q) {
			chain := make([]*xmltree.Node, len(ancestors))
			copy(chain, ancestors)
			matches = append(matches, match{node: n, ancestors: chain, namePath: namePath})
		}
		childAncestors := append(ancestors, n)
		for _, c := range n.Children {
			walk(c, childAncestors, namePath)
		}
	}
	walk(doc.Root, nil, "")
	return matches, nil
}

func elementMatches(n *xmltree.Node, q Query) bool {
	switch q.Basis {
	case BasisElementName:
		if q.SpecificElement != "" && n.Name != q.SpecificElement {
			return false
		}
		return strings.Contains(n.Name, q.Term) || strings.Contains(n.Text(), q.Term)

	case BasisAttribute:
		if q.SpecificAttribute != "" {
			v, ok := n.Attr(q.SpecificAttribute)
			return ok && strings.Contains(v, q.Term)
		}
		for _, a := range n.Attrs {
			if strings.Contains(a.Name, q.Term) || strings.Contains(a.Value, q.Term) {
				return true
			}
		}
		return false

	case BasisContent:
		// Leaf elements only; any child element disqualifies the node.
		if n.HasElementChildren() {
			return false
		}
		return strings.Contains(n.Text(), q.Term)
	}
	return false
}

// dedupeByPath keeps only the first match seen for each distinct
// name-chain path. Same-tagged siblings share a path, so later siblings
// are dropped; this keeps the reconstructed output from exploding into
// duplicate ancestor branches and is deliberate, observable behavior.
func dedupeByPath(matches []match) []match {
	seen := make(map[string]bool)
	out := matches[:0:0]
	for _, m := range matches {
		if seen[m.namePath] {
			continue
		}
		seen[m.namePath] = true
		out = append(out, m)
	}
	return out
}

// wrapInAncestors rebuilds the matched node's ancestor chain as fresh
// attributes-only element skeletons, outermost first, with the match's
// full subtree attached at the bottom.
func wrapInAncestors(m match) *xmltree.Node {
	current := m.node.Clone()
	for i := len(m.ancestors) - 1; i >= 0; i-- {
		anc := m.ancestors[i]
		skeleton := &xmltree.Node{
			Kind: xmltree.KindElement,
			Name: anc.Name,
			Path: anc.Path,
		}
		if len(anc.Attrs) > 0 {
			skeleton.Attrs = make([]xmltree.Attr, len(anc.Attrs))
			copy(skeleton.Attrs, anc.Attrs)
		}
		skeleton.Children = []*xmltree.Node{current}
		current = skeleton
	}
	return current
}
