// Package xmltree models a parsed XML document as an immutable node tree
// with stable, displayable path identifiers.
package xmltree

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind discriminates the node variants.
type Kind int

const (
	KindElement Kind = iota
	KindText
	KindComment
	KindCData
)

func (k Kind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindText:
		return "text"
	case KindComment:
		return "comment"
	case KindCData:
		return "cdata"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Attr is a single element attribute. Attribute order is document order.
type Attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Node is one node in the document tree. Name and Attrs are populated for
// elements, Value for text, comment and CDATA nodes.
type Node struct {
	Kind     Kind    `json:"kind"`
	Name     string  `json:"name,omitempty"`
	Value    string  `json:"value,omitempty"`
	Attrs    []Attr  `json:"attrs,omitempty"`
	Children []*Node `json:"children,omitempty"`

	// Path is the name-chain locator assigned at build time,
	// e.g. "bookstore/book/title". See Document for the collision
	// caveat on same-tagged siblings.
	Path string `json:"path,omitempty"`
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Text returns the concatenated text and CDATA content of the subtree.
func (n *Node) Text() string {
	var b strings.Builder
	n.appendText(&b)
	return b.String()
}

func (n *Node) appendText(b *strings.Builder) {
	switch n.Kind {
	case KindText, KindCData:
		b.WriteString(n.Value)
	case KindElement:
		for _, c := range n.Children {
			c.appendText(b)
		}
	}
}

// HasElementChildren reports whether any direct child is an element.
func (n *Node) HasElementChildren() bool {
	for _, c := range n.Children {
		if c.Kind == KindElement {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the subtree. The copy shares no mutable
// state with the original; Path values are preserved as provenance.
func (n *Node) Clone() *Node {
	out := &Node{
		Kind:  n.Kind,
		Name:  n.Name,
		Value: n.Value,
		Path:  n.Path,
	}
	if len(n.Attrs) > 0 {
		out.Attrs = make([]Attr, len(n.Attrs))
		copy(out.Attrs, n.Attrs)
	}
	if len(n.Children) > 0 {
		out.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

// Walk visits the subtree in pre-order, root first. The visit function
// receives each node and its depth relative to the receiver.
func (n *Node) Walk(visit func(node *Node, depth int)) {
	n.walk(visit, 0)
}

func (n *Node) walk(visit func(*Node, int), depth int) {
	visit(n, depth)
	for _, c := range n.Children {
		c.walk(visit, depth+1)
	}
}
