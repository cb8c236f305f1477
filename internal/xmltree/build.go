package xmltree

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// ParseError reports malformed input XML. The message is the underlying
// decoder's error text, surfaced verbatim.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string {
	return "parse xml: " + e.Message
}

// BuildOptions controls tree construction.
type BuildOptions struct {
	// PositionalPaths switches element path segments from bare tag names
	// to "tag[k]", where k is the ordinal among same-named preceding
	// siblings. Bare name-chain paths collide across same-tagged
	// siblings; positional paths are unique per node.
	PositionalPaths bool
}

// Document is a fully built tree plus the bookkeeping the builder
// produces alongside it.
type Document struct {
	Root *Node

	// ExpandedPaths lists the paths a tree view should start expanded:
	// the root, and any element whose sole child is a single text node.
	ExpandedPaths []string

	// NodeCount and ByteSize are size hooks for callers that want to
	// warn or defer on large inputs.
	NodeCount int
	ByteSize  int
}

// Build parses raw XML text into a Document. Parsing is atomic: either a
// complete tree is returned or a *ParseError, never a partial tree. Only
// the single root element and its subtree are modeled; a second top-level
// element or stray top-level text is an error.
func Build(xmlText string, opts BuildOptions) (*Document, error) {
	root, err := decode(xmlText)
	if err != nil {
		return nil, &ParseError{Message: err.Error()}
	}
	doc := NewDocument(root, opts)
	doc.ByteSize = len(xmlText)
	return doc, nil
}

// NewDocument assigns paths to an already constructed tree and computes
// the builder bookkeeping. Importers that synthesize trees from non-XML
// inputs share this step with Build.
func NewDocument(root *Node, opts BuildOptions) *Document {
	doc := &Document{Root: root}
	assignPaths(root, "", 0, opts.PositionalPaths)

	seen := map[string]bool{root.Path: true}
	doc.ExpandedPaths = []string{root.Path}
	root.Walk(func(n *Node, _ int) {
		doc.NodeCount++
		if n.Kind == KindElement && soleTextChild(n) && !seen[n.Path] {
			seen[n.Path] = true
			doc.ExpandedPaths = append(doc.ExpandedPaths, n.Path)
		}
	})
	return doc
}

func soleTextChild(n *Node) bool {
	return len(n.Children) == 1 && n.Children[0].Kind == KindText
}

func assignPaths(n *Node, parentPath string, ordinal int, positional bool) {
	seg := n.Name
	if positional {
		seg = fmt.Sprintf("%s[%d]", n.Name, ordinal)
	}
	if parentPath == "" {
		n.Path = seg
	} else {
		n.Path = parentPath + "/" + seg
	}

	// Ordinal per tag name among the element children seen so far.
	tagSeen := make(map[string]int)
	for i, c := range n.Children {
		switch c.Kind {
		case KindElement:
			assignPaths(c, n.Path, tagSeen[c.Name], positional)
			tagSeen[c.Name]++
		case KindText:
			c.Path = fmt.Sprintf("%s/text()[%d]", n.Path, i)
		case KindComment:
			c.Path = fmt.Sprintf("%s/comment()[%d]", n.Path, i)
		case KindCData:
			c.Path = fmt.Sprintf("%s/cdata()[%d]", n.Path, i)
		}
	}
}

// decode runs the token loop. It distinguishes CDATA sections from plain
// character data by peeking at the raw input, since encoding/xml reports
// both as xml.CharData.
func decode(xmlText string) (*Node, error) {
	dec := xml.NewDecoder(strings.NewReader(xmlText))

	var root *Node
	var stack []*Node

	for {
		off := dec.InputOffset()
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil && len(stack) == 0 {
				return nil, fmt.Errorf("unexpected second root element <%s>", t.Name.Local)
			}
			el := &Node{Kind: KindElement, Name: t.Name.Local}
			for _, a := range t.Attr {
				el.Attrs = append(el.Attrs, Attr{Name: attrName(a.Name), Value: a.Value})
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			} else {
				root = el
			}
			stack = append(stack, el)

		case xml.EndElement:
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) == 0 {
				if strings.TrimSpace(string(t)) != "" {
					return nil, fmt.Errorf("text content outside root element")
				}
				continue
			}
			parent := stack[len(stack)-1]
			if isCDATA(xmlText, off) {
				parent.Children = append(parent.Children, &Node{Kind: KindCData, Value: string(t)})
				continue
			}
			value := strings.TrimSpace(string(t))
			if value == "" {
				continue // whitespace-only text is elided
			}
			parent.Children = append(parent.Children, &Node{Kind: KindText, Value: value})

		case xml.Comment:
			if len(stack) == 0 {
				continue // comments outside the root are not modeled
			}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, &Node{Kind: KindComment, Value: string(t)})
		}
	}

	if root == nil {
		return nil, fmt.Errorf("no root element found")
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("unexpected EOF: <%s> not closed", stack[len(stack)-1].Name)
	}
	return root, nil
}

func attrName(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}

// isCDATA reports whether the character data token starting at off was
// written as a CDATA section. Plain text runs end at the next '<', so a
// CDATA section always begins its own token at its marker.
func isCDATA(xmlText string, off int64) bool {
	return strings.HasPrefix(xmlText[off:], "<![CDATA[")
}
