package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/xmlview/internal/xmltree"
	"golang.org/x/net/html"
)

// HTMLImporter handles HTML files. The markup is mapped node-for-node
// onto the tree: elements keep their attributes, text is trimmed,
// comments are preserved. Script and style subtrees are dropped.
type HTMLImporter struct{}

func (p *HTMLImporter) Import(r io.Reader, filename string) (*xmltree.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	htmlRoot := findElement(doc, "html")
	if htmlRoot == nil {
		return nil, fmt.Errorf("parse html: no <html> element in %s", filename)
	}

	root := convertHTML(htmlRoot)
	if root == nil {
		return nil, fmt.Errorf("parse html: empty document %s", filename)
	}
	return root, nil
}

func convertHTML(n *html.Node) *xmltree.Node {
	switch n.Type {
	case html.ElementNode:
		if n.Data == "script" || n.Data == "style" {
			return nil
		}
		out := &xmltree.Node{Kind: xmltree.KindElement, Name: n.Data}
		for _, a := range n.Attr {
			out.Attrs = append(out.Attrs, xmltree.Attr{Name: a.Key, Value: a.Val})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := convertHTML(c); child != nil {
				out.Children = append(out.Children, child)
			}
		}
		return out
	case html.TextNode:
		text := strings.TrimSpace(n.Data)
		if text == "" {
			return nil
		}
		return &xmltree.Node{Kind: xmltree.KindText, Value: text}
	case html.CommentNode:
		return &xmltree.Node{Kind: xmltree.KindComment, Value: n.Data}
	}
	return nil
}

func findElement(n *html.Node, name string) *html.Node {
	if n.Type == html.ElementNode && n.Data == name {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, name); found != nil {
			return found
		}
	}
	return nil
}
