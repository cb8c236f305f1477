package importer

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/xmlview/internal/xmltree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownImporter handles Markdown files using goldmark. Headings become
// nested <section title="..."> elements; other blocks become <p> leaves.
type MarkdownImporter struct{}

func (p *MarkdownImporter) Import(r io.Reader, filename string) (*xmltree.Node, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	title := strings.TrimSuffix(strings.TrimSuffix(filename, ".md"), ".markdown")
	root := &xmltree.Node{
		Kind:  xmltree.KindElement,
		Name:  "document",
		Attrs: []xmltree.Attr{{Name: "title", Value: title}},
	}

	// Stack of open sections by heading level; root is level 0.
	type stackEntry struct {
		node  *xmltree.Node
		level int
	}
	stack := []stackEntry{{node: root, level: 0}}

	appendParagraph := func(t string) {
		if t == "" {
			return
		}
		top := stack[len(stack)-1].node
		top.Children = append(top.Children, &xmltree.Node{
			Kind:     xmltree.KindElement,
			Name:     "p",
			Children: []*xmltree.Node{{Kind: xmltree.KindText, Value: t}},
		})
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			level := node.Level
			section := &xmltree.Node{
				Kind:  xmltree.KindElement,
				Name:  "section",
				Attrs: []xmltree.Attr{{Name: "title", Value: string(node.Text(src))}},
			}
			for len(stack) > 1 && stack[len(stack)-1].level >= level {
				stack = stack[:len(stack)-1]
			}
			parent := stack[len(stack)-1].node
			parent.Children = append(parent.Children, section)
			stack = append(stack, stackEntry{node: section, level: level})
		default:
			appendParagraph(blockText(n, src))
		}
	}

	return root, nil
}

// blockText gets the text content of a goldmark AST node.
func blockText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
		return strings.TrimSpace(buf.String())
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(blockText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
