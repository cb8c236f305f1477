package importer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dgallion1/xmlview/internal/xmltree"
	"github.com/fumiama/go-docx"
)

// DOCXImporter handles .docx files. Heading-styled paragraphs become
// nested <section title="..."> elements; body paragraphs become <p>.
type DOCXImporter struct{}

func (p *DOCXImporter) Import(r io.Reader, filename string) (*xmltree.Node, error) {
	// go-docx needs a ReadSeeker+size, so write to temp file.
	tmp, err := os.CreateTemp("", "xmlview-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, int64(size))
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	root := &xmltree.Node{
		Kind:  xmltree.KindElement,
		Name:  "document",
		Attrs: []xmltree.Attr{{Name: "title", Value: strings.TrimSuffix(filename, ".docx")}},
	}

	type stackEntry struct {
		node  *xmltree.Node
		level int
	}
	stack := []stackEntry{{node: root, level: 0}}

	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}

		level := docxHeadingLevel(para)
		text := docxParagraphText(para)
		if text == "" {
			continue
		}

		if level > 0 {
			section := &xmltree.Node{
				Kind:  xmltree.KindElement,
				Name:  "section",
				Attrs: []xmltree.Attr{{Name: "title", Value: text}},
			}
			for len(stack) > 1 && stack[len(stack)-1].level >= level {
				stack = stack[:len(stack)-1]
			}
			parent := stack[len(stack)-1].node
			parent.Children = append(parent.Children, section)
			stack = append(stack, stackEntry{node: section, level: level})
			continue
		}

		top := stack[len(stack)-1].node
		top.Children = append(top.Children, &xmltree.Node{
			Kind:     xmltree.KindElement,
			Name:     "p",
			Children: []*xmltree.Node{{Kind: xmltree.KindText, Value: text}},
		})
	}

	return root, nil
}

func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := para.Properties.Style.Val
	for level := 1; level <= 6; level++ {
		if strings.EqualFold(style, fmt.Sprintf("Heading%d", level)) ||
			strings.EqualFold(style, fmt.Sprintf("heading %d", level)) {
			return level
		}
	}
	return 0
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
