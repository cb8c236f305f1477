package importer

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/xmlview/internal/xmltree"
)

// TextImporter handles plain text files. Blank-line-separated paragraphs
// become <p> children of a <document> root.
type TextImporter struct{}

func (p *TextImporter) Import(r io.Reader, filename string) (*xmltree.Node, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paragraphs []string
	var current strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	root := &xmltree.Node{
		Kind:  xmltree.KindElement,
		Name:  "document",
		Attrs: []xmltree.Attr{{Name: "title", Value: strings.TrimSuffix(filename, ".txt")}},
	}
	for _, para := range paragraphs {
		root.Children = append(root.Children, &xmltree.Node{
			Kind:     xmltree.KindElement,
			Name:     "p",
			Children: []*xmltree.Node{{Kind: xmltree.KindText, Value: para}},
		})
	}

	return root, nil
}
