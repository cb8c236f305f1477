package importer

import (
	"io"

	"github.com/dgallion1/xmlview/internal/xmltree"
)

// XMLImporter handles native XML files via the tree builder.
type XMLImporter struct{}

func (p *XMLImporter) Import(r io.Reader, filename string) (*xmltree.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	doc, err := xmltree.Build(string(data), xmltree.BuildOptions{})
	if err != nil {
		return nil, err
	}
	return doc.Root, nil
}
