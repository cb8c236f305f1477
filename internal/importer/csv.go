package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/xmlview/internal/xmltree"
)

// CSVImporter handles CSV files. The first row is treated as headers;
// each data row becomes a <row> with header-named <field> leaves.
type CSVImporter struct{}

func (p *CSVImporter) Import(r io.Reader, filename string) (*xmltree.Node, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	root := &xmltree.Node{
		Kind:  xmltree.KindElement,
		Name:  "table",
		Attrs: []xmltree.Attr{{Name: "title", Value: strings.TrimSuffix(filename, ".csv")}},
	}
	if len(records) == 0 {
		return root, nil
	}

	headers := records[0]
	for i, rec := range records[1:] {
		row := &xmltree.Node{
			Kind:  xmltree.KindElement,
			Name:  "row",
			Attrs: []xmltree.Attr{{Name: "n", Value: fmt.Sprintf("%d", i+1)}},
		}
		for j, cell := range rec {
			name := fmt.Sprintf("col%d", j+1)
			if j < len(headers) && strings.TrimSpace(headers[j]) != "" {
				name = headers[j]
			}
			field := &xmltree.Node{
				Kind:  xmltree.KindElement,
				Name:  "field",
				Attrs: []xmltree.Attr{{Name: "name", Value: name}},
			}
			if cell = strings.TrimSpace(cell); cell != "" {
				field.Children = []*xmltree.Node{{Kind: xmltree.KindText, Value: cell}}
			}
			row.Children = append(row.Children, field)
		}
		root.Children = append(root.Children, row)
	}

	return root, nil
}
