// Package importer converts raw document bytes into an xmltree so that
// any supported format can be explored, searched and extracted with the
// same engines as native XML.
package importer

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/xmlview/internal/xmltree"
)

// Importer converts one input format into a raw node tree.
type Importer interface {
	Import(r io.Reader, filename string) (*xmltree.Node, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".xml":  true,
	".txt":  true,
	".md":   true,
	".csv":  true,
	".html": true,
	".htm":  true,
	".pdf":  true,
	".docx": true,
}

// ForFile returns the appropriate importer for a filename.
func ForFile(filename string) (Importer, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xml":
		return &XMLImporter{}, nil
	case ".txt":
		return &TextImporter{}, nil
	case ".md", ".markdown":
		return &MarkdownImporter{}, nil
	case ".csv":
		return &CSVImporter{}, nil
	case ".html", ".htm":
		return &HTMLImporter{}, nil
	case ".pdf":
		return &PDFImporter{FallbackPdftotext: true}, nil
	case ".docx":
		return &DOCXImporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// Load reads the full input, imports it by extension and wraps the tree
// in a Document with assigned paths and size bookkeeping.
func Load(r io.Reader, filename string, opts xmltree.BuildOptions) (*xmltree.Document, error) {
	imp, err := ForFile(filename)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}

	root, err := imp.Import(bytes.NewReader(data), filename)
	if err != nil {
		return nil, err
	}

	doc := xmltree.NewDocument(root, opts)
	doc.ByteSize = len(data)
	return doc, nil
}
