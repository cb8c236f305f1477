package extract

import (
	"errors"
	"testing"

	"github.com/dgallion1/xmlview/internal/xmltree"
)

const storeXML = `<bookstore>
  <book category="fiction"><title>A</title></book>
  <book category="technical"><title>B</title></book>
</bookstore>`

func build(t *testing.T, xml string) *xmltree.Document {
	t.Helper()
	doc, err := xmltree.Build(xml, xmltree.BuildOptions{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return doc
}

func TestExtractByAttribute(t *testing.T) {
	doc := build(t, storeXML)

	root, err := Extract(doc, Query{Term: "fiction", Basis: BasisAttribute}, "books.xml")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if root.Name != "extraction-results" {
		t.Fatalf("expected extraction-results root, got %q", root.Name)
	}
	if v, _ := root.Attr("source"); v != "books.xml" {
		t.Fatalf("expected source=books.xml, got %q", v)
	}
	if v, _ := root.Attr("search-term"); v != "fiction" {
		t.Fatalf("expected search-term=fiction, got %q", v)
	}
	if v, ok := root.Attr("extracted"); !ok || v == "" {
		t.Fatal("expected extracted timestamp attribute")
	}

	if len(root.Children) != 1 {
		t.Fatalf("expected exactly 1 matched book, got %d", len(root.Children))
	}
	book := root.Children[0]
	if book.Name != "book" {
		t.Fatalf("expected book, got %q", book.Name)
	}
	if v, _ := book.Attr("category"); v != "fiction" {
		t.Fatalf("expected the fiction book, got category=%q", v)
	}
	if book.Text() != "A" {
		t.Fatalf("expected full subtree (title A), got text %q", book.Text())
	}
}

func TestPreviewMatchesExtractSelection(t *testing.T) {
	doc := build(t, storeXML)

	preview, err := PreviewQuery(doc, Query{Term: "fiction", Basis: BasisAttribute})
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if preview.MatchCount != 1 {
		t.Fatalf("expected match count 1, got %d", preview.MatchCount)
	}
	if len(preview.Samples) != 1 || preview.Samples[0].Name != "book" {
		t.Fatalf("expected one book sample, got %+v", preview.Samples)
	}
	if preview.ElementCounts["book"] != 1 {
		t.Fatalf("expected element count book=1, got %v", preview.ElementCounts)
	}
	if preview.AttributeCounts["category"] != 1 {
		t.Fatalf("expected attribute count category=1, got %v", preview.AttributeCounts)
	}
}

func TestPreviewSampleCap(t *testing.T) {
	doc := build(t, `<r><x v="t"/><x v="t"/><x v="t"/><x v="t"/><x v="t"/><x v="t"/><x v="t"/></r>`)

	preview, err := PreviewQuery(doc, Query{Term: "t", Basis: BasisAttribute})
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if preview.MatchCount != 7 {
		t.Fatalf("expected 7 matches, got %d", preview.MatchCount)
	}
	if len(preview.Samples) != 5 {
		t.Fatalf("expected samples capped at 5, got %d", len(preview.Samples))
	}
}

func TestExtractByElementName(t *testing.T) {
	doc := build(t, storeXML)

	root, err := Extract(doc, Query{Term: "title", Basis: BasisElementName}, "")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(root.Children) != 2 {
		t.Fatalf("expected both titles, got %d", len(root.Children))
	}
	if v, _ := root.Attr("source"); v != DefaultSourceName {
		t.Fatalf("expected default source name, got %q", v)
	}
}

func TestExtractByElementNameTextContent(t *testing.T) {
	doc := build(t, storeXML)

	// Term matches text content rather than tag names: only book A.
	root, err := Extract(doc, Query{Term: "A", Basis: BasisElementName, SpecificElement: "book"}, "")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(root.Children) != 1 {
		t.Fatalf("expected 1 book, got %d", len(root.Children))
	}
}

func TestExtractByContentLeafOnly(t *testing.T) {
	doc := build(t, storeXML)

	root, err := Extract(doc, Query{Term: "A", Basis: BasisContent}, "")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	// <book> contains "A" but has element children; only the leaf
	// <title> qualifies.
	if len(root.Children) != 1 {
		t.Fatalf("expected 1 leaf match, got %d", len(root.Children))
	}
	if root.Children[0].Name != "title" {
		t.Fatalf("expected title leaf, got %q", root.Children[0].Name)
	}
}

func TestExtractCaseSensitiveContainment(t *testing.T) {
	doc := build(t, storeXML)

	root, err := Extract(doc, Query{Term: "FICTION", Basis: BasisAttribute}, "")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(root.Children) != 0 {
		t.Fatalf("extraction matching is case-sensitive, got %d matches", len(root.Children))
	}
}

func TestExtractSpecificAttribute(t *testing.T) {
	doc := build(t, `<r><a id="x1" class="x2"/><b class="x1"/></r>`)

	root, err := Extract(doc, Query{Term: "x1", Basis: BasisAttribute, SpecificAttribute: "id"}, "")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(root.Children) != 1 || root.Children[0].Name != "a" {
		t.Fatalf("expected only <a> via id attribute, got %+v", root.Children)
	}
}

func TestExtractAncestorReconstruction(t *testing.T) {
	doc := build(t, storeXML)

	root, err := Extract(doc, Query{
		Term:              "fiction",
		Basis:             BasisAttribute,
		IncludeAncestors:  true,
		PreserveStructure: true,
	}, "books.xml")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(root.Children) != 1 {
		t.Fatalf("expected 1 reconstructed branch, got %d", len(root.Children))
	}
	store := root.Children[0]
	if store.Name != "bookstore" {
		t.Fatalf("expected bookstore skeleton at top, got %q", store.Name)
	}
	// The skeleton holds only the matched branch, not the sibling book.
	if len(store.Children) != 1 {
		t.Fatalf("expected skeleton with single branch, got %d children", len(store.Children))
	}
	book := store.Children[0]
	if v, _ := book.Attr("category"); v != "fiction" {
		t.Fatalf("expected matched book under skeleton, got category=%q", v)
	}
	if book.Text() != "A" {
		t.Fatalf("expected full matched subtree, got %q", book.Text())
	}
}

func TestExtractDeduplicatesByPath(t *testing.T) {
	doc := build(t, storeXML)

	// Both books match, but they share the name-chain path
	// bookstore/book; the second sibling is dropped.
	root, err := Extract(doc, Query{
		Term:              "book",
		Basis:             BasisElementName,
		SpecificElement:   "book",
		IncludeAncestors:  true,
		PreserveStructure: true,
	}, "")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	paths := map[string]bool{}
	doc.Root.Walk(func(n *xmltree.Node, _ int) {
		if n.Kind == xmltree.KindElement && n.Name == "book" {
			paths[n.Path] = true
		}
	})
	if len(root.Children) > len(paths)+1 {
		t.Fatalf("dedup bound violated: %d branches for %d distinct paths", len(root.Children), len(paths))
	}

	var books int
	for _, branch := range root.Children {
		branch.Walk(func(n *xmltree.Node, _ int) {
			if n.Kind == xmltree.KindElement && n.Name == "book" && n.Text() != "" {
				books++
			}
		})
	}
	if books != 1 {
		t.Fatalf("expected one surviving book subtree after dedup, got %d", books)
	}
}

func TestExtractWithoutAncestorsKeepsAllSiblings(t *testing.T) {
	doc := build(t, storeXML)

	root, err := Extract(doc, Query{Term: "book", Basis: BasisElementName, SpecificElement: "book"}, "")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(root.Children) != 2 {
		t.Fatalf("expected both sibling books without dedup, got %d", len(root.Children))
	}
}

func TestExtractIdempotent(t *testing.T) {
	doc := build(t, storeXML)
	q := Query{Term: "book", Basis: BasisElementName, SpecificElement: "book"}

	first, err := Extract(doc, q, "books.xml")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	second, err := Extract(doc, q, "books.xml")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(first.Children) != len(second.Children) {
		t.Fatalf("run sizes differ: %d vs %d", len(first.Children), len(second.Children))
	}
	for i := range first.Children {
		a := xmltree.Marshal(first.Children[i])
		b := xmltree.Marshal(second.Children[i])
		if a != b {
			t.Fatalf("child %d differs between runs:\n%s\n%s", i, a, b)
		}
	}
}

func TestExtractResultIsIndependent(t *testing.T) {
	doc := build(t, storeXML)

	root, err := Extract(doc, Query{Term: "fiction", Basis: BasisAttribute}, "")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	root.Children[0].Attrs[0].Value = "mutated"
	root.Children[0].Children = nil

	if v, _ := doc.Root.Children[0].Attr("category"); v != "fiction" {
		t.Fatalf("result mutation leaked into source: %q", v)
	}
	if len(doc.Root.Children[0].Children) == 0 {
		t.Fatal("result mutation removed source children")
	}
}

func TestExtractMissingInput(t *testing.T) {
	doc := build(t, storeXML)

	if _, err := Extract(doc, Query{Term: "", Basis: BasisAttribute}, ""); !errors.Is(err, ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput for empty term, got %v", err)
	}
	if _, err := Extract(nil, Query{Term: "x", Basis: BasisAttribute}, ""); !errors.Is(err, ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput for nil document, got %v", err)
	}
	if _, err := PreviewQuery(doc, Query{Term: "", Basis: BasisAttribute}); !errors.Is(err, ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput from preview, got %v", err)
	}
}
