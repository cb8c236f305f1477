package xmltree

import (
	"strings"
	"testing"
)

func TestMarshalFlat(t *testing.T) {
	doc, err := Build(`<a x="1 &amp; 2"><b>hi &amp; bye</b><c/></a>`, BuildOptions{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	got := Marshal(doc.Root)
	want := `<a x="1 &amp; 2"><b>hi &amp; bye</b><c/></a>`
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestMarshalEscapesAttrQuotes(t *testing.T) {
	n := &Node{
		Kind:  KindElement,
		Name:  "a",
		Attrs: []Attr{{Name: "q", Value: `say "hi" <now>`}},
	}
	got := Marshal(n)
	want := `<a q="say &quot;hi&quot; &lt;now&gt;"/>`
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestIndentFlatText(t *testing.T) {
	got := Indent(`<a><b>hi</b><c/><d><e>x</e></d></a>`)
	want := strings.Join([]string{
		"<a>",
		"  <b>hi</b>",
		"  <c/>",
		"  <d>",
		"    <e>x</e>",
		"  </d>",
		"</a>",
	}, "\n")
	if got != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestIndentTolerantOfInterveningWhitespace(t *testing.T) {
	got := Indent("<a> \n <b/>\t</a>")
	want := strings.Join([]string{
		"<a>",
		"  <b/>",
		"</a>",
	}, "\n")
	if got != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestIndentSplitOpenClose(t *testing.T) {
	// Mixed content keeps "<b>one<i>x</i>" together as one fragment
	// (no bracket adjacency inside it). The fragment leaves <b> open,
	// so the later "</b>" fragment lands at <b>'s own level.
	got := Indent(`<a><b>one<i>x</i></b></a>`)
	want := strings.Join([]string{
		"<a>",
		"  <b>one<i>x</i>",
		"  </b>",
		"</a>",
	}, "\n")
	if got != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestIndentOpenWithoutClose(t *testing.T) {
	// A fragment carrying an opening tag plus trailing text indents
	// everything until its matching close.
	got := Indent(`<a><title>A</title><b>x<c/></b></a>`)
	want := strings.Join([]string{
		"<a>",
		"  <title>A</title>",
		"  <b>x<c/>",
		"  </b>",
		"</a>",
	}, "\n")
	if got != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestMarshalIndentStructural(t *testing.T) {
	doc, err := Build(`<root><item id="1">A</item><group><item id="2">B</item><!--c--></group></root>`, BuildOptions{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	got := MarshalIndent(doc.Root)
	want := strings.Join([]string{
		`<root>`,
		`  <item id="1">A</item>`,
		`  <group>`,
		`    <item id="2">B</item>`,
		`    <!--c-->`,
		`  </group>`,
		`</root>`,
	}, "\n")
	if got != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestMarshalIndentCData(t *testing.T) {
	doc, err := Build(`<a><![CDATA[1 < 2]]><b/></a>`, BuildOptions{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	got := MarshalIndent(doc.Root)
	want := strings.Join([]string{
		`<a>`,
		`  <![CDATA[1 < 2]]>`,
		`  <b/>`,
		`</a>`,
	}, "\n")
	if got != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, got)
	}
}
