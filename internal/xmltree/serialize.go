package xmltree

import (
	"regexp"
	"strings"
)

// Marshal renders the subtree as flat, single-line XML text with text and
// attribute values escaped.
func Marshal(n *Node) string {
	var b strings.Builder
	writeFlat(&b, n)
	return b.String()
}

func writeFlat(b *strings.Builder, n *Node) {
	switch n.Kind {
	case KindText:
		b.WriteString(escapeText(n.Value))
	case KindComment:
		b.WriteString("<!--")
		b.WriteString(n.Value)
		b.WriteString("-->")
	case KindCData:
		b.WriteString("<![CDATA[")
		b.WriteString(n.Value)
		b.WriteString("]]>")
	case KindElement:
		b.WriteString("<")
		b.WriteString(n.Name)
		for _, a := range n.Attrs {
			b.WriteString(" ")
			b.WriteString(a.Name)
			b.WriteString(`="`)
			b.WriteString(escapeAttr(a.Value))
			b.WriteString(`"`)
		}
		if len(n.Children) == 0 {
			b.WriteString("/>")
			return
		}
		b.WriteString(">")
		for _, c := range n.Children {
			writeFlat(b, c)
		}
		b.WriteString("</")
		b.WriteString(n.Name)
		b.WriteString(">")
	}
}

var tagBoundary = regexp.MustCompile(`>\s*<`)

// Indent re-renders flat XML text with 2-space indentation per nesting
// level. It is a line-oriented transform over bracket adjacency, not a
// parser: literal '>' or '<' sequences inside attribute values or CDATA
// can mis-indent. Use MarshalIndent for a structural rendering.
func Indent(flat string) string {
	fragments := strings.Split(tagBoundary.ReplaceAllString(strings.TrimSpace(flat), ">\n<"), "\n")

	var b strings.Builder
	indent := 0
	for i, frag := range fragments {
		leadingClose := strings.HasPrefix(frag, "</")
		if leadingClose && indent > 0 {
			indent--
		}
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(strings.Repeat("  ", indent))
		b.WriteString(frag)

		net := netOpens(frag)
		if leadingClose {
			net++ // the leading closing tag was applied before printing
		}
		indent += net
		if indent < 0 {
			indent = 0
		}
	}
	return b.String()
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// netOpens reports how many elements a fragment leaves open: opening
// tags minus closing tags, ignoring self-closing tags, comments and
// declarations. A mixed-content fragment like "<b>one<i>x</i>" leaves
// one element open, so the next fragment indents one level deeper.
func netOpens(frag string) int {
	net := 0
	for _, tag := range tagPattern.FindAllString(frag, -1) {
		switch {
		case strings.HasPrefix(tag, "</"):
			net--
		case strings.HasPrefix(tag, "<!"), strings.HasPrefix(tag, "<?"):
		case strings.HasSuffix(tag, "/>"):
		default:
			net++
		}
	}
	return net
}

// MarshalIndent renders the subtree as indented XML driven from the tree
// itself, 2 spaces per level. Elements whose only child is a single text
// node are rendered inline.
func MarshalIndent(n *Node) string {
	var b strings.Builder
	writeIndented(&b, n, 0)
	return b.String()
}

func writeIndented(b *strings.Builder, n *Node, depth int) {
	pad := strings.Repeat("  ", depth)
	switch n.Kind {
	case KindText:
		b.WriteString(pad)
		b.WriteString(escapeText(n.Value))
	case KindComment:
		b.WriteString(pad)
		b.WriteString("<!--")
		b.WriteString(n.Value)
		b.WriteString("-->")
	case KindCData:
		b.WriteString(pad)
		b.WriteString("<![CDATA[")
		b.WriteString(n.Value)
		b.WriteString("]]>")
	case KindElement:
		b.WriteString(pad)
		b.WriteString("<")
		b.WriteString(n.Name)
		for _, a := range n.Attrs {
			b.WriteString(" ")
			b.WriteString(a.Name)
			b.WriteString(`="`)
			b.WriteString(escapeAttr(a.Value))
			b.WriteString(`"`)
		}
		if len(n.Children) == 0 {
			b.WriteString("/>")
			return
		}
		b.WriteString(">")
		if soleTextChild(n) {
			b.WriteString(escapeText(n.Children[0].Value))
			b.WriteString("</")
			b.WriteString(n.Name)
			b.WriteString(">")
			return
		}
		for _, c := range n.Children {
			b.WriteString("\n")
			writeIndented(b, c, depth+1)
		}
		b.WriteString("\n")
		b.WriteString(pad)
		b.WriteString("</")
		b.WriteString(n.Name)
		b.WriteString(">")
	}
}

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escapeText(s string) string { return textEscaper.Replace(s) }

func escapeAttr(s string) string { return attrEscaper.Replace(s) }
