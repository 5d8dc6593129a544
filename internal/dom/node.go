package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse parses a complete HTML document.
func Parse(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	return doc, nil
}

// Render writes n and its subtree as HTML.
func Render(w io.Writer, n *html.Node) error {
	return html.Render(w, n)
}

// NewElement creates a detached element node.
func NewElement(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     a.String(),
		DataAtom: a,
		Attr:     attrs,
	}
}

// First returns the first element in root's subtree (root included) with the given atom.
func First(root *html.Node, a atom.Atom) *html.Node {
	if root.Type == html.ElementNode && root.DataAtom == a {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if n := First(c, a); n != nil {
			return n
		}
	}
	return nil
}

// Attr returns the value of the named attribute, or "".
func Attr(n *html.Node, key string) string {
	v, _ := lookupAttr(n, key)
	return v
}

func lookupAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces the named attribute.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// HasClass reports whether the class attribute of n lists cls.
func HasClass(n *html.Node, cls string) bool {
	for _, c := range strings.Fields(Attr(n, "class")) {
		if c == cls {
			return true
		}
	}
	return false
}

// AddClass appends cls to the class attribute unless already present.
func AddClass(n *html.Node, cls string) {
	if HasClass(n, cls) {
		return
	}
	existing := strings.TrimSpace(Attr(n, "class"))
	if existing == "" {
		SetAttr(n, "class", cls)
		return
	}
	SetAttr(n, "class", existing+" "+cls)
}

// InnerText returns the rendered plain text of n: text nodes concatenated
// verbatim, <br> as a newline, and script, style and template content omitted.
// The result is not trimmed.
func InnerText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				b.WriteString(c.Data)
			case html.ElementNode:
				switch c.DataAtom {
				case atom.Br:
					b.WriteByte('\n')
					continue
				case atom.Script, atom.Style, atom.Template:
					continue
				}
				walk(c)
			}
		}
	}
	walk(n)
	return b.String()
}

// InnerHTML renders the children of n.
func InnerHTML(n *html.Node) string {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

// ParseFragment parses fragment in the context of an element like ctx.
func ParseFragment(ctx *html.Node, fragment string) ([]*html.Node, error) {
	parent := &html.Node{Type: html.ElementNode, Data: ctx.Data, DataAtom: ctx.DataAtom}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), parent)
	if err != nil {
		return nil, fmt.Errorf("parsing fragment: %w", err)
	}
	return nodes, nil
}

// SetInnerHTML replaces the children of n with the parsed fragment.
func SetInnerHTML(n *html.Node, fragment string) error {
	nodes, err := ParseFragment(n, fragment)
	if err != nil {
		return err
	}
	ReplaceChildren(n, nodes...)
	return nil
}

// ReplaceChildren removes every child of n and appends nodes. Nodes must be detached.
func ReplaceChildren(n *html.Node, nodes ...*html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	for _, c := range nodes {
		n.AppendChild(c)
	}
}
