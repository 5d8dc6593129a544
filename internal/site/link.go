package site

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ziadkadry99/copybtn/internal/dom"
)

// basePath returns the relative prefix from a page back to the site root.
func basePath(relPath string) string {
	return strings.Repeat("../", strings.Count(relPath, "/"))
}

// hasScript reports whether doc already loads the copy button script.
func hasScript(doc *html.Node) bool {
	for _, s := range dom.MustCompile("script[src]").MatchAll(doc) {
		src := dom.Attr(s, "src")
		if src == ScriptName || strings.HasSuffix(src, "/"+ScriptName) {
			return true
		}
	}
	return false
}

// linkAssets appends the stylesheet link and deferred script to the head of doc.
func linkAssets(doc *html.Node, base string) {
	head := dom.First(doc, atom.Head)
	if head == nil {
		// html.Parse always synthesizes a head; fragments fall back to the root.
		head = doc
	}
	head.AppendChild(dom.NewElement(atom.Link,
		html.Attribute{Key: "rel", Val: "stylesheet"},
		html.Attribute{Key: "href", Val: base + StyleName},
	))
	head.AppendChild(dom.NewElement(atom.Script,
		html.Attribute{Key: "src", Val: base + ScriptName},
		html.Attribute{Key: "defer", Val: ""},
	))
}
