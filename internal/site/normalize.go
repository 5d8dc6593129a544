package site

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ziadkadry99/copybtn/internal/dom"
)

var (
	preCode   = dom.MustCompile("pre > code")
	rougeCode = dom.MustCompile(".rouge-code")
	mdLink    = dom.MustCompile("a[href]")
)

// normalizeCodeBlocks rewrites every pre > code into the rouge markup the
// injector expects: the pre gets the "highlight" class and the code's
// children move into a span.rouge-code unless one already exists.
func normalizeCodeBlocks(doc *html.Node) int {
	blocks := preCode.MatchAll(doc)
	for _, code := range blocks {
		dom.AddClass(code.Parent, "highlight")
		if rougeCode.MatchFirst(code) != nil {
			continue
		}
		span := dom.NewElement(atom.Span, html.Attribute{Key: "class", Val: "rouge-code"})
		for c := code.FirstChild; c != nil; {
			next := c.NextSibling
			code.RemoveChild(c)
			span.AppendChild(c)
			c = next
		}
		code.AppendChild(span)
	}
	return len(blocks)
}

// rewriteMDLinks points relative links to .md pages at the rendered .html
// pages. Only a[href] attributes are touched; text and code are left alone.
func rewriteMDLinks(doc *html.Node) int {
	n := 0
	for _, a := range mdLink.MatchAll(doc) {
		href := dom.Attr(a, "href")
		if strings.Contains(href, "://") || strings.HasPrefix(href, "//") {
			continue
		}
		path, frag, hasFrag := strings.Cut(href, "#")
		if !strings.HasSuffix(path, ".md") {
			continue
		}
		href = mdPathToHTML(path)
		if hasFrag {
			href += "#" + frag
		}
		dom.SetAttr(a, "href", href)
		n++
	}
	return n
}

// mdPathToHTML converts a relative .md path to its .html output path.
func mdPathToHTML(p string) string {
	if strings.HasSuffix(p, ".md") {
		return strings.TrimSuffix(p, ".md") + ".html"
	}
	return p
}
