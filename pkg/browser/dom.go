// Package browser implements the OASIS browser pipeline: HTML/CSS
// parsing, style cascade, block/inline/table/float layout, and paint
// command emission (spec §4.6), grounded on
// oasis-browser/src/css/cascade.rs and oasis-browser/src/nav.rs.
package browser

import (
	"strings"

	"golang.org/x/net/html"
)

// ParseHTML parses the curated HTML subset (spec §4.6 stage 1) into a
// standard *html.Node tree, reusing golang.org/x/net/html for
// tokenizing, entity decoding (&amp; &lt; &gt; &quot; &#NN; &#xHH;),
// and implicit-close recovery of unterminated tags — the same
// malformed-markup cases the spec calls out — rather than
// hand-rolling a second recovery pass on top of the tokenizer.
// cascadia selector matching (stage 2) operates directly on the
// returned tree, which is why the full parser is used instead of a
// bespoke DOM type.
func ParseHTML(src string) *html.Node {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		// html.Parse is documented as only failing on a reader error;
		// a parse error in the markup itself is recovered internally.
		return &html.Node{Type: html.DocumentNode}
	}
	return doc
}

// FindElement returns the first descendant (or self) element node
// with the given tag name.
func FindElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := FindElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// TextContent concatenates all descendant text nodes under n.
func TextContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(TextContent(c))
	}
	return b.String()
}

// Attr looks up an element attribute by name.
func Attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

// IsTextOnlyWhitespace reports whether a text node carries nothing
// but layout-insignificant whitespace, which block layout collapses
// rather than emitting an empty inline run.
func IsTextOnlyWhitespace(n *html.Node) bool {
	return n.Type == html.TextNode && strings.TrimSpace(n.Data) == ""
}
