package browser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// readableTags are the elements reader mode keeps; everything else
// (nav, script, style, aside) is dropped, grounded on the teacher's
// pkg/tool/builtin/browser.go readability-style extraction.
var readableTags = []string{"h1", "h2", "h3", "p", "li", "blockquote", "pre"}

// ExtractReadable simplifies a page's HTML body to a single-column
// plain-text rendering: the text of the readableTags elements, grouped
// tag by tag in that list's order, with list items prefixed "- ",
// after script, style, nav, aside, header and footer are removed
// (SPEC_FULL §C reader mode).
func ExtractReadable(htmlSrc string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlSrc))
	if err != nil {
		return "", err
	}
	doc.Find("script, style, nav, aside, header, footer").Remove()

	var lines []string
	for _, tag := range readableTags {
		doc.Find(tag).Each(func(_ int, sel *goquery.Selection) {
			text := strings.TrimSpace(sel.Text())
			if text == "" {
				return
			}
			if tag == "li" {
				text = "- " + text
			}
			lines = append(lines, text)
		})
	}
	return strings.Join(lines, "\n\n"), nil
}
