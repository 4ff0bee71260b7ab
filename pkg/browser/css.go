package browser

import (
	"sort"
	"strconv"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/oasis-os/oasis/pkg/colorx"
)

// Declaration is one `property: value` pair from a rule body.
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// Rule is a parsed `selector { declarations }` block (spec §4.6 stage
// 2). Selector matching is delegated to andybalholm/cascadia, which
// compiles the same selector grammar browsers use.
type Rule struct {
	SelectorText string
	Matcher      cascadia.Selector
	Specificity  int
	Order        int
	Decls        []Declaration
}

// ParseCSS parses a curated CSS subset: comma-free selector lists are
// not split (each comma-separated group is its own rule after
// splitting on top-level commas), declarations are `prop: value;`
// pairs, and `/* ... */` comments are stripped. No third-party CSS
// tokenizer appears anywhere in the example pack, so this hand-rolled
// scanner is the justified stdlib fallback; selector *matching* still
// goes through cascadia.
func ParseCSS(src string) []Rule {
	src = stripComments(src)
	var rules []Rule
	order := 0
	for _, block := range splitTopLevel(src, '}') {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		open := strings.IndexByte(block, '{')
		if open < 0 {
			continue
		}
		selectorGroup := strings.TrimSpace(block[:open])
		body := block[open+1:]
		for _, sel := range splitTopLevel(selectorGroup, ',') {
			sel = strings.TrimSpace(sel)
			if sel == "" {
				continue
			}
			matcher, err := cascadia.Compile(sel)
			if err != nil {
				continue
			}
			order++
			rules = append(rules, Rule{
				SelectorText: sel,
				Matcher:      matcher,
				Specificity:  specificityOf(sel),
				Order:        order,
				Decls:        parseDeclarations(body),
			})
		}
	}
	return rules
}

func stripComments(s string) string {
	var b strings.Builder
	for {
		start := strings.Index(s, "/*")
		if start < 0 {
			b.WriteString(s)
			break
		}
		b.WriteString(s[:start])
		end := strings.Index(s[start:], "*/")
		if end < 0 {
			break
		}
		s = s[start+end+2:]
	}
	return b.String()
}

// splitTopLevel splits on sep, ignoring sep characters inside quotes.
func splitTopLevel(s string, sep byte) []string {
	var out []string
	var cur strings.Builder
	inQuote := byte(0)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inQuote != 0:
			cur.WriteByte(c)
			if c == inQuote {
				inQuote = 0
			}
		case c == '\'' || c == '"':
			inQuote = c
			cur.WriteByte(c)
		case c == sep:
			out = append(out, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}

func parseDeclarations(body string) []Declaration {
	var out []Declaration
	for _, stmt := range splitTopLevel(body, ';') {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		colon := strings.IndexByte(stmt, ':')
		if colon < 0 {
			continue
		}
		prop := strings.ToLower(strings.TrimSpace(stmt[:colon]))
		val := strings.TrimSpace(stmt[colon+1:])
		important := false
		if idx := strings.Index(strings.ToLower(val), "!important"); idx >= 0 {
			important = true
			val = strings.TrimSpace(val[:idx])
		}
		out = append(out, Declaration{Property: prop, Value: val, Important: important})
	}
	return out
}

// specificityOf approximates CSS specificity as id*100 + class*10 +
// type*1, which is sufficient for the curated selector grammar this
// pipeline supports (type, class, id, descendant combinator).
func specificityOf(sel string) int {
	ids, classes, types := 0, 0, 0
	for _, tok := range strings.Fields(sel) {
		for _, part := range splitCompound(tok) {
			switch {
			case strings.HasPrefix(part, "#"):
				ids++
			case strings.HasPrefix(part, "."):
				classes++
			case part != "" && part != "*" && part != ">":
				types++
			}
		}
	}
	return ids*100 + classes*10 + types
}

func splitCompound(tok string) []string {
	var parts []string
	var cur strings.Builder
	for _, r := range tok {
		if r == '.' || r == '#' {
			if cur.Len() > 0 {
				parts = append(parts, cur.String())
				cur.Reset()
			}
			cur.WriteRune(r)
		} else {
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		parts = append(parts, cur.String())
	}
	return parts
}

// Display is the computed box-generation mode (spec §4.6 stage 3).
type Display int

const (
	DisplayBlock Display = iota
	DisplayInline
	DisplayNone
	DisplayTableRow
	DisplayTableCell
	DisplayTable
)

// Float is the computed float side.
type Float int

const (
	FloatNone Float = iota
	FloatLeft
	FloatRight
)

// ComputedStyle is the per-element resolved style after cascade (spec
// §3 Style).
type ComputedStyle struct {
	Display     Display
	Float       Float
	Color       colorx.Color
	Background  colorx.Color
	FontSize    float64
	MarginT     float64
	MarginR     float64
	MarginB     float64
	MarginL     float64
	PaddingT    float64
	PaddingR    float64
	PaddingB    float64
	PaddingL    float64
	Width       float64 // 0 = auto
	Height      float64 // 0 = auto
	BorderW     float64
	BorderColor colorx.Color
}

// defaultStyle is the UA baseline before any rule applies.
func defaultStyle() ComputedStyle {
	return ComputedStyle{
		Display:  DisplayInline,
		Color:    colorx.RGB(0, 0, 0),
		FontSize: 16,
	}
}

// defaultDisplayFor applies the handful of UA block/table defaults
// the curated subset needs; every other tag is inline by default.
func defaultDisplayFor(tag string) Display {
	switch tag {
	case "html", "body", "div", "p", "h1", "h2", "h3", "ul", "ol", "li", "table":
		if tag == "table" {
			return DisplayTable
		}
		return DisplayBlock
	case "tr":
		return DisplayTableRow
	case "td", "th":
		return DisplayTableCell
	}
	return DisplayInline
}

// inheritedProps lists the properties child elements inherit when not
// explicitly set (spec §3: "resolve inherited vs reset properties").
var inheritedProps = map[string]bool{
	"color": true, "font-size": true,
}

type matchedRule struct {
	rule Rule
}

// Cascade computes per-element style for every element in the tree,
// implementing spec §4.6 stage 2: sort matches by specificity (later
// wins on tie), apply inherited properties down the tree, then layer
// an inline `style=` attribute with effectively-maximum specificity
// for its non-!important declarations (spec §3 DOM/Style invariant).
func Cascade(doc *html.Node, rules []Rule) map[*html.Node]ComputedStyle {
	out := make(map[*html.Node]ComputedStyle)
	var walk func(n *html.Node, parentStyle ComputedStyle, hasParent bool)
	walk = func(n *html.Node, parentStyle ComputedStyle, hasParent bool) {
		if n.Type == html.ElementNode {
			style := defaultStyle()
			style.Display = defaultDisplayFor(n.Data)
			if hasParent {
				if inheritedProps["color"] {
					style.Color = parentStyle.Color
				}
				if inheritedProps["font-size"] {
					style.FontSize = parentStyle.FontSize
				}
			}

			matches := matchingRules(n, rules)
			sort.SliceStable(matches, func(i, j int) bool {
				if matches[i].Specificity != matches[j].Specificity {
					return matches[i].Specificity < matches[j].Specificity
				}
				return matches[i].Order < matches[j].Order
			})
			for _, r := range matches {
				applyDeclarations(&style, r.Decls)
			}
			var inlineDecls []Declaration
			if inline, ok := Attr(n, "style"); ok {
				inlineDecls = parseDeclarations(inline)
				applyDeclarations(&style, inlineDecls)
			}
			important := func(decls []Declaration) []Declaration {
				var out []Declaration
				for _, d := range decls {
					if d.Important {
						out = append(out, d)
					}
				}
				return out
			}
			for _, r := range matches {
				applyDeclarations(&style, important(r.Decls))
			}
			applyDeclarations(&style, important(inlineDecls))
			out[n] = style
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c, style, true)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, parentStyle, hasParent)
		}
	}
	walk(doc, ComputedStyle{}, false)
	return out
}

func matchingRules(n *html.Node, rules []Rule) []Rule {
	var out []Rule
	for _, r := range rules {
		if r.Matcher.Match(n) {
			out = append(out, r)
		}
	}
	return out
}

func applyDeclarations(style *ComputedStyle, decls []Declaration) {
	for _, d := range decls {
		switch d.Property {
		case "display":
			style.Display = parseDisplay(d.Value)
		case "float":
			style.Float = parseFloat(d.Value)
		case "color":
			if c, err := colorx.ParseHex(d.Value); err == nil {
				style.Color = c
			}
		case "background-color", "background":
			if c, err := colorx.ParseHex(d.Value); err == nil {
				style.Background = c
			}
		case "font-size":
			if v, ok := parsePx(d.Value); ok {
				style.FontSize = v
			}
		case "margin":
			applyBox(d.Value, &style.MarginT, &style.MarginR, &style.MarginB, &style.MarginL)
		case "margin-top":
			setPx(d.Value, &style.MarginT)
		case "margin-right":
			setPx(d.Value, &style.MarginR)
		case "margin-bottom":
			setPx(d.Value, &style.MarginB)
		case "margin-left":
			setPx(d.Value, &style.MarginL)
		case "padding":
			applyBox(d.Value, &style.PaddingT, &style.PaddingR, &style.PaddingB, &style.PaddingL)
		case "padding-top":
			setPx(d.Value, &style.PaddingT)
		case "padding-right":
			setPx(d.Value, &style.PaddingR)
		case "padding-bottom":
			setPx(d.Value, &style.PaddingB)
		case "padding-left":
			setPx(d.Value, &style.PaddingL)
		case "width":
			setPx(d.Value, &style.Width)
		case "height":
			setPx(d.Value, &style.Height)
		case "border-width":
			setPx(d.Value, &style.BorderW)
		case "border-color":
			if c, err := colorx.ParseHex(d.Value); err == nil {
				style.BorderColor = c
			}
		}
	}
}

func parseDisplay(v string) Display {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "none":
		return DisplayNone
	case "inline":
		return DisplayInline
	case "table-row":
		return DisplayTableRow
	case "table-cell":
		return DisplayTableCell
	case "table":
		return DisplayTable
	default:
		return DisplayBlock
	}
}

func parseFloat(v string) Float {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "left":
		return FloatLeft
	case "right":
		return FloatRight
	default:
		return FloatNone
	}
}

func parsePx(v string) (float64, bool) {
	v = strings.TrimSpace(v)
	v = strings.TrimSuffix(v, "px")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func setPx(v string, dst *float64) {
	if f, ok := parsePx(v); ok {
		*dst = f
	}
}

func applyBox(v string, top, right, bottom, left *float64) {
	fields := strings.Fields(v)
	vals := make([]float64, 0, 4)
	for _, f := range fields {
		if n, ok := parsePx(f); ok {
			vals = append(vals, n)
		}
	}
	switch len(vals) {
	case 1:
		*top, *right, *bottom, *left = vals[0], vals[0], vals[0], vals[0]
	case 2:
		*top, *bottom = vals[0], vals[0]
		*right, *left = vals[1], vals[1]
	case 4:
		*top, *right, *bottom, *left = vals[0], vals[1], vals[2], vals[3]
	}
}
