package browser

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/net/html"
)

// BoxKind tags a layout box's generation mode (spec §3 layout tree).
type BoxKind int

const (
	BoxBlock BoxKind = iota
	BoxInline
	BoxTableRow
	BoxTableCell
	BoxFloat
	BoxText
)

// Box is one node of the computed layout tree: a block, inline,
// table-row, table-cell, float, or terminal text-run box with
// resolved geometry (spec §3 Box tree, §4.6 stage 3).
type Box struct {
	Kind       BoxKind
	Node       *html.Node
	Style      ComputedStyle
	X, Y, W, H float64
	Text       string
	Children   []*Box
}

// avgCharWidthFactor approximates a monospace-ish glyph advance as a
// fraction of font size, since the core has no real font metrics —
// backends own actual glyph shaping; layout only needs line-break
// points accurate enough to size boxes.
const avgCharWidthFactor = 0.56

func textWidth(s string, fontSize float64) float64 {
	return float64(runewidth.StringWidth(s)) * fontSize * avgCharWidthFactor
}

// layoutContext collects the left and right float boxes laid out so
// far. The lists are only appended to; no layout step reads them, so
// floats do not displace the content that follows them.
type layoutContext struct {
	floatsLeft  []Box
	floatsRight []Box
}

// Layout builds the box tree for doc's <body> within a containing
// block of the given width, applying block/inline/table/float rules.
// It returns the body's own box, whose content rect callers read for
// paint placement.
func Layout(doc *html.Node, styles map[*html.Node]ComputedStyle, viewportW, viewportH float64) *Box {
	body := FindElement(doc, "body")
	if body == nil {
		body = doc
	}
	ctx := &layoutContext{}
	bodyStyle := styles[body]
	box := &Box{Kind: BoxBlock, Node: body, Style: bodyStyle, X: 0, Y: 0, W: viewportW}
	contentX := box.X + bodyStyle.PaddingL
	contentY := box.Y + bodyStyle.PaddingT
	contentW := viewportW - bodyStyle.PaddingL - bodyStyle.PaddingR
	h := layoutChildren(body, styles, ctx, contentX, contentY, contentW, &box.Children)
	box.H = h + bodyStyle.PaddingT + bodyStyle.PaddingB
	if box.H < viewportH {
		box.H = viewportH
	}
	return box
}

// layoutChildren lays out n's element/text children as a block
// formatting context, returning the total content height consumed.
// lastMarginBottom implements margin-collapsing: adjacent vertical
// margins collapse to the max, not the sum (spec §4.6 stage 3).
func layoutChildren(n *html.Node, styles map[*html.Node]ComputedStyle, ctx *layoutContext, x, y, w float64, out *[]*Box) float64 {
	cursorY := y
	lastMarginBottom := 0.0
	var inlineRun []*html.Node

	flushInline := func() {
		if len(inlineRun) == 0 {
			return
		}
		b, consumed := layoutInlineRun(inlineRun, styles, x, cursorY, w)
		*out = append(*out, b)
		cursorY += consumed
		inlineRun = nil
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if !IsTextOnlyWhitespace(c) {
				inlineRun = append(inlineRun, c)
			}
		case html.ElementNode:
			style := styles[c]
			if style.Display == DisplayNone {
				continue
			}
			if style.Display == DisplayInline {
				inlineRun = append(inlineRun, c)
				continue
			}
			flushInline()

			if style.Float != FloatNone {
				fb := layoutFloat(c, styles, ctx, x, cursorY, w)
				*out = append(*out, fb)
				continue
			}

			// Margin-collapsing: the gap between the previous block's
			// bottom and this one's top is the max of the two adjacent
			// margins, not their sum (spec §4.6 stage 3).
			cursorY += max64(style.MarginT, lastMarginBottom)

			switch style.Display {
			case DisplayTable:
				tb := layoutTable(c, styles, x, cursorY, w)
				*out = append(*out, tb)
				cursorY += tb.H
			default:
				bx := x + style.MarginL + style.PaddingL
				bw := w - style.MarginL - style.MarginR
				innerW := bw - style.PaddingL - style.PaddingR
				if style.Width > 0 {
					innerW = style.Width
					bw = innerW + style.PaddingL + style.PaddingR
				}
				block := &Box{Kind: BoxBlock, Node: c, Style: style, X: x + style.MarginL, Y: cursorY, W: bw}
				innerH := layoutChildren(c, styles, ctx, bx, cursorY+style.PaddingT, innerW, &block.Children)
				contentH := innerH
				if style.Height > 0 {
					contentH = style.Height
				}
				block.H = contentH + style.PaddingT + style.PaddingB
				*out = append(*out, block)
				cursorY += block.H
			}
			lastMarginBottom = style.MarginB
		}
	}
	flushInline()
	return cursorY - y
}

func max64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// layoutInlineRun flows a run of sibling inline/text nodes within w,
// breaking lines at word boundaries and wrapping overflow (spec §4.6
// stage 3 inline layout).
func layoutInlineRun(nodes []*html.Node, styles map[*html.Node]ComputedStyle, x, y, w float64) (*Box, float64) {
	run := &Box{Kind: BoxInline, X: x, Y: y, W: w}
	lineY := y
	lineX := x
	fontSize := 16.0
	color := defaultStyle().Color
	if len(nodes) > 0 {
		if st, ok := resolveTextStyle(nodes[0], styles); ok {
			fontSize = st.FontSize
			color = st.Color
		}
	}
	lineHeight := fontSize * 1.3

	for _, n := range nodes {
		text := n.Data
		if n.Type == html.ElementNode {
			text = TextContent(n)
			if st, ok := styles[n]; ok {
				fontSize = st.FontSize
				color = st.Color
			}
		}
		for _, word := range strings.Fields(text) {
			ww := textWidth(word+" ", fontSize)
			if lineX+ww > x+w && lineX > x {
				lineY += lineHeight
				lineX = x
			}
			run.Children = append(run.Children, &Box{
				Kind: BoxText, Text: word, X: lineX, Y: lineY, W: ww, H: lineHeight,
				Style: ComputedStyle{Color: color, FontSize: fontSize},
			})
			lineX += ww
		}
	}
	totalH := lineY - y + lineHeight
	run.H = totalH
	return run, totalH
}

func resolveTextStyle(n *html.Node, styles map[*html.Node]ComputedStyle) (ComputedStyle, bool) {
	for p := n; p != nil; p = p.Parent {
		if st, ok := styles[p]; ok {
			return st, true
		}
	}
	return ComputedStyle{}, false
}

// layoutFloat lays out a floated element at the containing block's
// left or right edge (its style width, else 30% of the block) and
// records it in ctx. The caller does not advance its cursor past the
// float, and no column is reserved: following content starts at the
// float's own y and is not shifted around it.
func layoutFloat(n *html.Node, styles map[*html.Node]ComputedStyle, ctx *layoutContext, x, y, w float64) *Box {
	style := styles[n]
	floatW := style.Width
	if floatW == 0 {
		floatW = w * 0.3
	}
	fx := x
	if style.Float == FloatRight {
		fx = x + w - floatW
	}
	box := &Box{Kind: BoxFloat, Node: n, Style: style, X: fx, Y: y, W: floatW}
	innerH := layoutChildren(n, styles, ctx, fx+style.PaddingL, y+style.PaddingT, floatW-style.PaddingL-style.PaddingR, &box.Children)
	box.H = innerH + style.PaddingT + style.PaddingB
	if style.Float == FloatLeft {
		ctx.floatsLeft = append(ctx.floatsLeft, *box)
	} else {
		ctx.floatsRight = append(ctx.floatsRight, *box)
	}
	return box
}

// layoutTable computes column widths by two passes — min-content per
// column, then distribute remaining width evenly — per spec §4.6
// stage 3.
func layoutTable(table *html.Node, styles map[*html.Node]ComputedStyle, x, y, w float64) *Box {
	var rows [][]*html.Node
	for r := table.FirstChild; r != nil; r = r.NextSibling {
		if r.Type != html.ElementNode || styles[r].Display != DisplayTableRow {
			continue
		}
		var cells []*html.Node
		for c := r.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && styles[c].Display == DisplayTableCell {
				cells = append(cells, c)
			}
		}
		rows = append(rows, cells)
	}

	cols := 0
	for _, r := range rows {
		if len(r) > cols {
			cols = len(r)
		}
	}
	if cols == 0 {
		return &Box{Kind: BoxBlock, Node: table, Style: styles[table], X: x, Y: y, W: w}
	}

	minWidths := make([]float64, cols)
	for _, r := range rows {
		for i, cell := range r {
			content := TextContent(cell)
			mw := textWidth(content, 16)
			if mw > minWidths[i] {
				minWidths[i] = mw
			}
		}
	}
	var totalMin float64
	for _, mw := range minWidths {
		totalMin += mw
	}
	colWidths := make([]float64, cols)
	if totalMin < w && totalMin > 0 {
		extra := (w - totalMin) / float64(cols)
		for i := range colWidths {
			colWidths[i] = minWidths[i] + extra
		}
	} else if totalMin == 0 {
		for i := range colWidths {
			colWidths[i] = w / float64(cols)
		}
	} else {
		copy(colWidths, minWidths)
	}

	tableBox := &Box{Kind: BoxBlock, Node: table, Style: styles[table], X: x, Y: y, W: w}
	rowY := y
	for _, r := range rows {
		rowBox := &Box{Kind: BoxTableRow, X: x, Y: rowY, W: w}
		cellX := x
		rowH := 0.0
		for i, cell := range r {
			cw := colWidths[i]
			cellStyle := styles[cell]
			cellBox := &Box{Kind: BoxTableCell, Node: cell, Style: cellStyle, X: cellX, Y: rowY, W: cw}
			innerH := layoutChildren(cell, styles, &layoutContext{}, cellX+cellStyle.PaddingL, rowY+cellStyle.PaddingT, cw-cellStyle.PaddingL-cellStyle.PaddingR, &cellBox.Children)
			cellBox.H = innerH + cellStyle.PaddingT + cellStyle.PaddingB
			if cellBox.H > rowH {
				rowH = cellBox.H
			}
			rowBox.Children = append(rowBox.Children, cellBox)
			cellX += cw
		}
		rowBox.H = rowH
		tableBox.Children = append(tableBox.Children, rowBox)
		rowY += rowH
	}
	tableBox.H = rowY - y
	return tableBox
}
