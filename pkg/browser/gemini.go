package browser

import (
	"strings"

	"github.com/oasis-os/oasis/pkg/colorx"
)

// GeminiLineKind tags one parsed gemtext line (spec §4.6 "Gemini").
type GeminiLineKind int

const (
	GeminiText GeminiLineKind = iota
	GeminiHeading1
	GeminiHeading2
	GeminiHeading3
	GeminiLink
	GeminiListItem
	GeminiQuote
	GeminiPreformatted
)

// GeminiLine is one parsed gemtext line.
type GeminiLine struct {
	Kind GeminiLineKind
	Text string
	URL  string // GeminiLink only
}

// ParseGemini tokenizes gemtext per the line-oriented grammar: `#`/`##`/
// `###` headings, `=>` link lines, `*` list items, `>` quotes, and
// ```-delimited preformatted blocks that suspend all other parsing
// until the closing fence.
func ParseGemini(src string) []GeminiLine {
	var lines []GeminiLine
	inPre := false
	src = strings.TrimSuffix(src, "\n")
	for _, raw := range strings.Split(src, "\n") {
		if strings.HasPrefix(raw, "```") {
			inPre = !inPre
			continue
		}
		if inPre {
			lines = append(lines, GeminiLine{Kind: GeminiPreformatted, Text: raw})
			continue
		}
		switch {
		case strings.HasPrefix(raw, "### "):
			lines = append(lines, GeminiLine{Kind: GeminiHeading3, Text: strings.TrimPrefix(raw, "### ")})
		case strings.HasPrefix(raw, "## "):
			lines = append(lines, GeminiLine{Kind: GeminiHeading2, Text: strings.TrimPrefix(raw, "## ")})
		case strings.HasPrefix(raw, "# "):
			lines = append(lines, GeminiLine{Kind: GeminiHeading1, Text: strings.TrimPrefix(raw, "# ")})
		case strings.HasPrefix(raw, "=>"):
			rest := strings.TrimSpace(strings.TrimPrefix(raw, "=>"))
			parts := strings.Fields(rest)
			url := ""
			label := rest
			if len(parts) > 0 {
				url = parts[0]
				label = strings.TrimSpace(strings.TrimPrefix(rest, url))
				if label == "" {
					label = url
				}
			}
			lines = append(lines, GeminiLine{Kind: GeminiLink, Text: label, URL: url})
		case strings.HasPrefix(raw, "* "):
			lines = append(lines, GeminiLine{Kind: GeminiListItem, Text: strings.TrimPrefix(raw, "* ")})
		case strings.HasPrefix(raw, "> "):
			lines = append(lines, GeminiLine{Kind: GeminiQuote, Text: strings.TrimPrefix(raw, "> ")})
		default:
			lines = append(lines, GeminiLine{Kind: GeminiText, Text: raw})
		}
	}
	return lines
}

// PaintGemini renders parsed gemtext into the same flat paint-command
// stream HTML rendering produces (spec §4.6), so the coordinator's
// browser view has a single paint consumer regardless of scheme.
func PaintGemini(lines []GeminiLine, viewportW float64, textColor, linkColor, headingColor colorx.Color) []PaintCommand {
	var cmds []PaintCommand
	y := 4.0
	const lineHeight = 20.0
	for _, l := range lines {
		fontSize := 14.0
		color := textColor
		prefix := ""
		switch l.Kind {
		case GeminiHeading1:
			fontSize, color = 24, headingColor
		case GeminiHeading2:
			fontSize, color = 20, headingColor
		case GeminiHeading3:
			fontSize, color = 17, headingColor
		case GeminiLink:
			color, prefix = linkColor, "→ "
		case GeminiListItem:
			prefix = "• "
		case GeminiQuote:
			prefix = "| "
		case GeminiPreformatted:
			fontSize = 13
		}
		cmds = append(cmds, PaintCommand{Op: PaintDrawText, X: 4, Y: y, Text: prefix + l.Text, FontSize: fontSize, Color: color})
		y += lineHeight * (fontSize / 14)
	}
	return cmds
}
