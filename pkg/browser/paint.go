package browser

import "github.com/oasis-os/oasis/pkg/colorx"

// PaintOp tags a paint command variant (spec §4.6 stage 4).
type PaintOp int

const (
	PaintFillRect PaintOp = iota
	PaintDrawText
	PaintBlit
	PaintDrawBorder
)

// PaintCommand is one flattened draw instruction the coordinator
// forwards to the Rendering backend trait.
type PaintCommand struct {
	Op          PaintOp
	X, Y, W, H  float64
	Color       colorx.Color
	Text        string
	FontSize    float64
	TexturePath string // for PaintBlit; resolved to a backend.TextureHandle by the caller
}

// Paint walks the box tree and emits a flat draw-command list (spec
// §4.6 stage 4): a background fill and border per box that has one,
// then a DrawText per text run, in document order — which is also
// paint order, since the curated subset has no z-index.
func Paint(box *Box) []PaintCommand {
	var cmds []PaintCommand
	paintBox(box, &cmds)
	return cmds
}

func paintBox(b *Box, cmds *[]PaintCommand) {
	switch b.Kind {
	case BoxText:
		*cmds = append(*cmds, PaintCommand{
			Op: PaintDrawText, X: b.X, Y: b.Y, Text: b.Text,
			FontSize: b.Style.FontSize, Color: b.Style.Color,
		})
		return
	case BoxBlock, BoxTableCell, BoxFloat:
		if b.Style.Background != (colorx.Color{}) {
			*cmds = append(*cmds, PaintCommand{Op: PaintFillRect, X: b.X, Y: b.Y, W: b.W, H: b.H, Color: b.Style.Background})
		}
		if b.Style.BorderW > 0 {
			*cmds = append(*cmds, PaintCommand{Op: PaintDrawBorder, X: b.X, Y: b.Y, W: b.W, H: b.H, Color: b.Style.BorderColor})
		}
		if tag := imgSrc(b); tag != "" {
			*cmds = append(*cmds, PaintCommand{Op: PaintBlit, X: b.X, Y: b.Y, W: b.W, H: b.H, TexturePath: tag})
		}
	}
	for _, c := range b.Children {
		paintBox(c, cmds)
	}
}

func imgSrc(b *Box) string {
	if b.Node == nil || b.Node.Data != "img" {
		return ""
	}
	if v, ok := Attr(b.Node, "src"); ok {
		return v
	}
	return ""
}
