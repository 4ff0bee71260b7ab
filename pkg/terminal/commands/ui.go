package commands

import (
	"strconv"

	oerrors "github.com/oasis-os/oasis/pkg/errors"
	"github.com/oasis-os/oasis/pkg/terminal"
)

func registerUI(r *terminal.Registry, deps *Deps) {
	r.Register(terminal.Command{Name: "skin", Category: terminal.CategoryUI, Usage: "skin [list|<name>]",
		Description: "swap the active skin, or list the ones available", Run: cmdSkin(deps)})
	r.Register(terminal.Command{Name: "theme", Category: terminal.CategoryUI, Usage: "theme get <slot>",
		Description: "read a derived color slot from the active theme", Run: cmdTheme(deps)})
	r.Register(terminal.Command{Name: "wm", Category: terminal.CategoryUI, Usage: "wm <subcommand> [args...]",
		Description: "inspect or manipulate windows", Run: cmdWm(deps)})
	r.Register(terminal.Command{Name: "sdi", Category: terminal.CategoryUI, Usage: "sdi list",
		Description: "list live scene objects in z-order", Run: cmdSdi(deps)})
	r.Register(terminal.Command{Name: "screenshot", Category: terminal.CategoryUI, Usage: "screenshot",
		Description: "capture the current frame", Run: cmdScreenshot(deps)})
}

// cmdSkin dispatches to `skin list` or `skin <name>`; it returns an
// OutputSkinSwap, which refuses to pipe (spec §4.4 scenario D).
func cmdSkin(deps *Deps) func(*terminal.InvocationContext) terminal.CommandOutput {
	return func(ctx *terminal.InvocationContext) terminal.CommandOutput {
		if deps == nil || deps.SwapSkin == nil || deps.ListSkins == nil || deps.CurrentSkin == nil {
			return unsupported("skin")
		}
		if len(ctx.Args) == 0 {
			return terminal.Text(deps.CurrentSkin())
		}
		if ctx.Args[0] == "list" {
			return terminal.Text(deps.ListSkins()...)
		}
		name := ctx.Args[0]
		if err := deps.SwapSkin(name); err != nil {
			return terminal.FromError(err)
		}
		return terminal.CommandOutput{Kind: terminal.OutputSkinSwap, SkinName: name}
	}
}

func cmdTheme(deps *Deps) func(*terminal.InvocationContext) terminal.CommandOutput {
	return func(ctx *terminal.InvocationContext) terminal.CommandOutput {
		if deps == nil || deps.ThemeGet == nil {
			return unsupported("theme")
		}
		if len(ctx.Args) != 2 || ctx.Args[0] != "get" {
			return terminal.ErrorOutput(oerrors.KindParse, "usage: theme get <slot>")
		}
		val, err := deps.ThemeGet(ctx.Args[1])
		if err != nil {
			return terminal.FromError(err)
		}
		return terminal.Text(val)
	}
}

func cmdWm(deps *Deps) func(*terminal.InvocationContext) terminal.CommandOutput {
	return func(ctx *terminal.InvocationContext) terminal.CommandOutput {
		if deps == nil || deps.WmCommand == nil {
			return unsupported("wm")
		}
		return deps.WmCommand(ctx.Args)
	}
}

func cmdSdi(deps *Deps) func(*terminal.InvocationContext) terminal.CommandOutput {
	return func(ctx *terminal.InvocationContext) terminal.CommandOutput {
		if deps == nil || deps.Sdi == nil {
			return unsupported("sdi")
		}
		if len(ctx.Args) == 0 || ctx.Args[0] != "list" {
			return terminal.ErrorOutput(oerrors.KindParse, "usage: sdi list")
		}
		objs := deps.Sdi.IterInZOrder()
		rows := [][]string{{"name", "z", "x", "y", "w", "h", "visible"}}
		for _, o := range objs {
			rows = append(rows, []string{
				o.Name, strconv.FormatInt(o.Z, 10),
				formatF(o.X), formatF(o.Y), formatF(o.W), formatF(o.H),
				strconv.FormatBool(o.Visible),
			})
		}
		return terminal.Table(rows)
	}
}

func cmdScreenshot(deps *Deps) func(*terminal.InvocationContext) terminal.CommandOutput {
	return func(ctx *terminal.InvocationContext) terminal.CommandOutput {
		if deps == nil || deps.Screenshot == nil {
			return unsupported("screenshot")
		}
		data, err := deps.Screenshot()
		if err != nil {
			return terminal.FromError(err)
		}
		return terminal.CommandOutput{Kind: terminal.OutputScreenshot, Screenshot: data}
	}
}

func formatF(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
