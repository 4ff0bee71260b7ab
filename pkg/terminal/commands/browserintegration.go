package commands

import (
	oerrors "github.com/oasis-os/oasis/pkg/errors"
	"github.com/oasis-os/oasis/pkg/terminal"
)

func registerBrowserCmds(r *terminal.Registry, deps *Deps) {
	r.Register(terminal.Command{Name: "browse", Category: terminal.CategoryBrowser, Usage: "browse <url>",
		Description: "load a page or gemini capsule into the browser pipeline", Run: cmdBrowse(deps)})
	r.Register(terminal.Command{Name: "bookmark", Category: terminal.CategoryBrowser, Usage: "bookmark [add|rm|list] [url]",
		Description: "manage saved bookmarks", Run: cmdBookmark(deps)})
	r.Register(terminal.Command{Name: "history", Category: terminal.CategoryBrowser, Usage: "history [back|forward|list]",
		Description: "navigate or list browse history", Run: cmdHistory(deps)})
	r.Register(terminal.Command{Name: "reader", Category: terminal.CategoryBrowser, Usage: "reader [on|off]",
		Description: "toggle reader-mode extraction for the current page", Run: cmdReader(deps)})
}

func cmdBrowse(deps *Deps) func(*terminal.InvocationContext) terminal.CommandOutput {
	return func(ctx *terminal.InvocationContext) terminal.CommandOutput {
		if deps == nil || deps.Browse == nil {
			return unsupported("browse")
		}
		if len(ctx.Args) != 1 {
			return terminal.ErrorOutput(oerrors.KindParse, "usage: browse <url>")
		}
		return deps.Browse(ctx.Args[0])
	}
}

func cmdBookmark(deps *Deps) func(*terminal.InvocationContext) terminal.CommandOutput {
	return func(ctx *terminal.InvocationContext) terminal.CommandOutput {
		if deps == nil || deps.Bookmark == nil {
			return unsupported("bookmark")
		}
		return deps.Bookmark(ctx.Args)
	}
}

func cmdHistory(deps *Deps) func(*terminal.InvocationContext) terminal.CommandOutput {
	return func(ctx *terminal.InvocationContext) terminal.CommandOutput {
		if deps == nil || deps.History == nil {
			return unsupported("history")
		}
		return deps.History(ctx.Args)
	}
}

func cmdReader(deps *Deps) func(*terminal.InvocationContext) terminal.CommandOutput {
	return func(ctx *terminal.InvocationContext) terminal.CommandOutput {
		if deps == nil || deps.Reader == nil {
			return unsupported("reader")
		}
		return deps.Reader(ctx.Args)
	}
}
