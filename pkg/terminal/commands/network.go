package commands

import (
	oerrors "github.com/oasis-os/oasis/pkg/errors"
	"github.com/oasis-os/oasis/pkg/terminal"
)

func registerNetwork(r *terminal.Registry, deps *Deps) {
	r.Register(terminal.Command{Name: "wifi", Category: terminal.CategoryNetwork, Usage: "wifi",
		Description: "show the current wifi association", Run: cmdWifi(deps)})
	r.Register(terminal.Command{Name: "ping", Category: terminal.CategoryNetwork, Usage: "ping <host>",
		Description: "probe reachability of a host", Run: cmdPing(deps)})
	r.Register(terminal.Command{Name: "http", Category: terminal.CategoryNetwork, Usage: "http get <url>",
		Description: "issue a raw HTTP GET and print the body", Run: cmdHTTP(deps)})
}

func cmdWifi(deps *Deps) func(*terminal.InvocationContext) terminal.CommandOutput {
	return func(ctx *terminal.InvocationContext) terminal.CommandOutput {
		if deps == nil || deps.WifiInfo == nil {
			return unsupported("wifi")
		}
		info, err := deps.WifiInfo()
		if err != nil {
			return terminal.FromError(err)
		}
		return terminal.Text(info)
	}
}

func cmdPing(deps *Deps) func(*terminal.InvocationContext) terminal.CommandOutput {
	return func(ctx *terminal.InvocationContext) terminal.CommandOutput {
		if deps == nil || deps.Ping == nil {
			return unsupported("ping")
		}
		if len(ctx.Args) != 1 {
			return terminal.ErrorOutput(oerrors.KindParse, "usage: ping <host>")
		}
		out, err := deps.Ping(ctx.Args[0])
		if err != nil {
			return terminal.FromError(err)
		}
		return terminal.Text(out)
	}
}

func cmdHTTP(deps *Deps) func(*terminal.InvocationContext) terminal.CommandOutput {
	return func(ctx *terminal.InvocationContext) terminal.CommandOutput {
		if deps == nil || deps.HTTPGet == nil {
			return unsupported("http")
		}
		if len(ctx.Args) != 2 || ctx.Args[0] != "get" {
			return terminal.ErrorOutput(oerrors.KindParse, "usage: http get <url>")
		}
		body, err := deps.HTTPGet(ctx.Args[1])
		if err != nil {
			return terminal.FromError(err)
		}
		return terminal.Text(body)
	}
}
