package commands

import (
	"sort"
	"strings"

	oerrors "github.com/oasis-os/oasis/pkg/errors"
	"github.com/oasis-os/oasis/pkg/terminal"
)

func registerConfigCmds(r *terminal.Registry) {
	r.Register(terminal.Command{Name: "env", Category: terminal.CategoryConfig, Usage: "env",
		Description: "list environment variables", Run: cmdEnv})
	r.Register(terminal.Command{Name: "set", Category: terminal.CategoryConfig, Usage: "set NAME=VALUE",
		Description: "set a variable", Run: cmdSet})
	r.Register(terminal.Command{Name: "unset", Category: terminal.CategoryConfig, Usage: "unset NAME",
		Description: "remove a variable", Run: cmdUnset})
	r.Register(terminal.Command{Name: "alias", Category: terminal.CategoryConfig, Usage: "alias [NAME=VALUE]",
		Description: "define or list aliases", Run: cmdAlias})
	r.Register(terminal.Command{Name: "unalias", Category: terminal.CategoryConfig, Usage: "unalias NAME",
		Description: "remove an alias", Run: cmdUnalias})
}

func cmdEnv(ctx *terminal.InvocationContext) terminal.CommandOutput {
	names := make([]string, 0, len(ctx.Env.Vars))
	for k := range ctx.Env.Vars {
		names = append(names, k)
	}
	sort.Strings(names)
	lines := make([]string, 0, len(names))
	for _, k := range names {
		lines = append(lines, k+"="+ctx.Env.Vars[k])
	}
	return terminal.Text(lines...)
}

// cmdSet accepts either "set NAME=VALUE" (assignment) or reads a
// single value piped into stdin and assigns it to NAME — the latter
// form backs `expr ... | set VAR` in script control flow (spec §4.4
// scenario F).
func cmdSet(ctx *terminal.InvocationContext) terminal.CommandOutput {
	if len(ctx.Args) == 0 {
		return terminal.ErrorOutput(oerrors.KindParse, "usage: set NAME=VALUE or <pipe> | set NAME")
	}
	arg := ctx.Args[0]
	if idx := strings.IndexByte(arg, '='); idx >= 0 {
		ctx.Env.Vars[arg[:idx]] = arg[idx+1:]
		return terminal.CommandOutput{Kind: terminal.OutputText}
	}
	ctx.Env.Vars[arg] = strings.TrimSuffix(ctx.Stdin, "\n")
	return terminal.CommandOutput{Kind: terminal.OutputText}
}

func cmdUnset(ctx *terminal.InvocationContext) terminal.CommandOutput {
	if len(ctx.Args) == 0 {
		return terminal.ErrorOutput(oerrors.KindParse, "usage: unset NAME")
	}
	delete(ctx.Env.Vars, ctx.Args[0])
	return terminal.CommandOutput{Kind: terminal.OutputText}
}

func cmdAlias(ctx *terminal.InvocationContext) terminal.CommandOutput {
	if len(ctx.Args) == 0 {
		names := make([]string, 0, len(ctx.Env.Aliases))
		for k := range ctx.Env.Aliases {
			names = append(names, k)
		}
		sort.Strings(names)
		lines := make([]string, 0, len(names))
		for _, k := range names {
			lines = append(lines, k+"='"+ctx.Env.Aliases[k]+"'")
		}
		return terminal.Text(lines...)
	}
	arg := ctx.Args[0]
	idx := strings.IndexByte(arg, '=')
	if idx < 0 {
		return terminal.ErrorOutput(oerrors.KindParse, "usage: alias NAME=VALUE")
	}
	ctx.Env.Aliases[arg[:idx]] = arg[idx+1:]
	return terminal.CommandOutput{Kind: terminal.OutputText}
}

func cmdUnalias(ctx *terminal.InvocationContext) terminal.CommandOutput {
	if len(ctx.Args) == 0 {
		return terminal.ErrorOutput(oerrors.KindParse, "usage: unalias NAME")
	}
	delete(ctx.Env.Aliases, ctx.Args[0])
	return terminal.CommandOutput{Kind: terminal.OutputText}
}
