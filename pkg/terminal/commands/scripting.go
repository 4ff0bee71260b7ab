package commands

import (
	oerrors "github.com/oasis-os/oasis/pkg/errors"
	"github.com/oasis-os/oasis/pkg/terminal"
)

func registerScripting(r *terminal.Registry, deps *Deps) {
	r.Register(terminal.Command{Name: "run", Category: terminal.CategoryScripting, Usage: "run <path>",
		Description: "execute a script file line by line", Run: cmdRun(deps)})
	r.Register(terminal.Command{Name: "cron", Category: terminal.CategoryScripting, Usage: "cron [list|add|rm] ...",
		Description: "manage periodic scheduled commands", Run: cmdCron(deps)})
	r.Register(terminal.Command{Name: "startup", Category: terminal.CategoryScripting, Usage: "startup [list|add|rm] ...",
		Description: "manage commands run once at boot", Run: cmdStartup(deps)})
}

func cmdRun(deps *Deps) func(*terminal.InvocationContext) terminal.CommandOutput {
	return func(ctx *terminal.InvocationContext) terminal.CommandOutput {
		if deps == nil || deps.RunScript == nil {
			return unsupported("run")
		}
		if len(ctx.Args) != 1 {
			return terminal.ErrorOutput(oerrors.KindParse, "usage: run <path>")
		}
		return deps.RunScript(ctx.Args[0])
	}
}

func cmdCron(deps *Deps) func(*terminal.InvocationContext) terminal.CommandOutput {
	return func(ctx *terminal.InvocationContext) terminal.CommandOutput {
		if deps == nil || deps.Cron == nil {
			return unsupported("cron")
		}
		return deps.Cron(ctx.Args)
	}
}

func cmdStartup(deps *Deps) func(*terminal.InvocationContext) terminal.CommandOutput {
	return func(ctx *terminal.InvocationContext) terminal.CommandOutput {
		if deps == nil || deps.Startup == nil {
			return unsupported("startup")
		}
		return deps.Startup(ctx.Args)
	}
}
