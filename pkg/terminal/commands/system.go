package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/oasis-os/oasis/pkg/terminal"
	"github.com/oasis-os/oasis/pkg/vfs"
)

func registerSystem(r *terminal.Registry, deps *Deps) {
	r.Register(terminal.Command{Name: "status", Category: terminal.CategorySystem, Usage: "status",
		Description: "show battery, network, and USB status", Run: cmdStatus(deps)})
	r.Register(terminal.Command{Name: "uptime", Category: terminal.CategorySystem, Usage: "uptime",
		Description: "show time since boot", Run: cmdUptime(deps)})
	r.Register(terminal.Command{Name: "df", Category: terminal.CategorySystem, Usage: "df",
		Description: "show VFS capacity usage", Run: cmdDf})
	r.Register(terminal.Command{Name: "date", Category: terminal.CategorySystem, Usage: "date",
		Description: "print the current date and time", Run: cmdDate(deps)})
	r.Register(terminal.Command{Name: "sleep", Category: terminal.CategorySystem, Usage: "sleep <seconds>",
		Description: "yield to the frame loop and resume on a later frame", Run: cmdSleep})
}

func cmdStatus(deps *Deps) func(*terminal.InvocationContext) terminal.CommandOutput {
	return func(ctx *terminal.InvocationContext) terminal.CommandOutput {
		if deps == nil || deps.Platform == nil {
			return unsupported("status")
		}
		p := deps.Platform()
		power := p.Power()
		net := p.Network()
		usb := p.USB()
		lines := []string{
			fmt.Sprintf("battery: %d%% (%s)", power.BatteryPercent, powerSourceName(power.Source)),
			fmt.Sprintf("network: %s", networkSummary(net)),
			fmt.Sprintf("usb: %s", usbSummary(usb)),
			fmt.Sprintf("uptime: %s", p.Uptime().Round(time.Second)),
		}
		return terminal.Text(lines...)
	}
}

func cmdUptime(deps *Deps) func(*terminal.InvocationContext) terminal.CommandOutput {
	return func(ctx *terminal.InvocationContext) terminal.CommandOutput {
		if deps == nil || deps.Platform == nil {
			return unsupported("uptime")
		}
		return terminal.Text(deps.Platform().Uptime().Round(time.Second).String())
	}
}

func cmdDf(ctx *terminal.InvocationContext) terminal.CommandOutput {
	var total uint64
	var count int
	var walk func(path string)
	walk = func(path string) {
		es, err := ctx.Vfs.List(path)
		if err != nil {
			return
		}
		for _, e := range es {
			count++
			total += e.Size
			if e.Kind == vfs.EntryDirectory {
				walk(joinPath(path, e.Name))
			}
		}
	}
	walk("/")
	return terminal.Table([][]string{
		{"filesystem", "files", "bytes"},
		{"/", strconv.Itoa(count), strconv.FormatUint(total, 10)},
	})
}

func joinPath(dir, name string) string {
	if dir == "/" {
		return "/" + name
	}
	return dir + "/" + name
}

func cmdDate(deps *Deps) func(*terminal.InvocationContext) terminal.CommandOutput {
	return func(ctx *terminal.InvocationContext) terminal.CommandOutput {
		now := time.Now()
		if deps != nil && deps.Platform != nil {
			now = deps.Platform().Now()
		}
		return terminal.Text(now.Format(time.RFC1123))
	}
}

func cmdSleep(ctx *terminal.InvocationContext) terminal.CommandOutput {
	secs := 0.0
	if len(ctx.Args) > 0 {
		if v, err := strconv.ParseFloat(ctx.Args[0], 64); err == nil {
			secs = v
		}
	}
	// Yields to the frame loop rather than blocking the dispatch call
	// (spec §5 suspension points); the coordinator's Tick resumes this
	// once PendingFor has elapsed.
	return terminal.Pending(time.Duration(secs*float64(time.Second)), func() terminal.CommandOutput {
		return terminal.Text(fmt.Sprintf("slept %.2fs", secs))
	})
}
