package commands

import "github.com/oasis-os/oasis/pkg/terminal"

func registerAudioCmds(r *terminal.Registry, deps *Deps) {
	r.Register(terminal.Command{Name: "play", Category: terminal.CategoryAudio, Usage: "play [path|pause|resume|stop|next|prev]",
		Description: "control the audio manager's playlist", Run: cmdPlay(deps)})
	r.Register(terminal.Command{Name: "nowplaying", Category: terminal.CategoryAudio, Usage: "nowplaying",
		Description: "show the current track and position", Run: cmdNowPlaying(deps)})
}

func cmdPlay(deps *Deps) func(*terminal.InvocationContext) terminal.CommandOutput {
	return func(ctx *terminal.InvocationContext) terminal.CommandOutput {
		if deps == nil || deps.PlayAudio == nil {
			return unsupported("play")
		}
		return deps.PlayAudio(ctx.Args)
	}
}

func cmdNowPlaying(deps *Deps) func(*terminal.InvocationContext) terminal.CommandOutput {
	return func(ctx *terminal.InvocationContext) terminal.CommandOutput {
		if deps == nil || deps.AudioStatus == nil {
			return unsupported("nowplaying")
		}
		status, err := deps.AudioStatus()
		if err != nil {
			return terminal.FromError(err)
		}
		return terminal.Text(status)
	}
}
