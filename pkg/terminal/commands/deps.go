// Package commands is the bundled core command set dispatched by
// pkg/terminal's registry (spec §4.4). Commands that need a
// subsystem outside the interpreter (skin engine, window manager,
// backend traits, browser session) reach it through Deps function
// hooks rather than importing those packages directly, so the
// interpreter stays decoupled from any one wiring of the runtime.
package commands

import (
	oerrors "github.com/oasis-os/oasis/pkg/errors"
	"github.com/oasis-os/oasis/pkg/platform"
	"github.com/oasis-os/oasis/pkg/sdi"
	"github.com/oasis-os/oasis/pkg/terminal"
)

// Deps carries every cross-subsystem hook the bundled commands need.
// A coordinator wires these to its live skin engine, window manager,
// backend, and browser session; nil hooks degrade gracefully to an
// Unsupported error output rather than a panic.
type Deps struct {
	Sdi      *sdi.Registry
	Platform func() *platform.Services

	SwapSkin    func(name string) error
	CurrentSkin func() string
	ListSkins   func() []string
	ThemeGet    func(slot string) (string, error)
	Screenshot  func() ([]byte, error)

	WmCommand func(args []string) terminal.CommandOutput

	Ping     func(host string) (string, error)
	HTTPGet  func(url string) (string, error)
	WifiInfo func() (string, error)

	Browse   func(url string) terminal.CommandOutput
	Bookmark func(args []string) terminal.CommandOutput
	History  func(args []string) terminal.CommandOutput
	Reader   func(args []string) terminal.CommandOutput

	RunScript func(path string) terminal.CommandOutput
	Cron      func(args []string) terminal.CommandOutput
	Startup   func(args []string) terminal.CommandOutput

	PlayAudio   func(args []string) terminal.CommandOutput
	AudioStatus func() (string, error)
}

// RegisterAll registers every bundled command (spec §4.4's full
// command set) against r, wiring cross-subsystem commands to deps.
// Pass a zero-value &Deps{} when running the interpreter headless
// (e.g. in tests) — every hook degrades to Unsupported rather than
// panicking.
func RegisterAll(r *terminal.Registry, deps *Deps) {
	registerFilesystem(r)
	registerText(r)
	registerSystem(r, deps)
	registerConfigCmds(r)
	registerDeveloper(r)
	registerUI(r, deps)
	registerNetwork(r, deps)
	registerBrowserCmds(r, deps)
	registerScripting(r, deps)
	registerAudioCmds(r, deps)
	registerFunAndSecurity(r)
}

func unsupported(what string) terminal.CommandOutput {
	return terminal.ErrorOutput(oerrors.KindUnsupported, what+" has no backend wired in this session")
}
