// Command oasis boots the OASIS runtime headless: it assembles the
// coordinator against the configured backends, runs the frame loop on
// a fixed tick, and optionally serves the remote terminal protocol.
// Grounded on the teacher's cmd/buckley/main.go startup shape (flag
// parsing, config load, signal-driven shutdown).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oasis-os/oasis/pkg/backend"
	"github.com/oasis-os/oasis/pkg/config"
	"github.com/oasis-os/oasis/pkg/coordinator"
	"github.com/oasis-os/oasis/pkg/logging"
	"github.com/oasis-os/oasis/pkg/netbackend"
	"github.com/oasis-os/oasis/pkg/netbackend/wsbackend"
	"github.com/oasis-os/oasis/pkg/terminal"
	"github.com/oasis-os/oasis/pkg/tracing"
	"github.com/oasis-os/oasis/pkg/vfs"
	"github.com/oasis-os/oasis/pkg/vfs/hostdir"
)

const frameInterval = time.Second / 60

func main() {
	configPath := flag.String("config", "", "path to an OASIS config YAML file")
	vfsRoot := flag.String("vfs-root", "", "host directory to back the VFS (defaults to an in-memory tree)")
	user := flag.String("user", "guest", "session user name")
	flag.Parse()

	log := logging.Default()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "oasis: %v\n", err)
		os.Exit(1)
	}

	provider, err := tracing.NewProvider("oasis")
	if err != nil {
		fmt.Fprintf(os.Stderr, "oasis: tracing init failed: %v\n", err)
		os.Exit(1)
	}
	defer provider.Shutdown(context.Background())

	root := *vfsRoot
	if root == "" {
		root = cfg.Vfs.RootDir
	}
	fs, err := rootVfs(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "oasis: %v\n", err)
		os.Exit(1)
	}

	net := backend.Network(wsbackend.Network{})

	coord := coordinator.New(coordinator.Config{
		ScreenWidth:  cfg.Screen.Width,
		ScreenHeight: cfg.Screen.Height,
		User:         *user,
		Home:         "/home",
		SkinDirs:     cfg.Skin.SearchDirs,
		DefaultSkin:  cfg.Skin.Default,
	}, fs, backend.NewNullRendering(), backend.NewNullInput(), net, backend.NewNullAudio())

	if cfg.Remote.Enabled {
		if err := serveRemote(coord, cfg, net, log); err != nil {
			fmt.Fprintf(os.Stderr, "oasis: remote terminal failed to start: %v\n", err)
			os.Exit(1)
		}
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	log.Info(logging.CategoryCoordinator, "oasis runtime started", map[string]any{
		"user": *user, "screen_w": cfg.Screen.Width, "screen_h": cfg.Screen.Height,
	})

	for {
		select {
		case <-sig:
			log.Info(logging.CategoryCoordinator, "oasis runtime stopping", nil)
			return
		case <-ticker.C:
			if err := coord.Tick(frameInterval); err != nil {
				log.Error(logging.CategoryCoordinator, "tick failed", map[string]any{"error": err.Error()})
			}
		}
	}
}

func rootVfs(hostDir string) (vfs.Vfs, error) {
	if hostDir == "" {
		return vfs.NewMemory(), nil
	}
	return hostdir.New(hostDir)
}

// serveRemote starts the PSK-authenticated remote terminal listener
// (spec §4.7); each accepted connection gets its own environment, and
// all sessions share the coordinator's interpreter (and so its
// registry and VFS).
func serveRemote(coord *coordinator.Coordinator, cfg *config.Config, net backend.Network, log *logging.Logger) error {
	limits := netbackend.Limits{
		MaxConnections: cfg.Remote.MaxConnections,
		IdleTimeout:    time.Duration(cfg.Remote.IdleTimeoutSec) * time.Second,
	}
	srv := netbackend.NewServer([]byte(cfg.Remote.Psk), func() (*terminal.Interpreter, *terminal.Environment) {
		env := terminal.NewEnvironment("/home/remote", "remote", "/home")
		return coord.Interp, env
	}, limits)
	listener, err := net.Listen(fmt.Sprintf(":%d", cfg.Remote.Port))
	if err != nil {
		return err
	}
	go func() {
		if err := srv.Serve(listener); err != nil {
			log.Error(logging.CategoryNetwork, "remote terminal listener stopped", map[string]any{"error": err.Error()})
		}
	}()
	log.Info(logging.CategoryNetwork, "remote terminal listening", map[string]any{"port": cfg.Remote.Port})
	return nil
}
