// Package metrics exposes the Prometheus counters the coordinator
// and subsystems record against, under the "oasis" namespace.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FramesRendered = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "oasis",
		Name:      "frames_rendered_total",
		Help:      "Number of frames flushed to the rendering backend.",
	})
	CommandsDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "oasis",
		Name:      "commands_dispatched_total",
		Help:      "Terminal commands dispatched, labeled by exit status.",
	}, []string{"status"})
	SkinSwaps = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "oasis",
		Name:      "skin_swaps_total",
		Help:      "Number of successful skin hot-swaps.",
	})
	VfsErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "oasis",
		Name:      "vfs_errors_total",
		Help:      "VFS operation failures, labeled by error kind.",
	}, []string{"kind"})
	RemoteAuthFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "oasis",
		Name:      "remote_auth_failures_total",
		Help:      "PSK authentication failures on the remote terminal listener.",
	})
)

// RecordCommand records a dispatch outcome ("ok" or "error").
func RecordCommand(ok bool) {
	if ok {
		CommandsDispatched.WithLabelValues("ok").Inc()
	} else {
		CommandsDispatched.WithLabelValues("error").Inc()
	}
}

// RecordVfsError records a VFS failure by error kind string.
func RecordVfsError(kind string) {
	VfsErrors.WithLabelValues(kind).Inc()
}
