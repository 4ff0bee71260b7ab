// Package platform implements OASIS platform services (spec §2 L1):
// time, power/battery status, USB connection state, network status,
// and an on-screen keyboard request surface. Every query here is a
// cheap, synchronous snapshot read — the handheld target polls these
// each frame from cheap syscalls, the desktop target stubs them, so
// the contract is deliberately a plain struct getter, not a trait.
package platform

import "time"

// PowerSource distinguishes the handheld's battery/AC states.
type PowerSource int

const (
	PowerBattery PowerSource = iota
	PowerCharging
	PowerAC
)

// PowerStatus is a point-in-time battery snapshot.
type PowerStatus struct {
	Source         PowerSource
	BatteryPercent int
}

// USBStatus reports whether a USB host/device link is active, the
// handheld target's primary file-transfer path.
type USBStatus struct {
	Connected bool
}

// NetworkStatus reports link-layer connectivity independent of any
// particular socket (spec §4.4 `wifi` command surfaces this).
type NetworkStatus struct {
	Connected bool
	SSID      string
	SignalPct int
}

// Clock provides the current time; abstracted so tests can inject a
// fixed clock instead of depending on wall time.
type Clock func() time.Time

// Services bundles the platform queries the coordinator and terminal
// `status`/`uptime`/`wifi`/`date` commands read from. A host wires
// PowerFn/USBFn/NetworkFn to real syscalls; the defaults below are
// the desktop-target stand-ins (AC power at 100%, and zero-value USB
// and network status).
type Services struct {
	Clock     Clock
	PowerFn   func() PowerStatus
	USBFn     func() USBStatus
	NetworkFn func() NetworkStatus

	bootTime time.Time
	oskOpen  bool
}

// NewServices creates a Services bundle stamped with the current
// wall-clock boot time.
func NewServices() *Services {
	s := &Services{
		Clock:     time.Now,
		PowerFn:   func() PowerStatus { return PowerStatus{Source: PowerAC, BatteryPercent: 100} },
		USBFn:     func() USBStatus { return USBStatus{} },
		NetworkFn: func() NetworkStatus { return NetworkStatus{} },
	}
	s.bootTime = time.Now()
	return s
}

// Now returns the current time via the injected Clock.
func (s *Services) Now() time.Time { return s.Clock() }

// Uptime reports elapsed time since boot.
func (s *Services) Uptime() time.Duration { return s.Clock().Sub(s.bootTime) }

// Power, USB, and Network proxy to the injected query functions.
func (s *Services) Power() PowerStatus     { return s.PowerFn() }
func (s *Services) USB() USBStatus         { return s.USBFn() }
func (s *Services) Network() NetworkStatus { return s.NetworkFn() }

// ShowKeyboard/HideKeyboard set and clear the on-screen-keyboard flag
// that KeyboardVisible reports.
func (s *Services) ShowKeyboard()         { s.oskOpen = true }
func (s *Services) HideKeyboard()         { s.oskOpen = false }
func (s *Services) KeyboardVisible() bool { return s.oskOpen }
