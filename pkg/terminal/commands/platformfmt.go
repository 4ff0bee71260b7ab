package commands

import (
	"fmt"

	"github.com/oasis-os/oasis/pkg/platform"
)

func powerSourceName(s platform.PowerSource) string {
	switch s {
	case platform.PowerCharging:
		return "charging"
	case platform.PowerAC:
		return "ac"
	default:
		return "battery"
	}
}

func networkSummary(n platform.NetworkStatus) string {
	if !n.Connected {
		return "disconnected"
	}
	return fmt.Sprintf("%s (%d%%)", n.SSID, n.SignalPct)
}

func usbSummary(u platform.USBStatus) string {
	if u.Connected {
		return "connected"
	}
	return "disconnected"
}
