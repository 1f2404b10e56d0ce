//go:build !linux && !freebsd && !openbsd && !netbsd && !dragonfly

package capture

import (
	"fmt"
	"image"
	"runtime"
)

func grabScreen() (*image.RGBA, error) {
	return nil, fmt.Errorf("screen capture not supported on %s", runtime.GOOS)
}

// ListMonitors is unavailable without an X11 session.
func ListMonitors() ([]MonitorInfo, error) {
	return nil, fmt.Errorf("monitor enumeration not supported on %s", runtime.GOOS)
}
