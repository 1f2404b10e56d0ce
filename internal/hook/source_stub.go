//go:build !linux && !windows

package hook

import "github.com/example/glasspen/internal/keys"

type stubSource struct{}

// NewSource returns a backend that fails to install on platforms without
// keyboard capture support.
func NewSource(swallow func(keys.Code) bool) Source {
	return stubSource{}
}

func (stubSource) Install(cb func(Event)) error { return ErrUnsupported }

func (stubSource) Uninstall() error { return nil }
