//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"errors"
	"image"
	"strings"
	"testing"
)

func TestRunningOnWayland(t *testing.T) {
	t.Setenv("XDG_SESSION_TYPE", "wayland")
	t.Setenv("WAYLAND_DISPLAY", "")
	if !runningOnWayland() {
		t.Fatalf("expected wayland session when XDG_SESSION_TYPE=wayland")
	}

	t.Setenv("XDG_SESSION_TYPE", "x11")
	t.Setenv("WAYLAND_DISPLAY", "wayland-0")
	if !runningOnWayland() {
		t.Fatalf("expected wayland session when WAYLAND_DISPLAY is set")
	}

	t.Setenv("XDG_SESSION_TYPE", "x11")
	t.Setenv("WAYLAND_DISPLAY", "")
	if runningOnWayland() {
		t.Fatalf("did not expect wayland session when indicators are absent")
	}
}

func TestGrabScreenFallsBackToPortal(t *testing.T) {
	t.Setenv("XDG_SESSION_TYPE", "x11")
	t.Setenv("WAYLAND_DISPLAY", "")

	prevRoot := rootScreenshotFn
	prevPortal := portalScreenshotFn
	t.Cleanup(func() {
		rootScreenshotFn = prevRoot
		portalScreenshotFn = prevPortal
	})

	rootScreenshotFn = func() (*image.RGBA, error) {
		return nil, errors.New("connect X server: no display")
	}

	called := false
	want := image.NewRGBA(image.Rect(0, 0, 1, 1))
	portalScreenshotFn = func(interactive bool) (*image.RGBA, error) {
		called = true
		if interactive {
			t.Errorf("fallback capture should not be interactive")
		}
		return want, nil
	}

	got, err := grabScreen()
	if err != nil {
		t.Fatalf("grabScreen returned error: %v", err)
	}
	if !called {
		t.Fatalf("expected portal fallback to be used")
	}
	if got != want {
		t.Fatalf("expected portal result, got %#v", got)
	}
}

func TestGrabScreenReportsBothFailures(t *testing.T) {
	t.Setenv("XDG_SESSION_TYPE", "x11")
	t.Setenv("WAYLAND_DISPLAY", "")

	prevRoot := rootScreenshotFn
	prevPortal := portalScreenshotFn
	t.Cleanup(func() {
		rootScreenshotFn = prevRoot
		portalScreenshotFn = prevPortal
	})

	rootScreenshotFn = func() (*image.RGBA, error) {
		return nil, errors.New("connect X server: no display")
	}
	portalErr := errors.New("portal unavailable")
	portalScreenshotFn = func(bool) (*image.RGBA, error) {
		return nil, portalErr
	}

	_, err := grabScreen()
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, portalErr) {
		t.Fatalf("expected wrapped portal error, got %v", err)
	}
	if !strings.Contains(err.Error(), "no display") {
		t.Fatalf("expected root capture context, got %v", err)
	}
}

func TestGrabScreenPrefersPortalOnWayland(t *testing.T) {
	t.Setenv("XDG_SESSION_TYPE", "wayland")

	prevRoot := rootScreenshotFn
	prevPortal := portalScreenshotFn
	t.Cleanup(func() {
		rootScreenshotFn = prevRoot
		portalScreenshotFn = prevPortal
	})

	rootScreenshotFn = func() (*image.RGBA, error) {
		t.Errorf("root capture should not run under wayland")
		return nil, errors.New("unexpected")
	}
	want := image.NewRGBA(image.Rect(0, 0, 1, 1))
	portalScreenshotFn = func(bool) (*image.RGBA, error) {
		return want, nil
	}

	got, err := grabScreen()
	if err != nil {
		t.Fatalf("grabScreen returned error: %v", err)
	}
	if got != want {
		t.Fatalf("expected portal result, got %#v", got)
	}
}

func TestPortalHandleToken(t *testing.T) {
	token := portalHandleToken()
	if !strings.HasPrefix(token, "glasspen-") {
		t.Fatalf("unexpected handle token %q", token)
	}
	if token == portalHandleToken() {
		t.Fatalf("expected unique handle tokens")
	}
}
