package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/example/glasspen/internal/config"
	"github.com/example/glasspen/internal/history"
	"github.com/example/glasspen/internal/hook"
	"github.com/example/glasspen/internal/hotkey"
	"github.com/example/glasspen/internal/keys"
	"github.com/example/glasspen/internal/mode"
	"github.com/example/glasspen/internal/overlay"
	"github.com/example/glasspen/internal/theme"
)

type runCmd struct {
	*root
	fs *flag.FlagSet
}

func parseRunCmd(args []string, r *root) (*runCmd, error) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	cmd := &runCmd{root: r, fs: fs}
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, subUsage("glasspen run", "Start the hotkey listener and the drawing overlay.", fs))
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{usage: subUsage("glasspen run", "Start the hotkey listener and the drawing overlay.", fs)}
	}
	return cmd, nil
}

func (c *runCmd) Run() error {
	combo, err := keys.ParseCombination(c.config.Hotkey)
	if err != nil {
		return fmt.Errorf("hotkey: %w", err)
	}

	// Themes defined inline in the config win; otherwise try the theme
	// directories. A theme that fails to load falls back to the default.
	if name := c.config.Theme; name != "" {
		if _, ok := c.config.Themes[name]; !ok {
			if t, loadErr := theme.NewLoader().Load(name); loadErr == nil {
				c.config.Themes[name] = t
			} else {
				fmt.Fprintf(os.Stderr, "warning: failed to load theme %q: %v. using default.\n", name, loadErr)
			}
		}
	}

	store := config.NewStore(c.config)
	hist := history.New()
	ov := overlay.New(store, hist, c.notifier)

	ctrl := mode.NewController(ov, store.Lock)

	detector := hotkey.New(
		func() {
			if err := ctrl.Enable(); err != nil {
				log.Printf("enable drawing mode: %v", err)
				ctrl.EmergencyReset()
			}
		},
		ctrl.Disable,
		ctrl.ForceDisable,
	)
	detector.Configure(combo)

	// While drawing mode is active the hotkey keys and escape are swallowed
	// on platforms whose source can do that, so the keystrokes never reach
	// the application under the overlay.
	var drawing atomic.Bool
	src := hook.NewSource(func(code keys.Code) bool {
		if !drawing.Load() {
			return false
		}
		return code == keys.CodeEscape || detector.Combination().Contains(code)
	})
	hk := hook.New(src, func(ev hook.Event) { detector.HandleKey(ev.Code, ev.Down) })

	ctrl.OnStateChanged(func(s mode.State) {
		active := s != mode.Inactive
		drawing.Store(active)
		hk.SetSuppressed(active)
		c.notifier.Mode(active)
	})

	if err := hk.Start(); err != nil {
		if errors.Is(err, hook.ErrUnsupported) {
			return err
		}
		return fmt.Errorf("install keyboard hook: %w", err)
	}
	defer hk.Dispose()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigc
		log.Printf("shutting down")
		ctrl.EmergencyReset()
		ov.Close()
	}()

	log.Printf("glasspen ready: press %s to draw", combo)
	ov.Run()
	return nil
}
