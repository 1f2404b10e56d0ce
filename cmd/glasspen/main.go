package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/example/glasspen/internal/config"
	"github.com/example/glasspen/internal/notify"
)

var (
	version            = "dev"
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs       *flag.FlagSet
	program  string
	notifier *notify.Notifier
	config   *config.Config

	hotkey          string
	modeFlag        string
	themeName       string
	saveDir         string
	modeAlerts      bool
	clearAlerts     bool
	screenshotAlert bool
	toolAlerts      bool
}

func newRoot() *root {
	prefs := notify.LoadPreferences()
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("glasspen", flag.ExitOnError),
		program:  "glasspen",
		notifier: notify.New(prefs),
		config:   cfg,
	}
	r.fs.StringVar(&r.hotkey, "hotkey", "", "key combination that toggles drawing mode (default from config)")
	r.fs.StringVar(&r.modeFlag, "mode", "", "hotkey behavior: lock (toggle) or hold")
	r.fs.StringVar(&r.themeName, "theme", "", "overlay color theme")
	r.fs.StringVar(&r.saveDir, "save-dir", "", "directory screenshots are saved into")
	r.fs.BoolVar(&r.modeAlerts, "notify-mode", cfg.Notify.Mode, "show a desktop notification when drawing mode toggles")
	r.fs.BoolVar(&r.clearAlerts, "notify-clear", cfg.Notify.Clear, "show a desktop notification when annotations are cleared")
	r.fs.BoolVar(&r.screenshotAlert, "notify-screenshot", cfg.Notify.Screenshot, "show a desktop notification after saving a screenshot")
	r.fs.BoolVar(&r.toolAlerts, "notify-tool", cfg.Notify.Tool, "show a desktop notification when the drawing tool changes")
	r.fs.Usage = func() { fmt.Fprint(os.Stderr, rootUsage(r)) }
	return r
}

// applyFlags folds command-line overrides into the loaded configuration.
// Precedence: CLI > config file > defaults.
func (r *root) applyFlags() error {
	if r.hotkey != "" {
		r.config.Hotkey = r.hotkey
	}
	switch r.modeFlag {
	case "":
	case "lock":
		r.config.Lock = true
	case "hold":
		r.config.Lock = false
	default:
		return fmt.Errorf("invalid -mode %q (want lock or hold)", r.modeFlag)
	}
	if r.themeName != "" {
		r.config.Theme = r.themeName
	}
	if r.saveDir != "" {
		r.config.SaveDir = r.saveDir
	}
	r.config.Notify.Mode = r.modeAlerts
	r.config.Notify.Clear = r.clearAlerts
	r.config.Notify.Screenshot = r.screenshotAlert
	r.config.Notify.Tool = r.toolAlerts

	r.notifier.Enable(notify.EventMode, r.config.Notify.Mode)
	r.notifier.Enable(notify.EventClear, r.config.Notify.Clear)
	r.notifier.Enable(notify.EventScreenshot, r.config.Notify.Screenshot)
	r.notifier.Enable(notify.EventTool, r.config.Notify.Tool)
	return nil
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if err := r.applyFlags(); err != nil {
		return err
	}

	// No subcommand starts the overlay.
	if r.fs.NArg() < 1 {
		return (&runCmd{root: r}).Run()
	}

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "run":
		cmd, err = parseRunCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "colors":
		cmd, err = parseColorsCmd(subArgs, r)
	case "widths":
		cmd, err = parseWidthsCmd(subArgs, r)
	case "keys":
		cmd, err = parseKeysCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{usage: rootUsage(r)}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
		} else {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
