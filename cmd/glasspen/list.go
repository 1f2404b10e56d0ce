package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/example/glasspen/internal/keys"
	"github.com/example/glasspen/internal/surface"
)

type colorsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseColorsCmd(args []string, r *root) (*colorsCmd, error) {
	fs := flag.NewFlagSet("colors", flag.ExitOnError)
	cmd := &colorsCmd{root: r, fs: fs}
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, subUsage("glasspen colors", "List the drawing palette (keys 1-9 while drawing).", fs))
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{usage: subUsage("glasspen colors", "List the drawing palette (keys 1-9 while drawing).", fs)}
	}
	return cmd, nil
}

func (c *colorsCmd) Run() error {
	palette := surface.PaletteColors()
	if len(palette) == 0 {
		fmt.Fprintln(os.Stdout, "no colors available")
		return nil
	}
	fmt.Fprintln(os.Stdout, "drawing palette (* marks the configured color):")
	for idx, entry := range palette {
		marker := " "
		if strings.EqualFold(entry.Name, c.config.Drawing.Color) {
			marker = "*"
		}
		name := entry.Name
		hex := fmt.Sprintf("#%02X%02X%02X", entry.Color.R, entry.Color.G, entry.Color.B)
		if name == "" {
			name = hex
		}
		block := fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", entry.Color.R, entry.Color.G, entry.Color.B)
		fmt.Fprintf(os.Stdout, "%s %2d: %-12s %s %s\n", marker, idx+1, name, hex, block)
	}
	return nil
}

type widthsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseWidthsCmd(args []string, r *root) (*widthsCmd, error) {
	fs := flag.NewFlagSet("widths", flag.ExitOnError)
	cmd := &widthsCmd{root: r, fs: fs}
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, subUsage("glasspen widths", "List the stroke width options (+/- while drawing).", fs))
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{usage: subUsage("glasspen widths", "List the stroke width options (+/- while drawing).", fs)}
	}
	return cmd, nil
}

func (c *widthsCmd) Run() error {
	widths := surface.WidthOptions()
	if len(widths) == 0 {
		fmt.Fprintln(os.Stdout, "no widths available")
		return nil
	}
	fmt.Fprintln(os.Stdout, "stroke widths (* marks the configured thickness):")
	for _, width := range widths {
		marker := " "
		if width == c.config.Drawing.Thickness {
			marker = "*"
		}
		fmt.Fprintf(os.Stdout, "%s %3dpx\n", marker, width)
	}
	return nil
}

type keysCmd struct {
	*root
	fs *flag.FlagSet
}

func parseKeysCmd(args []string, r *root) (*keysCmd, error) {
	fs := flag.NewFlagSet("keys", flag.ExitOnError)
	cmd := &keysCmd{root: r, fs: fs}
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, subUsage("glasspen keys", "List key names accepted in hotkey combinations.", fs))
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{usage: subUsage("glasspen keys", "List key names accepted in hotkey combinations.", fs)}
	}
	return cmd, nil
}

func (c *keysCmd) Run() error {
	fmt.Fprintln(os.Stdout, "key names for hotkey combinations (join with +, e.g. ctrl+shift+d):")
	for _, name := range keys.Names() {
		fmt.Fprintf(os.Stdout, "  %s\n", name)
	}
	return nil
}
