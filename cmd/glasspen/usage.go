package main

import (
	"flag"
	"fmt"
	"strings"
)

// UsageError carries rendered usage text back to main, which prints it
// without a failure exit code.
type UsageError struct {
	usage string
}

func (e *UsageError) Error() string { return e.usage }

func rootUsage(r *root) string {
	var b strings.Builder
	b.WriteString("usage: glasspen [flags] [command]\n\n")
	b.WriteString("Draw on the screen from a global hotkey.\n\n")
	b.WriteString("commands:\n")
	b.WriteString("  run      start the hotkey listener and overlay (default)\n")
	b.WriteString("  config   print or save the configuration\n")
	b.WriteString("  colors   list the drawing palette\n")
	b.WriteString("  widths   list the stroke width options\n")
	b.WriteString("  keys     list key names accepted in hotkey combinations\n")
	b.WriteString("  version  print the version\n\n")
	b.WriteString("flags:\n")
	writeFlags(&b, r.fs)
	return b.String()
}

func subUsage(program, summary string, fs *flag.FlagSet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "usage: %s\n\n%s\n", program, summary)
	var n int
	fs.VisitAll(func(*flag.Flag) { n++ })
	if n > 0 {
		b.WriteString("\nflags:\n")
		writeFlags(&b, fs)
	}
	return b.String()
}

func writeFlags(b *strings.Builder, fs *flag.FlagSet) {
	fs.VisitAll(func(f *flag.Flag) {
		def := ""
		if f.DefValue != "" && f.DefValue != "false" {
			def = fmt.Sprintf(" (default %s)", f.DefValue)
		}
		fmt.Fprintf(b, "  -%s\n        %s%s\n", f.Name, f.Usage, def)
	})
}
