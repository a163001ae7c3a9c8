package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner writes the welcome banner to w.
func PrintBanner(w io.Writer, version string) {
	output := termenv.NewOutput(w)
	p := output.ColorProfile()
	// Warm gradient, one colour per line.
	lines := []struct{ text, color string }{
		{" _       _             _             ", "#fbbf24"},
		{"| |_ ___| |_ _ __ __ _| |_ ___  _ __ ", "#f59e0b"},
		{"| __/ _ \\ __| '__/ _` | __/ _ \\| '__|", "#f97316"},
		{"| ||  __/ |_| | | (_| | || (_) | |   ", "#ef4444"},
		{" \\__\\___|\\__|_|  \\__,_|\\__\\___/|_|   ", "#e11d48"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, output.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintf(w, "  v%s\n\n", strings.TrimSpace(version))
}
