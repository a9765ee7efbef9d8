package clifun

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/clifun/interpret"
)

// renderUsage writes the usage report: an optional description, the
// invocation pattern, and one line per leaf input. Styling goes through
// termenv and degrades to plain text when w is not a terminal.
func renderUsage(w io.Writer, program, description string, leaves []LeafInput) {
	out := termenv.NewOutput(w)
	if description != "" {
		fmt.Fprintf(w, "%s\n\n", description)
	}
	fmt.Fprintf(w, "Usage: %s [config_file] [--key value]...\n", program)
	for _, leaf := range leaves {
		fmt.Fprintln(w, describeLeaf(out, leaf))
	}
}

func describeLeaf(out *termenv.Output, leaf LeafInput) string {
	var b strings.Builder
	b.WriteString(" ")
	b.WriteString(out.String("--" + leaf.PrefixedName()).Bold().String())
	b.WriteString(": ")
	b.WriteString(out.String(interpret.TypeName(leaf.Type)).Faint().String())
	if leaf.HasDefault {
		b.WriteString(" (default: ")
		b.WriteString(defaultRepr(leaf))
		b.WriteString(")")
	}
	return b.String()
}

// defaultRepr quotes string defaults, leaves everything else raw.
func defaultRepr(leaf LeafInput) string {
	if interpret.Unwrap(leaf.Type).Kind() == reflect.String {
		return fmt.Sprintf("%q", leaf.Default)
	}
	return leaf.Default
}

// Usage returns the plain-text usage report for a set of leaf inputs.
func Usage(program string, leaves []LeafInput) string {
	var b strings.Builder
	renderUsage(&b, program, "", leaves)
	return b.String()
}
