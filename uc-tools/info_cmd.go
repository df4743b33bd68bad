package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/npillmayer/keylayout/ucquery"
	"github.com/thatisuday/commando"
)

func runInfoCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	l := mustLoadLayout(flags)
	writeInfo(os.Stdout, l)
	if mustFlagBool(flags["errors"], "errors") {
		for _, e := range l.Errors() {
			fmt.Printf("error: %s\n", e.Error())
		}
		for _, w := range l.Warnings() {
			fmt.Printf("warning: %s\n", w.String())
		}
	}
}

func writeInfo(w io.Writer, l loadedLayout) {
	fmt.Fprintf(w, "Path: %s\n", l.path)
	fmt.Fprintf(w, "Size: %s\n", humanize.IBytes(uint64(l.size)))
	fmt.Fprintf(w, "Format: %#04x version %d\n", l.Header.Format, l.Header.DataVersion)
	fmt.Fprintf(w, "Key tables (%d):\n", len(l.KeyTables))
	for i, kt := range l.KeyTables {
		mark := " "
		if i == l.Selected {
			mark = "*"
		}
		fmt.Fprintf(w, "%s %2d %s\n", mark, i, kt)
	}
	fmt.Fprintf(w, "Keyboard type: %d\n", l.KbdType)
	fmt.Fprintf(w, "Keycodes: %d\n", l.KeycodeCount())
	fmt.Fprintf(w, "Modifiers:")
	for _, mod := range l.ModifierCombos() {
		fmt.Fprintf(w, " %d=%q", mod, ucquery.ModifierString(mod))
	}
	fmt.Fprintln(w)
	chars, composites := 0, 0
	for _, chords := range l.Chars() {
		chars++
		if len(chords) == 2 {
			composites++
		}
	}
	fmt.Fprintf(w, "Characters: %d (%d by dead keys)\n", chars, composites)
	fmt.Fprintf(w, "Issues: errors=%d warnings=%d\n", len(l.Errors()), len(l.Warnings()))
}
