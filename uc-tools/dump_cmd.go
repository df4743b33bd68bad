package main

import (
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/keylayout/uc"
	"github.com/npillmayer/keylayout/ucquery"
	"github.com/thatisuday/commando"
)

func runDumpCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	l := mustLoadLayout(flags)
	from := mustFlagInt(flags["from"], "from")
	to := mustFlagInt(flags["to"], "to")
	if to < 0 || to >= l.KeycodeCount() {
		to = l.KeycodeCount() - 1
	}
	if from < 0 || from > to {
		fatalf("invalid keycode range %d–%d", from, to)
	}
	writeDump(os.Stdout, l.Layout, from, to)
	if mustFlagBool(flags["composites"], "composites") {
		fmt.Println()
		writeComposites(os.Stdout, l.Layout)
	}
}

// writeDump writes a header line, a separator and one row per keycode.
func writeDump(w io.Writer, l *uc.Layout, from, to int) {
	header := ucquery.FormatRow(ucquery.ModifierHeader(l))
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, ucquery.HeaderRule(header))
	for k := from; k <= to; k++ {
		fmt.Fprintln(w, ucquery.FormatRow(ucquery.KeycodeRow(l, uint16(k))))
	}
}

func writeComposites(w io.Writer, l *uc.Layout) {
	for cc, ch := range l.Composites() {
		fmt.Fprintf(w, "%s %s + %s %s\t→ %s\n",
			cc.Dead, ucquery.ChordLabel(l, cc.Dead),
			cc.Base, ucquery.ChordLabel(l, cc.Base),
			ucquery.Printify(ch))
	}
}
