package main

import (
	"os"

	"github.com/npillmayer/keylayout/ucquery"
	"github.com/thatisuday/commando"
)

func runExportCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	l := mustLoadLayout(flags)
	js, err := ucquery.ExportJSON(l.Layout)
	if err != nil {
		fatalf("export failed: %v", err)
	}
	js = append(js, '\n')
	out := mustFlagString(flags["output"], "output")
	if out == unset {
		_, _ = os.Stdout.Write(js)
		return
	}
	if err := os.WriteFile(out, js, 0o644); err != nil {
		fatalf("cannot write %s: %v", out, err)
	}
}
