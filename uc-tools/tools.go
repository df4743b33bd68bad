package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/keylayout/internal/config"
	"github.com/npillmayer/keylayout/internal/layoutload"
	"github.com/npillmayer/keylayout/uc"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/thatisuday/commando"
)

// unset marks string flags without a value.
const unset = "-"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fatalf("%v", err)
	}
	setupTracing(cfg)
	layoutDefault := unset
	if cfg.Layout != "" {
		layoutDefault = cfg.Layout
	}

	commando.
		SetExecutableName("uc-tools").
		SetVersion("v0.1.0").
		SetDescription("CLI for decoding and querying macOS keyboard layouts ('uchr' resources).")

	commando.
		Register(nil).
		AddFlag("verbose,V", "display additional output", commando.Bool, nil)

	commando.
		Register("dump").
		SetDescription("Print the text every keycode produces with every modifier combination.").
		SetShortDescription("dump keycode table").
		AddFlag("layout,l", "keyboard layout resource file", commando.String, layoutDefault).
		AddFlag("kbd,k", "keyboard type", commando.Int, cfg.KbdType).
		AddFlag("order,o", "byte order of layout data: native|little|big", commando.String, cfg.ByteOrder).
		AddFlag("from", "first keycode", commando.Int, 0).
		AddFlag("to", "last keycode (-1 for all)", commando.Int, -1).
		AddFlag("composites,c", "also print dead key compositions", commando.Bool, nil).
		SetAction(runDumpCommand)

	commando.
		Register("char").
		SetDescription("Print the character a keycode produces together with modifier keys.").
		SetShortDescription("keycode to character").
		AddArgument("keycode", "keycode", "").
		AddArgument("mods", "modifier combination (e.g. 2 for ⇧, 8 for ⌥)", "0").
		AddFlag("layout,l", "keyboard layout resource file", commando.String, layoutDefault).
		AddFlag("kbd,k", "keyboard type", commando.Int, cfg.KbdType).
		AddFlag("order,o", "byte order of layout data: native|little|big", commando.String, cfg.ByteOrder).
		SetAction(runCharCommand)

	commando.
		Register("key").
		SetDescription("Print the chords producing each character of a text.").
		SetShortDescription("character to chords").
		AddArgument("text", "characters to look up", "").
		AddFlag("layout,l", "keyboard layout resource file", commando.String, layoutDefault).
		AddFlag("kbd,k", "keyboard type", commando.Int, cfg.KbdType).
		AddFlag("order,o", "byte order of layout data: native|little|big", commando.String, cfg.ByteOrder).
		SetAction(runKeyCommand)

	commando.
		Register("info").
		SetDescription("Print key tables and decoding diagnostics of a keyboard layout.").
		SetShortDescription("layout diagnostics").
		AddFlag("layout,l", "keyboard layout resource file", commando.String, layoutDefault).
		AddFlag("kbd,k", "keyboard type", commando.Int, cfg.KbdType).
		AddFlag("order,o", "byte order of layout data: native|little|big", commando.String, cfg.ByteOrder).
		AddFlag("errors,e", "print decoding errors and warnings", commando.Bool, nil).
		SetAction(runInfoCommand)

	commando.
		Register("export").
		SetDescription("Export the mappings of a keyboard layout as JSON.").
		SetShortDescription("export as JSON").
		AddFlag("layout,l", "keyboard layout resource file", commando.String, layoutDefault).
		AddFlag("kbd,k", "keyboard type", commando.Int, cfg.KbdType).
		AddFlag("order,o", "byte order of layout data: native|little|big", commando.String, cfg.ByteOrder).
		AddFlag("output,O", "output file (- for stdout)", commando.String, unset).
		SetAction(runExportCommand)

	commando.Parse(nil)
}

func setupTracing(cfg *config.Config) {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":       "go",
		"trace.keylayout":       cfg.Trace,
		"trace.keylayout.uc":    cfg.Trace,
		"trace.keylayout.query": cfg.Trace,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fatalf("error configuring tracing: %v", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
}

// loadedLayout is a decoded layout together with the file it came from.
type loadedLayout struct {
	*uc.Layout
	path string
	size int
}

func mustLoadLayout(flags map[string]commando.FlagValue) loadedLayout {
	path := mustFlagString(flags["layout"], "layout")
	if path == unset || strings.TrimSpace(path) == "" {
		fatalf("layout file is required (--layout or 'layout' in config)")
	}
	kbdType := mustFlagInt(flags["kbd"], "kbd")
	if kbdType < 0 {
		fatalf("--kbd must be >= 0")
	}
	order := config.Config{ByteOrder: mustFlagString(flags["order"], "order")}
	opts, err := order.ParseOptions()
	if err != nil {
		fatalf("%v", err)
	}
	data, _, err := layoutload.File{Path: path}.LayoutData()
	if err != nil {
		fatalf("%v", err)
	}
	l, err := uc.Parse(data, uint32(kbdType), opts...)
	if err != nil {
		fatalf("cannot decode layout %s: %v", path, err)
	}
	return loadedLayout{Layout: l, path: path, size: len(data)}
}

func mustFlagInt(flag commando.FlagValue, name string) int {
	n, err := flag.GetInt()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return n
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func mustFlagString(flag commando.FlagValue, name string) string {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return s
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "uc-tools: "+format+"\n", args...)
	os.Exit(1)
}
