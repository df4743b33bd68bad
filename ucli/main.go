package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/npillmayer/keylayout"
	"github.com/npillmayer/keylayout/internal/config"
	"github.com/npillmayer/keylayout/internal/layoutload"
	"github.com/npillmayer/keylayout/uc"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'keylayout'
func tracer() tracing.Trace {
	return tracing.Select("keylayout")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":       "go",
		"trace.keylayout":       "Info",
		"trace.keylayout.uc":    "Info",
		"trace.keylayout.query": "Info",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// settings from config files, overridden by command line flags
	cfg, err := config.Load()
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(2)
	}
	flag.StringVar(&cfg.Trace, "trace", cfg.Trace, "Trace level [Debug|Info|Error]")
	flag.StringVar(&cfg.Layout, "layout", cfg.Layout, "Keyboard layout ('uchr' resource) to load")
	flag.IntVar(&cfg.KbdType, "kbd", cfg.KbdType, "Keyboard type")
	flag.StringVar(&cfg.ByteOrder, "order", cfg.ByteOrder, "Byte order of layout data [native|little|big]")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError)               // will set the correct level later
	pterm.Info.Println("Welcome to the keyboard layout CLI") // colored welcome message
	//
	// set up REPL
	repl, err := readline.New("kl > ")
	if err != nil {
		tracer().Errorf("%v", err)
		os.Exit(3)
	}
	opts, err := cfg.ParseOptions()
	if err != nil {
		tracer().Errorf("%v", err)
		os.Exit(4)
	}
	intp := &Intp{repl: repl, opts: opts}
	//
	// load layout to use
	if cfg.Layout != "" {
		if err := intp.loadLayout(cfg.Layout, uint32(cfg.KbdType)); err != nil {
			tracer().Errorf("%v", err)
			os.Exit(4)
		}
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	level, err := cfg.TraceLevel()
	if err != nil {
		tracer().Errorf("%v", err)
		os.Exit(5)
	}
	for _, key := range []string{"keylayout", "keylayout.uc", "keylayout.query"} {
		tracing.Select(key).SetTraceLevel(level)
	}
	tracer().Infof("Trace level is %s", cfg.Trace)
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	keymap keylayout.Keymap
	source layoutload.File
	opts   []uc.ParseOption
	repl   *readline.Instance
}

func (intp *Intp) String() string {
	l := intp.keymap.Current()
	if l == nil {
		return "( no layout )"
	}
	return fmt.Sprintf("( %s kbd=%d table=#%d )", intp.source.Path, l.KbdType, l.Selected)
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := parseCommand(line)
		if err != nil {
			tracer().Errorf("%v", err)
			continue
		}
		err, quit := intp.execute(cmd)
		if err != nil {
			tracer().Errorf("%v", err)
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Op is a single command with its arguments.
type Op struct {
	code int
	args []string
}

const (
	QUIT int = iota
	HELP
	LOAD
	DUMP
	CHAR
	KEY
	COMPOSE
	MODS
	INFO
	ERRORS
)

var opMap = map[string]int{
	"quit":    QUIT,
	"help":    HELP,
	"load":    LOAD,
	"dump":    DUMP,
	"table":   DUMP,
	"char":    CHAR,
	"key":     KEY,
	"compose": COMPOSE,
	"mods":    MODS,
	"info":    INFO,
	"errors":  ERRORS,
}

var opNames = []string{
	"quit",
	"help",
	"load",
	"dump",
	"char",
	"key",
	"compose",
	"mods",
	"info",
	"errors",
}

// parseCommand splits a command line into words, honoring shell quoting, so
// that characters like a space may be given as `key " "`.
func parseCommand(line string) (*Op, error) {
	words, err := shellquote.Split(line)
	if err != nil {
		return nil, fmt.Errorf("cannot parse command: %w", err)
	}
	if len(words) == 0 {
		return nil, errors.New("empty command")
	}
	code, ok := opMap[strings.ToLower(words[0])]
	if !ok {
		pterm.Error.Printf("unknown command: %s\n", words[0])
		code = HELP
		words = words[:1]
	}
	op := &Op{code: code, args: words[1:]}
	tracer().Debugf("%s %v", opNames[op.code], op.args)
	return op, nil
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:    quitOp,
	HELP:    helpOp,
	LOAD:    loadOp,
	DUMP:    dumpOp,
	CHAR:    charOp,
	KEY:     keyOp,
	COMPOSE: composeOp,
	MODS:    modsOp,
	INFO:    infoOp,
	ERRORS:  errorsOp,
}

func (intp *Intp) execute(op *Op) (err error, stop bool) {
	f, ok := commandFn[op.code]
	if !ok {
		pterm.Error.Printf("unknown command code: %d\n", op.code)
		return nil, false
	}
	if op.code > LOAD && intp.keymap.Current() == nil {
		return keylayout.ErrNoLayout, false
	}
	return f(intp, op)
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	pterm.Println("Goodbye!")
	return nil, true
}

func loadOp(intp *Intp, op *Op) (error, bool) {
	path, ok := op.arg(0)
	if !ok {
		path = intp.source.Path
	}
	if path == "" {
		return errors.New("usage: load <file> [<keyboard type>]"), false
	}
	kbdType := intp.source.KbdType
	if _, ok := op.arg(1); ok {
		n, err := op.intArg(1)
		if err != nil {
			return err, false
		}
		kbdType = uint32(n)
	}
	return intp.loadLayout(path, kbdType), false
}

// --- Layout Loading ---------------------------------------------------

// loadLayout loads a layout resource from a file. If anything goes wrong,
// the layout loaded before stays in use.
func (intp *Intp) loadLayout(path string, kbdType uint32) error {
	src := layoutload.File{Path: path, KbdType: kbdType}
	if err := intp.keymap.Reload(src, intp.opts...); err != nil {
		return fmt.Errorf("cannot load layout %s: %w", path, err)
	}
	intp.source = src
	l := intp.keymap.Current()
	pterm.Printf("layout has %d key tables, using #%d (%s)\n", len(l.KeyTables), l.Selected, l.KeyTable())
	if n := len(l.Errors()) + len(l.Warnings()); n > 0 {
		pterm.Warning.Printf("%d records could not be decoded, see 'errors'\n", n)
	}
	return nil
}

// ----------------------------------------------------------------------

func (op *Op) arg(inx int) (string, bool) {
	if len(op.args) > inx {
		return op.args[inx], true
	}
	return "", false
}

func (op *Op) intArg(inx int) (int, error) {
	s, ok := op.arg(inx)
	if !ok {
		return 0, fmt.Errorf("%s: missing argument #%d", opNames[op.code], inx+1)
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s: argument not a non-negative number: %v", opNames[op.code], s)
	}
	return n, nil
}
