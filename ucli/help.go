package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	topic, _ := op.arg(0)
	help(topic)
	return nil, false
}

func help(topic string) {
	tracer().Debugf("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "mods", "modifiers", "modifier":
		pterm.Info.Println("Modifier combinations")
		pterm.Println(`
	Every character table of a layout belongs to one or more combinations
	of modifier keys. A combination is a small number whose bits denote
	the modifier keys pressed:
	+-----+---------+--------+
	| Bit | Value   | Key    |
	+-----+---------+--------+
	|  4  |   16    | ⌃      |
	|  3  |    8    | ⌥      |
	|  2  |    4    | ⇪      |
	|  1  |    2    | ⇧      |
	|  0  |    1    | ⌘      |
	+-----+---------+--------+
	Bits 4, 2 and 0 are unverified.
	`)
	case "dead", "deadkeys", "compose":
		pterm.Info.Println("Dead keys")
		pterm.Println(`
	A dead key produces no character by itself, but changes the character
	produced by the chord struck next. The dump shows dead keys as
	"dk <char>", where <char> is what the dead key produces if followed
	by space, or as "DK#<state>" if there is no such character.

	compose <dead keycode> <dead mods> <base keycode> <base mods>
	shows the character a dead key composition produces.
	`)
	case "dump", "table":
		pterm.Info.Println("Dump")
		pterm.Println(`
	dump [<from> [<to>]] prints the text every keycode produces with every
	modifier combination. Placeholders:
	+----------+--------------------------------------------+
	| MD       | more data follows (not decoded)            |
	| <N>      | raw value N could not be interpreted       |
	| dk <c>   | dead key, <c> if followed by space         |
	| DK#<n>   | dead key entering state <n>                |
	+----------+--------------------------------------------+
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	load <file> [<kbd type>]      load a raw 'uchr' layout resource
	dump [<from> [<to>]]          print keycode rows (alias: table)
	char <keycode> [<mods>]       character produced by a chord
	key <char>|U+<hex>            chords producing a character
	compose <dk> <dm> <bk> <bm>   character produced by a dead key composition
	mods                          modifier combinations of the layout
	info                          key tables and statistics
	errors                        records which could not be decoded
	help [mods|dead|dump]         this text, or help on a topic
	quit                          leave (or <ctrl>D)
	`)
	}
}
