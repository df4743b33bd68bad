package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/keylayout/uc"
	"github.com/npillmayer/keylayout/ucquery"
	"github.com/pterm/pterm"
)

func charOp(intp *Intp, op *Op) (err error, stop bool) {
	keycode, err := op.intArg(0)
	if err != nil {
		return
	}
	mod := 0
	if _, ok := op.arg(1); ok {
		if mod, err = op.intArg(1); err != nil {
			return
		}
	}
	c := uc.Chord{Keycode: uint16(keycode), Modifiers: uc.ModifierCombo(mod)}
	s, err := intp.keymap.CharForKeycode(c.Keycode, c.Modifiers)
	if errors.Is(err, ucquery.ErrNotFound) {
		pterm.Printf("%s %s produces nothing\n", c, ucquery.ModifierString(c.Modifiers))
		return nil, false
	} else if err != nil {
		return
	}
	pterm.Printf("%s %s produces ‘%s’\n", c, ucquery.ChordLabel(intp.keymap.Current(), c), s)
	return nil, false
}

func keyOp(intp *Intp, op *Op) (err error, stop bool) {
	arg, ok := op.arg(0)
	if !ok {
		return errors.New("usage: key <character>"), false
	}
	ch, err := parseCharArg(arg)
	if err != nil {
		return
	}
	chords := intp.keymap.KeyCodeForChar(ch)
	if !ucquery.Found(chords) {
		pterm.Printf("No mapping on this layout for character ‘%s’\n", ucquery.Printify(ch))
		return nil, false
	}
	l := intp.keymap.Current()
	labels := make([]string, len(chords))
	for i, c := range chords {
		labels[i] = fmt.Sprintf("%s %s", c, ucquery.ChordLabel(l, c))
	}
	pterm.Printf("Character:\t%s\nSequence:\t‘%s’\n", ucquery.Printify(ch), strings.Join(labels, "’, ‘"))
	return nil, false
}

func composeOp(intp *Intp, op *Op) (err error, stop bool) {
	var n [4]int
	for i := range n {
		if n[i], err = op.intArg(i); err != nil {
			return errors.New("usage: compose <dead keycode> <dead mods> <base keycode> <base mods>"), false
		}
	}
	dead := uc.Chord{Keycode: uint16(n[0]), Modifiers: uc.ModifierCombo(n[1])}
	base := uc.Chord{Keycode: uint16(n[2]), Modifiers: uc.ModifierCombo(n[3])}
	l := intp.keymap.Current()
	s, err := ucquery.CharForComposite(l, dead, base)
	if errors.Is(err, ucquery.ErrNotFound) {
		pterm.Printf("%s then %s composes nothing\n", ucquery.ChordLabel(l, dead), ucquery.ChordLabel(l, base))
		return nil, false
	}
	pterm.Printf("%s then %s composes ‘%s’\n", ucquery.ChordLabel(l, dead), ucquery.ChordLabel(l, base), s)
	return nil, false
}

// parseCharArg accepts a character either literally or as a code point
// "U+00E9".
func parseCharArg(arg string) (string, error) {
	if len(arg) > 2 && strings.EqualFold(arg[:2], "U+") {
		cp, err := strconv.ParseUint(arg[2:], 16, 32)
		if err != nil || !utf8.ValidRune(rune(cp)) {
			return "", fmt.Errorf("not a valid code point: %s", arg)
		}
		return string(rune(cp)), nil
	}
	if arg == "" {
		return "", errors.New("empty character")
	}
	return arg, nil
}
