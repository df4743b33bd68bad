package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/keylayout/uc"
	"github.com/npillmayer/keylayout/ucquery"
	"github.com/thatisuday/commando"
	"golang.org/x/text/unicode/norm"
)

func runCharCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	l := mustLoadLayout(flags)
	keycode, err := strconv.ParseUint(strings.TrimSpace(args["keycode"].Value), 10, 16)
	if err != nil {
		fatalf("invalid keycode: %v", err)
	}
	mod, err := strconv.Atoi(strings.TrimSpace(args["mods"].Value))
	if err != nil || mod < 0 {
		fatalf("invalid modifier combination: %s", args["mods"].Value)
	}
	s, err := ucquery.CharForKeycode(l.Layout, uint16(keycode), uc.ModifierCombo(mod))
	if errors.Is(err, ucquery.ErrNotFound) {
		fatalf("chord (%d,%d) is not mapped", keycode, mod)
	}
	fmt.Println(s)
}

func runKeyCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	l := mustLoadLayout(flags)
	text := args["text"].Value
	if text == "" {
		fatalf("text is required")
	}
	writeKeys(os.Stdout, l.Layout, text)
}

// writeKeys writes the chord sequence for text if the layout maps it as a
// whole (a ligature, for example), otherwise for every character of text.
func writeKeys(w io.Writer, l *uc.Layout, text string) {
	if chords := ucquery.KeyCodeForChar(l, text); ucquery.Found(chords) {
		writeSequence(w, l, text, chords)
		return
	}
	var unmapped []string
	for _, r := range norm.NFC.String(text) {
		ch := string(r)
		chords := ucquery.KeyCodeForChar(l, ch)
		if !ucquery.Found(chords) {
			unmapped = append(unmapped, ucquery.Printify(ch))
			continue
		}
		writeSequence(w, l, ch, chords)
	}
	if len(unmapped) > 0 {
		fmt.Fprintf(w, "No mapping on this layout for characters: ‘%s’\n", strings.Join(unmapped, "’, ‘"))
	}
}

func writeSequence(w io.Writer, l *uc.Layout, ch string, chords []uc.Chord) {
	labels := make([]string, len(chords))
	for i, c := range chords {
		labels[i] = ucquery.ChordLabel(l, c)
	}
	fmt.Fprintf(w, "Character:\t%s\nChords:\t\t%v\nSequence:\t‘%s’\n\n",
		ucquery.Printify(ch), chords, strings.Join(labels, "’, ‘"))
}
