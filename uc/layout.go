package uc

import (
	"fmt"
	"iter"
	"slices"
)

// Fixed key positions of the Return and Tab keys. The layout data does not
// expose them.
const (
	KeycodeReturn uint16 = 36
	KeycodeTab    uint16 = 48
)

// Chord is a keycode struck together with a combination of modifier keys.
type Chord struct {
	Keycode   uint16
	Modifiers ModifierCombo
}

func (c Chord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Keycode, c.Modifiers)
}

// CompositeChord is a two-stroke dead key sequence: first the dead key,
// then the base key.
type CompositeChord struct {
	Dead Chord
	Base Chord
}

func (cc CompositeChord) String() string {
	return fmt.Sprintf("%s%s", cc.Dead, cc.Base)
}

// Layout is a decoded keyboard layout. It is immutable after Parse returns
// and may be shared between goroutines.
type Layout struct {
	Header    Header
	KeyTables []KeyTableInfo // all key table infos of the resource
	Selected  int            // index of the key table info in use
	KbdType   uint32         // keyboard type the layout has been decoded for

	forward   map[string][]Chord
	chars     []string // keys of forward, in registration order
	reverse   map[Chord]string
	composite map[CompositeChord]string
	combos    []ModifierCombo
	keycodes  int
	errors    []LayoutError
	warnings  []LayoutWarning
}

// KeyTable returns the key table info the layout has been decoded from.
func (l *Layout) KeyTable() KeyTableInfo {
	return l.KeyTables[l.Selected]
}

// Chords returns the chord sequence which produces character ch: one chord
// for plain characters, two for dead key compositions.
func (l *Layout) Chords(ch string) ([]Chord, bool) {
	chords, ok := l.forward[ch]
	if !ok {
		return nil, false
	}
	return slices.Clone(chords), true
}

// Char returns the text a chord maps to. This may be a placeholder for
// chords which do not produce a character by themselves: "MD", "<N>",
// "dk <base>" or "DK#<state>".
func (l *Layout) Char(c Chord) (string, bool) {
	s, ok := l.reverse[c]
	return s, ok
}

// Composite returns the character a dead key composition produces.
func (l *Layout) Composite(cc CompositeChord) (string, bool) {
	s, ok := l.composite[cc]
	return s, ok
}

// Chars iterates over all characters of the layout together with their
// chord sequences, in the order they were found.
func (l *Layout) Chars() iter.Seq2[string, []Chord] {
	return func(yield func(string, []Chord) bool) {
		for _, ch := range l.chars {
			if !yield(ch, slices.Clone(l.forward[ch])) {
				return
			}
		}
	}
}

// Reverse iterates over all single chords and the text they map to, ordered
// by modifier combination, then keycode.
func (l *Layout) Reverse() iter.Seq2[Chord, string] {
	chords := make([]Chord, 0, len(l.reverse))
	for c := range l.reverse {
		chords = append(chords, c)
	}
	slices.SortFunc(chords, compareChords)
	return func(yield func(Chord, string) bool) {
		for _, c := range chords {
			if !yield(c, l.reverse[c]) {
				return
			}
		}
	}
}

// Composites iterates over all dead key compositions, ordered by dead key
// chord, then base chord.
func (l *Layout) Composites() iter.Seq2[CompositeChord, string] {
	ccs := make([]CompositeChord, 0, len(l.composite))
	for cc := range l.composite {
		ccs = append(ccs, cc)
	}
	slices.SortFunc(ccs, func(a, b CompositeChord) int {
		if c := compareChords(a.Dead, b.Dead); c != 0 {
			return c
		}
		return compareChords(a.Base, b.Base)
	})
	return func(yield func(CompositeChord, string) bool) {
		for _, cc := range ccs {
			if !yield(cc, l.composite[cc]) {
				return
			}
		}
	}
}

func compareChords(a, b Chord) int {
	if a.Modifiers != b.Modifiers {
		return int(a.Modifiers) - int(b.Modifiers)
	}
	return int(a.Keycode) - int(b.Keycode)
}

// ModifierCombos returns the distinct modifier combinations of the layout's
// character tables, in ascending order.
func (l *Layout) ModifierCombos() []ModifierCombo {
	return slices.Clone(l.combos)
}

// KeycodeCount returns the number of keycodes per character table.
func (l *Layout) KeycodeCount() int {
	return l.keycodes
}

// Errors returns the non-critical errors found while decoding the layout.
func (l *Layout) Errors() []LayoutError {
	return slices.Clone(l.errors)
}

// Warnings returns the warnings found while decoding the layout.
func (l *Layout) Warnings() []LayoutWarning {
	return slices.Clone(l.warnings)
}
