/*
Package ucquery answers questions about a decoded keyboard layout: which
chord(s) produce a character, and which character a chord produces.

Lookups never modify a layout, so any number of goroutines may query the
same layout concurrently.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ucquery

import (
	"errors"

	"github.com/npillmayer/keylayout/uc"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/unicode/norm"
)

// tracer writes to trace with key 'keylayout.query'
func tracer() tracing.Trace {
	return tracing.Select("keylayout.query")
}

// ErrNotFound is returned by CharForKeycode for chords the layout does not
// know about.
var ErrNotFound = errors.New("chord not found in keyboard layout")

// NoKeycode is the keycode of NoChord.
const NoKeycode uint16 = 0xFFFF

// NoChord is returned by KeyCodeForChar for characters which no chord of
// the layout produces.
var NoChord = uc.Chord{Keycode: NoKeycode}

// CharForKeycode returns the character a keycode produces together with a
// combination of modifiers. Non-printable results are escaped (see Printify).
func CharForKeycode(l *uc.Layout, keycode uint16, mod uc.ModifierCombo) (string, error) {
	if l == nil {
		return "", ErrNotFound
	}
	s, ok := l.Char(uc.Chord{Keycode: keycode, Modifiers: mod})
	if !ok {
		return "", ErrNotFound
	}
	return Printify(s), nil
}

// CharForComposite returns the character a dead key composition produces.
// Non-printable results are escaped (see Printify).
func CharForComposite(l *uc.Layout, dead, base uc.Chord) (string, error) {
	if l == nil {
		return "", ErrNotFound
	}
	s, ok := l.Composite(uc.CompositeChord{Dead: dead, Base: base})
	if !ok {
		return "", ErrNotFound
	}
	return Printify(s), nil
}

// KeyCodeForChar returns the chords to strike to produce character ch: one
// chord for plain characters, two (dead key, base key) for compositions.
// If the layout cannot produce ch, the result is the single entry NoChord.
//
// Input in decomposed form (e.g., "e" + U+0301) is looked up in NFC as well.
func KeyCodeForChar(l *uc.Layout, ch string) []uc.Chord {
	if l == nil {
		return []uc.Chord{NoChord}
	}
	if chords, ok := l.Chords(ch); ok {
		return chords
	}
	if nfc := norm.NFC.String(ch); nfc != ch {
		if chords, ok := l.Chords(nfc); ok {
			tracer().Debugf("found %q in NFC form", Printify(ch))
			return chords
		}
	}
	tracer().Debugf("no chord for %q", Printify(ch))
	return []uc.Chord{NoChord}
}

// Found reports whether a result of KeyCodeForChar denotes a real chord
// sequence.
func Found(chords []uc.Chord) bool {
	return len(chords) > 0 && chords[0] != NoChord
}
