/*
Package keylayout translates between characters and the keystrokes which
produce them, for macOS keyboard layouts ('uchr' resources).

There is a certain confusion with the nomenclature of keyboard input. We will
stick to the following definitions:

▪︎ A "keycode" is the position of a key on the keyboard, independent of
its labeling. An example is keycode 0, the key labeled "A" on US keyboards.

▪︎ A "chord" is a keycode struck together with a combination of modifier keys,
e.g. ⇧ + keycode 0.

▪︎ A "dead key" is a chord which does not produce a character by itself, but
changes the character produced by the chord struck next. An example is
⌥e followed by e, producing "é" on US keyboards.

Package uc decodes layout resources, package ucquery answers questions
about a decoded layout. This package holds a process-wide current layout:
it is replaced as a whole whenever a new layout is loaded, so readers always
observe either the old or the new layout, never a partially decoded one.

# Status

Fetching the current layout resource from the host's text-input service is
left to clients. They hand over the raw bytes through Load or a LayoutSource.

# Links

Apple's definition of the 'uchr' format:
https://developer.apple.com/library/archive/documentation/TextFonts/Reference/UCKeyboardLayout/

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package keylayout

import (
	"errors"
	"sync/atomic"

	"github.com/npillmayer/keylayout/uc"
	"github.com/npillmayer/keylayout/ucquery"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'keylayout'
func tracer() tracing.Trace {
	return tracing.Select("keylayout")
}

// ErrNoLayout is returned by queries if no layout has been loaded yet.
var ErrNoLayout = errors.New("no keyboard layout loaded")

// LayoutSource provides the raw bytes of a layout resource together with the
// keyboard type to decode it for.
type LayoutSource interface {
	LayoutData() (data []byte, kbdType uint32, err error)
}

// Keymap holds a current keyboard layout. The zero value is a Keymap without
// a layout. A Keymap is safe for concurrent use; queries never block loading
// and vice versa.
type Keymap struct {
	current atomic.Pointer[uc.Layout]
}

// Current returns the current layout, or nil if no layout has been loaded.
func (km *Keymap) Current() *uc.Layout {
	return km.current.Load()
}

// Publish makes l the current layout and returns the previous one.
// Publishing nil removes the current layout.
func (km *Keymap) Publish(l *uc.Layout) *uc.Layout {
	return km.current.Swap(l)
}

// Load decodes a layout resource and, on success, makes it the current
// layout. If decoding fails, the current layout stays in place.
func (km *Keymap) Load(data []byte, kbdType uint32, opts ...uc.ParseOption) error {
	l, err := uc.Parse(data, kbdType, opts...)
	if err != nil {
		tracer().Errorf("keeping previous keyboard layout: %v", err)
		return err
	}
	km.Publish(l)
	tracer().Infof("published keyboard layout for keyboard type %d", kbdType)
	return nil
}

// Reload fetches a layout resource from src and loads it. Clients call it
// whenever the host signals a change of the input source. If fetching or
// decoding fails, the current layout stays in place.
func (km *Keymap) Reload(src LayoutSource, opts ...uc.ParseOption) error {
	data, kbdType, err := src.LayoutData()
	if err != nil {
		tracer().Errorf("cannot fetch keyboard layout: %v", err)
		return err
	}
	return km.Load(data, kbdType, opts...)
}

// CharForKeycode returns the character produced by a chord on the current
// layout (see ucquery.CharForKeycode).
func (km *Keymap) CharForKeycode(keycode uint16, mod uc.ModifierCombo) (string, error) {
	l := km.Current()
	if l == nil {
		return "", ErrNoLayout
	}
	return ucquery.CharForKeycode(l, keycode, mod)
}

// KeyCodeForChar returns the chords producing ch on the current layout (see
// ucquery.KeyCodeForChar). Without a current layout, no character can be
// produced and the result is the single entry ucquery.NoChord.
func (km *Keymap) KeyCodeForChar(ch string) []uc.Chord {
	return ucquery.KeyCodeForChar(km.Current(), ch)
}

// --- Process-wide keymap ---------------------------------------------------

var keymap Keymap

// FromBinary decodes a layout resource without publishing it.
func FromBinary(data []byte, kbdType uint32, opts ...uc.ParseOption) (*uc.Layout, error) {
	return uc.Parse(data, kbdType, opts...)
}

// Current returns the process-wide current layout, or nil.
func Current() *uc.Layout {
	return keymap.Current()
}

// Load decodes a layout resource and makes it the process-wide current layout.
func Load(data []byte, kbdType uint32, opts ...uc.ParseOption) error {
	return keymap.Load(data, kbdType, opts...)
}

// Reload replaces the process-wide current layout by the one src provides.
func Reload(src LayoutSource, opts ...uc.ParseOption) error {
	return keymap.Reload(src, opts...)
}

// Reset removes the process-wide current layout.
func Reset() {
	keymap.Publish(nil)
}

// CharForKeycode queries the process-wide current layout.
func CharForKeycode(keycode uint16, mod uc.ModifierCombo) (string, error) {
	return keymap.CharForKeycode(keycode, mod)
}

// KeyCodeForChar queries the process-wide current layout.
func KeyCodeForChar(ch string) []uc.Chord {
	return keymap.KeyCodeForChar(ch)
}
