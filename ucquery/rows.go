package ucquery

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/npillmayer/keylayout/uc"
)

// TabWidth is the column grid FormatRow aligns cells to.
const TabWidth = 8

// ModifierString returns the symbols for the modifier keys of a combination,
// e.g. "⇧⌥". The empty combination yields the empty string.
func ModifierString(mod uc.ModifierCombo) string {
	return mod.Flags().String()
}

// ChordLabel describes a chord by its modifier symbols, followed by the text
// the keycode produces without modifiers, e.g. "⌥e". Keycodes without such
// text are shown as "#<keycode>".
func ChordLabel(l *uc.Layout, c uc.Chord) string {
	base, ok := l.Char(uc.Chord{Keycode: c.Keycode})
	if !ok {
		base = fmt.Sprintf("#%d", c.Keycode)
	}
	return ModifierString(c.Modifiers) + Printify(base)
}

// ModifierHeader returns the column titles of a keycode dump: "Keycode",
// followed by the modifier symbols of every modifier combination of the
// layout, in ascending order.
func ModifierHeader(l *uc.Layout) []string {
	combos := l.ModifierCombos()
	header := make([]string, 0, len(combos)+1)
	header = append(header, "Keycode")
	for _, mod := range combos {
		header = append(header, ModifierString(mod))
	}
	return header
}

// KeycodeRow returns the keycode, followed by the (escaped) text the keycode
// produces with each of the layout's modifier combinations. Cells for chords
// without an entry are empty.
func KeycodeRow(l *uc.Layout, keycode uint16) []string {
	combos := l.ModifierCombos()
	row := make([]string, 0, len(combos)+1)
	row = append(row, strconv.Itoa(int(keycode)))
	for _, mod := range combos {
		s, _ := l.Char(uc.Chord{Keycode: keycode, Modifiers: mod})
		row = append(row, Printify(s))
	}
	return row
}

// FormatRow renders a header or keycode row as a line of text. The first
// cell is followed by "| cell" for every other cell; each part is padded to
// the next multiple of TabWidth display columns.
func FormatRow(cells []string) string {
	var sb strings.Builder
	col := 0
	for i, cell := range cells {
		if i > 0 {
			cell = "| " + cell
		}
		w := runewidth.StringWidth(cell)
		next := (col + w + TabWidth) / TabWidth * TabWidth
		sb.WriteString(runewidth.FillRight(cell, next-col))
		col = next
	}
	return strings.TrimRight(sb.String(), " ")
}

// HeaderRule returns a separator line for a formatted header: every character
// except the column bars is replaced by '-'.
func HeaderRule(header string) string {
	var sb strings.Builder
	for _, r := range header {
		if r == '|' {
			sb.WriteRune(r)
			continue
		}
		sb.WriteString(strings.Repeat("-", runewidth.RuneWidth(r)))
	}
	return sb.String()
}
