package uc

import (
	"fmt"
	"slices"
)

// Placeholders in the chord → character table.
const (
	PlaceholderMoreData = "MD"
	placeholderNumeric  = "<%d>"
	placeholderDeadBase = "dk %s"
	placeholderDeadNum  = "DK#%d"
)

// pendingTerminal is a terminal dead key record found during the character
// table scan, waiting for the initiating states to be known.
type pendingTerminal struct {
	chord  Chord
	record DeadKeyRecord
}

// builder populates the two mapping directions from the character tables.
//
// Forward registrations (character → chords) are first-wins, reverse
// registrations (chord → character) are last-wins.
type builder struct {
	mods modifierTable
	seqs sequenceTable
	dks  deadKeyTable
	ec   *errorCollector

	forward    map[string][]Chord
	chars      []string
	reverse    map[Chord]string
	composite  map[CompositeChord]string
	initiating map[uint16]Chord // dead key state → chord which enters it
	pending    []pendingTerminal
	combos     []ModifierCombo
	keycodes   int
}

func newBuilder(mods modifierTable, seqs sequenceTable, dks deadKeyTable, ec *errorCollector) *builder {
	return &builder{
		mods:       mods,
		seqs:       seqs,
		dks:        dks,
		ec:         ec,
		forward:    make(map[string][]Chord),
		reverse:    make(map[Chord]string),
		composite:  make(map[CompositeChord]string),
		initiating: make(map[uint16]Chord),
	}
}

// scanCharacterTables walks every (table, keycode) cell of the character
// tables at offset, in ascending order of table index, then keycode.
func (b *builder) scanCharacterTables(r reader, offset uint32) error {
	base := int(offset)
	format, err := r.u16(base)
	if err != nil {
		return b.ec.critical("CharacterTable", offset, err)
	}
	if format != CharacterTableFormat {
		b.ec.addWarning("CharacterTable", fmt.Sprintf("unexpected format %#04x", format), offset)
	}
	csize, err := r.u16(base + 2)
	if err != nil {
		return b.ec.critical("CharacterTable", offset, err)
	}
	ccount, err := r.u32(base + 4)
	if err != nil {
		return b.ec.critical("CharacterTable", offset, err)
	}
	tableOffsets, err := r.u32s(base+8, int(ccount))
	if err != nil {
		return b.ec.critical("CharacterTable", offset, err)
	}
	b.keycodes = int(csize)
	tracer().Debugf("character tables: %d tables of %d keycodes", ccount, csize)
	for t, tableOffset := range tableOffsets {
		keys, err := r.u16s(int(tableOffset), int(csize))
		if err != nil {
			return b.ec.critical("CharacterTable", tableOffset, err)
		}
		mod, ok := b.mods.combo(t)
		if !ok {
			b.ec.addError("CharacterTable", fmt.Sprintf("table %d is not referenced by the modifier table", t),
				SeverityMajor, tableOffset, ErrMissingModifierCombo)
			continue
		}
		if !slices.Contains(b.combos, mod) {
			b.combos = append(b.combos, mod)
		}
		for k, v := range keys {
			b.classify(Chord{Keycode: uint16(k), Modifiers: mod}, v)
		}
	}
	slices.Sort(b.combos)
	return nil
}

// classify handles one raw key value of a character table cell.
func (b *builder) classify(chord Chord, v uint16) {
	switch {
	case v == KeyMoreData:
		b.reverse[chord] = PlaceholderMoreData
	case v >= KeyInvalidValue:
		b.reverse[chord] = fmt.Sprintf(placeholderNumeric, v)
	case v&KeyIndexMask == KeyStateIndex:
		b.deadKey(chord, int(v&KeyValueMask))
	default:
		b.addChar(chord, v)
	}
}

// deadKey handles a cell which refers to dead key record #d.
func (b *builder) deadKey(chord Chord, d int) {
	rec, ok := b.dks.record(d)
	if !ok {
		tracer().Debugf("chord %s refers to dead key record %d, have %d", chord, d, len(b.dks.records))
		return
	}
	switch rec.Format {
	case DeadKeyInitial:
		if rec.NextState == 0 {
			return
		}
		b.initiating[rec.NextState] = chord
		if term, ok := b.dks.terminator(rec.NextState); ok {
			base, _ := b.seqs.resolve(term)
			b.reverse[chord] = fmt.Sprintf(placeholderDeadBase, base)
		} else {
			b.reverse[chord] = fmt.Sprintf(placeholderDeadNum, rec.NextState)
		}
	case DeadKeyTerminal:
		b.pending = append(b.pending, pendingTerminal{chord: chord, record: rec})
		b.addChar(chord, rec.CharData)
	case DeadKeyRange:
		b.ec.addError("StateRecord", fmt.Sprintf("range record at chord %s skipped", chord),
			SeverityMinor, rec.Offset, ErrUnsupportedDeadKeyFormat)
	default:
		tracer().Debugf("chord %s: dead key record of unknown format %d", chord, rec.Format)
	}
}

// addChar registers a plain character: forward only if not yet mapped,
// reverse unconditionally.
func (b *builder) addChar(chord Chord, v uint16) {
	ch, ok := b.seqs.resolve(v)
	if !ok {
		b.ec.addWarning("CharacterTable", fmt.Sprintf("chord %s: key value %#04x does not resolve", chord, v), 0)
		b.reverse[chord] = fmt.Sprintf(placeholderNumeric, v)
		return
	}
	b.register(ch, chord)
	b.reverse[chord] = ch
}

func (b *builder) register(ch string, chords ...Chord) {
	if _, ok := b.forward[ch]; ok {
		return
	}
	b.forward[ch] = chords
	b.chars = append(b.chars, ch)
}

// resolveTerminals expands the entries of all terminal records against the
// initiating states collected during the scan.
func (b *builder) resolveTerminals() {
	for _, p := range b.pending {
		for state, key := range p.record.Entries() {
			dead, ok := b.initiating[state]
			if !ok {
				b.ec.addError("StateRecord", fmt.Sprintf("state %d of terminal chord %s", state, p.chord),
					SeverityMinor, p.record.Offset, ErrMissingInitiatingState)
				continue
			}
			ch, ok := b.seqs.resolve(key)
			if !ok {
				continue
			}
			b.register(ch, dead, p.chord)
			b.composite[CompositeChord{Dead: dead, Base: p.chord}] = ch
		}
	}
	tracer().Debugf("resolved %d terminal records against %d dead key states", len(b.pending), len(b.initiating))
}

var fixedKeys = []struct {
	ch      string
	keycode uint16
}{
	{"\n", KeycodeReturn},
	{"\r", KeycodeReturn},
	{"\t", KeycodeTab},
}

// applyOverrides maps newline, carriage return and tab to the fixed Return and
// Tab key positions, overwriting anything the layout data says.
func (b *builder) applyOverrides() {
	for _, o := range fixedKeys {
		if _, ok := b.forward[o.ch]; !ok {
			b.chars = append(b.chars, o.ch)
		}
		b.forward[o.ch] = []Chord{{Keycode: o.keycode}}
	}
}

// layout hands the tables over to a new Layout.
func (b *builder) layout() *Layout {
	return &Layout{
		forward:   b.forward,
		chars:     b.chars,
		reverse:   b.reverse,
		composite: b.composite,
		combos:    b.combos,
		keycodes:  b.keycodes,
		errors:    b.ec.errors,
		warnings:  b.ec.warnings,
	}
}
