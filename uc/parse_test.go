package uc

import (
	"encoding/binary"
	"errors"
	"maps"
	"reflect"
	"testing"

	"github.com/npillmayer/keylayout/internal/uctest"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func parseSample(t *testing.T, b *uctest.Builder, kbdType uint32, opts ...ParseOption) *Layout {
	t.Helper()
	data, _ := b.Bytes()
	l, err := Parse(data, kbdType, opts...)
	if err != nil {
		t.Fatalf("cannot parse sample layout: %v", err)
	}
	return l
}

func chord(k int, m int) Chord {
	return Chord{Keycode: uint16(k), Modifiers: ModifierCombo(m)}
}

func TestParseHeader(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keylayout.uc")
	defer teardown()
	//
	l := parseSample(t, uctest.Sample(), 0)
	if l.Header.Format != HeaderFormat {
		t.Errorf("expected header format %#x, is %#x", HeaderFormat, l.Header.Format)
	}
	if len(l.KeyTables) != 2 {
		t.Fatalf("expected 2 key table infos, have %d", len(l.KeyTables))
	}
	if l.KeyTables[1].MinKbdType != 40 || l.KeyTables[1].MaxKbdType != 50 {
		t.Errorf("unexpected kbd type range of key table #1: %s", l.KeyTables[1])
	}
	if l.KeycodeCount() != 50 {
		t.Errorf("expected 50 keycodes per table, have %d", l.KeycodeCount())
	}
	if len(l.Warnings()) != 1 {
		t.Errorf("expected 1 warning (unresolvable sequence), have %v", l.Warnings())
	}
}

func TestSelectKeyTable(t *testing.T) {
	infos := []KeyTableInfo{
		{MinKbdType: 0, MaxKbdType: 30},
		{MinKbdType: 40, MaxKbdType: 50},
		{MinKbdType: 45, MaxKbdType: 60},
	}
	tests := []struct {
		kbdType  uint32
		expected int
	}{
		{0, 0}, {30, 0}, {40, 1}, {45, 1}, {55, 2}, {35, 0}, {1000, 0},
	}
	for _, tt := range tests {
		if sel := SelectKeyTable(infos, tt.kbdType); sel != tt.expected {
			t.Errorf("kbd type %d: expected key table #%d, selected #%d", tt.kbdType, tt.expected, sel)
		}
	}
	if SelectKeyTable(nil, 0) != -1 {
		t.Errorf("expected -1 for empty key table list")
	}
}

func TestParseSelectsKeyTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keylayout.uc")
	defer teardown()
	//
	l := parseSample(t, uctest.Sample(), 45)
	if l.Selected != 1 {
		t.Fatalf("expected key table #1 for kbd type 45, have #%d", l.Selected)
	}
	if chords, ok := l.Chords("W"); !ok || !reflect.DeepEqual(chords, []Chord{chord(1, 2)}) {
		t.Errorf("expected 'W' at (1,2), have %v", chords)
	}
	if _, ok := l.Chords("ß"); ok {
		t.Errorf("did not expect 'ß' in key table #1")
	}
	l = parseSample(t, uctest.Sample(), 35) // no match → first
	if l.Selected != 0 {
		t.Errorf("expected fallback to key table #0, have #%d", l.Selected)
	}
}

func TestModifierCombos(t *testing.T) {
	l := parseSample(t, uctest.Sample(), 0)
	expected := []ModifierCombo{0, 2, 8, 10}
	if !reflect.DeepEqual(l.ModifierCombos(), expected) {
		t.Errorf("expected modifier combos %v, have %v", expected, l.ModifierCombos())
	}
}

func TestModifierFlags(t *testing.T) {
	f := ModifierCombo(10).Flags()
	if !f.Option || !f.Shift || f.Control || f.Caps || f.Command {
		t.Errorf("unexpected flags for combo 10: %+v", f)
	}
	if s := ModifierCombo(31).String(); s != "⇧⌘⌃⌥⇪" {
		t.Errorf("expected all modifier symbols for combo 31, have %q", s)
	}
	if s := ModifierCombo(0).String(); s != "" {
		t.Errorf("expected empty string for combo 0, have %q", s)
	}
}

func TestPlainCharacters(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keylayout.uc")
	defer teardown()
	//
	l := parseSample(t, uctest.Sample(), 0)
	tests := []struct {
		ch     string
		chords []Chord
	}{
		{"s", []Chord{chord(uctest.KeyS, 0)}},
		{"S", []Chord{chord(uctest.KeyS, uctest.ModShift)}},
		{"ß", []Chord{chord(uctest.KeyS, uctest.ModOption)}},
		{"a", []Chord{chord(uctest.KeyA, 0)}},      // terminal record used stand-alone
		{"e", []Chord{chord(uctest.KeyE, 0)}},      // first registration wins over ⌥⇧s
		{" ", []Chord{chord(uctest.KeySpace, 0)}},  // first registration wins over ⇧space
		{"fi", []Chord{chord(uctest.KeyH, 0)}},     // sequence
		{"😀", []Chord{chord(uctest.KeyG, 0)}},      // sequence with surrogate pair
		{"é", []Chord{chord(uctest.KeyE, uctest.ModOption), chord(uctest.KeyE, 0)}},
		{"á", []Chord{chord(uctest.KeyE, uctest.ModOption), chord(uctest.KeyA, 0)}},
	}
	for _, tt := range tests {
		chords, ok := l.Chords(tt.ch)
		if !ok {
			t.Errorf("expected %q to be mapped", tt.ch)
			continue
		}
		if !reflect.DeepEqual(chords, tt.chords) {
			t.Errorf("expected %q at %v, have %v", tt.ch, tt.chords, chords)
		}
	}
	if _, ok := l.Chords("à"); ok {
		t.Errorf("did not expect 'à' to be mapped: its dead key state is never initiated")
	}
}

func TestReverseMapping(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keylayout.uc")
	defer teardown()
	//
	l := parseSample(t, uctest.Sample(), 0)
	tests := []struct {
		chord    Chord
		expected string
	}{
		{chord(uctest.KeyF, 0), "MD"},
		{chord(7, 0), "<65534>"},
		{chord(uctest.KeyZ, 0), "<32773>"},
		{chord(uctest.KeyE, uctest.ModOption), "dk ´"},
		{chord(uctest.KeyE, uctest.ModOptionShift), "DK#3"},
		{chord(uctest.KeyS, uctest.ModOptionShift), "e"},
		{chord(uctest.KeySpace, uctest.ModShift), " "},
		{chord(uctest.KeyReturn, uctest.ModOption), "\n"},
		{chord(uctest.KeyE, 0), "e"},
	}
	for _, tt := range tests {
		s, ok := l.Char(tt.chord)
		if !ok || s != tt.expected {
			t.Errorf("expected %s → %q, have %q (%v)", tt.chord, tt.expected, s, ok)
		}
	}
	// skipped cells have no reverse entry
	for _, c := range []Chord{
		chord(uctest.KeyA, uctest.ModOption), // range record
		chord(uctest.KeyD, uctest.ModOption), // dead key index out of range
		chord(uctest.KeyF, uctest.ModOption), // initial record without next state
	} {
		if s, ok := l.Char(c); ok {
			t.Errorf("did not expect %s to be mapped, is %q", c, s)
		}
	}
	cc := CompositeChord{Dead: chord(uctest.KeyE, uctest.ModOption), Base: chord(uctest.KeyE, 0)}
	if s, ok := l.Composite(cc); !ok || s != "é" {
		t.Errorf("expected composite %s → 'é', have %q", cc, s)
	}
}

func TestFixedKeyOverrides(t *testing.T) {
	l := parseSample(t, uctest.Sample(), 0)
	for ch, c := range map[string]Chord{
		"\n": chord(uctest.KeyReturn, 0),
		"\r": chord(uctest.KeyReturn, 0),
		"\t": chord(uctest.KeyTab, 0),
	} {
		chords, ok := l.Chords(ch)
		if !ok || !reflect.DeepEqual(chords, []Chord{c}) {
			t.Errorf("expected %q at %s, have %v", ch, c, chords)
		}
	}
	l = parseSample(t, uctest.Sample(), 0, NoFixedKeyOverrides)
	if chords, _ := l.Chords("\n"); !reflect.DeepEqual(chords, []Chord{chord(uctest.KeyReturn, uctest.ModOption)}) {
		t.Errorf("expected '\\n' from layout data without overrides, have %v", chords)
	}
}

func TestRoundTrip(t *testing.T) {
	l := parseSample(t, uctest.Sample(), 0)
	n := 0
	for ch, chords := range l.Chars() {
		if ch == "\n" { // overridden
			continue
		}
		var s string
		var ok bool
		switch len(chords) {
		case 1:
			s, ok = l.Char(chords[0])
		case 2:
			s, ok = l.Composite(CompositeChord{Dead: chords[0], Base: chords[1]})
		default:
			t.Fatalf("unexpected chord sequence %v for %q", chords, ch)
		}
		if !ok || s != ch {
			t.Errorf("round trip of %q via %v yields %q", ch, chords, s)
		}
		n++
	}
	if n < 10 {
		t.Errorf("expected at least 10 characters, have %d", n)
	}
}

func TestDeadKeyErrors(t *testing.T) {
	l := parseSample(t, uctest.Sample(), 0)
	var rng, missing int
	for _, err := range l.Errors() {
		switch {
		case errors.Is(err, ErrUnsupportedDeadKeyFormat):
			rng++
		case errors.Is(err, ErrMissingInitiatingState):
			missing++
		default:
			t.Errorf("unexpected error: %v", err)
		}
		if err.Severity != SeverityMinor {
			t.Errorf("expected minor severity for %v", err)
		}
	}
	if rng != 1 || missing != 1 {
		t.Errorf("expected 1 range and 1 missing-state error, have %d and %d", rng, missing)
	}
}

func TestNoDeadKeys(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keylayout.uc")
	defer teardown()
	//
	b := uctest.Sample()
	data, offsets := b.Bytes()
	b.Patch32(data, offsets[0].Info+16, 0) // state record offset
	withOffsetZero, err := Parse(data, 0)
	if err != nil {
		t.Fatal(err)
	}
	stripped := uctest.Sample()
	stripped.KeyTables[0].DeadKeys = nil
	stripped.KeyTables[0].Terminators = nil
	withoutDeadKeys := parseSample(t, stripped, 0)

	fwd1 := maps.Collect(withOffsetZero.Chars())
	fwd2 := maps.Collect(withoutDeadKeys.Chars())
	if !reflect.DeepEqual(fwd1, fwd2) {
		t.Errorf("forward maps differ:\n%v\n%v", fwd1, fwd2)
	}
	rev1 := maps.Collect(withOffsetZero.Reverse())
	rev2 := maps.Collect(withoutDeadKeys.Reverse())
	if !reflect.DeepEqual(rev1, rev2) {
		t.Errorf("reverse maps differ:\n%v\n%v", rev1, rev2)
	}
	if _, ok := withOffsetZero.Chords("é"); ok {
		t.Errorf("did not expect compositions without dead keys")
	}
	if chords, _ := withOffsetZero.Chords("e"); !reflect.DeepEqual(chords, []Chord{chord(uctest.KeyS, uctest.ModOptionShift)}) {
		t.Errorf("expected 'e' only from ⌥⇧s without dead keys, have %v", chords)
	}
}

func TestTruncatedData(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keylayout.uc")
	defer teardown()
	//
	b := uctest.Sample()
	data, offsets := b.Bytes()
	lastTable := int(offsets[0].CharTableData[3])
	for _, size := range []int{0, 6, 20, lastTable + 10, lastTable + 99} {
		l, err := Parse(data[:size], 0)
		if !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("size %d: expected ErrOutOfBounds, got %v", size, err)
		}
		if l != nil {
			t.Errorf("size %d: expected no layout for truncated data", size)
		}
	}
	patched := append([]byte(nil), data...)
	b.Patch32(patched, offsets[0].Info+24, uint32(len(data)+100)) // sequence offset
	if _, err := Parse(patched, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds for sequence offset past end, got %v", err)
	}
	var lerr LayoutError
	if _, err := Parse(data[:20], 0); !errors.As(err, &lerr) || lerr.Severity != SeverityCritical {
		t.Errorf("expected a critical LayoutError, got %v", err)
	}
}

func TestNoKeyTable(t *testing.T) {
	b := &uctest.Builder{}
	data, _ := b.Bytes()
	if _, err := Parse(data, 0); !errors.Is(err, ErrNoKeyTable) {
		t.Errorf("expected ErrNoKeyTable, got %v", err)
	}
}

func TestMissingModifierCombo(t *testing.T) {
	b := uctest.Sample()
	b.KeyTables[0].ModifierTables = []uint8{0, 0, 1, 1} // tables 2 and 3 unreferenced
	l := parseSample(t, b, 0)
	n := 0
	for _, err := range l.Errors() {
		if errors.Is(err, ErrMissingModifierCombo) {
			n++
		}
	}
	if n != 2 {
		t.Errorf("expected 2 tables without modifier combo, have %d", n)
	}
	if _, ok := l.Chords("ß"); ok {
		t.Errorf("did not expect 'ß' from an unreferenced table")
	}
}

func TestForeignByteOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keylayout.uc")
	defer teardown()
	//
	for _, tt := range []struct {
		order binary.ByteOrder
		opt   ParseOption
	}{
		{binary.BigEndian, BigEndianData},
		{binary.LittleEndian, LittleEndianData},
	} {
		b := uctest.Sample()
		b.Order = tt.order
		l := parseSample(t, b, 0, tt.opt)
		if chords, ok := l.Chords("😀"); !ok || chords[0] != chord(uctest.KeyG, 0) {
			t.Errorf("%v: expected sequence '😀' at (5,0), have %v", tt.order, chords)
		}
		if chords, ok := l.Chords("é"); !ok || len(chords) != 2 {
			t.Errorf("%v: expected composition for 'é', have %v", tt.order, chords)
		}
	}
}

func TestFormatTagMismatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keylayout.uc")
	defer teardown()
	//
	b := uctest.Sample()
	b.Order = binary.LittleEndian
	data, _ := b.Bytes()
	binary.LittleEndian.PutUint16(data[0:], 0x2002)
	l, err := Parse(data, 0, LittleEndianData)
	if err != nil {
		t.Fatalf("format tag mismatch must not be fatal, have %v", err)
	}
	if l.Header.Format != 0x2002 {
		t.Errorf("expected header format 0x2002, is %#x", l.Header.Format)
	}
	found := false
	for _, w := range l.Warnings() {
		if w.Section == "Header" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a header warning, have %v", l.Warnings())
	}
	if _, ok := l.Chords("é"); !ok {
		t.Errorf("expected layout to decode despite header format")
	}
}

func TestDeadKeyRecordEntries(t *testing.T) {
	data := []byte{1, 0, 0x65, 0, 2, 0, 0x66, 0}
	rec := DeadKeyRecord{entries: data, order: binary.LittleEndian}
	var got [][2]uint16
	for state, key := range rec.Entries() {
		got = append(got, [2]uint16{state, key})
	}
	expected := [][2]uint16{{1, 0x65}, {2, 0x66}}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected entries %v, have %v", expected, got)
	}
	if DeadKeyRange.String() != "range" || DeadKeyFormat(7).String() != "format(7)" {
		t.Errorf("unexpected dead key format names")
	}
}

func TestSequenceResolve(t *testing.T) {
	seqs := sequenceTable{fragments: []string{"fi", "ffl"}}
	tests := []struct {
		key      uint16
		expected string
		ok       bool
	}{
		{0x0061, "a", true},
		{0x00E9, "é", true},
		{0xC001, "ffl", true},
		{0x8000, "fi", true},
		{0xC002, "", false},
		{0xFFFE, "", false},
		{0xFFFF, "", false},
	}
	for _, tt := range tests {
		s, ok := seqs.resolve(tt.key)
		if s != tt.expected || ok != tt.ok {
			t.Errorf("resolve(%#x) = (%q,%v), want (%q,%v)", tt.key, s, ok, tt.expected, tt.ok)
		}
	}
}
