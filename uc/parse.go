package uc

import (
	"encoding/binary"
	"slices"
)

// ParseOption guides and influences the decoding of a layout.
type ParseOption int

const (
	LittleEndianData    ParseOption = iota // data has been produced on a little-endian host
	BigEndianData                          // data has been produced on a big-endian host
	NoFixedKeyOverrides                    // do not map "\n", "\r" and "\t" to Return and Tab
)

// Parse decodes a keyboard layout resource for a given keyboard type.
//
// Only the key table matching kbdType is decoded (or the first one, if none
// matches). The data is read in native byte order unless an option says
// otherwise; Parse does not hold on to data after it returns.
//
// If any read would exceed the data, Parse fails with an error wrapping
// ErrOutOfBounds and does not return a Layout. Records which cannot be
// interpreted are skipped; they are reported by Layout.Errors and
// Layout.Warnings.
func Parse(data []byte, kbdType uint32, opts ...ParseOption) (*Layout, error) {
	order := binary.ByteOrder(binary.NativeEndian)
	if slices.Contains(opts, LittleEndianData) {
		order = binary.LittleEndian
	} else if slices.Contains(opts, BigEndianData) {
		order = binary.BigEndian
	}
	r := newReader(data, order)
	ec := &errorCollector{}
	tracer().Debugf("decoding layout of %d bytes for keyboard type %d", r.Size(), kbdType)

	h, infos, err := parseHeader(r, ec)
	if err != nil {
		return nil, err
	}
	sel := SelectKeyTable(infos, kbdType)
	kt := infos[sel]
	tracer().Debugf("selected key table #%d: %s", sel, kt)

	mods, err := parseModifierTable(r, kt.ModifierOffset, ec)
	if err != nil {
		return nil, err
	}
	seqs, err := parseSequenceTable(r, kt.SequenceOffset, ec)
	if err != nil {
		return nil, err
	}
	dks, err := parseDeadKeyTable(r, kt.StateRecordOffset, kt.StateTerminatorOffset, ec)
	if err != nil {
		return nil, err
	}
	b := newBuilder(mods, seqs, dks, ec)
	if err = b.scanCharacterTables(r, kt.CharacterOffset); err != nil {
		return nil, err
	}
	b.resolveTerminals()
	if !slices.Contains(opts, NoFixedKeyOverrides) {
		b.applyOverrides()
	}
	l := b.layout()
	l.Header = h
	l.KeyTables = infos
	l.Selected = sel
	l.KbdType = kbdType
	if len(l.errors) > 0 || len(l.warnings) > 0 {
		tracer().Infof("layout decoded with %d errors, %d warnings", len(l.errors), len(l.warnings))
	}
	return l, nil
}
