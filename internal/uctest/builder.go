/*
Package uctest assembles synthetic keyboard layout resources for tests.

A Builder describes a layout in terms of its logical content (modifier table,
character tables, dead key records, …) and serializes it into the binary
format package uc decodes. It intentionally knows nothing about package uc,
so in-package tests of uc may use it.
*/
package uctest

import (
	"encoding/binary"

	"golang.org/x/text/encoding/unicode"
)

// Format tags, repeated here to keep this package free of dependencies.
const (
	headerFormat     = 0x1002
	modifierFormat   = 0x2001
	characterFormat  = 0x3001
	recordsFormat    = 0x4001
	terminatorFormat = 0x5001
	sequenceFormat   = 0x6001
)

// Builder describes a layout resource.
type Builder struct {
	Order     binary.ByteOrder // defaults to binary.NativeEndian
	KeyTables []KeyTable
}

// KeyTable describes the sub-tables of one key table info.
// Nil slices for DeadKeys, Terminators and Sequences produce an offset of 0.
type KeyTable struct {
	MinKbdType, MaxKbdType uint32
	DefaultTable           uint16
	ModifierTables         []uint8    // character table index per modifier combination
	Keycodes               int        // entries per character table
	CharTables             [][]uint16 // shorter tables are padded with 0xFFFE
	DeadKeys               []DeadKey
	Terminators            []uint16
	Sequences              []string
}

// DeadKey describes one state record.
type DeadKey struct {
	CharData  uint16
	NextState uint16
	Format    uint16
	Entries   [][2]uint16 // (state, key)
}

// Offsets are the absolute offsets written into a key table info.
type Offsets struct {
	Info            int // offset of the key table info itself
	Modifier        uint32
	Character       uint32
	StateRecord     uint32
	StateTerminator uint32
	Sequence        uint32
	CharTableData   []uint32 // start of every character table
}

// Bytes serializes the layout. It also returns the offsets it has written for
// every key table, so tests may patch or truncate the result.
func (b *Builder) Bytes() ([]byte, []Offsets) {
	w := &writer{order: b.Order}
	if w.order == nil {
		w.order = binary.NativeEndian
	}
	w.u16(headerFormat)
	w.u16(1) // data version
	w.u32(0) // feature info
	w.u32(uint32(len(b.KeyTables)))
	infoStart := len(w.buf)
	w.zero(28 * len(b.KeyTables))
	offsets := make([]Offsets, len(b.KeyTables))
	for i, kt := range b.KeyTables {
		offsets[i] = w.keyTable(kt)
		offsets[i].Info = infoStart + 28*i
		at := offsets[i].Info
		w.put32(at, kt.MinKbdType)
		w.put32(at+4, kt.MaxKbdType)
		w.put32(at+8, offsets[i].Modifier)
		w.put32(at+12, offsets[i].Character)
		w.put32(at+16, offsets[i].StateRecord)
		w.put32(at+20, offsets[i].StateTerminator)
		w.put32(at+24, offsets[i].Sequence)
	}
	return w.buf, offsets
}

// Patch32 overwrites a uint32 at offset, in the builder's byte order.
func (b *Builder) Patch32(data []byte, offset int, v uint32) {
	order := b.Order
	if order == nil {
		order = binary.NativeEndian
	}
	order.PutUint32(data[offset:], v)
}

func (w *writer) keyTable(kt KeyTable) Offsets {
	off := Offsets{}
	off.Modifier = w.pos()
	w.u16(modifierFormat)
	w.u16(kt.DefaultTable)
	w.u32(uint32(len(kt.ModifierTables)))
	w.buf = append(w.buf, kt.ModifierTables...)
	w.align()

	if kt.Sequences != nil {
		off.Sequence = w.sequences(kt.Sequences)
	}
	if kt.DeadKeys != nil {
		off.StateRecord = w.pos()
		w.u16(recordsFormat)
		w.u16(uint16(len(kt.DeadKeys)))
		table := w.pos()
		w.zero(4 * len(kt.DeadKeys))
		for i, dk := range kt.DeadKeys {
			w.put32(int(table)+4*i, w.pos())
			w.u16(dk.CharData)
			w.u16(dk.NextState)
			w.u16(uint16(len(dk.Entries)))
			w.u16(dk.Format)
			for _, e := range dk.Entries {
				w.u16(e[0])
				w.u16(e[1])
			}
		}
		if kt.Terminators != nil {
			off.StateTerminator = w.pos()
			w.u16(terminatorFormat)
			w.u16(uint16(len(kt.Terminators)))
			for _, t := range kt.Terminators {
				w.u16(t)
			}
			w.align()
		}
	}

	off.Character = w.pos()
	w.u16(characterFormat)
	w.u16(uint16(kt.Keycodes))
	w.u32(uint32(len(kt.CharTables)))
	table := w.pos()
	w.zero(4 * len(kt.CharTables))
	for i, ct := range kt.CharTables {
		at := w.pos()
		off.CharTableData = append(off.CharTableData, at)
		w.put32(int(table)+4*i, at)
		for k := 0; k < kt.Keycodes; k++ {
			if k < len(ct) {
				w.u16(ct[k])
			} else {
				w.u16(0xFFFE)
			}
		}
		w.align()
	}
	return off
}

// sequences writes a sequence table. Its boundary list has one entry more
// than there are fragments, the first one marking the start of fragment 0.
func (w *writer) sequences(seqs []string) uint32 {
	start := w.pos()
	enc := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	if w.order.Uint16([]byte{0, 1}) == 1 {
		enc = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	}
	data := make([][]byte, len(seqs))
	for i, s := range seqs {
		b, err := enc.NewEncoder().Bytes([]byte(s))
		if err != nil {
			panic(err)
		}
		data[i] = b
	}
	w.u16(sequenceFormat)
	w.u16(uint16(len(seqs) + 1))
	rel := 4 + 2*(len(seqs)+1)
	w.u16(uint16(rel))
	for _, b := range data {
		rel += len(b)
		w.u16(uint16(rel))
	}
	for _, b := range data {
		w.buf = append(w.buf, b...)
	}
	w.align()
	return start
}

// --- Low level writing -----------------------------------------------------

type writer struct {
	buf   []byte
	order binary.ByteOrder
}

func (w *writer) pos() uint32 {
	return uint32(len(w.buf))
}

func (w *writer) u16(v uint16) {
	var b [2]byte
	w.order.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *writer) u32(v uint32) {
	var b [4]byte
	w.order.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *writer) zero(n int) {
	w.buf = append(w.buf, make([]byte, n)...)
}

func (w *writer) put32(at int, v uint32) {
	w.order.PutUint32(w.buf[at:], v)
}

// align pads to a 4-byte boundary.
func (w *writer) align() {
	for len(w.buf)%4 != 0 {
		w.buf = append(w.buf, 0)
	}
}
