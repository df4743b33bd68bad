package uc

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// Raw key values carry flags in their top two bits.
const (
	KeyIndexMask    uint16 = 0xC000 // any of the top two bits set: index instead of code unit
	KeyStateIndex   uint16 = 0x4000 // top bits 01: index into the dead key records
	KeyValueMask    uint16 = 0x3FFF // index part of an indexed key value
	KeyMoreData     uint16 = 0xFFFF // chord produces no character by itself
	KeyInvalidValue uint16 = 0xFFFE // lowest of the non-character values
)

// sequenceTable holds the text fragments of a layout's sequence table.
// Keys producing more than one UTF-16 code unit refer to a fragment by index.
type sequenceTable struct {
	fragments []string
}

// parseSequenceTable reads the sequence table at offset. The table holds a
// list of offsets relative to its start; fragment i spans the bytes between
// offsets i and i+1. The first offset only marks the start of fragment 0.
func parseSequenceTable(r reader, offset uint32, ec *errorCollector) (sequenceTable, error) {
	seqs := sequenceTable{}
	if offset == 0 {
		return seqs, nil
	}
	base := int(offset)
	format, err := r.u16(base)
	if err != nil {
		return seqs, ec.critical("SequenceTable", offset, err)
	}
	if format != SequenceTableFormat {
		ec.addWarning("SequenceTable", fmt.Sprintf("unexpected format %#04x", format), offset)
	}
	count, err := r.u16(base + 2)
	if err != nil {
		return seqs, ec.critical("SequenceTable", offset, err)
	}
	bounds, err := r.u16s(base+4, int(count))
	if err != nil {
		return seqs, ec.critical("SequenceTable", offset, err)
	}
	if len(bounds) < 2 {
		return seqs, nil
	}
	decoder := utf16Decoder(r)
	seqs.fragments = make([]string, 0, len(bounds)-1)
	for i := 1; i < len(bounds); i++ {
		from, to := int(bounds[i-1]), int(bounds[i])
		if to < from {
			ec.addWarning("SequenceTable", fmt.Sprintf("fragment %d has negative length", i-1), offset)
			seqs.fragments = append(seqs.fragments, "")
			continue
		}
		b, err := r.view(base+from, to-from)
		if err != nil {
			return seqs, ec.critical("SequenceTable", offset+uint32(from), err)
		}
		s, err := decoder.Bytes(b)
		if err != nil {
			ec.addWarning("SequenceTable", fmt.Sprintf("fragment %d: %v", i-1, err), offset+uint32(from))
		}
		seqs.fragments = append(seqs.fragments, string(s))
	}
	tracer().Debugf("sequence table has %d fragments", len(seqs.fragments))
	return seqs, nil
}

// utf16Decoder returns a decoder for UTF-16 text in the reader's byte order.
func utf16Decoder(r reader) *encoding.Decoder {
	endianness := unicode.BigEndian
	if isLittleEndian(r.order) {
		endianness = unicode.LittleEndian
	}
	return unicode.UTF16(endianness, unicode.IgnoreBOM).NewDecoder()
}

// Len returns the number of fragments.
func (seqs sequenceTable) Len() int {
	return len(seqs.fragments)
}

// resolve maps a raw key value to text. Values of 0xFFFE and above do not
// map to anything. Values with one of the top two bits set are an index into
// the sequence table; if the index is out of range, nothing is mapped.
// All other values are a single UTF-16 code unit.
func (seqs sequenceTable) resolve(key uint16) (string, bool) {
	if key >= KeyInvalidValue {
		return "", false
	}
	if key&KeyIndexMask != 0 {
		i := int(key & KeyValueMask)
		if i < len(seqs.fragments) {
			return seqs.fragments[i], true
		}
		return "", false
	}
	return string(rune(key)), true
}
