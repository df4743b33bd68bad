package uc

import (
	"encoding/binary"
	"fmt"
	"iter"
)

// DeadKeyFormat is the entry format of a dead key state record.
type DeadKeyFormat uint16

const (
	DeadKeyInitial  DeadKeyFormat = 0 // record starts a composition
	DeadKeyTerminal DeadKeyFormat = 1 // record completes a composition
	DeadKeyRange    DeadKeyFormat = 2 // range expansion, not supported
)

func (f DeadKeyFormat) String() string {
	switch f {
	case DeadKeyInitial:
		return "initial"
	case DeadKeyTerminal:
		return "terminal"
	case DeadKeyRange:
		return "range"
	}
	return fmt.Sprintf("format(%d)", uint16(f))
}

const (
	deadKeyRecordHeaderSize = 8 // charData, nextState, entryCount, format
	deadKeyEntrySize        = 4 // state, key
)

// DeadKeyRecord is one dead key state record.
//
// CharData is the key value produced when the key is struck while no dead
// key state is active. For initial records, NextState is the state the key
// switches to. Terminal records carry (state, key) entries: when the key is
// struck in a given state, the entry's key value is produced.
type DeadKeyRecord struct {
	CharData   uint16
	NextState  uint16
	EntryCount uint16
	Format     DeadKeyFormat
	Offset     uint32 // absolute offset of the record
	entries    binarySegm
	order      binary.ByteOrder
}

// Entries iterates over the (state, key) pairs of a record.
func (rec DeadKeyRecord) Entries() iter.Seq2[uint16, uint16] {
	return func(yield func(uint16, uint16) bool) {
		for i := 0; i+deadKeyEntrySize <= len(rec.entries); i += deadKeyEntrySize {
			state := rec.order.Uint16(rec.entries[i:])
			key := rec.order.Uint16(rec.entries[i+2:])
			if !yield(state, key) {
				return
			}
		}
	}
}

// deadKeyTable holds the decoded state records and state terminators.
// Records are classified later, during the character table scan.
type deadKeyTable struct {
	records     []DeadKeyRecord
	terminators []uint16 // indexed by state-1
}

// parseDeadKeyTable reads the state records and, if present, the state
// terminators. If recordsOffset is 0, the layout has no dead keys and the
// terminators are ignored as well.
func parseDeadKeyTable(r reader, recordsOffset, termOffset uint32, ec *errorCollector) (deadKeyTable, error) {
	dks := deadKeyTable{}
	if recordsOffset == 0 {
		return dks, nil
	}
	base := int(recordsOffset)
	format, err := r.u16(base)
	if err != nil {
		return dks, ec.critical("StateRecords", recordsOffset, err)
	}
	if format != StateRecordsFormat {
		ec.addWarning("StateRecords", fmt.Sprintf("unexpected format %#04x", format), recordsOffset)
	}
	count, err := r.u16(base + 2)
	if err != nil {
		return dks, ec.critical("StateRecords", recordsOffset, err)
	}
	offsets, err := r.u32s(base+4, int(count))
	if err != nil {
		return dks, ec.critical("StateRecords", recordsOffset, err)
	}
	dks.records = make([]DeadKeyRecord, 0, len(offsets))
	for _, recoff := range offsets {
		rec, err := parseDeadKeyRecord(r, recoff)
		if err != nil {
			return dks, ec.critical("StateRecord", recoff, err)
		}
		dks.records = append(dks.records, rec)
	}
	tracer().Debugf("dead keys: %d state records", len(dks.records))
	if termOffset == 0 {
		return dks, nil
	}
	base = int(termOffset)
	if format, err = r.u16(base); err != nil {
		return dks, ec.critical("StateTerminators", termOffset, err)
	}
	if format != StateTerminatorFormat {
		ec.addWarning("StateTerminators", fmt.Sprintf("unexpected format %#04x", format), termOffset)
	}
	if count, err = r.u16(base + 2); err != nil {
		return dks, ec.critical("StateTerminators", termOffset, err)
	}
	if dks.terminators, err = r.u16s(base+4, int(count)); err != nil {
		return dks, ec.critical("StateTerminators", termOffset, err)
	}
	tracer().Debugf("dead keys: %d state terminators", len(dks.terminators))
	return dks, nil
}

func parseDeadKeyRecord(r reader, offset uint32) (DeadKeyRecord, error) {
	rec := DeadKeyRecord{Offset: offset, order: r.order}
	fields, err := r.u16s(int(offset), 4)
	if err != nil {
		return rec, err
	}
	rec.CharData = fields[0]
	rec.NextState = fields[1]
	rec.EntryCount = fields[2]
	rec.Format = DeadKeyFormat(fields[3])
	rec.entries, err = r.view(int(offset)+deadKeyRecordHeaderSize, int(rec.EntryCount)*deadKeyEntrySize)
	return rec, err
}

// record returns dead key record #i.
func (dks deadKeyTable) record(i int) (DeadKeyRecord, bool) {
	if i < 0 || i >= len(dks.records) {
		return DeadKeyRecord{}, false
	}
	return dks.records[i], true
}

// terminator returns the terminator key value of a dead key state.
func (dks deadKeyTable) terminator(state uint16) (uint16, bool) {
	if state == 0 || int(state) > len(dks.terminators) {
		return 0, false
	}
	return dks.terminators[state-1], true
}
