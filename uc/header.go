package uc

import "fmt"

// Format tags of the sub-tables of a 'uchr' resource.
const (
	HeaderFormat          uint16 = 0x1002
	ModifierTableFormat   uint16 = 0x2001
	CharacterTableFormat  uint16 = 0x3001
	StateRecordsFormat    uint16 = 0x4001
	StateTerminatorFormat uint16 = 0x5001
	SequenceTableFormat   uint16 = 0x6001
)

const (
	headerSize       = 12 // format, data version, feature info, table count
	keyTableInfoSize = 28 // 7 × uint32
)

// Header is the fixed-size header at the start of a layout resource.
type Header struct {
	Format        uint16
	DataVersion   uint16
	FeatureInfo   uint32 // offset of the feature info, not interpreted
	KeyTableCount uint32
}

// KeyTableInfo links a range of keyboard types to the sub-tables applicable
// for them. Offsets are absolute; an offset of 0 denotes a missing
// (optional) sub-table.
type KeyTableInfo struct {
	MinKbdType            uint32
	MaxKbdType            uint32
	ModifierOffset        uint32
	CharacterOffset       uint32
	StateRecordOffset     uint32
	StateTerminatorOffset uint32
	SequenceOffset        uint32
}

// Covers reports whether kbdType lies within the key table's range of
// keyboard types (inclusive).
func (kt KeyTableInfo) Covers(kbdType uint32) bool {
	return kt.MinKbdType <= kbdType && kbdType <= kt.MaxKbdType
}

func (kt KeyTableInfo) String() string {
	return fmt.Sprintf("%3d-%3d mods %d char %d records %d term %d seq %d",
		kt.MinKbdType, kt.MaxKbdType, kt.ModifierOffset, kt.CharacterOffset,
		kt.StateRecordOffset, kt.StateTerminatorOffset, kt.SequenceOffset)
}

// SelectKeyTable returns the index of the first key table info whose range
// of keyboard types contains kbdType. If none does, it returns 0: real-world
// layouts often carry a single entry meant to cover all keyboard types.
// For an empty list, -1 is returned.
func SelectKeyTable(infos []KeyTableInfo, kbdType uint32) int {
	if len(infos) == 0 {
		return -1
	}
	for i, kt := range infos {
		if kt.Covers(kbdType) {
			return i
		}
	}
	return 0
}

// parseHeader reads the header and the key table info list which follows it.
func parseHeader(r reader, ec *errorCollector) (Header, []KeyTableInfo, error) {
	h := Header{}
	var err error
	if h.Format, err = r.u16(0); err != nil {
		return h, nil, ec.critical("Header", 0, err)
	}
	if h.DataVersion, err = r.u16(2); err != nil {
		return h, nil, ec.critical("Header", 2, err)
	}
	if h.FeatureInfo, err = r.u32(4); err != nil {
		return h, nil, ec.critical("Header", 4, err)
	}
	if h.KeyTableCount, err = r.u32(8); err != nil {
		return h, nil, ec.critical("Header", 8, err)
	}
	tracer().Debugf("header = %+v", h)
	if h.Format != HeaderFormat {
		ec.addWarning("Header", fmt.Sprintf("unexpected header format %#04x", h.Format), 0)
	}
	if h.KeyTableCount == 0 {
		return h, nil, ec.critical("Header", 8, ErrNoKeyTable)
	}
	size, err := checkedMulInt(int(h.KeyTableCount), keyTableInfoSize)
	if err != nil {
		return h, nil, ec.critical("KeyTableInfo", headerSize, fmt.Errorf("%w: %v", ErrOutOfBounds, err))
	}
	if _, err = r.view(headerSize, size); err != nil {
		return h, nil, ec.critical("KeyTableInfo", headerSize, err)
	}
	infos := make([]KeyTableInfo, h.KeyTableCount)
	for i := range infos {
		fields, err := r.u32s(headerSize+i*keyTableInfoSize, 7)
		if err != nil {
			return h, nil, ec.critical("KeyTableInfo", uint32(headerSize+i*keyTableInfoSize), err)
		}
		infos[i] = KeyTableInfo{
			MinKbdType:            fields[0],
			MaxKbdType:            fields[1],
			ModifierOffset:        fields[2],
			CharacterOffset:       fields[3],
			StateRecordOffset:     fields[4],
			StateTerminatorOffset: fields[5],
			SequenceOffset:        fields[6],
		}
		tracer().Debugf("key table info #%d: %s", i, infos[i])
	}
	return h, infos, nil
}
