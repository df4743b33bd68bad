package uc

import (
	"fmt"
	"strings"
)

// ModifierCombo identifies one combination of modifier keys. Its value is
// the ordinal of the combination in the layout's modifier table, which at
// the same time is the bit pattern of the modifiers pressed (see Flags).
type ModifierCombo int

// Modifier symbols, as printed by ModifierFlags.String.
const (
	SymbolShift   = "⇧"
	SymbolCommand = "⌘"
	SymbolControl = "⌃"
	SymbolOption  = "⌥"
	SymbolCaps    = "⇪"
)

// ModifierFlags names the modifier keys of a ModifierCombo.
type ModifierFlags struct {
	Shift, Command, Control, Option, Caps bool
}

// Flags decodes the bit pattern of a modifier combination.
//
// Bits 3 (Option) and 1 (Shift) are known to be correct. Bits 4 (Control),
// 2 (Caps Lock) and 0 (Command) are kept for compatibility with existing
// tooling but have not been verified against authoritative documentation.
func (c ModifierCombo) Flags() ModifierFlags {
	return ModifierFlags{
		Control: c&16 != 0,
		Option:  c&8 != 0,
		Caps:    c&4 != 0,
		Shift:   c&2 != 0,
		Command: c&1 != 0,
	}
}

// String returns the symbols of the modifiers set, e.g. "⇧⌥".
func (f ModifierFlags) String() string {
	var sb strings.Builder
	for _, m := range []struct {
		set bool
		sym string
	}{
		{f.Shift, SymbolShift},
		{f.Command, SymbolCommand},
		{f.Control, SymbolControl},
		{f.Option, SymbolOption},
		{f.Caps, SymbolCaps},
	} {
		if m.set {
			sb.WriteString(m.sym)
		}
	}
	return sb.String()
}

func (c ModifierCombo) String() string {
	return c.Flags().String()
}

// modifierTable maps character table indices to modifier combinations.
type modifierTable struct {
	defaultTable uint16
	comboOf      map[int]ModifierCombo // character table index → combo
}

// parseModifierTable reads the modifier table at offset. It holds one
// character table index per modifier combination; a table index is assigned
// to the first combination which references it.
func parseModifierTable(r reader, offset uint32, ec *errorCollector) (modifierTable, error) {
	mods := modifierTable{comboOf: make(map[int]ModifierCombo)}
	base := int(offset)
	format, err := r.u16(base)
	if err != nil {
		return mods, ec.critical("ModifierTable", offset, err)
	}
	if format != ModifierTableFormat {
		ec.addWarning("ModifierTable", fmt.Sprintf("unexpected format %#04x", format), offset)
	}
	if mods.defaultTable, err = r.u16(base + 2); err != nil {
		return mods, ec.critical("ModifierTable", offset, err)
	}
	count, err := r.u32(base + 4)
	if err != nil {
		return mods, ec.critical("ModifierTable", offset, err)
	}
	tables, err := r.u8s(base+8, int(count))
	if err != nil {
		return mods, ec.critical("ModifierTable", offset, err)
	}
	for i, t := range tables {
		if _, ok := mods.comboOf[int(t)]; !ok {
			mods.comboOf[int(t)] = ModifierCombo(i)
		}
	}
	tracer().Debugf("modifier table: default table %d, %d combos, %d tables",
		mods.defaultTable, count, len(mods.comboOf))
	return mods, nil
}

// combo returns the modifier combination of a character table.
func (mods modifierTable) combo(tableIndex int) (ModifierCombo, bool) {
	c, ok := mods.comboOf[tableIndex]
	return c, ok
}
