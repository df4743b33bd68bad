package uctest

// Modifier combinations of the sample layout.
const (
	ModNone        = 0
	ModShift       = 2
	ModOption      = 8
	ModOptionShift = 10
)

// Keycodes used by the sample layout.
const (
	KeyA      = 0
	KeyS      = 1
	KeyD      = 2
	KeyF      = 3
	KeyH      = 4
	KeyG      = 5
	KeyZ      = 6
	KeyE      = 14
	KeyR      = 15
	KeyReturn = 36
	KeyTab    = 48
	KeySpace  = 49
)

// Sample returns a small layout with two key tables (the second one for
// keyboard types 40-50), four character tables, dead keys and sequences.
//
// Dead keys of the first key table:
//
//	#0 initial, state 1      at ⌥e       terminator '´'
//	#1 terminal 'e'          at e        state 1 → 'é'
//	#2 terminal 'a'          at a        state 1 → 'á', state 2 → 'à' (state 2 never initiated)
//	#3 range                 at ⌥a       unsupported
//	#4 initial, no state     at ⌥f
//	#5 initial, state 3      at ⌥⇧e      no terminator
func Sample() *Builder {
	plain := make([]uint16, 50)
	shift := make([]uint16, 50)
	option := make([]uint16, 50)
	optshift := make([]uint16, 50)
	for _, t := range [][]uint16{plain, shift, option, optshift} {
		for k := range t {
			t[k] = 0xFFFE
		}
	}
	plain[KeyA] = 0x4002
	plain[KeyS] = 's'
	plain[KeyD] = 'd'
	plain[KeyF] = 0xFFFF
	plain[KeyH] = 0x8000 // sequence "fi"
	plain[KeyG] = 0x8001 // sequence "😀"
	plain[KeyZ] = 0x8005 // sequence index out of range
	plain[KeyE] = 0x4001
	plain[KeyR] = 'r'
	plain[KeyReturn] = '\r'
	plain[KeyTab] = '\t'
	plain[KeySpace] = ' '

	shift[KeyA] = 'A'
	shift[KeyS] = 'S'
	shift[KeyD] = 'D'
	shift[KeyE] = 'E'
	shift[KeyR] = 'R'
	shift[KeySpace] = ' '

	option[KeyA] = 0x4003
	option[KeyS] = 'ß'
	option[KeyD] = 0x40FF // dead key record out of range
	option[KeyF] = 0x4004
	option[KeyE] = 0x4000
	option[KeyReturn] = '\n'

	optshift[KeyS] = 'e'
	optshift[KeyE] = 0x4005

	return &Builder{
		KeyTables: []KeyTable{
			{
				MinKbdType:     0,
				MaxKbdType:     30,
				ModifierTables: []uint8{0, 0, 1, 1, 0, 0, 1, 1, 2, 2, 3},
				Keycodes:       50,
				CharTables:     [][]uint16{plain, shift, option, optshift},
				DeadKeys: []DeadKey{
					{CharData: 0xB4, NextState: 1, Format: 0},
					{CharData: 'e', Format: 1, Entries: [][2]uint16{{1, 'é'}}},
					{CharData: 'a', Format: 1, Entries: [][2]uint16{{1, 'á'}, {2, 'à'}}},
					{CharData: 'x', Format: 2, Entries: [][2]uint16{{1, 2}}},
					{CharData: 'q', Format: 0},
					{CharData: 0xFFFF, NextState: 3, Format: 0},
				},
				Terminators: []uint16{0xB4},
				Sequences:   []string{"fi", "😀"},
			},
			{
				MinKbdType:     40,
				MaxKbdType:     50,
				ModifierTables: []uint8{0, 0, 1, 1},
				Keycodes:       50,
				CharTables: [][]uint16{
					{'q', 'w'},
					{'Q', 'W'},
				},
			},
		},
	}
}
