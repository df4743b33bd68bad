/*
Package uc decodes keyboard layout resources of type 'uchr'.

A 'uchr' resource is the binary description of a keyboard layout as handed
out by the host's text input service: for every physical key position (a
"keycode") and every combination of modifier keys it states which character
the keystroke produces. Dead keys, i.e. keys which do not produce a
character on their own but alter the output of the following keystroke, are
described by a small state machine encoded in the same resource.

Package uc reads such a resource in one pass and produces a Layout, which
holds two tables:

▪︎ character → chord(s), where a chord is a (keycode, modifier combination)
pair. Characters reachable only by a dead key composition map to a sequence
of two chords.

▪︎ chord → character, including placeholders for chords which do not produce
a character by themselves.

The resource consists of a header, followed by a list of key table infos, one
per range of keyboard hardware types. Every key table info links to a
modifier table, a character table, and optionally to state records, state
terminators and a sequence table:

	Header           format, data version, feature info, table count
	KeyTableInfo[]   kbd type range, offsets of the sub-tables
	ModifierTable    modifier combination → character table index
	CharacterTable   one table of raw key values per modifier combination
	StateRecords     dead key records (initial, terminal, range)
	StateTerminators base character of every dead key state
	SequenceTable    UTF-16 fragments for keys producing more than one code unit

All integers are stored in the byte order of the host which produced the
resource. Parse assumes native byte order unless told otherwise.

Package uc does not obtain layout data from the operating system. Clients hand
in the raw bytes together with the current keyboard type identifier.

# Status

Dead key records of the "range" format are not supported. They are skipped
and reported as minor errors of the resulting Layout.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package uc

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'keylayout.uc'
func tracer() tracing.Trace {
	return tracing.Select("keylayout.uc")
}
