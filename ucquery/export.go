package ucquery

import (
	"github.com/npillmayer/keylayout/uc"
	"github.com/tidwall/sjson"
)

// ExportJSON serializes the mappings of a layout. The document looks like
//
//	{
//	  "kbd_type": 40, "key_table": 0, "modifiers": [0, 2, 8, 10],
//	  "chars":      [{"char": "a", "chords": [[0, 0]]}, …],
//	  "chords":     [{"keycode": 0, "modifiers": 0, "text": "a"}, …],
//	  "composites": [{"dead": [14, 8], "base": [14, 0], "char": "é"}, …]
//	}
//
// "chars" follows the order characters were found in, "chords" and
// "composites" are sorted by modifier combination, then keycode.
// Text is exported unescaped.
func ExportJSON(l *uc.Layout) ([]byte, error) {
	js := []byte(`{}`)
	var err error
	set := func(path string, v any) {
		if err == nil {
			js, err = sjson.SetBytes(js, path, v)
		}
	}
	set("kbd_type", l.KbdType)
	set("key_table", l.Selected)
	combos := l.ModifierCombos()
	mods := make([]int, len(combos))
	for i, m := range combos {
		mods[i] = int(m)
	}
	set("modifiers", mods)
	set("chars", []any{})
	for ch, chords := range l.Chars() {
		set("chars.-1", map[string]any{"char": ch, "chords": pairs(chords...)})
	}
	set("chords", []any{})
	for c, text := range l.Reverse() {
		set("chords.-1", map[string]any{
			"keycode":   c.Keycode,
			"modifiers": int(c.Modifiers),
			"text":      text,
		})
	}
	set("composites", []any{})
	for cc, ch := range l.Composites() {
		p := pairs(cc.Dead, cc.Base)
		set("composites.-1", map[string]any{"dead": p[0], "base": p[1], "char": ch})
	}
	if err != nil {
		tracer().Errorf("JSON export failed: %v", err)
		return nil, err
	}
	return js, nil
}

func pairs(chords ...uc.Chord) [][2]int {
	p := make([][2]int, len(chords))
	for i, c := range chords {
		p[i] = [2]int{int(c.Keycode), int(c.Modifiers)}
	}
	return p
}
