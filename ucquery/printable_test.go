package ucquery

import (
	"testing"

	"github.com/npillmayer/keylayout/uc"
	"github.com/stretchr/testify/assert"
)

func TestPrintify(t *testing.T) {
	tests := []struct {
		input, expected string
	}{
		{"", ""},
		{"a", "a"},
		{" ", " "},
		{"fi", "fi"},
		{"é", "é"},
		{"😀", "😀"},
		{"\t", `\t`},
		{"\r", `\r`},
		{"é\n", `\xe9\n`},
		{"a\\\x01", `a\\\x01`},
		{"\u00a0", `\xa0`},   // no-break space
		{"\u200b", `\u200b`}, // format character
		{"\u2028", `\u2028`}, // line separator
		{"\u0378", `\u0378`}, // unassigned
		{"😀\x00", `\U0001f600\x00`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Printify(tt.input), "printify(%q)", tt.input)
	}
}

func TestIsPrintable(t *testing.T) {
	assert.True(t, IsPrintable("dk ´"))
	assert.True(t, IsPrintable("<65534>"))
	assert.False(t, IsPrintable("\x7f"))
	assert.False(t, IsPrintable("\ue000"), "private use")
}

func TestModifierString(t *testing.T) {
	assert.Equal(t, "", ModifierString(0))
	assert.Equal(t, "⇧⌥", ModifierString(uc.ModifierCombo(10)))
	assert.Equal(t, "⇧⌘⌃⌥⇪", ModifierString(uc.ModifierCombo(31)))
}

func TestFormatRow(t *testing.T) {
	assert.Equal(t, "1       | s     | S", FormatRow([]string{"1", "s", "S"}))
	assert.Equal(t, "Keycode | a", FormatRow([]string{"Keycode", "a"}))
	assert.Equal(t, "100     | abcdefghi     | x", FormatRow([]string{"100", "abcdefghi", "x"}))
	assert.Equal(t, "--------|--", HeaderRule("Keycode | a"))
}
