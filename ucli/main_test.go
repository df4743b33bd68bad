package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	op, err := parseCommand(`key " "`)
	require.NoError(t, err)
	assert.Equal(t, KEY, op.code)
	assert.Equal(t, []string{" "}, op.args)
	//
	op, err = parseCommand("CHAR 14 8")
	require.NoError(t, err)
	assert.Equal(t, CHAR, op.code)
	n, err := op.intArg(1)
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	_, err = op.intArg(2)
	assert.Error(t, err)
	//
	op, err = parseCommand("frobnicate 1 2")
	require.NoError(t, err)
	assert.Equal(t, HELP, op.code)
	assert.Empty(t, op.args)
	//
	_, err = parseCommand(`key "unterminated`)
	assert.Error(t, err)
}

func TestParseCharArg(t *testing.T) {
	for arg, expected := range map[string]string{
		"é":       "é",
		"U+00E9":  "é",
		"u+1f600": "😀",
		"U":       "U",
	} {
		ch, err := parseCharArg(arg)
		require.NoError(t, err)
		assert.Equal(t, expected, ch)
	}
	_, err := parseCharArg("U+D800")
	assert.Error(t, err)
	_, err = parseCharArg("U+xyz")
	assert.Error(t, err)
}

func TestCommandTablesConsistent(t *testing.T) {
	for name, code := range opMap {
		_, ok := commandFn[code]
		assert.True(t, ok, "no function for command %s", name)
	}
	assert.Len(t, opNames, len(commandFn))
}
