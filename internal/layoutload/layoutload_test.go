package layoutload

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/keylayout"
	"github.com/npillmayer/keylayout/internal/uctest"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ keylayout.LayoutSource = File{}
	_ keylayout.LayoutSource = Bytes{}
)

func TestLoadFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keylayout")
	defer teardown()
	//
	data, _ := uctest.Sample().Bytes()
	path := filepath.Join(t.TempDir(), "sample.uchr")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	blob, kbdType, err := File{Path: path, KbdType: 45}.LayoutData()
	require.NoError(t, err)
	assert.Equal(t, data, blob)
	assert.Equal(t, uint32(45), kbdType)
	//
	var km keylayout.Keymap
	require.NoError(t, km.Reload(File{Path: path, KbdType: 45}))
	assert.Equal(t, 1, km.Current().Selected)
}

func TestLoadErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keylayout")
	defer teardown()
	//
	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "missing.uchr"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
	empty := filepath.Join(dir, "empty.uchr")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = Load(empty)
	assert.Error(t, err)
	_, _, err = Bytes{}.LayoutData()
	assert.Error(t, err)
}
