package keylayout

import (
	"errors"
	"sync"
	"testing"

	"github.com/npillmayer/keylayout/internal/uctest"
	"github.com/npillmayer/keylayout/uc"
	"github.com/npillmayer/keylayout/ucquery"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blobSource struct {
	data    []byte
	kbdType uint32
	err     error
}

func (src blobSource) LayoutData() ([]byte, uint32, error) {
	return src.data, src.kbdType, src.err
}

func sampleData(t *testing.T) []byte {
	t.Helper()
	data, _ := uctest.Sample().Bytes()
	return data
}

func TestEmptyKeymap(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keylayout")
	defer teardown()
	//
	var km Keymap
	assert.Nil(t, km.Current())
	_, err := km.CharForKeycode(uctest.KeyS, 0)
	assert.ErrorIs(t, err, ErrNoLayout)
	assert.Equal(t, []uc.Chord{ucquery.NoChord}, km.KeyCodeForChar("s"))
}

func TestLoadAndQuery(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keylayout")
	defer teardown()
	//
	var km Keymap
	require.NoError(t, km.Load(sampleData(t), 0))
	s, err := km.CharForKeycode(uctest.KeyS, uctest.ModOption)
	require.NoError(t, err)
	assert.Equal(t, "ß", s)
	assert.Equal(t, []uc.Chord{{Keycode: uctest.KeyS, Modifiers: uctest.ModOption}}, km.KeyCodeForChar("ß"))
	assert.Equal(t, []uc.Chord{{Keycode: uc.KeycodeReturn}}, km.KeyCodeForChar("\n"))
}

func TestFailedLoadKeepsLayout(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keylayout")
	defer teardown()
	//
	var km Keymap
	data := sampleData(t)
	require.NoError(t, km.Load(data, 0))
	before := km.Current()
	err := km.Load(data[:len(data)-4], 45)
	assert.ErrorIs(t, err, uc.ErrOutOfBounds)
	assert.Same(t, before, km.Current(), "expected previous layout to stay in place")
	//
	fetchErr := errors.New("input source unavailable")
	err = km.Reload(blobSource{err: fetchErr})
	assert.ErrorIs(t, err, fetchErr)
	assert.Same(t, before, km.Current())
}

func TestReload(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keylayout")
	defer teardown()
	//
	var km Keymap
	data := sampleData(t)
	require.NoError(t, km.Reload(blobSource{data: data, kbdType: 0}))
	s, err := km.CharForKeycode(1, 0)
	require.NoError(t, err)
	assert.Equal(t, "s", s)
	require.NoError(t, km.Reload(blobSource{data: data, kbdType: 45}))
	assert.Equal(t, uint32(45), km.Current().KbdType)
	s, err = km.CharForKeycode(1, 0)
	require.NoError(t, err)
	assert.Equal(t, "w", s, "expected key table for keyboard type 45 to be in use")
}

func TestConcurrentReaders(t *testing.T) {
	var km Keymap
	data := sampleData(t)
	require.NoError(t, km.Load(data, 0))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				// either layout maps keycode 1 without modifiers
				s, err := km.CharForKeycode(1, 0)
				if err != nil || (s != "s" && s != "w") {
					t.Errorf("unexpected result %q (%v) while reloading", s, err)
					return
				}
			}
		}()
	}
	for j := 0; j < 20; j++ {
		kbdType := uint32(0)
		if j%2 == 1 {
			kbdType = 45
		}
		if err := km.Reload(blobSource{data: data, kbdType: kbdType}); err != nil {
			t.Errorf("reload failed: %v", err)
		}
	}
	wg.Wait()
}

func TestProcessWideKeymap(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keylayout")
	defer teardown()
	//
	Reset()
	defer Reset()
	_, err := CharForKeycode(uctest.KeyS, 0)
	assert.ErrorIs(t, err, ErrNoLayout)
	require.NoError(t, Load(sampleData(t), 0))
	require.NotNil(t, Current())
	assert.Equal(t, []uc.Chord{{Keycode: uctest.KeyS}}, KeyCodeForChar("s"))
	l, err := FromBinary(sampleData(t), 0)
	require.NoError(t, err)
	assert.NotSame(t, l, Current(), "expected FromBinary not to publish")
	require.NoError(t, Reload(blobSource{data: sampleData(t), kbdType: 45}))
	assert.Equal(t, uint32(45), Current().KbdType)
}
