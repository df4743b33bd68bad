// Package layoutload reads keyboard layout resources from files.
package layoutload

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("keylayout")
}

// File is a raw 'uchr' layout resource stored in a file, together with the
// keyboard type to decode it for. It is a keylayout.LayoutSource.
type File struct {
	Path    string
	KbdType uint32
}

// LayoutData reads the file.
func (f File) LayoutData() ([]byte, uint32, error) {
	data, err := Load(f.Path)
	if err != nil {
		return nil, 0, err
	}
	return data, f.KbdType, nil
}

// Bytes is a layout resource already in memory. It is a keylayout.LayoutSource.
type Bytes struct {
	Data    []byte
	KbdType uint32
}

// LayoutData returns the resource bytes.
func (b Bytes) LayoutData() ([]byte, uint32, error) {
	if len(b.Data) == 0 {
		return nil, 0, errors.New("empty keyboard layout resource")
	}
	return b.Data, b.KbdType, nil
}

// Load reads a layout resource from a file.
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot load keyboard layout: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("keyboard layout file %s is empty", path)
	}
	tracer().Debugf("loaded %s of layout data from %s", humanize.IBytes(uint64(len(data))), path)
	return data, nil
}
