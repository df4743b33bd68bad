package uc

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Reading bytes from a layout's binary representation

// ErrOutOfBounds is returned (wrapped) whenever a read would exceed the
// layout's binary data. It makes the layout unusable as a whole.
var ErrOutOfBounds = errors.New("layout data out of bounds")

// binarySegm is a segment of byte data.
type binarySegm []byte

// reader provides bounds-checked access to scalars and arrays of scalars
// at absolute byte offsets. Every other part of the decoder goes through it.
type reader struct {
	data  binarySegm
	order binary.ByteOrder
}

func newReader(data []byte, order binary.ByteOrder) reader {
	if order == nil {
		order = binary.NativeEndian
	}
	return reader{data: binarySegm(data), order: order}
}

// Size returns the size of the underlying data in bytes.
func (r reader) Size() int {
	return len(r.data)
}

// view returns n bytes at the given offset.
// The byte segment returned is a sub-slice of r.data. n may be 0, which is
// the case for empty arrays.
func (r reader) view(offset, n int) (binarySegm, error) {
	end, err := checkedAddInt(offset, n)
	if err != nil || offset < 0 || n < 0 || end > len(r.data) {
		return nil, fmt.Errorf("%w: %d bytes at offset %d, data size is %d",
			ErrOutOfBounds, n, offset, len(r.data))
	}
	return r.data[offset:end], nil
}

func (r reader) u8(offset int) (uint8, error) {
	b, err := r.view(offset, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r reader) u16(offset int) (uint16, error) {
	b, err := r.view(offset, 2)
	if err != nil {
		return 0, err
	}
	return r.order.Uint16(b), nil
}

func (r reader) u32(offset int) (uint32, error) {
	b, err := r.view(offset, 4)
	if err != nil {
		return 0, err
	}
	return r.order.Uint32(b), nil
}

// u8s returns count consecutive bytes at offset as a fresh slice.
func (r reader) u8s(offset, count int) ([]uint8, error) {
	b, err := r.view(offset, count)
	if err != nil {
		return nil, err
	}
	return append([]uint8(nil), b...), nil
}

// u16s returns count consecutive uint16 values at offset.
func (r reader) u16s(offset, count int) ([]uint16, error) {
	size, err := checkedMulInt(count, 2)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutOfBounds, err)
	}
	b, err := r.view(offset, size)
	if err != nil {
		return nil, err
	}
	vals := make([]uint16, count)
	for i := range vals {
		vals[i] = r.order.Uint16(b[2*i:])
	}
	return vals, nil
}

// u32s returns count consecutive uint32 values at offset.
func (r reader) u32s(offset, count int) ([]uint32, error) {
	size, err := checkedMulInt(count, 4)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutOfBounds, err)
	}
	b, err := r.view(offset, size)
	if err != nil {
		return nil, err
	}
	vals := make([]uint32, count)
	for i := range vals {
		vals[i] = r.order.Uint32(b[4*i:])
	}
	return vals, nil
}

// isLittleEndian reports whether a byte order stores the least significant
// byte first. binary.NativeEndian cannot be compared by value, so we probe it.
func isLittleEndian(order binary.ByteOrder) bool {
	var probe [2]byte
	order.PutUint16(probe[:], 1)
	return probe[0] == 1
}

// ---------------------------------------------------------------------------

// Checked arithmetic operations to prevent integer overflow

// checkedMulInt checks for overflow in multiplication of two non-negative integers
func checkedMulInt(a, b int) (int, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a < 0 || b < 0 {
		return 0, fmt.Errorf("negative operand: %d * %d", a, b)
	}
	if a > math.MaxInt/b {
		return 0, fmt.Errorf("integer overflow: %d * %d", a, b)
	}
	return a * b, nil
}

// checkedAddInt checks for overflow in addition of two integers
func checkedAddInt(a, b int) (int, error) {
	if b > 0 && a > math.MaxInt-b {
		return 0, fmt.Errorf("integer overflow: %d + %d", a, b)
	}
	if b < 0 && a < math.MinInt-b {
		return 0, fmt.Errorf("integer overflow: %d + %d", a, b)
	}
	return a + b, nil
}
