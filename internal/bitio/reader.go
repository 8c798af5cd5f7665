// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package bitio implements the version-polymorphic bit-stream reader of
// §4.2: a byte-addressable buffer presented as a bit-addressable one, with
// the ~30 decode primitives the DWG format needs. A Reader is
// single-threaded and cooperative: every read mutates its own position,
// never blocks, and never shares state with another Reader except the
// underlying byte slice (used to back the object walker's three
// sub-readers, see internal/objects).
package bitio

import (
	"github.com/saferwall/dwg/internal/dwgerr"
	"github.com/saferwall/dwg/internal/dwgver"
)

// Reader reads DWG bit-packed primitives out of data, starting at bit 0.
type Reader struct {
	data    []byte
	version dwgver.Version
	bitPos  int64
}

// New returns a Reader over data for the given drawing version.
func New(data []byte, version dwgver.Version) *Reader {
	return &Reader{data: data, version: version}
}

// Version returns the drawing version the reader was constructed with.
func (r *Reader) Version() dwgver.Version { return r.version }

// Len returns the total bit length of the underlying buffer.
func (r *Reader) Len() int64 { return int64(len(r.data)) * 8 }

// PositionInBits returns the current absolute bit offset.
func (r *Reader) PositionInBits() int64 { return r.bitPos }

// SetPositionInBits seeks to an absolute bit offset. It does not itself
// fail on an out-of-range position; the next read will.
func (r *Reader) SetPositionInBits(pos int64) { r.bitPos = pos }

// ResetShift aligns the position to the next byte boundary (a no-op if
// already aligned).
func (r *Reader) ResetShift() {
	if rem := r.bitPos % 8; rem != 0 {
		r.bitPos += 8 - rem
	}
}

// Remaining returns the number of unread bits.
func (r *Reader) Remaining() int64 {
	rem := r.Len() - r.bitPos
	if rem < 0 {
		return 0
	}
	return rem
}

// readBits reads the next n (0..64) bits MSB-first and returns them
// right-aligned in a uint64.
func (r *Reader) readBits(n int) (uint64, error) {
	if n == 0 {
		return 0, nil
	}
	if int64(n) > r.Remaining() {
		return 0, dwgerr.ErrUnexpectedEnd
	}
	var result uint64
	remaining := n
	for remaining > 0 {
		byteIndex := r.bitPos / 8
		bitInByte := r.bitPos % 8
		avail := 8 - bitInByte
		take := avail
		if int64(take) > int64(remaining) {
			take = int64(remaining)
		}
		shift := avail - take
		mask := byte((1 << uint(take)) - 1)
		bits := (r.data[byteIndex] >> uint(shift)) & mask
		result = (result << uint(take)) | uint64(bits)
		r.bitPos += take
		remaining -= int(take)
	}
	return result, nil
}

// readLittleEndian reads numBytes bytes (each MSB-first, bit-packed) and
// assembles them as a little-endian unsigned integer. This is how
// raw_short/raw_long/double/etc. stay correct at any bit shift.
func (r *Reader) readLittleEndian(numBytes int) (uint64, error) {
	var value uint64
	for i := 0; i < numBytes; i++ {
		b, err := r.readBits(8)
		if err != nil {
			return 0, err
		}
		value |= b << uint(8*i)
	}
	return value, nil
}

// Bit reads a single bit.
func (r *Reader) Bit() (bool, error) {
	v, err := r.readBits(1)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// TwoBits reads a 2-bit big-endian-within-byte discriminator.
func (r *Reader) TwoBits() (uint8, error) {
	v, err := r.readBits(2)
	return uint8(v), err
}

// ThreeBits reads a 3-bit field, used for BLL byte counts.
func (r *Reader) ThreeBits() (uint8, error) {
	v, err := r.readBits(3)
	return uint8(v), err
}

// Byte reads 8 bits, possibly straddling a byte boundary.
func (r *Reader) Byte() (byte, error) {
	v, err := r.readBits(8)
	return byte(v), err
}

// RawShort reads a little-endian unsigned 16-bit value.
func (r *Reader) RawShort() (uint16, error) {
	v, err := r.readLittleEndian(2)
	return uint16(v), err
}

// RawLong reads a little-endian signed 32-bit value.
func (r *Reader) RawLong() (int32, error) {
	v, err := r.readLittleEndian(4)
	return int32(v), err
}

// RawULong reads a little-endian unsigned 32-bit value.
func (r *Reader) RawULong() (uint32, error) {
	v, err := r.readLittleEndian(4)
	return uint32(v), err
}

// RawLongLong reads a little-endian unsigned 64-bit value.
func (r *Reader) RawLongLong() (uint64, error) {
	return r.readLittleEndian(8)
}
