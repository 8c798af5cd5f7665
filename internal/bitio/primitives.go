// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package bitio

import (
	"math"

	"github.com/saferwall/dwg/internal/dwgerr"
)

// Double reads a little-endian IEEE-754 double, aligned to the current
// shift (i.e. via the same straddling byte reader as the other raw_*
// primitives).
func (r *Reader) Double() (float64, error) {
	bits, err := r.readLittleEndian(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

// BitShort reads a 2-bit-tagged short: 00=literal short, 01=literal byte,
// 10=0, 11=256.
func (r *Reader) BitShort() (int16, error) {
	tag, err := r.TwoBits()
	if err != nil {
		return 0, err
	}
	switch tag {
	case 0:
		v, err := r.RawShort()
		return int16(v), err
	case 1:
		b, err := r.Byte()
		return int16(b), err
	case 2:
		return 0, nil
	default:
		return 256, nil
	}
}

// BitLong reads a 2-bit-tagged long: 00=literal long, 01=literal byte,
// 10=0, 11=reserved (an error).
func (r *Reader) BitLong() (int32, error) {
	tag, err := r.TwoBits()
	if err != nil {
		return 0, err
	}
	switch tag {
	case 0:
		return r.RawLong()
	case 1:
		b, err := r.Byte()
		return int32(b), err
	case 2:
		return 0, nil
	default:
		return 0, dwgerr.Wrap(dwgerr.KindParse, "bit_long reserved tag 0b11", dwgerr.ErrInvalidCode)
	}
}

// BitDouble reads a 2-bit-tagged double: 00=literal double, 01=1.0,
// 10=0.0, 11=reserved (an error).
func (r *Reader) BitDouble() (float64, error) {
	tag, err := r.TwoBits()
	if err != nil {
		return 0, err
	}
	switch tag {
	case 0:
		return r.Double()
	case 1:
		return 1.0, nil
	case 2:
		return 0.0, nil
	default:
		return 0, dwgerr.Wrap(dwgerr.KindParse, "bit_double reserved tag 0b11", dwgerr.ErrInvalidCode)
	}
}

// BitDoubleDefault reads a bit-double-with-default: 00 uses the supplied
// default unchanged, 01 patches its low 4 bytes (bits 0..31) from the
// stream and keeps the default's high 4 bytes, 10 patches its middle 4
// bytes (bits 16..47) and keeps the default's low/high 2 bytes, 11 reads
// a full literal double.
func (r *Reader) BitDoubleDefault(def float64) (float64, error) {
	tag, err := r.TwoBits()
	if err != nil {
		return 0, err
	}
	defBits := math.Float64bits(def)
	switch tag {
	case 0:
		return def, nil
	case 1:
		lo, err := r.RawULong()
		if err != nil {
			return 0, err
		}
		bits := (defBits &^ 0xFFFFFFFF) | uint64(lo)
		return math.Float64frombits(bits), nil
	case 2:
		// Patch bytes 2..5 (bits 16..47), keeping bytes 0..1 (bits 0..15)
		// and bytes 6..7 (bits 48..63, sign + top exponent bits) from the
		// default untouched.
		patch, err := r.readLittleEndian(4)
		if err != nil {
			return 0, err
		}
		bits := defBits & 0x000000000000FFFF
		bits |= patch << 16
		bits |= defBits & 0xFFFF000000000000
		return math.Float64frombits(bits), nil
	default:
		return r.Double()
	}
}

// BitLongLong reads a 3-bit length n (0..7) followed by n little-endian
// bytes, zero-extended to 64 bits.
func (r *Reader) BitLongLong() (int64, error) {
	n, err := r.ThreeBits()
	if err != nil {
		return 0, err
	}
	v, err := r.readLittleEndian(int(n))
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}

// ModularChar reads an unsigned variable-length integer encoded as groups
// of 7 data bits with the MSB of each byte acting as a continuation flag.
func (r *Reader) ModularChar() (uint64, error) {
	var result uint64
	shift := uint(0)
	for {
		b, err := r.Byte()
		if err != nil {
			return 0, err
		}
		result |= uint64(b&0x7F) << shift
		if b&0x80 == 0 {
			break
		}
		shift += 7
		if shift > 63 {
			return 0, dwgerr.New(dwgerr.KindParse, "modular_char exceeds 64 bits")
		}
	}
	return result, nil
}

// SignedModularChar reads a ModularChar whose least-significant bit is a
// sign flag rather than part of the magnitude.
func (r *Reader) SignedModularChar() (int64, error) {
	v, err := r.ModularChar()
	if err != nil {
		return 0, err
	}
	mag := int64(v >> 1)
	if v&1 != 0 {
		return -mag, nil
	}
	return mag, nil
}

// ModularShort reads a ModularChar narrowed to 16 bits of magnitude (two
// 7-bit groups is the common case in practice, but the full chain is
// honored).
func (r *Reader) ModularShort() (uint16, error) {
	v, err := r.ModularChar()
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}
