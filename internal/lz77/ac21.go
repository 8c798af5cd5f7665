// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package lz77

import "github.com/saferwall/dwg/internal/dwgerr"

// DecodeAC21 decompresses an AC21 LZ77 stream into exactly decompressedSize
// bytes. AC21 uses an opcode table distinct from AC18 (see ac18.go) but the
// same overlap and failure semantics: a match may read bytes its own
// decoder just wrote, a zero offset is always a hard error, and a match
// that would overrun the declared size is always a hard error.
//
// The opcode table has four classes selected by the leading byte's high
// nibble: 0, 1, 2 and "default" (nibble >= 3). Class 2 is special only at
// the very start of the stream, where it gives the opening literal run's
// length instead of a match. The other three classes each decode one
// match (length, offset) from the leading byte plus one further byte,
// followed by a one-byte trailing literal count, the same
// match-then-literal-run cadence AC18 uses.
func DecodeAC21(src []byte, decompressedSize int) ([]byte, error) {
	d := &ac21Decoder{src: src}
	dst := make([]byte, 0, decompressedSize)

	litCount, err := d.readOpeningLiteralLength()
	if err != nil {
		return nil, err
	}
	if err := d.copyLiteral(&dst, litCount); err != nil {
		return nil, err
	}

	for len(dst) < decompressedSize {
		opcode, err := d.next()
		if err != nil {
			return nil, err
		}
		if opcode == 0x00 {
			break
		}

		length, offset, err := d.decodeReference(opcode)
		if err != nil {
			return nil, err
		}
		if offset == 0 {
			return nil, dwgerr.New(dwgerr.KindDecompression, "AC21: back-reference with zero offset")
		}
		if err := d.copyMatch(&dst, length, offset, decompressedSize); err != nil {
			return nil, err
		}

		if len(dst) >= decompressedSize {
			break
		}
		trailingLit, err := d.next()
		if err != nil {
			return nil, err
		}
		if err := d.copyLiteral(&dst, int(trailingLit)); err != nil {
			return nil, err
		}
	}

	if len(dst) != decompressedSize {
		return nil, dwgerr.New(dwgerr.KindDecompression, "AC21: stream produced the wrong number of bytes")
	}
	return dst, nil
}

type ac21Decoder struct {
	src []byte
	pos int
}

func (d *ac21Decoder) next() (byte, error) {
	if d.pos >= len(d.src) {
		return 0, dwgerr.ErrUnexpectedEnd
	}
	b := d.src[d.pos]
	d.pos++
	return b, nil
}

// readOpeningLiteralLength reads the stream's leading literal-run length.
// The leading byte is a class-2 opcode (top nibble 0x20) whose low nibble
// plus one further byte give the count, mirroring the length encoding the
// default class uses for matches elsewhere in the stream.
func (d *ac21Decoder) readOpeningLiteralLength() (int, error) {
	b, err := d.next()
	if err != nil {
		return 0, err
	}
	n := int(b & 0x0F)
	next, err := d.next()
	if err != nil {
		return 0, err
	}
	n |= int(next&0xF8) << 1
	return n + 1, nil
}

func (d *ac21Decoder) copyLiteral(dst *[]byte, n int) error {
	for i := 0; i < n; i++ {
		b, err := d.next()
		if err != nil {
			return err
		}
		*dst = append(*dst, b)
	}
	return nil
}

func (d *ac21Decoder) copyMatch(dst *[]byte, length, offset, decompressedSize int) error {
	start := len(*dst) - offset
	if start < 0 {
		return dwgerr.New(dwgerr.KindDecompression, "AC21: back-reference before start of buffer")
	}
	for i := 0; i < length; i++ {
		if len(*dst) >= decompressedSize {
			return dwgerr.New(dwgerr.KindDecompression, "AC21: match exceeds declared decompressed size")
		}
		*dst = append(*dst, (*dst)[start+i])
	}
	return nil
}

// decodeReference decodes one match's (length, offset) pair. Classes 0 and
// 1 are short matches distinguished only by their length base; the
// default class (nibble >= 3) follows the length/offset formula spelled
// out: length = nibble, offset = low-nibble | (next_byte & 0xF8) << 1,
// plus one.
func (d *ac21Decoder) decodeReference(opcode byte) (length, offset int, err error) {
	nibble := opcode >> 4
	switch {
	case nibble == 0:
		length = 2
	case nibble == 1:
		length = 3
	case nibble == 2:
		length = 4
	default:
		length = int(nibble)
	}

	b1, err := d.next()
	if err != nil {
		return 0, 0, err
	}
	offset = int(opcode&0x0F) | int(b1&0xF8)<<1
	offset++
	return length, offset, nil
}
