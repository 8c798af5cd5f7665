// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package lz77 implements the two DWG-specific LZ77 variants: AC18 (used
// by R2004/R2007 sections and page maps) and AC21 (used by R2010+ section
// and page maps, layered on top of Reed-Solomon de-interleaving). Both
// decoders allow back-reference copies to read bytes they just wrote,
// since overlapping matches are a normal run-length-expansion technique in
// this format.
package lz77

import "github.com/saferwall/dwg/internal/dwgerr"

// DecodeAC18 decompresses an AC18 LZ77 stream into exactly decompressedSize
// bytes.
func DecodeAC18(src []byte, decompressedSize int) ([]byte, error) {
	d := &ac18Decoder{src: src}
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

		if opcode == 0x11 {
			b1, err1 := d.next()
			b2, err2 := d.next()
			if err1 == nil && err2 == nil && b1 == 0x00 && b2 == 0x00 {
				break
			}
			return nil, dwgerr.New(dwgerr.KindDecompression, "AC18: malformed 0x11 terminator")
		}

		length, offset, class, err := d.decodeReference(opcode)
		if err != nil {
			return nil, err
		}
		if offset == 0 {
			return nil, dwgerr.New(dwgerr.KindDecompression, "AC18: back-reference with zero offset")
		}
		if err := d.copyMatch(&dst, length, offset, decompressedSize); err != nil {
			return nil, err
		}

		trailingLit, err := d.trailingLiteralCount(opcode, class)
		if err != nil {
			return nil, err
		}
		if err := d.copyLiteral(&dst, trailingLit); err != nil {
			return nil, err
		}
	}

	if len(dst) != decompressedSize {
		return nil, dwgerr.New(dwgerr.KindDecompression, "AC18: stream produced the wrong number of bytes")
	}
	return dst, nil
}

type ac18Decoder struct {
	src []byte
	pos int
}

func (d *ac18Decoder) next() (byte, error) {
	if d.pos >= len(d.src) {
		return 0, dwgerr.ErrUnexpectedEnd
	}
	b := d.src[d.pos]
	d.pos++
	return b, nil
}

// extendZeroRun implements the "zero-run extension" pattern used for the
// opening literal length, the long and medium match lengths, and the short
// class's byte-borne trailing-literal count: a non-zero seed value
// is used as-is; a zero seed means "read further 0x00 bytes, each adding
// 0xFF, until a non-zero terminator byte adds its own value".
func (d *ac18Decoder) extendZeroRun(seed int) (int, error) {
	if seed != 0 {
		return seed, nil
	}
	total := 0
	for {
		b, err := d.next()
		if err != nil {
			return 0, err
		}
		if b == 0x00 {
			total += 0xFF
			continue
		}
		return total + int(b), nil
	}
}

// readOpeningLiteralLength reads the stream's leading literal run length:
// the first byte gives a count of 3 plus its value, extended by the usual
// zero-run rule when that byte is itself zero.
func (d *ac18Decoder) readOpeningLiteralLength() (int, error) {
	b, err := d.next()
	if err != nil {
		return 0, err
	}
	n, err := d.extendZeroRun(int(b))
	if err != nil {
		return 0, err
	}
	return n + 3, nil
}

func (d *ac18Decoder) copyLiteral(dst *[]byte, n int) error {
	for i := 0; i < n; i++ {
		b, err := d.next()
		if err != nil {
			return err
		}
		*dst = append(*dst, b)
	}
	return nil
}

func (d *ac18Decoder) copyMatch(dst *[]byte, length, offset, decompressedSize int) error {
	start := len(*dst) - offset
	if start < 0 {
		return dwgerr.New(dwgerr.KindDecompression, "AC18: back-reference before start of buffer")
	}
	for i := 0; i < length; i++ {
		if len(*dst) >= decompressedSize {
			return dwgerr.New(dwgerr.KindDecompression, "AC18: match exceeds declared decompressed size")
		}
		*dst = append(*dst, (*dst)[start+i])
	}
	return nil
}

// refClass distinguishes the three back-reference opcode shapes, since
// only the short class has spare opcode bits left over for an inline
// trailing-literal count; the other two spend every low bit on length and
// offset and so always read their trailing-literal count from a dedicated
// byte.
type refClass int

const (
	refClassLong refClass = iota
	refClassMedium
	refClassShort
)

// decodeReference decodes one non-terminator command byte's match length
// and offset, per the three back-reference opcode classes of §4.3.
func (d *ac18Decoder) decodeReference(opcode byte) (length, offset int, class refClass, err error) {
	switch {
	case opcode >= 0x10 && opcode <= 0x1F:
		length, err = d.extendZeroRun(int(opcode & 0x07))
		if err != nil {
			return 0, 0, 0, err
		}
		length += 2
		b1, err1 := d.next()
		if err1 != nil {
			return 0, 0, 0, err1
		}
		b2, err2 := d.next()
		if err2 != nil {
			return 0, 0, 0, err2
		}
		offset = int(b1) | (int(b2) << 8)
		if opcode&0x08 != 0 {
			offset += 0x4000
		}
		offset++
		return length, offset, refClassLong, nil

	case opcode >= 0x20 && opcode <= 0x3F:
		length, err = d.extendZeroRun(int(opcode & 0x1F))
		if err != nil {
			return 0, 0, 0, err
		}
		length += 2
		b1, err1 := d.next()
		if err1 != nil {
			return 0, 0, 0, err1
		}
		b2, err2 := d.next()
		if err2 != nil {
			return 0, 0, 0, err2
		}
		offset = (int(b1) | (int(b2) << 8)) + 1
		return length, offset, refClassMedium, nil

	default:
		// Short back-reference: opcode in [0x40,0xFF] or [0x00,0x0F] after
		// the opening literal run.
		length = int(opcode>>4) - 1
		if length < 1 {
			length = 1
		}
		b1, err1 := d.next()
		if err1 != nil {
			return 0, 0, 0, err1
		}
		offset = (int((opcode>>2)&0x03)<<8 | int(b1)) + 1
		return length, offset, refClassShort, nil
	}
}

// trailingLiteralCount reads the 0-3 byte literal run that immediately
// follows a back-reference. The short class draws it from the opcode's
// spare low 2 bits (0 meaning "read one more byte, zero-run extended");
// the long and medium classes spend all their low bits on length and
// offset, so their trailing-literal count always comes from one
// dedicated byte.
func (d *ac18Decoder) trailingLiteralCount(opcode byte, class refClass) (int, error) {
	if class == refClassShort {
		n := int(opcode & 0x03)
		if n != 0 {
			return n, nil
		}
		b, err := d.next()
		if err != nil {
			return 0, err
		}
		return d.extendZeroRun(int(b))
	}
	b, err := d.next()
	if err != nil {
		return 0, err
	}
	return int(b), nil
}
