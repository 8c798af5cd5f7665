// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package lz77

import (
	"bytes"
	"testing"
)

// ac21Encoder is a test-only, non-optimal AC21 compressor: the inverse of
// ac21Decoder, used only to build fixtures for round-trip assertions.
type ac21Encoder struct {
	out []byte
}

func (e *ac21Encoder) writeOpeningLiteral(lits []byte) {
	n := len(lits) - 1
	if n < 0 || n > 0xFFF {
		panic("test fixture: opening literal run out of range")
	}
	e.out = append(e.out, 0x20|byte(n&0x0F), byte((n>>1)&0xF8))
	e.out = append(e.out, lits...)
}

func (e *ac21Encoder) writeMatch(length, offset int, trailingLit []byte) {
	var nibble byte
	switch length {
	case 2:
		nibble = 0
	case 3:
		nibble = 1
	case 4:
		nibble = 2
	default:
		if length < 3 || length > 15 {
			panic("test fixture: default-class match length must be 3-15")
		}
		nibble = byte(length)
	}
	o := offset - 1
	opcode := nibble<<4 | byte(o&0x0F)
	b1 := byte((o >> 1) & 0xF8)
	e.out = append(e.out, opcode, b1)
	e.out = append(e.out, byte(len(trailingLit)))
	e.out = append(e.out, trailingLit...)
}

func (e *ac21Encoder) terminate() {
	e.out = append(e.out, 0x00)
}

func TestAC21LiteralOnlyRoundTrip(t *testing.T) {
	want := []byte("a literal only payload for AC21")
	var enc ac21Encoder
	enc.writeOpeningLiteral(want)
	enc.terminate()

	got, err := DecodeAC21(enc.out, len(want))
	if err != nil {
		t.Fatalf("DecodeAC21 error: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("round trip mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestAC21DefaultMatchRoundTrip(t *testing.T) {
	var enc ac21Encoder
	enc.writeOpeningLiteral([]byte("ABCDEFGH"))
	enc.writeMatch(8, 8, []byte("Z"))
	enc.terminate()

	want := []byte("ABCDEFGHABCDEFGHZ")
	got, err := DecodeAC21(enc.out, len(want))
	if err != nil {
		t.Fatalf("DecodeAC21 error: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("round trip mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestAC21OverlappingMatchExpansion(t *testing.T) {
	var enc ac21Encoder
	enc.writeOpeningLiteral([]byte("QWER"))
	enc.writeMatch(4, 1, nil)
	enc.terminate()

	want := []byte("QWERRRRR")
	got, err := DecodeAC21(enc.out, len(want))
	if err != nil {
		t.Fatalf("DecodeAC21 error: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("round trip mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestAC21OffsetBeforeBufferStartIsHardError(t *testing.T) {
	var enc ac21Encoder
	enc.writeOpeningLiteral([]byte("A"))
	// Only one byte is available; a match with offset 2 reaches before the
	// start of the decoded buffer.
	enc.writeMatch(2, 2, nil)
	enc.terminate()

	_, err := DecodeAC21(enc.out, 3)
	if err == nil {
		t.Fatal("expected an error decoding a match referencing before the start of the buffer")
	}
}
