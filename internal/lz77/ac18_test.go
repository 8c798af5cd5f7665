// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package lz77

import (
	"bytes"
	"testing"
)

// ac18Encoder is a test-only, non-optimal AC18 compressor: it is the
// inverse of ac18Decoder restricted to the opcode shapes this test suite
// exercises, used only to build fixtures for round-trip assertions. The
// format's writer side is out of scope for this package.
type ac18Encoder struct {
	out []byte
}

func (e *ac18Encoder) writeOpeningLiteral(lits []byte) {
	n := len(lits)
	if n < 4 {
		panic("test fixture: opening literal run must be >= 4 bytes")
	}
	e.out = append(e.out, byte(n-3))
	e.out = append(e.out, lits...)
}

// writeShortMatch encodes a short-class back-reference. trailingLit must
// have length 1-3: the short class's only spare opcode bits (the low 2)
// can represent those counts directly, but not zero (a zero seed always
// means "read one more byte", which can only yield a count >= 1).
func (e *ac18Encoder) writeShortMatch(length, offset int, trailingLit []byte) {
	if n := len(trailingLit); n < 1 || n > 3 {
		panic("test fixture: short-match trailing literal must be 1-3 bytes")
	}
	o := offset - 1
	opcode := byte((length+1)<<4) | byte((o>>8)&0x03)<<2 | byte(len(trailingLit))
	e.out = append(e.out, opcode, byte(o&0xFF))
	e.out = append(e.out, trailingLit...)
}

// writeMediumMatch encodes a medium-class back-reference. The medium
// class spends all 5 low opcode bits on length, so its trailing-literal
// count always follows as one dedicated byte (any count 0-255 is valid).
func (e *ac18Encoder) writeMediumMatch(length, offset int, trailingLit []byte) {
	l := length - 2
	opcode := byte(0x20) | byte(l&0x1F)
	o := offset - 1
	e.out = append(e.out, opcode, byte(o&0xFF), byte((o>>8)&0xFF))
	e.out = append(e.out, byte(len(trailingLit)))
	e.out = append(e.out, trailingLit...)
}

func (e *ac18Encoder) terminate() {
	e.out = append(e.out, 0x11, 0x00, 0x00)
}

func TestAC18LiteralOnlyRoundTrip(t *testing.T) {
	want := []byte("hello world this is a literal only payload!!")
	var enc ac18Encoder
	enc.writeOpeningLiteral(want)
	enc.terminate()

	got, err := DecodeAC18(enc.out, len(want))
	if err != nil {
		t.Fatalf("DecodeAC18 error: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("round trip mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestAC18ShortMatchRoundTrip(t *testing.T) {
	var enc ac18Encoder
	enc.writeOpeningLiteral([]byte("ABCDABCD"))
	// Repeat "ABCD" via a short back-reference of length 4, offset 4.
	enc.writeShortMatch(4, 4, []byte("X"))
	enc.terminate()

	want := []byte("ABCDABCDABCDX")
	got, err := DecodeAC18(enc.out, len(want))
	if err != nil {
		t.Fatalf("DecodeAC18 error: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("round trip mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestAC18OverlappingMatchExpansion(t *testing.T) {
	var enc ac18Encoder
	enc.writeOpeningLiteral([]byte("QWER"))
	// Offset 1 with length 6 run-length-expands the last byte ('R') six
	// times, which only works if matches may read bytes they just wrote.
	enc.writeMediumMatch(6, 1, nil)
	enc.terminate()

	want := []byte("QWERRRRRRR")
	got, err := DecodeAC18(enc.out, len(want))
	if err != nil {
		t.Fatalf("DecodeAC18 error: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("round trip mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestAC18MediumMatchRoundTrip(t *testing.T) {
	lits := []byte("0123456789ABCDEF0123456789ABCDEF")
	var enc ac18Encoder
	enc.writeOpeningLiteral(lits)
	enc.writeMediumMatch(20, len(lits), nil)
	enc.terminate()

	want := append(append([]byte{}, lits...), lits[:20]...)
	got, err := DecodeAC18(enc.out, len(want))
	if err != nil {
		t.Fatalf("DecodeAC18 error: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("round trip mismatch:\n got: %q\nwant: %q", got, want)
	}
}
