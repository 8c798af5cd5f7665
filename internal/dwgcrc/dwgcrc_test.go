// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dwgcrc

import (
	"hash/crc32"
	"testing"
)

func TestMagicSequenceDeterminism(t *testing.T) {
	m := MagicSequence()
	if len(m) != 256 {
		t.Fatalf("magic sequence length = %d, want 256", len(m))
	}
	if m[0] != 0x29 {
		t.Fatalf("magic[0] = 0x%02X, want 0x29", m[0])
	}
}

func TestAlignPadding(t *testing.T) {
	for n := 0; n < 256; n++ {
		p := AlignPadding(n)
		if p < 0 || p > 31 {
			t.Fatalf("AlignPadding(%d) = %d out of [0,31]", n, p)
		}
		if (n+p)%32 != 0 {
			t.Fatalf("AlignPadding(%d) = %d, (n+p) mod 32 = %d, want 0", n, p, (n+p)%32)
		}
	}
}

func TestFoldCRC32MatchesStandardLibrary(t *testing.T) {
	tests := [][]byte{
		{},
		[]byte("123456789"),
		[]byte{0xAA, 0xBB, 0xCC, 0xDD, 0x11, 0x22, 0x33, 0x44},
	}
	for _, data := range tests {
		want := crc32.ChecksumIEEE(data)
		got := FoldCRC32(0, data)
		if got != want {
			t.Errorf("FoldCRC32(0, %x) = %#x, want %#x", data, got, want)
		}
	}
}

func TestAdlerRoundTrip(t *testing.T) {
	if got := Adler(1, nil); got != 1 {
		t.Errorf("Adler(1, \"\") = %d, want 1", got)
	}
	got := Adler(0x00010001, []byte("ABC"))
	lo := got & 0xFFFF
	hi := (got >> 16) & 0xFFFF
	if lo != 199 {
		t.Errorf("Adler low word = %d, want 199", lo)
	}
	if hi != 398 {
		t.Errorf("Adler high word = %d, want 398", hi)
	}
}

func TestAC18MaskRoundTrip(t *testing.T) {
	buf := []byte{0xAA, 0xBB, 0xCC, 0xDD, 0x11, 0x22, 0x33, 0x44}
	orig := append([]byte(nil), buf...)

	XorAC18Mask(buf, 0x4164536B)
	XorAC18Mask(buf, 0x4164536B)

	for i := range buf {
		if buf[i] != orig[i] {
			t.Fatalf("round trip mismatch at %d: got %x, want %x", i, buf[i], orig[i])
		}
	}
}

func TestFoldCRC8Deterministic(t *testing.T) {
	a := FoldCRC8(0xC0C1, []byte{1, 2, 3, 4})
	b := FoldCRC8(0xC0C1, []byte{1, 2, 3, 4})
	if a != b {
		t.Fatalf("FoldCRC8 not deterministic: %x != %x", a, b)
	}
}
