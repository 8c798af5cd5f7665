// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package reedsolomon

import "testing"

func TestDeinterleaveCodewordSynthetic(t *testing.T) {
	block := make([]byte, 255)
	for i := 0; i < 251; i++ {
		block[i] = byte(i)
	}
	copy(block[251:], []byte{0xAA, 0xBB, 0xCC, 0xDD})

	got := DeinterleaveCodeword(block)
	if len(got) != 251 {
		t.Fatalf("len = %d, want 251", len(got))
	}
	for i := 0; i < 251; i++ {
		if got[i] != byte(i) {
			t.Fatalf("byte %d = %x, want %x", i, got[i], byte(i))
		}
	}
}

func TestDeinterleaveThreeCodewords(t *testing.T) {
	block := make([]byte, 765)
	for cw := 0; cw < 3; cw++ {
		base := cw * 255
		for i := 0; i < 251; i++ {
			block[base+i] = byte((cw*251 + i) & 0xFF)
		}
		copy(block[base+251:base+255], []byte{0xAA, 0xBB, 0xCC, 0xDD})
	}

	got := Deinterleave(block)
	if len(got) != 251*3 {
		t.Fatalf("len = %d, want %d", len(got), 251*3)
	}
	for cw := 0; cw < 3; cw++ {
		for i := 0; i < 251; i++ {
			want := byte((cw*251 + i) & 0xFF)
			if got[cw*251+i] != want {
				t.Fatalf("cw=%d i=%d got %x want %x", cw, i, got[cw*251+i], want)
			}
		}
	}
}

func TestDeinterleavePartialLastBlock(t *testing.T) {
	block := make([]byte, 100)
	for i := range block {
		block[i] = byte(i)
	}
	got := Deinterleave(block)
	if len(got) != 100 {
		t.Fatalf("len = %d, want 100", len(got))
	}
}
