// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package dwgcrc implements the checksum and pseudo-random mask primitives
// used throughout the DWG binary format: CRC-8, CRC-32, an Adler-like
// checksum, and the LCG-derived 256-byte "magic sequence" used both as an
// XOR mask and as section padding.
package dwgcrc

// magicSequence is the 256-byte pseudo-random table used to XOR-mask the
// AC18 system section, to pad compressed sections to a 32-byte multiple,
// and to decode the obfuscated alternate CRC32StreamHandler constructor
// input. It is generated once from the LCG seed 1.
var magicSequence = buildMagicSequence()

func buildMagicSequence() [256]byte {
	var table [256]byte
	s := uint32(1)
	for i := range table {
		s = s*0x343FD + 0x269EC3
		table[i] = byte((s >> 16) & 0xFF)
	}
	return table
}

// MagicSequence returns the 256-byte LCG-derived pseudo-random table.
func MagicSequence() [256]byte {
	return magicSequence
}

// AlignPadding returns the number of magic-sequence bytes that must be
// appended to a buffer of length n so that the total becomes a multiple
// of 32.
func AlignPadding(n int) int {
	return 0x1F - (n+0x1F)%0x20
}

// XorWithMagicSequence XORs dst in place with the magic sequence, cycling
// through the 256-byte table starting at offset 0. It is used both to
// decode the obfuscated CRC32StreamHandler constructor input and to
// XOR-pad section tails.
func XorWithMagicSequence(dst []byte) {
	for i := range dst {
		dst[i] ^= magicSequence[i%len(magicSequence)]
	}
}

// AC18SystemSectionKey derives the 4-byte XOR key AutoCAD uses to mask the
// 0x6C-byte system section and compressed page headers of AC18+ files,
// given the file position of the buffer being masked.
func AC18SystemSectionKey(filePos uint32) [4]byte {
	k := uint32(0x4164536B) ^ filePos
	var key [4]byte
	key[0] = byte(k)
	key[1] = byte(k >> 8)
	key[2] = byte(k >> 16)
	key[3] = byte(k >> 24)
	return key
}

// XorAC18Mask XORs buf in place, 4 bytes at a time, with the AC18 system
// section mask derived from filePos. If len(buf) is not a multiple of 4
// the trailing bytes are masked with the leading bytes of the key.
func XorAC18Mask(buf []byte, filePos uint32) {
	key := AC18SystemSectionKey(filePos)
	for i := range buf {
		buf[i] ^= key[i%4]
	}
}
