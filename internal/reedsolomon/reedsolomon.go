// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package reedsolomon de-interleaves the 3-way Reed-Solomon-interleaved
// blocks used by AC21-family (R2010+) file headers and metadata pages. It
// does not perform error correction: AutoCAD's own reader only uses the
// interleaving to spread single-byte corruption across codewords, and this
// core treats the check bytes as opaque and discards them.
package reedsolomon

const (
	// blockSize is the on-disk size of one interleaved RS block (3x255).
	blockSize = 3 * 255
	// codewordSize is the size of a single codeword within a block.
	codewordSize = 255
	// dataSize is the number of data bytes carried by one codeword.
	dataSize = 251
)

// DeinterleaveCodeword extracts the data bytes from a single up-to-255-byte
// codeword, discarding its trailing 4 check bytes (if present).
func DeinterleaveCodeword(codeword []byte) []byte {
	n := len(codeword)
	if n > dataSize {
		n = dataSize
	}
	out := make([]byte, n)
	copy(out, codeword[:n])
	return out
}

// Deinterleave extracts the data bytes from a 3x255-byte interleaved block,
// discarding the trailing 4 check bytes of each of the 3 codewords. The
// last block in a stream may be partial; only min(available, 251) bytes are
// copied per codeword in that case.
func Deinterleave(block []byte) []byte {
	out := make([]byte, 0, dataSize*3)
	for cw := 0; cw < 3; cw++ {
		start := cw * codewordSize
		if start >= len(block) {
			break
		}
		end := start + codewordSize
		if end > len(block) {
			end = len(block)
		}
		out = append(out, DeinterleaveCodeword(block[start:end])...)
	}
	return out
}

// DeinterleaveStream runs Deinterleave over consecutive 255-byte-aligned
// blocks (3x255 each) of a larger RS-interleaved stream, concatenating the
// de-interleaved data. It is used when a page payload spans more than one
// RS block.
func DeinterleaveStream(data []byte) []byte {
	out := make([]byte, 0, len(data))
	for len(data) > 0 {
		n := blockSize
		if n > len(data) {
			n = len(data)
		}
		out = append(out, Deinterleave(data[:n])...)
		data = data[n:]
	}
	return out
}
