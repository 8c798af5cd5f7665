// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package bitio

import "github.com/saferwall/dwg/internal/dwgver"

// HandleReference reads a §4.2 handle reference: a 4-bit reference-type
// nibble, a 4-bit length nibble n, then n big-endian bytes, resolved
// against base per the reference type's semantics.
func (r *Reader) HandleReference(base dwgver.Handle) (dwgver.HandleRef, error) {
	typeNibble, err := r.readBits(4)
	if err != nil {
		return dwgver.HandleRef{}, err
	}
	lenNibble, err := r.readBits(4)
	if err != nil {
		return dwgver.HandleRef{}, err
	}
	var offset uint64
	for i := 0; i < int(lenNibble); i++ {
		b, err := r.Byte()
		if err != nil {
			return dwgver.HandleRef{}, err
		}
		offset = (offset << 8) | uint64(b)
	}
	refType := dwgver.ReferenceTypeFromNibble(byte(typeNibble))
	value := dwgver.Resolve(base, refType, offset)
	return dwgver.HandleRef{Value: value, Type: refType, RawNibble: byte(typeNibble)}, nil
}
