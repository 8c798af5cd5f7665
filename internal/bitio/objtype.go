// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package bitio

import "github.com/saferwall/dwg/internal/dwgver"

// ObjectType reads the raw object-type code using whichever of the three
// on-disk encodings the reader's version uses: R2010+ packs a 2-bit tag
// ahead of a narrow byte form, everything earlier just uses a bit_short.
func (r *Reader) ObjectType() (uint16, error) {
	if r.version.Before(dwgver.VersionR2010) {
		v, err := r.BitShort()
		return uint16(v), err
	}
	tag, err := r.TwoBits()
	if err != nil {
		return 0, err
	}
	switch tag {
	case 0:
		b, err := r.Byte()
		return uint16(b), err
	case 1:
		b, err := r.Byte()
		if err != nil {
			return 0, err
		}
		return uint16(b) + 0x1F0, nil
	default:
		return r.RawShort()
	}
}
