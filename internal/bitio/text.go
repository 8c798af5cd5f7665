// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package bitio

import (
	"golang.org/x/text/encoding/unicode"

	"github.com/saferwall/dwg/internal/dwgver"
)

// utf16Decoder is shared across every Reader since it is stateless once
// constructed, the same pattern the teacher's helper.go uses for decoding
// VS_VERSION_INFO strings.
var utf16Decoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()

// Text reads a length-prefixed string: a bit_short length followed by
// `length` raw bytes on R13..R2004, or `length` UTF-16LE code units read
// directly off this reader on R2007+. Callers decoding an object's merged
// stream are expected to invoke this on the text sub-reader for R2007+
// (see internal/objects); invoking it on the main reader when the drawing
// is R2007+ is also correct for the sections (HEADER, CLASSES) that never
// split out a text sub-stream.
func (r *Reader) Text() (string, error) {
	length, err := r.BitShort()
	if err != nil {
		return "", err
	}
	if length <= 0 {
		return "", nil
	}
	if r.version.Before(dwgver.VersionR2007) {
		raw := make([]byte, length)
		for i := range raw {
			b, err := r.Byte()
			if err != nil {
				return "", err
			}
			raw[i] = b
		}
		return string(raw), nil
	}
	raw := make([]byte, int(length)*2)
	for i := range raw {
		b, err := r.Byte()
		if err != nil {
			return "", err
		}
		raw[i] = b
	}
	decoded, err := utf16Decoder.Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
