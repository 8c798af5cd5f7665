// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package bitio

import "github.com/saferwall/dwg/internal/dwgver"

// CmColorFlags carry the R18+ RGBA flag bits and optional book/name
// strings of a cm_color (§4.2). R15-and-earlier colors only ever populate
// Index.
const (
	CmColorFlagHasAlpha    = 0x2000
	CmColorFlagHasBookName = 0x4000
	CmColorFlagHasBookPath = 0x8000
)

// CmColor is the decoded result of the cm_color primitive.
type CmColor struct {
	Index     int16
	RGBAFlags int32
	HasRGB    bool
	BookName  string
	Name      string
}

// CmColor reads a §4.2 CM-color: a bit_short index on R15 and earlier, or
// that index plus an RGBA bit_long and name strings read from the text
// sub-stream on R18+.
func (r *Reader) CmColor(readText func() (string, error)) (CmColor, error) {
	idx, err := r.BitShort()
	if err != nil {
		return CmColor{}, err
	}
	c := CmColor{Index: idx}
	if r.version.Before(dwgver.VersionR2004) {
		return c, nil
	}
	rgba, err := r.BitLong()
	if err != nil {
		return CmColor{}, err
	}
	c.RGBAFlags = rgba
	c.HasRGB = rgba&0x01000000 == 0 // true color whenever bit 24 is clear (top byte 0xC2, or no flag byte at all); 0xC1/0xC3 leave it indexed.
	if rgba&CmColorFlagHasBookName != 0 || rgba&CmColorFlagHasBookPath != 0 {
		if readText != nil {
			name, err := readText()
			if err != nil {
				return CmColor{}, err
			}
			c.BookName = name
		}
	}
	if readText != nil {
		name, err := readText()
		if err != nil {
			return CmColor{}, err
		}
		c.Name = name
	}
	return c, nil
}

// EnColor is the decoded result of the en_color primitive: an index/RGB
// color plus an optional transparency and a book-color flag.
type EnColor struct {
	Index            int16
	HasTransparency  bool
	TransparencyType byte
	TransparencyVal  byte
	IsBookColor      bool
}

const (
	enColorFlagTransparency = 0x2000
	enColorFlagBookLo       = 0x4000
	enColorFlagBookHi       = 0x8000
)

// EnColor reads a §4.2 en_color: a bit_short whose top bits are flags
// (0x2000 = has transparency, 0x4000|0x8000 = book color) over the low
// color index bits.
func (r *Reader) EnColor() (EnColor, error) {
	raw, err := r.BitShort()
	if err != nil {
		return EnColor{}, err
	}
	flags := uint16(raw) & 0xE000
	c := EnColor{
		Index:       raw & 0x1FFF,
		IsBookColor: flags&(enColorFlagBookLo|enColorFlagBookHi) == (enColorFlagBookLo | enColorFlagBookHi),
	}
	if flags&enColorFlagTransparency != 0 {
		c.HasTransparency = true
		transp, err := r.RawULong()
		if err != nil {
			return EnColor{}, err
		}
		c.TransparencyType = byte(transp >> 24)
		c.TransparencyVal = byte(transp)
	}
	return c, nil
}
