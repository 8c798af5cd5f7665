// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package section

import (
	"github.com/saferwall/dwg/internal/bitio"
	"github.com/saferwall/dwg/internal/dwgerr"
	"github.com/saferwall/dwg/internal/dwgver"
)

// DecodePreview decodes a materialized ACDB:PREVIEW section buffer into
// an opaque BMP/WMF thumbnail blob. The format does not interpret the
// bytes further; callers that want the bitmap decode it themselves.
func DecodePreview(buf []byte, version dwgver.Version) ([]byte, error) {
	r := bitio.New(buf, version)

	size, err := r.BitLong()
	if err != nil {
		return nil, dwgerr.Wrap(dwgerr.KindParse, "PREVIEW size", err)
	}
	if size < 0 {
		return nil, dwgerr.New(dwgerr.KindInvalidFormat, "PREVIEW declared a negative size")
	}

	out := make([]byte, size)
	for i := range out {
		b, err := r.Byte()
		if err != nil {
			return nil, dwgerr.Wrap(dwgerr.KindParse, "PREVIEW payload byte", err)
		}
		out[i] = b
	}
	return out, nil
}

// DecodeObjFreeSpace decodes a materialized ACDB:OBJFREESPACE section.
// The section is informational only (§4.8): two raw longs (free-space
// handle counters AutoCAD uses to reuse object slots) precede padding
// this implementation does not interpret.
func DecodeObjFreeSpace(buf []byte, version dwgver.Version) (first, second int32, err error) {
	r := bitio.New(buf, version)
	if first, err = r.RawLong(); err != nil {
		return 0, 0, dwgerr.Wrap(dwgerr.KindParse, "OBJFREESPACE first long", err)
	}
	if second, err = r.RawLong(); err != nil {
		return 0, 0, dwgerr.Wrap(dwgerr.KindParse, "OBJFREESPACE second long", err)
	}
	return first, second, nil
}
