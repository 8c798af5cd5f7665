// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package section

import (
	"encoding/binary"

	"github.com/saferwall/dwg/internal/bitio"
	"github.com/saferwall/dwg/internal/dwgerr"
	"github.com/saferwall/dwg/internal/dwgnotify"
	"github.com/saferwall/dwg/internal/dwgver"
)

// handleSectionMaxPayload is the largest payload a HANDLES sub-section
// may declare. DecodeHandles rejects a sub-section declaring more; it does
// not read the first handleSectionMaxPayload bytes of such a sub-section.
const handleSectionMaxPayload = 2032

// DecodeHandles decodes a materialized ACDB:HANDLES section buffer into a
// handle → byte-offset-within-AcDbObjects map. The section is a sequence
// of independently-CRC'd sub-sections, each itself a run of
// (handle_offset, location_offset) deltas accumulated against a running
// (handle, file_offset) pair; a sub-section whose declared size is
// exactly 2 (the size field alone, no payload) ends the section.
func DecodeHandles(buf []byte, version dwgver.Version, notices *dwgnotify.Sink) (map[dwgver.Handle]int64, error) {
	result := make(map[dwgver.Handle]int64)

	pos := 0
	var runningHandle dwgver.Handle
	var runningOffset int64
	for {
		if pos+2 > len(buf) {
			return nil, dwgerr.New(dwgerr.KindInvalidFormat, "HANDLES: truncated sub-section size field")
		}
		size := int(binary.BigEndian.Uint16(buf[pos : pos+2]))
		pos += 2
		if size == 2 {
			break
		}
		payloadLen := size - 2
		if payloadLen < 0 || payloadLen > handleSectionMaxPayload {
			return nil, dwgerr.New(dwgerr.KindInvalidFormat, "HANDLES: sub-section payload exceeds the 2032-byte clamp")
		}
		if pos+payloadLen > len(buf) {
			return nil, dwgerr.New(dwgerr.KindInvalidFormat, "HANDLES: sub-section payload runs past the buffer")
		}
		if payloadLen < 2 {
			return nil, dwgerr.New(dwgerr.KindInvalidFormat, "HANDLES: sub-section too small to hold its trailing CRC")
		}
		body := buf[pos : pos+payloadLen-2]
		pos += payloadLen

		r := bitio.New(body, version)
		for r.Remaining() > 0 {
			handleDelta, err := r.ModularChar()
			if err != nil {
				break
			}
			offsetDelta, err := r.SignedModularChar()
			if err != nil {
				return nil, dwgerr.Wrap(dwgerr.KindParse, "HANDLES offset delta", err)
			}
			runningHandle += dwgver.Handle(handleDelta)
			runningOffset += offsetDelta
			result[runningHandle] = runningOffset
		}
	}

	if len(result) == 0 {
		notices.Infof("HANDLES: no handle entries decoded")
	}
	return result, nil
}
