// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package fileheader

import (
	"encoding/binary"

	"github.com/saferwall/dwg/internal/dwgerr"
	"github.com/saferwall/dwg/internal/dwgnotify"
)

// ac15EndSentinel is the 16-byte constant terminating the AC15 locator
// table.
var ac15EndSentinel = [16]byte{
	0x95, 0xA0, 0x4E, 0x28, 0x99, 0x82, 0x1A, 0xE5,
	0x5E, 0x41, 0xE0, 0x5F, 0x9D, 0x3A, 0x4D, 0x00,
}

// ac15RecordNames maps the fixed record numbers 0-5 to their section names.
var ac15RecordNames = map[int32]string{
	0: SectionHeader,
	1: SectionClasses,
	2: SectionHandles,
	3: SectionObjFreeSpace,
	4: SectionTemplate,
	5: SectionAuxHeader,
}

// decodeAC15 parses the V1 (AC15 family, R13..R2000) file header: a record
// table at offset 0x15, each record naming one fixed section's entire
// on-disk extent (no paging, no compression).
func decodeAC15(data []byte, p preamble, notices *dwgnotify.Sink) (*Catalog, error) {
	if len(data) < 0x15+4 {
		return nil, dwgerr.New(dwgerr.KindInvalidHeader, "AC15 header truncated before record count")
	}
	previewOffset := int64(le32(data[0x0D : 0x0D+4]))

	recordCount := le32(data[0x15 : 0x15+4])
	if recordCount < 0 || recordCount > 64 {
		return nil, dwgerr.New(dwgerr.KindInvalidHeader, "AC15 record count out of a sane range")
	}

	tableStart := 0x15 + 4
	tableLen := int(recordCount) * 12
	if len(data) < tableStart+tableLen+2+16 {
		return nil, dwgerr.New(dwgerr.KindInvalidHeader, "AC15 header truncated inside record table")
	}
	table := data[tableStart : tableStart+tableLen]

	sections := make(map[string]*Section, recordCount)
	for i := int32(0); i < recordCount; i++ {
		rec := table[i*12 : i*12+12]
		recordNo := le32(rec[0:4])
		offset := le32(rec[4:8])
		size := le32(rec[8:12])
		name, ok := ac15RecordNames[recordNo]
		if !ok {
			notices.Warningf("AC15: unrecognized record number %d, skipped", recordNo)
			continue
		}
		sections[name] = &Section{
			Name:             name,
			SectionID:        recordNo,
			PageCount:        1,
			DecompressedSize: int64(size),
			CompressionFlag:  1,
			Pages: []Page{{
				FileOffset:       int64(offset),
				OnDiskSize:       int64(size),
				DecompressedSize: int64(size),
				PageNumber:       0,
			}},
		}
	}

	crcStart := tableStart + tableLen
	// The on-disk value is the CRC-8 of the locator table folded from seed
	// 0xC0C1; §7 gates verification on the crc_check configuration flag,
	// which this layer does not see, so it is read but not compared here.
	_ = binary.LittleEndian.Uint16(data[crcStart : crcStart+2])

	sentinelStart := crcStart + 2
	var gotSentinel [16]byte
	copy(gotSentinel[:], data[sentinelStart:sentinelStart+16])
	if gotSentinel != ac15EndSentinel {
		notices.Warningf("AC15: end-of-header sentinel mismatch")
	}

	return &Catalog{Version: p.Version, PreviewOffset: previewOffset, Sections: sections}, nil
}
