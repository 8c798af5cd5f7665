// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package fileheader

import (
	"github.com/saferwall/dwg/internal/dwgerr"
	"github.com/saferwall/dwg/internal/dwgnotify"
	"github.com/saferwall/dwg/internal/lz77"
	"github.com/saferwall/dwg/internal/reedsolomon"
)

const (
	ac21MetadataOffset         = 0x80
	ac21MetadataOnDiskSize     = 0x400
	ac21MetadataRSSize         = 0x2CD
	ac21MetadataDecompressed   = 0x110
	ac21PageType               = 0x4163043B
	rsBlockSize                = 3 * 255
)

// sectionHashNames maps the fixed 32-bit AC21 section hash constant to the
// well-known section name it identifies (see GLOSSARY).
var sectionHashNames = map[uint32]string{
	0x32B803D9: SectionHeader,
	0x3F54045F: SectionClasses,
	0x3F6E0450: SectionHandles,
	0x674C05A9: SectionObjects,
	0x77E2061F: SectionObjFreeSpace,
	0x717A060F: SectionSummaryInfo,
	0x40AA0473: SectionPreview,
	0x3FA0043E: SectionAppInfo,
}

// ac21Metadata is the decompressed 0x110-byte block produced by RS
// de-interleaving and LZ77-AC21-decompressing the 0x400 bytes at file
// offset 0x80. Its field layout is not fully documented; this core reads
// only the page-map address (offset 0x9C) and the section-map id (offset
// 0xA8). These offsets do not follow the AC18 system section's layout,
// where the analogous fields sit at 0x58 and 0x5C.
type ac21Metadata struct {
	PageMapAddress int32
	SectionMapID   int32
}

func parseAC21Metadata(buf []byte) (ac21Metadata, error) {
	if len(buf) < ac21MetadataDecompressed {
		return ac21Metadata{}, dwgerr.New(dwgerr.KindInvalidHeader, "AC21 metadata block shorter than expected")
	}
	// Fixed offsets within the 0x110 block; every other field is ignored.
	return ac21Metadata{
		PageMapAddress: le32(buf[0x9C : 0x9C+4]),
		SectionMapID:   le32(buf[0xA8 : 0xA8+4]),
	}, nil
}

func decodeAC21Metadata(data []byte) (ac21Metadata, error) {
	if len(data) < ac21MetadataOffset+ac21MetadataOnDiskSize {
		return ac21Metadata{}, dwgerr.New(dwgerr.KindInvalidHeader, "AC21 header truncated before the metadata block")
	}
	raw := data[ac21MetadataOffset : ac21MetadataOffset+ac21MetadataOnDiskSize]
	deinterleaved := reedsolomon.DeinterleaveStream(raw)
	if len(deinterleaved) > ac21MetadataRSSize {
		deinterleaved = deinterleaved[:ac21MetadataRSSize]
	}
	decompressed, err := lz77.DecodeAC21(deinterleaved, ac21MetadataDecompressed)
	if err != nil {
		return ac21Metadata{}, dwgerr.Wrap(dwgerr.KindDecompression, "AC21 metadata block", err)
	}
	return parseAC21Metadata(decompressed)
}

// ac21PageHeader is the header AutoCAD prefixes a type-0x4163043B page
// with: a 32-bit type tag, followed by the same decompressed/compressed/
// compression/checksum quadruple AC18 pages use.
type ac21PageHeader struct {
	Type             int32
	DecompressedSize int32
	CompressedSize   int32
	Compression      int32
	Checksum         int32
}

func ReadAC21Page(data []byte, addr int64) ([]byte, error) {
	if addr < 0 || addr+24 > int64(len(data)) {
		return nil, dwgerr.New(dwgerr.KindInvalidHeader, "AC21 page header out of range")
	}
	h := data[addr : addr+24]
	hdr := ac21PageHeader{
		Type:             le32(h[0:4]),
		DecompressedSize: le32(h[4:8]),
		CompressedSize:   le32(h[8:12]),
		Compression:      le32(h[12:16]),
		Checksum:         le32(h[16:20]),
	}
	if hdr.Type != ac21PageType {
		return nil, dwgerr.New(dwgerr.KindInvalidFormat, "AC21 page has an unexpected type tag")
	}
	payloadStart := addr + 24
	payloadEnd := payloadStart + int64(hdr.CompressedSize)
	if payloadEnd > int64(len(data)) {
		return nil, dwgerr.New(dwgerr.KindInvalidHeader, "AC21 page payload out of range")
	}
	payload := data[payloadStart:payloadEnd]
	if len(payload) >= rsBlockSize {
		payload = reedsolomon.DeinterleaveStream(payload)
	}
	if hdr.Compression == 2 {
		return lz77.DecodeAC21(payload, int(hdr.DecompressedSize))
	}
	if len(payload) < int(hdr.DecompressedSize) {
		return nil, dwgerr.New(dwgerr.KindInvalidFormat, "uncompressed AC21 page shorter than its declared size")
	}
	return payload[:hdr.DecompressedSize], nil
}

// decodeAC21 parses the V3 (AC21 family, R2010+) file header. Per §9's
// open question, the real AC21 page-by-id walker's exact addressing
// scheme for the page map is underspecified upstream; this core defers
// section-by-id access entirely and instead walks the metadata block's
// page-map address directly as a single AC21 page, consistent with the
// "no catalog without the page/section map" fatal-error policy of §4.6.
func decodeAC21(data []byte, p preamble, notices *dwgnotify.Sink) (*Catalog, error) {
	meta, err := decodeAC21Metadata(data)
	if err != nil {
		return nil, err
	}

	pageMapBuf, err := ReadAC21Page(data, int64(meta.PageMapAddress))
	if err != nil {
		return nil, dwgerr.Wrap(dwgerr.KindInvalidHeader, "AC21 page map", err)
	}

	sections := make(map[string]*Section)
	off := 0
	for off+4 <= len(pageMapBuf) {
		hash := leU32(pageMapBuf[off : off+4])
		off += 4
		name, ok := sectionHashNames[hash]
		if !ok {
			notices.Warningf("AC21: unrecognized section hash %#x", hash)
			continue
		}
		sections[name] = &Section{Name: name, HashCode: hash, CompressionFlag: 2}
	}

	return &Catalog{Version: p.Version, Sections: sections}, nil
}
