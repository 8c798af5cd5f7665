// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package fileheader

import (
	"bytes"

	"github.com/saferwall/dwg/internal/dwgcrc"
	"github.com/saferwall/dwg/internal/dwgerr"
	"github.com/saferwall/dwg/internal/dwgnotify"
	"github.com/saferwall/dwg/internal/lz77"
)

const (
	ac18SystemSectionOffset = 0x20
	ac18SystemSectionSize   = 0x6C
	ac18PageMapBase         = 0x100
)

// ac18SystemSection is the decrypted 0x6C-byte descriptor block.
type ac18SystemSection struct {
	CodePage            string
	RootTreeNodeGap     int32
	GapArraySize        int32
	CRCSeed             int32
	LastPageID          int32
	LastSectionAddr     int32
	SecondHeaderAddr    int32
	GapAmount           int32
	SectionAmount       int32
	SectionPageMapID    int32
	PageMapAddress      int32
	SectionMapID        int32
	SectionArrayPageSize int32
	RightGap            int32
	LeftGap             int32
}

func decryptAC18SystemSection(raw []byte) []byte {
	buf := make([]byte, len(raw))
	copy(buf, raw)
	dwgcrc.XorAC18Mask(buf, ac18SystemSectionOffset)
	return buf
}

func parseAC18SystemSection(buf []byte) ac18SystemSection {
	s := ac18SystemSection{
		CodePage: string(bytes.TrimRight(buf[0:12], "\x00")),
	}
	// 10 unknown 32-bit fields at [12:52) are read and discarded; AutoCAD
	// documents none of them and the spec forbids branching on them (§9).
	named := buf[52:108]
	fields := []*int32{
		&s.RootTreeNodeGap, &s.GapArraySize, &s.CRCSeed, &s.LastPageID,
		&s.LastSectionAddr, &s.SecondHeaderAddr, &s.GapAmount, &s.SectionAmount,
		&s.SectionPageMapID, &s.PageMapAddress, &s.SectionMapID,
		&s.SectionArrayPageSize, &s.RightGap, &s.LeftGap,
	}
	for i, f := range fields {
		*f = le32(named[i*4 : i*4+4])
	}
	return s
}

// pageMapEntry is one (id, size) pair from the decompressed page map, with
// its file address resolved from the running offset.
type pageMapEntry struct {
	ID      int32
	Size    int32
	Address int64
}

func decodeAC18PageMap(data []byte, addr int64, notices *dwgnotify.Sink) ([]pageMapEntry, error) {
	hdr, payload, err := ReadAC18PageHeader(data, addr)
	if err != nil {
		return nil, err
	}
	decompressed, err := DecodeAC18Payload(hdr, payload)
	if err != nil {
		return nil, dwgerr.Wrap(dwgerr.KindDecompression, "AC18 page map payload", err)
	}

	var entries []pageMapEntry
	running := int64(ac18PageMapBase)
	for off := 0; off+8 <= len(decompressed); off += 8 {
		id := le32(decompressed[off : off+4])
		size := le32(decompressed[off+4 : off+8])
		if id == 0 {
			break
		}
		entries = append(entries, pageMapEntry{ID: id, Size: size, Address: running})
		running += int64(size)
	}
	return entries, nil
}

// AC18PageHeader is the 20-byte header prefixing every on-disk AC18 page.
type AC18PageHeader struct {
	SectionType      int32
	DecompressedSize int32
	CompressedSize   int32
	Compression      int32
	Checksum         int32
}

// ReadAC18PageHeader reads the 20-byte header and raw (still-compressed,
// still-masked) payload bytes of the AC18 page at addr. Exported for
// internal/section, which must XOR-demask an encrypted page's payload
// before handing it to DecodeAC18Payload.
func ReadAC18PageHeader(data []byte, addr int64) (AC18PageHeader, []byte, error) {
	if addr < 0 || addr+20 > int64(len(data)) {
		return AC18PageHeader{}, nil, dwgerr.New(dwgerr.KindInvalidHeader, "AC18 page header out of range")
	}
	h := data[addr : addr+20]
	hdr := AC18PageHeader{
		SectionType:      le32(h[0:4]),
		DecompressedSize: le32(h[4:8]),
		CompressedSize:   le32(h[8:12]),
		Compression:      le32(h[12:16]),
		Checksum:         le32(h[16:20]),
	}
	payloadStart := addr + 20
	payloadEnd := payloadStart + int64(hdr.CompressedSize)
	if payloadEnd > int64(len(data)) {
		return AC18PageHeader{}, nil, dwgerr.New(dwgerr.KindInvalidHeader, "AC18 page payload out of range")
	}
	return hdr, data[payloadStart:payloadEnd], nil
}

// DecodeAC18Payload decompresses (or passes through) an AC18 page's
// payload bytes according to its header's compression flag.
func DecodeAC18Payload(hdr AC18PageHeader, payload []byte) ([]byte, error) {
	if hdr.Compression == 2 {
		return lz77.DecodeAC18(payload, int(hdr.DecompressedSize))
	}
	if len(payload) < int(hdr.DecompressedSize) {
		return nil, dwgerr.New(dwgerr.KindInvalidFormat, "uncompressed AC18 page shorter than its declared size")
	}
	return payload[:hdr.DecompressedSize], nil
}

// ac18SectionDescriptor mirrors one entry of the decompressed section map.
type ac18SectionDescriptor struct {
	DecompressedSize    uint64
	CompressedSize      uint64
	SectionID           int32
	PageCount           int32
	MaxDecompressedSize uint64
	CompressedCode      int32
	Encrypted           int32
	Name                string
	Pages               []ac18SectionPage
}

type ac18SectionPage struct {
	PageNumber  int32
	DataSize    uint64
	StartOffset uint64
}

func decodeAC18SectionMap(buf []byte) ([]ac18SectionDescriptor, error) {
	if len(buf) < 4 {
		return nil, dwgerr.New(dwgerr.KindInvalidFormat, "AC18 section map shorter than its count field")
	}
	numSections := le32(buf[0:4])
	off := 4
	descs := make([]ac18SectionDescriptor, 0, numSections)
	for i := int32(0); i < numSections; i++ {
		if off+8+8+4+4+8+4+4+64 > len(buf) {
			return nil, dwgerr.New(dwgerr.KindInvalidFormat, "AC18 section map truncated inside a descriptor")
		}
		d := ac18SectionDescriptor{
			DecompressedSize:    leU64(buf[off : off+8]),
			CompressedSize:      leU64(buf[off+8 : off+16]),
			SectionID:           le32(buf[off+16 : off+20]),
			PageCount:           le32(buf[off+20 : off+24]),
			MaxDecompressedSize: leU64(buf[off+24 : off+32]),
			CompressedCode:      le32(buf[off+32 : off+36]),
			Encrypted:           le32(buf[off+36 : off+40]),
			Name:                string(bytes.TrimRight(buf[off+40:off+104], "\x00")),
		}
		off += 104
		for p := int32(0); p < d.PageCount; p++ {
			if off+4+8+8 > len(buf) {
				return nil, dwgerr.New(dwgerr.KindInvalidFormat, "AC18 section map truncated inside a page list")
			}
			d.Pages = append(d.Pages, ac18SectionPage{
				PageNumber:  le32(buf[off : off+4]),
				DataSize:    leU64(buf[off+4 : off+12]),
				StartOffset: leU64(buf[off+12 : off+20]),
			})
			off += 20
		}
		descs = append(descs, d)
	}
	return descs, nil
}

// decodeAC18 parses the V2 (AC18 family, R2004..R2007) file header.
func decodeAC18(data []byte, p preamble, notices *dwgnotify.Sink) (*Catalog, error) {
	if len(data) < 22 {
		return nil, dwgerr.New(dwgerr.KindInvalidHeader, "AC18 header truncated before the preview address")
	}
	previewOffset := int64(le32(data[14:18]))

	if len(data) < ac18SystemSectionOffset+ac18SystemSectionSize {
		return nil, dwgerr.New(dwgerr.KindInvalidHeader, "AC18 header truncated before the system section")
	}
	raw := data[ac18SystemSectionOffset : ac18SystemSectionOffset+ac18SystemSectionSize]
	sys := parseAC18SystemSection(decryptAC18SystemSection(raw))

	pageMap, err := decodeAC18PageMap(data, int64(sys.PageMapAddress)+ac18PageMapBase, notices)
	if err != nil {
		return nil, dwgerr.Wrap(dwgerr.KindInvalidHeader, "AC18 page map", err)
	}

	byID := make(map[int32][]pageMapEntry, len(pageMap))
	for _, e := range pageMap {
		byID[e.ID] = append(byID[e.ID], e)
	}

	var sectionMapBuf []byte
	for _, e := range byID[sys.SectionMapID] {
		hdr, payload, err := ReadAC18PageHeader(data, e.Address)
		if err != nil {
			return nil, dwgerr.Wrap(dwgerr.KindInvalidHeader, "AC18 section map page", err)
		}
		decoded, err := DecodeAC18Payload(hdr, payload)
		if err != nil {
			return nil, dwgerr.Wrap(dwgerr.KindDecompression, "AC18 section map payload", err)
		}
		sectionMapBuf = append(sectionMapBuf, decoded...)
	}
	if sectionMapBuf == nil {
		return nil, dwgerr.New(dwgerr.KindInvalidFormat, "AC18: no pages found for the section map id")
	}

	rawSections, err := decodeAC18SectionMap(sectionMapBuf)
	if err != nil {
		return nil, err
	}

	sections := make(map[string]*Section, len(rawSections))
	for _, rs := range rawSections {
		name := canonicalSectionName(rs.Name)
		sec := &Section{
			Name:             name,
			SectionID:        rs.SectionID,
			PageCount:        rs.PageCount,
			DecompressedSize: int64(rs.DecompressedSize),
			CompressedSize:   int64(rs.CompressedSize),
			CompressionFlag:  rs.CompressedCode,
			Encrypted:        rs.Encrypted,
		}
		for _, pg := range rs.Pages {
			entries := byID[pg.PageNumber]
			if len(entries) == 0 {
				notices.Warningf("AC18: section %q references unknown page id %d", name, pg.PageNumber)
				continue
			}
			sec.Pages = append(sec.Pages, Page{
				FileOffset:       entries[0].Address,
				PageNumber:       pg.PageNumber,
				DecompressedSize: int64(pg.DataSize),
				PayloadOffset:    int64(pg.StartOffset),
			})
		}
		sections[name] = sec
	}

	return &Catalog{Version: p.Version, PreviewOffset: previewOffset, Sections: sections}, nil
}

func canonicalSectionName(raw string) string {
	b := make([]byte, len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		b[i] = c
	}
	return string(b)
}
