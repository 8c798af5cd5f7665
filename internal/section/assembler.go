// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package section materializes named DWG sections from a file-header
// catalog (§4.7) and decodes the seven well-known sections into typed
// fragments (§4.8).
package section

import (
	"sort"
	"strconv"

	"github.com/saferwall/dwg/internal/dwgcrc"
	"github.com/saferwall/dwg/internal/dwgerr"
	"github.com/saferwall/dwg/internal/dwgnotify"
	"github.com/saferwall/dwg/internal/dwgver"
	"github.com/saferwall/dwg/internal/fileheader"
)

// Materialize concatenates every local-section page of the named
// descriptor, in increasing page-number order, decrypting and
// decompressing each per §4.7, and returns the section's logical
// decompressed byte stream.
func Materialize(cat *fileheader.Catalog, data []byte, name string, notices *dwgnotify.Sink) ([]byte, error) {
	sec, ok := cat.Sections[name]
	if !ok {
		return nil, dwgerr.New(dwgerr.KindInvalidFormat, "section "+name+" not present in catalog")
	}

	if cat.Version.FileHeaderFamily() == dwgver.FamilyAC15 {
		return materializeAC15(sec, data)
	}

	pages := make([]fileheader.Page, len(sec.Pages))
	copy(pages, sec.Pages)
	sort.Slice(pages, func(i, j int) bool { return pages[i].PageNumber < pages[j].PageNumber })

	out := make([]byte, sec.DecompressedSize)
	for _, pg := range pages {
		decoded, err := materializePage(cat, sec, pg, data)
		if err != nil {
			return nil, dwgerr.Wrap(dwgerr.KindDecompression, "section "+name+" page "+pageLabel(pg), err)
		}
		end := pg.PayloadOffset + int64(len(decoded))
		if end > int64(len(out)) {
			grown := make([]byte, end)
			copy(grown, out)
			out = grown
		}
		copy(out[pg.PayloadOffset:end], decoded)
	}
	return out, nil
}

func materializeAC15(sec *fileheader.Section, data []byte) ([]byte, error) {
	if len(sec.Pages) != 1 {
		return nil, dwgerr.New(dwgerr.KindInvalidFormat, "AC15 section does not have exactly one locator")
	}
	pg := sec.Pages[0]
	start := pg.FileOffset
	end := start + pg.DecompressedSize
	if start < 0 || end > int64(len(data)) {
		return nil, dwgerr.New(dwgerr.KindInvalidFormat, "AC15 section locator out of range")
	}
	out := make([]byte, pg.DecompressedSize)
	copy(out, data[start:end])
	return out, nil
}

func materializePage(cat *fileheader.Catalog, sec *fileheader.Section, pg fileheader.Page, data []byte) ([]byte, error) {
	switch cat.Version.FileHeaderFamily() {
	case dwgver.FamilyAC18:
		hdr, payload, err := fileheader.ReadAC18PageHeader(data, pg.FileOffset)
		if err != nil {
			return nil, err
		}
		if sec.Encrypted != 0 {
			masked := make([]byte, len(payload))
			copy(masked, payload)
			dwgcrc.XorAC18Mask(masked, uint32(pg.FileOffset+20))
			payload = masked
		}
		return fileheader.DecodeAC18Payload(hdr, payload)
	default:
		return fileheader.ReadAC21Page(data, pg.FileOffset)
	}
}

func pageLabel(pg fileheader.Page) string {
	return strconv.Itoa(int(pg.PageNumber))
}
