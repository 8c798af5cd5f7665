// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package fileheader decodes the three DWG file-header variants (§4.6)
// into a common section catalog: AC15's record table, AC18's XOR-masked
// system section plus compressed page/section maps, and AC21's
// Reed-Solomon-plus-LZ77-compressed metadata block layered on top of the
// AC18 shape.
package fileheader

import "github.com/saferwall/dwg/internal/dwgver"

// Page is one local-section page: where it lives on disk and how it maps
// into the section's logical decompressed stream.
type Page struct {
	FileOffset       int64
	OnDiskSize       int64
	CompressedSize   int64
	DecompressedSize int64
	PageNumber       int32
	PayloadOffset    int64
}

// Section is a catalog entry: everything the assembler (internal/section)
// needs to materialize one named section's bytes.
type Section struct {
	Name             string
	SectionID        int32
	PageCount        int32
	DecompressedSize int64
	CompressedSize   int64
	CompressionFlag  int32 // 1 = raw, 2 = compressed
	Encrypted        int32
	HashCode         uint32 // AC21 only; 0 on AC15/AC18
	Pages            []Page
}

// Catalog is the version-independent result of file-header decoding: a
// named-section lookup plus the few file-header fields the rest of the
// pipeline needs directly (the preview image address, filled in by the
// AC15 and AC18 decoders).
type Catalog struct {
	Version       dwgver.Version
	PreviewOffset int64
	Sections      map[string]*Section
}

// Section name constants, used as catalog keys (§3).
const (
	SectionHeader        = "ACDB:HEADER"
	SectionClasses       = "ACDB:CLASSES"
	SectionHandles       = "ACDB:HANDLES"
	SectionObjects       = "ACDB:ACDBOBJECTS"
	SectionObjFreeSpace  = "ACDB:OBJFREESPACE"
	SectionTemplate      = "ACDB:TEMPLATE"
	SectionSummaryInfo   = "ACDB:SUMMARYINFO"
	SectionPreview       = "ACDB:PREVIEW"
	SectionAppInfo       = "ACDB:APPINFO"
	SectionAuxHeader     = "ACDB:AUXHEADER"
	SectionRevHistory    = "ACDB:REVHISTORY"
	SectionFileDepList   = "ACDB:FILEDEPLIST"
)
