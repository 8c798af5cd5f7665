// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package dwgver holds the types shared by every layer of the decoder:
// the version discriminator and the 64-bit object handle.
package dwgver

import "fmt"

// Version is a totally-ordered discriminator over the supported DWG
// generations. All version-gated behavior in the decoder is expressed as a
// </Rank() comparison against this type, never a string compare.
type Version int

const (
	VersionUnknown Version = iota
	VersionR13
	VersionR14
	VersionR2000
	VersionR2004
	VersionR2007
	VersionR2010
	VersionR2013
	VersionR2018
)

// magic is the 6-byte on-disk version string for each known generation.
var magic = map[string]Version{
	"AC1012": VersionR13,
	"AC1014": VersionR14,
	"AC1015": VersionR2000,
	"AC1018": VersionR2004,
	"AC1021": VersionR2007,
	"AC1024": VersionR2010,
	"AC1027": VersionR2013,
	"AC1032": VersionR2018,
}

var names = map[Version]string{
	VersionUnknown: "Unknown",
	VersionR13:     "AC1012",
	VersionR14:     "AC1014",
	VersionR2000:   "AC1015",
	VersionR2004:   "AC1018",
	VersionR2007:   "AC1021",
	VersionR2010:   "AC1024",
	VersionR2013:   "AC1027",
	VersionR2018:   "AC1032",
}

// Detect maps the first six bytes of a DWG file to a Version. ok is false
// when the magic is unrecognized.
func Detect(magicBytes []byte) (Version, bool) {
	if len(magicBytes) < 6 {
		return VersionUnknown, false
	}
	v, ok := magic[string(magicBytes[:6])]
	return v, ok
}

// FromVersionString parses a version tag like "AC1015" into a Version.
func FromVersionString(s string) (Version, bool) {
	v, ok := magic[s]
	return v, ok
}

// String returns the on-disk version magic, e.g. "AC1015".
func (v Version) String() string {
	if s, ok := names[v]; ok {
		return s
	}
	return fmt.Sprintf("Version(%d)", int(v))
}

// Rank returns the numeric ordering used by every version gate in the
// decoder (e.g. `v.Rank() >= VersionR2000.Rank()`).
func (v Version) Rank() int { return int(v) }

// AtLeast reports whether v is the same generation as or newer than other.
func (v Version) AtLeast(other Version) bool { return v.Rank() >= other.Rank() }

// Before reports whether v predates other.
func (v Version) Before(other Version) bool { return v.Rank() < other.Rank() }

// Family groups of the file-header layout, used by the file-header decoder
// to pick one of the three on-disk variants.
type Family int

const (
	FamilyAC15 Family = iota // V1: record-indexed table (R13..R2000)
	FamilyAC18               // V2: XOR-masked system section (R2004..R2007)
	FamilyAC21               // V3: RS + LZ77 compressed metadata (R2010+)
)

// FileHeaderFamily returns which of the three file-header layouts a version
// uses.
func (v Version) FileHeaderFamily() Family {
	switch {
	case v.Rank() >= VersionR2010.Rank():
		return FamilyAC21
	case v.Rank() >= VersionR2004.Rank():
		return FamilyAC18
	default:
		return FamilyAC15
	}
}
