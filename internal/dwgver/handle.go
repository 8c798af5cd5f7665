// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dwgver

// Handle is a 64-bit persistent identifier for any object in a drawing.
// A zero Handle means "no reference".
type Handle uint64

// IsNull reports whether h is the "no reference" handle.
func (h Handle) IsNull() bool { return h == 0 }

// ReferenceType is the 4-bit nibble preceding an encoded handle, selecting
// how the trailing offset combines with a base handle to produce the final
// value. Ownership is expressed purely by this tag: it never implies a
// parent/child memory relationship by itself.
type ReferenceType byte

const (
	RefAbsolute ReferenceType = iota
	RefRelativeAdd
	RefRelativeSub
	RefHardPointer
	RefSoftPointer
	RefHardOwner
	RefSoftOwner
	RefUnknown
)

// knownReferenceTypes maps the on-disk 4-bit reference-type nibble to a
// ReferenceType. Codes outside this table are preserved numerically as
// RefUnknown; Raw carries the original nibble for round-tripping.
var knownReferenceTypes = map[byte]ReferenceType{
	0x0: RefAbsolute,
	0x1: RefRelativeAdd,
	0x2: RefRelativeSub,
	0x3: RefHardPointer,
	0x4: RefSoftPointer,
	0x5: RefHardOwner,
	0x6: RefSoftOwner,
}

var referenceTypeNibble = map[ReferenceType]byte{
	RefAbsolute:    0x0,
	RefRelativeAdd: 0x1,
	RefRelativeSub: 0x2,
	RefHardPointer: 0x3,
	RefSoftPointer: 0x4,
	RefHardOwner:   0x5,
	RefSoftOwner:   0x6,
}

// HandleRef is a decoded handle reference: its resolved value plus the
// reference-type tag it carried on disk (callers that need the raw unknown
// nibble for an unrecognized type can inspect RawNibble).
type HandleRef struct {
	Value     Handle
	Type      ReferenceType
	RawNibble byte
}

// ReferenceTypeFromNibble maps the on-disk 4-bit code to a ReferenceType,
// preserving unknown codes numerically via RawNibble on the caller side.
func ReferenceTypeFromNibble(nibble byte) ReferenceType {
	if t, ok := knownReferenceTypes[nibble&0x0F]; ok {
		return t
	}
	return RefUnknown
}

// NibbleFromReferenceType is the inverse of ReferenceTypeFromNibble for the
// seven known types; used by tests that round-trip handle encoding.
func NibbleFromReferenceType(t ReferenceType) (byte, bool) {
	n, ok := referenceTypeNibble[t]
	return n, ok
}

// Resolve combines a decoded offset with a base handle according to the
// reference type, matching §4.2's handle_reference semantics: Absolute,
// HardOwner and SoftOwner are raw values; RelativeAdd/RelativeSub are
// base-relative; HardPointer/SoftPointer are raw.
func Resolve(base Handle, t ReferenceType, offset uint64) Handle {
	switch t {
	case RefRelativeAdd:
		return base + Handle(offset)
	case RefRelativeSub:
		return base - Handle(offset)
	default:
		return Handle(offset)
	}
}
