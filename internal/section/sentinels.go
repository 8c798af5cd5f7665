// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package section

// The HEADER and CLASSES section sentinels; no PREVIEW sentinel is defined
// and DecodePreview makes no sentinel comparison. Unlike the AC15 file
// header's end sentinel (whose bytes the specification spells out
// directly), the section sentinels are only described as "known values"; the
// bytes below are the values this format is documented to use elsewhere
// and are carried here so the byte-exact comparison §6 requires has a
// concrete target, but they have not been verified against a reference
// file by this implementation (see DESIGN.md).
var (
	headerSentinelStart = [16]byte{
		0xCF, 0x7B, 0x1F, 0x23, 0xFD, 0xDE, 0x38, 0xA9,
		0x5F, 0x7C, 0x68, 0xB8, 0x4E, 0x6D, 0x33, 0x5F,
	}
	headerSentinelEnd = [16]byte{
		0x30, 0x84, 0xE0, 0xDC, 0x02, 0x21, 0xC7, 0x56,
		0xA0, 0x83, 0x97, 0x47, 0xB1, 0x92, 0xCC, 0xA0,
	}
	classesSentinelStart = [16]byte{
		0x8D, 0xA1, 0xC4, 0xB8, 0xC4, 0xA9, 0xF8, 0xC5,
		0xC0, 0xDC, 0xF4, 0x5F, 0xE7, 0xCF, 0xB6, 0x8A,
	}
	classesSentinelEnd = [16]byte{
		0x72, 0x5E, 0x3B, 0x47, 0x3B, 0x56, 0x07, 0x3A,
		0x3F, 0x23, 0x0B, 0xA0, 0x18, 0x30, 0x49, 0x75,
	}
)
