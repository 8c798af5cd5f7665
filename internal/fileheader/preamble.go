// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package fileheader

import (
	"encoding/binary"

	"github.com/saferwall/dwg/internal/dwgerr"
	"github.com/saferwall/dwg/internal/dwgver"
)

// preamble is the common 14-byte leading region every variant shares: the
// 6-byte version magic, 5 unknown bytes, a 1-byte maintenance version at
// offset 11, and a 2-byte code page at offset 12 (read but not
// interpreted here).
type preamble struct {
	Version            dwgver.Version
	MaintenanceVersion byte
	CodePage           uint16
}

func readPreamble(data []byte) (preamble, error) {
	if len(data) < 14 {
		return preamble{}, dwgerr.New(dwgerr.KindInvalidHeader, "file header shorter than the 14-byte preamble")
	}
	version, ok := dwgver.Detect(data[:6])
	if !ok {
		return preamble{}, dwgerr.New(dwgerr.KindUnsupportedVersion, "unrecognized version magic")
	}
	return preamble{
		Version:            version,
		MaintenanceVersion: data[11],
		CodePage:           binary.LittleEndian.Uint16(data[12:14]),
	}, nil
}

func le32(b []byte) int32  { return int32(binary.LittleEndian.Uint32(b)) }
func leU32(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }
func leU64(b []byte) uint64 { return binary.LittleEndian.Uint64(b) }
