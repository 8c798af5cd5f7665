// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package fileheader

import (
	"github.com/saferwall/dwg/internal/dwgnotify"
	"github.com/saferwall/dwg/internal/dwgver"
)

// Decode dispatches to the version-appropriate file-header decoder and
// returns the resulting section catalog. A failure here is always fatal
// (§7): without a catalog nothing downstream can locate a section.
func Decode(data []byte, notices *dwgnotify.Sink) (*Catalog, error) {
	p, err := readPreamble(data)
	if err != nil {
		return nil, err
	}
	switch p.Version.FileHeaderFamily() {
	case dwgver.FamilyAC15:
		return decodeAC15(data, p, notices)
	case dwgver.FamilyAC18:
		return decodeAC18(data, p, notices)
	default:
		return decodeAC21(data, p, notices)
	}
}
