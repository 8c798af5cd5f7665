// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package section

import (
	"github.com/saferwall/dwg/internal/bitio"
	"github.com/saferwall/dwg/internal/dwgerr"
	"github.com/saferwall/dwg/internal/dwgver"
)

// AppInfo is the decoded ACDB:APPINFO fragment (AC18+ only).
type AppInfo struct {
	Name           string
	Unknown        uint32
	VersionChecksum [16]byte
	CommentChecksum [16]byte
	ProductChecksum [16]byte
	VersionXML     string
	CommentXML     string
	ProductXML     string
}

// DecodeAppInfo decodes a materialized ACDB:APPINFO section buffer.
// Pre-R2007 drawings omit the three 16-byte checksums.
func DecodeAppInfo(buf []byte, version dwgver.Version) (*AppInfo, error) {
	r := bitio.New(buf, version)

	info := &AppInfo{}
	var err error
	if info.Name, err = r.Text(); err != nil {
		return nil, dwgerr.Wrap(dwgerr.KindParse, "APPINFO name", err)
	}
	u, err := r.BitLong()
	if err != nil {
		return nil, dwgerr.Wrap(dwgerr.KindParse, "APPINFO unknown u32", err)
	}
	info.Unknown = uint32(u)

	if version.AtLeast(dwgver.VersionR2007) {
		for _, dst := range []*[16]byte{&info.VersionChecksum, &info.CommentChecksum, &info.ProductChecksum} {
			for i := 0; i < 16; i++ {
				b, err := r.Byte()
				if err != nil {
					return nil, dwgerr.Wrap(dwgerr.KindParse, "APPINFO checksum byte", err)
				}
				dst[i] = b
			}
		}
	}

	if info.VersionXML, err = r.Text(); err != nil {
		return nil, dwgerr.Wrap(dwgerr.KindParse, "APPINFO version string", err)
	}
	if info.CommentXML, err = r.Text(); err != nil {
		return nil, dwgerr.Wrap(dwgerr.KindParse, "APPINFO comment string", err)
	}
	if info.ProductXML, err = r.Text(); err != nil {
		return nil, dwgerr.Wrap(dwgerr.KindParse, "APPINFO product xml", err)
	}

	return info, nil
}
