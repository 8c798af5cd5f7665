// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package section

import (
	"github.com/saferwall/dwg/internal/bitio"
	"github.com/saferwall/dwg/internal/dwgerr"
	"github.com/saferwall/dwg/internal/dwgnotify"
	"github.com/saferwall/dwg/internal/dwgver"
)

// Class is one entry of the CLASSES section: a proxy-object type
// descriptor, keyed by ClassNumber when an object's type field exceeds
// the range of well-known fixed object types (§4.9).
type Class struct {
	ClassNumber       int16
	ProxyFlags        int16
	AppName           string
	CppClassName      string
	DxfName           string
	WasZombie         bool
	ItemClassID       int16
	InstanceCount     int32
	DwgVersion        int32
	MaintenanceVer    int32
}

// DecodeClasses decodes a materialized ACDB:CLASSES section buffer. Reads
// continue class-by-class until the reader's position reaches the
// declared payload length, since no count field bounds the list.
func DecodeClasses(buf []byte, version dwgver.Version, notices *dwgnotify.Sink) ([]Class, error) {
	r := bitio.New(buf, version)

	start, err := r.Sentinel()
	if err != nil {
		return nil, dwgerr.Wrap(dwgerr.KindInvalidFormat, "CLASSES start sentinel", err)
	}
	if start != classesSentinelStart {
		notices.Warningf("CLASSES: start sentinel mismatch")
	}
	declaredLen, err := r.RawLong()
	if err != nil {
		return nil, dwgerr.Wrap(dwgerr.KindParse, "CLASSES declared length", err)
	}
	endBit := r.PositionInBits() + int64(declaredLen)*8

	var classes []Class
	for r.PositionInBits() < endBit {
		var c Class
		v, err := r.BitShort()
		if err != nil {
			return nil, dwgerr.Wrap(dwgerr.KindParse, "CLASSES class_number", err)
		}
		c.ClassNumber = v
		if c.ProxyFlags, err = r.BitShort(); err != nil {
			return nil, dwgerr.Wrap(dwgerr.KindParse, "CLASSES proxy_flags", err)
		}
		if c.AppName, err = r.Text(); err != nil {
			return nil, dwgerr.Wrap(dwgerr.KindParse, "CLASSES app name", err)
		}
		if c.CppClassName, err = r.Text(); err != nil {
			return nil, dwgerr.Wrap(dwgerr.KindParse, "CLASSES cpp class name", err)
		}
		if c.DxfName, err = r.Text(); err != nil {
			return nil, dwgerr.Wrap(dwgerr.KindParse, "CLASSES dxf name", err)
		}
		if c.WasZombie, err = r.Bit(); err != nil {
			return nil, dwgerr.Wrap(dwgerr.KindParse, "CLASSES was_zombie", err)
		}
		if c.ItemClassID, err = r.BitShort(); err != nil {
			return nil, dwgerr.Wrap(dwgerr.KindParse, "CLASSES item_class_id", err)
		}
		if version.AtLeast(dwgver.VersionR2004) {
			if c.InstanceCount, err = r.BitLong(); err != nil {
				return nil, dwgerr.Wrap(dwgerr.KindParse, "CLASSES instance_count", err)
			}
			if c.DwgVersion, err = r.BitLong(); err != nil {
				return nil, dwgerr.Wrap(dwgerr.KindParse, "CLASSES dwg_version", err)
			}
			if c.MaintenanceVer, err = r.BitLong(); err != nil {
				return nil, dwgerr.Wrap(dwgerr.KindParse, "CLASSES maintenance_version", err)
			}
			for i := 0; i < 2; i++ {
				if _, err := r.BitLong(); err != nil {
					return nil, dwgerr.Wrap(dwgerr.KindParse, "CLASSES unknown long", err)
				}
			}
		}
		classes = append(classes, c)
	}

	r.ResetShift()
	end, err := r.Sentinel()
	if err != nil {
		notices.Warningf("CLASSES: could not read end sentinel: %v", err)
	} else if end != classesSentinelEnd {
		notices.Warningf("CLASSES: end sentinel mismatch")
	}

	return classes, nil
}
