// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package fileheader

import (
	"encoding/binary"
	"testing"

	"github.com/saferwall/dwg/internal/dwgcrc"
	"github.com/saferwall/dwg/internal/dwgnotify"
)

func le32Bytes(v int32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(v))
	return b
}

func buildAC15Fixture(t *testing.T) []byte {
	t.Helper()
	buf := make([]byte, 0x15+4)
	copy(buf, []byte("AC1015"))
	// preview offset at 0x0D
	copy(buf[0x0D:], le32Bytes(0))
	// record count = 1 at 0x15
	copy(buf[0x15:], le32Bytes(1))

	record := append(append(le32Bytes(0), le32Bytes(0x100)...), le32Bytes(64)...)
	buf = append(buf, record...)

	crc := dwgcrc.FoldCRC8(0xC0C1, record)
	crcBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(crcBytes, crc)
	buf = append(buf, crcBytes...)
	buf = append(buf, ac15EndSentinel[:]...)
	return buf
}

func TestDecodeAC15(t *testing.T) {
	buf := buildAC15Fixture(t)
	var notices dwgnotify.Sink
	cat, err := Decode(buf, &notices)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	sec, ok := cat.Sections[SectionHeader]
	if !ok {
		t.Fatal("expected ACDB:HEADER section in catalog")
	}
	if sec.Pages[0].FileOffset != 0x100 || sec.DecompressedSize != 64 {
		t.Fatalf("unexpected section descriptor: %+v", sec)
	}
	for _, n := range notices.Items() {
		if n.Kind >= 1 {
			t.Fatalf("unexpected notification on a well-formed fixture: %+v", n)
		}
	}
}

func TestDecodeUnsupportedVersion(t *testing.T) {
	buf := make([]byte, 32)
	copy(buf, []byte("BADVER"))
	var notices dwgnotify.Sink
	_, err := Decode(buf, &notices)
	if err == nil {
		t.Fatal("expected an error for an unrecognized version magic")
	}
}
