// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package section

import (
	"testing"

	"github.com/saferwall/dwg/internal/dwgnotify"
	"github.com/saferwall/dwg/internal/dwgver"
)

func TestDecodeHandlesSinglePair(t *testing.T) {
	buf := []byte{
		0x00, 0x06, // sub-section size: 4 bytes of payload follow
		0x05, 0x14, // handle_offset=5 (modular_char), location_offset=+10 (signed_modular_char)
		0x00, 0x00, // trailing CRC (unchecked here)
		0x00, 0x02, // size==2 terminates the section
	}

	notices := &dwgnotify.Sink{}
	got, err := DecodeHandles(buf, dwgver.VersionR2000, notices)
	if err != nil {
		t.Fatalf("DecodeHandles: %v", err)
	}
	if off, ok := got[dwgver.Handle(5)]; !ok || off != 10 {
		t.Fatalf("got[5] = (%d, %v), want (10, true)", off, ok)
	}
	if len(got) != 1 {
		t.Fatalf("len(got) = %d, want 1", len(got))
	}
}

func TestDecodeHandlesAccumulatesRunningOffsets(t *testing.T) {
	buf := []byte{
		0x00, 0x08, // 6 bytes of payload
		0x05, 0x14, // handle 5, offset +10
		0x03, 0x02, // handle 8 (5+3), offset +1 (10+1=11)
		0x00, 0x00, // CRC
		0x00, 0x02,
	}

	notices := &dwgnotify.Sink{}
	got, err := DecodeHandles(buf, dwgver.VersionR2000, notices)
	if err != nil {
		t.Fatalf("DecodeHandles: %v", err)
	}
	want := map[dwgver.Handle]int64{5: 10, 8: 11}
	for h, off := range want {
		if got[h] != off {
			t.Errorf("got[%d] = %d, want %d", h, got[h], off)
		}
	}
}

func TestDecodeHandlesRejectsOversizedSubSection(t *testing.T) {
	buf := []byte{0xFF, 0xFF}
	notices := &dwgnotify.Sink{}
	if _, err := DecodeHandles(buf, dwgver.VersionR2000, notices); err == nil {
		t.Fatal("expected an error for a sub-section whose size field exceeds the buffer")
	}
}
