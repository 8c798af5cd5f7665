// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dwg

import (
	"testing"

	"github.com/saferwall/dwg/internal/bitio"
)

func TestColorFromEnColorSpecialIndices(t *testing.T) {
	cases := []struct {
		index int16
		want  ColorKind
	}{
		{0, ColorByBlock},
		{256, ColorByLayer},
		{5, ColorIndex},
	}
	for _, c := range cases {
		got := ColorFromEnColor(bitio.EnColor{Index: c.index})
		if got.Kind != c.want {
			t.Errorf("ColorFromEnColor(index=%d).Kind = %v, want %v", c.index, got.Kind, c.want)
		}
	}
}

func TestColorFromCmColorTrueColor(t *testing.T) {
	c := ColorFromCmColor(bitio.CmColor{HasRGB: true, RGBAFlags: 0x00112233})
	if c.Kind != ColorRGB {
		t.Fatalf("Kind = %v, want ColorRGB", c.Kind)
	}
	if c.R != 0x11 || c.G != 0x22 || c.B != 0x33 {
		t.Fatalf("RGB = %02x%02x%02x, want 112233", c.R, c.G, c.B)
	}
}

func TestApproximateIndex(t *testing.T) {
	if got := (Color{Kind: ColorByLayer}).ApproximateIndex(); got != 256 {
		t.Errorf("ByLayer ApproximateIndex = %d, want 256", got)
	}
	if got := (Color{Kind: ColorByBlock}).ApproximateIndex(); got != 0 {
		t.Errorf("ByBlock ApproximateIndex = %d, want 0", got)
	}
	if got := (Color{Kind: ColorIndex, Index: 42}).ApproximateIndex(); got != 42 {
		t.Errorf("Index ApproximateIndex = %d, want 42", got)
	}
	if got := (Color{Kind: ColorRGB}).ApproximateIndex(); got != 7 {
		t.Errorf("RGB ApproximateIndex = %d, want 7", got)
	}
}

func TestTransparencyFromEnColor(t *testing.T) {
	opaque := TransparencyFromEnColor(bitio.EnColor{HasTransparency: false})
	if !opaque.Opaque {
		t.Errorf("expected Opaque=true when HasTransparency is false")
	}
	withAlpha := TransparencyFromEnColor(bitio.EnColor{HasTransparency: true, TransparencyVal: 0x80})
	if withAlpha.Opaque || withAlpha.Alpha != 0x80 {
		t.Errorf("withAlpha = %+v, want Opaque=false Alpha=0x80", withAlpha)
	}
}
