// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dwg

import "github.com/saferwall/dwg/internal/bitio"

// ColorKind discriminates Color's sum-type variants (§4.2's en_color /
// cm_color, generalized): an entity's color is either a special
// ByLayer/ByBlock marker, a palette index, or a true RGB triple.
type ColorKind int

const (
	ColorByLayer ColorKind = iota
	ColorByBlock
	ColorIndex
	ColorRGB
)

// Color is a decoded entity or header color. Only the field matching
// Kind is meaningful.
type Color struct {
	Kind  ColorKind
	Index int16
	R, G, B byte
}

// ApproximateIndex coerces any Color variant down to the nearest AutoCAD
// Color Index (ACI), the representation every DWG generation before
// true-color support understood. ByLayer maps to 256 and ByBlock to 0;
// every RGB color maps to 7 ("white/black"), since RGB values are not
// matched against the palette.
func (c Color) ApproximateIndex() int16 {
	switch c.Kind {
	case ColorByLayer:
		return 256
	case ColorByBlock:
		return 0
	case ColorIndex:
		return c.Index
	default:
		return 7
	}
}

// ColorFromEnColor converts a decoded en_color primitive into a Color.
func ColorFromEnColor(c bitio.EnColor) Color {
	switch c.Index {
	case 0:
		return Color{Kind: ColorByBlock}
	case 256:
		return Color{Kind: ColorByLayer}
	default:
		return Color{Kind: ColorIndex, Index: c.Index}
	}
}

// ColorFromCmColor converts a decoded cm_color primitive into a Color,
// preferring its RGB channels when HasRGB reported a true-color value.
func ColorFromCmColor(c bitio.CmColor) Color {
	if c.HasRGB {
		return Color{
			Kind: ColorRGB,
			R:    byte(c.RGBAFlags >> 16),
			G:    byte(c.RGBAFlags >> 8),
			B:    byte(c.RGBAFlags),
		}
	}
	switch c.Index {
	case 0:
		return Color{Kind: ColorByBlock}
	case 256:
		return Color{Kind: ColorByLayer}
	default:
		return Color{Kind: ColorIndex, Index: c.Index}
	}
}

// Transparency is an entity's optional alpha channel (§4.2's en_color
// transparency extension). TransparencyFromEnColor sets Opaque when the
// en_color carries no transparency; the zero value has Opaque false.
type Transparency struct {
	Opaque bool
	Alpha  byte
}

// TransparencyFromEnColor converts a decoded en_color primitive's
// transparency bits into a Transparency value.
func TransparencyFromEnColor(c bitio.EnColor) Transparency {
	if !c.HasTransparency {
		return Transparency{Opaque: true}
	}
	return Transparency{Alpha: c.TransparencyVal}
}
