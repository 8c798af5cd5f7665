// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package section

import (
	"github.com/saferwall/dwg/internal/bitio"
	"github.com/saferwall/dwg/internal/dwgver"
)

// ValueKind discriminates the tagged header-variable values of §3's
// "header bag".
type ValueKind int

const (
	KindBool ValueKind = iota
	KindI32
	KindI64
	KindF64
	KindText
	KindHandle
	KindPoint2
	KindPoint3
	KindJulianPair
)

// Value is one entry of the header bag: a name maps to exactly one of
// these, discriminated by Kind.
type Value struct {
	Kind   ValueKind
	Bool   bool
	I32    int32
	I64    int64
	F64    float64
	Text   string
	Handle dwgver.Handle
	Point2 bitio.Point2
	Point3 bitio.Point3
	Julian [2]int32
}

func vbool(b bool) Value             { return Value{Kind: KindBool, Bool: b} }
func vi32(v int32) Value             { return Value{Kind: KindI32, I32: v} }
func vf64(v float64) Value           { return Value{Kind: KindF64, F64: v} }
func vtext(v string) Value           { return Value{Kind: KindText, Text: v} }
func vhandle(v dwgver.Handle) Value  { return Value{Kind: KindHandle, Handle: v} }
func vpoint2(v bitio.Point2) Value   { return Value{Kind: KindPoint2, Point2: v} }
func vpoint3(v bitio.Point3) Value   { return Value{Kind: KindPoint3, Point3: v} }
func vjulian(a, b int32) Value       { return Value{Kind: KindJulianPair, Julian: [2]int32{a, b}} }
