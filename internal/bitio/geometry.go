// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package bitio

import "github.com/saferwall/dwg/internal/dwgver"

// Point2 is a 2D point decoded from a pair of bit-doubles.
type Point2 struct{ X, Y float64 }

// Point3 is a 3D point decoded from a triple of bit-doubles.
type Point3 struct{ X, Y, Z float64 }

// BitThickness reads an entity's line thickness: a plain bit_double on
// R13/R14, and a 1-bit "is zero" flag followed by a conditional bit_double
// on R2000+.
func (r *Reader) BitThickness() (float64, error) {
	if r.version.Before(dwgver.VersionR2000) {
		return r.BitDouble()
	}
	isZero, err := r.Bit()
	if err != nil {
		return 0, err
	}
	if isZero {
		return 0, nil
	}
	return r.BitDouble()
}

// BitExtrusion reads an entity's extrusion vector: three bit-doubles on
// R13/R14, and a 1-bit "is (0,0,1)" flag followed by a conditional triple
// of bit-doubles on R2000+.
func (r *Reader) BitExtrusion() (Point3, error) {
	if r.version.Before(dwgver.VersionR2000) {
		return r.readPoint3Doubles()
	}
	isDefault, err := r.Bit()
	if err != nil {
		return Point3{}, err
	}
	if isDefault {
		return Point3{X: 0, Y: 0, Z: 1}, nil
	}
	return r.readPoint3Doubles()
}

func (r *Reader) readPoint3Doubles() (Point3, error) {
	x, err := r.BitDouble()
	if err != nil {
		return Point3{}, err
	}
	y, err := r.BitDouble()
	if err != nil {
		return Point3{}, err
	}
	z, err := r.BitDouble()
	if err != nil {
		return Point3{}, err
	}
	return Point3{X: x, Y: y, Z: z}, nil
}

// Point2Default reads a 2D point as two bit_double_default values against
// the supplied defaults, the common encoding for paper-space/model-space
// geometry blocks in HEADER.
func (r *Reader) Point2Default(def Point2) (Point2, error) {
	x, err := r.BitDoubleDefault(def.X)
	if err != nil {
		return Point2{}, err
	}
	y, err := r.BitDoubleDefault(def.Y)
	if err != nil {
		return Point2{}, err
	}
	return Point2{X: x, Y: y}, nil
}

// Point3Default reads a 3D point as three bit_double_default values
// against the supplied defaults.
func (r *Reader) Point3Default(def Point3) (Point3, error) {
	x, err := r.BitDoubleDefault(def.X)
	if err != nil {
		return Point3{}, err
	}
	y, err := r.BitDoubleDefault(def.Y)
	if err != nil {
		return Point3{}, err
	}
	z, err := r.BitDoubleDefault(def.Z)
	if err != nil {
		return Point3{}, err
	}
	return Point3{X: x, Y: y, Z: z}, nil
}
