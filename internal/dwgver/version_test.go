// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dwgver

import "testing"

func TestDetectKnownVersion(t *testing.T) {
	v, ok := Detect([]byte("AC1015\x00\x00\x00\x00"))
	if !ok {
		t.Fatal("Detect returned ok=false for a known magic")
	}
	if v != VersionR2000 {
		t.Fatalf("Detect = %v, want VersionR2000", v)
	}
}

func TestDetectUnknownVersion(t *testing.T) {
	if _, ok := Detect([]byte("BADVER..")); ok {
		t.Fatal("Detect returned ok=true for an unrecognized magic")
	}
}

func TestRankOrdering(t *testing.T) {
	if !VersionR2018.AtLeast(VersionR13) {
		t.Fatal("R2018 should rank at or above R13")
	}
	if VersionR13.AtLeast(VersionR2018) {
		t.Fatal("R13 should not rank at or above R2018")
	}
}

func TestFileHeaderFamily(t *testing.T) {
	cases := map[Version]Family{
		VersionR13:   FamilyAC15,
		VersionR2000: FamilyAC15,
		VersionR2004: FamilyAC18,
		VersionR2007: FamilyAC18,
		VersionR2010: FamilyAC21,
		VersionR2018: FamilyAC21,
	}
	for v, want := range cases {
		if got := v.FileHeaderFamily(); got != want {
			t.Errorf("%v.FileHeaderFamily() = %v, want %v", v, got, want)
		}
	}
}

func TestHandleResolve(t *testing.T) {
	base := Handle(100)
	if got := Resolve(base, RefRelativeAdd, 5); got != 105 {
		t.Errorf("RelativeAdd: got %d, want 105", got)
	}
	if got := Resolve(base, RefRelativeSub, 5); got != 95 {
		t.Errorf("RelativeSub: got %d, want 95", got)
	}
	if got := Resolve(base, RefAbsolute, 42); got != 42 {
		t.Errorf("Absolute: got %d, want 42", got)
	}
}

func TestReferenceTypeNibbleRoundTrip(t *testing.T) {
	types := []ReferenceType{
		RefAbsolute, RefRelativeAdd, RefRelativeSub,
		RefHardPointer, RefSoftPointer, RefHardOwner, RefSoftOwner,
	}
	for _, ty := range types {
		n, ok := NibbleFromReferenceType(ty)
		if !ok {
			t.Fatalf("no nibble for %v", ty)
		}
		got := ReferenceTypeFromNibble(n)
		if got != ty {
			t.Errorf("round trip: %v -> nibble %x -> %v", ty, n, got)
		}
	}
}
