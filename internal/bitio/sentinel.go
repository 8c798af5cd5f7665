// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package bitio

// Sentinel reads a 16-byte aligned sentinel value, compared by the caller
// against one of the known constant tables (see internal/section).
func (r *Reader) Sentinel() ([16]byte, error) {
	r.ResetShift()
	var s [16]byte
	for i := range s {
		b, err := r.Byte()
		if err != nil {
			return s, err
		}
		s[i] = b
	}
	return s, nil
}

// SetPositionByFlag seeks to bit position p and reads a single flag bit:
// if that bit is false, the sub-stream described by this flag is empty and
// the reader's position is left just past the flag bit; if true, the
// sub-stream begins at p+1 and the reader is positioned there. The bool
// result reports whether the sub-stream is present (non-empty).
func (r *Reader) SetPositionByFlag(p int64) (bool, error) {
	r.SetPositionInBits(p)
	present, err := r.Bit()
	if err != nil {
		return false, err
	}
	if !present {
		return false, nil
	}
	r.SetPositionInBits(p + 1)
	return true, nil
}
