// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package objects

import "github.com/saferwall/dwg/internal/bitio"

// streams bundles the three sub-readers §4.9 step 4 positions over one
// object: numeric/bit fields come off main, variable-text strings off
// text, and handle references off handle. All three may alias the same
// underlying byte buffer (bitio.Reader tracks only its own bit position).
type streams struct {
	main   *bitio.Reader
	text   *bitio.Reader
	handle *bitio.Reader
}

func (s *streams) readText() (string, error) { return s.text.Text() }
