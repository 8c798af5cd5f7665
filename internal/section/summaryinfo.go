// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package section

import (
	"github.com/saferwall/dwg/internal/bitio"
	"github.com/saferwall/dwg/internal/dwgerr"
	"github.com/saferwall/dwg/internal/dwgver"
)

// SummaryInfo is the decoded ACDB:SUMMARYINFO fragment (AC18+ only).
type SummaryInfo struct {
	Title         string
	Subject       string
	Author        string
	Keywords      string
	Comments      string
	LastSavedBy   string
	RevisionNum   string
	HyperlinkBase string
	TDCreate      [2]int32
	TDUpdate      [2]int32
	CustomProps   map[string]string
}

// DecodeSummaryInfo decodes a materialized ACDB:SUMMARYINFO section
// buffer. Absent on AC15-family drawings; callers gate the call on
// Options.ReadSummaryInfo and on file-header family.
func DecodeSummaryInfo(buf []byte, version dwgver.Version) (*SummaryInfo, error) {
	r := bitio.New(buf, version)

	fields := make([]string, 8)
	for i := range fields {
		v, err := r.Text()
		if err != nil {
			return nil, dwgerr.Wrap(dwgerr.KindParse, "SUMMARYINFO string field", err)
		}
		fields[i] = v
	}
	for i := 0; i < 2; i++ {
		if _, err := r.BitLong(); err != nil {
			return nil, dwgerr.Wrap(dwgerr.KindParse, "SUMMARYINFO unused i32", err)
		}
	}

	info := &SummaryInfo{
		Title:         fields[0],
		Subject:       fields[1],
		Author:        fields[2],
		Keywords:      fields[3],
		Comments:      fields[4],
		LastSavedBy:   fields[5],
		RevisionNum:   fields[6],
		HyperlinkBase: fields[7],
		CustomProps:   make(map[string]string),
	}

	for i, dst := range []*[2]int32{&info.TDCreate, &info.TDUpdate} {
		a, err := r.BitLong()
		if err != nil {
			return nil, dwgerr.Wrap(dwgerr.KindParse, "SUMMARYINFO julian date", err)
		}
		b, err := r.BitLong()
		if err != nil {
			return nil, dwgerr.Wrap(dwgerr.KindParse, "SUMMARYINFO julian date", err)
		}
		*dst = [2]int32{a, b}
		_ = i
	}

	count, err := r.BitShort()
	if err != nil {
		return nil, dwgerr.Wrap(dwgerr.KindParse, "SUMMARYINFO property count", err)
	}
	for i := int16(0); i < count; i++ {
		key, err := r.Text()
		if err != nil {
			return nil, dwgerr.Wrap(dwgerr.KindParse, "SUMMARYINFO property key", err)
		}
		val, err := r.Text()
		if err != nil {
			return nil, dwgerr.Wrap(dwgerr.KindParse, "SUMMARYINFO property value", err)
		}
		info.CustomProps[key] = val
	}

	return info, nil
}
