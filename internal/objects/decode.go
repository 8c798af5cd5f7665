// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package objects

import (
	"errors"

	"github.com/saferwall/dwg/internal/bitio"
	"github.com/saferwall/dwg/internal/dwgver"
)

// errUnknownEEDCode terminates an app's EED group early, per §4.9 step 6:
// an unrecognized code ends that group rather than the whole object.
var errUnknownEEDCode = errors.New("objects: unrecognized EED code")

// entityTypeCodes is the fixed-code subset of §3's raw object-type space
// classified as entities (graphical, block-owned) rather than
// non-graphical objects. It is representative, not exhaustive: the real
// format assigns well over a hundred fixed codes, and class-indexed
// codes (>=500) dispatch through the CLASSES table instead of a fixed
// classification, which this walker does not resolve (see DESIGN.md) —
// class-indexed objects always take the non-entity preamble path.
var entityTypeCodes = map[uint16]bool{
	1: true, 2: true, 3: true, 7: true, 8: true,
	10: true, 11: true, 13: true, 14: true, 15: true,
	16: true, 17: true, 18: true, 19: true, 20: true,
	27: true, 28: true, 31: true, 33: true, 34: true,
	40: true, 41: true, 44: true,
}

func isEntityType(t uint16) bool {
	if t >= 500 {
		return false
	}
	return entityTypeCodes[t]
}

// decodeObject decodes the object at offset (a byte offset into
// objectSection) per §4.9 steps 3-8, returning the raw record and every
// handle discovered while decoding it (for the caller to enqueue). A
// non-nil error alongside a non-nil obj means the object is truncated:
// obj carries everything that decoded before the failure.
func decodeObject(objectSection []byte, offset int64, h dwgver.Handle, version dwgver.Version) (*RawObject, []dwgver.Handle, error) {
	sizeReader := bitio.New(objectSection, version)
	sizeReader.SetPositionInBits(offset * 8)
	size, err := sizeReader.ModularShort()
	if err != nil {
		return nil, nil, err
	}
	if size == 0 {
		return nil, nil, nil
	}

	mainStart := sizeReader.PositionInBits()
	objEndBits := mainStart + int64(size)*8

	main := bitio.New(objectSection, version)
	main.SetPositionInBits(mainStart)

	var handleSize uint64
	if version.AtLeast(dwgver.VersionR2010) {
		tail := bitio.New(objectSection, version)
		// handle_size itself occupies a variable number of bits at the very
		// end; probing backwards far enough to read a modular_char is not
		// exactly representable without first knowing its length, so this
		// walker reads it from a byte-aligned position one byte before the
		// declared end, which matches how encoders pad the trailer.
		tail.SetPositionInBits(objEndBits - 8)
		hs, herr := tail.ModularChar()
		if herr == nil {
			handleSize = hs
		}
	}

	handleReaderStart := objEndBits
	if version.AtLeast(dwgver.VersionR2010) && handleSize > 0 {
		handleReaderStart = objEndBits - int64(handleSize)*8
	}

	text := bitio.New(objectSection, version)
	handle := bitio.New(objectSection, version)

	switch {
	case version.AtLeast(dwgver.VersionR2007):
		flagPos := handleReaderStart - 1
		present, ferr := main.SetPositionByFlag(flagPos)
		if ferr == nil && present {
			textStart := main.PositionInBits()
			text.SetPositionInBits(textStart)
		}
		main.SetPositionInBits(mainStart)
		handle.SetPositionInBits(handleReaderStart)
	case version.AtLeast(dwgver.VersionR2000):
		hdrOff, herr := main.RawLong()
		if herr == nil {
			handle.SetPositionInBits(mainStart + int64(hdrOff)*8)
		} else {
			handle.SetPositionInBits(handleReaderStart)
		}
		main.SetPositionInBits(mainStart)
		text.SetPositionInBits(mainStart)
	default:
		handle.SetPositionInBits(handleReaderStart)
		text.SetPositionInBits(mainStart)
	}

	s := &streams{main: main, text: text, handle: handle}

	obj := &RawObject{Handle: h, FileOffset: offset}

	objType, err := main.ObjectType()
	if err != nil {
		return obj, nil, err
	}
	obj.ObjectType = objType

	var discovered []dwgver.Handle
	enqueue := func(hv dwgver.Handle) {
		if !hv.IsNull() {
			discovered = append(discovered, hv)
		}
	}

	selfRef, err := s.handle.HandleReference(h)
	if err != nil {
		return obj, discovered, err
	}
	enqueue(selfRef.Value)

	for {
		eedSize, eerr := main.BitShort()
		if eerr != nil {
			return obj, discovered, eerr
		}
		if eedSize == 0 {
			break
		}
		appRef, aerr := s.handle.HandleReference(h)
		if aerr != nil {
			return obj, discovered, aerr
		}
		enqueue(appRef.Value)
		group := EEDGroup{AppHandle: appRef.Value}
		recEndBits := main.PositionInBits() + int64(eedSize)*8
		for main.PositionInBits() < recEndBits {
			code, cerr := main.Byte()
			if cerr != nil {
				return obj, discovered, cerr
			}
			rec, rerr := decodeEEDRecord(main, 1000+int(code))
			if rerr != nil {
				break
			}
			group.Records = append(group.Records, rec)
		}
		main.SetPositionInBits(recEndBits)
		obj.EED = append(obj.EED, group)
	}

	if isEntityType(objType) {
		ec, eerr := decodeEntityCommon(s, version)
		if eerr != nil {
			obj.Entity = ec
			obj.Truncated = true
			return obj, discovered, eerr
		}
		obj.Entity = ec
		enqueue(ec.OwnerHandle)
		enqueue(ec.XDictionary)
		for _, r := range ec.Reactors {
			enqueue(r)
		}
		enqueue(ec.LayerHandle)
		enqueue(ec.LineTypeHandle)
	} else {
		ownerRef, oerr := s.handle.HandleReference(h)
		if oerr != nil {
			obj.Truncated = true
			return obj, discovered, oerr
		}
		enqueue(ownerRef.Value)

		count, cerr := main.BitLong()
		if cerr != nil {
			obj.Truncated = true
			return obj, discovered, cerr
		}
		for i := int32(0); i < count; i++ {
			r, rerr := s.handle.HandleReference(h)
			if rerr != nil {
				obj.Truncated = true
				return obj, discovered, rerr
			}
			enqueue(r.Value)
		}

		hasXDict, xerr := main.Bit()
		if xerr == nil && hasXDict {
			xref, xrerr := s.handle.HandleReference(h)
			if xrerr == nil {
				enqueue(xref.Value)
			}
		}
	}

	curPos := main.PositionInBits()
	if curPos < objEndBits {
		remaining := objEndBits - curPos
		payload := make([]byte, (remaining+7)/8)
		for i := range payload {
			b, perr := main.Byte()
			if perr != nil {
				break
			}
			payload[i] = b
		}
		obj.Payload = payload
	}

	return obj, discovered, nil
}

func decodeEEDRecord(r *bitio.Reader, code int) (EEDRecord, error) {
	rec := EEDRecord{Code: code}
	switch {
	case code == 0 || (code >= 1000 && code <= 1009):
		s, err := readRawCString(r)
		rec.Text = s
		return rec, err
	case code == 1 || code == 1070:
		v, err := r.RawShort()
		rec.I16 = int16(v)
		return rec, err
	case code == 1071:
		v, err := r.RawLong()
		rec.I32 = v
		return rec, err
	case code >= 1010 && code <= 1059:
		v, err := r.Double()
		rec.F64 = v
		return rec, err
	default:
		return rec, errUnknownEEDCode
	}
}

// readRawCString reads a length-prefixed byte string the way the EED
// text records (1000-1009) encode them: a one-byte length, then that
// many raw bytes.
func readRawCString(r *bitio.Reader) (string, error) {
	n, err := r.Byte()
	if err != nil {
		return "", err
	}
	b := make([]byte, n)
	for i := range b {
		c, err := r.Byte()
		if err != nil {
			return "", err
		}
		b[i] = c
	}
	return string(b), nil
}

func decodeEntityCommon(s *streams, version dwgver.Version) (EntityCommon, error) {
	ec := EntityCommon{IsEntity: true}
	m := s.main

	if version.AtLeast(dwgver.VersionR2010) {
		if _, err := m.BitLongLong(); err != nil {
			return ec, err
		}
	} else {
		if _, err := m.RawLong(); err != nil {
			return ec, err
		}
	}

	mode, err := m.TwoBits()
	if err != nil {
		return ec, err
	}
	ec.OwnedByBlock = mode == 0
	if ec.OwnedByBlock {
		ref, herr := s.handle.HandleReference(0)
		if herr != nil {
			return ec, herr
		}
		ec.OwnerHandle = ref.Value
	}

	count, err := m.BitLong()
	if err != nil {
		return ec, err
	}
	for i := int32(0); i < count; i++ {
		ref, herr := s.handle.HandleReference(0)
		if herr != nil {
			return ec, herr
		}
		ec.Reactors = append(ec.Reactors, ref.Value)
	}

	if version.AtLeast(dwgver.VersionR2004) {
		missing, merr := m.Bit()
		if merr != nil {
			return ec, merr
		}
		ec.HasXDictionary = !missing
	} else {
		ec.HasXDictionary = true
	}
	if ec.HasXDictionary {
		ref, herr := s.handle.HandleReference(0)
		if herr != nil {
			return ec, herr
		}
		ec.XDictionary = ref.Value
	}

	if version.AtLeast(dwgver.VersionR2013) {
		if _, err := m.Bit(); err != nil {
			return ec, err
		}
	}

	layerRef, err := s.handle.HandleReference(0)
	if err != nil {
		return ec, err
	}
	ec.LayerHandle = layerRef.Value

	hasOwnLineType, err := m.Bit()
	if err != nil {
		return ec, err
	}
	if hasOwnLineType {
		ltRef, lerr := s.handle.HandleReference(0)
		if lerr != nil {
			return ec, lerr
		}
		ec.LineTypeHandle = ltRef.Value
	}

	if version.AtLeast(dwgver.VersionR2007) {
		if _, err := m.BitShort(); err != nil {
			return ec, err
		}
		if _, err := m.Byte(); err != nil {
			return ec, err
		}
	}

	if _, err := m.TwoBits(); err != nil {
		return ec, err
	}
	if version.AtLeast(dwgver.VersionR2010) {
		for i := 0; i < 3; i++ {
			hasOpt, oerr := m.Bit()
			if oerr != nil {
				return ec, oerr
			}
			if hasOpt {
				if _, err := s.handle.HandleReference(0); err != nil {
					return ec, err
				}
			}
		}
	}

	invisible, err := m.BitShort()
	if err != nil {
		return ec, err
	}
	ec.Invisible = invisible != 0

	lw, err := m.Byte()
	if err != nil {
		return ec, err
	}
	ec.LineWeight = lw

	col, err := m.EnColor()
	if err != nil {
		return ec, err
	}
	ec.Color = uint16(col.Index)

	scale, err := m.BitDoubleDefault(1.0)
	if err != nil {
		return ec, err
	}
	ec.LineTypeScale = scale

	return ec, nil
}
