// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package objects implements the handle-driven object-section walker of
// §4.9: a non-recursive, FIFO traversal of the materialized AcDbObjects
// buffer that turns a handle-pointer seed set plus a handle→offset map
// into a flat list of raw object records.
package objects

import (
	"github.com/saferwall/dwg/internal/dwgnotify"
	"github.com/saferwall/dwg/internal/dwgver"
)

// EEDRecord is one typed record of an Extended Entity Data app group
// (§4.9 step 6). Code identifies the DXF group code (1000..1071); the
// payload is kept in whichever field matches its encoding.
type EEDRecord struct {
	Code  int
	Text  string
	I16   int16
	I32   int32
	F64   float64
	Bytes []byte
}

// EEDGroup is the Extended Entity Data attached by one application to an
// object: the handle of the registered app plus its typed records.
type EEDGroup struct {
	AppHandle dwgver.Handle
	Records   []EEDRecord
}

// EntityCommon holds the entity-specific preamble fields decoded for
// object types classified as entities (§4.9 step 7). Non-entity objects
// leave this zero.
type EntityCommon struct {
	IsEntity      bool
	OwnedByBlock  bool
	OwnerHandle   dwgver.Handle
	Reactors      []dwgver.Handle
	HasXDictionary bool
	XDictionary   dwgver.Handle
	LayerHandle   dwgver.Handle
	LineTypeHandle dwgver.Handle
	Invisible     bool
	LineWeight    byte
	Color         uint16
	LineTypeScale float64
}

// RawObject is one decoded object-section record: everything the walker
// itself interprets, plus the remaining undecoded bits as an opaque
// payload for typed decoders layered on top.
type RawObject struct {
	Handle      dwgver.Handle
	FileOffset  int64
	ObjectType  uint16
	EED         []EEDGroup
	Entity      EntityCommon
	Payload     []byte
	Truncated   bool
}

// Document is the walker's output: every decoded object plus the order
// they were discovered in (FIFO over the header seed handles).
type Document struct {
	Objects []*RawObject
	ByHandle map[dwgver.Handle]*RawObject
}

// Walk runs the §4.9 algorithm: seed a FIFO queue with every handle in
// seeds, resolve each through handleMap against objectSection, decode it
// with a Reader, and enqueue every handle discovered along the way. A
// handle that does not resolve, or an object that fails mid-decode, is
// recorded via notices rather than aborting the walk.
func Walk(objectSection []byte, handleMap map[dwgver.Handle]int64, seeds []dwgver.Handle, version dwgver.Version, notices *dwgnotify.Sink) *Document {
	doc := &Document{ByHandle: make(map[dwgver.Handle]*RawObject)}
	visited := make(map[dwgver.Handle]bool)
	queue := make([]dwgver.Handle, 0, len(seeds))

	enqueue := func(h dwgver.Handle) {
		if h.IsNull() || visited[h] {
			return
		}
		queue = append(queue, h)
	}
	for _, h := range seeds {
		enqueue(h)
	}

	for len(queue) > 0 {
		h := queue[0]
		queue = queue[1:]
		if visited[h] {
			continue
		}
		visited[h] = true

		offset, ok := handleMap[h]
		if !ok {
			notices.Warningf("object walker: handle %d has no entry in the handle map", uint64(h))
			continue
		}
		if offset < 0 || offset >= int64(len(objectSection)) {
			notices.Warningf("object walker: handle %d resolves outside AcDbObjects", uint64(h))
			continue
		}

		obj, discovered, err := decodeObject(objectSection, offset, h, version)
		if obj != nil {
			doc.Objects = append(doc.Objects, obj)
			doc.ByHandle[h] = obj
		}
		if err != nil {
			if obj != nil {
				obj.Truncated = true
			}
			notices.Warningf("object walker: handle %d truncated: %v", uint64(h), err)
		}
		for _, d := range discovered {
			enqueue(d)
		}
	}

	return doc
}
