// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package section

import (
	"github.com/saferwall/dwg/internal/bitio"
	"github.com/saferwall/dwg/internal/dwgerr"
	"github.com/saferwall/dwg/internal/dwgnotify"
	"github.com/saferwall/dwg/internal/dwgver"
)

// HeaderFragment is the HEADER decoder's output: the header bag plus the
// handle-pointer bag (§3). Name resolution to the document's typed view
// is left to the builder.
type HeaderFragment struct {
	Vars           map[string]Value
	HandlePointers map[string]dwgver.Handle
}

// headerBoolFlags names the packed boolean mode switches read from a
// single bit_long near the top of the HEADER payload. This is a
// representative subset of AutoCAD's actual flag set, not the exhaustive
// list (see DESIGN.md).
var headerBoolFlags = []string{
	"BLIPMODE", "FILLMODE", "QTEXTMODE", "PSLTSCALE",
	"LIMCHECK", "ORTHOMODE", "REGENMODE", "PLINEGEN",
}

// headerShortVars names the bit_short header variables decoded after the
// flag word.
var headerShortVars = []string{"INSUNITS", "CEPSNTYPE", "PDMODE", "USERI1", "USERI2", "USERI3", "USERI4", "USERI5"}

// headerDoubleVars names the bit_double header variables decoded after
// the short variables.
var headerDoubleVars = []string{"DIMSCALE", "LTSCALE", "TEXTSIZE", "TRACEWID"}

// headerPrimaryHandleVars names the "primary" handles read right after
// HANDSEED: five of them, plus CMATERIAL on R2007+.
var headerPrimaryHandleVars = []string{"CLAYER", "TEXTSTYLE", "CELTYPE", "CMATERIAL", "DIMSTYLE", "CMLSTYLE"}

// headerPointerBagNames is a representative subset of the 35 well-known
// header handle-pointer slots (table-control objects and dictionaries).
var headerPointerBagNames = []string{
	"BLOCK_CONTROL_OBJECT", "LAYER_CONTROL_OBJECT", "STYLE_CONTROL_OBJECT",
	"LINETYPE_CONTROL_OBJECT", "VIEW_CONTROL_OBJECT", "UCS_CONTROL_OBJECT",
	"VPORT_CONTROL_OBJECT", "APPID_CONTROL_OBJECT", "DIMSTYLE_CONTROL_OBJECT",
	"DICTIONARY_NAMED_OBJECTS", "DICTIONARY_ACAD_GROUP", "DICTIONARY_ACAD_MLINESTYLE",
	"DICTIONARY_LAYOUTS", "DICTIONARY_PLOTSETTINGS", "DICTIONARY_PLOTSTYLENAME",
	"DICTIONARY_VISUALSTYLE",
}

// headerCanonicalObjectVars names the canonical base objects read at the
// end of the handle block.
var headerCanonicalObjectVars = []string{"PAPER_SPACE", "MODEL_SPACE", "BYLAYER", "BYBLOCK", "CONTINUOUS"}

// DecodeHeader decodes a materialized ACDB:HEADER section buffer (§4.8).
func DecodeHeader(buf []byte, version dwgver.Version, notices *dwgnotify.Sink) (*HeaderFragment, error) {
	r := bitio.New(buf, version)

	start, err := r.Sentinel()
	if err != nil {
		return nil, dwgerr.Wrap(dwgerr.KindInvalidFormat, "HEADER start sentinel", err)
	}
	if start != headerSentinelStart {
		notices.Warningf("HEADER: start sentinel mismatch")
	}
	if _, err := r.RawLong(); err != nil {
		return nil, dwgerr.Wrap(dwgerr.KindParse, "HEADER declared length", err)
	}

	vars := make(map[string]Value)
	pointers := make(map[string]dwgver.Handle)

	// Prelude: four bit-doubles (version-reserved scale/angle fields),
	// four variable-text strings, two bit-longs.
	for i := 0; i < 4; i++ {
		if _, err := r.BitDouble(); err != nil {
			return nil, dwgerr.Wrap(dwgerr.KindParse, "HEADER prelude double", err)
		}
	}
	for i := 0; i < 4; i++ {
		if _, err := r.Text(); err != nil {
			return nil, dwgerr.Wrap(dwgerr.KindParse, "HEADER prelude text", err)
		}
	}
	for i := 0; i < 2; i++ {
		if _, err := r.BitLong(); err != nil {
			return nil, dwgerr.Wrap(dwgerr.KindParse, "HEADER prelude long", err)
		}
	}

	flags, err := r.BitLong()
	if err != nil {
		return nil, dwgerr.Wrap(dwgerr.KindParse, "HEADER flag word", err)
	}
	for i, name := range headerBoolFlags {
		vars[name] = vbool(flags&(1<<uint(i)) != 0)
	}

	for _, name := range headerShortVars {
		v, err := r.BitShort()
		if err != nil {
			return nil, dwgerr.Wrap(dwgerr.KindParse, "HEADER short var "+name, err)
		}
		vars[name] = vi32(int32(v))
	}

	for _, name := range headerDoubleVars {
		v, err := r.BitDouble()
		if err != nil {
			return nil, dwgerr.Wrap(dwgerr.KindParse, "HEADER double var "+name, err)
		}
		vars[name] = vf64(v)
	}

	menuName, err := r.Text()
	if err != nil {
		return nil, dwgerr.Wrap(dwgerr.KindParse, "HEADER menu name", err)
	}
	vars["MENU"] = vtext(menuName)

	julianNames := []string{"TDCREATE", "TDUPDATE", "TDINDWG", "TDUSRTIMER"}
	for _, name := range julianNames {
		a, err := r.BitLong()
		if err != nil {
			return nil, dwgerr.Wrap(dwgerr.KindParse, "HEADER julian date "+name, err)
		}
		b, err := r.BitLong()
		if err != nil {
			return nil, dwgerr.Wrap(dwgerr.KindParse, "HEADER julian date "+name, err)
		}
		vars[name] = vjulian(a, b)
	}

	cecolor, err := r.CmColor(r.Text)
	if err != nil {
		return nil, dwgerr.Wrap(dwgerr.KindParse, "HEADER CECOLOR", err)
	}
	vars["CECOLOR"] = vi32(int32(cecolor.Index))

	handseed, err := r.HandleReference(0)
	if err != nil {
		return nil, dwgerr.Wrap(dwgerr.KindParse, "HEADER HANDSEED", err)
	}
	vars["HANDSEED"] = vhandle(handseed.Value)

	for _, name := range headerPrimaryHandleVars {
		if name == "CMATERIAL" && version.Before(dwgver.VersionR2007) {
			continue
		}
		ref, err := r.HandleReference(0)
		if err != nil {
			return nil, dwgerr.Wrap(dwgerr.KindParse, "HEADER primary handle "+name, err)
		}
		pointers[name] = ref.Value
	}

	insbase, err := r.Point3Default(bitio.Point3{})
	if err != nil {
		return nil, dwgerr.Wrap(dwgerr.KindParse, "HEADER INSBASE", err)
	}
	vars["INSBASE"] = vpoint3(insbase)

	geomNames3 := []string{"EXTMIN", "EXTMAX"}
	for _, name := range geomNames3 {
		p, err := r.Point3Default(bitio.Point3{})
		if err != nil {
			return nil, dwgerr.Wrap(dwgerr.KindParse, "HEADER "+name, err)
		}
		vars[name] = vpoint3(p)
	}
	geomNames2 := []string{"LIMMIN", "LIMMAX"}
	for _, name := range geomNames2 {
		p, err := r.Point2Default(bitio.Point2{})
		if err != nil {
			return nil, dwgerr.Wrap(dwgerr.KindParse, "HEADER "+name, err)
		}
		vars[name] = vpoint2(p)
	}
	elevation, err := r.BitDoubleDefault(0)
	if err != nil {
		return nil, dwgerr.Wrap(dwgerr.KindParse, "HEADER ELEVATION", err)
	}
	vars["ELEVATION"] = vf64(elevation)

	ucsOrigin, err := r.Point3Default(bitio.Point3{})
	if err != nil {
		return nil, dwgerr.Wrap(dwgerr.KindParse, "HEADER UCSORG", err)
	}
	vars["UCSORG"] = vpoint3(ucsOrigin)
	ucsX, err := r.Point3Default(bitio.Point3{X: 1})
	if err != nil {
		return nil, dwgerr.Wrap(dwgerr.KindParse, "HEADER UCSXDIR", err)
	}
	vars["UCSXDIR"] = vpoint3(ucsX)
	ucsY, err := r.Point3Default(bitio.Point3{Y: 1})
	if err != nil {
		return nil, dwgerr.Wrap(dwgerr.KindParse, "HEADER UCSYDIR", err)
	}
	vars["UCSYDIR"] = vpoint3(ucsY)
	if version.AtLeast(dwgver.VersionR2000) {
		pucsName, err := r.Text()
		if err != nil {
			return nil, dwgerr.Wrap(dwgerr.KindParse, "HEADER UCSNAME", err)
		}
		vars["UCSNAME"] = vtext(pucsName)
		orthoRef, err := r.HandleReference(0)
		if err != nil {
			return nil, dwgerr.Wrap(dwgerr.KindParse, "HEADER PUCSORTHOREF", err)
		}
		pointers["PUCSORTHOREF"] = orthoRef.Value
		originOffset, err := r.Point3Default(bitio.Point3{})
		if err != nil {
			return nil, dwgerr.Wrap(dwgerr.KindParse, "HEADER PUCSORGTOP", err)
		}
		vars["PUCSORGTOP"] = vpoint3(originOffset)
	}

	for _, name := range headerPointerBagNames {
		ref, err := r.HandleReference(0)
		if err != nil {
			return nil, dwgerr.Wrap(dwgerr.KindParse, "HEADER pointer "+name, err)
		}
		pointers[name] = ref.Value
	}
	for _, name := range headerCanonicalObjectVars {
		ref, err := r.HandleReference(0)
		if err != nil {
			return nil, dwgerr.Wrap(dwgerr.KindParse, "HEADER canonical object "+name, err)
		}
		pointers[name] = ref.Value
	}

	r.ResetShift()
	end, err := r.Sentinel()
	if err != nil {
		notices.Warningf("HEADER: could not read end sentinel: %v", err)
	} else if end != headerSentinelEnd {
		notices.Warningf("HEADER: end sentinel mismatch")
	}

	return &HeaderFragment{Vars: vars, HandlePointers: pointers}, nil
}
