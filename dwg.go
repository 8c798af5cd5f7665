// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package dwg parses AutoCAD DWG drawing files (R13 through R2018) into an
// in-memory Document: the file header's section catalog, the well-known
// sections (HEADER, CLASSES, HANDLES, SUMMARYINFO, APPINFO, PREVIEW), and
// the handle-driven object graph.
package dwg

import (
	"errors"
	"os"

	mmap "github.com/edsrzf/mmap-go"

	"github.com/saferwall/dwg/internal/dlog"
	"github.com/saferwall/dwg/internal/dwgerr"
	"github.com/saferwall/dwg/internal/dwgnotify"
	"github.com/saferwall/dwg/internal/dwgver"
	"github.com/saferwall/dwg/internal/fileheader"
	"github.com/saferwall/dwg/internal/objects"
	"github.com/saferwall/dwg/internal/section"
)

// DxfVersion identifies the on-disk drawing version (§4.1's six-byte
// magic). Pre-R13 and anything past R2018 are VersionUnknown.
type DxfVersion = dwgver.Version

// Handle is a 64-bit persistent object identifier (§4.2).
type Handle = dwgver.Handle

// NotificationKind classifies a Notification's severity.
type NotificationKind = dwgnotify.Kind

// Severity levels a Notification may carry.
const (
	Info    = dwgnotify.Info
	Warning = dwgnotify.Warning
	Error   = dwgnotify.Error
)

// Notification is a single non-fatal diagnostic recorded while reading a
// drawing: a sentinel mismatch, an out-of-range handle, a section a
// failsafe read chose to skip. Document.Notifications accumulates every
// one produced by a Parse call.
type Notification = dwgnotify.Notification

// Options controls how a Document is read. Passing a nil *Options to
// ReadFromFile or ReadFromStream selects the defaults named on each field
// below; a zero-value Options instead leaves every boolean knob off.
// Sentinel mismatches are recorded as Notifications either way.
type Options struct {
	// CRCCheck is carried on Options but no decode step reads it: CRC
	// fields in the file header and HANDLES section are read and never
	// compared against a computed value, whatever its setting. Off by
	// default.
	CRCCheck bool

	// ReadSummaryInfo reads the SUMMARYINFO section when true (default).
	// Set false to skip it on AC18+ drawings.
	ReadSummaryInfo bool

	// KeepUnknownEntities is carried on Options but not consulted: the
	// object walker keeps a raw record for every object it decodes,
	// whether or not internal/objects classifies its type. Default true.
	KeepUnknownEntities bool

	// KeepUnknownNonGraphicalObjects mirrors KeepUnknownEntities for
	// non-graphical (dictionary/proxy) objects and is likewise not
	// consulted. Default true.
	KeepUnknownNonGraphicalObjects bool

	// Failsafe decides what a failure to materialize AcDbObjects or to
	// decode HANDLES does: with Failsafe set it is recorded as a
	// Notification and Objects stays nil; otherwise the read returns the
	// error. HEADER, CLASSES, SUMMARYINFO, APPINFO and PREVIEW failures
	// are always recorded as Notifications, whatever its setting. Default
	// true: most consumers want "best effort".
	Failsafe bool

	// Logger receives structured Debug/Info/Warn/Error lines as Parse
	// proceeds. Defaults to a filtered stdout logger at error level.
	Logger dlog.Logger
}

func defaultOptions() *Options {
	return &Options{
		ReadSummaryInfo:                true,
		KeepUnknownEntities:            true,
		KeepUnknownNonGraphicalObjects: true,
		Failsafe:                       true,
	}
}

// Document is an open, parsed DWG drawing.
type Document struct {
	Version       DxfVersion
	Catalog       *fileheader.Catalog
	Header        *section.HeaderFragment
	Classes       []section.Class
	SummaryInfo   *section.SummaryInfo
	AppInfo       *section.AppInfo
	Preview       []byte
	Objects       *objects.Document
	Notifications []Notification

	data   []byte
	mapped mmap.MMap
	f      *os.File
	opts   *Options
	logger *dlog.Helper
	notice *dwgnotify.Sink
}

// ReadFromFile memory-maps name and parses it as a DWG drawing. Callers
// must call Close when done to release the mapping and file handle.
func ReadFromFile(name string, opts *Options) (*Document, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	mapped, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	doc := newDocument(opts)
	doc.data = mapped
	doc.mapped = mapped
	doc.f = f

	if err := doc.parse(); err != nil {
		doc.Close()
		return nil, err
	}
	return doc, nil
}

// ReadFromStream parses an in-memory DWG byte buffer.
func ReadFromStream(data []byte, opts *Options) (*Document, error) {
	doc := newDocument(opts)
	doc.data = data
	if err := doc.parse(); err != nil {
		return nil, err
	}
	return doc, nil
}

func newDocument(opts *Options) *Document {
	doc := &Document{notice: &dwgnotify.Sink{}}
	if opts != nil {
		o := *opts
		doc.opts = &o
	} else {
		doc.opts = defaultOptions()
	}
	var logger dlog.Logger
	if doc.opts.Logger == nil {
		logger = dlog.NewStdLogger(os.Stdout)
		doc.logger = dlog.NewHelper(dlog.NewFilter(logger, dlog.FilterLevel(dlog.LevelError)))
	} else {
		doc.logger = dlog.NewHelper(doc.opts.Logger)
	}
	return doc
}

// Close releases the Document's file mapping and handle, if any.
func (d *Document) Close() error {
	if d.mapped != nil {
		_ = d.mapped.Unmap()
	}
	if d.f != nil {
		return d.f.Close()
	}
	return nil
}

// parse runs the full read pipeline: version detection, file-header
// decode, section materialization, per-section typed decode, and the
// object-graph walk.
func (d *Document) parse() error {
	if len(d.data) < 6 {
		return dwgerr.New(dwgerr.KindInvalidHeader, "file too small to contain a DWG magic")
	}
	version, ok := dwgver.Detect(d.data[:6])
	if !ok {
		return dwgerr.New(dwgerr.KindUnsupportedVersion, "unrecognized DWG version magic")
	}
	d.Version = version

	catalog, err := fileheader.Decode(d.data, d.notice)
	if err != nil {
		return dwgerr.Wrap(dwgerr.KindInvalidHeader, "file header", err)
	}
	d.Catalog = catalog

	d.decodeKnownSections()

	seeds := make([]Handle, 0, len(d.Header.HandlePointers))
	for _, h := range d.Header.HandlePointers {
		seeds = append(seeds, h)
	}

	objSection, err := section.Materialize(catalog, d.data, fileheader.SectionObjects, d.notice)
	if err != nil {
		d.notice.Errorf("AcDbObjects materialization failed: %v", err)
		if !d.opts.Failsafe {
			return err
		}
	} else {
		handleMap, herr := d.decodeHandleMap()
		if herr != nil {
			d.notice.Errorf("HANDLES decode failed: %v", herr)
			if !d.opts.Failsafe {
				return herr
			}
		} else {
			d.Objects = objects.Walk(objSection, handleMap, seeds, version, d.notice)
		}
	}

	d.Notifications = d.notice.Items()
	d.logger.Infof("parsed %s drawing: %d notifications", version, len(d.Notifications))
	return nil
}

func (d *Document) decodeHandleMap() (map[Handle]int64, error) {
	buf, err := section.Materialize(d.Catalog, d.data, fileheader.SectionHandles, d.notice)
	if err != nil {
		return nil, err
	}
	return section.DecodeHandles(buf, d.Version, d.notice)
}

func (d *Document) decodeKnownSections() {
	headerBuf, err := section.Materialize(d.Catalog, d.data, fileheader.SectionHeader, d.notice)
	if err != nil {
		d.notice.Errorf("HEADER materialization failed: %v", err)
		d.Header = &section.HeaderFragment{Vars: map[string]section.Value{}, HandlePointers: map[string]Handle{}}
	} else {
		hdr, herr := section.DecodeHeader(headerBuf, d.Version, d.notice)
		if herr != nil {
			d.notice.Errorf("HEADER decode failed: %v", herr)
			hdr = &section.HeaderFragment{Vars: map[string]section.Value{}, HandlePointers: map[string]Handle{}}
		}
		d.Header = hdr
	}

	if classesBuf, err := section.Materialize(d.Catalog, d.data, fileheader.SectionClasses, d.notice); err == nil {
		if classes, cerr := section.DecodeClasses(classesBuf, d.Version, d.notice); cerr == nil {
			d.Classes = classes
		} else {
			d.notice.Errorf("CLASSES decode failed: %v", cerr)
		}
	}

	if d.Version.FileHeaderFamily() != dwgver.FamilyAC15 {
		if d.opts.ReadSummaryInfo {
			if buf, err := section.Materialize(d.Catalog, d.data, fileheader.SectionSummaryInfo, d.notice); err == nil {
				if info, serr := section.DecodeSummaryInfo(buf, d.Version); serr == nil {
					d.SummaryInfo = info
				} else {
					d.notice.Errorf("SUMMARYINFO decode failed: %v", serr)
				}
			}
		}
		if buf, err := section.Materialize(d.Catalog, d.data, fileheader.SectionAppInfo, d.notice); err == nil {
			if info, aerr := section.DecodeAppInfo(buf, d.Version); aerr == nil {
				d.AppInfo = info
			} else {
				d.notice.Errorf("APPINFO decode failed: %v", aerr)
			}
		}
	}

	if buf, err := section.Materialize(d.Catalog, d.data, fileheader.SectionPreview, d.notice); err == nil {
		if preview, perr := section.DecodePreview(buf, d.Version); perr == nil {
			d.Preview = preview
		} else {
			d.notice.Errorf("PREVIEW decode failed: %v", perr)
		}
	}
}

// ReadPreview parses only enough of name to extract its thumbnail image,
// skipping the object graph entirely.
func ReadPreview(name string) ([]byte, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	mapped, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer mapped.Unmap()

	if len(mapped) < 6 {
		return nil, errors.New("dwg: file too small to contain a DWG magic")
	}
	version, ok := dwgver.Detect(mapped[:6])
	if !ok {
		return nil, dwgerr.New(dwgerr.KindUnsupportedVersion, "unrecognized DWG version magic")
	}
	notice := &dwgnotify.Sink{}
	catalog, err := fileheader.Decode(mapped, notice)
	if err != nil {
		return nil, err
	}
	buf, err := section.Materialize(catalog, mapped, fileheader.SectionPreview, notice)
	if err != nil {
		return nil, err
	}
	return section.DecodePreview(buf, version)
}

// ReadSummaryInfo parses only enough of name to extract its SUMMARYINFO
// fragment (title, author, comments, custom properties). Returns nil,nil
// on an AC15-family drawing, which carries no SUMMARYINFO section.
func ReadSummaryInfo(name string) (*section.SummaryInfo, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	mapped, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer mapped.Unmap()

	if len(mapped) < 6 {
		return nil, errors.New("dwg: file too small to contain a DWG magic")
	}
	version, ok := dwgver.Detect(mapped[:6])
	if !ok {
		return nil, dwgerr.New(dwgerr.KindUnsupportedVersion, "unrecognized DWG version magic")
	}
	if version.FileHeaderFamily() == dwgver.FamilyAC15 {
		return nil, nil
	}
	notice := &dwgnotify.Sink{}
	catalog, err := fileheader.Decode(mapped, notice)
	if err != nil {
		return nil, err
	}
	buf, err := section.Materialize(catalog, mapped, fileheader.SectionSummaryInfo, notice)
	if err != nil {
		return nil, err
	}
	return section.DecodeSummaryInfo(buf, version)
}
