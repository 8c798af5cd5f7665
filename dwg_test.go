// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dwg

import "testing"

func TestDefaultOptions(t *testing.T) {
	opts := defaultOptions()
	if !opts.ReadSummaryInfo {
		t.Error("ReadSummaryInfo should default to true")
	}
	if !opts.KeepUnknownEntities || !opts.KeepUnknownNonGraphicalObjects {
		t.Error("unknown-object retention should default to true")
	}
	if !opts.Failsafe {
		t.Error("Failsafe should default to true")
	}
	if opts.CRCCheck {
		t.Error("CRCCheck should default to false")
	}
}

func TestNewDocumentUsesDefaultsWhenOptionsNil(t *testing.T) {
	doc := newDocument(nil)
	if doc.opts == nil || !doc.opts.Failsafe {
		t.Fatal("newDocument(nil) should install default options")
	}
	if doc.logger == nil {
		t.Fatal("newDocument should always install a logger")
	}
	if doc.notice == nil {
		t.Fatal("newDocument should always install a notification sink")
	}
}

func TestNewDocumentCopiesCallerOptions(t *testing.T) {
	custom := &Options{CRCCheck: true}
	doc := newDocument(custom)
	if !doc.opts.CRCCheck {
		t.Fatal("newDocument should preserve caller-supplied options")
	}
	custom.CRCCheck = false
	if !doc.opts.CRCCheck {
		t.Fatal("newDocument should copy options, not alias the caller's struct")
	}
}

func TestReadFromFileMissingFile(t *testing.T) {
	if _, err := ReadFromFile("testdata/does-not-exist.dwg", nil); err == nil {
		t.Fatal("expected an error opening a nonexistent file")
	}
}
