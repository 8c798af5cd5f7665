// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package dwgerr implements the closed error taxonomy of §7: every layer
// of the decoder returns a *Error carrying one of a fixed set of Kinds,
// so callers can branch with errors.Is/errors.As instead of string
// matching, mirroring the teacher's sentinel-error style in helper.go
// while adding the wrapping the spec's taxonomy requires.
package dwgerr

import "fmt"

// Kind is the closed taxonomy of §7.
type Kind int

const (
	// KindIO is returned for underlying stream failures: short reads, or a
	// seek past the end of the buffer on a read that didn't expect EOF.
	KindIO Kind = iota
	// KindUnsupportedVersion is returned when a six-byte magic is present
	// but does not name a supported DWG generation.
	KindUnsupportedVersion
	// KindInvalidHeader is returned when a fixed-layout field fails a
	// structural check, e.g. a truncated file-header descriptor block.
	KindInvalidHeader
	// KindInvalidFormat is returned when an otherwise in-range value is
	// internally inconsistent, e.g. a section named in the catalog but
	// missing its pages.
	KindInvalidFormat
	// KindDecompression is returned when an LZ77 opcode is invalid or the
	// decoder produced the wrong number of bytes.
	KindDecompression
	// KindParse is returned when a bit-stream primitive saw an
	// out-of-range discriminator.
	KindParse
	// KindCustom is an escape hatch used sparingly.
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "Io"
	case KindUnsupportedVersion:
		return "UnsupportedVersion"
	case KindInvalidHeader:
		return "InvalidHeader"
	case KindInvalidFormat:
		return "InvalidFormat"
	case KindDecompression:
		return "Decompression"
	case KindParse:
		return "Parse"
	default:
		return "Custom"
	}
}

// Error is the wrapped error type every decoder layer returns.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dwg: %s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("dwg: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is(err, dwgerr.Sentinel(dwgerr.KindParse)) work by
// treating any *Error target as "any *Error with this Kind".
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// New builds a *Error with no wrapped cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds a *Error that wraps an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Sentinel returns a zero-value *Error of the given kind, suitable as a
// target for errors.Is(err, dwgerr.Sentinel(dwgerr.KindParse)).
func Sentinel(kind Kind) *Error {
	return &Error{Kind: kind}
}

var (
	// ErrUnexpectedEnd is returned by bit-stream reads that run past the
	// end of the buffer.
	ErrUnexpectedEnd = New(KindIO, "unexpected end of stream")
	// ErrInvalidCode is returned when a bit-stream primitive decodes an
	// out-of-range discriminator.
	ErrInvalidCode = New(KindParse, "invalid discriminator code")
)
