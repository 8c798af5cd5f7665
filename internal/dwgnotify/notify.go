// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package dwgnotify defines the Notification sink shared by every decoder
// layer (§6, §7): sentinel/CRC mismatches, failsafe-swallowed section
// errors and per-object decode failures all surface here instead of
// aborting the whole read.
package dwgnotify

import "fmt"

// Kind classifies a Notification's severity.
type Kind int

const (
	Info Kind = iota
	Warning
	Error
)

func (k Kind) String() string {
	switch k {
	case Info:
		return "Info"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

// Notification is one diagnostic recorded during a read.
type Notification struct {
	Kind    Kind
	Message string
}

// Sink accumulates Notifications across every decoder layer touched by a
// single read. It is not safe for concurrent use; each read owns one.
type Sink struct {
	items []Notification
}

// Add appends a Notification of the given kind.
func (s *Sink) Add(kind Kind, message string) {
	s.items = append(s.items, Notification{Kind: kind, Message: message})
}

// Infof appends a formatted Info notification.
func (s *Sink) Infof(format string, args ...interface{}) { s.addf(Info, format, args...) }

// Warningf appends a formatted Warning notification.
func (s *Sink) Warningf(format string, args ...interface{}) { s.addf(Warning, format, args...) }

// Errorf appends a formatted Error notification.
func (s *Sink) Errorf(format string, args ...interface{}) { s.addf(Error, format, args...) }

func (s *Sink) addf(kind Kind, format string, args ...interface{}) {
	s.Add(kind, fmt.Sprintf(format, args...))
}

// Items returns every Notification recorded so far, in order.
func (s *Sink) Items() []Notification {
	return s.items
}
