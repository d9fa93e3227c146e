// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package addr describes the memory map of a target device as a list of
// address ranges and checks program segments against it.
package addr

import "fmt"

// Kind tells what the program image is allowed to place in an address range.
type Kind uint8

const (
	Contents   Kind = iota // may have contents
	NoContents             // must be uninitialized
	Ignore                 // segments here are skipped
)

func (k Kind) String() string {
	switch k {
	case Contents:
		return "contents"
	case NoContents:
		return "no-contents"
	case Ignore:
		return "ignore"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Range is the [From, To) address window of the given kind.
type Range struct {
	From uint64
	To   uint64
	Kind Kind
}

// Window is a plain [Start, End) address window.
type Window struct {
	Start uint64
	End   uint64
}

func (w Window) Contains(a uint64) bool {
	return w.Start <= a && a < w.End
}

// Ranges is an address range table. The first matching range wins.
type Ranges []Range

// InvalidRangeError is returned if no range of the table covers the whole
// [From, To) segment.
type InvalidRangeError struct {
	From, To uint64
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf(
		"memory segment %#08x->%#08x is outside of valid address range for device",
		e.From, e.To,
	)
}

// UninitializedContentsError is returned if a segment with file contents
// falls into a NoContents range.
type UninitializedContentsError struct {
	Addr uint64
}

func (e *UninitializedContentsError) Error() string {
	return fmt.Sprintf(
		"ELF contains memory contents for uninitialized memory at %08x",
		e.Addr,
	)
}

// Check returns the first range that fully contains the [a, a+size)
// interval. If uninitialized is false the interval carries file contents
// and must not be placed in a NoContents range.
func (rs Ranges) Check(a, size uint64, uninitialized bool) (Range, error) {
	for _, r := range rs {
		if r.From <= a && r.To >= a+size {
			if r.Kind == NoContents && !uninitialized {
				return r, &UninitializedContentsError{a}
			}
			return r, nil
		}
	}
	return Range{}, &InvalidRangeError{a, a + size}
}

// Lookup returns the first range containing the address a.
func (rs Ranges) Lookup(a uint64) (r Range, ok bool) {
	for _, r = range rs {
		if r.From <= a && a < r.To {
			return r, true
		}
	}
	return Range{}, false
}

// IsInitialized reports whether a belongs to a Contents range. An address
// outside of all ranges is simply not initialized.
func (rs Ranges) IsInitialized(a uint64) bool {
	r, ok := rs.Lookup(a)
	return ok && r.Kind == Contents
}
