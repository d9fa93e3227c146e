// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pagemap splits the loadable segments of a firmware image into
// target memory pages.
package pagemap

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/golang/glog"

	"github.com/embeddedgo/elf2uf2/elf2uf2/internal/addr"
	"github.com/embeddedgo/elf2uf2/elf2uf2/internal/elfimg"
)

var (
	ErrSegmentsOverlap        = errors.New("in memory segments overlap")
	ErrEntryPointNotMapped    = errors.New("entry point is not in mapped part of file")
	ErrDirectEntryIntoXIPSRAM = errors.New("B0/B1 Boot ROM does not support direct entry into XIP_SRAM")
	ErrNoMemoryPages          = errors.New("the input file has no memory pages")
)

// RAMEntryPointError is returned for a RAM binary that doesn't start at the
// beginning of its lowest page.
type RAMEntryPointError struct {
	Expected, Actual uint64
}

func (e *RAMEntryPointError) Error() string {
	return fmt.Sprintf(
		"a RAM binary should have an entry point at the beginning: %#08x (not %#08x)",
		e.Expected, e.Actual,
	)
}

// Fragment describes a run of bytes from the ELF file that must be copied
// into the page at PageOffset.
type Fragment struct {
	FileOffset uint64
	PageOffset uint64
	Bytes      uint64
}

func (f Fragment) end() uint64 { return f.PageOffset + f.Bytes }

// PageMap maps page aligned target addresses to the page contents. A page
// with no fragments is written as zeros.
type PageMap map[uint64][]Fragment

// Addrs returns the page addresses in ascending order.
func (pm PageMap) Addrs() []uint64 {
	return slices.Sorted(maps.Keys(pm))
}

// add appends f to the page at pa unless f overlaps an already queued
// fragment of this page.
func (pm PageMap) add(pa uint64, f Fragment) error {
	frags := pm[pa]
	for _, e := range frags {
		if f.PageOffset < e.end() && e.PageOffset < f.end() {
			return fmt.Errorf(
				"%w: %#08x->%#08x", ErrSegmentsOverlap,
				pa+f.PageOffset, pa+f.end(),
			)
		}
	}
	pm[pa] = append(frags, f)
	return nil
}

// Build splits the loadable segments into pages of pageSize bytes. Every
// segment is checked against the ranges table: its file contents must be
// placed in a Contents range (segments in Ignore ranges are skipped), its
// zero-initialized tail may not be placed outside the ranges.
func Build(segs []elfimg.Segment, ranges addr.Ranges, pageSize uint64, log glog.Verbose) (PageMap, error) {
	if pageSize == 0 {
		panic("pagemap: zero page size")
	}
	pm := make(PageMap)
	for i := range segs {
		s := &segs[i]
		if !s.Loadable() {
			continue
		}
		mapped := min(s.Filesz, s.Memsz)
		if mapped != 0 {
			r, err := ranges.Check(s.Paddr, mapped, false)
			if err != nil {
				return nil, err
			}
			if r.Kind != addr.Contents {
				log.Infof(
					"ignored segment %#08x->%#08x (%#08x->%#08x)",
					s.Paddr, s.Paddr+mapped, s.Vaddr, s.Vaddr+mapped,
				)
			} else {
				log.Infof(
					"mapped segment %#08x->%#08x (%#08x->%#08x)",
					s.Paddr, s.Paddr+mapped, s.Vaddr, s.Vaddr+mapped,
				)
				a, fo, rem := s.Paddr, s.Offset, mapped
				for rem != 0 {
					off := a % pageSize
					n := min(rem, pageSize-off)
					if err := pm.add(a-off, Fragment{fo, off, n}); err != nil {
						return nil, err
					}
					a += n
					fo += n
					rem -= n
				}
			}
		}
		if s.Memsz > s.Filesz {
			// The BSS tail is never downloaded. It is zeroed by the startup
			// code but must still fit in the device memory.
			a, n := s.Paddr+s.Filesz, s.Memsz-s.Filesz
			if _, err := ranges.Check(a, n, true); err != nil {
				return nil, err
			}
			log.Infof(
				"uninitialized segment %#08x->%#08x (%#08x->%#08x)",
				a, a+n, s.Vaddr+s.Filesz, s.Vaddr+s.Memsz,
			)
		}
	}
	return pm, nil
}
