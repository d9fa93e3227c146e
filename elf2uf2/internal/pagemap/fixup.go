// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pagemap

import (
	"math"

	"github.com/embeddedgo/elf2uf2/elf2uf2/internal/addr"
)

// PadToSectors adds empty pages to every flash sector touched by the image so
// all its pages below the last page of the image are present. The bootrom
// derives the sector to erase from the block number so a partially written
// sector must still be represented by all its blocks. The last sector isn't
// padded to keep the common images small.
func (pm PageMap) PadToSectors(sectorSize, pageSize uint64) {
	if len(pm) == 0 {
		return
	}
	sectors := make(map[uint64]struct{})
	var last uint64
	for a := range pm {
		sectors[a/sectorSize] = struct{}{}
		last = max(last, a)
	}
	for sector := range sectors {
		start := sector * sectorSize
		for a := start; a < start+sectorSize && a < last; a += pageSize {
			if _, ok := pm[a]; !ok {
				pm[a] = nil
			}
		}
	}
}

// ValidateRAMEntry checks that a RAM binary starts at its lowest page (in the
// main RAM or, if there is nothing in the main RAM, in the XIP SRAM). The
// Thumb bit is expected to be set in the entry point.
func (pm PageMap) ValidateRAMEntry(entry uint64, mainRAM, xipSRAM addr.Window, pageSize uint64) error {
	if mainRAM.Start%pageSize != 0 {
		panic("pagemap: main RAM start not page aligned")
	}
	mainEP := uint64(math.MaxUint64)
	xipEP := uint64(math.MaxUint64)
	for a := range pm {
		switch {
		case mainRAM.Contains(a):
			mainEP = min(mainEP, a|1)
		case xipSRAM.Contains(a):
			xipEP = min(xipEP, a|1)
		}
	}
	switch {
	case mainEP != math.MaxUint64:
		if entry != mainEP {
			return &RAMEntryPointError{mainEP, entry}
		}
		return nil
	case xipEP != math.MaxUint64:
		return ErrDirectEntryIntoXIPSRAM
	}
	return ErrNoMemoryPages
}
