// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package board contains the memory maps and UF2 parameters of the supported
// target devices.
package board

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/embeddedgo/elf2uf2/elf2uf2/internal/addr"
)

const (
	DefaultPageSize   = 256
	DefaultSectorSize = 4096

	// MaxPageSize is the size of the UF2 block payload area.
	MaxPageSize = 476
)

// Profile describes a target device. RAMRanges == nil means the device
// cannot run RAM binaries and every image is treated as a Flash one.
type Profile struct {
	Name        string
	Descr       string
	FamilyID    uint32
	PageSize    uint32 // 0 means DefaultPageSize
	SectorSize  uint64 // 0 means DefaultSectorSize
	RAMRanges   addr.Ranges
	FlashRanges addr.Ranges
	MainRAM     addr.Window
	XIPSRAM     addr.Window
}

func (p *Profile) Page() uint32 {
	if p.PageSize == 0 {
		return DefaultPageSize
	}
	return p.PageSize
}

func (p *Profile) Sector() uint64 {
	if p.SectorSize == 0 {
		return DefaultSectorSize
	}
	return p.SectorSize
}

// WithFamily returns a copy of p that uses the given UF2 family ID.
func (p *Profile) WithFamily(id uint32) *Profile {
	q := *p
	q.FamilyID = id
	return &q
}

// Validate checks the invariants of the device layout.
func (p *Profile) Validate() error {
	ps := uint64(p.Page())
	switch {
	case ps > MaxPageSize:
		return fmt.Errorf("board %s: page size %d exceeds the UF2 payload size", p.Name, ps)
	case p.Sector()%ps != 0:
		return fmt.Errorf("board %s: sector size %d is not a multiple of the page size", p.Name, p.Sector())
	case len(p.FlashRanges) == 0:
		return fmt.Errorf("board %s: no flash address ranges", p.Name)
	case p.RAMRanges != nil && p.MainRAM.Start%ps != 0:
		return fmt.Errorf("board %s: main RAM start %#x is not page aligned", p.Name, p.MainRAM.Start)
	}
	return nil
}

// Board is one of the known target devices.
type Board uint8

const (
	RP2040 Board = iota
	RP2350
	CPB
	numBoards
)

// Profile returns the constant description of the board.
func (b Board) Profile() *Profile {
	if b >= numBoards {
		panic("board: unknown board")
	}
	return &profiles[b]
}

func (b Board) String() string {
	if b >= numBoards {
		return "Board(" + strconv.Itoa(int(b)) + ")"
	}
	return profiles[b].Name
}

// All returns all known boards.
func All() []Board {
	bs := make([]Board, numBoards)
	for i := range bs {
		bs[i] = Board(i)
	}
	return bs
}

// Lookup finds the board by its name (case insensitive).
func Lookup(name string) (Board, bool) {
	for _, b := range All() {
		if strings.EqualFold(profiles[b].Name, name) {
			return b, true
		}
	}
	return 0, false
}

// Names returns the sorted names of all known boards.
func Names() []string {
	var names []string
	for _, b := range All() {
		names = append(names, b.String())
	}
	slices.Sort(names)
	return names
}

// UF2 families, see github.com/microsoft/uf2/utils/uf2families.json
var familyMap = map[string]uint32{
	"rp2040":        0xe48bff56,
	"absolute":      0xe48bff57,
	"data":          0xe48bff58,
	"rp2350_arm_s":  0xe48bff59,
	"rp2350_riscv":  0xe48bff5a,
	"rp2350_arm_ns": 0xe48bff5b,
	"nrf52840":      0xada52840,
}

// FamilyNames returns the sorted names accepted by ParseFamily.
func FamilyNames() []string {
	return slices.Sorted(maps.Keys(familyMap))
}

// FamilyName returns the name of the known family or its hexadecimal ID.
func FamilyName(id uint32) string {
	for name, fid := range familyMap {
		if fid == id {
			return name
		}
	}
	return fmt.Sprintf("%#08x", id)
}

// ParseFamily accepts a known family name or a 32-bit number.
func ParseFamily(s string) (uint32, error) {
	if id, ok := familyMap[strings.ToLower(s)]; ok {
		return id, nil
	}
	u, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf(`bad UF2 family ID: "%s"`, s)
	}
	return uint32(u), nil
}
