// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package board

import "github.com/embeddedgo/elf2uf2/elf2uf2/internal/addr"

// RP2040
const (
	rp2040MainRAMStart       = 0x2000_0000
	rp2040MainRAMEnd         = 0x2004_2000
	rp2040FlashStart         = 0x1000_0000
	rp2040FlashEnd           = 0x1500_0000
	rp2040XIPSRAMStart       = 0x1500_0000
	rp2040XIPSRAMEnd         = 0x1500_4000
	rp2040MainRAMBankedStart = 0x2100_0000
	rp2040MainRAMBankedEnd   = 0x2104_0000
	rp2040ROMStart           = 0x0000_0000
	rp2040ROMEnd             = 0x0000_4000
)

// RP2350
const (
	rp2350MainRAMStart = 0x2000_0000
	rp2350MainRAMEnd   = 0x2008_2000
	rp2350FlashStart   = 0x1000_0000
	rp2350FlashEnd     = 0x1500_0000 // images may live in any partition
	rp2350XIPSRAMStart = 0x13ff_c000
	rp2350XIPSRAMEnd   = 0x1400_0000
	rp2350ROMStart     = 0x0000_0000
	rp2350ROMEnd       = 0x0000_8000
)

// Adafruit Circuit Playground Bluefruit (nRF52840 UF2 bootloader).
const (
	cpbMainRAMStart       = 0x0080_0000
	cpbMainRAMEnd         = 0x1000_0000
	cpbFlashStart         = 0x0010_0000
	cpbFlashEnd           = 0x0080_0000
	cpbXIPSRAMStart       = 0x1200_0000
	cpbXIPSRAMEnd         = 0x19ff_ffff
	cpbMainRAMBankedStart = 0x6000_0000
	cpbMainRAMBankedEnd   = 0xa000_0000
	cpbBootloaderStart    = 0x0000_0000
	cpbBootloaderEnd      = 0x0010_0000
)

var profiles = [numBoards]Profile{
	RP2040: {
		Name:     "rp2040",
		Descr:    "Raspberry Pi RP2040",
		FamilyID: 0xe48bff56,
		RAMRanges: addr.Ranges{
			{From: rp2040MainRAMStart, To: rp2040MainRAMEnd, Kind: addr.Contents},
			{From: rp2040XIPSRAMStart, To: rp2040XIPSRAMEnd, Kind: addr.Contents},
			{From: rp2040ROMStart, To: rp2040ROMEnd, Kind: addr.Ignore},
		},
		FlashRanges: addr.Ranges{
			{From: rp2040FlashStart, To: rp2040FlashEnd, Kind: addr.Contents},
			{From: rp2040MainRAMStart, To: rp2040MainRAMEnd, Kind: addr.NoContents},
			{From: rp2040MainRAMBankedStart, To: rp2040MainRAMBankedEnd, Kind: addr.NoContents},
		},
		MainRAM: addr.Window{Start: rp2040MainRAMStart, End: rp2040MainRAMEnd},
		XIPSRAM: addr.Window{Start: rp2040XIPSRAMStart, End: rp2040XIPSRAMEnd},
	},
	RP2350: {
		Name:     "rp2350",
		Descr:    "Raspberry Pi RP2350 (secure Arm image)",
		FamilyID: 0xe48bff59,
		RAMRanges: addr.Ranges{
			{From: rp2350MainRAMStart, To: rp2350MainRAMEnd, Kind: addr.Contents},
			{From: rp2350XIPSRAMStart, To: rp2350XIPSRAMEnd, Kind: addr.Contents},
			{From: rp2350ROMStart, To: rp2350ROMEnd, Kind: addr.Ignore},
		},
		FlashRanges: addr.Ranges{
			{From: rp2350FlashStart, To: rp2350FlashEnd, Kind: addr.Contents},
			{From: rp2350MainRAMStart, To: rp2350MainRAMEnd, Kind: addr.NoContents},
		},
		MainRAM: addr.Window{Start: rp2350MainRAMStart, End: rp2350MainRAMEnd},
		XIPSRAM: addr.Window{Start: rp2350XIPSRAMStart, End: rp2350XIPSRAMEnd},
	},
	CPB: {
		Name:     "cpb",
		Descr:    "Adafruit Circuit Playground Bluefruit (nRF52840)",
		FamilyID: 0xada52840,
		RAMRanges: addr.Ranges{
			{From: cpbMainRAMStart, To: cpbMainRAMEnd, Kind: addr.Contents},
			{From: cpbXIPSRAMStart, To: cpbXIPSRAMEnd, Kind: addr.Contents},
			{From: cpbBootloaderStart, To: cpbBootloaderEnd, Kind: addr.Ignore},
		},
		FlashRanges: addr.Ranges{
			{From: cpbFlashStart, To: cpbFlashEnd, Kind: addr.Contents},
			{From: cpbMainRAMStart, To: cpbMainRAMEnd, Kind: addr.NoContents},
			{From: cpbMainRAMBankedStart, To: cpbMainRAMBankedEnd, Kind: addr.NoContents},
		},
		MainRAM: addr.Window{Start: cpbMainRAMStart, End: cpbMainRAMEnd},
		XIPSRAM: addr.Window{Start: cpbXIPSRAMStart, End: cpbXIPSRAMEnd},
	},
}
