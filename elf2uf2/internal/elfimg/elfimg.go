// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package elfimg reads the loadable segments of a 32-bit little-endian
// firmware ELF file.
package elfimg

import (
	"debug/elf"
	"fmt"
	"io"
)

// Segment is the program header of the ELF file.
type Segment struct {
	Type   elf.ProgType
	Vaddr  uint64 // address in the memory during execution
	Paddr  uint64 // physical location of the segment (load address)
	Offset uint64 // offset in the ELF file to the beggining of the segment data
	Filesz uint64 // number of bytes stored in the file
	Memsz  uint64 // number of bytes in memory, the bytes past Filesz are zeroed
}

// Loadable reports whether the segment occupies target memory.
func (s *Segment) Loadable() bool {
	return s.Type == elf.PT_LOAD && s.Memsz != 0
}

// Image is an opened firmware ELF file.
type Image struct {
	Machine  elf.Machine
	Entry    uint64
	Segments []Segment

	r io.ReaderAt
}

// FormatError describes the reason the file was rejected.
type FormatError struct {
	Msg string
}

func (e *FormatError) Error() string {
	return "elf: " + e.Msg
}

// Open reads the ELF header and the program headers from r. The returned
// image reads the segment data from r so r must stay open as long as the
// image is used.
func Open(r io.ReaderAt) (*Image, error) {
	f, err := elf.NewFile(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if f.Class != elf.ELFCLASS32 {
		return nil, &FormatError{fmt.Sprintf("unsupported class %v", f.Class)}
	}
	if f.Data != elf.ELFDATA2LSB {
		return nil, &FormatError{fmt.Sprintf("unsupported byte order %v", f.Data)}
	}
	if f.Type != elf.ET_EXEC {
		return nil, &FormatError{fmt.Sprintf("not an executable: %v", f.Type)}
	}
	switch f.Machine {
	case elf.EM_ARM, elf.EM_RISCV:
	default:
		return nil, &FormatError{fmt.Sprintf("unsupported machine %v", f.Machine)}
	}
	switch f.OSABI {
	case elf.ELFOSABI_NONE, elf.ELFOSABI_ARM, elf.ELFOSABI_STANDALONE:
	default:
		return nil, &FormatError{fmt.Sprintf("unsupported ABI %v", f.OSABI)}
	}
	img := &Image{
		Machine:  f.Machine,
		Entry:    f.Entry,
		Segments: make([]Segment, 0, len(f.Progs)),
		r:        r,
	}
	for _, p := range f.Progs {
		img.Segments = append(img.Segments, Segment{
			Type:   p.Type,
			Vaddr:  p.Vaddr,
			Paddr:  p.Paddr,
			Offset: p.Off,
			Filesz: p.Filesz,
			Memsz:  p.Memsz,
		})
	}
	return img, nil
}

// ReadAt reads the file contents. It allows to use the image as the source of
// page data.
func (img *Image) ReadAt(p []byte, off int64) (int, error) {
	return img.r.ReadAt(p, off)
}
