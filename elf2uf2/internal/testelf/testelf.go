// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package testelf builds small ELF32 firmware images for tests.
package testelf

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
)

// Seg describes one program header. The zero Type means PT_LOAD and the zero
// Memsz means len(Data).
type Seg struct {
	Type  elf.ProgType
	Vaddr uint32
	Paddr uint32
	Data  []byte
	Memsz uint32
}

// File describes the whole image. The zero Machine means EM_ARM.
type File struct {
	Machine elf.Machine
	Entry   uint32
	Segs    []Seg
}

const (
	ehsize    = 52
	phentsize = 32
)

// Bytes returns the encoded ELF file. The segment data follows the program
// header table in the order of Segs.
func (f *File) Bytes() []byte {
	le := binary.LittleEndian
	machine := f.Machine
	if machine == 0 {
		machine = elf.EM_ARM
	}
	hdr := elf.Header32{
		Type:      uint16(elf.ET_EXEC),
		Machine:   uint16(machine),
		Version:   uint32(elf.EV_CURRENT),
		Entry:     f.Entry,
		Phoff:     ehsize,
		Flags:     0x0500_0200,
		Ehsize:    ehsize,
		Phentsize: phentsize,
		Phnum:     uint16(len(f.Segs)),
		Shentsize: 40,
	}
	copy(hdr.Ident[:], elf.ELFMAG)
	hdr.Ident[elf.EI_CLASS] = byte(elf.ELFCLASS32)
	hdr.Ident[elf.EI_DATA] = byte(elf.ELFDATA2LSB)
	hdr.Ident[elf.EI_VERSION] = byte(elf.EV_CURRENT)

	buf := new(bytes.Buffer)
	binary.Write(buf, le, &hdr)
	off := uint32(ehsize + phentsize*len(f.Segs))
	for _, s := range f.Segs {
		typ := s.Type
		if typ == elf.PT_NULL {
			typ = elf.PT_LOAD
		}
		memsz := s.Memsz
		if memsz == 0 {
			memsz = uint32(len(s.Data))
		}
		binary.Write(buf, le, &elf.Prog32{
			Type:   uint32(typ),
			Off:    off,
			Vaddr:  s.Vaddr,
			Paddr:  s.Paddr,
			Filesz: uint32(len(s.Data)),
			Memsz:  memsz,
			Flags:  uint32(elf.PF_R | elf.PF_W | elf.PF_X),
			Align:  4,
		})
		off += uint32(len(s.Data))
	}
	for _, s := range f.Segs {
		buf.Write(s.Data)
	}
	return buf.Bytes()
}

// Reader returns the encoded file as an io.ReaderAt.
func (f *File) Reader() *bytes.Reader {
	return bytes.NewReader(f.Bytes())
}

// Pattern returns n bytes of a recognizable pattern starting with seed.
func Pattern(seed byte, n int) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = seed + byte(i)
	}
	return p
}
