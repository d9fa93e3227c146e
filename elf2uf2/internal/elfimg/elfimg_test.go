// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package elfimg_test

import (
	"bytes"
	"debug/elf"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embeddedgo/elf2uf2/elf2uf2/internal/elfimg"
	"github.com/embeddedgo/elf2uf2/elf2uf2/internal/testelf"
)

var file = testelf.File{
	Entry: 0x1000_0101,
	Segs: []testelf.Seg{
		{Vaddr: 0x1000_0100, Paddr: 0x1000_0100, Data: testelf.Pattern(1, 0x20)},
		{Type: elf.PT_NOTE, Vaddr: 0, Paddr: 0, Data: []byte("note")},
		{Vaddr: 0x2000_0000, Paddr: 0x1000_0120, Data: testelf.Pattern(7, 8), Memsz: 0x40},
	},
}

func TestOpen(t *testing.T) {
	img, err := elfimg.Open(file.Reader())
	require.NoError(t, err)
	assert.Equal(t, elf.EM_ARM, img.Machine)
	assert.Equal(t, uint64(0x1000_0101), img.Entry)
	require.Len(t, img.Segments, 3)

	s := img.Segments[2]
	assert.True(t, s.Loadable())
	assert.Equal(t, uint64(0x2000_0000), s.Vaddr)
	assert.Equal(t, uint64(0x1000_0120), s.Paddr)
	assert.Equal(t, uint64(8), s.Filesz)
	assert.Equal(t, uint64(0x40), s.Memsz)
	assert.False(t, img.Segments[1].Loadable())

	buf := make([]byte, s.Filesz)
	_, err = img.ReadAt(buf, int64(s.Offset))
	require.NoError(t, err)
	assert.Equal(t, testelf.Pattern(7, 8), buf)
}

func TestOpenRISCV(t *testing.T) {
	f := file
	f.Machine = elf.EM_RISCV
	img, err := elfimg.Open(f.Reader())
	require.NoError(t, err)
	assert.Equal(t, elf.EM_RISCV, img.Machine)
}

func TestOpenRejects(t *testing.T) {
	f := file
	f.Machine = elf.EM_X86_64
	_, err := elfimg.Open(f.Reader())
	var fe *elfimg.FormatError
	assert.ErrorAs(t, err, &fe)

	b := file.Bytes()
	b[elf.EI_DATA] = byte(elf.ELFDATA2MSB)
	_, err = elfimg.Open(bytes.NewReader(b))
	assert.Error(t, err)

	b = file.Bytes()
	b[0] = 0
	_, err = elfimg.Open(bytes.NewReader(b))
	assert.Error(t, err)

	_, err = elfimg.Open(bytes.NewReader(nil))
	assert.Error(t, err)
}
