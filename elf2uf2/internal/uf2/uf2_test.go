// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uf2_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/golang/glog"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embeddedgo/elf2uf2/elf2uf2/internal/pagemap"
	"github.com/embeddedgo/elf2uf2/elf2uf2/internal/testelf"
	"github.com/embeddedgo/elf2uf2/elf2uf2/internal/uf2"
	"github.com/embeddedgo/elf2uf2/elf2uf2/internal/uf2/mocks"
)

const (
	family   = 0xe48bff56
	pageSize = 256
)

var nolog = glog.Verbose(false)

var src = bytes.NewReader(testelf.Pattern(0x40, 0x300))

var pm = pagemap.PageMap{
	0x1000_0100: {{FileOffset: 0x100, PageOffset: 0, Bytes: 0x100}},
	0x1000_0000: {{FileOffset: 0x000, PageOffset: 0x10, Bytes: 0x20}},
	0x1000_0200: nil,
}

func TestWriteBlocks(t *testing.T) {
	var out bytes.Buffer
	var calls []int
	err := uf2.WriteBlocks(&out, pm, src, family, pageSize, nolog, func(n, total int) {
		assert.Equal(t, 3, total)
		calls = append(calls, n)
	})
	require.NoError(t, err)
	require.Equal(t, 3*uf2.BlockSize, out.Len())
	assert.Equal(t, []int{1, 2, 3}, calls)

	// header of the first block
	le := binary.LittleEndian
	raw := out.Bytes()
	for i, want := range []uint32{
		0x0a324655, 0x9e5d5157, 0x2000, 0x1000_0000, 256, 0, 3, family,
	} {
		assert.Equal(t, want, le.Uint32(raw[i*4:]), "header word %d", i)
	}
	assert.Equal(t, uint32(0x0ab16f30), le.Uint32(raw[508:]))

	blocks, err := uf2.ReadBlocks(bytes.NewReader(raw))
	require.NoError(t, err)
	require.NoError(t, uf2.Verify(blocks))
	require.Len(t, blocks, 3)

	wantAddr := []uint32{0x1000_0000, 0x1000_0100, 0x1000_0200}
	for i, b := range blocks {
		assert.Equal(t, wantAddr[i], b.Addr)
		assert.Equal(t, uint32(i), b.Seq)
		assert.Equal(t, make([]byte, uf2.PayloadSize-pageSize), b.Data[pageSize:])
	}

	page := make([]byte, pageSize)
	copy(page[0x10:], testelf.Pattern(0x40, 0x20))
	assert.Equal(t, page, blocks[0].Payload())
	assert.Equal(t, testelf.Pattern(0x40, 0x300)[0x100:0x200], blocks[1].Payload())
	assert.Equal(t, make([]byte, pageSize), blocks[2].Payload())
}

func TestWriteBlocksIdempotent(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, uf2.WriteBlocks(&a, pm, src, family, pageSize, nolog, nil))
	require.NoError(t, uf2.WriteBlocks(&b, pm, src, family, pageSize, nolog, nil))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestWriteBlocksEmpty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, uf2.WriteBlocks(&out, pagemap.PageMap{}, src, family, pageSize, nolog, nil))
	assert.Zero(t, out.Len())
}

func TestWriteBlocksWriteError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	errDisk := errors.New("disk full")
	w := mocks.NewMockWriter(ctrl)
	gomock.InOrder(
		w.EXPECT().Write(gomock.Len(uf2.BlockSize)).Return(uf2.BlockSize, nil),
		w.EXPECT().Write(gomock.Len(uf2.BlockSize)).Return(0, errDisk),
	)
	err := uf2.WriteBlocks(w, pm, src, family, pageSize, nolog, nil)
	assert.ErrorIs(t, err, errDisk)
}

func TestWriteBlocksReadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	w := mocks.NewMockWriter(ctrl) // no writes expected
	short := bytes.NewReader(make([]byte, 0x10))
	err := uf2.WriteBlocks(w, pm, short, family, pageSize, nolog, nil)
	assert.Error(t, err)
}

func TestWriteBlocksAddrOverflow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	w := mocks.NewMockWriter(ctrl)
	big := pagemap.PageMap{0x1_0000_0000: nil, 0x1000_0000: nil}
	err := uf2.WriteBlocks(w, big, src, family, pageSize, nolog, nil)
	assert.Error(t, err)
}

func TestWriterTooManyBlocks(t *testing.T) {
	var out bytes.Buffer
	u := uf2.NewWriter(&out, uf2.FamilyIDPresent, family, 1)
	require.NoError(t, u.WritePage(0x1000_0000, make([]byte, pageSize)))
	assert.Error(t, u.WritePage(0x1000_0100, make([]byte, pageSize)))
	assert.Equal(t, 1, u.Written())
}

func TestReadBlocksErrors(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, uf2.WriteBlocks(&out, pm, src, family, pageSize, nolog, nil))
	raw := out.Bytes()

	_, err := uf2.ReadBlocks(bytes.NewReader(raw[:len(raw)-1]))
	assert.Error(t, err)

	bad := bytes.Clone(raw)
	bad[uf2.BlockSize+511] ^= 0xff
	_, err = uf2.ReadBlocks(bytes.NewReader(bad))
	assert.ErrorIs(t, err, uf2.ErrBadMagic)

	blocks, err := uf2.ReadBlocks(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestVerify(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, uf2.WriteBlocks(&out, pm, src, family, pageSize, nolog, nil))
	blocks, err := uf2.ReadBlocks(&out)
	require.NoError(t, err)

	assert.Error(t, uf2.Verify(blocks[1:]), "missing first block")
	assert.Error(t, uf2.Verify(blocks[:2]), "total mismatch")

	swapped := []uf2.Block{blocks[1], blocks[0], blocks[2]}
	assert.Error(t, uf2.Verify(swapped))

	blocks[2].Family++
	assert.Error(t, uf2.Verify(blocks))
}

func TestFlagString(t *testing.T) {
	for _, tc := range []struct {
		flags uint32
		want  string
	}{
		{0, "none"},
		{uf2.FamilyIDPresent, "family-id"},
		{uf2.NotMainFlash | uf2.MD5ChecksumPresent, "not-main-flash|md5"},
		{uf2.FileContainer | uf2.ExtensionTagsPresent, "file-container|extension-tags"},
		{uf2.FamilyIDPresent | 0x10, "family-id|0x10"},
	} {
		assert.Equal(t, tc.want, uf2.FlagString(tc.flags))
	}
}
