// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

package pcapng

import (
	"encoding/binary"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("pcapng stream framing", func() {

	// Assembles a block of the given type with the given (32bit aligned)
	// payload; section header blocks get the byte-order magic payload.
	block := func(endian binary.ByteOrder, typ uint32, payload []byte) []byte {
		total := 4 + 4 + len(payload) + 4
		b := make([]byte, total)
		endian.PutUint32(b[0:4], typ)
		endian.PutUint32(b[4:8], uint32(total))
		copy(b[8:], payload)
		endian.PutUint32(b[total-4:], uint32(total))
		return b
	}

	shb := func(endian binary.ByteOrder) []byte {
		payload := make([]byte, 16)
		endian.PutUint32(payload[0:4], 0x1a2b3c4d)
		endian.PutUint16(payload[4:6], 1)
		copy(payload[8:16], []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff})
		return block(endian, BlockTypeSHB, payload)
	}

	It("cuts a stream into its blocks, wherever the chunks fall", func() {
		stream := shb(binary.BigEndian)
		stream = append(stream, block(binary.BigEndian, BlockTypeIDB,
			[]byte{0, 1, 0, 0, 0, 0, 0xff, 0xff})...)
		stream = append(stream, block(binary.BigEndian, BlockTypeEPB,
			[]byte{0xde, 0xad, 0xbe, 0xef})...)

		blocks := []Block{}
		f := NewFramer(func(blk Block) error {
			blocks = append(blocks, blk)
			return nil
		})
		for _, octet := range stream {
			n, err := f.Write([]byte{octet})
			Expect(err).ShouldNot(HaveOccurred())
			Expect(n).Should(Equal(1))
		}

		Expect(blocks).Should(HaveLen(3))
		Expect(blocks[0].Type).Should(Equal(BlockTypeSHB))
		Expect(blocks[0].Raw).Should(Equal(stream[:28]))
		Expect(blocks[1].Type).Should(Equal(BlockTypeIDB))
		Expect(blocks[2].Type).Should(Equal(BlockTypeEPB))
		Expect(blocks[2].Raw).Should(Equal(stream[len(stream)-16:]))
	})

	It("re-learns the endianness at every section header", func() {
		stream := shb(binary.BigEndian)
		stream = append(stream, block(binary.BigEndian, BlockTypeEPB,
			[]byte{1, 2, 3, 4})...)
		stream = append(stream, shb(binary.LittleEndian)...)
		stream = append(stream, block(binary.LittleEndian, BlockTypeEPB,
			[]byte{5, 6, 7, 8})...)

		types := []uint32{}
		f := NewFramer(func(blk Block) error {
			types = append(types, blk.Type)
			return nil
		})
		_, err := f.Write(stream)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(types).Should(Equal([]uint32{
			BlockTypeSHB, BlockTypeEPB, BlockTypeSHB, BlockTypeEPB,
		}))
	})

	It("rejects streams not starting with a section header block", func() {
		f := NewFramer(func(Block) error { return nil })
		_, err := f.Write([]byte("garbage in, no blocks out, four!"))
		Expect(err).Should(MatchError(ErrNotPcapng))
	})

	It("rejects implausible block lengths, and stays rejecting", func() {
		corrupt := shb(binary.BigEndian)
		binary.BigEndian.PutUint32(corrupt[4:8], 13)

		f := NewFramer(func(Block) error { return nil })
		_, err := f.Write(corrupt)
		Expect(err).Should(MatchError(ContainSubstring("implausible block length")))
		_, err = f.Write(shb(binary.BigEndian))
		Expect(err).Should(MatchError(ContainSubstring("implausible block length")))
	})

	It("propagates emit errors stickily", func() {
		boom := errors.New("kaboom")
		f := NewFramer(func(Block) error { return boom })
		_, err := f.Write(shb(binary.BigEndian))
		Expect(err).Should(MatchError(boom))
		_, err = f.Write([]byte{})
		Expect(err).Should(MatchError(boom))
	})

})
