// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

package pcapng

import (
	"bytes"
	"encoding/binary"

	"github.com/siemens/caplog/api"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("pcapng options", func() {

	It("encodes opts", func() {
		bbig := (&Option{Code: uint16(42), Value: []byte("Go")}).
			Bytes(binary.BigEndian)
		Expect(len(bbig)).Should(Equal(2 + 2 + 4))
		Expect(bbig).Should(Equal([]byte{0, 42, 0, 2, byte('G'), byte('o'), 0, 0}))

		blittle := (&Option{Code: uint16(42), Value: []byte("Go")}).
			Bytes(binary.LittleEndian)
		Expect(len(blittle)).Should(Equal(2 + 2 + 4))
		Expect(blittle).Should(Equal([]byte{42, 0, 2, 0, byte('G'), byte('o'), 0, 0}))
	})

	It("encodes end-of-opts", func() {
		b := (*Option)(nil).Bytes(binary.BigEndian)
		Expect(len(b)).Should(Equal(4))
		Expect(b).Should(Equal([]byte{0, 0, 0, 0}))
	})

	It("decodes opts", func() {
		bbig := (&Option{Code: OptComment, Value: []byte("Kuhbernetes")}).
			Bytes(binary.BigEndian)
		opt, skip := DecodeOption(bbig, binary.BigEndian)
		Expect(opt.Code).Should(Equal(OptComment))
		Expect(opt.String()).Should(Equal("Kuhbernetes"))
		Expect(skip).Should(Equal(uint(16)))
	})

	It("decodes end-of-opts", func() {
		opt, skip := DecodeOption([]byte{0, 0, 0, 0}, binary.BigEndian)
		Expect(opt).Should(BeNil())
		Expect(skip).Should(Equal(uint(4)))
	})

})

var _ = Describe("pcapng stream editing", func() {

	info := &api.SessionInfo{
		Session:   "2025-11-03_07.05.09",
		System:    "plant-a",
		Interface: "eth0",
	}

	// Assembles the section header block an editor is expected to emit
	// for the given comment, in the given endianness.
	editedSHB := func(endian binary.ByteOrder, comment string) []byte {
		opts := (&Option{Code: OptComment, Value: []byte(comment)}).Bytes(endian)
		opts = append(opts, (*Option)(nil).Bytes(endian)...)
		total := 24 + len(opts) + 4
		shb := make([]byte, total)
		endian.PutUint32(shb[0:4], 0x0a0d0d0a)
		endian.PutUint32(shb[4:8], uint32(total))
		endian.PutUint32(shb[8:12], 0x1a2b3c4d)
		endian.PutUint16(shb[12:14], 1)
		endian.PutUint16(shb[14:16], 0)
		endian.PutUint64(shb[16:24], ^uint64(0))
		copy(shb[24:], opts)
		endian.PutUint32(shb[total-4:], uint32(total))
		return shb
	}

	// A minimal section header block without any options.
	bareSHB := func(endian binary.ByteOrder) []byte {
		shb := make([]byte, 28)
		endian.PutUint32(shb[0:4], 0x0a0d0d0a)
		endian.PutUint32(shb[4:8], 28)
		endian.PutUint32(shb[8:12], 0x1a2b3c4d)
		endian.PutUint16(shb[12:14], 1)
		endian.PutUint16(shb[14:16], 0)
		endian.PutUint64(shb[16:24], ^uint64(0))
		endian.PutUint32(shb[24:28], 28)
		return shb
	}

	It("stamps the session metadata into a comment-less section header", func() {
		var b bytes.Buffer
		se := NewStreamEditor(&b, info)
		overspill := []byte{1, 2, 3, 4, 5}
		n, err := se.Write(append(bareSHB(binary.BigEndian), overspill...))
		Expect(err).ShouldNot(HaveOccurred())
		Expect(n).Should(Equal(28 + len(overspill)))

		expected := editedSHB(
			binary.BigEndian, NewSessionMeta(info).StampComment(""))
		Expect(b.Bytes()).Should(Equal(append(expected, overspill...)))
	})

	It("keeps an existing comment, appending the session metadata", func() {
		var b bytes.Buffer
		se := NewStreamEditor(&b, info)
		shb := editedSHB(binary.BigEndian, "ABC")
		_, err := se.Write(shb)
		Expect(err).ShouldNot(HaveOccurred())

		expected := editedSHB(
			binary.BigEndian, NewSessionMeta(info).StampComment("ABC"))
		Expect(b.Bytes()).Should(Equal(expected))
		Expect(bytes.Contains(b.Bytes(), []byte("ABC\n"))).Should(BeTrue())
	})

	It("replaces previously stamped session metadata", func() {
		var b bytes.Buffer
		stale := SessionMeta{
			Session: "1999-12-31_23.59.59", System: "flimsy", Interface: "eth9",
		}.StampComment("keep me")
		se := NewStreamEditor(&b, info)
		_, err := se.Write(editedSHB(binary.LittleEndian, stale))
		Expect(err).ShouldNot(HaveOccurred())

		expected := editedSHB(
			binary.LittleEndian, NewSessionMeta(info).StampComment(stale))
		Expect(b.Bytes()).Should(Equal(expected))
		Expect(bytes.Contains(b.Bytes(), []byte("flimsy"))).Should(BeFalse())
		Expect(bytes.Contains(b.Bytes(), []byte("keep me\n"))).Should(BeTrue())
		Expect(bytes.Count(b.Bytes(), []byte(MetaMarker))).Should(Equal(1))
	})

	It("gathers a section header arriving in dribs and drabs", func() {
		var b bytes.Buffer
		se := NewStreamEditor(&b, info)
		stream := append(bareSHB(binary.LittleEndian), 6, 7, 8)
		for _, octet := range stream {
			n, err := se.Write([]byte{octet})
			Expect(err).ShouldNot(HaveOccurred())
			Expect(n).Should(Equal(1))
		}

		expected := editedSHB(
			binary.LittleEndian, NewSessionMeta(info).StampComment(""))
		Expect(b.Bytes()).Should(Equal(append(expected, 6, 7, 8)))
	})

	It("passes non-pcapng streams through untouched", func() {
		var b bytes.Buffer
		se := NewStreamEditor(&b, info)
		garbage := []byte("this is not a packet capture stream")
		_, err := se.Write(garbage)
		Expect(err).ShouldNot(HaveOccurred())
		_, err = se.Write([]byte(" indeed"))
		Expect(err).ShouldNot(HaveOccurred())
		Expect(b.String()).Should(Equal("this is not a packet capture stream indeed"))
	})

})
