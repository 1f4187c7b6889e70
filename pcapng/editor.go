// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

package pcapng

import (
	"bytes"
	"encoding/binary"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/siemens/caplog/api"
)

// StreamEditor edits the first section header block (SHB) of a pcapng
// packet stream on its way through: the session metadata gets stamped
// into the section header's comment option, everything after the first
// SHB passes through unmodified. A StreamEditor is an io.Writer
// plugged in front of the real stream sink.
type StreamEditor struct {
	endian      binary.ByteOrder
	sink        io.Writer
	passThrough bool
	shb         []byte
	shbLen      uint32
	meta        SessionMeta
}

// NewStreamEditor returns a pcapng stream editor stamping the given
// session metadata, writing the edited stream to sink.
func NewStreamEditor(sink io.Writer, info *api.SessionInfo) *StreamEditor {
	if info == nil {
		info = &api.SessionInfo{}
	}
	return &StreamEditor{
		sink: sink,
		meta: NewSessionMeta(info),
	}
}

// Write accepts the next chunk of pcapng stream data, editing the
// section header when it has been fully gathered, and passing
// everything else down to the sink. Write always reports the full
// chunk as consumed, even while octets are still being gathered for
// the section header edit.
func (ed *StreamEditor) Write(b []byte) (n int, err error) {
	n = len(b)
	b = ed.process(b)
	if _, err = ed.sink.Write(b); err != nil {
		log.Debugf("pcapng stream broken: %s", err.Error())
		return 0, err
	}
	return n, nil
}

// process gathers stream data until the first section header block is
// complete, then releases the edited section header; afterwards all
// data passes through untouched.
func (ed *StreamEditor) process(b []byte) []byte {
	if ed.passThrough {
		return b
	}
	ed.shb = append(ed.shb, b...)
	// The block type and total length plus the byte-order magic make
	// up the first 12 octets; only then we know how much more to
	// gather.
	if ed.shbLen == 0 && len(ed.shb) >= 12 {
		if !ed.sniffSection() {
			// Not a sane pcapng stream; hand everything through as-is
			// from now on.
			ed.passThrough = true
			gathered := ed.shb
			ed.shb = nil
			return gathered
		}
	}
	if ed.shbLen != 0 && uint32(len(ed.shb)) >= ed.shbLen {
		return ed.editSHB()
	}
	return []byte{}
}

// sniffSection determines the endianness and total length of the
// section header block from its first 12 octets, reporting whether the
// stream starts with a section header block at all.
func (ed *StreamEditor) sniffSection() bool {
	if !bytes.Equal(ed.shb[0:4], []byte{0x0a, 0x0d, 0x0d, 0x0a}) {
		log.Error("invalid packet capture stream; must begin with section header block")
		return false
	}
	if bytes.Equal(ed.shb[8:12], []byte{0x1a, 0x2b, 0x3c, 0x4d}) {
		ed.endian = binary.BigEndian
	} else {
		ed.endian = binary.LittleEndian
	}
	ed.shbLen = ed.endian.Uint32(ed.shb[4:8])
	return true
}

// editSHB rebuilds the fully gathered section header block with the
// session metadata stamped into its comment option, and releases it
// together with any already-gathered overspill from the blocks
// following it.
func (ed *StreamEditor) editSHB() []byte {
	major := ed.endian.Uint16(ed.shb[12:14])
	minor := ed.endian.Uint16(ed.shb[14:16])
	log.Debugf("section header block: version %d.%d", major, minor)
	// Walk the section header options; the first comment gets set
	// aside for stamping, everything else is kept in order.
	offset := uint32(24)
	options := []*Option{}
	var firstComment *Option
	for offset < ed.shbLen-4 {
		opt, skip := DecodeOption(ed.shb[offset:], ed.endian)
		offset += uint32(skip)
		if opt == nil {
			break
		}
		if opt.Code == OptComment && firstComment == nil {
			firstComment = opt
			continue
		}
		options = append(options, opt)
	}
	comment := ""
	if firstComment != nil {
		comment = firstComment.String()
	}
	options = append(
		[]*Option{{Code: OptComment, Value: []byte(ed.meta.StampComment(comment))}},
		options...)
	// Reassemble: the section length is rewritten as unknown, as the
	// edit just changed it anyway.
	shbOpts := []byte{}
	for _, opt := range options {
		shbOpts = append(shbOpts, opt.Bytes(ed.endian)...)
	}
	shbOpts = append(shbOpts, (*Option)(nil).Bytes(ed.endian)...)
	shbLen := 4 + 4 + 4 + 2 + 2 + 8 + len(shbOpts) + 4
	shb := make([]byte, shbLen)
	ed.endian.PutUint32(shb[0:4], 0x0a0d0d0a)
	ed.endian.PutUint32(shb[4:8], uint32(shbLen))
	ed.endian.PutUint32(shb[8:12], 0x1a2b3c4d)
	ed.endian.PutUint16(shb[12:14], major)
	ed.endian.PutUint16(shb[14:16], minor)
	ed.endian.PutUint64(shb[16:24], ^uint64(0))
	copy(shb[24:], shbOpts)
	ed.endian.PutUint32(shb[shbLen-4:], uint32(shbLen))
	shb = append(shb, ed.shb[ed.shbLen:]...)
	ed.passThrough = true
	ed.shb = nil
	return shb
}
