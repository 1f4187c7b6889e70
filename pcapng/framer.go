// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

package pcapng

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// Well-known pcapng block types, to the extent the capture file
// rotation needs to tell blocks apart.
const (
	// BlockTypeSHB starts a new section; its type octets read the same
	// in both endiannesses.
	BlockTypeSHB = uint32(0x0a0d0d0a)
	// BlockTypeIDB describes a capture interface of the section.
	BlockTypeIDB = uint32(1)
	// BlockTypeEPB is an enhanced packet block.
	BlockTypeEPB = uint32(6)
)

// Blocks grow large only through packet data, which is bounded by the
// capture snap length; a block length beyond this limit signals a
// corrupted stream rather than a huge packet.
const maxBlockLen = 16 * 1024 * 1024

// ErrNotPcapng is returned for streams that do not start with a pcapng
// section header block.
var ErrNotPcapng = errors.New("not a pcapng stream: no section header block")

// Block is one complete pcapng block: its decoded block type, plus the
// raw octets of the whole block, untouched and including the type and
// length framing.
type Block struct {
	Type uint32
	Raw  []byte
}

// Framer cuts a continuous pcapng octet stream into whole blocks,
// handing each completed block to its emit function. This is what
// allows cutting a packet stream into self-contained capture files:
// file boundaries may only ever fall between blocks. Framer implements
// io.Writer, so it plugs into the stream pipeline like any other
// stage.
type Framer struct {
	emit   func(Block) error
	endian binary.ByteOrder
	buf    []byte
	err    error
}

// NewFramer returns a pcapng stream framer handing every completed
// block to the given emit function.
func NewFramer(emit func(Block) error) *Framer {
	return &Framer{emit: emit}
}

// Write accepts the next chunk of pcapng stream data, emitting all
// blocks completed by it. A framing error is sticky: once the stream
// is deemed corrupt, all further writes fail.
func (f *Framer) Write(b []byte) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.buf = append(f.buf, b...)
	for {
		blk, ok := f.next()
		if f.err != nil {
			return 0, f.err
		}
		if !ok {
			return len(b), nil
		}
		if err := f.emit(blk); err != nil {
			f.err = err
			return 0, err
		}
	}
}

// next pops the next complete block off the gathered stream data, if
// already possible.
func (f *Framer) next() (Block, bool) {
	if len(f.buf) < 12 {
		return Block{}, false
	}
	// Section header blocks redefine the endianness for all following
	// blocks; conveniently their type octets are a palindrome, so no
	// endianness is needed to spot them.
	isSHB := bytes.Equal(f.buf[0:4], []byte{0x0a, 0x0d, 0x0d, 0x0a})
	if isSHB {
		if bytes.Equal(f.buf[8:12], []byte{0x1a, 0x2b, 0x3c, 0x4d}) {
			f.endian = binary.BigEndian
		} else {
			f.endian = binary.LittleEndian
		}
	} else if f.endian == nil {
		f.err = ErrNotPcapng
		return Block{}, false
	}
	length := f.endian.Uint32(f.buf[4:8])
	if length < 12 || length&0x3 != 0 || length > maxBlockLen {
		f.err = fmt.Errorf("corrupt pcapng stream: implausible block length %d", length)
		return Block{}, false
	}
	if uint32(len(f.buf)) < length {
		return Block{}, false
	}
	raw := make([]byte, length)
	copy(raw, f.buf[:length])
	f.buf = f.buf[length:]
	blockType := f.endian.Uint32(raw[0:4])
	if isSHB {
		blockType = BlockTypeSHB
	}
	return Block{Type: blockType, Raw: raw}, true
}
