// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

package pcapng

import "encoding/binary"

// Option is a single pcapng block option: an option code identifying
// what kind of option it is, together with its raw octet string value.
type Option struct {
	Code  uint16
	Value []byte
}

const (
	// OptEndofOpt terminates a block's option list.
	OptEndofOpt = uint16(0)
	// OptComment is a comment in form of an UTF-8 string; this is where
	// the session metadata gets stamped into.
	OptComment = uint16(1)
	// OptSHBHardware describes the capturing hardware, as UTF-8.
	OptSHBHardware = uint16(2)
	// OptSHBOS names the capturing operating system, as UTF-8.
	OptSHBOS = uint16(3)
	// OptSHBUserAppl names the capturing application, as UTF-8.
	OptSHBUserAppl = uint16(4)
)

// DecodeOption decodes the option at the start of the buffer, using
// the section's endianness, and additionally returns how many octets
// to skip to arrive at the next option. Option values are padded to
// 32bit boundaries, so the skip can exceed the value length. When the
// end-of-options marker is reached, the returned option is nil.
func DecodeOption(buff []byte, endian binary.ByteOrder) (opt *Option, skip uint) {
	code := endian.Uint16(buff)
	length := endian.Uint16(buff[2:4])
	skip = uint(2+2) + uint(length)
	if skip&0x3 != 0 {
		skip += 4 - (skip & 0x3)
	}
	if code == OptEndofOpt && length == 0 {
		return nil, skip
	}
	return &Option{Code: code, Value: buff[4 : 4+length]}, skip
}

// String returns an option's value interpreted as an UTF-8 string.
func (o *Option) String() string {
	return string(o.Value)
}

// Bytes encodes the option using the given endianness, including the
// padding to the next 32bit boundary. Encoding a nil option yields the
// end-of-options marker.
func (o *Option) Bytes(endian binary.ByteOrder) []byte {
	if o == nil {
		return []byte{0, 0, 0, 0}
	}
	length := uint16(len(o.Value))
	b := make([]byte, uint16(2+2)+length)
	endian.PutUint16(b[0:2], o.Code)
	endian.PutUint16(b[2:4], length)
	copy(b[4:], o.Value)
	if length&0x3 != 0 {
		pad := [3]byte{}
		b = append(b, pad[:4-(length&0x3)]...)
	}
	return b
}
