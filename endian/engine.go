// Package endian provides byte order utilities for the block index table and
// snapshot images.
//
// The in-memory block layout uses the host byte order, the same way a C
// struct laid over the buffer would. GetNativeEngine returns that order as an
// EndianEngine; GetLittleEndianEngine and GetBigEndianEngine pin a specific
// order when a block must be shared between hosts.
//
//	engine := endian.GetNativeEngine()
//	engine.PutUint16(buf[0:2], offset)
//
// All functions and methods in this package are safe for concurrent use.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface.
//
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

var nativeEngine = detectNative()

func detectNative() EndianEngine {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))

	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// CheckEndianness returns the host's byte order.
func CheckEndianness() binary.ByteOrder {
	return nativeEngine
}

func IsNativeLittleEndian() bool {
	return nativeEngine == binary.LittleEndian
}

func IsNativeBigEndian() bool {
	return nativeEngine == binary.BigEndian
}

// IsBigEndian reports whether engine encodes most significant byte first.
func IsBigEndian(engine EndianEngine) bool {
	return engine == binary.BigEndian
}

// CompareNativeEndian reports whether engine matches the host byte order.
func CompareNativeEndian(engine EndianEngine) bool {
	return engine == nativeEngine
}

// GetNativeEngine returns the engine for the host byte order.
func GetNativeEngine() EndianEngine {
	return nativeEngine
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
