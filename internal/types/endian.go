package types

import "encoding/binary"

// Little-endian scalar wrappers (section 1.4)
// All multi-byte fields defined by the VIRTIO specification are little-endian
// on the wire regardless of host byte order. These wrappers store the
// spec-mandated byte layout directly, so a struct built from them has the
// same in-memory representation on any host. Conversion to and from
// host-native integers is always explicit.

// Le16 is a 16-bit little-endian scalar.
// Reference: section 1.4
type Le16 [2]byte

// Le32 is a 32-bit little-endian scalar.
// Reference: section 1.4
type Le32 [4]byte

// Le64 is a 64-bit little-endian scalar.
// Reference: section 1.4
type Le64 [8]byte

// NewLe16 stores a host-native value in little-endian byte order.
func NewLe16(v uint16) Le16 {
	var le Le16
	binary.LittleEndian.PutUint16(le[:], v)
	return le
}

// NewLe32 stores a host-native value in little-endian byte order.
func NewLe32(v uint32) Le32 {
	var le Le32
	binary.LittleEndian.PutUint32(le[:], v)
	return le
}

// NewLe64 stores a host-native value in little-endian byte order.
func NewLe64(v uint64) Le64 {
	var le Le64
	binary.LittleEndian.PutUint64(le[:], v)
	return le
}

// Uint16 returns the host-native value.
func (le Le16) Uint16() uint16 {
	return binary.LittleEndian.Uint16(le[:])
}

// Uint32 returns the host-native value.
func (le Le32) Uint32() uint32 {
	return binary.LittleEndian.Uint32(le[:])
}

// Uint64 returns the host-native value.
func (le Le64) Uint64() uint64 {
	return binary.LittleEndian.Uint64(le[:])
}

// Set stores a host-native value in little-endian byte order.
func (le *Le16) Set(v uint16) {
	binary.LittleEndian.PutUint16(le[:], v)
}

// Set stores a host-native value in little-endian byte order.
func (le *Le32) Set(v uint32) {
	binary.LittleEndian.PutUint32(le[:], v)
}

// Set stores a host-native value in little-endian byte order.
func (le *Le64) Set(v uint64) {
	binary.LittleEndian.PutUint64(le[:], v)
}
