package packed

import (
	"encoding/binary"
	"fmt"

	"github.com/deploymenttheory/go-virtio/internal/interfaces"
	"github.com/deploymenttheory/go-virtio/internal/types"
)

// packedDescriptorReader implements the PackedDescriptorReader interface
type packedDescriptorReader struct {
	desc types.PvirtqDescT
}

// NewPackedDescriptorReader creates a PackedDescriptorReader over the raw
// bytes of one descriptor slot
func NewPackedDescriptorReader(data []byte) (interfaces.PackedDescriptorReader, error) {
	desc, err := DecodeDescriptor(data)
	if err != nil {
		return nil, err
	}
	return &packedDescriptorReader{desc: desc}, nil
}

// Address returns the buffer's guest-physical address
func (pr *packedDescriptorReader) Address() uint64 {
	return pr.desc.Addr
}

// Length returns the buffer length in bytes
func (pr *packedDescriptorReader) Length() uint32 {
	return pr.desc.Len
}

// BufferID returns the buffer identifier
func (pr *packedDescriptorReader) BufferID() uint16 {
	return pr.desc.ID
}

// Flags returns the raw slot flags including AVAIL and USED
func (pr *packedDescriptorReader) Flags() uint16 {
	return pr.desc.Flags
}

// IsAvailable checks whether the slot is available for the given driver
// wrap-counter parity
func (pr *packedDescriptorReader) IsAvailable(wrapCounter bool) bool {
	return IsAvailable(pr.desc.Flags, wrapCounter)
}

// IsUsed checks whether the slot has been used for the given device
// wrap-counter parity
func (pr *packedDescriptorReader) IsUsed(wrapCounter bool) bool {
	return IsUsed(pr.desc.Flags, wrapCounter)
}

// IsAvailable checks slot availability against the driver's wrap counter:
// a slot is available when its AVAIL bit matches the counter and its USED
// bit does not.
// Reference: section 2.7.1
func IsAvailable(flags uint16, wrapCounter bool) bool {
	avail := flags&types.VirtqDescFAvail != 0
	used := flags&types.VirtqDescFUsed != 0
	return avail == wrapCounter && used != wrapCounter
}

// IsUsed checks slot completion against the device's wrap counter: a slot
// is used when both its AVAIL and USED bits match the counter.
// Reference: section 2.7.1
func IsUsed(flags uint16, wrapCounter bool) bool {
	avail := flags&types.VirtqDescFAvail != 0
	used := flags&types.VirtqDescFUsed != 0
	return avail == wrapCounter && used == wrapCounter
}

// AvailFlags computes the flag bits that publish a slot to the device for
// the given driver wrap counter, preserving the non-ownership bits of base.
func AvailFlags(base uint16, wrapCounter bool) uint16 {
	flags := base &^ (types.VirtqDescFAvail | types.VirtqDescFUsed)
	if wrapCounter {
		flags |= types.VirtqDescFAvail
	} else {
		flags |= types.VirtqDescFUsed
	}
	return flags
}

// UsedFlags computes the flag bits that return a slot to the driver for
// the given device wrap counter, preserving the non-ownership bits of base.
func UsedFlags(base uint16, wrapCounter bool) uint16 {
	flags := base &^ (types.VirtqDescFAvail | types.VirtqDescFUsed)
	if wrapCounter {
		flags |= types.VirtqDescFAvail | types.VirtqDescFUsed
	}
	return flags
}

// DecodeDescriptor parses the 16-byte little-endian wire form of a packed
// ring descriptor. Note the field order differs from the split ring: the
// buffer ID precedes the flags.
// Reference: section 2.7.4
func DecodeDescriptor(data []byte) (types.PvirtqDescT, error) {
	if len(data) < types.PvirtqDescSize {
		return types.PvirtqDescT{}, fmt.Errorf("data too small for packed descriptor: %d bytes", len(data))
	}
	return types.PvirtqDescT{
		Addr:  binary.LittleEndian.Uint64(data[0:8]),
		Len:   binary.LittleEndian.Uint32(data[8:12]),
		ID:    binary.LittleEndian.Uint16(data[12:14]),
		Flags: binary.LittleEndian.Uint16(data[14:16]),
	}, nil
}

// EncodeDescriptor serializes a packed ring descriptor to its 16-byte
// little-endian wire form.
func EncodeDescriptor(desc types.PvirtqDescT) [types.PvirtqDescSize]byte {
	var out [types.PvirtqDescSize]byte
	binary.LittleEndian.PutUint64(out[0:8], desc.Addr)
	binary.LittleEndian.PutUint32(out[8:12], desc.Len)
	binary.LittleEndian.PutUint16(out[12:14], desc.ID)
	binary.LittleEndian.PutUint16(out[14:16], desc.Flags)
	return out
}
