package virtqueue

import (
	"encoding/binary"
	"fmt"

	"github.com/deploymenttheory/go-virtio/internal/interfaces"
	"github.com/deploymenttheory/go-virtio/internal/types"
)

// descriptorReader implements the DescriptorReader interface
type descriptorReader struct {
	desc types.VirtqDescT
}

// NewDescriptorReader creates a DescriptorReader over the raw bytes of one
// descriptor table entry
func NewDescriptorReader(data []byte) (interfaces.DescriptorReader, error) {
	desc, err := DecodeDescriptor(data)
	if err != nil {
		return nil, err
	}
	return &descriptorReader{desc: desc}, nil
}

// Address returns the buffer's guest-physical address
func (dr *descriptorReader) Address() uint64 {
	return dr.desc.Addr
}

// Length returns the buffer length in bytes
func (dr *descriptorReader) Length() uint32 {
	return dr.desc.Len
}

// Flags returns the raw descriptor flags
func (dr *descriptorReader) Flags() uint16 {
	return dr.desc.Flags
}

// Next returns the index of the next descriptor in the chain
func (dr *descriptorReader) Next() uint16 {
	return dr.desc.Next
}

// HasNext checks whether the descriptor chains to another descriptor
func (dr *descriptorReader) HasNext() bool {
	return dr.desc.HasNext()
}

// IsWriteOnly checks whether the buffer is device write-only
func (dr *descriptorReader) IsWriteOnly() bool {
	return dr.desc.IsWriteOnly()
}

// IsIndirect checks whether the buffer holds an indirect descriptor table
func (dr *descriptorReader) IsIndirect() bool {
	return dr.desc.IsIndirect()
}

// DecodeDescriptor parses the 16-byte little-endian wire form of a split
// ring descriptor. Unknown flag bits are preserved, not rejected.
// Reference: section 2.6.5
func DecodeDescriptor(data []byte) (types.VirtqDescT, error) {
	if len(data) < types.VirtqDescSize {
		return types.VirtqDescT{}, fmt.Errorf("data too small for virtqueue descriptor: %d bytes", len(data))
	}
	return types.VirtqDescT{
		Addr:  binary.LittleEndian.Uint64(data[0:8]),
		Len:   binary.LittleEndian.Uint32(data[8:12]),
		Flags: binary.LittleEndian.Uint16(data[12:14]),
		Next:  binary.LittleEndian.Uint16(data[14:16]),
	}, nil
}

// EncodeDescriptor serializes a split ring descriptor to its 16-byte
// little-endian wire form.
func EncodeDescriptor(desc types.VirtqDescT) [types.VirtqDescSize]byte {
	var out [types.VirtqDescSize]byte
	binary.LittleEndian.PutUint64(out[0:8], desc.Addr)
	binary.LittleEndian.PutUint32(out[8:12], desc.Len)
	binary.LittleEndian.PutUint16(out[12:14], desc.Flags)
	binary.LittleEndian.PutUint16(out[14:16], desc.Next)
	return out
}
