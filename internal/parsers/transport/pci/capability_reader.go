package pci

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/deploymenttheory/go-virtio/internal/interfaces"
	"github.com/deploymenttheory/go-virtio/internal/types"
)

var (
	// ErrCapTooShort reports a capability record whose declared length is
	// below the structure size its type requires.
	ErrCapTooShort = errors.New("capability record shorter than its structure")

	// ErrNotNotifyCap reports a NotifyOffMultiplier access on a capability
	// that is not a notification capability.
	ErrNotNotifyCap = errors.New("not a notification capability")
)

// capabilityReader implements the CapabilityReader interface
type capabilityReader struct {
	cap                 types.VirtioPciCapT
	notifyOffMultiplier uint32
	hasNotify           bool
}

// NewCapabilityReader creates a CapabilityReader over the raw bytes of one
// virtio PCI capability record. Notification capabilities carry four extra
// bytes; the reader decodes them when the declared type asks for them.
func NewCapabilityReader(data []byte) (interfaces.CapabilityReader, error) {
	cap, err := DecodeCapability(data)
	if err != nil {
		return nil, err
	}

	reader := &capabilityReader{cap: cap}

	if types.PciCapabilityType(cap.CfgType) == types.PciCapNotifyCfg {
		if cap.CapLen < types.VirtioPciNotifyCapSize {
			return nil, fmt.Errorf("%w: notification capability declares %d bytes, needs %d", ErrCapTooShort, cap.CapLen, types.VirtioPciNotifyCapSize)
		}
		if len(data) < types.VirtioPciNotifyCapSize {
			return nil, fmt.Errorf("data too small for notification capability: %d bytes", len(data))
		}
		reader.notifyOffMultiplier = binary.LittleEndian.Uint32(data[16:20])
		reader.hasNotify = true
	}

	return reader, nil
}

// CapabilityType returns the virtio structure kind the capability locates
func (cr *capabilityReader) CapabilityType() types.PciCapabilityType {
	return types.PciCapabilityType(cr.cap.CfgType)
}

// Bar returns the index of the BAR holding the structure
func (cr *capabilityReader) Bar() uint8 {
	return cr.cap.Bar
}

// StructureID distinguishes multiple capabilities of the same type
func (cr *capabilityReader) StructureID() uint8 {
	return cr.cap.ID
}

// Offset returns the byte offset of the structure within the BAR
func (cr *capabilityReader) Offset() uint32 {
	return cr.cap.Offset
}

// Length returns the byte length of the structure
func (cr *capabilityReader) Length() uint32 {
	return cr.cap.Length
}

// NotifyOffMultiplier returns the notification offset multiplier
func (cr *capabilityReader) NotifyOffMultiplier() (uint32, error) {
	if !cr.hasNotify {
		return 0, fmt.Errorf("%w: type is %s", ErrNotNotifyCap, cr.CapabilityType())
	}
	return cr.notifyOffMultiplier, nil
}

// DecodeCapability parses the 16-byte generic portion of a virtio PCI
// capability record. A declared length below the generic size is a
// malformed record and rejected here; unknown cfg_type values are not.
// Reference: section 4.1.4
func DecodeCapability(data []byte) (types.VirtioPciCapT, error) {
	if len(data) < types.VirtioPciCapSize {
		return types.VirtioPciCapT{}, fmt.Errorf("data too small for virtio PCI capability: %d bytes", len(data))
	}

	cap := types.VirtioPciCapT{
		CapVndr: data[0],
		CapNext: data[1],
		CapLen:  data[2],
		CfgType: data[3],
		Bar:     data[4],
		ID:      data[5],
		Padding: [2]uint8{data[6], data[7]},
		Offset:  binary.LittleEndian.Uint32(data[8:12]),
		Length:  binary.LittleEndian.Uint32(data[12:16]),
	}

	if cap.CapLen < types.VirtioPciCapSize {
		return types.VirtioPciCapT{}, fmt.Errorf("%w: declares %d bytes, needs %d", ErrCapTooShort, cap.CapLen, types.VirtioPciCapSize)
	}

	return cap, nil
}

// EncodeCapability serializes the generic portion of a capability record
// to its 16-byte little-endian wire form.
func EncodeCapability(cap types.VirtioPciCapT) [types.VirtioPciCapSize]byte {
	var out [types.VirtioPciCapSize]byte
	out[0] = cap.CapVndr
	out[1] = cap.CapNext
	out[2] = cap.CapLen
	out[3] = cap.CfgType
	out[4] = cap.Bar
	out[5] = cap.ID
	out[6] = cap.Padding[0]
	out[7] = cap.Padding[1]
	binary.LittleEndian.PutUint32(out[8:12], cap.Offset)
	binary.LittleEndian.PutUint32(out[12:16], cap.Length)
	return out
}
