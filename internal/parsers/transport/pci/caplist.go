package pci

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/deploymenttheory/go-virtio/internal/interfaces"
	"github.com/deploymenttheory/go-virtio/internal/types"
)

var (
	// ErrNoCapList reports a configuration space whose status register does
	// not advertise a capabilities list.
	ErrNoCapList = errors.New("configuration space has no capabilities list")

	// ErrCapListLoop reports a capability chain with more links than the
	// configuration space can hold distinct capabilities.
	ErrCapListLoop = errors.New("capability list loops")
)

// capListLimit bounds the walk: capabilities are at least 4 bytes apart in
// a 256-byte space, so more links than this means a cycle.
const capListLimit = types.PciConfigSpaceSize / 4

// WalkVendorCapabilities walks the capability list of a 256-byte PCI
// configuration space image and returns a CapabilityReader for each
// vendor-specific capability, in list order. Capabilities of other IDs are
// skipped, not errors; virtio devices share their configuration space with
// generic PCI capabilities like MSI-X.
// Reference: section 4.1.4
func WalkVendorCapabilities(cfgSpace []byte) ([]interfaces.CapabilityReader, error) {
	if len(cfgSpace) < types.PciConfigSpaceSize {
		return nil, fmt.Errorf("data too small for PCI configuration space: %d bytes", len(cfgSpace))
	}

	status := binary.LittleEndian.Uint16(cfgSpace[types.PciStatusOffset:])
	if status&types.PciStatusCapList == 0 {
		return nil, ErrNoCapList
	}

	var caps []interfaces.CapabilityReader

	ptr := cfgSpace[types.PciCapPointerOffset]
	for links := 0; ptr != 0; links++ {
		if links >= capListLimit {
			return nil, ErrCapListLoop
		}
		// The bottom two bits of capability pointers are reserved.
		ptr &^= 0x3
		if int(ptr)+2 > len(cfgSpace) {
			return nil, fmt.Errorf("capability pointer 0x%02x out of range", ptr)
		}

		capID := cfgSpace[ptr]
		next := cfgSpace[ptr+1]

		if capID == types.PciCapVendor {
			reader, err := NewCapabilityReader(cfgSpace[ptr:])
			if err != nil {
				return nil, fmt.Errorf("capability at 0x%02x: %w", ptr, err)
			}
			caps = append(caps, reader)
		}

		ptr = next
	}

	return caps, nil
}

// FindCapability returns the first capability of the given virtio
// structure type in the list, or nil if the device does not expose one.
func FindCapability(caps []interfaces.CapabilityReader, cfgType types.PciCapabilityType) interfaces.CapabilityReader {
	for _, c := range caps {
		if c.CapabilityType() == cfgType {
			return c
		}
	}
	return nil
}

// ModernDeviceID maps a virtio device type to its modern PCI device ID.
// Reference: section 4.1.2.1
func ModernDeviceID(dt types.DeviceType) uint16 {
	return types.PciDeviceIDBase + uint16(dt)
}

// IsTransitionalDeviceID checks whether a PCI device ID belongs to the
// transitional range carried over from the legacy interface.
// Reference: section 4.1.2.3
func IsTransitionalDeviceID(id uint16) bool {
	switch id {
	case types.PciTransDeviceIDNet, types.PciTransDeviceIDBlock,
		types.PciTransDeviceIDBalloon, types.PciTransDeviceIDConsole,
		types.PciTransDeviceIDScsi, types.PciTransDeviceIDRng,
		types.PciTransDeviceIDNineP:
		return true
	}
	return false
}
