package types

import "fmt"

// Virtio over PCI (section 4.1)
// Virtio structures are located through vendor-specific PCI capabilities in
// the device's configuration space. Each capability names a structure kind,
// a BAR, and an offset and length within that BAR. The shapes are defined
// here; capability discovery and register access belong to the transport.

const (
	// PciVendorID is the virtio PCI vendor ID.
	// Reference: section 4.1.2
	PciVendorID = 0x1af4

	// PciDeviceIDBase is the base PCI device ID for modern virtio devices;
	// the device ID is the base plus the virtio device type.
	// Reference: section 4.1.2.1
	PciDeviceIDBase = 0x1040

	// PciCapVendor is the PCI capability ID of a vendor-specific
	// capability, used for all virtio structure capabilities.
	// Reference: section 4.1.4
	PciCapVendor = 0x09

	// VirtioPciCapSize is the byte size of a virtio PCI capability record.
	// Reference: section 4.1.4
	VirtioPciCapSize = 16

	// VirtioPciNotifyCapSize is the byte size of a notification capability
	// record, which carries an extra notify_off_multiplier field.
	// Reference: section 4.1.4.4
	VirtioPciNotifyCapSize = 20

	// VirtioPciCommonCfgSize is the byte size of the common configuration
	// structure.
	// Reference: section 4.1.4.3
	VirtioPciCommonCfgSize = 0x38
)

// Transitional PCI device IDs (section 4.1.2.3)

const (
	PciTransDeviceIDNet     = 0x1000
	PciTransDeviceIDBlock   = 0x1001
	PciTransDeviceIDBalloon = 0x1002
	PciTransDeviceIDConsole = 0x1003
	PciTransDeviceIDScsi    = 0x1004
	PciTransDeviceIDRng     = 0x1005
	PciTransDeviceIDNineP   = 0x1009
)

// PciCapabilityType identifies the virtio structure a PCI capability
// locates. Unrecognized values are reserved, not errors, and round-trip
// unchanged.
// Reference: section 4.1.4
type PciCapabilityType uint8

const (
	// PciCapCommonCfg locates the common configuration structure.
	PciCapCommonCfg PciCapabilityType = 1

	// PciCapNotifyCfg locates the notification structure.
	PciCapNotifyCfg PciCapabilityType = 2

	// PciCapIsrCfg locates the ISR status structure.
	PciCapIsrCfg PciCapabilityType = 3

	// PciCapDeviceCfg locates the device-specific configuration structure.
	PciCapDeviceCfg PciCapabilityType = 4

	// PciCapPciCfg locates the PCI configuration access structure.
	PciCapPciCfg PciCapabilityType = 5

	// PciCapSharedMemoryCfg locates a shared memory region.
	PciCapSharedMemoryCfg PciCapabilityType = 8

	// PciCapVendorCfg locates a vendor-specific data structure.
	PciCapVendorCfg PciCapabilityType = 9
)

// IsKnown checks whether the value is one the specification defines.
func (t PciCapabilityType) IsKnown() bool {
	switch t {
	case PciCapCommonCfg, PciCapNotifyCfg, PciCapIsrCfg, PciCapDeviceCfg,
		PciCapPciCfg, PciCapSharedMemoryCfg, PciCapVendorCfg:
		return true
	}
	return false
}

// String returns the specification name of the capability type, or a
// numeric fallback for reserved values.
func (t PciCapabilityType) String() string {
	switch t {
	case PciCapCommonCfg:
		return "common configuration"
	case PciCapNotifyCfg:
		return "notifications"
	case PciCapIsrCfg:
		return "ISR status"
	case PciCapDeviceCfg:
		return "device-specific configuration"
	case PciCapPciCfg:
		return "PCI configuration access"
	case PciCapSharedMemoryCfg:
		return "shared memory region"
	case PciCapVendorCfg:
		return "vendor-specific data"
	default:
		return fmt.Sprintf("unknown capability type %d", uint8(t))
	}
}

// VirtioPciCapT is the virtio structure capability record placed in PCI
// configuration space.
// Reference: section 4.1.4
type VirtioPciCapT struct {
	// Generic PCI field: capability ID, PciCapVendor for virtio.
	CapVndr uint8
	// Generic PCI field: configuration-space offset of the next capability.
	CapNext uint8
	// Capability length including the generic fields.
	CapLen uint8
	// The structure this capability locates, a PciCapabilityType value.
	CfgType uint8
	// Index of the BAR holding the structure.
	Bar uint8
	// Identifies multiple capabilities of the same type.
	ID uint8
	// Pads the structure to a multiple of 4 bytes.
	Padding [2]uint8
	// Byte offset of the structure within the BAR.
	Offset uint32
	// Byte length of the structure.
	Length uint32
}

// VirtioPciNotifyCapT is the notification capability record.
// Reference: section 4.1.4.4
type VirtioPciNotifyCapT struct {
	Cap VirtioPciCapT
	// Multiplier applied to queue_notify_off to locate a queue's notify
	// address within the notification structure.
	NotifyOffMultiplier uint32
}

// Common configuration structure field offsets (section 4.1.4.3)

const (
	PciCommonCfgDeviceFeatureSelect = 0x00 // le32, read-write
	PciCommonCfgDeviceFeature       = 0x04 // le32, read-only
	PciCommonCfgDriverFeatureSelect = 0x08 // le32, read-write
	PciCommonCfgDriverFeature       = 0x0c // le32, read-write
	PciCommonCfgMsixConfig          = 0x10 // le16, read-write
	PciCommonCfgNumQueues           = 0x12 // le16, read-only
	PciCommonCfgDeviceStatus        = 0x14 // u8, read-write
	PciCommonCfgConfigGeneration    = 0x15 // u8, read-only
	PciCommonCfgQueueSelect         = 0x16 // le16, read-write
	PciCommonCfgQueueSize           = 0x18 // le16, read-write
	PciCommonCfgQueueMsixVector     = 0x1a // le16, read-write
	PciCommonCfgQueueEnable         = 0x1c // le16, read-write
	PciCommonCfgQueueNotifyOff      = 0x1e // le16, read-only
	PciCommonCfgQueueDescLo         = 0x20 // le32, read-write
	PciCommonCfgQueueDescHi         = 0x24 // le32, read-write
	PciCommonCfgQueueAvailLo        = 0x28 // le32, read-write
	PciCommonCfgQueueAvailHi        = 0x2c // le32, read-write
	PciCommonCfgQueueUsedLo         = 0x30 // le32, read-write
	PciCommonCfgQueueUsedHi         = 0x34 // le32, read-write
)

// PCI configuration space constants used when walking a capability list.

const (
	// PciConfigSpaceSize is the size of a type 0 configuration space
	// image.
	PciConfigSpaceSize = 256

	// PciStatusOffset is the offset of the 16-bit status register.
	PciStatusOffset = 0x06

	// PciStatusCapList is the status bit indicating the capabilities list
	// is valid.
	PciStatusCapList = 0x10

	// PciCapPointerOffset is the offset of the first capability pointer.
	PciCapPointerOffset = 0x34
)
