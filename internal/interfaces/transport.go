package interfaces

import (
	"github.com/deploymenttheory/go-virtio/internal/types"
)

// CapabilityReader provides methods for inspecting one virtio PCI
// capability record
type CapabilityReader interface {
	// CapabilityType returns the virtio structure kind the capability
	// locates
	CapabilityType() types.PciCapabilityType

	// Bar returns the index of the BAR holding the structure
	Bar() uint8

	// StructureID distinguishes multiple capabilities of the same type
	StructureID() uint8

	// Offset returns the byte offset of the structure within the BAR
	Offset() uint32

	// Length returns the byte length of the structure
	Length() uint32

	// NotifyOffMultiplier returns the notification offset multiplier;
	// only valid for notification capabilities
	NotifyOffMultiplier() (uint32, error)
}

// CommonConfigReader provides byte-exact read access to a PCI common
// configuration structure image
type CommonConfigReader interface {
	// DeviceFeatureSelect reads the device feature window select register
	DeviceFeatureSelect() uint32

	// DeviceFeature reads the device feature window value register
	DeviceFeature() uint32

	// DriverFeatureSelect reads the driver feature window select register
	DriverFeatureSelect() uint32

	// DriverFeature reads the driver feature window value register
	DriverFeature() uint32

	// NumQueues reads the number of virtqueues
	NumQueues() uint16

	// DeviceStatus reads the device status byte
	DeviceStatus() types.DeviceStatus

	// ConfigGeneration reads the configuration atomicity counter
	ConfigGeneration() uint8

	// QueueSelect reads the queue select register
	QueueSelect() uint16

	// QueueSize reads the selected queue's size
	QueueSize() uint16

	// QueueEnable reads the selected queue's enable register
	QueueEnable() uint16

	// QueueNotifyOff reads the selected queue's notification offset
	QueueNotifyOff() uint16

	// QueueDesc reads the selected queue's descriptor table address
	QueueDesc() uint64

	// QueueAvail reads the selected queue's available ring address
	QueueAvail() uint64

	// QueueUsed reads the selected queue's used ring address
	QueueUsed() uint64
}

// MmioRegisterReader provides byte-exact read access to an MMIO register
// block image
type MmioRegisterReader interface {
	// Magic reads the magic value register
	Magic() uint32

	// Version reads the device version register
	Version() uint32

	// DeviceID reads the device type register
	DeviceID() types.DeviceType

	// VendorID reads the vendor ID register
	VendorID() uint32

	// Status reads the device status register
	Status() types.DeviceStatus

	// InterruptStatus reads the interrupt status register
	InterruptStatus() uint32

	// IsLegacy checks whether the register block uses the legacy interface
	IsLegacy() bool
}
