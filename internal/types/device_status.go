package types

import (
	"fmt"
	"strings"
)

// DeviceStatus is the device status field, an 8-bit set of flags tracking
// the completed steps of the initialization sequence. The driver adds bits
// as initialization progresses and writes zero to reset the device.
// Reference: section 2.1
type DeviceStatus uint8

const (
	// DeviceStatusReset is the status value after a device reset. Writing
	// zero to the status field restarts initialization from scratch.
	// Reference: section 2.1
	DeviceStatusReset DeviceStatus = 0

	// DeviceStatusAcknowledge indicates that the guest OS has found the
	// device and recognized it as a valid virtio device.
	// Reference: section 2.1
	DeviceStatusAcknowledge DeviceStatus = 1

	// DeviceStatusDriver indicates that the guest OS knows how to drive
	// the device.
	// Reference: section 2.1
	DeviceStatusDriver DeviceStatus = 2

	// DeviceStatusDriverOK indicates that the driver is set up and ready
	// to drive the device.
	// Reference: section 2.1
	DeviceStatusDriverOK DeviceStatus = 4

	// DeviceStatusFeaturesOK indicates that the driver has acknowledged
	// all the features it understands and feature negotiation is complete.
	// Reference: section 2.1
	DeviceStatusFeaturesOK DeviceStatus = 8

	// DeviceStatusDeviceNeedsReset indicates that the device has
	// experienced an error from which it can't recover.
	// Reference: section 2.1
	DeviceStatusDeviceNeedsReset DeviceStatus = 64

	// DeviceStatusFailed indicates that something went wrong in the guest
	// and it has given up on the device.
	// Reference: section 2.1
	DeviceStatusFailed DeviceStatus = 128
)

// Has checks whether all bits of flag are set.
func (s DeviceStatus) Has(flag DeviceStatus) bool {
	return s&flag == flag
}

// IsReset checks whether the status is the post-reset value zero.
func (s DeviceStatus) IsReset() bool {
	return s == DeviceStatusReset
}

// String returns the set bits as a human-readable list.
func (s DeviceStatus) String() string {
	if s == DeviceStatusReset {
		return "RESET"
	}

	names := []struct {
		bit  DeviceStatus
		name string
	}{
		{DeviceStatusAcknowledge, "ACKNOWLEDGE"},
		{DeviceStatusDriver, "DRIVER"},
		{DeviceStatusDriverOK, "DRIVER_OK"},
		{DeviceStatusFeaturesOK, "FEATURES_OK"},
		{DeviceStatusDeviceNeedsReset, "DEVICE_NEEDS_RESET"},
		{DeviceStatusFailed, "FAILED"},
	}

	var parts []string
	remaining := s
	for _, n := range names {
		if s.Has(n.bit) {
			parts = append(parts, n.name)
			remaining &^= n.bit
		}
	}
	if remaining != 0 {
		parts = append(parts, fmt.Sprintf("0x%02x", uint8(remaining)))
	}
	return strings.Join(parts, "|")
}
