package interfaces

import (
	"github.com/deploymenttheory/go-virtio/internal/types"
)

// PackedDescriptorReader provides methods for inspecting one packed-ring
// descriptor slot
type PackedDescriptorReader interface {
	// Address returns the buffer's guest-physical address
	Address() uint64

	// Length returns the buffer length in bytes
	Length() uint32

	// BufferID returns the buffer identifier
	BufferID() uint16

	// Flags returns the raw slot flags including AVAIL and USED
	Flags() uint16

	// IsAvailable checks whether the slot is available to the device for
	// the given driver wrap-counter parity
	IsAvailable(wrapCounter bool) bool

	// IsUsed checks whether the slot has been used by the device for the
	// given device wrap-counter parity
	IsUsed(wrapCounter bool) bool
}

// PackedRingAccessor provides byte-exact access to a packed virtqueue's
// descriptor array and its two event suppression structures, placed in
// caller-owned memory. As with the split ring, memory ordering is the
// caller's obligation.
type PackedRingAccessor interface {
	// QueueSize returns the number of descriptor slots in the ring
	QueueSize() uint16

	// Descriptor reads descriptor slot i
	Descriptor(i uint16) (types.PvirtqDescT, error)

	// SetDescriptor writes descriptor slot i
	SetDescriptor(i uint16, desc types.PvirtqDescT) error

	// DriverOwned checks whether slot i is owned by the driver side for
	// the given wrap-counter parity; a mismatch means the slot is not yet
	// ready for the caller, never a value to poll here
	DriverOwned(i uint16, wrapCounter bool) (bool, error)

	// DeviceOwned checks whether slot i is owned by the device side for
	// the given wrap-counter parity
	DeviceOwned(i uint16, wrapCounter bool) (bool, error)

	// DriverEvent reads the driver-controlled event suppression structure
	DriverEvent() types.PvirtqEventSuppressT

	// SetDriverEvent writes the driver-controlled event suppression
	// structure
	SetDriverEvent(ev types.PvirtqEventSuppressT)

	// DeviceEvent reads the device-controlled event suppression structure
	DeviceEvent() types.PvirtqEventSuppressT

	// SetDeviceEvent writes the device-controlled event suppression
	// structure
	SetDeviceEvent(ev types.PvirtqEventSuppressT)
}

// EventSuppressReader provides methods for inspecting an event suppression
// structure
type EventSuppressReader interface {
	// EventOffset returns the descriptor ring change event offset
	EventOffset() uint16

	// EventWrap returns the descriptor ring change event wrap counter
	EventWrap() bool

	// EventFlags returns the suppression mode
	EventFlags() types.RingEventFlags
}
