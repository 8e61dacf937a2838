package types

import "fmt"

// Packed virtqueue layout (section 2.7)
// A packed virtqueue merges descriptor, availability and completion state
// into a single descriptor array. Slot ownership alternates between driver
// and device each time the ring wraps, tracked by a one-bit wrap counter
// per side and mirrored into the AVAIL and USED flag bits of each slot.

const (
	// PvirtqDescSize is the byte size of one packed descriptor.
	// Reference: section 2.7.4
	PvirtqDescSize = 16

	// PvirtqEventSuppressSize is the byte size of one event suppression
	// structure. The packed layout has two: one controlled by the driver
	// and one by the device.
	// Reference: section 2.7.14
	PvirtqEventSuppressSize = 4

	// PvirtqEventSuppressAlign is the required alignment of an event
	// suppression structure.
	// Reference: section 2.7
	PvirtqEventSuppressAlign = 4
)

// Packed descriptor flags (section 2.7.1)
// NEXT, WRITE and INDIRECT keep their split-ring values.

const (
	// VirtqDescFAvail mirrors the driver's wrap counter when the driver
	// makes a descriptor available.
	VirtqDescFAvail uint16 = 1 << 7

	// VirtqDescFUsed mirrors the device's wrap counter when the device
	// marks a descriptor used.
	VirtqDescFUsed uint16 = 1 << 15
)

// PvirtqDescT is one slot of the packed descriptor ring.
// Reference: section 2.7.4
type PvirtqDescT struct {
	// Buffer guest-physical address.
	Addr uint64
	// Buffer length in bytes.
	Len uint32
	// Buffer identifier, reported back by the device on completion.
	ID uint16
	// VirtqDescF* flags including AVAIL and USED.
	Flags uint16
}

// Event suppression desc field packing (section 2.7.14)

const (
	// PvirtqEventOffMask extracts the descriptor ring change event offset.
	PvirtqEventOffMask uint16 = 0x7fff

	// PvirtqEventWrapShift is the bit position of the descriptor ring
	// change event wrap counter.
	PvirtqEventWrapShift = 15
)

// PvirtqEventSuppressT is the event suppression structure shared between
// driver and device.
// Reference: section 2.7.14
type PvirtqEventSuppressT struct {
	// Descriptor ring change event offset (bits 0..14) and wrap counter
	// (bit 15). Only meaningful when Flags is RingEventFlagsDesc.
	Desc Le16
	// A RingEventFlags value. Bits above the low two are reserved.
	Flags Le16
}

// RingEventFlags controls descriptor ring change event suppression.
// Values above RingEventFlagsReserved are reserved by the specification;
// they decode without error and re-encode unchanged.
// Reference: section 2.7.14
type RingEventFlags uint16

const (
	// RingEventFlagsEnable enables events.
	RingEventFlagsEnable RingEventFlags = 0x0

	// RingEventFlagsDisable disables events.
	RingEventFlagsDisable RingEventFlags = 0x1

	// RingEventFlagsDesc enables events for a specific descriptor, as
	// specified by the event offset and wrap counter. Only valid if
	// VIRTIO_F_EVENT_IDX has been negotiated.
	RingEventFlagsDesc RingEventFlags = 0x2

	// RingEventFlagsReserved is reserved.
	RingEventFlagsReserved RingEventFlags = 0x3
)

// IsKnown checks whether the value is one the specification defines.
func (f RingEventFlags) IsKnown() bool {
	return f <= RingEventFlagsReserved
}

// String returns the specification name of the value, or a numeric
// fallback for reserved values.
func (f RingEventFlags) String() string {
	switch f {
	case RingEventFlagsEnable:
		return "enable"
	case RingEventFlagsDisable:
		return "disable"
	case RingEventFlagsDesc:
		return "desc"
	case RingEventFlagsReserved:
		return "reserved"
	default:
		return fmt.Sprintf("reserved event flags %d", uint16(f))
	}
}
