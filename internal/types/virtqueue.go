package types

// Split virtqueue layout (section 2.6)
// A split virtqueue consists of three regions placed in driver-allocated
// memory: the descriptor table, the available ring written by the driver,
// and the used ring written by the device. All multi-byte fields are
// little-endian. The free-running avail/used indexes wrap modulo 2^16, not
// modulo the queue size; consumers locate ring entries at index mod
// queue size.

const (
	// QueueSizeMax is the largest permitted queue size. Queue sizes must be
	// a power of two between 1 and QueueSizeMax inclusive.
	// Reference: section 2.6
	QueueSizeMax = 32768

	// VirtqDescSize is the byte size of one descriptor table entry.
	// Reference: section 2.6.5
	VirtqDescSize = 16

	// VirtqAvailHeaderSize is the byte size of the available ring header
	// (flags and idx).
	// Reference: section 2.6.6
	VirtqAvailHeaderSize = 4

	// VirtqAvailElemSize is the byte size of one available ring entry.
	// Reference: section 2.6.6
	VirtqAvailElemSize = 2

	// VirtqUsedHeaderSize is the byte size of the used ring header
	// (flags and idx).
	// Reference: section 2.6.8
	VirtqUsedHeaderSize = 4

	// VirtqUsedElemSize is the byte size of one used ring entry.
	// Reference: section 2.6.8
	VirtqUsedElemSize = 8

	// VirtqEventSize is the byte size of the optional used_event and
	// avail_event fields, present when VIRTIO_F_EVENT_IDX is negotiated.
	// Reference: sections 2.6.6, 2.6.8
	VirtqEventSize = 2
)

// Region alignment requirements (section 2.6)

const (
	// VirtqDescAlign is the required alignment of the descriptor table.
	VirtqDescAlign = 16

	// VirtqAvailAlign is the required alignment of the available ring.
	VirtqAvailAlign = 2

	// VirtqUsedAlign is the required alignment of the used ring.
	VirtqUsedAlign = 4

	// VirtqUsedBoundary is the boundary the used ring is padded up to when
	// the three regions are placed contiguously, so that the device-written
	// region starts on its own page.
	// Reference: section 2.6.2
	VirtqUsedBoundary = 4096
)

// Descriptor flags (section 2.6.5)

const (
	// VirtqDescFNext marks a buffer as continuing via the next field.
	VirtqDescFNext uint16 = 1

	// VirtqDescFWrite marks a buffer as device write-only (otherwise
	// device read-only).
	VirtqDescFWrite uint16 = 2

	// VirtqDescFIndirect means the buffer contains a list of buffer
	// descriptors.
	VirtqDescFIndirect uint16 = 4
)

// Ring flags (sections 2.6.6, 2.6.8)

const (
	// VirtqAvailFNoInterrupt asks the device not to interrupt when a
	// buffer is consumed. Advisory.
	VirtqAvailFNoInterrupt uint16 = 1

	// VirtqUsedFNoNotify asks the driver not to notify when a buffer is
	// added. Advisory.
	VirtqUsedFNoNotify uint16 = 1
)

// VirtqDescT is one entry of the descriptor table. The address and length
// describe a physically contiguous buffer; ownership of the buffer is
// transferred through the rings, not through this structure.
// Reference: section 2.6.5
type VirtqDescT struct {
	// Buffer guest-physical address.
	Addr uint64
	// Buffer length in bytes.
	Len uint32
	// VirtqDescF* flags.
	Flags uint16
	// Index of the next descriptor in the chain, if Flags has
	// VirtqDescFNext.
	Next uint16
}

// HasNext checks whether the descriptor chains to another descriptor.
func (d VirtqDescT) HasNext() bool {
	return d.Flags&VirtqDescFNext != 0
}

// IsWriteOnly checks whether the buffer is device write-only.
func (d VirtqDescT) IsWriteOnly() bool {
	return d.Flags&VirtqDescFWrite != 0
}

// IsIndirect checks whether the buffer contains an indirect descriptor
// table.
func (d VirtqDescT) IsIndirect() bool {
	return d.Flags&VirtqDescFIndirect != 0
}

// VirtqUsedElemT is one entry of the used ring.
// Reference: section 2.6.8
type VirtqUsedElemT struct {
	// Index of the head of the used descriptor chain. 32 bits for padding
	// reasons; the value always fits in 16 bits.
	ID uint32
	// Total number of bytes written into the chain's device-writable
	// buffers.
	Len uint32
}
