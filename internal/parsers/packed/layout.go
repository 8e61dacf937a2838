package packed

import (
	"github.com/deploymenttheory/go-virtio/internal/parsers/virtqueue"
	"github.com/deploymenttheory/go-virtio/internal/types"
)

// PackedLayout describes the byte placement of a packed virtqueue within
// one contiguous memory area: the descriptor ring at the base, followed by
// the driver and device event suppression structures. Unlike the split
// layout there are no separate driver- and device-written rings; ownership
// of each slot is carried in its AVAIL and USED flag bits.
// Reference: section 2.7
type PackedLayout struct {
	// Number of descriptor slots. Any value in [1, 32768]; the packed ring
	// does not require a power of two, but this layer keeps the shared
	// constraint so one queue size validates for either variant.
	QueueSize uint16

	// Descriptor ring placement; 16-byte aligned.
	DescRingOffset uint64
	DescRingSize   uint64

	// Driver event suppression structure placement; 4-byte aligned.
	DriverEventOffset uint64

	// Device event suppression structure placement; 4-byte aligned.
	DeviceEventOffset uint64

	// Total size of the contiguous area.
	TotalSize uint64
}

// NewPackedLayout computes the packed virtqueue layout for a queue size.
// The ring variant is chosen explicitly by the consumer based on the
// negotiated VIRTIO_F_RING_PACKED bit.
func NewPackedLayout(queueSize uint16) (*PackedLayout, error) {
	if err := virtqueue.ValidateQueueSize(queueSize); err != nil {
		return nil, err
	}

	qs := uint64(queueSize)

	layout := &PackedLayout{
		QueueSize:      queueSize,
		DescRingOffset: 0,
		DescRingSize:   qs * types.PvirtqDescSize,
	}
	layout.DriverEventOffset = layout.DescRingOffset + layout.DescRingSize
	layout.DeviceEventOffset = layout.DriverEventOffset + types.PvirtqEventSuppressSize
	layout.TotalSize = layout.DeviceEventOffset + types.PvirtqEventSuppressSize

	return layout, nil
}
