package virtqueue

import (
	"errors"
	"fmt"

	"github.com/deploymenttheory/go-virtio/internal/types"
)

// ErrInvalidQueueSize reports a queue size that is not a power of two in
// [1, 32768]. Layout construction rejects it before computing anything.
var ErrInvalidQueueSize = errors.New("invalid queue size")

// ValidateQueueSize checks the queue size constraint shared by the split
// and packed layouts.
// Reference: section 2.6
func ValidateQueueSize(queueSize uint16) error {
	if queueSize == 0 || queueSize > types.QueueSizeMax || queueSize&(queueSize-1) != 0 {
		return fmt.Errorf("%w: %d (must be a power of two between 1 and %d)", ErrInvalidQueueSize, queueSize, types.QueueSizeMax)
	}
	return nil
}

// SplitLayout describes the byte placement of the three split virtqueue
// regions within one contiguous memory area: the descriptor table at the
// base, the available ring immediately after it, and the used ring padded
// up to its own boundary so the device-written region does not share a
// cache line or page with the driver-written ones.
// Reference: section 2.6
type SplitLayout struct {
	// Number of descriptors; a power of two in [1, 32768].
	QueueSize uint16

	// Whether VIRTIO_F_EVENT_IDX was negotiated, adding the used_event
	// and avail_event fields.
	EventIdx bool

	// Descriptor table placement; 16-byte aligned.
	DescTableOffset uint64
	DescTableSize   uint64

	// Available ring placement; 2-byte aligned.
	AvailRingOffset uint64
	AvailRingSize   uint64

	// Used ring placement; 4-byte aligned, padded up to VirtqUsedBoundary.
	UsedRingOffset uint64
	UsedRingSize   uint64

	// Total size of the contiguous area including padding.
	TotalSize uint64
}

// NewSplitLayout computes the split virtqueue layout for a queue size. The
// layout is selected explicitly by the consumer; whether the ring is split
// or packed is decided by the negotiated VIRTIO_F_RING_PACKED bit, which
// this layer does not infer.
func NewSplitLayout(queueSize uint16, eventIdx bool) (*SplitLayout, error) {
	if err := ValidateQueueSize(queueSize); err != nil {
		return nil, err
	}

	qs := uint64(queueSize)

	layout := &SplitLayout{
		QueueSize: queueSize,
		EventIdx:  eventIdx,
	}

	layout.DescTableOffset = 0
	layout.DescTableSize = qs * types.VirtqDescSize

	layout.AvailRingOffset = layout.DescTableOffset + layout.DescTableSize
	layout.AvailRingSize = types.VirtqAvailHeaderSize + qs*types.VirtqAvailElemSize
	if eventIdx {
		layout.AvailRingSize += types.VirtqEventSize
	}

	layout.UsedRingOffset = alignUp(layout.AvailRingOffset+layout.AvailRingSize, types.VirtqUsedBoundary)
	layout.UsedRingSize = types.VirtqUsedHeaderSize + qs*types.VirtqUsedElemSize
	if eventIdx {
		layout.UsedRingSize += types.VirtqEventSize
	}

	layout.TotalSize = layout.UsedRingOffset + layout.UsedRingSize

	return layout, nil
}

// RingSlot maps a free-running 16-bit ring index to a ring position. The
// stored avail/used indexes wrap modulo 2^16, never modulo the queue size.
func (l *SplitLayout) RingSlot(idx uint16) uint16 {
	return idx % l.QueueSize
}

func alignUp(v, align uint64) uint64 {
	return (v + align - 1) &^ (align - 1)
}
