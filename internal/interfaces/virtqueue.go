package interfaces

import (
	"github.com/deploymenttheory/go-virtio/internal/types"
)

// DescriptorReader provides methods for inspecting one split-ring
// descriptor
type DescriptorReader interface {
	// Address returns the buffer's guest-physical address
	Address() uint64

	// Length returns the buffer length in bytes
	Length() uint32

	// Flags returns the raw descriptor flags
	Flags() uint16

	// Next returns the index of the next descriptor in the chain
	Next() uint16

	// HasNext checks whether the descriptor chains to another descriptor
	HasNext() bool

	// IsWriteOnly checks whether the buffer is device write-only
	IsWriteOnly() bool

	// IsIndirect checks whether the buffer holds an indirect descriptor
	// table
	IsIndirect() bool
}

// SplitRingAccessor provides byte-exact access to the three regions of a
// split virtqueue placed in caller-owned memory. The accessor performs no
// memory barriers; the caller must order its accesses per the
// specification before publishing index updates.
type SplitRingAccessor interface {
	// QueueSize returns the number of descriptors in the ring
	QueueSize() uint16

	// Descriptor reads descriptor table entry i
	Descriptor(i uint16) (types.VirtqDescT, error)

	// SetDescriptor writes descriptor table entry i
	SetDescriptor(i uint16, desc types.VirtqDescT) error

	// DescriptorChain walks the chain starting at head, bounded by the
	// queue size
	DescriptorChain(head uint16) ([]types.VirtqDescT, error)

	// AvailFlags reads the available ring flags
	AvailFlags() uint16

	// SetAvailFlags writes the available ring flags
	SetAvailFlags(flags uint16)

	// AvailIdx reads the free-running available index
	AvailIdx() uint16

	// SetAvailIdx writes the free-running available index
	SetAvailIdx(idx uint16)

	// AvailEntry reads available ring slot i
	AvailEntry(i uint16) (uint16, error)

	// SetAvailEntry writes available ring slot i
	SetAvailEntry(i uint16, head uint16) error

	// UsedFlags reads the used ring flags
	UsedFlags() uint16

	// SetUsedFlags writes the used ring flags
	SetUsedFlags(flags uint16)

	// UsedIdx reads the free-running used index
	UsedIdx() uint16

	// SetUsedIdx writes the free-running used index
	SetUsedIdx(idx uint16)

	// UsedEntry reads used ring slot i
	UsedEntry(i uint16) (types.VirtqUsedElemT, error)

	// SetUsedEntry writes used ring slot i
	SetUsedEntry(i uint16, elem types.VirtqUsedElemT) error

	// UsedEvent reads the optional used_event field
	UsedEvent() (uint16, error)

	// SetUsedEvent writes the optional used_event field
	SetUsedEvent(idx uint16) error

	// AvailEvent reads the optional avail_event field
	AvailEvent() (uint16, error)

	// SetAvailEvent writes the optional avail_event field
	SetAvailEvent(idx uint16) error
}
