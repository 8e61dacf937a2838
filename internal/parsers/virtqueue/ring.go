package virtqueue

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/deploymenttheory/go-virtio/internal/interfaces"
	"github.com/deploymenttheory/go-virtio/internal/types"
)

var (
	// ErrIndexOutOfRange reports a ring or table index at or beyond the
	// queue size.
	ErrIndexOutOfRange = errors.New("ring index out of range")

	// ErrChainTooLong reports a descriptor chain with more links than the
	// table has entries, which can only mean a cycle.
	ErrChainTooLong = errors.New("descriptor chain longer than descriptor table")

	// ErrNoEventIdx reports access to the used_event or avail_event field
	// of a ring laid out without VIRTIO_F_EVENT_IDX.
	ErrNoEventIdx = errors.New("event index fields not present in ring layout")
)

// splitRing implements the SplitRingAccessor interface over one contiguous
// caller-owned memory region holding the three split virtqueue regions.
type splitRing struct {
	layout *SplitLayout
	mem    []byte
}

// NewSplitRing creates a SplitRingAccessor over a memory region laid out
// per the given SplitLayout. The region must be at least layout.TotalSize
// bytes; the accessor never grows or reallocates it.
func NewSplitRing(layout *SplitLayout, mem []byte) (interfaces.SplitRingAccessor, error) {
	if layout == nil {
		return nil, fmt.Errorf("nil split layout")
	}
	if uint64(len(mem)) < layout.TotalSize {
		return nil, fmt.Errorf("memory region too small for split virtqueue: %d bytes, need %d", len(mem), layout.TotalSize)
	}
	return &splitRing{layout: layout, mem: mem}, nil
}

// QueueSize returns the number of descriptors in the ring
func (sr *splitRing) QueueSize() uint16 {
	return sr.layout.QueueSize
}

func (sr *splitRing) descOffset(i uint16) (uint64, error) {
	if i >= sr.layout.QueueSize {
		return 0, fmt.Errorf("%w: descriptor %d of %d", ErrIndexOutOfRange, i, sr.layout.QueueSize)
	}
	return sr.layout.DescTableOffset + uint64(i)*types.VirtqDescSize, nil
}

// Descriptor reads descriptor table entry i
func (sr *splitRing) Descriptor(i uint16) (types.VirtqDescT, error) {
	off, err := sr.descOffset(i)
	if err != nil {
		return types.VirtqDescT{}, err
	}
	return DecodeDescriptor(sr.mem[off : off+types.VirtqDescSize])
}

// SetDescriptor writes descriptor table entry i
func (sr *splitRing) SetDescriptor(i uint16, desc types.VirtqDescT) error {
	off, err := sr.descOffset(i)
	if err != nil {
		return err
	}
	raw := EncodeDescriptor(desc)
	copy(sr.mem[off:off+types.VirtqDescSize], raw[:])
	return nil
}

// DescriptorChain walks the chain starting at head, following next links
// while the NEXT flag is set. The walk is bounded by the table size, so a
// cycle surfaces as ErrChainTooLong instead of looping.
func (sr *splitRing) DescriptorChain(head uint16) ([]types.VirtqDescT, error) {
	chain := make([]types.VirtqDescT, 0, 4)
	idx := head
	for {
		desc, err := sr.Descriptor(idx)
		if err != nil {
			return nil, err
		}
		chain = append(chain, desc)
		if !desc.HasNext() {
			return chain, nil
		}
		if len(chain) >= int(sr.layout.QueueSize) {
			return nil, fmt.Errorf("%w: head %d", ErrChainTooLong, head)
		}
		idx = desc.Next
	}
}

// AvailFlags reads the available ring flags
func (sr *splitRing) AvailFlags() uint16 {
	return binary.LittleEndian.Uint16(sr.mem[sr.layout.AvailRingOffset:])
}

// SetAvailFlags writes the available ring flags
func (sr *splitRing) SetAvailFlags(flags uint16) {
	binary.LittleEndian.PutUint16(sr.mem[sr.layout.AvailRingOffset:], flags)
}

// AvailIdx reads the free-running available index
func (sr *splitRing) AvailIdx() uint16 {
	return binary.LittleEndian.Uint16(sr.mem[sr.layout.AvailRingOffset+2:])
}

// SetAvailIdx writes the free-running available index. The value wraps
// modulo 2^16 by construction; it is never reduced modulo the queue size.
func (sr *splitRing) SetAvailIdx(idx uint16) {
	binary.LittleEndian.PutUint16(sr.mem[sr.layout.AvailRingOffset+2:], idx)
}

func (sr *splitRing) availEntryOffset(i uint16) (uint64, error) {
	if i >= sr.layout.QueueSize {
		return 0, fmt.Errorf("%w: avail slot %d of %d", ErrIndexOutOfRange, i, sr.layout.QueueSize)
	}
	return sr.layout.AvailRingOffset + types.VirtqAvailHeaderSize + uint64(i)*types.VirtqAvailElemSize, nil
}

// AvailEntry reads available ring slot i
func (sr *splitRing) AvailEntry(i uint16) (uint16, error) {
	off, err := sr.availEntryOffset(i)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(sr.mem[off:]), nil
}

// SetAvailEntry writes available ring slot i
func (sr *splitRing) SetAvailEntry(i uint16, head uint16) error {
	off, err := sr.availEntryOffset(i)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(sr.mem[off:], head)
	return nil
}

// UsedFlags reads the used ring flags
func (sr *splitRing) UsedFlags() uint16 {
	return binary.LittleEndian.Uint16(sr.mem[sr.layout.UsedRingOffset:])
}

// SetUsedFlags writes the used ring flags
func (sr *splitRing) SetUsedFlags(flags uint16) {
	binary.LittleEndian.PutUint16(sr.mem[sr.layout.UsedRingOffset:], flags)
}

// UsedIdx reads the free-running used index
func (sr *splitRing) UsedIdx() uint16 {
	return binary.LittleEndian.Uint16(sr.mem[sr.layout.UsedRingOffset+2:])
}

// SetUsedIdx writes the free-running used index
func (sr *splitRing) SetUsedIdx(idx uint16) {
	binary.LittleEndian.PutUint16(sr.mem[sr.layout.UsedRingOffset+2:], idx)
}

func (sr *splitRing) usedEntryOffset(i uint16) (uint64, error) {
	if i >= sr.layout.QueueSize {
		return 0, fmt.Errorf("%w: used slot %d of %d", ErrIndexOutOfRange, i, sr.layout.QueueSize)
	}
	return sr.layout.UsedRingOffset + types.VirtqUsedHeaderSize + uint64(i)*types.VirtqUsedElemSize, nil
}

// UsedEntry reads used ring slot i
func (sr *splitRing) UsedEntry(i uint16) (types.VirtqUsedElemT, error) {
	off, err := sr.usedEntryOffset(i)
	if err != nil {
		return types.VirtqUsedElemT{}, err
	}
	return types.VirtqUsedElemT{
		ID:  binary.LittleEndian.Uint32(sr.mem[off:]),
		Len: binary.LittleEndian.Uint32(sr.mem[off+4:]),
	}, nil
}

// SetUsedEntry writes used ring slot i
func (sr *splitRing) SetUsedEntry(i uint16, elem types.VirtqUsedElemT) error {
	off, err := sr.usedEntryOffset(i)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(sr.mem[off:], elem.ID)
	binary.LittleEndian.PutUint32(sr.mem[off+4:], elem.Len)
	return nil
}

// UsedEvent reads the used_event field trailing the available ring
func (sr *splitRing) UsedEvent() (uint16, error) {
	if !sr.layout.EventIdx {
		return 0, ErrNoEventIdx
	}
	off := sr.layout.AvailRingOffset + types.VirtqAvailHeaderSize + uint64(sr.layout.QueueSize)*types.VirtqAvailElemSize
	return binary.LittleEndian.Uint16(sr.mem[off:]), nil
}

// SetUsedEvent writes the used_event field trailing the available ring
func (sr *splitRing) SetUsedEvent(idx uint16) error {
	if !sr.layout.EventIdx {
		return ErrNoEventIdx
	}
	off := sr.layout.AvailRingOffset + types.VirtqAvailHeaderSize + uint64(sr.layout.QueueSize)*types.VirtqAvailElemSize
	binary.LittleEndian.PutUint16(sr.mem[off:], idx)
	return nil
}

// AvailEvent reads the avail_event field trailing the used ring
func (sr *splitRing) AvailEvent() (uint16, error) {
	if !sr.layout.EventIdx {
		return 0, ErrNoEventIdx
	}
	off := sr.layout.UsedRingOffset + types.VirtqUsedHeaderSize + uint64(sr.layout.QueueSize)*types.VirtqUsedElemSize
	return binary.LittleEndian.Uint16(sr.mem[off:]), nil
}

// SetAvailEvent writes the avail_event field trailing the used ring
func (sr *splitRing) SetAvailEvent(idx uint16) error {
	if !sr.layout.EventIdx {
		return ErrNoEventIdx
	}
	off := sr.layout.UsedRingOffset + types.VirtqUsedHeaderSize + uint64(sr.layout.QueueSize)*types.VirtqUsedElemSize
	binary.LittleEndian.PutUint16(sr.mem[off:], idx)
	return nil
}
