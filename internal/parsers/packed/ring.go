package packed

import (
	"fmt"

	"github.com/deploymenttheory/go-virtio/internal/interfaces"
	"github.com/deploymenttheory/go-virtio/internal/parsers/virtqueue"
	"github.com/deploymenttheory/go-virtio/internal/types"
)

// packedRing implements the PackedRingAccessor interface over one
// contiguous caller-owned memory region.
type packedRing struct {
	layout *PackedLayout
	mem    []byte
}

// NewPackedRing creates a PackedRingAccessor over a memory region laid out
// per the given PackedLayout.
func NewPackedRing(layout *PackedLayout, mem []byte) (interfaces.PackedRingAccessor, error) {
	if layout == nil {
		return nil, fmt.Errorf("nil packed layout")
	}
	if uint64(len(mem)) < layout.TotalSize {
		return nil, fmt.Errorf("memory region too small for packed virtqueue: %d bytes, need %d", len(mem), layout.TotalSize)
	}
	return &packedRing{layout: layout, mem: mem}, nil
}

// QueueSize returns the number of descriptor slots in the ring
func (pr *packedRing) QueueSize() uint16 {
	return pr.layout.QueueSize
}

func (pr *packedRing) slotOffset(i uint16) (uint64, error) {
	if i >= pr.layout.QueueSize {
		return 0, fmt.Errorf("%w: slot %d of %d", virtqueue.ErrIndexOutOfRange, i, pr.layout.QueueSize)
	}
	return pr.layout.DescRingOffset + uint64(i)*types.PvirtqDescSize, nil
}

// Descriptor reads descriptor slot i
func (pr *packedRing) Descriptor(i uint16) (types.PvirtqDescT, error) {
	off, err := pr.slotOffset(i)
	if err != nil {
		return types.PvirtqDescT{}, err
	}
	return DecodeDescriptor(pr.mem[off : off+types.PvirtqDescSize])
}

// SetDescriptor writes descriptor slot i
func (pr *packedRing) SetDescriptor(i uint16, desc types.PvirtqDescT) error {
	off, err := pr.slotOffset(i)
	if err != nil {
		return err
	}
	raw := EncodeDescriptor(desc)
	copy(pr.mem[off:off+types.PvirtqDescSize], raw[:])
	return nil
}

// DriverOwned checks whether slot i has been made available by the driver
// for the given driver wrap-counter parity
func (pr *packedRing) DriverOwned(i uint16, wrapCounter bool) (bool, error) {
	desc, err := pr.Descriptor(i)
	if err != nil {
		return false, err
	}
	return IsAvailable(desc.Flags, wrapCounter), nil
}

// DeviceOwned checks whether slot i has been marked used by the device for
// the given device wrap-counter parity
func (pr *packedRing) DeviceOwned(i uint16, wrapCounter bool) (bool, error) {
	desc, err := pr.Descriptor(i)
	if err != nil {
		return false, err
	}
	return IsUsed(desc.Flags, wrapCounter), nil
}

// DriverEvent reads the driver-controlled event suppression structure
func (pr *packedRing) DriverEvent() types.PvirtqEventSuppressT {
	off := pr.layout.DriverEventOffset
	ev, _ := DecodeEventSuppress(pr.mem[off : off+types.PvirtqEventSuppressSize])
	return ev
}

// SetDriverEvent writes the driver-controlled event suppression structure
func (pr *packedRing) SetDriverEvent(ev types.PvirtqEventSuppressT) {
	off := pr.layout.DriverEventOffset
	raw := EncodeEventSuppress(ev)
	copy(pr.mem[off:off+types.PvirtqEventSuppressSize], raw[:])
}

// DeviceEvent reads the device-controlled event suppression structure
func (pr *packedRing) DeviceEvent() types.PvirtqEventSuppressT {
	off := pr.layout.DeviceEventOffset
	ev, _ := DecodeEventSuppress(pr.mem[off : off+types.PvirtqEventSuppressSize])
	return ev
}

// SetDeviceEvent writes the device-controlled event suppression structure
func (pr *packedRing) SetDeviceEvent(ev types.PvirtqEventSuppressT) {
	off := pr.layout.DeviceEventOffset
	raw := EncodeEventSuppress(ev)
	copy(pr.mem[off:off+types.PvirtqEventSuppressSize], raw[:])
}
