package packed

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-virtio/internal/parsers/virtqueue"
	"github.com/deploymenttheory/go-virtio/internal/types"
)

func createValidPackedDescriptorData(addr uint64, length uint32, id, flags uint16) []byte {
	data := make([]byte, types.PvirtqDescSize)
	binary.LittleEndian.PutUint64(data[0:8], addr)
	binary.LittleEndian.PutUint32(data[8:12], length)
	binary.LittleEndian.PutUint16(data[12:14], id)
	binary.LittleEndian.PutUint16(data[14:16], flags)
	return data
}

func TestNewPackedLayout(t *testing.T) {
	layout, err := NewPackedLayout(128)
	require.NoError(t, err)

	assert.Equal(t, uint64(0), layout.DescRingOffset)
	assert.Equal(t, uint64(128*16), layout.DescRingSize)
	assert.Equal(t, uint64(128*16), layout.DriverEventOffset)
	assert.Equal(t, uint64(128*16+4), layout.DeviceEventOffset)
	assert.Equal(t, uint64(128*16+8), layout.TotalSize)

	assert.Zero(t, layout.DriverEventOffset%types.PvirtqEventSuppressAlign)
	assert.Zero(t, layout.DeviceEventOffset%types.PvirtqEventSuppressAlign)
}

func TestNewPackedLayout_RejectsInvalidQueueSizes(t *testing.T) {
	for _, qs := range []uint16{0, 3, 100, 32769} {
		_, err := NewPackedLayout(qs)
		assert.ErrorIs(t, err, virtqueue.ErrInvalidQueueSize, "queue size %d", qs)
	}
}

func TestDecodeDescriptor_FieldOrder(t *testing.T) {
	// The packed descriptor carries the 16-bit buffer ID where the split
	// descriptor carries its flags; the decode must not confuse the two.
	data := createValidPackedDescriptorData(0x1000, 512, 0x0102, types.VirtqDescFAvail|types.VirtqDescFWrite)

	desc, err := DecodeDescriptor(data)
	require.NoError(t, err)

	assert.Equal(t, uint64(0x1000), desc.Addr)
	assert.Equal(t, uint32(512), desc.Len)
	assert.Equal(t, uint16(0x0102), desc.ID)
	assert.Equal(t, types.VirtqDescFAvail|types.VirtqDescFWrite, desc.Flags)

	out := EncodeDescriptor(desc)
	assert.Equal(t, data, out[:])
}

func TestDecodeDescriptor_TooSmall(t *testing.T) {
	_, err := DecodeDescriptor(make([]byte, 8))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "data too small")
}

func TestOwnership_ParityMatrix(t *testing.T) {
	tests := []struct {
		name      string
		flags     uint16
		wrap      bool
		available bool
		used      bool
	}{
		{"avail set, wrap true", types.VirtqDescFAvail, true, true, false},
		{"avail set, wrap false", types.VirtqDescFAvail, false, false, false},
		{"both clear, wrap false", 0, false, false, true},
		{"both clear, wrap true", 0, true, false, false},
		{"both set, wrap true", types.VirtqDescFAvail | types.VirtqDescFUsed, true, false, true},
		{"both set, wrap false", types.VirtqDescFAvail | types.VirtqDescFUsed, false, false, false},
		{"used only, wrap false", types.VirtqDescFUsed, false, true, false},
		{"used only, wrap true", types.VirtqDescFUsed, true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.available, IsAvailable(tt.flags, tt.wrap))
			assert.Equal(t, tt.used, IsUsed(tt.flags, tt.wrap))
		})
	}
}

func TestAvailFlags_UsedFlags(t *testing.T) {
	// First pass: driver wrap counter true publishes with AVAIL set and
	// USED clear; device returns the slot with both matching its counter.
	flags := AvailFlags(types.VirtqDescFWrite, true)
	assert.True(t, IsAvailable(flags, true))
	assert.False(t, IsUsed(flags, true))
	assert.Equal(t, types.VirtqDescFWrite, flags&types.VirtqDescFWrite)

	flags = UsedFlags(flags, true)
	assert.True(t, IsUsed(flags, true))
	assert.False(t, IsAvailable(flags, true))

	// Second pass after wrap: counters flip, parities invert.
	flags = AvailFlags(0, false)
	assert.True(t, IsAvailable(flags, false))
	assert.False(t, IsAvailable(flags, true))

	flags = UsedFlags(flags, false)
	assert.True(t, IsUsed(flags, false))
	assert.False(t, IsUsed(flags, true))
}

func TestNewPackedDescriptorReader(t *testing.T) {
	data := createValidPackedDescriptorData(0x2000, 64, 7, types.VirtqDescFAvail)

	reader, err := NewPackedDescriptorReader(data)
	require.NoError(t, err)

	assert.Equal(t, uint64(0x2000), reader.Address())
	assert.Equal(t, uint32(64), reader.Length())
	assert.Equal(t, uint16(7), reader.BufferID())
	assert.True(t, reader.IsAvailable(true))
	assert.False(t, reader.IsUsed(true))
	assert.False(t, reader.IsAvailable(false))
}

func TestEventSuppress_RoundTrip(t *testing.T) {
	var ev types.PvirtqEventSuppressT
	ev.Desc.Set(PackEventDesc(0x1234, true))
	ev.Flags.Set(uint16(types.RingEventFlagsDesc))

	raw := EncodeEventSuppress(ev)

	reader, err := NewEventSuppressReader(raw[:])
	require.NoError(t, err)

	assert.Equal(t, uint16(0x1234), reader.EventOffset())
	assert.True(t, reader.EventWrap())
	assert.Equal(t, types.RingEventFlagsDesc, reader.EventFlags())
}

func TestPackEventDesc_MasksOffset(t *testing.T) {
	// Offsets wider than 15 bits lose their top bit to the wrap field.
	assert.Equal(t, uint16(0x7fff), PackEventDesc(0xffff, false))
	assert.Equal(t, uint16(0xffff), PackEventDesc(0xffff, true))
	assert.Equal(t, uint16(0x8000), PackEventDesc(0, true))
}

func TestNewEventSuppressReader_TooSmall(t *testing.T) {
	_, err := NewEventSuppressReader(make([]byte, 3))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "data too small")
}

func TestPackedRing_SlotRoundTrip(t *testing.T) {
	layout, err := NewPackedLayout(8)
	require.NoError(t, err)

	mem := make([]byte, layout.TotalSize)
	ring, err := NewPackedRing(layout, mem)
	require.NoError(t, err)

	desc := types.PvirtqDescT{Addr: 0x3000, Len: 256, ID: 5, Flags: AvailFlags(0, true)}
	require.NoError(t, ring.SetDescriptor(2, desc))

	got, err := ring.Descriptor(2)
	require.NoError(t, err)
	assert.Equal(t, desc, got)

	owned, err := ring.DriverOwned(2, true)
	require.NoError(t, err)
	assert.True(t, owned)

	owned, err = ring.DeviceOwned(2, true)
	require.NoError(t, err)
	assert.False(t, owned)

	_, err = ring.Descriptor(8)
	assert.ErrorIs(t, err, virtqueue.ErrIndexOutOfRange)
}

func TestPackedRing_EventStructures(t *testing.T) {
	layout, err := NewPackedLayout(4)
	require.NoError(t, err)

	mem := make([]byte, layout.TotalSize)
	ring, err := NewPackedRing(layout, mem)
	require.NoError(t, err)

	var driver types.PvirtqEventSuppressT
	driver.Desc.Set(PackEventDesc(3, false))
	driver.Flags.Set(uint16(types.RingEventFlagsEnable))
	ring.SetDriverEvent(driver)

	var device types.PvirtqEventSuppressT
	device.Flags.Set(uint16(types.RingEventFlagsDisable))
	ring.SetDeviceEvent(device)

	assert.Equal(t, driver, ring.DriverEvent())
	assert.Equal(t, device, ring.DeviceEvent())

	// The two structures occupy distinct offsets after the ring.
	assert.Equal(t, uint16(3), binary.LittleEndian.Uint16(mem[layout.DriverEventOffset:]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(mem[layout.DeviceEventOffset+2:]))
}

func TestPackedRing_MemoryTooSmall(t *testing.T) {
	layout, err := NewPackedLayout(4)
	require.NoError(t, err)

	_, err = NewPackedRing(layout, make([]byte, layout.TotalSize-1))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "memory region too small")
}
