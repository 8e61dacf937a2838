package pci

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-virtio/internal/types"
)

func createValidCapabilityData(cfgType types.PciCapabilityType, bar, id uint8, offset, length uint32) []byte {
	data := make([]byte, types.VirtioPciCapSize)
	data[0] = types.PciCapVendor
	data[1] = 0
	data[2] = types.VirtioPciCapSize
	data[3] = uint8(cfgType)
	data[4] = bar
	data[5] = id
	binary.LittleEndian.PutUint32(data[8:12], offset)
	binary.LittleEndian.PutUint32(data[12:16], length)
	return data
}

func createValidNotifyCapabilityData(multiplier uint32) []byte {
	data := make([]byte, types.VirtioPciNotifyCapSize)
	copy(data, createValidCapabilityData(types.PciCapNotifyCfg, 2, 0, 0x3000, 0x1000))
	data[2] = types.VirtioPciNotifyCapSize
	binary.LittleEndian.PutUint32(data[16:20], multiplier)
	return data
}

func TestNewCapabilityReader(t *testing.T) {
	data := createValidCapabilityData(types.PciCapCommonCfg, 4, 0, 0x0, 0x38)

	reader, err := NewCapabilityReader(data)
	require.NoError(t, err)

	assert.Equal(t, types.PciCapCommonCfg, reader.CapabilityType())
	assert.Equal(t, uint8(4), reader.Bar())
	assert.Equal(t, uint8(0), reader.StructureID())
	assert.Equal(t, uint32(0x0), reader.Offset())
	assert.Equal(t, uint32(0x38), reader.Length())

	_, err = reader.NotifyOffMultiplier()
	assert.ErrorIs(t, err, ErrNotNotifyCap)
}

func TestNewCapabilityReader_NotifyMultiplier(t *testing.T) {
	reader, err := NewCapabilityReader(createValidNotifyCapabilityData(4))
	require.NoError(t, err)

	multiplier, err := reader.NotifyOffMultiplier()
	require.NoError(t, err)
	assert.Equal(t, uint32(4), multiplier)
}

func TestNewCapabilityReader_MalformedLength(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]byte) []byte
	}{
		{
			"generic cap declares fewer than 16 bytes",
			func(data []byte) []byte {
				data[2] = 15
				return data
			},
		},
		{
			"notify cap declares fewer than 20 bytes",
			func(data []byte) []byte {
				data[3] = uint8(types.PciCapNotifyCfg)
				data[2] = types.VirtioPciCapSize
				return data
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.mutate(createValidCapabilityData(types.PciCapCommonCfg, 0, 0, 0, 0))
			_, err := NewCapabilityReader(data)
			assert.ErrorIs(t, err, ErrCapTooShort)
		})
	}
}

func TestNewCapabilityReader_TooSmall(t *testing.T) {
	_, err := NewCapabilityReader(make([]byte, 15))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "data too small")
}

func TestDecodeCapability_UnknownTypePreserved(t *testing.T) {
	data := createValidCapabilityData(types.PciCapabilityType(200), 1, 0, 0, 0)

	cap, err := DecodeCapability(data)
	require.NoError(t, err)
	assert.Equal(t, uint8(200), cap.CfgType)
	assert.False(t, types.PciCapabilityType(cap.CfgType).IsKnown())

	out := EncodeCapability(cap)
	assert.Equal(t, data, out[:])
}

// createValidConfigSpace builds a configuration space image with a
// capability list: MSI-X at 0x40, then three virtio vendor capabilities.
func createValidConfigSpace(t *testing.T) []byte {
	t.Helper()
	cfg := make([]byte, types.PciConfigSpaceSize)

	binary.LittleEndian.PutUint16(cfg[0:2], types.PciVendorID)
	binary.LittleEndian.PutUint16(cfg[2:4], ModernDeviceID(types.DeviceTypeNet))
	binary.LittleEndian.PutUint16(cfg[types.PciStatusOffset:], types.PciStatusCapList)
	cfg[types.PciCapPointerOffset] = 0x40

	// Non-virtio capability (MSI-X, ID 0x11) that the walk must skip.
	cfg[0x40] = 0x11
	cfg[0x41] = 0x50

	copy(cfg[0x50:], createValidCapabilityData(types.PciCapCommonCfg, 4, 0, 0x0000, 0x38))
	cfg[0x51] = 0x60

	notify := createValidNotifyCapabilityData(4)
	notify[1] = 0x78
	copy(cfg[0x60:], notify)

	isr := createValidCapabilityData(types.PciCapIsrCfg, 4, 0, 0x2000, 1)
	isr[1] = 0x00
	copy(cfg[0x78:], isr)

	return cfg
}

func TestWalkVendorCapabilities(t *testing.T) {
	caps, err := WalkVendorCapabilities(createValidConfigSpace(t))
	require.NoError(t, err)
	require.Len(t, caps, 3)

	assert.Equal(t, types.PciCapCommonCfg, caps[0].CapabilityType())
	assert.Equal(t, types.PciCapNotifyCfg, caps[1].CapabilityType())
	assert.Equal(t, types.PciCapIsrCfg, caps[2].CapabilityType())

	multiplier, err := caps[1].NotifyOffMultiplier()
	require.NoError(t, err)
	assert.Equal(t, uint32(4), multiplier)

	found := FindCapability(caps, types.PciCapCommonCfg)
	require.NotNil(t, found)
	assert.Equal(t, uint8(4), found.Bar())

	assert.Nil(t, FindCapability(caps, types.PciCapDeviceCfg))
}

func TestWalkVendorCapabilities_NoCapList(t *testing.T) {
	cfg := make([]byte, types.PciConfigSpaceSize)

	_, err := WalkVendorCapabilities(cfg)
	assert.ErrorIs(t, err, ErrNoCapList)
}

func TestWalkVendorCapabilities_Loop(t *testing.T) {
	cfg := make([]byte, types.PciConfigSpaceSize)
	binary.LittleEndian.PutUint16(cfg[types.PciStatusOffset:], types.PciStatusCapList)
	cfg[types.PciCapPointerOffset] = 0x40

	// 0x40 -> 0x44 -> 0x40 never terminates.
	cfg[0x40] = 0x11
	cfg[0x41] = 0x44
	cfg[0x44] = 0x11
	cfg[0x45] = 0x40

	_, err := WalkVendorCapabilities(cfg)
	assert.ErrorIs(t, err, ErrCapListLoop)
}

func TestWalkVendorCapabilities_TooSmall(t *testing.T) {
	_, err := WalkVendorCapabilities(make([]byte, 64))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "data too small")
}

func TestModernDeviceID(t *testing.T) {
	assert.Equal(t, uint16(0x1041), ModernDeviceID(types.DeviceTypeNet))
	assert.Equal(t, uint16(0x1042), ModernDeviceID(types.DeviceTypeBlock))
	assert.Equal(t, uint16(0x1045), ModernDeviceID(types.DeviceTypeBalloon))
}

func TestIsTransitionalDeviceID(t *testing.T) {
	assert.True(t, IsTransitionalDeviceID(0x1000))
	assert.True(t, IsTransitionalDeviceID(0x1009))
	assert.False(t, IsTransitionalDeviceID(0x1006))
	assert.False(t, IsTransitionalDeviceID(0x1041))
}

func createValidCommonConfigData() []byte {
	data := make([]byte, types.VirtioPciCommonCfgSize)
	binary.LittleEndian.PutUint32(data[types.PciCommonCfgDeviceFeatureSelect:], 1)
	binary.LittleEndian.PutUint32(data[types.PciCommonCfgDeviceFeature:], 0x00000001) // VERSION_1 in word 1
	binary.LittleEndian.PutUint16(data[types.PciCommonCfgNumQueues:], 3)
	data[types.PciCommonCfgDeviceStatus] = uint8(types.DeviceStatusAcknowledge | types.DeviceStatusDriver)
	data[types.PciCommonCfgConfigGeneration] = 7
	binary.LittleEndian.PutUint16(data[types.PciCommonCfgQueueSelect:], 1)
	binary.LittleEndian.PutUint16(data[types.PciCommonCfgQueueSize:], 256)
	binary.LittleEndian.PutUint16(data[types.PciCommonCfgQueueEnable:], 1)
	binary.LittleEndian.PutUint16(data[types.PciCommonCfgQueueNotifyOff:], 2)
	binary.LittleEndian.PutUint32(data[types.PciCommonCfgQueueDescLo:], 0x9000_0000)
	binary.LittleEndian.PutUint32(data[types.PciCommonCfgQueueDescHi:], 0x1)
	binary.LittleEndian.PutUint32(data[types.PciCommonCfgQueueAvailLo:], 0x9000_1000)
	binary.LittleEndian.PutUint32(data[types.PciCommonCfgQueueUsedLo:], 0x9000_2000)
	return data
}

func TestNewCommonConfigReader(t *testing.T) {
	reader, err := NewCommonConfigReader(createValidCommonConfigData())
	require.NoError(t, err)

	assert.Equal(t, uint32(1), reader.DeviceFeatureSelect())
	assert.Equal(t, uint32(1), reader.DeviceFeature())
	assert.Equal(t, uint16(3), reader.NumQueues())
	assert.Equal(t, types.DeviceStatusAcknowledge|types.DeviceStatusDriver, reader.DeviceStatus())
	assert.Equal(t, uint8(7), reader.ConfigGeneration())
	assert.Equal(t, uint16(1), reader.QueueSelect())
	assert.Equal(t, uint16(256), reader.QueueSize())
	assert.Equal(t, uint16(1), reader.QueueEnable())
	assert.Equal(t, uint16(2), reader.QueueNotifyOff())
	assert.Equal(t, uint64(0x1_9000_0000), reader.QueueDesc())
	assert.Equal(t, uint64(0x9000_1000), reader.QueueAvail())
	assert.Equal(t, uint64(0x9000_2000), reader.QueueUsed())
}

func TestNewCommonConfigReader_TooSmall(t *testing.T) {
	_, err := NewCommonConfigReader(make([]byte, 0x37))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "data too small")
}
