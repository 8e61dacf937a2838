package mmio

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-virtio/internal/types"
)

func createValidRegisterBlock() []byte {
	data := make([]byte, types.MmioRegisterBlockSize)
	binary.LittleEndian.PutUint32(data[types.MmioMagicValueOff:], types.MmioMagicValue)
	binary.LittleEndian.PutUint32(data[types.MmioVersionOff:], types.MmioVersion)
	binary.LittleEndian.PutUint32(data[types.MmioDeviceIDOff:], uint32(types.DeviceTypeNet))
	binary.LittleEndian.PutUint32(data[types.MmioVendorIDOff:], 0x554d4551)
	binary.LittleEndian.PutUint32(data[types.MmioStatusOff:], uint32(types.DeviceStatusAcknowledge))
	binary.LittleEndian.PutUint32(data[types.MmioInterruptStatusOff:], types.MmioInterruptVring)
	return data
}

func TestNewRegisterReader(t *testing.T) {
	reader, err := NewRegisterReader(createValidRegisterBlock())
	require.NoError(t, err)

	assert.Equal(t, uint32(types.MmioMagicValue), reader.Magic())
	assert.Equal(t, uint32(2), reader.Version())
	assert.Equal(t, types.DeviceTypeNet, reader.DeviceID())
	assert.Equal(t, uint32(0x554d4551), reader.VendorID())
	assert.Equal(t, types.DeviceStatusAcknowledge, reader.Status())
	assert.Equal(t, uint32(types.MmioInterruptVring), reader.InterruptStatus())
	assert.False(t, reader.IsLegacy())
}

func TestNewRegisterReader_BadMagic(t *testing.T) {
	data := createValidRegisterBlock()
	binary.LittleEndian.PutUint32(data[types.MmioMagicValueOff:], 0x12345678)

	_, err := NewRegisterReader(data)
	assert.ErrorIs(t, err, ErrBadMagic)
}

func TestNewRegisterReader_TooSmall(t *testing.T) {
	_, err := NewRegisterReader(make([]byte, 0xff))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "data too small")
}

func TestNewRegisterReader_Legacy(t *testing.T) {
	data := createValidRegisterBlock()
	binary.LittleEndian.PutUint32(data[types.MmioVersionOff:], types.MmioVersionLegacy)

	reader, err := NewRegisterReader(data)
	require.NoError(t, err)
	assert.True(t, reader.IsLegacy())
}

func TestMagicValueIsVirt(t *testing.T) {
	// The magic value is the string "virt" read as a little-endian le32.
	var raw [4]byte
	binary.LittleEndian.PutUint32(raw[:], types.MmioMagicValue)
	assert.Equal(t, "virt", string(raw[:]))
}

func TestValidateVersion(t *testing.T) {
	assert.NoError(t, ValidateVersion(1))
	assert.NoError(t, ValidateVersion(2))
	assert.ErrorIs(t, ValidateVersion(0), ErrUnknownVersion)
	assert.ErrorIs(t, ValidateVersion(3), ErrUnknownVersion)
}
