package negotiation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-virtio/internal/types"
)

func TestNewDeviceStatusReader(t *testing.T) {
	status := types.DeviceStatusAcknowledge | types.DeviceStatusDriver | types.DeviceStatusFeaturesOK

	reader := NewDeviceStatusReader(status)

	assert.Equal(t, status, reader.Status())
	assert.False(t, reader.IsReset())
	assert.True(t, reader.HasAcknowledge())
	assert.True(t, reader.HasDriver())
	assert.True(t, reader.HasFeaturesOK())
	assert.False(t, reader.HasDriverOK())
	assert.False(t, reader.HasFailed())
	assert.False(t, reader.NeedsReset())
}

func TestNewDeviceStatusReader_Reset(t *testing.T) {
	reader := NewDeviceStatusReader(types.DeviceStatusReset)
	assert.True(t, reader.IsReset())
	assert.False(t, reader.HasAcknowledge())
}

func TestValidateTransition(t *testing.T) {
	const (
		ack    = types.DeviceStatusAcknowledge
		drv    = types.DeviceStatusDriver
		feat   = types.DeviceStatusFeaturesOK
		ok     = types.DeviceStatusDriverOK
		failed = types.DeviceStatusFailed
		reset  = types.DeviceStatusDeviceNeedsReset
	)

	tests := []struct {
		name    string
		old     types.DeviceStatus
		new     types.DeviceStatus
		wantErr bool
	}{
		// The normal initialization sequence.
		{"reset to acknowledge", 0, ack, false},
		{"acknowledge to driver", ack, ack | drv, false},
		{"driver to features ok", ack | drv, ack | drv | feat, false},
		{"features ok to driver ok", ack | drv | feat, ack | drv | feat | ok, false},

		// Writing zero restarts negotiation from anywhere.
		{"reset from driver ok", ack | drv | feat | ok, 0, false},
		{"reset from failed", failed, 0, false},

		// No-ops are fine.
		{"same status", ack | drv, ack | drv, false},

		// Skipping a step.
		{"driver without acknowledge", 0, drv, true},
		{"features ok before driver", ack, ack | feat, true},
		{"driver ok before features ok", ack | drv, ack | drv | ok, true},
		{"acknowledge and driver at once", 0, ack | drv, false},

		// Clearing bits without a reset.
		{"clear driver", ack | drv, ack, true},
		{"clear features ok keeping driver ok", ack | drv | feat | ok, ack | drv | ok, true},

		// Failure paths.
		{"failed from acknowledge", ack, ack | failed, false},
		{"failed from reset", 0, failed, true},
		{"progress after failed", ack | failed, ack | drv | failed, true},
		{"device needs reset appears", ack | drv, ack | drv | reset, false},
		{"progress after needs reset", ack | drv | reset, ack | drv | feat | reset, true},
		{"failed after needs reset", ack | reset, ack | reset | failed, false},

		// Undefined bits.
		{"undefined bit 0x20", ack, ack | 0x20, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTransition(tt.old, tt.new)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewFeatureWindow(t *testing.T) {
	_, err := NewFeatureWindow([]uint32{1})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "narrower than 64 bits")

	window, err := NewFeatureWindow([]uint32{0x0000_0001, 0x0000_0100})
	require.NoError(t, err)
	assert.Equal(t, uint32(2), window.Words())
}

func TestFeatureWindow_SelectThenAccess(t *testing.T) {
	window := NewFeatureWindowFor(types.FeatureVersion1 | types.Feature(1))

	// VERSION_1 is bit 32: word 1, bit 0.
	require.NoError(t, window.Select(1))
	word, err := window.Word()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), word)

	require.NoError(t, window.Select(0))
	word, err = window.Word()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), word)
}

func TestFeatureWindow_AccessWithoutSelect(t *testing.T) {
	window := NewFeatureWindowFor(0)

	_, err := window.Word()
	assert.ErrorIs(t, err, ErrNoSelection)
	assert.ErrorIs(t, window.SetWord(0), ErrNoSelection)
}

func TestFeatureWindow_OutOfRangeSelectInvalidates(t *testing.T) {
	window := NewFeatureWindowFor(types.FeatureVersion1)

	require.NoError(t, window.Select(0))

	err := window.Select(2)
	assert.ErrorIs(t, err, ErrWordOutOfRange)

	// The failed select tore down the previous selection.
	_, err = window.Word()
	assert.ErrorIs(t, err, ErrNoSelection)
}

func TestFeatureWindow_SetWord(t *testing.T) {
	words := []uint32{0, 0}
	window, err := NewFeatureWindow(words)
	require.NoError(t, err)

	require.NoError(t, window.Select(1))
	require.NoError(t, window.SetWord(0x1))

	assert.Equal(t, types.FeatureVersion1, types.FeatureFromWords(words))
}

func TestWordForBit(t *testing.T) {
	tests := []struct {
		bit  uint32
		word uint32
		mask uint32
	}{
		{0, 0, 1},
		{28, 0, 1 << 28},
		{31, 0, 1 << 31},
		{32, 1, 1},
		{34, 1, 1 << 2},
		{40, 1, 1 << 8},
	}

	for _, tt := range tests {
		word, mask := WordForBit(tt.bit)
		assert.Equal(t, tt.word, word, "bit %d", tt.bit)
		assert.Equal(t, tt.mask, mask, "bit %d", tt.bit)
	}
}

func TestWordBits(t *testing.T) {
	first, last := WordBits(0)
	assert.Equal(t, uint32(0), first)
	assert.Equal(t, uint32(31), last)

	first, last = WordBits(1)
	assert.Equal(t, uint32(32), first)
	assert.Equal(t, uint32(63), last)
}

func TestNegotiate(t *testing.T) {
	offered := types.FeatureVersion1 | types.FeatureEventIdx | types.FeatureIndirectDesc
	requested := types.FeatureVersion1 | types.FeatureEventIdx | types.FeatureRingPacked

	negotiated, err := Negotiate(offered, requested)
	require.NoError(t, err)
	assert.Equal(t, types.FeatureVersion1|types.FeatureEventIdx, negotiated)
	assert.False(t, negotiated.Has(types.FeatureRingPacked))
	assert.False(t, negotiated.Has(types.FeatureIndirectDesc))
}

func TestNegotiate_Version1Missing(t *testing.T) {
	offered := types.FeatureVersion1 | types.FeatureEventIdx
	requested := types.FeatureEventIdx

	negotiated, err := Negotiate(offered, requested)
	assert.ErrorIs(t, err, ErrVersion1Required)

	// The intersection is still reported for diagnostics.
	assert.Equal(t, types.FeatureEventIdx, negotiated)
}

func TestValidateAccepted(t *testing.T) {
	offered := types.FeatureVersion1 | types.FeatureEventIdx

	assert.NoError(t, ValidateAccepted(offered, types.FeatureVersion1))
	assert.NoError(t, ValidateAccepted(offered, offered))
	assert.ErrorIs(t, ValidateAccepted(offered, offered|types.FeatureRingPacked), ErrNotOffered)
}
