package virtqueue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSplitLayout_RejectsInvalidQueueSizes(t *testing.T) {
	tests := []struct {
		name      string
		queueSize uint16
	}{
		{"zero", 0},
		{"three", 3},
		{"six", 6},
		{"hundred", 100},
		{"one over max", 32769},
		{"max uint16", 65535},
		{"power of two above max", 65534},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout, err := NewSplitLayout(tt.queueSize, false)
			assert.Nil(t, layout)
			assert.ErrorIs(t, err, ErrInvalidQueueSize)
		})
	}
}

func TestNewSplitLayout_AllPowersOfTwo(t *testing.T) {
	for qs := uint32(1); qs <= 32768; qs *= 2 {
		queueSize := uint16(qs)
		layout, err := NewSplitLayout(queueSize, false)
		require.NoError(t, err, "queue size %d", queueSize)

		// Region sizes per the fixed element widths.
		assert.Equal(t, uint64(0), layout.DescTableOffset)
		assert.Equal(t, uint64(qs)*16, layout.DescTableSize)
		assert.Equal(t, uint64(4+qs*2), layout.AvailRingSize)
		assert.Equal(t, uint64(4+qs*8), layout.UsedRingSize)

		// The available ring starts right after the descriptor table.
		assert.Equal(t, layout.DescTableSize, layout.AvailRingOffset)

		// Mandated alignments.
		assert.Zero(t, layout.DescTableOffset%16, "queue size %d desc align", queueSize)
		assert.Zero(t, layout.AvailRingOffset%2, "queue size %d avail align", queueSize)
		assert.Zero(t, layout.UsedRingOffset%4, "queue size %d used align", queueSize)
		assert.Zero(t, layout.UsedRingOffset%4096, "queue size %d used boundary", queueSize)

		// No overlap: the used ring begins at or after the end of the
		// available ring.
		assert.GreaterOrEqual(t, layout.UsedRingOffset, layout.AvailRingOffset+layout.AvailRingSize)
		assert.Equal(t, layout.UsedRingOffset+layout.UsedRingSize, layout.TotalSize)
	}
}

func TestNewSplitLayout_EventIdxExtendsBothRings(t *testing.T) {
	without, err := NewSplitLayout(256, false)
	require.NoError(t, err)

	with, err := NewSplitLayout(256, true)
	require.NoError(t, err)

	assert.Equal(t, without.AvailRingSize+2, with.AvailRingSize)
	assert.Equal(t, without.UsedRingSize+2, with.UsedRingSize)
}

func TestNewSplitLayout_ReferenceOffsets(t *testing.T) {
	// Hand-computed placement for a 256-entry queue: descriptor table
	// 4096 bytes, available ring 516 bytes, used ring padded to the next
	// 4096 boundary at 8192.
	layout, err := NewSplitLayout(256, false)
	require.NoError(t, err)

	assert.Equal(t, uint64(4096), layout.DescTableSize)
	assert.Equal(t, uint64(4096), layout.AvailRingOffset)
	assert.Equal(t, uint64(516), layout.AvailRingSize)
	assert.Equal(t, uint64(8192), layout.UsedRingOffset)
	assert.Equal(t, uint64(2052), layout.UsedRingSize)
	assert.Equal(t, uint64(10244), layout.TotalSize)
}

func TestRingSlot_WrapsModuloQueueSize(t *testing.T) {
	layout, err := NewSplitLayout(8, false)
	require.NoError(t, err)

	tests := []struct {
		idx  uint16
		slot uint16
	}{
		{0, 0},
		{7, 7},
		{8, 0},
		{9, 1},
		{65535, 7},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.slot, layout.RingSlot(tt.idx), "idx %d", tt.idx)
	}
}
