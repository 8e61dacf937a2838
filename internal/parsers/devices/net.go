package devices

import (
	"fmt"

	"github.com/deploymenttheory/go-virtio/internal/interfaces"
	"github.com/deploymenttheory/go-virtio/internal/types"
)

// netConfigReader implements the NetConfigReader interface
type netConfigReader struct {
	config types.NetConfigT
}

// NewNetConfigReader creates a NetConfigReader over the raw bytes of a
// network device configuration space. Which fields are meaningful depends
// on the negotiated features; this layer decodes them all and leaves
// validity to the caller.
func NewNetConfigReader(data []byte) (interfaces.NetConfigReader, error) {
	config, err := DecodeNetConfig(data)
	if err != nil {
		return nil, err
	}
	return &netConfigReader{config: config}, nil
}

// Mac returns the device's MAC address
func (nr *netConfigReader) Mac() [6]byte {
	return nr.config.Mac
}

// Status returns the link status bits
func (nr *netConfigReader) Status() uint16 {
	return nr.config.Status.Uint16()
}

// IsLinkUp checks the link status bit
func (nr *netConfigReader) IsLinkUp() bool {
	return nr.Status()&types.NetSLinkUp != 0
}

// NeedsAnnounce checks the announcement bit
func (nr *netConfigReader) NeedsAnnounce() bool {
	return nr.Status()&types.NetSAnnounce != 0
}

// MaxVirtqueuePairs returns the maximum number of virtqueue pairs
func (nr *netConfigReader) MaxVirtqueuePairs() uint16 {
	return nr.config.MaxVirtqueuePairs.Uint16()
}

// Mtu returns the initial MTU advice
func (nr *netConfigReader) Mtu() uint16 {
	return nr.config.Mtu.Uint16()
}

// Speed returns the link speed in Mbps
func (nr *netConfigReader) Speed() uint32 {
	return nr.config.Speed.Uint32()
}

// Duplex returns the duplex mode
func (nr *netConfigReader) Duplex() uint8 {
	return nr.config.Duplex
}

// DecodeNetConfig parses the network device configuration layout.
// Reference: section 5.1.4
func DecodeNetConfig(data []byte) (types.NetConfigT, error) {
	if len(data) < types.NetConfigSize {
		return types.NetConfigT{}, fmt.Errorf("data too small for network device configuration: %d bytes", len(data))
	}
	var config types.NetConfigT
	copy(config.Mac[:], data[0:6])
	copy(config.Status[:], data[6:8])
	copy(config.MaxVirtqueuePairs[:], data[8:10])
	copy(config.Mtu[:], data[10:12])
	copy(config.Speed[:], data[12:16])
	config.Duplex = data[16]
	return config, nil
}

// EncodeNetConfig serializes the network device configuration layout.
func EncodeNetConfig(config types.NetConfigT) [types.NetConfigSize]byte {
	var out [types.NetConfigSize]byte
	copy(out[0:6], config.Mac[:])
	copy(out[6:8], config.Status[:])
	copy(out[8:10], config.MaxVirtqueuePairs[:])
	copy(out[10:12], config.Mtu[:])
	copy(out[12:16], config.Speed[:])
	out[16] = config.Duplex
	return out
}
