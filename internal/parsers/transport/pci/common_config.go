package pci

import (
	"encoding/binary"
	"fmt"

	"github.com/deploymenttheory/go-virtio/internal/interfaces"
	"github.com/deploymenttheory/go-virtio/internal/types"
)

// commonConfigReader implements the CommonConfigReader interface over a
// common configuration structure image. The image is a snapshot; the
// generation counter tells the caller whether a multi-field read was
// consistent, this layer just decodes the bytes.
type commonConfigReader struct {
	data []byte
}

// NewCommonConfigReader creates a CommonConfigReader over the raw bytes of
// a common configuration structure
func NewCommonConfigReader(data []byte) (interfaces.CommonConfigReader, error) {
	if len(data) < types.VirtioPciCommonCfgSize {
		return nil, fmt.Errorf("data too small for common configuration structure: %d bytes, need %d", len(data), types.VirtioPciCommonCfgSize)
	}
	return &commonConfigReader{data: data}, nil
}

func (cr *commonConfigReader) u16(off int) uint16 {
	return binary.LittleEndian.Uint16(cr.data[off:])
}

func (cr *commonConfigReader) u32(off int) uint32 {
	return binary.LittleEndian.Uint32(cr.data[off:])
}

// DeviceFeatureSelect reads the device feature window select register
func (cr *commonConfigReader) DeviceFeatureSelect() uint32 {
	return cr.u32(types.PciCommonCfgDeviceFeatureSelect)
}

// DeviceFeature reads the device feature window value register
func (cr *commonConfigReader) DeviceFeature() uint32 {
	return cr.u32(types.PciCommonCfgDeviceFeature)
}

// DriverFeatureSelect reads the driver feature window select register
func (cr *commonConfigReader) DriverFeatureSelect() uint32 {
	return cr.u32(types.PciCommonCfgDriverFeatureSelect)
}

// DriverFeature reads the driver feature window value register
func (cr *commonConfigReader) DriverFeature() uint32 {
	return cr.u32(types.PciCommonCfgDriverFeature)
}

// NumQueues reads the number of virtqueues
func (cr *commonConfigReader) NumQueues() uint16 {
	return cr.u16(types.PciCommonCfgNumQueues)
}

// DeviceStatus reads the device status byte
func (cr *commonConfigReader) DeviceStatus() types.DeviceStatus {
	return types.DeviceStatus(cr.data[types.PciCommonCfgDeviceStatus])
}

// ConfigGeneration reads the configuration atomicity counter
func (cr *commonConfigReader) ConfigGeneration() uint8 {
	return cr.data[types.PciCommonCfgConfigGeneration]
}

// QueueSelect reads the queue select register
func (cr *commonConfigReader) QueueSelect() uint16 {
	return cr.u16(types.PciCommonCfgQueueSelect)
}

// QueueSize reads the selected queue's size
func (cr *commonConfigReader) QueueSize() uint16 {
	return cr.u16(types.PciCommonCfgQueueSize)
}

// QueueEnable reads the selected queue's enable register
func (cr *commonConfigReader) QueueEnable() uint16 {
	return cr.u16(types.PciCommonCfgQueueEnable)
}

// QueueNotifyOff reads the selected queue's notification offset
func (cr *commonConfigReader) QueueNotifyOff() uint16 {
	return cr.u16(types.PciCommonCfgQueueNotifyOff)
}

// QueueDesc reads the selected queue's descriptor table address from its
// lo/hi register pair
func (cr *commonConfigReader) QueueDesc() uint64 {
	return uint64(cr.u32(types.PciCommonCfgQueueDescLo)) |
		uint64(cr.u32(types.PciCommonCfgQueueDescHi))<<32
}

// QueueAvail reads the selected queue's available ring address
func (cr *commonConfigReader) QueueAvail() uint64 {
	return uint64(cr.u32(types.PciCommonCfgQueueAvailLo)) |
		uint64(cr.u32(types.PciCommonCfgQueueAvailHi))<<32
}

// QueueUsed reads the selected queue's used ring address
func (cr *commonConfigReader) QueueUsed() uint64 {
	return uint64(cr.u32(types.PciCommonCfgQueueUsedLo)) |
		uint64(cr.u32(types.PciCommonCfgQueueUsedHi))<<32
}
