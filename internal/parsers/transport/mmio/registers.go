package mmio

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/deploymenttheory/go-virtio/internal/interfaces"
	"github.com/deploymenttheory/go-virtio/internal/types"
)

var (
	// ErrBadMagic reports a register block whose magic value is not the
	// ASCII string "virt". Whatever is mapped there, it is not a virtio
	// MMIO device.
	ErrBadMagic = errors.New("bad MMIO magic value")

	// ErrUnknownVersion reports a device version this package does not
	// decode. Version 1 is the legacy interface; anything above 2 is from
	// a future revision.
	ErrUnknownVersion = errors.New("unknown MMIO device version")
)

// registerReader implements the MmioRegisterReader interface over an MMIO
// register block image.
type registerReader struct {
	data []byte
}

// NewRegisterReader creates an MmioRegisterReader over the raw bytes of an
// MMIO register block. The magic value is validated at construction; the
// version is reported but not rejected, so callers can detect legacy
// devices and bail out with context.
func NewRegisterReader(data []byte) (interfaces.MmioRegisterReader, error) {
	if len(data) < types.MmioRegisterBlockSize {
		return nil, fmt.Errorf("data too small for MMIO register block: %d bytes, need %d", len(data), types.MmioRegisterBlockSize)
	}

	reader := &registerReader{data: data}
	if magic := reader.Magic(); magic != types.MmioMagicValue {
		return nil, fmt.Errorf("%w: 0x%08x", ErrBadMagic, magic)
	}
	return reader, nil
}

func (rr *registerReader) u32(off int) uint32 {
	return binary.LittleEndian.Uint32(rr.data[off:])
}

// Magic reads the magic value register
func (rr *registerReader) Magic() uint32 {
	return rr.u32(types.MmioMagicValueOff)
}

// Version reads the device version register
func (rr *registerReader) Version() uint32 {
	return rr.u32(types.MmioVersionOff)
}

// DeviceID reads the device type register. Zero is a placeholder device
// the caller should ignore, not an error.
func (rr *registerReader) DeviceID() types.DeviceType {
	return types.DeviceType(rr.u32(types.MmioDeviceIDOff))
}

// VendorID reads the vendor ID register
func (rr *registerReader) VendorID() uint32 {
	return rr.u32(types.MmioVendorIDOff)
}

// Status reads the device status register. The register is 32 bits wide
// but carries the 8-bit status value.
func (rr *registerReader) Status() types.DeviceStatus {
	return types.DeviceStatus(rr.u32(types.MmioStatusOff))
}

// InterruptStatus reads the interrupt status register
func (rr *registerReader) InterruptStatus() uint32 {
	return rr.u32(types.MmioInterruptStatusOff)
}

// IsLegacy checks whether the register block uses the legacy interface
func (rr *registerReader) IsLegacy() bool {
	return rr.Version() == types.MmioVersionLegacy
}

// ValidateVersion checks that a register block's version is one this
// package decodes.
func ValidateVersion(version uint32) error {
	if version != types.MmioVersion && version != types.MmioVersionLegacy {
		return fmt.Errorf("%w: %d", ErrUnknownVersion, version)
	}
	return nil
}
