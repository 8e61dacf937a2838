package negotiation

import (
	"errors"
	"fmt"

	"github.com/deploymenttheory/go-virtio/internal/interfaces"
	"github.com/deploymenttheory/go-virtio/internal/types"
)

// ErrInvalidTransition reports a device status write that violates the
// initialization sequence. The correct response is to restart negotiation
// from reset, not to fix a caller bug, which is why this is distinct from
// the access errors elsewhere in this module.
var ErrInvalidTransition = errors.New("invalid device status transition")

// statusReader implements the DeviceStatusReader interface
type statusReader struct {
	status types.DeviceStatus
}

// NewDeviceStatusReader creates a DeviceStatusReader over a raw status
// byte. Every byte value is decodable; validation applies to transitions,
// not to single values.
func NewDeviceStatusReader(status types.DeviceStatus) interfaces.DeviceStatusReader {
	return &statusReader{status: status}
}

// Status returns the raw status value
func (sr *statusReader) Status() types.DeviceStatus {
	return sr.status
}

// IsReset checks whether the status is the post-reset value zero
func (sr *statusReader) IsReset() bool {
	return sr.status.IsReset()
}

// HasAcknowledge checks whether the guest has recognized the device
func (sr *statusReader) HasAcknowledge() bool {
	return sr.status.Has(types.DeviceStatusAcknowledge)
}

// HasDriver checks whether the guest knows how to drive the device
func (sr *statusReader) HasDriver() bool {
	return sr.status.Has(types.DeviceStatusDriver)
}

// HasFeaturesOK checks whether feature negotiation is complete
func (sr *statusReader) HasFeaturesOK() bool {
	return sr.status.Has(types.DeviceStatusFeaturesOK)
}

// HasDriverOK checks whether the driver is ready to drive the device
func (sr *statusReader) HasDriverOK() bool {
	return sr.status.Has(types.DeviceStatusDriverOK)
}

// HasFailed checks whether the guest has given up on the device
func (sr *statusReader) HasFailed() bool {
	return sr.status.Has(types.DeviceStatusFailed)
}

// NeedsReset checks whether the device has hit an unrecoverable error
func (sr *statusReader) NeedsReset() bool {
	return sr.status.Has(types.DeviceStatusDeviceNeedsReset)
}

// definedStatusBits is the set of status bits the specification assigns.
const definedStatusBits = types.DeviceStatusAcknowledge |
	types.DeviceStatusDriver |
	types.DeviceStatusDriverOK |
	types.DeviceStatusFeaturesOK |
	types.DeviceStatusDeviceNeedsReset |
	types.DeviceStatusFailed

// fatalStatusBits force the driver back to reset once observed.
const fatalStatusBits = types.DeviceStatusFailed | types.DeviceStatusDeviceNeedsReset

// ValidateTransition checks a device status change against the
// initialization sequence of section 3.1: bits are added monotonically in
// the order ACKNOWLEDGE, DRIVER, FEATURES_OK, DRIVER_OK, and the only way
// to clear a bit is writing zero to restart from reset. FAILED may be added
// from any non-reset state and DEVICE_NEEDS_RESET may be set by the device
// at any point; after either, the only way forward is a reset.
//
// FEATURES_OK requires DRIVER to already be set (feature negotiation
// happens between the two writes), and DRIVER_OK requires FEATURES_OK to
// already be set and re-read as accepted by the device. A violation is
// reported wrapped in ErrInvalidTransition and never silently corrected.
func ValidateTransition(old, new types.DeviceStatus) error {
	// Writing zero resets the device and restarts negotiation.
	if new == types.DeviceStatusReset {
		return nil
	}

	if removed := old &^ new; removed != 0 {
		return fmt.Errorf("%w: bits %s cleared without reset", ErrInvalidTransition, removed)
	}

	added := new &^ old
	if added == 0 {
		return nil
	}

	if undefined := added &^ definedStatusBits; undefined != 0 {
		return fmt.Errorf("%w: undefined status bits 0x%02x", ErrInvalidTransition, uint8(undefined))
	}

	// After FAILED or DEVICE_NEEDS_RESET the driver must restart from
	// reset; the only bits that may still appear are the fatal ones.
	if old&fatalStatusBits != 0 && added&^fatalStatusBits != 0 {
		return fmt.Errorf("%w: progress after %s without reset", ErrInvalidTransition, old&fatalStatusBits)
	}

	if added.Has(types.DeviceStatusFailed) && old == types.DeviceStatusReset {
		return fmt.Errorf("%w: FAILED set from reset", ErrInvalidTransition)
	}

	if added.Has(types.DeviceStatusDriver) && !new.Has(types.DeviceStatusAcknowledge) {
		return fmt.Errorf("%w: DRIVER without ACKNOWLEDGE", ErrInvalidTransition)
	}

	if added.Has(types.DeviceStatusFeaturesOK) && !old.Has(types.DeviceStatusDriver) {
		return fmt.Errorf("%w: FEATURES_OK before DRIVER", ErrInvalidTransition)
	}

	if added.Has(types.DeviceStatusDriverOK) && !old.Has(types.DeviceStatusFeaturesOK) {
		return fmt.Errorf("%w: DRIVER_OK before FEATURES_OK", ErrInvalidTransition)
	}

	return nil
}
