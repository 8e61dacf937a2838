package interfaces

import (
	"github.com/deploymenttheory/go-virtio/internal/types"
)

// DeviceStatusReader provides methods for inspecting a device status byte
type DeviceStatusReader interface {
	// Status returns the raw status value
	Status() types.DeviceStatus

	// IsReset checks whether the status is the post-reset value zero
	IsReset() bool

	// HasAcknowledge checks whether the guest has recognized the device
	HasAcknowledge() bool

	// HasDriver checks whether the guest knows how to drive the device
	HasDriver() bool

	// HasFeaturesOK checks whether feature negotiation is complete
	HasFeaturesOK() bool

	// HasDriverOK checks whether the driver is ready to drive the device
	HasDriverOK() bool

	// HasFailed checks whether the guest has given up on the device
	HasFailed() bool

	// NeedsReset checks whether the device has hit an unrecoverable error
	NeedsReset() bool
}

// FeatureWindow models the select-then-access protocol used to expose a
// wide feature bitmap through a 32-bit register pair. A word read or write
// is only valid immediately after selecting that word's index.
//
// A FeatureWindow is not safe for unsynchronized concurrent use: the
// underlying select/value register pair may be memory-mapped hardware
// outside any locking domain this layer controls, so serialization is the
// caller's obligation.
type FeatureWindow interface {
	// Select chooses which 32-bit word of the bitmap the value register
	// exposes
	Select(wordIndex uint32) error

	// Word reads the currently selected word
	Word() (uint32, error)

	// SetWord writes the currently selected word
	SetWord(value uint32) error

	// Words returns the number of addressable words
	Words() uint32
}
