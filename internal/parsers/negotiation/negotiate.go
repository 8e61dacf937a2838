package negotiation

import (
	"errors"
	"fmt"

	"github.com/deploymenttheory/go-virtio/internal/types"
)

var (
	// ErrVersion1Required reports a negotiation whose accepted set lacks
	// VIRTIO_F_VERSION_1. The caller's response is to renegotiate or give
	// up on the device, not to fix a bug.
	ErrVersion1Required = errors.New("negotiated features lack VIRTIO_F_VERSION_1")

	// ErrNotOffered reports an accepted feature set that is not a subset
	// of the offered one.
	ErrNotOffered = errors.New("accepted features not offered by device")
)

// Negotiate computes the feature set shared by a device and a driver: the
// intersection of the device-offered and driver-requested bits. Once
// VIRTIO_F_VERSION_1 has been negotiated it is never cleared for the rest
// of the session, so its absence from the intersection is a negotiation
// failure; the intersection is still returned alongside the error so the
// caller can report what was agreed.
func Negotiate(offered, requested types.Feature) (types.Feature, error) {
	negotiated := offered & requested
	if !negotiated.Has(types.FeatureVersion1) {
		return negotiated, fmt.Errorf("%w: offered %#x, requested %#x", ErrVersion1Required, uint64(offered), uint64(requested))
	}
	return negotiated, nil
}

// ValidateAccepted checks the superset constraint of feature negotiation:
// every bit the driver accepts must have been offered by the device.
func ValidateAccepted(offered, accepted types.Feature) error {
	if extra := accepted &^ offered; extra != 0 {
		return fmt.Errorf("%w: %#x", ErrNotOffered, uint64(extra))
	}
	return nil
}
