package devices

import (
	"fmt"

	"github.com/deploymenttheory/go-virtio/internal/interfaces"
	"github.com/deploymenttheory/go-virtio/internal/types"
)

// balloonConfigReader implements the BalloonConfigReader interface
type balloonConfigReader struct {
	config types.BalloonConfigT
}

// NewBalloonConfigReader creates a BalloonConfigReader over the raw bytes
// of a balloon device configuration space
func NewBalloonConfigReader(data []byte) (interfaces.BalloonConfigReader, error) {
	config, err := DecodeBalloonConfig(data)
	if err != nil {
		return nil, err
	}
	return &balloonConfigReader{config: config}, nil
}

// NumPages returns the number of pages the host requests
func (br *balloonConfigReader) NumPages() uint32 {
	return br.config.NumPages.Uint32()
}

// Actual returns the number of pages the guest has given up
func (br *balloonConfigReader) Actual() uint32 {
	return br.config.Actual.Uint32()
}

// FreePageHintCmdID returns the free page hinting command ID
func (br *balloonConfigReader) FreePageHintCmdID() uint32 {
	return br.config.FreePageHintCmdID.Uint32()
}

// PoisonVal returns the page poison value
func (br *balloonConfigReader) PoisonVal() uint32 {
	return br.config.PoisonVal.Uint32()
}

// DecodeBalloonConfig parses the balloon device configuration layout.
// Reference: section 5.5.4
func DecodeBalloonConfig(data []byte) (types.BalloonConfigT, error) {
	if len(data) < types.BalloonConfigSize {
		return types.BalloonConfigT{}, fmt.Errorf("data too small for balloon device configuration: %d bytes", len(data))
	}
	var config types.BalloonConfigT
	copy(config.NumPages[:], data[0:4])
	copy(config.Actual[:], data[4:8])
	copy(config.FreePageHintCmdID[:], data[8:12])
	copy(config.PoisonVal[:], data[12:16])
	return config, nil
}

// EncodeBalloonConfig serializes the balloon device configuration layout.
func EncodeBalloonConfig(config types.BalloonConfigT) [types.BalloonConfigSize]byte {
	var out [types.BalloonConfigSize]byte
	copy(out[0:4], config.NumPages[:])
	copy(out[4:8], config.Actual[:])
	copy(out[8:12], config.FreePageHintCmdID[:])
	copy(out[12:16], config.PoisonVal[:])
	return out
}
