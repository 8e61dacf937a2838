package packed

import (
	"encoding/binary"
	"fmt"

	"github.com/deploymenttheory/go-virtio/internal/interfaces"
	"github.com/deploymenttheory/go-virtio/internal/types"
)

// eventSuppressReader implements the EventSuppressReader interface
type eventSuppressReader struct {
	ev types.PvirtqEventSuppressT
}

// NewEventSuppressReader creates an EventSuppressReader over the raw bytes
// of one event suppression structure
func NewEventSuppressReader(data []byte) (interfaces.EventSuppressReader, error) {
	ev, err := DecodeEventSuppress(data)
	if err != nil {
		return nil, err
	}
	return &eventSuppressReader{ev: ev}, nil
}

// EventOffset returns the descriptor ring change event offset
func (er *eventSuppressReader) EventOffset() uint16 {
	return er.ev.Desc.Uint16() & types.PvirtqEventOffMask
}

// EventWrap returns the descriptor ring change event wrap counter
func (er *eventSuppressReader) EventWrap() bool {
	return er.ev.Desc.Uint16()>>types.PvirtqEventWrapShift != 0
}

// EventFlags returns the suppression mode. Reserved bits above the low two
// are ignored here and preserved by DecodeEventSuppress.
func (er *eventSuppressReader) EventFlags() types.RingEventFlags {
	return types.RingEventFlags(er.ev.Flags.Uint16() & 0x3)
}

// PackEventDesc packs an event offset and wrap counter into the desc field
// of an event suppression structure.
// Reference: section 2.7.14
func PackEventDesc(offset uint16, wrap bool) uint16 {
	desc := offset & types.PvirtqEventOffMask
	if wrap {
		desc |= 1 << types.PvirtqEventWrapShift
	}
	return desc
}

// DecodeEventSuppress parses the 4-byte little-endian wire form of an
// event suppression structure.
func DecodeEventSuppress(data []byte) (types.PvirtqEventSuppressT, error) {
	if len(data) < types.PvirtqEventSuppressSize {
		return types.PvirtqEventSuppressT{}, fmt.Errorf("data too small for event suppression structure: %d bytes", len(data))
	}
	var ev types.PvirtqEventSuppressT
	ev.Desc.Set(binary.LittleEndian.Uint16(data[0:2]))
	ev.Flags.Set(binary.LittleEndian.Uint16(data[2:4]))
	return ev, nil
}

// EncodeEventSuppress serializes an event suppression structure to its
// 4-byte little-endian wire form.
func EncodeEventSuppress(ev types.PvirtqEventSuppressT) [types.PvirtqEventSuppressSize]byte {
	var out [types.PvirtqEventSuppressSize]byte
	binary.LittleEndian.PutUint16(out[0:2], ev.Desc.Uint16())
	binary.LittleEndian.PutUint16(out[2:4], ev.Flags.Uint16())
	return out
}
