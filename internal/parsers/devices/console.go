package devices

import (
	"fmt"

	"github.com/deploymenttheory/go-virtio/internal/interfaces"
	"github.com/deploymenttheory/go-virtio/internal/types"
)

// consoleConfigReader implements the ConsoleConfigReader interface
type consoleConfigReader struct {
	config types.ConsoleConfigT
}

// NewConsoleConfigReader creates a ConsoleConfigReader over the raw bytes
// of a console device configuration space
func NewConsoleConfigReader(data []byte) (interfaces.ConsoleConfigReader, error) {
	config, err := DecodeConsoleConfig(data)
	if err != nil {
		return nil, err
	}
	return &consoleConfigReader{config: config}, nil
}

// Cols returns the console width in characters
func (cr *consoleConfigReader) Cols() uint16 {
	return cr.config.Cols.Uint16()
}

// Rows returns the console height in characters
func (cr *consoleConfigReader) Rows() uint16 {
	return cr.config.Rows.Uint16()
}

// MaxNrPorts returns the maximum number of ports
func (cr *consoleConfigReader) MaxNrPorts() uint32 {
	return cr.config.MaxNrPorts.Uint32()
}

// EmergWr returns the emergency write register value
func (cr *consoleConfigReader) EmergWr() uint32 {
	return cr.config.EmergWr.Uint32()
}

// DecodeConsoleConfig parses the console device configuration layout.
// Reference: section 5.3.4
func DecodeConsoleConfig(data []byte) (types.ConsoleConfigT, error) {
	if len(data) < types.ConsoleConfigSize {
		return types.ConsoleConfigT{}, fmt.Errorf("data too small for console device configuration: %d bytes", len(data))
	}
	var config types.ConsoleConfigT
	copy(config.Cols[:], data[0:2])
	copy(config.Rows[:], data[2:4])
	copy(config.MaxNrPorts[:], data[4:8])
	copy(config.EmergWr[:], data[8:12])
	return config, nil
}

// consoleControlReader implements the ConsoleControlReader interface
type consoleControlReader struct {
	control types.ConsoleControlT
}

// NewConsoleControlReader creates a ConsoleControlReader over the raw
// bytes of one control message. Unrecognized event values decode without
// error; new events are added by revisions of the device.
func NewConsoleControlReader(data []byte) (interfaces.ConsoleControlReader, error) {
	control, err := DecodeConsoleControl(data)
	if err != nil {
		return nil, err
	}
	return &consoleControlReader{control: control}, nil
}

// PortID returns the port number
func (cr *consoleControlReader) PortID() uint32 {
	return cr.control.ID.Uint32()
}

// Event returns the kind of control event
func (cr *consoleControlReader) Event() types.ConsoleEvent {
	return types.ConsoleEvent(cr.control.Event.Uint16())
}

// Value returns the extra information for the event
func (cr *consoleControlReader) Value() uint16 {
	return cr.control.Value.Uint16()
}

// DecodeConsoleControl parses one control message.
// Reference: section 5.3.6.2
func DecodeConsoleControl(data []byte) (types.ConsoleControlT, error) {
	if len(data) < types.ConsoleControlSize {
		return types.ConsoleControlT{}, fmt.Errorf("data too small for console control message: %d bytes", len(data))
	}
	var control types.ConsoleControlT
	copy(control.ID[:], data[0:4])
	copy(control.Event[:], data[4:6])
	copy(control.Value[:], data[6:8])
	return control, nil
}

// EncodeConsoleControl serializes one control message.
func EncodeConsoleControl(control types.ConsoleControlT) [types.ConsoleControlSize]byte {
	var out [types.ConsoleControlSize]byte
	copy(out[0:4], control.ID[:])
	copy(out[4:6], control.Event[:])
	copy(out[6:8], control.Value[:])
	return out
}

// DecodeConsoleResize parses the payload following a resize control
// message.
func DecodeConsoleResize(data []byte) (types.ConsoleResizeT, error) {
	if len(data) < types.ConsoleResizeSize {
		return types.ConsoleResizeT{}, fmt.Errorf("data too small for console resize payload: %d bytes", len(data))
	}
	var resize types.ConsoleResizeT
	copy(resize.Cols[:], data[0:2])
	copy(resize.Rows[:], data[2:4])
	return resize, nil
}
