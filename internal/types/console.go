package types

import "fmt"

// Console device (section 5.3)

const (
	// ConsoleConfigSize is the byte size of the console device
	// configuration layout.
	// Reference: section 5.3.4
	ConsoleConfigSize = 12

	// ConsoleControlSize is the byte size of a control message.
	// Reference: section 5.3.6.2
	ConsoleControlSize = 8

	// ConsoleResizeSize is the byte size of a resize message payload.
	// Reference: section 5.3.6.2
	ConsoleResizeSize = 4
)

// ConsoleConfigT is the console device configuration layout.
// Reference: section 5.3.4
type ConsoleConfigT struct {
	// Console width in characters. Valid with VIRTIO_CONSOLE_F_SIZE.
	Cols Le16
	// Console height in characters. Valid with VIRTIO_CONSOLE_F_SIZE.
	Rows Le16
	// Maximum number of ports. Valid with VIRTIO_CONSOLE_F_MULTIPORT.
	MaxNrPorts Le32
	// Emergency write register. Valid with VIRTIO_CONSOLE_F_EMERG_WRITE.
	EmergWr Le32
}

// ConsoleControlT is a control message exchanged over the control
// virtqueues.
// Reference: section 5.3.6.2
type ConsoleControlT struct {
	// Port number.
	ID Le32
	// The kind of control event, a ConsoleEvent value.
	Event Le16
	// Extra information for the event.
	Value Le16
}

// ConsoleResizeT is the payload following a resize control message.
// Reference: section 5.3.6.2
type ConsoleResizeT struct {
	Cols Le16
	Rows Le16
}

// Console device feature bits (section 5.3.3)

const (
	// ConsoleFSize: the configuration columns and rows are valid.
	ConsoleFSize Feature = 1 << 0

	// ConsoleFMultiport: the device has support for multiple ports.
	ConsoleFMultiport Feature = 1 << 1

	// ConsoleFEmergWrite: the device has support for emergency write.
	ConsoleFEmergWrite Feature = 1 << 2
)

// ConsoleEvent is the kind of a console control message. Unrecognized
// values are reserved for future events and round-trip unchanged.
// Reference: section 5.3.6.2
type ConsoleEvent uint16

const (
	// ConsoleDeviceReady is sent by the driver at initialization to
	// indicate that it is ready to receive control messages.
	ConsoleDeviceReady ConsoleEvent = 0

	// ConsoleDeviceAdd is sent by the device to create a new port.
	ConsoleDeviceAdd ConsoleEvent = 1

	// ConsoleDeviceRemove is sent by the device to remove an existing
	// port.
	ConsoleDeviceRemove ConsoleEvent = 2

	// ConsolePortReady is sent by the driver in response to a port add, to
	// indicate that the port is ready to be used.
	ConsolePortReady ConsoleEvent = 3

	// ConsoleConsolePort is sent by the device to nominate a port as a
	// console port.
	ConsoleConsolePort ConsoleEvent = 4

	// ConsoleResize is sent by the device to indicate a console size
	// change; the buffer is followed by a ConsoleResizeT payload.
	ConsoleResize ConsoleEvent = 5

	// ConsolePortOpen is sent by both sides; value indicates the port
	// state, 0 closed or 1 open.
	ConsolePortOpen ConsoleEvent = 6

	// ConsolePortName is sent by the device to give a tag to the port,
	// immediately followed by the UTF-8 port name.
	ConsolePortName ConsoleEvent = 7
)

// IsKnown checks whether the event is one the specification defines.
func (e ConsoleEvent) IsKnown() bool {
	return e <= ConsolePortName
}

// String returns the specification name of the event, or a numeric
// fallback for reserved values.
func (e ConsoleEvent) String() string {
	switch e {
	case ConsoleDeviceReady:
		return "device ready"
	case ConsoleDeviceAdd:
		return "device add"
	case ConsoleDeviceRemove:
		return "device remove"
	case ConsolePortReady:
		return "port ready"
	case ConsoleConsolePort:
		return "console port"
	case ConsoleResize:
		return "resize"
	case ConsolePortOpen:
		return "port open"
	case ConsolePortName:
		return "port name"
	default:
		return fmt.Sprintf("unknown console event %d", uint16(e))
	}
}
