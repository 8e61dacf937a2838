package interfaces

import (
	"github.com/deploymenttheory/go-virtio/internal/types"
)

// NetConfigReader provides methods for inspecting a network device
// configuration space image
type NetConfigReader interface {
	// Mac returns the device's MAC address
	Mac() [6]byte

	// Status returns the link status bits
	Status() uint16

	// IsLinkUp checks the link status bit
	IsLinkUp() bool

	// NeedsAnnounce checks the announcement bit
	NeedsAnnounce() bool

	// MaxVirtqueuePairs returns the maximum number of virtqueue pairs
	MaxVirtqueuePairs() uint16

	// Mtu returns the initial MTU advice
	Mtu() uint16

	// Speed returns the link speed in Mbps
	Speed() uint32

	// Duplex returns the duplex mode
	Duplex() uint8
}

// ConsoleConfigReader provides methods for inspecting a console device
// configuration space image
type ConsoleConfigReader interface {
	// Cols returns the console width in characters
	Cols() uint16

	// Rows returns the console height in characters
	Rows() uint16

	// MaxNrPorts returns the maximum number of ports
	MaxNrPorts() uint32

	// EmergWr returns the emergency write register value
	EmergWr() uint32
}

// ConsoleControlReader provides methods for inspecting a console control
// message
type ConsoleControlReader interface {
	// PortID returns the port number
	PortID() uint32

	// Event returns the kind of control event
	Event() types.ConsoleEvent

	// Value returns the extra information for the event
	Value() uint16
}

// BalloonConfigReader provides methods for inspecting a balloon device
// configuration space image
type BalloonConfigReader interface {
	// NumPages returns the number of pages the host requests
	NumPages() uint32

	// Actual returns the number of pages the guest has given up
	Actual() uint32

	// FreePageHintCmdID returns the free page hinting command ID
	FreePageHintCmdID() uint32

	// PoisonVal returns the page poison value
	PoisonVal() uint32
}
