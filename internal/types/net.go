package types

// Network device (section 5.1)

// NetConfigSize is the byte size of the network device configuration
// layout defined here (through the duplex field).
// Reference: section 5.1.4
const NetConfigSize = 17

// NetConfigT is the network device configuration layout. Fields past the
// MAC address are only valid when the corresponding feature has been
// negotiated.
// Reference: section 5.1.4
type NetConfigT struct {
	// The device's MAC address. Valid with VIRTIO_NET_F_MAC.
	Mac [6]byte
	// NetS* link status bits. Valid with VIRTIO_NET_F_STATUS.
	Status Le16
	// Maximum number of virtqueue pairs. Valid with VIRTIO_NET_F_MQ.
	MaxVirtqueuePairs Le16
	// Initial MTU advice. Valid with VIRTIO_NET_F_MTU.
	Mtu Le16
	// Link speed in Mbps. Valid with VIRTIO_NET_F_SPEED_DUPLEX.
	Speed Le32
	// Duplex mode: 0 half, 1 full, 0xff unknown. Valid with
	// VIRTIO_NET_F_SPEED_DUPLEX.
	Duplex uint8
}

// Network device status bits (section 5.1.4)

const (
	// NetSLinkUp: the link is up.
	NetSLinkUp uint16 = 1

	// NetSAnnounce: an announcement is needed.
	NetSAnnounce uint16 = 2
)

// Network device feature bits (section 5.1.3)

const (
	// NetFCsum: the device handles packets with partial checksum.
	NetFCsum Feature = 1 << 0
	// NetFGuestCsum: the driver handles packets with partial checksum.
	NetFGuestCsum Feature = 1 << 1
	// NetFCtrlGuestOffloads: dynamic offload configuration.
	NetFCtrlGuestOffloads Feature = 1 << 2
	// NetFMtu: the device advises an initial MTU.
	NetFMtu Feature = 1 << 3
	// NetFMac: the device has given a MAC address.
	NetFMac Feature = 1 << 5
	// NetFGuestTso4: the driver can receive TSOv4.
	NetFGuestTso4 Feature = 1 << 7
	// NetFGuestTso6: the driver can receive TSOv6.
	NetFGuestTso6 Feature = 1 << 8
	// NetFGuestEcn: the driver can receive TSO with ECN.
	NetFGuestEcn Feature = 1 << 9
	// NetFGuestUfo: the driver can receive UFO.
	NetFGuestUfo Feature = 1 << 10
	// NetFHostTso4: the device can receive TSOv4.
	NetFHostTso4 Feature = 1 << 11
	// NetFHostTso6: the device can receive TSOv6.
	NetFHostTso6 Feature = 1 << 12
	// NetFHostEcn: the device can receive TSO with ECN.
	NetFHostEcn Feature = 1 << 13
	// NetFHostUfo: the device can receive UFO.
	NetFHostUfo Feature = 1 << 14
	// NetFMrgRxbuf: the driver can merge receive buffers.
	NetFMrgRxbuf Feature = 1 << 15
	// NetFStatus: the configuration status field is available.
	NetFStatus Feature = 1 << 16
	// NetFCtrlVq: a control channel virtqueue is available.
	NetFCtrlVq Feature = 1 << 17
	// NetFCtrlRx: the control channel supports RX mode.
	NetFCtrlRx Feature = 1 << 18
	// NetFCtrlVlan: the control channel supports VLAN filtering.
	NetFCtrlVlan Feature = 1 << 19
	// NetFGuestAnnounce: the driver can send gratuitous packets.
	NetFGuestAnnounce Feature = 1 << 21
	// NetFMq: the device supports multiqueue with automatic receive
	// steering.
	NetFMq Feature = 1 << 22
	// NetFCtrlMacAddr: the MAC address is settable through the control
	// channel.
	NetFCtrlMacAddr Feature = 1 << 23
	// NetFStandby: the device may act as a standby for a primary device
	// with the same MAC address.
	NetFStandby Feature = 1 << 62
	// NetFSpeedDuplex: the device reports link speed and duplex.
	NetFSpeedDuplex Feature = 1 << 63
)
