package types

import "fmt"

// DeviceType is a virtio device type identifier.
// The specification reserves identifiers it does not define yet; an
// unrecognized value is not an error and must round-trip unchanged.
// Reference: section 5
type DeviceType uint16

const (
	// DeviceTypeReserved is reserved (invalid).
	DeviceTypeReserved DeviceType = 0
	// DeviceTypeNet is a network card.
	DeviceTypeNet DeviceType = 1
	// DeviceTypeBlock is a block device.
	DeviceTypeBlock DeviceType = 2
	// DeviceTypeConsole is a console.
	DeviceTypeConsole DeviceType = 3
	// DeviceTypeRng is an entropy source.
	DeviceTypeRng DeviceType = 4
	// DeviceTypeBalloon is a traditional memory balloon.
	DeviceTypeBalloon DeviceType = 5
	// DeviceTypeIoMem is ioMemory.
	DeviceTypeIoMem DeviceType = 6
	// DeviceTypeRpmsg is an rpmsg link.
	DeviceTypeRpmsg DeviceType = 7
	// DeviceTypeScsi is a SCSI host.
	DeviceTypeScsi DeviceType = 8
	// DeviceTypeNineP is a 9P transport.
	DeviceTypeNineP DeviceType = 9
	// DeviceTypeMac80211Wlan is a mac80211 wlan device.
	DeviceTypeMac80211Wlan DeviceType = 10
	// DeviceTypeRprocSerial is an rproc serial link.
	DeviceTypeRprocSerial DeviceType = 11
	// DeviceTypeCaif is a CAIF device.
	DeviceTypeCaif DeviceType = 12
	// DeviceTypeMemoryBalloon is a memory balloon.
	DeviceTypeMemoryBalloon DeviceType = 13
	// DeviceTypeGpu is a GPU device.
	DeviceTypeGpu DeviceType = 16
	// DeviceTypeClock is a timer/clock device.
	DeviceTypeClock DeviceType = 17
	// DeviceTypeInput is an input device.
	DeviceTypeInput DeviceType = 18
	// DeviceTypeVsock is a socket device.
	DeviceTypeVsock DeviceType = 19
	// DeviceTypeCrypto is a crypto device.
	DeviceTypeCrypto DeviceType = 20
	// DeviceTypeSignalDist is a signal distribution module.
	DeviceTypeSignalDist DeviceType = 21
	// DeviceTypePstore is a pstore device.
	DeviceTypePstore DeviceType = 22
	// DeviceTypeIommu is an IOMMU device.
	DeviceTypeIommu DeviceType = 23
	// DeviceTypeMem is a memory device.
	DeviceTypeMem DeviceType = 24
	// DeviceTypeSound is an audio device.
	DeviceTypeSound DeviceType = 25
	// DeviceTypeFs is a file system device.
	DeviceTypeFs DeviceType = 26
	// DeviceTypePmem is a PMEM device.
	DeviceTypePmem DeviceType = 27
	// DeviceTypeRpmb is an RPMB device.
	DeviceTypeRpmb DeviceType = 28
	// DeviceTypeMac80211Hwsim is a mac80211 hwsim wireless simulation device.
	DeviceTypeMac80211Hwsim DeviceType = 29
	// DeviceTypeVideoEncoder is a video encoder device.
	DeviceTypeVideoEncoder DeviceType = 30
	// DeviceTypeVideoDecoder is a video decoder device.
	DeviceTypeVideoDecoder DeviceType = 31
	// DeviceTypeScmi is an SCMI device.
	DeviceTypeScmi DeviceType = 32
	// DeviceTypeNitroSecMod is a NitroSecureModule.
	DeviceTypeNitroSecMod DeviceType = 33
	// DeviceTypeI2cAdapter is an I2C adapter.
	DeviceTypeI2cAdapter DeviceType = 34
	// DeviceTypeWatchdog is a watchdog.
	DeviceTypeWatchdog DeviceType = 35
	// DeviceTypeCan is a CAN device.
	DeviceTypeCan DeviceType = 36
	// DeviceTypeParamServ is a parameter server.
	DeviceTypeParamServ DeviceType = 38
	// DeviceTypeAudioPolicy is an audio policy device.
	DeviceTypeAudioPolicy DeviceType = 39
	// DeviceTypeBt is a bluetooth device.
	DeviceTypeBt DeviceType = 40
	// DeviceTypeGpio is a GPIO device.
	DeviceTypeGpio DeviceType = 41
	// DeviceTypeRdma is an RDMA device.
	DeviceTypeRdma DeviceType = 42
)

var deviceTypeNames = map[DeviceType]string{
	DeviceTypeReserved:      "reserved",
	DeviceTypeNet:           "network card",
	DeviceTypeBlock:         "block device",
	DeviceTypeConsole:       "console",
	DeviceTypeRng:           "entropy source",
	DeviceTypeBalloon:       "memory balloon (traditional)",
	DeviceTypeIoMem:         "ioMemory",
	DeviceTypeRpmsg:         "rpmsg",
	DeviceTypeScsi:          "SCSI host",
	DeviceTypeNineP:         "9P transport",
	DeviceTypeMac80211Wlan:  "mac80211 wlan",
	DeviceTypeRprocSerial:   "rproc serial",
	DeviceTypeCaif:          "virtio CAIF",
	DeviceTypeMemoryBalloon: "memory balloon",
	DeviceTypeGpu:           "GPU device",
	DeviceTypeClock:         "timer/clock device",
	DeviceTypeInput:         "input device",
	DeviceTypeVsock:         "socket device",
	DeviceTypeCrypto:        "crypto device",
	DeviceTypeSignalDist:    "signal distribution module",
	DeviceTypePstore:        "pstore device",
	DeviceTypeIommu:         "IOMMU device",
	DeviceTypeMem:           "memory device",
	DeviceTypeSound:         "audio device",
	DeviceTypeFs:            "file system device",
	DeviceTypePmem:          "PMEM device",
	DeviceTypeRpmb:          "RPMB device",
	DeviceTypeMac80211Hwsim: "mac80211 hwsim wireless simulation device",
	DeviceTypeVideoEncoder:  "video encoder device",
	DeviceTypeVideoDecoder:  "video decoder device",
	DeviceTypeScmi:          "SCMI device",
	DeviceTypeNitroSecMod:   "NitroSecureModule",
	DeviceTypeI2cAdapter:    "I2C adapter",
	DeviceTypeWatchdog:      "watchdog",
	DeviceTypeCan:           "CAN device",
	DeviceTypeParamServ:     "parameter server",
	DeviceTypeAudioPolicy:   "audio policy device",
	DeviceTypeBt:            "bluetooth device",
	DeviceTypeGpio:          "GPIO device",
	DeviceTypeRdma:          "RDMA device",
}

// IsKnown checks whether the identifier is one the specification defines.
func (t DeviceType) IsKnown() bool {
	_, ok := deviceTypeNames[t]
	return ok
}

// String returns the specification name of the device type, or a numeric
// fallback for reserved identifiers.
func (t DeviceType) String() string {
	if name, ok := deviceTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("unknown device type %d", uint16(t))
}
