package types

// Virtio over MMIO (section 4.2)
// Memory-mapped virtio devices expose a flat register block. All registers
// are 32 bits wide and little-endian. Register access is the transport's
// job; the offsets and magic values are defined here so register images can
// be laid out and decoded.

const (
	// MmioMagicValue is the value of the MagicValue register: the ASCII
	// string "virt", little-endian.
	// Reference: section 4.2.2
	MmioMagicValue = 0x74726976

	// MmioVersion is the device version for the modern interface.
	// Reference: section 4.2.2
	MmioVersion = 2

	// MmioVersionLegacy is the device version for the legacy interface.
	// Reference: section 4.2.4
	MmioVersionLegacy = 1

	// MmioRegisterBlockSize is the size of the register block up to and
	// including the start of the device-specific configuration space.
	MmioRegisterBlockSize = 0x100
)

// MMIO register offsets (section 4.2.2)

const (
	MmioMagicValueOff        = 0x000 // read-only
	MmioVersionOff           = 0x004 // read-only
	MmioDeviceIDOff          = 0x008 // read-only
	MmioVendorIDOff          = 0x00c // read-only
	MmioDeviceFeaturesOff    = 0x010 // read-only, windowed by DeviceFeaturesSel
	MmioDeviceFeaturesSelOff = 0x014 // write-only
	MmioDriverFeaturesOff    = 0x020 // write-only, windowed by DriverFeaturesSel
	MmioDriverFeaturesSelOff = 0x024 // write-only
	MmioQueueSelOff          = 0x030 // write-only
	MmioQueueNumMaxOff       = 0x034 // read-only
	MmioQueueNumOff          = 0x038 // write-only
	MmioQueueReadyOff        = 0x044 // read-write
	MmioQueueNotifyOff       = 0x050 // write-only
	MmioInterruptStatusOff   = 0x060 // read-only
	MmioInterruptAckOff      = 0x064 // write-only
	MmioStatusOff            = 0x070 // read-write
	MmioQueueDescLowOff      = 0x080 // write-only
	MmioQueueDescHighOff     = 0x084 // write-only
	MmioQueueAvailLowOff     = 0x090 // write-only
	MmioQueueAvailHighOff    = 0x094 // write-only
	MmioQueueUsedLowOff      = 0x0a0 // write-only
	MmioQueueUsedHighOff     = 0x0a4 // write-only
	MmioShmSelOff            = 0x0ac // write-only
	MmioShmLenLowOff         = 0x0b0 // read-only
	MmioShmLenHighOff        = 0x0b4 // read-only
	MmioShmBaseLowOff        = 0x0b8 // read-only
	MmioShmBaseHighOff       = 0x0bc // read-only
	MmioConfigGenerationOff  = 0x0fc // read-only
	MmioConfigOff            = 0x100 // device-specific configuration space
)

// MMIO interrupt status bits (section 4.2.2)

const (
	// MmioInterruptVring: the device used a buffer in at least one of the
	// active virtqueues.
	MmioInterruptVring = 1 << 0

	// MmioInterruptConfig: the device configuration changed.
	MmioInterruptConfig = 1 << 1
)
