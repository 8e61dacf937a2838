package types

// Feature is a 64-bit view of the device/driver feature set. Bits 0 to 23
// and 50 and above are device-type specific; bits 24 to 49 are reserved for
// transport and queue features common to all device types.
// Reference: section 2.2
type Feature uint64

const (
	// FeatureNotifyOnEmpty: the device sends used buffer notifications even
	// when notifications are suppressed, if the ring is completely used.
	// Legacy interface only.
	// Reference: section 6.3
	FeatureNotifyOnEmpty Feature = 1 << 24

	// FeatureAnyLayout: the device accepts arbitrary descriptor layouts.
	// Legacy interface only.
	// Reference: section 6.3
	FeatureAnyLayout Feature = 1 << 27

	// FeatureIndirectDesc: the driver can use descriptors with the
	// VIRTQ_DESC_F_INDIRECT flag set.
	// Reference: section 2.6.5.3
	FeatureIndirectDesc Feature = 1 << 28

	// FeatureEventIdx: enables the used_event and avail_event fields.
	// Reference: sections 2.6.7, 2.6.8
	FeatureEventIdx Feature = 1 << 29

	// FeatureVersion1: compliance with this specification, giving a simple
	// way to detect legacy devices or drivers.
	// Reference: section 6.1
	FeatureVersion1 Feature = 1 << 32

	// FeatureAccessPlatform: device access to memory is limited and/or
	// translated, e.g. behind an IOMMU.
	// Reference: section 6.1
	FeatureAccessPlatform Feature = 1 << 33

	// FeatureRingPacked: support for the packed virtqueue layout.
	// Reference: section 2.7
	FeatureRingPacked Feature = 1 << 34

	// FeatureInOrder: all buffers are used by the device in the same order
	// in which they have been made available.
	// Reference: section 6.1
	FeatureInOrder Feature = 1 << 35

	// FeatureOrderPlatform: memory accesses by the driver and the device
	// are ordered in a way described by the platform.
	// Reference: section 6.1
	FeatureOrderPlatform Feature = 1 << 36

	// FeatureSrIov: the device supports Single Root I/O Virtualization.
	// Reference: section 6.1
	FeatureSrIov Feature = 1 << 37

	// FeatureNotificationData: the driver passes extra data besides the
	// virtqueue identifier in its device notifications.
	// Reference: section 2.9
	FeatureNotificationData Feature = 1 << 38

	// FeatureNotifConfigData: the driver uses the data provided by the
	// device as a virtqueue identifier in available buffer notifications.
	// Reference: section 2.9
	FeatureNotifConfigData Feature = 1 << 39

	// FeatureRingReset: the driver can reset a queue individually.
	// Reference: section 2.6.1
	FeatureRingReset Feature = 1 << 40
)

// FeatureWordSize is the width in bits of one feature window word. Feature
// sets wider than 32 bits are exposed through transports one 32-bit word at
// a time, addressed by a select register.
// Reference: section 2.2
const FeatureWordSize = 32

// Has checks whether all bits of flag are set.
func (f Feature) Has(flag Feature) bool {
	return f&flag == flag
}

// Words splits the feature set into its ordered 32-bit window words, low
// word first.
func (f Feature) Words() []uint32 {
	return []uint32{uint32(f), uint32(f >> FeatureWordSize)}
}

// FeatureFromWords assembles a 64-bit feature set from ordered 32-bit
// window words, low word first. Words beyond the second are ignored; the
// 64-bit view covers the range every defined feature bit lives in.
func FeatureFromWords(words []uint32) Feature {
	var f Feature
	if len(words) > 0 {
		f |= Feature(words[0])
	}
	if len(words) > 1 {
		f |= Feature(words[1]) << FeatureWordSize
	}
	return f
}
