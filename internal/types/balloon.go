package types

// Traditional memory balloon device (section 5.5)

// BalloonConfigSize is the byte size of the balloon device configuration
// layout.
// Reference: section 5.5.4
const BalloonConfigSize = 16

// BalloonConfigT is the traditional memory balloon device configuration
// layout.
// Reference: section 5.5.4
type BalloonConfigT struct {
	// Number of pages the host wants the guest to give up.
	NumPages Le32
	// Number of pages the guest has actually given up.
	Actual Le32
	// Command ID for free page hinting. Valid with
	// VIRTIO_BALLOON_F_FREE_PAGE_HINT.
	FreePageHintCmdID Le32
	// Value the guest poisons freed pages with. Valid with
	// VIRTIO_BALLOON_F_PAGE_POISON.
	PoisonVal Le32
}

// Balloon device feature bits (section 5.5.3)

const (
	// BalloonFMustTellHost: the host has to be told before pages from the
	// balloon are used.
	BalloonFMustTellHost Feature = 1 << 0

	// BalloonFStatsVq: a virtqueue for reporting guest memory statistics
	// is present.
	BalloonFStatsVq Feature = 1 << 1

	// BalloonFDeflateOnOom: the guest deflates the balloon on pressure
	// rather than invoking the OOM killer.
	BalloonFDeflateOnOom Feature = 1 << 2

	// BalloonFFreePageHint: the guest can report free pages.
	BalloonFFreePageHint Feature = 1 << 3

	// BalloonFPagePoison: the guest poisons freed pages.
	BalloonFPagePoison Feature = 1 << 4

	// BalloonFReporting: the guest reports free pages for the host to
	// reclaim.
	BalloonFReporting Feature = 1 << 5
)
