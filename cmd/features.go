package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-virtio/internal/parsers/negotiation"
	"github.com/deploymenttheory/go-virtio/internal/types"
)

var featuresDevice string

var featuresCmd = &cobra.Command{
	Use:   "features <offered> [requested]",
	Short: "Decode feature bitmaps and compute negotiation results",
	Long: `Decode a 64-bit feature bitmap into its named bits. The transport and
queue features shared by all device types are always named; --device adds
the device-specific names of one device type.

With a second bitmap, treat the first as device-offered and the second as
driver-requested and compute the negotiation result.

Examples:
  # Decode an offered feature set
  go-virtio features 0x130000000

  # Name network device bits too
  go-virtio features 0x100010021 --device net

  # Compute a negotiation result
  go-virtio features 0x530000000 0x110000000`,

	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runFeatures(args); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(featuresCmd)

	featuresCmd.Flags().StringVar(&featuresDevice, "device", "", "device type for device-specific bit names (net, console, balloon)")
}

// genericFeatureNames covers the transport and queue feature range shared
// by all device types.
var genericFeatureNames = []struct {
	bit  types.Feature
	name string
}{
	{types.FeatureNotifyOnEmpty, "VIRTIO_F_NOTIFY_ON_EMPTY"},
	{types.FeatureAnyLayout, "VIRTIO_F_ANY_LAYOUT"},
	{types.FeatureIndirectDesc, "VIRTIO_F_INDIRECT_DESC"},
	{types.FeatureEventIdx, "VIRTIO_F_EVENT_IDX"},
	{types.FeatureVersion1, "VIRTIO_F_VERSION_1"},
	{types.FeatureAccessPlatform, "VIRTIO_F_ACCESS_PLATFORM"},
	{types.FeatureRingPacked, "VIRTIO_F_RING_PACKED"},
	{types.FeatureInOrder, "VIRTIO_F_IN_ORDER"},
	{types.FeatureOrderPlatform, "VIRTIO_F_ORDER_PLATFORM"},
	{types.FeatureSrIov, "VIRTIO_F_SR_IOV"},
	{types.FeatureNotificationData, "VIRTIO_F_NOTIFICATION_DATA"},
	{types.FeatureNotifConfigData, "VIRTIO_F_NOTIF_CONFIG_DATA"},
	{types.FeatureRingReset, "VIRTIO_F_RING_RESET"},
}

var netFeatureNames = []struct {
	bit  types.Feature
	name string
}{
	{types.NetFCsum, "VIRTIO_NET_F_CSUM"},
	{types.NetFGuestCsum, "VIRTIO_NET_F_GUEST_CSUM"},
	{types.NetFCtrlGuestOffloads, "VIRTIO_NET_F_CTRL_GUEST_OFFLOADS"},
	{types.NetFMtu, "VIRTIO_NET_F_MTU"},
	{types.NetFMac, "VIRTIO_NET_F_MAC"},
	{types.NetFGuestTso4, "VIRTIO_NET_F_GUEST_TSO4"},
	{types.NetFGuestTso6, "VIRTIO_NET_F_GUEST_TSO6"},
	{types.NetFGuestEcn, "VIRTIO_NET_F_GUEST_ECN"},
	{types.NetFGuestUfo, "VIRTIO_NET_F_GUEST_UFO"},
	{types.NetFHostTso4, "VIRTIO_NET_F_HOST_TSO4"},
	{types.NetFHostTso6, "VIRTIO_NET_F_HOST_TSO6"},
	{types.NetFHostEcn, "VIRTIO_NET_F_HOST_ECN"},
	{types.NetFHostUfo, "VIRTIO_NET_F_HOST_UFO"},
	{types.NetFMrgRxbuf, "VIRTIO_NET_F_MRG_RXBUF"},
	{types.NetFStatus, "VIRTIO_NET_F_STATUS"},
	{types.NetFCtrlVq, "VIRTIO_NET_F_CTRL_VQ"},
	{types.NetFCtrlRx, "VIRTIO_NET_F_CTRL_RX"},
	{types.NetFCtrlVlan, "VIRTIO_NET_F_CTRL_VLAN"},
	{types.NetFGuestAnnounce, "VIRTIO_NET_F_GUEST_ANNOUNCE"},
	{types.NetFMq, "VIRTIO_NET_F_MQ"},
	{types.NetFCtrlMacAddr, "VIRTIO_NET_F_CTRL_MAC_ADDR"},
	{types.NetFStandby, "VIRTIO_NET_F_STANDBY"},
	{types.NetFSpeedDuplex, "VIRTIO_NET_F_SPEED_DUPLEX"},
}

var consoleFeatureNames = []struct {
	bit  types.Feature
	name string
}{
	{types.ConsoleFSize, "VIRTIO_CONSOLE_F_SIZE"},
	{types.ConsoleFMultiport, "VIRTIO_CONSOLE_F_MULTIPORT"},
	{types.ConsoleFEmergWrite, "VIRTIO_CONSOLE_F_EMERG_WRITE"},
}

var balloonFeatureNames = []struct {
	bit  types.Feature
	name string
}{
	{types.BalloonFMustTellHost, "VIRTIO_BALLOON_F_MUST_TELL_HOST"},
	{types.BalloonFStatsVq, "VIRTIO_BALLOON_F_STATS_VQ"},
	{types.BalloonFDeflateOnOom, "VIRTIO_BALLOON_F_DEFLATE_ON_OOM"},
	{types.BalloonFFreePageHint, "VIRTIO_BALLOON_F_FREE_PAGE_HINT"},
	{types.BalloonFPagePoison, "VIRTIO_BALLOON_F_PAGE_POISON"},
	{types.BalloonFReporting, "VIRTIO_BALLOON_F_REPORTING"},
}

func parseFeatureBitmap(s string) (types.Feature, error) {
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid feature bitmap %q: %w", s, err)
	}
	return types.Feature(v), nil
}

func printFeatureBits(f types.Feature) {
	named := types.Feature(0)
	for _, entry := range genericFeatureNames {
		if f.Has(entry.bit) {
			fmt.Printf("  %s\n", entry.name)
			named |= entry.bit
		}
	}

	var deviceNames []struct {
		bit  types.Feature
		name string
	}
	switch featuresDevice {
	case "":
	case "net":
		deviceNames = netFeatureNames
	case "console":
		deviceNames = consoleFeatureNames
	case "balloon":
		deviceNames = balloonFeatureNames
	default:
		fmt.Printf("  (no bit names for device type %q)\n", featuresDevice)
	}
	for _, entry := range deviceNames {
		if f.Has(entry.bit) {
			fmt.Printf("  %s\n", entry.name)
			named |= entry.bit
		}
	}

	if unnamed := f &^ named; unnamed != 0 {
		fmt.Printf("  unnamed bits: %#x\n", uint64(unnamed))
	}
}

func runFeatures(args []string) error {
	offered, err := parseFeatureBitmap(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Features: %#x\n", uint64(offered))
	printFeatureBits(offered)

	if verbose {
		words := offered.Words()
		fmt.Printf("  window word 0: %#08x\n", words[0])
		fmt.Printf("  window word 1: %#08x\n", words[1])
	}

	if len(args) == 2 {
		requested, err := parseFeatureBitmap(args[1])
		if err != nil {
			return err
		}

		negotiated, err := negotiation.Negotiate(offered, requested)
		fmt.Printf("Negotiated: %#x\n", uint64(negotiated))
		printFeatureBits(negotiated)
		if err != nil {
			return err
		}
	}

	return nil
}
