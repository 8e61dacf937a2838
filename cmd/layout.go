package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-virtio/internal/parsers/packed"
	"github.com/deploymenttheory/go-virtio/internal/parsers/virtqueue"
)

var (
	layoutPacked   bool
	layoutEventIdx bool
)

var layoutCmd = &cobra.Command{
	Use:   "layout [queue-size]",
	Short: "Compute split or packed virtqueue memory layouts",
	Long: `Compute the memory layout of a virtqueue: region offsets, sizes and the
total allocation for a contiguous placement. Without a queue size the
configured default is used.

Examples:
  # Split ring layout for a 256-entry queue
  go-virtio layout 256

  # Split ring with the event index fields
  go-virtio layout 256 --event-idx

  # Packed ring layout
  go-virtio layout 128 --packed`,

	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runLayout(args); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(layoutCmd)

	layoutCmd.Flags().BoolVar(&layoutPacked, "packed", false, "compute the packed ring layout")
	layoutCmd.Flags().BoolVar(&layoutEventIdx, "event-idx", false, "include the event index fields (split ring)")
}

func runLayout(args []string) error {
	config, err := LoadToolConfig()
	if err != nil {
		return err
	}

	queueSize := config.DefaultQueueSize
	if len(args) == 1 {
		v, err := strconv.ParseUint(args[0], 0, 16)
		if err != nil {
			return fmt.Errorf("invalid queue size %q: %w", args[0], err)
		}
		queueSize = uint16(v)
	}

	if layoutPacked || (len(args) == 0 && config.PackedRing) {
		return printPackedLayout(queueSize)
	}
	return printSplitLayout(queueSize, layoutEventIdx || config.EventIdx)
}

func printSplitLayout(queueSize uint16, eventIdx bool) error {
	layout, err := virtqueue.NewSplitLayout(queueSize, eventIdx)
	if err != nil {
		return err
	}

	fmt.Printf("Split virtqueue, queue size %d (event idx: %v)\n", layout.QueueSize, layout.EventIdx)
	fmt.Printf("  %-18s offset %#8x  size %#8x\n", "descriptor table", layout.DescTableOffset, layout.DescTableSize)
	fmt.Printf("  %-18s offset %#8x  size %#8x\n", "available ring", layout.AvailRingOffset, layout.AvailRingSize)
	fmt.Printf("  %-18s offset %#8x  size %#8x\n", "used ring", layout.UsedRingOffset, layout.UsedRingSize)
	fmt.Printf("  total %d bytes\n", layout.TotalSize)
	return nil
}

func printPackedLayout(queueSize uint16) error {
	layout, err := packed.NewPackedLayout(queueSize)
	if err != nil {
		return err
	}

	fmt.Printf("Packed virtqueue, queue size %d\n", layout.QueueSize)
	fmt.Printf("  %-18s offset %#8x  size %#8x\n", "descriptor ring", layout.DescRingOffset, layout.DescRingSize)
	fmt.Printf("  %-18s offset %#8x\n", "driver event", layout.DriverEventOffset)
	fmt.Printf("  %-18s offset %#8x\n", "device event", layout.DeviceEventOffset)
	fmt.Printf("  total %d bytes\n", layout.TotalSize)
	return nil
}
