package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-virtio/internal/parsers/transport/mmio"
	"github.com/deploymenttheory/go-virtio/internal/parsers/transport/pci"
)

var capsCmd = &cobra.Command{
	Use:   "caps <config-space-image>",
	Short: "Walk the virtio capabilities of a PCI config space image",
	Long: `Walk the capability list of a 256-byte PCI configuration space dump and
print every virtio vendor capability: the structure it locates, the BAR
and the offset and length within it.

Examples:
  # Dump from sysfs, then decode
  go-virtio caps ./config.bin`,

	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runCaps(args[0]); err != nil {
			cobra.CheckErr(err)
		}
	},
}

var mmioCmd = &cobra.Command{
	Use:   "mmio <register-block-image>",
	Short: "Decode an MMIO register block image",
	Long: `Decode a dump of a virtio MMIO register block: magic value, version,
device type, vendor and status.

Examples:
  go-virtio mmio ./regs.bin`,

	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runMmio(args[0]); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(capsCmd)
	rootCmd.AddCommand(mmioCmd)
}

func runCaps(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config space image: %w", err)
	}

	caps, err := pci.WalkVendorCapabilities(data)
	if err != nil {
		return err
	}

	fmt.Printf("%d virtio capabilities\n", len(caps))
	for _, c := range caps {
		fmt.Printf("  %-30s bar %d  offset %#8x  length %#8x", c.CapabilityType(), c.Bar(), c.Offset(), c.Length())
		if multiplier, err := c.NotifyOffMultiplier(); err == nil {
			fmt.Printf("  notify multiplier %d", multiplier)
		}
		fmt.Println()
	}
	return nil
}

func runMmio(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading register block image: %w", err)
	}

	reader, err := mmio.NewRegisterReader(data)
	if err != nil {
		return err
	}
	if err := mmio.ValidateVersion(reader.Version()); err != nil {
		return err
	}

	fmt.Printf("MMIO device\n")
	fmt.Printf("  version:   %d (legacy: %v)\n", reader.Version(), reader.IsLegacy())
	fmt.Printf("  device:    %s\n", reader.DeviceID())
	fmt.Printf("  vendor:    %#08x\n", reader.VendorID())
	fmt.Printf("  status:    %s\n", reader.Status())
	if verbose {
		fmt.Printf("  interrupt: %#x\n", reader.InterruptStatus())
	}
	return nil
}
