package cmd

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-virtio/internal/parsers/devices"
	"github.com/deploymenttheory/go-virtio/internal/parsers/transport/pci"
	"github.com/deploymenttheory/go-virtio/internal/types"
)

var deviceCmd = &cobra.Command{
	Use:   "device <id> | device <type> <config-image>",
	Short: "Name a device type ID or decode a device configuration image",
	Long: `With one numeric argument, name the device type behind a virtio device
ID and report its modern PCI device ID.

With a type name and a file, decode a dump of that device's configuration
space. Supported types: net, console, balloon.

Examples:
  go-virtio device 5
  go-virtio device net ./net-config.bin
  go-virtio device balloon ./balloon-config.bin`,

	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		var err error
		if len(args) == 1 {
			err = runDeviceID(args[0])
		} else {
			err = runDevice(args[0], args[1])
		}
		if err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(deviceCmd)
}

func runDeviceID(arg string) error {
	v, err := strconv.ParseUint(arg, 0, 16)
	if err != nil {
		return fmt.Errorf("invalid device type ID %q: %w", arg, err)
	}

	dt := types.DeviceType(v)
	fmt.Printf("Device type %d: %s\n", uint16(dt), dt)
	if dt.IsKnown() {
		fmt.Printf("  modern PCI device ID: %#04x\n", pci.ModernDeviceID(dt))
	}
	return nil
}

func runDevice(deviceType, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config image: %w", err)
	}

	switch deviceType {
	case "net":
		return printNetConfig(data)
	case "console":
		return printConsoleConfig(data)
	case "balloon":
		return printBalloonConfig(data)
	default:
		return fmt.Errorf("unsupported device type %q (net, console, balloon)", deviceType)
	}
}

func printNetConfig(data []byte) error {
	reader, err := devices.NewNetConfigReader(data)
	if err != nil {
		return err
	}

	mac := reader.Mac()
	fmt.Printf("Network device configuration\n")
	fmt.Printf("  mac:             %s\n", net.HardwareAddr(mac[:]))
	fmt.Printf("  link up:         %v\n", reader.IsLinkUp())
	fmt.Printf("  announce:        %v\n", reader.NeedsAnnounce())
	fmt.Printf("  max vq pairs:    %d\n", reader.MaxVirtqueuePairs())
	fmt.Printf("  mtu:             %d\n", reader.Mtu())
	fmt.Printf("  speed:           %d Mbps\n", reader.Speed())
	fmt.Printf("  duplex:          %d\n", reader.Duplex())
	return nil
}

func printConsoleConfig(data []byte) error {
	reader, err := devices.NewConsoleConfigReader(data)
	if err != nil {
		return err
	}

	fmt.Printf("Console device configuration\n")
	fmt.Printf("  size:            %dx%d\n", reader.Cols(), reader.Rows())
	fmt.Printf("  max ports:       %d\n", reader.MaxNrPorts())
	fmt.Printf("  emergency write: %#x\n", reader.EmergWr())
	return nil
}

func printBalloonConfig(data []byte) error {
	reader, err := devices.NewBalloonConfigReader(data)
	if err != nil {
		return err
	}

	fmt.Printf("Balloon device configuration\n")
	fmt.Printf("  num pages:       %d\n", reader.NumPages())
	fmt.Printf("  actual:          %d\n", reader.Actual())
	fmt.Printf("  free page hint:  %d\n", reader.FreePageHintCmdID())
	fmt.Printf("  poison value:    %#x\n", reader.PoisonVal())
	return nil
}
