package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-virtio/internal/parsers/negotiation"
	"github.com/deploymenttheory/go-virtio/internal/types"
)

var statusFrom string

var statusCmd = &cobra.Command{
	Use:   "status <value>",
	Short: "Decode a device status byte and validate transitions",
	Long: `Decode a device status byte into its named bits.

With --from, additionally validate the write as a status transition per
the device initialization sequence.

Examples:
  # Decode a status value
  go-virtio status 0x0f

  # Validate the FEATURES_OK write during initialization
  go-virtio status 0x0b --from 0x03`,

	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runStatus(args[0]); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVar(&statusFrom, "from", "", "previous status value, enables transition validation")
}

func parseStatusValue(s string) (types.DeviceStatus, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid status value %q: %w", s, err)
	}
	return types.DeviceStatus(v), nil
}

func runStatus(value string) error {
	status, err := parseStatusValue(value)
	if err != nil {
		return err
	}

	reader := negotiation.NewDeviceStatusReader(status)

	fmt.Printf("Status: 0x%02x (%s)\n", uint8(status), status)
	if verbose {
		fmt.Printf("  acknowledge:        %v\n", reader.HasAcknowledge())
		fmt.Printf("  driver:             %v\n", reader.HasDriver())
		fmt.Printf("  features ok:        %v\n", reader.HasFeaturesOK())
		fmt.Printf("  driver ok:          %v\n", reader.HasDriverOK())
		fmt.Printf("  device needs reset: %v\n", reader.NeedsReset())
		fmt.Printf("  failed:             %v\n", reader.HasFailed())
	}

	if statusFrom != "" {
		from, err := parseStatusValue(statusFrom)
		if err != nil {
			return err
		}
		if err := negotiation.ValidateTransition(from, status); err != nil {
			return fmt.Errorf("transition 0x%02x -> 0x%02x: %w", uint8(from), uint8(status), err)
		}
		fmt.Printf("Transition 0x%02x -> 0x%02x is valid\n", uint8(from), uint8(status))
	}

	return nil
}
