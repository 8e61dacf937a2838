package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global output flags only
	verbose      bool
	quiet        bool
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "go-virtio",
	Short: "VIRTIO structure decoder and layout calculator",
	Long: `go-virtio is a command-line tool for decoding and validating the binary
structures of the VIRTIO device protocol: device status bytes, feature
bitmaps, virtqueue memory layouts, PCI capability lists and MMIO register
blocks.

It works on raw values and memory images without any hypervisor or guest,
which makes it useful for debugging device models, drivers and traces.

Commands:
  status      Decode a device status byte and validate transitions
  features    Decode feature bitmaps and compute negotiation results
  layout      Compute split or packed virtqueue memory layouts
  caps        Walk the virtio capabilities of a PCI config space image
  mmio        Decode an MMIO register block image
  device      Decode a device configuration space image`,
	Version: "0.1.0-dev",
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Only global output control flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output except errors")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format (table, json)")
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}

// GetQuiet returns the quiet flag value
func GetQuiet() bool {
	return quiet
}

// GetOutputFormat returns the output format
func GetOutputFormat() string {
	return outputFormat
}
