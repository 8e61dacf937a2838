package cmd

import (
	"fmt"

	"github.com/spf13/viper"
)

// ToolConfig holds tool-wide defaults loaded from a config file or the
// environment.
type ToolConfig struct {
	DefaultQueueSize uint16 `mapstructure:"default_queue_size"`
	EventIdx         bool   `mapstructure:"event_idx"`
	PackedRing       bool   `mapstructure:"packed_ring"`
	OutputFormat     string `mapstructure:"output_format"`
}

// LoadToolConfig loads tool configuration using Viper
func LoadToolConfig() (*ToolConfig, error) {
	viper.SetConfigName("virtio-config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("$HOME/.virtio")
	viper.AddConfigPath("/etc/virtio")

	// Set defaults
	viper.SetDefault("default_queue_size", 256)
	viper.SetDefault("event_idx", false)
	viper.SetDefault("packed_ring", false)
	viper.SetDefault("output_format", "table")

	// Allow environment variables
	viper.SetEnvPrefix("VIRTIO")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	var config ToolConfig
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}
