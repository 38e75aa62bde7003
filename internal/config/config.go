// Package config loads the client configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/leandrodaf/midibt/sdk/contracts"
	"gopkg.in/yaml.v3"
)

// Config holds all client configuration.
type Config struct {
	LogLevel  string          `yaml:"log_level"`
	LogFile   string          `yaml:"log_file"`
	CoreMIDI  CoreMIDIConfig  `yaml:"coremidi"`
	Bluetooth BluetoothConfig `yaml:"bluetooth"`
	Reconnect ReconnectConfig `yaml:"reconnect"`
	Filter    FilterConfig    `yaml:"filter"`
}

// CoreMIDIConfig holds CoreMIDI settings.
type CoreMIDIConfig struct {
	ClientName string `yaml:"client_name"`
}

// BluetoothConfig holds BLE discovery settings.
type BluetoothConfig struct {
	AdapterID   string        `yaml:"adapter_id"`
	ServiceUUID string        `yaml:"service_uuid"`
	ScanPeriod  time.Duration `yaml:"scan_period"`
}

// ReconnectConfig holds reconciler settings.
type ReconnectConfig struct {
	Automatic            bool `yaml:"automatic"`
	DefaultAutoReconnect bool `yaml:"default_auto_reconnect"`
}

// FilterConfig restricts the incoming events delivered to listeners.
type FilterConfig struct {
	Commands []string `yaml:"commands"` // "note_on" or "note_off"; empty delivers all
}

var commandNames = map[string]contracts.MIDICommand{
	"note_on":  contracts.NoteOn,
	"note_off": contracts.NoteOff,
}

var logLevels = map[string]contracts.LogLevel{
	"debug": contracts.DebugLevel,
	"info":  contracts.InfoLevel,
	"warn":  contracts.WarnLevel,
	"error": contracts.ErrorLevel,
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "midibt", "config.yaml")
}

// Default returns a Config with the client defaults.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		CoreMIDI: CoreMIDIConfig{
			ClientName: "GO MIDI Client",
		},
		Bluetooth: BluetoothConfig{
			ServiceUUID: contracts.DefaultMIDIServiceUUID,
			ScanPeriod:  contracts.DefaultScanPeriod,
		},
		Reconnect: ReconnectConfig{
			Automatic:            true,
			DefaultAutoReconnect: true,
		},
	}
}

// Load reads and parses a YAML config file. Missing fields keep their
// defaults. A leading ~ in log_file is expanded to the user's home directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.LogFile = expandTilde(cfg.LogFile)

	return cfg, nil
}

// Validate checks the config for invalid values.
func (c *Config) Validate() error {
	if _, ok := logLevels[c.LogLevel]; !ok {
		return fmt.Errorf("log_level must be debug, info, warn, or error, got %q", c.LogLevel)
	}

	if c.CoreMIDI.ClientName == "" {
		return fmt.Errorf("coremidi.client_name must not be empty")
	}

	if c.Bluetooth.ServiceUUID == "" {
		return fmt.Errorf("bluetooth.service_uuid must not be empty")
	}

	if c.Bluetooth.ScanPeriod <= 0 {
		return fmt.Errorf("bluetooth.scan_period must be > 0")
	}

	for _, name := range c.Filter.Commands {
		if _, ok := commandNames[name]; !ok {
			return fmt.Errorf("filter.commands must contain note_on or note_off, got %q", name)
		}
	}

	return nil
}

// Options converts a validated config into client options.
func (c *Config) Options() []contracts.Option {
	opts := []contracts.Option{
		contracts.WithLogLevel(logLevels[c.LogLevel]),
		contracts.WithCoreMIDIConfig(contracts.CoreMIDIConfig{ClientName: c.CoreMIDI.ClientName}),
		contracts.WithBluetoothConfig(contracts.BluetoothConfig{
			AdapterID:   c.Bluetooth.AdapterID,
			ServiceUUID: c.Bluetooth.ServiceUUID,
			ScanPeriod:  c.Bluetooth.ScanPeriod,
		}),
		contracts.WithReconnectAutomation(c.Reconnect.Automatic),
		contracts.WithDefaultAutoReconnect(c.Reconnect.DefaultAutoReconnect),
	}

	if c.LogFile != "" {
		opts = append(opts, contracts.WithLogFile(c.LogFile))
	}

	if len(c.Filter.Commands) > 0 {
		filter := contracts.MIDIEventFilter{}
		for _, name := range c.Filter.Commands {
			filter.Commands = append(filter.Commands, commandNames[name])
		}
		opts = append(opts, contracts.WithMIDIEventFilter(filter))
	}

	return opts
}

// expandTilde replaces a leading ~ with the user's home directory.
func expandTilde(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
