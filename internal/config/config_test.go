package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/leandrodaf/midibt/sdk/contracts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "GO MIDI Client", cfg.CoreMIDI.ClientName)
	assert.Equal(t, contracts.DefaultMIDIServiceUUID, cfg.Bluetooth.ServiceUUID)
	assert.Equal(t, contracts.DefaultScanPeriod, cfg.Bluetooth.ScanPeriod)
	assert.True(t, cfg.Reconnect.Automatic)
	assert.True(t, cfg.Reconnect.DefaultAutoReconnect)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
log_file: /tmp/midibt.log
coremidi:
  client_name: Stage Rig
bluetooth:
  adapter_id: hci1
  scan_period: 30s
reconnect:
  automatic: false
filter:
  commands: [note_on]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/midibt.log", cfg.LogFile)
	assert.Equal(t, "Stage Rig", cfg.CoreMIDI.ClientName)
	assert.Equal(t, "hci1", cfg.Bluetooth.AdapterID)
	assert.Equal(t, 30*time.Second, cfg.Bluetooth.ScanPeriod)
	assert.False(t, cfg.Reconnect.Automatic)
	assert.Equal(t, []string{"note_on"}, cfg.Filter.Commands)

	// Fields missing from the file keep their defaults.
	assert.Equal(t, contracts.DefaultMIDIServiceUUID, cfg.Bluetooth.ServiceUUID)
	assert.True(t, cfg.Reconnect.DefaultAutoReconnect)
}

func TestLoadExpandsTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	cfg, err := Load(writeConfig(t, "log_file: ~/logs/midibt.log\n"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "logs", "midibt.log"), cfg.LogFile)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "reading config file")

	_, err = Load(writeConfig(t, "log_level: [unclosed\n"))
	assert.ErrorContains(t, err, "parsing config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, "log_level"},
		{"empty client name", func(c *Config) { c.CoreMIDI.ClientName = "" }, "coremidi.client_name"},
		{"empty service uuid", func(c *Config) { c.Bluetooth.ServiceUUID = "" }, "bluetooth.service_uuid"},
		{"zero scan period", func(c *Config) { c.Bluetooth.ScanPeriod = 0 }, "bluetooth.scan_period"},
		{"unknown command", func(c *Config) { c.Filter.Commands = []string{"control_change"} }, "filter.commands"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}

func TestOptions(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "warn"
	cfg.LogFile = "/tmp/midibt.log"
	cfg.Bluetooth.AdapterID = "hci0"
	cfg.Reconnect.Automatic = false
	cfg.Filter.Commands = []string{"note_off"}

	var opts contracts.ClientOptions
	for _, opt := range cfg.Options() {
		opt(&opts)
	}

	assert.Equal(t, contracts.WarnLevel, opts.LogLevel)
	assert.Equal(t, "/tmp/midibt.log", opts.LogFilePath)
	require.NotNil(t, opts.CoreMIDIConfig)
	assert.Equal(t, "GO MIDI Client", opts.CoreMIDIConfig.ClientName)
	require.NotNil(t, opts.BluetoothConfig)
	assert.Equal(t, "hci0", opts.BluetoothConfig.AdapterID)
	assert.Equal(t, contracts.DefaultScanPeriod, opts.BluetoothConfig.ScanPeriod)
	require.NotNil(t, opts.Reconnect.Automatic)
	assert.False(t, *opts.Reconnect.Automatic)
	require.NotNil(t, opts.Reconnect.DefaultAutoReconnect)
	assert.True(t, *opts.Reconnect.DefaultAutoReconnect)
	require.NotNil(t, opts.MIDIEventFilter)
	assert.Equal(t, []contracts.MIDICommand{contracts.NoteOff}, opts.MIDIEventFilter.Commands)
}

func TestOptionsWithoutFileOrFilter(t *testing.T) {
	var opts contracts.ClientOptions
	for _, opt := range Default().Options() {
		opt(&opts)
	}

	assert.Empty(t, opts.LogFilePath)
	assert.Nil(t, opts.MIDIEventFilter)
}
