package contracts

import "time"

// MIDICommand represents the types of MIDI commands for event filtering.
type MIDICommand byte

const (
	// NoteOn is the MIDI command for a Note On event (0x90).
	NoteOn MIDICommand = 0x90
	// NoteOff is the MIDI command for a Note Off event (0x80).
	NoteOff MIDICommand = 0x80
)

// DefaultMIDIServiceUUID is the BLE MIDI GATT service advertised by MIDI peripherals.
const DefaultMIDIServiceUUID = "03B80E5A-EDE8-4B33-A751-6CE34EC4C700"

// DefaultScanPeriod bounds a single BLE scan.
const DefaultScanPeriod = 10 * time.Second

// MIDIEventFilter allows users to specify which MIDI commands to capture.
type MIDIEventFilter struct {
	Commands []MIDICommand // List of MIDI commands to filter.
}

// CoreMIDIConfig holds configuration for CoreMIDI.
type CoreMIDIConfig struct {
	ClientName string // Name of the MIDI client.
}

// BluetoothConfig holds configuration for BLE discovery.
type BluetoothConfig struct {
	AdapterID   string        // Platform adapter identifier; empty selects the default adapter.
	ServiceUUID string        // Only advertisements carrying this service are reported.
	ScanPeriod  time.Duration // A scan stops itself after this period.
}

// ReconnectConfig tunes the connection reconciler.
type ReconnectConfig struct {
	// Automatic re-opens dropped auto-reconnect ports on device status changes.
	Automatic *bool
	// DefaultAutoReconnect is the flag given to bindings created by observation.
	DefaultAutoReconnect *bool
}

// ClientOptions defines the configuration options for the MIDI client.
type ClientOptions struct {
	Logger          Logger            // Logger for logging events and errors.
	LogLevel        LogLevel          // Level of logging to use.
	LogFilePath     string            // File path for logging if file logging is enabled.
	MIDIEventFilter *MIDIEventFilter  // Optional filter for MIDI events to capture.
	CoreMIDIConfig  *CoreMIDIConfig   // Configuration specific to CoreMIDI.
	BluetoothConfig *BluetoothConfig  // Configuration for BLE scanning.
	Reconnect       ReconnectConfig   // Reconciler behaviour.
	Transport       TransportBoundary // Overrides the platform transport selected by OS.
}

// Option is a function that modifies ClientOptions.
type Option func(*ClientOptions)

// WithLogger sets the logger for the MIDI client.
func WithLogger(l Logger) Option {
	return func(opts *ClientOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the MIDI client.
func WithLogLevel(level LogLevel) Option {
	return func(opts *ClientOptions) {
		opts.LogLevel = level
	}
}

// WithLogFile directs log output to the given file.
func WithLogFile(path string) Option {
	return func(opts *ClientOptions) {
		opts.LogFilePath = path
	}
}

// WithMIDIEventFilter sets the MIDI event filter for the MIDI client.
func WithMIDIEventFilter(filter MIDIEventFilter) Option {
	return func(opts *ClientOptions) {
		opts.MIDIEventFilter = &filter
	}
}

// WithCoreMIDIConfig sets the CoreMIDI configuration for the MIDI client.
func WithCoreMIDIConfig(config CoreMIDIConfig) Option {
	return func(opts *ClientOptions) {
		opts.CoreMIDIConfig = &config
	}
}

// WithBluetoothConfig sets the BLE discovery configuration.
func WithBluetoothConfig(config BluetoothConfig) Option {
	return func(opts *ClientOptions) {
		opts.BluetoothConfig = &config
	}
}

// WithReconnectAutomation enables or disables automatic reconnection.
func WithReconnectAutomation(enabled bool) Option {
	return func(opts *ClientOptions) {
		opts.Reconnect.Automatic = &enabled
	}
}

// WithDefaultAutoReconnect sets the auto-reconnect flag of newly observed devices.
func WithDefaultAutoReconnect(enabled bool) Option {
	return func(opts *ClientOptions) {
		opts.Reconnect.DefaultAutoReconnect = &enabled
	}
}

// WithTransport replaces the platform transport, typically in tests or on
// platforms without a built-in implementation.
func WithTransport(t TransportBoundary) Option {
	return func(opts *ClientOptions) {
		opts.Transport = t
	}
}
