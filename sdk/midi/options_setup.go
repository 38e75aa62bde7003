package midi

import (
	"github.com/leandrodaf/midibt/internal/logger"
	"github.com/leandrodaf/midibt/sdk/contracts"
)

// applyDefaultOptions sets default values for ClientOptions if not explicitly provided.
//
// opts ...contracts.Option: A variadic list of option functions that can modify ClientOptions.
//
// Returns:
//   - contracts.ClientOptions: A structure containing the finalized client options with defaults applied.
//   - error: An error if there was an issue applying the options.
func applyDefaultOptions(opts ...contracts.Option) (contracts.ClientOptions, error) {
	options := &contracts.ClientOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// Set defaults if options are not provided
	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.LogLevel == 0 {
		options.LogLevel = contracts.InfoLevel
	}

	if options.CoreMIDIConfig == nil {
		options.CoreMIDIConfig = &contracts.CoreMIDIConfig{ClientName: "GO MIDI Client"}
	}

	if options.BluetoothConfig == nil {
		options.BluetoothConfig = &contracts.BluetoothConfig{}
	}
	if options.BluetoothConfig.ServiceUUID == "" {
		options.BluetoothConfig.ServiceUUID = contracts.DefaultMIDIServiceUUID
	}
	if options.BluetoothConfig.ScanPeriod <= 0 {
		options.BluetoothConfig.ScanPeriod = contracts.DefaultScanPeriod
	}

	enabled := true
	if options.Reconnect.Automatic == nil {
		options.Reconnect.Automatic = &enabled
	}
	if options.Reconnect.DefaultAutoReconnect == nil {
		options.Reconnect.DefaultAutoReconnect = &enabled
	}

	options.Logger.SetLevel(options.LogLevel)
	if options.LogFilePath != "" {
		options.Logger.SetDestination(contracts.FileLog, options.LogFilePath)
	}
	return *options, nil
}
