package midi

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/leandrodaf/midibt/internal/bluetooth"
	"github.com/leandrodaf/midibt/internal/midi/mididarwin"
	"github.com/leandrodaf/midibt/internal/midi/midiwindows"
	"github.com/leandrodaf/midibt/internal/platform"
	"github.com/leandrodaf/midibt/sdk/contracts"
)

// ErrUnsupportedOS is returned when the operating system has no built-in
// transport and none was supplied with contracts.WithTransport.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// transportInitializers maps OS names to the port client of their desktop transport.
var transportInitializers = map[string]func(*contracts.ClientOptions) (contracts.PortClient, error){
	"darwin":  mididarwin.NewPortClient,  // macOS (Darwin) CoreMIDI ports.
	"windows": midiwindows.NewPortClient, // Windows WinMM ports.
}

// NewTransport builds the desktop transport of the current operating system:
// a BLE scanner paired with the OS MIDI port client.
//
// Returns:
//   - contracts.TransportBoundary: The platform transport.
//   - error: ErrUnsupportedOS, or an error raised while opening the radio or the ports.
func NewTransport(opts *contracts.ClientOptions) (contracts.TransportBoundary, error) {
	initializer, exists := transportInitializers[runtime.GOOS]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, runtime.GOOS)
	}

	radio, err := bluetooth.NewRadio(opts.BluetoothConfig.AdapterID, opts.BluetoothConfig.ServiceUUID)
	if err != nil {
		return nil, err
	}

	ports, err := initializer(opts)
	if err != nil {
		return nil, err
	}

	scanner := bluetooth.NewManager(radio, opts.Logger, opts.BluetoothConfig.ScanPeriod)
	return platform.NewDesktop(scanner, ports, opts.Logger), nil
}

// NewClient initializes the client on top of opts.Transport, or on the
// transport of the current operating system when none is set.
//
// opts *contracts.ClientOptions: Configuration options with defaults applied.
//
// Returns:
//   - *Client: The MIDI Bluetooth client.
//   - error: An error if the operating system is unsupported or if initialization fails.
func NewClient(opts *contracts.ClientOptions) (*Client, error) {
	transport := opts.Transport
	if transport == nil {
		var err error
		if transport, err = NewTransport(opts); err != nil {
			return nil, err
		}
	}
	return newClient(transport, opts), nil
}

// NewNativeTransport wraps an embedded native plugin. Pass the result to
// contracts.WithTransport and forward the plugin's events to its Dispatch.
func NewNativeTransport(host contracts.NativeHost, logger contracts.Logger) contracts.NativeTransport {
	return platform.NewNative(host, logger)
}
