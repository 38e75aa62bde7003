package contracts

//go:generate mockgen -destination=../../internal/mocks/mock_contracts.go -package=mocks github.com/leandrodaf/midibt/sdk/contracts TransportBoundary,PortClient

// TransportHandler receives the asynchronous events of a TransportBoundary.
// Implementations must not block: platforms call them from their own callback context.
type TransportHandler interface {
	OnConnected(address string)
	OnDisconnected(address string)
	OnScanTick()
	OnScanCompleted()
	OnDeviceStatusChanged()
	OnRawBytes(data []byte)
	OnPermissionResult(granted bool)
	// OnBluetoothStatus receives the adapter status as reported by the platform
	// ("true"/"false"). A malformed value is returned as an error to the platform.
	OnBluetoothStatus(status string) error
}

// TransportBoundary is the capability interface one platform implementation
// provides: BLE scanning and radio links plus logical MIDI ports.
//
// Open and close requests are fire-and-forget; their outcome surfaces later as
// OnConnected/OnDisconnected/OnDeviceStatusChanged events. Repeated opens of an
// already open address must succeed.
type TransportBoundary interface {
	Subscribe(handler TransportHandler)

	StartScan() error
	StopScan() error

	DiscoverableDevices() ([]DeviceRecord, error) // Known devices with no open port.
	ConnectedDevices() ([]DeviceRecord, error)    // Devices with an open port.

	ConnectBluetooth(address string) error    // Establishes the radio link only.
	DisconnectBluetooth(address string) error // Drops the radio link only.

	OpenPhysical(address string) error  // Opens the device link and its receiving port.
	ClosePhysical(address string) error // Closes the device link and its receiving port.
	OpenLogicalPort(name string) error  // Opens the sending port of the named device.
	CloseLogicalPort(name string) error // Closes the sending port of the named device.

	Send(address string, data []byte) error // An empty address sends to every open port.

	CheckBluetoothEnabled() error
	RequestPermissions() error

	CloseAll() error
}

// NativeHost is the string-call surface of an embedded native MIDI plugin
// (a mobile OS plugin reached through a language bridge). Events must be
// dispatched from the host's own thread, never from inside Call.
type NativeHost interface {
	Call(method string, args ...string) (string, error)
}

// NativeTransport is a TransportBoundary driven by a NativeHost. The host
// glue delivers every plugin event through Dispatch.
type NativeTransport interface {
	TransportBoundary
	Dispatch(event, payload string) error
}
