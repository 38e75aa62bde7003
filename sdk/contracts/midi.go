package contracts

// MIDI represents an incoming MIDI channel message.
type MIDI struct {
	Timestamp uint64 // Timestamp indicates the time the event occurred.
	Command   byte   // Command is the status byte with the channel nibble cleared (e.g., 0x90).
	Channel   byte   // Channel is the low nibble of the status byte (0-15).
	Note      byte   // Note represents the MIDI note number (0-127).
	Velocity  byte   // Velocity indicates the strength of the note being played (0-127).
	Raw       []byte // Raw holds the bytes exactly as received.
}

// PortClient is the platform MIDI transport: it opens logical ports by endpoint
// name, sends raw byte buffers and delivers received buffers to a callback.
type PortClient interface {
	ListDevices() ([]DeviceRecord, error)              // Lists the MIDI endpoints the OS knows about.
	OpenInput(name string, receive func([]byte)) error // Starts receiving from the named endpoint.
	CloseInput(name string) error                      // Stops receiving from the named endpoint.
	OpenOutput(name string) error                      // Opens the named endpoint for sending.
	CloseOutput(name string) error                     // Closes the named output endpoint.
	Send(name string, data []byte) error               // Sends a raw buffer to an open output endpoint.
	Stop() error                                       // Closes every port and releases resources.
}

// ClientMIDI is the application-facing API of the MIDI Bluetooth plugin.
type ClientMIDI interface {
	Start() error // Subscribes to the platform and runs the initial reconnect pass.
	Stop() error  // Disconnects every device and releases resources.

	ScanMidiBluetooth() error     // Starts (or toggles off) a BLE scan.
	StopScanMidiBluetooth() error // Stops a running BLE scan.
	Devices() []DeviceRecord      // Current reconciled device list.
	UpdateMidiDevice() error      // Refreshes the device list from the platform.

	ConnectBluetooth(address string) error
	DisconnectBluetooth(address string) error
	ConnectBluetoothAndOpen(address, deviceName string) error
	DisconnectBluetoothAndClose(address, deviceName string) error

	OpenPort(address string) error
	ClosePort(address string) error
	OpenPortByName(name string) error
	ClosePortByName(name string) error
	SetReconnectAutomation(enabled bool) error
	ForceReconnect() error

	SendLEDControl(isOn bool, keyIndex int) error
	SendLEDControlTo(address string, isOn bool, keyIndex int) error
	SendVolumeControl(percent int) error
	SendVolumeControlTo(address string, percent int) error
	SendMidiEvent(data []byte) error
	SendNoteOn(channel, key, velocity uint8) error
	SendNoteOff(channel, key uint8) error
	IsInteractiveAfterMute(deviceName string) bool

	CheckIsBluetoothEnabled() error
	CheckBluetoothPermissions() error
	OnApplicationFocus(hasFocus bool) error

	Subscribe(listener Listener) (unsubscribe func()) // Registers an application listener.
}
