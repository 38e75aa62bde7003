package contracts

// ConnectionType tells how a device reaches the host.
type ConnectionType string

const (
	// ConnectionUnknown is used when the platform does not report a transport.
	ConnectionUnknown ConnectionType = "UNKNOW"
	// ConnectionBluetooth marks a BLE MIDI peripheral.
	ConnectionBluetooth ConnectionType = "BLUETOOTH"
	// ConnectionWired marks a USB or otherwise cabled MIDI endpoint.
	ConnectionWired ConnectionType = "WIRED"
)

// DeviceRecord describes a MIDI device as reported by the platform.
//
// Two records describe the same device when Address and Name match; the
// connection state and endpoint ids are ignored for identity.
type DeviceRecord struct {
	Address       string         // Stable device address (MAC or platform-assigned id).
	Name          string         // Human-readable device name.
	Connected     bool           // Whether a port to the device is currently open.
	Type          ConnectionType // Transport the device was found on.
	SourceID      int            // Optional protocol source endpoint id.
	DestinationID int            // Optional protocol destination endpoint id.
}

// DeviceKey is the identity of a DeviceRecord.
type DeviceKey struct {
	Address string
	Name    string
}

// Key returns the identity used for set operations on device lists.
func (d DeviceRecord) Key() DeviceKey {
	return DeviceKey{Address: d.Address, Name: d.Name}
}

// SameDevice reports whether d and other identify the same physical device.
func (d DeviceRecord) SameDevice(other DeviceRecord) bool {
	return d.Key() == other.Key()
}
