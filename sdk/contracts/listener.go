package contracts

// Listener receives application-facing events. Delivery is fire-and-forget:
// events raised while no listener is registered are dropped.
//
// Embed BaseListener to implement only the callbacks you need.
type Listener interface {
	OnDeviceConnected(address string)
	OnDeviceDisconnected(address string)
	OnDeviceStatusChanged()
	OnScanTick()
	OnScanCompleted()
	OnDeviceListUpdated(devices []DeviceRecord)
	OnPermissionResult(granted bool)
	OnBluetoothStatus(enabled bool)
	OnNoteOn(event MIDI)
	OnNoteOff(event MIDI)
	OnRawBytes(data []byte)
}

// BaseListener ignores every event.
type BaseListener struct{}

func (BaseListener) OnDeviceConnected(string)           {}
func (BaseListener) OnDeviceDisconnected(string)        {}
func (BaseListener) OnDeviceStatusChanged()             {}
func (BaseListener) OnScanTick()                        {}
func (BaseListener) OnScanCompleted()                   {}
func (BaseListener) OnDeviceListUpdated([]DeviceRecord) {}
func (BaseListener) OnPermissionResult(bool)            {}
func (BaseListener) OnBluetoothStatus(bool)             {}
func (BaseListener) OnNoteOn(MIDI)                      {}
func (BaseListener) OnNoteOff(MIDI)                     {}
func (BaseListener) OnRawBytes([]byte)                  {}
