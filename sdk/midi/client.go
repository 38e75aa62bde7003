package midi

import (
	"errors"
	"strconv"
	"sync"

	"github.com/leandrodaf/midibt/internal/bridge"
	"github.com/leandrodaf/midibt/internal/devicelist"
	"github.com/leandrodaf/midibt/internal/observer"
	"github.com/leandrodaf/midibt/internal/protocol"
	"github.com/leandrodaf/midibt/internal/reconciler"
	"github.com/leandrodaf/midibt/sdk/contracts"
	gomidi "gitlab.com/gomidi/midi/v2"
	"go.uber.org/multierr"
)

// NewMIDIClient creates a new MIDI Bluetooth client with the specified options.
// It applies default options and initializes the client. Call Start to
// subscribe to the platform.
//
// opts ...contracts.Option: A variadic list of option functions to customize the client configuration.
//
// Returns:
//   - contracts.ClientMIDI: An instance of the MIDI client.
//   - error: An error, if any occurred during the creation of the client.
func NewMIDIClient(opts ...contracts.Option) (contracts.ClientMIDI, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}

	client, err := NewClient(&options)
	if err != nil {
		return nil, err
	}

	return client, nil
}

// Client is the application-facing side of the plugin. It serializes every
// call and platform event through one mutex around the reconciler, and fires
// listener events only once the mutex is released.
type Client struct {
	transport contracts.TransportBoundary
	logger    contracts.Logger
	registry  *protocol.Registry
	facade    *bridge.Facade
	listeners observer.List[contracts.Listener]

	mu         sync.Mutex
	reconciler *reconciler.Reconciler
	adapters   map[string]protocol.Adapter // by address
}

var _ contracts.ClientMIDI = (*Client)(nil)

func newClient(transport contracts.TransportBoundary, opts *contracts.ClientOptions) *Client {
	r := reconciler.New(transport, opts.Logger, reconciler.Config{
		Automatic:            *opts.Reconnect.Automatic,
		DefaultAutoReconnect: *opts.Reconnect.DefaultAutoReconnect,
	})
	c := &Client{
		transport:  transport,
		logger:     opts.Logger,
		registry:   protocol.DefaultRegistry(),
		reconciler: r,
		adapters:   make(map[string]protocol.Adapter),
	}
	c.facade = bridge.New(clientEvents{c}, opts.Logger, opts.MIDIEventFilter)
	return c
}

// Start subscribes to the platform transport and runs a forced reconnect pass
// so that devices left open by a previous session come back.
func (c *Client) Start() error {
	c.transport.Subscribe(c.facade)

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reconciler.ForceReconnect()
}

// Stop stops scanning and closes every port and radio link.
func (c *Client) Stop() error {
	err := multierr.Combine(
		c.transport.StopScan(),
		c.transport.CloseAll(),
	)

	c.mu.Lock()
	c.adapters = make(map[string]protocol.Adapter)
	c.mu.Unlock()

	if err != nil {
		c.logger.Error("Failed to stop MIDI client", c.logger.Field().Error("error", err))
	}
	return err
}

func (c *Client) Subscribe(listener contracts.Listener) (unsubscribe func()) {
	return c.listeners.Add(listener)
}

func (c *Client) fire(fn func(contracts.Listener)) {
	c.listeners.Fire(fn)
}

// absorb logs recoverable failures and returns only malformed platform data.
func (c *Client) absorb(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, reconciler.ErrRefresh) {
		return err
	}
	c.logger.Warn("MIDI port operation failed; will retry on next status change",
		c.logger.Field().String("operation", operation),
		c.logger.Field().Error("error", err))
	return nil
}

func (c *Client) ScanMidiBluetooth() error     { return c.transport.StartScan() }
func (c *Client) StopScanMidiBluetooth() error { return c.transport.StopScan() }

// Devices returns the reconciled device list.
func (c *Client) Devices() []contracts.DeviceRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reconciler.Devices()
}

// UpdateMidiDevice refreshes the device list from the platform and delivers
// it to listeners. Bindings are left to the next status change.
func (c *Client) UpdateMidiDevice() error {
	c.mu.Lock()
	err := c.reconciler.RefreshDeviceList()
	devices := c.reconciler.Devices()
	c.mu.Unlock()

	if err != nil {
		return err
	}
	c.fire(func(l contracts.Listener) { l.OnDeviceListUpdated(devices) })
	return nil
}

func (c *Client) ConnectBluetooth(address string) error {
	return c.transport.ConnectBluetooth(address)
}

func (c *Client) DisconnectBluetooth(address string) error {
	return c.transport.DisconnectBluetooth(address)
}

// ConnectBluetoothAndOpen brings up the radio link and opens the sending port
// of deviceName.
func (c *Client) ConnectBluetoothAndOpen(address, deviceName string) error {
	if err := c.transport.ConnectBluetooth(address); err != nil {
		return err
	}
	return c.transport.OpenLogicalPort(deviceName)
}

// DisconnectBluetoothAndClose closes the sending port of deviceName and drops
// the radio link.
func (c *Client) DisconnectBluetoothAndClose(address, deviceName string) error {
	return multierr.Append(
		c.transport.CloseLogicalPort(deviceName),
		c.transport.DisconnectBluetooth(address),
	)
}

func (c *Client) OpenPort(address string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.absorb("open", c.reconciler.OpenPort(address))
}

func (c *Client) ClosePort(address string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.absorb("close", c.reconciler.ClosePort(address))
}

func (c *Client) OpenPortByName(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.absorb("open", c.reconciler.OpenPortByName(name))
}

func (c *Client) ClosePortByName(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.absorb("close", c.reconciler.ClosePortByName(name))
}

func (c *Client) SetReconnectAutomation(enabled bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reconciler.SetReconnectAutomation(enabled)
}

func (c *Client) ForceReconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reconciler.ForceReconnect()
}

// adapterFor returns the cached vendor adapter of device. Must hold c.mu.
func (c *Client) adapterFor(device contracts.DeviceRecord) protocol.Adapter {
	if a, ok := c.adapters[device.Address]; ok {
		return a
	}
	id, _ := strconv.Atoi(device.Address)
	a, _ := c.registry.Match(id, device.Name)
	c.adapters[device.Address] = a
	return a
}

type outbound struct {
	address string
	data    []byte
}

// encodeFor builds one message per target device. An empty address targets
// every connected device; an unknown address targets nothing. Empty
// encodings are skipped.
func (c *Client) encodeFor(address string, encode func(protocol.Adapter) []byte) []outbound {
	c.mu.Lock()
	defer c.mu.Unlock()

	devices := c.reconciler.Devices()
	if address == "" {
		devices = devicelist.Connected(devices, true)
	} else if d, ok := devicelist.FindByAddress(devices, address); ok {
		devices = []contracts.DeviceRecord{d}
	} else {
		c.logger.Debug("Control message for unknown device", c.logger.Field().String("address", address))
		return nil
	}

	var messages []outbound
	for _, d := range devices {
		if data := encode(c.adapterFor(d)); len(data) > 0 {
			messages = append(messages, outbound{address: d.Address, data: data})
		}
	}
	return messages
}

func (c *Client) send(messages []outbound) error {
	var err error
	for _, m := range messages {
		err = multierr.Append(err, c.transport.Send(m.address, m.data))
	}
	return err
}

// SendLEDControl switches a key LED on every connected device.
func (c *Client) SendLEDControl(isOn bool, keyIndex int) error {
	return c.SendLEDControlTo("", isOn, keyIndex)
}

func (c *Client) SendLEDControlTo(address string, isOn bool, keyIndex int) error {
	return c.send(c.encodeFor(address, func(a protocol.Adapter) []byte {
		return a.EncodeLED(isOn, keyIndex)
	}))
}

// SendVolumeControl sets the speaker volume of every connected device that
// supports it.
func (c *Client) SendVolumeControl(percent int) error {
	return c.SendVolumeControlTo("", percent)
}

func (c *Client) SendVolumeControlTo(address string, percent int) error {
	return c.send(c.encodeFor(address, func(a protocol.Adapter) []byte {
		return a.EncodeVolume(percent)
	}))
}

// SendMidiEvent writes data unchanged to every open port.
func (c *Client) SendMidiEvent(data []byte) error {
	return c.transport.Send("", data)
}

func (c *Client) SendNoteOn(channel, key, velocity uint8) error {
	return c.transport.Send("", gomidi.NoteOn(channel, key, velocity))
}

func (c *Client) SendNoteOff(channel, key uint8) error {
	return c.transport.Send("", gomidi.NoteOff(channel, key))
}

// IsInteractiveAfterMute reports whether the keyboard named deviceName keeps
// producing notes after its speaker is muted.
func (c *Client) IsInteractiveAfterMute(deviceName string) bool {
	a, ok := c.registry.Match(0, deviceName)
	if !ok {
		return true
	}
	return a.InteractiveAfterMute()
}

func (c *Client) CheckIsBluetoothEnabled() error   { return c.transport.CheckBluetoothEnabled() }
func (c *Client) CheckBluetoothPermissions() error { return c.transport.RequestPermissions() }

// OnApplicationFocus resynchronizes with the platform when the application
// regains focus, catching up on events missed in the background.
func (c *Client) OnApplicationFocus(hasFocus bool) error {
	if !hasFocus {
		return nil
	}
	return c.statusChanged()
}

func (c *Client) statusChanged() error {
	c.mu.Lock()
	err := c.reconciler.OnDeviceStatusChanged()
	c.mu.Unlock()

	c.fire(func(l contracts.Listener) { l.OnDeviceStatusChanged() })
	return err
}

func (c *Client) forget(address string) {
	c.mu.Lock()
	delete(c.adapters, address)
	c.mu.Unlock()
}

// clientEvents receives the normalized platform events.
type clientEvents struct{ c *Client }

var _ bridge.Sink = clientEvents{}

func (e clientEvents) DeviceConnected(address string) {
	e.c.forget(address)
	e.c.fire(func(l contracts.Listener) { l.OnDeviceConnected(address) })
}

func (e clientEvents) DeviceDisconnected(address string) {
	e.c.forget(address)
	e.c.fire(func(l contracts.Listener) { l.OnDeviceDisconnected(address) })
}

func (e clientEvents) DeviceStatusChanged() {
	if err := e.c.statusChanged(); err != nil {
		e.c.logger.Error("Failed to reconcile MIDI devices", e.c.logger.Field().Error("error", err))
	}
}

func (e clientEvents) ScanTick() {
	if err := e.c.UpdateMidiDevice(); err != nil {
		e.c.logger.Error("Failed to update MIDI devices", e.c.logger.Field().Error("error", err))
	}
	e.c.fire(func(l contracts.Listener) { l.OnScanTick() })
}

func (e clientEvents) ScanCompleted() {
	if err := e.c.UpdateMidiDevice(); err != nil {
		e.c.logger.Error("Failed to update MIDI devices", e.c.logger.Field().Error("error", err))
	}
	e.c.fire(func(l contracts.Listener) { l.OnScanCompleted() })
}

// PermissionResult is followed by a Bluetooth status check whatever the outcome.
func (e clientEvents) PermissionResult(granted bool) {
	e.c.fire(func(l contracts.Listener) { l.OnPermissionResult(granted) })
	if err := e.c.transport.CheckBluetoothEnabled(); err != nil {
		e.c.logger.Warn("Bluetooth status check failed", e.c.logger.Field().Error("error", err))
	}
}

func (e clientEvents) BluetoothStatus(enabled bool) {
	e.c.fire(func(l contracts.Listener) { l.OnBluetoothStatus(enabled) })
}

func (e clientEvents) NoteOn(event contracts.MIDI) {
	e.c.fire(func(l contracts.Listener) { l.OnNoteOn(event) })
}

func (e clientEvents) NoteOff(event contracts.MIDI) {
	e.c.fire(func(l contracts.Listener) { l.OnNoteOff(event) })
}

func (e clientEvents) RawBytes(data []byte) {
	e.c.fire(func(l contracts.Listener) { l.OnRawBytes(data) })
}
