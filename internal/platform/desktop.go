// Package platform provides contracts.TransportBoundary implementations.
package platform

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/leandrodaf/midibt/internal/bluetooth"
	"github.com/leandrodaf/midibt/internal/devicelist"
	"github.com/leandrodaf/midibt/sdk/contracts"
	"go.uber.org/multierr"
)

// ErrUnknownDevice is returned for an address the platform does not know.
var ErrUnknownDevice = errors.New("unknown device")

// Scanner is the BLE side of the desktop transport. *bluetooth.Manager
// implements it.
type Scanner interface {
	SetListener(l bluetooth.Listener)
	Enable() error
	Scan() error
	StopScan() error
	Connect(address string) error
	Disconnect(address string) error
	DisconnectAll() map[string]error
	Devices() []contracts.DeviceRecord
}

const eventQueueSize = 64

// Desktop combines a BLE scanner with an OS MIDI port client. Events are
// delivered in order from a dedicated goroutine, never from inside a call.
type Desktop struct {
	scanner Scanner
	ports   contracts.PortClient
	logger  contracts.Logger

	mu       sync.Mutex
	handler  contracts.TransportHandler
	enabled  bool
	physical map[string]string // address -> input port name
	logical  map[string]struct{}

	events chan func()
	done   chan struct{}
	once   sync.Once
}

var (
	_ contracts.TransportBoundary = (*Desktop)(nil)
	_ Scanner                     = (*bluetooth.Manager)(nil)
)

// NewDesktop creates the desktop transport and starts its event loop.
func NewDesktop(scanner Scanner, ports contracts.PortClient, logger contracts.Logger) *Desktop {
	d := &Desktop{
		scanner:  scanner,
		ports:    ports,
		logger:   logger,
		physical: make(map[string]string),
		logical:  make(map[string]struct{}),
		events:   make(chan func(), eventQueueSize),
		done:     make(chan struct{}),
	}
	scanner.SetListener(scannerEvents{d})
	go d.loop()
	return d
}

func (d *Desktop) loop() {
	for {
		select {
		case fn := <-d.events:
			fn()
		case <-d.done:
			return
		}
	}
}

// emit queues an event for the current handler. Events are dropped without
// a handler or when the queue is full.
func (d *Desktop) emit(fn func(h contracts.TransportHandler)) {
	d.mu.Lock()
	h := d.handler
	d.mu.Unlock()
	if h == nil {
		return
	}

	select {
	case d.events <- func() { fn(h) }:
	default:
		d.logger.Warn("Transport event queue full; dropping event")
	}
}

func (d *Desktop) Subscribe(handler contracts.TransportHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handler = handler
}

func (d *Desktop) enable() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.enabled {
		return nil
	}
	if err := d.scanner.Enable(); err != nil {
		return err
	}
	d.enabled = true
	return nil
}

func (d *Desktop) StartScan() error {
	if err := d.enable(); err != nil {
		return err
	}
	return d.scanner.Scan()
}

func (d *Desktop) StopScan() error {
	return d.scanner.StopScan()
}

// devices merges BLE peripherals with OS MIDI endpoints. An endpoint named
// like a peripheral is that peripheral's port.
func (d *Desktop) devices() ([]contracts.DeviceRecord, error) {
	endpoints, err := d.ports.ListDevices()
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	peripherals := d.scanner.Devices()
	byName := make(map[string]struct{}, len(peripherals))
	records := make([]contracts.DeviceRecord, 0, len(peripherals)+len(endpoints))
	for _, p := range peripherals {
		byName[p.Name] = struct{}{}
		_, open := d.physical[p.Address]
		p.Connected = p.Connected && open
		records = append(records, p)
	}
	for _, e := range endpoints {
		if _, ok := byName[e.Name]; ok {
			continue
		}
		_, open := d.physical[e.Address]
		e.Connected = open
		e.Type = contracts.ConnectionWired
		records = append(records, e)
	}
	return records, nil
}

func (d *Desktop) DiscoverableDevices() ([]contracts.DeviceRecord, error) {
	records, err := d.devices()
	if err != nil {
		return nil, err
	}
	return devicelist.Connected(records, false), nil
}

func (d *Desktop) ConnectedDevices() ([]contracts.DeviceRecord, error) {
	records, err := d.devices()
	if err != nil {
		return nil, err
	}
	return devicelist.Connected(records, true), nil
}

func (d *Desktop) lookup(address string) (contracts.DeviceRecord, error) {
	records, err := d.devices()
	if err != nil {
		return contracts.DeviceRecord{}, err
	}
	record, ok := devicelist.FindByAddress(records, address)
	if !ok {
		return contracts.DeviceRecord{}, fmt.Errorf("%w: %s", ErrUnknownDevice, address)
	}
	return record, nil
}

func (d *Desktop) ConnectBluetooth(address string) error {
	if err := d.enable(); err != nil {
		return err
	}
	return d.scanner.Connect(address)
}

func (d *Desktop) DisconnectBluetooth(address string) error {
	return d.scanner.Disconnect(address)
}

// OpenPhysical brings up the radio link of a BLE peripheral and starts
// receiving from its MIDI endpoint.
func (d *Desktop) OpenPhysical(address string) error {
	record, err := d.lookup(address)
	if err != nil {
		return err
	}

	if record.Type == contracts.ConnectionBluetooth {
		if err := d.ConnectBluetooth(address); err != nil {
			return err
		}
	}
	if err := d.ports.OpenInput(record.Name, d.receive); err != nil {
		return err
	}

	d.mu.Lock()
	d.physical[address] = record.Name
	d.mu.Unlock()

	d.emit(func(h contracts.TransportHandler) { h.OnDeviceStatusChanged() })
	return nil
}

func (d *Desktop) ClosePhysical(address string) error {
	d.mu.Lock()
	name, open := d.physical[address]
	delete(d.physical, address)
	d.mu.Unlock()

	if !open {
		return nil
	}

	err := d.ports.CloseInput(name)
	if record, lerr := d.lookup(address); lerr == nil && record.Type == contracts.ConnectionBluetooth {
		err = multierr.Append(err, d.scanner.Disconnect(address))
	}

	d.emit(func(h contracts.TransportHandler) { h.OnDeviceStatusChanged() })
	return err
}

func (d *Desktop) OpenLogicalPort(name string) error {
	if err := d.ports.OpenOutput(name); err != nil {
		return err
	}
	d.mu.Lock()
	d.logical[name] = struct{}{}
	d.mu.Unlock()
	return nil
}

func (d *Desktop) CloseLogicalPort(name string) error {
	d.mu.Lock()
	delete(d.logical, name)
	d.mu.Unlock()
	return d.ports.CloseOutput(name)
}

func (d *Desktop) receive(data []byte) {
	d.mu.Lock()
	h := d.handler
	d.mu.Unlock()
	if h != nil {
		h.OnRawBytes(data)
	}
}

// Send writes data to the output port of address, or to every open output
// port when address is empty.
func (d *Desktop) Send(address string, data []byte) error {
	if address == "" {
		d.mu.Lock()
		names := make([]string, 0, len(d.logical))
		for name := range d.logical {
			names = append(names, name)
		}
		d.mu.Unlock()

		var err error
		for _, name := range names {
			err = multierr.Append(err, d.ports.Send(name, data))
		}
		return err
	}

	record, err := d.lookup(address)
	if err != nil {
		return err
	}
	return d.ports.Send(record.Name, data)
}

// CheckBluetoothEnabled reports the adapter state through OnBluetoothStatus.
func (d *Desktop) CheckBluetoothEnabled() error {
	status := strconv.FormatBool(d.enable() == nil)
	d.emit(func(h contracts.TransportHandler) {
		if err := h.OnBluetoothStatus(status); err != nil {
			d.logger.Error("Bluetooth status rejected", d.logger.Field().Error("error", err))
		}
	})
	return nil
}

// RequestPermissions has no dialog on desktop: access is granted when the
// adapter can be enabled.
func (d *Desktop) RequestPermissions() error {
	granted := d.enable() == nil
	d.emit(func(h contracts.TransportHandler) { h.OnPermissionResult(granted) })
	return nil
}

// CloseAll stops scanning, closes every port and radio link, and stops the
// event loop.
func (d *Desktop) CloseAll() error {
	err := d.scanner.StopScan()
	err = multierr.Append(err, d.ports.Stop())
	for address, derr := range d.scanner.DisconnectAll() {
		err = multierr.Append(err, fmt.Errorf("disconnecting %s: %w", address, derr))
	}

	d.mu.Lock()
	d.physical = make(map[string]string)
	d.logical = make(map[string]struct{})
	d.mu.Unlock()

	d.once.Do(func() { close(d.done) })
	return err
}

// scannerEvents moves scanner callbacks onto the event loop.
type scannerEvents struct{ d *Desktop }

// A radio link change is followed by a status change so that dropped
// auto-reconnect ports are reopened.
func (s scannerEvents) OnConnected(address string) {
	s.d.emit(func(h contracts.TransportHandler) { h.OnConnected(address) })
	s.d.emit(func(h contracts.TransportHandler) { h.OnDeviceStatusChanged() })
}

func (s scannerEvents) OnDisconnected(address string) {
	s.d.emit(func(h contracts.TransportHandler) { h.OnDisconnected(address) })
	s.d.emit(func(h contracts.TransportHandler) { h.OnDeviceStatusChanged() })
}

func (s scannerEvents) OnScanTick() {
	s.d.emit(func(h contracts.TransportHandler) { h.OnScanTick() })
}

func (s scannerEvents) OnScanCompleted() {
	s.d.emit(func(h contracts.TransportHandler) { h.OnScanCompleted() })
}
