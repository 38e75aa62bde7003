package bluetooth

import (
	"errors"
	"fmt"
	"sync"

	"tinygo.org/x/bluetooth"
)

var (
	ErrAdapterInvalidID = errors.New("the bluetooth adapter ID is invalid")
	ErrNotConnected     = errors.New("device is not connected")
)

// Advertisement is a scan result carrying the MIDI service.
type Advertisement struct {
	Address   string
	LocalName string
}

// Radio is the BLE adapter surface the manager needs.
type Radio interface {
	Enable() error
	// Scan blocks until StopScan is called, reporting MIDI advertisements.
	Scan(found func(Advertisement)) error
	StopScan() error
	Connect(address string) error
	Disconnect(address string) error
	SetConnectHandler(handler func(address string, connected bool))
}

type tinygoRadio struct {
	adapter *bluetooth.Adapter
	service bluetooth.UUID

	mu      sync.Mutex
	devices map[string]bluetooth.Device
}

// NewRadio returns a Radio over the tinygo adapter identified by adapterID
// (empty for the default adapter) that only reports advertisements of serviceUUID.
func NewRadio(adapterID, serviceUUID string) (Radio, error) {
	adapter, err := newAdapter(adapterID)
	if err != nil {
		return nil, err
	}
	service, err := bluetooth.ParseUUID(serviceUUID)
	if err != nil {
		return nil, fmt.Errorf("ble: invalid service UUID %q: %w", serviceUUID, err)
	}
	return &tinygoRadio{
		adapter: adapter,
		service: service,
		devices: make(map[string]bluetooth.Device),
	}, nil
}

func (r *tinygoRadio) Enable() error {
	if err := r.adapter.Enable(); err != nil {
		return fmt.Errorf("ble: failed to enable device: %w", err)
	}
	return nil
}

func (r *tinygoRadio) Scan(found func(Advertisement)) error {
	return r.adapter.Scan(func(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
		if !result.HasServiceUUID(r.service) {
			return
		}
		found(Advertisement{
			Address:   result.Address.String(),
			LocalName: result.LocalName(),
		})
	})
}

// StopScan is only called by the manager while a scan runs.
func (r *tinygoRadio) StopScan() error {
	return r.adapter.StopScan()
}

func (r *tinygoRadio) Connect(address string) error {
	addr, err := parseAddress(address)
	if err != nil {
		return err
	}
	device, err := r.adapter.Connect(addr, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("ble: failed to connect to %s: %w", address, err)
	}

	r.mu.Lock()
	r.devices[address] = device
	r.mu.Unlock()
	return nil
}

func (r *tinygoRadio) Disconnect(address string) error {
	r.mu.Lock()
	device, ok := r.devices[address]
	delete(r.devices, address)
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrNotConnected, address)
	}
	return device.Disconnect()
}

func (r *tinygoRadio) SetConnectHandler(handler func(address string, connected bool)) {
	r.adapter.SetConnectHandler(func(device bluetooth.Device, connected bool) {
		handler(device.Address.String(), connected)
	})
}
