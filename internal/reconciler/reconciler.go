// Package reconciler keeps the list of known MIDI devices and the table of
// port bindings in step with what the platform reports, and re-opens ports
// that dropped while marked for automatic reconnection.
//
// A Reconciler is owned by a single goroutine (or by a caller holding its own
// lock); it performs no locking itself.
package reconciler

import (
	"errors"
	"fmt"

	"github.com/leandrodaf/midibt/internal/devicelist"
	"github.com/leandrodaf/midibt/sdk/contracts"
)

var (
	// ErrRefresh is returned when the platform device queries fail.
	ErrRefresh = errors.New("error refreshing device list")
	// ErrOpenPort is returned when the platform refuses to open a port.
	ErrOpenPort = errors.New("error opening port")
	// ErrClosePort is returned when the platform refuses to close a port.
	ErrClosePort = errors.New("error closing port")
)

// Transport is the part of contracts.TransportBoundary the reconciler drives.
type Transport interface {
	DiscoverableDevices() ([]contracts.DeviceRecord, error)
	ConnectedDevices() ([]contracts.DeviceRecord, error)
	OpenPhysical(address string) error
	ClosePhysical(address string) error
	OpenLogicalPort(name string) error
	CloseLogicalPort(name string) error
}

// State is the lifecycle position of one tracked address.
type State int

const (
	StateAbsent       State = iota // No binding; the address is not tracked.
	StateDiscoverable              // Seen but never opened or closed explicitly.
	StateOpenManual                // Explicitly managed with auto-reconnect off.
	StateOpenAuto                  // Explicitly opened with auto-reconnect on.
)

func (s State) String() string {
	switch s {
	case StateDiscoverable:
		return "discoverable"
	case StateOpenManual:
		return "open-manual"
	case StateOpenAuto:
		return "open-auto"
	default:
		return "absent"
	}
}

// PortBinding is the logical data channel of one device address.
type PortBinding struct {
	Address       string
	AutoReconnect bool
	managed       bool
}

// State derives the binding's lifecycle state.
func (b PortBinding) State() State {
	switch {
	case !b.managed:
		return StateDiscoverable
	case b.AutoReconnect:
		return StateOpenAuto
	default:
		return StateOpenManual
	}
}

// Config tunes reconnect behaviour.
type Config struct {
	// Automatic lets OnDeviceStatusChanged trigger ReconnectAll.
	Automatic bool
	// DefaultAutoReconnect is the flag given to bindings created by observation.
	DefaultAutoReconnect bool
}

// Reconciler owns the device list and the binding table.
type Reconciler struct {
	transport Transport
	logger    contracts.Logger
	config    Config

	devices  []contracts.DeviceRecord
	bindings []*PortBinding
}

// New creates a reconciler with an empty device list.
func New(transport Transport, logger contracts.Logger, config Config) *Reconciler {
	return &Reconciler{
		transport: transport,
		logger:    logger,
		config:    config,
		devices:   []contracts.DeviceRecord{},
	}
}

// RefreshDeviceList replaces the device list with the union of the connected
// and discoverable devices. Port bindings are left untouched. On error the
// previous list is kept.
func (r *Reconciler) RefreshDeviceList() error {
	connected, err := r.transport.ConnectedDevices()
	if err != nil {
		return fmt.Errorf("%w: connected devices: %w", ErrRefresh, err)
	}
	discoverable, err := r.transport.DiscoverableDevices()
	if err != nil {
		return fmt.Errorf("%w: discoverable devices: %w", ErrRefresh, err)
	}

	r.devices = devicelist.Union(connected, discoverable)
	r.logger.Debug("Device list refreshed",
		r.logger.Field().Int("connected", len(connected)),
		r.logger.Field().Int("discoverable", len(discoverable)),
		r.logger.Field().Int("devices", len(r.devices)))
	return nil
}

// ReconcilePorts drops bindings whose address left the device list and adds
// one binding for every newly seen address. Existing bindings keep their flags.
func (r *Reconciler) ReconcilePorts() {
	present := make(map[string]struct{}, len(r.devices))
	for _, d := range r.devices {
		present[d.Address] = struct{}{}
	}

	kept := make([]*PortBinding, 0, len(r.bindings))
	tracked := make(map[string]struct{}, len(r.bindings))
	for _, b := range r.bindings {
		if _, ok := present[b.Address]; !ok {
			r.logger.Debug("Pruning port binding", r.logger.Field().String("address", b.Address))
			continue
		}
		kept = append(kept, b)
		tracked[b.Address] = struct{}{}
	}

	for _, d := range r.devices {
		if _, ok := tracked[d.Address]; ok {
			continue
		}
		tracked[d.Address] = struct{}{}
		kept = append(kept, &PortBinding{Address: d.Address, AutoReconnect: r.config.DefaultAutoReconnect})
	}

	r.bindings = kept
}

// OnDeviceStatusChanged runs a reconcile pass: refresh, reconcile, then
// reconnect when the device list is empty or out of sync and automatic
// reconnection is enabled.
func (r *Reconciler) OnDeviceStatusChanged() error {
	if err := r.RefreshDeviceList(); err != nil {
		return err
	}
	r.ReconcilePorts()

	if len(r.devices) != 0 && !r.outOfSync() {
		return nil
	}
	if !r.config.Automatic {
		r.logger.Debug("Reconnect needed but automation is disabled")
		return nil
	}

	r.ReconnectAll()
	return nil
}

// outOfSync reports whether any device disagrees with its binding: an
// auto-reconnect binding whose device is not connected, or a manually closed
// binding whose device still reports connected.
func (r *Reconciler) outOfSync() bool {
	for _, d := range r.devices {
		b := r.binding(d.Address)
		if b == nil {
			if !d.Connected {
				return true
			}
			continue
		}
		if !d.Connected && b.AutoReconnect {
			return true
		}
		if d.Connected && b.managed && !b.AutoReconnect {
			return true
		}
	}
	return false
}

// ReconnectAll closes and re-opens every auto-reconnect binding whose device is
// not connected. Connected devices are skipped. Failures are logged and left
// for the next pass. It returns the number of re-open attempts.
func (r *Reconciler) ReconnectAll() int {
	attempts := 0
	for _, b := range r.bindings {
		if !b.AutoReconnect {
			continue
		}
		device, ok := devicelist.FindByAddress(r.devices, b.Address)
		if !ok || device.Connected {
			continue
		}

		attempts++
		r.logger.Info("Reconnecting MIDI device",
			r.logger.Field().String("address", device.Address),
			r.logger.Field().String("deviceName", device.Name))

		if err := r.closeTransport(device); err != nil {
			r.logger.Warn("Close before reconnect failed", r.logger.Field().Error("error", err))
		}
		if err := r.openTransport(device); err != nil {
			r.logger.Warn("Reconnect failed; will retry on next status change", r.logger.Field().Error("error", err))
			continue
		}
		b.managed = true
	}
	return attempts
}

// ForceReconnect refreshes, reconciles and reconnects regardless of the
// automation setting.
func (r *Reconciler) ForceReconnect() error {
	if err := r.RefreshDeviceList(); err != nil {
		return err
	}
	r.ReconcilePorts()
	r.ReconnectAll()
	return nil
}

// SetReconnectAutomation toggles automatic reconnection. Enabling it runs a
// forced reconnect pass.
func (r *Reconciler) SetReconnectAutomation(enabled bool) error {
	r.config.Automatic = enabled
	if !enabled {
		return nil
	}
	return r.ForceReconnect()
}

// ReconnectAutomation reports whether automatic reconnection is enabled.
func (r *Reconciler) ReconnectAutomation() bool {
	return r.config.Automatic
}

// OpenPort opens the device link and the logical port of address and marks
// its binding open with auto-reconnect. An address unknown even after a
// refresh is ignored. On error the device list and bindings are left as
// they were before the call.
func (r *Reconciler) OpenPort(address string) error {
	devices, bindings := r.devices, r.bindings
	device, ok := devicelist.FindByAddress(r.devices, address)
	if !ok {
		if err := r.RefreshDeviceList(); err != nil {
			return err
		}
		r.ReconcilePorts()
		if device, ok = devicelist.FindByAddress(r.devices, address); !ok {
			r.logger.Debug("Open ignored; unknown address", r.logger.Field().String("address", address))
			return nil
		}
	}

	if err := r.openTransport(device); err != nil {
		r.devices, r.bindings = devices, bindings
		return err
	}

	b := r.ensureBinding(address)
	b.AutoReconnect = true
	b.managed = true
	return nil
}

// ClosePort closes both layers of address and turns auto-reconnect off.
// Addresses without a binding are ignored.
func (r *Reconciler) ClosePort(address string) error {
	b := r.binding(address)
	if b == nil {
		r.logger.Debug("Close ignored; no binding", r.logger.Field().String("address", address))
		return nil
	}

	device, ok := devicelist.FindByAddress(r.devices, address)
	if !ok {
		device = contracts.DeviceRecord{Address: address}
	}
	if err := r.closeTransport(device); err != nil {
		return err
	}

	b.AutoReconnect = false
	b.managed = true
	return nil
}

// OpenPortByName opens the first device with name. Unknown names are ignored.
func (r *Reconciler) OpenPortByName(name string) error {
	device, ok := devicelist.FindByName(r.devices, name)
	if !ok {
		r.logger.Debug("Open ignored; unknown device name", r.logger.Field().String("deviceName", name))
		return nil
	}
	return r.OpenPort(device.Address)
}

// ClosePortByName closes the first device with name. Unknown names are ignored.
func (r *Reconciler) ClosePortByName(name string) error {
	device, ok := devicelist.FindByName(r.devices, name)
	if !ok {
		r.logger.Debug("Close ignored; unknown device name", r.logger.Field().String("deviceName", name))
		return nil
	}
	return r.ClosePort(device.Address)
}

// Devices returns a copy of the current device list.
func (r *Reconciler) Devices() []contracts.DeviceRecord {
	return append([]contracts.DeviceRecord{}, r.devices...)
}

// Bindings returns a copy of the binding table in creation order.
func (r *Reconciler) Bindings() []PortBinding {
	out := make([]PortBinding, len(r.bindings))
	for i, b := range r.bindings {
		out[i] = *b
	}
	return out
}

// State returns the lifecycle state of address.
func (r *Reconciler) State(address string) State {
	if b := r.binding(address); b != nil {
		return b.State()
	}
	return StateAbsent
}

func (r *Reconciler) binding(address string) *PortBinding {
	for _, b := range r.bindings {
		if b.Address == address {
			return b
		}
	}
	return nil
}

func (r *Reconciler) ensureBinding(address string) *PortBinding {
	if b := r.binding(address); b != nil {
		return b
	}
	b := &PortBinding{Address: address}
	r.bindings = append(r.bindings, b)
	return b
}

// openTransport opens the device link then the logical port. If the logical
// port fails the device link is rolled back.
func (r *Reconciler) openTransport(device contracts.DeviceRecord) error {
	if err := r.transport.OpenPhysical(device.Address); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrOpenPort, device.Address, err)
	}
	if device.Name == "" {
		return nil
	}
	if err := r.transport.OpenLogicalPort(device.Name); err != nil {
		if cerr := r.transport.ClosePhysical(device.Address); cerr != nil {
			r.logger.Warn("Rollback of device link failed",
				r.logger.Field().String("address", device.Address),
				r.logger.Field().Error("error", cerr))
		}
		return fmt.Errorf("%w: %s: %v", ErrOpenPort, device.Name, err)
	}
	return nil
}

func (r *Reconciler) closeTransport(device contracts.DeviceRecord) error {
	if err := r.transport.ClosePhysical(device.Address); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrClosePort, device.Address, err)
	}
	if device.Name == "" {
		return nil
	}
	if err := r.transport.CloseLogicalPort(device.Name); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrClosePort, device.Name, err)
	}
	return nil
}
