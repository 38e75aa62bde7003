// Package bluetooth discovers BLE MIDI peripherals and manages their radio
// links.
package bluetooth

import (
	"sync"
	"time"

	"github.com/leandrodaf/midibt/sdk/contracts"
)

// Listener receives the manager's events. contracts.TransportHandler
// satisfies it.
type Listener interface {
	OnConnected(address string)
	OnDisconnected(address string)
	OnScanTick()
	OnScanCompleted()
}

type peripheral struct {
	name      string
	connected bool
}

// Manager runs bounded scans and tracks the peripherals seen and connected.
type Manager struct {
	radio  Radio
	logger contracts.Logger
	period time.Duration

	mu        sync.Mutex
	listener  Listener
	scanning  bool
	timer     *time.Timer
	scanDone  chan struct{}
	seen      map[string]struct{}
	order     []string
	known     map[string]*peripheral
	afterFunc func(time.Duration, func()) *time.Timer
}

// NewManager creates a manager scanning for period per scan.
func NewManager(radio Radio, logger contracts.Logger, period time.Duration) *Manager {
	if period <= 0 {
		period = contracts.DefaultScanPeriod
	}
	return &Manager{
		radio:     radio,
		logger:    logger,
		period:    period,
		seen:      make(map[string]struct{}),
		known:     make(map[string]*peripheral),
		afterFunc: time.AfterFunc,
	}
}

// SetListener sets the event receiver. Events raised without one are dropped.
func (m *Manager) SetListener(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listener = l
}

// Enable powers the adapter and starts tracking connection changes.
func (m *Manager) Enable() error {
	if err := m.radio.Enable(); err != nil {
		return err
	}
	m.radio.SetConnectHandler(m.setConnected)
	m.logger.Info("Bluetooth adapter enabled")
	return nil
}

// Scan starts a scan that stops itself after the scan period. Calling Scan
// while a scan runs stops it instead.
func (m *Manager) Scan() error {
	m.mu.Lock()
	if m.scanning {
		m.mu.Unlock()
		return m.StopScan()
	}

	m.scanning = true
	m.seen = make(map[string]struct{})
	done := make(chan struct{})
	m.scanDone = done
	m.timer = m.afterFunc(m.period, func() {
		if err := m.StopScan(); err != nil {
			m.logger.Warn("Failed to stop scan at end of period", m.logger.Field().Error("error", err))
		}
	})
	m.mu.Unlock()

	m.logger.Info("BLE MIDI scan started", m.logger.Field().String("period", m.period.String()))
	go func() {
		defer close(done)
		if err := m.radio.Scan(m.found); err != nil {
			m.logger.Error("BLE scan failed", m.logger.Field().Error("error", err))
		}
		m.afterScan()
	}()
	return nil
}

// StopScan stops a running scan. It is a no-op when no scan runs.
func (m *Manager) StopScan() error {
	m.mu.Lock()
	scanning := m.scanning
	m.mu.Unlock()
	if !scanning {
		return nil
	}
	return m.radio.StopScan()
}

// Scanning reports whether a scan is in progress.
func (m *Manager) Scanning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scanning
}

// Wait blocks until the current scan, if any, has completed.
func (m *Manager) Wait() {
	m.mu.Lock()
	done := m.scanDone
	m.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (m *Manager) found(adv Advertisement) {
	if adv.LocalName == "" {
		return
	}

	m.mu.Lock()
	if _, ok := m.seen[adv.Address]; ok {
		m.mu.Unlock()
		return
	}
	m.seen[adv.Address] = struct{}{}
	p := m.track(adv.Address)
	p.name = adv.LocalName
	listener := m.listener
	m.mu.Unlock()

	m.logger.Debug("MIDI peripheral found",
		m.logger.Field().String("address", adv.Address),
		m.logger.Field().String("deviceName", adv.LocalName))
	if listener != nil {
		listener.OnScanTick()
	}
}

// afterScan forgets peripherals neither seen in this scan nor connected.
func (m *Manager) afterScan() {
	m.mu.Lock()
	order := m.order[:0]
	for _, address := range m.order {
		_, seen := m.seen[address]
		if !seen && !m.known[address].connected {
			delete(m.known, address)
			continue
		}
		order = append(order, address)
	}
	m.order = order
	m.scanning = false
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	listener := m.listener
	m.mu.Unlock()

	m.logger.Info("BLE MIDI scan completed", m.logger.Field().Int("devices", len(order)))
	if listener != nil {
		listener.OnScanCompleted()
	}
}

// Connect establishes the radio link to address.
func (m *Manager) Connect(address string) error {
	if err := m.radio.Connect(address); err != nil {
		return err
	}
	m.setConnected(address, true)
	return nil
}

// Disconnect drops the radio link to address.
func (m *Manager) Disconnect(address string) error {
	if err := m.radio.Disconnect(address); err != nil {
		return err
	}
	m.setConnected(address, false)
	return nil
}

// DisconnectAll drops every connected radio link, returning the addresses
// that failed.
func (m *Manager) DisconnectAll() map[string]error {
	failed := make(map[string]error)
	for _, d := range m.Devices() {
		if !d.Connected {
			continue
		}
		if err := m.Disconnect(d.Address); err != nil {
			failed[d.Address] = err
		}
	}
	return failed
}

// setConnected records a link change and notifies only on actual changes.
func (m *Manager) setConnected(address string, connected bool) {
	m.mu.Lock()
	p := m.track(address)
	changed := p.connected != connected
	p.connected = connected
	listener := m.listener
	m.mu.Unlock()

	if !changed || listener == nil {
		return
	}
	if connected {
		listener.OnConnected(address)
	} else {
		listener.OnDisconnected(address)
	}
}

// track must be called with m.mu held.
func (m *Manager) track(address string) *peripheral {
	p, ok := m.known[address]
	if !ok {
		p = &peripheral{}
		m.known[address] = p
		m.order = append(m.order, address)
	}
	return p
}

// Devices returns the tracked peripherals in discovery order.
func (m *Manager) Devices() []contracts.DeviceRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]contracts.DeviceRecord, 0, len(m.order))
	for _, address := range m.order {
		p := m.known[address]
		out = append(out, contracts.DeviceRecord{
			Address:   address,
			Name:      p.name,
			Connected: p.connected,
			Type:      contracts.ConnectionBluetooth,
		})
	}
	return out
}
