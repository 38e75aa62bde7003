//go:build darwin
// +build darwin

package mididarwin

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/leandrodaf/midibt/sdk/contracts"
	"github.com/youpy/go-coremidi"
)

// Error definitions for MIDI port handling issues.
var (
	ErrPortNotFound        = errors.New("MIDI endpoint not found")
	ErrPortNotOpen         = errors.New("MIDI output port not open")
	ErrMIDIConnectionError = errors.New("error connecting to MIDI endpoint")
	ErrCreateInputPort     = errors.New("error creating input port")
	ErrCreateOutputPort    = errors.New("error creating output port")
)

// internalPortConnection is an interface for handling disconnection from a MIDI port.
type internalPortConnection interface {
	Disconnect()
}

// PortClient opens CoreMIDI endpoints by name. BLE MIDI peripherals appear
// as CoreMIDI endpoints once their radio link is up.
type PortClient struct {
	logger  contracts.Logger
	client  coremidi.Client
	mu      sync.Mutex
	inputs  map[string]internalPortConnection
	outputs map[string]coremidi.Destination
	output  *coremidi.OutputPort
	gate    receiveGate
}

// NewPortClient creates the CoreMIDI client named by options.CoreMIDIConfig.
func NewPortClient(options *contracts.ClientOptions) (contracts.PortClient, error) {
	client, err := coremidi.NewClient(options.CoreMIDIConfig.ClientName)
	if err != nil {
		return nil, err
	}
	options.Logger.Info("CoreMIDI client successfully created")

	return &PortClient{
		logger:  options.Logger,
		client:  client,
		inputs:  make(map[string]internalPortConnection),
		outputs: make(map[string]coremidi.Destination),
	}, nil
}

// ListDevices merges CoreMIDI sources and destinations by name.
func (m *PortClient) ListDevices() ([]contracts.DeviceRecord, error) {
	sources, err := coremidi.AllSources()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI sources: %w", err)
	}
	destinations, err := coremidi.AllDestinations()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI destinations: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var devices []contracts.DeviceRecord
	index := make(map[string]int)
	for i, source := range sources {
		name := source.Name()
		index[name] = len(devices)
		_, open := m.inputs[name]
		devices = append(devices, contracts.DeviceRecord{
			Address:       name,
			Name:          name,
			Connected:     open,
			Type:          contracts.ConnectionUnknown,
			SourceID:      i,
			DestinationID: -1,
		})
	}
	for i, destination := range destinations {
		name := destination.Name()
		if j, ok := index[name]; ok {
			devices[j].DestinationID = i
			continue
		}
		_, open := m.outputs[name]
		devices = append(devices, contracts.DeviceRecord{
			Address:       name,
			Name:          name,
			Connected:     open,
			Type:          contracts.ConnectionUnknown,
			SourceID:      -1,
			DestinationID: i,
		})
	}
	return devices, nil
}

// OpenInput connects the named source to a new input port. Opening an
// already open input is a no-op.
func (m *PortClient) OpenInput(name string, receive func([]byte)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.inputs[name]; ok {
		return nil
	}

	source, err := findSource(name)
	if err != nil {
		return err
	}

	m.gate.open()
	inputPort, err := coremidi.NewInputPort(m.client, "Input "+name, func(_ coremidi.Source, packet coremidi.Packet) {
		m.gate.deliver(func() { receive(append([]byte(nil), packet.Data...)) })
	})
	if err != nil {
		m.logger.Error(ErrCreateInputPort.Error())
		return fmt.Errorf("%w: %v", ErrCreateInputPort, err)
	}

	conn, err := inputPort.Connect(source)
	if err != nil {
		m.logger.Error(ErrMIDIConnectionError.Error())
		return fmt.Errorf("%w: %v", ErrMIDIConnectionError, err)
	}
	m.inputs[name] = conn

	m.logger.Info("MIDI input opened", m.logger.Field().String("deviceName", name))
	return nil
}

func (m *PortClient) CloseInput(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if conn, ok := m.inputs[name]; ok {
		conn.Disconnect()
		delete(m.inputs, name)
		m.logger.Info("MIDI input closed", m.logger.Field().String("deviceName", name))
	}
	return nil
}

// OpenOutput resolves the named destination. All destinations share one
// output port.
func (m *PortClient) OpenOutput(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.outputs[name]; ok {
		return nil
	}

	destination, err := findDestination(name)
	if err != nil {
		return err
	}
	if m.output == nil {
		port, err := coremidi.NewOutputPort(m.client, "Output")
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCreateOutputPort, err)
		}
		m.output = &port
	}
	m.outputs[name] = destination

	m.logger.Info("MIDI output opened", m.logger.Field().String("deviceName", name))
	return nil
}

func (m *PortClient) CloseOutput(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.outputs, name)
	return nil
}

func (m *PortClient) Send(name string, data []byte) error {
	m.mu.Lock()
	destination, ok := m.outputs[name]
	port := m.output
	m.mu.Unlock()

	if !ok || port == nil {
		return fmt.Errorf("%w: %s", ErrPortNotOpen, name)
	}

	packet := coremidi.NewPacket(data, uint64(time.Now().UTC().UnixNano()))
	return packet.Send(port, &destination)
}

// Stop disconnects every input and waits for in-flight callbacks.
func (m *PortClient) Stop() error {
	m.mu.Lock()
	for name, conn := range m.inputs {
		conn.Disconnect()
		delete(m.inputs, name)
	}
	m.outputs = make(map[string]coremidi.Destination)
	m.mu.Unlock()

	m.gate.close()
	m.logger.Info("CoreMIDI ports closed")
	return nil
}

func findSource(name string) (coremidi.Source, error) {
	sources, err := coremidi.AllSources()
	if err != nil {
		return coremidi.Source{}, fmt.Errorf("error retrieving MIDI sources: %w", err)
	}
	for _, source := range sources {
		if source.Name() == name {
			return source, nil
		}
	}
	return coremidi.Source{}, fmt.Errorf("%w: %s", ErrPortNotFound, name)
}

func findDestination(name string) (coremidi.Destination, error) {
	destinations, err := coremidi.AllDestinations()
	if err != nil {
		return coremidi.Destination{}, fmt.Errorf("error retrieving MIDI destinations: %w", err)
	}
	for _, destination := range destinations {
		if destination.Name() == name {
			return destination, nil
		}
	}
	return coremidi.Destination{}, fmt.Errorf("%w: %s", ErrPortNotFound, name)
}
