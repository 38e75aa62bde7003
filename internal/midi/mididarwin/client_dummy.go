//go:build !darwin
// +build !darwin

package mididarwin

import (
	"errors"

	"github.com/leandrodaf/midibt/sdk/contracts"
)

// ErrUnavailable is returned by every call of the dummy port client.
var ErrUnavailable = errors.New("CoreMIDI is not available on this platform")

type dummyPortClient struct {
	logger contracts.Logger
}

// NewPortClient returns a port client whose calls fail with ErrUnavailable.
func NewPortClient(options *contracts.ClientOptions) (contracts.PortClient, error) {
	options.Logger.Info("Using dummy MIDI port client for non-macOS system")
	return &dummyPortClient{logger: options.Logger}, nil
}

func (m *dummyPortClient) ListDevices() ([]contracts.DeviceRecord, error) {
	m.logger.Warn("ListDevices called on dummy MIDI port client")
	return nil, ErrUnavailable
}

func (m *dummyPortClient) OpenInput(string, func([]byte)) error { return ErrUnavailable }
func (m *dummyPortClient) CloseInput(string) error              { return ErrUnavailable }
func (m *dummyPortClient) OpenOutput(string) error              { return ErrUnavailable }
func (m *dummyPortClient) CloseOutput(string) error             { return ErrUnavailable }
func (m *dummyPortClient) Send(string, []byte) error            { return ErrUnavailable }

func (m *dummyPortClient) Stop() error {
	m.logger.Warn("Stop called on dummy MIDI port client")
	return nil
}
