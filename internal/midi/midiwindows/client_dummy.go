//go:build !windows
// +build !windows

package midiwindows

import (
	"errors"

	"github.com/leandrodaf/midibt/sdk/contracts"
)

// ErrUnavailable is returned by every call of the dummy port client.
var ErrUnavailable = errors.New("WinMM is not available on this platform")

type dummyPortClient struct {
	logger contracts.Logger
}

// NewPortClient initializes a dummy port client for non-Windows systems.
func NewPortClient(options *contracts.ClientOptions) (contracts.PortClient, error) {
	options.Logger.Info("Using dummy MIDI port client for non-Windows system")
	return &dummyPortClient{
		logger: options.Logger,
	}, nil
}

// ListDevices logs a warning and returns ErrUnavailable.
func (m *dummyPortClient) ListDevices() ([]contracts.DeviceRecord, error) {
	m.logger.Warn("ListDevices called on dummy MIDI port client")
	return nil, ErrUnavailable
}

func (m *dummyPortClient) OpenInput(name string, receive func([]byte)) error {
	m.logger.Warn("OpenInput called on dummy MIDI port client")
	return ErrUnavailable
}

func (m *dummyPortClient) CloseInput(name string) error  { return ErrUnavailable }
func (m *dummyPortClient) OpenOutput(name string) error  { return ErrUnavailable }
func (m *dummyPortClient) CloseOutput(name string) error { return ErrUnavailable }

func (m *dummyPortClient) Send(name string, data []byte) error {
	return ErrUnavailable
}

// Stop logs a warning and returns nil.
func (m *dummyPortClient) Stop() error {
	m.logger.Warn("Stop called on dummy MIDI port client")
	return nil
}
