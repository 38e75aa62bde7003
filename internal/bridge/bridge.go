// Package bridge normalizes the raw event surface of a platform transport
// into typed events for the client.
package bridge

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/leandrodaf/midibt/sdk/contracts"
	"gitlab.com/gomidi/midi/v2"
)

// ErrMalformedStatus is returned when the platform reports a Bluetooth status
// that is not a boolean.
var ErrMalformedStatus = errors.New("malformed bluetooth status")

// Sink receives the normalized events.
type Sink interface {
	DeviceConnected(address string)
	DeviceDisconnected(address string)
	DeviceStatusChanged()
	ScanTick()
	ScanCompleted()
	PermissionResult(granted bool)
	BluetoothStatus(enabled bool)
	NoteOn(event contracts.MIDI)
	NoteOff(event contracts.MIDI)
	RawBytes(data []byte)
}

// Facade implements contracts.TransportHandler on top of a Sink.
type Facade struct {
	sink   Sink
	logger contracts.Logger
	filter *contracts.MIDIEventFilter
	now    func() time.Time
}

var _ contracts.TransportHandler = (*Facade)(nil)

// New creates a Facade. filter may be nil to pass every note event.
func New(sink Sink, logger contracts.Logger, filter *contracts.MIDIEventFilter) *Facade {
	return &Facade{
		sink:   sink,
		logger: logger,
		filter: filter,
		now:    time.Now,
	}
}

func (f *Facade) OnConnected(address string) {
	f.logger.Info("Device connected", f.logger.Field().String("address", address))
	f.sink.DeviceConnected(address)
}

func (f *Facade) OnDisconnected(address string) {
	f.logger.Info("Device disconnected", f.logger.Field().String("address", address))
	f.sink.DeviceDisconnected(address)
}

func (f *Facade) OnScanTick()            { f.sink.ScanTick() }
func (f *Facade) OnScanCompleted()       { f.sink.ScanCompleted() }
func (f *Facade) OnDeviceStatusChanged() { f.sink.DeviceStatusChanged() }

func (f *Facade) OnPermissionResult(granted bool) {
	f.logger.Info("Bluetooth permission result", f.logger.Field().Bool("granted", granted))
	f.sink.PermissionResult(granted)
}

// OnBluetoothStatus parses the platform's "true"/"false" status. Anything else
// is returned as ErrMalformedStatus and not forwarded.
func (f *Facade) OnBluetoothStatus(status string) error {
	enabled, err := ParseStatus(status)
	if err != nil {
		f.logger.Error("Invalid Bluetooth status", f.logger.Field().String("status", status))
		return err
	}
	f.sink.BluetoothStatus(enabled)
	return nil
}

// OnRawBytes forwards a copy of data and then every note message found in it.
func (f *Facade) OnRawBytes(data []byte) {
	raw := append([]byte(nil), data...)
	f.sink.RawBytes(raw)

	for _, event := range Decode(raw, uint64(f.now().UTC().UnixNano())) {
		if !f.allowed(event.Command) {
			continue
		}
		f.logger.Debug("MIDI message received", f.logger.Field().String("message", midi.Message(event.Raw).String()))
		if event.Command == byte(contracts.NoteOn) {
			f.sink.NoteOn(event)
		} else {
			f.sink.NoteOff(event)
		}
	}
}

func (f *Facade) allowed(command byte) bool {
	if f.filter == nil {
		return true
	}
	for _, c := range f.filter.Commands {
		if command == byte(c) {
			return true
		}
	}
	return false
}

// ParseStatus parses a boolean status string as reported by the platform.
func ParseStatus(status string) (bool, error) {
	enabled, err := strconv.ParseBool(strings.TrimSpace(status))
	if err != nil {
		return false, fmt.Errorf("%w: %q", ErrMalformedStatus, status)
	}
	return enabled, nil
}

// Decode extracts the note-on and note-off messages from data. A status byte
// with high nibble 0x9 is a note-on and 0x8 a note-off, whatever the velocity.
// Other messages and incomplete trailing messages are skipped.
func Decode(data []byte, timestamp uint64) []contracts.MIDI {
	var events []contracts.MIDI
	for i := 0; i < len(data); i++ {
		command := data[i] & 0xF0
		if command != byte(contracts.NoteOn) && command != byte(contracts.NoteOff) {
			continue
		}
		if i+2 >= len(data) || data[i+1]&0x80 != 0 || data[i+2]&0x80 != 0 {
			continue
		}
		events = append(events, contracts.MIDI{
			Timestamp: timestamp,
			Command:   command,
			Channel:   data[i] & 0x0F,
			Note:      data[i+1],
			Velocity:  data[i+2],
			Raw:       append([]byte(nil), data[i:i+3]...),
		})
		i += 2
	}
	return events
}
