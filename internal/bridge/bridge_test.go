package bridge

import (
	"testing"
	"time"

	"github.com/leandrodaf/midibt/internal/logger"
	"github.com/leandrodaf/midibt/sdk/contracts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	events   []string
	notesOn  []contracts.MIDI
	notesOff []contracts.MIDI
	raw      [][]byte
	enabled  []bool
}

func (s *recordingSink) DeviceConnected(address string) {
	s.events = append(s.events, "connected:"+address)
}
func (s *recordingSink) DeviceDisconnected(address string) {
	s.events = append(s.events, "disconnected:"+address)
}
func (s *recordingSink) DeviceStatusChanged() { s.events = append(s.events, "status") }
func (s *recordingSink) ScanTick()            { s.events = append(s.events, "tick") }
func (s *recordingSink) ScanCompleted()       { s.events = append(s.events, "completed") }
func (s *recordingSink) PermissionResult(granted bool) {
	if granted {
		s.events = append(s.events, "permission:granted")
	} else {
		s.events = append(s.events, "permission:denied")
	}
}
func (s *recordingSink) BluetoothStatus(enabled bool) { s.enabled = append(s.enabled, enabled) }
func (s *recordingSink) NoteOn(event contracts.MIDI)  { s.notesOn = append(s.notesOn, event) }
func (s *recordingSink) NoteOff(event contracts.MIDI) { s.notesOff = append(s.notesOff, event) }
func (s *recordingSink) RawBytes(data []byte)         { s.raw = append(s.raw, data) }

func newTestFacade(filter *contracts.MIDIEventFilter) (*Facade, *recordingSink) {
	sink := &recordingSink{}
	f := New(sink, logger.NewNopLogger(), filter)
	f.now = func() time.Time { return time.Unix(0, 42) }
	return f, sink
}

func TestForwardsLifecycleEvents(t *testing.T) {
	f, sink := newTestFacade(nil)

	f.OnConnected("AA:BB")
	f.OnDisconnected("AA:BB")
	f.OnDeviceStatusChanged()
	f.OnScanTick()
	f.OnScanCompleted()
	f.OnPermissionResult(false)

	assert.Equal(t, []string{
		"connected:AA:BB", "disconnected:AA:BB", "status", "tick", "completed", "permission:denied",
	}, sink.events)
}

func TestOnRawBytesDecodesNotes(t *testing.T) {
	f, sink := newTestFacade(nil)

	f.OnRawBytes([]byte{0x93, 60, 100})
	f.OnRawBytes([]byte{0x83, 60, 0})

	require.Len(t, sink.notesOn, 1)
	require.Len(t, sink.notesOff, 1)
	assert.Equal(t, contracts.MIDI{
		Timestamp: 42, Command: 0x90, Channel: 3, Note: 60, Velocity: 100, Raw: []byte{0x93, 60, 100},
	}, sink.notesOn[0])
	assert.Equal(t, byte(0x80), sink.notesOff[0].Command)
	assert.Len(t, sink.raw, 2)
}

func TestNoteOnWithZeroVelocityStaysNoteOn(t *testing.T) {
	f, sink := newTestFacade(nil)

	f.OnRawBytes([]byte{0x90, 64, 0})

	assert.Len(t, sink.notesOn, 1)
	assert.Empty(t, sink.notesOff)
}

func TestOnRawBytesForwardsCopy(t *testing.T) {
	f, sink := newTestFacade(nil)
	data := []byte{0xF0, 0x01, 0xF7}

	f.OnRawBytes(data)
	data[1] = 0x7F

	require.Len(t, sink.raw, 1)
	assert.Equal(t, []byte{0xF0, 0x01, 0xF7}, sink.raw[0])
	assert.Empty(t, sink.notesOn)
}

func TestFilterDropsUnlistedCommands(t *testing.T) {
	f, sink := newTestFacade(&contracts.MIDIEventFilter{Commands: []contracts.MIDICommand{contracts.NoteOn}})

	f.OnRawBytes([]byte{0x91, 60, 100, 0x81, 60, 0})

	assert.Len(t, sink.notesOn, 1)
	assert.Empty(t, sink.notesOff)
	assert.Len(t, sink.raw, 1, "raw bytes are never filtered")
}

func TestDecode(t *testing.T) {
	tests := map[string]struct {
		data []byte
		want []byte // commands
	}{
		"empty":            {nil, nil},
		"truncated":        {[]byte{0x90, 60}, nil},
		"control change":   {[]byte{0xB0, 7, 100}, nil},
		"two notes":        {[]byte{0x90, 60, 100, 0x80, 60, 0}, []byte{0x90, 0x80}},
		"after sysex":      {[]byte{0xF0, 0x01, 0xF7, 0x95, 1, 2}, []byte{0x90}},
		"status as data":   {[]byte{0x90, 0x90, 60, 100}, []byte{0x90}},
		"trailing garbage": {[]byte{0x90, 60, 100, 0x80}, []byte{0x90}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			events := Decode(tt.data, 1)
			var got []byte
			for _, e := range events {
				got = append(got, e.Command)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOnBluetoothStatus(t *testing.T) {
	f, sink := newTestFacade(nil)

	require.NoError(t, f.OnBluetoothStatus("true"))
	require.NoError(t, f.OnBluetoothStatus(" False "))
	assert.Equal(t, []bool{true, false}, sink.enabled)

	err := f.OnBluetoothStatus("maybe")
	assert.ErrorIs(t, err, ErrMalformedStatus)
	assert.Len(t, sink.enabled, 2, "malformed status is not forwarded")
}
