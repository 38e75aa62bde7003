//go:build windows
// +build windows

package midiwindows

import (
	"errors"
	"fmt"
	"sync"
	"time"
	"unsafe"

	"github.com/leandrodaf/midibt/sdk/contracts"
	"go.uber.org/multierr"
	"golang.org/x/sys/windows"
)

// Type definitions for MIDI handles
type (
	HMIDIIN  windows.Handle
	HMIDIOUT windows.Handle
)

// Constants for callback flags
const (
	CALLBACK_NULL     = 0x00000000 // No callback
	CALLBACK_FUNCTION = 0x00030000 // Indicates that the callback is a function
	MIDI_IO_STATUS    = 0x00000020 // MIDI input/output status
)

// Constants for MIDI message types
const (
	MIM_OPEN      = 0x3C1 // MIDI device opened
	MIM_CLOSE     = 0x3C2 // MIDI device closed
	MIM_DATA      = 0x3C3 // MIDI data received
	MIM_LONGDATA  = 0x3C4 // System exclusive buffer received
	MIM_ERROR     = 0x3C5 // MIDI error
	MIM_LONGERROR = 0x3C6 // Long MIDI error
	MIM_MOREDATA  = 0x3CC // More MIDI data available
)

const MHDR_DONE = 0x00000001 // Set by the driver when a long message is sent

var (
	ErrPortNotFound = errors.New("MIDI endpoint not found")
	ErrPortNotOpen  = errors.New("MIDI output port not open")
	ErrSendTimeout  = errors.New("timed out sending MIDI long message")
)

// midiCaps is the common prefix of MIDIINCAPSW and MIDIOUTCAPSW up to the name.
type midiCaps struct {
	wMid           uint16
	wPid           uint16
	vDriverVersion uint32
	szPname        [32]uint16
}

type midiInCaps struct {
	midiCaps
	dwSupport uint32
}

type midiOutCaps struct {
	midiCaps
	wTechnology  uint16
	wVoices      uint16
	wNotes       uint16
	wChannelMask uint16
	dwSupport    uint32
}

// midiHdr mirrors MIDIHDR.
type midiHdr struct {
	lpData          *byte
	dwBufferLength  uint32
	dwBytesRecorded uint32
	dwUser          uintptr
	dwFlags         uint32
	lpNext          uintptr
	reserved        uintptr
	dwOffset        uint32
	dwReserved      [8]uintptr
}

// Load the winmm.dll library and required functions
var (
	winmm                      = windows.NewLazySystemDLL("winmm.dll")
	procMidiInGetNumDevs       = winmm.NewProc("midiInGetNumDevs")
	procMidiInGetDevCaps       = winmm.NewProc("midiInGetDevCapsW")
	procMidiInOpen             = winmm.NewProc("midiInOpen")
	procMidiInStart            = winmm.NewProc("midiInStart")
	procMidiInStop             = winmm.NewProc("midiInStop")
	procMidiInClose            = winmm.NewProc("midiInClose")
	procMidiOutGetNumDevs      = winmm.NewProc("midiOutGetNumDevs")
	procMidiOutGetDevCaps      = winmm.NewProc("midiOutGetDevCapsW")
	procMidiOutOpen            = winmm.NewProc("midiOutOpen")
	procMidiOutClose           = winmm.NewProc("midiOutClose")
	procMidiOutShortMsg        = winmm.NewProc("midiOutShortMsg")
	procMidiOutLongMsg         = winmm.NewProc("midiOutLongMsg")
	procMidiOutPrepareHeader   = winmm.NewProc("midiOutPrepareHeader")
	procMidiOutUnprepareHeader = winmm.NewProc("midiOutUnprepareHeader")

	// One callback serves every input; windows.NewCallback slots are finite.
	midiInCallbackPtr = windows.NewCallback(midiInCallback)
)

type inputPort struct {
	handle  HMIDIIN
	logger  contracts.Logger
	receive func([]byte)
}

// PortClient opens WinMM MIDI devices by product name.
type PortClient struct {
	logger  contracts.Logger
	mu      sync.Mutex
	inputs  map[string]*inputPort
	outputs map[string]HMIDIOUT
}

// NewPortClient creates a WinMM port client.
func NewPortClient(options *contracts.ClientOptions) (contracts.PortClient, error) {
	options.Logger.Info("MIDI port client created for Windows")

	return &PortClient{
		logger:  options.Logger,
		inputs:  make(map[string]*inputPort),
		outputs: make(map[string]HMIDIOUT),
	}, nil
}

// ListDevices merges WinMM input and output devices by name.
func (m *PortClient) ListDevices() ([]contracts.DeviceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var devices []contracts.DeviceRecord
	index := make(map[string]int)

	for i, name := range inputNames() {
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
	for i, name := range outputNames() {
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

func inputNames() []string {
	r0, _, _ := procMidiInGetNumDevs.Call()
	names := make([]string, 0, uint32(r0))
	for i := uint32(0); i < uint32(r0); i++ {
		var caps midiInCaps
		r1, _, _ := procMidiInGetDevCaps.Call(uintptr(i), uintptr(unsafe.Pointer(&caps)), unsafe.Sizeof(caps))
		if r1 != 0 {
			names = append(names, "")
			continue
		}
		names = append(names, windows.UTF16ToString(caps.szPname[:]))
	}
	return names
}

func outputNames() []string {
	r0, _, _ := procMidiOutGetNumDevs.Call()
	names := make([]string, 0, uint32(r0))
	for i := uint32(0); i < uint32(r0); i++ {
		var caps midiOutCaps
		r1, _, _ := procMidiOutGetDevCaps.Call(uintptr(i), uintptr(unsafe.Pointer(&caps)), unsafe.Sizeof(caps))
		if r1 != 0 {
			names = append(names, "")
			continue
		}
		names = append(names, windows.UTF16ToString(caps.szPname[:]))
	}
	return names
}

func deviceIndex(names []string, name string) (int, error) {
	for i, n := range names {
		if n == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrPortNotFound, name)
}

// OpenInput opens and starts the named input device. Opening an already
// open input is a no-op.
func (m *PortClient) OpenInput(name string, receive func([]byte)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.inputs[name]; ok {
		return nil
	}
	deviceID, err := deviceIndex(inputNames(), name)
	if err != nil {
		return err
	}

	in := &inputPort{logger: m.logger, receive: receive}
	r1, _, err := procMidiInOpen.Call(
		uintptr(unsafe.Pointer(&in.handle)),
		uintptr(deviceID),
		midiInCallbackPtr,
		uintptr(unsafe.Pointer(in)),
		uintptr(CALLBACK_FUNCTION|MIDI_IO_STATUS),
	)
	if r1 != 0 {
		return fmt.Errorf("failed to open MIDI input %s: %v", name, err)
	}
	if r1, _, err = procMidiInStart.Call(uintptr(in.handle)); r1 != 0 {
		procMidiInClose.Call(uintptr(in.handle))
		return fmt.Errorf("failed to start MIDI input %s: %v", name, err)
	}

	m.inputs[name] = in
	m.logger.Info("MIDI input opened", m.logger.Field().String("deviceName", name))
	return nil
}

func (m *PortClient) CloseInput(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	in, ok := m.inputs[name]
	if !ok {
		return nil
	}
	delete(m.inputs, name)
	return closeInput(in)
}

func closeInput(in *inputPort) error {
	if r1, _, err := procMidiInStop.Call(uintptr(in.handle)); r1 != 0 {
		return fmt.Errorf("failed to stop MIDI input: %v", err)
	}
	if r1, _, err := procMidiInClose.Call(uintptr(in.handle)); r1 != 0 {
		return fmt.Errorf("failed to close MIDI input: %v", err)
	}
	return nil
}

func (m *PortClient) OpenOutput(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.outputs[name]; ok {
		return nil
	}
	deviceID, err := deviceIndex(outputNames(), name)
	if err != nil {
		return err
	}

	var handle HMIDIOUT
	r1, _, err := procMidiOutOpen.Call(uintptr(unsafe.Pointer(&handle)), uintptr(deviceID), 0, 0, CALLBACK_NULL)
	if r1 != 0 {
		return fmt.Errorf("failed to open MIDI output %s: %v", name, err)
	}

	m.outputs[name] = handle
	m.logger.Info("MIDI output opened", m.logger.Field().String("deviceName", name))
	return nil
}

func (m *PortClient) CloseOutput(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	handle, ok := m.outputs[name]
	if !ok {
		return nil
	}
	delete(m.outputs, name)
	if r1, _, err := procMidiOutClose.Call(uintptr(handle)); r1 != 0 {
		return fmt.Errorf("failed to close MIDI output %s: %v", name, err)
	}
	return nil
}

// Send writes data to the named output. SysEx buffers go through
// midiOutLongMsg, anything else is sent as packed short messages.
func (m *PortClient) Send(name string, data []byte) error {
	m.mu.Lock()
	handle, ok := m.outputs[name]
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrPortNotOpen, name)
	}
	if len(data) == 0 {
		return nil
	}
	if data[0] == 0xF0 {
		return sendLong(handle, data)
	}

	for i := 0; i < len(data); i += 3 {
		var msg uintptr
		for j := 0; j < 3 && i+j < len(data); j++ {
			msg |= uintptr(data[i+j]) << (8 * j)
		}
		if r1, _, err := procMidiOutShortMsg.Call(uintptr(handle), msg); r1 != 0 {
			return fmt.Errorf("failed to send MIDI message: %v", err)
		}
	}
	return nil
}

func sendLong(handle HMIDIOUT, data []byte) error {
	buf := append([]byte(nil), data...)
	hdr := midiHdr{lpData: &buf[0], dwBufferLength: uint32(len(buf)), dwBytesRecorded: uint32(len(buf))}

	if r1, _, err := procMidiOutPrepareHeader.Call(uintptr(handle), uintptr(unsafe.Pointer(&hdr)), unsafe.Sizeof(hdr)); r1 != 0 {
		return fmt.Errorf("failed to prepare MIDI header: %v", err)
	}
	defer procMidiOutUnprepareHeader.Call(uintptr(handle), uintptr(unsafe.Pointer(&hdr)), unsafe.Sizeof(hdr))

	if r1, _, err := procMidiOutLongMsg.Call(uintptr(handle), uintptr(unsafe.Pointer(&hdr)), unsafe.Sizeof(hdr)); r1 != 0 {
		return fmt.Errorf("failed to send MIDI long message: %v", err)
	}

	deadline := time.Now().Add(time.Second)
	for hdr.dwFlags&MHDR_DONE == 0 {
		if time.Now().After(deadline) {
			return ErrSendTimeout
		}
		time.Sleep(time.Millisecond)
	}
	return nil
}

// midiInCallback processes incoming MIDI messages
func midiInCallback(hMidiIn uintptr, wMsg uint32, dwInstance uintptr, dwParam1 uintptr, dwParam2 uintptr) uintptr {
	in := (*inputPort)(unsafe.Pointer(dwInstance))

	switch wMsg {
	case MIM_OPEN:
		in.logger.Debug("MIDI input device opened")
	case MIM_CLOSE:
		in.logger.Debug("MIDI input device closed")
	case MIM_DATA:
		status := byte(dwParam1 & 0xFF)
		data := []byte{status, byte((dwParam1 >> 8) & 0xFF), byte((dwParam1 >> 16) & 0xFF)}
		if c := status & 0xF0; c == 0xC0 || c == 0xD0 {
			data = data[:2]
		}
		in.receive(data)
	case MIM_LONGDATA:
		in.logger.Debug("System exclusive input ignored")
	case MIM_ERROR, MIM_LONGERROR:
		in.logger.Error(fmt.Sprintf("MIDI error: msg=0x%X", wMsg))
	case MIM_MOREDATA:
		in.logger.Debug("Received MIM_MOREDATA message; ignored")
	default:
		in.logger.Warn(fmt.Sprintf("Unknown MIDI message: 0x%X", wMsg))
	}

	return 0
}

// Stop closes every open input and output.
func (m *PortClient) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var err error
	for name, in := range m.inputs {
		err = multierr.Append(err, closeInput(in))
		delete(m.inputs, name)
	}
	for name, handle := range m.outputs {
		if r1, _, cerr := procMidiOutClose.Call(uintptr(handle)); r1 != 0 {
			err = multierr.Append(err, fmt.Errorf("failed to close MIDI output %s: %v", name, cerr))
		}
		delete(m.outputs, name)
	}
	m.logger.Info("MIDI ports closed")
	return err
}
