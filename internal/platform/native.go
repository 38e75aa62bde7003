package platform

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/leandrodaf/midibt/internal/devicelist"
	"github.com/leandrodaf/midibt/sdk/contracts"
)

var (
	// ErrUnknownEvent is returned by Dispatch for an event name it does not handle.
	ErrUnknownEvent = errors.New("unknown native event")
	// ErrMalformedPayload is returned by Dispatch when an event payload cannot be parsed.
	ErrMalformedPayload = errors.New("malformed native event payload")
)

// Native methods called on the host.
const (
	methodScan              = "scanMidiBluetooth"
	methodStopScan          = "stopScanMidiBluetooth"
	methodDeviceList        = "getMidiDeviceJsonString"
	methodConnect           = "connectBluetooth"
	methodDisconnect        = "disconnectBluetooth"
	methodOpenDevice        = "openDeviceToPort"
	methodCloseDevice       = "closeDeviceFromPort"
	methodOpenInputPort     = "discoverMidiInputPort"
	methodCloseInputPort    = "closeMidiInputPort"
	methodSendMidiEvent     = "sendMidiEvent"
	methodCheckBluetooth    = "checkIsBluetoothEnabled"
	methodRequestPermission = "requestBluetoothPermissions"
	methodCloseAll          = "closeAllMidiDevice"
)

// Events the host dispatches back.
const (
	EventConnected          = "onConnected"
	EventDisconnected       = "onDisconnected"
	EventScanTick           = "onTickMidiBluetoothResult"
	EventScanCompleted      = "onScanMidiBluetoothFinish"
	EventDeviceStatusChange = "onDeviceStatusChange"
	EventMidiReceived       = "onMidiReceived"
	EventBluetoothStatus    = "onBluetoothStatus"
	EventPermissionResult   = "onPermissionResult"
)

// Native is a TransportBoundary over a contracts.NativeHost. The host reports the
// device list as JSON and delivers events through Dispatch.
type Native struct {
	host   contracts.NativeHost
	logger contracts.Logger

	mu      sync.Mutex
	handler contracts.TransportHandler
}

var _ contracts.NativeTransport = (*Native)(nil)

// NewNative creates a transport calling host.
func NewNative(host contracts.NativeHost, logger contracts.Logger) *Native {
	return &Native{host: host, logger: logger}
}

func (n *Native) Subscribe(handler contracts.TransportHandler) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.handler = handler
}

func (n *Native) call(method string, args ...string) error {
	if _, err := n.host.Call(method, args...); err != nil {
		return fmt.Errorf("native %s: %w", method, err)
	}
	return nil
}

func (n *Native) StartScan() error { return n.call(methodScan) }
func (n *Native) StopScan() error  { return n.call(methodStopScan) }

func (n *Native) deviceList() ([]contracts.DeviceRecord, error) {
	text, err := n.host.Call(methodDeviceList)
	if err != nil {
		return nil, fmt.Errorf("native %s: %w", methodDeviceList, err)
	}
	return devicelist.Decode(text)
}

func (n *Native) DiscoverableDevices() ([]contracts.DeviceRecord, error) {
	records, err := n.deviceList()
	if err != nil {
		return nil, err
	}
	return devicelist.Connected(records, false), nil
}

func (n *Native) ConnectedDevices() ([]contracts.DeviceRecord, error) {
	records, err := n.deviceList()
	if err != nil {
		return nil, err
	}
	return devicelist.Connected(records, true), nil
}

func (n *Native) ConnectBluetooth(address string) error    { return n.call(methodConnect, address) }
func (n *Native) DisconnectBluetooth(address string) error { return n.call(methodDisconnect, address) }
func (n *Native) OpenPhysical(address string) error        { return n.call(methodOpenDevice, address) }
func (n *Native) ClosePhysical(address string) error       { return n.call(methodCloseDevice, address) }
func (n *Native) OpenLogicalPort(name string) error        { return n.call(methodOpenInputPort, name) }
func (n *Native) CloseLogicalPort(name string) error       { return n.call(methodCloseInputPort, name) }

// Send passes data as comma separated decimal bytes. An empty address
// broadcasts.
func (n *Native) Send(address string, data []byte) error {
	return n.call(methodSendMidiEvent, address, FormatBytes(data))
}

func (n *Native) CheckBluetoothEnabled() error { return n.call(methodCheckBluetooth) }
func (n *Native) RequestPermissions() error    { return n.call(methodRequestPermission) }
func (n *Native) CloseAll() error              { return n.call(methodCloseAll) }

type midiEventPayload struct {
	MidiMessage string `json:"midiMessage"`
}

// Dispatch delivers one host event. Malformed payloads are returned to the
// host and not forwarded; events without a subscriber are dropped.
func (n *Native) Dispatch(event, payload string) error {
	n.mu.Lock()
	h := n.handler
	n.mu.Unlock()

	switch event {
	case EventConnected:
		if h != nil {
			h.OnConnected(payload)
		}
	case EventDisconnected:
		if h != nil {
			h.OnDisconnected(payload)
		}
	case EventScanTick:
		if h != nil {
			h.OnScanTick()
		}
	case EventScanCompleted:
		if h != nil {
			h.OnScanCompleted()
		}
	case EventDeviceStatusChange:
		if h != nil {
			h.OnDeviceStatusChanged()
		}
	case EventMidiReceived:
		var p midiEventPayload
		if err := json.Unmarshal([]byte(payload), &p); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMalformedPayload, event, err)
		}
		data, err := ParseBytes(p.MidiMessage)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMalformedPayload, event, err)
		}
		if h != nil && len(data) > 0 {
			h.OnRawBytes(data)
		}
	case EventBluetoothStatus:
		if h != nil {
			return h.OnBluetoothStatus(payload)
		}
	case EventPermissionResult:
		granted, err := strconv.ParseBool(strings.TrimSpace(payload))
		if err != nil {
			return fmt.Errorf("%w: %s: %q", ErrMalformedPayload, event, payload)
		}
		if h != nil {
			h.OnPermissionResult(granted)
		}
	default:
		n.logger.Warn("Unknown native event", n.logger.Field().String("event", event))
		return fmt.Errorf("%w: %s", ErrUnknownEvent, event)
	}
	return nil
}

// FormatBytes renders data as comma separated decimal bytes ("144,60,100").
func FormatBytes(data []byte) string {
	parts := make([]string, len(data))
	for i, b := range data {
		parts[i] = strconv.Itoa(int(b))
	}
	return strings.Join(parts, ",")
}

// ParseBytes parses comma separated decimal bytes. An empty string is an
// empty buffer.
func ParseBytes(s string) ([]byte, error) {
	if strings.TrimSpace(s) == "" {
		return []byte{}, nil
	}
	parts := strings.Split(s, ",")
	data := make([]byte, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 8)
		if err != nil {
			return nil, err
		}
		data[i] = byte(v)
	}
	return data, nil
}
