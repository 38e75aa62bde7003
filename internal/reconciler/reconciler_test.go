package reconciler

import (
	"errors"
	"testing"

	"github.com/leandrodaf/midibt/internal/logger"
	"github.com/leandrodaf/midibt/internal/mocks"
	"github.com/leandrodaf/midibt/sdk/contracts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	holtekAddress = "AA:BB"
	holtekName    = "HOLTEK USB DEVICE-1"
)

func device(address, name string, connected bool) contracts.DeviceRecord {
	return contracts.DeviceRecord{Address: address, Name: name, Connected: connected, Type: contracts.ConnectionBluetooth}
}

func newTestReconciler(t *testing.T, config Config) (*Reconciler, *mocks.MockTransportBoundary) {
	ctrl := gomock.NewController(t)
	transport := mocks.NewMockTransportBoundary(ctrl)
	return New(transport, logger.NewNopLogger(), config), transport
}

// expectLists makes the next refresh report the given lists.
func expectLists(transport *mocks.MockTransportBoundary, connected, discoverable []contracts.DeviceRecord) {
	transport.EXPECT().ConnectedDevices().Return(connected, nil)
	transport.EXPECT().DiscoverableDevices().Return(discoverable, nil)
}

func addresses(bindings []PortBinding) []string {
	out := make([]string, len(bindings))
	for i, b := range bindings {
		out[i] = b.Address
	}
	return out
}

func TestRefreshDeviceListUnionsConnectedFirst(t *testing.T) {
	r, transport := newTestReconciler(t, Config{})
	expectLists(transport,
		[]contracts.DeviceRecord{device("AA", "One", true)},
		[]contracts.DeviceRecord{device("AA", "One", false), device("BB", "Two", false)})

	require.NoError(t, r.RefreshDeviceList())

	devices := r.Devices()
	require.Len(t, devices, 2)
	assert.True(t, devices[0].Connected)
	assert.Equal(t, "BB", devices[1].Address)
	assert.Empty(t, r.Bindings(), "refresh must not touch bindings")
}

func TestRefreshDeviceListKeepsPreviousListOnError(t *testing.T) {
	r, transport := newTestReconciler(t, Config{})
	expectLists(transport, nil, []contracts.DeviceRecord{device("AA", "One", false)})
	require.NoError(t, r.RefreshDeviceList())

	cause := errors.New("adapter gone")
	transport.EXPECT().ConnectedDevices().Return(nil, cause)

	err := r.RefreshDeviceList()
	assert.ErrorIs(t, err, ErrRefresh)
	assert.ErrorIs(t, err, cause)
	assert.Len(t, r.Devices(), 1)
}

func TestReconcilePortsPrunesAndAdds(t *testing.T) {
	r, transport := newTestReconciler(t, Config{DefaultAutoReconnect: true})

	expectLists(transport, nil, []contracts.DeviceRecord{device("AA", "One", false), device("BB", "Two", false)})
	require.NoError(t, r.RefreshDeviceList())
	r.ReconcilePorts()
	assert.Equal(t, []string{"AA", "BB"}, addresses(r.Bindings()))

	r.bindings[0].AutoReconnect = false
	r.bindings[0].managed = true

	expectLists(transport, nil, []contracts.DeviceRecord{device("AA", "One", false), device("CC", "Three", false)})
	require.NoError(t, r.RefreshDeviceList())
	r.ReconcilePorts()

	bindings := r.Bindings()
	assert.Equal(t, []string{"AA", "CC"}, addresses(bindings))
	assert.Equal(t, StateOpenManual, bindings[0].State(), "surviving binding keeps its flags")
	assert.Equal(t, StateDiscoverable, bindings[1].State())
	assert.True(t, bindings[1].AutoReconnect)
}

func TestReconcilePortsIsIdempotent(t *testing.T) {
	r, transport := newTestReconciler(t, Config{DefaultAutoReconnect: true})
	expectLists(transport,
		[]contracts.DeviceRecord{device("AA", "One", true)},
		[]contracts.DeviceRecord{device("AA", "One", false), device("BB", "Two", false), device("BB", "Two bis", false)})
	require.NoError(t, r.RefreshDeviceList())

	r.ReconcilePorts()
	first := r.Bindings()
	r.ReconcilePorts()

	assert.Equal(t, first, r.Bindings())
	assert.Equal(t, []string{"AA", "BB"}, addresses(first), "one binding per address")
}

func TestReconcilePortsUsesDefaultAutoReconnect(t *testing.T) {
	r, transport := newTestReconciler(t, Config{DefaultAutoReconnect: false})
	expectLists(transport, nil, []contracts.DeviceRecord{device("AA", "One", false)})
	require.NoError(t, r.RefreshDeviceList())
	r.ReconcilePorts()

	assert.False(t, r.Bindings()[0].AutoReconnect)
	assert.Equal(t, StateDiscoverable, r.State("AA"))
	assert.Equal(t, StateAbsent, r.State("ZZ"))
}

func TestOpenPortThenDropTriggersExactlyOneReopen(t *testing.T) {
	r, transport := newTestReconciler(t, Config{Automatic: true, DefaultAutoReconnect: true})
	discovered := []contracts.DeviceRecord{device(holtekAddress, holtekName, false)}

	expectLists(transport, nil, discovered)
	require.NoError(t, r.RefreshDeviceList())
	r.ReconcilePorts()
	assert.Equal(t, StateDiscoverable, r.State(holtekAddress))

	gomock.InOrder(
		transport.EXPECT().OpenPhysical(holtekAddress).Return(nil),
		transport.EXPECT().OpenLogicalPort(holtekName).Return(nil),
	)
	require.NoError(t, r.OpenPort(holtekAddress))
	assert.Equal(t, StateOpenAuto, r.State(holtekAddress))

	// The device dropped but is still listed.
	expectLists(transport, nil, discovered)
	gomock.InOrder(
		transport.EXPECT().ClosePhysical(holtekAddress).Return(nil),
		transport.EXPECT().CloseLogicalPort(holtekName).Return(nil),
		transport.EXPECT().OpenPhysical(holtekAddress).Return(nil).Times(1),
		transport.EXPECT().OpenLogicalPort(holtekName).Return(nil).Times(1),
	)

	require.NoError(t, r.OnDeviceStatusChanged())
	assert.Equal(t, StateOpenAuto, r.State(holtekAddress))
}

func TestOnDeviceStatusChangedInSyncDoesNothing(t *testing.T) {
	r, transport := newTestReconciler(t, Config{Automatic: true, DefaultAutoReconnect: true})
	expectLists(transport, []contracts.DeviceRecord{device("AA", "One", true)}, nil)

	require.NoError(t, r.OnDeviceStatusChanged())
	assert.Equal(t, StateDiscoverable, r.State("AA"))
}

func TestOnDeviceStatusChangedWithoutAutomation(t *testing.T) {
	r, transport := newTestReconciler(t, Config{Automatic: false, DefaultAutoReconnect: true})
	expectLists(transport, nil, []contracts.DeviceRecord{device("AA", "One", false)})

	require.NoError(t, r.OnDeviceStatusChanged())
	assert.Equal(t, []string{"AA"}, addresses(r.Bindings()))
}

func TestOnDeviceStatusChangedEmptyListPrunesAll(t *testing.T) {
	r, transport := newTestReconciler(t, Config{Automatic: true, DefaultAutoReconnect: true})
	expectLists(transport, nil, []contracts.DeviceRecord{device("AA", "One", true)})
	require.NoError(t, r.OnDeviceStatusChanged())

	expectLists(transport, nil, nil)
	require.NoError(t, r.OnDeviceStatusChanged())

	assert.Empty(t, r.Bindings())
	assert.Empty(t, r.Devices())
}

func TestReconnectAllSkipsConnectedAndManual(t *testing.T) {
	r, transport := newTestReconciler(t, Config{DefaultAutoReconnect: true})
	expectLists(transport,
		[]contracts.DeviceRecord{device("AA", "Connected", true)},
		[]contracts.DeviceRecord{device("BB", "Manual", false), device("CC", "Dropped", false)})
	require.NoError(t, r.RefreshDeviceList())
	r.ReconcilePorts()
	r.bindings[1].AutoReconnect = false
	r.bindings[1].managed = true

	gomock.InOrder(
		transport.EXPECT().ClosePhysical("CC").Return(nil),
		transport.EXPECT().CloseLogicalPort("Dropped").Return(nil),
		transport.EXPECT().OpenPhysical("CC").Return(nil),
		transport.EXPECT().OpenLogicalPort("Dropped").Return(nil),
	)

	assert.Equal(t, 1, r.ReconnectAll())
	assert.Equal(t, StateOpenAuto, r.State("CC"))
	assert.Equal(t, StateDiscoverable, r.State("AA"))
}

func TestReconnectAllIsIdempotentForConnectedDevices(t *testing.T) {
	r, transport := newTestReconciler(t, Config{DefaultAutoReconnect: true})
	expectLists(transport, []contracts.DeviceRecord{device("AA", "One", true), device("BB", "Two", true)}, nil)
	require.NoError(t, r.RefreshDeviceList())
	r.ReconcilePorts()

	assert.Zero(t, r.ReconnectAll())
	assert.Zero(t, r.ReconnectAll())
}

func TestReconnectAllAbsorbsFailures(t *testing.T) {
	r, transport := newTestReconciler(t, Config{DefaultAutoReconnect: true})
	expectLists(transport, nil, []contracts.DeviceRecord{device("AA", "One", false), device("BB", "Two", false)})
	require.NoError(t, r.RefreshDeviceList())
	r.ReconcilePorts()

	unreachable := errors.New("unreachable")
	transport.EXPECT().ClosePhysical("AA").Return(unreachable)
	transport.EXPECT().OpenPhysical("AA").Return(unreachable)
	transport.EXPECT().ClosePhysical("BB").Return(nil)
	transport.EXPECT().CloseLogicalPort("Two").Return(nil)
	transport.EXPECT().OpenPhysical("BB").Return(nil)
	transport.EXPECT().OpenLogicalPort("Two").Return(nil)

	assert.Equal(t, 2, r.ReconnectAll())
	assert.Equal(t, StateDiscoverable, r.State("AA"), "failed reopen leaves the binding as it was")
	assert.Equal(t, StateOpenAuto, r.State("BB"))
}

func TestClosePortWithoutBindingIsNoop(t *testing.T) {
	r, _ := newTestReconciler(t, Config{})

	// Any transport call fails the test through the mock controller.
	assert.NoError(t, r.ClosePort("AA:BB"))
	assert.NoError(t, r.ClosePortByName("Unknown"))
	assert.Equal(t, StateAbsent, r.State("AA:BB"))
}

func TestClosePortTurnsAutoReconnectOff(t *testing.T) {
	r, transport := newTestReconciler(t, Config{Automatic: true, DefaultAutoReconnect: true})
	expectLists(transport, []contracts.DeviceRecord{device("AA", "One", true)}, nil)
	require.NoError(t, r.RefreshDeviceList())
	r.ReconcilePorts()

	gomock.InOrder(
		transport.EXPECT().ClosePhysical("AA").Return(nil),
		transport.EXPECT().CloseLogicalPort("One").Return(nil),
	)
	require.NoError(t, r.ClosePortByName("One"))
	assert.Equal(t, StateOpenManual, r.State("AA"))

	// The device went away; a manual binding is not reopened.
	expectLists(transport, nil, []contracts.DeviceRecord{device("AA", "One", false)})
	require.NoError(t, r.OnDeviceStatusChanged())
	assert.Equal(t, StateOpenManual, r.State("AA"))
}

func TestClosePortFailureKeepsState(t *testing.T) {
	r, transport := newTestReconciler(t, Config{DefaultAutoReconnect: true})
	expectLists(transport, []contracts.DeviceRecord{device("AA", "One", true)}, nil)
	require.NoError(t, r.RefreshDeviceList())
	r.ReconcilePorts()

	transport.EXPECT().ClosePhysical("AA").Return(errors.New("busy"))

	err := r.ClosePort("AA")
	assert.ErrorIs(t, err, ErrClosePort)
	assert.Equal(t, StateDiscoverable, r.State("AA"))
}

func TestOpenPortRefreshesUnknownAddress(t *testing.T) {
	r, transport := newTestReconciler(t, Config{DefaultAutoReconnect: true})

	expectLists(transport, nil, []contracts.DeviceRecord{device("AA", "One", false)})
	transport.EXPECT().OpenPhysical("AA").Return(nil)
	transport.EXPECT().OpenLogicalPort("One").Return(nil)

	require.NoError(t, r.OpenPort("AA"))
	assert.Equal(t, StateOpenAuto, r.State("AA"))
}

func TestOpenPortRefusedAfterRefreshKeepsPriorState(t *testing.T) {
	r, transport := newTestReconciler(t, Config{DefaultAutoReconnect: true})

	expectLists(transport, nil, []contracts.DeviceRecord{device("AA", "One", false)})
	transport.EXPECT().OpenPhysical("AA").Return(errors.New("unreachable"))

	err := r.OpenPort("AA")
	assert.ErrorIs(t, err, ErrOpenPort)
	assert.Equal(t, StateAbsent, r.State("AA"))
	assert.Empty(t, r.Bindings())
	assert.Empty(t, r.Devices())
}

func TestOpenPortUnknownAfterRefreshIsNoop(t *testing.T) {
	r, transport := newTestReconciler(t, Config{})
	expectLists(transport, nil, nil)

	require.NoError(t, r.OpenPort("ZZ"))
	assert.Equal(t, StateAbsent, r.State("ZZ"))
}

func TestOpenPortRollsBackDeviceLink(t *testing.T) {
	r, transport := newTestReconciler(t, Config{DefaultAutoReconnect: true})
	expectLists(transport, nil, []contracts.DeviceRecord{device("AA", "One", false)})
	require.NoError(t, r.RefreshDeviceList())
	r.ReconcilePorts()

	gomock.InOrder(
		transport.EXPECT().OpenPhysical("AA").Return(nil),
		transport.EXPECT().OpenLogicalPort("One").Return(errors.New("no such port")),
		transport.EXPECT().ClosePhysical("AA").Return(nil),
	)

	err := r.OpenPort("AA")
	assert.ErrorIs(t, err, ErrOpenPort)
	assert.Equal(t, StateDiscoverable, r.State("AA"))
}

func TestOpenPortByNameUnknownIsNoop(t *testing.T) {
	r, _ := newTestReconciler(t, Config{})
	assert.NoError(t, r.OpenPortByName("Nobody"))
}

func TestSetReconnectAutomation(t *testing.T) {
	r, transport := newTestReconciler(t, Config{DefaultAutoReconnect: true})

	require.NoError(t, r.SetReconnectAutomation(false))
	assert.False(t, r.ReconnectAutomation())

	expectLists(transport, nil, []contracts.DeviceRecord{device("AA", "One", false)})
	transport.EXPECT().ClosePhysical("AA").Return(nil)
	transport.EXPECT().CloseLogicalPort("One").Return(nil)
	transport.EXPECT().OpenPhysical("AA").Return(nil)
	transport.EXPECT().OpenLogicalPort("One").Return(nil)

	require.NoError(t, r.SetReconnectAutomation(true))
	assert.True(t, r.ReconnectAutomation())
	assert.Equal(t, StateOpenAuto, r.State("AA"))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "absent", StateAbsent.String())
	assert.Equal(t, "discoverable", StateDiscoverable.String())
	assert.Equal(t, "open-manual", StateOpenManual.String())
	assert.Equal(t, "open-auto", StateOpenAuto.String())
}
