package mididarwin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiveGateDelivers(t *testing.T) {
	var g receiveGate
	calls := 0
	assert.True(t, g.deliver(func() { calls++ }))
	assert.Equal(t, 1, calls)
}

func TestReceiveGateCloseWaitsForDelivery(t *testing.T) {
	var g receiveGate
	entered := make(chan struct{})
	release := make(chan struct{})
	go g.deliver(func() {
		close(entered)
		<-release
	})
	<-entered

	closed := make(chan struct{})
	go func() {
		g.close()
		close(closed)
	}()

	select {
	case <-closed:
		t.Fatal("close returned while a callback was running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("close did not return after the callback finished")
	}
}

func TestReceiveGateDropsAfterClose(t *testing.T) {
	var g receiveGate
	g.close()
	require.False(t, g.deliver(func() { t.Fatal("delivered after close") }))

	g.open()
	assert.True(t, g.deliver(func() {}))
}
