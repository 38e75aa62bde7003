package mididarwin

import "sync"

// receiveGate admits receive callbacks while open. close blocks until the
// callbacks already admitted have returned.
type receiveGate struct {
	mu     sync.RWMutex
	closed bool
}

// deliver runs fn unless the gate is closed and reports whether it ran.
func (g *receiveGate) deliver(fn func()) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.closed {
		return false
	}
	fn()
	return true
}

func (g *receiveGate) open() {
	g.mu.Lock()
	g.closed = false
	g.mu.Unlock()
}

func (g *receiveGate) close() {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()
}
