// Package observer implements a subscriber list with fire-and-forget delivery.
package observer

import "sync"

// List holds subscribers of type T. The zero value is ready to use.
type List[T any] struct {
	mu     sync.Mutex
	nextID int
	subs   []subscriber[T]
}

type subscriber[T any] struct {
	id  int
	sub T
}

// Add registers sub and returns a function removing it. Removing twice is harmless.
func (l *List[T]) Add(sub T) (remove func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	id := l.nextID
	l.subs = append(l.subs, subscriber[T]{id: id, sub: sub})

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		for i, s := range l.subs {
			if s.id == id {
				l.subs = append(l.subs[:i:i], l.subs[i+1:]...)
				return
			}
		}
	}
}

// Len returns the number of current subscribers.
func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.subs)
}

// Fire calls fn for every current subscriber in registration order. With no
// subscribers the event is dropped. fn runs without the list lock held, so
// subscribers may add or remove themselves.
func (l *List[T]) Fire(fn func(T)) {
	l.mu.Lock()
	snapshot := make([]T, len(l.subs))
	for i, s := range l.subs {
		snapshot[i] = s.sub
	}
	l.mu.Unlock()

	for _, sub := range snapshot {
		fn(sub)
	}
}
