package observer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFireReachesAllSubscribersInOrder(t *testing.T) {
	var l List[func(int)]
	var got []string

	l.Add(func(v int) { got = append(got, "a") })
	l.Add(func(v int) { got = append(got, "b") })

	l.Fire(func(f func(int)) { f(1) })

	assert.Equal(t, []string{"a", "b"}, got)
}

func TestFireWithoutSubscribersIsDropped(t *testing.T) {
	var l List[func()]
	assert.NotPanics(t, func() { l.Fire(func(f func()) { f() }) })
	assert.Zero(t, l.Len())
}

func TestRemove(t *testing.T) {
	var l List[func()]
	calls := 0

	remove := l.Add(func() { calls++ })
	l.Add(func() { calls += 10 })
	remove()
	remove()

	l.Fire(func(f func()) { f() })

	assert.Equal(t, 10, calls)
	assert.Equal(t, 1, l.Len())
}

func TestSubscriberMayUnsubscribeDuringFire(t *testing.T) {
	var l List[func()]
	var remove func()
	calls := 0

	remove = l.Add(func() {
		calls++
		remove()
	})

	l.Fire(func(f func()) { f() })
	l.Fire(func(f func()) { f() })

	assert.Equal(t, 1, calls)
}
