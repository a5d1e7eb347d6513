// Package lock serialises work per key. The booking flow takes one lock per
// business around its conflict check and insert.
package lock

import (
	"context"
	"errors"
	"sync"
)

// ErrNotAcquired is returned when the context ends before the lock is free.
var ErrNotAcquired = errors.New("lock not acquired")

// Locker hands out exclusive locks by key. The returned release func must be
// called exactly once.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// LocalLocker is an in-process keyed mutex.
type LocalLocker struct {
	mu    sync.Mutex
	slots map[string]*entry
}

type entry struct {
	ch   chan struct{}
	refs int
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{slots: map[string]*entry{}}
}

func (l *LocalLocker) Acquire(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	e, ok := l.slots[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		l.slots[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		l.drop(key, e)
		return nil, errors.Join(ErrNotAcquired, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.ch
			l.drop(key, e)
		})
	}, nil
}

// drop forgets the entry once nobody holds or waits on it.
func (l *LocalLocker) drop(key string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.slots, key)
	}
}
