package form

import (
	"sync"
	"time"
)

// Timer is a pending callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Scheduler runs callbacks after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemScheduler struct{}

// NewSystemScheduler returns a Scheduler backed by time.AfterFunc.
func NewSystemScheduler() Scheduler {
	return systemScheduler{}
}

// AfterFunc implements Scheduler.
func (systemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// timerSet tracks scheduled callbacks so they can all be cleared on teardown.
type timerSet struct {
	mu     sync.Mutex
	next   uint64
	timers map[uint64]Timer
	closed bool
}

func newTimerSet() *timerSet {
	return &timerSet{timers: make(map[uint64]Timer)}
}

// schedule registers f to run after d. It returns 0 once the set is closed.
func (ts *timerSet) schedule(s Scheduler, d time.Duration, f func()) uint64 {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.closed {
		return 0
	}

	ts.next++
	id := ts.next
	ts.timers[id] = s.AfterFunc(d, func() {
		if ts.take(id) {
			f()
		}
	})
	return id
}

// take removes a fired timer and reports whether it was still live.
func (ts *timerSet) take(id uint64) bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if _, ok := ts.timers[id]; !ok {
		return false
	}
	delete(ts.timers, id)
	return true
}

func (ts *timerSet) stop(id uint64) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if t, ok := ts.timers[id]; ok {
		t.Stop()
		delete(ts.timers, id)
	}
}

func (ts *timerSet) pending() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return len(ts.timers)
}

func (ts *timerSet) stopAll() {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	for id, t := range ts.timers {
		t.Stop()
		delete(ts.timers, id)
	}
	ts.closed = true
}
