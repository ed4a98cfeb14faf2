package event

import (
	"sync"
	"time"
)

// timerSet хранит отложенные срабатывания по событию, чтобы при смене
// состояния их можно было явно снять, а не ждать, пока устаревший
// таймер сам отсеется проверкой статуса.
type timerSet struct {
	mu     sync.Mutex
	timers map[uint][]*time.Timer
}

func newTimerSet() *timerSet {
	return &timerSet{timers: make(map[uint][]*time.Timer)}
}

// schedule взводит таймер, привязанный к событию.
func (ts *timerSet) schedule(eventID uint, d time.Duration, fn func()) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	var t *time.Timer
	t = time.AfterFunc(d, func() {
		ts.forget(eventID, t)
		fn()
	})
	ts.timers[eventID] = append(ts.timers[eventID], t)
}

// cancel снимает все таймеры события.
func (ts *timerSet) cancel(eventID uint) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	for _, t := range ts.timers[eventID] {
		t.Stop()
	}
	delete(ts.timers, eventID)
}

// stopAll снимает всё разом.
func (ts *timerSet) stopAll() {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	for id, timers := range ts.timers {
		for _, t := range timers {
			t.Stop()
		}
		delete(ts.timers, id)
	}
}

func (ts *timerSet) forget(eventID uint, fired *time.Timer) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	timers := ts.timers[eventID]
	for i, t := range timers {
		if t == fired {
			ts.timers[eventID] = append(timers[:i], timers[i+1:]...)
			break
		}
	}
	if len(ts.timers[eventID]) == 0 {
		delete(ts.timers, eventID)
	}
}
