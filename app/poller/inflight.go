package poller

import (
	"sync"
	"time"
)

// inFlight implements thread safe map to register/unregister per-task polls
// in order to prevent request pile-up when the backend is slower than the tick
type inFlight struct {
	active map[string]time.Time
	lock   sync.Mutex
}

func (f *inFlight) init() {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.active == nil {
		f.active = make(map[string]time.Time)
	}
}

// add registers task id, fail if already in
func (f *inFlight) add(id string) bool {
	f.lock.Lock()
	defer f.lock.Unlock()
	if _, found := f.active[id]; found {
		return false
	}
	f.active[id] = time.Now()
	return true
}

// remove unregisters task id. Safe to call multiple times
func (f *inFlight) remove(id string) {
	f.lock.Lock()
	defer f.lock.Unlock()
	delete(f.active, id)
}
