package gates

import (
	"sync"
	"time"
)

// errorFlag is a boolean that clears itself after delay. Raising it again
// restarts the countdown.
type errorFlag struct {
	mu     sync.Mutex
	delay  time.Duration
	raised bool
	gen    uint64
	timer  *time.Timer
}

func newErrorFlag(delay time.Duration) *errorFlag {
	return &errorFlag{delay: delay}
}

func (f *errorFlag) raise() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.timer != nil {
		f.timer.Stop()
	}
	f.raised = true
	f.gen++
	gen := f.gen
	f.timer = time.AfterFunc(f.delay, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.gen == gen {
			f.raised = false
			f.timer = nil
		}
	})
}

func (f *errorFlag) clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.gen++
	f.raised = false
}

func (f *errorFlag) isRaised() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.raised
}
