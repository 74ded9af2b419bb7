package engine

import (
	"sync"
	"time"
)

// PausableClock derives stage time from a source clock, freezing it while
// paused. Timed waits read it, so they do not elapse during a pause.
type PausableClock struct {
	mu sync.RWMutex

	source    TimeProvider
	epoch     time.Time // source time at creation
	paused    bool
	pausedAt  time.Time     // source time the current pause began
	pausedFor time.Duration // completed pauses
}

// NewPausableClock creates a running clock over source, the system clock
// when source is nil
func NewPausableClock(source TimeProvider) *PausableClock {
	if source == nil {
		source = NewMonotonicTimeProvider()
	}
	return &PausableClock{source: source, epoch: source.Now()}
}

// Now returns stage time: source time minus every pause
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.paused {
		return pc.pausedAt.Add(-pc.pausedFor)
	}
	return pc.source.Now().Add(-pc.pausedFor)
}

// RealTime returns the unpaused source time
func (pc *PausableClock) RealTime() time.Time {
	return pc.source.Now()
}

// Elapsed returns stage time since creation
func (pc *PausableClock) Elapsed() time.Duration {
	return pc.Now().Sub(pc.epoch)
}

// Pause freezes stage time; repeated calls are no-ops
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.paused {
		return
	}
	pc.paused = true
	pc.pausedAt = pc.source.Now()
}

// Resume continues stage time from where it froze
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if !pc.paused {
		return
	}
	pc.pausedFor += pc.source.Now().Sub(pc.pausedAt)
	pc.paused = false
	pc.pausedAt = time.Time{}
}

// Toggle flips the pause state and returns the new state
func (pc *PausableClock) Toggle() bool {
	if pc.IsPaused() {
		pc.Resume()
		return false
	}
	pc.Pause()
	return true
}

// IsPaused reports the pause state
func (pc *PausableClock) IsPaused() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.paused
}

// TotalPauseDuration returns cumulative pause time including a current pause
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	total := pc.pausedFor
	if pc.paused {
		total += pc.source.Now().Sub(pc.pausedAt)
	}
	return total
}
