package review

import (
	"fmt"
	"sync"
	"time"
)

// sessionTimer measures a session's wall-clock duration and ticks once per interval for
// display. Stop releases the ticker and returns once no further tick can be delivered;
// it is safe to call more than once. onTick must not call back into the engine.
type sessionTimer struct {
	now       func() time.Time
	startedAt time.Time

	mu        sync.Mutex
	stoppedAt time.Time
	stopOnce  sync.Once
	done      chan struct{}
	exited    chan struct{}
}

func startSessionTimer(now func() time.Time, interval time.Duration, onTick func(time.Duration)) *sessionTimer {
	timer := &sessionTimer{
		now:       now,
		startedAt: now(),
		done:      make(chan struct{}),
		exited:    make(chan struct{}),
	}
	if onTick == nil || interval <= 0 {
		close(timer.exited)
		return timer
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer close(timer.exited)
		defer ticker.Stop()
		for {
			select {
			case <-timer.done:
				return
			case <-ticker.C:
				select {
				case <-timer.done:
					return
				default:
				}
				onTick(timer.Elapsed())
			}
		}
	}()
	return timer
}

func (timer *sessionTimer) Stop() {
	timer.stopOnce.Do(func() {
		timer.mu.Lock()
		timer.stoppedAt = timer.now()
		timer.mu.Unlock()
		close(timer.done)
	})
	<-timer.exited
}

// Elapsed returns the time since the session started, frozen once the timer stopped.
func (timer *sessionTimer) Elapsed() time.Duration {
	if timer == nil {
		return 0
	}
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if !timer.stoppedAt.IsZero() {
		return timer.stoppedAt.Sub(timer.startedAt)
	}
	return timer.now().Sub(timer.startedAt)
}

// FormatDuration renders d as mm:ss. Minutes are not capped at 59.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	seconds := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
