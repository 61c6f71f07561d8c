package shooter

import "time"

// spawnWindow is the timer shared by the spawners.
//
// While the owner is below its target the window opens on the first
// observation and fires once more than interval has passed. Firing moves the
// window forward by one interval, so spawns keep a steady cadence regardless
// of the tick rate. At or above target the window restarts on every tick.
type spawnWindow struct {
	since time.Time // zero while idle
}

// due reports whether a spawn should happen at now.
func (w *spawnWindow) due(now time.Time, belowTarget bool, interval time.Duration) bool {
	if !belowTarget {
		w.since = now
		return false
	}
	if w.since.IsZero() {
		w.since = now
		return false
	}
	if now.Sub(w.since) <= interval {
		return false
	}

	w.since = w.since.Add(interval)
	// After a stall, restart instead of bursting to catch up.
	if now.Sub(w.since) > interval {
		w.since = now
	}
	return true
}

func (w *spawnWindow) reset() {
	w.since = time.Time{}
}
