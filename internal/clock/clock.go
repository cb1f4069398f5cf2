// Package clock abstracts monotonic time and cancellable delayed callbacks
// so the dwell tracker and the playback engine can be driven deterministically
// in tests.
package clock

import "time"

// Clock provides monotonic time and delayed callbacks.
type Clock interface {
	Now() time.Time
	// AfterFunc runs fn after d elapses. The returned Timer cancels the
	// callback if stopped before it fires.
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a cancellable pending callback.
type Timer interface {
	// Stop cancels the callback. Returns false if it already fired or was
	// already stopped.
	Stop() bool
}

// System returns a Clock backed by the time package.
func System() Clock {
	return systemClock{}
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return systemTimer{t: time.AfterFunc(d, fn)}
}

type systemTimer struct {
	t *time.Timer
}

func (st systemTimer) Stop() bool {
	return st.t.Stop()
}
