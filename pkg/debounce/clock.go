package debounce

import "time"

// Timer is the cancellation handle returned by Clock.AfterFunc.
type Timer interface {
	Stop() bool
}

// Clock schedules fn to run once after d elapses.
type Clock interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type systemClock struct{}

// SystemClock returns a Clock backed by time.AfterFunc.
func SystemClock() Clock {
	return systemClock{}
}

func (systemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}
