package simulator

import "time"

// Timer is a pending call scheduled on a Clock.
type Timer interface {
	// Stop prevents the call from running. It reports false if the call
	// already ran or was stopped.
	Stop() bool
}

// Clock schedules delayed calls.
type Clock interface {
	// AfterFunc runs f on its own goroutine once d has elapsed.
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealClock returns a Clock backed by time.AfterFunc.
func RealClock() Clock {
	return realClock{}
}
