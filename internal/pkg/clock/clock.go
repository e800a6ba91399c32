package clock

import "time"

// Clock abstracts wall-clock time so services that depend on "today" can be
// tested deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// New returns a Clock backed by the system clock.
func New() Clock {
	return systemClock{}
}

// Fixed returns a Clock that always reports t.
func Fixed(t time.Time) Clock {
	return fixedClock{t: t}
}

type fixedClock struct {
	t time.Time
}

func (f fixedClock) Now() time.Time {
	return f.t
}
