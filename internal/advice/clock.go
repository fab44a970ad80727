package advice

import "time"

// Clock wraps time lookups so cache expiry and telemetry windows are testable.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock with the wall clock.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}
