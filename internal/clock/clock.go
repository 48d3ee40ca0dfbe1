package clock

import "time"

// Clock lets stores and generators take time as a dependency.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// NewSystem returns a clock backed by time.Now in UTC.
func NewSystem() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// Stepping returns start on the first call and advances by step on each
// following call.
func Stepping(start time.Time, step time.Duration) Clock {
	return &steppingClock{next: start.UTC(), step: step}
}

type steppingClock struct {
	next time.Time
	step time.Duration
}

func (s *steppingClock) Now() time.Time {
	now := s.next
	s.next = s.next.Add(s.step)
	return now
}
