package services

import "time"

// AntiSnipingPolicy decides whether an accepted bid pushes the deadline out.
// A qualifying bid always re-extends from the bid time, never from the
// previous deadline.
type AntiSnipingPolicy struct {
	Window    time.Duration
	Extension time.Duration
}

func NewAntiSnipingPolicy(window, extension time.Duration) AntiSnipingPolicy {
	return AntiSnipingPolicy{Window: window, Extension: extension}
}

// Evaluate returns the new end time and true when endTime-now is within the
// window. A zero window disables extension. The deadline never moves
// backwards.
func (p AntiSnipingPolicy) Evaluate(now, endTime time.Time) (time.Time, bool) {
	if p.Window <= 0 || p.Extension <= 0 {
		return endTime, false
	}
	if endTime.Sub(now) > p.Window {
		return endTime, false
	}
	newEnd := now.Add(p.Extension)
	if !newEnd.After(endTime) {
		return endTime, false
	}
	return newEnd, true
}
