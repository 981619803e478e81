package quota

import "time"

// window is the rolling period over which captures are limited.
const window = time.Hour

// Remaining computes the allowance left for the limit at the given instant.
// Once a full window has elapsed since the last capture the full quota is
// available again and no reset time is reported.
func Remaining(l Limit, now time.Time) Allowance {
	if now.Sub(l.LastCaptureTime) >= window {
		return Allowance{Remaining: l.CapturesPerHour}
	}
	remaining := l.CapturesPerHour - l.CapturesSinceReset
	if remaining < 0 {
		remaining = 0
	}
	return Allowance{Remaining: remaining, NextReset: l.LastCaptureTime.Add(window)}
}

// Consume records one capture against the limit. A rolled-over window
// restarts the counter at one; otherwise the counter increments. The last
// capture time always moves to now.
func Consume(l Limit, now time.Time) Limit {
	if now.Sub(l.LastCaptureTime) >= window {
		l.CapturesSinceReset = 1
	} else {
		l.CapturesSinceReset++
	}
	l.LastCaptureTime = now
	return l
}
