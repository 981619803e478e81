package quota

import "time"

// Limit is one user's hourly capture quota. The window is anchored to the
// last capture, not to clock boundaries.
type Limit struct {
	UserID             int64
	CapturesPerHour    int
	LastCaptureTime    time.Time
	CapturesSinceReset int
}

// Allowance reports how many captures remain in the current window.
// NextReset is zero when the window has already closed (a full hour has
// elapsed since the last capture) and when the allowance is unlimited.
type Allowance struct {
	Remaining int
	Unlimited bool
	NextReset time.Time
}
