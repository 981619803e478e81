package session

import "time"

// User is the cached snapshot of the logged-in trainer stored alongside the
// session descriptor.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Phone    string `json:"phone,omitempty"`
	IsAdmin  bool   `json:"is_admin"`
}

// Session describes one login. SessionID is the creation timestamp in
// unix milliseconds; ExpiresAt is fixed at creation + TTL.
type Session struct {
	UserID       int64     `json:"user_id"`
	SessionID    int64     `json:"session_id"`
	LastActivity time.Time `json:"last_activity"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// validAt reports whether the session is still live at the given instant.
// A session stays valid while the last activity is within the TTL window
// and the absolute expiry has not passed.
func validAt(sess Session, now time.Time, ttl time.Duration) bool {
	if !now.Before(sess.ExpiresAt) {
		return false
	}
	return now.Sub(sess.LastActivity) < ttl
}
