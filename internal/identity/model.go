package identity

import "time"

// User represents a registered trainer. Accounts are provisioned by an
// external registration process; this service only reads them, except for
// the admin flag checked at credential login.
type User struct {
	ID        int64
	Username  string
	Phone     string
	IsAdmin   bool
	CreatedAt time.Time
}

// VerificationCode is a single-use access code bound to a user.
type VerificationCode struct {
	ID        int64
	UserID    int64
	Code      string
	Used      bool
	ExpiresAt time.Time
}
