package trade

import "time"

// Status of a trade offer. Trades are never deleted; a response only
// moves the status forward.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Trade is an offer of one capture record from the initiator to the
// receiver, optionally against a record of the receiver's.
type Trade struct {
	ID                 int64
	InitiatorUserID    int64
	ReceiverUserID     int64
	InitiatorPokemonID int64
	ReceiverPokemonID  *int64
	Status             Status
	CreatedAt          time.Time
}
