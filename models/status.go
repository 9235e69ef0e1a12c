package models

// Status is the review state of a sighting.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// Reviewable reports whether s can be the target of a review or update.
// Pending is only ever assigned at creation.
func (s Status) Reviewable() bool {
	switch s {
	case StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}
