package model

import "time"

// RunID uniquely identifies a stored ghost run
type RunID int64

// BookID identifies an Ash Trail level
type BookID string

// The three Ash Trail books
const (
	BookDefiGrimoire BookID = "defi_grimoire"
	BookLostLedger   BookID = "lost_ledger"
	BookProofOfBurn  BookID = "proof_of_burn"
)

// Books lists every Ash Trail book
var Books = []BookID{BookDefiGrimoire, BookLostLedger, BookProofOfBurn}

// Valid reports whether b is a known book
func (b BookID) Valid() bool {
	switch b {
	case BookDefiGrimoire, BookLostLedger, BookProofOfBurn:
		return true
	}
	return false
}

// MaxTracePoints bounds the stored replay trace length
const MaxTracePoints = 2500

// Point is one sampled position in grid space
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// GhostRun is one immutable replay attempt for a book. Runs are created
// and read, never updated.
type GhostRun struct {
	ID RunID `json:"id"`

	// UserKey is empty for guest runs; GuestName carries the display
	// name in that case.
	UserKey   UserKey `json:"user_key,omitempty"`
	GuestName string  `json:"guest_name,omitempty"`

	Book      BookID    `json:"book_id"`
	Score     float64   `json:"score"`
	Trace     []Point   `json:"trace"`
	CreatedAt time.Time `json:"created_at"`
}

// IsGuest reports whether the run was submitted unauthenticated
func (r *GhostRun) IsGuest() bool {
	return r.UserKey == ""
}

// DisplayName returns the name shown on run listings
func (r *GhostRun) DisplayName() string {
	if r.GuestName != "" {
		return r.GuestName
	}
	return string(r.UserKey)
}
