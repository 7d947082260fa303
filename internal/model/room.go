package model

import "time"

// RoomCode is the 4-character identifier players use to address a room
type RoomCode string

const (
	// RoomCodeLength is the length of generated room codes
	RoomCodeLength = 4
	// RoomCodeAlphabet is the characters used in room codes
	RoomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Room pairs exactly two player usernames under a unique code. Codes are
// immutable once assigned and rooms are never deleted or reassigned.
//
// PlayerA and PlayerB are free-text at creation time; they are matched
// against the authenticated username when access is checked.
type Room struct {
	Code      RoomCode
	PlayerA   Username
	PlayerB   Username
	CreatedAt time.Time
}

// HasSeat reports whether the given username occupies either seat.
// Comparison is exact and case-sensitive.
func (r *Room) HasSeat(u Username) bool {
	return u == r.PlayerA || u == r.PlayerB
}
