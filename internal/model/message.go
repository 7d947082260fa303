package model

import "time"

// MessageID orders messages across the whole store. IDs are assigned by the
// storage layer and are strictly increasing in creation order; polling clients
// use the highest ID they have seen as their cursor.
type MessageID int64

// Message belongs to exactly one room and is never mutated or deleted
type Message struct {
	ID       MessageID
	RoomCode RoomCode
	Sender   Username
	Content  string
	SentAt   time.Time
}

// DirectMessageID identifies an admin-to-player direct message
type DirectMessageID int64

// DirectMessage is a one-way note from an admin to a player, with a read
// marker the recipient flips
type DirectMessage struct {
	ID        DirectMessageID
	Admin     Username
	Recipient Username
	Content   string
	Read      bool
	SentAt    time.Time
}
