package redis

import (
	"fmt"

	"github.com/severedgames/mysteryparty/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "mystery"

// Key generation functions for each entity type

// userKey returns the Redis key for a User
func userKey(username model.Username) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, username)
}

// usersIndexKey returns the Redis key for the SET of all usernames
func usersIndexKey() string {
	return fmt.Sprintf("%s:idx:users", keyPrefix)
}

// personaKey returns the Redis key for a Persona
func personaKey(username model.Username) string {
	return fmt.Sprintf("%s:persona:%s", keyPrefix, username)
}

// personasIndexKey returns the Redis key for the SET of persona usernames
func personasIndexKey() string {
	return fmt.Sprintf("%s:idx:personas", keyPrefix)
}

// userCluesKey returns the Redis key for a user's clue list
func userCluesKey(username model.Username) string {
	return fmt.Sprintf("%s:clues:user:%s", keyPrefix, username)
}

// murderCluesKey returns the Redis key for the murder clue sets
func murderCluesKey() string {
	return fmt.Sprintf("%s:clues:murder", keyPrefix)
}

// roomKey returns the Redis key for a Room
func roomKey(code model.RoomCode) string {
	return fmt.Sprintf("%s:room:%s", keyPrefix, code)
}

// roomsIndexKey returns the Redis key for the ZSET of room codes scored by
// creation time
func roomsIndexKey() string {
	return fmt.Sprintf("%s:idx:rooms", keyPrefix)
}

// messageSeqKey returns the Redis key for the store-wide message ID sequence
func messageSeqKey() string {
	return fmt.Sprintf("%s:seq:message", keyPrefix)
}

// roomMessagesKey returns the Redis key for the ZSET of a room's messages
// scored by message ID
func roomMessagesKey(code model.RoomCode) string {
	return fmt.Sprintf("%s:messages:%s", keyPrefix, code)
}

// dmSeqKey returns the Redis key for the direct message ID sequence
func dmSeqKey() string {
	return fmt.Sprintf("%s:seq:dm", keyPrefix)
}

// dmKey returns the Redis key for a DirectMessage
func dmKey(id model.DirectMessageID) string {
	return fmt.Sprintf("%s:dm:%d", keyPrefix, id)
}

// dmInboxKey returns the Redis key for the ZSET of a recipient's direct
// message IDs
func dmInboxKey(recipient model.Username) string {
	return fmt.Sprintf("%s:idx:dm_inbox:%s", keyPrefix, recipient)
}
