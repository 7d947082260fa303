package storage

import (
	"context"

	"github.com/severedgames/mysteryparty/internal/model"
)

// Storage defines the interface for data persistence.
//
// Implementations must provide two guarantees the messaging layer depends on:
// CreateRoom is an atomic unique-insert on the room code, and AppendMessage
// assigns store-wide strictly increasing message IDs even under concurrent
// calls.
type Storage interface {
	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, username model.Username) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	UserCount(ctx context.Context) (int, error)

	// Persona operations
	SavePersona(ctx context.Context, persona *model.Persona) error
	GetPersona(ctx context.Context, username model.Username) (*model.Persona, error)
	ListPersonas(ctx context.Context) ([]*model.Persona, error)

	// Clue operations
	SaveUserClues(ctx context.Context, username model.Username, clues []string) error
	GetUserClues(ctx context.Context, username model.Username) ([]string, error)
	SaveMurderClues(ctx context.Context, clues *model.MurderClues) error
	GetMurderClues(ctx context.Context) (*model.MurderClues, error)

	// Room operations
	// CreateRoom fails with model.ErrRoomCodeTaken if the code is in use.
	CreateRoom(ctx context.Context, room *model.Room) error
	GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error)
	RoomExists(ctx context.Context, code model.RoomCode) (bool, error)
	// ListRooms returns all rooms, most recently created first.
	ListRooms(ctx context.Context) ([]*model.Room, error)

	// Message operations
	// AppendMessage fills in the message ID and returns the stored record.
	AppendMessage(ctx context.Context, msg *model.Message) (*model.Message, error)
	// GetRecentMessages returns up to limit most recent messages in ascending
	// ID order.
	GetRecentMessages(ctx context.Context, code model.RoomCode, limit int) ([]*model.Message, error)
	// GetMessagesSince returns up to limit messages with ID strictly greater
	// than afterID, ascending. afterID of 0 means from the beginning.
	GetMessagesSince(ctx context.Context, code model.RoomCode, afterID model.MessageID, limit int) ([]*model.Message, error)

	// Direct message operations
	SaveDirectMessage(ctx context.Context, dm *model.DirectMessage) (*model.DirectMessage, error)
	GetDirectMessage(ctx context.Context, id model.DirectMessageID) (*model.DirectMessage, error)
	GetDirectMessagesFor(ctx context.Context, recipient model.Username) ([]*model.DirectMessage, error)
	MarkDirectMessageRead(ctx context.Context, id model.DirectMessageID) error
}
