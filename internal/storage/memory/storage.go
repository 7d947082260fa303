package memory

import (
	"context"
	"sync"

	"github.com/severedgames/mysteryparty/internal/model"
	"github.com/severedgames/mysteryparty/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	users       map[model.Username]*model.User
	personas    map[model.Username]*model.Persona
	userClues   map[model.Username][]string
	murderClues *model.MurderClues

	rooms     map[model.RoomCode]*model.Room
	roomOrder []model.RoomCode // creation order, oldest first

	messages      map[model.RoomCode][]*model.Message
	nextMessageID model.MessageID

	directMessages map[model.DirectMessageID]*model.DirectMessage
	dmOrder        []model.DirectMessageID
	nextDMID       model.DirectMessageID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:          make(map[model.Username]*model.User),
		personas:       make(map[model.Username]*model.Persona),
		userClues:      make(map[model.Username][]string),
		rooms:          make(map[model.RoomCode]*model.Room),
		messages:       make(map[model.RoomCode][]*model.Message),
		directMessages: make(map[model.DirectMessageID]*model.DirectMessage),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.Username] = user
	return nil
}

func (s *Storage) GetUser(ctx context.Context, username model.Username) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]*model.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	return users, nil
}

func (s *Storage) UserCount(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}

// Persona operations

func (s *Storage) SavePersona(ctx context.Context, persona *model.Persona) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.personas[persona.Username] = persona
	return nil
}

func (s *Storage) GetPersona(ctx context.Context, username model.Username) (*model.Persona, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	persona, ok := s.personas[username]
	if !ok {
		return nil, model.ErrPersonaNotFound
	}
	return persona, nil
}

func (s *Storage) ListPersonas(ctx context.Context) ([]*model.Persona, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	personas := make([]*model.Persona, 0, len(s.personas))
	for _, p := range s.personas {
		personas = append(personas, p)
	}
	return personas, nil
}

// Clue operations

func (s *Storage) SaveUserClues(ctx context.Context, username model.Username, clues []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]string, len(clues))
	copy(stored, clues)
	s.userClues[username] = stored
	return nil
}

func (s *Storage) GetUserClues(ctx context.Context, username model.Username) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clues, ok := s.userClues[username]
	if !ok {
		return nil, model.ErrCluesNotFound
	}
	result := make([]string, len(clues))
	copy(result, clues)
	return result, nil
}

func (s *Storage) SaveMurderClues(ctx context.Context, clues *model.MurderClues) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.murderClues = clues
	return nil
}

func (s *Storage) GetMurderClues(ctx context.Context) (*model.MurderClues, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.murderClues == nil {
		return nil, model.ErrCluesNotFound
	}
	return s.murderClues, nil
}

// Room operations

func (s *Storage) CreateRoom(ctx context.Context, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.rooms[room.Code]; exists {
		return model.ErrRoomCodeTaken
	}
	s.rooms[room.Code] = room
	s.roomOrder = append(s.roomOrder, room.Code)
	return nil
}

func (s *Storage) GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[code]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return room, nil
}

func (s *Storage) RoomExists(ctx context.Context, code model.RoomCode) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.rooms[code]
	return ok, nil
}

func (s *Storage) ListRooms(ctx context.Context) ([]*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rooms := make([]*model.Room, 0, len(s.roomOrder))
	for i := len(s.roomOrder) - 1; i >= 0; i-- {
		rooms = append(rooms, s.rooms[s.roomOrder[i]])
	}
	return rooms, nil
}

// Message operations

func (s *Storage) AppendMessage(ctx context.Context, msg *model.Message) (*model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextMessageID++
	stored := *msg
	stored.ID = s.nextMessageID
	s.messages[msg.RoomCode] = append(s.messages[msg.RoomCode], &stored)
	return &stored, nil
}

func (s *Storage) GetRecentMessages(ctx context.Context, code model.RoomCode, limit int) ([]*model.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := s.messages[code]
	start := len(msgs) - limit
	if start < 0 {
		start = 0
	}
	result := make([]*model.Message, len(msgs)-start)
	copy(result, msgs[start:])
	return result, nil
}

func (s *Storage) GetMessagesSince(ctx context.Context, code model.RoomCode, afterID model.MessageID, limit int) ([]*model.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*model.Message, 0, limit)
	for _, msg := range s.messages[code] {
		if msg.ID <= afterID {
			continue
		}
		result = append(result, msg)
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

// Direct message operations

func (s *Storage) SaveDirectMessage(ctx context.Context, dm *model.DirectMessage) (*model.DirectMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextDMID++
	stored := *dm
	stored.ID = s.nextDMID
	s.directMessages[stored.ID] = &stored
	s.dmOrder = append(s.dmOrder, stored.ID)
	return &stored, nil
}

func (s *Storage) GetDirectMessage(ctx context.Context, id model.DirectMessageID) (*model.DirectMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dm, ok := s.directMessages[id]
	if !ok {
		return nil, model.ErrDirectMessageNotFound
	}
	return dm, nil
}

func (s *Storage) GetDirectMessagesFor(ctx context.Context, recipient model.Username) ([]*model.DirectMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*model.DirectMessage
	for _, id := range s.dmOrder {
		if dm := s.directMessages[id]; dm.Recipient == recipient {
			result = append(result, dm)
		}
	}
	return result, nil
}

func (s *Storage) MarkDirectMessageRead(ctx context.Context, id model.DirectMessageID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	dm, ok := s.directMessages[id]
	if !ok {
		return model.ErrDirectMessageNotFound
	}
	dm.Read = true
	return nil
}
