package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/severedgames/mysteryparty/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// User tests

func (s *StorageSuite) TestSaveAndGetUser() {
	user := &model.User{
		Username:     "alice",
		PasswordHash: "hash123",
		Role:         model.RolePlayer,
	}

	err := s.storage.SaveUser(s.ctx, user)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetUser(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(user.Username, retrieved.Username)
	s.Equal(user.PasswordHash, retrieved.PasswordHash)
	s.Equal(user.Role, retrieved.Role)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestListUsersAndCount() {
	_ = s.storage.SaveUser(s.ctx, &model.User{Username: "alice", Role: model.RolePlayer})
	_ = s.storage.SaveUser(s.ctx, &model.User{Username: "admin", Role: model.RoleAdmin})

	users, err := s.storage.ListUsers(s.ctx)
	s.Require().NoError(err)
	s.Len(users, 2)

	count, err := s.storage.UserCount(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, count)
}

// Persona tests

func (s *StorageSuite) TestSaveAndGetPersona() {
	persona := &model.Persona{
		Username:    "alice",
		Group:       model.GroupInnie,
		Description: "Cubicle C42",
	}

	err := s.storage.SavePersona(s.ctx, persona)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPersona(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(persona.Group, retrieved.Group)
	s.Equal(persona.Description, retrieved.Description)
}

func (s *StorageSuite) TestListPersonas() {
	_ = s.storage.SavePersona(s.ctx, &model.Persona{Username: "alice", Group: model.GroupOutie})
	_ = s.storage.SavePersona(s.ctx, &model.Persona{Username: "bob", Group: model.GroupInnie})

	personas, err := s.storage.ListPersonas(s.ctx)
	s.Require().NoError(err)
	s.Len(personas, 2)
}

// Clue tests

func (s *StorageSuite) TestUserClues() {
	clues := []string{"badge even", "animal USB"}
	s.Require().NoError(s.storage.SaveUserClues(s.ctx, "alice", clues))

	retrieved, err := s.storage.GetUserClues(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(clues, retrieved)

	_, err = s.storage.GetUserClues(s.ctx, "bob")
	s.ErrorIs(err, model.ErrCluesNotFound)
}

func (s *StorageSuite) TestMurderClues() {
	clues := &model.MurderClues{
		ToOuties: []string{"coffee-based beverage"},
		ToInnies: []string{"badge ends 2/4/6"},
	}
	s.Require().NoError(s.storage.SaveMurderClues(s.ctx, clues))

	retrieved, err := s.storage.GetMurderClues(s.ctx)
	s.Require().NoError(err)
	s.Equal(clues.ToOuties, retrieved.ToOuties)
	s.Equal(clues.ToInnies, retrieved.ToInnies)
}

// Room tests

func (s *StorageSuite) TestCreateAndGetRoom() {
	room := &model.Room{
		Code:      "AB12",
		PlayerA:   "alice",
		PlayerB:   "bob",
		CreatedAt: time.Now().UTC(),
	}

	err := s.storage.CreateRoom(s.ctx, room)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRoom(s.ctx, "AB12")
	s.Require().NoError(err)
	s.Equal(room.PlayerA, retrieved.PlayerA)
	s.Equal(room.PlayerB, retrieved.PlayerB)
}

func (s *StorageSuite) TestCreateRoomCodeTaken() {
	s.Require().NoError(s.storage.CreateRoom(s.ctx, &model.Room{Code: "AB12", PlayerA: "alice", PlayerB: "bob"}))

	err := s.storage.CreateRoom(s.ctx, &model.Room{Code: "AB12", PlayerA: "carol", PlayerB: "dave"})
	s.ErrorIs(err, model.ErrRoomCodeTaken)
}

func (s *StorageSuite) TestRoomExists() {
	exists, err := s.storage.RoomExists(s.ctx, "AB12")
	s.Require().NoError(err)
	s.False(exists)

	_ = s.storage.CreateRoom(s.ctx, &model.Room{Code: "AB12"})

	exists, err = s.storage.RoomExists(s.ctx, "AB12")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *StorageSuite) TestListRoomsNewestFirst() {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, code := range []model.RoomCode{"AAAA", "BBBB", "CCCC"} {
		room := &model.Room{Code: code, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		s.Require().NoError(s.storage.CreateRoom(s.ctx, room))
	}

	rooms, err := s.storage.ListRooms(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(rooms, 3)
	s.Equal(model.RoomCode("CCCC"), rooms[0].Code)
	s.Equal(model.RoomCode("AAAA"), rooms[2].Code)
}

// Message tests

func (s *StorageSuite) appendMessage(code model.RoomCode, sender model.Username, content string) *model.Message {
	msg, err := s.storage.AppendMessage(s.ctx, &model.Message{
		RoomCode: code,
		Sender:   sender,
		Content:  content,
		SentAt:   time.Now().UTC(),
	})
	s.Require().NoError(err)
	return msg
}

func (s *StorageSuite) TestAppendMessageAssignsIncreasingIDs() {
	m1 := s.appendMessage("AB12", "alice", "hi")
	m2 := s.appendMessage("AB12", "bob", "hey")
	m3 := s.appendMessage("CD34", "carol", "other room")

	s.Less(m1.ID, m2.ID)
	s.Less(m2.ID, m3.ID)
}

func (s *StorageSuite) TestGetRecentMessagesAscending() {
	for i := 0; i < 5; i++ {
		s.appendMessage("AB12", "alice", fmt.Sprintf("msg %d", i))
	}

	msgs, err := s.storage.GetRecentMessages(s.ctx, "AB12", 3)
	s.Require().NoError(err)
	s.Require().Len(msgs, 3)
	s.Equal("msg 2", msgs[0].Content)
	s.Equal("msg 4", msgs[2].Content)
}

func (s *StorageSuite) TestGetMessagesSince() {
	m1 := s.appendMessage("AB12", "alice", "one")
	s.appendMessage("AB12", "bob", "two")
	s.appendMessage("AB12", "alice", "three")

	msgs, err := s.storage.GetMessagesSince(s.ctx, "AB12", m1.ID, 50)
	s.Require().NoError(err)
	s.Require().Len(msgs, 2)
	s.Equal("two", msgs[0].Content)
	s.Equal("three", msgs[1].Content)
}

func (s *StorageSuite) TestGetMessagesSinceZeroCursor() {
	s.appendMessage("AB12", "alice", "one")
	s.appendMessage("AB12", "bob", "two")

	msgs, err := s.storage.GetMessagesSince(s.ctx, "AB12", 0, 50)
	s.Require().NoError(err)
	s.Len(msgs, 2)
}

func (s *StorageSuite) TestGetMessagesSinceRespectsLimit() {
	for i := 0; i < 10; i++ {
		s.appendMessage("AB12", "alice", fmt.Sprintf("msg %d", i))
	}

	msgs, err := s.storage.GetMessagesSince(s.ctx, "AB12", 0, 4)
	s.Require().NoError(err)
	s.Require().Len(msgs, 4)
	s.Equal("msg 0", msgs[0].Content)
	s.Equal("msg 3", msgs[3].Content)
}

func (s *StorageSuite) TestMessagesIsolatedPerRoom() {
	s.appendMessage("AB12", "alice", "room one")
	s.appendMessage("CD34", "carol", "room two")

	msgs, err := s.storage.GetRecentMessages(s.ctx, "AB12", 50)
	s.Require().NoError(err)
	s.Require().Len(msgs, 1)
	s.Equal("room one", msgs[0].Content)
}

// Direct message tests

func (s *StorageSuite) TestDirectMessageInbox() {
	dm, err := s.storage.SaveDirectMessage(s.ctx, &model.DirectMessage{
		Admin:     "admin",
		Recipient: "alice",
		Content:   "hello alice",
		SentAt:    time.Now().UTC(),
	})
	s.Require().NoError(err)
	s.NotZero(dm.ID)

	_, err = s.storage.SaveDirectMessage(s.ctx, &model.DirectMessage{
		Admin:     "admin",
		Recipient: "bob",
		Content:   "hello bob",
	})
	s.Require().NoError(err)

	inbox, err := s.storage.GetDirectMessagesFor(s.ctx, "alice")
	s.Require().NoError(err)
	s.Require().Len(inbox, 1)
	s.Equal("hello alice", inbox[0].Content)
}

func (s *StorageSuite) TestDirectMessageInboxSkipsCorruptEntries() {
	dm, err := s.storage.SaveDirectMessage(s.ctx, &model.DirectMessage{
		Admin:     "admin",
		Recipient: "alice",
		Content:   "hello alice",
	})
	s.Require().NoError(err)

	// A non-numeric inbox member must be skipped, not turned into an
	// empty MGET key.
	_, err = s.mini.ZAdd(dmInboxKey("alice"), 99, "not-a-number")
	s.Require().NoError(err)

	inbox, err := s.storage.GetDirectMessagesFor(s.ctx, "alice")
	s.Require().NoError(err)
	s.Require().Len(inbox, 1)
	s.Equal(dm.ID, inbox[0].ID)
}

func (s *StorageSuite) TestMarkDirectMessageRead() {
	dm, err := s.storage.SaveDirectMessage(s.ctx, &model.DirectMessage{
		Admin:     "admin",
		Recipient: "alice",
		Content:   "hello",
	})
	s.Require().NoError(err)

	s.Require().NoError(s.storage.MarkDirectMessageRead(s.ctx, dm.ID))

	retrieved, err := s.storage.GetDirectMessage(s.ctx, dm.ID)
	s.Require().NoError(err)
	s.True(retrieved.Read)

	err = s.storage.MarkDirectMessageRead(s.ctx, 999)
	s.ErrorIs(err, model.ErrDirectMessageNotFound)
}
