package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/severedgames/mysteryparty/internal/model"
	"github.com/severedgames/mysteryparty/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
//
// Message IDs come from a single INCR sequence, which gives the strictly
// increasing ID guarantee the polling cursor depends on even under
// concurrent posts.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	// Pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, userKey(user.Username), data, 0)
	pipe.SAdd(ctx, usersIndexKey(), string(user.Username))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetUser(ctx context.Context, username model.Username) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	usernames, err := s.client.SMembers(ctx, usersIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(usernames) == 0 {
		return []*model.User{}, nil
	}

	keys := make([]string, len(usernames))
	for i, u := range usernames {
		keys[i] = userKey(model.Username(u))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	users := make([]*model.User, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var user model.User
		if err := json.Unmarshal([]byte(val.(string)), &user); err != nil {
			continue
		}
		users = append(users, &user)
	}
	return users, nil
}

func (s *Storage) UserCount(ctx context.Context) (int, error) {
	count, err := s.client.SCard(ctx, usersIndexKey()).Result()
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// Persona operations

func (s *Storage) SavePersona(ctx context.Context, persona *model.Persona) error {
	data, err := json.Marshal(persona)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, personaKey(persona.Username), data, 0)
	pipe.SAdd(ctx, personasIndexKey(), string(persona.Username))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPersona(ctx context.Context, username model.Username) (*model.Persona, error) {
	data, err := s.client.Get(ctx, personaKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPersonaNotFound
		}
		return nil, err
	}

	var persona model.Persona
	if err := json.Unmarshal(data, &persona); err != nil {
		return nil, err
	}
	return &persona, nil
}

func (s *Storage) ListPersonas(ctx context.Context) ([]*model.Persona, error) {
	usernames, err := s.client.SMembers(ctx, personasIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(usernames) == 0 {
		return []*model.Persona{}, nil
	}

	keys := make([]string, len(usernames))
	for i, u := range usernames {
		keys[i] = personaKey(model.Username(u))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	personas := make([]*model.Persona, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var persona model.Persona
		if err := json.Unmarshal([]byte(val.(string)), &persona); err != nil {
			continue
		}
		personas = append(personas, &persona)
	}
	return personas, nil
}

// Clue operations

func (s *Storage) SaveUserClues(ctx context.Context, username model.Username, clues []string) error {
	data, err := json.Marshal(clues)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, userCluesKey(username), data, 0).Err()
}

func (s *Storage) GetUserClues(ctx context.Context, username model.Username) ([]string, error) {
	data, err := s.client.Get(ctx, userCluesKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrCluesNotFound
		}
		return nil, err
	}

	var clues []string
	if err := json.Unmarshal(data, &clues); err != nil {
		return nil, err
	}
	return clues, nil
}

func (s *Storage) SaveMurderClues(ctx context.Context, clues *model.MurderClues) error {
	data, err := json.Marshal(clues)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, murderCluesKey(), data, 0).Err()
}

func (s *Storage) GetMurderClues(ctx context.Context) (*model.MurderClues, error) {
	data, err := s.client.Get(ctx, murderCluesKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrCluesNotFound
		}
		return nil, err
	}

	var clues model.MurderClues
	if err := json.Unmarshal(data, &clues); err != nil {
		return nil, err
	}
	return &clues, nil
}

// Room operations

func (s *Storage) CreateRoom(ctx context.Context, room *model.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return err
	}

	// SETNX is the uniqueness arbiter for room codes
	ok, err := s.client.SetNX(ctx, roomKey(room.Code), data, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrRoomCodeTaken
	}

	return s.client.ZAdd(ctx, roomsIndexKey(), redis.Z{
		Score:  float64(room.CreatedAt.UnixNano()),
		Member: string(room.Code),
	}).Err()
}

func (s *Storage) GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	data, err := s.client.Get(ctx, roomKey(code)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRoomNotFound
		}
		return nil, err
	}

	var room model.Room
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *Storage) RoomExists(ctx context.Context, code model.RoomCode) (bool, error) {
	exists, err := s.client.Exists(ctx, roomKey(code)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func (s *Storage) ListRooms(ctx context.Context) ([]*model.Room, error) {
	codes, err := s.client.ZRevRange(ctx, roomsIndexKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(codes) == 0 {
		return []*model.Room{}, nil
	}

	keys := make([]string, len(codes))
	for i, c := range codes {
		keys[i] = roomKey(model.RoomCode(c))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	rooms := make([]*model.Room, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var room model.Room
		if err := json.Unmarshal([]byte(val.(string)), &room); err != nil {
			continue
		}
		rooms = append(rooms, &room)
	}
	return rooms, nil
}

// Message operations

func (s *Storage) AppendMessage(ctx context.Context, msg *model.Message) (*model.Message, error) {
	id, err := s.client.Incr(ctx, messageSeqKey()).Result()
	if err != nil {
		return nil, err
	}

	stored := *msg
	stored.ID = model.MessageID(id)

	data, err := json.Marshal(&stored)
	if err != nil {
		return nil, err
	}

	err = s.client.ZAdd(ctx, roomMessagesKey(msg.RoomCode), redis.Z{
		Score:  float64(id),
		Member: data,
	}).Err()
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (s *Storage) GetRecentMessages(ctx context.Context, code model.RoomCode, limit int) ([]*model.Message, error) {
	// Fetch descending by ID, then reverse so callers see oldest-first
	raw, err := s.client.ZRevRange(ctx, roomMessagesKey(code), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	msgs := make([]*model.Message, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		var msg model.Message
		if err := json.Unmarshal([]byte(raw[i]), &msg); err != nil {
			continue
		}
		msgs = append(msgs, &msg)
	}
	return msgs, nil
}

func (s *Storage) GetMessagesSince(ctx context.Context, code model.RoomCode, afterID model.MessageID, limit int) ([]*model.Message, error) {
	raw, err := s.client.ZRangeByScore(ctx, roomMessagesKey(code), &redis.ZRangeBy{
		Min:   "(" + strconv.FormatInt(int64(afterID), 10),
		Max:   "+inf",
		Count: int64(limit),
	}).Result()
	if err != nil {
		return nil, err
	}

	msgs := make([]*model.Message, 0, len(raw))
	for _, item := range raw {
		var msg model.Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			continue
		}
		msgs = append(msgs, &msg)
	}
	return msgs, nil
}

// Direct message operations

func (s *Storage) SaveDirectMessage(ctx context.Context, dm *model.DirectMessage) (*model.DirectMessage, error) {
	id, err := s.client.Incr(ctx, dmSeqKey()).Result()
	if err != nil {
		return nil, err
	}

	stored := *dm
	stored.ID = model.DirectMessageID(id)

	data, err := json.Marshal(&stored)
	if err != nil {
		return nil, err
	}

	// Pipeline for atomic save + inbox index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, dmKey(stored.ID), data, 0)
	pipe.ZAdd(ctx, dmInboxKey(stored.Recipient), redis.Z{
		Score:  float64(id),
		Member: strconv.FormatInt(id, 10),
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (s *Storage) GetDirectMessage(ctx context.Context, id model.DirectMessageID) (*model.DirectMessage, error) {
	data, err := s.client.Get(ctx, dmKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrDirectMessageNotFound
		}
		return nil, err
	}

	var dm model.DirectMessage
	if err := json.Unmarshal(data, &dm); err != nil {
		return nil, err
	}
	return &dm, nil
}

func (s *Storage) GetDirectMessagesFor(ctx context.Context, recipient model.Username) ([]*model.DirectMessage, error) {
	ids, err := s.client.ZRange(ctx, dmInboxKey(recipient), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			continue
		}
		keys = append(keys, dmKey(model.DirectMessageID(n)))
	}
	if len(keys) == 0 {
		return nil, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	dms := make([]*model.DirectMessage, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var dm model.DirectMessage
		if err := json.Unmarshal([]byte(val.(string)), &dm); err != nil {
			continue
		}
		dms = append(dms, &dm)
	}
	return dms, nil
}

func (s *Storage) MarkDirectMessageRead(ctx context.Context, id model.DirectMessageID) error {
	dm, err := s.GetDirectMessage(ctx, id)
	if err != nil {
		return err
	}

	dm.Read = true
	data, err := json.Marshal(dm)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, dmKey(id), data, 0).Err()
}
