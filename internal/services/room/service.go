package room

import (
	"context"
	"errors"
	"log/slog"

	"github.com/severedgames/mysteryparty/internal/dependencies/clock"
	"github.com/severedgames/mysteryparty/internal/dependencies/random"
	"github.com/severedgames/mysteryparty/internal/model"
	"github.com/severedgames/mysteryparty/internal/storage"
)

// maxCodeAttempts bounds the collision retry loop. The keyspace holds 1296
// codes; at party scale a run of 100 collisions means it is effectively full.
const maxCodeAttempts = 100

// ErrCapacityExhausted means no free room code could be found
var ErrCapacityExhausted = errors.New("room code space exhausted")

// Service manages room creation, lookup, and access control
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// New creates a new room service
func New(storage storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clk,
		random:  rnd,
		logger:  logger,
	}
}

// Create generates a unique 4-character code and persists a room pairing the
// two usernames. The admin check belongs to the caller; the player names are
// not validated against existing users; they are matched against the
// authenticated username at access time.
func (s *Service) Create(ctx context.Context, playerA, playerB model.Username) (*model.Room, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := model.RoomCode(s.random.String(model.RoomCodeLength, model.RoomCodeAlphabet))

		room := &model.Room{
			Code:      code,
			PlayerA:   playerA,
			PlayerB:   playerB,
			CreatedAt: s.clock.Now(),
		}

		// Storage's atomic insert is the uniqueness arbiter, so two
		// concurrent creates can never both win the same code.
		err := s.storage.CreateRoom(ctx, room)
		if errors.Is(err, model.ErrRoomCodeTaken) {
			continue
		}
		if err != nil {
			return nil, err
		}

		s.logger.Info("room created",
			slog.String("code", string(code)),
			slog.String("player_a", string(playerA)),
			slog.String("player_b", string(playerB)),
		)
		return room, nil
	}

	return nil, ErrCapacityExhausted
}

// Get retrieves a room by exact, case-sensitive code match
func (s *Service) Get(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	return s.storage.GetRoom(ctx, code)
}

// List returns all rooms, most recently created first
func (s *Service) List(ctx context.Context) ([]*model.Room, error) {
	return s.storage.ListRooms(ctx)
}

// Authorize decides whether a user may access a room: admins always may,
// everyone else needs an exact username match on one of the two seats.
// Callers must resolve the room first so a missing room stays NotFound
// rather than Forbidden.
func Authorize(user *model.User, room *model.Room) error {
	if user.IsAdmin() {
		return nil
	}
	if room.HasSeat(user.Username) {
		return nil
	}
	return model.ErrForbidden
}
