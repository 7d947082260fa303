package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/severedgames/mysteryparty/internal/dependencies/clock"
	"github.com/severedgames/mysteryparty/internal/model"
	"github.com/severedgames/mysteryparty/internal/notify"
	"github.com/severedgames/mysteryparty/internal/storage"
)

// PageLimit caps how many messages a single read returns
const PageLimit = 50

// MaxContentLength caps message size in bytes
const MaxContentLength = 2000

var (
	// ErrRateLimited means the sender exceeded their per-minute quota
	ErrRateLimited = errors.New("message rate limit exceeded")
	// ErrEmptyMessage means the content was empty or whitespace
	ErrEmptyMessage = errors.New("message content is empty")
	// ErrMessageTooLong means the content exceeded MaxContentLength
	ErrMessageTooLong = errors.New("message content too long")
)

// Limiter gates message sends per user. Implemented by ratelimit.PerMinuteLimiter.
type Limiter interface {
	Allow(user model.Username) bool
}

// Service handles posting and reading room messages
type Service struct {
	storage storage.Storage
	limiter Limiter
	hub     *notify.Hub
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new chat service
func New(storage storage.Storage, limiter Limiter, hub *notify.Hub, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		limiter: limiter,
		hub:     hub,
		clock:   clk,
		logger:  logger,
	}
}

// Post validates and stores a message in the given room, then fans it out to
// live subscribers. The caller has already resolved the room and authorized
// the sender against it.
func (s *Service) Post(ctx context.Context, code model.RoomCode, sender model.Username, content string) (*model.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyMessage
	}
	if len(content) > MaxContentLength {
		return nil, ErrMessageTooLong
	}

	if !s.limiter.Allow(sender) {
		s.logger.Warn("message rejected by rate limiter",
			slog.String("room", string(code)),
			slog.String("sender", string(sender)))
		return nil, ErrRateLimited
	}

	msg := &model.Message{
		RoomCode: code,
		Sender:   sender,
		Content:  content,
		SentAt:   s.clock.Now(),
	}
	stored, err := s.storage.AppendMessage(ctx, msg)
	if err != nil {
		return nil, err
	}

	s.hub.Notify(*stored)

	s.logger.Info("message posted",
		slog.String("room", string(code)),
		slog.String("sender", string(sender)),
		slog.Int64("message_id", int64(stored.ID)))
	return stored, nil
}

// Recent returns the latest messages in the room, oldest first, capped at
// PageLimit.
func (s *Service) Recent(ctx context.Context, code model.RoomCode) ([]*model.Message, error) {
	return s.storage.GetRecentMessages(ctx, code, PageLimit)
}

// Since returns messages with an ID strictly greater than afterID, oldest
// first, capped at PageLimit. An afterID of zero reads from the beginning.
func (s *Service) Since(ctx context.Context, code model.RoomCode, afterID model.MessageID) ([]*model.Message, error) {
	return s.storage.GetMessagesSince(ctx, code, afterID, PageLimit)
}
