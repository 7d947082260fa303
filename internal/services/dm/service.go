package dm

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/severedgames/mysteryparty/internal/dependencies/clock"
	"github.com/severedgames/mysteryparty/internal/model"
	"github.com/severedgames/mysteryparty/internal/storage"
)

// ErrEmptyMessage means the content was empty or whitespace
var ErrEmptyMessage = errors.New("direct message content is empty")

// Service handles admin-to-player direct messages
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new direct message service
func New(storage storage.Storage, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clk,
		logger:  logger,
	}
}

// Send delivers a note from an admin to a player. Only admins may send;
// the recipient must be a known user.
func (s *Service) Send(ctx context.Context, sender *model.User, recipient model.Username, content string) (*model.DirectMessage, error) {
	if !sender.IsAdmin() {
		return nil, model.ErrForbidden
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyMessage
	}
	if _, err := s.storage.GetUser(ctx, recipient); err != nil {
		return nil, err
	}

	dm := &model.DirectMessage{
		Admin:     sender.Username,
		Recipient: recipient,
		Content:   content,
		SentAt:    s.clock.Now(),
	}
	stored, err := s.storage.SaveDirectMessage(ctx, dm)
	if err != nil {
		return nil, err
	}

	s.logger.Info("direct message sent",
		slog.String("admin", string(sender.Username)),
		slog.String("recipient", string(recipient)),
		slog.Int64("dm_id", int64(stored.ID)))
	return stored, nil
}

// InboxFor returns the user's direct messages, oldest first
func (s *Service) InboxFor(ctx context.Context, recipient model.Username) ([]*model.DirectMessage, error) {
	return s.storage.GetDirectMessagesFor(ctx, recipient)
}

// MarkRead flags a direct message as read. Only its recipient may do so.
func (s *Service) MarkRead(ctx context.Context, reader model.Username, id model.DirectMessageID) error {
	dm, err := s.storage.GetDirectMessage(ctx, id)
	if err != nil {
		return err
	}
	if dm.Recipient != reader {
		return model.ErrForbidden
	}
	return s.storage.MarkDirectMessageRead(ctx, id)
}
