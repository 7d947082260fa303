package persona

import (
	"context"
	"errors"
	"log/slog"

	"github.com/severedgames/mysteryparty/internal/model"
	"github.com/severedgames/mysteryparty/internal/storage"
)

// Service exposes read access to personas and clue sets
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new persona service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// List returns every seeded persona
func (s *Service) List(ctx context.Context) ([]*model.Persona, error) {
	return s.storage.ListPersonas(ctx)
}

// Get returns one user's persona
func (s *Service) Get(ctx context.Context, username model.Username) (*model.Persona, error) {
	return s.storage.GetPersona(ctx, username)
}

// CluesFor returns the user's personal clue list. A user with no seeded
// clues gets an empty list, not an error.
func (s *Service) CluesFor(ctx context.Context, username model.Username) ([]string, error) {
	clues, err := s.storage.GetUserClues(ctx, username)
	if errors.Is(err, model.ErrCluesNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return clues, nil
}

// MurderClues returns the privileged clue sets. Callers must have applied
// the admin check first.
func (s *Service) MurderClues(ctx context.Context) (*model.MurderClues, error) {
	return s.storage.GetMurderClues(ctx)
}
