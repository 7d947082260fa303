package persona

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/severedgames/mysteryparty/internal/model"
	"github.com/severedgames/mysteryparty/internal/storage"
	"github.com/severedgames/mysteryparty/internal/storage/memory"
	"github.com/severedgames/mysteryparty/internal/testutil"
)

type PersonaServiceSuite struct {
	suite.Suite
	ctx     context.Context
	storage storage.Storage
	service *Service
}

func (s *PersonaServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.storage = memory.New()
	s.service = New(s.storage, testutil.NopLogger())
}

func (s *PersonaServiceSuite) TestGetReturnsSeededPersona() {
	seeded := &model.Persona{
		Username:    "dhruv",
		Group:       model.GroupOutie,
		Description: "A macrodata refiner who remembers too much",
	}
	s.Require().NoError(s.storage.SavePersona(s.ctx, seeded))

	persona, err := s.service.Get(s.ctx, "dhruv")
	s.Require().NoError(err)
	s.Equal(model.GroupOutie, persona.Group)
	s.Equal(seeded.Description, persona.Description)
}

func (s *PersonaServiceSuite) TestGetUnknownUser() {
	_, err := s.service.Get(s.ctx, "nobody")
	s.Require().ErrorIs(err, model.ErrPersonaNotFound)
}

func (s *PersonaServiceSuite) TestListReturnsAllPersonas() {
	s.Require().NoError(s.storage.SavePersona(s.ctx, &model.Persona{Username: "dhruv", Group: model.GroupOutie}))
	s.Require().NoError(s.storage.SavePersona(s.ctx, &model.Persona{Username: "aishani", Group: model.GroupInnie}))

	personas, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Len(personas, 2)
}

func (s *PersonaServiceSuite) TestCluesForReturnsSeededClues() {
	s.Require().NoError(s.storage.SaveUserClues(s.ctx, "dhruv", []string{"the elevator was locked", "ask about the pineapple"}))

	clues, err := s.service.CluesFor(s.ctx, "dhruv")
	s.Require().NoError(err)
	s.Equal([]string{"the elevator was locked", "ask about the pineapple"}, clues)
}

func (s *PersonaServiceSuite) TestCluesForWithoutSeedIsEmptyNotError() {
	clues, err := s.service.CluesFor(s.ctx, "nobody")
	s.Require().NoError(err)
	s.NotNil(clues)
	s.Empty(clues)
}

func (s *PersonaServiceSuite) TestMurderClues() {
	seeded := &model.MurderClues{
		ToOuties: []string{"the killer never left the lobby"},
		ToInnies: []string{"check the severed floor logs"},
	}
	s.Require().NoError(s.storage.SaveMurderClues(s.ctx, seeded))

	clues, err := s.service.MurderClues(s.ctx)
	s.Require().NoError(err)
	s.Equal(seeded.ToOuties, clues.ToOuties)
	s.Equal(seeded.ToInnies, clues.ToInnies)
}

func TestPersonaServiceSuite(t *testing.T) {
	suite.Run(t, new(PersonaServiceSuite))
}
