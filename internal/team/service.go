package team

import (
	"context"
	"errors"

	"github.com/equipecerta/credenciamento/internal/auth"
)

// TeamRepository isola as consultas usadas pelo serviço.
type TeamRepository interface {
	EventOwned(ctx context.Context, eventID, adminID int64) error
	ListByEvent(ctx context.Context, eventID int64) ([]Team, error)
	Create(ctx context.Context, input CreateInput, teamCode string) (Team, error)
	GetByID(ctx context.Context, id, adminID int64) (Team, error)
	Update(ctx context.Context, id int64, patch Patch) (Team, error)
	Delete(ctx context.Context, id, adminID int64) error
	GetByCode(ctx context.Context, code string) (PublicTeam, error)
	ResolveCode(ctx context.Context, code string) (int64, error)
}

// Service aplica escopo por admin e geração do team_code.
type Service struct {
	repo TeamRepository
}

func NewService(repo TeamRepository) *Service {
	return &Service{repo: repo}
}

// List exige que o evento pertença ao admin.
func (s *Service) List(ctx context.Context, eventID, adminID int64) ([]Team, error) {
	if err := s.repo.EventOwned(ctx, eventID, adminID); err != nil {
		return nil, err
	}
	return s.repo.ListByEvent(ctx, eventID)
}

// Create gera o código de acesso e insere o time. Colisões do código
// são raríssimas; ainda assim tenta novamente algumas vezes.
func (s *Service) Create(ctx context.Context, adminID int64, input CreateInput) (Team, error) {
	if err := s.repo.EventOwned(ctx, input.EventID, adminID); err != nil {
		return Team{}, err
	}

	for attempt := 0; attempt < 3; attempt++ {
		code, err := auth.GenerateTeamCode()
		if err != nil {
			return Team{}, err
		}

		created, err := s.repo.Create(ctx, input, code)
		if err != nil {
			if errors.Is(err, ErrCodeTaken) {
				continue
			}
			return Team{}, err
		}
		return created, nil
	}

	return Team{}, ErrCodeTaken
}

func (s *Service) Get(ctx context.Context, id, adminID int64) (Team, error) {
	return s.repo.GetByID(ctx, id, adminID)
}

// Update confere posse antes do patch (404 antes de 400).
func (s *Service) Update(ctx context.Context, id, adminID int64, patch Patch) (Team, error) {
	if _, err := s.repo.GetByID(ctx, id, adminID); err != nil {
		return Team{}, err
	}
	if patch.Empty() {
		return Team{}, ErrNothingToUpdate
	}
	return s.repo.Update(ctx, id, patch)
}

func (s *Service) Delete(ctx context.Context, id, adminID int64) error {
	return s.repo.Delete(ctx, id, adminID)
}

// Lookup resolve a projeção pública de um time pelo código de acesso.
func (s *Service) Lookup(ctx context.Context, code string) (PublicTeam, error) {
	return s.repo.GetByCode(ctx, code)
}
