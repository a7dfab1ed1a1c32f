package position

import (
	"context"
)

// PositionRepository isola as consultas usadas pelo serviço. Create e
// Update executam a escrita do cargo e da junção em transação única.
type PositionRepository interface {
	TeamOwned(ctx context.Context, teamID, adminID int64) error
	ListByTeam(ctx context.Context, teamID int64) ([]Position, error)
	GetByID(ctx context.Context, id, adminID int64) (Position, error)
	Create(ctx context.Context, input CreateInput) (Position, error)
	Update(ctx context.Context, id int64, patch Patch) (Position, error)
	Delete(ctx context.Context, id, adminID int64) error
}

// Service aplica escopo por admin sobre cargos.
type Service struct {
	repo PositionRepository
}

func NewService(repo PositionRepository) *Service {
	return &Service{repo: repo}
}

// List exige que o time pertença ao admin.
func (s *Service) List(ctx context.Context, teamID, adminID int64) ([]Position, error) {
	if err := s.repo.TeamOwned(ctx, teamID, adminID); err != nil {
		return nil, err
	}
	return s.repo.ListByTeam(ctx, teamID)
}

func (s *Service) Create(ctx context.Context, adminID int64, input CreateInput) (Position, error) {
	if err := s.repo.TeamOwned(ctx, input.TeamID, adminID); err != nil {
		return Position{}, err
	}
	return s.repo.Create(ctx, input)
}

func (s *Service) Get(ctx context.Context, id, adminID int64) (Position, error) {
	return s.repo.GetByID(ctx, id, adminID)
}

// Update confere posse antes do patch (404 antes de 400).
func (s *Service) Update(ctx context.Context, id, adminID int64, patch Patch) (Position, error) {
	if _, err := s.repo.GetByID(ctx, id, adminID); err != nil {
		return Position{}, err
	}
	if patch.Empty() {
		return Position{}, ErrNothingToUpdate
	}
	return s.repo.Update(ctx, id, patch)
}

func (s *Service) Delete(ctx context.Context, id, adminID int64) error {
	return s.repo.Delete(ctx, id, adminID)
}
