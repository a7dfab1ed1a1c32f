package event

import (
	"context"
)

// EventRepository isola as consultas usadas pelo serviço.
type EventRepository interface {
	ListByAdmin(ctx context.Context, adminID int64) ([]Event, error)
	Create(ctx context.Context, adminID int64, input CreateInput) (Event, error)
	GetByID(ctx context.Context, id, adminID int64) (Event, error)
	Update(ctx context.Context, id, adminID int64, patch Patch) (Event, error)
	Delete(ctx context.Context, id, adminID int64) error
}

// Service aplica as regras de escopo por admin.
type Service struct {
	repo EventRepository
}

func NewService(repo EventRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, adminID int64) ([]Event, error) {
	return s.repo.ListByAdmin(ctx, adminID)
}

func (s *Service) Create(ctx context.Context, adminID int64, input CreateInput) (Event, error) {
	return s.repo.Create(ctx, adminID, input)
}

func (s *Service) Get(ctx context.Context, id, adminID int64) (Event, error) {
	return s.repo.GetByID(ctx, id, adminID)
}

// Update confere a existência antes do patch para que escopo (404)
// tenha precedência sobre patch vazio (400).
func (s *Service) Update(ctx context.Context, id, adminID int64, patch Patch) (Event, error) {
	if _, err := s.repo.GetByID(ctx, id, adminID); err != nil {
		return Event{}, err
	}
	if patch.Empty() {
		return Event{}, ErrNothingToUpdate
	}
	return s.repo.Update(ctx, id, adminID, patch)
}

func (s *Service) Delete(ctx context.Context, id, adminID int64) error {
	return s.repo.Delete(ctx, id, adminID)
}
