package staff

import (
	"context"
	"strings"
)

// StaffRepository isola as consultas usadas pelo serviço.
type StaffRepository interface {
	TeamOwned(ctx context.Context, teamID, adminID int64) error
	PositionInTeam(ctx context.Context, positionID, teamID int64) error
	RequiredKeys(ctx context.Context, positionID int64) ([]RequiredKey, error)
	List(ctx context.Context, teamID int64, positionID *int64) ([]Staff, error)
	Create(ctx context.Context, input CreateInput) (Staff, error)
	GetForAdmin(ctx context.Context, id, adminID int64) (Staff, error)
	GetForTeam(ctx context.Context, id, teamID int64) (Staff, error)
	Update(ctx context.Context, id int64, patch Patch) (Staff, error)
	DeleteForAdmin(ctx context.Context, id, adminID int64) error
	DeleteForTeam(ctx context.Context, id, teamID int64) error
}

// Service implementa o acesso em dois modos: admin escopado por posse
// e líder de equipe restrito ao próprio time. A validação de campos
// exigidos só roda sob autoridade de team_code; admin é operador
// confiável e cadastra sem a checagem.
type Service struct {
	repo StaffRepository
}

func NewService(repo StaffRepository) *Service {
	return &Service{repo: repo}
}

// List devolve o staff visível ao ator.
func (s *Service) List(ctx context.Context, actor Actor, teamID *int64, positionID *int64) ([]Staff, error) {
	if actor.IsAdmin {
		if teamID == nil {
			return nil, ErrTeamRequired
		}
		if err := s.repo.TeamOwned(ctx, *teamID, actor.AdminID); err != nil {
			return nil, err
		}
		return s.repo.List(ctx, *teamID, positionID)
	}

	return s.repo.List(ctx, actor.TeamID, positionID)
}

// Create registra staff honrando as exigências da posição.
func (s *Service) Create(ctx context.Context, actor Actor, input CreateInput) (Staff, error) {
	if actor.IsAdmin {
		if err := s.repo.TeamOwned(ctx, input.TeamID, actor.AdminID); err != nil {
			return Staff{}, err
		}
		if err := s.repo.PositionInTeam(ctx, input.PositionID, input.TeamID); err != nil {
			return Staff{}, err
		}
		return s.repo.Create(ctx, input)
	}

	if input.TeamID != actor.TeamID {
		return Staff{}, ErrTeamMismatch
	}
	if err := s.repo.PositionInTeam(ctx, input.PositionID, input.TeamID); err != nil {
		return Staff{}, err
	}

	keys, err := s.repo.RequiredKeys(ctx, input.PositionID)
	if err != nil {
		return Staff{}, err
	}
	for _, k := range keys {
		if !k.Required {
			continue
		}
		if !hasValue(input.fieldValue(k.Key)) {
			return Staff{}, MissingFieldError{Key: k.Key}
		}
	}

	return s.repo.Create(ctx, input)
}

// Get resolve o staff no escopo do ator.
func (s *Service) Get(ctx context.Context, actor Actor, id int64) (Staff, error) {
	if actor.IsAdmin {
		return s.repo.GetForAdmin(ctx, id, actor.AdminID)
	}
	return s.repo.GetForTeam(ctx, id, actor.TeamID)
}

// Update aplica patch parcial. Sob team_code, a troca de posição
// revalida as exigências da nova posição contra o registro resultante
// (valores armazenados sobrepostos pelo patch); sem troca de posição
// não há revalidação.
func (s *Service) Update(ctx context.Context, actor Actor, id int64, patch Patch) (Staff, error) {
	current, err := s.Get(ctx, actor, id)
	if err != nil {
		return Staff{}, err
	}
	if patch.Empty() {
		return Staff{}, ErrNothingToUpdate
	}

	if patch.PositionID != nil {
		if err := s.repo.PositionInTeam(ctx, *patch.PositionID, current.TeamID); err != nil {
			return Staff{}, err
		}

		if !actor.IsAdmin {
			if err := s.validateMerged(ctx, *patch.PositionID, current, patch); err != nil {
				return Staff{}, err
			}
		}
	}

	return s.repo.Update(ctx, id, patch)
}

// Delete remove o staff no escopo do ator.
func (s *Service) Delete(ctx context.Context, actor Actor, id int64) error {
	if actor.IsAdmin {
		return s.repo.DeleteForAdmin(ctx, id, actor.AdminID)
	}
	return s.repo.DeleteForTeam(ctx, id, actor.TeamID)
}

func (s *Service) validateMerged(ctx context.Context, positionID int64, current Staff, patch Patch) error {
	keys, err := s.repo.RequiredKeys(ctx, positionID)
	if err != nil {
		return err
	}

	for _, k := range keys {
		if !k.Required {
			continue
		}
		value, present := patch.fieldValue(k.Key)
		if !present {
			value = current.fieldValue(k.Key)
		}
		if !hasValue(value) {
			return MissingFieldError{Key: k.Key}
		}
	}
	return nil
}

func hasValue(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}
