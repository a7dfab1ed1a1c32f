package staff

import (
	"context"
	"errors"
	"testing"
)

type stubRepo struct {
	ownedTeams    map[int64]int64
	positionTeams map[int64]int64
	required      map[int64][]RequiredKey
	stored        map[int64]Staff
	created       []CreateInput
	lastPatch     Patch
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		ownedTeams:    map[int64]int64{},
		positionTeams: map[int64]int64{},
		required:      map[int64][]RequiredKey{},
		stored:        map[int64]Staff{},
	}
}

func (s *stubRepo) TeamOwned(_ context.Context, teamID, adminID int64) error {
	if s.ownedTeams[teamID] != adminID {
		return ErrTeamNotFound
	}
	return nil
}

func (s *stubRepo) PositionInTeam(_ context.Context, positionID, teamID int64) error {
	if s.positionTeams[positionID] != teamID {
		return ErrPositionNotFound
	}
	return nil
}

func (s *stubRepo) RequiredKeys(_ context.Context, positionID int64) ([]RequiredKey, error) {
	return s.required[positionID], nil
}

func (s *stubRepo) List(_ context.Context, teamID int64, _ *int64) ([]Staff, error) {
	var out []Staff
	for _, m := range s.stored {
		if m.TeamID == teamID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *stubRepo) Create(_ context.Context, input CreateInput) (Staff, error) {
	s.created = append(s.created, input)
	return Staff{ID: int64(len(s.created)), TeamID: input.TeamID, PositionID: input.PositionID, Name: input.Name}, nil
}

func (s *stubRepo) GetForAdmin(_ context.Context, id, _ int64) (Staff, error) {
	m, ok := s.stored[id]
	if !ok {
		return Staff{}, ErrNotFound
	}
	return m, nil
}

func (s *stubRepo) GetForTeam(_ context.Context, id, teamID int64) (Staff, error) {
	m, ok := s.stored[id]
	if !ok || m.TeamID != teamID {
		return Staff{}, ErrNotFound
	}
	return m, nil
}

func (s *stubRepo) Update(_ context.Context, id int64, patch Patch) (Staff, error) {
	s.lastPatch = patch
	return s.stored[id], nil
}

func (s *stubRepo) DeleteForAdmin(_ context.Context, id, _ int64) error {
	delete(s.stored, id)
	return nil
}

func (s *stubRepo) DeleteForTeam(_ context.Context, id, teamID int64) error {
	m, ok := s.stored[id]
	if !ok || m.TeamID != teamID {
		return ErrNotFound
	}
	delete(s.stored, id)
	return nil
}

func strPtr(v string) *string { return &v }

func TestCreateLeaderRequiredFields(t *testing.T) {
	repo := newStubRepo()
	repo.positionTeams[5] = 3
	repo.required[5] = []RequiredKey{{Key: "cpf", Required: true}, {Key: "phone", Required: false}}

	svc := NewService(repo)
	leader := Actor{TeamID: 3}

	_, err := svc.Create(context.Background(), leader, CreateInput{TeamID: 3, PositionID: 5, Name: strPtr("Ana")})
	var missing MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldError got %v", err)
	}
	if missing.Key != "cpf" {
		t.Fatalf("expected missing cpf got %q", missing.Key)
	}

	created, err := svc.Create(context.Background(), leader, CreateInput{
		TeamID: 3, PositionID: 5, Name: strPtr("Ana"), CPF: strPtr("123.456.789-00"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.TeamID != 3 || created.PositionID != 5 {
		t.Fatalf("unexpected staff %+v", created)
	}
}

func TestCreateLeaderBlankValueCountsAsMissing(t *testing.T) {
	repo := newStubRepo()
	repo.positionTeams[5] = 3
	repo.required[5] = []RequiredKey{{Key: "email", Required: true}}

	svc := NewService(repo)

	_, err := svc.Create(context.Background(), Actor{TeamID: 3}, CreateInput{
		TeamID: 3, PositionID: 5, Email: strPtr("   "),
	})
	var missing MissingFieldError
	if !errors.As(err, &missing) || missing.Key != "email" {
		t.Fatalf("expected missing email got %v", err)
	}
}

func TestCreateLeaderTeamMismatch(t *testing.T) {
	repo := newStubRepo()
	repo.positionTeams[5] = 9

	svc := NewService(repo)

	_, err := svc.Create(context.Background(), Actor{TeamID: 3}, CreateInput{TeamID: 9, PositionID: 5})
	if !errors.Is(err, ErrTeamMismatch) {
		t.Fatalf("expected ErrTeamMismatch got %v", err)
	}
}

func TestCreateAdminSkipsRequiredFields(t *testing.T) {
	repo := newStubRepo()
	repo.ownedTeams[3] = 1
	repo.positionTeams[5] = 3
	repo.required[5] = []RequiredKey{{Key: "cpf", Required: true}}

	svc := NewService(repo)

	if _, err := svc.Create(context.Background(), Actor{IsAdmin: true, AdminID: 1}, CreateInput{TeamID: 3, PositionID: 5}); err != nil {
		t.Fatalf("admin create should bypass required fields: %v", err)
	}
}

func TestCreateAdminForeignTeam(t *testing.T) {
	repo := newStubRepo()
	repo.ownedTeams[3] = 1

	svc := NewService(repo)

	_, err := svc.Create(context.Background(), Actor{IsAdmin: true, AdminID: 2}, CreateInput{TeamID: 3, PositionID: 5})
	if !errors.Is(err, ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound got %v", err)
	}
}

func TestListAdminRequiresTeam(t *testing.T) {
	svc := NewService(newStubRepo())

	_, err := svc.List(context.Background(), Actor{IsAdmin: true, AdminID: 1}, nil, nil)
	if !errors.Is(err, ErrTeamRequired) {
		t.Fatalf("expected ErrTeamRequired got %v", err)
	}
}

func TestUpdateEmptyPatch(t *testing.T) {
	repo := newStubRepo()
	repo.stored[8] = Staff{ID: 8, TeamID: 3, PositionID: 5}

	svc := NewService(repo)

	_, err := svc.Update(context.Background(), Actor{TeamID: 3}, 8, Patch{})
	if !errors.Is(err, ErrNothingToUpdate) {
		t.Fatalf("expected ErrNothingToUpdate got %v", err)
	}
}

func TestUpdateNotFoundBeforeEmptyPatch(t *testing.T) {
	svc := NewService(newStubRepo())

	_, err := svc.Update(context.Background(), Actor{TeamID: 3}, 999, Patch{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound got %v", err)
	}
}

func TestUpdatePositionChangeValidatesMergedRecord(t *testing.T) {
	repo := newStubRepo()
	repo.positionTeams[6] = 3
	repo.required[6] = []RequiredKey{{Key: "cpf", Required: true}, {Key: "phone", Required: true}}
	repo.stored[8] = Staff{ID: 8, TeamID: 3, PositionID: 5, CPF: strPtr("123")}

	svc := NewService(repo)
	leader := Actor{TeamID: 3}
	newPos := int64(6)

	// cpf vem do registro armazenado, phone falta em ambos.
	_, err := svc.Update(context.Background(), leader, 8, Patch{PositionID: &newPos})
	var missing MissingFieldError
	if !errors.As(err, &missing) || missing.Key != "phone" {
		t.Fatalf("expected missing phone got %v", err)
	}

	// phone suprido pelo patch satisfaz a exigência.
	if _, err := svc.Update(context.Background(), leader, 8, Patch{PositionID: &newPos, Phone: strPtr("11 99999-0000")}); err != nil {
		t.Fatalf("update: %v", err)
	}
}

func TestUpdateWithoutPositionChangeSkipsValidation(t *testing.T) {
	repo := newStubRepo()
	repo.required[5] = []RequiredKey{{Key: "cpf", Required: true}}
	repo.stored[8] = Staff{ID: 8, TeamID: 3, PositionID: 5}

	svc := NewService(repo)

	if _, err := svc.Update(context.Background(), Actor{TeamID: 3}, 8, Patch{Name: strPtr("Novo Nome")}); err != nil {
		t.Fatalf("field-only update must not re-validate: %v", err)
	}
}

func TestUpdateAdminPositionChangeSkipsValidation(t *testing.T) {
	repo := newStubRepo()
	repo.positionTeams[6] = 3
	repo.required[6] = []RequiredKey{{Key: "cpf", Required: true}}
	repo.stored[8] = Staff{ID: 8, TeamID: 3, PositionID: 5}

	svc := NewService(repo)
	newPos := int64(6)

	if _, err := svc.Update(context.Background(), Actor{IsAdmin: true, AdminID: 1}, 8, Patch{PositionID: &newPos}); err != nil {
		t.Fatalf("admin update should bypass required fields: %v", err)
	}
}
