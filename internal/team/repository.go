package team

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dbTimeout = 3 * time.Second

// Repository fornece acesso à tabela de times.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const teamColumns = "t.id, t.event_id, t.name, t.responsible_name, t.responsible_email, t.team_code, t.created_at"

func scanTeam(row pgx.Row) (Team, error) {
	var t Team
	err := row.Scan(&t.ID, &t.EventID, &t.Name, &t.ResponsibleName, &t.ResponsibleEmail, &t.TeamCode, &t.CreatedAt)
	return t, err
}

// EventOwned confirma que o evento pertence ao admin.
func (r *Repository) EventOwned(ctx context.Context, eventID, adminID int64) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var id int64
	err := r.db.QueryRow(ctx, `SELECT id FROM events WHERE id = $1 AND admin_id = $2`, eventID, adminID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrEventNotFound
	}
	return err
}

// ListByEvent devolve os times do evento, mais recentes primeiro.
func (r *Repository) ListByEvent(ctx context.Context, eventID int64) ([]Team, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+teamColumns+`
		FROM teams t
		WHERE t.event_id = $1
		ORDER BY t.created_at DESC
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := []Team{}
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// Create insere o time com o código já gerado pelo serviço.
func (r *Repository) Create(ctx context.Context, input CreateInput, teamCode string) (Team, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	t, err := scanTeam(r.db.QueryRow(ctx, `
		INSERT INTO teams (event_id, name, responsible_name, responsible_email, team_code)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, event_id, name, responsible_name, responsible_email, team_code, created_at
	`, input.EventID, input.Name, textOrNil(input.ResponsibleName), textOrNil(input.ResponsibleEmail), teamCode))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "team_code") {
			return Team{}, ErrCodeTaken
		}
		return Team{}, err
	}
	return t, nil
}

// GetByID devolve o time apenas quando a cadeia de posse chega ao admin.
func (r *Repository) GetByID(ctx context.Context, id, adminID int64) (Team, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	t, err := scanTeam(r.db.QueryRow(ctx, `
		SELECT `+teamColumns+`
		FROM teams t
		JOIN events e ON e.id = t.event_id
		WHERE t.id = $1 AND e.admin_id = $2
	`, id, adminID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Team{}, ErrNotFound
		}
		return Team{}, err
	}
	return t, nil
}

// Update aplica o patch; colunas fixas, valores parametrizados.
func (r *Repository) Update(ctx context.Context, id int64, patch Patch) (Team, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var sets []string
	var args []any

	if patch.Name != nil {
		args = append(args, *patch.Name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if patch.ResponsibleName != nil {
		args = append(args, textOrNil(patch.ResponsibleName))
		sets = append(sets, fmt.Sprintf("responsible_name = $%d", len(args)))
	}
	if patch.ResponsibleEmail != nil {
		args = append(args, textOrNil(patch.ResponsibleEmail))
		sets = append(sets, fmt.Sprintf("responsible_email = $%d", len(args)))
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE teams t
		SET %s
		WHERE t.id = $%d
		RETURNING `+teamColumns,
		strings.Join(sets, ", "), len(args))

	t, err := scanTeam(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Team{}, ErrNotFound
		}
		return Team{}, err
	}
	return t, nil
}

// Delete remove o time dentro do escopo do admin.
func (r *Repository) Delete(ctx context.Context, id, adminID int64) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		DELETE FROM teams
		WHERE id = $1
		  AND event_id IN (SELECT id FROM events WHERE admin_id = $2)
	`, id, adminID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByCode resolve a projeção pública de um time pelo código.
func (r *Repository) GetByCode(ctx context.Context, code string) (PublicTeam, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var t PublicTeam
	err := r.db.QueryRow(ctx, `
		SELECT id, event_id, name FROM teams WHERE team_code = $1
	`, code).Scan(&t.ID, &t.EventID, &t.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PublicTeam{}, ErrNotFound
		}
		return PublicTeam{}, err
	}
	return t, nil
}

// ResolveCode devolve apenas o id do time dono do código.
func (r *Repository) ResolveCode(ctx context.Context, code string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var id int64
	err := r.db.QueryRow(ctx, `SELECT id FROM teams WHERE team_code = $1`, code).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return id, nil
}

func textOrNil(s *string) any {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return *s
}
