package event

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dbTimeout = 3 * time.Second

// Repository fornece acesso à tabela de eventos.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const eventColumns = "id, admin_id, name, location, event_date, created_at"

func scanEvent(row pgx.Row) (Event, error) {
	var e Event
	err := row.Scan(&e.ID, &e.AdminID, &e.Name, &e.Location, &e.EventDate, &e.CreatedAt)
	return e, err
}

// ListByAdmin devolve os eventos do admin, mais recentes primeiro.
func (r *Repository) ListByAdmin(ctx context.Context, adminID int64) ([]Event, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE admin_id = $1
		ORDER BY created_at DESC
	`, adminID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Create insere um evento para o admin.
func (r *Repository) Create(ctx context.Context, adminID int64, input CreateInput) (Event, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return scanEvent(r.db.QueryRow(ctx, `
		INSERT INTO events (admin_id, name, location, event_date)
		VALUES ($1, $2, $3, $4)
		RETURNING `+eventColumns+`
	`, adminID, input.Name, textOrNil(input.Location), input.EventDate))
}

// GetByID devolve o evento apenas quando pertence ao admin.
func (r *Repository) GetByID(ctx context.Context, id, adminID int64) (Event, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	e, err := scanEvent(r.db.QueryRow(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE id = $1 AND admin_id = $2
	`, id, adminID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Event{}, ErrNotFound
		}
		return Event{}, err
	}
	return e, nil
}

// Update aplica o patch montando SET apenas com colunas presentes.
// Nomes de coluna são fixos; valores entram sempre parametrizados.
func (r *Repository) Update(ctx context.Context, id, adminID int64, patch Patch) (Event, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var sets []string
	var args []any

	if patch.Name != nil {
		args = append(args, *patch.Name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if patch.Location != nil {
		args = append(args, textOrNil(patch.Location))
		sets = append(sets, fmt.Sprintf("location = $%d", len(args)))
	}
	if patch.SetEventDate {
		args = append(args, patch.EventDate)
		sets = append(sets, fmt.Sprintf("event_date = $%d", len(args)))
	}

	args = append(args, id, adminID)
	query := fmt.Sprintf(`
		UPDATE events
		SET %s
		WHERE id = $%d AND admin_id = $%d
		RETURNING `+eventColumns,
		strings.Join(sets, ", "), len(args)-1, len(args))

	e, err := scanEvent(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Event{}, ErrNotFound
		}
		return Event{}, err
	}
	return e, nil
}

// Delete remove o evento do admin.
func (r *Repository) Delete(ctx context.Context, id, adminID int64) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1 AND admin_id = $2`, id, adminID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// textOrNil converte string vazia em NULL para colunas opcionais.
func textOrNil(s *string) any {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return *s
}
