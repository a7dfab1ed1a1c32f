package position

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/equipecerta/credenciamento/internal/db"
)

const dbTimeout = 5 * time.Second

// Repository fornece acesso a cargos e à junção de campos exigidos.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

// TeamOwned confirma que o time pertence ao admin.
func (r *Repository) TeamOwned(ctx context.Context, teamID, adminID int64) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var id int64
	err := r.db.QueryRow(ctx, `
		SELECT t.id
		FROM teams t
		JOIN events e ON e.id = t.event_id
		WHERE t.id = $1 AND e.admin_id = $2
	`, teamID, adminID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrTeamNotFound
	}
	return err
}

// ListByTeam devolve os cargos do time com as exigências anexadas.
func (r *Repository) ListByTeam(ctx context.Context, teamID int64) ([]Position, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, team_id, name, created_at
		FROM positions
		WHERE team_id = $1
		ORDER BY created_at DESC
	`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	positions := []Position{}
	ids := []int64{}
	for rows.Next() {
		var p Position
		if err := rows.Scan(&p.ID, &p.TeamID, &p.Name, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.RequiredFields = []RequiredField{}
		positions = append(positions, p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachRequiredFields(ctx, ids, positions); err != nil {
		return nil, err
	}
	return positions, nil
}

// GetByID devolve o cargo quando a cadeia de posse chega ao admin.
func (r *Repository) GetByID(ctx context.Context, id, adminID int64) (Position, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var p Position
	err := r.db.QueryRow(ctx, `
		SELECT p.id, p.team_id, p.name, p.created_at
		FROM positions p
		JOIN teams t ON t.id = p.team_id
		JOIN events e ON e.id = t.event_id
		WHERE p.id = $1 AND e.admin_id = $2
	`, id, adminID).Scan(&p.ID, &p.TeamID, &p.Name, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Position{}, ErrNotFound
		}
		return Position{}, err
	}

	p.RequiredFields = []RequiredField{}
	positions := []Position{p}
	if err := r.attachRequiredFields(ctx, []int64{p.ID}, positions); err != nil {
		return Position{}, err
	}
	return positions[0], nil
}

// Create insere cargo e junção numa única transação.
func (r *Repository) Create(ctx context.Context, input CreateInput) (Position, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var created Position
	err := db.WithTx(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO positions (team_id, name)
			VALUES ($1, $2)
			RETURNING id, team_id, name, created_at
		`, input.TeamID, input.Name).Scan(&created.ID, &created.TeamID, &created.Name, &created.CreatedAt)
		if err != nil {
			return err
		}
		return insertRequiredFields(ctx, tx, created.ID, input.RequiredFields)
	})
	if err != nil {
		return Position{}, translateFieldRef(err)
	}

	created.RequiredFields = []RequiredField{}
	positions := []Position{created}
	if err := r.attachRequiredFields(ctx, []int64{created.ID}, positions); err != nil {
		return Position{}, err
	}
	return positions[0], nil
}

// Update renomeia e/ou substitui o conjunto inteiro da junção, em
// transação única com rollback garantido.
func (r *Repository) Update(ctx context.Context, id int64, patch Patch) (Position, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	err := db.WithTx(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if patch.Name != nil {
			if _, err := tx.Exec(ctx, `UPDATE positions SET name = $1 WHERE id = $2`, *patch.Name, id); err != nil {
				return err
			}
		}
		if patch.SetRequired {
			if _, err := tx.Exec(ctx, `DELETE FROM position_required_fields WHERE position_id = $1`, id); err != nil {
				return err
			}
			if err := insertRequiredFields(ctx, tx, id, patch.RequiredFields); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Position{}, translateFieldRef(err)
	}

	var p Position
	err = r.db.QueryRow(ctx, `
		SELECT id, team_id, name, created_at FROM positions WHERE id = $1
	`, id).Scan(&p.ID, &p.TeamID, &p.Name, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Position{}, ErrNotFound
		}
		return Position{}, err
	}

	p.RequiredFields = []RequiredField{}
	positions := []Position{p}
	if err := r.attachRequiredFields(ctx, []int64{p.ID}, positions); err != nil {
		return Position{}, err
	}
	return positions[0], nil
}

// Delete remove o cargo dentro do escopo do admin.
func (r *Repository) Delete(ctx context.Context, id, adminID int64) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		DELETE FROM positions
		WHERE id = $1
		  AND team_id IN (
			SELECT t.id FROM teams t
			JOIN events e ON e.id = t.event_id
			WHERE e.admin_id = $2
		  )
	`, id, adminID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func insertRequiredFields(ctx context.Context, tx pgx.Tx, positionID int64, fields []RequiredFieldInput) error {
	for _, f := range fields {
		if _, err := tx.Exec(ctx, `
			INSERT INTO position_required_fields (position_id, field_id, required)
			VALUES ($1, $2, $3)
		`, positionID, f.FieldID, f.Required); err != nil {
			return err
		}
	}
	return nil
}

// attachRequiredFields agrupa as linhas da junção nas posições dadas.
func (r *Repository) attachRequiredFields(ctx context.Context, ids []int64, positions []Position) error {
	if len(ids) == 0 {
		return nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT prf.position_id, prf.field_id, f.key, f.label, f.field_type, prf.required
		FROM position_required_fields prf
		JOIN fields f ON f.id = prf.field_id
		WHERE prf.position_id = ANY($1)
		ORDER BY f.id
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	byPosition := make(map[int64][]RequiredField, len(ids))
	for rows.Next() {
		var positionID int64
		var rf RequiredField
		if err := rows.Scan(&positionID, &rf.FieldID, &rf.FieldKey, &rf.FieldLabel, &rf.FieldType, &rf.Required); err != nil {
			return err
		}
		byPosition[positionID] = append(byPosition[positionID], rf)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range positions {
		if rfs, ok := byPosition[positions[i].ID]; ok {
			positions[i].RequiredFields = rfs
		}
	}
	return nil
}

// translateFieldRef mapeia violação de FK da junção para erro de domínio.
func translateFieldRef(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return ErrUnknownField
	}
	return err
}
