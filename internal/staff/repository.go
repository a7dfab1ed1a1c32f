package staff

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

// Repository fornece acesso à tabela de staff e às consultas de apoio
// (posse de time, posição dentro do time, exigências da posição).
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const staffColumns = "s.id, s.team_id, s.position_id, s.name, s.cpf, s.email, s.phone, s.address, s.car_plate, s.created_at"

func scanStaff(row pgx.Row) (Staff, error) {
	var st Staff
	err := row.Scan(&st.ID, &st.TeamID, &st.PositionID, &st.Name, &st.CPF, &st.Email,
		&st.Phone, &st.Address, &st.CarPlate, &st.CreatedAt)
	return st, err
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

// PositionInTeam confirma que a posição pertence ao time.
func (r *Repository) PositionInTeam(ctx context.Context, positionID, teamID int64) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var id int64
	err := r.db.QueryRow(ctx, `
		SELECT id FROM positions WHERE id = $1 AND team_id = $2
	`, positionID, teamID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrPositionNotFound
	}
	return err
}

// RequiredKeys devolve as exigências da posição com a key de cada campo.
func (r *Repository) RequiredKeys(ctx context.Context, positionID int64) ([]RequiredKey, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT f.key, prf.required
		FROM position_required_fields prf
		JOIN fields f ON f.id = prf.field_id
		WHERE prf.position_id = $1
	`, positionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []RequiredKey
	for rows.Next() {
		var k RequiredKey
		if err := rows.Scan(&k.Key, &k.Required); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// List devolve o staff de um time, com filtro opcional por posição.
func (r *Repository) List(ctx context.Context, teamID int64, positionID *int64) ([]Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	query := `SELECT ` + staffColumns + ` FROM staff s WHERE s.team_id = $1`
	args := []any{teamID}
	if positionID != nil {
		args = append(args, *positionID)
		query += fmt.Sprintf(" AND s.position_id = $%d", len(args))
	}
	query += " ORDER BY s.created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []Staff{}
	for rows.Next() {
		st, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, st)
	}
	return members, rows.Err()
}

// Create insere o registro de staff.
func (r *Repository) Create(ctx context.Context, input CreateInput) (Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return scanStaff(r.db.QueryRow(ctx, `
		INSERT INTO staff (team_id, position_id, name, cpf, email, phone, address, car_plate)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, team_id, position_id, name, cpf, email, phone, address, car_plate, created_at
	`, input.TeamID, input.PositionID, textOrNil(input.Name), textOrNil(input.CPF),
		textOrNil(input.Email), textOrNil(input.Phone), textOrNil(input.Address), textOrNil(input.CarPlate)))
}

// GetForAdmin resolve o staff pela cadeia de posse até o admin.
func (r *Repository) GetForAdmin(ctx context.Context, id, adminID int64) (Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	st, err := scanStaff(r.db.QueryRow(ctx, `
		SELECT `+staffColumns+`
		FROM staff s
		JOIN teams t ON t.id = s.team_id
		JOIN events e ON e.id = t.event_id
		WHERE s.id = $1 AND e.admin_id = $2
	`, id, adminID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Staff{}, ErrNotFound
		}
		return Staff{}, err
	}
	return st, nil
}

// GetForTeam resolve o staff dentro do time do líder.
func (r *Repository) GetForTeam(ctx context.Context, id, teamID int64) (Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	st, err := scanStaff(r.db.QueryRow(ctx, `
		SELECT `+staffColumns+`
		FROM staff s
		WHERE s.id = $1 AND s.team_id = $2
	`, id, teamID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Staff{}, ErrNotFound
		}
		return Staff{}, err
	}
	return st, nil
}

// Update aplica o patch; o escopo já foi resolvido pelo serviço.
func (r *Repository) Update(ctx context.Context, id int64, patch Patch) (Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var sets []string
	var args []any

	if patch.PositionID != nil {
		args = append(args, *patch.PositionID)
		sets = append(sets, fmt.Sprintf("position_id = $%d", len(args)))
	}
	for _, col := range [...]struct {
		name  string
		value *string
	}{
		{"name", patch.Name},
		{"cpf", patch.CPF},
		{"email", patch.Email},
		{"phone", patch.Phone},
		{"address", patch.Address},
		{"car_plate", patch.CarPlate},
	} {
		if col.value != nil {
			args = append(args, textOrNil(col.value))
			sets = append(sets, fmt.Sprintf("%s = $%d", col.name, len(args)))
		}
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE staff s
		SET %s
		WHERE s.id = $%d
		RETURNING `+staffColumns,
		strings.Join(sets, ", "), len(args))

	st, err := scanStaff(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Staff{}, ErrNotFound
		}
		return Staff{}, err
	}
	return st, nil
}

// DeleteForAdmin remove o staff dentro do escopo do admin.
func (r *Repository) DeleteForAdmin(ctx context.Context, id, adminID int64) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		DELETE FROM staff
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

// DeleteForTeam remove o staff dentro do time do líder.
func (r *Repository) DeleteForTeam(ctx context.Context, id, teamID int64) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM staff WHERE id = $1 AND team_id = $2`, id, teamID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func textOrNil(s *string) any {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return *s
}
